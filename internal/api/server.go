// Package api exposes the analytics engine over HTTP. Handlers only bind,
// delegate, and marshal; all logic lives in the internal packages they call.
package api

import (
	"net/http"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	"github.com/gyeh/rafscope/internal/chat"
	"github.com/gyeh/rafscope/internal/dataset"
)

// Handler wires the HTTP routes to the snapshot store and chat orchestrator.
type Handler struct {
	store *dataset.Store
	chat  *chat.Orchestrator
	log   zerolog.Logger
}

// NewHandler returns a Handler over the given store and chat orchestrator.
func NewHandler(store *dataset.Store, chatOrch *chat.Orchestrator, log zerolog.Logger) *Handler {
	return &Handler{store: store, chat: chatOrch, log: log}
}

// NewServer builds the echo instance with middleware and all routes
// registered under /api.
func NewServer(h *Handler) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())

	h.RegisterRoutes(e.Group("/api"))
	return e
}

// RegisterRoutes registers the analytics endpoints on the provided group.
//
//	GET  /api/dashboard    - population KPI bundle
//	GET  /api/explorer     - RAF distribution + paginated member rows
//	GET  /api/claims       - claims lens
//	GET  /api/members/:id       - orchestrated pipeline output for one member
//	GET  /api/members/:id/raf   - RAF breakdown (demographic + condition parts)
//	GET  /api/members/:id/risk  - raw risk-agent output
//	POST /api/simulate     - what-if population simulation
//	POST /api/chat         - natural-language question
//	POST /api/upload       - validate and swap in a new dataset
func (h *Handler) RegisterRoutes(g *echo.Group) {
	g.GET("/dashboard", h.Dashboard)
	g.GET("/explorer", h.Explorer)
	g.GET("/claims", h.Claims)
	g.GET("/members/:id", h.Member)
	g.GET("/members/:id/raf", h.MemberRAF)
	g.GET("/members/:id/risk", h.MemberRisk)
	g.POST("/simulate", h.Simulate)
	g.POST("/chat", h.Chat)
	g.POST("/upload", h.Upload)
}

// snapshot returns the active snapshot or a 503 error before the first load.
func (h *Handler) snapshot() (*dataset.Snapshot, error) {
	snap := h.store.Current()
	if snap == nil {
		return nil, echo.NewHTTPError(http.StatusServiceUnavailable, "no dataset loaded")
	}
	return snap, nil
}
