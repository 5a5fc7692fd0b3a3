package api

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/gyeh/rafscope/internal/agent"
	"github.com/gyeh/rafscope/internal/analytics"
	"github.com/gyeh/rafscope/internal/dataset"
	"github.com/gyeh/rafscope/internal/model"
	"github.com/gyeh/rafscope/internal/pipeline"
	"github.com/gyeh/rafscope/internal/raf"
	"github.com/gyeh/rafscope/internal/simulate"
)

// Dashboard handles GET /api/dashboard.
func (h *Handler) Dashboard(c echo.Context) error {
	snap, err := h.snapshot()
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, analytics.BuildDashboard(snap))
}

// Explorer handles GET /api/explorer?page=&page_size=.
func (h *Handler) Explorer(c echo.Context) error {
	snap, err := h.snapshot()
	if err != nil {
		return err
	}
	page, pageSize := pageParams(c)
	return c.JSON(http.StatusOK, analytics.BuildExplorer(snap, page, pageSize))
}

// Claims handles GET /api/claims?page=&page_size=.
func (h *Handler) Claims(c echo.Context) error {
	snap, err := h.snapshot()
	if err != nil {
		return err
	}
	page, pageSize := pageParams(c)
	return c.JSON(http.StatusOK, analytics.BuildClaims(snap, page, pageSize))
}

// Member handles GET /api/members/:id and returns the full orchestrated
// pipeline output for one member.
func (h *Handler) Member(c echo.Context) error {
	snap, err := h.snapshot()
	if err != nil {
		return err
	}
	id := c.Param("id")
	m, ok := snap.Member(id)
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "unknown member: "+id)
	}

	out, err := pipeline.New(h.log).Run(m, snap.Claims(id))
	if err != nil {
		h.log.Error().Err(err).Str("member", id).Msg("pipeline failed")
		return echo.NewHTTPError(http.StatusInternalServerError, "analysis failed")
	}
	return c.JSON(http.StatusOK, out)
}

// MemberRAF handles GET /api/members/:id/raf and returns the member's RAF
// decomposed into the demographic factor and per-condition weights.
func (h *Handler) MemberRAF(c echo.Context) error {
	snap, err := h.snapshot()
	if err != nil {
		return err
	}
	id := c.Param("id")
	m, ok := snap.Member(id)
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "unknown member: "+id)
	}
	return c.JSON(http.StatusOK, raf.ComputeBreakdown(m))
}

// MemberRisk handles GET /api/members/:id/risk and returns the risk agent's
// raw output, before financial and compliance post-processing.
func (h *Handler) MemberRisk(c echo.Context) error {
	snap, err := h.snapshot()
	if err != nil {
		return err
	}
	id := c.Param("id")
	m, ok := snap.Member(id)
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "unknown member: "+id)
	}
	return c.JSON(http.StatusOK, agent.RunRiskAgent(m, snap.Claims(id)))
}

// Simulate handles POST /api/simulate.
func (h *Handler) Simulate(c echo.Context) error {
	snap, err := h.snapshot()
	if err != nil {
		return err
	}
	var req model.SimulationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid simulation request: "+err.Error())
	}
	return c.JSON(http.StatusOK, simulate.Run(snap, req, h.log))
}

type chatRequest struct {
	Question string `json:"question"`
}

// Chat handles POST /api/chat.
func (h *Handler) Chat(c echo.Context) error {
	snap, err := h.snapshot()
	if err != nil {
		return err
	}
	var req chatRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid chat request: "+err.Error())
	}
	if req.Question == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "question is required")
	}
	return c.JSON(http.StatusOK, h.chat.Answer(c.Request().Context(), snap, req.Question))
}

type uploadRequest struct {
	Members []model.Member `json:"members"`
	Claims  []model.Claim  `json:"claims"`
}

type uploadResponse struct {
	SnapshotID   string `json:"snapshot_id"`
	Members      int    `json:"members"`
	Claims       int    `json:"claims"`
	OrphanClaims int    `json:"orphan_claims"`
}

// Upload handles POST /api/upload: validates the dataset, builds a fresh
// snapshot, and swaps it in atomically. Validation failures return the full
// field-level error list; orphan claims are reported, not rejected.
func (h *Handler) Upload(c echo.Context) error {
	var req uploadRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid upload: "+err.Error())
	}
	if len(req.Members) == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "upload contains no members")
	}

	if errs := dataset.ValidateAll(req.Members, req.Claims); len(errs) > 0 {
		return c.JSON(http.StatusUnprocessableEntity, map[string]any{
			"errors": errs,
		})
	}

	snap := dataset.NewSnapshot(req.Members, req.Claims, h.log)
	h.store.Swap(snap)
	return c.JSON(http.StatusOK, uploadResponse{
		SnapshotID:   snap.ID.String(),
		Members:      snap.MemberCount(),
		Claims:       snap.ClaimCount(),
		OrphanClaims: snap.OrphanClaims(),
	})
}

func pageParams(c echo.Context) (int, int) {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	if page < 1 {
		page = 1
	}
	pageSize, _ := strconv.Atoi(c.QueryParam("page_size"))
	if pageSize < 1 {
		pageSize = 50
	}
	return page, pageSize
}
