package dataset

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/parquet-go/parquet-go"

	"github.com/gyeh/rafscope/internal/model"
)

// MemberRow mirrors the member parquet schema. Coded conditions are stored
// as a pipe-separated string to keep the file flat.
type MemberRow struct {
	MemberID         string  `parquet:"member_id"`
	Age              int32   `parquet:"age"`
	Gender           string  `parquet:"gender"`
	State            string  `parquet:"state"`
	Plan             string  `parquet:"plan"`
	RiskScore        float64 `parquet:"risk_score"`
	ChronicCondition bool    `parquet:"chronic_condition"`
	CodedConditions  string  `parquet:"coded_conditions"`
	MemberMonths     int32   `parquet:"member_months"`
}

// ClaimRow mirrors the claim parquet schema. Service dates are ISO strings.
type ClaimRow struct {
	ClaimID       string  `parquet:"claim_id"`
	MemberID      string  `parquet:"member_id"`
	ServiceDate   string  `parquet:"service_date"`
	Type          string  `parquet:"type"`
	AllowedAmount float64 `parquet:"allowed_amount"`
}

// ToMember converts a parquet row to the domain type.
func (r *MemberRow) ToMember() model.Member {
	var coded []string
	if r.CodedConditions != "" {
		coded = strings.Split(r.CodedConditions, "|")
	}
	return model.Member{
		ID:               r.MemberID,
		Age:              int(r.Age),
		Gender:           model.Gender(r.Gender),
		State:            r.State,
		Plan:             model.PlanTier(r.Plan),
		RiskScore:        r.RiskScore,
		ChronicCondition: r.ChronicCondition,
		CodedConditions:  coded,
		MemberMonths:     int(r.MemberMonths),
	}
}

// ToClaim converts a parquet row to the domain type. An unparseable service
// date yields a zero time, which validation reports as a field error.
func (r *ClaimRow) ToClaim() model.Claim {
	c := model.Claim{
		ID:            r.ClaimID,
		MemberID:      r.MemberID,
		Type:          model.ClaimType(r.Type),
		AllowedAmount: r.AllowedAmount,
	}
	if t := ParseDate(r.ServiceDate); t != nil {
		c.ServiceDate = *t
	}
	return c
}

const readBatchSize = 1024

// readParquet streams all rows of a parquet file of type T.
func readParquet[T any](path string) ([]T, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open parquet file: %w", err)
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat parquet file: %w", err)
	}
	pf, err := parquet.OpenFile(f, stat.Size())
	if err != nil {
		return nil, fmt.Errorf("open parquet: %w", err)
	}

	reader := parquet.NewGenericReader[T](pf)
	defer reader.Close()

	out := make([]T, 0, reader.NumRows())
	buf := make([]T, readBatchSize)
	for {
		n, readErr := reader.Read(buf)
		out = append(out, buf[:n]...)
		if readErr == io.EOF {
			break
		}
		if readErr != nil {
			return nil, fmt.Errorf("read parquet rows: %w", readErr)
		}
	}
	return out, nil
}

// ReadMembers loads all member rows from a parquet file.
func ReadMembers(path string) ([]model.Member, error) {
	rows, err := readParquet[MemberRow](path)
	if err != nil {
		return nil, err
	}
	members := make([]model.Member, 0, len(rows))
	for i := range rows {
		members = append(members, rows[i].ToMember())
	}
	return members, nil
}

// ReadClaims loads all claim rows from a parquet file.
func ReadClaims(path string) ([]model.Claim, error) {
	rows, err := readParquet[ClaimRow](path)
	if err != nil {
		return nil, err
	}
	claims := make([]model.Claim, 0, len(rows))
	for i := range rows {
		claims = append(claims, rows[i].ToClaim())
	}
	return claims, nil
}

// WriteMembers writes member rows to a parquet file (fixtures and exports).
func WriteMembers(path string, members []model.Member) error {
	rows := make([]MemberRow, 0, len(members))
	for _, m := range members {
		rows = append(rows, MemberRow{
			MemberID:         m.ID,
			Age:              int32(m.Age),
			Gender:           string(m.Gender),
			State:            m.State,
			Plan:             string(m.Plan),
			RiskScore:        m.RiskScore,
			ChronicCondition: m.ChronicCondition,
			CodedConditions:  strings.Join(m.CodedConditions, "|"),
			MemberMonths:     int32(m.MemberMonths),
		})
	}
	return writeParquet(path, rows)
}

// WriteClaims writes claim rows to a parquet file.
func WriteClaims(path string, claims []model.Claim) error {
	rows := make([]ClaimRow, 0, len(claims))
	for _, c := range claims {
		rows = append(rows, ClaimRow{
			ClaimID:       c.ID,
			MemberID:      c.MemberID,
			ServiceDate:   c.ServiceDate.Format("2006-01-02"),
			Type:          string(c.Type),
			AllowedAmount: c.AllowedAmount,
		})
	}
	return writeParquet(path, rows)
}

func writeParquet[T any](path string, rows []T) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create parquet file: %w", err)
	}
	w := parquet.NewGenericWriter[T](f)
	if _, err := w.Write(rows); err != nil {
		f.Close()
		return fmt.Errorf("write parquet rows: %w", err)
	}
	if err := w.Close(); err != nil {
		f.Close()
		return fmt.Errorf("close parquet writer: %w", err)
	}
	return f.Close()
}
