package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/solplan/internal/db"
	"github.com/alexanderramin/solplan/internal/domain"
)

// SQLitePhaseRepo implements PhaseRepo using a SQLite database.
type SQLitePhaseRepo struct {
	db db.DBTX
}

func NewSQLitePhaseRepo(conn db.DBTX) *SQLitePhaseRepo {
	return &SQLitePhaseRepo{db: conn}
}

// ReplaceForProject is atomic only when conn is a transaction; callers
// run it inside a UnitOfWork.
func (r *SQLitePhaseRepo) ReplaceForProject(ctx context.Context, projectID string, phases []domain.Phase) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM phases WHERE project_id = ?`, projectID); err != nil {
		return fmt.Errorf("clearing phases: %w", err)
	}
	query := `INSERT INTO phases (project_id, seq, phase_id, name, start_date, end_date, duration_months, color, milestone)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	for i, ph := range phases {
		_, err := r.db.ExecContext(ctx, query,
			projectID,
			i,
			string(ph.ID),
			ph.Name,
			ph.StartDate.Format(dateLayout),
			ph.EndDate.Format(dateLayout),
			ph.DurationMonths,
			ph.Color,
			boolToInt(ph.Milestone),
		)
		if err != nil {
			return fmt.Errorf("inserting phase %s: %w", ph.ID, err)
		}
	}
	return nil
}

func (r *SQLitePhaseRepo) ListByProject(ctx context.Context, projectID string) ([]domain.Phase, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT phase_id, name, start_date, end_date, duration_months, color, milestone
		FROM phases WHERE project_id = ? ORDER BY seq`, projectID)
	if err != nil {
		return nil, fmt.Errorf("listing phases: %w", err)
	}
	defer rows.Close()

	var phases []domain.Phase
	for rows.Next() {
		var ph domain.Phase
		var id, startStr, endStr string
		var milestone int
		if err := rows.Scan(&id, &ph.Name, &startStr, &endStr, &ph.DurationMonths, &ph.Color, &milestone); err != nil {
			return nil, fmt.Errorf("scanning phase: %w", err)
		}
		ph.ID = domain.PhaseID(id)
		ph.Milestone = intToBool(milestone)
		if ph.StartDate, err = time.Parse(dateLayout, startStr); err != nil {
			return nil, fmt.Errorf("parsing start_date: %w", err)
		}
		if ph.EndDate, err = time.Parse(dateLayout, endStr); err != nil {
			return nil, fmt.Errorf("parsing end_date: %w", err)
		}
		phases = append(phases, ph)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating phases: %w", err)
	}
	return phases, nil
}
