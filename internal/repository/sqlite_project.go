package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/solplan/internal/db"
	"github.com/alexanderramin/solplan/internal/domain"
)

// SQLiteProjectRepo implements ProjectRepo using a SQLite database.
type SQLiteProjectRepo struct {
	db db.DBTX
}

func NewSQLiteProjectRepo(conn db.DBTX) *SQLiteProjectRepo {
	return &SQLiteProjectRepo{db: conn}
}

const projectColumns = `id, name, signature_date, capacity_kwc, technology, model, connection, subcontracted, created_at, updated_at`

func (r *SQLiteProjectRepo) Create(ctx context.Context, p *domain.Project) error {
	query := `INSERT INTO projects (` + projectColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		p.ID,
		p.Name,
		p.Config.SignatureDate.Format(dateLayout),
		p.Config.CapacityKWc,
		string(p.Config.Technology),
		string(p.Config.Model),
		string(p.Config.Connection),
		boolToInt(p.Config.Subcontracted),
		formatTimestamp(p.CreatedAt),
		formatTimestamp(p.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting project: %w", err)
	}
	return r.replaceOverrides(ctx, p.ID, p.Config.Overrides)
}

func (r *SQLiteProjectRepo) GetByID(ctx context.Context, id string) (*domain.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects WHERE id = ?`
	p, err := scanProject(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", ErrProjectNotFound, id)
		}
		return nil, err
	}
	if err := r.loadOverrides(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// List returns projects in creation order.
func (r *SQLiteProjectRepo) List(ctx context.Context) ([]*domain.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects ORDER BY created_at, rowid`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing projects: %w", err)
	}
	defer rows.Close()

	var projects []*domain.Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating projects: %w", err)
	}
	rows.Close()

	for _, p := range projects {
		if err := r.loadOverrides(ctx, p); err != nil {
			return nil, err
		}
	}
	return projects, nil
}

func (r *SQLiteProjectRepo) Update(ctx context.Context, p *domain.Project) error {
	query := `UPDATE projects SET name = ?, signature_date = ?, capacity_kwc = ?, technology = ?, model = ?,
		connection = ?, subcontracted = ?, updated_at = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		p.Name,
		p.Config.SignatureDate.Format(dateLayout),
		p.Config.CapacityKWc,
		string(p.Config.Technology),
		string(p.Config.Model),
		string(p.Config.Connection),
		boolToInt(p.Config.Subcontracted),
		formatTimestamp(p.UpdatedAt),
		p.ID,
	)
	if err != nil {
		return fmt.Errorf("updating project: %w", err)
	}
	if err := requireAffected(res, p.ID); err != nil {
		return err
	}
	return r.replaceOverrides(ctx, p.ID, p.Config.Overrides)
}

// Delete removes the project; overrides and phases cascade.
func (r *SQLiteProjectRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM projects WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting project: %w", err)
	}
	return requireAffected(res, id)
}

func (r *SQLiteProjectRepo) replaceOverrides(ctx context.Context, projectID string, overrides map[domain.PhaseID]domain.PhaseOverride) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM phase_overrides WHERE project_id = ?`, projectID); err != nil {
		return fmt.Errorf("clearing overrides: %w", err)
	}
	for _, id := range domain.OverridablePhases {
		ov, ok := overrides[id]
		if !ok {
			continue
		}
		_, err := r.db.ExecContext(ctx,
			`INSERT INTO phase_overrides (project_id, phase_id, enabled, manual_duration) VALUES (?, ?, ?, ?)`,
			projectID, string(id), nullableBoolToValue(ov.Enabled), nullableFloatToValue(ov.ManualDuration))
		if err != nil {
			return fmt.Errorf("inserting override %s: %w", id, err)
		}
	}
	return nil
}

func (r *SQLiteProjectRepo) loadOverrides(ctx context.Context, p *domain.Project) error {
	rows, err := r.db.QueryContext(ctx,
		`SELECT phase_id, enabled, manual_duration FROM phase_overrides WHERE project_id = ?`, p.ID)
	if err != nil {
		return fmt.Errorf("loading overrides: %w", err)
	}
	defer rows.Close()

	p.Config.Overrides = make(map[domain.PhaseID]domain.PhaseOverride)
	for rows.Next() {
		var phaseID string
		var enabled sql.NullInt64
		var manual sql.NullFloat64
		if err := rows.Scan(&phaseID, &enabled, &manual); err != nil {
			return fmt.Errorf("scanning override: %w", err)
		}
		p.Config.Overrides[domain.PhaseID(phaseID)] = domain.PhaseOverride{
			Enabled:        parseNullableBool(enabled),
			ManualDuration: parseNullableFloat(manual),
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterating overrides: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProject(row rowScanner) (*domain.Project, error) {
	var p domain.Project
	var signatureStr, technology, model, connection, createdAtStr, updatedAtStr string
	var subcontracted int

	err := row.Scan(
		&p.ID, &p.Name,
		&signatureStr, &p.Config.CapacityKWc,
		&technology, &model, &connection, &subcontracted,
		&createdAtStr, &updatedAtStr,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning project: %w", err)
	}

	p.Config.Technology = domain.TechnologyType(technology)
	p.Config.Model = domain.BusinessModel(model)
	p.Config.Connection = domain.ConnectionType(connection)
	p.Config.Subcontracted = intToBool(subcontracted)

	var parseErr error
	p.Config.SignatureDate, parseErr = time.Parse(dateLayout, signatureStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing signature_date: %w", parseErr)
	}
	p.CreatedAt, parseErr = time.Parse(time.RFC3339, createdAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing created_at: %w", parseErr)
	}
	p.UpdatedAt, parseErr = time.Parse(time.RFC3339, updatedAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", parseErr)
	}

	return &p, nil
}

func requireAffected(res sql.Result, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking affected rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrProjectNotFound, id)
	}
	return nil
}
