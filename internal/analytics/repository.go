package analytics

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// Repository defines read access to the aggregate queries backing the
// admin dashboard. It runs raw SQL against the same database the ORM
// writes to.
type Repository interface {
	Totals(ctx context.Context) (*Totals, error)
	SubmissionsByMonth(ctx context.Context) ([]MonthlyCount, error)
	TopTags(ctx context.Context, limit int) ([]TagCount, error)
	TopTech(ctx context.Context, limit int) ([]TechCount, error)
}

type postgresRepository struct {
	db *sqlx.DB
}

// NewRepository creates a PostgreSQL-backed analytics repository.
func NewRepository(db *sqlx.DB) Repository {
	return &postgresRepository{db: db}
}

func (r *postgresRepository) Totals(ctx context.Context) (*Totals, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM projects)                             AS total_projects,
			(SELECT COUNT(*) FROM projects WHERE status = 'pending')    AS pending_projects,
			(SELECT COUNT(*) FROM projects WHERE status = 'approved')   AS approved_projects,
			(SELECT COUNT(*) FROM projects WHERE status = 'rejected')   AS rejected_projects,
			(SELECT COUNT(*) FROM users)                                AS total_users
	`

	var totals Totals
	if err := r.db.GetContext(ctx, &totals, query); err != nil {
		return nil, fmt.Errorf("failed to load totals: %w", err)
	}
	return &totals, nil
}

func (r *postgresRepository) SubmissionsByMonth(ctx context.Context) ([]MonthlyCount, error) {
	query := `
		SELECT submission_month AS month, COUNT(*) AS count
		FROM projects
		GROUP BY submission_month
		ORDER BY submission_month
	`

	var rows []MonthlyCount
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("failed to load monthly submissions: %w", err)
	}
	return rows, nil
}

func (r *postgresRepository) TopTags(ctx context.Context, limit int) ([]TagCount, error) {
	query := `
		SELECT t.name AS name, COUNT(*) AS count
		FROM tags t
		JOIN project_tags pt ON pt.tag_id = t.id
		JOIN projects p ON p.id = pt.project_id
		WHERE p.status = 'approved'
		GROUP BY t.name
		ORDER BY count DESC, t.name
		LIMIT $1
	`

	var rows []TagCount
	if err := r.db.SelectContext(ctx, &rows, query, limit); err != nil {
		return nil, fmt.Errorf("failed to load top tags: %w", err)
	}
	return rows, nil
}

func (r *postgresRepository) TopTech(ctx context.Context, limit int) ([]TechCount, error) {
	// tech_stack is stored as a JSON array column; unnest it per project.
	query := `
		SELECT entry AS tech, COUNT(*) AS count
		FROM projects p,
		     jsonb_array_elements_text(p.tech_stack::jsonb) AS entry
		WHERE p.status = 'approved'
		GROUP BY entry
		ORDER BY count DESC, entry
		LIMIT $1
	`

	var rows []TechCount
	if err := r.db.SelectContext(ctx, &rows, query, limit); err != nil {
		return nil, fmt.Errorf("failed to load top tech: %w", err)
	}
	return rows, nil
}
