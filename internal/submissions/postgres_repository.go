package submissions

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// pgxQuerier is the subset of *pgxpool.Pool the repository needs.
type pgxQuerier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// PostgresRepository stores submissions in the contact_submissions table.
type PostgresRepository struct {
	pool pgxQuerier
}

// NewPostgresRepository initializes a repo backed by pgxpool.
func NewPostgresRepository(pool pgxQuerier) *PostgresRepository {
	if pool == nil {
		panic("submissions: pgx pool required")
	}
	return &PostgresRepository{pool: pool}
}

const selectColumns = `id, form, name, email, phone, service, event_type, event_date, message, locale, submission_date`

// Create inserts a new row; the database assigns submission_date.
func (r *PostgresRepository) Create(ctx context.Context, req *CreateSubmissionRequest) (*Submission, error) {
	id := uuid.New()
	query := `
		INSERT INTO contact_submissions (id, form, name, email, phone, service, event_type, event_date, message, locale)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING submission_date
	`
	var submittedAt time.Time
	if err := r.pool.QueryRow(ctx, query,
		id,
		string(req.Form),
		req.Name,
		req.Email,
		req.Phone,
		req.Service,
		req.EventType,
		req.EventDate,
		req.Message,
		req.Locale,
	).Scan(&submittedAt); err != nil {
		return nil, fmt.Errorf("submissions: insert failed: %w", err)
	}

	return &Submission{
		ID:             id.String(),
		Form:           req.Form,
		Name:           req.Name,
		Email:          req.Email,
		Phone:          req.Phone,
		Service:        req.Service,
		EventType:      req.EventType,
		EventDate:      req.EventDate,
		Message:        req.Message,
		Locale:         req.Locale,
		SubmissionDate: submittedAt.UTC(),
	}, nil
}

// GetByID fetches one submission.
func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*Submission, error) {
	query := `SELECT ` + selectColumns + ` FROM contact_submissions WHERE id = $1`
	sub, err := scanSubmission(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrSubmissionNotFound
		}
		return nil, fmt.Errorf("submissions: select failed: %w", err)
	}
	return sub, nil
}

// List returns every submission, newest first.
func (r *PostgresRepository) List(ctx context.Context) ([]*Submission, error) {
	query := `SELECT ` + selectColumns + ` FROM contact_submissions ORDER BY submission_date DESC`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("submissions: list failed: %w", err)
	}
	defer rows.Close()

	out := []*Submission{}
	for rows.Next() {
		sub, err := scanSubmission(rows)
		if err != nil {
			return nil, fmt.Errorf("submissions: scan failed: %w", err)
		}
		out = append(out, sub)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("submissions: list failed: %w", err)
	}
	return out, nil
}

func scanSubmission(row pgx.Row) (*Submission, error) {
	var (
		sub  Submission
		form string
	)
	if err := row.Scan(
		&sub.ID,
		&form,
		&sub.Name,
		&sub.Email,
		&sub.Phone,
		&sub.Service,
		&sub.EventType,
		&sub.EventDate,
		&sub.Message,
		&sub.Locale,
		&sub.SubmissionDate,
	); err != nil {
		return nil, err
	}
	sub.Form = FormKind(form)
	sub.SubmissionDate = sub.SubmissionDate.UTC()
	return &sub, nil
}
