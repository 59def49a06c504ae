package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/geoattend/attendance-backend-go/internal/domain/leave"
	"github.com/geoattend/attendance-backend-go/internal/pkg/database"
)

type shortLeaveRepository struct {
	db *database.DB
}

func NewShortLeaveRepository(db *database.DB) leave.Repository {
	return &shortLeaveRepository{db: db}
}

const shortLeaveColumns = `
	id, company_id, employee_id, date, exit_time, return_time, reason, created_at, updated_at
`

func scanShortLeave(row pgx.Row) (leave.ShortLeave, error) {
	var l leave.ShortLeave
	err := row.Scan(
		&l.ID, &l.CompanyID, &l.EmployeeID, &l.Date,
		&l.ExitTime, &l.ReturnTime, &l.Reason, &l.CreatedAt, &l.UpdatedAt,
	)
	return l, err
}

// Create implements leave.Repository.
func (s *shortLeaveRepository) Create(ctx context.Context, l leave.ShortLeave) (leave.ShortLeave, error) {
	q := GetQuerier(ctx, s.db)

	query := `
		INSERT INTO short_leaves (
			id, company_id, employee_id, date, exit_time, return_time, reason
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7
		) RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		l.ID, l.CompanyID, l.EmployeeID, l.Date, l.ExitTime, l.ReturnTime, l.Reason,
	).Scan(&l.CreatedAt, &l.UpdatedAt)
	if err != nil {
		return leave.ShortLeave{}, fmt.Errorf("failed to create short leave: %w", err)
	}

	return l, nil
}

// GetByID implements leave.Repository.
func (s *shortLeaveRepository) GetByID(ctx context.Context, id string, companyID string) (leave.ShortLeave, error) {
	q := GetQuerier(ctx, s.db)

	query := `
		SELECT ` + shortLeaveColumns + `
		FROM short_leaves
		WHERE id = $1
		  AND company_id = $2
	`

	l, err := scanShortLeave(q.QueryRow(ctx, query, id, companyID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return leave.ShortLeave{}, leave.ErrLeaveNotFound
		}
		return leave.ShortLeave{}, fmt.Errorf("failed to get short leave: %w", err)
	}

	return l, nil
}

// GetOpenByEmployee implements leave.Repository.
func (s *shortLeaveRepository) GetOpenByEmployee(ctx context.Context, employeeID string, companyID string) (*leave.ShortLeave, error) {
	q := GetQuerier(ctx, s.db)

	query := `
		SELECT ` + shortLeaveColumns + `
		FROM short_leaves
		WHERE employee_id = $1
		  AND company_id = $2
		  AND return_time IS NULL
		ORDER BY exit_time DESC
		LIMIT 1
	`

	l, err := scanShortLeave(q.QueryRow(ctx, query, employeeID, companyID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get open short leave: %w", err)
	}

	return &l, nil
}

// Update implements leave.Repository.
func (s *shortLeaveRepository) Update(ctx context.Context, l leave.ShortLeave) error {
	q := GetQuerier(ctx, s.db)

	query := `
		UPDATE short_leaves SET
			exit_time = $2,
			return_time = $3,
			reason = $4,
			updated_at = NOW()
		WHERE id = $1
	`

	_, err := q.Exec(ctx, query, l.ID, l.ExitTime, l.ReturnTime, l.Reason)
	if err != nil {
		return fmt.Errorf("failed to update short leave: %w", err)
	}
	return nil
}

// ListByRange implements leave.Repository.
func (s *shortLeaveRepository) ListByRange(ctx context.Context, employeeID string, from, to time.Time, companyID string) ([]leave.ShortLeave, error) {
	q := GetQuerier(ctx, s.db)

	query := `
		SELECT ` + shortLeaveColumns + `
		FROM short_leaves
		WHERE company_id = $1
		  AND date BETWEEN $2 AND $3
		  AND ($4 = '' OR employee_id = $4)
		ORDER BY exit_time ASC
	`

	rows, err := q.Query(ctx, query, companyID, from, to, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list short leaves: %w", err)
	}
	defer rows.Close()

	var leaves []leave.ShortLeave
	for rows.Next() {
		l, err := scanShortLeave(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan short leave: %w", err)
		}
		leaves = append(leaves, l)
	}

	return leaves, rows.Err()
}
