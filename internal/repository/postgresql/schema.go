package postgresql

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/hris-leave-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

// The employees table is owned by the HR directory; only the columns read
// here are created when it is missing.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS employees (
		id          TEXT PRIMARY KEY,
		full_name   TEXT NOT NULL,
		department  TEXT,
		deleted_at  TIMESTAMPTZ
	)`,
	`CREATE TABLE IF NOT EXISTS leave_requests (
		id                TEXT PRIMARY KEY,
		employee_id       TEXT NOT NULL,
		type              TEXT NOT NULL CHECK (type IN ('paid', 'unpaid', 'sick', 'maternity', 'paternity', 'other')),
		start_date        DATE NOT NULL,
		end_date          DATE NOT NULL,
		duration_days     INTEGER NOT NULL CHECK (duration_days > 0),
		reason            TEXT,
		status            TEXT NOT NULL CHECK (status IN ('pending', 'approved', 'rejected', 'canceled')),
		approved_by       TEXT,
		approved_at       TIMESTAMPTZ,
		rejected_by       TEXT,
		rejected_at       TIMESTAMPTZ,
		rejection_reason  TEXT,
		canceled_by       TEXT,
		canceled_at       TIMESTAMPTZ,
		created_by        TEXT NOT NULL,
		created_at        TIMESTAMPTZ NOT NULL,
		updated_at        TIMESTAMPTZ NOT NULL,
		CHECK (end_date >= start_date)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_leave_requests_employee ON leave_requests (employee_id)`,
	`CREATE INDEX IF NOT EXISTS idx_leave_requests_dates ON leave_requests (start_date, end_date)`,
}

// EnsureSchema creates the tables used by the repositories when absent.
func EnsureSchema(ctx context.Context, db *database.DB) error {
	return WithTransaction(ctx, db, func(tx pgx.Tx) error {
		for _, stmt := range schemaStatements {
			if _, err := tx.Exec(ctx, stmt); err != nil {
				return fmt.Errorf("apply schema: %w", err)
			}
		}
		return nil
	})
}
