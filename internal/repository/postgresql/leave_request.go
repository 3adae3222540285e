package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cmlabs-hris/hris-leave-go/internal/domain/leave"
	"github.com/cmlabs-hris/hris-leave-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type leaveRequestRepositoryImpl struct {
	db *database.DB
}

func NewLeaveRequestRepository(db *database.DB) leave.LeaveRequestRepository {
	return &leaveRequestRepositoryImpl{db: db}
}

const leaveRequestColumns = `
	lr.id, lr.employee_id, lr.type,
	lr.start_date, lr.end_date, lr.duration_days,
	lr.reason, lr.status,
	lr.approved_by, lr.approved_at,
	lr.rejected_by, lr.rejected_at, lr.rejection_reason,
	lr.canceled_by, lr.canceled_at,
	lr.created_by, lr.created_at, lr.updated_at,
	e.full_name, e.department`

const leaveRequestFrom = `
	FROM leave_requests lr
	LEFT JOIN employees e ON lr.employee_id = e.id`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanLeaveRequest(row rowScanner) (leave.LeaveRequest, error) {
	var (
		req                leave.LeaveRequest
		startDate, endDate time.Time
	)

	err := row.Scan(
		&req.ID, &req.EmployeeID, &req.Type,
		&startDate, &endDate, &req.DurationDays,
		&req.Reason, &req.Status,
		&req.ApprovedBy, &req.ApprovedAt,
		&req.RejectedBy, &req.RejectedAt, &req.RejectionReason,
		&req.CanceledBy, &req.CanceledAt,
		&req.CreatedBy, &req.CreatedAt, &req.UpdatedAt,
		&req.EmployeeName, &req.Department,
	)
	if err != nil {
		return leave.LeaveRequest{}, err
	}

	req.StartDate = leave.DateOf(startDate)
	req.EndDate = leave.DateOf(endDate)
	req.CreatedAt = req.CreatedAt.UTC()
	req.UpdatedAt = req.UpdatedAt.UTC()

	return req, nil
}

func (r *leaveRequestRepositoryImpl) Create(ctx context.Context, request leave.LeaveRequest) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO leave_requests (
			id, employee_id, type,
			start_date, end_date, duration_days,
			reason, status,
			created_by, created_at, updated_at
		) VALUES (
			$1, $2, $3,
			$4, $5, $6,
			$7, $8,
			$9, $10, $11
		)
	`

	_, err := q.Exec(ctx, query,
		request.ID, request.EmployeeID, request.Type,
		request.StartDate.Time(), request.EndDate.Time(), request.DurationDays,
		request.Reason, request.Status,
		request.CreatedBy, request.CreatedAt, request.UpdatedAt,
	)
	if err != nil {
		return leave.LeaveRequest{}, fmt.Errorf("failed to insert leave request: %w", err)
	}

	return request, nil
}

func (r *leaveRequestRepositoryImpl) GetByID(ctx context.Context, id string) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + leaveRequestColumns + leaveRequestFrom + ` WHERE lr.id = $1`

	req, err := scanLeaveRequest(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
		}
		return leave.LeaveRequest{}, err
	}

	return req, nil
}

func (r *leaveRequestRepositoryImpl) List(ctx context.Context, filter leave.LeaveRequestFilter) ([]leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	// Build WHERE clause
	conditions := make([]string, 0, 3)
	args := make([]interface{}, 0, 3)
	argIndex := 1

	if filter.EmployeeID != "" {
		conditions = append(conditions, fmt.Sprintf("lr.employee_id = $%d", argIndex))
		args = append(args, filter.EmployeeID)
		argIndex++
	}

	if filter.Status != "" {
		conditions = append(conditions, fmt.Sprintf("lr.status = $%d", argIndex))
		args = append(args, filter.Status)
		argIndex++
	}

	if filter.Type != "" {
		conditions = append(conditions, fmt.Sprintf("lr.type = $%d", argIndex))
		args = append(args, filter.Type)
		argIndex++
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	query := `SELECT ` + leaveRequestColumns + leaveRequestFrom + whereClause + ` ORDER BY lr.start_date DESC, lr.created_at DESC, lr.id ASC`

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	requests := make([]leave.LeaveRequest, 0)
	for rows.Next() {
		req, err := scanLeaveRequest(rows)
		if err != nil {
			return nil, err
		}
		requests = append(requests, req)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return requests, nil
}

func (r *leaveRequestRepositoryImpl) Update(ctx context.Context, request leave.LeaveRequest, expected leave.LeaveRequestStatus) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE leave_requests SET
			type = $3,
			start_date = $4,
			end_date = $5,
			duration_days = $6,
			reason = $7,
			status = $8,
			approved_by = $9,
			approved_at = $10,
			rejected_by = $11,
			rejected_at = $12,
			rejection_reason = $13,
			canceled_by = $14,
			canceled_at = $15,
			updated_at = $16
		WHERE id = $1 AND status = $2
	`

	commandTag, err := q.Exec(ctx, query,
		request.ID, expected,
		request.Type,
		request.StartDate.Time(), request.EndDate.Time(), request.DurationDays,
		request.Reason, request.Status,
		request.ApprovedBy, request.ApprovedAt,
		request.RejectedBy, request.RejectedAt, request.RejectionReason,
		request.CanceledBy, request.CanceledAt,
		request.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update leave request with id %s: %w", request.ID, err)
	}

	if commandTag.RowsAffected() == 1 {
		return nil
	}

	var current leave.LeaveRequestStatus
	err = q.QueryRow(ctx, `SELECT status FROM leave_requests WHERE id = $1`, request.ID).Scan(&current)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.ErrLeaveRequestNotFound
		}
		return err
	}
	return fmt.Errorf("%w: status is %s, expected %s", leave.ErrInvalidTransition, current, expected)
}

func (r *leaveRequestRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)
	query := `
		DELETE FROM leave_requests
		WHERE id = $1
	`
	commandTag, err := q.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if commandTag.RowsAffected() != 1 {
		return leave.ErrLeaveRequestNotFound
	}
	return nil
}
