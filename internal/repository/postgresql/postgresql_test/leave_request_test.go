package postgresql_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cmlabs-hris/hris-leave-go/internal/domain/leave"
	"github.com/cmlabs-hris/hris-leave-go/internal/repository/postgresql"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLeaveRequest(id, employeeID string, start, end leave.Date) leave.LeaveRequest {
	now := time.Now().UTC().Truncate(time.Microsecond)
	return leave.LeaveRequest{
		ID:           id,
		EmployeeID:   employeeID,
		Type:         leave.LeaveTypePaid,
		StartDate:    start,
		EndDate:      end,
		DurationDays: start.DaysUntil(end) + 1,
		Status:       leave.LeaveRequestStatusPending,
		CreatedBy:    employeeID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func TestLeaveRequestRepository_CreateGetList(t *testing.T) {
	setup := NewTestDatabase(t)
	ctx := context.Background()
	repo := postgresql.NewLeaveRequestRepository(setup.DB)

	require.NoError(t, setup.SeedEmployee(ctx, "E1", "Alice Doe", "Engineering"))

	first := newLeaveRequest("R1", "E1", leave.NewDate(2024, 3, 4), leave.NewDate(2024, 3, 8))
	second := newLeaveRequest("R2", "E2", leave.NewDate(2024, 5, 1), leave.NewDate(2024, 5, 1))
	_, err := repo.Create(ctx, first)
	require.NoError(t, err)
	_, err = repo.Create(ctx, second)
	require.NoError(t, err)

	got, err := repo.GetByID(ctx, "R1")
	require.NoError(t, err)
	assert.Equal(t, "2024-03-04", got.StartDate.String())
	assert.Equal(t, "2024-03-08", got.EndDate.String())
	assert.Equal(t, 5, got.DurationDays)
	assert.Equal(t, first.CreatedAt, got.CreatedAt)
	require.NotNil(t, got.EmployeeName)
	assert.Equal(t, "Alice Doe", *got.EmployeeName)
	require.NotNil(t, got.Department)
	assert.Equal(t, "Engineering", *got.Department)

	orphan, err := repo.GetByID(ctx, "R2")
	require.NoError(t, err)
	assert.Nil(t, orphan.EmployeeName)

	all, err := repo.List(ctx, leave.LeaveRequestFilter{})
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "R2", all[0].ID)

	byEmployee, err := repo.List(ctx, leave.LeaveRequestFilter{EmployeeID: "E1"})
	require.NoError(t, err)
	require.Len(t, byEmployee, 1)

	_, err = repo.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, leave.ErrLeaveRequestNotFound)
}

func TestLeaveRequestRepository_UpdateCompareAndSet(t *testing.T) {
	setup := NewTestDatabase(t)
	ctx := context.Background()
	repo := postgresql.NewLeaveRequestRepository(setup.DB)

	req := newLeaveRequest("R1", "E1", leave.NewDate(2024, 3, 4), leave.NewDate(2024, 3, 8))
	_, err := repo.Create(ctx, req)
	require.NoError(t, err)

	approver := "M1"
	approvedAt := time.Now().UTC().Truncate(time.Microsecond)
	approved := req
	approved.Status = leave.LeaveRequestStatusApproved
	approved.ApprovedBy = &approver
	approved.ApprovedAt = &approvedAt

	require.NoError(t, repo.Update(ctx, approved, leave.LeaveRequestStatusPending))

	err = repo.Update(ctx, approved, leave.LeaveRequestStatusPending)
	assert.ErrorIs(t, err, leave.ErrInvalidTransition)

	stored, err := repo.GetByID(ctx, "R1")
	require.NoError(t, err)
	assert.Equal(t, leave.LeaveRequestStatusApproved, stored.Status)
	require.NotNil(t, stored.ApprovedAt)
	assert.True(t, approvedAt.Equal(*stored.ApprovedAt))

	missing := newLeaveRequest("R404", "E1", leave.NewDate(2024, 3, 4), leave.NewDate(2024, 3, 4))
	err = repo.Update(ctx, missing, leave.LeaveRequestStatusPending)
	assert.ErrorIs(t, err, leave.ErrLeaveRequestNotFound)
}

func TestLeaveRequestRepository_Delete(t *testing.T) {
	setup := NewTestDatabase(t)
	ctx := context.Background()
	repo := postgresql.NewLeaveRequestRepository(setup.DB)

	_, err := repo.Create(ctx, newLeaveRequest("R1", "E1", leave.NewDate(2024, 3, 4), leave.NewDate(2024, 3, 4)))
	require.NoError(t, err)

	require.NoError(t, repo.Delete(ctx, "R1"))
	assert.ErrorIs(t, repo.Delete(ctx, "R1"), leave.ErrLeaveRequestNotFound)
}

func TestWithTransaction_RollsBackOnError(t *testing.T) {
	setup := NewTestDatabase(t)
	ctx := context.Background()
	repo := postgresql.NewLeaveRequestRepository(setup.DB)
	boom := errors.New("boom")

	err := postgresql.WithTransaction(ctx, setup.DB, func(tx pgx.Tx) error {
		txCtx := postgresql.ContextWithTx(ctx, tx)
		if _, err := repo.Create(txCtx, newLeaveRequest("R1", "E1", leave.NewDate(2024, 3, 4), leave.NewDate(2024, 3, 4))); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	_, err = repo.GetByID(ctx, "R1")
	assert.ErrorIs(t, err, leave.ErrLeaveRequestNotFound)
}

func TestEmployeeRepository(t *testing.T) {
	setup := NewTestDatabase(t)
	ctx := context.Background()
	repo := postgresql.NewEmployeeRepository(setup.DB)

	require.NoError(t, setup.SeedEmployee(ctx, "E2", "Bob Roe", ""))
	require.NoError(t, setup.SeedEmployee(ctx, "E1", "Alice Doe", "Engineering"))

	emp, err := repo.GetByID(ctx, "E2")
	require.NoError(t, err)
	assert.Equal(t, "Bob Roe", emp.FullName)
	assert.Empty(t, emp.Department)

	all, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "E1", all[0].ID)

	_, err = repo.GetByID(ctx, "E404")
	assert.ErrorIs(t, err, leave.ErrEmployeeNotFound)
}
