package leave

import (
	"context"
	"testing"

	"github.com/cmlabs-hris/hris-leave-go/internal/domain/leave"
	"github.com/cmlabs-hris/hris-leave-go/internal/pkg/validator"
	"github.com/cmlabs-hris/hris-leave-go/internal/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestBalanceService(t *testing.T) (*BalanceService, *RequestService) {
	t.Helper()
	db := memory.NewDB()
	db.SeedEmployees(
		leave.Employee{ID: "E1", FullName: "Alice Doe", Department: "Engineering"},
		leave.Employee{ID: "E2", FullName: "Bob Roe", Department: "Sales"},
	)
	requestRepo := memory.NewLeaveRequestRepository(db)
	requests := NewRequestService(requestRepo, nil, WithIDGenerator(sequentialIDs()))
	balances := NewBalanceService(requestRepo, memory.NewEmployeeRepository(db), leave.DefaultPolicies(), NewBalanceCalculator())
	return balances, requests
}

func TestBalanceService_ApprovedRequestIsUsed(t *testing.T) {
	balances, requests := newTestBalanceService(t)
	ctx := context.Background()

	created, err := requests.CreateRequest(ctx, createReq("E1", "2024-03-04", "2024-03-08"))
	require.NoError(t, err)

	got, err := balances.GetBalances(ctx, leave.BalanceFilter{EmployeeID: "E1"})
	require.NoError(t, err)
	paid := balanceOf(t, got, "E1", leave.LeaveTypePaid)
	assert.Equal(t, 0, paid.Used)
	assert.Equal(t, 5, paid.Pending)
	assert.Equal(t, 25, paid.Remaining)

	_, err = requests.Approve(ctx, created.ID, "M1")
	require.NoError(t, err)

	got, err = balances.GetBalances(ctx, leave.BalanceFilter{EmployeeID: "E1"})
	require.NoError(t, err)
	paid = balanceOf(t, got, "E1", leave.LeaveTypePaid)
	assert.Equal(t, 5, paid.Used)
	assert.Equal(t, 0, paid.Pending)
	assert.Equal(t, 20, paid.Remaining)
}

func TestBalanceService_AllEmployees(t *testing.T) {
	balances, _ := newTestBalanceService(t)

	got, err := balances.GetBalances(context.Background(), leave.BalanceFilter{})
	require.NoError(t, err)
	assert.Len(t, got, 2*len(leave.DefaultPolicies()))
	assert.Equal(t, "E1", got[0].EmployeeID)
}

func TestBalanceService_DepartmentFilter(t *testing.T) {
	balances, requests := newTestBalanceService(t)
	ctx := context.Background()

	_, err := requests.CreateRequest(ctx, createReq("E2", "2024-03-04", "2024-03-04"))
	require.NoError(t, err)

	got, err := balances.GetBalances(ctx, leave.BalanceFilter{Department: "Sales"})
	require.NoError(t, err)
	require.Len(t, got, len(leave.DefaultPolicies()))
	for _, b := range got {
		assert.Equal(t, "E2", b.EmployeeID)
		assert.Equal(t, "Sales", b.Department)
	}

	got, err = balances.GetBalances(ctx, leave.BalanceFilter{EmployeeID: "E2", Department: "Engineering"})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestBalanceService_YearFilter(t *testing.T) {
	balances, requests := newTestBalanceService(t)
	ctx := context.Background()

	old, err := requests.CreateRequest(ctx, createReq("E1", "2023-12-27", "2023-12-29"))
	require.NoError(t, err)
	_, err = requests.Approve(ctx, old.ID, "M1")
	require.NoError(t, err)

	got, err := balances.GetBalances(ctx, leave.BalanceFilter{EmployeeID: "E1", Year: 2024})
	require.NoError(t, err)
	assert.Equal(t, 0, balanceOf(t, got, "E1", leave.LeaveTypePaid).Used)

	got, err = balances.GetBalances(ctx, leave.BalanceFilter{EmployeeID: "E1", Year: 2023})
	require.NoError(t, err)
	assert.Equal(t, 3, balanceOf(t, got, "E1", leave.LeaveTypePaid).Used)
}

func TestBalanceService_UnknownEmployeeStillReported(t *testing.T) {
	balances, _ := newTestBalanceService(t)

	got, err := balances.GetBalances(context.Background(), leave.BalanceFilter{EmployeeID: "E404"})
	require.NoError(t, err)
	require.Len(t, got, len(leave.DefaultPolicies()))
	assert.Equal(t, "E404", got[0].EmployeeID)
	assert.Empty(t, got[0].EmployeeName)
}

func TestBalanceService_InvalidYear(t *testing.T) {
	balances, _ := newTestBalanceService(t)

	_, err := balances.GetBalances(context.Background(), leave.BalanceFilter{Year: -1})
	var vErrs validator.ValidationErrors
	assert.ErrorAs(t, err, &vErrs)
}

func TestBalanceService_PoliciesAreCopied(t *testing.T) {
	balances, _ := newTestBalanceService(t)

	policies := balances.Policies()
	policies[0].AllottedDays = 999

	assert.Equal(t, leave.DefaultPolicies(), balances.Policies())
}
