package leave

import (
	"context"
	"errors"

	"github.com/cmlabs-hris/hris-leave-go/internal/domain/leave"
)

// BalanceService derives balances from stored requests on every call.
type BalanceService struct {
	leave.LeaveRequestRepository
	leave.EmployeeRepository
	policies   []leave.LeavePolicy
	calculator *BalanceCalculator
}

func NewBalanceService(leaveRequestRepository leave.LeaveRequestRepository, employeeRepository leave.EmployeeRepository, policies []leave.LeavePolicy, calculator *BalanceCalculator) *BalanceService {
	if len(policies) == 0 {
		policies = leave.DefaultPolicies()
	}
	return &BalanceService{
		LeaveRequestRepository: leaveRequestRepository,
		EmployeeRepository:     employeeRepository,
		policies:               policies,
		calculator:             calculator,
	}
}

func (s *BalanceService) Policies() []leave.LeavePolicy {
	out := make([]leave.LeavePolicy, len(s.policies))
	copy(out, s.policies)
	return out
}

func (s *BalanceService) GetBalances(ctx context.Context, filter leave.BalanceFilter) ([]leave.LeaveBalance, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	requests, err := s.LeaveRequestRepository.List(ctx, leave.LeaveRequestFilter{EmployeeID: filter.EmployeeID})
	if err != nil {
		return nil, persistenceError("failed to list leave requests", err)
	}

	employees, err := s.employeesFor(ctx, filter)
	if err != nil {
		return nil, err
	}

	if filter.Department != "" {
		inDepartment := make(map[string]bool, len(employees))
		for _, emp := range employees {
			inDepartment[emp.ID] = true
		}
		requests = filterRequests(requests, func(r leave.LeaveRequest) bool {
			return inDepartment[r.EmployeeID]
		})
	}

	if filter.Year != 0 {
		requests = filterRequests(requests, func(r leave.LeaveRequest) bool {
			return r.StartDate.Year() == filter.Year
		})
	}

	return s.calculator.ComputeBalances(requests, s.policies, employees), nil
}

func (s *BalanceService) employeesFor(ctx context.Context, filter leave.BalanceFilter) ([]leave.Employee, error) {
	if filter.EmployeeID != "" {
		emp, err := s.EmployeeRepository.GetByID(ctx, filter.EmployeeID)
		switch {
		case err == nil:
		case errors.Is(err, leave.ErrEmployeeNotFound):
			// Requests may reference employees missing from the directory.
			emp = leave.Employee{ID: filter.EmployeeID}
		default:
			return nil, persistenceError("failed to get employee", err)
		}
		if filter.Department != "" && emp.Department != filter.Department {
			return []leave.Employee{}, nil
		}
		return []leave.Employee{emp}, nil
	}

	employees, err := s.EmployeeRepository.List(ctx)
	if err != nil {
		return nil, persistenceError("failed to list employees", err)
	}
	if filter.Department == "" {
		return employees, nil
	}

	filtered := make([]leave.Employee, 0, len(employees))
	for _, emp := range employees {
		if emp.Department == filter.Department {
			filtered = append(filtered, emp)
		}
	}
	return filtered, nil
}

func filterRequests(requests []leave.LeaveRequest, keep func(leave.LeaveRequest) bool) []leave.LeaveRequest {
	out := make([]leave.LeaveRequest, 0, len(requests))
	for _, r := range requests {
		if keep(r) {
			out = append(out, r)
		}
	}
	return out
}
