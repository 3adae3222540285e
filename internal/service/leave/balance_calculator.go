package leave

import (
	"sort"

	"github.com/cmlabs-hris/hris-leave-go/internal/domain/leave"
)

type balanceKey struct {
	employeeID string
	leaveType  leave.LeaveType
}

type BalanceCalculator struct {
}

func NewBalanceCalculator() *BalanceCalculator {
	return &BalanceCalculator{}
}

// ComputeBalances emits one balance per employee and policy type. Approved
// requests count as used, pending ones as pending; rejected and canceled
// requests are ignored. Employees that only appear in requests are included
// with an empty name. Requests whose type has no policy are skipped.
func (c *BalanceCalculator) ComputeBalances(requests []leave.LeaveRequest, policies []leave.LeavePolicy, employees []leave.Employee) []leave.LeaveBalance {
	used := make(map[balanceKey]int)
	pending := make(map[balanceKey]int)

	for _, req := range requests {
		key := balanceKey{employeeID: req.EmployeeID, leaveType: req.Type}
		switch req.Status {
		case leave.LeaveRequestStatusApproved:
			used[key] += max(req.DurationDays, 0)
		case leave.LeaveRequestStatusPending:
			pending[key] += max(req.DurationDays, 0)
		}
	}

	directory := make([]leave.Employee, 0, len(employees))
	known := make(map[string]bool, len(employees))
	for _, emp := range employees {
		if known[emp.ID] {
			continue
		}
		known[emp.ID] = true
		directory = append(directory, emp)
	}
	for _, req := range requests {
		if known[req.EmployeeID] {
			continue
		}
		known[req.EmployeeID] = true
		emp := leave.Employee{ID: req.EmployeeID}
		if req.EmployeeName != nil {
			emp.FullName = *req.EmployeeName
		}
		if req.Department != nil {
			emp.Department = *req.Department
		}
		directory = append(directory, emp)
	}

	sort.SliceStable(directory, func(i, j int) bool {
		if directory[i].FullName != directory[j].FullName {
			return directory[i].FullName < directory[j].FullName
		}
		return directory[i].ID < directory[j].ID
	})

	balances := make([]leave.LeaveBalance, 0, len(directory)*len(policies))
	for _, emp := range directory {
		for _, policy := range policies {
			key := balanceKey{employeeID: emp.ID, leaveType: policy.Type}
			balances = append(balances, c.balanceFor(emp, policy, used[key], pending[key]))
		}
	}

	return balances
}

func (c *BalanceCalculator) balanceFor(emp leave.Employee, policy leave.LeavePolicy, used, pending int) leave.LeaveBalance {
	balance := leave.LeaveBalance{
		EmployeeID:   emp.ID,
		EmployeeName: emp.FullName,
		Department:   emp.Department,
		Type:         policy.Type,
		Used:         used,
		Pending:      pending,
	}

	if policy.IsUnlimited() {
		balance.Total = leave.Unlimited
		balance.Remaining = leave.Unlimited
		balance.Unlimited = true
		return balance
	}

	balance.Total = max(policy.AllottedDays, 0)
	balance.Remaining = max(balance.Total-used, 0)
	return balance
}
