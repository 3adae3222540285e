package leave

// DefaultPolicies returns the built-in annual allotments.
func DefaultPolicies() []LeavePolicy {
	return []LeavePolicy{
		{Type: LeaveTypePaid, AllottedDays: 25},
		{Type: LeaveTypeUnpaid, AllottedDays: Unlimited},
		{Type: LeaveTypeSick, AllottedDays: Unlimited},
		{Type: LeaveTypeMaternity, AllottedDays: 112},
		{Type: LeaveTypePaternity, AllottedDays: 25},
		{Type: LeaveTypeOther, AllottedDays: 5},
	}
}

// MergePolicies overlays overrides on base, keyed by type. Types absent from
// base are appended in LeaveTypes order.
func MergePolicies(base []LeavePolicy, overrides map[LeaveType]int) []LeavePolicy {
	merged := make([]LeavePolicy, 0, len(base))
	seen := make(map[LeaveType]bool, len(base))
	for _, p := range base {
		if days, ok := overrides[p.Type]; ok {
			p.AllottedDays = days
		}
		seen[p.Type] = true
		merged = append(merged, p)
	}
	for _, t := range LeaveTypes {
		if days, ok := overrides[t]; ok && !seen[t] {
			merged = append(merged, LeavePolicy{Type: t, AllottedDays: days})
		}
	}
	return merged
}
