package leave

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultPolicies_CoverEveryType(t *testing.T) {
	policies := DefaultPolicies()

	assert.Len(t, policies, len(LeaveTypes))
	for i, p := range policies {
		assert.Equal(t, LeaveTypes[i], p.Type)
	}
	assert.True(t, policies[1].IsUnlimited())
	assert.False(t, policies[0].IsUnlimited())
}

func TestMergePolicies(t *testing.T) {
	base := []LeavePolicy{
		{Type: LeaveTypePaid, AllottedDays: 25},
		{Type: LeaveTypeSick, AllottedDays: Unlimited},
	}

	merged := MergePolicies(base, map[LeaveType]int{
		LeaveTypeSick:  10,
		LeaveTypeOther: Unlimited,
	})

	assert.Equal(t, []LeavePolicy{
		{Type: LeaveTypePaid, AllottedDays: 25},
		{Type: LeaveTypeSick, AllottedDays: 10},
		{Type: LeaveTypeOther, AllottedDays: Unlimited},
	}, merged)

	// base is not modified
	assert.Equal(t, Unlimited, base[1].AllottedDays)
}

func TestMergePolicies_NoOverrides(t *testing.T) {
	assert.Equal(t, DefaultPolicies(), MergePolicies(DefaultPolicies(), nil))
}

func TestMergePolicies_AppendsMissingTypesInDisplayOrder(t *testing.T) {
	base := []LeavePolicy{{Type: LeaveTypePaid, AllottedDays: 25}}

	merged := MergePolicies(base, map[LeaveType]int{
		LeaveTypeOther:     3,
		LeaveTypeSick:      Unlimited,
		LeaveTypeMaternity: 90,
	})

	assert.Equal(t, []LeavePolicy{
		{Type: LeaveTypePaid, AllottedDays: 25},
		{Type: LeaveTypeSick, AllottedDays: Unlimited},
		{Type: LeaveTypeMaternity, AllottedDays: 90},
		{Type: LeaveTypeOther, AllottedDays: 3},
	}, merged)
}
