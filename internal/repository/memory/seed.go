package memory

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/cmlabs-hris/hris-leave-go/internal/domain/leave"
	"github.com/cmlabs-hris/hris-leave-go/internal/pkg/validator"
)

// LoadEmployees reads a JSON array of {id, full_name, department} entries.
func LoadEmployees(path string) ([]leave.Employee, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read employee seed: %w", err)
	}

	var employees []leave.Employee
	if err := json.Unmarshal(data, &employees); err != nil {
		return nil, fmt.Errorf("decode employee seed %s: %w", path, err)
	}

	seen := make(map[string]bool, len(employees))
	for i, emp := range employees {
		if validator.IsEmpty(emp.ID) {
			return nil, fmt.Errorf("employee seed %s: entry %d has no id", path, i)
		}
		if seen[emp.ID] {
			return nil, fmt.Errorf("employee seed %s: duplicate id %q", path, emp.ID)
		}
		seen[emp.ID] = true
	}

	return employees, nil
}
