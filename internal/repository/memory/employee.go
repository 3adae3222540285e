package memory

import (
	"context"
	"sort"

	"github.com/cmlabs-hris/hris-leave-go/internal/domain/leave"
)

type employeeRepositoryImpl struct {
	db *DB
}

func NewEmployeeRepository(db *DB) leave.EmployeeRepository {
	return &employeeRepositoryImpl{db: db}
}

func (e *employeeRepositoryImpl) GetByID(ctx context.Context, id string) (leave.Employee, error) {
	if err := ctx.Err(); err != nil {
		return leave.Employee{}, err
	}

	e.db.mu.RLock()
	defer e.db.mu.RUnlock()

	emp, ok := e.db.employees[id]
	if !ok {
		return leave.Employee{}, leave.ErrEmployeeNotFound
	}
	return emp, nil
}

func (e *employeeRepositoryImpl) List(ctx context.Context) ([]leave.Employee, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	e.db.mu.RLock()
	defer e.db.mu.RUnlock()

	employees := make([]leave.Employee, 0, len(e.db.employees))
	for _, emp := range e.db.employees {
		employees = append(employees, emp)
	}
	sort.Slice(employees, func(i, j int) bool {
		if employees[i].FullName != employees[j].FullName {
			return employees[i].FullName < employees[j].FullName
		}
		return employees[i].ID < employees[j].ID
	})
	return employees, nil
}
