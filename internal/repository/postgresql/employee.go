package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/hris-leave-go/internal/domain/leave"
	"github.com/cmlabs-hris/hris-leave-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type employeeRepositoryImpl struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) leave.EmployeeRepository {
	return &employeeRepositoryImpl{db: db}
}

// GetByID implements leave.EmployeeRepository.
func (e *employeeRepositoryImpl) GetByID(ctx context.Context, id string) (leave.Employee, error) {
	q := GetQuerier(ctx, e.db)

	query := `
		SELECT id, full_name, COALESCE(department, '')
		FROM employees
		WHERE id = $1 AND deleted_at IS NULL
	`

	var emp leave.Employee
	err := q.QueryRow(ctx, query, id).Scan(&emp.ID, &emp.FullName, &emp.Department)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.Employee{}, leave.ErrEmployeeNotFound
		}
		return leave.Employee{}, fmt.Errorf("failed to get employee with id %s: %w", id, err)
	}

	return emp, nil
}

// List implements leave.EmployeeRepository.
func (e *employeeRepositoryImpl) List(ctx context.Context) ([]leave.Employee, error) {
	q := GetQuerier(ctx, e.db)

	query := `
		SELECT id, full_name, COALESCE(department, '')
		FROM employees
		WHERE deleted_at IS NULL
		ORDER BY full_name ASC, id ASC
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	employees := make([]leave.Employee, 0)
	for rows.Next() {
		var emp leave.Employee
		if err := rows.Scan(&emp.ID, &emp.FullName, &emp.Department); err != nil {
			return nil, err
		}
		employees = append(employees, emp)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return employees, nil
}
