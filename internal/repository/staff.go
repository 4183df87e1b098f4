package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"

	"github.com/shoaib7080/dirtoff-backend/internal/model"
)

const staffColumns = `id::text, first_name, last_name, phone, email, password_hash, address, role, created_at, updated_at`

func scanStaff(row pgx.Row) (*model.Staff, error) {
	var (
		s    model.Staff
		role string
	)
	err := row.Scan(&s.ID, &s.FirstName, &s.LastName, &s.Phone, &s.Email, &s.PasswordHash,
		&s.Address, &role, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	s.Role = model.StaffRole(role)
	return &s, nil
}

// CreateStaff регистрирует сотрудника.
func (r *PostgresRepository) CreateStaff(ctx context.Context, s model.Staff) (*model.Staff, error) {
	created, err := scanStaff(r.pool.QueryRow(ctx,
		`INSERT INTO staff (id, first_name, last_name, phone, email, password_hash, address, role)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING `+staffColumns,
		uuid.NewString(), s.FirstName, s.LastName, s.Phone, s.Email, s.PasswordHash, s.Address, string(s.Role),
	))
	if err != nil {
		if isPgCode(err, pgerrcode.UniqueViolation) {
			return nil, fmt.Errorf("%w: %s", ErrStaffExists, s.Email)
		}
		return nil, fmt.Errorf("create staff: %w", err)
	}
	return created, nil
}

// GetStaff возвращает сотрудника по идентификатору.
func (r *PostgresRepository) GetStaff(ctx context.Context, id string) (*model.Staff, error) {
	if !validID(id) {
		return nil, ErrStaffNotFound
	}

	s, err := scanStaff(r.pool.QueryRow(ctx, `SELECT `+staffColumns+` FROM staff WHERE id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, ErrStaffNotFound
		}
		return nil, fmt.Errorf("get staff: %w", err)
	}
	return s, nil
}

// GetStaffByEmail возвращает сотрудника по email.
func (r *PostgresRepository) GetStaffByEmail(ctx context.Context, email string) (*model.Staff, error) {
	s, err := scanStaff(r.pool.QueryRow(ctx, `SELECT `+staffColumns+` FROM staff WHERE email = $1`, email))
	if err != nil {
		if isNoRows(err) {
			return nil, ErrStaffNotFound
		}
		return nil, fmt.Errorf("get staff by email: %w", err)
	}
	return s, nil
}

// ListStaff возвращает всех сотрудников, новые первыми.
func (r *PostgresRepository) ListStaff(ctx context.Context) ([]model.Staff, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+staffColumns+` FROM staff ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("select staff: %w", err)
	}
	defer rows.Close()

	res := []model.Staff{}
	for rows.Next() {
		s, err := scanStaff(rows)
		if err != nil {
			return nil, fmt.Errorf("scan staff: %w", err)
		}
		res = append(res, *s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return res, nil
}

// DeleteStaff удаляет учётную запись сотрудника.
func (r *PostgresRepository) DeleteStaff(ctx context.Context, id string) error {
	if !validID(id) {
		return ErrStaffNotFound
	}

	cmdTag, err := r.pool.Exec(ctx, `DELETE FROM staff WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete staff: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return ErrStaffNotFound
	}
	return nil
}
