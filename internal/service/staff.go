package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/shoaib7080/dirtoff-backend/internal/model"
	"github.com/shoaib7080/dirtoff-backend/internal/repository"
	"github.com/shoaib7080/dirtoff-backend/internal/validation"
)

func hashPassword(password string) ([]byte, error) {
	return bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
}

// RegisterStaff регистрирует сотрудника. Email приводится к нижнему регистру.
func (s *Service) RegisterStaff(ctx context.Context, in model.StaffInput) (*model.Staff, error) {
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.FirstName = strings.TrimSpace(in.FirstName)
	in.LastName = strings.TrimSpace(in.LastName)

	if err := validation.Struct(in); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrValidation, err.Error())
	}

	if in.Role == "" {
		in.Role = model.StaffRoleStaff
	}

	hashed, err := hashPassword(in.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	return s.repo.CreateStaff(ctx, model.Staff{
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Phone:        in.Phone,
		Email:        in.Email,
		PasswordHash: hashed,
		Address:      in.Address,
		Role:         in.Role,
	})
}

// AuthenticateStaff проверяет email и пароль сотрудника.
func (s *Service) AuthenticateStaff(ctx context.Context, email, password string) (*model.Staff, error) {
	st, err := s.repo.GetStaffByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, repository.ErrStaffNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword(st.PasswordHash, []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}

	return st, nil
}

// EnsureAdmin создаёт администратора с указанным email, если его ещё нет.
// Данные проверяются по тем же правилам, что и при регистрации сотрудника.
func (s *Service) EnsureAdmin(ctx context.Context, email, password, phone string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil
	}

	_, err := s.repo.GetStaffByEmail(ctx, email)
	if err == nil {
		return nil
	}
	if !errors.Is(err, repository.ErrStaffNotFound) {
		return err
	}

	in := model.StaffInput{
		FirstName: "Admin",
		LastName:  "Admin",
		Phone:     strings.TrimSpace(phone),
		Email:     email,
		Password:  password,
		Role:      model.StaffRoleAdmin,
	}
	if err := validation.Struct(in); err != nil {
		return fmt.Errorf("%w: %s", ErrValidation, err.Error())
	}

	hashed, err := hashPassword(in.Password)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	_, err = s.repo.CreateStaff(ctx, model.Staff{
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Phone:        in.Phone,
		Email:        in.Email,
		PasswordHash: hashed,
		Role:         in.Role,
	})
	if err != nil && !errors.Is(err, repository.ErrStaffExists) {
		return err
	}
	return nil
}

// GetStaff возвращает сотрудника по идентификатору.
func (s *Service) GetStaff(ctx context.Context, id string) (*model.Staff, error) {
	return s.repo.GetStaff(ctx, id)
}

// ListStaff возвращает всех сотрудников.
func (s *Service) ListStaff(ctx context.Context) ([]model.Staff, error) {
	return s.repo.ListStaff(ctx)
}

// DeleteStaff удаляет сотрудника.
func (s *Service) DeleteStaff(ctx context.Context, id string) error {
	return s.repo.DeleteStaff(ctx, id)
}
