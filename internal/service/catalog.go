package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shoaib7080/dirtoff-backend/internal/customerapi"
	"github.com/shoaib7080/dirtoff-backend/internal/model"
	"github.com/shoaib7080/dirtoff-backend/internal/repository"
	"github.com/shoaib7080/dirtoff-backend/internal/validation"
)

// CreateCustomer сохраняет клиента в локальной таблице.
func (s *Service) CreateCustomer(ctx context.Context, c model.Customer) (*model.Customer, error) {
	c.Name = strings.TrimSpace(c.Name)
	c.Phone = strings.TrimSpace(c.Phone)

	if c.Name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrValidation)
	}
	if c.Phone != "" && !validation.IsValidMobile(c.Phone) {
		return nil, fmt.Errorf("%w: phone must be a 10 digit number starting with 6-9", ErrValidation)
	}

	return s.repo.CreateCustomer(ctx, c)
}

// GetCustomer возвращает клиента из локальной таблицы.
func (s *Service) GetCustomer(ctx context.Context, id string) (*model.Customer, error) {
	return s.repo.GetCustomer(ctx, id)
}

// ListCustomers возвращает клиентов из локальной таблицы.
func (s *Service) ListCustomers(ctx context.Context) ([]model.Customer, error) {
	return s.repo.ListCustomers(ctx)
}

func (s *Service) lookupCustomer(ctx context.Context, id string) (*model.Customer, error) {
	if s.customers == nil {
		return s.repo.GetCustomer(ctx, id)
	}

	c, err := s.customers.GetCustomer(ctx, id)
	if err != nil {
		if errors.Is(err, customerapi.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", repository.ErrCustomerNotFound, id)
		}
		return nil, fmt.Errorf("lookup customer: %w", err)
	}
	return c, nil
}

// UpsertProduct создаёт или обновляет позицию каталога.
func (s *Service) UpsertProduct(ctx context.Context, p model.Product) (*model.Product, error) {
	p.Name = strings.TrimSpace(p.Name)
	if p.Name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrValidation)
	}
	if p.Tax < 0 || p.Price < 0 {
		return nil, fmt.Errorf("%w: tax and price must not be negative", ErrValidation)
	}
	return s.repo.UpsertProduct(ctx, p)
}

// ListProducts возвращает каталог услуг.
func (s *Service) ListProducts(ctx context.Context) ([]model.Product, error) {
	return s.repo.ListProducts(ctx)
}
