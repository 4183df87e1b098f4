package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/shoaib7080/dirtoff-backend/internal/model"
)

// ProductTaxes возвращает ставки налога по названиям услуг одним запросом.
// Названия, отсутствующие в каталоге, в результат не попадают.
func (r *PostgresRepository) ProductTaxes(ctx context.Context, names []string) (map[string]float64, error) {
	res := make(map[string]float64, len(names))
	if len(names) == 0 {
		return res, nil
	}

	rows, err := r.pool.Query(ctx, `SELECT name, tax FROM products WHERE name = ANY($1)`, names)
	if err != nil {
		return nil, fmt.Errorf("select product taxes: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			name string
			tax  float64
		)
		if err := rows.Scan(&name, &tax); err != nil {
			return nil, fmt.Errorf("scan product tax: %w", err)
		}
		res[name] = tax
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return res, nil
}

// UpsertProduct создаёт позицию каталога или обновляет её цену и налог.
func (r *PostgresRepository) UpsertProduct(ctx context.Context, p model.Product) (*model.Product, error) {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO products (name, tax, price) VALUES ($1, $2, $3)
		 ON CONFLICT (name) DO UPDATE SET tax = EXCLUDED.tax, price = EXCLUDED.price, updated_at = now()
		 RETURNING created_at, updated_at`,
		p.Name, p.Tax, p.Price,
	).Scan(&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("upsert product: %w", err)
	}
	return &p, nil
}

// ListProducts возвращает каталог, упорядоченный по названию.
func (r *PostgresRepository) ListProducts(ctx context.Context) ([]model.Product, error) {
	rows, err := r.pool.Query(ctx, `SELECT name, tax, price, created_at, updated_at FROM products ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("select products: %w", err)
	}
	defer rows.Close()

	res := []model.Product{}
	for rows.Next() {
		var p model.Product
		if err := rows.Scan(&p.Name, &p.Tax, &p.Price, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		res = append(res, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return res, nil
}

// CreateCustomer сохраняет клиента.
func (r *PostgresRepository) CreateCustomer(ctx context.Context, c model.Customer) (*model.Customer, error) {
	c.ID = uuid.NewString()
	err := r.pool.QueryRow(ctx,
		`INSERT INTO customers (id, name, phone, address) VALUES ($1, $2, $3, $4) RETURNING created_at`,
		c.ID, c.Name, c.Phone, c.Address,
	).Scan(&c.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("insert customer: %w", err)
	}
	return &c, nil
}

// GetCustomer возвращает клиента по идентификатору.
func (r *PostgresRepository) GetCustomer(ctx context.Context, id string) (*model.Customer, error) {
	if !validID(id) {
		return nil, ErrCustomerNotFound
	}

	var c model.Customer
	err := r.pool.QueryRow(ctx,
		`SELECT id::text, name, phone, address, created_at FROM customers WHERE id = $1`,
		id,
	).Scan(&c.ID, &c.Name, &c.Phone, &c.Address, &c.CreatedAt)
	if err != nil {
		if isNoRows(err) {
			return nil, ErrCustomerNotFound
		}
		return nil, fmt.Errorf("get customer: %w", err)
	}
	return &c, nil
}

// ListCustomers возвращает клиентов, новые первыми.
func (r *PostgresRepository) ListCustomers(ctx context.Context) ([]model.Customer, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id::text, name, phone, address, created_at FROM customers ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("select customers: %w", err)
	}
	defer rows.Close()

	res := []model.Customer{}
	for rows.Next() {
		var c model.Customer
		if err := rows.Scan(&c.ID, &c.Name, &c.Phone, &c.Address, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan customer: %w", err)
		}
		res = append(res, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return res, nil
}
