// Package receipt выдаёт последовательные номера квитанций.
package receipt

import (
	"context"
	"fmt"
)

// Counter хранит счётчик квитанций. IncrementReceiptCounter должен
// атомарно увеличить счётчик и вернуть значение до увеличения.
type Counter interface {
	IncrementReceiptCounter(ctx context.Context) (int64, error)
}

// Allocator выдаёт номера квитанций поверх атомарного счётчика.
type Allocator struct {
	counter Counter
}

// NewAllocator создаёт распределитель номеров квитанций.
func NewAllocator(counter Counter) *Allocator {
	return &Allocator{counter: counter}
}

// Next возвращает следующий номер квитанции. Выданный номер считается
// израсходованным, даже если заказ затем не удалось сохранить.
func (a *Allocator) Next(ctx context.Context) (string, error) {
	n, err := a.counter.IncrementReceiptCounter(ctx)
	if err != nil {
		return "", fmt.Errorf("allocate receipt number: %w", err)
	}
	return Format(n), nil
}

// Format дополняет номер нулями слева минимум до четырёх цифр.
func Format(n int64) string {
	return fmt.Sprintf("%04d", n)
}
