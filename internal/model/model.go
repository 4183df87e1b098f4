// Package model содержит доменные сущности сервиса химчистки.
package model

import "time"

// EntryStatus описывает этап обработки заказа.
type EntryStatus string

const (
	EntryStatusPending            EntryStatus = "pending"
	EntryStatusCollected          EntryStatus = "collected"
	EntryStatusProcessedAndPacked EntryStatus = "processedAndPacked"
	EntryStatusDelivered          EntryStatus = "delivered"
)

// Valid сообщает, является ли статус одним из известных значений.
func (s EntryStatus) Valid() bool {
	switch s {
	case EntryStatusPending, EntryStatusCollected, EntryStatusProcessedAndPacked, EntryStatusDelivered:
		return true
	}
	return false
}

// LineItem описывает одну позицию заказа.
type LineItem struct {
	Name     string   `json:"name"`
	Quantity int      `json:"quantity"`
	Price    float64  `json:"price"`
	Tax      *float64 `json:"tax,omitempty"`
}

// Charges содержит итоговые суммы заказа.
type Charges struct {
	SubTotal    float64  `json:"subTotal"`
	TaxAmount   *float64 `json:"taxAmount,omitempty"`
	TotalAmount float64  `json:"totalAmount"`
}

// PickupAndDelivery хранит плановую дату выдачи и отметки о переходах статуса.
type PickupAndDelivery struct {
	ExpectedDeliveryDate   time.Time  `json:"expectedDeliveryDate"`
	PickupDate             *time.Time `json:"pickupDate,omitempty"`
	ProcessedAndPackedDate *time.Time `json:"processedAndPackedDate,omitempty"`
	DeliveryDate           *time.Time `json:"deliveryDate,omitempty"`
}

// Entry представляет заказ клиента.
type Entry struct {
	ID                string            `json:"id"`
	ReceiptNo         string            `json:"receiptNo"`
	Customer          string            `json:"customer"`
	CustomerID        string            `json:"customerId"`
	CustomerPhone     string            `json:"customerPhone"`
	Products          []LineItem        `json:"products"`
	Charges           Charges           `json:"charges"`
	PickupAndDelivery PickupAndDelivery `json:"pickupAndDelivery"`
	Status            EntryStatus       `json:"status"`
	Visible           bool              `json:"visible"`
	Discount          float64           `json:"discount"`
	Remarks           string            `json:"remarks"`
	CreatedAt         time.Time         `json:"createdAt"`
	UpdatedAt         time.Time         `json:"updatedAt"`
}

// EntryInput содержит данные для создания заказа.
type EntryInput struct {
	Customer          string            `json:"customer"`
	CustomerID        string            `json:"customerId"`
	CustomerPhone     string            `json:"customerPhone"`
	Products          []LineItem        `json:"products"`
	Charges           Charges           `json:"charges"`
	PickupAndDelivery PickupAndDelivery `json:"pickupAndDelivery"`
	Status            EntryStatus       `json:"status"`
	Discount          float64           `json:"discount"`
	Remarks           string            `json:"remarks"`
}

// EntryPatch описывает частичное обновление заказа. Nil-поля не меняются.
type EntryPatch struct {
	Customer             *string      `json:"customer"`
	CustomerPhone        *string      `json:"customerPhone"`
	Products             []LineItem   `json:"products"`
	Charges              *Charges     `json:"charges"`
	ExpectedDeliveryDate *time.Time   `json:"expectedDeliveryDate"`
	Status               *EntryStatus `json:"status"`
	Discount             *float64     `json:"discount"`
	Remarks              *string      `json:"remarks"`
	Visible              *bool        `json:"visible"`
}

// EntryFilter задаёт условия выборки заказов.
type EntryFilter struct {
	ShowAll bool
	Status  EntryStatus
	// Диапазоны [from, to) по плановой дате выдачи и дате создания.
	ExpectedFrom, ExpectedTo *time.Time
	CreatedFrom, CreatedTo   *time.Time
}

// EntryPage содержит страницу заказов.
type EntryPage struct {
	Page         int     `json:"page"`
	TotalPages   int     `json:"totalPages"`
	TotalEntries int64   `json:"totalEntries"`
	Data         []Entry `json:"data"`
}

// Visibility возвращается после переключения флага видимости.
type Visibility struct {
	ID      string `json:"id"`
	Visible bool   `json:"visible"`
}

// Customer описывает клиента химчистки.
type Customer struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	Address   string    `json:"address,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// Product описывает позицию каталога услуг.
type Product struct {
	Name      string    `json:"name"`
	Tax       float64   `json:"tax"`
	Price     float64   `json:"price"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
