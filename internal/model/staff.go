package model

import "time"

// StaffRole определяет уровень доступа сотрудника.
type StaffRole string

const (
	StaffRoleAdmin StaffRole = "admin"
	StaffRoleStaff StaffRole = "staff"
)

// Staff представляет учётную запись сотрудника.
type Staff struct {
	ID           string    `json:"id"`
	FirstName    string    `json:"firstName"`
	LastName     string    `json:"lastName"`
	Phone        string    `json:"phone"`
	Email        string    `json:"email"`
	PasswordHash []byte    `json:"-"`
	Address      string    `json:"address"`
	Role         StaffRole `json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// StaffInput содержит данные для регистрации сотрудника.
type StaffInput struct {
	FirstName string    `json:"firstName" validate:"required"`
	LastName  string    `json:"lastName" validate:"required"`
	Phone     string    `json:"phone" validate:"required,mobile"`
	Email     string    `json:"email" validate:"required,email"`
	Password  string    `json:"password" validate:"required,min=6"`
	Address   string    `json:"address"`
	Role      StaffRole `json:"role" validate:"omitempty,oneof=admin staff"`
}
