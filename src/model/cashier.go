package model

import "time"

const (
	CashierRoleStaff   = "staff"
	CashierRoleManager = "manager"
)

// Cashier is a terminal operator. The PIN is stored as a bcrypt hash
// and is never serialized.
type Cashier struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Username  string    `gorm:"size:60;not null;uniqueIndex" json:"username"`
	FullName  string    `gorm:"size:120" json:"full_name"`
	PINHash   string    `gorm:"column:pin_hash;type:text" json:"-"`
	Role      string    `gorm:"size:20;not null;default:staff" json:"role"`
	Active    bool      `gorm:"not null;default:true" json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Cashier) TableName() string {
	return "cashiers"
}

// CashierResponse is the client-visible projection of a cashier.
type CashierResponse struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	FullName string `json:"full_name"`
	Role     string `json:"role"`
}

func (c *Cashier) ToResponse() CashierResponse {
	return CashierResponse{
		ID:       c.ID,
		Username: c.Username,
		FullName: c.FullName,
		Role:     c.Role,
	}
}

// LoginPayload is the checkout-terminal login request body.
type LoginPayload struct {
	Username string `json:"username"`
	PIN      string `json:"pin"`
}
