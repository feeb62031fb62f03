// internal/models/order.go
package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// MaxTotalPrice is the largest value the total_price column holds.
var MaxTotalPrice = decimal.RequireFromString("9999999999.99")

type Order struct {
	BaseModel
	ProductID    uint            `json:"productId" gorm:"not null;index"`
	Quantity     int             `json:"quantity" gorm:"not null"`
	TotalPrice   decimal.Decimal `json:"totalPrice" gorm:"type:decimal(12,2);not null"`
	Status       OrderStatus     `json:"status" gorm:"type:varchar(20);not null;default:'Pending';index"`
	CustomerName string          `json:"customerName" gorm:"size:255"`

	// Relationships. Nil when the referenced product has been deleted.
	Product *Product `json:"product,omitempty" gorm:"foreignKey:ProductID"`
}

// OrderSummary is the flattened order row used by list views that only need
// who bought what, for how much, and when.
type OrderSummary struct {
	ID        uint            `json:"id"`
	Customer  string          `json:"customer"`
	Amount    decimal.Decimal `json:"amount"`
	Date      time.Time       `json:"date"`
	ProductID uint            `json:"productId"`
}

func (o *Order) Summary() OrderSummary {
	return OrderSummary{
		ID:        o.ID,
		Customer:  o.CustomerName,
		Amount:    o.TotalPrice,
		Date:      o.CreatedAt,
		ProductID: o.ProductID,
	}
}
