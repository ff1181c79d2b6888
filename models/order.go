package models

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type OrderStatus string
type PaymentStatus string
type PaymentMethod string

const (
	OrderStatusPlaced     OrderStatus = "placed"
	OrderStatusConfirmed  OrderStatus = "confirmed"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"

	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusPaid     PaymentStatus = "paid"
	PaymentStatusFailed   PaymentStatus = "failed"
	PaymentStatusRefunded PaymentStatus = "refunded"

	PaymentMethodRazorpay PaymentMethod = "razorpay"
	PaymentMethodCOD      PaymentMethod = "cod"
)

// Order is immutable once placed except for the two status fields and the
// gateway identifiers filled in by the payment flow.
type Order struct {
	ID                string        `gorm:"primaryKey" json:"id"`
	OrderNumber       string        `gorm:"uniqueIndex;not null" json:"order_number"`
	UserID            string        `gorm:"index;not null" json:"user_id"`
	AddressID         string        `gorm:"not null" json:"address_id"`
	Address           *Address      `gorm:"foreignKey:AddressID" json:"address,omitempty"`
	Items             []OrderItem   `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
	Subtotal          float64       `json:"subtotal"`
	DeliveryFee       float64       `json:"delivery_fee"`
	Total             float64       `json:"total"`
	PaymentMethod     PaymentMethod `gorm:"type:VARCHAR(20);not null" json:"payment_method"`
	PaymentStatus     PaymentStatus `gorm:"type:VARCHAR(20);default:'pending'" json:"payment_status"`
	OrderStatus       OrderStatus   `gorm:"type:VARCHAR(20);default:'placed'" json:"order_status"`
	Notes             string        `json:"notes"`
	RazorpayOrderID   string        `gorm:"index" json:"razorpay_order_id"`
	RazorpayPaymentID string        `json:"razorpay_payment_id"`
	CreatedAt         time.Time     `json:"created_at"`
	UpdatedAt         time.Time     `json:"updated_at"`
}

// OrderItem snapshots the product name and unit price in effect at
// placement time; later product edits never touch it.
type OrderItem struct {
	ID          string  `gorm:"primaryKey" json:"id"`
	OrderID     string  `gorm:"index;not null" json:"order_id"`
	ProductID   string  `json:"product_id"`
	ProductName string  `gorm:"not null" json:"product_name"`
	Quantity    int     `gorm:"not null" json:"quantity"`
	UnitPrice   float64 `gorm:"not null" json:"unit_price"`
	TotalPrice  float64 `gorm:"not null" json:"total_price"`
}

func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	return nil
}

func (oi *OrderItem) BeforeCreate(tx *gorm.DB) error {
	if oi.ID == "" {
		oi.ID = uuid.NewString()
	}
	return nil
}

func ParseOrderStatus(s string) (OrderStatus, error) {
	switch OrderStatus(strings.ToLower(s)) {
	case OrderStatusPlaced, OrderStatusConfirmed, OrderStatusProcessing,
		OrderStatusShipped, OrderStatusDelivered, OrderStatusCancelled:
		return OrderStatus(strings.ToLower(s)), nil
	default:
		return "", errors.New("invalid order status: must be one of placed, confirmed, processing, shipped, delivered, cancelled")
	}
}

func ParsePaymentStatus(s string) (PaymentStatus, error) {
	switch PaymentStatus(strings.ToLower(s)) {
	case PaymentStatusPending, PaymentStatusPaid, PaymentStatusFailed, PaymentStatusRefunded:
		return PaymentStatus(strings.ToLower(s)), nil
	default:
		return "", errors.New("invalid payment status: must be one of pending, paid, failed, refunded")
	}
}

func ParsePaymentMethod(s string) (PaymentMethod, error) {
	switch PaymentMethod(strings.ToLower(s)) {
	case PaymentMethodRazorpay, PaymentMethodCOD:
		return PaymentMethod(strings.ToLower(s)), nil
	default:
		return "", errors.New("valid payment method is required (razorpay or cod)")
	}
}
