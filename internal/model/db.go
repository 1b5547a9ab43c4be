package model

import "time"

type Product struct {
	ID          string `gorm:"primaryKey;size:64;not null"` // product sku
	Name        string `gorm:"size:255;not null"`
	SKU         string `gorm:"size:64;index"`
	Description string `gorm:"size:1024"`
	Price       int64  `gorm:"not null"` // minor units per order unit
	Currency    string `gorm:"size:8;not null"`
	OrderUnit   string `gorm:"size:32"`            // e.g. BOX
	BaseUOM     string `gorm:"size:32"`            // e.g. TAB
	Content     int64  `gorm:"not null;default:1"` // base units per order unit
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type User struct {
	ID         string `gorm:"primaryKey;size:64;not null"`
	Name       string `gorm:"size:255"`
	Email      string `gorm:"size:255;index"`
	Role       string `gorm:"size:32;index"` // admin-apotek, buyer
	TenantID   string `gorm:"size:64;index;not null"`
	PharmacyID string `gorm:"size:64;index"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

type Order struct {
	ID                uint        `gorm:"primaryKey"`
	TransactionNumber string      `gorm:"size:64;uniqueIndex;not null"` // gateway-facing id, immutable
	UserID            string      `gorm:"size:64;index;not null"`
	TenantID          string      `gorm:"size:64;index;not null"`
	PharmacyID        string      `gorm:"size:64;index"`
	Status            OrderStatus `gorm:"size:32;index;not null"`

	SourceOfFund  string `gorm:"size:32;not null"`
	PaymentType   string `gorm:"size:32;not null"` // va, cad
	PaymentMethod string `gorm:"size:32"`
	AccountNo     string `gorm:"size:64"`
	AccountBank   string `gorm:"size:64"`
	VANumber      string `gorm:"size:64"`

	SnapToken            string `gorm:"size:128"`
	GatewayTransactionID string `gorm:"size:64;index"`

	Currency       string `gorm:"size:8;not null"`
	Subtotal       int64  `gorm:"not null"`
	TaxAmount      int64  `gorm:"not null"`
	ShippingAmount int64  `gorm:"not null"`
	DiscountAmount int64  `gorm:"not null"`
	TotalPrice     int64  `gorm:"not null"`

	// billing/shipping snapshot, frozen at creation
	BillingName    string `gorm:"size:255"`
	BillingEmail   string `gorm:"size:255"`
	BillingPhone   string `gorm:"size:64"`
	BillingAddress string `gorm:"size:512"`
	BillingCity    string `gorm:"size:128"`
	BillingState   string `gorm:"size:128"`
	BillingZip     string `gorm:"size:32"`

	ShippingName    string `gorm:"size:255"`
	ShippingAddress string `gorm:"size:512"`
	ShippingCity    string `gorm:"size:128"`
	ShippingState   string `gorm:"size:128"`
	ShippingZip     string `gorm:"size:32"`

	CustomerNotes string `gorm:"size:1024"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

type OrderItem struct {
	ID uint `gorm:"primaryKey"`
	// FK → orders.id
	OrderID uint `gorm:"index;not null"`
	// product snapshot at purchase time
	ProductID          string `gorm:"size:64;index;not null"`
	ProductName        string `gorm:"size:255;not null"`
	ProductSKU         string `gorm:"size:64"`
	ProductDescription string `gorm:"size:1024"`

	UnitPrice    int64  `gorm:"not null"` // minor units per order unit
	TotalPrice   int64  `gorm:"not null"` // unit_price × quantity × content
	Quantity     int64  `gorm:"not null"` // order units
	BaseQuantity int64  `gorm:"not null"` // quantity × content
	OrderUnit    string `gorm:"size:32"`
	BaseUOM      string `gorm:"size:32"`
	Content      int64  `gorm:"not null;default:1"`

	CreatedAt time.Time
}

// WebhookEvent records gateway callbacks that were fully applied, keyed by
// order + transaction id + reported status, so a duplicate delivery never
// re-fires side effects.
type WebhookEvent struct {
	EventKey          string `gorm:"primaryKey;size:128;not null"`
	TransactionStatus string `gorm:"size:32;index"`
	ProcessedAt       time.Time
	CreatedAt         time.Time
}

type Notification struct {
	ID                string `gorm:"primaryKey;size:64;not null"`
	UserID            string `gorm:"size:64;index;not null"`
	Type              string `gorm:"size:64;index;not null"`
	Title             string `gorm:"size:255"`
	Body              string `gorm:"size:1024"`
	OrderID           uint   `gorm:"index"`
	TransactionNumber string `gorm:"size:64"`
	ReadAt            *time.Time
	CreatedAt         time.Time
}
