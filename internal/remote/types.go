package remote

import (
	"time"

	"github.com/andremartins/storefront-backend/pkg/types"
	"github.com/shopspring/decimal"
)

// Product is a catalog listing. IDs are assigned by the backend and stable.
type Product struct {
	ID          int64            `json:"id"`
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Brand       string           `json:"brand"`
	Price       decimal.Decimal  `json:"price"`
	OldPrice    *decimal.Decimal `json:"old_price,omitempty"`
	CategoryID  int64            `json:"category"`
	Images      []string         `json:"images"`
	Featured    bool             `json:"featured"`
	OnSale      bool             `json:"on_sale"`
	BestSeller  bool             `json:"best_seller"`
	Stock       int              `json:"stock"`
	Rating      float64          `json:"rating"`
	ReviewCount int              `json:"review_count"`
}

// Clone returns a deep copy so callers never share mutable state.
func (p Product) Clone() Product {
	out := p
	if p.OldPrice != nil {
		v := *p.OldPrice
		out.OldPrice = &v
	}
	if p.Images != nil {
		out.Images = append([]string(nil), p.Images...)
	}
	return out
}

// Category groups products. Immutable once seeded; no category CRUD exists.
type Category struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Image       string `json:"image"`
	Description string `json:"description"`
	Featured    bool   `json:"featured"`
}

// CartItem pairs a frozen product snapshot with a quantity. The snapshot
// insulates the cart from later catalog edits.
type CartItem struct {
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
}

// OrderStatus tracks an order through its lifecycle.
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

// Order is the terminal artifact of checkout.
type Order struct {
	ID              string             `json:"id"`
	UserID          string             `json:"user_id"`
	Items           []CartItem         `json:"items"`
	Total           decimal.Decimal    `json:"total"`
	Status          OrderStatus        `json:"status"`
	CreatedAt       time.Time          `json:"created_at"`
	Customer        types.CustomerInfo `json:"customer"`
	ShippingAddress types.Address      `json:"shipping_address"`
}

// OrderReceipt acknowledges a submitted order.
type OrderReceipt struct {
	Success bool   `json:"success"`
	OrderID string `json:"order_id"`
}

// CreateProductInput carries every product field except the id.
type CreateProductInput struct {
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Brand       string           `json:"brand"`
	Price       decimal.Decimal  `json:"price"`
	OldPrice    *decimal.Decimal `json:"old_price,omitempty"`
	CategoryID  int64            `json:"category"`
	Images      []string         `json:"images"`
	Featured    bool             `json:"featured"`
	OnSale      bool             `json:"on_sale"`
	BestSeller  bool             `json:"best_seller"`
	Stock       int              `json:"stock"`
	Rating      float64          `json:"rating"`
	ReviewCount int              `json:"review_count"`
}

// UpdateProductInput is a partial patch; nil fields are left untouched.
type UpdateProductInput struct {
	Name        *string          `json:"name,omitempty"`
	Description *string          `json:"description,omitempty"`
	Brand       *string          `json:"brand,omitempty"`
	Price       *decimal.Decimal `json:"price,omitempty"`
	OldPrice    *decimal.Decimal `json:"old_price,omitempty"`
	CategoryID  *int64           `json:"category,omitempty"`
	Images      *[]string        `json:"images,omitempty"`
	Featured    *bool            `json:"featured,omitempty"`
	OnSale      *bool            `json:"on_sale,omitempty"`
	BestSeller  *bool            `json:"best_seller,omitempty"`
	Stock       *int             `json:"stock,omitempty"`
	Rating      *float64         `json:"rating,omitempty"`
	ReviewCount *int             `json:"review_count,omitempty"`
}
