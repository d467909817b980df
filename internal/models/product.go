package models

import "gorm.io/gorm"

// ProductStatus is the review/availability state of a listing.
type ProductStatus string

const (
	ProductStatusDraft         ProductStatus = "DRAFT"
	ProductStatusPendingReview ProductStatus = "PENDING_REVIEW"
	ProductStatusApproved      ProductStatus = "APPROVED"
	ProductStatusRejected      ProductStatus = "REJECTED"
	ProductStatusOutOfStock    ProductStatus = "OUT_OF_STOCK"
)

// DefaultLowStockThreshold is applied to new products that do not set one.
const DefaultLowStockThreshold = 5

// Product represents a seller's listing in the marketplace.
type Product struct {
	ID                string        `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	SellerID          string        `json:"seller_id" gorm:"index;type:varchar(36)" validate:"required"`
	Name              string        `json:"name" validate:"required,min=3,max=100"`
	Description       string        `json:"description" validate:"omitempty,max=500"`
	Price             float64       `json:"price" validate:"gte=0"`
	Quantity          int           `json:"quantity" validate:"gte=0"`
	LowStockThreshold int           `json:"low_stock_threshold" validate:"gte=0"`
	Status            ProductStatus `json:"status" gorm:"type:varchar(20);default:DRAFT"`
	gorm.Model                      // Embed gorm.Model for CreatedAt, UpdatedAt, DeletedAt
}

// IsLowStock reports whether the product is at or below its threshold.
// Low-stock membership is derived on read, never stored.
func (p *Product) IsLowStock() bool {
	return p.Quantity <= p.LowStockThreshold
}

// DeriveStatus applies the stock/status rule after a quantity change:
// an APPROVED product that hits zero becomes OUT_OF_STOCK, and a restocked
// OUT_OF_STOCK product reverts to APPROVED. Every other status is left
// alone, so a REJECTED or unreviewed listing is never resurrected by a
// stock mutation.
func (p *Product) DeriveStatus() {
	switch {
	case p.Quantity == 0 && p.Status == ProductStatusApproved:
		p.Status = ProductStatusOutOfStock
	case p.Quantity > 0 && p.Status == ProductStatusOutOfStock:
		p.Status = ProductStatusApproved
	}
}
