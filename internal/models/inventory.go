package models

import "time"

// InventoryItem is one stocked product. SKU is normalized to upper case before
// persisting and must be unique across the table.
type InventoryItem struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	ProductName  string    `gorm:"not null;index" json:"product_name"`
	SKU          string    `gorm:"size:64;not null;uniqueIndex" json:"sku"`
	Quantity     int       `gorm:"not null;default:0" json:"quantity"`
	Price        float64   `gorm:"not null;default:0" json:"price"`
	Category     string    `json:"category"`
	Description  string    `json:"description"`
	MinimumStock int       `gorm:"not null;default:0" json:"minimum_stock"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (InventoryItem) TableName() string { return "inventory" }
