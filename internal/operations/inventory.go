package operations

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/Harshverma1208/smartech/internal/fault"
	"github.com/Harshverma1208/smartech/internal/models"
)

const (
	inventoryNotFoundMsg = "inventory item not found"
	duplicateSKUMsg      = "SKU must be unique. This SKU already exists."
)

type Inventory struct {
	db *gorm.DB
}

func NewInventory(db *gorm.DB) *Inventory { return &Inventory{db: db} }

type InventoryInput struct {
	ProductName  string  `json:"product_name" validate:"required"`
	SKU          string  `json:"sku" validate:"required"`
	Quantity     int     `json:"quantity" validate:"gte=0"`
	Price        float64 `json:"price" validate:"gte=0"`
	Category     string  `json:"category"`
	Description  string  `json:"description"`
	MinimumStock int     `json:"minimum_stock" validate:"gte=0"`
}

type InventoryUpdate struct {
	ProductName  *string  `json:"product_name" validate:"omitempty,min=1"`
	SKU          *string  `json:"sku" validate:"omitempty,min=1"`
	Quantity     *int     `json:"quantity" validate:"omitempty,gte=0"`
	Price        *float64 `json:"price" validate:"omitempty,gte=0"`
	Category     *string  `json:"category"`
	Description  *string  `json:"description"`
	MinimumStock *int     `json:"minimum_stock" validate:"omitempty,gte=0"`
}

// ListAll returns every item ordered by product name. Never nil.
func (i *Inventory) ListAll(ctx context.Context) ([]models.InventoryItem, error) {
	out := make([]models.InventoryItem, 0)
	if err := i.db.WithContext(ctx).Order("product_name asc").Find(&out).Error; err != nil {
		return nil, fault.FromStore(err, inventoryNotFoundMsg, duplicateSKUMsg)
	}
	return out, nil
}

func (i *Inventory) GetByID(ctx context.Context, id uint) (*models.InventoryItem, error) {
	var item models.InventoryItem
	if err := i.db.WithContext(ctx).First(&item, id).Error; err != nil {
		return nil, fault.FromStore(err, inventoryNotFoundMsg, duplicateSKUMsg)
	}
	return &item, nil
}

// Create inserts a new item. A uniqueness violation on SKU surfaces as a
// DuplicateKey fault with its own message, distinct from generic failure.
func (i *Inventory) Create(ctx context.Context, in InventoryInput) (*models.InventoryItem, error) {
	in.ProductName = strings.TrimSpace(in.ProductName)
	in.SKU = normalizeSKU(in.SKU)
	if err := checkInput(in); err != nil {
		return nil, err
	}
	item := models.InventoryItem{
		ProductName:  in.ProductName,
		SKU:          in.SKU,
		Quantity:     in.Quantity,
		Price:        in.Price,
		Category:     in.Category,
		Description:  in.Description,
		MinimumStock: in.MinimumStock,
	}
	if err := i.db.WithContext(ctx).Create(&item).Error; err != nil {
		return nil, fault.FromStore(err, inventoryNotFoundMsg, duplicateSKUMsg)
	}
	return &item, nil
}

func (i *Inventory) Update(ctx context.Context, id uint, in InventoryUpdate) (*models.InventoryItem, error) {
	if err := checkInput(in); err != nil {
		return nil, err
	}
	var item models.InventoryItem
	if err := i.db.WithContext(ctx).First(&item, id).Error; err != nil {
		return nil, fault.FromStore(err, inventoryNotFoundMsg, duplicateSKUMsg)
	}
	if in.ProductName != nil {
		item.ProductName = strings.TrimSpace(*in.ProductName)
	}
	if in.SKU != nil {
		item.SKU = normalizeSKU(*in.SKU)
	}
	if in.Quantity != nil {
		item.Quantity = *in.Quantity
	}
	if in.Price != nil {
		item.Price = *in.Price
	}
	if in.Category != nil {
		item.Category = *in.Category
	}
	if in.Description != nil {
		item.Description = *in.Description
	}
	if in.MinimumStock != nil {
		item.MinimumStock = *in.MinimumStock
	}
	if err := i.db.WithContext(ctx).Save(&item).Error; err != nil {
		return nil, fault.FromStore(err, inventoryNotFoundMsg, duplicateSKUMsg)
	}
	return &item, nil
}

func (i *Inventory) Delete(ctx context.Context, id uint) error {
	res := i.db.WithContext(ctx).Delete(&models.InventoryItem{}, id)
	if res.Error != nil {
		return fault.FromStore(res.Error, inventoryNotFoundMsg, duplicateSKUMsg)
	}
	if res.RowsAffected == 0 {
		return fault.NotFound(inventoryNotFoundMsg)
	}
	return nil
}

func normalizeSKU(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}
