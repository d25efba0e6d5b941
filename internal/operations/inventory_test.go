package operations

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Harshverma1208/smartech/internal/fault"
)

func TestInventoryDuplicateSKU(t *testing.T) {
	ops := NewInventory(setupTestDB(t))
	ctx := context.Background()

	first, err := ops.Create(ctx, InventoryInput{ProductName: "Widget", SKU: "wid-001", Quantity: 5, Price: 9.99})
	require.NoError(t, err)
	assert.Equal(t, "WID-001", first.SKU) // normalized

	_, err = ops.Create(ctx, InventoryInput{ProductName: "Other Widget", SKU: "WID-001", Quantity: 1, Price: 1})
	require.Error(t, err)
	assert.True(t, fault.IsDuplicateKey(err), "got %v", err)
	assert.Equal(t, "SKU must be unique. This SKU already exists.", fault.Message(err))

	// The first item is unaffected by the failed insert.
	kept, err := ops.GetByID(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, "Widget", kept.ProductName)
	assert.Equal(t, 5, kept.Quantity)

	rows, err := ops.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestInventoryUpdateToExistingSKU(t *testing.T) {
	ops := NewInventory(setupTestDB(t))
	ctx := context.Background()

	_, err := ops.Create(ctx, InventoryInput{ProductName: "A", SKU: "SKU-A"})
	require.NoError(t, err)
	b, err := ops.Create(ctx, InventoryInput{ProductName: "B", SKU: "SKU-B"})
	require.NoError(t, err)

	sku := "SKU-A"
	_, err = ops.Update(ctx, b.ID, InventoryUpdate{SKU: &sku})
	assert.True(t, fault.IsDuplicateKey(err), "got %v", err)
}

func TestInventoryListOrderedByProductName(t *testing.T) {
	ops := NewInventory(setupTestDB(t))
	ctx := context.Background()

	for _, p := range []struct{ name, sku string }{
		{"Zither", "Z-1"}, {"Anvil", "A-1"}, {"Mallet", "M-1"},
	} {
		_, err := ops.Create(ctx, InventoryInput{ProductName: p.name, SKU: p.sku})
		require.NoError(t, err)
	}
	rows, err := ops.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "Anvil", rows[0].ProductName)
	assert.Equal(t, "Mallet", rows[1].ProductName)
	assert.Equal(t, "Zither", rows[2].ProductName)
}

func TestInventoryValidation(t *testing.T) {
	ops := NewInventory(setupTestDB(t))
	ctx := context.Background()

	_, err := ops.Create(ctx, InventoryInput{SKU: "X"})
	assert.True(t, fault.IsValidation(err))

	_, err = ops.Create(ctx, InventoryInput{ProductName: "X", SKU: "X", Quantity: -1})
	assert.True(t, fault.IsValidation(err))

	_, err = ops.Create(ctx, InventoryInput{ProductName: "X", SKU: "X", Price: -0.01})
	assert.True(t, fault.IsValidation(err))
}

func TestInventoryDeleteIdempotenceContract(t *testing.T) {
	ops := NewInventory(setupTestDB(t))
	ctx := context.Background()

	item, err := ops.Create(ctx, InventoryInput{ProductName: "Once", SKU: "ONCE"})
	require.NoError(t, err)
	require.NoError(t, ops.Delete(ctx, item.ID))
	assert.True(t, fault.IsNotFound(ops.Delete(ctx, item.ID)))
}
