package models

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusDisplayIsTotal(t *testing.T) {
	for _, s := range OrderStatuses {
		assert.True(t, s.Valid())
		assert.NotEqual(t, unknownLabel, s.Label(), s)
		assert.NotEmpty(t, s.Color(), s)
	}
	for _, s := range HubStatuses {
		assert.NotEqual(t, unknownLabel, s.Label(), s)
		assert.NotEmpty(t, s.Color(), s)
	}
	for _, s := range InventoryStatuses {
		assert.NotEqual(t, unknownLabel, s.Label(), s)
		assert.NotEmpty(t, s.Color(), s)
	}
	for _, s := range TourStatuses {
		assert.NotEqual(t, unknownLabel, s.Label(), s)
		assert.NotEmpty(t, s.Color(), s)
	}
	for _, tt := range TourTypes {
		assert.NotEqual(t, unknownLabel, tt.Label(), tt)
	}
	for _, pt := range ProductTypes {
		assert.NotEqual(t, unknownLabel, pt.Label(), pt)
	}
}

func TestStatusDisplayKnownValues(t *testing.T) {
	assert.Equal(t, "IN PRODUCTION", OrderStatusProcessing.Label())
	assert.Equal(t, BadgeOrange, OrderStatusShipped.Color())
	assert.Equal(t, "Pending Approval", HubStatusPendingApproval.Label())
	assert.Equal(t, BadgeGray, HubStatusSuspended.Color())
	assert.True(t, InventoryStatusOutOfStock.NeedsAttention())
	assert.False(t, InventoryStatusInStock.NeedsAttention())

	assert.False(t, OrderStatus("returned").Valid())
	assert.Equal(t, unknownLabel, OrderStatus("returned").Label())
}

func TestCheckVariantFields(t *testing.T) {
	shipping := "ships in 3 days"
	chain := BlockchainICP
	royalty := int64(10)
	tooMuch := int64(120)

	tests := []struct {
		name    string
		product Product
		wantErr bool
	}{
		{"physical with shipping", Product{ProductType: ProductTypePhysical, ShippingDetails: &shipping}, false},
		{"physical with blockchain", Product{ProductType: ProductTypePhysical, Blockchain: &chain}, true},
		{"physical with royalty", Product{ProductType: ProductTypePhysical, RoyaltyPercentage: &royalty}, true},
		{"nft with chain and royalty", Product{ProductType: ProductTypeNFT, Blockchain: &chain, RoyaltyPercentage: &royalty}, false},
		{"nft with shipping", Product{ProductType: ProductTypeNFT, ShippingDetails: &shipping}, true},
		{"phygital with both", Product{ProductType: ProductTypePhygital, Blockchain: &chain, ShippingDetails: &shipping, RoyaltyPercentage: &royalty}, false},
		{"royalty out of range", Product{ProductType: ProductTypeNFT, RoyaltyPercentage: &tooMuch}, true},
		{"unknown type", Product{ProductType: "digital"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.product.CheckVariantFields()
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrVariantFields))
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestHasStock(t *testing.T) {
	assert.True(t, (&Product{ProductType: ProductTypePhysical}).HasStock())
	assert.True(t, (&Product{ProductType: ProductTypePhygital}).HasStock())
	assert.False(t, (&Product{ProductType: ProductTypeNFT}).HasStock())
}

func TestOrderFilterIsEmpty(t *testing.T) {
	assert.True(t, OrderFilter{}.IsEmpty())

	blank := ""
	assert.True(t, OrderFilter{SearchTerm: &blank}.IsEmpty())

	status := OrderStatusShipped
	assert.False(t, OrderFilter{Status: &status}.IsEmpty())
}

func TestJSONBScan(t *testing.T) {
	var j JSONB
	require.NoError(t, j.Scan([]byte(`{"a":1}`)))
	assert.Equal(t, float64(1), j["a"])

	require.NoError(t, j.Scan(`{"b":"x"}`))
	assert.Equal(t, "x", j["b"])

	require.NoError(t, j.Scan(nil))
	assert.Nil(t, j)

	assert.Error(t, j.Scan(42))
}
