package models

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestNewLineTarget(t *testing.T) {
	assetModelID := 3
	consumableModelID := 5

	t.Run("asset model target", func(t *testing.T) {
		target, err := NewLineTarget(&assetModelID, nil)
		assert.NoError(t, err)
		assert.Equal(t, LineTargetAsset, target.Kind)
		assert.Equal(t, 3, target.ModelID)
	})

	t.Run("consumable model target", func(t *testing.T) {
		target, err := NewLineTarget(nil, &consumableModelID)
		assert.NoError(t, err)
		assert.Equal(t, LineTargetConsumable, target.Kind)
		assert.Equal(t, 5, target.ModelID)
	})

	t.Run("both set rejected", func(t *testing.T) {
		_, err := NewLineTarget(&assetModelID, &consumableModelID)
		assert.Error(t, err)
	})

	t.Run("neither set rejected", func(t *testing.T) {
		_, err := NewLineTarget(nil, nil)
		assert.Error(t, err)
	})
}

func TestOrderLineMarshalEmitsOneModelField(t *testing.T) {
	line := OrderLine{
		ID:        1,
		OrderID:   2,
		Target:    LineTarget{Kind: LineTargetAsset, ModelID: 3},
		Quantity:  4,
		UnitPrice: decimal.NewFromInt(100),
	}

	raw, err := json.Marshal(line)
	assert.NoError(t, err)

	var view map[string]json.RawMessage
	assert.NoError(t, json.Unmarshal(raw, &view))
	assert.Contains(t, view, "asset_model_id")
	assert.NotContains(t, view, "consumable_model_id")
}

func TestOrderStatusTerminal(t *testing.T) {
	assert.True(t, OrderStatusCompleted.IsTerminal())
	assert.True(t, OrderStatusCancelled.IsTerminal())
	assert.False(t, OrderStatusDraft.IsTerminal())
	assert.False(t, OrderStatusApproved.IsTerminal())
}

func TestNewOrderStatus(t *testing.T) {
	status, err := NewOrderStatus("pending_approval")
	assert.NoError(t, err)
	assert.Equal(t, OrderStatusPendingApproval, status)

	_, err = NewOrderStatus("shipped")
	assert.Error(t, err)
}
