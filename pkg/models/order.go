package models

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusDraft           OrderStatus = "draft"
	OrderStatusPendingApproval OrderStatus = "pending_approval"
	OrderStatusApproved        OrderStatus = "approved"
	OrderStatusRejected        OrderStatus = "rejected"
	OrderStatusCompleted       OrderStatus = "completed"
	OrderStatusCancelled       OrderStatus = "cancelled"
)

func NewOrderStatus(value string) (OrderStatus, error) {
	status := OrderStatus(value)
	if !status.IsValid() {
		return "", fmt.Errorf("invalid order status: %s", value)
	}
	return status, nil
}

func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusDraft, OrderStatusPendingApproval, OrderStatusApproved,
		OrderStatusRejected, OrderStatusCompleted, OrderStatusCancelled:
		return true
	default:
		return false
	}
}

// IsTerminal reports whether no transition may leave the status.
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusCompleted || s == OrderStatusCancelled
}

type PurchaseOrder struct {
	ID          int             `json:"id" db:"id"`
	Code        string          `json:"code" db:"code"`
	OrderDate   Date            `json:"order_date" db:"order_date"`
	Supplier    Supplier        `json:"supplier"`
	CreatedBy   int             `json:"created_by" db:"created_by"`
	Status      OrderStatus     `json:"status" db:"status"`
	Notes       string          `json:"notes,omitempty" db:"notes"`
	TotalAmount decimal.Decimal `json:"total_amount" db:"total_amount"`
	Lines       []OrderLine     `json:"lines,omitempty"`
}

// LineTargetKind discriminates what an order line purchases.
type LineTargetKind string

const (
	LineTargetAsset      LineTargetKind = "asset_model"
	LineTargetConsumable LineTargetKind = "consumable_model"
)

// LineTarget points at exactly one catalog entry, either an asset model or a
// consumable model. The tagged form makes the illegal both/neither states
// unrepresentable.
type LineTarget struct {
	Kind    LineTargetKind
	ModelID int
}

// NewLineTarget builds a target from the nullable wire fields, enforcing the
// exclusive-or rule.
func NewLineTarget(assetModelID, consumableModelID *int) (LineTarget, error) {
	switch {
	case assetModelID != nil && consumableModelID != nil:
		return LineTarget{}, fmt.Errorf("line must reference an asset model or a consumable model, not both")
	case assetModelID != nil:
		return LineTarget{Kind: LineTargetAsset, ModelID: *assetModelID}, nil
	case consumableModelID != nil:
		return LineTarget{Kind: LineTargetConsumable, ModelID: *consumableModelID}, nil
	default:
		return LineTarget{}, fmt.Errorf("line must reference an asset model or a consumable model")
	}
}

type OrderLine struct {
	ID         int             `json:"id" db:"id"`
	OrderID    int             `json:"order_id" db:"order_id"`
	Target     LineTarget      `json:"-"`
	ModelCode  string          `json:"model_code,omitempty"`
	ModelName  string          `json:"model_name,omitempty"`
	Quantity   int             `json:"quantity" db:"quantity"`
	UnitPrice  decimal.Decimal `json:"unit_price" db:"unit_price"`
	TotalPrice decimal.Decimal `json:"total_price" db:"total_price"`
}

func (l OrderLine) MarshalJSON() ([]byte, error) {
	type alias OrderLine
	view := struct {
		alias
		AssetModelID      *int `json:"asset_model_id,omitempty"`
		ConsumableModelID *int `json:"consumable_model_id,omitempty"`
	}{alias: alias(l)}

	switch l.Target.Kind {
	case LineTargetAsset:
		view.AssetModelID = &l.Target.ModelID
	case LineTargetConsumable:
		view.ConsumableModelID = &l.Target.ModelID
	}

	return json.Marshal(view)
}

// FlatOrderRecord mirrors the joined order row shape coming from the database.
type FlatOrderRecord struct {
	ID           int             `db:"order_id"`
	Code         string          `db:"code"`
	OrderDate    Date            `db:"order_date"`
	CreatedBy    int             `db:"created_by"`
	Status       string          `db:"status"`
	Notes        string          `db:"notes"`
	TotalAmount  decimal.Decimal `db:"total_amount"`
	SupplierID   int             `db:"supplier_id"`
	SupplierName string          `db:"supplier_name"`
}

func (f *FlatOrderRecord) TransformToOrder() PurchaseOrder {
	return PurchaseOrder{
		ID:          f.ID,
		Code:        f.Code,
		OrderDate:   f.OrderDate,
		CreatedBy:   f.CreatedBy,
		Status:      OrderStatus(f.Status),
		Notes:       f.Notes,
		TotalAmount: f.TotalAmount,
		Supplier: Supplier{
			ID:   f.SupplierID,
			Name: f.SupplierName,
		},
	}
}

// FlatOrderLineRecord mirrors an order_lines row with its nullable model
// references, normalized into a LineTarget before leaving the repository.
type FlatOrderLineRecord struct {
	ID                int             `db:"id"`
	OrderID           int             `db:"order_id"`
	AssetModelID      *int            `db:"asset_model_id"`
	ConsumableModelID *int            `db:"consumable_model_id"`
	ModelCode         string          `db:"model_code"`
	ModelName         string          `db:"model_name"`
	Quantity          int             `db:"quantity"`
	UnitPrice         decimal.Decimal `db:"unit_price"`
	TotalPrice        decimal.Decimal `db:"total_price"`
}

func (f *FlatOrderLineRecord) TransformToLine() (OrderLine, error) {
	target, err := NewLineTarget(f.AssetModelID, f.ConsumableModelID)
	if err != nil {
		return OrderLine{}, fmt.Errorf("order line %d: %w", f.ID, err)
	}
	return OrderLine{
		ID:         f.ID,
		OrderID:    f.OrderID,
		Target:     target,
		ModelCode:  f.ModelCode,
		ModelName:  f.ModelName,
		Quantity:   f.Quantity,
		UnitPrice:  f.UnitPrice,
		TotalPrice: f.TotalPrice,
	}, nil
}

func (o *PurchaseOrder) CreateLogView() AuditLog {
	return AuditLog{
		ResourceID:   o.ID,
		ResourceType: "order",
	}
}

// StockInResult summarizes what fulfillment materialized for a completed order.
type StockInResult struct {
	AssetsCreated []Asset       `json:"assets_created"`
	StockUpdated  []StockChange `json:"stock_updated"`
}

type StockChange struct {
	ConsumableModelID int    `json:"consumable_model_id"`
	ModelName         string `json:"model_name,omitempty"`
	LocationID        int    `json:"location_id"`
	OldQuantity       int    `json:"old_quantity"`
	NewQuantity       int    `json:"new_quantity"`
}
