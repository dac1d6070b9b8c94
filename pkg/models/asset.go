package models

import (
	"fmt"

	"github.com/shopspring/decimal"
)

type AssetStatus string

const (
	AssetStatusInStock  AssetStatus = "in_stock"
	AssetStatusDeployed AssetStatus = "deployed"
	AssetStatusInRepair AssetStatus = "in_repair"
	AssetStatusRetired  AssetStatus = "retired"
)

func NewAssetStatus(value string) (AssetStatus, error) {
	status := AssetStatus(value)
	if !status.IsValid() {
		return "", fmt.Errorf("invalid asset status: %s", value)
	}
	return status, nil
}

func (s AssetStatus) IsValid() bool {
	switch s {
	case AssetStatusInStock, AssetStatusDeployed, AssetStatusInRepair, AssetStatusRetired:
		return true
	default:
		return false
	}
}

// Asset is one physical unit of tracked equipment. Status is the single
// source of truth for whether the unit is checked out.
type Asset struct {
	ID           int              `json:"id" db:"asset_id"`
	Tag          string           `json:"tag" db:"tag"`
	Serial       *string          `json:"serial,omitempty" db:"serial"`
	Status       AssetStatus      `json:"status" db:"status"`
	PurchaseDate *Date            `json:"purchase_date,omitempty"`
	Cost         *decimal.Decimal `json:"cost,omitempty"`
	Model        AssetModel       `json:"model"`
	Location     Location         `json:"location"`
	Supplier     *Supplier        `json:"supplier,omitempty"`
}

type FlatAssetRecord struct {
	ID           int              `db:"asset_id"`
	Tag          string           `db:"tag"`
	Serial       *string          `db:"serial"`
	Status       string           `db:"status"`
	PurchaseDate *Date            `db:"purchase_date"`
	Cost         *decimal.Decimal `db:"cost"`
	ModelID      int              `db:"model_id"`
	ModelCode    string           `db:"model_code"`
	ModelName    string           `db:"model_name"`
	LocationID   int              `db:"location_id"`
	LocationName string           `db:"location_name"`
	SupplierID   *int             `db:"supplier_id"`
	SupplierName *string          `db:"supplier_name"`
}

func (f *FlatAssetRecord) TransformToAsset() Asset {
	asset := Asset{
		ID:           f.ID,
		Tag:          f.Tag,
		Serial:       f.Serial,
		Status:       AssetStatus(f.Status),
		PurchaseDate: f.PurchaseDate,
		Cost:         f.Cost,
		Model: AssetModel{
			ID:   f.ModelID,
			Code: f.ModelCode,
			Name: f.ModelName,
		},
		Location: Location{
			ID:   f.LocationID,
			Name: f.LocationName,
		},
	}
	if f.SupplierID != nil {
		asset.Supplier = &Supplier{ID: *f.SupplierID}
		if f.SupplierName != nil {
			asset.Supplier.Name = *f.SupplierName
		}
	}
	return asset
}

func (a *Asset) CreateLogView() AuditLog {
	return AuditLog{
		ResourceID:   a.ID,
		ResourceType: "asset",
	}
}
