package assets

import (
	"github.com/TaiHuynhPL/QLTBCNTT-sub000/pkg/models"

	"github.com/shopspring/decimal"
)

type CreateAssetRequest struct {
	Tag          string           `json:"tag" binding:"required"`
	Serial       *string          `json:"serial"`
	AssetModelID int              `json:"asset_model_id" binding:"required"`
	LocationID   int              `json:"location_id" binding:"required"`
	SupplierID   *int             `json:"supplier_id"`
	Status       string           `json:"status"`
	PurchaseDate *models.Date     `json:"purchase_date"`
	Cost         *decimal.Decimal `json:"cost"`
}
