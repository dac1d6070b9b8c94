package orders

import (
	"github.com/shopspring/decimal"

	"github.com/TaiHuynhPL/QLTBCNTT-sub000/pkg/models"
)

type CreateOrderRequest struct {
	SupplierID int                      `json:"supplier_id" binding:"required"`
	OrderDate  *models.Date             `json:"order_date"`
	Notes      string                   `json:"notes"`
	Lines      []CreateOrderLineRequest `json:"lines" binding:"required,min=1,dive"`
}

type CreateOrderLineRequest struct {
	AssetModelID      *int            `json:"asset_model_id"`
	ConsumableModelID *int            `json:"consumable_model_id"`
	Quantity          int             `json:"quantity" binding:"required,min=1"`
	UnitPrice         decimal.Decimal `json:"unit_price"`
}

type TransitionRequest struct {
	Status     string  `json:"status" binding:"required"`
	Notes      *string `json:"notes"`
	LocationID *int    `json:"location_id"`
}
