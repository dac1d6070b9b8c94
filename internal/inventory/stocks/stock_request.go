package stocks

type StockEntryRequest struct {
	ConsumableModelID int `json:"consumable_model_id" binding:"required"`
	LocationID        int `json:"location_id" binding:"required"`
	Quantity          int `json:"quantity" binding:"required"`
	MinQuantity       int `json:"min_quantity"`
}
