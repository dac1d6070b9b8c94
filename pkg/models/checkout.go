package models

// ConsumableCheckout is an immutable receipt of supplies handed to a holder.
// It is created atomically with the stock decrement and never changes.
type ConsumableCheckout struct {
	ID           int             `json:"id" db:"id"`
	Model        ConsumableModel `json:"model"`
	Location     Location        `json:"location"`
	Holder       AssetHolder     `json:"holder"`
	Quantity     int             `json:"quantity" db:"quantity"`
	CheckoutDate Date            `json:"checkout_date" db:"checkout_date"`
}

type FlatCheckoutRecord struct {
	ID           int    `db:"checkout_id"`
	Quantity     int    `db:"quantity"`
	CheckoutDate Date   `db:"checkout_date"`
	ModelID      int    `db:"model_id"`
	ModelName    string `db:"model_name"`
	ModelUnit    string `db:"model_unit"`
	LocationID   int    `db:"location_id"`
	LocationName string `db:"location_name"`
	HolderID     int    `db:"holder_id"`
	HolderName   string `db:"holder_name"`
}

func (f *FlatCheckoutRecord) TransformToCheckout() ConsumableCheckout {
	return ConsumableCheckout{
		ID:           f.ID,
		Quantity:     f.Quantity,
		CheckoutDate: f.CheckoutDate,
		Model: ConsumableModel{
			ID:   f.ModelID,
			Name: f.ModelName,
			Unit: f.ModelUnit,
		},
		Location: Location{
			ID:   f.LocationID,
			Name: f.LocationName,
		},
		Holder: AssetHolder{
			ID:       f.HolderID,
			Fullname: f.HolderName,
		},
	}
}

func (c *ConsumableCheckout) CreateLogView() AuditLog {
	return AuditLog{
		ResourceID:   c.ID,
		ResourceType: "checkout",
	}
}
