package models

// AlertSeverity classifies how urgent a low-stock condition is. It is derived
// on read and never persisted.
type AlertSeverity string

const (
	SeverityCritical AlertSeverity = "critical"
	SeverityHigh     AlertSeverity = "high"
	SeverityMedium   AlertSeverity = "medium"
)

// ConsumableStock is the quantity ledger for one (consumable model, location)
// pair. Quantity never goes below zero.
type ConsumableStock struct {
	ID          int             `json:"id" db:"stock_id"`
	Model       ConsumableModel `json:"model"`
	Location    Location        `json:"location"`
	Quantity    int             `json:"quantity" db:"quantity"`
	MinQuantity int             `json:"min_quantity" db:"min_quantity"`
}

// AlertSeverity grades the current quantity against the alert threshold.
// Callers should only invoke it for rows already at or below the threshold.
func (s *ConsumableStock) AlertSeverity() AlertSeverity {
	switch {
	case s.Quantity == 0:
		return SeverityCritical
	case s.Quantity <= s.MinQuantity/2:
		return SeverityHigh
	default:
		return SeverityMedium
	}
}

// IsLow reports whether the row qualifies for low-stock alerting.
func (s *ConsumableStock) IsLow() bool {
	return s.Quantity <= s.MinQuantity
}

type StockAlert struct {
	Stock    ConsumableStock `json:"stock"`
	Severity AlertSeverity   `json:"severity"`
}

type FlatStockRecord struct {
	ID           int    `db:"stock_id"`
	Quantity     int    `db:"quantity"`
	MinQuantity  int    `db:"min_quantity"`
	ModelID      int    `db:"model_id"`
	ModelCode    string `db:"model_code"`
	ModelName    string `db:"model_name"`
	ModelUnit    string `db:"model_unit"`
	LocationID   int    `db:"location_id"`
	LocationName string `db:"location_name"`
}

func (f *FlatStockRecord) TransformToStock() ConsumableStock {
	return ConsumableStock{
		ID:          f.ID,
		Quantity:    f.Quantity,
		MinQuantity: f.MinQuantity,
		Model: ConsumableModel{
			ID:   f.ModelID,
			Code: f.ModelCode,
			Name: f.ModelName,
			Unit: f.ModelUnit,
		},
		Location: Location{
			ID:   f.LocationID,
			Name: f.LocationName,
		},
	}
}

func (s *ConsumableStock) CreateLogView() AuditLog {
	return AuditLog{
		ResourceID:   s.ID,
		ResourceType: "stock",
	}
}
