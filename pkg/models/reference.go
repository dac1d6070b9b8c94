package models

type Location struct {
	ID      int    `json:"id" db:"id"`
	Name    string `json:"name" db:"name"`
	Details string `json:"details,omitempty" db:"details"`
}

type Supplier struct {
	ID      int    `json:"id" db:"id"`
	Name    string `json:"name" db:"name"`
	Address string `json:"address,omitempty" db:"address"`
	Phone   string `json:"phone,omitempty" db:"phone"`
	Email   string `json:"email,omitempty" db:"email"`
}

// AssetHolder is a person equipment or supplies are handed out to.
type AssetHolder struct {
	ID         int    `json:"id" db:"id"`
	Fullname   string `json:"fullname" db:"fullname"`
	Department string `json:"department,omitempty" db:"department"`
	Email      string `json:"email,omitempty" db:"email"`
}

// AssetModel is a catalog entry for serialized, individually tracked equipment.
type AssetModel struct {
	ID           int    `json:"id" db:"id"`
	Code         string `json:"code" db:"code"`
	Name         string `json:"name" db:"name"`
	Manufacturer string `json:"manufacturer,omitempty" db:"manufacturer"`
}

// ConsumableModel is a catalog entry for supplies tracked by quantity only.
type ConsumableModel struct {
	ID   int    `json:"id" db:"id"`
	Code string `json:"code" db:"code"`
	Name string `json:"name" db:"name"`
	Unit string `json:"unit,omitempty" db:"unit"`
}
