package models

import (
	"encoding/json"
	"fmt"
)

// AssignmentTargetKind discriminates who an asset is checked out to.
type AssignmentTargetKind string

const (
	AssignmentTargetHolder      AssignmentTargetKind = "holder"
	AssignmentTargetParentAsset AssignmentTargetKind = "parent_asset"
)

// AssignmentTarget is either a person or a parent asset (sub-component
// mounting), never both.
type AssignmentTarget struct {
	Kind AssignmentTargetKind
	ID   int
}

// NewAssignmentTarget builds a target from the nullable wire fields, enforcing
// the exclusive-or rule before any write happens.
func NewAssignmentTarget(holderID, parentAssetID *int) (AssignmentTarget, error) {
	switch {
	case holderID != nil && parentAssetID != nil:
		return AssignmentTarget{}, fmt.Errorf("assignment must reference a holder or a parent asset, not both")
	case holderID != nil:
		return AssignmentTarget{Kind: AssignmentTargetHolder, ID: *holderID}, nil
	case parentAssetID != nil:
		return AssignmentTarget{Kind: AssignmentTargetParentAsset, ID: *parentAssetID}, nil
	default:
		return AssignmentTarget{}, fmt.Errorf("assignment must reference a holder or a parent asset")
	}
}

// Assignment links one asset to its current (or historical) target. A null
// return date marks the assignment as open; at most one open assignment may
// exist per asset.
type Assignment struct {
	ID             int              `json:"id" db:"id"`
	AssetID        int              `json:"asset_id" db:"asset_id"`
	Target         AssignmentTarget `json:"-"`
	HolderName     string           `json:"holder_name,omitempty"`
	AssignmentDate Date             `json:"assignment_date" db:"assignment_date"`
	ReturnDate     *Date            `json:"return_date" db:"return_date"`
}

func (a Assignment) MarshalJSON() ([]byte, error) {
	type alias Assignment
	view := struct {
		alias
		HolderID      *int `json:"holder_id,omitempty"`
		ParentAssetID *int `json:"parent_asset_id,omitempty"`
	}{alias: alias(a)}

	switch a.Target.Kind {
	case AssignmentTargetHolder:
		view.HolderID = &a.Target.ID
	case AssignmentTargetParentAsset:
		view.ParentAssetID = &a.Target.ID
	}

	return json.Marshal(view)
}

// IsOpen reports whether the asset is still out.
func (a *Assignment) IsOpen() bool {
	return a.ReturnDate == nil
}

type FlatAssignmentRecord struct {
	ID             int     `db:"id"`
	AssetID        int     `db:"asset_id"`
	HolderID       *int    `db:"holder_id"`
	ParentAssetID  *int    `db:"parent_asset_id"`
	HolderName     *string `db:"holder_name"`
	AssignmentDate Date    `db:"assignment_date"`
	ReturnDate     *Date   `db:"return_date"`
}

func (f *FlatAssignmentRecord) TransformToAssignment() (Assignment, error) {
	target, err := NewAssignmentTarget(f.HolderID, f.ParentAssetID)
	if err != nil {
		return Assignment{}, fmt.Errorf("assignment %d: %w", f.ID, err)
	}
	assignment := Assignment{
		ID:             f.ID,
		AssetID:        f.AssetID,
		Target:         target,
		AssignmentDate: f.AssignmentDate,
		ReturnDate:     f.ReturnDate,
	}
	if f.HolderName != nil {
		assignment.HolderName = *f.HolderName
	}
	return assignment, nil
}

func (a *Assignment) CreateLogView() AuditLog {
	return AuditLog{
		ResourceID:   a.ID,
		ResourceType: "assignment",
	}
}
