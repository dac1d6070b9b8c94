package assignments

import "github.com/TaiHuynhPL/QLTBCNTT-sub000/pkg/models"

type CheckOutRequest struct {
	AssetID        int         `json:"asset_id" binding:"required"`
	HolderID       *int        `json:"holder_id"`
	ParentAssetID  *int        `json:"parent_asset_id"`
	AssignmentDate models.Date `json:"assignment_date" binding:"required"`
	// ReturnDate records an already-completed loan in one call. When set, the
	// assignment is created closed and the asset status is left untouched.
	ReturnDate *models.Date `json:"return_date"`
}

type CheckInRequest struct {
	ReturnDate models.Date `json:"return_date" binding:"required"`
}
