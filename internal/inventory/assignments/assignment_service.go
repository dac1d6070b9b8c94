package assignments

import (
	"fmt"

	"github.com/TaiHuynhPL/QLTBCNTT-sub000/internal/inventory/assets"
	"github.com/TaiHuynhPL/QLTBCNTT-sub000/internal/repository"
	custom_error "github.com/TaiHuynhPL/QLTBCNTT-sub000/pkg/errors"
	"github.com/TaiHuynhPL/QLTBCNTT-sub000/pkg/models"

	"github.com/doug-martin/goqu/v9"
)

type AssignmentService struct {
	r  *repository.Repository
	ar *AssignmentRepository
	as *assets.AssetsRepository
}

func NewService(r *repository.Repository, ar *AssignmentRepository, as *assets.AssetsRepository) *AssignmentService {
	return &AssignmentService{r: r, ar: ar, as: as}
}

// CheckOut opens an assignment for the asset and flips its status to
// deployed. The asset row is locked for the whole transaction, so the
// open-assignment check cannot race with a concurrent check-out.
func (s *AssignmentService) CheckOut(req CheckOutRequest) (*models.Assignment, error) {
	target, err := models.NewAssignmentTarget(req.HolderID, req.ParentAssetID)
	if err != nil {
		return nil, custom_error.NewInvariantError(err.Error())
	}
	if target.Kind == models.AssignmentTargetParentAsset && target.ID == req.AssetID {
		return nil, custom_error.NewInvariantError("asset cannot be assigned to itself")
	}
	if req.AssignmentDate.IsZero() {
		return nil, custom_error.NewValidationError("assignment_date is required", "assignment_date")
	}
	if req.ReturnDate != nil && req.ReturnDate.Before(req.AssignmentDate.Time) {
		return nil, custom_error.NewInvariantError("return date cannot precede assignment date")
	}

	var assignmentID int

	err = repository.WithTransaction(s.r.GoquDBWrapper, func(tx *goqu.TxDatabase) error {
		var asset *models.Asset
		for _, id := range lockOrder(req.AssetID, target) {
			locked, err := s.as.GetAssetForUpdate(tx, id)
			if err != nil {
				return err
			}
			if id == req.AssetID {
				asset = locked
			}
		}

		// A pre-closed assignment is a historical record; it does not
		// contend for the asset and leaves its status alone.
		if req.ReturnDate != nil {
			assignmentID, err = s.ar.InsertAssignment(tx, asset.ID, target, req.AssignmentDate, req.ReturnDate)
			return err
		}

		open, err := s.ar.HasOpenAssignment(tx, asset.ID)
		if err != nil {
			return err
		}
		if open {
			return custom_error.NewConflictError(fmt.Sprintf("Asset %s is already assigned", asset.Tag))
		}

		if assignmentID, err = s.ar.InsertAssignment(tx, asset.ID, target, req.AssignmentDate, nil); err != nil {
			return err
		}

		return s.as.UpdateAssetStatus(tx, asset.ID, models.AssetStatusDeployed)
	})

	if err != nil {
		return nil, err
	}

	return s.ar.GetAssignment(assignmentID)
}

// CheckIn closes the assignment and restores the asset to in_stock. Both
// writes happen in one transaction.
func (s *AssignmentService) CheckIn(assignmentID int, returnDate models.Date) (*models.Assignment, error) {
	if returnDate.IsZero() {
		return nil, custom_error.NewValidationError("return_date is required", "return_date")
	}

	err := repository.WithTransaction(s.r.GoquDBWrapper, func(tx *goqu.TxDatabase) error {
		assignment, err := s.ar.GetAssignmentForUpdate(tx, assignmentID)
		if err != nil {
			return err
		}

		if !assignment.IsOpen() {
			return custom_error.NewConflictError("Assignment is already returned")
		}

		if returnDate.Before(assignment.AssignmentDate.Time) {
			return custom_error.NewInvariantError("return date cannot precede assignment date")
		}

		if err := s.ar.CloseAssignment(tx, assignmentID, returnDate); err != nil {
			return err
		}

		return s.as.UpdateAssetStatus(tx, assignment.AssetID, models.AssetStatusInStock)
	})

	if err != nil {
		return nil, err
	}

	return s.ar.GetAssignment(assignmentID)
}

// lockOrder lists the asset rows a check-out must lock, ascending by ID.
// Opposite-direction parent assignments then acquire their locks in the same
// order and cannot deadlock each other.
func lockOrder(assetID int, target models.AssignmentTarget) []int {
	if target.Kind != models.AssignmentTargetParentAsset {
		return []int{assetID}
	}
	if target.ID < assetID {
		return []int{target.ID, assetID}
	}
	return []int{assetID, target.ID}
}

// GetAssetHistory lists the asset's assignments, newest first.
func (s *AssignmentService) GetAssetHistory(assetID int) ([]models.Assignment, error) {
	if _, err := s.as.GetAsset(assetID); err != nil {
		return nil, err
	}
	return s.ar.GetAssetAssignments(assetID)
}
