package assignments

import (
	"fmt"

	"github.com/TaiHuynhPL/QLTBCNTT-sub000/internal/repository"
	custom_error "github.com/TaiHuynhPL/QLTBCNTT-sub000/pkg/errors"
	"github.com/TaiHuynhPL/QLTBCNTT-sub000/pkg/models"

	"github.com/doug-martin/goqu/v9"
	"github.com/doug-martin/goqu/v9/exp"
	"github.com/lib/pq"
)

type AssignmentRepository struct {
	repository *repository.Repository
}

func NewRepository(r *repository.Repository) *AssignmentRepository {
	return &AssignmentRepository{repository: r}
}

// HasOpenAssignment reports whether the asset currently has an assignment
// without a return date. Callers must hold the asset row lock so the answer
// stays true until commit.
func (r *AssignmentRepository) HasOpenAssignment(tx *goqu.TxDatabase, assetID int) (bool, error) {
	if tx == nil {
		return false, fmt.Errorf("transaction is required for HasOpenAssignment")
	}

	var count int
	_, err := tx.Select(goqu.COUNT("*")).
		From("assignments").
		Where(goqu.Ex{
			"asset_id":    assetID,
			"return_date": nil,
		}).
		Executor().
		ScanVal(&count)

	if err != nil {
		return false, fmt.Errorf("failed to check open assignments: %w", err)
	}

	return count > 0, nil
}

func (r *AssignmentRepository) InsertAssignment(tx *goqu.TxDatabase, assetID int, target models.AssignmentTarget, date models.Date, returnDate *models.Date) (int, error) {
	if tx == nil {
		return 0, fmt.Errorf("transaction is required for InsertAssignment")
	}

	record := goqu.Record{
		"asset_id":        assetID,
		"assignment_date": date,
	}
	if returnDate != nil {
		record["return_date"] = *returnDate
	}
	switch target.Kind {
	case models.AssignmentTargetHolder:
		record["holder_id"] = target.ID
	case models.AssignmentTargetParentAsset:
		record["parent_asset_id"] = target.ID
	default:
		return 0, fmt.Errorf("assignment target is not set")
	}

	var assignmentID int
	query := tx.Insert("assignments").
		Rows(record).
		Returning("id")

	if _, err := query.Executor().ScanVal(&assignmentID); err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			return 0, custom_error.WrapDBError("Assignment references a missing holder or asset", string(pqErr.Code))
		}
		return 0, fmt.Errorf("failed to insert assignment record: %w", err)
	}

	return assignmentID, nil
}

// GetAssignmentForUpdate locks the assignment row so a concurrent return of
// the same assignment has to wait.
func (r *AssignmentRepository) GetAssignmentForUpdate(tx *goqu.TxDatabase, id int) (*models.Assignment, error) {
	if tx == nil {
		return nil, fmt.Errorf("transaction is required for GetAssignmentForUpdate")
	}

	var flat models.FlatAssignmentRecord
	query := tx.Select("id", "asset_id", "holder_id", "parent_asset_id", "assignment_date", "return_date").
		From("assignments").
		Where(goqu.Ex{"id": id}).
		ForUpdate(exp.Wait)

	found, err := query.Executor().ScanStruct(&flat)
	if err != nil {
		return nil, fmt.Errorf("failed to lock assignment row: %w", err)
	}
	if !found {
		return nil, custom_error.NewNotFoundError("assignment", id)
	}

	assignment, err := flat.TransformToAssignment()
	if err != nil {
		return nil, err
	}
	return &assignment, nil
}

func (r *AssignmentRepository) CloseAssignment(tx *goqu.TxDatabase, id int, returnDate models.Date) error {
	if tx == nil {
		return fmt.Errorf("transaction is required for CloseAssignment")
	}

	result, err := tx.Update("assignments").
		Set(goqu.Record{"return_date": returnDate}).
		Where(goqu.Ex{"id": id, "return_date": nil}).
		Executor().
		Exec()

	if err != nil {
		return fmt.Errorf("failed to close assignment: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return custom_error.NewConflictError("Assignment is already returned")
	}

	return nil
}

func (r *AssignmentRepository) GetAssignment(id int) (*models.Assignment, error) {
	var flat models.FlatAssignmentRecord
	query := r.getAssignmentQuery().Where(goqu.Ex{"asg.id": id})

	found, err := query.Executor().ScanStruct(&flat)
	if err != nil {
		return nil, fmt.Errorf("unable to select assignment from database: %s", err.Error())
	}
	if !found {
		return nil, custom_error.NewNotFoundError("assignment", id)
	}

	assignment, err := flat.TransformToAssignment()
	if err != nil {
		return nil, err
	}
	return &assignment, nil
}

// GetAssetAssignments returns the asset's full check-out history, newest
// first. The open assignment, if any, comes before closed ones.
func (r *AssignmentRepository) GetAssetAssignments(assetID int) ([]models.Assignment, error) {
	query := r.getAssignmentQuery().
		Where(goqu.Ex{"asg.asset_id": assetID}).
		Order(goqu.I("asg.assignment_date").Desc(), goqu.I("asg.id").Desc())

	var flats []models.FlatAssignmentRecord
	if err := query.Executor().ScanStructs(&flats); err != nil {
		return nil, fmt.Errorf("unable to select assignments from database: %s", err.Error())
	}

	assignments := []models.Assignment{}
	for _, flat := range flats {
		assignment, err := flat.TransformToAssignment()
		if err != nil {
			return nil, err
		}
		assignments = append(assignments, assignment)
	}

	return assignments, nil
}

func (r *AssignmentRepository) getAssignmentQuery() *goqu.SelectDataset {
	return r.repository.GoquDBWrapper.
		Select(
			goqu.I("asg.id").As("id"),
			goqu.I("asg.asset_id").As("asset_id"),
			goqu.I("asg.holder_id").As("holder_id"),
			goqu.I("asg.parent_asset_id").As("parent_asset_id"),
			goqu.I("h.fullname").As("holder_name"),
			goqu.I("asg.assignment_date").As("assignment_date"),
			goqu.I("asg.return_date").As("return_date"),
		).
		From(goqu.T("assignments").As("asg")).
		LeftJoin(
			goqu.T("asset_holders").As("h"),
			goqu.On(goqu.Ex{"asg.holder_id": goqu.I("h.id")}),
		)
}
