package holders

import (
	"fmt"

	"github.com/TaiHuynhPL/QLTBCNTT-sub000/internal/repository"
	custom_error "github.com/TaiHuynhPL/QLTBCNTT-sub000/pkg/errors"
	"github.com/TaiHuynhPL/QLTBCNTT-sub000/pkg/models"

	"github.com/doug-martin/goqu/v9"
	"github.com/lib/pq"
)

type HolderRepository struct {
	repository *repository.Repository
}

func NewRepository(r *repository.Repository) *HolderRepository {
	return &HolderRepository{repository: r}
}

func (r *HolderRepository) GetHolders() ([]models.AssetHolder, error) {
	holders := []models.AssetHolder{}
	query := r.repository.GoquDBWrapper.
		Select("id", "fullname", "department", "email").
		From("asset_holders").
		Order(goqu.I("fullname").Asc())

	if err := query.Executor().ScanStructs(&holders); err != nil {
		return nil, fmt.Errorf("unable to select holders from database: %s", err.Error())
	}

	return holders, nil
}

func (r *HolderRepository) GetHolder(id int) (*models.AssetHolder, error) {
	var holder models.AssetHolder
	query := r.repository.GoquDBWrapper.
		Select("id", "fullname", "department", "email").
		From("asset_holders").
		Where(goqu.Ex{"id": id})

	found, err := query.Executor().ScanStruct(&holder)
	if err != nil {
		return nil, fmt.Errorf("unable to select holder from database: %s", err.Error())
	}
	if !found {
		return nil, custom_error.NewNotFoundError("holder", id)
	}

	return &holder, nil
}

func (r *HolderRepository) PersistHolder(holder *models.AssetHolder) error {
	query := r.repository.GoquDBWrapper.Insert("asset_holders").
		Rows(goqu.Record{
			"fullname":   holder.Fullname,
			"department": holder.Department,
			"email":      holder.Email,
		}).
		Returning("id")

	if _, err := query.Executor().ScanVal(&holder.ID); err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			return custom_error.WrapDBError("Holder email is already registered", string(pqErr.Code))
		}
		return fmt.Errorf("failed to insert holder record: %w", err)
	}

	return nil
}

// RemoveHolder deletes a holder unless assignments or checkouts still
// reference them.
func (r *HolderRepository) RemoveHolder(id int) error {
	result, err := r.repository.GoquDBWrapper.
		Delete("asset_holders").
		Where(goqu.Ex{"id": id}).
		Executor().
		Exec()

	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			return custom_error.WrapDBError("Holder is still referenced by assignments or checkouts", string(pqErr.Code))
		}
		return fmt.Errorf("failed to delete holder: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("could not retrieve rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return custom_error.NewNotFoundError("holder", id)
	}

	return nil
}
