package catalog

import (
	"fmt"

	"github.com/TaiHuynhPL/QLTBCNTT-sub000/internal/repository"
	custom_error "github.com/TaiHuynhPL/QLTBCNTT-sub000/pkg/errors"
	"github.com/TaiHuynhPL/QLTBCNTT-sub000/pkg/models"

	"github.com/doug-martin/goqu/v9"
	"github.com/lib/pq"
)

// CatalogRepository manages the two model registries equipment and supplies
// are described by: asset models for serialized units, consumable models for
// quantity-tracked stock.
type CatalogRepository struct {
	repository *repository.Repository
}

func NewRepository(r *repository.Repository) *CatalogRepository {
	return &CatalogRepository{repository: r}
}

func (r *CatalogRepository) GetAssetModels() ([]models.AssetModel, error) {
	assetModels := []models.AssetModel{}
	query := r.repository.GoquDBWrapper.
		Select("id", "code", "name", "manufacturer").
		From("asset_models").
		Order(goqu.I("code").Asc())

	if err := query.Executor().ScanStructs(&assetModels); err != nil {
		return nil, fmt.Errorf("unable to select asset models from database: %s", err.Error())
	}

	return assetModels, nil
}

func (r *CatalogRepository) GetAssetModel(id int) (*models.AssetModel, error) {
	var assetModel models.AssetModel
	query := r.repository.GoquDBWrapper.
		Select("id", "code", "name", "manufacturer").
		From("asset_models").
		Where(goqu.Ex{"id": id})

	found, err := query.Executor().ScanStruct(&assetModel)
	if err != nil {
		return nil, fmt.Errorf("unable to select asset model from database: %s", err.Error())
	}
	if !found {
		return nil, custom_error.NewNotFoundError("asset model", id)
	}

	return &assetModel, nil
}

func (r *CatalogRepository) PersistAssetModel(assetModel *models.AssetModel) error {
	query := r.repository.GoquDBWrapper.Insert("asset_models").
		Rows(goqu.Record{
			"code":         assetModel.Code,
			"name":         assetModel.Name,
			"manufacturer": assetModel.Manufacturer,
		}).
		Returning("id")

	if _, err := query.Executor().ScanVal(&assetModel.ID); err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			return custom_error.WrapDBError("Asset model code is already taken", string(pqErr.Code))
		}
		return fmt.Errorf("failed to insert asset model record: %w", err)
	}

	return nil
}

func (r *CatalogRepository) RemoveAssetModel(id int) error {
	return r.remove("asset_models", "asset model", id, "Asset model is still referenced by assets or order lines")
}

func (r *CatalogRepository) GetConsumableModels() ([]models.ConsumableModel, error) {
	consumableModels := []models.ConsumableModel{}
	query := r.repository.GoquDBWrapper.
		Select("id", "code", "name", "unit").
		From("consumable_models").
		Order(goqu.I("code").Asc())

	if err := query.Executor().ScanStructs(&consumableModels); err != nil {
		return nil, fmt.Errorf("unable to select consumable models from database: %s", err.Error())
	}

	return consumableModels, nil
}

func (r *CatalogRepository) GetConsumableModel(id int) (*models.ConsumableModel, error) {
	var consumableModel models.ConsumableModel
	query := r.repository.GoquDBWrapper.
		Select("id", "code", "name", "unit").
		From("consumable_models").
		Where(goqu.Ex{"id": id})

	found, err := query.Executor().ScanStruct(&consumableModel)
	if err != nil {
		return nil, fmt.Errorf("unable to select consumable model from database: %s", err.Error())
	}
	if !found {
		return nil, custom_error.NewNotFoundError("consumable model", id)
	}

	return &consumableModel, nil
}

func (r *CatalogRepository) PersistConsumableModel(consumableModel *models.ConsumableModel) error {
	query := r.repository.GoquDBWrapper.Insert("consumable_models").
		Rows(goqu.Record{
			"code": consumableModel.Code,
			"name": consumableModel.Name,
			"unit": consumableModel.Unit,
		}).
		Returning("id")

	if _, err := query.Executor().ScanVal(&consumableModel.ID); err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			return custom_error.WrapDBError("Consumable model code is already taken", string(pqErr.Code))
		}
		return fmt.Errorf("failed to insert consumable model record: %w", err)
	}

	return nil
}

func (r *CatalogRepository) RemoveConsumableModel(id int) error {
	return r.remove("consumable_models", "consumable model", id, "Consumable model is still referenced by stock or order lines")
}

func (r *CatalogRepository) remove(table, resource string, id int, referencedMsg string) error {
	result, err := r.repository.GoquDBWrapper.
		Delete(table).
		Where(goqu.Ex{"id": id}).
		Executor().
		Exec()

	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			return custom_error.WrapDBError(referencedMsg, string(pqErr.Code))
		}
		return fmt.Errorf("failed to delete %s: %w", resource, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("could not retrieve rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return custom_error.NewNotFoundError(resource, id)
	}

	return nil
}
