package assets

import (
	"fmt"

	"github.com/TaiHuynhPL/QLTBCNTT-sub000/internal/repository"
	custom_error "github.com/TaiHuynhPL/QLTBCNTT-sub000/pkg/errors"
	"github.com/TaiHuynhPL/QLTBCNTT-sub000/pkg/models"

	"github.com/doug-martin/goqu/v9"
	"github.com/doug-martin/goqu/v9/exp"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

type AssetsRepository struct {
	repository *repository.Repository
}

func NewRepository(r *repository.Repository) *AssetsRepository {
	return &AssetsRepository{
		repository: r,
	}
}

func (r *AssetsRepository) GetAsset(id int) (*models.Asset, error) {
	return r.fetchFlatAssetByCondition(goqu.Ex{"a.id": id})
}

func (r *AssetsRepository) FindAssetByTag(tag string) (*models.Asset, error) {
	return r.fetchFlatAssetByCondition(goqu.Ex{"a.tag": tag})
}

func (r *AssetsRepository) GetAssetList() (*[]models.Asset, error) {
	query := r.getAssetQuery().Order(goqu.I("a.id").Asc())

	var flatAssets []models.FlatAssetRecord
	err := query.Executor().ScanStructs(&flatAssets)

	if err != nil {
		return nil, fmt.Errorf("unable to select assets from database: %s", err.Error())
	}

	var assets []models.Asset
	for _, flatAsset := range flatAssets {
		assets = append(assets, flatAsset.TransformToAsset())
	}

	return &assets, nil
}

func (r *AssetsRepository) GetAssetsBy(conditions repository.QueryBuilder) (*[]models.Asset, error) {
	aliases := map[string]string{
		"location_id": "a.location_id",
		"model_id":    "a.asset_model_id",
		"status":      "a.status",
	}

	query := r.getAssetQuery().
		Where(conditions.BuildConditions(aliases)).
		Order(goqu.I("a.id").Asc())

	var flatAssets []models.FlatAssetRecord
	err := query.Executor().ScanStructs(&flatAssets)

	if err != nil {
		return nil, fmt.Errorf("unable to select assets from database: %s", err.Error())
	}

	var assets []models.Asset
	for _, flatAsset := range flatAssets {
		assets = append(assets, flatAsset.TransformToAsset())
	}

	return &assets, nil
}

// PersistAsset registers an asset manually, outside of order fulfillment.
func (r *AssetsRepository) PersistAsset(req CreateAssetRequest) (*models.Asset, error) {
	status := models.AssetStatusInStock
	if req.Status != "" {
		parsed, err := models.NewAssetStatus(req.Status)
		if err != nil {
			return nil, custom_error.NewValidationError(err.Error(), "status")
		}
		status = parsed
	}

	record := goqu.Record{
		"tag":            req.Tag,
		"asset_model_id": req.AssetModelID,
		"location_id":    req.LocationID,
		"status":         string(status),
	}
	if req.Serial != nil {
		record["serial"] = *req.Serial
	}
	if req.SupplierID != nil {
		record["supplier_id"] = *req.SupplierID
	}
	if req.PurchaseDate != nil {
		record["purchase_date"] = *req.PurchaseDate
	}
	if req.Cost != nil {
		record["cost"] = *req.Cost
	}

	var assetID int
	query := r.repository.GoquDBWrapper.Insert("assets").
		Rows(record).
		Returning("id")

	if _, err := query.Executor().ScanVal(&assetID); err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			return nil, custom_error.WrapDBError("Duplicate tag or serial number for asset", string(pqErr.Code))
		}
		return nil, fmt.Errorf("failed to insert asset record: %w", err)
	}

	return r.GetAsset(assetID)
}

// InsertAssetUnit creates one asset row inside the caller's transaction. Used
// by order fulfillment, which materializes one row per purchased unit.
func (r *AssetsRepository) InsertAssetUnit(tx *goqu.TxDatabase, unit AssetUnit) (int, error) {
	if tx == nil {
		return 0, fmt.Errorf("transaction is required for InsertAssetUnit")
	}

	record := goqu.Record{
		"tag":            unit.Tag,
		"serial":         unit.Serial,
		"asset_model_id": unit.AssetModelID,
		"location_id":    unit.LocationID,
		"status":         string(models.AssetStatusInStock),
		"cost":           unit.Cost,
		"purchase_date":  unit.PurchaseDate,
	}
	if unit.SupplierID != nil {
		record["supplier_id"] = *unit.SupplierID
	}

	var assetID int
	query := tx.Insert("assets").
		Rows(record).
		Returning("id")

	if _, err := query.Executor().ScanVal(&assetID); err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			return 0, custom_error.WrapDBError("Duplicate tag or serial number for asset", string(pqErr.Code))
		}
		return 0, fmt.Errorf("failed to insert asset record: %w", err)
	}

	return assetID, nil
}

// AssetUnit carries the fields fulfillment fills in per physical unit.
type AssetUnit struct {
	Tag          string
	Serial       string
	AssetModelID int
	LocationID   int
	SupplierID   *int
	Cost         decimal.Decimal
	PurchaseDate models.Date
}

// GetAssetForUpdate locks the asset row for the rest of the transaction so a
// concurrent check-out against the same asset has to wait.
func (r *AssetsRepository) GetAssetForUpdate(tx *goqu.TxDatabase, id int) (*models.Asset, error) {
	if tx == nil {
		return nil, fmt.Errorf("transaction is required for GetAssetForUpdate")
	}

	var row struct {
		ID     int    `db:"id"`
		Tag    string `db:"tag"`
		Status string `db:"status"`
	}
	query := tx.Select("id", "tag", "status").
		From("assets").
		Where(goqu.Ex{"id": id}).
		ForUpdate(exp.Wait)

	found, err := query.Executor().ScanStruct(&row)
	if err != nil {
		return nil, fmt.Errorf("failed to lock asset row: %w", err)
	}
	if !found {
		return nil, custom_error.NewNotFoundError("asset", id)
	}

	return &models.Asset{ID: row.ID, Tag: row.Tag, Status: models.AssetStatus(row.Status)}, nil
}

func (r *AssetsRepository) UpdateAssetStatus(tx *goqu.TxDatabase, assetID int, status models.AssetStatus) error {
	if tx == nil {
		return fmt.Errorf("transaction is required for UpdateAssetStatus")
	}

	result, err := tx.Update("assets").
		Set(goqu.Record{"status": string(status)}).
		Where(goqu.Ex{"id": assetID}).
		Executor().
		Exec()

	if err != nil {
		return fmt.Errorf("failed to update asset status: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return custom_error.NewNotFoundError("asset", assetID)
	}

	return nil
}

// CanRemoveAsset allows deleting only assets that are in stock and have never
// been assigned.
func (r *AssetsRepository) CanRemoveAsset(assetID int) (bool, error) {
	var id int
	query := r.repository.GoquDBWrapper.Select("assets.id").
		From(goqu.T("assets")).
		Where(goqu.Ex{
			"assets.id":     assetID,
			"assets.status": string(models.AssetStatusInStock),
		}).
		Where(goqu.L("NOT EXISTS (?)",
			r.repository.GoquDBWrapper.From(goqu.T("assignments").As("asg")).
				Select(goqu.L("1")).
				Where(goqu.Ex{
					"asg.asset_id": assetID,
				}),
		))
	result, err := query.Executor().ScanVal(&id)

	if err != nil {
		return false, fmt.Errorf("unable to execute sql: %w", err)
	}

	return result, nil
}

func (r *AssetsRepository) RemoveAsset(assetID int) (int, error) {
	var id int
	query := r.repository.GoquDBWrapper.
		Delete("assets").
		Where(goqu.Ex{"id": assetID}).
		Returning("id")

	found, err := query.Executor().ScanVal(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to delete asset: %w", err)
	}
	if !found {
		return 0, custom_error.NewNotFoundError("asset", assetID)
	}

	return id, nil
}

func (r *AssetsRepository) fetchFlatAssetByCondition(condition goqu.Expression) (*models.Asset, error) {
	query := r.getAssetQuery().Where(condition)

	var flatAsset models.FlatAssetRecord
	found, err := query.Executor().ScanStruct(&flatAsset)

	if err != nil {
		return nil, fmt.Errorf("unable to select asset from database: %s", err.Error())
	}
	if !found {
		return nil, custom_error.NewNotFoundError("asset", fmt.Sprintf("%v", condition))
	}
	asset := flatAsset.TransformToAsset()

	return &asset, nil
}

func (r *AssetsRepository) getAssetQuery() *goqu.SelectDataset {
	return r.repository.GoquDBWrapper.Select(
		goqu.I("a.id").As("asset_id"),
		goqu.I("a.tag").As("tag"),
		goqu.I("a.serial").As("serial"),
		"a.status",
		goqu.I("a.purchase_date").As("purchase_date"),
		goqu.I("a.cost").As("cost"),
		goqu.I("m.id").As("model_id"),
		goqu.I("m.code").As("model_code"),
		goqu.I("m.name").As("model_name"),
		goqu.I("l.id").As("location_id"),
		goqu.I("l.name").As("location_name"),
		goqu.I("sp.id").As("supplier_id"),
		goqu.I("sp.name").As("supplier_name"),
	).
		From(goqu.T("assets").As("a")).
		LeftJoin(
			goqu.T("asset_models").As("m"),
			goqu.On(goqu.Ex{"a.asset_model_id": goqu.I("m.id")}),
		).
		LeftJoin(
			goqu.T("locations").As("l"),
			goqu.On(goqu.Ex{"a.location_id": goqu.I("l.id")}),
		).
		LeftJoin(
			goqu.T("suppliers").As("sp"),
			goqu.On(goqu.Ex{"a.supplier_id": goqu.I("sp.id")}),
		)
}
