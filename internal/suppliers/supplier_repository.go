package suppliers

import (
	"fmt"

	"github.com/TaiHuynhPL/QLTBCNTT-sub000/internal/repository"
	custom_error "github.com/TaiHuynhPL/QLTBCNTT-sub000/pkg/errors"
	"github.com/TaiHuynhPL/QLTBCNTT-sub000/pkg/models"

	"github.com/doug-martin/goqu/v9"
	"github.com/lib/pq"
)

type SupplierRepository struct {
	repository *repository.Repository
}

func NewRepository(r *repository.Repository) *SupplierRepository {
	return &SupplierRepository{repository: r}
}

func (r *SupplierRepository) GetSuppliers() ([]models.Supplier, error) {
	suppliers := []models.Supplier{}
	query := r.repository.GoquDBWrapper.
		Select("id", "name", "address", "phone", "email").
		From("suppliers").
		Order(goqu.I("name").Asc())

	if err := query.Executor().ScanStructs(&suppliers); err != nil {
		return nil, fmt.Errorf("unable to select suppliers from database: %s", err.Error())
	}

	return suppliers, nil
}

func (r *SupplierRepository) GetSupplier(id int) (*models.Supplier, error) {
	var supplier models.Supplier
	query := r.repository.GoquDBWrapper.
		Select("id", "name", "address", "phone", "email").
		From("suppliers").
		Where(goqu.Ex{"id": id})

	found, err := query.Executor().ScanStruct(&supplier)
	if err != nil {
		return nil, fmt.Errorf("unable to select supplier from database: %s", err.Error())
	}
	if !found {
		return nil, custom_error.NewNotFoundError("supplier", id)
	}

	return &supplier, nil
}

func (r *SupplierRepository) PersistSupplier(supplier *models.Supplier) error {
	query := r.repository.GoquDBWrapper.Insert("suppliers").
		Rows(goqu.Record{
			"name":    supplier.Name,
			"address": supplier.Address,
			"phone":   supplier.Phone,
			"email":   supplier.Email,
		}).
		Returning("id")

	if _, err := query.Executor().ScanVal(&supplier.ID); err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			return custom_error.WrapDBError("Supplier name is already taken", string(pqErr.Code))
		}
		return fmt.Errorf("failed to insert supplier record: %w", err)
	}

	return nil
}

func (r *SupplierRepository) UpdateSupplier(id int, req UpdateSupplierRequest) (*models.Supplier, error) {
	updates := make(map[string]interface{})

	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Address != nil {
		updates["address"] = *req.Address
	}
	if req.Phone != nil {
		updates["phone"] = *req.Phone
	}
	if req.Email != nil {
		updates["email"] = *req.Email
	}
	if len(updates) == 0 {
		return nil, custom_error.NewValidationError("no fields to update", "")
	}

	var supplier models.Supplier
	query := r.repository.GoquDBWrapper.
		Update("suppliers").
		Set(updates).
		Where(goqu.Ex{"id": id}).
		Returning("id", "name", "address", "phone", "email")

	found, err := query.Executor().ScanStruct(&supplier)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			return nil, custom_error.WrapDBError("Supplier name is already taken", string(pqErr.Code))
		}
		return nil, fmt.Errorf("failed to update supplier: %w", err)
	}
	if !found {
		return nil, custom_error.NewNotFoundError("supplier", id)
	}

	return &supplier, nil
}

// RemoveSupplier deletes a supplier unless orders or assets still reference it.
func (r *SupplierRepository) RemoveSupplier(id int) error {
	result, err := r.repository.GoquDBWrapper.
		Delete("suppliers").
		Where(goqu.Ex{"id": id}).
		Executor().
		Exec()

	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			return custom_error.WrapDBError("Supplier is still referenced by orders or assets", string(pqErr.Code))
		}
		return fmt.Errorf("failed to delete supplier: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("could not retrieve rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return custom_error.NewNotFoundError("supplier", id)
	}

	return nil
}
