package locations

import (
	"fmt"

	"github.com/TaiHuynhPL/QLTBCNTT-sub000/internal/repository"
	custom_error "github.com/TaiHuynhPL/QLTBCNTT-sub000/pkg/errors"
	"github.com/TaiHuynhPL/QLTBCNTT-sub000/pkg/models"

	"github.com/doug-martin/goqu/v9"
	"github.com/lib/pq"
)

type LocationRepository struct {
	repository *repository.Repository
}

func NewRepository(r *repository.Repository) *LocationRepository {
	return &LocationRepository{repository: r}
}

func (r *LocationRepository) GetLocations() ([]models.Location, error) {
	locations := []models.Location{}
	query := r.repository.GoquDBWrapper.
		Select("id", "name", "details").
		From("locations").
		Order(goqu.I("name").Asc())

	if err := query.Executor().ScanStructs(&locations); err != nil {
		return nil, fmt.Errorf("unable to select locations from database: %s", err.Error())
	}

	return locations, nil
}

func (r *LocationRepository) GetLocation(id int) (*models.Location, error) {
	var location models.Location
	query := r.repository.GoquDBWrapper.
		Select("id", "name", "details").
		From("locations").
		Where(goqu.Ex{"id": id})

	found, err := query.Executor().ScanStruct(&location)
	if err != nil {
		return nil, fmt.Errorf("unable to select location from database: %s", err.Error())
	}
	if !found {
		return nil, custom_error.NewNotFoundError("location", id)
	}

	return &location, nil
}

// ResolveDestination verifies an explicit delivery location, or falls back to
// the first registered location as the default warehouse.
func (r *LocationRepository) ResolveDestination(tx *goqu.TxDatabase, destinationID *int) (int, error) {
	if destinationID != nil {
		var exists int
		found, err := tx.Select("id").
			From("locations").
			Where(goqu.Ex{"id": *destinationID}).
			Executor().
			ScanVal(&exists)
		if err != nil {
			return 0, fmt.Errorf("failed to check destination location: %w", err)
		}
		if !found {
			return 0, custom_error.NewNotFoundError("location", *destinationID)
		}
		return *destinationID, nil
	}

	var locationID int
	found, err := tx.Select("id").
		From("locations").
		Order(goqu.I("id").Asc()).
		Limit(1).
		Executor().
		ScanVal(&locationID)
	if err != nil {
		return 0, fmt.Errorf("failed to resolve default location: %w", err)
	}
	if !found {
		return 0, custom_error.NewInvariantError("no location exists to receive the delivery")
	}

	return locationID, nil
}

func (r *LocationRepository) PersistLocation(location *models.Location) error {
	query := r.repository.GoquDBWrapper.Insert("locations").
		Rows(goqu.Record{
			"name":    location.Name,
			"details": location.Details,
		}).
		Returning("id")

	if _, err := query.Executor().ScanVal(&location.ID); err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			return custom_error.WrapDBError("Location name is already taken", string(pqErr.Code))
		}
		return fmt.Errorf("failed to insert location record: %w", err)
	}

	return nil
}

func (r *LocationRepository) UpdateLocation(id int, req UpdateLocationRequest) (*models.Location, error) {
	updates := make(map[string]interface{})

	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Details != nil {
		updates["details"] = *req.Details
	}
	if len(updates) == 0 {
		return nil, custom_error.NewValidationError("no fields to update", "")
	}

	var location models.Location
	query := r.repository.GoquDBWrapper.
		Update("locations").
		Set(updates).
		Where(goqu.Ex{"id": id}).
		Returning("id", "name", "details")

	found, err := query.Executor().ScanStruct(&location)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			return nil, custom_error.WrapDBError("Location name is already taken", string(pqErr.Code))
		}
		return nil, fmt.Errorf("failed to update location: %w", err)
	}
	if !found {
		return nil, custom_error.NewNotFoundError("location", id)
	}

	return &location, nil
}

// RemoveLocation deletes a location. Assets and stock referencing it keep it
// alive through foreign keys, surfaced as a conflict.
func (r *LocationRepository) RemoveLocation(id int) error {
	result, err := r.repository.GoquDBWrapper.
		Delete("locations").
		Where(goqu.Ex{"id": id}).
		Executor().
		Exec()

	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			return custom_error.WrapDBError("Location is still referenced by inventory", string(pqErr.Code))
		}
		return fmt.Errorf("failed to delete location: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("could not retrieve rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return custom_error.NewNotFoundError("location", id)
	}

	return nil
}
