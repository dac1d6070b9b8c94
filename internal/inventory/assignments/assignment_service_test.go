package assignments

import (
	"testing"

	custom_error "github.com/TaiHuynhPL/QLTBCNTT-sub000/pkg/errors"
	"github.com/TaiHuynhPL/QLTBCNTT-sub000/pkg/models"

	"github.com/stretchr/testify/assert"
)

func TestCheckOutValidation(t *testing.T) {
	service := &AssignmentService{}
	holderID := 3
	parentID := 8
	date := models.NewDate(2026, 9, 1)

	t.Run("both targets rejected", func(t *testing.T) {
		_, err := service.CheckOut(CheckOutRequest{
			AssetID:        1,
			HolderID:       &holderID,
			ParentAssetID:  &parentID,
			AssignmentDate: date,
		})

		var invariantErr *custom_error.InvariantError
		assert.ErrorAs(t, err, &invariantErr)
	})

	t.Run("neither target rejected", func(t *testing.T) {
		_, err := service.CheckOut(CheckOutRequest{
			AssetID:        1,
			AssignmentDate: date,
		})

		var invariantErr *custom_error.InvariantError
		assert.ErrorAs(t, err, &invariantErr)
	})

	t.Run("self assignment rejected", func(t *testing.T) {
		selfID := 1
		_, err := service.CheckOut(CheckOutRequest{
			AssetID:        1,
			ParentAssetID:  &selfID,
			AssignmentDate: date,
		})

		var invariantErr *custom_error.InvariantError
		assert.ErrorAs(t, err, &invariantErr)
	})

	t.Run("return before assignment rejected", func(t *testing.T) {
		returned := models.NewDate(2026, 8, 30)
		_, err := service.CheckOut(CheckOutRequest{
			AssetID:        1,
			HolderID:       &holderID,
			AssignmentDate: date,
			ReturnDate:     &returned,
		})

		var invariantErr *custom_error.InvariantError
		assert.ErrorAs(t, err, &invariantErr)
	})

	t.Run("missing date rejected", func(t *testing.T) {
		_, err := service.CheckOut(CheckOutRequest{
			AssetID:  1,
			HolderID: &holderID,
		})

		var validationErr *custom_error.ValidationError
		assert.ErrorAs(t, err, &validationErr)
	})
}

func TestLockOrder(t *testing.T) {
	t.Run("holder target locks only the asset", func(t *testing.T) {
		target := models.AssignmentTarget{Kind: models.AssignmentTargetHolder, ID: 3}

		assert.Equal(t, []int{7}, lockOrder(7, target))
	})

	t.Run("parent targets lock ascending regardless of direction", func(t *testing.T) {
		lower := models.AssignmentTarget{Kind: models.AssignmentTargetParentAsset, ID: 2}
		higher := models.AssignmentTarget{Kind: models.AssignmentTargetParentAsset, ID: 9}

		assert.Equal(t, []int{2, 7}, lockOrder(7, lower))
		assert.Equal(t, []int{7, 9}, lockOrder(7, higher))
	})
}

func TestCheckInValidation(t *testing.T) {
	service := &AssignmentService{}

	_, err := service.CheckIn(1, models.Date{})

	var validationErr *custom_error.ValidationError
	assert.ErrorAs(t, err, &validationErr)
}
