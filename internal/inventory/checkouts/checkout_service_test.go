package checkouts

import (
	"testing"

	custom_error "github.com/TaiHuynhPL/QLTBCNTT-sub000/pkg/errors"

	"github.com/stretchr/testify/assert"
)

func TestCheckoutRejectsNonPositiveQuantity(t *testing.T) {
	service := &CheckoutService{}

	for _, quantity := range []int{0, -3} {
		_, err := service.Checkout(CheckoutRequest{
			ConsumableModelID: 1,
			LocationID:        1,
			HolderID:          1,
			Quantity:          quantity,
		})

		var validationErr *custom_error.ValidationError
		assert.ErrorAs(t, err, &validationErr)
	}
}

func TestInsufficientStockErrorCarriesQuantities(t *testing.T) {
	err := &custom_error.InsufficientStockError{Requested: 10, Available: 4}

	assert.Contains(t, err.Error(), "10")
	assert.Contains(t, err.Error(), "4")
}
