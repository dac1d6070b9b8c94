package orders

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNextCodeAfter(t *testing.T) {
	const prefix = "PO-20260901"

	t.Run("first code of the day", func(t *testing.T) {
		code, err := nextCodeAfter(prefix, "")

		assert.NoError(t, err)
		assert.Equal(t, "PO-202609010001", code)
	})

	t.Run("follows the highest code, not the order count", func(t *testing.T) {
		// Codes 0001 and 0002 were issued and 0001 was deleted; the next
		// code must still advance past 0002.
		code, err := nextCodeAfter(prefix, "PO-202609010002")

		assert.NoError(t, err)
		assert.Equal(t, "PO-202609010003", code)
	})

	t.Run("malformed latest code is surfaced", func(t *testing.T) {
		_, err := nextCodeAfter(prefix, "PO-20260901XXXX")

		assert.Error(t, err)
	})
}
