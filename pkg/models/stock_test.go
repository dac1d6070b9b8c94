package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAlertSeverity(t *testing.T) {
	tests := []struct {
		name     string
		quantity int
		min      int
		severity AlertSeverity
	}{
		{"zero is critical", 0, 10, SeverityCritical},
		{"at half threshold is high", 5, 10, SeverityHigh},
		{"below half threshold is high", 3, 10, SeverityHigh},
		{"above half but at threshold is medium", 8, 10, SeverityMedium},
		{"at threshold is medium", 10, 10, SeverityMedium},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stock := ConsumableStock{Quantity: tt.quantity, MinQuantity: tt.min}
			assert.Equal(t, tt.severity, stock.AlertSeverity())
		})
	}
}

func TestIsLow(t *testing.T) {
	low := ConsumableStock{Quantity: 5, MinQuantity: 5}
	assert.True(t, low.IsLow())

	healthy := ConsumableStock{Quantity: 6, MinQuantity: 5}
	assert.False(t, healthy.IsLow())
}
