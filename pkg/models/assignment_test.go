package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewAssignmentTarget(t *testing.T) {
	holderID := 4
	parentID := 9

	t.Run("holder target", func(t *testing.T) {
		target, err := NewAssignmentTarget(&holderID, nil)
		assert.NoError(t, err)
		assert.Equal(t, AssignmentTargetHolder, target.Kind)
		assert.Equal(t, 4, target.ID)
	})

	t.Run("parent asset target", func(t *testing.T) {
		target, err := NewAssignmentTarget(nil, &parentID)
		assert.NoError(t, err)
		assert.Equal(t, AssignmentTargetParentAsset, target.Kind)
		assert.Equal(t, 9, target.ID)
	})

	t.Run("both set rejected", func(t *testing.T) {
		_, err := NewAssignmentTarget(&holderID, &parentID)
		assert.Error(t, err)
	})

	t.Run("neither set rejected", func(t *testing.T) {
		_, err := NewAssignmentTarget(nil, nil)
		assert.Error(t, err)
	})
}

func TestAssignmentIsOpen(t *testing.T) {
	open := Assignment{AssignmentDate: NewDate(2026, 8, 1)}
	assert.True(t, open.IsOpen())

	returnDate := NewDate(2026, 8, 15)
	closed := Assignment{AssignmentDate: NewDate(2026, 8, 1), ReturnDate: &returnDate}
	assert.False(t, closed.IsOpen())
}
