package assets

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNextTagFormat(t *testing.T) {
	generator, err := NewTagGenerator(1)
	assert.NoError(t, err)

	tag := generator.NextTag("ltp")
	assert.True(t, strings.HasPrefix(tag, "EQ-LTP-"), "unexpected tag %s", tag)
	assert.Equal(t, tag, strings.ToUpper(tag))
}

func TestNextTagUnique(t *testing.T) {
	generator, err := NewTagGenerator(1)
	assert.NoError(t, err)

	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		tag := generator.NextTag("MON")
		assert.False(t, seen[tag], "duplicate tag %s", tag)
		seen[tag] = true
	}
}

func TestNextSerialUnique(t *testing.T) {
	generator, err := NewTagGenerator(1)
	assert.NoError(t, err)

	assert.NotEqual(t, generator.NextSerial(), generator.NextSerial())
}

func TestNewTagGeneratorRejectsBadNode(t *testing.T) {
	_, err := NewTagGenerator(-1)
	assert.Error(t, err)
}
