package view

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/five82/tagview/internal/tags"
)

func TestClipDescription(t *testing.T) {
	assert.Equal(t, "No description", ClipDescription(tags.Tag{}))

	exact := strings.Repeat("a", DescriptionLimit)
	assert.Equal(t, exact, ClipDescription(tags.Tag{Description: exact}))

	long := strings.Repeat("é", DescriptionLimit) + "tail"
	assert.Equal(t, strings.Repeat("é", DescriptionLimit)+"...", ClipDescription(tags.Tag{Description: long}))
}

func TestValueWithUnits(t *testing.T) {
	assert.Equal(t, "42.5 rpm", ValueWithUnits(tags.Tag{Value: 42.5, Units: "rpm"}))
	assert.Equal(t, "true", ValueWithUnits(tags.Tag{Value: true}))
	assert.Equal(t, "-", ValueWithUnits(tags.Tag{}))
}
