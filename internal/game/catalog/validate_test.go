package catalog_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/encore-rpg/sheetsmith/internal/game/catalog"
)

func TestValidateUserCategory_CleanRows(t *testing.T) {
	rows := []map[string]any{
		{"id": 1, "name": "House Blend Tonic"},
		{"id": 2, "name": "Velvet Cloak"},
	}
	assert.Empty(t, catalog.ValidateUserCategory("item", rows))
}

func TestValidateUserCategory_MissingID(t *testing.T) {
	rows := []map[string]any{
		{"name": "Uncatalogued Prop"},
	}
	diags := catalog.ValidateUserCategory("item", rows)
	require.Len(t, diags, 1)
	assert.Equal(t, catalog.CodeInvalidID, diags[0].Code)
	assert.Equal(t, catalog.SeverityWarn, diags[0].Severity)
}

func TestValidateUserCategory_NonPositiveID(t *testing.T) {
	rows := []map[string]any{
		{"id": 0, "name": "Zero Prop"},
		{"id": -3, "name": "Negative Prop"},
	}
	diags := catalog.ValidateUserCategory("item", rows)
	require.Len(t, diags, 2)
	for _, d := range diags {
		assert.Equal(t, catalog.CodeInvalidID, d.Code)
	}
}

func TestValidateUserCategory_DuplicateIDAndName(t *testing.T) {
	rows := []map[string]any{
		{"id": 1, "name": "Tonic"},
		{"id": 1, "name": "tonic"},
	}
	diags := catalog.ValidateUserCategory("item", rows)
	require.Len(t, diags, 2)
	codes := map[string]bool{}
	for _, d := range diags {
		codes[d.Code] = true
	}
	assert.True(t, codes[catalog.CodeDuplicateID])
	assert.True(t, codes[catalog.CodeDuplicateName])
}

func TestValidateUserCategory_NeverFailsHard(t *testing.T) {
	// Mid-edit rows with arbitrary junk only produce diagnostics.
	rows := []map[string]any{
		{"id": "not-a-number", "name": 42},
		{},
		nil,
	}
	assert.NotPanics(t, func() {
		catalog.ValidateUserCategory("item", rows)
	})
}
