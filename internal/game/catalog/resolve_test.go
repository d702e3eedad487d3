package catalog_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/encore-rpg/sheetsmith/internal/game/catalog"
)

func buildTestCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	cat, err := catalog.Build(testMaster(), nil, testRegistry())
	require.NoError(t, err)
	return cat
}

func TestParseRef_CompositeString(t *testing.T) {
	ref, ok := catalog.ParseRef("weapon:5")
	require.True(t, ok)
	assert.Equal(t, catalog.RefByKindID, ref.Mode)
	assert.Equal(t, "weapon", ref.Kind)
	assert.Equal(t, 5, ref.ID)
}

func TestParseRef_KindIDObject(t *testing.T) {
	ref, ok := catalog.ParseRef(map[string]any{"kind": "weapon", "id": 5})
	require.True(t, ok)
	assert.Equal(t, catalog.RefByKindID, ref.Mode)
	assert.Equal(t, "weapon", ref.Kind)
	assert.Equal(t, 5, ref.ID)
}

func TestParseRef_NameObject(t *testing.T) {
	ref, ok := catalog.ParseRef(map[string]any{"name": "Hunting Bow"})
	require.True(t, ok)
	assert.Equal(t, catalog.RefByName, ref.Mode)
	assert.Equal(t, "Hunting Bow", ref.Name)
	assert.Empty(t, ref.Kind)
}

func TestParseRef_BareNumberAndNumericString(t *testing.T) {
	ref, ok := catalog.ParseRef(float64(5))
	require.True(t, ok)
	assert.Equal(t, catalog.RefByID, ref.Mode)
	assert.Equal(t, 5, ref.ID)

	ref, ok = catalog.ParseRef("5")
	require.True(t, ok)
	assert.Equal(t, catalog.RefByID, ref.Mode)
	assert.Equal(t, 5, ref.ID)
}

func TestParseRef_RejectsGarbage(t *testing.T) {
	for _, v := range []any{nil, "", "   ", ":5", "weapon:", map[string]any{}, []any{1}} {
		_, ok := catalog.ParseRef(v)
		assert.False(t, ok, "value %#v should not parse", v)
	}
}

func TestResolve_AllShapesAgree(t *testing.T) {
	cat := buildTestCatalog(t)

	byComposite := cat.ResolveValue("weapon:5", "")
	byKindID := cat.ResolveValue(map[string]any{"kind": "weapon", "id": 5}, "")
	byName := cat.ResolveValue(map[string]any{"kind": "weapon", "name": "Hunting Bow"}, "")
	byBareID := cat.ResolveValue(float64(5), "weapon")

	require.NotNil(t, byComposite)
	assert.Same(t, byComposite, byKindID)
	assert.Same(t, byComposite, byName)
	assert.Same(t, byComposite, byBareID)
	assert.Equal(t, "Hunting Bow", byComposite.Name)
}

func TestResolve_BareIDWithoutDefaultKindIsNil(t *testing.T) {
	cat := buildTestCatalog(t)
	assert.Nil(t, cat.ResolveValue(float64(5), ""))
}

func TestResolve_UnscopedNameSearchesAllCategories(t *testing.T) {
	cat := buildTestCatalog(t)
	e := cat.ResolveValue(map[string]any{"name": "Plate Mail"}, "weapon")
	require.NotNil(t, e)
	assert.Equal(t, "armor", e.Category)
}

func TestResolve_NameCaseInsensitiveSecondPass(t *testing.T) {
	cat := buildTestCatalog(t)
	e := cat.ResolveValue(map[string]any{"kind": "weapon", "name": "HUNTING BOW"}, "")
	require.NotNil(t, e)
	assert.Equal(t, 5, e.ID)
}

func TestResolve_MissReturnsNilNeverPanics(t *testing.T) {
	cat := buildTestCatalog(t)
	assert.Nil(t, cat.ResolveValue("weapon:404", ""))
	assert.Nil(t, cat.ResolveValue(map[string]any{"kind": "saddle", "id": 1}, ""))
	assert.Nil(t, cat.ResolveValue(map[string]any{"name": "Nonexistent Prop"}, "item"))
}

func TestEntryKey(t *testing.T) {
	cat := buildTestCatalog(t)
	e := cat.Get("weapon", 5)
	require.NotNil(t, e)
	assert.Equal(t, "weapon:5", e.Key())
}
