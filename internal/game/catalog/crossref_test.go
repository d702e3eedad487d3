package catalog_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/encore-rpg/sheetsmith/internal/game/catalog"
)

func TestCrossRef_ValidCatalogBuilds(t *testing.T) {
	_, err := catalog.Build(testMaster(), nil, testRegistry())
	assert.NoError(t, err)
}

func TestCrossRef_UnknownRequirementSkillFails(t *testing.T) {
	master := testMaster()
	master["weapon"] = append(master["weapon"], map[string]any{
		"id": 50, "name": "Warhammer", "hit": 2, "range": "melee",
		"requires": map[string]any{"Smashing": 5},
	})
	_, err := catalog.Build(master, nil, testRegistry())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Smashing")
}

func TestCrossRef_UnknownUnlockRewardFails(t *testing.T) {
	master := testMaster()
	master["skill"] = append(master["skill"], map[string]any{
		"id": 60, "name": "Foraging",
		"unlocks": map[string]any{
			"10": []any{map[string]any{"name": "Phantom Trinket", "qty": 1}},
		},
	})
	_, err := catalog.Build(master, nil, testRegistry())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Phantom Trinket")
}

func TestCrossRef_RewardRefToNonEligibleCategoryFails(t *testing.T) {
	// "skill:3" parses and names a real entry, but skills are not
	// grantable rewards; a kind-scoped ref is held to the same eligible
	// set as a name-only reward.
	master := testMaster()
	master["skill"] = append(master["skill"], map[string]any{
		"id": 62, "name": "Mentoring",
		"unlocks": map[string]any{
			"10": []any{map[string]any{"ref": "skill:3", "qty": 1}},
		},
	})
	_, err := catalog.Build(master, nil, testRegistry())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "skill:3")
}

func TestCrossRef_RewardByCompositeRefResolves(t *testing.T) {
	master := testMaster()
	master["skill"] = append(master["skill"], map[string]any{
		"id": 61, "name": "Scavenging",
		"unlocks": map[string]any{
			"5": []any{map[string]any{"ref": "item:2", "qty": 1}},
		},
	})
	_, err := catalog.Build(master, nil, testRegistry())
	assert.NoError(t, err)
}

func TestCrossRef_UserRowSatisfiesMasterReference(t *testing.T) {
	// A master skill requirement may be satisfied by a user-defined skill:
	// cross-reference validation runs against the merged picture.
	master := testMaster()
	master["weapon"] = append(master["weapon"], map[string]any{
		"id": 51, "name": "Duelling Pistol", "hit": 4, "range": "ranged",
		"requires": map[string]any{"Gunplay": 5},
	})
	_, err := catalog.Build(master, nil, testRegistry())
	require.Error(t, err)

	user := catalog.Datasets{
		"skill": {{"id": 200, "name": "Gunplay"}},
	}
	_, err = catalog.Build(master, user, testRegistry())
	assert.NoError(t, err)
}
