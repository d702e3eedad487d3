package share_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/encore-rpg/sheetsmith/internal/config"
	"github.com/encore-rpg/sheetsmith/internal/game/character"
	"github.com/encore-rpg/sheetsmith/internal/share"
)

func testCodec() *share.Codec {
	return share.NewCodec(config.ShareConfig{
		BaseURL:    "https://sheets.example.com/encore",
		WarnLength: 8000,
	})
}

func testSheet(t *testing.T) *character.State {
	t.Helper()
	s := character.NewState()
	s.Basic = character.Basic{Name: "Liese", Player: "rchm", Memo: "opening night"}
	s.Abilities.Int = 14
	require.NoError(t, s.AddMasterSkill(2, 15))
	require.NoError(t, s.AddCustomSkill("Stagecraft", 10))
	require.NoError(t, s.AddInventory("item", 1, 3))
	s.SetMoney(140000)
	s.ClaimReward("item:1@15")
	return s
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	c := testCodec()
	s := testSheet(t)

	enc, err := c.Encode(s)
	require.NoError(t, err)
	assert.False(t, enc.Oversize)
	assert.True(t, strings.HasPrefix(enc.URL, "https://sheets.example.com/encore#s="))

	got, err := c.Decode(enc.Code)
	require.NoError(t, err)
	assert.Equal(t, s, got)

	viaURL, err := c.DecodeURL(enc.URL)
	require.NoError(t, err)
	assert.Equal(t, s, viaURL)
}

func TestDecodeRejectsGarbage(t *testing.T) {
	c := testCodec()
	_, err := c.Decode("!!not base64!!")
	require.Error(t, err)

	// Valid base64 but not DEFLATE.
	_, err = c.Decode("aGVsbG8gd29ybGQ")
	require.Error(t, err)

	_, err = c.DecodeURL("https://sheets.example.com/encore")
	require.Error(t, err, "missing fragment")

	_, err = c.DecodeURL("https://sheets.example.com/encore#x=1")
	require.Error(t, err, "fragment without payload parameter")
}

func TestOversizeWarning(t *testing.T) {
	c := share.NewCodec(config.ShareConfig{BaseURL: "https://s.example.com", WarnLength: 64})
	enc, err := c.Encode(testSheet(t))
	require.NoError(t, err)
	assert.True(t, enc.Oversize, "a tiny warn length flags every sheet")
}

func TestRoundTripProperty(t *testing.T) {
	c := testCodec()
	rapid.Check(t, func(t *rapid.T) {
		s := character.NewState()
		s.Basic.Name = rapid.StringMatching(`[ -~]{0,40}`).Draw(t, "name")
		s.Basic.Memo = rapid.StringMatching(`[ -~]{0,200}`).Draw(t, "memo")
		for _, ab := range character.Abilities {
			s.Abilities.SetScore(ab, rapid.IntRange(character.MinScore, character.MaxScore).Draw(t, string(ab)))
		}
		rows := rapid.IntRange(0, 8).Draw(t, "rows")
		for i := 0; i < rows; i++ {
			require.NoError(t, s.AddMasterSkill(i+1, 5*rapid.IntRange(1, 4).Draw(t, "level")))
		}

		enc, err := c.Encode(s)
		require.NoError(t, err)
		got, err := c.Decode(enc.Code)
		require.NoError(t, err)
		require.Equal(t, s, got)
	})
}
