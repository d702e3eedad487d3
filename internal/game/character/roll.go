package character

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// Source produces uniformly distributed ints in [0, n). It exists so tests
// can supply a deterministic sequence.
type Source interface {
	Intn(n int) int
}

type cryptoSource struct{}

// NewCryptoSource returns a Source backed by crypto/rand.
func NewCryptoSource() Source {
	return cryptoSource{}
}

func (cryptoSource) Intn(n int) int {
	if n <= 0 {
		panic("character: Intn called with n <= 0")
	}
	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		panic(fmt.Sprintf("character: crypto/rand failure: %v", err))
	}
	return int(v.Int64())
}

// RollAbilities replaces all six scores with 2d10 rolls and tags the method
// as "roll".
//
// Precondition: src must be non-nil.
// Postcondition: every score is in [2, 20]; MoneySet and all other sheet
// fields are untouched.
func (s *State) RollAbilities(src Source) {
	roll2d10 := func() int {
		return src.Intn(10) + 1 + src.Intn(10) + 1
	}
	s.Abilities.Str = roll2d10()
	s.Abilities.Dex = roll2d10()
	s.Abilities.Agi = roll2d10()
	s.Abilities.Vit = roll2d10()
	s.Abilities.Int = roll2d10()
	s.Abilities.Psy = roll2d10()
	s.Abilities.Method = MethodRoll
}
