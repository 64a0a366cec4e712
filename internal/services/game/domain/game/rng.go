package game

import "math/rand/v2"

// RNG is a deterministic random source stored in the game state. Each draw
// derives a fresh generator from the seed and the draw count, so replaying
// the same actions from the same state yields the same results.
type RNG struct {
	Seed  uint64 `json:"seed"`
	Draws uint64 `json:"draws"`
}

// IntN returns a value in [0, n) and the advanced RNG.
func (r RNG) IntN(n int) (int, RNG) {
	if n <= 0 {
		return 0, r
	}
	v := rand.New(rand.NewPCG(r.Seed, r.Draws)).IntN(n)
	r.Draws++
	return v, r
}

// Shuffle returns a shuffled copy of ids and the advanced RNG.
func (r RNG) Shuffle(ids []string) ([]string, RNG) {
	if len(ids) == 0 {
		return nil, r
	}
	out := append([]string(nil), ids...)
	rand.New(rand.NewPCG(r.Seed, r.Draws)).Shuffle(len(out), func(i, j int) {
		out[i], out[j] = out[j], out[i]
	})
	r.Draws++
	return out, r
}
