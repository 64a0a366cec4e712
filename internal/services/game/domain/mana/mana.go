// Package mana defines mana colors and the time-of-day rules for using them.
package mana

// Color is a mana color.
type Color string

const (
	Red   Color = "red"
	Blue  Color = "blue"
	Green Color = "green"
	White Color = "white"
	Gold  Color = "gold"
	Black Color = "black"
)

// Colors lists every mana color in die-face order.
var Colors = []Color{Red, Blue, Green, White, Gold, Black}

// Basic reports whether c is one of the four basic colors.
func (c Color) Basic() bool {
	switch c {
	case Red, Blue, Green, White:
		return true
	default:
		return false
	}
}

// Valid reports whether c is a known color.
func (c Color) Valid() bool {
	return c.Basic() || c == Gold || c == Black
}

// Rules captures which restricted colors are usable right now. Gold is a day
// color and black a night color unless a modifier lifts the restriction.
type Rules struct {
	Night        bool
	GoldAnytime  bool
	BlackAnytime bool
}

// Usable reports whether mana of color c may be spent or taken.
func (r Rules) Usable(c Color) bool {
	switch c {
	case Gold:
		return !r.Night || r.GoldAnytime
	case Black:
		return r.Night || r.BlackAnytime
	default:
		return c.Valid()
	}
}

// Pays reports whether mana of color c pays for a card of color want.
// Gold substitutes for any basic color.
func (r Rules) Pays(c, want Color) bool {
	if !r.Usable(c) {
		return false
	}
	if c == want {
		return true
	}
	return c == Gold && want.Basic()
}

// Pool counts mana by color. The zero value is an empty pool.
type Pool map[Color]int

// Clone returns an independent copy.
func (p Pool) Clone() Pool {
	if p == nil {
		return nil
	}
	out := make(Pool, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}

// With returns a copy with delta added to color c. Zero counts are dropped so
// that round trips compare equal.
func (p Pool) With(c Color, delta int) Pool {
	out := p.Clone()
	if out == nil {
		out = Pool{}
	}
	out[c] += delta
	if out[c] == 0 {
		delete(out, c)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
