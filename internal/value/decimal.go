package value

import "github.com/shopspring/decimal"

// Fixed is an arbitrary-precision decimal with an explicit scale,
// backed by github.com/shopspring/decimal.
type Fixed struct {
	Val decimal.Decimal
}

func (f Fixed) Kind() Kind     { return KindFixed }
func (f Fixed) Truthy() bool   { return !f.Val.IsZero() }
func (f Fixed) String() string { return f.Val.String() }

// Currency is a Fixed plus a currency tag (a glyph-derived ISO-like
// code, or the empty string for an untagged Currency produced by a
// cast or by promotion from Fixed).
type Currency struct {
	Val decimal.Decimal
	Tag string
}

func (c Currency) Kind() Kind   { return KindCurrency }
func (c Currency) Truthy() bool { return !c.Val.IsZero() }
func (c Currency) String() string {
	if c.Tag == "" {
		return c.Val.String()
	}
	return c.Tag + " " + c.Val.String()
}

// StripTag demotes a Currency to a Fixed, used when arithmetic
// combines two Currencies with differing tags (spec.md §3.1
// invariant: "Currency arithmetic between differing tags strips the
// tag and promotes to Fixed").
func (c Currency) StripTag() Fixed {
	return Fixed{Val: c.Val}
}
