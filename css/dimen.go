package css

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/npillmayer/tyse/core/dimen"
	. "github.com/npillmayer/tyse/core/percent"
)

const (
	dimenNone uint32 = 0

	dimenAbsolute uint32 = 0x0001
	dimenAuto     uint32 = 0x0002
	dimenInherit  uint32 = 0x0003
	dimenInitial  uint32 = 0x0004
	kindMask      uint32 = 0x000f

	dimenEM      uint32 = 0x0100
	dimenREM     uint32 = 0x0400
	dimenPercent uint32 = 0x0900
	relativeMask uint32 = 0xff00
)

// DimenT is an option type for CSS dimensions.
type DimenT struct {
	d       dimen.DU
	percent Percent
	factor  float64 // for font-relative units
	flags   uint32
}

/*
type DimenT
	= Auto
	| Inherit
	| Initial
	| JustDimen dimen
	| Percentage Percent
	| FontRel unit factor
*/

func Auto() DimenT {
	return DimenT{flags: dimenAuto}
}

func Inherit() DimenT {
	return DimenT{flags: dimenInherit}
}

func Initial() DimenT {
	return DimenT{flags: dimenInitial}
}

// JustDimen creates a CSS dimension with a fixed value of x.
func JustDimen(x dimen.DU) DimenT {
	return DimenT{d: x, flags: dimenAbsolute}
}

// Percentage creates a CSS dimension with a %-relative value.
func Percentage(n Percent) DimenT {
	return DimenT{percent: n, flags: dimenPercent}
}

// FontRelative creates a dimension relative to the font size, e.g. 1.5em.
// If root is set, the dimension is relative to the root element's font (rem).
func FontRelative(factor float64, root bool) DimenT {
	if root {
		return DimenT{factor: factor, flags: dimenREM}
	}
	return DimenT{factor: factor, flags: dimenEM}
}

// IsNone is true for the zero value, i.e. for unset dimensions.
func (d DimenT) IsNone() bool {
	return d.flags == dimenNone
}

// Factor returns the multiplier of a font-relative dimension.
func (d DimenT) Factor() float64 {
	return d.factor
}

func (d DimenT) String() string {
	switch {
	case d.flags == dimenNone:
		return "none"
	case d.flags&kindMask == dimenAuto:
		return "auto"
	case d.flags&kindMask == dimenInherit:
		return "inherit"
	case d.flags&kindMask == dimenInitial:
		return "initial"
	case d.flags&kindMask == dimenAbsolute:
		return fmt.Sprintf("%.2fpt", float64(d.d)/float64(dimen.PT))
	case d.flags == dimenPercent:
		return fmt.Sprintf("%v", d.percent)
	case d.flags == dimenEM:
		return fmt.Sprintf("%gem", d.factor)
	case d.flags == dimenREM:
		return fmt.Sprintf("%grem", d.factor)
	}
	return "?"
}

// unit factors relative to a typographic point
var absoluteUnits = map[string]float64{
	"pt": 1,
	"px": 0.75,
	"pc": 12,
	"in": 72,
	"cm": 72 / 2.54,
	"mm": 72 / 25.4,
}

// ParseDimen interprets a CSS length, e.g. "12px", "50%" or "auto".
// A unit-less "0" is accepted as zero length.
func ParseDimen(s string) (DimenT, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch s {
	case "":
		return DimenT{}, fmt.Errorf("empty dimension")
	case "auto":
		return Auto(), nil
	case "inherit":
		return Inherit(), nil
	case "initial":
		return Initial(), nil
	case "0":
		return JustDimen(0), nil
	}
	i := strings.IndexFunc(s, func(r rune) bool {
		return (r < '0' || r > '9') && r != '.' && r != '-' && r != '+'
	})
	if i <= 0 {
		return DimenT{}, fmt.Errorf("not a dimension: %q", s)
	}
	n, err := strconv.ParseFloat(s[:i], 64)
	if err != nil {
		return DimenT{}, fmt.Errorf("not a dimension: %q", s)
	}
	unit := s[i:]
	if f, ok := absoluteUnits[unit]; ok {
		return JustDimen(dimen.DU(math.Round(n * f * float64(dimen.PT)))), nil
	}
	switch unit {
	case "%":
		return Percentage(FromInt(int(math.Round(n)))), nil
	case "em":
		return FontRelative(n, false), nil
	case "rem":
		return FontRelative(n, true), nil
	}
	return DimenT{}, fmt.Errorf("unknown unit %q in dimension %q", unit, s)
}

// --- Kinds of dimensions ---------------------------------------------------

// DimenKind classifies a dimension.
type DimenKind int8

// Kinds of dimensions
const (
	KindNone DimenKind = iota
	KindAbsolute
	KindPercent
	KindFontRelative
	KindAuto
	KindInherit
	KindInitial
)

// Kind returns the kind of d.
func (d DimenT) Kind() DimenKind {
	switch {
	case d.flags == dimenNone:
		return KindNone
	case d.flags == dimenPercent:
		return KindPercent
	case d.flags&relativeMask > 0:
		return KindFontRelative
	}
	switch d.flags & kindMask {
	case dimenAbsolute:
		return KindAbsolute
	case dimenAuto:
		return KindAuto
	case dimenInherit:
		return KindInherit
	case dimenInitial:
		return KindInitial
	}
	return KindNone
}

// Absolute returns the fixed length of d. ok is false if d is not a fixed length.
func (d DimenT) Absolute() (du dimen.DU, ok bool) {
	if d.Kind() != KindAbsolute {
		return 0, false
	}
	return d.d, true
}

// Percent returns the percentage of a %-relative dimension.
func (d DimenT) Percent() (p Percent, ok bool) {
	if d.Kind() != KindPercent {
		return 0, false
	}
	return d.percent, true
}

// Resolve converts d to a fixed length. Font-relative dimensions are
// multiplied with fontSize, or with rootSize for rem. Other kinds do not
// resolve without a reference box.
func (d DimenT) Resolve(fontSize, rootSize dimen.DU) (dimen.DU, bool) {
	switch {
	case d.Kind() == KindAbsolute:
		return d.d, true
	case d.flags == dimenEM:
		return dimen.DU(math.Round(d.factor * float64(fontSize))), true
	case d.flags == dimenREM:
		return dimen.DU(math.Round(d.factor * float64(rootSize))), true
	}
	return 0, false
}

// DimenCases holds one result for every kind of dimension. Select picks the
// one matching a dimension, Default for unset dimensions.
type DimenCases[T any] struct {
	Absolute     T
	Percent      T
	FontRelative T
	Auto         T
	Inherit      T
	Initial      T
	Default      T
}

// Select returns the case of cases for the kind of d.
func Select[T any](d DimenT, cases DimenCases[T]) T {
	switch d.Kind() {
	case KindAbsolute:
		return cases.Absolute
	case KindPercent:
		return cases.Percent
	case KindFontRelative:
		return cases.FontRelative
	case KindAuto:
		return cases.Auto
	case KindInherit:
		return cases.Inherit
	case KindInitial:
		return cases.Initial
	}
	return cases.Default
}
