package style

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/

import (
	"fmt"
	"sort"
	"strings"

	"github.com/npillmayer/schuko/tracing"
)

// tracer will return a tracer. We are tracing to 'rcss.style'
func tracer() tracing.Trace {
	return tracing.Select("rcss.style")
}

// Value is a raw value for a CSS property. For example, with
//
//	color: black
//
// a property value of "black" is set. The main purpose of wrapping
// the raw string value into type Value is to provide a set of
// convenient type conversion functions and other helpers.
type Value string

// NullStyle is an empty property value.
const NullStyle Value = ""

func (v Value) String() string {
	return string(v)
}

// IsInitial denotes if a property is of inheritence-type "initial"
func (v Value) IsInitial() bool {
	return v == "initial"
}

// IsInherit denotes if a property is of inheritence-type "inherit"
func (v Value) IsInherit() bool {
	return v == "inherit"
}

// IsEmpty checks wether a property is empty, i.e. the null-string.
func (v Value) IsEmpty() bool {
	return v == ""
}

// IsNone checks for the keyword "none".
func (v Value) IsNone() bool {
	return strings.EqualFold(string(v), "none")
}

// KeyValue is a container for a style property.
type KeyValue struct {
	Key   string
	Value Value
}

// --- Specificity ------------------------------------------------------

// Specificity orders competing declarations for the same property.
// Selector is the weight of the selector chain a declaration has been
// attached to (see package rcss for the weights), Order is its source
// position, shifted by the specificity offset of the including stylesheets.
// Specificities compare lexicographically.
type Specificity struct {
	Selector int
	Order    int
}

// Less is true if s loses against other in the cascade.
func (s Specificity) Less(other Specificity) bool {
	if s.Selector != other.Selector {
		return s.Selector < other.Selector
	}
	return s.Order < other.Order
}

func (s Specificity) String() string {
	return fmt.Sprintf("(%d|%d)", s.Selector, s.Order)
}

// --- Property ---------------------------------------------------------

// Source is the location a declaration has been read from.
// A Line of 0 means "unknown".
type Source struct {
	File string
	Line int
}

func (src Source) String() string {
	if src.Line <= 0 {
		return src.File
	}
	return fmt.Sprintf("%s:%d", src.File, src.Line)
}

// Property is a single declaration, as stored in a PropertyDictionary.
//
// Some properties are expensive to interpret at styling time (decorators,
// font-effects). For these, Instance may hold a pre-built representation of
// Value. Instance is opaque to this package.
type Property struct {
	Value       Value
	Specificity Specificity
	Important   bool
	Source      Source
	Instance    interface{}
}

func (p Property) String() string {
	if p.Important {
		return fmt.Sprintf("%s !important %v", p.Value, p.Specificity)
	}
	return fmt.Sprintf("%s %v", p.Value, p.Specificity)
}

// --- Property Dictionary ----------------------------------------------

// PropertyDictionary maps property keys to declarations. nil is a legal
// (empty) dictionary for all read operations.
type PropertyDictionary struct {
	props map[string]Property
}

// NewPropertyDictionary returns a new empty property dictionary.
func NewPropertyDictionary() *PropertyDictionary {
	return &PropertyDictionary{}
}

// Len returns the number of properties.
func (d *PropertyDictionary) Len() int {
	if d == nil {
		return 0
	}
	return len(d.props)
}

// Get returns the declaration for key, together with an indicator
// wether it has been found in the dictionary.
func (d *PropertyDictionary) Get(key string) (Property, bool) {
	if d == nil || d.props == nil {
		return Property{}, false
	}
	p, ok := d.props[key]
	return p, ok
}

// Value returns the raw value for key, or NullStyle.
func (d *PropertyDictionary) Value(key string) Value {
	p, _ := d.Get(key)
	return p.Value
}

// Set stores a declaration, overwriting an existing one unconditionally.
func (d *PropertyDictionary) Set(key string, p Property) {
	if d.props == nil {
		d.props = make(map[string]Property)
	}
	d.props[key] = p
}

// Cascade stores a declaration if it does not lose against an existing
// declaration for the same key. Equal specificities let the newcomer win,
// i.e. later merges take precedence on ties.
// Returns true if p has been stored.
func (d *PropertyDictionary) Cascade(key string, p Property) bool {
	if old, ok := d.Get(key); ok && p.Specificity.Less(old.Specificity) {
		return false
	}
	d.Set(key, p)
	return true
}

// Remove deletes the declaration for key, if present.
func (d *PropertyDictionary) Remove(key string) {
	if d == nil || d.props == nil {
		return
	}
	delete(d.props, key)
}

// Keys returns the property keys in ascending order.
func (d *PropertyDictionary) Keys() []string {
	if d == nil {
		return nil
	}
	keys := make([]string, 0, len(d.props))
	for k := range d.props {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Merge cascades all declarations of other into d. The source order of
// every incoming declaration is shifted by orderOffset first.
func (d *PropertyDictionary) Merge(other *PropertyDictionary, orderOffset int) {
	if other == nil {
		return
	}
	for k, p := range other.props {
		p.Specificity.Order += orderOffset
		d.Cascade(k, p)
	}
}

// Copy returns a shallow copy of d. Instances are shared.
func (d *PropertyDictionary) Copy() *PropertyDictionary {
	c := NewPropertyDictionary()
	if d == nil {
		return c
	}
	for k, p := range d.props {
		c.Set(k, p)
	}
	return c
}

func (d *PropertyDictionary) String() string {
	var b strings.Builder
	b.WriteString("{")
	for i, k := range d.Keys() {
		if i > 0 {
			b.WriteString("; ")
		}
		p, _ := d.Get(k)
		fmt.Fprintf(&b, "%s: %s", k, p.Value)
	}
	b.WriteString("}")
	return b.String()
}

// --- Property Groups --------------------------------------------------

// GroupNameFromPropertyKey returns the style property group name for a
// style property. Groups are used for debugging output only.
// Example:
//
//	GroupNameFromPropertyKey("margin-top") => "Margins"
//
// Unknown style property keys will return a group name of "X".
func GroupNameFromPropertyKey(key string) string {
	groupname, found := groupNameFromPropertyKey[key]
	if !found {
		groupname = PGX
	}
	return groupname
}

// Symbolic names for string literals, denoting property groups.
const (
	PGMargins   = "Margins"
	PGPadding   = "Padding"
	PGBorder    = "Border"
	PGDimension = "Dimension"
	PGDisplay   = "Display"
	PGColor     = "Color"
	PGText      = "Text"
	PGDecor     = "Decor"
	PGX         = "X"
)

var groupNameFromPropertyKey = map[string]string{
	"margin-top":                 PGMargins,
	"margin-left":                PGMargins,
	"margin-right":               PGMargins,
	"margin-bottom":              PGMargins,
	"padding-top":                PGPadding,
	"padding-left":               PGPadding,
	"padding-right":              PGPadding,
	"padding-bottom":             PGPadding,
	"border-top-color":           PGBorder,
	"border-left-color":          PGBorder,
	"border-right-color":         PGBorder,
	"border-bottom-color":        PGBorder,
	"border-top-width":           PGBorder,
	"border-left-width":          PGBorder,
	"border-right-width":         PGBorder,
	"border-bottom-width":        PGBorder,
	"border-top-style":           PGBorder,
	"border-left-style":          PGBorder,
	"border-right-style":         PGBorder,
	"border-bottom-style":        PGBorder,
	"border-top-left-radius":     PGBorder,
	"border-top-right-radius":    PGBorder,
	"border-bottom-left-radius":  PGBorder,
	"border-bottom-right-radius": PGBorder,
	"width":                      PGDimension,
	"height":                     PGDimension,
	"min-width":                  PGDimension,
	"min-height":                 PGDimension,
	"max-width":                  PGDimension,
	"max-height":                 PGDimension,
	"display":                    PGDisplay,
	"float":                      PGDisplay,
	"visibility":                 PGDisplay,
	"position":                   PGDisplay,
	"color":                      PGColor,
	"background-color":           PGColor,
	"direction":                  PGText,
	"white-space":                PGText,
	"word-spacing":               PGText,
	"letter-spacing":             PGText,
	"word-break":                 PGText,
	"font-family":                PGText,
	"font-size":                  PGText,
	"font-weight":                PGText,
	"decorator":                  PGDecor,
	"font-effect":                PGDecor,
	"animation":                  PGDecor,
}

// IsCascading returns wether the standard behaviour for a propery is to be
// inherited or not, i.e., a call to retrieve its value will cascade.
func IsCascading(key string) bool {
	if strings.HasPrefix(key, "list-style") || strings.HasPrefix(key, "font-") {
		return true
	}
	switch key {
	case "color", "cursor", "direction", "font-effect":
		return true
	case "letter-spacing", "line-height", "quotes", "visibility", "white-space":
		return true
	case "word-spacing", "word-break", "word-wrap", "text-align":
		return true
	}
	return false
}

// --- Shorthands -------------------------------------------------------

// SplitCompoundProperty splits up a shortcut property into its individual
// components. Returns a slice of key-value pairs representing the
// individual (fine grained) style properties.
// Example:
//
//	SplitCompoundProperty("padding", "3px")
//
// will return
//
//	"padding-top"    => "3px"
//	"padding-right"  => "3px"
//	"padding-bottom" => "3px"
//	"padding-left"   => "3px"
//
// For the logic behind this, refer to e.g.
// https://www.w3schools.com/css/css_padding.asp .
func SplitCompoundProperty(key string, value Value) ([]KeyValue, error) {
	fields := strings.Fields(value.String())
	switch key {
	case "margin":
		return feazeCompound4("margin", "", fourDirs, fields)
	case "padding":
		return feazeCompound4("padding", "", fourDirs, fields)
	case "border-color":
		return feazeCompound4("border", "color", fourDirs, fields)
	case "border-width":
		return feazeCompound4("border", "width", fourDirs, fields)
	case "border-style":
		return feazeCompound4("border", "style", fourDirs, fields)
	case "border-radius":
		return feazeCompound4("border", "radius", fourCorners, fields)
	}
	return nil, fmt.Errorf("not recognized as compound property: %s", key)
}

// IsCompoundProperty is true for the shorthands SplitCompoundProperty knows.
func IsCompoundProperty(key string) bool {
	switch key {
	case "margin", "padding", "border-color", "border-width", "border-style", "border-radius":
		return true
	}
	return false
}

// CSS logic to distribute individual values from compound shortcuts is as
// follows: https://www.w3schools.com/css/css_border.asp
func feazeCompound4(pre string, suf string, dirs [4]string, fields []string) ([]KeyValue, error) {
	l := len(fields)
	if l == 0 || l > 4 {
		return nil, fmt.Errorf("expecting 1-4 values for %s", p(pre, suf, "*"))
	}
	r := make([]KeyValue, 4)
	r[0] = KeyValue{p(pre, suf, dirs[0]), Value(fields[0])}
	if l >= 2 {
		r[1] = KeyValue{p(pre, suf, dirs[1]), Value(fields[1])}
		if l >= 3 {
			r[2] = KeyValue{p(pre, suf, dirs[2]), Value(fields[2])}
			if l == 4 {
				r[3] = KeyValue{p(pre, suf, dirs[3]), Value(fields[3])}
			} else {
				r[3] = KeyValue{p(pre, suf, dirs[3]), Value(fields[1])}
			}
		} else {
			r[2] = KeyValue{p(pre, suf, dirs[2]), Value(fields[0])}
			r[3] = KeyValue{p(pre, suf, dirs[3]), Value(fields[1])}
		}
	} else {
		r[1] = KeyValue{p(pre, suf, dirs[1]), Value(fields[0])}
		r[2] = KeyValue{p(pre, suf, dirs[2]), Value(fields[0])}
		r[3] = KeyValue{p(pre, suf, dirs[3]), Value(fields[0])}
	}
	return r, nil
}

var fourDirs = [4]string{"top", "right", "bottom", "left"}
var fourCorners = [4]string{"top-left", "top-right", "bottom-right", "bottom-left"}

func p(prefix string, suffix string, tag string) string {
	if suffix == "" {
		return prefix + "-" + tag
	}
	if prefix == "" {
		return tag + "-" + suffix
	}
	return prefix + "-" + tag + "-" + suffix
}
