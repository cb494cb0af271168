package rcss

import (
	"fmt"
	"sync/atomic"

	"github.com/npillmayer/rcss/dom/style"
	"github.com/npillmayer/rcss/dom/style/effects"
)

// ElementDefinition is the cascaded set of properties for elements matching
// a given set of rule nodes. Definitions are immutable and shared.
//
// Definitions are reference counted. GetElementDefinition hands out a
// reference, which the caller has to give back with Release. A definition is
// destroyed when its last reference is released; its properties are gone
// afterwards.
type ElementDefinition struct {
	properties *style.PropertyDictionary
	nodes      []NodeHandle
	refs       atomic.Int32
}

func newElementDefinition(props *style.PropertyDictionary, nodes []NodeHandle) *ElementDefinition {
	def := &ElementDefinition{properties: props, nodes: nodes}
	def.refs.Store(1)
	return def
}

// AddRef adds a reference to d and returns d.
func (d *ElementDefinition) AddRef() *ElementDefinition {
	if d.refs.Add(1) <= 1 {
		panic("rcss: AddRef on a destroyed element definition")
	}
	return d
}

// Release gives back a reference. It returns true if this has been the last
// reference and the definition has been destroyed. Releasing a destroyed
// definition is a programming error and will panic.
func (d *ElementDefinition) Release() bool {
	n := d.refs.Add(-1)
	if n < 0 {
		panic("rcss: release of a destroyed element definition")
	}
	if n == 0 {
		d.properties = nil
		d.nodes = nil
		return true
	}
	return false
}

// RefCount returns the number of outstanding references.
func (d *ElementDefinition) RefCount() int {
	return int(d.refs.Load())
}

// Properties returns the cascaded properties. Clients must not modify the
// dictionary.
func (d *ElementDefinition) Properties() *style.PropertyDictionary {
	return d.properties
}

// Property returns the cascaded declaration for key.
func (d *ElementDefinition) Property(key string) (style.Property, bool) {
	return d.properties.Get(key)
}

// Value returns the cascaded value for key, or style.NullStyle.
func (d *ElementDefinition) Value(key string) style.Value {
	return d.properties.Value(key)
}

// IsEmpty is true for definitions without any properties.
func (d *ElementDefinition) IsEmpty() bool {
	return d.properties.Len() == 0
}

// Nodes returns the handles of the rule nodes this definition has been
// compiled from, in cascade order.
func (d *ElementDefinition) Nodes() []NodeHandle {
	return d.nodes
}

// Decorators returns the instanced decorators of the definition, if any.
func (d *ElementDefinition) Decorators() effects.DecoratorList {
	if p, ok := d.properties.Get("decorator"); ok {
		if list, ok := p.Instance.(effects.DecoratorList); ok {
			return list
		}
	}
	return nil
}

// FontEffects returns the instanced font-effects of the definition, if any.
func (d *ElementDefinition) FontEffects() effects.FontEffectList {
	if p, ok := d.properties.Get("font-effect"); ok {
		if list, ok := p.Instance.(effects.FontEffectList); ok {
			return list
		}
	}
	return nil
}

func (d *ElementDefinition) String() string {
	return fmt.Sprintf("definition%v%s", d.nodes, d.properties)
}
