package rcss

// CombineStyleSheet creates a new stylesheet from the rules of sheet and of
// other, where other is the more specific one: on equal selector weight,
// declarations of other win. The same holds for keyframes, decorators and
// spritesheets with equal names.
//
// Neither input is modified. The result shares the logger and the effects
// registry of sheet. It has to be built before use; decorators and
// font-effects are instanced against the combined resources then.
// Passing a nil stylesheet is a programming error.
func (sheet *StyleSheet) CombineStyleSheet(other *StyleSheet) *StyleSheet {
	if other == nil {
		panic("rcss: cannot combine with a nil stylesheet")
	}
	result := sheet.derive()
	result.tree = sheet.tree.copy()
	result.tree.merge(&other.tree, sheet.specificityOffset)
	result.specificityOffset = sheet.specificityOffset + other.specificityOffset
	for _, s := range []*StyleSheet{sheet, other} {
		for name, kf := range s.keyframes {
			result.keyframes[name] = kf
		}
		for name, spec := range s.decorators {
			result.decorators[name] = spec.clone()
		}
		for _, ss := range s.spritesheets {
			result.addSpritesheet(ss)
		}
	}
	result.tree.walk(rootNode, func(_ NodeHandle, n *StyleSheetNode) {
		for _, key := range []string{"decorator", "font-effect"} {
			if p, ok := n.properties.Get(key); ok && p.Instance != nil {
				p.Instance = nil
				n.properties.Set(key, p)
			}
		}
	})
	tracer().Debugf("rcss: combined %v and %v", sheet, other)
	return result
}
