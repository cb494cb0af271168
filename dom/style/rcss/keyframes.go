package rcss

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/npillmayer/rcss/dom/style"
	"github.com/npillmayer/rcss/dom/style/cssom"
)

// KeyframeBlock is the set of properties at one point of an animation.
type KeyframeBlock struct {
	NormalizedTime float64 // 0 … 1
	Properties     *style.PropertyDictionary
}

// Keyframes is a named animation, declared with '@keyframes'.
type Keyframes struct {
	Name       string
	Blocks     []KeyframeBlock // sorted by time
	Properties []string        // all animated properties, sorted
}

// GetKeyframes returns the keyframes of the given name, or nil.
func (sheet *StyleSheet) GetKeyframes(name string) *Keyframes {
	return sheet.keyframes[name]
}

func (sheet *StyleSheet) loadKeyframes(rule cssom.Rule, src string) {
	name := strings.TrimSpace(rule.Selector())
	if name == "" {
		sheet.diagnose(src, rule.Line(), "skipping @keyframes without name", "", nil)
		return
	}
	kf := &Keyframes{Name: name}
	props := make(map[string]bool)
	for _, block := range rule.Nested() {
		for _, sel := range block.Selectors() {
			t, err := keyframeTime(sel)
			if err != nil {
				sheet.diagnose(src, block.Line(), "skipping keyframe", sel, err)
				continue
			}
			dict := kf.block(t)
			for _, key := range block.Properties() {
				for _, d := range sheet.declarations(block, key, src) {
					dict.Set(d.key, d.prop)
					props[d.key] = true
				}
			}
		}
	}
	if len(kf.Blocks) == 0 {
		tracer().Debugf("rcss: %s: @keyframes %s is empty", src, name)
		return
	}
	sort.SliceStable(kf.Blocks, func(i, j int) bool {
		return kf.Blocks[i].NormalizedTime < kf.Blocks[j].NormalizedTime
	})
	for k := range props {
		kf.Properties = append(kf.Properties, k)
	}
	sort.Strings(kf.Properties)
	sheet.keyframes[name] = kf
}

// block returns the block for time t, creating it if necessary.
func (kf *Keyframes) block(t float64) *style.PropertyDictionary {
	for _, b := range kf.Blocks {
		if b.NormalizedTime == t {
			return b.Properties
		}
	}
	dict := style.NewPropertyDictionary()
	kf.Blocks = append(kf.Blocks, KeyframeBlock{NormalizedTime: t, Properties: dict})
	return dict
}

// keyframeTime interprets a keyframe selector: 'from', 'to' or a percentage.
func keyframeTime(sel string) (float64, error) {
	switch s := strings.ToLower(strings.TrimSpace(sel)); s {
	case "from":
		return 0, nil
	case "to":
		return 1, nil
	default:
		if !strings.HasSuffix(s, "%") {
			break
		}
		f, err := strconv.ParseFloat(strings.TrimSuffix(s, "%"), 64)
		if err != nil || f < 0 || f > 100 {
			break
		}
		return f / 100, nil
	}
	return 0, fmt.Errorf("invalid keyframe selector %q", sel)
}
