package rcss

import (
	"fmt"
	"image"
	"strconv"
	"strings"

	"github.com/npillmayer/rcss/dom/style"
	"github.com/npillmayer/rcss/dom/style/cssom"
	"github.com/npillmayer/rcss/dom/style/effects"
)

// Spritesheet is an image with named rectangular regions, declared with
//
//	@spritesheet icons {
//	    src: icons.png;
//	    icon-ok:    0px 0px 16px 16px;
//	    icon-close: 16px 0px 16px 16px;
//	}
type Spritesheet struct {
	Name       string
	Image      string
	SourceFile string
	Sprites    map[string]*Sprite
}

// Sprite is a named region of a spritesheet.
type Sprite struct {
	Name  string
	Rect  image.Rectangle
	Sheet *Spritesheet
}

// GetSprite returns the sprite of the given name from any spritesheet,
// or nil. Later spritesheets shadow earlier ones.
func (sheet *StyleSheet) GetSprite(name string) *Sprite {
	for i := len(sheet.spritesheets) - 1; i >= 0; i-- {
		if s, ok := sheet.spritesheets[i].Sprites[name]; ok {
			return s
		}
	}
	return nil
}

// Sprite is part of interface effects.Context.
func (sheet *StyleSheet) Sprite(name string) (image.Rectangle, string, bool) {
	if s := sheet.GetSprite(name); s != nil {
		return s.Rect, s.Sheet.Image, true
	}
	return image.Rectangle{}, "", false
}

func (sheet *StyleSheet) loadSpritesheet(rule cssom.Rule, src string) {
	ss := &Spritesheet{
		Name:       strings.TrimSpace(rule.Selector()),
		SourceFile: src,
		Sprites:    make(map[string]*Sprite),
	}
	if ss.Name == "" {
		sheet.diagnose(src, rule.Line(), "skipping @spritesheet without name", "", nil)
		return
	}
	for _, key := range rule.Properties() {
		value := rule.Value(key).String()
		switch key {
		case "src":
			ss.Image = effects.Unquote(style.Value(value))
		case "resolution":
			// scaling is up to the renderer
		default:
			rect, err := parseRect(value)
			if err != nil {
				sheet.diagnose(src, rule.PropertyLine(key), "skipping sprite", key, err)
				continue
			}
			ss.Sprites[key] = &Sprite{Name: key, Rect: rect, Sheet: ss}
		}
	}
	if ss.Image == "" {
		sheet.diagnose(src, rule.Line(), "skipping @spritesheet without src", ss.Name, nil)
		return
	}
	sheet.addSpritesheet(ss)
}

// addSpritesheet adds or replaces a spritesheet by name.
func (sheet *StyleSheet) addSpritesheet(ss *Spritesheet) {
	for i, s := range sheet.spritesheets {
		if s.Name == ss.Name {
			sheet.spritesheets[i] = ss
			return
		}
	}
	sheet.spritesheets = append(sheet.spritesheets, ss)
}

// parseRect reads 'x y w h', with optional 'px' units.
func parseRect(s string) (image.Rectangle, error) {
	f := strings.Fields(s)
	if len(f) != 4 {
		return image.Rectangle{}, fmt.Errorf("expected 'x y width height', have %q", s)
	}
	var n [4]int
	for i, v := range f {
		x, err := strconv.ParseFloat(strings.TrimSuffix(strings.ToLower(v), "px"), 64)
		if err != nil {
			return image.Rectangle{}, fmt.Errorf("invalid sprite coordinate %q", v)
		}
		n[i] = int(x)
	}
	if n[2] < 0 || n[3] < 0 {
		return image.Rectangle{}, fmt.Errorf("negative sprite size in %q", s)
	}
	return image.Rect(n[0], n[1], n[0]+n[2], n[1]+n[3]), nil
}
