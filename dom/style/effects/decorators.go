package effects

import (
	"fmt"
	"image"
	"image/color"
	"strings"

	"github.com/npillmayer/rcss/dom/style"
)

// Tile is an image (or a sprite of a spritesheet) used by a decorator.
type Tile struct {
	Source string          // image source
	Rect   image.Rectangle // sprite rectangle; empty for whole images
	Sprite string          // sprite name, if the tile refers to a sprite
}

func (t Tile) String() string {
	if t.Sprite != "" {
		return fmt.Sprintf("%s[%s %v]", t.Sprite, t.Source, t.Rect)
	}
	return t.Source
}

func resolveTile(v style.Value, ctx Context) (Tile, error) {
	src := Unquote(v)
	if src == "" {
		return Tile{}, fmt.Errorf("missing image source")
	}
	if ctx != nil {
		if rect, img, ok := ctx.Sprite(src); ok {
			return Tile{Source: img, Rect: rect, Sprite: src}, nil
		}
	}
	return Tile{Source: src}, nil
}

// --- image -----------------------------------------------------------------

// ImageDecorator paints a single image, stretched to the element's box.
type ImageDecorator struct {
	Image Tile
}

// Type is part of interface Decorator.
func (d *ImageDecorator) Type() string { return "image" }

func (d *ImageDecorator) String() string {
	return fmt.Sprintf("image(%s)", d.Image)
}

type imageInstancer struct{}

func (imageInstancer) Shorthand() []string {
	return []string{"image-src"}
}

func (imageInstancer) InstanceDecorator(params Params, ctx Context) (Decorator, error) {
	tile, err := resolveTile(params["image-src"], ctx)
	if err != nil {
		return nil, fmt.Errorf("image decorator: %w", err)
	}
	return &ImageDecorator{Image: tile}, nil
}

// --- tiled -----------------------------------------------------------------

// TiledDecorator paints three images along an axis: two fixed ends and a
// repeated center.
type TiledDecorator struct {
	Horizontal bool
	Tiles      [3]Tile // left/top, center, right/bottom
}

// Type is part of interface Decorator.
func (d *TiledDecorator) Type() string {
	if d.Horizontal {
		return "tiled-horizontal"
	}
	return "tiled-vertical"
}

func (d *TiledDecorator) String() string {
	return fmt.Sprintf("%s(%s %s %s)", d.Type(), d.Tiles[0], d.Tiles[1], d.Tiles[2])
}

type tiledInstancer struct {
	horizontal bool
}

func (t tiledInstancer) Shorthand() []string {
	if t.horizontal {
		return []string{"left-image", "center-image", "right-image"}
	}
	return []string{"top-image", "center-image", "bottom-image"}
}

func (t tiledInstancer) InstanceDecorator(params Params, ctx Context) (Decorator, error) {
	d := &TiledDecorator{Horizontal: t.horizontal}
	for i, name := range t.Shorthand() {
		tile, err := resolveTile(params[name], ctx)
		if err != nil {
			return nil, fmt.Errorf("%s: %s: %w", d.Type(), name, err)
		}
		d.Tiles[i] = tile
	}
	return d, nil
}

// --- gradient --------------------------------------------------------------

// GradientDecorator paints a linear two-color gradient.
type GradientDecorator struct {
	Vertical    bool
	Start, Stop color.Color
}

// Type is part of interface Decorator.
func (d *GradientDecorator) Type() string { return "gradient" }

func (d *GradientDecorator) String() string {
	dir := "horizontal"
	if d.Vertical {
		dir = "vertical"
	}
	return fmt.Sprintf("gradient(%s %v %v)", dir, d.Start, d.Stop)
}

type gradientInstancer struct{}

func (gradientInstancer) Shorthand() []string {
	return []string{"direction", "start-color", "stop-color"}
}

func (gradientInstancer) InstanceDecorator(params Params, _ Context) (Decorator, error) {
	d := &GradientDecorator{}
	switch dir := strings.ToLower(params["direction"].String()); dir {
	case "vertical":
		d.Vertical = true
	case "horizontal":
	default:
		return nil, fmt.Errorf("gradient: invalid direction %q", dir)
	}
	var ok bool
	if d.Start, ok = params["start-color"].Color(); !ok {
		return nil, fmt.Errorf("gradient: invalid start-color %q", params["start-color"])
	}
	if d.Stop, ok = params["stop-color"].Color(); !ok {
		return nil, fmt.Errorf("gradient: invalid stop-color %q", params["stop-color"])
	}
	tracer().Debugf("effects: instanced decorator %s", d)
	return d, nil
}
