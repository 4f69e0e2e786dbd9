package shadow3d

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
)

// Style stores the drawing options of a dataset.
// Only the "color" and "opacity" (or "alpha") entries are
// interpreted by the projector; the other entries are forwarded
// verbatim to the surface, which is free to ignore them.
type Style map[string]interface{}

// Opacity returns the "opacity" entry, or the "alpha" one,
// defaulting to 1.
func (s Style) Opacity() float64 {
	if f, ok := s.lookupFloat("opacity"); ok {
		return f
	}
	if f, ok := s.lookupFloat("alpha"); ok {
		return f
	}
	return 1
}

// Float returns the entry for `key` as a float64, or `defaut`
// if it is absent or not a number.
func (s Style) Float(key string, defaut float64) float64 {
	if f, ok := s.lookupFloat(key); ok {
		return f
	}
	return defaut
}

func (s Style) lookupFloat(key string) (float64, bool) {
	switch v := s[key].(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	default:
		return 0, false
	}
}

// Clone returns a shallow copy of the style, which may be
// mutated without affecting s.
func (s Style) Clone() Style {
	out := make(Style, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}

// shadow returns the style used for the shadows of a dataset drawn
// with s: same options, opacity scaled by `ratio`, and a single
// "color" entry (the alternate "c" entry is folded into it,
// and gray is used when no color is given at all).
func (s Style) shadow(ratio float64) Style {
	out := s.Clone()
	out["opacity"] = s.Opacity() * ratio
	delete(out, "alpha")
	if c, has := out["c"]; has {
		delete(out, "c")
		out["color"] = c
	} else if _, has := out["color"]; !has {
		out["color"] = "gray"
	}
	return out
}

// ParseColor resolves the color value of a style entry:
// a color.Color is used as is; a string is interpreted as an
// SVG 1.1 color name, or as an hexadecimal #rgb or #rrggbb code.
// A nil value yields opaque black.
func ParseColor(v interface{}) (color.RGBA, error) {
	switch v := v.(type) {
	case nil:
		return color.RGBA{A: 0xff}, nil
	case color.RGBA:
		return v, nil
	case color.Color:
		r, g, b, a := v.RGBA()
		return color.RGBA{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8), A: uint8(a >> 8)}, nil
	case string:
		return parseColorString(v)
	default:
		return color.RGBA{}, fmt.Errorf("unsupported color value %v (type %T)", v, v)
	}
}

func parseColorString(s string) (color.RGBA, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	if strings.HasPrefix(s, "#") {
		return parseHexColor(s)
	}
	if c, has := colornames.Map[s]; has {
		return c, nil
	}
	return color.RGBA{}, fmt.Errorf("unknown color name '%s'", s)
}

func parseHexColor(s string) (color.RGBA, error) {
	hex := s[1:]
	var r, g, b uint64
	var err error
	switch len(hex) {
	case 3:
		r, err = strconv.ParseUint(strings.Repeat(hex[0:1], 2), 16, 8)
		if err == nil {
			g, err = strconv.ParseUint(strings.Repeat(hex[1:2], 2), 16, 8)
		}
		if err == nil {
			b, err = strconv.ParseUint(strings.Repeat(hex[2:3], 2), 16, 8)
		}
	case 6:
		r, err = strconv.ParseUint(hex[0:2], 16, 8)
		if err == nil {
			g, err = strconv.ParseUint(hex[2:4], 16, 8)
		}
		if err == nil {
			b, err = strconv.ParseUint(hex[4:6], 16, 8)
		}
	default:
		return color.RGBA{}, fmt.Errorf("invalid hexadecimal color '%s'", s)
	}
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid hexadecimal color '%s'", s)
	}
	return color.RGBA{R: uint8(r), G: uint8(g), B: uint8(b), A: 0xff}, nil
}
