package svgstyle

import (
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
)

// RGB is an sRGB color with components in [0,1]. A nil *RGB means the
// paint channel is off; not the same as black.
type RGB struct {
	R, G, B float64
}

// NRGBA converts the color to 8-bit non-premultiplied form with the
// given alpha in [0,1].
func (c RGB) NRGBA(alpha float64) color.NRGBA {
	return color.NRGBA{
		R: uint8(math.Round(c.R * 255)),
		G: uint8(math.Round(c.G * 255)),
		B: uint8(math.Round(c.B * 255)),
		A: uint8(math.Round(alpha * 255)),
	}
}

// Hex renders the color as a lowercase #rrggbb string.
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x",
		uint8(math.Round(c.R*255)),
		uint8(math.Round(c.G*255)),
		uint8(math.Round(c.B*255)))
}

// ColorFormatError reports a color value in no recognized form.
type ColorFormatError struct {
	Raw string
}

func (e ColorFormatError) Error() string {
	return fmt.Sprintf("unsupported color format %q", e.Raw)
}

// OpacityError reports a non-numeric opacity value.
type OpacityError struct {
	Raw string
}

func (e OpacityError) Error() string {
	return fmt.Sprintf("invalid opacity value %q", e.Raw)
}

// StrokeWidthError reports a stroke width that does not parse.
type StrokeWidthError struct {
	Raw string
}

func (e StrokeWidthError) Error() string {
	return fmt.Sprintf("invalid stroke width %q", e.Raw)
}

// DecodeColor parses an SVG color value: #RGB and #RRGGBB hex forms,
// the SVG named colors, and rgb(r,g,b) with integer components.
// "none" and the empty string yield nil, signalling that the paint
// channel is off.
func DecodeColor(raw string) (*RGB, error) {
	v := strings.ToLower(strings.TrimSpace(raw))
	if v == "" || v == "none" {
		return nil, nil
	}
	if strings.HasPrefix(v, "#") {
		return decodeHexColor(v)
	}
	if cn, ok := colornames.Map[v]; ok {
		return &RGB{
			R: float64(cn.R) / 255,
			G: float64(cn.G) / 255,
			B: float64(cn.B) / 255,
		}, nil
	}
	if strings.HasPrefix(v, "rgb(") && strings.HasSuffix(v, ")") {
		return decodeRGBFunc(v)
	}
	return nil, ColorFormatError{Raw: raw}
}

func decodeHexColor(v string) (*RGB, error) {
	hex := v[1:]
	if len(hex) == 3 {
		// SVG specs say duplicate each digit for the short form.
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return nil, ColorFormatError{Raw: v}
	}
	var bytes [3]uint8
	for i := range bytes {
		n, err := strconv.ParseUint(hex[i*2:i*2+2], 16, 8)
		if err != nil {
			return nil, ColorFormatError{Raw: v}
		}
		bytes[i] = uint8(n)
	}
	return &RGB{
		R: float64(bytes[0]) / 255,
		G: float64(bytes[1]) / 255,
		B: float64(bytes[2]) / 255,
	}, nil
}

func decodeRGBFunc(v string) (*RGB, error) {
	inner := strings.TrimSuffix(strings.TrimPrefix(v, "rgb("), ")")
	parts := strings.Split(inner, ",")
	if len(parts) != 3 {
		return nil, ColorFormatError{Raw: v}
	}
	var vals [3]int
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil || n < 0 || n > 255 {
			return nil, ColorFormatError{Raw: v}
		}
		vals[i] = n
	}
	return &RGB{
		R: float64(vals[0]) / 255,
		G: float64(vals[1]) / 255,
		B: float64(vals[2]) / 255,
	}, nil
}

// DecodeOpacity parses an opacity value. The empty string defaults to
// fully opaque; a trailing % divides by 100; the result is clamped to
// [0,1].
func DecodeOpacity(raw string) (float64, error) {
	v := strings.TrimSpace(raw)
	if v == "" {
		return 1.0, nil
	}
	divisor := 1.0
	if strings.HasSuffix(v, "%") {
		divisor = 100
		v = strings.TrimSuffix(v, "%")
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil {
		return 0, OpacityError{Raw: raw}
	}
	return clamp01(f / divisor), nil
}

// strokeWidthSuffixes are stripped before parsing a width value.
var strokeWidthSuffixes = [...]string{"px", "pt", "mm", "cm", "in", "pc", "em", "ex"}

// DecodeStrokeWidth parses a stroke width, stripping a trailing unit
// suffix. The empty string defaults to 1.
func DecodeStrokeWidth(raw string) (float64, error) {
	v := strings.TrimSpace(raw)
	if v == "" {
		return 1.0, nil
	}
	for _, suffix := range strokeWidthSuffixes {
		if strings.HasSuffix(v, suffix) {
			v = strings.TrimSuffix(v, suffix)
			break
		}
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil {
		return 0, StrokeWidthError{Raw: raw}
	}
	return f, nil
}

func clamp01(f float64) float64 {
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}
