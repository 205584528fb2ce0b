package layout

import (
	"fmt"
	"strconv"
	"strings"
)

// This file defines pixel/point conversion and color helpers.

// The canvas backend works in millimetres and sizes font faces in points.
// One canvas unit is rendered as one pixel, so a pixel font size must be
// converted to points before a face is created.
const (
	PxToPt = 72.0 / 25.4
	PtToPx = 25.4 / 72.0
)

// Color 采用 0-255 的 RGB 数值。
type Color struct {
	R int `json:"r"`
	G int `json:"g"`
	B int `json:"b"`
}

// Hex returns the color as #RRGGBB.
func (c Color) Hex() string {
	return fmt.Sprintf("#%02X%02X%02X", clampByte(c.R), clampByte(c.G), clampByte(c.B))
}

// ParseHexColor parses #RGB or #RRGGBB (the leading # is optional).
func ParseHexColor(s string) (Color, error) {
	v := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(v) == 3 {
		v = string([]byte{v[0], v[0], v[1], v[1], v[2], v[2]})
	}
	if len(v) != 6 {
		return Color{}, fmt.Errorf("无效颜色 %q", s)
	}
	n, err := strconv.ParseUint(v, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("无效颜色 %q: %w", s, err)
	}
	return Color{R: int(n >> 16 & 0xff), G: int(n >> 8 & 0xff), B: int(n & 0xff)}, nil
}

// MustHexColor is ParseHexColor for constants; it panics on malformed input.
func MustHexColor(s string) Color {
	c, err := ParseHexColor(s)
	if err != nil {
		panic(err)
	}
	return c
}

func clampByte(v int) int {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return v
}
