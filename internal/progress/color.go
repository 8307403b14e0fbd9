package progress

import (
	"fmt"
	"strconv"
	"strings"
)

// rgb is a parsed color, used only for gradient interpolation math.
type rgb struct {
	r, g, b float64
}

// parseHexColor parses "#RRGGBB" or "RRGGBB". Unparseable input falls back
// to white, matching a permissive theme loader rather than hard-failing on
// a cosmetic config mistake.
func parseHexColor(s string) rgb {
	s = strings.TrimPrefix(s, "#")
	if len(s) != 6 {
		return rgb{255, 255, 255}
	}
	r, err1 := strconv.ParseUint(s[0:2], 16, 8)
	g, err2 := strconv.ParseUint(s[2:4], 16, 8)
	b, err3 := strconv.ParseUint(s[4:6], 16, 8)
	if err1 != nil || err2 != nil || err3 != nil {
		return rgb{255, 255, 255}
	}
	return rgb{float64(r), float64(g), float64(b)}
}

func interpolateColor(a, b rgb, t float64) rgb {
	return rgb{
		r: a.r + (b.r-a.r)*t,
		g: a.g + (b.g-a.g)*t,
		b: a.b + (b.b-a.b)*t,
	}
}

func (c rgb) hex() string {
	return fmt.Sprintf("#%02X%02X%02X", clampByte(c.r), clampByte(c.g), clampByte(c.b))
}

func clampByte(f float64) int {
	if f < 0 {
		return 0
	}
	if f > 255 {
		return 255
	}
	return int(f)
}

// gradientColor returns the hex color at position t (0..1) along a
// multi-stop gradient. A single stop or no stops yields a fixed color.
func gradientColor(stops []string, t float64) string {
	if len(stops) == 0 {
		return "#FFFFFF"
	}
	if len(stops) == 1 {
		return stops[0]
	}
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}
	segments := len(stops) - 1
	pos := t * float64(segments)
	idx := int(pos)
	if idx >= segments {
		idx = segments - 1
	}
	localT := pos - float64(idx)
	a := parseHexColor(stops[idx])
	b := parseHexColor(stops[idx+1])
	return interpolateColor(a, b, localT).hex()
}
