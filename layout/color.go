package layout

import (
	"strconv"
	"strings"
)

// RGB is a colour with 0-255 components.
type RGB struct {
	R, G, B int
}

// ParseHex decodes a six digit hex colour with an optional leading '#'.
// Anything else yields fallback.
func ParseHex(s string, fallback RGB) RGB {
	raw := strings.TrimSpace(strings.Replace(s, "#", "", 1))
	if len(raw) != 6 {
		return fallback
	}
	var c [3]int
	for i := range c {
		v, err := strconv.ParseUint(raw[i*2:i*2+2], 16, 8)
		if err != nil {
			return fallback
		}
		c[i] = int(v)
	}
	return RGB{c[0], c[1], c[2]}
}

// Hex formats c as "#rrggbb".
func (c RGB) Hex() string {
	const digits = "0123456789abcdef"
	b := []byte{'#', 0, 0, 0, 0, 0, 0}
	for i, v := range [3]int{c.R, c.G, c.B} {
		v = min(max(v, 0), 255)
		b[1+i*2] = digits[v>>4]
		b[2+i*2] = digits[v&0xf]
	}
	return string(b)
}
