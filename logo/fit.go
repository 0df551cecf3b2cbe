package logo

import (
	"math"

	"github.com/apogeu/crmdocs/layout"
)

// MaxHeight is the tallest a header logo may be drawn, in points.
const MaxHeight = 44

// Fit scales an imgW x imgH image to maxW wide, then shrinks it
// proportionally when the result is taller than maxH. A degenerate source
// makes the logo 32pt tall.
func Fit(imgW, imgH int, maxW, maxH float64) (w, h float64) {
	w = maxW
	h = w / (float64(imgW) / float64(imgH))
	if math.IsNaN(h) || math.IsInf(h, 0) || h <= 0 {
		h = 32
	}
	if h > maxH {
		scale := maxH / h
		h = maxH
		w *= scale
	}
	return w, h
}

// Place returns the x coordinate of a logo w points wide.
func Place(pos layout.LogoPosition, pageW, marginX, w float64) float64 {
	switch pos {
	case layout.LogoCenter:
		return pageW/2 - w/2
	case layout.LogoRight:
		return pageW - marginX - w
	}
	return marginX
}

// Drawable reports whether a placement is finite and non-empty.
func Drawable(x, w, h float64) bool {
	finite := func(f float64) bool { return !math.IsNaN(f) && !math.IsInf(f, 0) }
	return finite(x) && finite(w) && finite(h) && w > 0 && h > 0
}
