// Package logo loads the header logo of quotes and presentations: content
// sniffing, normalisation into a stream the PDF engine accepts, sizing and
// best-effort fetching.
package logo

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp"

	"github.com/apogeu/crmdocs"
)

// Format is the detected encoding of a logo.
type Format string

const (
	PNG  Format = "png"
	JPEG Format = "jpeg"
	WEBP Format = "webp"
)

const (
	// MaxBytes is the largest logo payload accepted for upload or fetch.
	MaxBytes = 3 << 20

	// MaxWidth is the pixel width logos are downsized to before embedding.
	MaxWidth = 1200
)

var (
	pngMagic  = []byte("\x89PNG\r\n\x1a\n")
	jpegMagic = []byte{0xff, 0xd8, 0xff}
)

// Sniff detects the image format from the first bytes of data. SVG and any
// unknown content are rejected with crmdocs.ErrUnsupportedImage.
func Sniff(data []byte) (Format, error) {
	switch {
	case bytes.HasPrefix(data, pngMagic):
		return PNG, nil
	case bytes.HasPrefix(data, jpegMagic):
		return JPEG, nil
	case len(data) >= 12 && string(data[0:4]) == "RIFF" && string(data[8:12]) == "WEBP":
		return WEBP, nil
	}
	return "", crmdocs.Wrap("logo.Sniff", crmdocs.ErrUnsupportedImage)
}

// Image is a decoded logo ready to be registered with the PDF engine.
type Image struct {
	Format Format // PNG or JPEG
	Data   []byte
	Width  int
	Height int
}

// EngineType returns the image type name expected by gofpdf.
func (im *Image) EngineType() string {
	if im.Format == JPEG {
		return "JPG"
	}
	return "PNG"
}

// Decode validates and normalises raw logo bytes. WEBP input becomes PNG,
// images wider than MaxWidth are downsized, and everything is re-encoded so
// interlaced or exotic streams reach the engine in a baseline form.
func Decode(data []byte) (*Image, error) {
	if len(data) > MaxBytes {
		return nil, crmdocs.Wrap("logo.Decode", crmdocs.ErrImageTooLarge)
	}
	format, err := Sniff(data)
	if err != nil {
		return nil, err
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, crmdocs.Wrap("logo.Decode", fmt.Errorf("%w: %v", crmdocs.ErrUnsupportedImage, err))
	}
	if img.Bounds().Dx() > MaxWidth {
		img = imaging.Resize(img, MaxWidth, 0, imaging.Lanczos)
	}

	out := &Image{Format: PNG}
	encFormat := imaging.PNG
	if format == JPEG {
		out.Format = JPEG
		encFormat = imaging.JPEG
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, encFormat, imaging.JPEGQuality(90)); err != nil {
		return nil, crmdocs.Wrap("logo.Decode", err)
	}
	out.Data = buf.Bytes()
	out.Width = img.Bounds().Dx()
	out.Height = img.Bounds().Dy()
	return out, nil
}
