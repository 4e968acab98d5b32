package pdfextract

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/png"
)

// ExpandToRGBA converts a raw sample buffer into an RGBA buffer. The component
// layout is inferred from the buffer size: 1 component is grayscale (the gray
// value replicated into R/G/B, alpha fully opaque), 3 is RGB (opaque alpha
// inserted), 4 is copied through unchanged. Any other layout is not an error,
// the image is simply skipped.
func ExpandToRGBA(data []byte, width, height int) ([]byte, bool) {
	if width <= 0 || height <= 0 {
		return nil, false
	}
	pixels := width * height
	if pixels == 0 || len(data)%pixels != 0 {
		return nil, false
	}

	switch len(data) / pixels {
	case 1:
		out := make([]byte, pixels*4)
		for i := 0; i < pixels; i++ {
			g := data[i]
			out[i*4] = g
			out[i*4+1] = g
			out[i*4+2] = g
			out[i*4+3] = 255
		}
		return out, true
	case 3:
		out := make([]byte, pixels*4)
		for i := 0; i < pixels; i++ {
			out[i*4] = data[i*3]
			out[i*4+1] = data[i*3+1]
			out[i*4+2] = data[i*3+2]
			out[i*4+3] = 255
		}
		return out, true
	case 4:
		out := make([]byte, pixels*4)
		copy(out, data)
		return out, true
	default:
		return nil, false
	}
}

// encodePNGDataURI wraps an RGBA buffer as a displayable data URI
func encodePNGDataURI(rgba []byte, width, height int) (string, error) {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	copy(img.Pix, rgba)

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", err
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
