package pdfextract

import (
	"bytes"
	"encoding/base64"
	"image/color"
	"image/png"
	"strings"
	"testing"
)

func TestParseInlineImageKeepsWhitespaceValuedPixels(t *testing.T) {
	e := NewExtractor(nil)

	// 2x2 grayscale sample whose last pixel is 0x20 (a space byte), followed
	// by the single delimiter byte and EI
	data := []byte("/W 2 /H 2 /BPC 8 ID \x10\x20\x30\x20 EI")

	uri, _, ok := e.parseInlineImage(data, 0)
	if !ok {
		t.Fatal("expected the image to decode: only the delimiter byte is not sample data")
	}
	if !strings.HasPrefix(uri, "data:image/png;base64,") {
		t.Fatalf("uri = %q, want a png data uri", uri)
	}

	raw, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(uri, "data:image/png;base64,"))
	if err != nil {
		t.Fatalf("decode payload: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("decode png: %v", err)
	}

	got := color.RGBAModel.Convert(img.At(1, 1)).(color.RGBA)
	if got.R != 0x20 || got.G != 0x20 || got.B != 0x20 {
		t.Errorf("pixel (1,1) = %+v, want gray 0x20", got)
	}
}

func TestParseInlineImageSkipsFiltered(t *testing.T) {
	e := NewExtractor(nil)

	data := []byte("/W 2 /H 2 /BPC 8 /F /DCTDecode ID \x10\x20\x30\x40 EI")
	if _, _, ok := e.parseInlineImage(data, 0); ok {
		t.Error("filtered inline image should be skipped")
	}
}
