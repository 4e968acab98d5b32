package pdfextract

import (
	"bytes"
	"io"
	"strconv"

	"github.com/ledongthuc/pdf"
	"go.uber.org/zap"
)

// inlineImages scans the page's content stream for BI..ID..EI inline image
// operations. Only unfiltered 8-bit sample data is decoded; filtered inline
// images are skipped like any other unsupported layout.
func (e *Extractor) inlineImages(page pdf.Page) (out []string) {
	defer func() {
		if r := recover(); r != nil {
			e.logger.Warn("inline image scan failed", zap.Any("panic", r))
		}
	}()

	data := contentStreamBytes(page.V)
	if len(data) == 0 {
		return nil
	}

	for pos := 0; pos < len(data); {
		start := indexToken(data, pos, "BI")
		if start < 0 {
			break
		}
		img, next, ok := e.parseInlineImage(data, start+2)
		pos = next
		if ok {
			out = append(out, img)
		}
	}
	return out
}

// contentStreamBytes concatenates the page's content stream(s)
func contentStreamBytes(pageDict pdf.Value) []byte {
	contents := pageDict.Key("Contents")
	var buf bytes.Buffer

	readStream := func(v pdf.Value) {
		if v.Kind() != pdf.Stream {
			return
		}
		rc := v.Reader()
		defer rc.Close()
		if data, err := io.ReadAll(rc); err == nil {
			buf.Write(data)
			buf.WriteByte('\n')
		}
	}

	switch contents.Kind() {
	case pdf.Stream:
		readStream(contents)
	case pdf.Array:
		for i := 0; i < contents.Len(); i++ {
			readStream(contents.Index(i))
		}
	}
	return buf.Bytes()
}

// parseInlineImage reads the parameter dictionary after BI, then the sample
// data between ID and EI. Returns the encoded image, the position to resume
// scanning from, and whether the image was decodable.
func (e *Extractor) parseInlineImage(data []byte, pos int) (string, int, bool) {
	width, height := 0, 0
	filtered := false

	for pos < len(data) {
		token, next := readToken(data, pos)
		pos = next
		if token == "" {
			return "", len(data), false
		}
		if token == "ID" {
			break
		}
		if token[0] != '/' {
			continue
		}

		value, next := readToken(data, pos)
		pos = next

		switch token {
		case "/W", "/Width":
			width, _ = strconv.Atoi(value)
		case "/H", "/Height":
			height, _ = strconv.Atoi(value)
		case "/BPC", "/BitsPerComponent":
			if bpc, err := strconv.Atoi(value); err == nil && bpc != 8 {
				filtered = true // unsupported depth, treat like a filter
			}
		case "/F", "/Filter":
			filtered = true
		}
	}

	// One whitespace byte separates ID from the sample data
	if pos < len(data) && isWhitespace(data[pos]) {
		pos++
	}

	end := indexToken(data, pos, "EI")
	if end < 0 {
		return "", len(data), false
	}
	// Only the single delimiter byte before EI is not sample data. Trimming
	// further would eat trailing pixels that happen to be whitespace-valued.
	sample := data[pos:end]
	if len(sample) > 0 && isWhitespace(sample[len(sample)-1]) {
		sample = sample[:len(sample)-1]
	}
	resume := end + 2

	if filtered || width <= 0 || height <= 0 {
		return "", resume, false
	}

	uri, ok := e.encodePixels(sample, width, height)
	return uri, resume, ok
}

// indexToken finds a standalone two-letter operator at or after pos
func indexToken(data []byte, pos int, token string) int {
	for i := pos; i+len(token) <= len(data); i++ {
		if string(data[i:i+len(token)]) != token {
			continue
		}
		beforeOK := i == 0 || isWhitespace(data[i-1])
		afterOK := i+len(token) == len(data) || isWhitespace(data[i+len(token)])
		if beforeOK && afterOK {
			return i
		}
	}
	return -1
}

// readToken returns the next whitespace-delimited token and the position
// after it
func readToken(data []byte, pos int) (string, int) {
	for pos < len(data) && isWhitespace(data[pos]) {
		pos++
	}
	start := pos
	for pos < len(data) && !isWhitespace(data[pos]) {
		pos++
	}
	return string(data[start:pos]), pos
}

func isWhitespace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\r' || b == '\n' || b == '\f' || b == 0
}
