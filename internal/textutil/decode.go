package textutil

import (
	"bytes"
	"errors"
	"unicode/utf8"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// ErrNotText reports source bytes that do not decode to valid UTF-8 text.
var ErrNotText = errors.New("not valid UTF-8 text")

var (
	utf16LEBOM = []byte{0xFF, 0xFE}
	utf16BEBOM = []byte{0xFE, 0xFF}
)

// DecodeText converts file contents into a UTF-8 string. A UTF-8 byte order
// mark is dropped and UTF-16 input carrying a BOM is transcoded; everything
// else must already be valid UTF-8.
func DecodeText(data []byte) (string, error) {
	utf16 := bytes.HasPrefix(data, utf16LEBOM) || bytes.HasPrefix(data, utf16BEBOM)
	if !utf16 && !utf8.Valid(data) {
		return "", ErrNotText
	}
	decoded, _, err := transform.Bytes(unicode.BOMOverride(transform.Nop), data)
	if err != nil {
		return "", errors.Join(ErrNotText, err)
	}
	if !utf8.Valid(decoded) {
		return "", ErrNotText
	}
	return string(decoded), nil
}
