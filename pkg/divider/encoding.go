package divider

import (
	"fmt"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/encoding/unicode"
)

// Encoding names the text encoding of SQL input and output files.
type Encoding string

// Supported encodings.
const (
	EncodingUTF8     Encoding = "utf-8"
	EncodingUTF8BOM  Encoding = "utf-8-bom"
	EncodingUTF16LE  Encoding = "utf-16le"
	EncodingUTF16BE  Encoding = "utf-16be"
	EncodingShiftJIS Encoding = "shift_jis"
	EncodingEUCJP    Encoding = "euc-jp"
	EncodingLatin1   Encoding = "iso-8859-1"
)

var encodingAliases = map[string]Encoding{
	"":           EncodingUTF8,
	"utf-8":      EncodingUTF8,
	"utf8":       EncodingUTF8,
	"utf-8-bom":  EncodingUTF8BOM,
	"utf8bom":    EncodingUTF8BOM,
	"utf-8-sig":  EncodingUTF8BOM,
	"utf-16le":   EncodingUTF16LE,
	"utf16le":    EncodingUTF16LE,
	"utf-16be":   EncodingUTF16BE,
	"utf16be":    EncodingUTF16BE,
	"shift_jis":  EncodingShiftJIS,
	"shift-jis":  EncodingShiftJIS,
	"sjis":       EncodingShiftJIS,
	"cp932":      EncodingShiftJIS,
	"euc-jp":     EncodingEUCJP,
	"eucjp":      EncodingEUCJP,
	"iso-8859-1": EncodingLatin1,
	"latin1":     EncodingLatin1,
}

// EncodingNames lists the canonical encoding names.
func EncodingNames() []string {
	return []string{
		string(EncodingUTF8), string(EncodingUTF8BOM),
		string(EncodingUTF16LE), string(EncodingUTF16BE),
		string(EncodingShiftJIS), string(EncodingEUCJP), string(EncodingLatin1),
	}
}

// ParseEncoding resolves a case-insensitive encoding name or alias.
// An empty name selects UTF-8.
func ParseEncoding(name string) (Encoding, error) {
	enc, ok := encodingAliases[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return "", fmt.Errorf("unknown encoding %q (supported: %s)", name, strings.Join(EncodingNames(), ", "))
	}
	return enc, nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (e *Encoding) UnmarshalText(text []byte) error {
	enc, err := ParseEncoding(string(text))
	if err != nil {
		return err
	}
	*e = enc
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (e Encoding) MarshalText() ([]byte, error) {
	return []byte(e.orDefault()), nil
}

func (e Encoding) String() string {
	return string(e.orDefault())
}

func (e Encoding) orDefault() Encoding {
	if e == "" {
		return EncodingUTF8
	}
	return e
}

// codec returns the x/text codec. Reading UTF-8 goes through the BOM-aware
// decoder so a stray BOM never reaches the first line.
func (e Encoding) codec(decode bool) (encoding.Encoding, error) {
	switch e.orDefault() {
	case EncodingUTF8:
		if decode {
			return unicode.UTF8BOM, nil
		}
		return unicode.UTF8, nil
	case EncodingUTF8BOM:
		return unicode.UTF8BOM, nil
	case EncodingUTF16LE:
		return unicode.UTF16(unicode.LittleEndian, unicode.UseBOM), nil
	case EncodingUTF16BE:
		return unicode.UTF16(unicode.BigEndian, unicode.UseBOM), nil
	case EncodingShiftJIS:
		return japanese.ShiftJIS, nil
	case EncodingEUCJP:
		return japanese.EUCJP, nil
	case EncodingLatin1:
		return charmap.ISO8859_1, nil
	}
	return nil, fmt.Errorf("unknown encoding %q", string(e))
}

// Decode converts raw file bytes into a string.
func (e Encoding) Decode(raw []byte) (string, error) {
	c, err := e.codec(true)
	if err != nil {
		return "", err
	}
	out, err := c.NewDecoder().Bytes(raw)
	if err != nil {
		return "", fmt.Errorf("decode %s: %w", e, err)
	}
	return string(out), nil
}

// Encode converts text into file bytes.
func (e Encoding) Encode(text string) ([]byte, error) {
	c, err := e.codec(false)
	if err != nil {
		return nil, err
	}
	out, err := c.NewEncoder().Bytes([]byte(text))
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", e, err)
	}
	return out, nil
}
