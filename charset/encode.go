package charset

import (
	"fmt"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/encoding/korean"
	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/encoding/traditionalchinese"
	"golang.org/x/text/encoding/unicode"
)

// encodingByName implements the Encoder collaborator spec.md §1 treats as
// opaque: it resolves a canonical name to the golang.org/x/text codec that
// actually transcodes the payload. utf-8 and us-ascii need no codec (Go
// strings are already UTF-8, and ASCII is a subset of it).
var encodingByName = map[string]encoding.Encoding{
	"cp437":      charmap.CodePage437,
	"iso8859-1":  charmap.ISO8859_1,
	"iso8859-2":  charmap.ISO8859_2,
	"iso8859-3":  charmap.ISO8859_3,
	"iso8859-4":  charmap.ISO8859_4,
	"iso8859-5":  charmap.ISO8859_5,
	"iso8859-6":  charmap.ISO8859_6,
	"iso8859-7":  charmap.ISO8859_7,
	"iso8859-8":  charmap.ISO8859_8,
	"iso8859-9":  charmap.ISO8859_9,
	"iso8859-10": charmap.ISO8859_10,
	"iso8859-13": charmap.ISO8859_13,
	"iso8859-14": charmap.ISO8859_14,
	"iso8859-15": charmap.ISO8859_15,
	"iso8859-16": charmap.ISO8859_16,
	"cp1250":     charmap.Windows1250,
	"cp1251":     charmap.Windows1251,
	"cp1252":     charmap.Windows1252,
	"cp1256":     charmap.Windows1256,
	"shift_jis":  japanese.ShiftJIS,
	"big5":       traditionalchinese.Big5,
	"gb18030":    simplifiedchinese.GB18030,
	"euc-kr":     korean.EUCKR,
	"utf-16-be":  unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM),
}

// Encode transcodes s from UTF-8 into the bytes the named encoding would
// produce, the opaque "Encoder: (str, name) -> bytes" collaborator spec.md
// §1 calls out. An empty name means "no ECI, use the payload's raw UTF-8
// bytes" (spec.md's implicit iso8859-1-ish default path, left to the
// caller since no ECI is announced in that case).
func Encode(s, name string) ([]byte, error) {
	if name == "" {
		return []byte(s), nil
	}
	switch name {
	case "utf-8":
		return []byte(s), nil
	case "us-ascii":
		return []byte(s), nil
	}
	codec, ok := encodingByName[name]
	if !ok {
		if !Known(name) {
			return nil, ErrUnknownEncoding
		}
		return nil, fmt.Errorf("charset: %q has no transcoder wired", name)
	}
	out, err := codec.NewEncoder().Bytes([]byte(s))
	if err != nil {
		return nil, fmt.Errorf("charset: encode %q as %s: %w", s, name, err)
	}
	return out, nil
}
