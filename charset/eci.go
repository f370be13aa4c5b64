// Package charset provides the ECI (Extended Channel Interpretation)
// registry and the character encoder Aztec's high-level sequencer treats
// as an opaque collaborator: given a canonical encoding name, produce the
// bytes to feed the sequencer and the ECI value to announce via FLG(n).
package charset

import "errors"

// ErrUnknownEncoding is returned when a caller-supplied encoding name is not
// present in the ECI registry (spec.md §7, InvalidEncoding).
var ErrUnknownEncoding = errors.New("charset: unknown encoding name")

// eciByName maps canonical, pre-normalized encoding names to their AIM ECI
// assignment. Callers are expected to pass canonical names directly
// (spec.md §6: "the ECI registry is keyed by canonical names; callers
// pre-normalize"); this registry does no case-folding or alias resolution.
//
// Values mirror the authoritative entries spec.md §6 calls out; the rest of
// the ISO-8859 family and a handful of common East Asian encodings are
// filled in from the same AIM ECI assignment table the teacher's registry
// used, generalized to canonical lowercase names.
var eciByName = map[string]int{
	"cp437":       0,
	"iso8859-1":   3,
	"iso8859-2":   4,
	"iso8859-3":   5,
	"iso8859-4":   6,
	"iso8859-5":   7,
	"iso8859-6":   8,
	"iso8859-7":   9,
	"iso8859-8":   10,
	"iso8859-9":   11,
	"iso8859-10":  12,
	"iso8859-11":  13,
	"iso8859-13":  15,
	"iso8859-14":  16,
	"iso8859-15":  17,
	"iso8859-16":  18,
	"shift_jis":   20,
	"cp1250":      21,
	"cp1251":      22,
	"cp1252":      23,
	"cp1256":      24,
	"utf-16-be":   25,
	"utf-8":       26,
	"us-ascii":    27,
	"big5":        28,
	"gb18030":     29,
	"euc-kr":      30,
}

// Value returns the ECI value registered for a canonical encoding name.
func Value(name string) (int, error) {
	v, ok := eciByName[name]
	if !ok {
		return 0, ErrUnknownEncoding
	}
	return v, nil
}

// Known reports whether name is a recognized canonical encoding name.
func Known(name string) bool {
	_, ok := eciByName[name]
	return ok
}
