package encoder

// Mode identifies one of Aztec's five character-code tables.
type Mode int

const (
	ModeUpper Mode = iota
	ModeLower
	ModeMixed
	ModeDigit
	ModePunct
	numModes
)

func (m Mode) String() string {
	switch m {
	case ModeUpper:
		return "UPPER"
	case ModeLower:
		return "LOWER"
	case ModeMixed:
		return "MIXED"
	case ModeDigit:
		return "DIGIT"
	case ModePunct:
		return "PUNCT"
	default:
		return "UNKNOWN"
	}
}

// codeBits gives the width, in bits, of one code in each mode. Every mode
// uses 5 bits except DIGIT, which uses 4.
var codeBits = [numModes]int{
	ModeUpper: 5,
	ModeLower: 5,
	ModeMixed: 5,
	ModeDigit: 4,
	ModePunct: 5,
}

// Reserved, non-literal codes shared across the UPPER/LOWER/MIXED/DIGIT
// tables. Code 0 is always "shift to PUNCT" outside of PUNCT itself; the
// remaining latch/shift codes vary by mode and are listed per table below.
const (
	codePS = 0 // P/S: shift to PUNCT, available from UPPER/LOWER/MIXED/DIGIT
	codeBS = 31 // B/S: binary shift, available from UPPER/LOWER/MIXED

	codeUpperLL = 28 // UPPER -> LOWER latch
	codeUpperML = 29 // UPPER -> MIXED latch
	codeUpperDL = 30 // UPPER -> DIGIT latch

	codeLowerAS = 28 // LOWER -> UPPER shift (A/S)
	codeLowerML = 29 // LOWER -> MIXED latch
	codeLowerDL = 30 // LOWER -> DIGIT latch

	codeMixedUL = 29 // MIXED -> UPPER latch
	codeMixedPL = 28 // MIXED -> PUNCT latch

	codeDigitUL = 14 // DIGIT -> UPPER latch
	codeDigitAS = 15 // DIGIT -> UPPER shift (A/S)

	codePunctUL = 31 // PUNCT -> UPPER latch
)

// charMap[b][m] gives the code for byte b in mode m, or -1 if b has no
// literal representation in that mode. Two-byte PUNCT fragments are kept
// separately in punctPairs since they consume two input bytes at once.
var charMap [256][numModes]int

func init() {
	for b := range charMap {
		for m := range charMap[b] {
			charMap[b][m] = -1
		}
	}

	// UPPER: 1=SP, 2..27=A..Z
	charMap[' '][ModeUpper] = 1
	for c := byte('A'); c <= 'Z'; c++ {
		charMap[c][ModeUpper] = int(c-'A') + 2
	}

	// LOWER: 1=SP, 2..27=a..z
	charMap[' '][ModeLower] = 1
	for c := byte('a'); c <= 'z'; c++ {
		charMap[c][ModeLower] = int(c-'a') + 2
	}

	// MIXED: 1=SP, 2..14=\x01..\x0D, 15=ESC, 16..19=\x1C..\x1F,
	// 20=@ 21=\ 22=^ 23=_ 24=` 25=| 26=~ 27=\x7F
	charMap[' '][ModeMixed] = 1
	for c := byte(1); c <= 13; c++ {
		charMap[c][ModeMixed] = int(c) + 1
	}
	charMap[0x1B][ModeMixed] = 15
	charMap[0x1C][ModeMixed] = 16
	charMap[0x1D][ModeMixed] = 17
	charMap[0x1E][ModeMixed] = 18
	charMap[0x1F][ModeMixed] = 19
	charMap['@'][ModeMixed] = 20
	charMap['\\'][ModeMixed] = 21
	charMap['^'][ModeMixed] = 22
	charMap['_'][ModeMixed] = 23
	charMap['`'][ModeMixed] = 24
	charMap['|'][ModeMixed] = 25
	charMap['~'][ModeMixed] = 26
	charMap[0x7F][ModeMixed] = 27

	// DIGIT: 1=SP, 2..11='0'..'9', 12=',', 13='.'
	charMap[' '][ModeDigit] = 1
	for c := byte('0'); c <= '9'; c++ {
		charMap[c][ModeDigit] = int(c-'0') + 2
	}
	charMap[','][ModeDigit] = 12
	charMap['.'][ModeDigit] = 13

	// PUNCT: 1='\r', 6..29=single punctuation, 30='}'. Codes 2-5 are the
	// two-byte fragments handled via punctPairs.
	charMap['\r'][ModePunct] = 1
	singlePunct := []byte{
		'!', '"', '#', '$', '%', '&', '\'', '(', ')', '*', '+', ',',
		'-', '.', '/', ':', ';', '<', '=', '>', '?', '[', ']', '{',
	}
	for idx, c := range singlePunct {
		charMap[c][ModePunct] = idx + 6
	}
	charMap['}'][ModePunct] = 30
}

// punctPairs maps the four two-byte PUNCT fragments to their codes. The
// sequencer emits one only while PUNCT is in force: already latched, or
// entered by a P/S shift or latch in the same transition (see sequencer.go,
// the "CRLF bug" fix).
var punctPairs = map[[2]byte]int{
	{'\r', '\n'}: 2,
	{'.', ' '}:   3,
	{',', ' '}:   4,
	{':', ' '}:   5,
}

// latchStep is one hop of a latch: the code, emitted with the bit width of
// the mode the hop starts from. latchPath uses single hops for UPPER->LOWER/
// MIXED/DIGIT, LOWER->MIXED/DIGIT, MIXED->UPPER/PUNCT, DIGIT->UPPER and
// PUNCT->UPPER; every other pair chains hops through UPPER and/or MIXED.
type latchStep struct {
	mode Mode // mode whose bit width the code is emitted with
	code int
}

// latchPath enumerates the codes needed to latch from `from` to `to`,
// generalizing the teacher's getLatchSequence switch into table form (the
// sequencer's DP calls it once per candidate transition).
func latchPath(from, to Mode) []latchStep {
	if from == to {
		return nil
	}
	switch from {
	case ModeUpper:
		switch to {
		case ModeLower:
			return []latchStep{{ModeUpper, codeUpperLL}}
		case ModeMixed:
			return []latchStep{{ModeUpper, codeUpperML}}
		case ModeDigit:
			return []latchStep{{ModeUpper, codeUpperDL}}
		case ModePunct:
			return []latchStep{{ModeUpper, codeUpperML}, {ModeMixed, codeMixedPL}}
		}
	case ModeLower:
		switch to {
		case ModeUpper:
			return []latchStep{{ModeLower, codeLowerML}, {ModeMixed, codeMixedUL}}
		case ModeMixed:
			return []latchStep{{ModeLower, codeLowerML}}
		case ModeDigit:
			return []latchStep{{ModeLower, codeLowerDL}}
		case ModePunct:
			return []latchStep{{ModeLower, codeLowerML}, {ModeMixed, codeMixedPL}}
		}
	case ModeMixed:
		switch to {
		case ModeUpper:
			return []latchStep{{ModeMixed, codeMixedUL}}
		case ModeLower:
			return []latchStep{{ModeMixed, codeMixedUL}, {ModeUpper, codeUpperLL}}
		case ModeDigit:
			return []latchStep{{ModeMixed, codeMixedUL}, {ModeUpper, codeUpperDL}}
		case ModePunct:
			return []latchStep{{ModeMixed, codeMixedPL}}
		}
	case ModeDigit:
		switch to {
		case ModeUpper:
			return []latchStep{{ModeDigit, codeDigitUL}}
		case ModeLower:
			return []latchStep{{ModeDigit, codeDigitUL}, {ModeUpper, codeUpperLL}}
		case ModeMixed:
			return []latchStep{{ModeDigit, codeDigitUL}, {ModeUpper, codeUpperML}}
		case ModePunct:
			return []latchStep{{ModeDigit, codeDigitUL}, {ModeUpper, codeUpperML}, {ModeMixed, codeMixedPL}}
		}
	case ModePunct:
		switch to {
		case ModeUpper:
			return []latchStep{{ModePunct, codePunctUL}}
		case ModeLower:
			return []latchStep{{ModePunct, codePunctUL}, {ModeUpper, codeUpperLL}}
		case ModeMixed:
			return []latchStep{{ModePunct, codePunctUL}, {ModeUpper, codeUpperML}}
		case ModeDigit:
			return []latchStep{{ModePunct, codePunctUL}, {ModeUpper, codeUpperDL}}
		}
	}
	return nil
}

// latchCost is the total bit cost of latchPath(from, to).
func latchCost(from, to Mode) int {
	cost := 0
	for _, step := range latchPath(from, to) {
		cost += codeBits[step.mode]
	}
	return cost
}

// canShiftToUpper reports whether mode m has a single-character A/S shift
// to UPPER (LOWER and DIGIT both do; MIXED and PUNCT do not).
func canShiftToUpper(m Mode) (code int, ok bool) {
	switch m {
	case ModeLower:
		return codeLowerAS, true
	case ModeDigit:
		return codeDigitAS, true
	default:
		return 0, false
	}
}
