package encoder

import "github.com/gocodec/aztec/bitutil"

// codeForMode looks up the literal code for a byte/fragment in the given
// mode, panicking if the token stream calls for a representation the mode
// tables don't have — a programmer-error assertion per spec.md §7
// ("internal invariant violations ... should be treated as programmer-error
// assertions"), since Sequence never emits an unrepresentable literal.
func codeForMode(bytes []byte, m Mode) int {
	if len(bytes) == 2 {
		code, ok := punctPairs[[2]byte{bytes[0], bytes[1]}]
		if !ok {
			panic("aztec: two-byte literal is not a known PUNCT fragment")
		}
		return code
	}
	code := charMap[bytes[0]][m]
	if code == -1 {
		panic("aztec: literal byte not representable in its token's mode")
	}
	return code
}

// PackBits walks a finalized token stream into a bit string, generalizing
// the teacher's inline AppendBits calls into one rule per Token kind
// (spec.md §4.E). mode tracks the currently latched mode as tokens are
// replayed; Shift tokens emit their opcode but do not change it (a Shift's
// effect on mode is local to the single following literal/escape token).
func PackBits(tokens []Token) *bitutil.BitArray {
	out := bitutil.NewBitArray(0)
	mode := ModeUpper
	shiftMode := Mode(-1) // -1: no shift pending
	flgDigits := 0        // remaining ECI digits to force into DIGIT mode

	effectiveMode := func() Mode {
		if shiftMode != -1 {
			return shiftMode
		}
		return mode
	}

	for _, t := range tokens {
		switch t.Kind {
		case TokenLatch:
			out.AppendBits(uint32(latchOpcode(mode, t.Mode)), codeBits[mode])
			mode = t.Mode
			shiftMode = -1

		case TokenShift:
			if t.Mode == mode {
				// A Shift token whose mode equals the current mode signals a
				// BINARY escape (spec.md §4.C: BS only exists in UPPER/LOWER/
				// MIXED). Its opcode is written by emitBinary itself, once
				// per chunk, since a run longer than one escape can address
				// needs several BS headers sharing this same latched mode.
				shiftMode = -1
				continue
			}
			out.AppendBits(uint32(shiftOpcode(mode, t.Mode)), codeBits[mode])
			shiftMode = t.Mode

		case TokenByte:
			m := effectiveMode()
			if flgDigits > 0 {
				// spec.md §4.E: the ECI digits following FLG(n) are always
				// DIGIT-mode codes, regardless of the mode otherwise in force.
				m = ModeDigit
				flgDigits--
			}
			out.AppendBits(uint32(codeForMode(t.Bytes, m)), codeBits[m])
			shiftMode = -1

		case TokenBinary:
			emitBinary(out, mode, t.Bytes)
			shiftMode = -1

		case TokenFlg:
			// FLG lives in the PUNCT table at code 0; always reached via a
			// preceding Shift(PUNCT) token (spec.md §3's invariant).
			out.AppendBits(0, 5)
			out.AppendBits(uint32(t.Flg), 3)
			flgDigits = t.Flg
			shiftMode = -1
		}
	}
	return out
}

// latchOpcode returns the code that latches from `from` directly to `to`
// when that's a single hop; sequencer.go never emits a TokenLatch for a
// multi-hop transition without an intermediate TokenLatch of its own, so a
// direct lookup suffices here.
func latchOpcode(from, to Mode) int {
	for _, step := range latchPath(from, to) {
		return step.code
	}
	panic("aztec: no single-hop latch from " + from.String() + " to " + to.String())
}

// shiftOpcode returns the opcode for the two non-BINARY shift kinds: P/S
// (code 0, shift to PUNCT) and A/S (shift to UPPER from LOWER or DIGIT). A
// Shift token whose mode equals the current mode (BS) is handled directly
// in PackBits and never reaches here.
func shiftOpcode(from, to Mode) int {
	if to == ModePunct {
		return codePS
	}
	if code, ok := canShiftToUpper(from); ok && to == ModeUpper {
		return code
	}
	panic("aztec: no shift from " + from.String() + " to " + to.String())
}

// emitBinary writes one or more BS escapes (opcode + length header, short
// or long form per spec.md §4.E) followed by the raw payload bytes,
// splitting runs longer than a single escape's 11-bit long-form field can
// address (2047 + 31) into consecutive escapes sharing mode's bit width.
func emitBinary(out *bitutil.BitArray, mode Mode, payload []byte) {
	for len(payload) > 0 {
		chunk := payload
		if len(chunk) > maxBinaryRunPerEscape {
			chunk = chunk[:maxBinaryRunPerEscape]
		}
		out.AppendBits(codeBS, codeBits[mode])
		if len(chunk) <= 31 {
			out.AppendBits(uint32(len(chunk)), 5)
		} else {
			out.AppendBits(0, 5)
			out.AppendBits(uint32(len(chunk)-31), 11)
		}
		for _, b := range chunk {
			out.AppendBits(uint32(b), 8)
		}
		payload = payload[len(chunk):]
	}
}

// maxBinaryRunPerEscape is the largest run a single BS escape's headers can
// address (31 short-form bytes plus the 11-bit long-form extension's 2047).
const maxBinaryRunPerEscape = 31 + 2047
