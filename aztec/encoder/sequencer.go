package encoder

import "github.com/gocodec/aztec/charset"

// TokenKind identifies which variant of the tagged Token union is active,
// generalizing spec.md §9's "Token { Byte, Latch, Shift, BinaryShort,
// BinaryLong, Flg, BinaryByte }" sum type into one Go struct with a tag
// instead of a polymorphic list.
type TokenKind int

const (
	TokenByte TokenKind = iota
	TokenLatch
	TokenShift
	TokenBinary
	TokenFlg
)

// Token is one element of the sequence findOptimalSequence produces. Only
// the fields relevant to Kind are populated.
type Token struct {
	Kind  TokenKind
	Mode  Mode   // TokenLatch/TokenShift: destination mode
	Bytes []byte // TokenByte (len 1, or 2 for a PUNCT fragment); TokenBinary: raw payload
	Flg   int    // TokenFlg: n (0 = FNC1, 1..6 = ECI digit count)
}

// binaryLong marks a BINARY run that has grown past the 31-byte short-form
// limit and already paid the long-form header upgrade. Run lengths 1..31
// are tracked exactly since the 32nd byte retroactively changes the header
// cost (spec.md §9, "BINARY run accounting").
const binaryLong = 32

// tokenNode is a persistent singly-linked list so that the many DP
// branches explored per byte can share their common prefix instead of
// copying a slice at every transition.
type tokenNode struct {
	prev *tokenNode
	tok  Token
}

func push(n *tokenNode, t Token) *tokenNode { return &tokenNode{prev: n, tok: t} }

func flatten(n *tokenNode) []Token {
	var rev []Token
	for ; n != nil; n = n.prev {
		rev = append(rev, n.tok)
	}
	out := make([]Token, len(rev))
	for i, t := range rev {
		out[len(rev)-1-i] = t
	}
	return out
}

// state is one DP cell: the cheapest way found so far to reach a given
// (position, mode, run length) triple.
type state struct {
	cost    int
	tokens  *tokenNode
	pending []byte // bytes accumulated in the still-open BINARY run, if runLen > 0
	set     bool
}

// canStartBinary reports whether mode m has a BINARY shift code (code 31
// only exists in the UPPER/LOWER/MIXED tables; spec.md §4.C).
func canStartBinary(m Mode) bool {
	return m == ModeUpper || m == ModeLower || m == ModeMixed
}

// findOptimalSequence runs the shortest-path DP spec.md §4.D and §9
// describe: state (position, mode, pendingBinaryRun), with transitions for
// a same-mode literal, a PUNCT two-byte fragment (only while already
// latched/shifted into PUNCT — the CRLF-bug fix from spec.md §9), a shift,
// a latch, and starting/extending/closing a BINARY run. It always starts
// in UPPER, matching the source encoder's fixed initial mode.
func findOptimalSequence(data []byte) []Token {
	n := len(data)

	// dp[i][m][r] holds the best state found so far to have consumed the
	// first i input bytes, latched in mode m, with BINARY run progress r.
	dp := make([][numModes][binaryLong + 1]state, n+1)
	dp[0][ModeUpper][0] = state{cost: 0, set: true}

	relax := func(i int, m Mode, r int, s state) {
		cell := &dp[i][m][r]
		if !cell.set || s.cost < cell.cost {
			*cell = s
		}
	}

	for i := 0; i <= n; i++ {
		// Settle same-position transitions (closing an open run) before
		// reading this position's normal-state transitions, since closing
		// adds no cost and may unlock a cheaper literal/latch/shift.
		for m := Mode(0); m < numModes; m++ {
			for r := 1; r <= binaryLong; r++ {
				s := dp[i][m][r]
				if !s.set {
					continue
				}
				relax(i, m, 0, state{
					cost:   s.cost,
					tokens: push(push(s.tokens, Token{Kind: TokenShift, Mode: m}), Token{Kind: TokenBinary, Bytes: s.pending}),
					set:    true,
				})
			}
		}

		if i == n {
			break
		}
		b := data[i]

		for m := Mode(0); m < numModes; m++ {
			if s := dp[i][m][0]; s.set {
				// 1. Literal in current mode.
				if charMap[b][m] != -1 {
					relax(i+1, m, 0, state{
						cost: s.cost + codeBits[m], set: true,
						tokens: push(s.tokens, Token{Kind: TokenByte, Bytes: data[i : i+1]}),
					})
				}

				// 2. PUNCT two-byte fragment, only while already in PUNCT
				// (the CRLF-bug fix spec.md §9 requires).
				if m == ModePunct && i+1 < n {
					if _, ok := punctPairs[[2]byte{data[i], data[i+1]}]; ok {
						relax(i+2, ModePunct, 0, state{
							cost: s.cost + codeBits[ModePunct], set: true,
							tokens: push(s.tokens, Token{Kind: TokenByte, Bytes: data[i : i+2]}),
						})
					}
				}

				// 2b. PUNCT two-byte fragment from another mode, via a P/S
				// shift or a latch into PUNCT costed into this transition.
				if m != ModePunct && i+1 < n {
					if _, ok := punctPairs[[2]byte{data[i], data[i+1]}]; ok {
						pair := Token{Kind: TokenByte, Bytes: data[i : i+2]}
						shifted := push(push(s.tokens, Token{Kind: TokenShift, Mode: ModePunct}), pair)
						relax(i+2, m, 0, state{cost: s.cost + codeBits[m] + codeBits[ModePunct], tokens: shifted, set: true})
						latched := s.tokens
						for _, step := range latchPath(m, ModePunct) {
							latched = push(latched, Token{Kind: TokenLatch, Mode: finalLatchMode(step)})
						}
						relax(i+2, ModePunct, 0, state{cost: s.cost + latchCost(m, ModePunct) + codeBits[ModePunct], tokens: push(latched, pair), set: true})
					}
				}

				// 3a. P/S shift to PUNCT from any non-PUNCT mode.
				if m != ModePunct && charMap[b][ModePunct] != -1 {
					relax(i+1, m, 0, state{
						cost: s.cost + codeBits[m] + codeBits[ModePunct], set: true,
						tokens: push(push(s.tokens, Token{Kind: TokenShift, Mode: ModePunct}), Token{Kind: TokenByte, Bytes: data[i : i+1]}),
					})
				}

				// 3b. A/S shift to UPPER from LOWER or DIGIT.
				if (m == ModeLower || m == ModeDigit) && charMap[b][ModeUpper] != -1 {
					relax(i+1, m, 0, state{
						cost: s.cost + codeBits[m] + codeBits[ModeUpper], set: true,
						tokens: push(push(s.tokens, Token{Kind: TokenShift, Mode: ModeUpper}), Token{Kind: TokenByte, Bytes: data[i : i+1]}),
					})
				}

				// 3c. Latch to any mode m2 where b is representable.
				for m2 := Mode(0); m2 < numModes; m2++ {
					if m2 == m || charMap[b][m2] == -1 {
						continue
					}
					path := latchPath(m, m2)
					toks := s.tokens
					for _, step := range path {
						toks = push(toks, Token{Kind: TokenLatch, Mode: finalLatchMode(step)})
					}
					toks = push(toks, Token{Kind: TokenByte, Bytes: data[i : i+1]})
					relax(i+1, m2, 0, state{cost: s.cost + latchCost(m, m2) + codeBits[m2], tokens: toks, set: true})
				}

				// 4. Start a BINARY run (short-form header paid up front).
				if canStartBinary(m) {
					relax(i+1, m, 1, state{
						cost: s.cost + codeBits[m] + 5 + 8, set: true,
						tokens: s.tokens, pending: append([]byte(nil), b),
					})
				}
			}

			// Extend an open run by one byte.
			for r := 1; r <= binaryLong; r++ {
				rs := dp[i][m][r]
				if !rs.set {
					continue
				}
				pend := append(append([]byte(nil), rs.pending...), b)
				switch {
				case r < 31:
					relax(i+1, m, r+1, state{cost: rs.cost + 8, tokens: rs.tokens, pending: pend, set: true})
				case r == 31:
					// The 32nd byte forces the header to long form: +11 bits.
					relax(i+1, m, binaryLong, state{cost: rs.cost + 11 + 8, tokens: rs.tokens, pending: pend, set: true})
				default: // binaryLong
					relax(i+1, m, binaryLong, state{cost: rs.cost + 8, tokens: rs.tokens, pending: pend, set: true})
				}
			}
		}
	}

	var best state
	for m := Mode(0); m < numModes; m++ {
		if s := dp[n][m][0]; s.set && (!best.set || s.cost < best.cost) {
			best = s
		}
	}
	return flatten(best.tokens)
}

// finalLatchMode derives the mode a given latch step's code switches into.
func finalLatchMode(step latchStep) Mode {
	switch step.mode {
	case ModeUpper:
		switch step.code {
		case codeUpperLL:
			return ModeLower
		case codeUpperML:
			return ModeMixed
		case codeUpperDL:
			return ModeDigit
		}
	case ModeLower:
		switch step.code {
		case codeLowerML:
			return ModeMixed
		case codeLowerDL:
			return ModeDigit
		}
	case ModeMixed:
		switch step.code {
		case codeMixedUL:
			return ModeUpper
		case codeMixedPL:
			return ModePunct
		}
	case ModeDigit:
		switch step.code {
		case codeDigitUL:
			return ModeUpper
		}
	case ModePunct:
		switch step.code {
		case codePunctUL:
			return ModeUpper
		}
	}
	return step.mode
}

// prependFLG builds the Shift(PUNCT), FLG(n), digit... prefix spec.md
// §4.D calls for when the caller selects an encoding: the ECI value's
// decimal digits are emitted as DIGIT-mode literal tokens (spec.md §4.E).
func prependFLG(eciValue int) []Token {
	digits := []byte(itoa(eciValue))
	toks := []Token{
		{Kind: TokenShift, Mode: ModePunct},
		{Kind: TokenFlg, Flg: len(digits)},
	}
	for _, d := range digits {
		toks = append(toks, Token{Kind: TokenByte, Bytes: []byte{d}})
	}
	return toks
}

// itoa avoids pulling in strconv for a single non-negative integer.
func itoa(v int) string {
	if v == 0 {
		return "0"
	}
	var buf [8]byte
	i := len(buf)
	for v > 0 {
		i--
		buf[i] = byte('0' + v%10)
		v /= 10
	}
	return string(buf[i:])
}

// Sequence computes the full token stream for a payload: the optional
// FLG/ECI prefix (outside the byte-level DP, per spec.md §4.D) followed
// by the shortest-path encoding of data.
func Sequence(data []byte, eciName string) ([]Token, error) {
	var prefix []Token
	if eciName != "" {
		v, err := charset.Value(eciName)
		if err != nil {
			return nil, err
		}
		prefix = prependFLG(v)
	}
	return append(prefix, findOptimalSequence(data)...), nil
}
