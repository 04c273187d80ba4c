package savefmt

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode"
)

// Scanner is the input counterpart of [Stream]: a reader whose formatting
// configuration drives extraction, so the same [Format] and the same
// [Guard] cover both directions. Base selects the radix for Int and Uint,
// SkipSpace controls leading whitespace, and Width caps Word tokens.
//
// Reads stop at the first rune that does not belong to the token; that
// rune stays in the input. A clean end of input surfaces as io.EOF; a
// token that will not parse surfaces as an error wrapping [ErrSyntax].
type Scanner struct {
	r *bufio.Reader
	f Format
}

// NewScanner returns a Scanner reading from r with [DefaultFormat].
func NewScanner(r io.Reader) *Scanner {
	return &Scanner{r: bufio.NewReader(r), f: DefaultFormat()}
}

// Format returns the scanner's current formatting configuration.
func (sc *Scanner) Format() Format { return sc.f }

// SetFormat replaces the scanner's entire formatting configuration.
func (sc *Scanner) SetFormat(f Format) { sc.f = f }

// Base selects the radix Int and Uint parse in.
func (sc *Scanner) Base(b Base) *Scanner { sc.f.Base = b; return sc }

// Width caps how many runes Word consumes; 0 means unlimited.
func (sc *Scanner) Width(n int) *Scanner { sc.f.Width = n; return sc }

// SkipSpace controls whether reads skip leading whitespace first.
func (sc *Scanner) SkipSpace(on bool) *Scanner { sc.f.SkipSpace = on; return sc }

// Saving captures g onto the scanner and hands the scanner back, the
// extraction-side twin of [Stream.Saving].
func (sc *Scanner) Saving(g *Guard) *Scanner {
	g.Capture(sc)
	return sc
}

// Int reads an optionally signed integer in the configured base. A Go
// base prefix matching the radix (0x for 16 and so on, either case) is
// accepted and skipped.
func (sc *Scanner) Int() (int64, error) {
	tok, err := sc.numToken(true)
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseInt(tok, sc.f.base(), 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q in base %d", ErrSyntax, tok, sc.f.base())
	}
	return v, nil
}

// Uint reads an unsigned integer in the configured base. A leading sign is
// not consumed; it makes the read fail with the sign still in the input.
func (sc *Scanner) Uint() (uint64, error) {
	tok, err := sc.numToken(false)
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseUint(tok, sc.f.base(), 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q in base %d", ErrSyntax, tok, sc.f.base())
	}
	return v, nil
}

// Float reads a decimal floating-point number, with an optional fraction
// and exponent.
func (sc *Scanner) Float() (float64, error) {
	if err := sc.skipSpace(); err != nil {
		return 0, err
	}
	var b strings.Builder
	var prev rune
	for {
		r, _, err := sc.r.ReadRune()
		if err == io.EOF {
			if b.Len() == 0 {
				return 0, io.EOF
			}
			break
		}
		if err != nil {
			return 0, err
		}
		ok := (r >= '0' && r <= '9') || r == '.' || r == 'e' || r == 'E' ||
			((r == '+' || r == '-') && (b.Len() == 0 || prev == 'e' || prev == 'E'))
		if !ok {
			if err := sc.r.UnreadRune(); err != nil {
				return 0, err
			}
			break
		}
		b.WriteRune(r)
		prev = r
	}
	v, err := strconv.ParseFloat(b.String(), 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q as float", ErrSyntax, b.String())
	}
	return v, nil
}

// Word reads the next whitespace-delimited token. A Width above zero caps
// the token at that many runes; the remainder stays in the input.
func (sc *Scanner) Word() (string, error) {
	if err := sc.skipSpace(); err != nil {
		return "", err
	}
	var b strings.Builder
	n := 0
	eof := false
	for sc.f.Width <= 0 || n < sc.f.Width {
		r, _, err := sc.r.ReadRune()
		if err == io.EOF {
			eof = true
			break
		}
		if err != nil {
			return "", err
		}
		if unicode.IsSpace(r) {
			if err := sc.r.UnreadRune(); err != nil {
				return "", err
			}
			break
		}
		b.WriteRune(r)
		n++
	}
	if b.Len() == 0 {
		// Reachable only with SkipSpace off, or on an empty reader.
		if eof {
			return "", io.EOF
		}
		return "", fmt.Errorf("%w: whitespace where a word was expected", ErrSyntax)
	}
	return b.String(), nil
}

// Rune reads the next rune, after the usual whitespace skip.
func (sc *Scanner) Rune() (rune, error) {
	if err := sc.skipSpace(); err != nil {
		return 0, err
	}
	r, _, err := sc.r.ReadRune()
	if err != nil {
		return 0, err
	}
	return r, nil
}

// skipSpace consumes leading whitespace when SkipSpace is set. Hitting the
// end of input while skipping reports io.EOF.
func (sc *Scanner) skipSpace() error {
	if !sc.f.SkipSpace {
		return nil
	}
	for {
		r, _, err := sc.r.ReadRune()
		if err != nil {
			return err
		}
		if !unicode.IsSpace(r) {
			return sc.r.UnreadRune()
		}
	}
}

// numToken gathers an optional sign, an optional base prefix, and the run
// of digits valid in the configured base. The first rune that does not
// belong stays in the input.
func (sc *Scanner) numToken(signed bool) (string, error) {
	if err := sc.skipSpace(); err != nil {
		return "", err
	}
	var b strings.Builder
	r, _, err := sc.r.ReadRune()
	if err != nil {
		return "", err
	}
	if signed && (r == '+' || r == '-') {
		b.WriteRune(r)
	} else if err := sc.r.UnreadRune(); err != nil {
		return "", err
	}
	sc.skipBasePrefix()
	for {
		r, _, err := sc.r.ReadRune()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", err
		}
		if !validDigit(r, sc.f.base()) {
			if err := sc.r.UnreadRune(); err != nil {
				return "", err
			}
			break
		}
		b.WriteRune(r)
	}
	return b.String(), nil
}

// skipBasePrefix consumes a Go base prefix (0x, 0o, 0b, either case) when
// the configured base has one and the next bytes spell it. A bare "0" is
// left for the digit run.
func (sc *Scanner) skipBasePrefix() {
	p := basePrefix(sc.f.base())
	if p == "" {
		return
	}
	b, err := sc.r.Peek(2)
	if err != nil || len(b) < 2 {
		return
	}
	if b[0] == '0' && (b[1] == p[1] || b[1] == p[1]-'a'+'A') {
		_, _ = sc.r.Discard(2)
	}
}

// validDigit reports whether r is a digit in the given base, either case.
func validDigit(r rune, base int) bool {
	var v int
	switch {
	case r >= '0' && r <= '9':
		v = int(r - '0')
	case r >= 'a' && r <= 'z':
		v = int(r-'a') + 10
	case r >= 'A' && r <= 'Z':
		v = int(r-'A') + 10
	default:
		return false
	}
	return v < base
}
