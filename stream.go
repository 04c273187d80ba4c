package savefmt

import (
	"io"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"
)

// Stream is a formatted output stream: an io.Writer plus the [Format] that
// shapes every value written through it. Manipulators and writers return
// the stream so calls chain; the first underlying write error sticks and
// turns the rest of the chain into no-ops, so a chain can run to its end
// and be checked once with [Stream.Err].
type Stream struct {
	w   io.Writer
	f   Format
	err error
}

// NewStream returns a Stream writing to w with [DefaultFormat].
func NewStream(w io.Writer) *Stream {
	return &Stream{w: w, f: DefaultFormat()}
}

// Format returns the stream's current formatting configuration.
func (s *Stream) Format() Format { return s.f }

// SetFormat replaces the stream's entire formatting configuration.
func (s *Stream) SetFormat(f Format) { s.f = f }

// --- manipulators ---

// Base selects the integer radix.
func (s *Stream) Base(b Base) *Stream { s.f.Base = b; return s }

// Width sets the minimum field width in display columns. It applies to
// every following write until changed, not just to the next one.
func (s *Stream) Width(n int) *Stream { s.f.Width = n; return s }

// Fill sets the pad character used when a value is narrower than Width.
func (s *Stream) Fill(r rune) *Stream { s.f.Fill = r; return s }

// Align sets where fill goes.
func (s *Stream) Align(a Alignment) *Stream { s.f.Align = a; return s }

// Upper switches digits, base prefixes, exponents and bool words to upper
// case.
func (s *Stream) Upper(on bool) *Stream { s.f.Upper = on; return s }

// Prec sets the float precision; -1 means shortest round-trip form.
func (s *Stream) Prec(n int) *Stream { s.f.Prec = n; return s }

// Notation selects the float style.
func (s *Stream) Notation(n Notation) *Stream { s.f.Notation = n; return s }

// Plus forces a leading '+' on non-negative numbers.
func (s *Stream) Plus(on bool) *Stream { s.f.Plus = on; return s }

// Prefix emits the Go base prefix (0b, 0o, 0x) before integer digits.
func (s *Stream) Prefix(on bool) *Stream { s.f.Prefix = on; return s }

// Saving captures g onto the stream and hands the stream back, so a guard
// can be woven into the middle of a chain:
//
//	var g savefmt.Guard
//	defer g.Restore()
//	s.Saving(&g).Base(savefmt.Hex).Upper(true).Fill('0').Width(4).Int(200)
func (s *Stream) Saving(g *Guard) *Stream {
	g.Capture(s)
	return s
}

// --- writers ---

// Int writes v in the configured base.
func (s *Stream) Int(v int64) *Stream {
	var head string
	digits := strconv.FormatInt(v, s.f.base())
	if v < 0 {
		head, digits = "-", digits[1:]
	} else if s.f.Plus {
		head = "+"
	}
	s.number(head, digits)
	return s
}

// Uint writes v in the configured base.
func (s *Stream) Uint(v uint64) *Stream {
	var head string
	if s.f.Plus {
		head = "+"
	}
	s.number(head, strconv.FormatUint(v, s.f.base()))
	return s
}

// Float writes v in the configured notation and precision. Infinities and
// NaN render as strconv spells them, padded like any other value.
func (s *Stream) Float(v float64) *Stream {
	out := strconv.FormatFloat(v, s.f.verb(), s.f.Prec, 64)
	var head string
	switch {
	case strings.HasPrefix(out, "-"):
		head, out = "-", out[1:]
	case strings.HasPrefix(out, "+"):
		// strconv writes infinities as "+Inf" already.
		head, out = "+", out[1:]
	case s.f.Plus:
		head = "+"
	}
	s.emit(head, out)
	return s
}

// Text writes str padded to Width in display columns, so double-width
// runes count as two. AlignInternal behaves like AlignRight here.
func (s *Stream) Text(str string) *Stream {
	s.emit("", str)
	return s
}

// Rune writes a single rune, padded like [Stream.Text].
func (s *Stream) Rune(r rune) *Stream {
	s.emit("", string(r))
	return s
}

// Bool writes "true" or "false", upper-cased when Upper is set.
func (s *Stream) Bool(b bool) *Stream {
	word := strconv.FormatBool(b)
	if s.f.Upper {
		word = strings.ToUpper(word)
	}
	s.emit("", word)
	return s
}

// Newline writes a bare '\n', never padded.
func (s *Stream) Newline() *Stream {
	s.write("\n")
	return s
}

// Write sends p through unformatted, making Stream an io.Writer. It shares
// the sticky error: once any write has failed, Write reports that error
// without touching the underlying writer again.
func (s *Stream) Write(p []byte) (int, error) {
	if s.err != nil {
		return 0, s.err
	}
	n, err := s.w.Write(p)
	if err != nil {
		s.err = err
	}
	return n, err
}

// Err reports the first error any write encountered, or nil.
func (s *Stream) Err() error { return s.err }

// --- rendering ---

// number finishes an integer write: base prefix, case, then padding.
func (s *Stream) number(head, digits string) {
	if s.f.Prefix {
		head += basePrefix(s.f.base())
	}
	if s.f.Upper {
		head = strings.ToUpper(head)
		digits = strings.ToUpper(digits)
	}
	s.emit(head, digits)
}

// emit pads and writes a value split into its sign-plus-prefix head and
// its digit tail, so AlignInternal can put fill between the two. Widths
// are display columns per go-runewidth, not bytes.
func (s *Stream) emit(head, tail string) {
	f := s.f
	if gap := f.Width - runewidth.StringWidth(head) - runewidth.StringWidth(tail); gap > 0 {
		fill := strings.Repeat(string(f.fill()), gap)
		switch f.Align {
		case AlignLeft:
			tail += fill
		case AlignInternal:
			tail = fill + tail
		default:
			head = fill + head
		}
	}
	s.write(head + tail)
}

// write appends raw text, recording the first error.
func (s *Stream) write(str string) {
	if s.err != nil {
		return
	}
	if _, err := io.WriteString(s.w, str); err != nil {
		s.err = err
	}
}
