package savefmt

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Sentinel errors for programmatic error handling.
var (
	ErrInvalidSpec    = errors.New("invalid format spec")
	ErrInvalidProfile = errors.New("invalid profile")
	ErrUnknownProfile = errors.New("unknown profile")
	ErrSyntax         = errors.New("bad token")
)

// Base is the numeric radix used when rendering and scanning integers.
// Any value in 2..36 works; anything else falls back to Decimal.
type Base int

const (
	Binary  Base = 2
	Octal   Base = 8
	Decimal Base = 10
	Hex     Base = 16
)

// Alignment controls where fill characters go when a value is narrower
// than the field width.
type Alignment int

const (
	// AlignRight puts fill before the value (the numeric default).
	AlignRight Alignment = iota
	// AlignLeft puts fill after the value.
	AlignLeft
	// AlignInternal puts fill between the sign or base prefix and the
	// digits, so -42 zero-filled to width 6 renders as "-00042".
	// Non-numeric writes treat it as AlignRight.
	AlignInternal
)

// Notation selects the float rendering style.
type Notation int

const (
	General    Notation = iota // shortest of fixed and scientific, strconv 'g'
	Fixed                      // decimal point, no exponent, strconv 'f'
	Scientific                 // d.ddde±dd, strconv 'e'
)

// Format is a stream's complete formatting configuration. It is a plain
// comparable value: assigning one copies the whole configuration, which is
// exactly how [Guard] snapshots travel between a stream and its holder.
//
// The zero value is usable but not identical to [DefaultFormat]: it gives
// floats zero fraction digits instead of the shortest form, and scanners
// built on it do not skip whitespace.
type Format struct {
	Base      Base      // integer radix, 2..36; 0 and out-of-range mean Decimal
	Width     int       // minimum field width in display columns; 0 pads nothing
	Fill      rune      // pad character; 0 means ' '
	Align     Alignment // fill placement
	Upper     bool      // upper-case digits, prefixes, exponents and words
	Prec      int       // float fraction digits; -1 means shortest round-trip
	Notation  Notation  // float style
	Plus      bool      // force a leading '+' on non-negative numbers
	Prefix    bool      // emit 0b/0o/0x before integer digits
	SkipSpace bool      // scanners skip leading whitespace; streams ignore it
}

// DefaultFormat returns the configuration every new [Stream] and [Scanner]
// starts with: decimal, unpadded, space-filled, right-aligned, lower-case,
// shortest-form floats in general notation, whitespace skipping on.
func DefaultFormat() Format {
	return Format{
		Base:      Decimal,
		Fill:      ' ',
		Prec:      -1,
		SkipSpace: true,
	}
}

// ParseSpec builds a Format from a comma-separated directive string such as
// "hex,upper,fill=0,width=4", starting from [DefaultFormat].
//
// Directives: dec, hex, oct, bin, base=N (2..36); width=N; fill=C (one
// character; a comma fill cannot be spelled here, use a profile); left,
// right, internal; upper, lower; prec=N (-1 or more); general, fixed, sci;
// plus, noplus; prefix, noprefix; skipspace, keepspace.
//
// Unknown or malformed directives return an error wrapping [ErrInvalidSpec].
func ParseSpec(s string) (Format, error) {
	return DefaultFormat().Apply(s)
}

// Apply returns a copy of f with the directives from spec applied on top,
// so a caller can start from a profile and tweak it:
//
//	f, err := profiles.Resolve("ledger")
//	f, err = f.Apply("width=8,upper")
//
// The directive vocabulary is that of [ParseSpec]; an empty spec returns f
// unchanged.
func (f Format) Apply(spec string) (Format, error) {
	if spec == "" {
		return f, nil
	}
	for _, d := range strings.Split(spec, ",") {
		key, val, hasVal := strings.Cut(d, "=")
		key = strings.TrimSpace(key)
		var err error
		if hasVal {
			f, err = f.applyValue(key, val)
		} else {
			f, err = f.applyWord(key)
		}
		if err != nil {
			return Format{}, err
		}
	}
	return f, nil
}

func (f Format) applyWord(key string) (Format, error) {
	switch key {
	case "dec":
		f.Base = Decimal
	case "hex":
		f.Base = Hex
	case "oct":
		f.Base = Octal
	case "bin":
		f.Base = Binary
	case "left":
		f.Align = AlignLeft
	case "right":
		f.Align = AlignRight
	case "internal":
		f.Align = AlignInternal
	case "upper":
		f.Upper = true
	case "lower":
		f.Upper = false
	case "general":
		f.Notation = General
	case "fixed":
		f.Notation = Fixed
	case "sci":
		f.Notation = Scientific
	case "plus":
		f.Plus = true
	case "noplus":
		f.Plus = false
	case "prefix":
		f.Prefix = true
	case "noprefix":
		f.Prefix = false
	case "skipspace":
		f.SkipSpace = true
	case "keepspace":
		f.SkipSpace = false
	default:
		return Format{}, fmt.Errorf("%w: unknown directive %q", ErrInvalidSpec, key)
	}
	return f, nil
}

func (f Format) applyValue(key, val string) (Format, error) {
	switch key {
	case "base":
		n, err := strconv.Atoi(val)
		if err != nil || n < 2 || n > 36 {
			return Format{}, fmt.Errorf("%w: base %q must be 2..36", ErrInvalidSpec, val)
		}
		f.Base = Base(n)
	case "width":
		n, err := strconv.Atoi(val)
		if err != nil || n < 0 {
			return Format{}, fmt.Errorf("%w: width %q must be a non-negative integer", ErrInvalidSpec, val)
		}
		f.Width = n
	case "prec":
		n, err := strconv.Atoi(val)
		if err != nil || n < -1 {
			return Format{}, fmt.Errorf("%w: prec %q must be -1 or a non-negative integer", ErrInvalidSpec, val)
		}
		f.Prec = n
	case "fill":
		r := []rune(val)
		if len(r) != 1 {
			return Format{}, fmt.Errorf("%w: fill %q must be a single character", ErrInvalidSpec, val)
		}
		f.Fill = r[0]
	default:
		return Format{}, fmt.Errorf("%w: unknown directive %q", ErrInvalidSpec, key)
	}
	return f, nil
}

// Spec returns the directive form of f with default-valued fields elided;
// a fully default Format yields the empty string. Applying the result to
// [DefaultFormat] reproduces a Format that behaves identically to f.
// A comma fill, which has no directive spelling, is elided.
func (f Format) Spec() string {
	var parts []string
	switch {
	case f.Base == Hex:
		parts = append(parts, "hex")
	case f.Base == Octal:
		parts = append(parts, "oct")
	case f.Base == Binary:
		parts = append(parts, "bin")
	case f.Base == Decimal || f.base() == int(Decimal):
		// Default and out-of-range bases render decimal; nothing to say.
	default:
		parts = append(parts, "base="+strconv.Itoa(int(f.Base)))
	}
	switch f.Notation {
	case Fixed:
		parts = append(parts, "fixed")
	case Scientific:
		parts = append(parts, "sci")
	}
	if f.Prec != -1 {
		parts = append(parts, "prec="+strconv.Itoa(f.Prec))
	}
	if f.Upper {
		parts = append(parts, "upper")
	}
	if f.Plus {
		parts = append(parts, "plus")
	}
	if f.Prefix {
		parts = append(parts, "prefix")
	}
	if f.Width != 0 {
		parts = append(parts, "width="+strconv.Itoa(f.Width))
	}
	if f.Fill != 0 && f.Fill != ' ' && f.Fill != ',' {
		parts = append(parts, "fill="+string(f.Fill))
	}
	switch f.Align {
	case AlignLeft:
		parts = append(parts, "left")
	case AlignInternal:
		parts = append(parts, "internal")
	}
	if !f.SkipSpace {
		parts = append(parts, "keepspace")
	}
	return strings.Join(parts, ",")
}

// base returns the effective radix, falling back to Decimal.
func (f Format) base() int {
	if f.Base < 2 || f.Base > 36 {
		return int(Decimal)
	}
	return int(f.Base)
}

// fill returns the effective pad character.
func (f Format) fill() rune {
	if f.Fill == 0 {
		return ' '
	}
	return f.Fill
}

// verb returns the strconv float verb for the notation, honoring Upper
// where the verb has an upper-case variant.
func (f Format) verb() byte {
	switch f.Notation {
	case Fixed:
		return 'f'
	case Scientific:
		if f.Upper {
			return 'E'
		}
		return 'e'
	default:
		if f.Upper {
			return 'G'
		}
		return 'g'
	}
}

// basePrefix returns the Go literal prefix for the bases that have one.
func basePrefix(base int) string {
	switch base {
	case 2:
		return "0b"
	case 8:
		return "0o"
	case 16:
		return "0x"
	default:
		return ""
	}
}
