package savefmt

import (
	"errors"
	"fmt"
	"io"
	"slices"

	"gopkg.in/yaml.v3"
)

// Profiles is a set of named formatting configurations, typically loaded
// once from a YAML document checked in with an application's config.
type Profiles map[string]Format

// profileNode is the YAML shape of one profile. Pointer fields tell an
// absent key (keep the default) apart from an explicit zero.
type profileNode struct {
	Base      *int    `yaml:"base"`
	Width     *int    `yaml:"width"`
	Fill      *string `yaml:"fill"`
	Align     *string `yaml:"align"`
	Upper     *bool   `yaml:"upper"`
	Prec      *int    `yaml:"prec"`
	Notation  *string `yaml:"notation"`
	Plus      *bool   `yaml:"plus"`
	Prefix    *bool   `yaml:"prefix"`
	SkipSpace *bool   `yaml:"skipspace"`
}

// LoadProfiles reads a YAML document mapping profile names to formats:
//
//	hexdump:
//	  base: 16
//	  upper: true
//	  fill: "0"
//	  width: 4
//	ledger:
//	  notation: fixed
//	  prec: 2
//	  align: internal
//
// Every field is optional and defaults per [DefaultFormat]. Unknown keys,
// multi-character fills, out-of-range numbers and unrecognized enum words
// are rejected with an error wrapping [ErrInvalidProfile]. An empty
// document yields an empty set.
func LoadProfiles(r io.Reader) (Profiles, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var raw map[string]profileNode
	if err := dec.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return Profiles{}, nil
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidProfile, err)
	}
	ps := make(Profiles, len(raw))
	for name, node := range raw {
		f, err := node.format()
		if err != nil {
			return nil, fmt.Errorf("%w: profile %q: %v", ErrInvalidProfile, name, err)
		}
		ps[name] = f
	}
	return ps, nil
}

// Resolve returns the named profile. A missing name is an error wrapping
// [ErrUnknownProfile].
func (p Profiles) Resolve(name string) (Format, error) {
	f, ok := p[name]
	if !ok {
		return Format{}, fmt.Errorf("%w: %q", ErrUnknownProfile, name)
	}
	return f, nil
}

// Names returns the profile names in sorted order.
func (p Profiles) Names() []string {
	var names []string
	for name := range p {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// format validates the node and folds it onto [DefaultFormat].
func (n profileNode) format() (Format, error) {
	f := DefaultFormat()
	if n.Base != nil {
		if *n.Base < 2 || *n.Base > 36 {
			return Format{}, fmt.Errorf("base %d must be 2..36", *n.Base)
		}
		f.Base = Base(*n.Base)
	}
	if n.Width != nil {
		if *n.Width < 0 {
			return Format{}, fmt.Errorf("width %d must not be negative", *n.Width)
		}
		f.Width = *n.Width
	}
	if n.Fill != nil {
		r := []rune(*n.Fill)
		if len(r) != 1 {
			return Format{}, fmt.Errorf("fill %q must be a single character", *n.Fill)
		}
		f.Fill = r[0]
	}
	if n.Align != nil {
		switch *n.Align {
		case "left":
			f.Align = AlignLeft
		case "right":
			f.Align = AlignRight
		case "internal":
			f.Align = AlignInternal
		default:
			return Format{}, fmt.Errorf("align %q must be left, right or internal", *n.Align)
		}
	}
	if n.Upper != nil {
		f.Upper = *n.Upper
	}
	if n.Prec != nil {
		if *n.Prec < -1 {
			return Format{}, fmt.Errorf("prec %d must be -1 or more", *n.Prec)
		}
		f.Prec = *n.Prec
	}
	if n.Notation != nil {
		switch *n.Notation {
		case "general":
			f.Notation = General
		case "fixed":
			f.Notation = Fixed
		case "scientific", "sci":
			f.Notation = Scientific
		default:
			return Format{}, fmt.Errorf("notation %q must be general, fixed or scientific", *n.Notation)
		}
	}
	if n.Plus != nil {
		f.Plus = *n.Plus
	}
	if n.Prefix != nil {
		f.Prefix = *n.Prefix
	}
	if n.SkipSpace != nil {
		f.SkipSpace = *n.SkipSpace
	}
	return f, nil
}
