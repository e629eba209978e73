// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package clikit

import (
	"strconv"
	"strings"
	"time"
)

// ArgType tags the coercion applied to a positional argument or option
// value.
type ArgType string

const (
	TypeString ArgType = "string"
	TypeNumber ArgType = "number"
	TypeBool   ArgType = "bool"
	TypeFile   ArgType = "file"
	TypeDate   ArgType = "date"
	TypeYesNo  ArgType = "yesno"
)

// Validator is called after coercion with the raw token and coerced value.
// Returning a non-nil error aborts parsing.
type Validator func(raw string, coerced any) error

// Argument describes one positional parameter declared on a Context.
//
// Invariants enforced by ArgumentList.Append: within a list no non-required
// argument may precede a required non-Multiple one, and at most one Multiple
// argument may exist, and it must be last.
type Argument struct {
	Name       string
	Desc       string
	Required   bool
	Multiple   bool
	Type       ArgType
	Default    any
	CamelCase  string
	Validate   Validator
}

// NewArgument builds an Argument, defaulting Type to TypeString and deriving
// CamelCase from Name if unset.
func NewArgument(name string) *Argument {
	return &Argument{Name: name, Type: TypeString, Required: true, CamelCase: camelCase(name)}
}

func (a *Argument) WithDesc(desc string) *Argument   { a.Desc = desc; return a }
func (a *Argument) WithType(t ArgType) *Argument     { a.Type = t; return a }
func (a *Argument) WithDefault(v any) *Argument      { a.Default = v; a.Required = false; return a }
func (a *Argument) WithMultiple() *Argument          { a.Multiple = true; return a }
func (a *Argument) WithOptional() *Argument          { a.Required = false; return a }
func (a *Argument) WithValidator(v Validator) *Argument { a.Validate = v; return a }

// ArgumentList is the ordered positional-parameter list owned by a Context.
type ArgumentList struct {
	items []*Argument
}

// Append validates the ordering invariant and appends arg.
func (l *ArgumentList) Append(arg *Argument) error {
	if arg.Name == "" {
		return newError(ErrInvalidArgument, "argument name must not be empty")
	}
	for _, existing := range l.items {
		if existing.Multiple {
			return newError(ErrInvalidArgument, "argument %q declared after multiple argument %q", arg.Name, existing.Name)
		}
	}
	// A Multiple argument never fails Bind for lack of tokens, so it may
	// follow optional arguments whatever its Required flag says.
	if arg.Required && !arg.Multiple {
		for _, existing := range l.items {
			if !existing.Required {
				return newError(ErrInvalidArgument, "required argument %q follows optional argument %q", arg.Name, existing.Name)
			}
		}
	}
	l.items = append(l.items, arg)
	return nil
}

// List returns the declared arguments in declaration order.
func (l *ArgumentList) List() []*Argument { return l.items }

// Bind distributes provided positional tokens across the declared arguments,
// per spec.md §4.3's post-loop binding pass and §8's "positional saturation"
// invariant: required args first, then the optional ones in declaration
// order, then a trailing multiple argument absorbs the remainder.
func (l *ArgumentList) Bind(provided []string) (map[string]any, error) {
	out := make(map[string]any)

	var multiple *Argument
	singular := make([]*Argument, 0, len(l.items))
	for _, a := range l.items {
		if a.Multiple {
			multiple = a
			continue
		}
		singular = append(singular, a)
	}

	i := 0
	for _, a := range singular {
		if i >= len(provided) {
			if a.Required {
				return nil, newError(ErrMissingRequiredArg, "missing required argument %q", a.Name).WithMeta(map[string]any{"name": a.Name})
			}
			if a.Default != nil {
				out[a.CamelCase] = a.Default
			}
			continue
		}
		v, err := coerce(a.Type, provided[i])
		if err != nil {
			return nil, err
		}
		if a.Validate != nil {
			if err := a.Validate(provided[i], v); err != nil {
				return nil, wrapError(ErrInvalidValue, err, "argument %q: %v", a.Name, err)
			}
		}
		out[a.CamelCase] = v
		i++
	}

	if multiple != nil {
		rest := provided[i:]
		vals := make([]any, 0, len(rest))
		for _, raw := range rest {
			v, err := coerce(multiple.Type, raw)
			if err != nil {
				return nil, err
			}
			vals = append(vals, v)
		}
		if len(vals) == 0 && multiple.Default != nil {
			out[multiple.CamelCase] = multiple.Default
		} else {
			out[multiple.CamelCase] = vals
		}
		i = len(provided)
	} else if i < len(provided) {
		// Extra positional tokens beyond every declared argument are left
		// for the caller to see as leftover "_" entries; Bind only fills
		// declared slots.
	}

	return out, nil
}

func coerce(t ArgType, raw string) (any, error) {
	switch t {
	case TypeNumber:
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, wrapError(ErrInvalidNumber, err, "invalid number %q", raw)
		}
		return f, nil
	case TypeBool:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, wrapError(ErrInvalidValue, err, "invalid bool %q", raw)
		}
		return b, nil
	case TypeYesNo:
		switch strings.ToLower(raw) {
		case "y", "yes", "true":
			return true, nil
		case "n", "no", "false":
			return false, nil
		default:
			return nil, newError(ErrNotYesNo, "expected yes/no, got %q", raw)
		}
	case TypeDate:
		for _, layout := range []string{time.RFC3339, "2006-01-02", "2006-01-02T15:04:05"} {
			if t, err := time.Parse(layout, raw); err == nil {
				return t, nil
			}
		}
		return nil, newError(ErrInvalidDate, "invalid date %q", raw)
	case TypeFile, TypeString, "":
		return raw, nil
	default:
		return raw, nil
	}
}

func camelCase(s string) string {
	parts := strings.FieldsFunc(s, func(r rune) bool {
		return r == '-' || r == '_' || r == ' '
	})
	if len(parts) == 0 {
		return s
	}
	var b strings.Builder
	b.WriteString(strings.ToLower(parts[0]))
	for _, p := range parts[1:] {
		if p == "" {
			continue
		}
		b.WriteString(strings.ToUpper(p[:1]))
		b.WriteString(strings.ToLower(p[1:]))
	}
	return b.String()
}
