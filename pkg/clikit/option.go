// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package clikit

import (
	"strings"
)

// CallbackNext is the continuation handle passed to an option callback. The
// parser passes a CallbackNext that returns nil and does nothing else: it
// does not run any other callback. The parser itself invokes each
// recognized option's callback, in token order.
type CallbackNext func() error

// OptionCallback is invoked when its Option is recognized during parsing.
// previous is the value already present in argv (if any) before this
// occurrence overwrote it; next is the no-op CallbackNext described above.
type OptionCallback func(value any, previous any, next CallbackNext) error

// Option describes one named flag/parameter, per spec.md §3.
type Option struct {
	Long      string // canonical long name, without "--"
	Short     string // canonical short name, without "-"
	Negated   bool   // derived from a "--no-" prefix on Long
	HasValue  bool   // value-bearing, from "<value>"/"[value]" in the format
	ValueOpt  bool   // true when the value is optional ("[value]")
	Type      ArgType
	Default   any
	Hidden    bool
	Desc      string
	Group     string
	Aliases   AliasSet
	Callback  OptionCallback

	// name is the canonical camelCased key used in the resulting argv map.
	name string
}

// AliasSet splits an Option's non-canonical names by kind, each mapping
// alias → visible, per spec.md §3.
type AliasSet struct {
	Long  map[string]bool
	Short map[string]bool
}

func newAliasSet() AliasSet {
	return AliasSet{Long: make(map[string]bool), Short: make(map[string]bool)}
}

// Name returns the canonical camelCased argv key for this option: the
// camelCased long name, or the short name if no long name was declared.
func (o *Option) Name() string {
	if o.name != "" {
		return o.name
	}
	if o.Long != "" {
		return camelCase(o.Long)
	}
	return o.Short
}

// ParseOptionFormat parses a format string per spec.md §4.1's grammar:
//
//	format  := token ( /[ ,|]+/ token )*
//	token   := ("--no-"? longName) | ("-" shortChar) value?
//	value   := "<" name ">" | "[" name "]"
//
// At most one canonical long and one canonical short are permitted; further
// tokens become aliases. A value clause may appear on any token and marks
// the option as value-bearing.
func ParseOptionFormat(format string) (*Option, error) {
	format = strings.TrimSpace(format)
	if format == "" {
		return nil, newError(ErrInvalidOptionFormat, "empty option format")
	}

	opt := &Option{Type: TypeString, Aliases: newAliasSet()}
	var haveValueClause bool

	tokens := splitFormatTokens(format)
	if len(tokens) == 0 {
		return nil, newError(ErrInvalidOptionFormat, "malformed option format %q", format)
	}

	for _, tok := range tokens {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		valueClause, rest, hasClause := extractValueClause(tok)
		if hasClause {
			haveValueClause = true
			opt.HasValue = true
			opt.ValueOpt = valueClause.optional
		}
		rest = strings.TrimSpace(rest)

		switch {
		case strings.HasPrefix(rest, "--no-"):
			name := strings.TrimPrefix(rest, "--no-")
			if name == "" {
				return nil, newError(ErrInvalidOptionFormat, "malformed negated option in %q", format)
			}
			if opt.Long == "" {
				opt.Long = name
				opt.Negated = true
				opt.Default = true
			} else {
				// Preserve the "no-" prefix on the alias itself: the token
				// a caller types is "--no-<name>", so that's the literal
				// key Lookup must index, not the bare semantic name.
				opt.Aliases.Long["no-"+name] = true
			}
		case strings.HasPrefix(rest, "--"):
			name := strings.TrimPrefix(rest, "--")
			if name == "" {
				return nil, newError(ErrInvalidOptionFormat, "malformed long option in %q", format)
			}
			if opt.Long == "" {
				opt.Long = name
			} else {
				opt.Aliases.Long[name] = true
			}
		case strings.HasPrefix(rest, "-"):
			name := strings.TrimPrefix(rest, "-")
			if len(name) != 1 {
				return nil, newError(ErrInvalidOptionFormat, "malformed short option in %q", format)
			}
			if opt.Short == "" {
				opt.Short = name
			} else {
				opt.Aliases.Short[name] = true
			}
		default:
			return nil, newError(ErrInvalidOptionFormat, "malformed option token %q in %q", tok, format)
		}
	}

	if opt.Long == "" && opt.Short == "" {
		return nil, newError(ErrInvalidOptionFormat, "option format %q declares no long or short name", format)
	}
	if !haveValueClause {
		opt.Type = TypeBool
		if !opt.Negated {
			opt.Default = nil
		}
	}
	return opt, nil
}

type valueClause struct {
	name     string
	optional bool
}

// extractValueClause strips a trailing "<name>" or "[name]" clause from a
// token, returning the parsed clause (if any) and the remainder.
func extractValueClause(tok string) (valueClause, string, bool) {
	if i := strings.IndexByte(tok, '<'); i >= 0 && strings.HasSuffix(tok, ">") {
		return valueClause{name: tok[i+1 : len(tok)-1], optional: false}, tok[:i], true
	}
	if i := strings.IndexByte(tok, '['); i >= 0 && strings.HasSuffix(tok, "]") {
		return valueClause{name: tok[i+1 : len(tok)-1], optional: true}, tok[:i], true
	}
	return valueClause{}, tok, false
}

// splitFormatTokens splits a format string on whitespace, commas, or pipes
// while keeping each "-x <value>"/"--x <value>" pair joined, since the
// value clause is delimited by its own brackets, not whitespace.
func splitFormatTokens(format string) []string {
	fields := strings.FieldsFunc(format, func(r rune) bool {
		return r == ',' || r == '|' || r == ' '
	})
	// Rejoin a bare "<value>"/"[value]" field with the flag token before it,
	// since FieldsFunc split on the space between "-c" and "<value>".
	var out []string
	for _, f := range fields {
		if len(out) > 0 && (strings.HasPrefix(f, "<") || strings.HasPrefix(f, "[")) {
			out[len(out)-1] = out[len(out)-1] + f
			continue
		}
		out = append(out, f)
	}
	return out
}

// OptionList is the group-keyed collection of Options owned by a Context.
type OptionList struct {
	groups map[string][]*Option
	order  []string
}

func newOptionList() *OptionList {
	return &OptionList{groups: make(map[string][]*Option)}
}

// Append adds opt to the named group (empty string is the default group).
func (l *OptionList) Append(group string, opt *Option) {
	if _, ok := l.groups[group]; !ok {
		l.order = append(l.order, group)
	}
	l.groups[group] = append(l.groups[group], opt)
}

// All returns every option across every group, in group-declaration order.
func (l *OptionList) All() []*Option {
	var out []*Option
	for _, g := range l.order {
		out = append(out, l.groups[g]...)
	}
	return out
}

// Group returns the options declared under the given group name.
func (l *OptionList) Group(name string) []*Option { return l.groups[name] }
