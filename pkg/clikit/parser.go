// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package clikit

import (
	"errors"
	"io"
	"strings"
)

// Result is the tuple a parse produces, per spec.md §3.
type Result struct {
	Positional []string
	Argv       map[string]any
	Contexts   []*Context // terminal-first
	Unknown    map[string]string
	Warnings   []error

	// RawArgs holds every token after an executable Extension's command
	// token, verbatim, when the terminal command is an executable variant
	// (spec.md §4.5). Positional/Argv/Unknown are not populated past that
	// point — the extension's own process parses them, not clikit.
	RawArgs []string

	// Command is the deepest Command the parser descended into, or nil if
	// no command token was recognized (the CLI's default-command fallback
	// applies in that case).
	Command *Command

	Stdout io.Writer
	Stderr io.Writer
	help   func() (string, error)
}

// Help renders help for the terminal command of this Result, per spec.md
// §4.4 ("action receives ... help() a callable that renders help via the
// external renderer").
func (r *Result) Help() (string, error) {
	if r.help == nil {
		return "", newError(ErrTemplateNotFound, "no help renderer configured")
	}
	return r.help()
}

// errShortCircuit is the sentinel an option callback returns to suppress
// further argv mutation, per spec.md §4.3 ("Help and version callbacks
// return a sentinel that suppresses further argv mutation").
var errShortCircuit = errors.New("clikit: parsing short-circuited by option callback")

// ErrShortCircuit lets a callback abort the remainder of the parse without
// it being treated as a parse failure.
func ErrShortCircuit() error { return errShortCircuit }

func isShortCircuit(err error) bool { return errors.Is(err, errShortCircuit) }

type parser struct {
	ctx             *Context
	argv            map[string]any
	positional      []string
	unknown         map[string]string
	contexts        []*Context
	afterDoubleDash bool
	terminalCommand *Command
}

// Parse is the single entry point described by spec.md §4.3: it walks the
// command tree guided by tokens, classifies each one, fills argv, and
// records unknowns.
func Parse(tokens []string, root *Context) (*Result, error) {
	p := &parser{
		ctx:      root,
		argv:     make(map[string]any),
		unknown:  make(map[string]string),
		contexts: []*Context{root},
	}
	seedDefaults(root, p.argv)

	shortCircuited := false
	var rawArgs []string
	stoppedForExec := false

tokensLoop:
	for i := 0; i < len(tokens) && !shortCircuited; i++ {
		tok := tokens[i]

		if !p.afterDoubleDash && tok == "--" {
			p.afterDoubleDash = true
			continue
		}
		if p.afterDoubleDash {
			p.positional = append(p.positional, tok)
			continue
		}

		switch {
		case strings.HasPrefix(tok, "--"):
			consumed, circuit, err := p.parseLong(tok, tokens, i)
			if err != nil {
				return nil, err
			}
			i += consumed
			shortCircuited = circuit

		case strings.HasPrefix(tok, "-") && len(tok) > 1 && !looksLikeNegativeNumber(tok):
			consumed, circuit, err := p.parseShortCluster(tok, tokens, i)
			if err != nil {
				return nil, err
			}
			i += consumed
			shortCircuited = circuit

		default:
			if cmd := p.ctx.lookupCommand(tok); cmd != nil {
				p.descend(cmd.Context)
				p.terminalCommand = cmd
				if cmd.execSpec() != nil {
					rawArgs = append([]string{}, tokens[i+1:]...)
					stoppedForExec = true
					break tokensLoop
				}
				continue
			}
			p.positional = append(p.positional, tok)
		}
	}

	if !shortCircuited && !stoppedForExec {
		bound, err := p.ctx.args.Bind(p.positional)
		if err != nil {
			return nil, err
		}
		for k, v := range bound {
			p.argv[k] = v
		}
		applyRemainingDefaults(p.ctx, p.argv)
	}

	// contexts is terminal-first.
	terminalFirst := make([]*Context, len(p.contexts))
	for i, c := range p.contexts {
		terminalFirst[len(p.contexts)-1-i] = c
	}

	return &Result{
		Positional: p.positional,
		Argv:       p.argv,
		Contexts:   terminalFirst,
		Unknown:    p.unknown,
		RawArgs:    rawArgs,
		Command:    p.terminalCommand,
	}, nil
}

func looksLikeNegativeNumber(tok string) bool {
	if len(tok) < 2 || tok[0] != '-' {
		return false
	}
	seenDigit, seenDot := false, false
	for _, r := range tok[1:] {
		switch {
		case r >= '0' && r <= '9':
			seenDigit = true
		case r == '.' && !seenDot:
			seenDot = true
		default:
			return false
		}
	}
	return seenDigit
}

func (p *parser) descend(child *Context) {
	p.ctx = child
	p.contexts = append(p.contexts, child)
	seedDefaults(child, p.argv)
}

func seedDefaults(ctx *Context, argv map[string]any) {
	for _, opt := range ctx.Options() {
		if opt.Default == nil {
			continue
		}
		if _, exists := argv[opt.Name()]; exists {
			continue
		}
		argv[opt.Name()] = opt.Default
	}
}

func applyRemainingDefaults(ctx *Context, argv map[string]any) {
	for cur := ctx; cur != nil; cur = cur.parent {
		for _, opt := range cur.Options() {
			if opt.Default == nil {
				continue
			}
			if _, exists := argv[opt.Name()]; exists {
				continue
			}
			argv[opt.Name()] = opt.Default
		}
	}
}

// parseLong handles "--name", "--name=value", and "--no-name" forms.
// Returns how many extra tokens were consumed (0 or 1) and whether a
// callback short-circuited the parse.
func (p *parser) parseLong(tok string, tokens []string, i int) (consumed int, circuit bool, err error) {
	body := strings.TrimPrefix(tok, "--")
	name, inlineValue, hasInline := strings.Cut(body, "=")

	opt := p.ctx.lookupLong(name)
	if opt == nil {
		p.recordUnknown(name, tok)
		return 0, false, nil
	}

	var value any
	switch {
	case opt.Negated:
		value = false
	case !opt.HasValue:
		value = true
	case hasInline:
		v, cerr := coerce(opt.Type, inlineValue)
		if cerr != nil {
			return 0, false, cerr
		}
		value = v
	default:
		if i+1 < len(tokens) && !looksLikeFlagToken(tokens[i+1]) {
			v, cerr := coerce(opt.Type, tokens[i+1])
			if cerr != nil {
				return 0, false, cerr
			}
			value = v
			consumed = 1
		} else if opt.ValueOpt {
			value = true
		} else {
			return 0, false, newError(ErrMissingRequiredOption, "option --%s requires a value", name).WithMeta(map[string]any{"name": name})
		}
	}

	previous := p.argv[opt.Name()]
	p.argv[opt.Name()] = value

	if opt.Callback != nil {
		if cerr := opt.Callback(value, previous, func() error { return nil }); cerr != nil {
			if isShortCircuit(cerr) {
				return consumed, true, nil
			}
			return consumed, false, cerr
		}
	}
	return consumed, false, nil
}

func looksLikeFlagToken(tok string) bool {
	return strings.HasPrefix(tok, "-") && !looksLikeNegativeNumber(tok)
}

// parseShortCluster handles "-x", "-xyz", "-x=value", and "-xvalue".
func (p *parser) parseShortCluster(tok string, tokens []string, i int) (consumed int, circuit bool, err error) {
	body := strings.TrimPrefix(tok, "-")
	cluster, inlineValue, hasInline := strings.Cut(body, "=")

	for idx, ch := range cluster {
		name := string(ch)
		opt := p.ctx.lookupShort(name)
		if opt == nil {
			p.recordUnknown(name, "-"+name)
			continue
		}

		var value any
		switch {
		case opt.Negated:
			value = false
		case !opt.HasValue:
			value = true
		case hasInline && idx == len([]rune(cluster))-1:
			v, cerr := coerce(opt.Type, inlineValue)
			if cerr != nil {
				return 0, false, cerr
			}
			value = v
		case opt.HasValue && idx < len([]rune(cluster))-1:
			// Remainder of the cluster is this option's value.
			rest := string([]rune(cluster)[idx+1:])
			v, cerr := coerce(opt.Type, rest)
			if cerr != nil {
				return 0, false, cerr
			}
			value = v
			previous := p.argv[opt.Name()]
			p.argv[opt.Name()] = value
			if opt.Callback != nil {
				if cerr := opt.Callback(value, previous, func() error { return nil }); cerr != nil {
					if isShortCircuit(cerr) {
						return 0, true, nil
					}
					return 0, false, cerr
				}
			}
			return 0, false, nil
		default:
			if i+1 < len(tokens) && !looksLikeFlagToken(tokens[i+1]) {
				v, cerr := coerce(opt.Type, tokens[i+1])
				if cerr != nil {
					return 0, false, cerr
				}
				value = v
				consumed = 1
			} else if opt.ValueOpt {
				value = true
			} else {
				return 0, false, newError(ErrMissingRequiredOption, "option -%s requires a value", name).WithMeta(map[string]any{"name": name})
			}
		}

		previous := p.argv[opt.Name()]
		p.argv[opt.Name()] = value
		if opt.Callback != nil {
			if cerr := opt.Callback(value, previous, func() error { return nil }); cerr != nil {
				if isShortCircuit(cerr) {
					return consumed, true, nil
				}
				return consumed, false, cerr
			}
		}
	}
	return consumed, false, nil
}

func (p *parser) recordUnknown(name, raw string) {
	p.unknown[name] = raw
	if treatUnknownAsArgs, ok := p.ctx.Prop("treatUnknownOptionsAsArguments", false).(bool); ok && treatUnknownAsArgs {
		p.positional = append(p.positional, raw)
	}
}
