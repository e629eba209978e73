// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package clikit

// Lookup holds the three keyed maps a Context maintains over its own
// directly-declared Options and Commands, per spec.md §3. Keys are plain
// strings; values reference the Option/Command instances stored on the
// owning Context — Lookup itself owns no entities.
//
// Lookup is intentionally unexported from iteration: a Mixin copying a
// Context's own properties into another tree must skip it and re-derive a
// fresh one via Option/Command re-registration (spec.md §4.2).
type Lookup struct {
	long     map[string]*Option
	short    map[string]*Option
	commands map[string]*Command
}

func newLookup() *Lookup {
	return &Lookup{
		long:     make(map[string]*Option),
		short:    make(map[string]*Option),
		commands: make(map[string]*Command),
	}
}

func (l *Lookup) hasLong(name string) bool  { _, ok := l.long[name]; return ok }
func (l *Lookup) hasShort(name string) bool { _, ok := l.short[name]; return ok }

func (l *Lookup) addOption(opt *Option) error {
	if opt.Long != "" && (l.hasLong(opt.Long) || (opt.Negated && l.hasLong("no-"+opt.Long))) {
		return newError(ErrAlreadyExists, "option --%s already declared in this context", opt.Long)
	}
	if opt.Short != "" && l.hasShort(opt.Short) {
		return newError(ErrAlreadyExists, "option -%s already declared in this context", opt.Short)
	}
	for alias := range opt.Aliases.Long {
		if l.hasLong(alias) {
			return newError(ErrAlreadyExists, "option alias --%s already declared in this context", alias)
		}
	}
	for alias := range opt.Aliases.Short {
		if l.hasShort(alias) {
			return newError(ErrAlreadyExists, "option alias -%s already declared in this context", alias)
		}
	}

	if opt.Long != "" {
		if opt.Negated {
			// The token a caller actually types is "--no-<name>", never the
			// bare "--<name>" (that was never declared), so only the
			// negated key is indexed for parseLong's literal token lookup.
			l.long["no-"+opt.Long] = opt
		} else {
			l.long[opt.Long] = opt
		}
	}
	if opt.Short != "" {
		l.short[opt.Short] = opt
	}
	for alias := range opt.Aliases.Long {
		l.long[alias] = opt
	}
	for alias := range opt.Aliases.Short {
		l.short[alias] = opt
	}
	return nil
}

func (l *Lookup) addCommand(cmd *Command) error {
	if _, exists := l.commands[cmd.Name]; exists {
		return newError(ErrAlreadyExists, "command %q already declared in this context", cmd.Name)
	}
	l.commands[cmd.Name] = cmd
	for alias, visible := range cmd.Aliases {
		if !visible {
			continue
		}
		if _, exists := l.commands[alias]; exists {
			// Per spec.md §4.2: aliases that collide with an existing
			// command name are silently dropped rather than overwriting.
			continue
		}
		l.commands[alias] = cmd
	}
	return nil
}
