// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package clikit

// Context is a node in the command tree: it owns Arguments, Options, and
// child Commands plus a local Lookup; parent is nil only at the root.
// Contexts are constructed once during declarative setup; per spec.md §3's
// Lifecycle, the tree becomes read-only once parsing begins.
type Context struct {
	Title     string
	Name      string
	CamelCase string
	Desc      string

	parent   *Context
	args     ArgumentList
	options  *OptionList
	lookup   *Lookup
	commands []*Command
	props    map[string]any
	events   *eventEmitter
}

// NewContext constructs an unattached root Context.
func NewContext(name string) *Context {
	return &Context{
		Name:      name,
		CamelCase: camelCase(name),
		options:   newOptionList(),
		lookup:    newLookup(),
		props:     make(map[string]any),
		events:    newEventEmitter(),
	}
}

// Parent returns the enclosing Context, or nil at the root.
func (c *Context) Parent() *Context { return c.parent }

// Root walks to the outermost ancestor.
func (c *Context) Root() *Context {
	cur := c
	for cur.parent != nil {
		cur = cur.parent
	}
	return cur
}

// chain returns [c, c.parent, ..., root].
func (c *Context) chain() []*Context {
	var out []*Context
	for cur := c; cur != nil; cur = cur.parent {
		out = append(out, cur)
	}
	return out
}

// SetProp stores an arbitrary user-supplied property, visible to Get/Prop.
func (c *Context) SetProp(name string, value any) { c.props[name] = value }

// Get walks root-ward and keeps the topmost (closest-to-root) non-absent
// value: declaring something on the root always wins over a same-named
// local declaration. Per spec.md §4.2.
func (c *Context) Get(name string, def any) any {
	var found any
	ok := false
	for cur := c; cur != nil; cur = cur.parent {
		if v, present := cur.props[name]; present {
			found, ok = v, true
		}
	}
	if ok {
		return found
	}
	return def
}

// Prop walks root-ward and keeps the bottom-most (closest-to-self)
// non-absent value, falling back outward only when the local context has
// nothing to say. Per spec.md §4.2.
func (c *Context) Prop(name string, def any) any {
	for cur := c; cur != nil; cur = cur.parent {
		if v, present := cur.props[name]; present {
			return v
		}
	}
	return def
}

// Argument appends arg to this Context's positional-parameter list,
// enforcing the ordering invariant from spec.md §3.
func (c *Context) Argument(arg *Argument) error {
	return c.args.Append(arg)
}

// Arguments returns this Context's declared positional parameters.
func (c *Context) Arguments() []*Argument { return c.args.List() }

// OptionOpt configures an Option built by AddOption, replacing the source's
// ad-hoc "three param shapes" overload with Go's idiomatic functional-option
// pattern (spec.md §4.2: "option accepts three param shapes ... by type").
type OptionOpt func(*Option)

func WithDesc(desc string) OptionOpt         { return func(o *Option) { o.Desc = desc } }
func WithGroup(group string) OptionOpt       { return func(o *Option) { o.Group = group } }
func WithDefault(v any) OptionOpt            { return func(o *Option) { o.Default = v } }
func WithType(t ArgType) OptionOpt           { return func(o *Option) { o.Type = t } }
func WithHidden() OptionOpt                  { return func(o *Option) { o.Hidden = true } }
func WithCallback(cb OptionCallback) OptionOpt { return func(o *Option) { o.Callback = cb } }

// AddOption constructs an Option from format (per spec.md §4.1's grammar),
// applies mods, and registers it on this Context under opt.Group.
// Duplicate canonical/alias names within this same Context fail with
// ALREADY_EXISTS (spec.md §4.2).
func (c *Context) AddOption(format string, mods ...OptionOpt) (*Option, error) {
	opt, err := ParseOptionFormat(format)
	if err != nil {
		return nil, err
	}
	for _, m := range mods {
		m(opt)
	}
	if err := c.addOptionInstance(opt); err != nil {
		return nil, err
	}
	return opt, nil
}

// addOptionInstance registers a fully-built Option (used by AddOption and
// by Extension/Mixin re-registration).
func (c *Context) addOptionInstance(opt *Option) error {
	if err := c.lookup.addOption(opt); err != nil {
		return err
	}
	c.options.Append(opt.Group, opt)
	return nil
}

// Options returns every option declared directly on this Context, across
// all groups, in declaration order.
func (c *Context) Options() []*Option { return c.options.All() }

// lookupLong resolves name against this Context's scope chain, nearest
// (innermost) scope wins, per spec.md §4.3's tie-break.
func (c *Context) lookupLong(name string) *Option {
	for cur := c; cur != nil; cur = cur.parent {
		if opt, ok := cur.lookup.long[name]; ok {
			return opt
		}
	}
	return nil
}

func (c *Context) lookupShort(name string) *Option {
	for cur := c; cur != nil; cur = cur.parent {
		if opt, ok := cur.lookup.short[name]; ok {
			return opt
		}
	}
	return nil
}

// lookupCommand resolves a command name against this Context's own (not
// inherited) command table — command descent is strictly local per
// spec.md §4.3 rule 4.
func (c *Context) lookupCommand(name string) *Command {
	return c.lookup.commands[name]
}

// VisibleOptions returns, for each canonical option name visible from this
// Context, the Option that a help renderer should describe: outer
// (ancestor) declarations win over same-named inner ones, per DESIGN.md's
// resolution of spec.md §9's duplicate-option-elision open question. This
// is the opposite precedence from lookupLong/lookupShort, which resolve in
// favor of the nearest scope during recognition.
func (c *Context) VisibleOptions() []*Option {
	seen := make(map[string]*Option)
	chain := c.chain()
	for i := 0; i < len(chain); i++ {
		for _, opt := range chain[i].Options() {
			seen[opt.Name()] = opt
		}
	}
	out := make([]*Option, 0, len(seen))
	for _, chainCtx := range chain {
		for _, opt := range chainCtx.Options() {
			if seen[opt.Name()] == opt {
				out = append(out, opt)
				delete(seen, opt.Name())
			}
		}
	}
	return out
}

// registerCommand adopts cmd as a child of c: refuses a duplicate command
// name (including alias collisions, which are dropped rather than
// overwriting, per spec.md §4.2).
func (c *Context) registerCommand(cmd *Command) error {
	cmd.Context.parent = c
	if err := c.lookup.addCommand(cmd); err != nil {
		return err
	}
	c.commands = append(c.commands, cmd)
	return nil
}

// Commands returns this Context's direct children in declaration order.
func (c *Context) Commands() []*Command { return c.commands }

// Command builds a new child Command named name, registers it, and returns
// it for further declaration (options/arguments/sub-commands).
func (c *Context) Command(name string, action ActionFunc) (*Command, error) {
	cmd := newCommand(name, action)
	if err := c.registerCommand(cmd); err != nil {
		return nil, err
	}
	return cmd, nil
}

// AdoptCommand registers an already-built Command (e.g. one returned by an
// Extension's in-process subtree) as a child of c.
func (c *Context) AdoptCommand(cmd *Command) error {
	return c.registerCommand(cmd)
}

// Mixin copies src's own properties into c, excluding the reserved set
// {args, commands, options, lookup, events}, and re-adds src's options via
// addOptionInstance so they reindex into c's own Lookup, per spec.md §4.2.
// When src is a root CLI, options it already inherited from its own
// ancestors are skipped — except "version", which is always copied so an
// extension can override its parent's version behavior.
func (c *Context) Mixin(src *Context, srcIsRoot bool) error {
	c.Title = orElse(src.Title, c.Title)
	c.Desc = orElse(src.Desc, c.Desc)
	for k, v := range src.props {
		c.props[k] = v
	}

	for _, opt := range src.Options() {
		if srcIsRoot && opt.Name() != "version" && optionInheritedFromAncestor(src, opt) {
			continue
		}
		if err := c.addOptionInstance(opt); err != nil {
			return err
		}
	}
	for _, arg := range src.Arguments() {
		if err := c.Argument(arg); err != nil {
			return err
		}
	}
	for _, child := range src.Commands() {
		if err := c.AdoptCommand(child); err != nil {
			return err
		}
	}
	return nil
}

func optionInheritedFromAncestor(ctx *Context, opt *Option) bool {
	for _, declared := range ctx.options.All() {
		if declared == opt {
			return false
		}
	}
	return true
}

func orElse(v, fallback string) string {
	if v != "" {
		return v
	}
	return fallback
}
