// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package clikit

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// commandFile is the declarative shape of one YAML command file loaded by
// LoadCommandDir, the Go-native analogue of spec.md §6's "a command path may
// be a directory ... every file becomes a command named after its stem."
type commandFile struct {
	Name    string             `yaml:"name"`
	Desc    string             `yaml:"desc"`
	Aliases []string           `yaml:"aliases"`
	Options []string           `yaml:"options"`
	Args    []commandFileArg   `yaml:"args"`
}

type commandFileArg struct {
	Name     string `yaml:"name"`
	Desc     string `yaml:"desc"`
	Type     string `yaml:"type"`
	Required *bool  `yaml:"required"`
	Multiple bool   `yaml:"multiple"`
	Default  any    `yaml:"default"`
}

// LoadCommandDir reads every *.yaml/*.yml file in dir (non-recursively,
// sorted by filename for determinism) and registers one Command per file on
// c, named after the file's declared name (falling back to its stem).
// Declared commands have no Action of their own — LoadCommandDir is for
// structural declaration; callers attach behavior afterward by looking the
// Command up via c.Commands() or by wrapping an Extension around it.
func (c *Context) LoadCommandDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return wrapError(ErrFileNotFound, err, "reading command directory %s", dir)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(e.Name()))
		if ext != ".yaml" && ext != ".yml" {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)

	for _, name := range names {
		path := filepath.Join(dir, name)
		data, err := os.ReadFile(path)
		if err != nil {
			return wrapError(ErrFileNotFound, err, "reading command file %s", path)
		}
		var cf commandFile
		if err := yaml.Unmarshal(data, &cf); err != nil {
			return wrapError(ErrInvalidExtension, err, "decoding command file %s", path)
		}
		if cf.Name == "" {
			cf.Name = strings.TrimSuffix(name, filepath.Ext(name))
		}

		// Aliases must be on the Command before registerCommand runs, so
		// the Command is registered only once it is fully declared.
		cmd := newCommand(cf.Name, nil)
		cmd.Desc = cf.Desc
		for _, alias := range cf.Aliases {
			cmd.Alias(alias)
		}
		for _, format := range cf.Options {
			if _, err := cmd.AddOption(format); err != nil {
				return err
			}
		}
		for _, a := range cf.Args {
			arg := NewArgument(a.Name).WithDesc(a.Desc)
			if a.Type != "" {
				arg = arg.WithType(ArgType(a.Type))
			}
			if a.Multiple {
				arg = arg.WithMultiple()
			}
			if a.Default != nil {
				arg = arg.WithDefault(a.Default)
			}
			if a.Required != nil {
				arg.Required = *a.Required
			}
			if err := cmd.Argument(arg); err != nil {
				return err
			}
		}
		if err := c.registerCommand(cmd); err != nil {
			return err
		}
	}
	return nil
}
