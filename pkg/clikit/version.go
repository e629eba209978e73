// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package clikit

import (
	"github.com/Masterminds/semver/v3"
)

// Version is this library's own semver, reported by a CLI's auto -v/--version
// option when the caller hasn't supplied their own.
const Version = "0.1.0"

// MinimumVersion is the lowest current version checkRuntimeVersion accepts,
// whether or not a RuntimeVersion constraint is also declared.
const MinimumVersion = "0.1.0"

// checkRuntimeVersion evaluates constraint (a semver constraint string, the
// Go-native analogue of spec.md §6's nodeVersion field in a package
// manifest) against current, and separately requires current to satisfy
// this library's own MinimumVersion — the caller's constraint can only
// narrow, never waive, the library's floor. A constraint that fails to
// parse, or a current version that doesn't satisfy either, surfaces as
// INVALID_NODE_JS — the taxonomy name spec.md §7 assigns this failure, kept
// verbatim per the "never rename a taxonomy member" rule even though no
// literal Node.js runtime is involved here.
func checkRuntimeVersion(constraint, current string) error {
	v, err := semver.NewVersion(current)
	if err != nil {
		return wrapError(ErrInvalidRuntime, err, "invalid current version %q", current)
	}

	minConstraint, err := semver.NewConstraint(">= " + MinimumVersion)
	if err != nil {
		return wrapError(ErrInvalidRuntime, err, "invalid minimum version %q", MinimumVersion)
	}
	if !minConstraint.Check(v) {
		return newError(ErrInvalidRuntime, "runtime version %s does not satisfy this library's minimum %q", current, MinimumVersion).
			WithMeta(map[string]any{"current": current, "constraint": MinimumVersion})
	}

	if constraint == "" {
		return nil
	}
	c, err := semver.NewConstraint(constraint)
	if err != nil {
		return wrapError(ErrInvalidRuntime, err, "invalid runtime version constraint %q", constraint)
	}
	if !c.Check(v) {
		return newError(ErrInvalidRuntime, "runtime version %s does not satisfy constraint %q", current, constraint).
			WithMeta(map[string]any{"current": current, "constraint": constraint})
	}
	return nil
}
