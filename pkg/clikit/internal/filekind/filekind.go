// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package filekind sniffs whether a path on disk is a native executable or a
// text script, so the extension loader can decide how to spawn it.
package filekind

import (
	"debug/elf"
	"debug/macho"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"runtime"
)

// Kind describes how a candidate extension target should be spawned.
type Kind int

const (
	Unknown Kind = iota
	Binary
	Script
)

// Detect sniffs the file at path and classifies it as Binary or Script.
// A native binary for the wrong GOOS/GOARCH is reported as an error rather
// than silently misclassified.
func Detect(path string) (Kind, error) {
	f, err := os.Open(path)
	if err != nil {
		return Unknown, fmt.Errorf("filekind: open %s: %w", path, err)
	}
	defer f.Close()

	isBin, err := detectBinary(f)
	if err != nil {
		return Unknown, err
	}
	if isBin {
		return Binary, nil
	}

	isScript, err := detectShebang(f)
	if err != nil {
		return Unknown, err
	}
	if isScript {
		return Script, nil
	}

	// No shebang and no recognized binary magic: treat as a script anyway.
	// The extension loader hands it to the configured runtime, which will
	// fail loudly if the file is not actually runnable.
	return Script, nil
}

func detectBinary(f *os.File) (bool, error) {
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return false, fmt.Errorf("filekind: seek: %w", err)
	}
	var magic [4]byte
	if _, err := io.ReadFull(f, magic[:]); err != nil {
		if err == io.ErrUnexpectedEOF || err == io.EOF {
			return false, nil
		}
		return false, fmt.Errorf("filekind: read magic: %w", err)
	}
	switch binary.LittleEndian.Uint32(magic[:]) {
	case 0x464C457F: // ELF magic (0x7f 'E' 'L' 'F')
		if runtime.GOOS == "darwin" {
			return false, fmt.Errorf("filekind: %s is an ELF binary, but host is darwin", f.Name())
		}
		if err := checkELFArch(f); err != nil {
			return false, fmt.Errorf("filekind: %s: %w", f.Name(), err)
		}
		return true, nil
	case macho.Magic32, macho.Magic64, macho.MagicFat:
		if runtime.GOOS != "darwin" {
			return false, fmt.Errorf("filekind: %s is a Mach-O binary, but host is %s", f.Name(), runtime.GOOS)
		}
		return true, nil
	}
	return false, nil
}

// checkELFArch parses f as an ELF file and rejects a machine architecture
// that the host can't execute, rather than handing a foreign-arch binary to
// the spawner and letting exec fail obscurely later.
func checkELFArch(f *os.File) error {
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("seek: %w", err)
	}
	elfFile, err := elf.NewFile(f)
	if err != nil {
		return fmt.Errorf("parse ELF: %w", err)
	}
	defer elfFile.Close()

	var binArch string
	switch elfFile.Machine {
	case elf.EM_X86_64:
		binArch = "amd64"
	case elf.EM_386:
		binArch = "386"
	case elf.EM_ARM:
		binArch = "arm"
	case elf.EM_AARCH64:
		binArch = "arm64"
	default:
		return nil // unrecognized machine type: let exec be the final arbiter
	}
	if binArch != runtime.GOARCH {
		return fmt.Errorf("binary architecture %s does not match host architecture %s", binArch, runtime.GOARCH)
	}
	return nil
}

func detectShebang(f *os.File) (bool, error) {
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return false, fmt.Errorf("filekind: seek: %w", err)
	}
	var bs [2]byte
	n, err := io.ReadFull(f, bs[:])
	if err != nil && err != io.ErrUnexpectedEOF {
		return false, fmt.Errorf("filekind: read: %w", err)
	}
	return n == 2 && bs[0] == '#' && bs[1] == '!', nil
}
