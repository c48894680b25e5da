package builder

import (
	"path/filepath"
	"slices"
)

// Common warning/standard flags shared by every target.
var (
	commonCFlags   = []string{"-std=c11", "-Wall", "-Wextra"}
	commonCxxFlags = []string{"-std=c++17", "-Wall", "-Wextra"}
)

// Homebrew install locations of the cross toolchains. The MinGW one comes
// from `brew install mingw-w64`, the Linux one from
// `brew tap messense/macos-cross-toolchains && brew install x86_64-unknown-linux-gnu`.
const (
	mingwPrefix      = "/opt/homebrew/bin/x86_64-w64-mingw32"
	linuxCrossPrefix = "/opt/homebrew/bin/x86_64-unknown-linux-gnu"
)

// Toolchain describes one build target: which compilers to invoke and which
// flag tables to pass. Descriptors are fixed at startup and never mutated.
type Toolchain struct {
	Name      string   // target name, also the build subdirectory
	CC        string   // C compiler path
	CXX       string   // C++ compiler path, doubles as the linker
	CFlags    []string // compile flags for .c files
	CXXFlags  []string // compile flags for .cpp files
	ArchFlags []string // passed to both compile and link (macOS universal binary)
	Ldflags   []string // extra link-only flags
	ExeSuffix string   // ".exe" on windows
	DLLDir    string   // optional: where to find libwinpthread-1.dll to ship
}

// defaultToolchains returns the three built-in targets, in build order.
func defaultToolchains() []Toolchain {
	return []Toolchain{
		{
			Name:      "macos",
			CC:        "clang",
			CXX:       "clang++",
			CFlags:    slices.Clone(commonCFlags),
			CXXFlags:  slices.Clone(commonCxxFlags),
			ArchFlags: []string{"-arch", "arm64", "-arch", "x86_64"},
		},
		{
			Name:     "windows",
			CC:       mingwPrefix + "-gcc",
			CXX:      mingwPrefix + "-g++",
			CFlags:   slices.Clone(commonCFlags),
			CXXFlags: slices.Clone(commonCxxFlags),
			// static runtime so the .exe doesn't drag MinGW DLLs around
			Ldflags:   []string{"-static-libstdc++", "-static-libgcc"},
			ExeSuffix: ".exe",
		},
		{
			Name:     "linux",
			CC:       linuxCrossPrefix + "-gcc",
			CXX:      linuxCrossPrefix + "-g++",
			CFlags:   slices.Clone(commonCFlags),
			CXXFlags: slices.Clone(commonCxxFlags),
			Ldflags:  slices.Clone(commonCxxFlags),
		},
	}
}

// pick selects the compiler and flag table for a source file by extension.
// ok is false for extensions we don't compile.
func (tc *Toolchain) pick(src string) (compiler string, flags []string, ok bool) {
	switch filepath.Ext(src) {
	case ".cpp":
		return tc.CXX, tc.CXXFlags, true
	case ".c":
		return tc.CC, tc.CFlags, true
	}
	return "", nil, false
}

// applyOverrides merges a [toolchain.*] config section into the descriptor.
// Empty fields keep their defaults; prefix rewrites cc/cxx unless they are
// themselves overridden.
func (tc *Toolchain) applyOverrides(sec ToolchainSection) {
	if sec.Prefix != "" {
		tc.CC = sec.Prefix + "-gcc"
		tc.CXX = sec.Prefix + "-g++"
	}
	if sec.CC != "" {
		tc.CC = sec.CC
	}
	if sec.CXX != "" {
		tc.CXX = sec.CXX
	}
	if sec.CFlags != nil {
		tc.CFlags = sec.CFlags
	}
	if sec.CXXFlags != nil {
		tc.CXXFlags = sec.CXXFlags
	}
	if sec.ArchFlags != nil {
		tc.ArchFlags = sec.ArchFlags
	}
	if sec.Ldflags != nil {
		tc.Ldflags = sec.Ldflags
	}
	if sec.DLLDir != "" {
		tc.DLLDir = sec.DLLDir
	}
}
