// Package platform describes the operating-system conventions the launcher depends on.
//
// The launcher composes paths for a target platform rather than the host, so tests can
// check the Windows layout on a POSIX machine and vice versa.
package platform

import (
	"path"
	"runtime"
	"strings"
)

// Windows is the GOOS value of the only platform without process replacement.
const Windows = "windows"

// Platform captures path, suffix, and process-model conventions for one GOOS value.
type Platform struct {
	OS string
}

// Current returns the platform the binary was built for.
func Current() Platform {
	return Platform{OS: runtime.GOOS}
}

// IsWindows reports whether p follows Windows conventions.
func (p Platform) IsWindows() bool {
	return p.OS == Windows
}

// Separator returns the path separator.
func (p Platform) Separator() string {
	if p.IsWindows() {
		return `\`
	}
	return "/"
}

// ListSeparator returns the separator used in the search path variable.
func (p Platform) ListSeparator() string {
	if p.IsWindows() {
		return ";"
	}
	return ":"
}

// ExeSuffix returns the executable file suffix, or "" when the platform has none.
func (p Platform) ExeSuffix() string {
	if p.IsWindows() {
		return ".exe"
	}
	return ""
}

// NestedBin reports whether installed runtimes keep executables under <version>/bin.
// Windows runtimes place them directly in the version root.
func (p Platform) NestedBin() bool {
	return !p.IsWindows()
}

// CanReplaceProcess reports whether the current process image can be replaced in place.
func (p Platform) CanReplaceProcess() bool {
	return !p.IsWindows()
}

// Join joins path elements with the platform separator.
func (p Platform) Join(elem ...string) string {
	slashed := make([]string, 0, len(elem))
	for _, e := range elem {
		slashed = append(slashed, p.toSlash(e))
	}
	joined := path.Join(slashed...)
	if p.IsWindows() {
		return strings.ReplaceAll(joined, "/", `\`)
	}
	return joined
}

// Base returns the last element of name. On Windows both slash forms separate elements.
func (p Platform) Base(name string) string {
	if name == "" {
		return ""
	}
	return path.Base(p.toSlash(name))
}

// TrimExeSuffix removes the executable suffix when it is exactly the extension of name.
// Matching is case-sensitive and only the trailing extension is considered.
func (p Platform) TrimExeSuffix(name string) string {
	suffix := p.ExeSuffix()
	if suffix == "" {
		return name
	}
	if path.Ext(name) != suffix {
		return name
	}
	return strings.TrimSuffix(name, suffix)
}

// PathEnvKey reports whether key names the search path variable.
func (p Platform) PathEnvKey(key string) bool {
	if p.IsWindows() {
		return strings.EqualFold(key, "PATH")
	}
	return key == "PATH"
}

func (p Platform) toSlash(name string) string {
	if p.IsWindows() {
		return strings.ReplaceAll(name, `\`, "/")
	}
	return name
}
