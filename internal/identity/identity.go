// Package identity derives the logical command name from how the launcher was invoked.
package identity

import "github.com/nvmd-desktop/nvmd/internal/platform"

// Logical command names with special handling.
const (
	RuntimeName        = "node"
	PackageManagerName = "npm"
	CorepackName       = "corepack"
	LauncherName       = "nvmd"
)

// Identify returns the command name the user typed: the last path element of invokedPath,
// without the platform's executable suffix.
func Identify(invokedPath string, p platform.Platform) string {
	return p.TrimExeSuffix(p.Base(invokedPath))
}

// IsRuntime reports whether name is the runtime itself rather than an auxiliary script.
func IsRuntime(name string) bool {
	return name == RuntimeName
}

// IsPackageManager reports whether name is the bundled package manager.
func IsPackageManager(name string) bool {
	return name == PackageManagerName
}

// IsCorepack reports whether name is corepack, which installs shims for other package managers.
func IsCorepack(name string) bool {
	return name == CorepackName
}

// IsLauncher reports whether name is the launcher's own management command.
func IsLauncher(name string) bool {
	return name == LauncherName
}
