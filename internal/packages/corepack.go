package packages

import (
	"slices"
	"strings"
)

const (
	corepackEnable     = "enable"
	corepackDisable    = "disable"
	corepackInstallDir = "--install-directory"
	corepackNpm        = "npm"
)

// corepackManagers maps each package manager corepack can shim to the extra commands it
// provides.
var corepackManagers = map[string][]string{
	"yarn": {"yarnpkg"},
	"pnpm": {"pnpx"},
}

var defaultCorepackManagers = []string{"yarn", "pnpm"}

// CorepackOperation is a `corepack enable` or `corepack disable` request.
type CorepackOperation struct {
	Enable bool
	// Managers are the package managers named on the command line, or yarn and pnpm when none
	// are named.
	Managers []string
}

// Commands returns every alias the operation touches: each manager followed by its extra
// commands.
func (o CorepackOperation) Commands() []string {
	var out []string
	for _, name := range o.Managers {
		out = append(out, name)
		out = append(out, corepackManagers[name]...)
	}
	return out
}

// ClassifyCorepack inspects corepack arguments for enable or disable. An explicit
// --install-directory places the shims outside the launcher's bin directory, so it is not
// intercepted. Naming only npm leaves yarn and pnpm alone.
func ClassifyCorepack(args []string) (CorepackOperation, bool) {
	var positionals []string
	for _, arg := range args {
		if arg == corepackInstallDir || strings.HasPrefix(arg, corepackInstallDir+"=") {
			return CorepackOperation{}, false
		}
		if !strings.HasPrefix(arg, "-") {
			positionals = append(positionals, arg)
		}
	}
	if len(positionals) == 0 {
		return CorepackOperation{}, false
	}

	var op CorepackOperation
	switch positionals[0] {
	case corepackEnable:
		op.Enable = true
	case corepackDisable:
	default:
		return CorepackOperation{}, false
	}

	named := positionals[1:]
	for _, name := range named {
		if _, ok := corepackManagers[name]; ok && !slices.Contains(op.Managers, name) {
			op.Managers = append(op.Managers, name)
		}
	}
	if len(op.Managers) == 0 && !slices.Contains(named, corepackNpm) {
		op.Managers = slices.Clone(defaultCorepackManagers)
	}
	return op, true
}
