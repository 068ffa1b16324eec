// Package packages keeps the ledger of globally installed npm packages per runtime version and
// the command aliases that route their binaries back through the launcher.
package packages

import (
	"regexp"
	"slices"
	"strings"
)

// Kind is the package operation requested on the npm command line.
type Kind int

// Operation kinds.
const (
	KindNone Kind = iota
	KindInstall
	KindUninstall
	KindUpdate
	KindLink
	KindUnlink
)

func (k Kind) String() string {
	switch k {
	case KindInstall:
		return "install"
	case KindUninstall:
		return "uninstall"
	case KindUpdate:
		return "update"
	case KindLink:
		return "link"
	case KindUnlink:
		return "unlink"
	default:
		return "none"
	}
}

// Operation is the classification of an npm argument list.
type Operation struct {
	Kind Kind
	// Packages are the requested package names with version or tag suffixes removed.
	// For link they are the arguments as given, since they may be relative directories.
	Packages []string
}

// Intercepted reports whether the ledger must intervene.
func (o Operation) Intercepted() bool {
	return o.Kind != KindNone
}

const (
	flagGlobal      = "--global"
	flagGlobalShort = "-g"
	flagWorkspace   = "--workspace"
	cmdInstall      = "install"
	cmdUninstall    = "uninstall"
	cmdUnlink       = "unlink"
)

// Aliases npm accepts for install and uninstall. They only count as the first positional
// argument; the literal subcommand names count anywhere.
var (
	installAliases   = []string{"i", "in", "ins", "inst", "insta", "instal", "isnt", "isnta", "isntal", "isntall", "add"}
	uninstallAliases = []string{"un", "remove", "rm", "r"}
	updateAliases    = []string{"update", "udpate", "upgrade", "up"}
	linkAliases      = []string{"link", "ln"}
)

var versionSuffix = regexp.MustCompile(`@[0-9]|@latest`)

// Classify inspects npm arguments for an operation that changes the commands a runtime
// version provides.
//
// Link, unlink and update are recognized only as the first positional argument. Link is
// intercepted with or without the global flag; unlink and update only with it.
//
// Install and uninstall matching is permissive: a global flag and a literal install/uninstall
// token anywhere in the list qualify, regardless of position, so `npm -g cowsay install` is
// treated as a global install. When both subcommands appear the first one wins.
func Classify(args []string) Operation {
	positionals := positionalIndexes(args)
	if op, ok := classifyFirst(args, positionals); ok {
		return op
	}

	global := false
	kind := KindNone
	subcommandAt := -1
	for i, arg := range args {
		switch arg {
		case flagGlobal, flagGlobalShort:
			global = true
		case cmdInstall:
			if kind == KindNone {
				kind, subcommandAt = KindInstall, i
			}
		case cmdUninstall:
			if kind == KindNone {
				kind, subcommandAt = KindUninstall, i
			}
		}
	}

	if kind == KindNone && len(positionals) > 0 {
		first := args[positionals[0]]
		switch {
		case slices.Contains(installAliases, first):
			kind, subcommandAt = KindInstall, positionals[0]
		case slices.Contains(uninstallAliases, first):
			kind, subcommandAt = KindUninstall, positionals[0]
		}
	}

	if !global || kind == KindNone {
		return Operation{}
	}

	op := Operation{Kind: kind}
	for _, i := range positionals {
		arg := args[i]
		if i == subcommandAt || arg == cmdInstall || arg == cmdUninstall {
			continue
		}
		op.Packages = append(op.Packages, StripVersion(arg))
	}
	return op
}

// classifyFirst handles the subcommands that only count as the first positional argument.
func classifyFirst(args []string, positionals []int) (Operation, bool) {
	if len(positionals) == 0 {
		return Operation{}, false
	}
	first := args[positionals[0]]
	rest := make([]string, 0, len(positionals)-1)
	for _, i := range positionals[1:] {
		rest = append(rest, args[i])
	}

	switch {
	case slices.Contains(linkAliases, first):
		return Operation{Kind: KindLink, Packages: nilIfEmpty(rest)}, true
	case first == cmdUnlink:
		if !hasGlobal(args) {
			return Operation{}, true
		}
		return Operation{Kind: KindUnlink, Packages: stripAll(rest)}, true
	case slices.Contains(updateAliases, first):
		if !hasGlobal(args) {
			return Operation{}, true
		}
		return Operation{Kind: KindUpdate, Packages: stripAll(rest)}, true
	}
	return Operation{}, false
}

func hasGlobal(args []string) bool {
	return slices.Contains(args, flagGlobal) || slices.Contains(args, flagGlobalShort)
}

func stripAll(pkgs []string) []string {
	var out []string
	for _, pkg := range pkgs {
		out = append(out, StripVersion(pkg))
	}
	return out
}

func nilIfEmpty(s []string) []string {
	if len(s) == 0 {
		return nil
	}
	return s
}

// positionalIndexes returns the indexes of arguments that are not flags.
// The value following --workspace is skipped.
func positionalIndexes(args []string) []int {
	var out []int
	skipNext := false
	for i, arg := range args {
		if skipNext {
			skipNext = false
			continue
		}
		if arg == flagWorkspace {
			skipNext = true
			continue
		}
		if strings.HasPrefix(arg, "-") {
			continue
		}
		out = append(out, i)
	}
	return out
}

// StripVersion removes a version or tag suffix such as "@1.2.3" or "@latest" from a package
// argument. Only "@" followed by a digit or the literal "latest" starts a suffix, so scoped
// names like "@scope/pkg" are preserved.
func StripVersion(pkg string) string {
	loc := versionSuffix.FindStringIndex(pkg)
	if loc == nil {
		return pkg
	}
	return pkg[:loc[0]]
}
