package packages

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/nvmd-desktop/nvmd/internal/dispatch"
	"github.com/nvmd-desktop/nvmd/internal/home"
	"github.com/nvmd-desktop/nvmd/internal/identity"
	"github.com/nvmd-desktop/nvmd/internal/messages"
	"github.com/nvmd-desktop/nvmd/internal/platform"
)

// Manager runs a package operation for one runtime version and keeps the ledger and aliases in
// step with it.
type Manager struct {
	Paths     home.Paths
	Version   string
	BinaryDir string
	Env       []string
	Platform  platform.Platform
	Runner    Runner
	// WorkDir is the directory npm runs in. link and unlink without arguments act on the
	// package rooted there.
	WorkDir string
	Logger  *log.Logger
}

// Run executes npm with rawArgs and applies op to the ledger. It returns npm's exit code.
//
// Ledger and alias bookkeeping never changes the exit code: failures there are logged and the
// package manager's result stands. When npm fails, nothing is recorded.
func (m Manager) Run(op Operation, rawArgs []string) (int, error) {
	if m.Runner == nil {
		return 1, errors.New(messages.DispatchLauncherRequired)
	}
	m.logger().Debug(messages.LogGlobalCommand, "kind", op.Kind, "packages", op.Packages, "version", m.Version)

	switch op.Kind {
	case KindInstall, KindUpdate, KindLink:
		return m.install(op, rawArgs)
	case KindUninstall, KindUnlink:
		return m.uninstall(op, rawArgs)
	default:
		return m.npm(rawArgs)
	}
}

// RunCorepack executes corepack with rawArgs, then creates or removes the aliases of the package
// managers it enabled or disabled. Disabling keeps an alias that npm still tracks for some
// version.
func (m Manager) RunCorepack(op CorepackOperation, rawArgs []string) (int, error) {
	if m.Runner == nil {
		return 1, errors.New(messages.DispatchLauncherRequired)
	}
	m.logger().Debug(messages.LogCorepackCommand, "enable", op.Enable, "managers", op.Managers, "version", m.Version)

	cmd := dispatch.BuildCommand(m.BinaryDir, identity.CorepackName, rawArgs, m.Env, m.Platform)
	code, err := m.Runner.Launch(cmd)
	if err != nil || code != 0 {
		return code, err
	}

	if op.Enable {
		m.createAliases(op.Commands())
		return code, nil
	}

	ledger := m.loadLedger()
	var removable []string
	for _, name := range op.Managers {
		if ledger.CanRemove(name) {
			removable = append(removable, name)
			removable = append(removable, corepackManagers[name]...)
		}
	}
	m.removeAliases(removable)
	return code, nil
}

func (m Manager) install(op Operation, rawArgs []string) (int, error) {
	code, err := m.npm(rawArgs)
	if err != nil || code != 0 {
		return code, err
	}

	names, err := m.discover(op)
	if err != nil {
		m.logger().Warn(messages.LogLedgerFailed, "err", err)
		return code, nil
	}

	ledger := m.loadLedger()
	changed := false
	for _, name := range names {
		if ledger.Add(name, m.Version) {
			changed = true
		}
	}
	if changed {
		m.saveLedger(ledger)
	}
	m.createAliases(names)
	return code, nil
}

// uninstall reads the manifests before npm deletes them.
func (m Manager) uninstall(op Operation, rawArgs []string) (int, error) {
	names, discoverErr := m.discover(op)

	code, err := m.npm(rawArgs)
	if err != nil || code != 0 {
		return code, err
	}
	if discoverErr != nil {
		m.logger().Warn(messages.LogLedgerFailed, "err", discoverErr)
		return code, nil
	}

	ledger := m.loadLedger()
	changed := false
	var removable []string
	for _, name := range names {
		remove, updated := ledger.Remove(name, m.Version)
		changed = changed || updated
		if remove {
			removable = append(removable, name)
		}
	}
	if changed {
		m.saveLedger(ledger)
	}
	m.removeAliases(removable)
	return code, nil
}

func (m Manager) npm(rawArgs []string) (int, error) {
	cmd := dispatch.BuildCommand(m.BinaryDir, identity.PackageManagerName, rawArgs, m.Env, m.Platform)
	return m.Runner.Launch(cmd)
}

// discover returns the command names op affects.
//
// link and unlink without arguments act on the package in the working directory. link with
// arguments only adds commands for relative directories; linking a package by name into the
// local project installs nothing globally.
func (m Manager) discover(op Operation) ([]string, error) {
	switch {
	case (op.Kind == KindLink || op.Kind == KindUnlink) && len(op.Packages) == 0:
		return m.localNames([]string{"."})
	case op.Kind == KindLink:
		var dirs []string
		for _, pkg := range op.Packages {
			if isRelativeDir(pkg) {
				dirs = append(dirs, pkg)
			}
		}
		return m.localNames(dirs)
	default:
		return m.globalNames(op.Packages)
	}
}

// globalNames discovers the command names of pkgs from their manifests under the global root.
// Packages whose manifest is missing or unreadable are skipped.
func (m Manager) globalNames(pkgs []string) ([]string, error) {
	if len(pkgs) == 0 {
		return nil, nil
	}
	root, err := GlobalRoot(m.Runner, m.BinaryDir, m.Env, m.Paths.TempPath, m.Platform)
	if err != nil {
		return nil, err
	}

	var names nameSet
	for _, pkg := range pkgs {
		manifest, err := ReadManifest(root, pkg)
		if err != nil {
			m.logger().Debug(messages.LogManifestSkipped, "package", pkg, "err", err)
			continue
		}
		m.collect(&names, manifest, pkg)
	}
	return names.list, nil
}

// localNames discovers the command names of the packages in dirs, relative to WorkDir.
func (m Manager) localNames(dirs []string) ([]string, error) {
	var names nameSet
	for _, dir := range dirs {
		path := filepath.Join(m.WorkDir, filepath.FromSlash(dir))
		manifest, err := ReadManifestDir(path)
		if err != nil {
			m.logger().Debug(messages.LogManifestSkipped, "package", path, "err", err)
			continue
		}
		m.collect(&names, manifest, "")
	}
	return names.list, nil
}

func (m Manager) collect(names *nameSet, manifest Manifest, pkg string) {
	bins, err := manifest.BinNames(pkg)
	if err != nil {
		m.logger().Debug(messages.LogManifestSkipped, "package", pkg, "err", fmt.Errorf(messages.PackagesManifestBinFmt, pkg, err))
		return
	}
	for _, name := range bins {
		names.add(name)
	}
}

func (m Manager) createAliases(names []string) {
	aliases := m.aliases()
	for _, name := range names {
		created, err := aliases.Create(name)
		switch {
		case err != nil:
			m.logger().Warn(messages.LogAliasFailed, "name", name, "err", err)
		case created:
			m.logger().Debug(messages.LogAliasCreated, "name", name)
		default:
			m.logger().Debug(messages.LogAliasExists, "name", name)
		}
	}
}

func (m Manager) removeAliases(names []string) {
	aliases := m.aliases()
	for _, name := range names {
		if err := aliases.Remove(name); err != nil {
			m.logger().Warn(messages.LogAliasFailed, "name", name, "err", err)
			continue
		}
		m.logger().Debug(messages.LogAliasRemoved, "name", name)
	}
}

func (m Manager) loadLedger() Ledger {
	ledger, err := LoadLedger(m.Paths.PackagesPath)
	if err != nil {
		if errors.Is(err, ErrMalformedLedger) {
			m.logger().Warn(messages.LogLedgerMalformed, "path", m.Paths.PackagesPath, "err", err)
		} else {
			m.logger().Warn(messages.LogLedgerFailed, "err", err)
		}
	}
	return ledger
}

func (m Manager) saveLedger(ledger Ledger) {
	if err := ledger.Save(m.Paths.PackagesPath); err != nil {
		m.logger().Warn(messages.LogLedgerFailed, "err", err)
		return
	}
	m.logger().Debug(messages.LogLedgerUpdated, "path", m.Paths.PackagesPath)
}

func (m Manager) aliases() Aliases {
	return Aliases{BinDir: m.Paths.BinDir, Platform: m.Platform}
}

func (m Manager) logger() *log.Logger {
	if m.Logger == nil {
		return log.Default()
	}
	return m.Logger
}

// nameSet keeps command names unique in discovery order.
type nameSet struct {
	seen map[string]bool
	list []string
}

func (s *nameSet) add(name string) {
	if s.seen == nil {
		s.seen = make(map[string]bool)
	}
	if !s.seen[name] {
		s.seen[name] = true
		s.list = append(s.list, name)
	}
}

// isRelativeDir reports whether arg names a directory relative to the working directory, such as
// ./pkg or ../pkg.
func isRelativeDir(arg string) bool {
	slashed := filepath.ToSlash(arg)
	return slashed == "." || slashed == ".." ||
		strings.HasPrefix(slashed, "./") || strings.HasPrefix(slashed, "../")
}
