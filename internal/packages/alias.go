package packages

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/nvmd-desktop/nvmd/internal/identity"
	"github.com/nvmd-desktop/nvmd/internal/messages"
	"github.com/nvmd-desktop/nvmd/internal/platform"
)

// Aliases manages the per-command entries in the shared bin directory that route a package
// binary back through the launcher.
//
// On POSIX an alias is a symbolic link to the launcher. On Windows it is a copy of the launcher
// executable plus a copy of the package manager's .cmd shim, both named after the command.
type Aliases struct {
	BinDir   string
	Platform platform.Platform
}

type aliasFile struct {
	source string
	target string
	link   bool
}

func (a Aliases) files(name string) []aliasFile {
	if a.Platform.IsWindows() {
		return []aliasFile{
			{
				source: filepath.Join(a.BinDir, identity.LauncherName+".exe"),
				target: filepath.Join(a.BinDir, name+".exe"),
			},
			{
				source: filepath.Join(a.BinDir, identity.PackageManagerName+".cmd"),
				target: filepath.Join(a.BinDir, name+".cmd"),
			},
		}
	}
	return []aliasFile{{
		source: filepath.Join(a.BinDir, identity.LauncherName),
		target: filepath.Join(a.BinDir, name),
		link:   true,
	}}
}

// Create adds the alias for name when it does not exist yet. Existing entries are never
// overwritten. It reports whether anything was created.
func (a Aliases) Create(name string) (bool, error) {
	if err := os.MkdirAll(a.BinDir, 0o755); err != nil {
		return false, fmt.Errorf(messages.PackagesCreateBinDirFmt, a.BinDir, err)
	}
	created := false
	for _, f := range a.files(name) {
		if _, err := os.Lstat(f.target); err == nil {
			continue
		} else if !errors.Is(err, os.ErrNotExist) {
			return created, fmt.Errorf(messages.PackagesCreateAliasFmt, f.target, err)
		}
		if f.link {
			if err := os.Symlink(f.source, f.target); err != nil {
				return created, fmt.Errorf(messages.PackagesCreateAliasFmt, f.target, err)
			}
		} else if err := copyFile(f.source, f.target); err != nil {
			return created, fmt.Errorf(messages.PackagesCreateAliasFmt, f.target, err)
		}
		created = true
	}
	return created, nil
}

// Remove deletes the alias for name. Missing entries are ignored.
func (a Aliases) Remove(name string) error {
	var errs []error
	for _, f := range a.files(name) {
		if err := os.Remove(f.target); err != nil && !errors.Is(err, os.ErrNotExist) {
			errs = append(errs, fmt.Errorf(messages.PackagesRemoveAliasFmt, f.target, err))
		}
	}
	return errors.Join(errs...)
}

func copyFile(source string, target string) (err error) {
	in, err := os.Open(source)
	if err != nil {
		return fmt.Errorf(messages.PackagesCopyAliasSourceFmt, source, target, err)
	}
	defer func() { _ = in.Close() }()

	info, err := in.Stat()
	if err != nil {
		return fmt.Errorf(messages.PackagesCopyAliasSourceFmt, source, target, err)
	}
	out, err := os.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_EXCL, info.Mode().Perm())
	if err != nil {
		return fmt.Errorf(messages.PackagesCopyAliasSourceFmt, source, target, err)
	}
	defer func() {
		if cerr := out.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	if _, err := io.Copy(out, in); err != nil {
		return fmt.Errorf(messages.PackagesCopyAliasSourceFmt, source, target, err)
	}
	return nil
}
