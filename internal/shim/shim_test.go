package shim

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nvmd-desktop/nvmd/internal/dispatch"
	"github.com/nvmd-desktop/nvmd/internal/home"
	"github.com/nvmd-desktop/nvmd/internal/platform"
	"github.com/nvmd-desktop/nvmd/internal/testutil"
)

var linux = platform.Platform{OS: "linux"}

type fixture struct {
	paths    home.Paths
	wd       string
	sys      *testSystem
	launcher *testLauncher
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	paths := home.DefaultPaths(t.TempDir())
	require.NoError(t, os.MkdirAll(paths.BinDir, 0o755))
	return &fixture{
		paths:    paths,
		wd:       t.TempDir(),
		sys:      &testSystem{},
		launcher: &testLauncher{globalRoot: t.TempDir()},
	}
}

func (f *fixture) install(t *testing.T, v string, names ...string) string {
	t.Helper()
	return testutil.InstallRuntime(t, dispatch.BinaryDir(f.paths.Root, v, linux), names...)
}

func (f *fixture) shim() Shim {
	return Shim{
		Paths:    f.paths,
		Platform: linux,
		Sys:      f.sys,
		Versions: testVersions{},
		Dispatcher: dispatch.Dispatcher{
			Sys:      f.sys,
			Launcher: f.launcher,
			Platform: linux,
			Logger:   log.New(io.Discard),
		},
		Runner: f.launcher,
		Getwd:  func() (string, error) { return f.wd, nil },
		Logger: log.New(io.Discard),
	}
}

func writeFile(t *testing.T, path string, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestRunDispatchesGlobalDefault(t *testing.T) {
	f := newFixture(t)
	dir := f.install(t, "20.0.0")
	writeFile(t, f.paths.DefaultPath, "20.0.0\n")
	f.launcher.LaunchFunc = func(dispatch.Command) (int, error) { return 5, nil }

	code := f.shim().Run("node", []string{"-v"})
	assert.Equal(t, 5, code)
	require.Len(t, f.launcher.launched, 1)
	cmd := f.launcher.launched[0]
	assert.Equal(t, filepath.Join(dir, "node"), cmd.Path)
	assert.Equal(t, []string{filepath.Join(dir, "node"), "-v"}, cmd.Args)
	assert.Equal(t, []string{"PATH=" + dir + ":/usr/bin"}, cmd.Env)
	assert.Empty(t, f.sys.out.String())
}

func TestRunProjectMarkerWins(t *testing.T) {
	f := newFixture(t)
	f.install(t, "20.0.0")
	dir := f.install(t, "18.17.1", "npx")
	writeFile(t, f.paths.DefaultPath, "20.0.0")
	writeFile(t, filepath.Join(f.wd, ".nvmdrc"), " 18.17.1 \n")

	code := f.shim().Run("npx", []string{"cowsay", "hi"})
	assert.Equal(t, 0, code)
	require.Len(t, f.launcher.launched, 1)
	assert.Equal(t, []string{filepath.Join(dir, "node"), filepath.Join(dir, "npx"), "cowsay", "hi"}, f.launcher.launched[0].Args)
}

func TestRunUnresolvedPrintsNotFound(t *testing.T) {
	f := newFixture(t)

	code := f.shim().Run("node", nil)
	assert.Equal(t, 0, code)
	assert.Equal(t, "node: command not found\n", f.sys.out.String())
	assert.Empty(t, f.launcher.launched)
}

func TestRunMissingTargetPrintsNotFound(t *testing.T) {
	f := newFixture(t)
	f.install(t, "20.0.0")
	writeFile(t, f.paths.DefaultPath, "20.0.0")

	code := f.shim().Run("corepack", []string{"enable"})
	assert.Equal(t, 0, code)
	assert.Equal(t, "corepack: command not found\n", f.sys.out.String())
	assert.Empty(t, f.launcher.launched)
}

func TestRunVersionNotInstalledPrintsNotFound(t *testing.T) {
	f := newFixture(t)
	writeFile(t, f.paths.DefaultPath, "99.0.0")

	code := f.shim().Run("node", nil)
	assert.Equal(t, 0, code)
	assert.Equal(t, "node: command not found\n", f.sys.out.String())
}

func TestRunLaunchFailurePrintsNotFound(t *testing.T) {
	f := newFixture(t)
	f.install(t, "20.0.0")
	writeFile(t, f.paths.DefaultPath, "20.0.0")
	f.launcher.LaunchFunc = func(dispatch.Command) (int, error) {
		return 0, dispatch.ErrCommandNotFound
	}

	code := f.shim().Run("node", nil)
	assert.Equal(t, 0, code)
	assert.Equal(t, "node: command not found\n", f.sys.out.String())
}

func TestRunAbnormalExit(t *testing.T) {
	f := newFixture(t)
	f.install(t, "20.0.0")
	writeFile(t, f.paths.DefaultPath, "20.0.0")
	f.launcher.LaunchFunc = func(dispatch.Command) (int, error) {
		return 1, dispatch.ErrAbnormalExit
	}

	assert.Equal(t, 1, f.shim().Run("node", nil))
	assert.Empty(t, f.sys.out.String())
}

func TestRunUnreadableMarkerFallsThrough(t *testing.T) {
	f := newFixture(t)
	f.install(t, "20.0.0")
	writeFile(t, f.paths.DefaultPath, "20.0.0")
	s := f.shim()
	s.Versions = testVersions{ReadFileFunc: func(name string) ([]byte, error) {
		if filepath.Base(name) == ".nvmdrc" {
			return nil, fs.ErrPermission
		}
		return os.ReadFile(name)
	}}

	assert.Equal(t, 0, s.Run("node", nil))
	require.Len(t, f.launcher.launched, 1)
}

func TestRunGetwdFailureUsesGlobal(t *testing.T) {
	f := newFixture(t)
	f.install(t, "20.0.0")
	writeFile(t, f.paths.DefaultPath, "20.0.0")
	s := f.shim()
	s.Getwd = func() (string, error) { return "", errors.New("gone") }
	s.Versions = testVersions{ReadFileFunc: func(name string) ([]byte, error) {
		if filepath.Base(name) == ".nvmdrc" {
			return nil, fs.ErrNotExist
		}
		return os.ReadFile(name)
	}}

	assert.Equal(t, 0, s.Run("node", nil))
	require.Len(t, f.launcher.launched, 1)
}

func TestRunNpmGlobalInstallUpdatesLedger(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("alias uses symlinks")
	}
	f := newFixture(t)
	dir := f.install(t, "20.0.0", "npm")
	writeFile(t, f.paths.DefaultPath, "20.0.0")
	pkgDir := filepath.Join(f.launcher.globalRoot, "cowsay")
	require.NoError(t, os.MkdirAll(pkgDir, 0o755))
	writeFile(t, filepath.Join(pkgDir, "package.json"), `{"name":"cowsay","bin":"./cli.js"}`)

	code := f.shim().Run("npm", []string{"install", "-g", "cowsay"})
	assert.Equal(t, 0, code)

	require.Len(t, f.launcher.launched, 1)
	assert.Equal(t, []string{filepath.Join(dir, "node"), filepath.Join(dir, "npm"), "install", "-g", "cowsay"}, f.launcher.launched[0].Args)

	data, err := os.ReadFile(f.paths.PackagesPath)
	require.NoError(t, err)
	assert.JSONEq(t, `{"cowsay":["20.0.0"]}`, string(data))
	_, err = os.Lstat(filepath.Join(f.paths.BinDir, "cowsay"))
	assert.NoError(t, err)
}

func TestRunNpmGlobalPropagatesFailure(t *testing.T) {
	f := newFixture(t)
	f.install(t, "20.0.0", "npm")
	writeFile(t, f.paths.DefaultPath, "20.0.0")
	f.launcher.LaunchFunc = func(dispatch.Command) (int, error) { return 1, nil }

	assert.Equal(t, 1, f.shim().Run("npm", []string{"uninstall", "-g", "cowsay"}))
	assert.NoFileExists(t, f.paths.PackagesPath)
}

func TestRunNpmGlobalMissingNpm(t *testing.T) {
	f := newFixture(t)
	f.install(t, "20.0.0")
	writeFile(t, f.paths.DefaultPath, "20.0.0")

	assert.Equal(t, 0, f.shim().Run("npm", []string{"install", "-g", "cowsay"}))
	assert.Equal(t, "npm: command not found\n", f.sys.out.String())
	assert.Empty(t, f.launcher.launched)
}

func TestRunNpmLocalInstallDispatches(t *testing.T) {
	f := newFixture(t)
	f.install(t, "20.0.0", "npm")
	writeFile(t, f.paths.DefaultPath, "20.0.0")

	assert.Equal(t, 0, f.shim().Run("npm", []string{"install", "cowsay"}))
	require.Len(t, f.launcher.launched, 1)
	assert.NoFileExists(t, f.paths.PackagesPath)
}

func TestRunGlobalFlagsOnlyApplyToNpm(t *testing.T) {
	f := newFixture(t)
	f.install(t, "20.0.0", "npx")
	writeFile(t, f.paths.DefaultPath, "20.0.0")

	assert.Equal(t, 0, f.shim().Run("npx", []string{"install", "-g", "cowsay"}))
	require.Len(t, f.launcher.launched, 1)
	assert.NoFileExists(t, f.paths.PackagesPath)
}

func TestRunCorepackEnableCreatesAliases(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("alias uses symlinks")
	}
	f := newFixture(t)
	dir := f.install(t, "20.0.0", "corepack")
	writeFile(t, f.paths.DefaultPath, "20.0.0")

	code := f.shim().Run("corepack", []string{"enable"})
	assert.Equal(t, 0, code)

	require.Len(t, f.launcher.launched, 1)
	assert.Equal(t, []string{filepath.Join(dir, "node"), filepath.Join(dir, "corepack"), "enable"}, f.launcher.launched[0].Args)
	for _, name := range []string{"yarn", "yarnpkg", "pnpm", "pnpx"} {
		_, err := os.Lstat(filepath.Join(f.paths.BinDir, name))
		assert.NoError(t, err, name)
	}
}

func TestRunCorepackOtherCommandsDispatch(t *testing.T) {
	f := newFixture(t)
	f.install(t, "20.0.0", "corepack")
	writeFile(t, f.paths.DefaultPath, "20.0.0")

	assert.Equal(t, 0, f.shim().Run("corepack", []string{"prepare", "yarn@4"}))
	require.Len(t, f.launcher.launched, 1)
	_, err := os.Lstat(filepath.Join(f.paths.BinDir, "yarn"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestRunNpmLinkUsesWorkingDirectory(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("alias uses symlinks")
	}
	f := newFixture(t)
	f.install(t, "20.0.0", "npm")
	writeFile(t, f.paths.DefaultPath, "20.0.0")
	writeFile(t, filepath.Join(f.wd, "package.json"), `{"name":"my-cli","bin":"./cli.js"}`)

	assert.Equal(t, 0, f.shim().Run("npm", []string{"link"}))

	data, err := os.ReadFile(f.paths.PackagesPath)
	require.NoError(t, err)
	assert.JSONEq(t, `{"my-cli":["20.0.0"]}`, string(data))
	_, err = os.Lstat(filepath.Join(f.paths.BinDir, "my-cli"))
	assert.NoError(t, err)
}
