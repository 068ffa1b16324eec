package main

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/nvmd-desktop/nvmd/internal/home"
	"github.com/nvmd-desktop/nvmd/internal/messages"
	"github.com/nvmd-desktop/nvmd/internal/notice"
	"github.com/nvmd-desktop/nvmd/internal/platform"
	"github.com/nvmd-desktop/nvmd/internal/project"
	"github.com/nvmd-desktop/nvmd/internal/prompt"
	"github.com/nvmd-desktop/nvmd/internal/terminal"
	"github.com/nvmd-desktop/nvmd/internal/version"
)

var (
	isInteractive = terminal.IsInteractive
	newSelector   = func() prompt.Selector { return prompt.NewHuhUI() }
	postNotice    = func(n notice.Notice, logger *log.Logger) { notice.NewClient().Post(n, logger) }
)

func newUseCmd(logger *log.Logger) *cobra.Command {
	var forProject bool
	cmd := &cobra.Command{
		Use:   messages.UseUse,
		Short: messages.UseShort,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			paths, err := resolvePaths()
			if err != nil {
				return err
			}
			installedDir := paths.InstalledDir()
			p := platform.Current()

			var raw string
			if len(args) == 1 {
				raw = args[0]
			} else {
				raw, err = pickVersion(paths, installedDir, p)
				if errors.Is(err, prompt.ErrCancelled) {
					return nil
				}
				if err != nil {
					return err
				}
			}

			target, err := resolveTarget(paths, raw, forProject, logger)
			if err != nil {
				return err
			}
			if !version.IsInstalled(installedDir, target.version, p) {
				return fmt.Errorf(messages.VersionNotInstalled, target.version)
			}

			var n notice.Notice
			if forProject {
				if n, err = useProject(paths, target, logger); err != nil {
					return err
				}
			} else {
				if err := version.WriteMarker(paths.DefaultPath, target.version); err != nil {
					return err
				}
				n = notice.Current(target.version)
			}

			if target.group != "" {
				_, _ = fmt.Fprintf(cmd.ErrOrStderr(), messages.UseNowGroupFmt, target.version, target.group)
			} else {
				_, _ = fmt.Fprintf(cmd.ErrOrStderr(), messages.UseNowUsingFmt, target.version)
			}
			postNotice(n, logger)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&forProject, "project", "p", false, messages.UseFlagProject)
	return cmd
}

// useTarget is the version selected by `use`, and the group it came from, if any.
type useTarget struct {
	version string
	group   string
}

// resolveTarget interprets raw as a group name from groups.json, falling back to a version.
// Groups only apply to projects.
func resolveTarget(paths home.Paths, raw string, forProject bool, logger *log.Logger) (useTarget, error) {
	groups, err := project.LoadGroups(paths.GroupsPath)
	if errors.Is(err, project.ErrMalformedGroups) {
		logger.Warn(messages.LogGroupsMalformed, "path", paths.GroupsPath, "err", err)
	} else if err != nil {
		return useTarget{}, err
	}

	if g, ok := groups.Find(raw); ok {
		if !forProject {
			return useTarget{}, fmt.Errorf(messages.UseGroupOnlyFmt, raw)
		}
		pinned, ok := g.PinnedVersion()
		if !ok {
			return useTarget{}, fmt.Errorf(messages.UseGroupUnsetFmt, raw)
		}
		v, err := version.Normalize(pinned)
		if err != nil {
			return useTarget{}, err
		}
		return useTarget{version: v, group: g.Name}, nil
	}

	v, err := version.Normalize(raw)
	if err != nil {
		return useTarget{}, err
	}
	return useTarget{version: v}, nil
}

// useProject pins the working directory to t and registers it with the desktop application.
// Projects that follow a group are recorded under the group name and join the group.
func useProject(paths home.Paths, t useTarget, logger *log.Logger) (notice.Notice, error) {
	wd, err := getwd()
	if err != nil {
		return notice.Notice{}, fmt.Errorf(messages.GetwdFailedFmt, err)
	}
	recorded := t.version
	if t.group != "" {
		recorded = t.group
	}
	entry, err := project.Upsert(paths.ProjectsPath, wd, recorded, logger)
	if err != nil {
		return notice.Notice{}, err
	}
	if t.group != "" {
		if err := project.JoinGroup(paths.GroupsPath, t.group, wd, logger); err != nil {
			return notice.Notice{}, err
		}
	}
	if err := version.WriteMarker(filepath.Join(wd, version.ProjectMarker), t.version); err != nil {
		return notice.Notice{}, err
	}
	return notice.Project(entry.Name, recorded), nil
}

// pickVersion asks the user to choose among installed versions, preselecting the current one.
func pickVersion(paths home.Paths, installedDir string, p platform.Platform) (string, error) {
	if !isInteractive() {
		return "", errors.New(messages.UseNoVersionArg)
	}
	versions, err := version.ListInstalled(installedDir, p)
	if err != nil {
		return "", err
	}
	if len(versions) == 0 {
		return "", errors.New(messages.UseNoInstalled)
	}

	current, _ := currentVersion(paths)
	options := make([]prompt.Option, len(versions))
	for i, v := range versions {
		label := fmt.Sprintf(messages.VersionLabelFmt, v)
		if v == current.Version {
			label = fmt.Sprintf(messages.VersionCurrentFmt, v)
		}
		options[i] = prompt.Option{Label: label, Value: v}
	}

	selected := current.Version
	if err := newSelector().Select(messages.UsePromptTitle, options, &selected); err != nil {
		if errors.Is(err, prompt.ErrCancelled) {
			return "", err
		}
		return "", fmt.Errorf(messages.PromptFailedFmt, err)
	}
	return selected, nil
}
