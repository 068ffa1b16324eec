package messages

// CLI metadata and output for the nvmd management command.
const (
	RootUse   = "nvmd"
	RootShort = "Command tools for nvm-desktop"
	RootLong  = "nvmd switches Node.js versions per project.\n\nThe same binary is linked as node, npm, npx and corepack; invoked under those names it dispatches to the configured version."
	RootAfter = "Please download new versions of Node.js in nvm-desktop."

	VersionTemplate  = "{{.Name}} {{.Version}}\n"
	VersionFullFmt   = "%s (%s)"
	VersionCommitFmt = "commit %s"
	VersionBuildFmt  = "built %s"

	CurrentUse   = "current"
	CurrentShort = "Get the currently used version"

	ListUse   = "list"
	ListShort = "List all installed versions of Node.js"
	ListAlias = "ls"

	UseUse           = "use [version|group]"
	UseShort         = "Use an installed version of Node.js (default is global)"
	UseFlagProject   = "Use version for the current project"
	UsePromptTitle   = "Select a Node.js version"
	UseNowUsingFmt   = "Now using node v%s\n"
	UseNowGroupFmt   = "Now using node v%s (%s)\n"
	UseGroupOnlyFmt  = "Group@%s can only be used for projects"
	UseGroupUnsetFmt = "the Node.js version for group '%s' has not been set yet"
	UseNoVersionArg  = "a version is required when not running interactively"
	UseNoInstalled   = "no installed versions of Node.js were found"

	WhichUse   = "which <version>"
	WhichShort = "Get the path to the executable to where Node.js was installed"

	PackagesUse   = "packages"
	PackagesShort = "List globally installed packages tracked per version"
	PackagesEmpty = "no global packages are tracked"

	VersionLineFmt      = "v%s\n"
	VersionLabelFmt     = "v%s"
	VersionCurrentFmt   = "v%s (currently)"
	PackageLineFmt      = "%s: %s\n"
	ErrorPrefixFmt      = "nvm-desktop: %s\n"
	VersionNotInstalled = "Node@v%s has not been installed"
	InvalidVersionFmt   = "invalid version %q: %w"
	GetwdFailedFmt      = "get working directory: %w"
	WriteMarkerFailed   = "write %s: %w"
	ListVersionsFailed  = "list versions in %s: %w"
	PromptFailedFmt     = "prompt: %w"

	PromptRequiresTerminal = "the version picker requires an interactive terminal"
	PromptCancelled        = "selection cancelled"
)
