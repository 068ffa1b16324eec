package messages

// Shim and dispatch messages.
const (
	// CommandNotFoundFmt is printed on stdout when a logical command cannot be dispatched.
	CommandNotFoundFmt = "%s: command not found\n"

	DispatchCommandNotFound    = "command not found"
	DispatchAbnormalExit       = "abnormal exit"
	DispatchMissingArgv0       = "missing argv[0]"
	DispatchSystemRequired     = "dispatch system is required"
	DispatchLauncherRequired   = "dispatch launcher is required"
	DispatchTargetMissingFmt   = "target %s does not exist"
	DispatchCheckTargetFmt     = "check target %s: %w"
	DispatchStartFailedFmt     = "start %s: %w"
	DispatchExecFailedFmt      = "exec %s: %w"
	DispatchAbnormalExitFmt    = "%s terminated abnormally: %w"
	DispatchUnsupportedPlatFmt = "unsupported platform %q"

	HomeResolveFailedFmt = "resolve home directory: %w"

	// WrapFmt joins a sentinel with the error that caused it.
	WrapFmt = "%w: %w"

	// MalformedFileFmt wraps a sentinel with the offending path and the decode error.
	MalformedFileFmt = "%w: %s: %w"

	VersionReadMarkerFmt = "read %s: %w"

	PackagesRootDiscoveryFmt   = "discover npm global root: %w"
	PackagesRootEmpty          = "npm reported an empty global root"
	PackagesRootExitFmt        = "npm root -g exited with %d"
	PackagesParseManifestFmt   = "parse %s: %w"
	PackagesManifestBinFmt     = "%s: %w"
	PackagesUnsupportedBin     = `"bin" is neither a string nor an object`
	PackagesReadLedgerFmt      = "read ledger %s: %w"
	PackagesLedgerMalformed    = "malformed package ledger"
	PackagesEncodeLedgerFmt    = "encode ledger: %w"
	PackagesWriteLedgerFmt     = "write ledger %s: %w"
	PackagesCreateAliasFmt     = "create alias %s: %w"
	PackagesRemoveAliasFmt     = "remove alias %s: %w"
	PackagesCreateBinDirFmt    = "create bin dir %s: %w"
	PackagesCreateTempFileFmt  = "create %s: %w"
	PackagesCopyAliasSourceFmt = "copy %s to %s: %w"

	SettingReadFailedFmt  = "read setting %s: %w"
	SettingParseFailedFmt = "parse setting %s: %w"

	ProjectReadFailedFmt   = "read projects %s: %w"
	ProjectEncodeFailedFmt = "encode projects: %w"
	ProjectWriteFailedFmt  = "write projects %s: %w"
	ProjectMalformed       = "malformed project registry"

	GroupMalformed       = "malformed group registry"
	GroupReadFailedFmt   = "read groups %s: %w"
	GroupEncodeFailedFmt = "encode groups: %w"
	GroupWriteFailedFmt  = "write groups %s: %w"

	NoticeStatusFmt = "notice: unexpected status %s"
)

// Log messages. Keys are passed as structured fields.
const (
	LogResolvedVersion   = "resolved runtime version"
	LogUnresolvedVersion = "no runtime version configured"
	LogDispatch          = "dispatching"
	LogDispatchFailed    = "dispatch failed"
	LogGlobalCommand     = "intercepting global package command"
	LogCorepackCommand   = "intercepting corepack command"
	LogLedgerUpdated     = "package ledger updated"
	LogLedgerFailed      = "package ledger update failed"
	LogLedgerMalformed   = "package ledger is malformed; treating as empty"
	LogManifestSkipped   = "skipping package manifest"
	LogAliasCreated      = "alias created"
	LogAliasExists       = "alias already exists"
	LogAliasRemoved      = "alias removed"
	LogAliasFailed       = "alias update failed"
	LogNoticeFailed      = "desktop notice failed"
	LogProjectsMalformed = "project registry is malformed; rewriting it"
	LogGroupsMalformed   = "group registry is malformed; ignoring it"
)
