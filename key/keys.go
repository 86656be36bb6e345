// Package key defines the canonical set of configuration identifiers used for centralized settings management.
package key

// DefinedFieldsCount represents the total cardinality of the application configuration schema.
const DefinedFieldsCount = 16

// Channel Backend - these keys locate and tune the remote service that owns channels and queues.
const (
	APIBaseURL = "api.base_url"
	APITimeout = "api.timeout"
)

// Media Playback - these keys configure the external video player.
const (
	PlayerBinary     = "player.binary"
	PlayerFullscreen = "player.fullscreen"
	PlayerExtraArgs  = "player.extra_args"
)

// Session - these keys govern how a viewing session starts and what is remembered.
const (
	SessionResume       = "session.resume"
	SessionHistoryLimit = "session.history_limit"
)

// Iconography - these keys manage the visual rendering of UI symbols.
const (
	IconsVariant = "icons.variant"
)

// Terminal User Interface (TUI) - these keys define the interactive environment's styling.
const (
	TUIItemSpacing = "tui.item_spacing"
	TUIShowHelp    = "tui.show_help"
)

// Logging Infrastructure - these keys manage the application's internal diagnostics.
const (
	LogsWrite = "logs.write"
	LogsLevel = "logs.level"
	LogsJson  = "logs.json"
)

// CLI Execution Environment - these flags and settings govern the non-TUI application behavior.
const (
	CliColored      = "cli.colored"
	CliConfirm      = "cli.confirm"
	CliVersionCheck = "cli.version_check"
)
