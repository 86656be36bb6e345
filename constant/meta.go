// Package constant defines immutable application-level identifiers and configuration defaults.
package constant

const (
	// Leanback is the canonical application identifier used for filesystem paths and CLI branding.
	Leanback = "leanback"

	// Version is the current application semantic version string.
	Version = "0.1.0"

	// UserAgent is sent with every request to the channel backend.
	UserAgent = Leanback + "/" + Version
)

// Build metadata, overridden at link time with -ldflags "-X ...".
var (
	BuiltAt  = "unknown"
	BuiltBy  = "unknown"
	Revision = "unknown"
)

// Project locations.
const (
	Repository  = "leanback-cli/leanback"
	ReleasesURL = "https://github.com/" + Repository + "/releases/tag/v"
	LatestAPI   = "https://api.github.com/repos/" + Repository + "/releases/latest"
)
