package types

// Version is the application version, overridden at build time via ldflags
var Version = "0.1.0"

// EnvToken is the environment variable holding the GitHub personal access token
const EnvToken = "GITHUB_TOKEN"

// Exit codes returned by the release command. The values are part of the
// CLI contract and must not be renumbered.
const (
	ExitOK              = 0
	ExitMissingVersion  = 1
	ExitNotARepository  = 2
	ExitNoRemotes       = 3
	ExitMissingToken    = 4
	ExitReleaseFailed   = 5
	ExitMultipleRemotes = 99
)
