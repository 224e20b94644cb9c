package version

// Set at build time via -ldflags "-X cypherbot/internal/version.Version=...".
var (
	AppName = "cypherbot"
	Version = "dev"
)
