package version

// Set at build time with -ldflags "-X github.com/kmctl-dev/kmctl/internal/version.Version=...".
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)
