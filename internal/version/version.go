package version

// Build metadata, set with -ldflags "-X github.com/braindrive/chat-plugin/internal/version.Version=..."
var (
	Version   = "dev"
	GitCommit = ""
	BuildDate = ""
)
