package version

// Version is the current trustdebt version.
// Overridden at build time via -ldflags "-X trustdebt/internal/version.Version=..."
var Version = "0.3.0"
