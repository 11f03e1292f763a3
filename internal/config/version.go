package config

// Version is the neonpress binary version.
// Set at build time via: -ldflags "-X github.com/neonpress/neonpress/internal/config.Version=<tag>"
// Defaults to "dev" when built without ldflags.
var Version = "dev"
