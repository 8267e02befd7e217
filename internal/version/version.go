// Package version holds build metadata for msgrelay.
package version

// Version is overridden at build time via -ldflags "-X ...version.Version=...".
var Version = "dev"

// Name is the application identifier reported by status endpoints.
const Name = "msgrelay"
