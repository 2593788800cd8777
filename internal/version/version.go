// Package version provides version information for hostmcp.
// The Version variable is set at build time via ldflags.
package version

// Version is the current version of hostmcp.
// Set at build time via: -ldflags "-X github.com/xdg/hostmcp/internal/version.Version=v1.0.0"
// Defaults to "dev" for development builds.
var Version = "dev"

// ServerName is the name advertised to agents during the protocol handshake.
const ServerName = "hostmcp"
