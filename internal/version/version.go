// internal/version/version.go
package version

// Version is the release string printed by --version.
const Version = "0.3.0"
