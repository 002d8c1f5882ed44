// Package settings provides build metadata, per-run configuration, and
// context helpers shared by the assetview CLI and library packages.
package settings

// CliBinaryName is the canonical binary name for this tool.
const CliBinaryName = "assetview"

// VersionInformation is populated at build time via ldflags.
var VersionInformation = VersionInfo{
	Commit:       "unknown",
	BuildVersion: "v0.0.0-nightly",
	BuildTime:    "unknown",
}

// VersionInfo holds metadata about the build.
type VersionInfo struct {
	Commit       string
	BuildVersion string
	BuildTime    string
}

// InputSettings describes where the value to render comes from.
type InputSettings struct {
	FromStdin bool
	Path      string
	// AssetName labels the value for exports and draft notes.
	AssetName string
}

// Run holds configuration settings for a single execution of the application.
type Run struct {
	MinLogLevel int8
	Input       InputSettings
	NoColor     bool
	Interactive bool
	ExitOnError bool
}

// NewCliParams returns the default parameters for a CLI invocation.
func NewCliParams() *Run {
	return &Run{
		MinLogLevel: 0,
		Input: InputSettings{
			AssetName: "asset",
		},
		ExitOnError: true,
	}
}
