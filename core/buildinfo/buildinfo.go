package buildinfo

// Set via -ldflags at build time:
//
//	-X 'github.com/savdohub/savdobot/core/buildinfo.Version=v1.0.0'
//	-X 'github.com/savdohub/savdobot/core/buildinfo.Commit=abcdef0'
//	-X 'github.com/savdohub/savdobot/core/buildinfo.Date=2026-08-29T12:00:00Z'
var (
	// Version is the semantic version or tag of the build.
	Version = "dev"
	// Commit is the source control revision of the build.
	Commit = "local"
	// Date is the build timestamp in RFC3339 format.
	Date = ""
)
