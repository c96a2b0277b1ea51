package build

// Populated at build time with -ldflags "-X ..."
var (
	Version = "development" // nolint: gochecknoglobals
	Commit  = "unknown"     // nolint: gochecknoglobals
	Time    = "unknown"     // nolint: gochecknoglobals
)
