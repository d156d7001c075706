package version

// Version is the version reported by the indicators CLI.
// It is set at build time using ldflags:
// -ldflags "-X github.com/rxtech-lab/argo-indicators/internal/version.Version=1.2.3"
// The default value "main" indicates a development build.
var Version = "main"

// GetVersion returns the current version.
func GetVersion() string {
	return Version
}

// IsDevelopment reports whether the binary was built without a release version.
func IsDevelopment() bool {
	return Version == "" || Version == "main"
}
