// Package misc holds program identity helpers.
package misc

// set by the linker
var (
	version = "dev"
	gitHash = "unknown"
)

// GetAppName returns program name to be used in logs and temporary file names.
func GetAppName() string {
	return "draftexp"
}

func GetVersion() string {
	return version
}

func GetGitHash() string {
	return gitHash
}
