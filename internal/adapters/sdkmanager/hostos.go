package sdkmanager

import "runtime"

// currentHostOS maps the Go runtime's GOOS to the host-os token the Google
// repository schema uses to select a platform-specific archive.
func currentHostOS() string {
	switch runtime.GOOS {
	case "windows":
		return "windows"
	case "darwin":
		return "macosx"
	default:
		return "linux"
	}
}
