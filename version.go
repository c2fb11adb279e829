package gommt

// Version information for gommt.
const (
	// Name is the library name, sent as the default MMT-Platform header.
	Name = "gommt"

	// Version is the semantic version of the library, sent as the
	// default MMT-PlatformVersion header.
	Version = "1.2.0"

	// Repository is the source code repository URL.
	Repository = "https://github.com/ZaguanLabs/gommt"
)

// UserAgent returns a user agent string for HTTP requests.
func UserAgent() string {
	return Name + "/" + Version
}
