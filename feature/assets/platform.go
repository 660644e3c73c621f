package assets

import "strings"

// Platform is a target platform of a native build.
type Platform string

const (
	PlatformIOS     Platform = "ios"
	PlatformAndroid Platform = "android"
)

// Platforms lists every supported platform.
func Platforms() []Platform {
	return []Platform{PlatformIOS, PlatformAndroid}
}

// ParsePlatform converts a platform name into a Platform.
// Names are matched case-insensitively; anything else is an UnsupportedPlatformError.
func ParsePlatform(name string) (Platform, error) {
	switch p := Platform(strings.ToLower(strings.TrimSpace(name))); p {
	case PlatformIOS, PlatformAndroid:
		return p, nil
	default:
		return "", &UnsupportedPlatformError{Platform: name}
	}
}

func (p Platform) String() string {
	return string(p)
}
