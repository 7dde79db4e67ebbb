package version

import (
	"fmt"
	"strings"
)

// validCharacters is a list of characters valid in the appBuild string
const validCharacters = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz-"

const (
	appMajor uint = 0
	appMinor uint = 1
	appPatch uint = 0
)

// appBuild may be set at link time with
// '-ldflags "-X github.com/prismnet/prismd/version.appBuild=foo"'.
// Builds containing characters outside validCharacters are ignored.
var appBuild string

var version = ""

// Version returns the application version as a semver string, with the
// build metadata appended when present.
func Version() string {
	if version == "" {
		version = fmt.Sprintf("%d.%d.%d", appMajor, appMinor, appPatch)

		if build := checkAppBuild(appBuild); build != "" {
			version = fmt.Sprintf("%s-%s", version, build)
		}
	}
	return version
}

func checkAppBuild(build string) string {
	for _, r := range build {
		if !strings.ContainsRune(validCharacters, r) {
			return ""
		}
	}
	return build
}
