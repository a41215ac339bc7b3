package utils

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
)

// DefaultVersion is reported for artifacts whose name carries no version tag.
const DefaultVersion = "0.0.0"

var (
	semverPattern = regexp.MustCompile(`^\d+\.\d+\.\d+$`)

	// e.g. BackupAgent_1.2.3.zip -> 1.2.3
	artifactVersionPattern = regexp.MustCompile(`_(\d+\.\d+\.\d+)\.[^.]+$`)
)

// ParseArtifactVersion extracts the X.Y.Z tag that sits right before the
// extension of an artifact name. Names without the tag yield DefaultVersion.
func ParseArtifactVersion(filename string) string {
	m := artifactVersionPattern.FindStringSubmatch(filename)
	if m == nil {
		return DefaultVersion
	}
	return m[1]
}

// PackageStem strips the "_X.Y.Z.ext" suffix, so every release of
// BackupAgent shares the stem "BackupAgent". Untagged names keep everything
// up to the extension.
func PackageStem(filename string) string {
	if loc := artifactVersionPattern.FindStringIndex(filename); loc != nil {
		return filename[:loc[0]]
	}
	if i := strings.LastIndexByte(filename, '.'); i > 0 {
		return filename[:i]
	}
	return filename
}

// IsNewerVersion compares two semantic versions and returns true if remote > local.
func IsNewerVersion(remote, local string) (bool, error) {
	if !IsSemver(remote) || !IsSemver(local) {
		return false, errors.New("invalid semantic version format (expected x.y.z)")
	}

	rParts := strings.Split(remote, ".")
	lParts := strings.Split(local, ".")

	for i := 0; i < 3; i++ {
		rNum, _ := strconv.Atoi(rParts[i])
		lNum, _ := strconv.Atoi(lParts[i])

		switch {
		case rNum > lNum:
			return true, nil
		case rNum < lNum:
			return false, nil
		}
	}

	return false, nil // same version
}

// IsSemver returns true if the string is a valid semver (x.y.z).
func IsSemver(v string) bool {
	return semverPattern.MatchString(v)
}
