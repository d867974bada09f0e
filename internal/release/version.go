package release

import "strings"

// ExtractMajor returns the leftmost maximal run of ASCII digits in version,
// or "" when the string is empty or contains no digits. The major token is
// the primary key for correlating a train version with calendar events, so
// malformed upstream values degrade to "" instead of failing.
func ExtractMajor(version string) string {
	start := -1
	for i := 0; i < len(version); i++ {
		c := version[i]
		if c >= '0' && c <= '9' {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			return version[start:i]
		}
	}
	if start >= 0 {
		return version[start:]
	}
	return ""
}

// DecodeTag rewrites a source-control tag of the form
// PREFIX_major_minor[_phaseN] into a dotted version string, e.g.
// THUNDERBIRD_14_0b1 -> 14.0b1 and THUNDERBIRD_14_0 -> 14.0. Returns ""
// when the tag does not carry the product prefix or has no version
// segments after it.
func DecodeTag(tag, prefix string) string {
	if !strings.HasPrefix(tag, prefix+"_") {
		return ""
	}
	rest := strings.TrimPrefix(tag, prefix+"_")
	if rest == "" {
		return ""
	}
	return strings.Join(strings.Split(rest, "_"), ".")
}

// IsPrerelease reports whether a decoded version carries an alpha or beta
// phase segment, e.g. 14.0b1 or 145.0a1. Tag classification uses this to
// tell beta tags from release tags.
func IsPrerelease(version string) bool {
	for i := 0; i < len(version); i++ {
		if version[i] != 'a' && version[i] != 'b' {
			continue
		}
		if i > 0 && version[i-1] >= '0' && version[i-1] <= '9' &&
			i+1 < len(version) && version[i+1] >= '0' && version[i+1] <= '9' {
			return true
		}
	}
	return false
}

// IsBeta reports whether a decoded version is a beta build (bN suffix
// grammar, e.g. 132.0b3).
func IsBeta(version string) bool {
	for i := 0; i < len(version); i++ {
		if version[i] != 'b' {
			continue
		}
		if i > 0 && version[i-1] >= '0' && version[i-1] <= '9' &&
			i+1 < len(version) && version[i+1] >= '0' && version[i+1] <= '9' {
			return true
		}
	}
	return false
}
