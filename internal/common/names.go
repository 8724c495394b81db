package common

import "strings"

// UnknownStr is returned by String methods for out-of-range enum values.
const UnknownStr = "unknown"

// NameSeparator separates the segments of a hierarchical notification name.
const NameSeparator = "."

// LastSegment returns the part of a hierarchical name after the last separator.
// "Microsoft.Framework.TestEvents.NumberOne" -> "NumberOne".
func LastSegment(name string) string {
	if i := strings.LastIndex(name, NameSeparator); i >= 0 {
		return name[i+1:]
	}

	return name
}
