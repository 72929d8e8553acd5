package cudaarch

import (
	"regexp"
	"strings"
)

// RequestKind is the form of a requested_archs argument.
type RequestKind string

const (
	// RequestNative is passed through to CMake, which lets nvcc detect
	// the GPUs present at compile time.
	RequestNative RequestKind = "native"
	// RequestAll selects every architecture nvcc supports after filtering.
	RequestAll RequestKind = "all"
	// RequestAllMajor selects the major architectures of RequestAll.
	RequestAllMajor RequestKind = "all-major"
	// RequestExplicit selects a user provided list.
	RequestExplicit RequestKind = "explicit"
)

// Request is the parsed form of the requested_archs argument.
type Request struct {
	Kind RequestKind
	// Raw is the argument as given.
	Raw string
	// Archs is only set for RequestExplicit.
	Archs []string
}

// ParseRequest maps the requested_archs argument to a Request.
// The keywords are matched case-insensitively.
func ParseRequest(raw string) Request {
	switch RequestKind(strings.ToLower(strings.TrimSpace(raw))) {
	case RequestNative:
		return Request{Kind: RequestNative, Raw: raw}
	case RequestAll:
		return Request{Kind: RequestAll, Raw: raw}
	case RequestAllMajor:
		return Request{Kind: RequestAllMajor, Raw: raw}
	default:
		return Request{Kind: RequestExplicit, Raw: raw, Archs: SplitArchs(raw)}
	}
}

var archSeparatorRegex = regexp.MustCompile(`[\s,]+`)

// SplitArchs splits a comma and/or whitespace separated list,
// e.g., "75 86,90a" or "75, 86". Empty entries are dropped.
func SplitArchs(raw string) []string {
	archs := make([]string, 0)
	for _, s := range archSeparatorRegex.Split(strings.TrimSpace(raw), -1) {
		if s != "" {
			archs = append(archs, s)
		}
	}
	return archs
}
