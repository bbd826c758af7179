package model

import "strings"

// StreamName is the application chosen name of a stream
type StreamName string

// String ...
func (n StreamName) String() string {
	return string(n)
}

// Category returns the part before the first dash, e.g. "user" for "user-123"
func (n StreamName) Category() (string, bool) {
	pos := strings.Index(string(n), "-")
	if pos <= 0 {
		return "", false
	}
	return string(n)[:pos], true
}

// Stream ...
type Stream struct {
	Name     StreamName
	Metadata Metadata

	// Events are appended right after the stream is created
	Events []Event
}
