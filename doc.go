// Package tmcore parses IoT Thing Model documents into a validated,
// semantically-resolved in-memory model, tracking the byte offset of every
// parsed value so that downstream tooling can report line-located warnings
// and errors.
//
// Credit to https://github.com/santhosh-tekuri/jsonschema for the date/time
// format-validation logic adapted in formats.go.
package tmcore
