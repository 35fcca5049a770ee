package tmcore

import (
	"path"
	"sort"
)

// registrationSite is one place a generated name or external reference was
// seen (§4.2).
type registrationSite struct {
	File string
	Line int
}

// topicRegistrationSite is one place a resolved MQTT topic was registered.
type topicRegistrationSite struct {
	File     string
	Line     int
	RawTopic string
	Topic    string
}

// referenceSite is one place an external reference (by canonical path) was
// seen, carrying the raw source string that produced it.
type referenceSite struct {
	File  string
	Line  int
	Raw   string
	Type  string // empty for an untyped reference
}

// Reporter accumulates cross-file registrations and writes diagnostics into
// an ErrorLog (§4.2). One Reporter is created per document; the driver
// merges Reporters across documents in a later, single-threaded phase if
// documents are processed in parallel (§5).
type Reporter struct {
	log *ErrorLog

	src       []byte
	lineStart []int64 // byte offset of the start of line i (0-indexed), built lazily

	file   string
	folder string // directory component of file, used to scope registerSchemaName's folder comparison

	names       map[string][]registrationSite
	schemaNames map[string][]registrationSite
	topics      map[string][]topicRegistrationSite
	references  map[string][]referenceSite
	typedRefs   map[string][]referenceSite // keyed by path+"\x00"+type
}

// NewReporter creates a Reporter for the named file and its source bytes,
// which the Reporter borrows for the lifetime of the document to resolve
// byte offsets to line numbers (§4.2, §5).
func NewReporter(file string, src []byte) *Reporter {
	return &Reporter{
		log:         NewErrorLog(),
		src:         src,
		file:        file,
		folder:      path.Dir(file),
		names:       make(map[string][]registrationSite),
		schemaNames: make(map[string][]registrationSite),
		topics:      make(map[string][]topicRegistrationSite),
		references:  make(map[string][]referenceSite),
		typedRefs:   make(map[string][]referenceSite),
	}
}

// Log returns the ErrorLog this Reporter writes into.
func (r *Reporter) Log() *ErrorLog { return r.log }

// LineFor maps a byte offset to its 1-based line number by scanning for
// newlines, building a line-start index on first use and caching it for the
// rest of the document's lifetime (§4.2, SPEC_FULL.md §12). Offset
// NoOffset, or any offset that was never resolved, returns 0 ("position
// unknown", §8).
func (r *Reporter) LineFor(offset int64) int {
	if offset < 0 {
		return 0
	}
	if r.lineStart == nil {
		r.buildLineIndex()
	}
	// Binary search for the last line whose start is <= offset.
	lo, hi := 0, len(r.lineStart)-1
	for lo < hi {
		mid := (lo + hi + 1) / 2
		if r.lineStart[mid] <= offset {
			lo = mid
		} else {
			hi = mid - 1
		}
	}
	return lo + 1
}

func (r *Reporter) buildLineIndex() {
	r.lineStart = []int64{0}
	for i, b := range r.src {
		if b == '\n' {
			r.lineStart = append(r.lineStart, int64(i+1))
		}
	}
}

// addError appends a diagnostic at the given byte offset, resolving it to a
// line number.
func (r *Reporter) addError(cond Condition, level Level, message string, offset int64) {
	r.log.add(ErrorRecord{
		Condition: cond,
		Level:     level,
		Message:   message,
		File:      r.file,
		Line:      r.LineFor(offset),
	})
}

// addErrorWithCrossRef appends a diagnostic that cites a conflicting prior
// site.
func (r *Reporter) addErrorWithCrossRef(cond Condition, level Level, message string, offset, crossOffset int64, crossKey string) {
	r.log.add(ErrorRecord{
		Condition:   cond,
		Level:       level,
		Message:     message,
		File:        r.file,
		Line:        r.LineFor(offset),
		CrossLine:   r.LineFor(crossOffset),
		CrossRefKey: crossKey,
	})
}

// addReferenceError reports a problem with an external reference (a
// dangling $ref-shaped Ref, §4.3.5) at the given offset.
func (r *Reporter) addReferenceError(message string, offset int64) {
	r.addError(ConditionItemNotFound, LevelError, message, offset)
}

// addReferenceTypeError reports a problem with a typed external reference
// (a SchemaReference whose RefType does not match, §3 Link).
func (r *Reporter) addReferenceTypeError(message string, offset int64) {
	r.addError(ConditionTypeMismatch, LevelError, message, offset)
}

// registerReferenceFromThing groups all sites that refer to a given
// external file by canonical path (§4.2).
func (r *Reporter) registerReferenceFromThing(canonicalPath string, offset int64, rawRefValue string) {
	r.references[canonicalPath] = append(r.references[canonicalPath], referenceSite{
		File: r.file, Line: r.LineFor(offset), Raw: rawRefValue,
	})
}

// registerTypedReferenceFromThing groups sites by (path, expected schema
// type) (§4.2).
func (r *Reporter) registerTypedReferenceFromThing(canonicalPath, typ string, offset int64, rawRefValue string) {
	key := canonicalPath + "\x00" + typ
	r.typedRefs[key] = append(r.typedRefs[key], referenceSite{
		File: r.file, Line: r.LineFor(offset), Raw: rawRefValue, Type: typ,
	})
}

// registerNameInThing records a generated name seen inside a Thing (§4.2).
func (r *Reporter) registerNameInThing(generatedName string, offset int64) {
	r.names[generatedName] = append(r.names[generatedName], registrationSite{File: r.file, Line: r.LineFor(offset)})
}

// registerSchemaName records a generated name emitted by a schema. Names
// merge with the Thing name set when folder equals defaultFolder, so that
// CheckForDuplicatesInThings can detect collisions across the Thing and
// schema namespaces (§4.2).
func (r *Reporter) registerSchemaName(name string, folder, defaultFolder string, offset int64) {
	site := registrationSite{File: r.file, Line: r.LineFor(offset)}
	r.schemaNames[name] = append(r.schemaNames[name], site)
	if folder == defaultFolder {
		r.names[name] = append(r.names[name], site)
	}
}

// registerSchemaNameInDefaultFolder registers a schemaDefinitions-derived
// generated name as belonging to this Reporter's own folder. A single
// document is its own default folder, so the name always merges into the
// Thing name set here; a driver merging several folders' Reporters calls
// registerSchemaName directly with the folders it is comparing.
func (r *Reporter) registerSchemaNameInDefaultFolder(name string, offset int64) {
	r.registerSchemaName(name, r.folder, r.folder, offset)
}

// registerTopicInThing records an MQTT topic seen in a form, after token
// substitution (§4.2, §4.3.4).
func (r *Reporter) registerTopicInThing(resolvedTopic string, offset int64, rawTopic string) {
	r.topics[resolvedTopic] = append(r.topics[resolvedTopic], topicRegistrationSite{
		File: r.file, Line: r.LineFor(offset), RawTopic: rawTopic, Topic: resolvedTopic,
	})
}

// RegisteredTopics returns every resolved topic registered so far, sorted,
// for deterministic test assertions and downstream consumption (§6,
// "Output: Registrations").
func (r *Reporter) RegisteredTopics() []string {
	out := make([]string, 0, len(r.topics))
	for t := range r.topics {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

// RegisteredNames returns every generated name registered inside Things,
// sorted.
func (r *Reporter) RegisteredNames() []string {
	out := make([]string, 0, len(r.names))
	for n := range r.names {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}
