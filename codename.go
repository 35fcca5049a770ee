package tmcore

import "strings"

// CodeName decomposes an identifier into lowercase word components and
// renders it on demand in four casings (§4.4).
type CodeName struct {
	words []string
}

// NewCodeName decomposes identifier by splitting on underscore and at each
// lower→upper boundary, lowercasing each component (§4.4, SPEC_FULL.md
// §12). A run of consecutive uppercase letters is treated as a single word,
// broken only before a trailing capitalized word, so "HTTPCode" decomposes
// to {"http", "code"} rather than {"h","t","t","p","code"}.
func NewCodeName(identifier string) (CodeName, error) {
	if identifier == "" {
		return CodeName{}, ErrEmptyIdentifier
	}

	var words []string
	for _, underscoreChunk := range strings.Split(identifier, "_") {
		for _, w := range splitOnCase(underscoreChunk) {
			if w != "" {
				words = append(words, strings.ToLower(w))
			}
		}
	}

	if len(words) == 0 {
		return CodeName{}, ErrEmptyIdentifier
	}

	return CodeName{words: words}, nil
}

// splitOnCase splits s at each lower→upper boundary and before a trailing
// capitalized word that follows a run of uppercase letters (the acronym
// rule described in SPEC_FULL.md §12, e.g. "HTTPCode" -> ["HTTP", "Code"]).
func splitOnCase(s string) []string {
	if s == "" {
		return nil
	}
	runes := []rune(s)
	var words []string
	start := 0
	for i := 1; i < len(runes); i++ {
		prev, cur := runes[i-1], runes[i]
		boundary := false
		if isLower(prev) && isUpper(cur) {
			boundary = true
		} else if isUpper(prev) && isUpper(cur) && i+1 < len(runes) && isLower(runes[i+1]) {
			boundary = true
		}
		if boundary {
			words = append(words, string(runes[start:i]))
			start = i
		}
	}
	words = append(words, string(runes[start:]))
	return words
}

func isUpper(r rune) bool { return r >= 'A' && r <= 'Z' }
func isLower(r rune) bool { return r >= 'a' && r <= 'z' }

// Lower renders the identifier as one concatenated lowercase word, e.g.
// "my_device_id" -> "mydeviceid".
func (c CodeName) Lower() string {
	return strings.Join(c.words, "")
}

// Pascal renders the identifier in PascalCase, e.g. "my_device_id" ->
// "MyDeviceId".
func (c CodeName) Pascal() string {
	var b strings.Builder
	for _, w := range c.words {
		b.WriteString(capitalize(w))
	}
	return b.String()
}

// Camel renders the identifier in camelCase, e.g. "my_device_id" ->
// "myDeviceId".
func (c CodeName) Camel() string {
	if len(c.words) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString(c.words[0])
	for _, w := range c.words[1:] {
		b.WriteString(capitalize(w))
	}
	return b.String()
}

// Snake renders the identifier in snake_case, e.g. "MyDeviceId" ->
// "my_device_id".
func (c CodeName) Snake() string {
	return strings.Join(c.words, "_")
}

func capitalize(w string) string {
	if w == "" {
		return ""
	}
	return strings.ToUpper(w[:1]) + w[1:]
}

// extendStyle is the casing Extend renders an extended name in: snake for an
// original identifier that used underscore separation, Pascal otherwise
// (§4.4).
type extendStyle int

const (
	extendStylePascal extendStyle = iota
	extendStyleSnake
)

// Extend appends up to four suffixes and an optional prefix to the name. If
// the original identifier had underscores (style == extendStyleSnake), the
// extension preserves snake style; otherwise it preserves Pascal style
// (§4.4: "if the original had underscores, extension preserves snake
// style").
func (c CodeName) Extend(style extendStyle, prefix string, suffixes ...string) (string, error) {
	if len(suffixes) > 4 {
		return "", ErrInvalidNameRule
	}

	parts := make([]string, 0, len(suffixes)+2)
	if prefix != "" {
		parts = append(parts, prefix)
	}
	parts = append(parts, c.words...)
	for _, s := range suffixes {
		if s != "" {
			parts = append(parts, strings.ToLower(s))
		}
	}

	switch style {
	case extendStyleSnake:
		return strings.Join(parts, "_"), nil
	default:
		var b strings.Builder
		for _, p := range parts {
			b.WriteString(capitalize(p))
		}
		return b.String(), nil
	}
}
