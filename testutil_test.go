package tmcore

import "testing"

// minimalContext is a valid @context array carrying both the WoT TD remote
// URI and the recognized protocol prefix (§4.3.1), the baseline every
// end-to-end test builds its document on top of.
const minimalContext = `["https://www.w3.org/2022/wot/td/v1.1",{"mqv":"https://raw.githubusercontent.com/w3c/wot-thing-description/main/context/mqtt-protocol.jsonld"}]`

const platformContextEntry = `{"mqp":"https://raw.githubusercontent.com/w3c/wot-thing-description/main/context/mqtt-platform.jsonld"}`

// parseAndValidate decodes src and, on successful decode, runs the full
// validator, returning the Thing, the Reporter it wrote into, and whether
// Validate reported the document as structurally+cross-form valid.
func parseAndValidate(t *testing.T, src string) (*Thing, *Reporter, bool) {
	t.Helper()
	thing, fatal := Parse("t.tm.json", []byte(src))
	if fatal != nil {
		return nil, nil, false
	}
	r := NewReporter("t.tm.json", []byte(src))
	ok := Validate(thing, r)
	return thing, r, ok
}
