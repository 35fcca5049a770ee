package tmcore

import "errors"

// === Decoding Related Errors ===
// These are Go-level failures returned by the position-tracking decoder
// (§4.1) before a document reaches the entity model. They are distinct from
// ErrorRecord (§4.2): an error here means the byte stream could not be
// turned into trackers at all.
var (
	// ErrUnexpectedToken is returned when the decoder expects one JSON token
	// kind and finds another (e.g. expected '{' but found '[').
	ErrUnexpectedToken = errors.New("unexpected json token")

	// ErrDuplicateKey is returned when a JSON object contains the same key
	// twice. Always fatal per §4.1.
	ErrDuplicateKey = errors.New("duplicate key in json object")

	// ErrTypeMismatch is returned when a key's value does not match the
	// type expected by its typed child decoder.
	ErrTypeMismatch = errors.New("json value type mismatch")

	// ErrMalformedJSON is returned when the underlying token stream itself
	// is not well-formed JSON.
	ErrMalformedJSON = errors.New("malformed json")
)

// === Name Utility Related Errors ===
var (
	// ErrEmptyIdentifier is returned when CodeName is asked to decompose an
	// empty identifier.
	ErrEmptyIdentifier = errors.New("empty identifier")

	// ErrUnknownTemplateFunction is returned when a naming policy
	// references a template-family entry that is not in the closed set
	// (§4.4).
	ErrUnknownTemplateFunction = errors.New("unknown naming template function")

	// ErrInvalidNameRule is returned when a naming policy regex->template
	// rule fails to compile.
	ErrInvalidNameRule = errors.New("invalid naming rule")
)

// === Naming Policy Configuration Related Errors ===
var (
	// ErrNamingPolicyDecode is returned when naming policy bytes cannot be
	// decoded as JSON or YAML.
	ErrNamingPolicyDecode = errors.New("naming policy decode failed")

	// ErrUnknownNamingPolicyKey is returned when a naming policy document's
	// "templates" object names a template outside the closed set (§4.4, §6);
	// it is not returned for other unrecognized keys.
	ErrUnknownNamingPolicyKey = errors.New("unknown naming policy key")
)
