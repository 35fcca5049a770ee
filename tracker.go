package tmcore

import (
	"bytes"
	"fmt"
	"io"

	"github.com/go-json-experiment/json/jsontext"
)

// NoOffset is the sentinel byte offset used when a tracker was not built
// from source bytes (§3, "Invariant: every tracker offset is a valid byte
// index ... or −1").
const NoOffset int64 = -1

// TrackedDecoder is implemented by entity types (Thing, Link, Form, ...) so
// that Value[T], Array[T], and Map[T] can deserialize them generically.
// Implementations read exactly one JSON value starting at the decoder's
// current position.
type TrackedDecoder interface {
	decodeTracked(ds *decodeState) error
}

// decodeState carries the live token-stream decoder plus the retained byte
// buffer for later offset bookkeeping. One decodeState is created per
// document and threaded through every tracker's deserialize call.
type decodeState struct {
	dec *jsontext.Decoder
	src []byte
}

func newDecodeState(src []byte) *decodeState {
	return &decodeState{dec: jsontext.NewDecoder(bytes.NewReader(src)), src: src}
}

// Value wraps a single scalar or entity value together with the byte offset
// of its starting token (§3).
type Value[T any] struct {
	Val    T
	Offset int64
}

// Array wraps an ordered sequence of values, preserving source order. Offset
// is the byte position of the opening '['.
type Array[T any] struct {
	Items  []T
	Offset int64
}

// Map wraps an insertion-ordered table of values. Offset is the byte
// position of the opening '{'. Keys is the insertion order of the keys as
// seen in the source, needed because Go maps do not preserve order.
type Map[T any] struct {
	Items  map[string]T
	Keys   []string
	Offset int64
}

// Get returns the value for key and whether it was present.
func (m *Map[T]) Get(key string) (T, bool) {
	v, ok := m.Items[key]
	return v, ok
}

// PropertyNameMap records, for one decoded JSON object, every key seen and
// the byte offset at which that key's name token began (§3, §4.1). The
// Validator consults it to flag unknown/unsupported keys with an accurate
// citation, since the entity's typed fields no longer carry that
// information once a key has been dispatched and discarded.
type PropertyNameMap struct {
	Offsets map[string]int64
	Order   []string
}

func newPropertyNameMap() *PropertyNameMap {
	return &PropertyNameMap{Offsets: make(map[string]int64)}
}

func (p *PropertyNameMap) record(key string, offset int64) {
	if _, seen := p.Offsets[key]; !seen {
		p.Order = append(p.Order, key)
	}
	p.Offsets[key] = offset
}

// Has reports whether key was present in the source object.
func (p *PropertyNameMap) Has(key string) bool {
	_, ok := p.Offsets[key]
	return ok
}

// OffsetOf returns the byte offset of key's name token, or NoOffset if key
// was never seen (§8: "PropertyNameMap[o][k] equals k's actual source byte
// offset").
func (p *PropertyNameMap) OffsetOf(key string) int64 {
	if off, ok := p.Offsets[key]; ok {
		return off
	}
	return NoOffset
}

// decodeScalarValue reads a string, float64, or bool token and stores it in
// a Value[T]. Callers use it for the three scalar tracker instantiations
// named in §3.
func decodeScalarValue[T string | float64 | bool](ds *decodeState) (Value[T], error) {
	offset := ds.dec.InputOffset()
	tok, err := ds.dec.ReadToken()
	if err != nil {
		return Value[T]{}, fmt.Errorf("%w: %v", ErrMalformedJSON, err)
	}

	var zero T
	switch any(zero).(type) {
	case string:
		if tok.Kind() != '"' {
			return Value[T]{}, fmt.Errorf("%w: expected string, got %q", ErrTypeMismatch, string(tok.Kind()))
		}
		return Value[T]{Val: any(tok.String()).(T), Offset: offset}, nil
	case float64:
		if tok.Kind() != '0' {
			return Value[T]{}, fmt.Errorf("%w: expected number, got %q", ErrTypeMismatch, string(tok.Kind()))
		}
		return Value[T]{Val: any(tok.Float()).(T), Offset: offset}, nil
	case bool:
		if tok.Kind() != 't' && tok.Kind() != 'f' {
			return Value[T]{}, fmt.Errorf("%w: expected bool, got %q", ErrTypeMismatch, string(tok.Kind()))
		}
		return Value[T]{Val: any(tok.Bool()).(T), Offset: offset}, nil
	default:
		return Value[T]{}, fmt.Errorf("%w: unsupported scalar type", ErrTypeMismatch)
	}
}

// decodeEntityValue reads one JSON value into a freshly allocated *E and
// wraps it in a Value[*E]. E must implement TrackedDecoder via pointer
// receiver.
func decodeEntityValue[E any, PE interface {
	*E
	TrackedDecoder
}](ds *decodeState) (Value[PE], error) {
	offset := ds.dec.InputOffset()
	entity := PE(new(E))
	if err := entity.decodeTracked(ds); err != nil {
		return Value[PE]{}, err
	}
	return Value[PE]{Val: entity, Offset: offset}, nil
}

// decodeFreeform reads an arbitrary JSON value (used for the "Object
// (free-form)" arm of Value[T] and for the free-form JSON literal tagged
// sum described in §9, e.g. DataSchema "const").
func decodeFreeform(ds *decodeState) (any, error) {
	return decodeFreeformValue(ds.dec)
}

func decodeFreeformValue(dec *jsontext.Decoder) (any, error) {
	tok, err := dec.ReadToken()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedJSON, err)
	}
	switch tok.Kind() {
	case 'n':
		return nil, nil
	case 't', 'f':
		return tok.Bool(), nil
	case '0':
		return tok.Float(), nil
	case '"':
		return tok.String(), nil
	case '[':
		var items []any
		for dec.PeekKind() != ']' {
			v, err := decodeFreeformValue(dec)
			if err != nil {
				return nil, err
			}
			items = append(items, v)
		}
		if _, err := dec.ReadToken(); err != nil { // consume ']'
			return nil, fmt.Errorf("%w: %v", ErrMalformedJSON, err)
		}
		return items, nil
	case '{':
		m := make(map[string]any)
		seen := make(map[string]bool)
		for dec.PeekKind() != '}' {
			keyTok, err := dec.ReadToken()
			if err != nil {
				return nil, fmt.Errorf("%w: %v", ErrMalformedJSON, err)
			}
			key := keyTok.String()
			if seen[key] {
				return nil, fmt.Errorf("%w: %q", ErrDuplicateKey, key)
			}
			seen[key] = true
			v, err := decodeFreeformValue(dec)
			if err != nil {
				return nil, err
			}
			m[key] = v
		}
		if _, err := dec.ReadToken(); err != nil { // consume '}'
			return nil, fmt.Errorf("%w: %v", ErrMalformedJSON, err)
		}
		return m, nil
	default:
		return nil, fmt.Errorf("%w: unexpected token kind %q", ErrUnexpectedToken, string(tok.Kind()))
	}
}

// deserializeArray reads an ordered sequence; the reader must be at '['
// (§4.1).
func deserializeArray[T any](ds *decodeState, elem func(*decodeState) (T, error)) (Array[T], error) {
	offset := ds.dec.InputOffset()
	if ds.dec.PeekKind() != '[' {
		return Array[T]{}, fmt.Errorf("%w: expected '[' for array", ErrUnexpectedToken)
	}
	if _, err := ds.dec.ReadToken(); err != nil {
		return Array[T]{}, fmt.Errorf("%w: %v", ErrMalformedJSON, err)
	}

	var items []T
	for ds.dec.PeekKind() != ']' {
		v, err := elem(ds)
		if err != nil {
			return Array[T]{}, err
		}
		items = append(items, v)
	}
	if _, err := ds.dec.ReadToken(); err != nil { // consume ']'
		return Array[T]{}, fmt.Errorf("%w: %v", ErrMalformedJSON, err)
	}
	return Array[T]{Items: items, Offset: offset}, nil
}

// deserializeMap reads a keyed table; the reader must be at '{' (§4.1).
// Duplicate keys are a fatal ErrDuplicateKey.
func deserializeMap[T any](ds *decodeState, elem func(*decodeState) (T, error)) (Map[T], error) {
	offset := ds.dec.InputOffset()
	if ds.dec.PeekKind() != '{' {
		return Map[T]{}, fmt.Errorf("%w: expected '{' for map", ErrUnexpectedToken)
	}
	if _, err := ds.dec.ReadToken(); err != nil {
		return Map[T]{}, fmt.Errorf("%w: %v", ErrMalformedJSON, err)
	}

	items := make(map[string]T)
	var keys []string
	for ds.dec.PeekKind() != '}' {
		keyTok, err := ds.dec.ReadToken()
		if err != nil {
			return Map[T]{}, fmt.Errorf("%w: %v", ErrMalformedJSON, err)
		}
		key := keyTok.String()
		if _, dup := items[key]; dup {
			return Map[T]{}, fmt.Errorf("%w: %q at offset %d", ErrDuplicateKey, key, ds.dec.InputOffset())
		}
		v, err := elem(ds)
		if err != nil {
			return Map[T]{}, err
		}
		items[key] = v
		keys = append(keys, key)
	}
	if _, err := ds.dec.ReadToken(); err != nil { // consume '}'
		return Map[T]{}, fmt.Errorf("%w: %v", ErrMalformedJSON, err)
	}
	return Map[T]{Items: items, Keys: keys, Offset: offset}, nil
}

// beginObject expects '{' and returns the object's starting offset, ready
// for a caller to loop reading key tokens itself (used by entity
// decodeTracked methods that dispatch per-key rather than going through
// deserializeMap).
func beginObject(ds *decodeState) (int64, error) {
	offset := ds.dec.InputOffset()
	if ds.dec.PeekKind() != '{' {
		return 0, fmt.Errorf("%w: expected '{' for object", ErrUnexpectedToken)
	}
	if _, err := ds.dec.ReadToken(); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrMalformedJSON, err)
	}
	return offset, nil
}

// atObjectEnd reports whether the decoder is positioned at the closing '}'.
func atObjectEnd(ds *decodeState) bool {
	return ds.dec.PeekKind() == '}'
}

// readKey reads one object-member key token and its starting offset,
// recording both into pnm (duplicate keys are fatal, §4.1).
func readKey(ds *decodeState, pnm *PropertyNameMap) (string, error) {
	offset := ds.dec.InputOffset()
	tok, err := ds.dec.ReadToken()
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrMalformedJSON, err)
	}
	key := tok.String()
	if pnm.Has(key) {
		return "", fmt.Errorf("%w: %q at offset %d", ErrDuplicateKey, key, offset)
	}
	pnm.record(key, offset)
	return key, nil
}

// endObject consumes the closing '}'.
func endObject(ds *decodeState) error {
	if _, err := ds.dec.ReadToken(); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedJSON, err)
	}
	return nil
}

// skipValue discards the value at the current position, used for unknown
// keys which the Decoder ignores and the Validator later flags via the
// PropertyNameMap (§4.1).
func skipValue(ds *decodeState) error {
	if err := ds.dec.SkipValue(); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedJSON, err)
	}
	return nil
}

var _ io.Reader = (*bytes.Reader)(nil)
