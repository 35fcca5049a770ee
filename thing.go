package tmcore

import "fmt"

// Thing is the root entity of a parsed Thing Model document (§3 Thing).
type Thing struct {
	PNM    *PropertyNameMap
	Offset int64

	Context     Array[Value[*ContextSpecifier]]
	Type        Value[string]
	Title       Value[string]
	Description *Value[string]

	Links             *Array[Value[*Link]]
	SchemaDefinitions *Map[Value[*DataSchema]]
	Forms             *Array[Value[*Form]]
	Actions           *Map[Value[*Action]]
	Properties        *Map[Value[*Property]]
	Events            *Map[Value[*Event]]

	IsComposite *Value[bool]
	IsEvent     *Value[bool]
	TypeRef     *Value[string]
}

const thingModelType = "tm:ThingModel"

func (t *Thing) decodeTracked(ds *decodeState) error {
	offset, err := beginObject(ds)
	if err != nil {
		return err
	}
	t.Offset = offset
	t.PNM = newPropertyNameMap()

	for !atObjectEnd(ds) {
		key, err := readKey(ds, t.PNM)
		if err != nil {
			return err
		}
		switch key {
		case "@context":
			v, err := deserializeArray(ds, decodeEntityValue[ContextSpecifier, *ContextSpecifier])
			if err != nil {
				return err
			}
			t.Context = v
		case "@type":
			if t.Type, err = decodeScalarValue[string](ds); err != nil {
				return err
			}
		case "title":
			if t.Title, err = decodeScalarValue[string](ds); err != nil {
				return err
			}
		case "description":
			v, err := decodeScalarValue[string](ds)
			if err != nil {
				return err
			}
			t.Description = &v
		case "links":
			v, err := deserializeArray(ds, decodeEntityValue[Link, *Link])
			if err != nil {
				return err
			}
			t.Links = &v
		case "schemaDefinitions":
			m, err := deserializeMap(ds, decodeEntityValue[DataSchema, *DataSchema])
			if err != nil {
				return err
			}
			t.SchemaDefinitions = &m
		case "forms":
			v, err := deserializeArray(ds, decodeEntityValue[Form, *Form])
			if err != nil {
				return err
			}
			t.Forms = &v
		case "actions":
			m, err := deserializeMap(ds, decodeEntityValue[Action, *Action])
			if err != nil {
				return err
			}
			t.Actions = &m
		case "properties":
			m, err := deserializeMap(ds, decodeEntityValue[Property, *Property])
			if err != nil {
				return err
			}
			t.Properties = &m
		case "events":
			m, err := deserializeMap(ds, decodeEntityValue[Event, *Event])
			if err != nil {
				return err
			}
			t.Events = &m
		case "isComposite":
			v, err := decodeScalarValue[bool](ds)
			if err != nil {
				return err
			}
			t.IsComposite = &v
		case "isEvent":
			v, err := decodeScalarValue[bool](ds)
			if err != nil {
				return err
			}
			t.IsEvent = &v
		case "typeRef":
			v, err := decodeScalarValue[string](ds)
			if err != nil {
				return err
			}
			t.TypeRef = &v
		default:
			if err := skipValue(ds); err != nil {
				return err
			}
		}
	}
	return endObject(ds)
}

// Parse decodes one Thing Model document from src, reporting a FatalError
// through the returned ErrorRecord when the bytes are not well-formed JSON
// or violate a decode-time invariant (duplicate key, type mismatch). On
// success the second return value is nil (§6 Core API:
// "parse(bytes) → (Thing, PropertyNameMap) | FatalErrorRecord").
func Parse(file string, src []byte) (*Thing, *ErrorRecord) {
	ds := newDecodeState(src)
	thing := &Thing{}
	if err := thing.decodeTracked(ds); err != nil {
		offset := ds.dec.InputOffset()
		rec := &ErrorRecord{
			Condition: ConditionJSONInvalid,
			Level:     LevelFatal,
			Message:   fmt.Sprintf("malformed thing model: %v", err),
			File:      file,
			Line:      NewReporter(file, src).LineFor(offset),
		}
		return nil, rec
	}
	return thing, nil
}
