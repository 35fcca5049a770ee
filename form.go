package tmcore

// Recognized Form.ContentType values (§3 Form).
const (
	ContentTypeJSON   = "application/json"
	ContentTypeRaw    = "application/octet-stream"
	ContentTypeCustom = ""
)

// ContentKind is the serialization-format enum that is the sole hook
// between the core and a downstream target-language renderer (§9 Design
// Notes: "the core must not embed any target-language concepts").
type ContentKind int

const (
	ContentNone ContentKind = iota
	ContentJSON
	ContentRaw
	ContentCustom
)

func (k ContentKind) String() string {
	switch k {
	case ContentJSON:
		return "JSON"
	case ContentRaw:
		return "Raw"
	case ContentCustom:
		return "Custom"
	default:
		return "None"
	}
}

// contentKindOf classifies a raw contentType string, reporting false if it
// is not one of the three recognized values.
func contentKindOf(raw string) (ContentKind, bool) {
	switch raw {
	case ContentTypeJSON:
		return ContentJSON, true
	case ContentTypeRaw:
		return ContentRaw, true
	case ContentTypeCustom:
		return ContentCustom, true
	default:
		return ContentNone, false
	}
}

// FormKind classifies which affordance slot a Form array belongs to (§4.3.3,
// §4.3.4).
type FormKind int

const (
	KindRoot FormKind = iota
	KindAction
	KindProperty
	KindEvent
)

var rootOps = map[string]bool{"readAllProperties": true, "writeMultipleProperties": true, "subscribeAllEvents": true}
var propertyOps = map[string]bool{"readproperty": true, "writeproperty": true}
var actionOps = map[string]bool{"invokeaction": true}
var eventOps = map[string]bool{"subscribeevent": true}

func opsForKind(kind FormKind) map[string]bool {
	switch kind {
	case KindRoot:
		return rootOps
	case KindProperty:
		return propertyOps
	case KindAction:
		return actionOps
	default:
		return eventOps
	}
}

// Form is one entry of an affordance's (or the Thing's root) forms array
// (§3 Form).
type Form struct {
	PNM    *PropertyNameMap
	Offset int64

	Op                  *Array[Value[string]]
	ContentType         *Value[string]
	Topic               *Value[string]
	ServiceGroupId      *Value[string]
	HeaderCode          *Value[string]
	HeaderInfo          *Array[Value[*SchemaReference]]
	AdditionalResponses *Array[Value[*SchemaReference]]
}

func (f *Form) decodeTracked(ds *decodeState) error {
	offset, err := beginObject(ds)
	if err != nil {
		return err
	}
	f.Offset = offset
	f.PNM = newPropertyNameMap()

	for !atObjectEnd(ds) {
		key, err := readKey(ds, f.PNM)
		if err != nil {
			return err
		}
		switch key {
		case "op":
			v, err := deserializeArray(ds, func(ds *decodeState) (Value[string], error) {
				return decodeScalarValue[string](ds)
			})
			if err != nil {
				return err
			}
			f.Op = &v
		case "contentType":
			v, err := decodeScalarValue[string](ds)
			if err != nil {
				return err
			}
			f.ContentType = &v
		case "topic":
			v, err := decodeScalarValue[string](ds)
			if err != nil {
				return err
			}
			f.Topic = &v
		case "serviceGroupId":
			v, err := decodeScalarValue[string](ds)
			if err != nil {
				return err
			}
			f.ServiceGroupId = &v
		case "headerCode":
			v, err := decodeScalarValue[string](ds)
			if err != nil {
				return err
			}
			f.HeaderCode = &v
		case "headerInfo":
			v, err := deserializeArray(ds, decodeEntityValue[SchemaReference, *SchemaReference])
			if err != nil {
				return err
			}
			f.HeaderInfo = &v
		case "additionalResponses":
			v, err := deserializeArray(ds, decodeEntityValue[SchemaReference, *SchemaReference])
			if err != nil {
				return err
			}
			f.AdditionalResponses = &v
		default:
			if err := skipValue(ds); err != nil {
				return err
			}
		}
	}
	return endObject(ds)
}

// hasOp reports whether op is present in f.Op.
func (f *Form) hasOp(op string) bool {
	if f.Op == nil {
		return false
	}
	for _, v := range f.Op.Items {
		if v.Val == op {
			return true
		}
	}
	return false
}

// effectiveKind reclassifies a Root form per §4.3.4: read/write ops make it
// behave like a Property form for topic-token purposes, subscribe-all like
// an Event form.
func effectiveKind(f *Form, kind FormKind) FormKind {
	if kind != KindRoot {
		return kind
	}
	if f.hasOp("readAllProperties") || f.hasOp("writeMultipleProperties") {
		return KindProperty
	}
	if f.hasOp("subscribeAllEvents") {
		return KindEvent
	}
	return KindRoot
}
