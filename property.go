package tmcore

// Property is one entry of Thing.Properties (§3 Property). It embeds the
// same common/variant fields as DataSchema (a Property is itself a
// DataSchema with affordance-level extras) by carrying an anonymous
// DataSchema rather than duplicating its key dispatch.
type Property struct {
	DataSchema

	ReadOnly    *Value[bool]
	Contains    *Array[Value[string]] // names of this Thing's Properties/Events this property contains
	ContainedIn *Array[Value[string]] // names of this Thing's Properties/Events that contain this property
	Forms       *Array[Value[*Form]]
}

// IsReadOnly reports the property's read-only declaration, defaulting to
// false when absent (§4.3.4 topic expansion).
func (p *Property) IsReadOnly() bool { return p.ReadOnly != nil && p.ReadOnly.Val }

func (p *Property) decodeTracked(ds *decodeState) error {
	offset, err := beginObject(ds)
	if err != nil {
		return err
	}
	p.Offset = offset
	p.PNM = newPropertyNameMap()

	for !atObjectEnd(ds) {
		key, err := readKey(ds, p.PNM)
		if err != nil {
			return err
		}
		switch key {
		case "readOnly":
			v, err := decodeScalarValue[bool](ds)
			if err != nil {
				return err
			}
			p.ReadOnly = &v
		case "contains":
			v, err := deserializeArray(ds, func(ds *decodeState) (Value[string], error) {
				return decodeScalarValue[string](ds)
			})
			if err != nil {
				return err
			}
			p.Contains = &v
		case "containedIn":
			v, err := deserializeArray(ds, func(ds *decodeState) (Value[string], error) {
				return decodeScalarValue[string](ds)
			})
			if err != nil {
				return err
			}
			p.ContainedIn = &v
		case "forms":
			v, err := deserializeArray(ds, decodeEntityValue[Form, *Form])
			if err != nil {
				return err
			}
			p.Forms = &v
		default:
			if err := p.decodeDataSchemaKey(ds, key); err != nil {
				return err
			}
		}
	}
	return endObject(ds)
}
