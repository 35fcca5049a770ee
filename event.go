package tmcore

// Event is one entry of Thing.Events (§3 Event).
type Event struct {
	PNM    *PropertyNameMap
	Offset int64

	Title       *Value[string]
	Description *Value[string]
	Data        *Value[*DataSchema]
	Forms       *Array[Value[*Form]]
	Contains    *Array[Value[string]]
	ContainedIn *Array[Value[string]]
}

func (e *Event) decodeTracked(ds *decodeState) error {
	offset, err := beginObject(ds)
	if err != nil {
		return err
	}
	e.Offset = offset
	e.PNM = newPropertyNameMap()

	for !atObjectEnd(ds) {
		key, err := readKey(ds, e.PNM)
		if err != nil {
			return err
		}
		switch key {
		case "title":
			v, err := decodeScalarValue[string](ds)
			if err != nil {
				return err
			}
			e.Title = &v
		case "description":
			v, err := decodeScalarValue[string](ds)
			if err != nil {
				return err
			}
			e.Description = &v
		case "data":
			v, err := decodeEntityValue[DataSchema, *DataSchema](ds)
			if err != nil {
				return err
			}
			e.Data = &v
		case "forms":
			v, err := deserializeArray(ds, decodeEntityValue[Form, *Form])
			if err != nil {
				return err
			}
			e.Forms = &v
		case "contains":
			v, err := deserializeArray(ds, func(ds *decodeState) (Value[string], error) {
				return decodeScalarValue[string](ds)
			})
			if err != nil {
				return err
			}
			e.Contains = &v
		case "containedIn":
			v, err := deserializeArray(ds, func(ds *decodeState) (Value[string], error) {
				return decodeScalarValue[string](ds)
			})
			if err != nil {
				return err
			}
			e.ContainedIn = &v
		default:
			if err := skipValue(ds); err != nil {
				return err
			}
		}
	}
	return endObject(ds)
}
