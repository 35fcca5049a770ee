package tmcore

// Action is one entry of Thing.Actions (§3 Action).
type Action struct {
	PNM    *PropertyNameMap
	Offset int64

	Title       *Value[string]
	Description *Value[string]
	Input       *Value[*DataSchema]
	Output      *Value[*DataSchema]
	Idempotent  *Value[bool]
	Safe        *Value[bool]
	Forms       *Array[Value[*Form]]
	Namespace   *Value[string]
	MemberOf    *Value[string]
}

func (a *Action) decodeTracked(ds *decodeState) error {
	offset, err := beginObject(ds)
	if err != nil {
		return err
	}
	a.Offset = offset
	a.PNM = newPropertyNameMap()

	for !atObjectEnd(ds) {
		key, err := readKey(ds, a.PNM)
		if err != nil {
			return err
		}
		switch key {
		case "title":
			v, err := decodeScalarValue[string](ds)
			if err != nil {
				return err
			}
			a.Title = &v
		case "description":
			v, err := decodeScalarValue[string](ds)
			if err != nil {
				return err
			}
			a.Description = &v
		case "input":
			v, err := decodeEntityValue[DataSchema, *DataSchema](ds)
			if err != nil {
				return err
			}
			a.Input = &v
		case "output":
			v, err := decodeEntityValue[DataSchema, *DataSchema](ds)
			if err != nil {
				return err
			}
			a.Output = &v
		case "idempotent":
			v, err := decodeScalarValue[bool](ds)
			if err != nil {
				return err
			}
			a.Idempotent = &v
		case "safe":
			v, err := decodeScalarValue[bool](ds)
			if err != nil {
				return err
			}
			a.Safe = &v
		case "forms":
			v, err := deserializeArray(ds, decodeEntityValue[Form, *Form])
			if err != nil {
				return err
			}
			a.Forms = &v
		case "namespace":
			v, err := decodeScalarValue[string](ds)
			if err != nil {
				return err
			}
			a.Namespace = &v
		case "memberOf":
			v, err := decodeScalarValue[string](ds)
			if err != nil {
				return err
			}
			a.MemberOf = &v
		default:
			if err := skipValue(ds); err != nil {
				return err
			}
		}
	}
	return endObject(ds)
}
