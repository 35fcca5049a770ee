package tmcore

// SchemaReference is one entry of a Form's HeaderInfo or AdditionalResponses
// array: a pointer by name into the enclosing Thing's SchemaDefinitions,
// with WoT TD's "success" flag carried along so resolveFormInfo can tell an
// error response from a success response (§4.5, §4.3.3).
type SchemaReference struct {
	PNM    *PropertyNameMap
	Offset int64

	Schema      Value[string]
	ContentType *Value[string]
	Success     *Value[bool]
}

// IsSuccess reports the reference's declared success flag, defaulting to
// true when absent per WoT TD's AdditionalExpectedResponse convention.
func (s *SchemaReference) IsSuccess() bool {
	return s.Success == nil || s.Success.Val
}

func (s *SchemaReference) decodeTracked(ds *decodeState) error {
	offset, err := beginObject(ds)
	if err != nil {
		return err
	}
	s.Offset = offset
	s.PNM = newPropertyNameMap()

	for !atObjectEnd(ds) {
		key, err := readKey(ds, s.PNM)
		if err != nil {
			return err
		}
		switch key {
		case "schema":
			if s.Schema, err = decodeScalarValue[string](ds); err != nil {
				return err
			}
		case "contentType":
			v, err := decodeScalarValue[string](ds)
			if err != nil {
				return err
			}
			s.ContentType = &v
		case "success":
			v, err := decodeScalarValue[bool](ds)
			if err != nil {
				return err
			}
			s.Success = &v
		default:
			if err := skipValue(ds); err != nil {
				return err
			}
		}
	}
	return endObject(ds)
}
