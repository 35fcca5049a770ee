package tmcore

// ConstValue is the free-form JSON literal tagged sum used for DataSchema
// "const" (§9 Design Notes): null, bool, number (float64), string, array of
// same, or map of same, with the offset of the literal's own starting token
// preserved so that per-property const mismatches can cite exact locations
// (§3 DataSchema invariants).
type ConstValue struct {
	Raw    any // nil, bool, float64, string, []any, or map[string]any
	Offset int64
}

func decodeConstValue(ds *decodeState) (ConstValue, error) {
	offset := ds.dec.InputOffset()
	v, err := decodeFreeform(ds)
	if err != nil {
		return ConstValue{}, err
	}
	return ConstValue{Raw: v, Offset: offset}, nil
}

// Kind classifies the const literal's JSON kind, used by the object-with-const
// and per-type-const checks in §4.3.5.
func (c ConstValue) Kind() string {
	switch c.Raw.(type) {
	case nil:
		return "null"
	case bool:
		return "boolean"
	case float64:
		return "number"
	case string:
		return "string"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	default:
		return "unknown"
	}
}

// matchesSchemaType reports whether the const literal's JSON kind is
// compatible with schemaType, allowing "integer" to accept whole-valued
// numbers (§4.3.5: "const values must type-check against the schema").
func (c ConstValue) matchesSchemaType(schemaType string) bool {
	switch schemaType {
	case "integer":
		n, ok := c.Raw.(float64)
		return ok && n == float64(int64(n))
	case "number":
		_, ok := c.Raw.(float64)
		return ok
	case "string":
		_, ok := c.Raw.(string)
		return ok
	case "boolean":
		_, ok := c.Raw.(bool)
		return ok
	case "object":
		_, ok := c.Raw.(map[string]any)
		return ok
	case "array":
		_, ok := c.Raw.([]any)
		return ok
	case "null":
		return c.Raw == nil
	default:
		return false
	}
}
