package tmcore

// Recognized DataSchema "type" values (§3 DataSchema).
const (
	SchemaObject  = "object"
	SchemaArray   = "array"
	SchemaString  = "string"
	SchemaNumber  = "number"
	SchemaInteger = "integer"
	SchemaBoolean = "boolean"
	SchemaNull    = "null"
)

var dataSchemaTypes = map[string]bool{
	SchemaObject: true, SchemaArray: true, SchemaString: true,
	SchemaNumber: true, SchemaInteger: true, SchemaBoolean: true, SchemaNull: true,
}

// DataSchema is the recursive polymorphic entity of §3. Rather than
// modeling each "type" variant as a distinct Go type (which would make the
// recursive properties/items/additionalProperties graph awkward to express
// without an interface-per-node), it carries a shared common-attributes
// record plus every variant's payload fields, following the tagged-sum
// design in §9: exactly one of Ref or Type is set, and each variant's own
// validator in dataschema_validate.go only reads the fields its variant
// admits.
type DataSchema struct {
	PNM    *PropertyNameMap
	Offset int64

	Title       *Value[string]
	Description *Value[string]
	Ref         *Value[string]
	TypeRef     *Value[string]
	Type        Value[string] // empty when Ref is set

	Const *ConstValue

	// object variant
	Properties           *Map[Value[*DataSchema]]
	AdditionalProperties *Value[*DataSchema]
	Required             *Array[Value[string]]
	ErrorMessage         *Value[string]

	// array variant
	Items *Value[*DataSchema]

	// string variant
	Format          *Value[string]
	Pattern         *Value[string]
	ContentEncoding *Value[string]
	Enum            *Array[Value[string]]

	// number / integer variant
	Minimum       *Value[float64]
	Maximum       *Value[float64]
	ScaleFactor   *Value[float64]
	DecimalPlaces *Value[float64]
}

func (d *DataSchema) decodeTracked(ds *decodeState) error {
	offset, err := beginObject(ds)
	if err != nil {
		return err
	}
	d.Offset = offset
	d.PNM = newPropertyNameMap()

	for !atObjectEnd(ds) {
		key, err := readKey(ds, d.PNM)
		if err != nil {
			return err
		}
		if err := d.decodeDataSchemaKey(ds, key); err != nil {
			return err
		}
	}
	return endObject(ds)
}

// decodeDataSchemaKey dispatches one already-read object key into d's
// fields. Shared with Property, which embeds DataSchema and extends this
// same key set with its own affordance-level keys.
func (d *DataSchema) decodeDataSchemaKey(ds *decodeState, key string) error {
	switch key {
	case "title":
		v, err := decodeScalarValue[string](ds)
		if err != nil {
			return err
		}
		d.Title = &v
	case "description":
		v, err := decodeScalarValue[string](ds)
		if err != nil {
			return err
		}
		d.Description = &v
	case "ref":
		v, err := decodeScalarValue[string](ds)
		if err != nil {
			return err
		}
		d.Ref = &v
	case "typeRef":
		v, err := decodeScalarValue[string](ds)
		if err != nil {
			return err
		}
		d.TypeRef = &v
	case "type":
		v, err := decodeScalarValue[string](ds)
		if err != nil {
			return err
		}
		d.Type = v
	case "const":
		c, err := decodeConstValue(ds)
		if err != nil {
			return err
		}
		d.Const = &c
	case "properties":
		m, err := deserializeMap(ds, decodeEntityValue[DataSchema, *DataSchema])
		if err != nil {
			return err
		}
		d.Properties = &m
	case "additionalProperties":
		v, err := decodeEntityValue[DataSchema, *DataSchema](ds)
		if err != nil {
			return err
		}
		d.AdditionalProperties = &v
	case "required":
		a, err := deserializeArray(ds, func(ds *decodeState) (Value[string], error) {
			return decodeScalarValue[string](ds)
		})
		if err != nil {
			return err
		}
		d.Required = &a
	case "errorMessage":
		v, err := decodeScalarValue[string](ds)
		if err != nil {
			return err
		}
		d.ErrorMessage = &v
	case "items":
		v, err := decodeEntityValue[DataSchema, *DataSchema](ds)
		if err != nil {
			return err
		}
		d.Items = &v
	case "format":
		v, err := decodeScalarValue[string](ds)
		if err != nil {
			return err
		}
		d.Format = &v
	case "pattern":
		v, err := decodeScalarValue[string](ds)
		if err != nil {
			return err
		}
		d.Pattern = &v
	case "contentEncoding":
		v, err := decodeScalarValue[string](ds)
		if err != nil {
			return err
		}
		d.ContentEncoding = &v
	case "enum":
		a, err := deserializeArray(ds, func(ds *decodeState) (Value[string], error) {
			return decodeScalarValue[string](ds)
		})
		if err != nil {
			return err
		}
		d.Enum = &a
	case "minimum":
		v, err := decodeScalarValue[float64](ds)
		if err != nil {
			return err
		}
		d.Minimum = &v
	case "maximum":
		v, err := decodeScalarValue[float64](ds)
		if err != nil {
			return err
		}
		d.Maximum = &v
	case "scaleFactor":
		v, err := decodeScalarValue[float64](ds)
		if err != nil {
			return err
		}
		d.ScaleFactor = &v
	case "decimalPlaces":
		v, err := decodeScalarValue[float64](ds)
		if err != nil {
			return err
		}
		d.DecimalPlaces = &v
	default:
		return skipValue(ds)
	}
	return nil
}

// IsRef reports whether this node is a reference rather than a typed
// schema (§3: "Mutually exclusive: Ref vs Type").
func (d *DataSchema) IsRef() bool { return d.Ref != nil }
