package tmcore

import (
	"regexp"
	"strings"
)

// allowedKeys is the residual-properties allow-list per DataSchema variant
// (§4.3.5). Common keys (title, description, type, ref, typeRef) are
// checked once in validateDataSchema and are not repeated here.
var allowedKeys = map[string]map[string]bool{
	SchemaObject: {"properties": true, "additionalProperties": true, "required": true, "errorMessage": true, "const": true},
	SchemaArray:  {"items": true, "const": true},
	SchemaString: {"format": true, "pattern": true, "contentEncoding": true, "enum": true, "const": true},
	SchemaNumber: {"minimum": true, "maximum": true, "scaleFactor": true, "decimalPlaces": true, "const": true},
	"integer":    {"minimum": true, "maximum": true, "scaleFactor": true, "decimalPlaces": true, "const": true},
	SchemaBoolean: {"const": true},
	SchemaNull:    {},
}

var commonKeys = map[string]bool{
	"title": true, "description": true, "type": true, "ref": true, "typeRef": true,
}

// propertyKeys are the affordance-level keys Property adds on top of its
// embedded DataSchema (§3 Property). checkResidualKeys admits them
// regardless of the DataSchema variant, since Property shares one
// PropertyNameMap with its embedded DataSchema (property.go) and would
// otherwise flag its own "readOnly"/"contains"/"containedIn"/"forms" keys as
// unsupported on every variant's keyword set.
var propertyKeys = map[string]bool{
	"readOnly": true, "contains": true, "containedIn": true, "forms": true,
}

// looseProbe is the fixed example literal the pattern over-permissive check
// runs against; durationProbe and decimalProbe are the ones the
// indeterminate-type check runs against (§4.3.5).
const (
	durationProbe = "P3Y6M4DT12H30M5S"
	decimalProbe  = "123.45"
	looseProbe    = "the quick brown fox 123"
)

var identifierRegex = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_]*$`)

// refCharRegex implements the §4.3.5 reference character class
// ([!#$&-;=?-\[\]_a-z~] or %HH) enumerated literally rather than by range,
// to keep the allowed set unambiguous.
var refCharRegex = regexp.MustCompile(`^(?:[!#$&'()*+,\-./0-9:;=?@A-Z\[\]_a-z~]|%[0-9A-Fa-f]{2})+$`)

// validateDataSchema implements §4.3.5 for one DataSchema node. allowRef
// reports whether d occupies the one schema slot of its enclosing
// affordance where Ref is permitted (Action.Input/Output, Event.Data,
// Property itself, and entries of SchemaDefinitions); everywhere else a Ref
// is a structural error. allowConst reports whether d is a direct entry of
// SchemaDefinitions, the only position where "const" is permitted (§3
// DataSchema invariants: "const at any non-SchemaDefinition position is an
// error"). path is used only for diagnostic messages.
func validateDataSchema(d *DataSchema, r *Reporter, resolve func(ref string) (*DataSchema, bool), allowRef, allowConst bool, path string) bool {
	return validateDataSchemaNode(d, r, resolve, allowRef, allowConst, false, false, path)
}

// validateDataSchemaNode is validateDataSchema's implementation. isProperty
// is set only for the node directly backing a Property (never for its
// nested properties/items/additionalProperties), so checkResidualKeys knows
// to admit Property's own affordance-level keys. allowNull is set only for
// the top-level schema of an Action's Input/Output or an Event's Data (§3
// DataSchema: "null permitted only as Action input/output or Event data");
// everywhere else, including nested object/array members of such a schema,
// a "null" type is rejected.
func validateDataSchemaNode(d *DataSchema, r *Reporter, resolve func(ref string) (*DataSchema, bool), allowRef, allowConst, allowNull, isProperty bool, path string) bool {
	if d == nil {
		return true
	}
	ok := true

	hasRef := d.Ref != nil
	hasType := d.PNM.Has("type")

	if hasRef && hasType {
		r.addError(ConditionPropertyInvalid, LevelError, path+": \"ref\" and \"type\" are mutually exclusive", d.Offset)
		ok = false
	}
	if !hasRef && !hasType {
		r.addError(ConditionPropertyMissing, LevelError, path+": must set either \"ref\" or \"type\"", d.Offset)
		ok = false
	}

	if d.Const != nil && !allowConst {
		r.addError(ConditionPropertyUnsupported, LevelError, path+": \"const\" is only permitted at the top level of schemaDefinitions", d.Const.Offset)
		ok = false
	}

	if hasRef {
		if !allowRef {
			r.addError(ConditionPropertyUnsupported, LevelError, path+": \"ref\" is only permitted at the first level of an affordance's schema", d.Ref.Offset)
			ok = false
		}
		if !validateRefSyntax(d.Ref.Val, r, d.Ref.Offset, path) {
			return false
		}
		file, fragment := splitRef(d.Ref.Val)
		if !strings.ContainsAny(d.Ref.Val, "#/") {
			// A bare name addresses this document's own schemaDefinitions.
			if _, found := resolve(d.Ref.Val); !found {
				r.addReferenceError(path+": \"ref\" does not resolve to a known schema", d.Ref.Offset)
				ok = false
			}
		} else {
			// An external ref is registered for the driver's cross-file
			// resolution pass (§4.2, §5) rather than resolved here.
			r.registerReferenceFromThing(canonicalRefPath(file, fragment), d.Ref.Offset, d.Ref.Val)
		}
		return ok
	}

	if !dataSchemaTypes[d.Type.Val] {
		r.addError(ConditionPropertyUnsupportedValue, LevelError, path+": unrecognized \"type\" value", d.Type.Offset)
		return false
	}

	if !checkResidualKeys(d, r, path, isProperty) {
		ok = false
	}

	switch d.Type.Val {
	case SchemaObject:
		if !validateObjectSchema(d, r, resolve, path) {
			ok = false
		}
	case SchemaArray:
		if !validateArraySchema(d, r, resolve, path) {
			ok = false
		}
	case SchemaString:
		if !validateStringSchema(d, r, path) {
			ok = false
		}
	case SchemaNumber, SchemaInteger:
		if !validateNumberSchema(d, r, path) {
			ok = false
		}
	case SchemaBoolean:
		if d.Const != nil && d.Const.Kind() != "boolean" {
			r.addError(ConditionTypeMismatch, LevelError, path+": \"const\" does not match a boolean schema", d.Const.Offset)
			ok = false
		}
	case SchemaNull:
		if !allowNull {
			r.addError(ConditionPropertyUnsupported, LevelError, path+": \"null\" type is only permitted as an action input/output or event data schema", d.Type.Offset)
			ok = false
		}
		if d.Const != nil && d.Const.Kind() != "null" {
			r.addError(ConditionTypeMismatch, LevelError, path+": \"const\" does not match a null schema", d.Const.Offset)
			ok = false
		}
	}

	return ok
}

// checkResidualKeys flags keys present in the source object but not
// admitted by the variant's keyword set (§4.3.5). A residual key
// containing a colon that does not start with a recognized context prefix
// is assumed to be foreign vocabulary and only warned about; anything else
// unrecognized is a PropertyUnsupported error.
func checkResidualKeys(d *DataSchema, r *Reporter, path string, isProperty bool) bool {
	ok := true
	allowed := allowedKeys[d.Type.Val]
	for _, key := range d.PNM.Order {
		if commonKeys[key] || allowed[key] || (isProperty && propertyKeys[key]) {
			continue
		}
		if strings.Contains(key, ":") && !hasRecognizedPrefix(key) {
			r.addError(ConditionPropertyUnsupported, LevelWarning, path+": unrecognized vendor key \""+key+"\", ignored", d.PNM.OffsetOf(key))
			continue
		}
		r.addError(ConditionPropertyUnsupported, LevelError, path+": \""+key+"\" is not permitted on a "+d.Type.Val+" schema", d.PNM.OffsetOf(key))
		ok = false
	}
	return ok
}

func hasRecognizedPrefix(key string) bool {
	return strings.HasPrefix(key, protocolPrefix+":") || strings.HasPrefix(key, platformPrefix+":")
}

// validateRefSyntax implements the §4.3.5 ref-syntax rules: the value must
// use only the permitted character class, must not begin with '#', and
// only needs a "./" or "../" prefix on its file part when that file part
// itself contains a "/" (a bare schemaDefinitions name never does).
func validateRefSyntax(ref string, r *Reporter, offset int64, path string) bool {
	if ref == "" {
		r.addError(ConditionPropertyEmpty, LevelError, path+": \"ref\" must not be empty", offset)
		return false
	}
	if ref[0] == '#' {
		r.addError(ConditionPropertyInvalid, LevelError, path+": \"ref\" must not begin with \"#\"", offset)
		return false
	}
	if !refCharRegex.MatchString(ref) {
		r.addError(ConditionPropertyInvalid, LevelError, path+": \"ref\" contains a disallowed character", offset)
		return false
	}
	filePart, _ := splitRef(ref)
	if strings.Contains(filePart, "/") && !strings.HasPrefix(filePart, "./") && !strings.HasPrefix(filePart, "../") {
		r.addError(ConditionPropertyInvalid, LevelError, path+": \"ref\" with a path must begin with \"./\" or \"../\"", offset)
		return false
	}
	return true
}

func validateObjectSchema(d *DataSchema, r *Reporter, resolve func(ref string) (*DataSchema, bool), path string) bool {
	ok := true

	if d.Properties == nil && d.AdditionalProperties == nil {
		r.addError(ConditionPropertyMissing, LevelWarning, path+": object schema has neither \"properties\" nor \"additionalProperties\"", d.Offset)
	}

	if d.Properties != nil {
		for _, key := range d.Properties.Keys {
			prop := d.Properties.Items[key]
			if !validateDataSchema(prop.Val, r, resolve, false, false, path+"."+key) {
				ok = false
			}
		}
	}
	if d.AdditionalProperties != nil {
		if !validateDataSchema(d.AdditionalProperties.Val, r, resolve, false, false, path+".additionalProperties") {
			ok = false
		}
	}

	if d.Required != nil && d.Properties != nil {
		for _, name := range d.Required.Items {
			if _, found := d.Properties.Get(name.Val); !found {
				r.addError(ConditionItemNotFound, LevelError, path+": \"required\" names a property not declared in \"properties\"", name.Offset)
				ok = false
			}
		}
	}

	if d.Const != nil {
		if !validateObjectConst(d, r, path) {
			ok = false
		}
	}

	return ok
}

// validateObjectConst implements the §3 "object-with-const" mirroring rule:
// every key of a const object literal must also be declared in properties
// (or admitted by additionalProperties), and the literal value for a
// declared property must type-check against that property's schema.
func validateObjectConst(d *DataSchema, r *Reporter, path string) bool {
	obj, isObj := d.Const.Raw.(map[string]any)
	if !isObj {
		r.addError(ConditionTypeMismatch, LevelError, path+": \"const\" does not match an object schema", d.Const.Offset)
		return false
	}
	ok := true
	for key, val := range obj {
		var prop Value[*DataSchema]
		found := false
		if d.Properties != nil {
			prop, found = d.Properties.Get(key)
		}
		if !found {
			if d.AdditionalProperties == nil {
				r.addError(ConditionPropertyUnsupported, LevelError, path+": \"const\" key \""+key+"\" is not a declared property", d.Const.Offset)
				ok = false
			}
			continue
		}
		if prop.Val.Type.Val != "" && !(ConstValue{Raw: val}).matchesSchemaType(prop.Val.Type.Val) {
			r.addError(ConditionTypeMismatch, LevelError, path+": \"const\" key \""+key+"\" does not match its property's schema type", d.Const.Offset)
			ok = false
		}
	}
	return ok
}

func validateArraySchema(d *DataSchema, r *Reporter, resolve func(ref string) (*DataSchema, bool), path string) bool {
	if d.Items == nil {
		r.addError(ConditionPropertyMissing, LevelWarning, path+": array schema is missing \"items\"", d.Offset)
		return true
	}
	return validateDataSchema(d.Items.Val, r, resolve, false, false, path+"[]")
}

func validateStringSchema(d *DataSchema, r *Reporter, path string) bool {
	ok := true

	if d.Format != nil {
		if _, known := stringFormats[d.Format.Val]; !known {
			r.addError(ConditionPropertyUnsupportedValue, LevelWarning, path+": unrecognized string format, not validated", d.Format.Offset)
		}
	}

	if d.Pattern != nil {
		re, err := regexp.Compile(d.Pattern.Val)
		if err != nil {
			r.addError(ConditionPropertyInvalid, LevelError, path+": \"pattern\" is not a valid regular expression", d.Pattern.Offset)
			ok = false
		} else {
			if re.MatchString(looseProbe) {
				r.addError(ConditionPropertyInvalid, LevelWarning, path+": \"pattern\" is overly permissive", d.Pattern.Offset)
			}
			if d.Format == nil && !re.MatchString(durationProbe) && !re.MatchString(decimalProbe) {
				r.addError(ConditionPropertyInvalid, LevelWarning, path+": \"pattern\" alone does not indicate a duration or decimal string, consider adding \"format\"", d.Pattern.Offset)
			}
		}
	}

	if d.ContentEncoding != nil && d.Format != nil {
		r.addError(ConditionPropertyInvalid, LevelError, path+": \"contentEncoding\" and \"format\" are mutually exclusive", d.ContentEncoding.Offset)
		ok = false
	}

	if d.Enum != nil {
		for _, item := range d.Enum.Items {
			if !identifierRegex.MatchString(item.Val) {
				r.addError(ConditionPropertyInvalid, LevelError, path+": enum value \""+item.Val+"\" is not a valid identifier", item.Offset)
				ok = false
			}
		}
	}

	if d.Const != nil && d.Const.Kind() != "string" {
		r.addError(ConditionTypeMismatch, LevelError, path+": \"const\" does not match a string schema", d.Const.Offset)
		ok = false
	}

	return ok
}

func validateNumberSchema(d *DataSchema, r *Reporter, path string) bool {
	ok := true

	if d.Minimum != nil && d.Maximum != nil && d.Minimum.Val > d.Maximum.Val {
		r.addError(ConditionPropertyInvalid, LevelError, path+": \"minimum\" exceeds \"maximum\"", d.Minimum.Offset)
		ok = false
	}

	if d.Type.Val == SchemaInteger {
		if d.Minimum != nil && d.Minimum.Val != float64(int64(d.Minimum.Val)) {
			r.addError(ConditionPropertyInvalid, LevelError, path+": \"minimum\" must be a whole number on an integer schema", d.Minimum.Offset)
			ok = false
		}
		if d.Maximum != nil && d.Maximum.Val != float64(int64(d.Maximum.Val)) {
			r.addError(ConditionPropertyInvalid, LevelError, path+": \"maximum\" must be a whole number on an integer schema", d.Maximum.Offset)
			ok = false
		}
	}

	if d.Const != nil {
		if !d.Const.matchesSchemaType(d.Type.Val) {
			r.addError(ConditionTypeMismatch, LevelError, path+": \"const\" does not match the declared numeric type", d.Const.Offset)
			ok = false
		} else if n, isNum := d.Const.Raw.(float64); isNum {
			if d.Minimum != nil && n < d.Minimum.Val {
				r.addError(ConditionPropertyInvalid, LevelError, path+": \"const\" is below \"minimum\"", d.Const.Offset)
				ok = false
			}
			if d.Maximum != nil && n > d.Maximum.Val {
				r.addError(ConditionPropertyInvalid, LevelError, path+": \"const\" is above \"maximum\"", d.Const.Offset)
				ok = false
			}
		}
	}

	return ok
}
