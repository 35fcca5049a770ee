package tmcore

import "strings"

// validateFormArray implements the structural form rules of §4.3.3 for one
// affordance's forms array (or the Thing's root array). prop is non-nil
// only for Property forms, where it supplies the ReadOnly flag used by the
// topic {action} expansion rule; resolveSchema looks up a SchemaDefinitions
// entry by name for the additionalResponses and headerCode checks.
func validateFormArray(forms *Array[Value[*Form]], kind FormKind, prop *Property, r *Reporter, ctx contextInfo, resolveSchema func(string) (*DataSchema, bool)) bool {
	if forms == nil || len(forms.Items) == 0 {
		return true
	}
	ok := true

	if len(forms.Items) > 1 {
		for _, fv := range forms.Items {
			if fv.Val.Op == nil || len(fv.Val.Op.Items) == 0 {
				r.addError(ConditionElementsPlural, LevelError, "a form with no \"op\" must be the only entry in its array", fv.Val.Offset)
				ok = false
			}
		}
	}

	var firstContentType *Value[string]
	for _, fv := range forms.Items {
		f := fv.Val
		if !validateFormOps(f, kind, r) {
			ok = false
		}
		if !validateFormContentType(f, kind, r, &firstContentType) {
			ok = false
		}
		if !validateFormTopicPresence(f, kind, r) {
			ok = false
		}
		if !validateFormServiceGroupId(f, kind, r) {
			ok = false
		}
		if !validateFormAdditionalResponses(f, kind, r, resolveSchema) {
			ok = false
		}
		if !validateFormHeaderFields(f, kind, r, resolveSchema) {
			ok = false
		}
		if !validatePropertyFormIntent(f, kind, prop, r) {
			ok = false
		}
	}

	for _, fv := range forms.Items {
		if !registerFormTopic(fv.Val, kind, prop, r) {
			ok = false
		}
	}

	return ok
}

func validateFormOps(f *Form, kind FormKind, r *Reporter) bool {
	if f.Op == nil {
		return true
	}
	ok := true
	allowed := opsForKind(kind)
	seen := make(map[string]bool)
	for _, op := range f.Op.Items {
		if !allowed[op.Val] {
			r.addError(ConditionPropertyUnsupportedValue, LevelError, "op value not permitted for this form kind", op.Offset)
			ok = false
			continue
		}
		if seen[op.Val] {
			r.addError(ConditionDuplication, LevelError, "duplicate op value within one form", op.Offset)
			ok = false
		}
		seen[op.Val] = true
	}
	if kind == KindRoot {
		if seen["readAllProperties"] && seen["subscribeAllEvents"] {
			r.addError(ConditionValuesInconsistent, LevelError, "readAllProperties and subscribeAllEvents cannot coexist on one form", f.Offset)
			ok = false
		}
		if seen["writeMultipleProperties"] && seen["subscribeAllEvents"] {
			r.addError(ConditionValuesInconsistent, LevelError, "writeMultipleProperties and subscribeAllEvents cannot coexist on one form", f.Offset)
			ok = false
		}
	}
	return ok
}

func validateFormContentType(f *Form, kind FormKind, r *Reporter, first **Value[string]) bool {
	ok := true
	requiresJSON := kind == KindRoot || kind == KindProperty

	if f.Topic != nil && f.ContentType == nil {
		r.addError(ConditionPropertyMissing, LevelError, "\"contentType\" is required whenever \"topic\" is present", f.Offset)
		ok = false
	}

	if f.ContentType != nil {
		kindOf, known := contentKindOf(f.ContentType.Val)
		if !known {
			r.addError(ConditionPropertyUnsupportedValue, LevelError, "unrecognized \"contentType\" value", f.ContentType.Offset)
			ok = false
		} else if requiresJSON && kindOf != ContentJSON {
			r.addError(ConditionPropertyInvalid, LevelError, "this form kind requires JSON contentType", f.ContentType.Offset)
			ok = false
		}

		if *first == nil {
			*first = f.ContentType
		} else if (*first).Val != f.ContentType.Val {
			r.addErrorWithCrossRef(ConditionValuesInconsistent, LevelError, "all forms in one array must agree on contentType",
				f.ContentType.Offset, (*first).Offset, "contentType")
			ok = false
		}
	}

	return ok
}

func validateFormTopicPresence(f *Form, kind FormKind, r *Reporter) bool {
	if f.Topic != nil {
		return true
	}
	if kind == KindRoot {
		if f.Op != nil && len(f.Op.Items) > 0 {
			return true
		}
		r.addError(ConditionElementMissing, LevelError, "root form must have either \"topic\" or a root-kind \"op\"", f.Offset)
		return false
	}
	r.addError(ConditionElementMissing, LevelError, "form is missing required \"topic\"", f.Offset)
	return false
}

// validatePropertyFormIntent implements the §4.3.4 rule for a Property form
// whose topic has no "{action}" placeholder: it must either belong to a
// read-only property or declare exactly one of readproperty/writeproperty.
func validatePropertyFormIntent(f *Form, kind FormKind, prop *Property, r *Reporter) bool {
	if kind != KindProperty || f.Topic == nil || strings.Contains(f.Topic.Val, "{action}") {
		return true
	}
	if prop != nil && prop.IsReadOnly() {
		return true
	}
	hasRead := f.hasOp("readproperty")
	hasWrite := f.hasOp("writeproperty")
	if hasRead != hasWrite {
		return true
	}
	r.addError(ConditionValuesInconsistent, LevelError, "property form without \"{action}\" must declare exactly one of readproperty/writeproperty unless read-only", f.Offset)
	return false
}

func validateFormServiceGroupId(f *Form, kind FormKind, r *Reporter) bool {
	if f.ServiceGroupId == nil {
		return true
	}
	permitted := kind == KindAction || kind == KindEvent || (kind == KindRoot && f.hasOp("subscribeAllEvents"))
	if !permitted {
		r.addError(ConditionPropertyUnsupported, LevelError, "\"serviceGroupId\" is not permitted on this form", f.ServiceGroupId.Offset)
		return false
	}
	return true
}

func validateFormAdditionalResponses(f *Form, kind FormKind, r *Reporter, resolveSchema func(string) (*DataSchema, bool)) bool {
	if f.AdditionalResponses == nil {
		return true
	}
	ok := true
	if kind == KindEvent {
		r.addError(ConditionPropertyUnsupported, LevelError, "\"additionalResponses\" is not permitted on this form", f.AdditionalResponses.Offset)
		return false
	}
	if kind == KindRoot && !f.hasOp("readAllProperties") && !f.hasOp("writeMultipleProperties") {
		r.addError(ConditionValuesInconsistent, LevelError, "root form with \"additionalResponses\" must carry readAllProperties or writeMultipleProperties", f.AdditionalResponses.Offset)
		return false
	}
	if len(f.AdditionalResponses.Items) > 1 {
		r.addError(ConditionElementsPlural, LevelError, "\"additionalResponses\" may have at most one element", f.AdditionalResponses.Offset)
		ok = false
	}
	for _, ref := range f.AdditionalResponses.Items {
		schema, found := resolveSchema(ref.Val.Schema.Val)
		if !found {
			r.addReferenceError("\"additionalResponses\" schema reference does not resolve", ref.Val.Schema.Offset)
			ok = false
			continue
		}
		if schema.IsRef() || schema.Type.Val != SchemaObject {
			r.addError(ConditionTypeMismatch, LevelError, "\"additionalResponses\" must reference a structured object schema", ref.Val.Schema.Offset)
			ok = false
		}
	}
	return ok
}

func validateFormHeaderFields(f *Form, kind FormKind, r *Reporter, resolveSchema func(string) (*DataSchema, bool)) bool {
	ok := true
	if f.HeaderCode != nil {
		if kind != KindAction {
			r.addError(ConditionPropertyUnsupported, LevelError, "\"headerCode\" is only permitted on action forms", f.HeaderCode.Offset)
			ok = false
		} else {
			schema, found := resolveSchema(f.HeaderCode.Val)
			if !found {
				r.addReferenceError("\"headerCode\" does not resolve to a schema definition", f.HeaderCode.Offset)
				ok = false
			} else if schema.IsRef() || schema.Type.Val != SchemaString || schema.Enum == nil {
				r.addError(ConditionTypeMismatch, LevelError, "\"headerCode\" must reference a string enum schema", f.HeaderCode.Offset)
				ok = false
			}
		}
	}
	if f.HeaderInfo != nil {
		if kind != KindAction {
			r.addError(ConditionPropertyUnsupported, LevelError, "\"headerInfo\" is only permitted on action forms", f.HeaderInfo.Offset)
			ok = false
		} else if len(f.HeaderInfo.Items) > 1 {
			r.addError(ConditionElementsPlural, LevelError, "\"headerInfo\" may have at most one element", f.HeaderInfo.Offset)
			ok = false
		}
	}
	return ok
}

// allowedTokens is the §4.3.4 built-in token table, keyed by effective kind.
var allowedTokens = map[FormKind]map[string]bool{
	KindAction:   {"executorId": true, "invokerClientId": true},
	KindProperty: {"action": true, "consumerClientId": true, "maintainerId": true},
	KindEvent:    {"senderId": true},
}

func isTopicTokenAllowed(token string, kind FormKind) bool {
	if strings.HasPrefix(token, "ex:") && len(token) > 3 {
		for i := 3; i < len(token); i++ {
			c := token[i]
			if !((c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z')) {
				return false
			}
		}
		return true
	}
	return allowedTokens[kind][token]
}

// validateTopicSyntax implements the structural half of §4.3.4: splitting
// on '/', rejecting empty levels, a leading '$', and disallowed characters,
// while recognizing "{token}" placeholders against the effective kind's
// token table.
func validateTopicSyntax(topic string, kind FormKind, r *Reporter, offset int64) bool {
	if topic == "" {
		r.addError(ConditionPropertyEmpty, LevelError, "topic must not be empty", offset)
		return false
	}
	ok := true
	levels := strings.Split(topic, "/")
	for _, level := range levels {
		if level == "" {
			r.addError(ConditionPropertyInvalid, LevelError, "topic must not contain an empty level", offset)
			ok = false
			continue
		}
		if level[0] == '$' {
			r.addError(ConditionPropertyInvalid, LevelError, "topic level must not begin with \"$\"", offset)
			ok = false
			continue
		}
		if len(level) > 1 && level[0] == '{' && level[len(level)-1] == '}' {
			token := level[1 : len(level)-1]
			if !isTopicTokenAllowed(token, kind) {
				r.addError(ConditionPropertyUnsupportedValue, LevelError, "topic token \""+token+"\" is not recognized for this form kind", offset)
				ok = false
			}
			continue
		}
		for i := 0; i < len(level); i++ {
			c := level[i]
			if c == '+' || c == '#' || c == '{' || c == '}' || c == ' ' || c == '"' || c < 0x20 || c > 0x7e {
				r.addError(ConditionPropertyInvalid, LevelError, "topic level contains a disallowed character", offset)
				ok = false
				break
			}
		}
	}
	return ok
}

// registerFormTopic implements the §4.3.4 topic syntax check, registration
// and {action} expansion rules. It returns false, registering nothing, when
// the topic fails the syntax check.
func registerFormTopic(f *Form, kind FormKind, prop *Property, r *Reporter) bool {
	if f.Topic == nil {
		return true
	}
	eff := effectiveKind(f, kind)
	if !validateTopicSyntax(f.Topic.Val, eff, r, f.Topic.Offset) {
		return false
	}

	if eff != KindProperty || !strings.Contains(f.Topic.Val, "{action}") {
		r.registerTopicInThing(f.Topic.Val, f.Topic.Offset, f.Topic.Val)
		return true
	}

	readTopic := strings.ReplaceAll(f.Topic.Val, "{action}", "read")
	writeTopic := strings.ReplaceAll(f.Topic.Val, "{action}", "write")

	hasRead := f.hasOp("readproperty")
	hasWrite := f.hasOp("writeproperty")

	switch {
	case hasRead && hasWrite:
		r.registerTopicInThing(readTopic, f.Topic.Offset, f.Topic.Val)
		r.registerTopicInThing(writeTopic, f.Topic.Offset, f.Topic.Val)
	case hasRead:
		r.registerTopicInThing(readTopic, f.Topic.Offset, f.Topic.Val)
	case hasWrite:
		r.registerTopicInThing(writeTopic, f.Topic.Offset, f.Topic.Val)
	default:
		r.registerTopicInThing(readTopic, f.Topic.Offset, f.Topic.Val)
		if prop == nil || !prop.IsReadOnly() {
			r.registerTopicInThing(writeTopic, f.Topic.Offset, f.Topic.Val)
		}
	}
	return true
}
