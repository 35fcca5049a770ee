package tmcore

import "regexp"

var titleRegex = regexp.MustCompile(`^[A-Z][A-Za-z0-9_]*$`)

// Validate runs the full two-pass validation of §4.3 over t, writing every
// diagnostic into r. It returns false when any Pass A step fails; once Pass A
// succeeds it returns the combined result of the boolean Pass B checks.
// Unrecognized thing-level keys and the empty-Thing warning are recorded in
// r's log without affecting the returned value. The step
// order within Pass A is part of the contract (§9 Design Notes: "Ordering")
// because it determines the order error records are produced in.
func Validate(t *Thing, r *Reporter) bool {
	passA := true

	ctx, ok := validateContext(t, r)
	passA = passA && ok
	passA = validateType(t, r) && passA
	passA = validateTitle(t, r) && passA
	passA = validateCompositeEventFlags(t, r) && passA
	passA = validateThingTypeRef(t, r) && passA
	passA = validateLinks(t, r, ctx) && passA

	resolve := schemaResolver(t)
	passA = validateSchemaDefinitions(t, r, resolve) && passA
	passA = validateFormArray(thingFormsOrNil(t), KindRoot, nil, r, ctx, resolve) && passA
	passA = validateActions(t, r, ctx, resolve) && passA
	passA = validateProperties(t, r, ctx, resolve) && passA
	passA = validateEvents(t, r, ctx, resolve) && passA

	if !passA {
		return false
	}

	passB := true
	passB = validateActionTopics(t, r) && passB
	passB = validatePropertyAggregates(t, r) && passB
	passB = validateEventAggregates(t, r) && passB
	validateThingPropertyNames(t, r)
	validateEmptyThing(t, r)
	passB = validateContainment(t, r) && passB

	return passB
}

func thingFormsOrNil(t *Thing) *Array[Value[*Form]] { return t.Forms }

func schemaResolver(t *Thing) func(string) (*DataSchema, bool) {
	return func(name string) (*DataSchema, bool) {
		if t.SchemaDefinitions == nil {
			return nil, false
		}
		v, ok := t.SchemaDefinitions.Get(name)
		if !ok {
			return nil, false
		}
		return v.Val, true
	}
}

func validateType(t *Thing, r *Reporter) bool {
	if !t.PNM.Has("@type") {
		r.addError(ConditionPropertyMissing, LevelError, "thing is missing required \"@type\"", t.Offset)
		return false
	}
	if t.Type.Val != thingModelType {
		r.addError(ConditionPropertyInvalid, LevelError, "\"@type\" must equal \"tm:ThingModel\"", t.Type.Offset)
		return false
	}
	return true
}

func validateTitle(t *Thing, r *Reporter) bool {
	if !t.PNM.Has("title") {
		r.addError(ConditionPropertyMissing, LevelError, "thing is missing required \"title\"", t.Offset)
		return false
	}
	if !titleRegex.MatchString(t.Title.Val) {
		r.addError(ConditionPropertyInvalid, LevelError, "\"title\" must start with an uppercase letter and contain only letters, digits, and underscores", t.Title.Offset)
		return false
	}
	return true
}

// validateCompositeEventFlags checks the mutual exclusivity of the two
// optional classification booleans.
func validateCompositeEventFlags(t *Thing, r *Reporter) bool {
	if t.IsComposite != nil && t.IsEvent != nil && t.IsComposite.Val && t.IsEvent.Val {
		r.addError(ConditionValuesInconsistent, LevelError, "\"isComposite\" and \"isEvent\" cannot both be true", t.Offset)
		return false
	}
	return true
}

func validateThingTypeRef(t *Thing, r *Reporter) bool {
	if t.TypeRef == nil {
		return true
	}
	return validateRefSyntax(t.TypeRef.Val, r, t.TypeRef.Offset, "thing.typeRef")
}

func validateSchemaDefinitions(t *Thing, r *Reporter, resolve func(string) (*DataSchema, bool)) bool {
	if t.SchemaDefinitions == nil {
		return true
	}
	ok := true
	for _, key := range t.SchemaDefinitions.Keys {
		entry := t.SchemaDefinitions.Items[key]
		if !validateDataSchema(entry.Val, r, resolve, true, true, "schemaDefinitions."+key) {
			ok = false
		}
		r.registerSchemaNameInDefaultFolder(generatedName(entry.Val.Title, key), entry.Offset)
	}
	return ok
}

var actionKeys = map[string]bool{
	"title": true, "description": true, "input": true, "output": true,
	"idempotent": true, "safe": true, "forms": true,
	"namespace": true, "memberOf": true,
}

// validateActionPropertyNames flags keys seen on an Action object that were
// never dispatched to a known field, mirroring validateThingPropertyNames
// (crossform.go) at affordance level.
func validateActionPropertyNames(a *Action, r *Reporter, path string) bool {
	ok := true
	for _, key := range a.PNM.Order {
		if actionKeys[key] {
			continue
		}
		level := LevelError
		if hasRecognizedPrefix(key) {
			level = LevelWarning
		} else {
			ok = false
		}
		r.addError(ConditionPropertyUnsupported, level, path+": unrecognized action-level key \""+key+"\"", a.PNM.OffsetOf(key))
	}
	return ok
}

func validateActions(t *Thing, r *Reporter, ctx contextInfo, resolve func(string) (*DataSchema, bool)) bool {
	if t.Actions == nil {
		return true
	}
	ok := true
	for _, key := range t.Actions.Keys {
		a := t.Actions.Items[key].Val
		path := "actions." + key
		if !validateActionPropertyNames(a, r, path) {
			ok = false
		}
		if a.Input != nil && !validateAffordanceSchema(a.Input.Val, a.Forms, r, resolve, path+".input") {
			ok = false
		}
		if a.Output != nil && !validateAffordanceSchema(a.Output.Val, a.Forms, r, resolve, path+".output") {
			ok = false
		}
		if !validateFormArray(a.Forms, KindAction, nil, r, ctx, resolve) {
			ok = false
		}
		r.registerNameInThing(generatedName(a.Title, key), a.Offset)
	}
	return ok
}

func validateProperties(t *Thing, r *Reporter, ctx contextInfo, resolve func(string) (*DataSchema, bool)) bool {
	if t.Properties == nil {
		return true
	}
	ok := true
	for _, key := range t.Properties.Keys {
		p := t.Properties.Items[key].Val
		path := "properties." + key
		if !validateDataSchemaNode(&p.DataSchema, r, resolve, true, false, false, true, path) {
			ok = false
		}
		if !validateFormArray(p.Forms, KindProperty, p, r, ctx, resolve) {
			ok = false
		}
		r.registerNameInThing(generatedName(p.Title, key), p.Offset)
	}
	return ok
}

func validateEvents(t *Thing, r *Reporter, ctx contextInfo, resolve func(string) (*DataSchema, bool)) bool {
	if t.Events == nil {
		return true
	}
	ok := true
	for _, key := range t.Events.Keys {
		e := t.Events.Items[key].Val
		path := "events." + key
		if e.Data != nil && !validateAffordanceSchema(e.Data.Val, e.Forms, r, resolve, path+".data") {
			ok = false
		}
		if !validateFormArray(e.Forms, KindEvent, nil, r, ctx, resolve) {
			ok = false
		}
		r.registerNameInThing(generatedName(e.Title, key), e.Offset)
	}
	return ok
}

// validateAffordanceSchema validates an Action Input/Output or Event Data
// schema, which may additionally be "null" (§3 DataSchema: "permitted only
// as Action input/output or Event data, and only when the enclosing form's
// contentType is raw or custom"). forms is the affordance's own forms array,
// consulted only to classify that contentType.
func validateAffordanceSchema(d *DataSchema, forms *Array[Value[*Form]], r *Reporter, resolve func(string) (*DataSchema, bool), path string) bool {
	ok := validateDataSchemaNode(d, r, resolve, true, false, true, false, path)
	if d != nil && !d.IsRef() && d.Type.Val == SchemaNull {
		kind, known := formsContentKind(forms)
		if !known || (kind != ContentRaw && kind != ContentCustom) {
			r.addError(ConditionValuesInconsistent, LevelError, path+": a \"null\" schema requires the enclosing form's contentType to be raw or custom", d.Offset)
			ok = false
		}
	}
	return ok
}

// formsContentKind classifies the contentType shared by forms (§4.3.3
// requires every form in one array to agree on contentType, so the first
// declared one stands for the whole array).
func formsContentKind(forms *Array[Value[*Form]]) (ContentKind, bool) {
	if forms == nil {
		return 0, false
	}
	for _, fv := range forms.Items {
		if fv.Val.ContentType != nil {
			return contentKindOf(fv.Val.ContentType.Val)
		}
	}
	return 0, false
}
