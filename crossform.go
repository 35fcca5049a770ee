package tmcore

// Pass B: cross-form consistency (§4.3.6). Pass A already guaranteed the
// Thing is structurally sound, so these checks only need to reason about
// shapes already known to be well-formed.

func validateActionTopics(t *Thing, r *Reporter) bool {
	if t.Actions == nil {
		return true
	}
	ok := true
	for _, key := range t.Actions.Keys {
		a := t.Actions.Items[key].Val
		if !hasTopicalForm(a.Forms) {
			r.addError(ConditionUnusable, LevelError, "action \""+key+"\" has no form with a topic", a.Offset)
			ok = false
		}
	}
	return ok
}

func hasTopicalForm(forms *Array[Value[*Form]]) bool {
	if forms == nil {
		return false
	}
	for _, f := range forms.Items {
		if f.Val.Topic != nil {
			return true
		}
	}
	return false
}

func rootFormWithOp(t *Thing, op string) *Form {
	if t.Forms == nil {
		return nil
	}
	for _, f := range t.Forms.Items {
		if f.Val.hasOp(op) {
			return f.Val
		}
	}
	return nil
}

func validatePropertyAggregates(t *Thing, r *Reporter) bool {
	ok := true
	readAll := rootFormWithOp(t, "readAllProperties")
	writeMulti := rootFormWithOp(t, "writeMultipleProperties")

	if readAll != nil {
		found := false
		if t.Properties != nil {
			for _, key := range t.Properties.Keys {
				p := t.Properties.Items[key].Val
				if hasOpInForms(p.Forms, "readproperty") && p.Forms != nil {
					for _, f := range p.Forms.Items {
						if f.Val.AdditionalResponses != nil {
							found = true
						}
					}
				}
			}
		}
		if !found {
			r.addError(ConditionElementMissing, LevelWarning, "root readAllProperties form has no property with a read-capable form and additionalResponses", readAll.Offset)
		}
	}

	if writeMulti != nil {
		writable := false
		if t.Properties != nil {
			for _, key := range t.Properties.Keys {
				if !t.Properties.Items[key].Val.IsReadOnly() {
					writable = true
				}
			}
		}
		if !writable {
			r.addError(ConditionElementMissing, LevelError, "root writeMultipleProperties form exists but no Property is writable", writeMulti.Offset)
			ok = false
		}
	}

	if t.Properties != nil {
		for _, key := range t.Properties.Keys {
			p := t.Properties.Items[key].Val
			if hasTopicalForm(p.Forms) {
				continue
			}
			matches := (hasOpInForms(p.Forms, "readproperty") && readAll != nil) ||
				(hasOpInForms(p.Forms, "writeproperty") && writeMulti != nil) ||
				(readAll != nil && writeMulti != nil)
			if !matches {
				r.addErrorWithCrossRef(ConditionUnusable, LevelError,
					"property \""+key+"\" has no topical form and no matching root aggregate form",
					p.Offset, t.Offset, key)
				ok = false
			}
		}
	}

	return ok
}

func hasOpInForms(forms *Array[Value[*Form]], op string) bool {
	if forms == nil {
		return false
	}
	for _, f := range forms.Items {
		if f.Val.hasOp(op) {
			return true
		}
	}
	return false
}

func validateEventAggregates(t *Thing, r *Reporter) bool {
	subAll := rootFormWithOp(t, "subscribeAllEvents")
	if subAll != nil {
		return true
	}
	if t.Events == nil {
		return true
	}
	ok := true
	for _, key := range t.Events.Keys {
		e := t.Events.Items[key].Val
		if !hasTopicalForm(e.Forms) {
			r.addError(ConditionUnusable, LevelError, "event \""+key+"\" has no topical form and no root subscribeAllEvents form", e.Offset)
			ok = false
		}
	}
	return ok
}

var thingKeys = map[string]bool{
	"@context": true, "@type": true, "title": true, "description": true,
	"links": true, "schemaDefinitions": true, "forms": true,
	"actions": true, "properties": true, "events": true,
	"isComposite": true, "isEvent": true, "typeRef": true,
}

// validateThingPropertyNames flags keys seen on the Thing object that were
// never dispatched to a known field (§4.1: "the Validator later flags them
// using the property-name map").
func validateThingPropertyNames(t *Thing, r *Reporter) {
	for _, key := range t.PNM.Order {
		if thingKeys[key] {
			continue
		}
		level := LevelError
		if hasRecognizedPrefix(key) {
			level = LevelWarning
		}
		r.addError(ConditionPropertyUnsupported, level, "unrecognized thing-level key \""+key+"\"", t.PNM.OffsetOf(key))
	}
}

func validateEmptyThing(t *Thing, r *Reporter) {
	noActions := t.Actions == nil || len(t.Actions.Keys) == 0
	noProperties := t.Properties == nil || len(t.Properties.Keys) == 0
	noEvents := t.Events == nil || len(t.Events.Keys) == 0
	if noActions && noProperties && noEvents {
		r.addError(ConditionElementMissing, LevelWarning, "thing declares no actions, properties, or events", t.Offset)
	}
}

// validateContainment checks the §4.3.6 containment-graph consistency
// rules across this Thing's own Properties and Events, the only namespace
// in which Contains/ContainedIn names are resolved (containment does not
// cross document boundaries in this core, see DESIGN.md).
func validateContainment(t *Thing, r *Reporter) bool {
	type member struct {
		offset      int64
		contains    *Array[Value[string]]
		containedIn *Array[Value[string]]
	}
	members := make(map[string]member)
	if t.Properties != nil {
		for _, key := range t.Properties.Keys {
			p := t.Properties.Items[key].Val
			members[key] = member{p.Offset, p.Contains, p.ContainedIn}
		}
	}
	if t.Events != nil {
		for _, key := range t.Events.Keys {
			e := t.Events.Items[key].Val
			members[key] = member{e.Offset, e.Contains, e.ContainedIn}
		}
	}

	ok := true
	for name, m := range members {
		if m.contains != nil {
			for _, other := range m.contains.Items {
				target, found := members[other.Val]
				if !found {
					r.addError(ConditionItemNotFound, LevelError, "\""+name+"\" contains unknown member \""+other.Val+"\"", other.Offset)
					ok = false
					continue
				}
				if target.containedIn != nil && !containsName(target.containedIn, name) {
					r.addError(ConditionValuesInconsistent, LevelError, "\""+other.Val+"\" does not declare containedIn \""+name+"\" though \""+name+"\" contains it", other.Offset)
					ok = false
				}
			}
		}
		if m.containedIn != nil {
			for _, other := range m.containedIn.Items {
				target, found := members[other.Val]
				if !found {
					r.addError(ConditionItemNotFound, LevelError, "\""+name+"\" declares containedIn unknown member \""+other.Val+"\"", other.Offset)
					ok = false
					continue
				}
				if target.contains == nil || !containsName(target.contains, name) {
					r.addError(ConditionValuesInconsistent, LevelError, "\""+other.Val+"\" does not contain \""+name+"\" though \""+name+"\" declares containedIn it", other.Offset)
					ok = false
				}
			}
		}
	}
	return ok
}

func containsName(arr *Array[Value[string]], name string) bool {
	for _, v := range arr.Items {
		if v.Val == name {
			return true
		}
	}
	return false
}
