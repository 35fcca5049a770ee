package tmcore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormOpMustBelongToKindVocabulary(t *testing.T) {
	src := `{"@context":` + minimalContext + `,"@type":"tm:ThingModel","title":"Lamp",
		"actions":{"toggle":{"forms":[{"op":["readproperty"],"contentType":"application/json","topic":"a"}]}}}`
	_, r, ok := parseAndValidate(t, src)
	assert.False(t, ok)
	found := false
	for _, e := range r.Log().Errors() {
		if e.Condition == ConditionPropertyUnsupportedValue {
			found = true
		}
	}
	assert.True(t, found)
}

func TestMultiFormArrayRequiresOpOnEveryEntry(t *testing.T) {
	src := `{"@context":` + minimalContext + `,"@type":"tm:ThingModel","title":"Lamp",
		"actions":{"toggle":{"forms":[
			{"contentType":"application/json","topic":"a"},
			{"op":["invokeaction"],"contentType":"application/json","topic":"b"}
		]}}}`
	_, r, ok := parseAndValidate(t, src)
	assert.False(t, ok)
	found := false
	for _, e := range r.Log().Errors() {
		if e.Condition == ConditionElementsPlural {
			found = true
		}
	}
	assert.True(t, found)
}

func TestTopicRequiresContentType(t *testing.T) {
	src := `{"@context":` + minimalContext + `,"@type":"tm:ThingModel","title":"Lamp",
		"actions":{"toggle":{"forms":[{"op":["invokeaction"],"topic":"a"}]}}}`
	_, r, ok := parseAndValidate(t, src)
	assert.False(t, ok)
	require.NotEmpty(t, r.Log().Errors())
	assert.Equal(t, ConditionPropertyMissing, r.Log().Errors()[0].Condition)
}

func TestPropertyAndRootFormsRequireJSONContentType(t *testing.T) {
	src := `{"@context":` + minimalContext + `,"@type":"tm:ThingModel","title":"Lamp",
		"properties":{"voltage":{"type":"number","readOnly":true,
			"forms":[{"op":["readproperty"],"contentType":"application/octet-stream","topic":"v"}]}}}`
	_, r, ok := parseAndValidate(t, src)
	assert.False(t, ok)
	found := false
	for _, e := range r.Log().Errors() {
		if e.Condition == ConditionPropertyInvalid {
			found = true
		}
	}
	assert.True(t, found)
}

func TestAllFormsInArrayMustAgreeOnContentType(t *testing.T) {
	src := `{"@context":` + minimalContext + `,"@type":"tm:ThingModel","title":"Lamp",
		"actions":{"toggle":{"forms":[
			{"op":["invokeaction"],"contentType":"application/json","topic":"a"},
			{"op":["invokeaction"],"contentType":"application/octet-stream","topic":"b"}
		]}}}`
	_, r, ok := parseAndValidate(t, src)
	assert.False(t, ok)
	found := false
	for _, e := range r.Log().Errors() {
		if e.Condition == ConditionValuesInconsistent {
			found = true
		}
	}
	assert.True(t, found)
}

func TestPropertyFormWithoutActionTokenNeedsExactlyOneOp(t *testing.T) {
	src := `{"@context":` + minimalContext + `,"@type":"tm:ThingModel","title":"Lamp",
		"properties":{"voltage":{"type":"number",
			"forms":[{"op":["readproperty","writeproperty"],"contentType":"application/json","topic":"v"}]}}}`
	_, r, ok := parseAndValidate(t, src)
	assert.False(t, ok)
	found := false
	for _, e := range r.Log().Errors() {
		if e.Condition == ConditionValuesInconsistent {
			found = true
		}
	}
	assert.True(t, found)
}

func TestPropertyFormWithActionTokenAllowsBothOps(t *testing.T) {
	src := `{"@context":` + minimalContext + `,"@type":"tm:ThingModel","title":"Lamp",
		"properties":{"voltage":{"type":"number",
			"forms":[{"op":["readproperty","writeproperty"],"contentType":"application/json","topic":"v/{action}"}]}}}`
	_, _, ok := parseAndValidate(t, src)
	assert.True(t, ok)
}

func TestServiceGroupIdOnlyOnActionEventOrSubscribeAllRoot(t *testing.T) {
	src := `{"@context":` + minimalContext + `,"@type":"tm:ThingModel","title":"Lamp",
		"properties":{"voltage":{"type":"number","readOnly":true,
			"forms":[{"op":["readproperty"],"contentType":"application/json","topic":"v","serviceGroupId":"g1"}]}}}`
	_, r, ok := parseAndValidate(t, src)
	assert.False(t, ok)
	found := false
	for _, e := range r.Log().Errors() {
		if e.Condition == ConditionPropertyUnsupported {
			found = true
		}
	}
	assert.True(t, found)
}

func TestTopicTokenMustBeRecognizedForKind(t *testing.T) {
	src := `{"@context":` + minimalContext + `,"@type":"tm:ThingModel","title":"Lamp",
		"actions":{"toggle":{"forms":[{"op":["invokeaction"],"contentType":"application/json","topic":"a/{bogus}"}]}}}`
	_, r, ok := parseAndValidate(t, src)
	assert.False(t, ok)
	found := false
	for _, e := range r.Log().Errors() {
		if e.Condition == ConditionPropertyUnsupportedValue {
			found = true
		}
	}
	assert.True(t, found)
}

func TestTopicExtensionTokenPrefixIsAllowed(t *testing.T) {
	src := `{"@context":` + minimalContext + `,"@type":"tm:ThingModel","title":"Lamp",
		"actions":{"toggle":{"forms":[{"op":["invokeaction"],"contentType":"application/json","topic":"a/{ex:Foo}"}]}}}`
	_, _, ok := parseAndValidate(t, src)
	assert.True(t, ok)
}

func TestTopicLevelMayNotStartWithDollar(t *testing.T) {
	src := `{"@context":` + minimalContext + `,"@type":"tm:ThingModel","title":"Lamp",
		"actions":{"toggle":{"forms":[{"op":["invokeaction"],"contentType":"application/json","topic":"$a/b"}]}}}`
	_, r, ok := parseAndValidate(t, src)
	assert.False(t, ok)
	found := false
	for _, e := range r.Log().Errors() {
		if e.Condition == ConditionPropertyInvalid {
			found = true
		}
	}
	assert.True(t, found)
}
