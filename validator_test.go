package tmcore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestActionNamespaceAndMemberOfAreRecognized(t *testing.T) {
	src := `{"@context":` + minimalContext + `,"@type":"tm:ThingModel","title":"Lamp",
		"actions":{"toggle":{"namespace":"https://example.com/ns","memberOf":"LampFamily",
			"forms":[{"op":["invokeaction"],"contentType":"application/json","topic":"a"}]}}}`
	thing, r, ok := parseAndValidate(t, src)
	assert.True(t, ok)
	a := thing.Actions.Items["toggle"].Val
	require.NotNil(t, a.Namespace)
	assert.Equal(t, "https://example.com/ns", a.Namespace.Val)
	require.NotNil(t, a.MemberOf)
	assert.Equal(t, "LampFamily", a.MemberOf.Val)
	assert.Empty(t, r.Log().Errors())
}

func TestUnknownActionLevelKeyIsUnsupported(t *testing.T) {
	src := `{"@context":` + minimalContext + `,"@type":"tm:ThingModel","title":"Lamp",
		"actions":{"toggle":{"bogusKey":1,
			"forms":[{"op":["invokeaction"],"contentType":"application/json","topic":"a"}]}}}`
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

func TestUnknownActionLevelKeyWithRecognizedPrefixWarns(t *testing.T) {
	src := `{"@context":` + minimalContext + `,"@type":"tm:ThingModel","title":"Lamp",
		"actions":{"toggle":{"mqv:custom":1,
			"forms":[{"op":["invokeaction"],"contentType":"application/json","topic":"a"}]}}}`
	_, r, ok := parseAndValidate(t, src)
	assert.True(t, ok)
	found := false
	for _, w := range r.Log().Warnings() {
		if w.Condition == ConditionPropertyUnsupported {
			found = true
		}
	}
	assert.True(t, found)
}

func TestLinkRequiresKnownRelVocabulary(t *testing.T) {
	src := `{"@context":` + minimalContext + `,"@type":"tm:ThingModel","title":"Lamp",
		"links":[{"rel":"bogus","href":"other.tm.json","type":"application/tm+json"}]}`
	_, r, ok := parseAndValidate(t, src)
	assert.False(t, ok)
	require.NotEmpty(t, r.Log().Errors())
	assert.Equal(t, ConditionPropertyUnsupportedValue, r.Log().Errors()[0].Condition)
}

func TestLinkTypeMustMatchRel(t *testing.T) {
	src := `{"@context":` + minimalContext + `,"@type":"tm:ThingModel","title":"Lamp",
		"links":[{"rel":"extends","href":"other.tm.json","type":"application/json"}]}`
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

func TestTypedReferenceLinkRequiresRefType(t *testing.T) {
	src := `{"@context":` + minimalContext + `,"@type":"tm:ThingModel","title":"Lamp",
		"links":[{"rel":"typedReference","href":"other.tm.json#/Volt","type":"application/tm+json"}]}`
	_, r, ok := parseAndValidate(t, src)
	assert.False(t, ok)
	found := false
	for _, e := range r.Log().Errors() {
		if e.Condition == ConditionPropertyMissing {
			found = true
		}
	}
	assert.True(t, found)
}

func TestRefTypeOnlyPermittedOnTypedReference(t *testing.T) {
	src := `{"@context":` + minimalContext + `,"@type":"tm:ThingModel","title":"Lamp",
		"links":[{"rel":"extends","href":"other.tm.json","type":"application/tm+json","refType":"Volt"}]}`
	_, r, ok := parseAndValidate(t, src)
	assert.False(t, ok)
}

func TestAtMostOneSchemaNamingLink(t *testing.T) {
	src := `{"@context":` + minimalContext + `,"@type":"tm:ThingModel","title":"Lamp",
		"links":[
			{"rel":"schemaNaming","href":"a.json","type":"application/json"},
			{"rel":"schemaNaming","href":"b.json","type":"application/json"}
		]}`
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

func TestPlatformPrefixedLinkRequiresPlatformContext(t *testing.T) {
	src := `{"@context":` + minimalContext + `,"@type":"tm:ThingModel","title":"Lamp",
		"links":[{"rel":"mqp:capability","href":"cap.tm.json","type":"application/tm+json"}]}`
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

func TestTypeRefValidatesRefSyntax(t *testing.T) {
	src := `{"@context":` + minimalContext + `,"@type":"tm:ThingModel","title":"Lamp","typeRef":"#Bad"}`
	_, r, ok := parseAndValidate(t, src)
	assert.False(t, ok)
	require.Len(t, r.Log().Errors(), 1)
	assert.Equal(t, ConditionPropertyInvalid, r.Log().Errors()[0].Condition)
}

func TestSchemaResolverFindsDefinedSchema(t *testing.T) {
	src := `{"@context":` + minimalContext + `,"@type":"tm:ThingModel","title":"Lamp",
		"schemaDefinitions":{"Volt":{"type":"number"}},
		"properties":{"voltage":{"ref":"Volt","forms":[{"op":["readproperty"],"contentType":"application/json","topic":"v"}]}}}`
	_, _, ok := parseAndValidate(t, src)
	assert.True(t, ok)
}
