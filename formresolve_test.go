package tmcore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeOneForm(t *testing.T, src string) *Form {
	t.Helper()
	ds := newDecodeState([]byte(src))
	v, err := decodeEntityValue[Form, *Form](ds)
	require.NoError(t, err)
	return v.Val
}

func decodeSchemaDefs(t *testing.T, src string) *Map[Value[*DataSchema]] {
	t.Helper()
	ds := newDecodeState([]byte(src))
	m, err := deserializeMap(ds, decodeEntityValue[DataSchema, *DataSchema])
	require.NoError(t, err)
	return &m
}

func TestResolveFormInfoDerivesJSONFormatAndTopic(t *testing.T) {
	f := decodeOneForm(t, `{"op":["invokeaction"],"contentType":"application/json","topic":"a/b"}`)
	info := resolveFormInfo(f, nil)
	assert.Equal(t, ContentJSON, info.Format)
	assert.Equal(t, "a/b", info.Topic)
}

func TestResolveFormInfoResolvesAdditionalResponseSchema(t *testing.T) {
	defs := decodeSchemaDefs(t, `{"Err":{"type":"object","properties":{"code":{"type":"integer"}}}}`)
	f := decodeOneForm(t, `{"op":["invokeaction"],"contentType":"application/json","topic":"a",
		"additionalResponses":[{"schema":"Err","success":false}]}`)
	info := resolveFormInfo(f, defs)
	assert.True(t, info.HasErrorResponse)
	assert.Equal(t, "Err", info.ErrorSchemaName)
	require.NotNil(t, info.ErrorSchema)
	assert.Equal(t, SchemaObject, info.ErrorSchema.Type.Val)
}

func TestResolveFormInfoDefaultsSuccessTrueWhenAbsent(t *testing.T) {
	defs := decodeSchemaDefs(t, `{"Status":{"type":"object","properties":{}}}`)
	f := decodeOneForm(t, `{"op":["invokeaction"],"contentType":"application/json","topic":"a",
		"additionalResponses":[{"schema":"Status"}]}`)
	info := resolveFormInfo(f, defs)
	assert.False(t, info.HasErrorResponse)
}

func TestResolveFormInfoAdditionalResponseContentTypeOverridesFormFormat(t *testing.T) {
	defs := decodeSchemaDefs(t, `{"Err":{"type":"object","properties":{}}}`)
	f := decodeOneForm(t, `{"op":["invokeaction"],"contentType":"application/json","topic":"a",
		"additionalResponses":[{"schema":"Err","contentType":"application/octet-stream","success":false}]}`)
	info := resolveFormInfo(f, defs)
	assert.Equal(t, ContentJSON, info.Format)
	assert.Equal(t, ContentRaw, info.ErrorFormat)
}

func TestResolveFormInfoUnresolvedSchemaLeavesNilWithoutPanic(t *testing.T) {
	f := decodeOneForm(t, `{"op":["invokeaction"],"contentType":"application/json","topic":"a",
		"additionalResponses":[{"schema":"Missing"}]}`)
	info := resolveFormInfo(f, nil)
	assert.Nil(t, info.ErrorSchema)
	assert.Equal(t, "Missing", info.ErrorSchemaName)
}

func TestResolveFormInfoHeaderCodeResolvesSchema(t *testing.T) {
	defs := decodeSchemaDefs(t, `{"Code":{"type":"string","enum":["Ok","Bad"]}}`)
	f := decodeOneForm(t, `{"op":["invokeaction"],"contentType":"application/json","topic":"a","headerCode":"Code"}`)
	info := resolveFormInfo(f, defs)
	require.NotNil(t, info.HeaderCodeSchema)
	assert.Equal(t, SchemaString, info.HeaderCodeSchema.Type.Val)
}
