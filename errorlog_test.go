package tmcore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorLogSingleFatal(t *testing.T) {
	log := NewErrorLog()
	log.add(ErrorRecord{Condition: ConditionJSONInvalid, Level: LevelFatal, Message: "first", File: "a.tm.json"})
	log.add(ErrorRecord{Condition: ConditionJSONInvalid, Level: LevelFatal, Message: "second", File: "a.tm.json"})

	require.NotNil(t, log.FatalError())
	assert.Equal(t, "first", log.FatalError().Message)
}

func TestErrorLogDeduplicates(t *testing.T) {
	log := NewErrorLog()
	rec := ErrorRecord{Condition: ConditionPropertyMissing, Level: LevelError, Message: "missing title", File: "a.tm.json", Line: 3}
	log.add(rec)
	log.add(rec)

	assert.Len(t, log.Errors(), 1)
	assert.True(t, log.HasErrors())
}

func TestErrorLogWarningsAndErrorsAreIndependent(t *testing.T) {
	log := NewErrorLog()
	log.add(ErrorRecord{Condition: ConditionPropertyUnsupported, Level: LevelWarning, Message: "w", File: "a.tm.json", Line: 1})
	log.add(ErrorRecord{Condition: ConditionPropertyInvalid, Level: LevelError, Message: "e", File: "a.tm.json", Line: 2})

	assert.Len(t, log.Warnings(), 1)
	assert.Len(t, log.Errors(), 1)
	assert.True(t, log.HasErrors())
}

func TestCheckForDuplicatesInThingsFlagsRepeatedName(t *testing.T) {
	r := NewReporter("a.tm.json", []byte("{\n  \"a\": 1,\n  \"b\": 2\n}"))
	r.registerNameInThing("Voltage", 0)
	r.registerNameInThing("Voltage", 10)

	r.Log().CheckForDuplicatesInThings(r)

	errs := r.Log().Errors()
	require.Len(t, errs, 2)
	for _, e := range errs {
		assert.Equal(t, ConditionDuplication, e.Condition)
	}
}

func TestCheckForDuplicatesInThingsFlagsRepeatedTopic(t *testing.T) {
	r := NewReporter("a.tm.json", []byte("{\n  \"a\": 1,\n  \"b\": 2\n}"))
	r.registerTopicInThing("devices/1/properties/voltage", 0, "devices/1/properties/voltage")
	r.registerTopicInThing("devices/1/properties/voltage", 5, "devices/1/properties/voltage")

	r.Log().CheckForDuplicatesInThings(r)

	errs := r.Log().Errors()
	require.Len(t, errs, 2)
	assert.Contains(t, errs[0].Message, "devices/1/properties/voltage")
}

func TestCheckForDuplicatesInSchemasIsSeparateFromThingNames(t *testing.T) {
	r := NewReporter("a.tm.json", []byte("{\n  \"a\": 1,\n  \"b\": 2\n}"))
	r.registerSchemaName("VoltageSchema", "schemas", "other", 0)
	r.registerSchemaName("VoltageSchema", "schemas", "other", 10)

	r.Log().CheckForDuplicatesInSchemas(r)

	assert.Len(t, r.Log().Errors(), 2)
}
