package tmcore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseNamingPolicyEmptyReturnsDefault(t *testing.T) {
	policy, err := ParseNamingPolicy(nil)
	require.NoError(t, err)
	assert.False(t, policy.SuppressTitles)
	assert.Empty(t, policy.NameRules)
}

func TestParseNamingPolicyJSON(t *testing.T) {
	doc := []byte(`{
		"suppressTitles": true,
		"capitalizeCaptures": true,
		"nameRules": {"^tmp_(.+)$": "Scratch{1}"},
		"templates": {"propSchema": "{0}Schema"}
	}`)
	policy, err := ParseNamingPolicy(doc)
	require.NoError(t, err)
	assert.True(t, policy.SuppressTitles)
	require.Len(t, policy.NameRules, 1)

	name, matched := policy.ExpandTemplate("tmp_voltage")
	require.True(t, matched)
	assert.Equal(t, "ScratchVoltage", name)

	tmpl, err := policy.TemplateFunc("propSchema")
	require.NoError(t, err)
	assert.Equal(t, "{0}Schema", tmpl)
}

func TestParseNamingPolicyYAMLFallback(t *testing.T) {
	doc := []byte("suppressTitles: false\nnameRules:\n  \"^evt_(.+)$\": \"{0}Event\"\n")
	policy, err := ParseNamingPolicy(doc)
	require.NoError(t, err)
	require.Len(t, policy.NameRules, 1)
	assert.Equal(t, "^evt_(.+)$", policy.NameRules[0].Pattern)
}

func TestParseNamingPolicyUnknownTemplateKey(t *testing.T) {
	doc := []byte(`{"templates": {"notARealTemplate": "x"}}`)
	_, err := ParseNamingPolicy(doc)
	assert.ErrorIs(t, err, ErrUnknownNamingPolicyKey)
}

func TestParseNamingPolicyInvalidRegex(t *testing.T) {
	doc := []byte(`{"nameRules": {"(": "x"}}`)
	_, err := ParseNamingPolicy(doc)
	assert.ErrorIs(t, err, ErrInvalidNameRule)
}

func TestNamingPolicyTemplateFuncUnknown(t *testing.T) {
	policy := DefaultNamingPolicy()
	_, err := policy.TemplateFunc("doesNotExist")
	assert.ErrorIs(t, err, ErrUnknownTemplateFunction)
}

func TestExpandCapturesCapitalization(t *testing.T) {
	got := expandCaptures("read{1}Resp", []string{"readvoltage_resp", "voltage"}, true)
	assert.Equal(t, "readVoltageResp", got)
}
