package tmcore

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitRefSeparatesFileAndFragment(t *testing.T) {
	file, fragment := splitRef("other.tm.json#/schemaDefinitions/Volt")
	assert.Equal(t, "other.tm.json", file)
	assert.Equal(t, "/schemaDefinitions/Volt", fragment)
}

func TestSplitRefWithoutFragmentReturnsEmptyFragment(t *testing.T) {
	file, fragment := splitRef("Volt")
	assert.Equal(t, "Volt", file)
	assert.Equal(t, "", fragment)
}

func TestCanonicalRefPathWithoutFragmentIsBareFile(t *testing.T) {
	assert.Equal(t, "other.tm.json", canonicalRefPath("other.tm.json", ""))
}

func TestCanonicalRefPathWalksPointerSegments(t *testing.T) {
	got := canonicalRefPath("other.tm.json", "/schemaDefinitions/Volt")
	assert.Equal(t, "other.tm.json#/schemaDefinitions/Volt", got)
}

func TestCanonicalRefPathReescapesTildeAndSlash(t *testing.T) {
	got := canonicalRefPath("f.json", "/a~1b/c~0d")
	assert.Equal(t, "f.json#/a~1b/c~0d", got)
}

func TestGeneratedNameUsesTitleWhenPresent(t *testing.T) {
	title := Value[string]{Val: "line_voltage"}
	got := generatedName(&title, "voltage")
	assert.Equal(t, "LineVoltage", got)
}

func TestGeneratedNameFallsBackToKeyWithoutTitle(t *testing.T) {
	got := generatedName(nil, "line_voltage")
	assert.Equal(t, "LineVoltage", got)
}

func TestGeneratedNameFallsBackToKeyWhenTitleEmpty(t *testing.T) {
	title := Value[string]{Val: ""}
	got := generatedName(&title, "voltage")
	assert.Equal(t, "Voltage", got)
}
