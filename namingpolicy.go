package tmcore

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/go-json-experiment/json"
	"github.com/goccy/go-yaml"
)

// templateFamily is the closed set of per-entity template functions a
// naming policy may define (§4.4).
var templateFamily = map[string]struct{}{
	"eventSchema":             {},
	"propSchema":              {},
	"writablePropSchema":      {},
	"propReadRespSchema":      {},
	"propWriteRespSchema":     {},
	"propValueSchema":         {},
	"actionInSchema":          {},
	"actionOutSchema":         {},
	"actionRespSchema":        {},
	"backupSchemaName":        {},
	"propReadActName":         {},
	"propWriteActName":        {},
	"propMaintainerBinder":    {},
	"propConsumerBinder":      {},
	"actionExecutorBinder":    {},
	"actionInvokerBinder":     {},
	"eventSenderBinder":       {},
	"eventReceiverBinder":     {},
}

// NameRule is one entry of a naming policy's ordered rule list: a regex
// matched against a schema key, expanded into a template where "{i}"
// expands to the i-th capture group (§4.4).
type NameRule struct {
	Pattern            string
	Template           string
	CapitalizeCaptures bool

	compiled *regexp.Regexp
}

// NamingPolicy is the opaque configuration object the Validator and Name
// Utilities consult (§4.4, §6). It is constructed by an external loader
// (out of scope, §1) that has already parsed the naming-rule file and
// built any regex engine configuration; ParseNamingPolicy only decodes the
// already-read bytes of the closed JSON/YAML schema into this struct.
type NamingPolicy struct {
	SuppressTitles     bool
	CapitalizeCaptures bool
	NameRules          []NameRule
	Templates          map[string]string // closed set, see templateFamily
}

// rawNamingPolicy mirrors the closed on-disk schema (§6).
type rawNamingPolicy struct {
	SuppressTitles     bool              `json:"suppressTitles" yaml:"suppressTitles"`
	CapitalizeCaptures bool              `json:"capitalizeCaptures" yaml:"capitalizeCaptures"`
	NameRules          map[string]string `json:"nameRules" yaml:"nameRules"`
	Templates          map[string]string `json:"templates" yaml:"templates"`
}

// ParseNamingPolicy decodes naming policy bytes as JSON, falling back to
// YAML (the sibling format, SPEC_FULL.md §10.3) when the bytes do not start
// with a JSON object or array token. A nil/empty input returns the default
// policy (§6: "Absent file ⇒ defaults used").
func ParseNamingPolicy(data []byte) (*NamingPolicy, error) {
	if len(data) == 0 {
		return DefaultNamingPolicy(), nil
	}

	var raw rawNamingPolicy
	trimmed := strings.TrimSpace(string(data))
	var decodeErr error
	if strings.HasPrefix(trimmed, "{") || strings.HasPrefix(trimmed, "[") {
		decodeErr = json.Unmarshal(data, &raw)
	} else {
		decodeErr = yaml.Unmarshal(data, &raw)
	}
	if decodeErr != nil {
		return nil, fmt.Errorf("%w: %v", ErrNamingPolicyDecode, decodeErr)
	}

	policy := &NamingPolicy{
		SuppressTitles:     raw.SuppressTitles,
		CapitalizeCaptures: raw.CapitalizeCaptures,
		Templates:          make(map[string]string),
	}

	for key, tmpl := range raw.Templates {
		if _, ok := templateFamily[key]; !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownNamingPolicyKey, key)
		}
		policy.Templates[key] = tmpl
	}

	for pattern, tmpl := range raw.NameRules {
		compiled, err := regexp.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("%w: %q: %v", ErrInvalidNameRule, pattern, err)
		}
		policy.NameRules = append(policy.NameRules, NameRule{
			Pattern:            pattern,
			Template:           tmpl,
			CapitalizeCaptures: raw.CapitalizeCaptures,
			compiled:           compiled,
		})
	}

	return policy, nil
}

// DefaultNamingPolicy returns the policy used when no naming-rule file is
// supplied (§6).
func DefaultNamingPolicy() *NamingPolicy {
	return &NamingPolicy{Templates: make(map[string]string)}
}

// ExpandTemplate applies the first of policy's rules whose pattern matches
// key and returns its expansion and true. When no rule matches it returns ""
// and false; it does not consult SuppressTitles and applies no fallback
// (§4.3.2, §4.4).
func (p *NamingPolicy) ExpandTemplate(key string) (string, bool) {
	for _, rule := range p.NameRules {
		m := rule.compiled.FindStringSubmatch(key)
		if m == nil {
			continue
		}
		return expandCaptures(rule.Template, m, rule.CapitalizeCaptures), true
	}
	return "", false
}

func expandCaptures(template string, captures []string, capitalize bool) string {
	var b strings.Builder
	for i := 0; i < len(template); i++ {
		if template[i] == '{' {
			j := i + 1
			for j < len(template) && template[j] != '}' {
				j++
			}
			if j < len(template) {
				idxStr := template[i+1 : j]
				var idx int
				if _, err := fmt.Sscanf(idxStr, "%d", &idx); err == nil && idx < len(captures) {
					cap := captures[idx]
					if capitalize {
						cap = capitalizeWord(cap)
					}
					b.WriteString(cap)
					i = j
					continue
				}
			}
		}
		b.WriteByte(template[i])
	}
	return b.String()
}

func capitalizeWord(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// TemplateFunc looks up a closed-set template-family entry by name,
// reporting ErrUnknownTemplateFunction if it is not in the family (§4.4).
func (p *NamingPolicy) TemplateFunc(name string) (string, error) {
	if _, ok := templateFamily[name]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownTemplateFunction, name)
	}
	return p.Templates[name], nil
}
