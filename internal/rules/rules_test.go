package rules

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/academy/internal/grading"
)

const minimalDoc = `
version: v1.2.0
rule_sets:
  - id: div
    title: Div
    criteria:
      - id: opens
        match: any
        patterns: ["<div"]
      - id: closes
        patterns: ["</div>"]
    tiers:
      - id: missing-close
        level: insufficient
        when:
          all_of: [opens]
          none_of: [closes]
        message: missing closing tag
      - id: done
        level: excellent
        min_score: 2
        message: "{{.Score}}/{{.MaxScore}}"
      - id: floor
        level: insufficient
        min_score: 0
        message: try again
`

func TestBuiltinDocumentBuilds(t *testing.T) {
	doc, err := Parse(Builtin())
	require.NoError(t, err)
	assert.Equal(t, "v1.0.0", doc.Version)

	engine, err := doc.Build()
	require.NoError(t, err)
	assert.Equal(t, []string{
		"terminal-command",
		"navigation-prompt",
		"css-hidden-element",
		"html-div",
		"api-key-storage",
	}, engine.RuleSetIDs())
}

func TestBuiltinRuleSetsHaveFloorAndHints(t *testing.T) {
	engine, err := NewLoader(nil).Default()
	require.NoError(t, err)

	for _, rs := range engine.RuleSets() {
		for _, c := range rs.Criteria() {
			assert.NotEmpty(t, c.Hint, "rule set %q criterion %q has no hint", rs.ID(), c.ID)
		}
		// Every rule set resolves an empty answer to its lowest level.
		v := rs.Evaluate("")
		assert.Equal(t, grading.LevelInsufficient, v.Level, "rule set %q", rs.ID())
	}
}

func TestParse_Minimal(t *testing.T) {
	doc, err := Parse([]byte(minimalDoc))
	require.NoError(t, err)
	require.Len(t, doc.RuleSets, 1)

	def := doc.RuleSets[0].Definition()
	assert.Equal(t, "div", def.ID)
	require.Len(t, def.Tiers, 3)
	require.NotNil(t, def.Tiers[0].When)
	assert.Equal(t, []string{"opens"}, def.Tiers[0].When.AllOf)
	assert.Equal(t, []string{"closes"}, def.Tiers[0].When.NoneOf)
	assert.Nil(t, def.Tiers[1].When)
	assert.Equal(t, 2, def.Tiers[1].MinScore)

	engine, err := doc.Build()
	require.NoError(t, err)
	v, err := engine.Evaluate("div", "<DIV>hi</DIV>")
	require.NoError(t, err)
	assert.Equal(t, "2/2", v.Message)
}

func TestParse_Rejects(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		wantErr string
	}{
		{"empty", "", "document is empty"},
		{"not yaml", "version: [", "parse rule document"},
		{"missing rule sets", "version: v1.0.0\n", "schema validation failed"},
		{"unknown level", strings.Replace(minimalDoc, "level: excellent", "level: superb", 1), "schema validation failed"},
		{"unknown field", strings.Replace(minimalDoc, "title: Div", "title: Div\n    weight: 3", 1), "schema validation failed"},
		{"bad match mode", strings.Replace(minimalDoc, "match: any", "match: xor", 1), "schema validation failed"},
		{"empty patterns", strings.Replace(minimalDoc, `patterns: ["</div>"]`, "patterns: []", 1), "schema validation failed"},
		{"bad version", strings.Replace(minimalDoc, "v1.2.0", "v1.x", 1), "not a valid semantic version"},
		{"unsupported major", strings.Replace(minimalDoc, "v1.2.0", "v2.0.0", 1), "not supported"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestBuild_ReportsEveryInvalidRuleSet(t *testing.T) {
	doc := `
version: v1.0.0
rule_sets:
  - id: first
    criteria:
      - id: a
        patterns: [a]
    tiers:
      - id: high
        level: excellent
        min_score: 1
        message: ok
  - id: second
    criteria:
      - id: a
        patterns: [a]
    tiers:
      - id: special
        level: excellent
        when:
          all_of: [missing]
        message: ok
      - id: floor
        level: insufficient
        message: no
`
	parsed, err := Parse([]byte(doc))
	require.NoError(t, err)

	_, err = parsed.Build()
	require.Error(t, err)
	assert.ErrorIs(t, err, grading.ErrInvalidRuleSet)
	assert.Contains(t, err.Error(), `"first"`)
	assert.Contains(t, err.Error(), "MinScore <= 0")
	assert.Contains(t, err.Error(), `"second"`)
	assert.Contains(t, err.Error(), `unknown criterion "missing"`)
}

func TestBuild_DuplicateRuleSetIDs(t *testing.T) {
	doc := minimalDoc + minimalDoc[strings.Index(minimalDoc, "  - id: div"):]
	parsed, err := Parse([]byte(doc))
	require.NoError(t, err)

	_, err = parsed.Build()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate rule set ID")
}

func TestRead(t *testing.T) {
	doc, err := Read(strings.NewReader(minimalDoc))
	require.NoError(t, err)
	assert.Equal(t, "v1.2.0", doc.Version)
}

func TestParse_AcceptsEveryLevel(t *testing.T) {
	for _, l := range grading.AllLevels() {
		doc := strings.Replace(minimalDoc, "level: excellent", "level: "+string(l), 1)
		_, err := Parse([]byte(doc))
		assert.NoError(t, err, "level %q", l)
	}
}
