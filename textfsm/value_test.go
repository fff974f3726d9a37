package textfsm

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseValue(t *testing.T) {
	t.Run("plain value", func(t *testing.T) {
		v, err := parseValue(`Value HOSTNAME (\S+)`, 1)
		require.NoError(t, err)
		assert.Equal(t, "HOSTNAME", v.Name)
		assert.Equal(t, `\S+`, v.Pattern)
		assert.Equal(t, Modifier(0), v.Mods)
	})

	t.Run("comma separated modifiers", func(t *testing.T) {
		v, err := parseValue(`Value Required,Filldown VERSION (\d+\.\d+)`, 1)
		require.NoError(t, err)
		assert.True(t, v.Mods.Has(Required))
		assert.True(t, v.Mods.Has(Filldown))
		assert.False(t, v.Mods.Has(List))
	})

	t.Run("space separated modifiers", func(t *testing.T) {
		v, err := parseValue(`Value Key List NEIGHBOR (\S+)`, 1)
		require.NoError(t, err)
		assert.True(t, v.Mods.Has(Key))
		assert.True(t, v.Mods.Has(List))
	})

	t.Run("implicit modifier", func(t *testing.T) {
		v, err := parseValue(`Value Implicit SCRATCH (.*)`, 1)
		require.NoError(t, err)
		assert.True(t, v.Mods.Has(Implicit))
	})

	t.Run("regex body may contain spaces and parens", func(t *testing.T) {
		v, err := parseValue(`Value STATUS (up|down|administratively down)`, 1)
		require.NoError(t, err)
		assert.Equal(t, "up|down|administratively down", v.Pattern)

		v, err = parseValue(`Value UPTIME ((\d+ \w+, )+\d+ \w+)`, 1)
		require.NoError(t, err)
		assert.Equal(t, `(\d+ \w+, )+\d+ \w+`, v.Pattern)
	})

	t.Run("unknown modifier", func(t *testing.T) {
		_, err := parseValue(`Value Sticky NAME (\S+)`, 3)
		require.Error(t, err)
		var te *TemplateError
		require.ErrorAs(t, err, &te)
		assert.Equal(t, KindUnknownModifier, te.Kind)
		assert.Equal(t, 3, te.Line)
	})

	t.Run("missing parens", func(t *testing.T) {
		_, err := parseValue(`Value NAME \S+`, 1)
		requireTemplateErr(t, err, KindInvalidValueDefinition)
	})

	t.Run("missing name", func(t *testing.T) {
		_, err := parseValue(`Value (\S+)`, 1)
		requireTemplateErr(t, err, KindInvalidValueDefinition)
	})

	t.Run("malformed name", func(t *testing.T) {
		_, err := parseValue(`Value 9NAME (\S+)`, 1)
		requireTemplateErr(t, err, KindInvalidValueDefinition)
	})

	t.Run("regex body does not compile", func(t *testing.T) {
		_, err := parseValue(`Value NAME ([)`, 1)
		requireTemplateErr(t, err, KindInvalidValueDefinition)
	})
}

// requireTemplateErr asserts err is a *TemplateError of the given kind.
func requireTemplateErr(t *testing.T, err error, kind string) {
	t.Helper()
	require.Error(t, err)
	var te *TemplateError
	require.ErrorAs(t, err, &te)
	assert.Equal(t, kind, te.Kind)
}

func TestTemplateErrorIs(t *testing.T) {
	err := &TemplateError{Kind: KindMalformedRule, Line: 7, Detail: "x"}
	assert.True(t, errors.Is(err, &TemplateError{Kind: KindMalformedRule}))
	assert.False(t, errors.Is(err, &TemplateError{Kind: KindMissingStartState}))
}
