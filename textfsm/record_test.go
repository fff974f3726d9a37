package textfsm

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordMarshalJSON(t *testing.T) {
	tmpl := compile(t, `Value ZULU (\S+)
Value ALPHA (\S+)
Value List MEMBERS (\S+)

Start
  ^z ${ZULU}
  ^a ${ALPHA}
  ^m ${MEMBERS}
  ^-- -> Record
`)

	t.Run("fields follow definition order, not lexical order", func(t *testing.T) {
		records, err := tmpl.Run("a second\nz first\nm x\nm y\n--\n")
		require.NoError(t, err)
		require.Len(t, records, 1)

		out, err := json.Marshal(records[0])
		require.NoError(t, err)
		assert.Equal(t, `{"ZULU":"first","ALPHA":"second","MEMBERS":["x","y"]}`, string(out))
	})

	t.Run("unset scalars and lists have empty defaults", func(t *testing.T) {
		records, err := tmpl.Run("--\n")
		require.NoError(t, err)
		require.Len(t, records, 1)

		out, err := json.Marshal(records[0])
		require.NoError(t, err)
		assert.Equal(t, `{"ZULU":"","ALPHA":"","MEMBERS":[]}`, string(out))
	})
}

func TestRecordAccessors(t *testing.T) {
	tmpl := compile(t, `Value Key NAME (\S+)
Value List ADDRS (\S+)

Start
  ^${NAME} ${ADDRS} -> Record
`)
	records, err := tmpl.Run("eth0 10.0.0.1\n")
	require.NoError(t, err)
	require.Len(t, records, 1)
	rec := records[0]

	assert.Equal(t, []string{"NAME", "ADDRS"}, rec.FieldNames())
	assert.Equal(t, "eth0", rec.String("NAME"))
	assert.Equal(t, []string{"10.0.0.1"}, rec.List("ADDRS"))
	assert.Equal(t, []string{"NAME"}, rec.Keys())

	v, ok := rec.Get("NAME")
	require.True(t, ok)
	assert.Equal(t, "eth0", v)
	_, ok = rec.Get("MISSING")
	assert.False(t, ok)

	// Mismatched accessors degrade to zero values.
	assert.Empty(t, rec.String("ADDRS"))
	assert.Nil(t, rec.List("NAME"))
}
