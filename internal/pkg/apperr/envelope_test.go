package apperr

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRender_EmptyPair(t *testing.T) {
	require.Equal(t, `{"errorcode":null,"errormsg":null}`, Render("", ""))
}

func TestRender_CodeOnly(t *testing.T) {
	require.Equal(t, `{"errorcode":"error.unauthenticated","errormsg":null}`, Render("error.unauthenticated", ""))
}

func TestRender_CodeAndMessage(t *testing.T) {
	require.Equal(t, `{"errorcode":"error.unauthenticated","errormsg":"Not authenticated."}`, Render("error.unauthenticated", "Not authenticated."))
}

func TestRender_AlwaysValidJSONWithExactKeys(t *testing.T) {
	pairs := [][2]string{
		{"", ""},
		{"error.not.found", ""},
		{"", "something broke"},
		{"error.invalid.input", "field \"title\" is required"},
		{"код", "сообщение с юникодом ✓"},
	}
	for _, p := range pairs {
		out := Render(p[0], p[1])

		var m map[string]any
		require.NoError(t, json.Unmarshal([]byte(out), &m))
		require.Len(t, m, 2)
		require.Contains(t, m, "errorcode")
		require.Contains(t, m, "errormsg")
	}
}

func TestRender_Deterministic(t *testing.T) {
	first := Render("error.datastore", "redis down")
	for i := 0; i < 10; i++ {
		require.Equal(t, first, Render("error.datastore", "redis down"))
	}
}

func TestParseEnvelope_RoundTrip(t *testing.T) {
	pairs := [][2]string{
		{"", ""},
		{"error.unauthenticated", ""},
		{"", "internal detail"},
		{"error.already.exists", "user \"bob\" already registered"},
		{"error.internal", "newline\nand tab\tsurvive"},
	}
	for _, p := range pairs {
		code, msg, err := ParseEnvelope(Render(p[0], p[1]))
		require.NoError(t, err)
		require.Equal(t, p[0], code)
		require.Equal(t, p[1], msg)
	}
}

func TestParseEnvelope_Invalid(t *testing.T) {
	_, _, err := ParseEnvelope("{not json")
	require.Error(t, err)
}
