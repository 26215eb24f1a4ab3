package core

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExpand(t *testing.T) {
	r := require.New(t)

	t.Setenv("DINKY_EXPAND_TEST", "flink")

	testCases := []struct {
		input    string
		expected string
	}{
		{"normal string", "normal string"},
		{"{{ env `HOME` }}", os.Getenv("HOME")},
		{"jdbc:{{ env `DINKY_EXPAND_TEST` }}", "jdbc:flink"},
		{"{{ envOr `DINKY_EXPAND_MISSING` `fallback` }}", "fallback"},
		{"{{ exec `echo \"hello\nbuddy\" | grep buddy` }}", "buddy"},
		{"{{ exec `echo  spaced` }}", "spaced"},
	}

	for _, tc := range testCases {
		actual, err := expand(tc.input)
		r.NoError(err)

		r.Equal(tc.expected, actual)
	}
}

func TestExpandOrDefault_InvalidTemplate(t *testing.T) {
	require.Equal(t, "{{ broken", expandOrDefault("{{ broken"))
}

func TestConnectionParams_Expand(t *testing.T) {
	r := require.New(t)

	t.Setenv("DINKY_EXPAND_URL", "postgres://localhost/dinky")

	params := &ConnectionParams{
		ID:   "id",
		Name: "name",
		Type: "postgres",
		URL:  "{{ env `DINKY_EXPAND_URL` }}",
	}

	expanded := params.Expand()
	r.Equal("postgres://localhost/dinky", expanded.URL)
	r.Equal(ConnectionID("id"), expanded.ID)
	// original stays untouched
	r.Equal("{{ env `DINKY_EXPAND_URL` }}", params.URL)
}
