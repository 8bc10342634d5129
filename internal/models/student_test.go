package models

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalizeDOB(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  string
	}{
		{name: "iso passthrough", input: "2011-04-09", want: "2011-04-09"},
		{name: "slash format", input: "09/04/2011", want: "2011-04-09"},
		{name: "dash format", input: "09-04-2011", want: "2011-04-09"},
		{name: "datetime suffix stripped", input: "2011-04-09T00:00:00Z", want: "2011-04-09"},
		{name: "unrecognized kept", input: "9th April 2011", want: "9th April 2011"},
		{name: "empty kept", input: "", want: ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, NormalizeDOB(tc.input))
		})
	}
}

func TestNormalizeDOBIsIdempotent(t *testing.T) {
	inputs := []string{"09/04/2011", "09-04-2011", "2011-04-09", "unknown"}
	for _, input := range inputs {
		once := NormalizeDOB(input)
		require.Equal(t, once, NormalizeDOB(once))
	}
}
