package models

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGenerateTeacherPassword(t *testing.T) {
	cases := []struct {
		name     string
		teacher  string
		phone    string
		expected string
	}{
		{name: "regular name and phone", teacher: "Sharma", phone: "9876543210", expected: "SHA3210"},
		{name: "phone with separators", teacher: "Sharma", phone: "+91 98765-43210", expected: "SHA3210"},
		{name: "empty name", teacher: "", phone: "9876543210", expected: "XXX3210"},
		{name: "short name", teacher: "Al", phone: "9876543210", expected: "AL3210"},
		{name: "empty phone", teacher: "Sharma", phone: "", expected: "SHA0000"},
		{name: "too few digits", teacher: "Sharma", phone: "12", expected: "SHA0000"},
		{name: "everything missing", teacher: "", phone: "", expected: "XXX0000"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.expected, GenerateTeacherPassword(tc.teacher, tc.phone))
		})
	}
}
