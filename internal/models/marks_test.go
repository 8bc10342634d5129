package models

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGradeBands(t *testing.T) {
	cases := []struct {
		percentage float64
		grade      string
	}{
		{95, "A+"},
		{90, "A+"},
		{89.99, "A"},
		{80, "A"},
		{70, "B"},
		{60, "C"},
		{50, "D"},
		{49.99, "F"},
		{0, "F"},
	}

	for _, tc := range cases {
		require.Equal(t, tc.grade, Grade(tc.percentage), "percentage %v", tc.percentage)
	}
}

func TestPassStatusBoundary(t *testing.T) {
	require.Equal(t, "PASS", PassStatus(40))
	require.Equal(t, "PASS", PassStatus(40.0001))
	require.Equal(t, "FAIL", PassStatus(39.9999))
	require.Equal(t, "FAIL", PassStatus(0))
}

func TestParseRecheckStatus(t *testing.T) {
	for _, value := range []string{"pending", "PENDING", " Pending "} {
		status, err := ParseRecheckStatus(value)
		require.NoError(t, err)
		require.Equal(t, RecheckStatusPending, status)
	}

	_, err := ParseRecheckStatus("RESOLVED")
	require.Error(t, err)
}
