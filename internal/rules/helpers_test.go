package rules_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/vietanh2810/pronos-api/internal/rules"
)

var now = time.Date(2026, time.June, 14, 18, 0, 0, 0, time.UTC)

func ptr[T any](v T) *T {
	return &v
}

func requireKind(t *testing.T, err error, kind rules.ErrorKind) *rules.Error {
	t.Helper()

	var rerr *rules.Error
	require.ErrorAs(t, err, &rerr)
	require.Equal(t, kind, rerr.Kind, "unexpected error: %v", err)

	return rerr
}
