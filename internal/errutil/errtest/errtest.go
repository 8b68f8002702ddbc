// Package errtest provides test assertions for oops errors.
package errtest

import (
	"testing"

	"github.com/samber/oops"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentx-labs/extreg/internal/errutil"
)

// AssertCode fails the test unless err is an oops error carrying code.
func AssertCode(t testing.TB, err error, code string) {
	t.Helper()
	require.Error(t, err)
	assert.Equal(t, code, errutil.Code(err), "error: %v", err)
}

// AssertContext fails the test unless err carries key=value in its oops
// context.
func AssertContext(t testing.TB, err error, key string, value any) {
	t.Helper()
	oopsErr, ok := oops.AsOops(err)
	require.True(t, ok, "not an oops error: %T: %v", err, err)
	fields := oopsErr.Context()
	require.Contains(t, fields, key)
	assert.Equal(t, value, fields[key])
}
