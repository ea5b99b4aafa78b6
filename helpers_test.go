package predictionguard

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/predictionguard/go-client/internal/testutil"
)

const testAPIKey = "test-key"

// newTestClient returns a client pointed at srv.
func newTestClient(t *testing.T, srv *testutil.Server, opts ...ClientOption) *Client {
	t.Helper()
	c, err := NewClient(NewConfig(testAPIKey, srv.URL), opts...)
	require.NoError(t, err)
	return c
}
