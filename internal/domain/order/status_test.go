package order

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var allStatuses = []Status{
	StatusPending, StatusConfirmed, StatusPreparing,
	StatusReady, StatusDelivered, StatusCancelled,
}

func TestParseStatus(t *testing.T) {
	for _, s := range allStatuses {
		parsed, err := ParseStatus(string(s))
		require.NoError(t, err)
		assert.Equal(t, s, parsed)
	}

	for _, raw := range []string{"", "shipped", "PENDING", "done"} {
		_, err := ParseStatus(raw)
		var uerr *UnknownStatusError
		require.ErrorAs(t, err, &uerr, "status %q", raw)
		assert.Equal(t, raw, uerr.Value)
	}
}

func TestCanTransition(t *testing.T) {
	legal := map[Status][]Status{
		StatusPending:   {StatusConfirmed, StatusCancelled},
		StatusConfirmed: {StatusPreparing, StatusCancelled},
		StatusPreparing: {StatusReady, StatusCancelled},
		StatusReady:     {StatusDelivered},
		StatusDelivered: nil,
		StatusCancelled: nil,
	}

	for _, from := range allStatuses {
		for _, to := range allStatuses {
			want := from == to
			for _, next := range legal[from] {
				if next == to {
					want = true
				}
			}
			assert.Equal(t, want, CanTransition(from, to), "%s -> %s", from, to)
		}
	}
}

func TestTerminal(t *testing.T) {
	assert.True(t, StatusDelivered.Terminal())
	assert.True(t, StatusCancelled.Terminal())
	for _, s := range []Status{StatusPending, StatusConfirmed, StatusPreparing, StatusReady} {
		assert.False(t, s.Terminal(), "%s", s)
	}
}
