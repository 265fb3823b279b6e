package loyalty

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestPointsEarned(t *testing.T) {
	cases := []struct {
		total string
		want  int64
	}{
		{"0", 0},
		{"9.99", 0},
		{"10.00", 1},
		{"19.99", 1},
		{"36.97", 3},
		{"105.50", 10},
		{"1000.00", 100},
	}

	for _, tc := range cases {
		t.Run(tc.total, func(t *testing.T) {
			total := decimal.RequireFromString(tc.total)
			assert.Equal(t, tc.want, PointsEarned(total))
		})
	}
}

func TestRedemptionValue(t *testing.T) {
	assert.True(t, RedemptionValue(0).IsZero())
	assert.Equal(t, "0.50", RedemptionValue(1).StringFixed(2))
	assert.Equal(t, "10.00", RedemptionValue(20).StringFixed(2))
	assert.Equal(t, "52.50", RedemptionValue(105).StringFixed(2))
}

func TestHistoryEntrySigned(t *testing.T) {
	earned := HistoryEntry{Points: 7, Type: EntryEarned}
	assert.Equal(t, int64(7), earned.Signed())

	redeemed := HistoryEntry{Points: 7, Type: EntryRedeemed}
	assert.Equal(t, int64(-7), redeemed.Signed())
}
