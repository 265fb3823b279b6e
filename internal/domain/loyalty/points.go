package loyalty

import "github.com/shopspring/decimal"

// pointsPerUnit is the accrual rate: one point per 10 currency units spent.
var pointsPerUnit = decimal.NewFromInt(10)

// redemptionRate is the discount value of a single point in currency units.
var redemptionRate = decimal.RequireFromString("0.5")

// PointsEarned computes the points accrued for a monetary total:
// floor(total / 10). Negative totals are rejected upstream by order
// validation, so the result is never negative for valid input.
func PointsEarned(total decimal.Decimal) int64 {
	return total.Div(pointsPerUnit).Floor().IntPart()
}

// RedemptionValue returns the currency discount a number of points is worth.
func RedemptionValue(points int64) decimal.Decimal {
	return decimal.NewFromInt(points).Mul(redemptionRate)
}
