package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// YearBucket aggregates one calendar year's activity.
type YearBucket struct {
	Contributions decimal.Decimal
	Withdrawals   decimal.Decimal
}

// ContributionSummary is the output of Summarize: year-bucketed totals and
// the room remaining under the carry-forward rule.
type ContributionSummary struct {
	ByYear              map[int]YearBucket
	TotalContributions  decimal.Decimal
	TotalWithdrawals    decimal.Decimal
	AvailableRoomNow    decimal.Decimal
	ThisYearWithdrawals decimal.Decimal
	StartYear           int
	CurrentYear         int
}

// Summarize buckets transactions by year and computes available room at now.
//
// Room rule: cumulative statutory limits over [startYear, currentYear], plus
// withdrawals from years strictly before the current year (a withdrawal only
// frees up room the following year), minus all contributions up to the
// current year, clamped at zero. A withdrawal dated in the current year is
// surfaced separately as ThisYearWithdrawals.
//
// Transactions dated before the eligibility start year are discarded
// entirely. Future-dated transactions accumulate into their own year bucket
// but never affect AvailableRoomNow. Negative amounts are filtered out;
// callers validate before persistence.
//
// Summarize is pure: same inputs, same output.
func Summarize(txs []Transaction, birthYear int, now time.Time) ContributionSummary {
	startYear := EligibilityStartYear(birthYear)
	currentYear := now.Year()

	byYear := make(map[int]YearBucket)
	for y := startYear; y <= currentYear; y++ {
		byYear[y] = YearBucket{Contributions: decimal.Zero, Withdrawals: decimal.Zero}
	}

	for _, t := range txs {
		y := t.Date.Year()
		if y < startYear {
			continue
		}
		if t.Amount.IsNegative() {
			continue
		}
		bucket, ok := byYear[y]
		if !ok {
			bucket = YearBucket{Contributions: decimal.Zero, Withdrawals: decimal.Zero}
		}
		switch t.Kind {
		case KindContribution:
			bucket.Contributions = bucket.Contributions.Add(t.Amount)
		case KindWithdrawal:
			bucket.Withdrawals = bucket.Withdrawals.Add(t.Amount)
		default:
			continue
		}
		byYear[y] = bucket
	}

	totalContributions := decimal.Zero
	totalWithdrawals := decimal.Zero
	withdrawalsBeforeThisYear := decimal.Zero
	for y := startYear; y <= currentYear; y++ {
		totalContributions = totalContributions.Add(byYear[y].Contributions)
		totalWithdrawals = totalWithdrawals.Add(byYear[y].Withdrawals)
		if y < currentYear {
			withdrawalsBeforeThisYear = withdrawalsBeforeThisYear.Add(byYear[y].Withdrawals)
		}
	}

	availableRoomNow := CumulativeLimits(startYear, currentYear).
		Add(withdrawalsBeforeThisYear).
		Sub(totalContributions)
	if availableRoomNow.IsNegative() {
		availableRoomNow = decimal.Zero
	}

	thisYearWithdrawals := decimal.Zero
	if bucket, ok := byYear[currentYear]; ok {
		thisYearWithdrawals = bucket.Withdrawals
	}

	return ContributionSummary{
		ByYear:              byYear,
		TotalContributions:  totalContributions,
		TotalWithdrawals:    totalWithdrawals,
		AvailableRoomNow:    availableRoomNow,
		ThisYearWithdrawals: thisYearWithdrawals,
		StartYear:           startYear,
		CurrentYear:         currentYear,
	}
}
