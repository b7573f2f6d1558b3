package domain

import "github.com/shopspring/decimal"

// FirstProgramYear is the year the TFSA program started. Eligibility never
// begins before it.
const FirstProgramYear = 2009

// annualLimits is the statutory contribution limit per calendar year,
// extended as new limits are announced. Years outside the table have a
// limit of zero.
var annualLimits = map[int]int64{
	2009: 5000,
	2010: 5000,
	2011: 5000,
	2012: 5000,
	2013: 5500,
	2014: 5500,
	2015: 10000,
	2016: 5500,
	2017: 5500,
	2018: 5500,
	2019: 6000,
	2020: 6000,
	2021: 6000,
	2022: 6000,
	2023: 6500,
	2024: 7000,
	2025: 7000,
	2026: 7000,
}

// LimitFor returns the statutory limit for a calendar year.
func LimitFor(year int) decimal.Decimal {
	return decimal.NewFromInt(annualLimits[year])
}

// CumulativeLimits sums statutory limits over [startYear, endYear].
func CumulativeLimits(startYear, endYear int) decimal.Decimal {
	sum := decimal.Zero
	for y := startYear; y <= endYear; y++ {
		sum = sum.Add(LimitFor(y))
	}
	return sum
}

// EligibilityStartYear derives the first year that counts toward
// contribution room: the year the holder turns 18, but never before the
// program started.
func EligibilityStartYear(birthYear int) int {
	start := birthYear + 18
	if start < FirstProgramYear {
		return FirstProgramYear
	}
	return start
}
