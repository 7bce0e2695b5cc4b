// Copyright 2022 Molecula Corp. (DBA FeatureBase).
// SPDX-License-Identifier: Apache-2.0
package temporal

// Calendar arithmetic on the proleptic Gregorian calendar with astronomical
// year numbering (year 0 is 1 BC). Day numbers count from 1970-01-01.

const (
	// MinYear and MaxYear bound the years a Date can hold.
	MinYear = -5877641
	MaxYear = 5881580

	daysPerEra   = 146097
	epochShift   = 719468 // days from 0000-03-01 to 1970-01-01
	usPerSecond  = int64(1000000)
	usPerMinute  = 60 * usPerSecond
	usPerHour    = 60 * usPerMinute
	usPerDay     = 24 * usPerHour
	secondsInDay = 86400
)

var daysInMonth = [13]int{0, 31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}

// IsLeapYear reports whether y is a leap year: divisible by 4, and not by 100
// unless also by 400.
func IsLeapYear(y int64) bool {
	return y%4 == 0 && (y%100 != 0 || y%400 == 0)
}

// DaysInMonth returns the number of days in month m of year y. It returns 0
// for a month outside 1..12.
func DaysInMonth(y int64, m int) int {
	if m < 1 || m > 12 {
		return 0
	}
	if m == 2 && IsLeapYear(y) {
		return 29
	}
	return daysInMonth[m]
}

func floorDiv(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func floorMod(a, b int64) int64 {
	return a - floorDiv(a, b)*b
}

// daysFromCivil converts a calendar date to a day number. Fields are not
// validated.
func daysFromCivil(y int64, m, d int) int64 {
	if m <= 2 {
		y--
	}
	era := floorDiv(y, 400)
	yoe := y - era*400
	mp := int64((m + 9) % 12)
	doy := (153*mp+2)/5 + int64(d) - 1
	doe := yoe*365 + yoe/4 - yoe/100 + doy
	return era*daysPerEra + doe - epochShift
}

// civilFromDays is the inverse of daysFromCivil.
func civilFromDays(z int64) (y int64, m, d int) {
	z += epochShift
	era := floorDiv(z, daysPerEra)
	doe := z - era*daysPerEra
	yoe := (doe - doe/1460 + doe/36524 - doe/146096) / 365
	y = yoe + era*400
	doy := doe - (365*yoe + yoe/4 - yoe/100)
	mp := (5*doy + 2) / 153
	d = int(doy - (153*mp+2)/5 + 1)
	if mp < 10 {
		m = int(mp + 3)
	} else {
		m = int(mp - 9)
	}
	if m <= 2 {
		y++
	}
	return y, m, d
}
