// Package apachetime parses the bracketed timestamp token found in Apache
// Common/Combined access logs and re-renders it in a sortable ISO-8601-like
// form.
//
// The input shape is fixed: DD/Mon/YYYY:HH:MM:SS ±OOOO, with exact digit
// counts and a case-sensitive three-letter month abbreviation. The UTC
// offset is carried through verbatim (reformatted, never converted), so
// lexicographic order of the output matches chronological order only among
// lines sharing the same offset.
package apachetime

import (
	"fmt"

	"logtab/pkg/fault"
)

// renderBufSize bounds the rendered timestamp. 19 bytes of date-time plus a
// sign and up to five offset digits fit comfortably; exceeding it means the
// components were out of range and rendering must fail rather than truncate.
const renderBufSize = 32

// months holds the twelve recognized abbreviations, index 0 = January.
var months = [12]string{
	"Jan", "Feb", "Mar", "Apr", "May", "Jun",
	"Jul", "Aug", "Sep", "Oct", "Nov", "Dec",
}

// Components is the decoded calendar moment of one Apache timestamp.
type Components struct {
	Day   int // day of month, as written (no range validation)
	Month int // 0-11
	Year  int // full four-digit year
	Hour  int
	Min   int
	Sec   int

	// Offset is the UTC offset consumed as a signed integer in HHMM shape:
	// "-0530" parses to -530, "+0300" to 300, "0000" to 0.
	Offset int
}

// Parse decodes the timestamp token starting at the beginning of s.
// The token must not include the surrounding brackets. Returns the decoded
// components and the number of bytes consumed; the byte at the returned
// offset is the first one after the token (the caller checks for ']').
func Parse(s string) (Components, int, error) {
	var c Components
	pos := 0

	day, pos, err := fixedDigits(s, pos, 2)
	if err != nil {
		return c, 0, err
	}
	pos, err = expect(s, pos, '/')
	if err != nil {
		return c, 0, err
	}

	mon, pos, err := parseMonth(s, pos)
	if err != nil {
		return c, 0, err
	}
	pos, err = expect(s, pos, '/')
	if err != nil {
		return c, 0, err
	}

	year, pos, err := fixedDigits(s, pos, 4)
	if err != nil {
		return c, 0, err
	}
	pos, err = expect(s, pos, ':')
	if err != nil {
		return c, 0, err
	}

	hour, pos, err := fixedDigits(s, pos, 2)
	if err != nil {
		return c, 0, err
	}
	pos, err = expect(s, pos, ':')
	if err != nil {
		return c, 0, err
	}

	min, pos, err := fixedDigits(s, pos, 2)
	if err != nil {
		return c, 0, err
	}
	pos, err = expect(s, pos, ':')
	if err != nil {
		return c, 0, err
	}

	sec, pos, err := fixedDigits(s, pos, 2)
	if err != nil {
		return c, 0, err
	}
	pos, err = expect(s, pos, ' ')
	if err != nil {
		return c, 0, err
	}

	offset, pos, err := signedOffset(s, pos)
	if err != nil {
		return c, 0, err
	}

	c.Day = day
	c.Month = mon
	c.Year = year
	c.Hour = hour
	c.Min = min
	c.Sec = sec
	c.Offset = offset
	return c, pos, nil
}

// Render produces the ISO-like encoding: YYYY-MM-DDTHH:MM:SS followed by
// the offset as a sign and four zero-padded digits (+0000 for a zero
// offset). The offset value itself is not range-checked, matching the
// verbatim-carry contract.
func (c Components) Render() (string, error) {
	out := fmt.Sprintf("%04d-%02d-%02dT%02d:%02d:%02d%+05d",
		c.Year, c.Month+1, c.Day, c.Hour, c.Min, c.Sec, c.Offset)
	if len(out) > renderBufSize {
		return "", fault.ErrTimeBufferSizeExceeded
	}
	return out, nil
}

// fixedDigits reads exactly n ASCII digits at pos.
func fixedDigits(s string, pos, n int) (int, int, error) {
	if pos+n > len(s) {
		return 0, pos, fault.ErrFailedToParseApacheDatetime
	}
	v := 0
	for i := 0; i < n; i++ {
		b := s[pos+i]
		if b < '0' || b > '9' {
			return 0, pos, fault.ErrFailedToParseApacheDatetime
		}
		v = v*10 + int(b-'0')
	}
	return v, pos + n, nil
}

// expect consumes the single byte b at pos.
func expect(s string, pos int, b byte) (int, error) {
	if pos >= len(s) || s[pos] != b {
		return pos, fault.ErrFailedToParseApacheDatetime
	}
	return pos + 1, nil
}

// parseMonth matches exactly three bytes against the month table,
// case-sensitively. An unrecognized abbreviation is its own fault so
// callers can tell "Xxx" apart from a structurally broken token.
func parseMonth(s string, pos int) (int, int, error) {
	if pos+3 > len(s) {
		return 0, pos, fault.ErrFailedToParseMonth
	}
	abbr := s[pos : pos+3]
	for i, m := range months {
		if m == abbr {
			return i, pos + 3, nil
		}
	}
	return 0, pos, fault.ErrFailedToParseMonth
}

// signedOffset reads the UTC offset: an optional sign followed by digits,
// at most five bytes in total.
func signedOffset(s string, pos int) (int, int, error) {
	start := pos
	neg := false
	if pos < len(s) && (s[pos] == '+' || s[pos] == '-') {
		neg = s[pos] == '-'
		pos++
	}
	v := 0
	digits := 0
	for pos < len(s) && pos-start < 5 && s[pos] >= '0' && s[pos] <= '9' {
		v = v*10 + int(s[pos]-'0')
		pos++
		digits++
	}
	if digits == 0 {
		return 0, start, fault.ErrFailedToParseApacheDatetime
	}
	if neg {
		v = -v
	}
	return v, pos, nil
}
