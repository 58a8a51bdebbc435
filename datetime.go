package toml

import "fmt"

// DateTimeKind distinguishes the four sub-kinds TOML 1.0.0 allows under the
// single "date/time" value grammar.
type DateTimeKind int

const (
	DateTimeOffset DateTimeKind = iota // 1979-05-27T07:32:00Z or with +HH:MM
	DateTimeLocal                      // 1979-05-27T07:32:00 (no offset)
	DateOnly                           // 1979-05-27
	TimeOnly                           // 07:32:00
)

// DateTime holds a civil date and/or time plus an optional UTC offset, per
// the sub-kind in Kind. Fields not meaningful for the sub-kind are zero.
type DateTime struct {
	Kind DateTimeKind

	Year, Month, Day      int
	Hour, Minute, Second  int
	Nanosecond            int
	HasOffset             bool
	OffsetMinutes         int // minutes east of UTC; meaningful iff HasOffset
}

// daysInMonth mirrors the calendar table maurice-toml's validate.go uses,
// including the leap-year adjustment for February.
func daysInMonth(year, month int) int {
	table := [13]int{0, 31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}
	if isLeapYear(year) {
		table[2] = 29
	}
	return table[month]
}

func isLeapYear(y int) bool {
	return y%4 == 0 && (y%100 != 0 || y%400 == 0)
}

// parseDateTime consumes a date/time literal starting at src[p] and returns
// the decoded value plus the offset just past it. The token grammar is
// scanned directly (no regexp) the way numbers are: digits, separators, and
// an optional trailing offset, validating shape and calendar ranges as it
// goes, matching the RFC 3339 subset in spec.md §4.3.
func parseDateTime(src string, p int) (*Value, int, error) {
	n := len(src)

	hasDate := p+10 <= n && isDateShape(src[p:p+10])
	var date struct{ y, mo, d int }
	if hasDate {
		var err error
		date.y, date.mo, date.d, err = parseDateDigits(src, p)
		if err != nil {
			return nil, p, err
		}
		p += 10
	}

	hasTime := false
	if hasDate {
		if p < n && (src[p] == 'T' || src[p] == 't' || src[p] == ' ') {
			// A space only introduces a time if digits:colon follow;
			// otherwise this date stands alone and the space is outside
			// the token.
			if src[p] != ' ' || looksLikeTimeAt(src, p+1) {
				p++
				hasTime = true
			}
		}
	} else {
		hasTime = true
	}

	var tm struct{ h, mi, s, ns int }
	if hasTime {
		var err error
		tm.h, tm.mi, tm.s, tm.ns, p, err = parseTimeDigits(src, p)
		if err != nil {
			return nil, p, err
		}
	}

	hasOffset := false
	offsetMinutes := 0
	if hasDate && hasTime {
		if p < n && (src[p] == 'Z' || src[p] == 'z') {
			hasOffset = true
			p++
		} else if p < n && (src[p] == '+' || src[p] == '-') {
			sign := src[p]
			var err error
			offsetMinutes, p, err = parseOffsetDigits(src, p)
			if err != nil {
				return nil, p, err
			}
			if sign == '-' {
				offsetMinutes = -offsetMinutes
			}
			hasOffset = true
		}
	}

	var dt DateTime
	switch {
	case hasDate && hasTime && hasOffset:
		dt = DateTime{Kind: DateTimeOffset, Year: date.y, Month: date.mo, Day: date.d,
			Hour: tm.h, Minute: tm.mi, Second: tm.s, Nanosecond: tm.ns,
			HasOffset: true, OffsetMinutes: offsetMinutes}
	case hasDate && hasTime:
		dt = DateTime{Kind: DateTimeLocal, Year: date.y, Month: date.mo, Day: date.d,
			Hour: tm.h, Minute: tm.mi, Second: tm.s, Nanosecond: tm.ns}
	case hasDate:
		dt = DateTime{Kind: DateOnly, Year: date.y, Month: date.mo, Day: date.d}
	default:
		dt = DateTime{Kind: TimeOnly, Hour: tm.h, Minute: tm.mi, Second: tm.s, Nanosecond: tm.ns}
	}
	return newDateTimeValue(dt), p, nil
}

func isDateShape(s string) bool {
	if len(s) != 10 {
		return false
	}
	return isDigit(s[0]) && isDigit(s[1]) && isDigit(s[2]) && isDigit(s[3]) &&
		s[4] == '-' && isDigit(s[5]) && isDigit(s[6]) &&
		s[7] == '-' && isDigit(s[8]) && isDigit(s[9])
}

func looksLikeTimeAt(src string, p int) bool {
	return p+1 < len(src) && isDigit(src[p]) && isDigit(src[p+1])
}

func parseDateDigits(src string, p int) (int, int, int, error) {
	y := atoi(src[p : p+4])
	mo := atoi(src[p+5 : p+7])
	d := atoi(src[p+8 : p+10])
	if mo < 1 || mo > 12 {
		return 0, 0, 0, errAt(src, p, "month out of range: %s", src[p:p+10])
	}
	if d < 1 || d > daysInMonth(y, mo) {
		return 0, 0, 0, errAt(src, p, "day out of range for month: %s", src[p:p+10])
	}
	return y, mo, d, nil
}

// parseTimeDigits parses HH:MM:SS(.fraction)? and returns the new cursor.
func parseTimeDigits(src string, p int) (h, mi, s, ns, newP int, err error) {
	n := len(src)
	start := p
	if p+5 > n || !isDigit(src[p]) || !isDigit(src[p+1]) || src[p+2] != ':' ||
		!isDigit(src[p+3]) || !isDigit(src[p+4]) {
		return 0, 0, 0, 0, p, errAt(src, p, "malformed time")
	}
	h = atoi(src[p : p+2])
	mi = atoi(src[p+3 : p+5])
	p += 5
	if h > 23 {
		return 0, 0, 0, 0, p, errAt(src, start, "hour out of range")
	}
	if mi > 59 {
		return 0, 0, 0, 0, p, errAt(src, start, "minute out of range")
	}
	if p+3 > n || src[p] != ':' || !isDigit(src[p+1]) || !isDigit(src[p+2]) {
		return 0, 0, 0, 0, p, errAt(src, start, "malformed time: seconds required")
	}
	if p+3 <= n && src[p] == ':' && isDigit(src[p+1]) && isDigit(src[p+2]) {
		s = atoi(src[p+1 : p+3])
		p += 3
		if s > 60 {
			return 0, 0, 0, 0, p, errAt(src, start, "second out of range")
		}
		if p < n && src[p] == '.' {
			j := p + 1
			for j < n && isDigit(src[j]) {
				j++
			}
			if j == p+1 {
				return 0, 0, 0, 0, p, errAt(src, p, "trailing dot in time fraction")
			}
			ns = fractionToNanos(src[p+1 : j])
			p = j
		}
	}
	return h, mi, s, ns, p, nil
}

// fractionToNanos truncates/pads a fractional-seconds digit string to
// nanosecond precision, per spec.md §4.3's "implementations may truncate
// beyond millisecond precision but must parse without error".
func fractionToNanos(digits string) int {
	if len(digits) > 9 {
		digits = digits[:9]
	}
	for len(digits) < 9 {
		digits += "0"
	}
	return atoi(digits)
}

func parseOffsetDigits(src string, p int) (int, int, error) {
	start := p
	p++ // sign
	if p+5 > len(src) || !isDigit(src[p]) || !isDigit(src[p+1]) || src[p+2] != ':' ||
		!isDigit(src[p+3]) || !isDigit(src[p+4]) {
		return 0, p, errAt(src, start, "malformed UTC offset")
	}
	oh := atoi(src[p : p+2])
	om := atoi(src[p+3 : p+5])
	p += 5
	if oh > 23 {
		return 0, p, errAt(src, start, "offset hour out of range")
	}
	if om > 59 {
		return 0, p, errAt(src, start, "offset minute out of range")
	}
	return oh*60 + om, p, nil
}

func atoi(s string) int {
	n := 0
	for i := 0; i < len(s); i++ {
		n = n*10 + int(s[i]-'0')
	}
	return n
}

// String renders a DateTime back to its canonical RFC 3339-ish textual
// form, used by error messages and the tagged-JSON compliance decoder.
func (d DateTime) String() string {
	switch d.Kind {
	case DateOnly:
		return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
	case TimeOnly:
		return formatTime(d)
	case DateTimeLocal:
		return fmt.Sprintf("%04d-%02d-%02dT%s", d.Year, d.Month, d.Day, formatTime(d))
	default: // DateTimeOffset
		return fmt.Sprintf("%04d-%02d-%02dT%s%s", d.Year, d.Month, d.Day, formatTime(d), formatOffset(d))
	}
}

func formatTime(d DateTime) string {
	s := fmt.Sprintf("%02d:%02d:%02d", d.Hour, d.Minute, d.Second)
	if d.Nanosecond > 0 {
		frac := fmt.Sprintf("%09d", d.Nanosecond)
		for len(frac) > 0 && frac[len(frac)-1] == '0' {
			frac = frac[:len(frac)-1]
		}
		s += "." + frac
	}
	return s
}

func formatOffset(d DateTime) string {
	if d.OffsetMinutes == 0 {
		return "Z"
	}
	sign := "+"
	m := d.OffsetMinutes
	if m < 0 {
		sign = "-"
		m = -m
	}
	return fmt.Sprintf("%s%02d:%02d", sign, m/60, m%60)
}
