// Credit to https://github.com/santhosh-tekuri/jsonschema for the RFC 3339
// date/time parsing logic adapted below.
package tmcore

import (
	"strconv"
)

// stringFormats maps the recognized DataSchema string formats (§4 DataSchema,
// string variant) to their validation functions.
var stringFormats = map[string]func(string) bool{
	"date-time": isDateTime,
	"date":      isDate,
	"time":      isTime,
	"uuid":      isUUID,
}

// isDateTime tells whether s is a valid date-time as defined by RFC 3339,
// section 5.6.
func isDateTime(s string) bool {
	if len(s) < 20 {
		return false
	}
	if s[10] != 'T' && s[10] != 't' {
		return false
	}
	return isDate(s[:10]) && isTime(s[11:])
}

// isDate tells whether s is a valid full-date production as defined by
// RFC 3339, section 5.6.
func isDate(s string) bool {
	if len(s) != 10 || s[4] != '-' || s[7] != '-' {
		return false
	}
	year, err := strconv.Atoi(s[0:4])
	if err != nil {
		return false
	}
	month, err := strconv.Atoi(s[5:7])
	if err != nil || month < 1 || month > 12 {
		return false
	}
	day, err := strconv.Atoi(s[8:10])
	if err != nil || day < 1 || day > daysInMonth(year, month) {
		return false
	}
	return true
}

func daysInMonth(year, month int) int {
	switch month {
	case 1, 3, 5, 7, 8, 10, 12:
		return 31
	case 4, 6, 9, 11:
		return 30
	case 2:
		if isLeapYear(year) {
			return 29
		}
		return 28
	default:
		return 0
	}
}

func isLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// isTime tells whether s is a valid full-time production as defined by
// RFC 3339, section 5.6. Go's time package does not support leap seconds,
// so this is parsed manually.
func isTime(s string) bool {
	if len(s) < 9 || s[2] != ':' || s[5] != ':' {
		return false
	}
	inRange := func(str string, min, max int) (int, bool) {
		n, err := strconv.Atoi(str)
		if err != nil || n < min || n > max {
			return 0, false
		}
		return n, true
	}
	var h, m, sec int
	var ok bool
	if h, ok = inRange(s[0:2], 0, 23); !ok {
		return false
	}
	if m, ok = inRange(s[3:5], 0, 59); !ok {
		return false
	}
	if sec, ok = inRange(s[6:8], 0, 60); !ok {
		return false
	}
	rest := s[8:]

	if len(rest) > 0 && rest[0] == '.' {
		rest = rest[1:]
		digits := 0
		for len(rest) > 0 && rest[0] >= '0' && rest[0] <= '9' {
			digits++
			rest = rest[1:]
		}
		if digits == 0 {
			return false
		}
	}

	if len(rest) == 0 {
		return false
	}

	if rest[0] == 'z' || rest[0] == 'Z' {
		if len(rest) != 1 {
			return false
		}
	} else {
		if len(rest) != 6 || rest[3] != ':' {
			return false
		}
		var sign int
		switch rest[0] {
		case '+':
			sign = -1
		case '-':
			sign = +1
		default:
			return false
		}
		zh, ok := inRange(rest[1:3], 0, 23)
		if !ok {
			return false
		}
		zm, ok := inRange(rest[4:6], 0, 59)
		if !ok {
			return false
		}
		hm := (h*60 + m) + sign*(zh*60+zm)
		if hm < 0 {
			hm += 24 * 60
		}
		h, m = hm/60, hm%60
	}

	if sec == 60 && (h != 23 || m != 59) {
		return false
	}
	return true
}

// isUUID tells whether s is a canonical 8-4-4-4-12 hex UUID string.
func isUUID(s string) bool {
	parseHex := func(n int) bool {
		for n > 0 {
			if len(s) == 0 {
				return false
			}
			c := s[0]
			hex := (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
			if !hex {
				return false
			}
			s = s[1:]
			n--
		}
		return true
	}
	groups := []int{8, 4, 4, 4, 12}
	for i, n := range groups {
		if !parseHex(n) {
			return false
		}
		if i == len(groups)-1 {
			break
		}
		if len(s) == 0 || s[0] != '-' {
			return false
		}
		s = s[1:]
	}
	return len(s) == 0
}
