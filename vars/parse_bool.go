package vars

import "strings"

// ParseBool reports the boolean denoted by str and whether str denotes one at all.
func ParseBool(str string) (value bool, ok bool) {
	str = strings.ToLower(strings.TrimSpace(str))
	switch str {
	case "true", "t", "yes", "y", "on", "1":
		return true, true
	case "false", "f", "no", "n", "off", "0":
		return false, true
	}
	return false, false
}
