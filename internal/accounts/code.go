package accounts

import "strings"

// Depth returns the number of dot-separated segments in code, minus one.
func Depth(code string) int {
	if code == "" {
		return 0
	}
	return strings.Count(code, ".")
}

// CompareCodes orders dotted account codes segment by segment, comparing
// numeric segments as numbers: "2" < "2.1" < "10". A numeric segment sorts
// before a non-numeric one; two non-numeric segments compare as text.
// Returns -1, 0 or +1.
func CompareCodes(a, b string) int {
	as := strings.Split(a, ".")
	bs := strings.Split(b, ".")
	for i := 0; i < len(as) && i < len(bs); i++ {
		if c := compareSegment(as[i], bs[i]); c != 0 {
			return c
		}
	}
	switch {
	case len(as) < len(bs):
		return -1
	case len(as) > len(bs):
		return 1
	}
	return 0
}

func compareSegment(a, b string) int {
	aNum, bNum := isDigits(a), isDigits(b)
	switch {
	case aNum && bNum:
		// Digit strings of any length: strip leading zeros, then the
		// longer one is larger and equal lengths compare as text.
		at, bt := trimZeros(a), trimZeros(b)
		if len(at) != len(bt) {
			if len(at) < len(bt) {
				return -1
			}
			return 1
		}
		if c := strings.Compare(at, bt); c != 0 {
			return c
		}
		// "01" vs "1": fall through to text for a stable order.
	case aNum:
		return -1
	case bNum:
		return 1
	}
	return strings.Compare(a, b)
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func trimZeros(s string) string {
	t := strings.TrimLeft(s, "0")
	if t == "" {
		return "0"
	}
	return t
}
