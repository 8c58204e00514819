package utils

import (
	"fmt"
	"strings"
)

// ClosestRowAfter returns the smallest row key strictly greater than row,
// used to resume a scan after the last row of a page.
func ClosestRowAfter(row []byte) []byte {
	next := make([]byte, len(row), len(row)+1)
	copy(next, row)
	return append(next, 0x00)
}

// SplitColumn splits "family:qualifier" on the first colon. ok is false when
// there is no colon, in which case family is the whole spec.
func SplitColumn(spec string) (family, qualifier string, ok bool) {
	i := strings.IndexByte(spec, ':')
	if i < 0 {
		return spec, "", false
	}
	return spec[:i], spec[i+1:], true
}

// PadInt renders n as a zero padded decimal of at least width digits. For
// 0 <= n < 10^width the lexicographic order of the results is numeric order.
func PadInt(n int64, width int) string {
	return fmt.Sprintf("%0*d", width, n)
}
