package catalog

import "strconv"

// HasDigitBorrow reports whether subtracting subtrahend from minuend needs a
// borrow in some column. The subtrahend is left-padded with zeros to the
// minuend's width and compared column by column from the units; the first
// subtrahend digit larger than the minuend digit above it is a borrow.
//
// Borrows are not propagated to the next column, so a cascade that only
// appears after borrowing is not detected.
func HasDigitBorrow(minuend, subtrahend int) bool {
	m := strconv.Itoa(minuend)
	s := strconv.Itoa(subtrahend)
	for len(s) < len(m) {
		s = "0" + s
	}

	// A longer subtrahend is compared over the minuend's width only.
	s = s[len(s)-len(m):]

	for i := len(m) - 1; i >= 0; i-- {
		if s[i] > m[i] {
			return true
		}
	}
	return false
}
