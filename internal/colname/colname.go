// Package colname converts between zero-based column indices and
// spreadsheet-style column letters (A, B, ..., Z, AA, ..., ZZZ).
package colname

// MaxLetters is the longest label the grid can address (ZZZ).
const MaxLetters = 3

// Letters returns the column label for a zero-based column index.
func Letters(col int) string {
	n := col + 1
	var buf [MaxLetters + 1]byte
	i := len(buf)
	for n > 0 {
		n--
		i--
		buf[i] = byte('A' + n%26)
		n /= 26
	}
	return string(buf[i:])
}

// Number parses a column label into a zero-based column index. It reports
// false for the empty string or any non-uppercase-ASCII character; bounds
// against the sheet width are the caller's concern.
func Number(s string) (int, bool) {
	if s == "" {
		return 0, false
	}
	n := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c < 'A' || c > 'Z' {
			return 0, false
		}
		n = n*26 + int(c-'A') + 1
	}
	return n - 1, true
}
