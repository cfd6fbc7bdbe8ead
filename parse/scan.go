package parse

// lineBounds returns the offset of the line terminator starting the
// search at start (end, exclusive of terminator bytes) and the offset
// of the following line's first byte (next). \n, \r\n and \r all count
// as one newline (spec.md §6.1).
func lineBounds(src []byte, start int) (end, next int) {
	i := start
	for i < len(src) && src[i] != '\n' && src[i] != '\r' {
		i++
	}
	end = i
	if i >= len(src) {
		return end, i
	}
	if src[i] == '\r' && i+1 < len(src) && src[i+1] == '\n' {
		return end, i + 2
	}
	return end, i + 1
}

// indentOf counts the leading space run of src[start:end]. tab reports
// whether a tab byte was found inside that leading run, which is
// forbidden as block indentation (spec.md §6.1).
func indentOf(src []byte, start, end int) (n int, tab bool) {
	i := start
	for i < end && src[i] == ' ' {
		i++
	}
	if i < end && src[i] == '\t' {
		tab = true
	}
	return i - start, tab
}

func isBlank(line []byte) bool {
	for _, b := range line {
		if b != ' ' && b != '\t' {
			return false
		}
	}
	return true
}

func trimTrailingSpace(s []byte) []byte {
	i := len(s)
	for i > 0 && (s[i-1] == ' ' || s[i-1] == '\t') {
		i--
	}
	return s[:i]
}

func isFlowIndicator(b byte) bool {
	switch b {
	case '[', ']', '{', '}', ',':
		return true
	}
	return false
}
