package latex

// BraceGroup scans the brace group starting at pos in text, which must point
// at an opening brace. It returns the group's content (without the outer
// braces) and the index just past the closing brace. Nested braces are kept.
// If the group is unbalanced the rest of the text is returned as content.
func BraceGroup(text string, pos int) (string, int) {
	if pos >= len(text) || text[pos] != '{' {
		return "", pos
	}
	depth := 0
	for i := pos; i < len(text); i++ {
		switch text[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return text[pos+1 : i], i + 1
			}
		}
	}
	return text[pos+1:], len(text)
}

// SkipSpace advances pos past whitespace (including newlines) and returns
// the new position.
func SkipSpace(text string, pos int) int {
	for pos < len(text) {
		switch text[pos] {
		case ' ', '\t', '\n', '\r':
			pos++
		default:
			return pos
		}
	}
	return pos
}

// BraceArgs reads up to n consecutive brace groups starting at pos, skipping
// whitespace between them. It returns the collected arguments and the index
// after the last one read.
func BraceArgs(text string, pos, n int) ([]string, int) {
	args := make([]string, 0, n)
	for len(args) < n {
		pos = SkipSpace(text, pos)
		if pos >= len(text) || text[pos] != '{' {
			break
		}
		var arg string
		arg, pos = BraceGroup(text, pos)
		args = append(args, arg)
	}
	return args, pos
}
