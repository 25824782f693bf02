package checks

// altRange is a half-open rune range of the regex text around an empty
// alternative: the delimiter before it and the pipe or ')' after it.
type altRange struct{ begin, end int }

type regexGroup struct {
	altStart int  // first rune of the current alternative
	piped    bool // an alternation was seen in this group
}

// emptyAlternatives scans re for alternatives with no content, such as
// "a||b", "(|a)", "(a|)" or a leading or trailing '|'. Escapes, \Q..\E
// quotes and character classes are skipped.
func emptyAlternatives(re []rune) []altRange {
	var out []altRange
	stack := []regexGroup{{altStart: 0}}
	classDepth := 0
	for i := 0; i < len(re); i++ {
		r := re[i]
		if r == '\\' {
			if i+1 < len(re) && re[i+1] == 'Q' {
				i = skipQuote(re, i+2)
				continue
			}
			i++
			continue
		}
		if classDepth > 0 {
			switch r {
			case '[':
				classDepth++
			case ']':
				classDepth--
			}
			continue
		}
		top := &stack[len(stack)-1]
		switch r {
		case '[':
			classDepth = 1
			// a ']' right after '[' or '[^' is literal
			if i+1 < len(re) && re[i+1] == '^' {
				i++
			}
			if i+1 < len(re) && re[i+1] == ']' {
				i++
			}
		case '(':
			start := groupBodyStart(re, i)
			stack = append(stack, regexGroup{altStart: start})
			i = start - 1
		case ')':
			if len(stack) == 1 {
				continue
			}
			if top.piped && top.altStart == i {
				out = append(out, altRange{begin: i - 1, end: i + 1})
			}
			stack = stack[:len(stack)-1]
		case '|':
			if top.altStart == i {
				out = append(out, altRange{begin: max(i-1, 0), end: i + 1})
			}
			top.piped = true
			top.altStart = i + 1
		}
	}
	if root := stack[0]; len(stack) == 1 && root.piped && root.altStart == len(re) &&
		(len(out) == 0 || out[len(out)-1].end != len(re)) {
		out = append(out, altRange{begin: len(re) - 1, end: len(re)})
	}
	return out
}

// groupBodyStart returns the index after a group opener at i: "(", "(?:",
// "(?=", "(?!", "(?<=", "(?<!", "(?>", "(?<name>" or "(?flags:".
func groupBodyStart(re []rune, i int) int {
	j := i + 1
	if j >= len(re) || re[j] != '?' {
		return j
	}
	j++
	if j >= len(re) {
		return j
	}
	switch re[j] {
	case ':', '=', '!', '>':
		return j + 1
	case '<':
		if j+1 < len(re) && (re[j+1] == '=' || re[j+1] == '!') {
			return j + 2
		}
		for k := j + 1; k < len(re); k++ {
			if re[k] == '>' {
				return k + 1
			}
		}
		return len(re)
	}
	// inline flags: (?i) or (?i:...)
	for k := j; k < len(re); k++ {
		if re[k] == ':' || re[k] == ')' {
			if re[k] == ')' {
				return k // an empty flag group closes immediately
			}
			return k + 1
		}
	}
	return len(re)
}

// skipQuote returns the index of the 'E' of the \E ending a quote that
// starts at i, or the last index when unterminated.
func skipQuote(re []rune, i int) int {
	for ; i+1 < len(re); i++ {
		if re[i] == '\\' && re[i+1] == 'E' {
			return i + 1
		}
	}
	return len(re) - 1
}
