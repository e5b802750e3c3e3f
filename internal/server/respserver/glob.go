package respserver

// Match reports whether s matches a KEYS-style glob pattern.
//
// Supported syntax:
//   - '*' matches any run of characters, including none
//   - '?' matches exactly one character
//   - '[abc]' matches one listed character, '[a-z]' one in the range,
//     '[^abc]' one character not listed
//   - '\' escapes the next character
//
// Matching is byte-wise; an unterminated class never matches.
func Match(pattern, s string) bool {
	return matchGlob(pattern, s)
}

func matchGlob(p, s string) bool {
	// Backtracking state for the most recent '*'.
	var (
		starP  = -1
		starS  = 0
		pi, si int
	)

	for si < len(s) {
		if pi < len(p) {
			switch p[pi] {
			case '*':
				// Try matching zero characters first; record where to
				// resume if the rest fails.
				starP = pi
				starS = si
				pi++
				continue
			case '?':
				pi++
				si++
				continue
			case '[':
				if ok, next := matchClass(p, pi, s[si]); ok {
					pi = next
					si++
					continue
				}
			case '\\':
				if pi+1 < len(p) && p[pi+1] == s[si] {
					pi += 2
					si++
					continue
				}
			default:
				if p[pi] == s[si] {
					pi++
					si++
					continue
				}
			}
		}

		// Mismatch: let the last '*' absorb one more character.
		if starP >= 0 {
			starS++
			pi = starP + 1
			si = starS
			continue
		}
		return false
	}

	// Input consumed; only trailing stars may remain.
	for pi < len(p) && p[pi] == '*' {
		pi++
	}
	return pi == len(p)
}

// matchClass matches one character against the class starting at p[pi]
// (which is '['). Returns whether it matched and the index just past
// the closing bracket.
func matchClass(p string, pi int, c byte) (bool, int) {
	i := pi + 1
	negate := false
	if i < len(p) && p[i] == '^' {
		negate = true
		i++
	}

	matched := false
	first := true
	for i < len(p) && (p[i] != ']' || first) {
		first = false
		if p[i] == '\\' && i+1 < len(p) {
			i++
			if p[i] == c {
				matched = true
			}
			i++
			continue
		}
		if i+2 < len(p) && p[i+1] == '-' && p[i+2] != ']' {
			if p[i] <= c && c <= p[i+2] {
				matched = true
			}
			i += 3
			continue
		}
		if p[i] == c {
			matched = true
		}
		i++
	}

	if i >= len(p) {
		// Unterminated class.
		return false, len(p)
	}
	return matched != negate, i + 1
}
