package ai

// scanJSONValues extracts top-level JSON object and array candidates from a
// model response that may wrap them in prose or code fences. A byte-level
// state machine tracks brace depth and string escaping; iterating bytes is
// safe because the delimiters are ASCII and UTF-8 never embeds ASCII bytes in
// multi-byte sequences.
func scanJSONValues(s string) []string {
	var candidates []string
	var depth int
	start := -1
	var inString, escape bool

	for i := 0; i < len(s); i++ {
		b := s[i]

		if escape {
			escape = false
			continue
		}
		if inString {
			switch b {
			case '\\':
				escape = true
			case '"':
				inString = false
			}
			continue
		}

		switch b {
		case '"':
			if depth > 0 {
				inString = true
			}
		case '{', '[':
			if depth == 0 {
				start = i
			}
			depth++
		case '}', ']':
			if depth == 0 {
				continue
			}
			depth--
			if depth == 0 && start != -1 {
				candidates = append(candidates, s[start:i+1])
				start = -1
			}
		}
	}
	return candidates
}
