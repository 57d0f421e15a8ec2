// Package highlight marks query matches inside styled terminal text without
// disturbing the escape sequences already present.
package highlight

import "strings"

type Result struct {
	Text      string
	Count     int
	LineIndex []int
}

// Apply wraps every case-insensitive occurrence of query with style and
// records which lines matched. Escape sequences are passed through
// untouched, so matches never span or split ANSI styling.
func Apply(input, query string, style func(string) string) Result {
	query = strings.TrimSpace(query)
	if query == "" {
		return Result{Text: input}
	}
	if style == nil {
		style = func(s string) string { return s }
	}

	var out strings.Builder
	out.Grow(len(input))
	var lineMatches []int
	total := 0

	lines := strings.SplitAfter(input, "\n")
	for lineNo, line := range lines {
		marked, count := applyLine(line, query, style)
		out.WriteString(marked)
		if count > 0 {
			lineMatches = append(lineMatches, lineNo)
			total += count
		}
	}

	return Result{Text: out.String(), Count: total, LineIndex: lineMatches}
}

// applyLine walks one line, alternating between escape sequences (copied
// verbatim) and plain runs (searched for the query).
func applyLine(line, query string, style func(string) string) (string, int) {
	var out strings.Builder
	count := 0
	pos := 0
	for pos < len(line) {
		esc := strings.IndexByte(line[pos:], 0x1b)
		if esc < 0 {
			marked, n := markPlain(line[pos:], query, style)
			out.WriteString(marked)
			count += n
			break
		}
		if esc > 0 {
			marked, n := markPlain(line[pos:pos+esc], query, style)
			out.WriteString(marked)
			count += n
		}
		seqEnd := escapeEnd(line, pos+esc)
		out.WriteString(line[pos+esc : seqEnd])
		pos = seqEnd
	}
	return out.String(), count
}

// escapeEnd returns the index just past the escape sequence starting at
// start. Only CSI sequences are parsed; a bare ESC is passed through alone.
func escapeEnd(s string, start int) int {
	i := start + 1
	if i >= len(s) || s[i] != '[' {
		return i
	}
	for i++; i < len(s); i++ {
		if c := s[i]; c >= 0x40 && c <= 0x7e {
			return i + 1
		}
	}
	return len(s)
}

func markPlain(s, query string, style func(string) string) (string, int) {
	lower := strings.ToLower(s)
	q := strings.ToLower(query)
	if !strings.Contains(lower, q) {
		return s, 0
	}

	var out strings.Builder
	count := 0
	start := 0
	for {
		rel := strings.Index(lower[start:], q)
		if rel < 0 {
			out.WriteString(s[start:])
			break
		}
		idx := start + rel
		end := idx + len(q)
		out.WriteString(s[start:idx])
		out.WriteString(style(s[idx:end]))
		count++
		start = end
	}
	return out.String(), count
}
