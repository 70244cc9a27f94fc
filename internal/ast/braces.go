package ast

import "strings"

// BraceBalance counts '{' minus '}' in s. Braces inside string literals are
// counted as well.
func BraceBalance(s string) int {
	return strings.Count(s, "{") - strings.Count(s, "}")
}

// OpeningBrace returns the index of the first '{' outside a quoted literal,
// or -1.
func OpeningBrace(s string) int {
	var quote byte
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case quote != 0:
			if c == '\\' {
				i++
			} else if c == quote {
				quote = 0
			}
		case c == '\'' || c == '"':
			quote = c
		case c == '{':
			return i
		}
	}
	return -1
}

// MatchingBrace returns the index of the '}' closing the '{' at open, or -1.
func MatchingBrace(s string, open int) int {
	depth := 0
	for i := open; i < len(s); i++ {
		switch s[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// SplitInline splits a production ending in a one-line action block into
// the text before '{' and the block's inner text.
func SplitInline(production string) (prefix, inner string, ok bool) {
	open := OpeningBrace(production)
	if open < 0 {
		return "", "", false
	}
	end := MatchingBrace(production, open)
	if end < 0 || strings.TrimSpace(production[end+1:]) != "" {
		return "", "", false
	}
	return strings.TrimRight(production[:open], " \t"), production[open+1 : end], true
}

// UnclosedBrace returns the index of the first unquoted '{' whose block is
// not closed on s, skipping complete blocks before it, or -1.
func UnclosedBrace(s string) int {
	for pos := 0; pos < len(s); {
		open := OpeningBrace(s[pos:])
		if open < 0 {
			return -1
		}
		open += pos
		end := MatchingBrace(s, open)
		if end < 0 {
			return open
		}
		pos = end + 1
	}
	return -1
}

// SplitAlternatives splits a production line at every '|' that is outside
// quotes and braces. Splitting stops at an unquoted '#'. The parts keep their
// surrounding blanks; the first is empty when s starts with '|'.
func SplitAlternatives(s string) []string {
	var (
		parts []string
		quote byte
		depth int
		start int
	)
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case quote != 0:
			if c == '\\' {
				i++
			} else if c == quote {
				quote = 0
			}
		case c == '\'' || c == '"':
			quote = c
		case c == '{':
			depth++
		case c == '}':
			depth--
		case c == '#' && depth <= 0:
			return append(parts, s[start:])
		case c == '|' && depth <= 0:
			parts = append(parts, s[start:i])
			start = i + 1
		}
	}
	return append(parts, s[start:])
}

// MapBlocks replaces the inner text of every complete unquoted "{...}" in s
// with fn(inner). Text outside the blocks is kept as is.
func MapBlocks(s string, fn func(inner string) string) string {
	var sb strings.Builder
	pos := 0
	for pos < len(s) {
		open := OpeningBrace(s[pos:])
		if open < 0 {
			break
		}
		open += pos
		end := MatchingBrace(s, open)
		if end < 0 {
			break
		}
		sb.WriteString(s[pos : open+1])
		sb.WriteString(fn(s[open+1 : end]))
		sb.WriteByte('}')
		pos = end + 1
	}
	sb.WriteString(s[pos:])
	return sb.String()
}
