package rules

import (
	"regexp"
	"strings"

	"raccfmt/internal/ast"
	"raccfmt/internal/config"
)

// Spacing normalizes the blanks around the rule colon, alternative pipes and
// assignment operators inside actions.
type Spacing struct{}

func (Spacing) Name() config.RuleName { return config.RuleSpacing }

func (Spacing) Apply(doc *ast.Document, cfg config.Config) *ast.Document {
	opts := cfg.Rules.Spacing
	for _, r := range doc.Rules() {
		r.SetColonSpacing(opts.AroundColon)
		for i, p := range r.Productions() {
			if i > 0 && ast.HasPipe(p) {
				p = spacePipe(p, opts.AroundPipe)
			}
			if opts.AroundEquals {
				if prefix, inner, ok := ast.SplitInline(p); ok {
					p = joinInline(prefix, SpaceOperators(strings.TrimSpace(inner)))
				} else {
					p = ast.MapBlocks(p, spaceBlock)
				}
			}
			r.SetProduction(i, p)
		}
		if !opts.AroundEquals {
			continue
		}
		for _, a := range r.Actions() {
			lead, body := a.Split()
			lines := strings.Split(body, "\n")
			for j, l := range lines {
				t := strings.TrimSpace(l)
				if t == "" || t == "{" || t == "}" {
					continue
				}
				indent := leadingSpace(l)
				lines[j] = indent + SpaceOperators(l[len(indent):])
			}
			a.SetText(lead + strings.Join(lines, "\n"))
		}
	}
	return doc
}

func spacePipe(p string, around bool) string {
	indent := leadingSpace(p)
	rest := strings.TrimSpace(strings.TrimPrefix(p[len(indent):], "|"))
	switch {
	case rest == "":
		return indent + "|"
	case around:
		return indent + "| " + rest
	}
	return indent + "|" + rest
}

// joinInline writes a one-line action back after its production text.
func joinInline(prefix, inner string) string {
	var sb strings.Builder
	if prefix != "" {
		sb.WriteString(prefix)
		sb.WriteByte(' ')
	}
	if inner == "" {
		sb.WriteString("{ }")
		return sb.String()
	}
	sb.WriteString("{ ")
	sb.WriteString(inner)
	sb.WriteString(" }")
	return sb.String()
}

// spaceBlock spaces the inner text of a block found mid-production.
func spaceBlock(inner string) string {
	inner = SpaceOperators(strings.TrimSpace(inner))
	if inner == "" {
		return " "
	}
	return " " + inner + " "
}

var blankRun = regexp.MustCompile(`[ \t]+`)

// SpaceOperators puts exactly one space on each side of assignment
// operators and "<<" in a line of action code, then collapses every run of
// blanks. Comparisons such as "==", "!=", "<=", ">=", "=>" and "=~" are
// left alone, as is anything inside quotes or after a '#' comment.
func SpaceOperators(line string) string {
	var sb strings.Builder
	var quote byte
	for i := 0; i < len(line); i++ {
		c := line[i]
		if quote != 0 {
			sb.WriteByte(c)
			if c == '\\' && i+1 < len(line) {
				i++
				sb.WriteByte(line[i])
			} else if c == quote {
				quote = 0
			}
			continue
		}
		switch c {
		case '\'', '"':
			quote = c
		case '#':
			sb.WriteString(line[i:])
			i = len(line)
			continue
		}
		if quote == 0 {
			if op := operatorAt(line, i); op != "" {
				writeOperator(&sb, op)
				i += len(op) - 1
				for i+1 < len(line) && (line[i+1] == ' ' || line[i+1] == '\t') {
					i++
				}
				continue
			}
		}
		sb.WriteByte(c)
	}
	return strings.TrimRight(blankRun.ReplaceAllString(sb.String(), " "), " ")
}

func writeOperator(sb *strings.Builder, op string) {
	prev := strings.TrimRight(sb.String(), " \t")
	sb.Reset()
	sb.WriteString(prev)
	if prev != "" {
		sb.WriteByte(' ')
	}
	sb.WriteString(op)
	sb.WriteByte(' ')
}

// operatorAt returns the operator starting at line[i], or "".
func operatorAt(line string, i int) string {
	rest := line[i:]
	switch {
	case strings.HasPrefix(rest, "||="), strings.HasPrefix(rest, "&&="):
		if assignable(line, i) && !followedBy(line, i+3, "=") {
			return rest[:3]
		}
	case strings.HasPrefix(rest, "<<"):
		// "<<=" and heredocs ("<<~EOS", "<<-EOS", "<<EOS") keep their shape
		if i > 0 && line[i-1] == '<' || followedBy(line, i+2, "<=~-\"'") || followedByUpper(line, i+2) {
			return ""
		}
		return "<<"
	case len(rest) >= 2 && strings.ContainsRune("+-*/", rune(rest[0])) && rest[1] == '=':
		if i > 0 && line[i-1] == rest[0] {
			return ""
		}
		if assignable(line, i) && !followedBy(line, i+2, "=") {
			return rest[:2]
		}
	case rest[0] == '=':
		if i > 0 && strings.ContainsRune("=!<>+-*/|&%^~", rune(line[i-1])) {
			return ""
		}
		if followedBy(line, i+1, "=~>") {
			return ""
		}
		if assignable(line, i) {
			return "="
		}
	}
	return ""
}

// assignable reports whether the text before i, blanks skipped, ends in a
// word character or a closing index/call.
func assignable(line string, i int) bool {
	before := strings.TrimRight(line[:i], " \t")
	if before == "" {
		return false
	}
	c := before[len(before)-1]
	return c == '_' || c == ']' || c == ')' || c >= '0' && c <= '9' ||
		c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= 0x80
}

func followedBy(line string, i int, set string) bool {
	return i < len(line) && strings.ContainsRune(set, rune(line[i]))
}

func followedByUpper(line string, i int) bool {
	return i < len(line) && line[i] >= 'A' && line[i] <= 'Z'
}
