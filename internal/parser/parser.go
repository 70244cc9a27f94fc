package parser

import (
	"regexp"
	"strings"

	"raccfmt/internal/ast"
	"raccfmt/internal/diag"
)

var headerRe = regexp.MustCompile(`^\s*([\p{L}\p{M}\p{N}_]+)\s*:`)

// Parser - состояние сканера на один документ
type Parser struct {
	doc  *ast.Document
	rule *ast.Rule

	inAction   bool
	action     strings.Builder
	balance    int
	owner      int
	actionLine int

	footer bool
	line   int
}

// Parse scans text into a Document. It fails when an action block is left
// open at end of input, when a '}' closes more than was opened, or when the
// first production of a rule would itself read as a rule header.
func Parse(text string) (*ast.Document, error) {
	p := &Parser{doc: ast.NewDocument()}
	for _, raw := range splitLines(text) {
		p.line++
		if err := p.scanLine(raw); err != nil {
			return nil, err
		}
	}
	if p.inAction {
		return nil, diag.NewParse(diag.ParseUnterminatedAction, p.actionLine,
			"unterminated action block in rule %q", p.rule.Name())
	}
	return p.doc, nil
}

// splitLines keeps line terminators; a missing final newline is not added.
func splitLines(text string) []string {
	if text == "" {
		return nil
	}
	lines := strings.SplitAfter(text, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

func (p *Parser) scanLine(raw string) error {
	line := strings.TrimRight(raw, "\r\n")
	trimmed := strings.TrimSpace(line)

	switch {
	case p.footer:
		p.verbatim(raw)
		return nil
	case p.inAction:
		return p.continueAction(line)
	case trimmed == "" || strings.HasPrefix(trimmed, "#"):
		p.verbatim(raw)
		return nil
	case ast.IsFooterMarker(line):
		p.rule = nil
		p.footer = true
		p.verbatim(raw)
		return nil
	}

	if m := headerRe.FindStringSubmatchIndex(line); m != nil {
		p.rule = ast.NewRule(line[m[2]:m[3]], p.line)
		p.doc.Append(p.rule)
		rest := strings.TrimSpace(line[m[1]:])
		switch {
		case rest == "":
		case strings.HasPrefix(rest, "#"):
			// comment after the colon leaves the rule like any body comment
			p.verbatim(rest + "\n")
		default:
			return p.bodyLine(line[m[1]:], true)
		}
		return nil
	}

	if p.rule == nil {
		p.verbatim(raw)
		return nil
	}
	// "end" closes the rule section of the grammar
	if trimmed == "end" {
		p.rule = nil
		p.verbatim(raw)
		return nil
	}
	return p.bodyLine(line, false)
}

func (p *Parser) verbatim(raw string) {
	p.doc.Append(ast.NewVerbatim(raw))
}

// bodyLine handles one line of a rule body outside action blocks. header
// marks the remainder of a header line after the colon.
func (p *Parser) bodyLine(line string, header bool) error {
	trimmed := strings.TrimSpace(line)
	if strings.HasPrefix(trimmed, "}") {
		return diag.NewParse(diag.ParseUnexpectedBrace, p.line,
			"unexpected '}' outside an action block in rule %q", p.rule.Name())
	}

	// ";" ends the rule; whatever follows is scanned as a line of its own
	if strings.HasPrefix(trimmed, ";") {
		p.rule = nil
		if rest := strings.TrimSpace(trimmed[1:]); rest != "" {
			return p.scanLine(rest + "\n")
		}
		return nil
	}

	if idx := ast.UnclosedBrace(line); idx >= 0 && ast.BraceBalance(line[idx:]) > 0 {
		prefix := line[:idx]
		var text string
		if strings.TrimSpace(prefix) == "" && !header {
			text = "\n" + line
		} else {
			if err := p.addProduction(prefix, header); err != nil {
				return err
			}
			text = line[len(strings.TrimRight(prefix, " \t")):]
		}
		p.startAction(text, ast.BraceBalance(line[idx:]))
		return nil
	}

	terminated := false
	if strings.HasSuffix(trimmed, ";") {
		terminated = true
		line = strings.TrimSuffix(strings.TrimRight(line, " \t"), ";")
	}
	if strings.TrimSpace(line) != "" {
		if err := p.addProduction(line, header); err != nil {
			return err
		}
	}
	if terminated {
		p.rule = nil
	}
	return nil
}

// addProduction splits text at top-level pipes and adds each alternative.
func (p *Parser) addProduction(text string, header bool) error {
	alts := ast.SplitAlternatives(text)
	first, rest := alts[0], alts[1:]
	if strings.TrimSpace(first) == "" && len(rest) > 0 {
		// the line opens with a pipe; its first alternative keeps the raw text
		first = text[:len(alts[0])+1+len(alts[1])]
		rest = rest[1:]
	}
	if err := p.addAlternative(first, header); err != nil {
		return err
	}
	if len(rest) == 0 {
		return nil
	}
	indent := ""
	if !header {
		indent = text[:len(text)-len(strings.TrimLeft(text, " \t"))]
	}
	for _, alt := range rest {
		if err := p.addAlternative(strings.TrimRight(indent+"| "+strings.TrimSpace(alt), " "), header); err != nil {
			return err
		}
	}
	return nil
}

func (p *Parser) addAlternative(text string, header bool) error {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil
	}
	switch {
	case ast.HasPipe(trimmed):
		if header {
			p.rule.AddProduction(trimmed)
		} else {
			p.rule.AddProduction(strings.TrimRight(text, " \t"))
		}
	case p.rule.NumProductions() == 0:
		// the first production gets a line of its own and would open a new rule
		if headerRe.MatchString(trimmed) {
			return diag.NewParse(diag.ParseHeaderLikeProduct, p.line,
				"production %q of rule %q reads as a rule header", trimmed, p.rule.Name())
		}
		p.rule.AddProduction(trimmed)
	default:
		p.rule.ExtendProduction(trimmed)
	}
	return nil
}

func (p *Parser) startAction(text string, balance int) {
	p.inAction = true
	p.balance = balance
	p.owner = p.rule.NumProductions() - 1
	p.actionLine = p.line
	p.action.Reset()
	p.action.WriteString(text)
}

func (p *Parser) continueAction(line string) error {
	p.balance += ast.BraceBalance(line)
	if p.balance > 0 {
		p.action.WriteByte('\n')
		p.action.WriteString(line)
		return nil
	}
	if p.balance < 0 {
		return diag.NewParse(diag.ParseUnexpectedBrace, p.line,
			"unexpected '}' closing more blocks than were opened in rule %q", p.rule.Name())
	}

	terminated := false
	body := strings.TrimRight(line, " \t")
	if rest := strings.TrimSuffix(body, ";"); rest != body && strings.HasSuffix(strings.TrimRight(rest, " \t"), "}") {
		terminated = true
		body = rest
	}
	p.action.WriteByte('\n')
	p.action.WriteString(body)

	p.rule.AddAction(ast.NewAction(p.action.String(), p.owner, p.actionLine))
	p.inAction = false
	p.balance = 0
	p.action.Reset()
	if terminated {
		p.rule = nil
	}
	return nil
}
