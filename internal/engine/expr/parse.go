package expr

import (
	"errors"
	"fmt"
)

// ErrParse is the base error for malformed expression text.
var ErrParse = errors.New("malformed expression")

// Parse builds an expression row from its textual form.
// The empty string parses to an empty row.
func Parse(text string) (Row, error) {
	p := &parser{src: text}
	row, err := p.parseRow(false)
	if err != nil {
		return nil, err
	}
	if p.pos < len(p.src) {
		return nil, p.errorf("unexpected %q", p.src[p.pos])
	}
	return row, nil
}

type parser struct {
	src string
	pos int
}

func (p *parser) errorf(format string, args ...any) error {
	msg := fmt.Sprintf(format, args...)
	return fmt.Errorf("%w: %s at offset %d", ErrParse, msg, p.pos)
}

// parseRow consumes nodes until end of input or, when inGroup is set, a
// closing brace (which is left for the caller to consume).
func (p *parser) parseRow(inGroup bool) (Row, error) {
	row := Row{}
	for p.pos < len(p.src) {
		c := p.src[p.pos]
		switch {
		case c == '}':
			if inGroup {
				return row, nil
			}
			return nil, p.errorf("unmatched '}'")
		case c == ' ' || c == '\t':
			p.pos++
		case c == '{':
			arg, err := p.parseGroup()
			if err != nil {
				return nil, err
			}
			row = append(row, &Node{Kind: KindGroup, Args: []Row{arg}})
		case c == '\\':
			n, err := p.parseCommand()
			if err != nil {
				return nil, err
			}
			row = append(row, n)
		case c == '^' || c == '_':
			p.pos++
			arg, err := p.parseScriptArg()
			if err != nil {
				return nil, err
			}
			kind := KindSup
			if c == '_' {
				kind = KindSub
			}
			row = append(row, &Node{Kind: kind, Args: []Row{arg}})
		case isSymbol(c):
			row = append(row, &Node{Kind: KindSym, Text: string(c)})
			p.pos++
		case isOperator(c):
			row = append(row, &Node{Kind: KindOp, Text: string(c)})
			p.pos++
		default:
			return nil, p.errorf("unexpected %q", c)
		}
	}
	if inGroup {
		return nil, p.errorf("unterminated group")
	}
	return row, nil
}

// parseGroup consumes "{row}" including both braces.
func (p *parser) parseGroup() (Row, error) {
	p.pos++ // opening brace
	row, err := p.parseRow(true)
	if err != nil {
		return nil, err
	}
	if p.pos >= len(p.src) || p.src[p.pos] != '}' {
		return nil, p.errorf("unterminated group")
	}
	p.pos++
	return row, nil
}

// parseCommand consumes a backslash command. \frac takes two mandatory
// group arguments; any other command is an opaque symbol.
func (p *parser) parseCommand() (*Node, error) {
	start := p.pos
	p.pos++ // backslash
	for p.pos < len(p.src) && isLetter(p.src[p.pos]) {
		p.pos++
	}
	name := p.src[start:p.pos]
	if name == `\` {
		return nil, p.errorf("empty command")
	}

	if name == `\frac` {
		num, err := p.requireGroup()
		if err != nil {
			return nil, err
		}
		den, err := p.requireGroup()
		if err != nil {
			return nil, err
		}
		return &Node{Kind: KindFrac, Text: name, Args: []Row{num, den}}, nil
	}

	return &Node{Kind: KindSym, Text: name}, nil
}

// parseScriptArg consumes the argument of ^ or _: a braced group or a
// single symbol.
func (p *parser) parseScriptArg() (Row, error) {
	if p.pos >= len(p.src) {
		return nil, p.errorf("missing script argument")
	}
	if p.src[p.pos] == '{' {
		return p.parseGroup()
	}
	c := p.src[p.pos]
	if isSymbol(c) {
		p.pos++
		return Row{{Kind: KindSym, Text: string(c)}}, nil
	}
	if c == '\\' {
		n, err := p.parseCommand()
		if err != nil {
			return nil, err
		}
		return Row{n}, nil
	}
	return nil, p.errorf("invalid script argument %q", c)
}

func (p *parser) requireGroup() (Row, error) {
	if p.pos >= len(p.src) || p.src[p.pos] != '{' {
		return nil, p.errorf("expected '{'")
	}
	return p.parseGroup()
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isSymbol(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '.'
}

func isOperator(c byte) bool {
	switch c {
	case '+', '-', '*', '/', '=', '<', '>', '!', '(', ')', '[', ']', ',', '|', ';', ':':
		return true
	}
	return false
}
