package corpus

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

// ErrInvalidLiteral 序列化清單格式不合法
var ErrInvalidLiteral = errors.New("invalid list literal")

// literalKind 清單元素類型
type literalKind int

const (
	literalString literalKind = iota
	literalNumber
)

// literal 清單中的單一元素
type literal struct {
	kind literalKind
	str  string
	num  float64
}

// literalParser 嚴格的清單字面值解析器，只接受
// [ ... ] 或 ( ... ) 內的引號字串與數字，其餘一律拒絕
type literalParser struct {
	src string
	pos int
}

// ParseStringList 解析字串清單，例如 ['salt', "black pepper"]
func ParseStringList(raw string) ([]string, error) {
	items, err := parseLiteralList(raw)
	if err != nil {
		return nil, err
	}
	out := make([]string, len(items))
	for i, item := range items {
		if item.kind != literalString {
			return nil, fmt.Errorf("%w: element %d is not a string", ErrInvalidLiteral, i)
		}
		out[i] = item.str
	}
	return out, nil
}

// ParseNumberList 解析數字清單，例如 [51.5, 0.0, 13.0]
func ParseNumberList(raw string) ([]float64, error) {
	items, err := parseLiteralList(raw)
	if err != nil {
		return nil, err
	}
	out := make([]float64, len(items))
	for i, item := range items {
		if item.kind != literalNumber {
			return nil, fmt.Errorf("%w: element %d is not a number", ErrInvalidLiteral, i)
		}
		out[i] = item.num
	}
	return out, nil
}

func parseLiteralList(raw string) ([]literal, error) {
	p := &literalParser{src: raw}
	p.skipSpace()

	var closer byte
	switch p.peek() {
	case '[':
		closer = ']'
	case '(':
		closer = ')'
	default:
		return nil, p.errorf("expected '[' or '('")
	}
	p.pos++

	items := make([]literal, 0, 8)
	p.skipSpace()
	if p.peek() == closer {
		p.pos++
		return items, p.expectEnd()
	}

	for {
		item, err := p.parseElement()
		if err != nil {
			return nil, err
		}
		items = append(items, item)

		p.skipSpace()
		switch p.peek() {
		case ',':
			p.pos++
			p.skipSpace()
			// 允許結尾逗號
			if p.peek() == closer {
				p.pos++
				return items, p.expectEnd()
			}
		case closer:
			p.pos++
			return items, p.expectEnd()
		default:
			return nil, p.errorf("expected ',' or '%c'", closer)
		}
	}
}

func (p *literalParser) parseElement() (literal, error) {
	c := p.peek()
	switch {
	case c == '\'' || c == '"':
		s, err := p.parseString()
		return literal{kind: literalString, str: s}, err
	case (c == 'u' || c == 'U') && p.pos+1 < len(p.src) && (p.src[p.pos+1] == '\'' || p.src[p.pos+1] == '"'):
		p.pos++
		s, err := p.parseString()
		return literal{kind: literalString, str: s}, err
	case c == '-' || c == '+' || c == '.' || isDigit(c):
		n, err := p.parseNumber()
		return literal{kind: literalNumber, num: n}, err
	case c == 0:
		return literal{}, p.errorf("unexpected end of input")
	default:
		return literal{}, p.errorf("unexpected character %q", c)
	}
}

func (p *literalParser) parseString() (string, error) {
	quote := p.src[p.pos]
	start := p.pos
	p.pos++

	var b strings.Builder
	for p.pos < len(p.src) {
		c := p.src[p.pos]
		switch {
		case c == quote:
			p.pos++
			return b.String(), nil
		case c == '\n' || c == '\r':
			return "", p.errorf("newline in string literal starting at offset %d", start)
		case c == '\\':
			if err := p.parseEscape(&b); err != nil {
				return "", err
			}
		default:
			b.WriteByte(c)
			p.pos++
		}
	}
	return "", fmt.Errorf("%w: unterminated string starting at offset %d", ErrInvalidLiteral, start)
}

func (p *literalParser) parseEscape(b *strings.Builder) error {
	p.pos++ // 跳過反斜線
	if p.pos >= len(p.src) {
		return p.errorf("dangling escape")
	}
	c := p.src[p.pos]
	p.pos++

	switch c {
	case '\n':
		// 行接續
	case '\\', '\'', '"':
		b.WriteByte(c)
	case 'n':
		b.WriteByte('\n')
	case 't':
		b.WriteByte('\t')
	case 'r':
		b.WriteByte('\r')
	case 'a':
		b.WriteByte('\a')
	case 'b':
		b.WriteByte('\b')
	case 'f':
		b.WriteByte('\f')
	case 'v':
		b.WriteByte('\v')
	case 'x':
		return p.writeCodePoint(b, 2)
	case 'u':
		return p.writeCodePoint(b, 4)
	case 'U':
		return p.writeCodePoint(b, 8)
	case '0', '1', '2', '3', '4', '5', '6', '7':
		v := int(c - '0')
		for i := 0; i < 2 && p.pos < len(p.src) && p.src[p.pos] >= '0' && p.src[p.pos] <= '7'; i++ {
			v = v*8 + int(p.src[p.pos]-'0')
			p.pos++
		}
		b.WriteRune(rune(v))
	default:
		// 未知跳脫序列保留原樣
		b.WriteByte('\\')
		b.WriteByte(c)
	}
	return nil
}

func (p *literalParser) writeCodePoint(b *strings.Builder, digits int) error {
	if p.pos+digits > len(p.src) {
		return p.errorf("truncated escape sequence")
	}
	v, err := strconv.ParseUint(p.src[p.pos:p.pos+digits], 16, 32)
	if err != nil {
		return p.errorf("invalid hex escape %q", p.src[p.pos:p.pos+digits])
	}
	if v > utf8.MaxRune {
		return p.errorf("code point out of range")
	}
	p.pos += digits
	b.WriteRune(rune(v))
	return nil
}

func (p *literalParser) parseNumber() (float64, error) {
	start := p.pos
	for p.pos < len(p.src) {
		c := p.src[p.pos]
		if isDigit(c) || c == '.' || c == 'e' || c == 'E' || c == '+' || c == '-' {
			p.pos++
			continue
		}
		break
	}
	token := p.src[start:p.pos]
	v, err := strconv.ParseFloat(token, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: invalid number %q at offset %d", ErrInvalidLiteral, token, start)
	}
	return v, nil
}

func (p *literalParser) expectEnd() error {
	p.skipSpace()
	if p.pos != len(p.src) {
		return p.errorf("trailing data after list")
	}
	return nil
}

func (p *literalParser) skipSpace() {
	for p.pos < len(p.src) {
		switch p.src[p.pos] {
		case ' ', '\t', '\n', '\r':
			p.pos++
		default:
			return
		}
	}
}

func (p *literalParser) peek() byte {
	if p.pos >= len(p.src) {
		return 0
	}
	return p.src[p.pos]
}

func (p *literalParser) errorf(format string, args ...interface{}) error {
	return fmt.Errorf("%w at offset %d: %s", ErrInvalidLiteral, p.pos, fmt.Sprintf(format, args...))
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
