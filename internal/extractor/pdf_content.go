package extractor

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"
	"unicode/utf16"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// tjSpaceThreshold is the TJ displacement (thousandths of an em) treated as a word gap.
const tjSpaceThreshold = -200

var disableConfigDir sync.Once

// ExtractContentStreamText reads every page's content stream with pdfcpu and collects
// the strings shown by text operators. Pages are joined with "\n".
func ExtractContentStreamText(data []byte) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("pdfcpu panic: %v", r)
		}
	}()
	disableConfigDir.Do(api.DisableConfigDir)

	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed

	ctx, err := api.ReadValidateAndOptimize(bytes.NewReader(data), conf)
	if err != nil {
		return "", fmt.Errorf("reading pdf: %w", err)
	}

	pages := make([]string, 0, ctx.PageCount)
	for i := 1; i <= ctx.PageCount; i++ {
		r, err := pdfcpu.ExtractPageContent(ctx, i)
		if err != nil {
			return "", fmt.Errorf("reading content of page %d: %w", i, err)
		}
		if r == nil {
			pages = append(pages, "")
			continue
		}
		content, err := io.ReadAll(r)
		if err != nil {
			return "", fmt.Errorf("reading content of page %d: %w", i, err)
		}
		pages = append(pages, ContentStreamText(content))
	}
	return strings.Join(pages, "\n"), nil
}

// operand is a value preceding an operator in a content stream.
type operand struct {
	str    []byte
	num    float64
	isStr  bool
	isNum  bool
	array  []operand
	isList bool
}

// ContentStreamText extracts the text shown by Tj, TJ, ' and " operators,
// breaking lines on T*, Td/TD with vertical movement, and ET.
func ContentStreamText(content []byte) string {
	s := &contentScanner{data: content}
	var out strings.Builder
	var operands []operand

	newline := func() {
		if out.Len() > 0 && !strings.HasSuffix(out.String(), "\n") {
			out.WriteByte('\n')
		}
	}

	for {
		tok, ok := s.next()
		if !ok {
			break
		}
		switch {
		case tok.kind == tokOperand:
			operands = append(operands, tok.value)
			continue
		case tok.kind != tokOperator:
			continue
		}

		switch tok.op {
		case "Tj":
			writeLast(&out, operands)
		case "'", "\"":
			newline()
			writeLast(&out, operands)
		case "TJ":
			if n := len(operands); n > 0 && operands[n-1].isList {
				for _, el := range operands[n-1].array {
					switch {
					case el.isStr:
						out.WriteString(decodePDFString(el.str))
					case el.isNum && el.num < tjSpaceThreshold:
						out.WriteByte(' ')
					}
				}
			}
		case "T*", "ET":
			newline()
		case "Td", "TD":
			if n := len(operands); n >= 2 && operands[n-1].isNum && operands[n-1].num != 0 {
				newline()
			} else if out.Len() > 0 && !strings.HasSuffix(out.String(), " ") && !strings.HasSuffix(out.String(), "\n") {
				out.WriteByte(' ')
			}
		case "ID":
			s.skipInlineImage()
		}
		operands = operands[:0]
	}
	return strings.TrimRight(out.String(), "\n ")
}

func writeLast(out *strings.Builder, operands []operand) {
	for i := len(operands) - 1; i >= 0; i-- {
		if operands[i].isStr {
			out.WriteString(decodePDFString(operands[i].str))
			return
		}
	}
}

// decodePDFString decodes UTF-16BE strings (with BOM) and treats everything else as
// single-byte text, dropping control characters.
func decodePDFString(b []byte) string {
	if len(b) >= 2 && b[0] == 0xFE && b[1] == 0xFF {
		b = b[2:]
		units := make([]uint16, 0, len(b)/2)
		for i := 0; i+1 < len(b); i += 2 {
			units = append(units, uint16(b[i])<<8|uint16(b[i+1]))
		}
		return string(utf16.Decode(units))
	}
	var sb strings.Builder
	for _, c := range b {
		if c < 0x20 && c != '\t' && c != '\n' {
			continue
		}
		sb.WriteRune(rune(c))
	}
	return sb.String()
}

type tokenKind int

const (
	tokOperand tokenKind = iota
	tokOperator
	tokOther
)

type token struct {
	kind  tokenKind
	op    string
	value operand
}

type contentScanner struct {
	data []byte
	pos  int
}

func isWhite(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f' || c == 0
}

func isDelim(c byte) bool {
	return strings.IndexByte("()<>[]{}/%", c) >= 0
}

func (s *contentScanner) skipSpaceAndComments() {
	for s.pos < len(s.data) {
		c := s.data[s.pos]
		switch {
		case isWhite(c):
			s.pos++
		case c == '%':
			for s.pos < len(s.data) && s.data[s.pos] != '\n' && s.data[s.pos] != '\r' {
				s.pos++
			}
		default:
			return
		}
	}
}

func (s *contentScanner) next() (token, bool) {
	s.skipSpaceAndComments()
	if s.pos >= len(s.data) {
		return token{}, false
	}

	c := s.data[s.pos]
	switch {
	case c == '(':
		s.pos++
		return token{kind: tokOperand, value: operand{str: s.literal(), isStr: true}}, true
	case c == '<' && s.pos+1 < len(s.data) && s.data[s.pos+1] == '<':
		s.pos += 2
		return token{kind: tokOther}, true
	case c == '>' && s.pos+1 < len(s.data) && s.data[s.pos+1] == '>':
		s.pos += 2
		return token{kind: tokOther}, true
	case c == '<':
		s.pos++
		return token{kind: tokOperand, value: operand{str: s.hex(), isStr: true}}, true
	case c == '[':
		s.pos++
		return token{kind: tokOperand, value: s.array()}, true
	case c == '/':
		s.pos++
		s.regular()
		return token{kind: tokOperand, value: operand{}}, true
	case isDelim(c):
		s.pos++
		return token{kind: tokOther}, true
	}

	word := s.regular()
	if num, err := strconv.ParseFloat(word, 64); err == nil {
		return token{kind: tokOperand, value: operand{num: num, isNum: true}}, true
	}
	switch word {
	case "true", "false", "null":
		return token{kind: tokOperand, value: operand{}}, true
	}
	return token{kind: tokOperator, op: word}, true
}

func (s *contentScanner) regular() string {
	start := s.pos
	for s.pos < len(s.data) && !isWhite(s.data[s.pos]) && !isDelim(s.data[s.pos]) {
		s.pos++
	}
	if s.pos == start {
		s.pos++
	}
	return string(s.data[start:s.pos])
}

func (s *contentScanner) array() operand {
	arr := operand{isList: true}
	for {
		s.skipSpaceAndComments()
		if s.pos >= len(s.data) {
			return arr
		}
		if s.data[s.pos] == ']' {
			s.pos++
			return arr
		}
		tok, ok := s.next()
		if !ok {
			return arr
		}
		if tok.kind == tokOperand {
			arr.array = append(arr.array, tok.value)
		}
	}
}

func (s *contentScanner) literal() []byte {
	var out []byte
	depth := 1
	for s.pos < len(s.data) {
		c := s.data[s.pos]
		s.pos++
		switch c {
		case '(':
			depth++
			out = append(out, c)
		case ')':
			depth--
			if depth == 0 {
				return out
			}
			out = append(out, c)
		case '\\':
			if s.pos >= len(s.data) {
				return out
			}
			e := s.data[s.pos]
			s.pos++
			switch e {
			case 'n':
				out = append(out, '\n')
			case 'r':
				out = append(out, '\r')
			case 't':
				out = append(out, '\t')
			case 'b':
				out = append(out, '\b')
			case 'f':
				out = append(out, '\f')
			case '\r':
				if s.pos < len(s.data) && s.data[s.pos] == '\n' {
					s.pos++
				}
			case '\n':
			default:
				if e >= '0' && e <= '7' {
					v := int(e - '0')
					for k := 0; k < 2 && s.pos < len(s.data) && s.data[s.pos] >= '0' && s.data[s.pos] <= '7'; k++ {
						v = v*8 + int(s.data[s.pos]-'0')
						s.pos++
					}
					out = append(out, byte(v))
				} else {
					out = append(out, e)
				}
			}
		default:
			out = append(out, c)
		}
	}
	return out
}

func (s *contentScanner) hex() []byte {
	var digits []byte
	for s.pos < len(s.data) && s.data[s.pos] != '>' {
		if c := s.data[s.pos]; !isWhite(c) {
			digits = append(digits, c)
		}
		s.pos++
	}
	s.pos++
	if len(digits)%2 == 1 {
		digits = append(digits, '0')
	}
	out := make([]byte, 0, len(digits)/2)
	for i := 0; i+1 < len(digits); i += 2 {
		v, err := strconv.ParseUint(string(digits[i:i+2]), 16, 8)
		if err != nil {
			continue
		}
		out = append(out, byte(v))
	}
	return out
}

// skipInlineImage advances past binary inline image data up to the EI operator.
func (s *contentScanner) skipInlineImage() {
	for s.pos+2 < len(s.data) {
		if isWhite(s.data[s.pos]) && s.data[s.pos+1] == 'E' && s.data[s.pos+2] == 'I' &&
			(s.pos+3 >= len(s.data) || isWhite(s.data[s.pos+3])) {
			s.pos += 3
			return
		}
		s.pos++
	}
	s.pos = len(s.data)
}
