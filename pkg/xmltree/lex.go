package xmltree

// This file implements XML tokenization using a stateFn-driven scanner: a
// channel of tokens fed by a state function that returns the next state,
// with line/column tracking and an Errorf that accumulates diagnostics
// rather than panicking.

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/RoyWorkerLuo/libyang/pkg/diag"
)

const eof = -1

type tokCode int

const (
	tEOF tokCode = iota
	tError
	tOpenStart  // "<name" consumed, name in Text
	tCloseStart // "</name" consumed, name in Text
	tSelfClose  // "/>"
	tTagEnd     // ">"
	tAttrName   // an attribute name
	tAttrValue  // a de-entitied, quoted attribute value
	tText       // de-entitied text content
	tCDATA      // CDATA section content, verbatim
	tPI         // processing instruction body (XML declaration or other PI)
)

func (c tokCode) String() string {
	switch c {
	case tEOF:
		return "EOF"
	case tError:
		return "Error"
	case tOpenStart:
		return "OpenStart"
	case tCloseStart:
		return "CloseStart"
	case tSelfClose:
		return "SelfClose"
	case tTagEnd:
		return "TagEnd"
	case tAttrName:
		return "AttrName"
	case tAttrValue:
		return "AttrValue"
	case tText:
		return "Text"
	case tCDATA:
		return "CDATA"
	case tPI:
		return "PI"
	default:
		return fmt.Sprintf("tokCode(%d)", int(c))
	}
}

type token struct {
	code tokCode
	text string
	line int
	col  int
}

type stateFn func(*lexer) stateFn

type lexer struct {
	file  string
	input string
	start int
	pos   int
	line  int
	col   int

	sline int
	scol  int

	inTag bool // true once an open-tag's name has been read, until '>' or '/>'

	items chan *token
	state stateFn

	width int

	sink *diag.Sink
}

func newLexer(input, file string, sink *diag.Sink) *lexer {
	return &lexer{
		file:  file,
		input: input,
		line:  1,
		items: make(chan *token, 4),
		state: lexText,
		sink:  sink,
	}
}

func (l *lexer) nextToken() *token {
	for {
		select {
		case t := <-l.items:
			return t
		default:
			if l.state == nil {
				return &token{code: tEOF, line: l.line, col: l.col + 1}
			}
			l.state = l.state(l)
		}
	}
}

func (l *lexer) emit(c tokCode) {
	l.emitText(c, l.input[l.start:l.pos])
}

func (l *lexer) emitText(c tokCode, text string) {
	l.items <- &token{code: c, text: text, line: l.sline, col: l.scol + 1}
	l.consume()
}

func (l *lexer) consume() {
	l.start = l.pos
	l.sline = l.line
	l.scol = l.col
}

func (l *lexer) next() rune {
	if l.pos >= len(l.input) {
		l.width = 0
		return eof
	}
	r, w := utf8.DecodeRuneInString(l.input[l.pos:])
	l.pos += w
	l.width = w
	if r == '\n' {
		l.line++
		l.col = 0
	} else {
		l.col++
	}
	return r
}

func (l *lexer) backup() {
	l.pos -= l.width
	if l.width > 0 {
		l.col--
		if l.col < 0 {
			l.line--
			l.col = 0
		}
	}
}

func (l *lexer) peek() rune {
	r := l.next()
	l.backup()
	return r
}

func (l *lexer) acceptRun(valid string) {
	for strings.ContainsRune(valid, l.next()) {
	}
	l.backup()
}

func (l *lexer) skipTo(s string) bool {
	if x := strings.Index(l.input[l.pos:], s); x >= 0 {
		chunk := l.input[l.pos : l.pos+x]
		l.pos += x
		l.line += strings.Count(chunk, "\n")
		if i := strings.LastIndex(chunk, "\n"); i >= 0 {
			l.col = len(chunk) - i - 1
		} else {
			l.col += len(chunk)
		}
		l.width = 0
		return true
	}
	return false
}

func (l *lexer) errorf(format string, args ...interface{}) stateFn {
	loc := fmt.Sprintf("%s:%d:%d", l.file, l.sline, l.scol+1)
	l.sink.Errorf(diag.CodeMalformedXML, loc, format, args...)
	l.emitText(tError, "")
	return nil
}

const nameChars = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789_.-:"

func isNameStart(r rune) bool {
	return r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func lexText(l *lexer) stateFn {
	l.consume()
	for {
		switch l.peek() {
		case eof:
			if l.pos > l.start {
				l.emit(tText)
			}
			return nil
		case '<':
			if l.pos > l.start {
				text, err := unescape(l.input[l.start:l.pos])
				if err != nil {
					return l.errorf("%v", err)
				}
				l.emitText(tText, text)
			}
			l.next()
			l.consume()
			return lexTag
		default:
			l.next()
		}
	}
}

func lexTag(l *lexer) stateFn {
	switch c := l.peek(); {
	case c == '/':
		l.next()
		l.consume()
		return lexCloseTagName
	case c == '!':
		return lexBang
	case c == '?':
		l.next()
		l.consume()
		return lexPI
	case isNameStart(c):
		return lexOpenTagName
	default:
		return l.errorf("unexpected character %q starting a tag", c)
	}
}

func lexBang(l *lexer) stateFn {
	rest := l.input[l.pos:]
	switch {
	case strings.HasPrefix(rest, "!--"):
		l.pos += 3
		l.col += 3
		if !l.skipTo("-->") {
			return l.errorf("unterminated comment")
		}
		l.pos += 3
		l.col += 3
		l.consume()
		return lexText
	case strings.HasPrefix(rest, "![CDATA["):
		l.pos += 8
		l.col += 8
		l.consume()
		if !l.skipTo("]]>") {
			return l.errorf("unterminated CDATA section")
		}
		l.emit(tCDATA)
		l.pos += 3
		l.col += 3
		l.consume()
		return lexText
	case strings.HasPrefix(rest, "!DOCTYPE"):
		if !l.skipTo(">") {
			return l.errorf("unterminated DOCTYPE declaration")
		}
		l.next()
		l.consume()
		return lexText
	default:
		return l.errorf("unrecognized '<!' construct")
	}
}

func lexPI(l *lexer) stateFn {
	l.consume()
	if !l.skipTo("?>") {
		return l.errorf("unterminated processing instruction")
	}
	l.emit(tPI)
	l.next()
	l.next()
	l.consume()
	return lexText
}

func lexOpenTagName(l *lexer) stateFn {
	l.acceptRun(nameChars)
	l.emit(tOpenStart)
	l.inTag = true
	return lexInTag
}

func lexCloseTagName(l *lexer) stateFn {
	l.acceptRun(nameChars)
	l.emit(tCloseStart)
	l.acceptRun(" \t\r\n")
	l.consume()
	if l.peek() != '>' {
		return l.errorf("expected '>' closing end-tag")
	}
	l.next()
	l.consume()
	return lexText
}

func lexInTag(l *lexer) stateFn {
	l.acceptRun(" \t\r\n")
	l.consume()
	switch c := l.peek(); {
	case c == '>':
		l.next()
		l.emit(tTagEnd)
		l.inTag = false
		return lexText
	case c == '/':
		l.next()
		if l.peek() != '>' {
			return l.errorf("expected '>' after '/'")
		}
		l.next()
		l.emit(tSelfClose)
		l.inTag = false
		return lexText
	case isNameStart(c):
		l.acceptRun(nameChars)
		l.emit(tAttrName)
		l.acceptRun(" \t\r\n")
		l.consume()
		if l.peek() != '=' {
			return l.errorf("expected '=' after attribute name")
		}
		l.next()
		l.consume()
		l.acceptRun(" \t\r\n")
		l.consume()
		return lexAttrValue
	case c == eof:
		return l.errorf("unexpected end of input inside a tag")
	default:
		return l.errorf("unexpected character %q inside a tag", c)
	}
}

func lexAttrValue(l *lexer) stateFn {
	quote := l.peek()
	if quote != '"' && quote != '\'' {
		return l.errorf("expected quoted attribute value")
	}
	l.next()
	l.consume()
	for {
		switch c := l.next(); c {
		case eof:
			return l.errorf("unterminated attribute value")
		case quote:
			raw := l.input[l.start : l.pos-1]
			text, err := unescape(raw)
			if err != nil {
				return l.errorf("%v", err)
			}
			l.emitText(tAttrValue, text)
			return lexInTag
		}
	}
}

// unescape expands the five predefined XML entities and numeric character
// references. No other named entities are recognized, matching YIN's
// scope (it carries no DTD).
func unescape(s string) (string, error) {
	if !strings.ContainsRune(s, '&') {
		return s, nil
	}
	var b strings.Builder
	for i := 0; i < len(s); {
		c := s[i]
		if c != '&' {
			b.WriteByte(c)
			i++
			continue
		}
		semi := strings.IndexByte(s[i:], ';')
		if semi < 0 {
			return "", fmt.Errorf("unterminated entity reference")
		}
		ent := s[i+1 : i+semi]
		switch ent {
		case "amp":
			b.WriteByte('&')
		case "lt":
			b.WriteByte('<')
		case "gt":
			b.WriteByte('>')
		case "quot":
			b.WriteByte('"')
		case "apos":
			b.WriteByte('\'')
		default:
			if strings.HasPrefix(ent, "#x") || strings.HasPrefix(ent, "#X") {
				n, err := strconv.ParseInt(ent[2:], 16, 32)
				if err != nil {
					return "", fmt.Errorf("invalid numeric character reference &%s;", ent)
				}
				b.WriteRune(rune(n))
			} else if strings.HasPrefix(ent, "#") {
				n, err := strconv.ParseInt(ent[1:], 10, 32)
				if err != nil {
					return "", fmt.Errorf("invalid numeric character reference &%s;", ent)
				}
				b.WriteRune(rune(n))
			} else {
				return "", fmt.Errorf("unknown entity reference &%s;", ent)
			}
		}
		i += semi + 1
	}
	return b.String(), nil
}
