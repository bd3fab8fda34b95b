package xmltree

// The parser drives the lexer's token stream to assemble an Element tree,
// resolving namespace prefixes against the nearest enclosing declaration
// (nearest-ancestor-wins).

import (
	"fmt"
	"strings"

	"github.com/RoyWorkerLuo/libyang/pkg/diag"
)

// Parse reads a complete XML document from input and returns its root
// Element. file is used only to attribute diagnostics to a location.
func Parse(input, file string, sink *diag.Sink) (*Element, error) {
	p := &parser{lex: newLexer(input, file, sink), file: file, sink: sink}
	p.advance()
	root, err := p.parseDocument()
	if err != nil {
		return nil, err
	}
	if root == nil {
		return nil, sink.Errorf(diag.CodeMalformedXML, file, "no root element found")
	}
	return root, nil
}

type nsScope struct {
	parent  *nsScope
	prefix  string // "" for default namespace
	uri     string
	element string // element name this scope was pushed for, for debugging
}

func (s *nsScope) resolve(prefix string) (string, bool) {
	for sc := s; sc != nil; sc = sc.parent {
		if sc.prefix == prefix {
			return sc.uri, true
		}
	}
	return "", false
}

type parser struct {
	lex  *lexer
	file string
	sink *diag.Sink
	cur  *token
}

func (p *parser) advance() { p.cur = p.lex.nextToken() }

func (p *parser) loc() string {
	return fmt.Sprintf("%s:%d:%d", p.file, p.cur.line, p.cur.col)
}

func (p *parser) parseDocument() (*Element, error) {
	for {
		switch p.cur.code {
		case tEOF:
			return nil, nil
		case tError:
			return nil, fmt.Errorf("xml parse error")
		case tPI, tText:
			// Leading text outside the root must be whitespace-only; the
			// XML declaration is a tPI we simply discard.
			if p.cur.code == tText && strings.TrimSpace(p.cur.text) != "" {
				return nil, p.sink.Errorf(diag.CodeMalformedXML, p.loc(), "unexpected text before root element")
			}
			p.advance()
		case tOpenStart:
			return p.parseElement(nil, nil)
		default:
			return nil, p.sink.Errorf(diag.CodeMalformedXML, p.loc(), "expected root element, found %v", p.cur.code)
		}
	}
}

// parseElement parses one element (the tOpenStart token is current) and
// its subtree, given the enclosing namespace scope.
func (p *parser) parseElement(parent *Element, scope *nsScope) (*Element, error) {
	startTok := p.cur
	qname := startTok.text
	el := &Element{Line: startTok.line}
	el.Prefix, el.Name = splitQName(qname)

	p.advance()

	// First pass over attributes: collect raw attrs and namespace decls,
	// since a prefix may be declared anywhere among the attributes of its
	// own element (order-independent within one start tag).
	type rawAttr struct {
		qname, value string
		line         int
	}
	var raw []rawAttr
	localScope := scope
	for p.cur.code == tAttrName {
		name := p.cur.text
		line := p.cur.line
		p.advance()
		if p.cur.code != tAttrValue {
			return nil, p.sink.Errorf(diag.CodeMalformedXML, p.loc(), "expected attribute value after %q", name)
		}
		value := p.cur.text
		p.advance()
		switch {
		case name == "xmlns":
			localScope = &nsScope{parent: localScope, prefix: "", uri: value, element: qname}
			el.NSDecls = append(el.NSDecls, NSDecl{Prefix: "", URI: value})
		case strings.HasPrefix(name, "xmlns:"):
			pfx := name[len("xmlns:"):]
			localScope = &nsScope{parent: localScope, prefix: pfx, uri: value, element: qname}
			el.NSDecls = append(el.NSDecls, NSDecl{Prefix: pfx, URI: value})
		default:
			raw = append(raw, rawAttr{qname: name, value: value, line: line})
		}
	}

	if el.Prefix != "" {
		uri, ok := localScope.resolve(el.Prefix)
		if !ok {
			return nil, p.sink.Errorf(diag.CodeUnresolvablePrefix, p.loc(), "unresolvable namespace prefix %q on element %q", el.Prefix, qname)
		}
		el.NamespaceURI = uri
	} else if uri, ok := localScope.resolve(""); ok {
		el.NamespaceURI = uri
	}

	for _, a := range raw {
		pfx, local := splitQName(a.qname)
		attr := &Attr{Name: local, Prefix: pfx, Value: a.value, Line: a.line}
		if pfx != "" {
			uri, ok := localScope.resolve(pfx)
			if !ok {
				return nil, p.sink.Errorf(diag.CodeUnresolvablePrefix, p.loc(), "unresolvable namespace prefix %q on attribute %q", pfx, a.qname)
			}
			attr.NamespaceURI = uri
		}
		if el.Attr == nil {
			el.Attr = attr
		} else {
			last := el.Attr
			for last.Next != nil {
				last = last.Next
			}
			last.Next = attr
		}
	}

	switch p.cur.code {
	case tSelfClose:
		p.advance()
		if parent != nil {
			parent.AddChild(el)
		}
		return el, nil
	case tTagEnd:
		p.advance()
	default:
		return nil, p.sink.Errorf(diag.CodeMalformedXML, p.loc(), "expected '>' or '/>' ending start-tag %q", qname)
	}

	var sawChild, sawText bool
	var textBuf strings.Builder
	for {
		switch p.cur.code {
		case tEOF:
			return nil, p.sink.Errorf(diag.CodeMalformedXML, p.loc(), "unexpected end of input inside element %q", qname)
		case tError:
			return nil, fmt.Errorf("xml parse error")
		case tText:
			if strings.TrimSpace(p.cur.text) != "" {
				sawText = true
			}
			textBuf.WriteString(p.cur.text)
			p.advance()
		case tCDATA:
			sawText = true
			textBuf.WriteString(p.cur.text)
			p.advance()
		case tPI:
			p.advance()
		case tOpenStart:
			if sawText && strings.TrimSpace(textBuf.String()) != "" {
				sawChild = true
			}
			child, err := p.parseElement(el, localScope)
			if err != nil {
				return nil, err
			}
			_ = child
			sawChild = true
		case tCloseStart:
			name := p.cur.text
			if name != qname {
				return nil, p.sink.Errorf(diag.CodeMalformedXML, p.loc(), "mismatched end-tag: expected %q, found %q", qname, name)
			}
			p.advance()
			if sawChild && sawText {
				el.Mixed = true
			} else if !sawChild {
				el.Content = textBuf.String()
			}
			if parent != nil {
				parent.AddChild(el)
			}
			return el, nil
		default:
			return nil, p.sink.Errorf(diag.CodeMalformedXML, p.loc(), "unexpected token %v inside element %q", p.cur.code, qname)
		}
	}
}

func splitQName(qname string) (prefix, local string) {
	if i := strings.IndexByte(qname, ':'); i >= 0 {
		return qname[:i], qname[i+1:]
	}
	return "", qname
}
