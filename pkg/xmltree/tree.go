// Package xmltree implements the XML tree substrate used to read and write
// YIN documents. Elements form a half-ring doubly-linked sibling list: a
// child's Next is nil at the end of the list, but the first child's Prev
// points directly to the last child rather than being nil. The schema
// package's Node tree, built on top of this package, reuses the same
// shape for its own children.
//
// The lexer and parser are a state-machine tokenizer (a channel of tokens,
// stateFn-style dispatch, line/column tracking) generalized to XML rather
// than a single statement grammar.
package xmltree

import "fmt"

// Attr is one attribute on an Element, held in an ordinary singly-linked
// list in document order; unlike elements, attributes have no half-ring
// requirement.
type Attr struct {
	Name         string
	Prefix       string // empty if unprefixed
	NamespaceURI string // resolved at parse time; empty if unprefixed
	Value        string
	Next         *Attr

	Line int
}

// NSDecl is one xmlns or xmlns:prefix declaration appearing directly on an
// Element.
type NSDecl struct {
	Prefix string // empty for the default namespace
	URI    string
}

// Element is one XML element. Children are held in a half-ring sibling
// list: FirstChild.Prev is the last child (not nil), but the last child's
// Next is nil. An Element with no children has FirstChild == nil.
type Element struct {
	Name         string
	Prefix       string
	NamespaceURI string

	Attr    *Attr
	NSDecls []NSDecl

	Parent     *Element
	FirstChild *Element
	Next       *Element
	Prev       *Element

	// Content holds text content for elements with no child elements.
	// Mixed is set if both text and child elements were present; mixed
	// content is detected but not otherwise modeled.
	Content string
	Mixed   bool

	Line int
}

// AddChild appends child to e's child list, maintaining the half-ring
// invariant.
func (e *Element) AddChild(child *Element) {
	child.Parent = e
	if e.FirstChild == nil {
		child.Next = nil
		child.Prev = child
		e.FirstChild = child
		return
	}
	last := e.FirstChild.Prev
	last.Next = child
	child.Prev = last
	child.Next = nil
	e.FirstChild.Prev = child
}

// Children returns e's children as a plain slice, in document order. It is
// provided for callers that prefer slice iteration over walking the
// half-ring directly; internal code that cares about the ring invariant
// should walk FirstChild/Next/Prev itself.
func (e *Element) Children() []*Element {
	var out []*Element
	for c := e.FirstChild; c != nil; c = c.Next {
		out = append(out, c)
	}
	return out
}

// LastChild returns e's last child, or nil if e has no children. This is
// an O(1) lookup precisely because of the half-ring invariant.
func (e *Element) LastChild() *Element {
	if e.FirstChild == nil {
		return nil
	}
	return e.FirstChild.Prev
}

// ChildrenByName returns e's immediate children whose local Name matches
// name, in document order.
func (e *Element) ChildrenByName(name string) []*Element {
	var out []*Element
	for c := e.FirstChild; c != nil; c = c.Next {
		if c.Name == name {
			out = append(out, c)
		}
	}
	return out
}

// FirstChildByName returns e's first immediate child whose local Name
// matches name, or nil.
func (e *Element) FirstChildByName(name string) *Element {
	for c := e.FirstChild; c != nil; c = c.Next {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// AttrByName returns the value of the named attribute (unprefixed) and
// whether it was present.
func (e *Element) AttrByName(name string) (string, bool) {
	for a := e.Attr; a != nil; a = a.Next {
		if a.Prefix == "" && a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// QName returns e's qualified name: "prefix:local" if e has a prefix, or
// just "local" otherwise.
func (e *Element) QName() string {
	if e.Prefix == "" {
		return e.Name
	}
	return fmt.Sprintf("%s:%s", e.Prefix, e.Name)
}

// checkRing reports whether e's child list satisfies the half-ring
// invariant: if e has children, FirstChild.Prev must be the last child
// (the one with Next == nil), and no other child's Next may be nil.
// Unexported; used by this package's tests validating the structural
// invariant (spec §8); not used by the parser itself, which maintains the invariant by
// construction in AddChild.
func (e *Element) checkRing() error {
	if e.FirstChild == nil {
		return nil
	}
	last := e.FirstChild.Prev
	if last == nil {
		return fmt.Errorf("xmltree: FirstChild.Prev is nil")
	}
	seen := 0
	c := e.FirstChild
	for {
		seen++
		if c.Next == nil {
			break
		}
		if seen > 1<<20 {
			return fmt.Errorf("xmltree: child list does not terminate")
		}
		c = c.Next
	}
	if c != last {
		return fmt.Errorf("xmltree: FirstChild.Prev does not point to the actual last child")
	}
	return nil
}
