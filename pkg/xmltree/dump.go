package xmltree

// Dump writes an Element subtree back out as XML, recursing with a
// freshly indented io.Writer per nesting level when Formatted is set, and
// honoring the earlier-resolved namespace scope so xmlns declarations are
// only re-emitted when they change.

import (
	"fmt"
	"io"
	"strings"

	"github.com/RoyWorkerLuo/libyang/pkg/indent"
)

// DumpOptions controls which parts of an element are written and how.
type DumpOptions struct {
	// OpenOnly writes only the start tag (and its attributes), no
	// children, no end tag.
	OpenOnly bool
	// CloseOnly writes only the end tag.
	CloseOnly bool
	// AttrsOnly writes only the attribute list of the element (no
	// angle brackets, no children), one per line if Formatted.
	AttrsOnly bool
	// Formatted pretty-prints with one child per indented line. Without
	// it, Dump writes compact XML with no inserted whitespace.
	Formatted bool
	// Indent is the per-level indent string used when Formatted is set.
	// Defaults to two spaces.
	Indent string
}

// Dump writes e (and, unless OpenOnly/CloseOnly/AttrsOnly narrows the
// output, its subtree) to w according to opts.
func Dump(w io.Writer, e *Element, opts DumpOptions) error {
	if opts.Indent == "" {
		opts.Indent = "  "
	}
	d := &dumper{opts: opts}
	return d.dumpElement(w, e, nil)
}

type dumper struct {
	opts DumpOptions
}

// scope tracks which (prefix, uri) pairs are already in effect so nested
// Dump calls don't re-declare a namespace already visible from an
// ancestor.
type scope struct {
	parent *scope
	decls  map[string]string // prefix -> uri, "" key is the default ns
}

func (s *scope) declared(prefix, uri string) bool {
	for sc := s; sc != nil; sc = sc.parent {
		if got, ok := sc.decls[prefix]; ok {
			return got == uri
		}
	}
	return false
}

func (d *dumper) dumpElement(w io.Writer, e *Element, parentScope *scope) error {
	if d.opts.AttrsOnly {
		return d.dumpAttrs(w, e)
	}

	sc := &scope{parent: parentScope, decls: map[string]string{}}
	for _, ns := range e.NSDecls {
		sc.decls[ns.Prefix] = ns.URI
	}

	hasChildren := e.FirstChild != nil
	selfClosed := !hasChildren && e.Content == "" && !d.opts.OpenOnly && !d.opts.CloseOnly

	if !d.opts.CloseOnly {
		d.writeStartTag(w, e, parentScope, sc, selfClosed)
	}

	if selfClosed {
		if d.opts.Formatted {
			fmt.Fprint(w, "\n")
		}
		return nil
	}

	if d.opts.OpenOnly {
		return nil
	}

	if !d.opts.CloseOnly {
		if hasChildren {
			if d.opts.Formatted {
				fmt.Fprint(w, "\n")
			}
			cw := w
			if d.opts.Formatted {
				cw = indent.NewWriter(w, d.opts.Indent)
			}
			for c := e.FirstChild; c != nil; c = c.Next {
				if err := d.dumpElement(cw, c, sc); err != nil {
					return err
				}
			}
		} else if e.Content != "" {
			fmt.Fprint(w, escapeText(e.Content))
		}
	}

	if !d.opts.OpenOnly {
		fmt.Fprintf(w, "</%s>", e.QName())
		if d.opts.Formatted {
			fmt.Fprint(w, "\n")
		}
	}
	return nil
}

func (d *dumper) writeStartTag(w io.Writer, e *Element, parentScope, sc *scope, selfClosed bool) {
	fmt.Fprintf(w, "<%s", e.QName())
	for _, ns := range e.NSDecls {
		if parentScope.declared(ns.Prefix, ns.URI) {
			continue
		}
		if ns.Prefix == "" {
			fmt.Fprintf(w, " xmlns=\"%s\"", escapeAttr(ns.URI))
		} else {
			fmt.Fprintf(w, " xmlns:%s=\"%s\"", ns.Prefix, escapeAttr(ns.URI))
		}
	}
	for a := e.Attr; a != nil; a = a.Next {
		name := a.Name
		if a.Prefix != "" {
			name = a.Prefix + ":" + a.Name
		}
		fmt.Fprintf(w, " %s=\"%s\"", name, escapeAttr(a.Value))
	}
	if selfClosed {
		fmt.Fprint(w, "/>")
		return
	}
	fmt.Fprint(w, ">")
}

func (d *dumper) dumpAttrs(w io.Writer, e *Element) error {
	for a := e.Attr; a != nil; a = a.Next {
		name := a.Name
		if a.Prefix != "" {
			name = a.Prefix + ":" + a.Name
		}
		fmt.Fprintf(w, "%s=\"%s\"", name, escapeAttr(a.Value))
		if d.opts.Formatted {
			fmt.Fprint(w, "\n")
		} else if a.Next != nil {
			fmt.Fprint(w, " ")
		}
	}
	return nil
}

func escapeText(s string) string {
	r := strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")
	return r.Replace(s)
}

func escapeAttr(s string) string {
	r := strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;")
	return r.Replace(s)
}
