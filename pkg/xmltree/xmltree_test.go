package xmltree

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/RoyWorkerLuo/libyang/pkg/diag"
)

func mustParse(t *testing.T, input string) *Element {
	t.Helper()
	sink := diag.NewSink()
	root, err := Parse(input, "test.xml", sink)
	if err != nil {
		t.Fatalf("Parse(%q) error: %v (diagnostics: %v)", input, err, sink.Errors())
	}
	return root
}

func TestParseSimpleTree(t *testing.T) {
	root := mustParse(t, `<?xml version="1.0"?><a><b>text</b><c/></a>`)
	if root.Name != "a" {
		t.Fatalf("root.Name = %q, want %q", root.Name, "a")
	}
	kids := root.Children()
	if len(kids) != 2 {
		t.Fatalf("len(root.Children()) = %d, want 2", len(kids))
	}
	if kids[0].Name != "b" || kids[0].Content != "text" {
		t.Errorf("kids[0] = %+v, want Name=b Content=text", kids[0])
	}
	if kids[1].Name != "c" || kids[1].FirstChild != nil {
		t.Errorf("kids[1] = %+v, want empty self-closed c", kids[1])
	}
}

func TestHalfRingInvariant(t *testing.T) {
	root := mustParse(t, `<a><b/><c/><d/></a>`)
	if err := root.checkRing(); err != nil {
		t.Fatalf("checkRing: %v", err)
	}
	first := root.FirstChild
	last := root.LastChild()
	if last.Name != "d" {
		t.Fatalf("LastChild().Name = %q, want %q", last.Name, "d")
	}
	if first.Prev != last {
		t.Fatalf("FirstChild.Prev = %+v, want the last child (half-ring invariant)", first.Prev)
	}
	if last.Next != nil {
		t.Fatalf("LastChild().Next = %+v, want nil", last.Next)
	}
}

func TestAttributesAndEntities(t *testing.T) {
	root := mustParse(t, `<a x="1&amp;2" y='&lt;ok&gt;'>&#65;&#x42;</a>`)
	x, ok := root.AttrByName("x")
	if !ok || x != "1&2" {
		t.Errorf("attr x = (%q, %v), want (%q, true)", x, ok, "1&2")
	}
	y, ok := root.AttrByName("y")
	if !ok || y != "<ok>" {
		t.Errorf("attr y = (%q, %v), want (%q, true)", y, ok, "<ok>")
	}
	if root.Content != "AB" {
		t.Errorf("root.Content = %q, want %q", root.Content, "AB")
	}
}

func TestNamespaceNearestAncestorWins(t *testing.T) {
	root := mustParse(t, `<a xmlns="urn:outer"><b xmlns="urn:inner"><c/></b><d/></a>`)
	b := root.FirstChildByName("b")
	c := b.FirstChildByName("c")
	d := root.FirstChildByName("d")
	if root.NamespaceURI != "urn:outer" {
		t.Errorf("root.NamespaceURI = %q, want urn:outer", root.NamespaceURI)
	}
	if b.NamespaceURI != "urn:inner" {
		t.Errorf("b.NamespaceURI = %q, want urn:inner", b.NamespaceURI)
	}
	if c.NamespaceURI != "urn:inner" {
		t.Errorf("c.NamespaceURI = %q, want urn:inner (inherited)", c.NamespaceURI)
	}
	if d.NamespaceURI != "urn:outer" {
		t.Errorf("d.NamespaceURI = %q, want urn:outer (inherited, not urn:inner)", d.NamespaceURI)
	}
}

func TestPrefixedNamespace(t *testing.T) {
	root := mustParse(t, `<y:a xmlns:y="urn:y"><y:b/></y:a>`)
	if root.Prefix != "y" || root.NamespaceURI != "urn:y" {
		t.Fatalf("root = {Prefix:%q NamespaceURI:%q}, want {y urn:y}", root.Prefix, root.NamespaceURI)
	}
	b := root.FirstChild
	if b.Prefix != "y" || b.NamespaceURI != "urn:y" {
		t.Fatalf("b = {Prefix:%q NamespaceURI:%q}, want {y urn:y}", b.Prefix, b.NamespaceURI)
	}
}

func TestUnresolvablePrefixFails(t *testing.T) {
	sink := diag.NewSink()
	_, err := Parse(`<z:a/>`, "bad.xml", sink)
	if err == nil {
		t.Fatalf("Parse with unbound prefix succeeded, want error")
	}
	errs := sink.Errors()
	if len(errs) == 0 || errs[0].Code != diag.CodeUnresolvablePrefix {
		t.Fatalf("Errors() = %+v, want a CodeUnresolvablePrefix diagnostic", errs)
	}
}

func TestMismatchedEndTagFails(t *testing.T) {
	sink := diag.NewSink()
	_, err := Parse(`<a><b></c></a>`, "bad.xml", sink)
	if err == nil {
		t.Fatalf("Parse with mismatched end-tag succeeded, want error")
	}
}

func TestCDATAAndComments(t *testing.T) {
	root := mustParse(t, `<a><!-- a comment --><b><![CDATA[<raw>&amp;]]></b></a>`)
	b := root.FirstChildByName("b")
	if b.Content != "<raw>&amp;" {
		t.Errorf("b.Content = %q, want CDATA verbatim %q", b.Content, "<raw>&amp;")
	}
}

func TestDumpRoundTrip(t *testing.T) {
	input := `<module xmlns="urn:ns"><leaf name="x"><type name="string"/></leaf></module>`
	root := mustParse(t, input)

	var buf bytes.Buffer
	if err := Dump(&buf, root, DumpOptions{}); err != nil {
		t.Fatalf("Dump: %v", err)
	}

	reparsed := mustParse(t, buf.String())
	if diff := cmp.Diff(root, reparsed, cmpopts.IgnoreFields(Element{}, "Parent", "Next", "Prev")); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}

	var buf2 bytes.Buffer
	if err := Dump(&buf2, reparsed, DumpOptions{}); err != nil {
		t.Fatalf("second Dump: %v", err)
	}
	if buf.String() != buf2.String() {
		t.Errorf("dump not stable across reparse:\n%q\n%q", buf.String(), buf2.String())
	}
}

func TestDumpDoesNotDoubleEscapeBackslashes(t *testing.T) {
	root := mustParse(t, `<pattern value="\d+"/>`)
	var buf bytes.Buffer
	if err := Dump(&buf, root, DumpOptions{}); err != nil {
		t.Fatalf("Dump: %v", err)
	}
	if got, want := buf.String(), `<pattern value="\d+"/>`; got != want {
		t.Errorf("Dump = %q, want %q", got, want)
	}
}

func TestDumpFormattedIndents(t *testing.T) {
	root := mustParse(t, `<a><b/><c/></a>`)
	var buf bytes.Buffer
	if err := Dump(&buf, root, DumpOptions{Formatted: true}); err != nil {
		t.Fatalf("Dump: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "\n  <b/>\n") {
		t.Errorf("formatted dump = %q, want indented children", out)
	}
}

func TestDumpOpenOnlyAndCloseOnly(t *testing.T) {
	root := mustParse(t, `<a><b/></a>`)
	var open bytes.Buffer
	if err := Dump(&open, root, DumpOptions{OpenOnly: true}); err != nil {
		t.Fatalf("Dump OpenOnly: %v", err)
	}
	if open.String() != "<a>" {
		t.Errorf("OpenOnly dump = %q, want %q", open.String(), "<a>")
	}

	var closeOnly bytes.Buffer
	if err := Dump(&closeOnly, root, DumpOptions{CloseOnly: true}); err != nil {
		t.Fatalf("Dump CloseOnly: %v", err)
	}
	if closeOnly.String() != "</a>" {
		t.Errorf("CloseOnly dump = %q, want %q", closeOnly.String(), "</a>")
	}
}

func TestDumpDoesNotRedeclareInheritedNamespace(t *testing.T) {
	root := mustParse(t, `<a xmlns="urn:x"><b><c/></b></a>`)
	var buf bytes.Buffer
	if err := Dump(&buf, root, DumpOptions{}); err != nil {
		t.Fatalf("Dump: %v", err)
	}
	out := buf.String()
	if strings.Count(out, "xmlns=") != 1 {
		t.Errorf("Dump output = %q, want exactly one xmlns declaration", out)
	}
}
