package schema

import (
	"os"
	"strings"
	"testing"

	"github.com/kylelemons/godebug/pretty"
	"github.com/openconfig/gnmi/errdiff"

	"github.com/RoyWorkerLuo/libyang/pkg/diag"
	"github.com/RoyWorkerLuo/libyang/pkg/xmltree"
)

func loadYIN(t *testing.T, ctx *Context, yin string) *Module {
	t.Helper()
	root, err := parseYIN(t, yin)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	m, err := ctx.compileModule(root, "test.yin")
	if err != nil {
		t.Fatalf("compileModule: %v (%v)", err, ctx.Diag.Errors())
	}
	if err := ctx.RegisterModule(m); err != nil {
		t.Fatalf("RegisterModule: %v", err)
	}
	return m
}

func loadYINExpectError(t *testing.T, ctx *Context, yin string) error {
	t.Helper()
	root, err := parseYIN(t, yin)
	if err != nil {
		return err
	}
	_, err = ctx.compileModule(root, "test.yin")
	return err
}

func TestMinimalModule(t *testing.T) {
	ctx := NewContext()
	m := loadYIN(t, ctx, `
<module name="m">
  <namespace uri="urn:m"/>
  <prefix value="m"/>
  <leaf name="x">
    <type name="string"/>
  </leaf>
</module>`)

	if m.Name != "m" || m.Namespace != "urn:m" {
		t.Fatalf("module = %+v", m)
	}
	if m.Data == nil || m.Data.Name != "x" || m.Data.Kind != KindLeaf {
		t.Fatalf("m.Data = %+v, want leaf x", m.Data)
	}
	if m.Data.Leaf.Type.Base != KindString {
		t.Fatalf("m.Data.Leaf.Type.Base = %v, want string", m.Data.Leaf.Type.Base)
	}
	if m.Data.Config != ConfigWrite {
		t.Fatalf("m.Data.Config = %v, want ConfigWrite", m.Data.Config)
	}
	if m.Data.Status != StatusCurrent {
		t.Fatalf("m.Data.Status = %v, want StatusCurrent", m.Data.Status)
	}
}

func TestEnumAutoAssignment(t *testing.T) {
	ctx := NewContext()
	m := loadYIN(t, ctx, `
<module name="m">
  <namespace uri="urn:m"/>
  <prefix value="m"/>
  <leaf name="x">
    <type name="enumeration">
      <enum name="a"/>
      <enum name="b"><value value="5"/></enum>
      <enum name="c"/>
    </type>
  </leaf>
</module>`)

	vals := m.Data.Leaf.Type.Enum.Values
	want := []EnumValue{{"a", 0}, {"b", 5}, {"c", 6}}
	if diff := pretty.Compare(want, vals); diff != "" {
		t.Errorf("enum values differ (-want +got):\n%s", diff)
	}
}

func TestDuplicateEnumValueFails(t *testing.T) {
	ctx := NewContext()
	err := loadYINExpectError(t, ctx, `
<module name="m">
  <namespace uri="urn:m"/>
  <prefix value="m"/>
  <leaf name="x">
    <type name="enumeration">
      <enum name="a"><value value="1"/></enum>
      <enum name="b"><value value="1"/></enum>
    </type>
  </leaf>
</module>`)
	if diff := errdiff.Check(err, "duplicate enum value"); diff != "" {
		t.Error(diff)
	}
	if d, ok := err.(*diag.Diagnostic); !ok || d.Code != diag.CodeDuplicateEnumValue {
		t.Fatalf("err = %v, want CodeDuplicateEnumValue", err)
	}
}

func TestListKeyValidation(t *testing.T) {
	ctx := NewContext()
	m := loadYIN(t, ctx, `
<module name="m">
  <namespace uri="urn:m"/>
  <prefix value="m"/>
  <list name="L">
    <key value="k"/>
    <leaf name="k"><type name="string"/></leaf>
    <leaf name="v"><type name="string"/></leaf>
  </list>
</module>`)

	list := m.Data
	if list.Kind != KindList {
		t.Fatalf("m.Data.Kind = %v, want KindList", list.Kind)
	}
	if len(list.List.Keys) != 1 || list.List.Keys[0].Name != "k" {
		t.Fatalf("list.List.Keys = %+v, want one key 'k'", list.List.Keys)
	}
}

func TestListKeyEmptyTypeFails(t *testing.T) {
	ctx := NewContext()
	err := loadYINExpectError(t, ctx, `
<module name="m">
  <namespace uri="urn:m"/>
  <prefix value="m"/>
  <list name="L">
    <key value="k"/>
    <leaf name="k"><type name="empty"/></leaf>
  </list>
</module>`)
	if diff := errdiff.Check(err, "type empty"); diff != "" {
		t.Error(diff)
	}
	if d, ok := err.(*diag.Diagnostic); !ok || d.Code != diag.CodeKeyTypeEmpty {
		t.Fatalf("err = %v, want CodeKeyTypeEmpty", err)
	}
}

func TestListMissingKeyFails(t *testing.T) {
	ctx := NewContext()
	err := loadYINExpectError(t, ctx, `
<module name="m">
  <namespace uri="urn:m"/>
  <prefix value="m"/>
  <list name="L">
    <leaf name="k"><type name="string"/></leaf>
  </list>
</module>`)
	if err == nil {
		t.Fatalf("expected missing-key error")
	}
	if d, ok := err.(*diag.Diagnostic); !ok || d.Code != diag.CodeMissingKey {
		t.Fatalf("err = %v, want CodeMissingKey", err)
	}
}

func TestIdentityDerivation(t *testing.T) {
	ctx := NewContext()
	m := loadYIN(t, ctx, `
<module name="m">
  <namespace uri="urn:m"/>
  <prefix value="m"/>
  <identity name="base"/>
  <identity name="a"><base name="base"/></identity>
  <identity name="b"><base name="a"/></identity>
</module>`)

	byName := map[string]*Identity{}
	for _, id := range m.Identities {
		byName[id.Name] = id
	}
	base, a, b := byName["base"], byName["a"], byName["b"]
	if a.Base != base || b.Base != a {
		t.Fatalf("a.Base=%v b.Base=%v, want base/a", a.Base, b.Base)
	}
	if len(base.Derived) != 2 {
		t.Fatalf("base.Derived = %+v, want [a b]", base.Derived)
	}
	if len(a.Derived) != 1 || a.Derived[0] != b {
		t.Fatalf("a.Derived = %+v, want [b]", a.Derived)
	}
}

func TestCrossModuleTypedef(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir+"/p.yin", `
<module name="p">
  <namespace uri="urn:p"/>
  <prefix value="p"/>
  <typedef name="t">
    <type name="uint32"/>
  </typedef>
</module>`)

	ctx := NewContext()
	ctx.AddSearchDir(dir)

	qYIN := `
<module name="q">
  <namespace uri="urn:q"/>
  <prefix value="q"/>
  <import module="p">
    <prefix value="pp"/>
  </import>
  <leaf name="n">
    <type name="pp:t"/>
  </leaf>
</module>`
	root, err := parseYIN(t, qYIN)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	q, err := ctx.compileModule(root, dir+"/q.yin")
	if err != nil {
		t.Fatalf("compileModule(q): %v (%v)", err, ctx.Diag.Errors())
	}

	if q.Data.Leaf.Type.Base != KindUint32 {
		t.Fatalf("q.data.n.type.Base = %v, want uint32", q.Data.Leaf.Type.Base)
	}
	p := ctx.LookupModule("p", "")
	if p == nil || q.Data.Leaf.Type.Typedef != p.Typedefs[0] {
		t.Fatalf("q.data.n.type.Typedef does not point at p.tpdf[0]")
	}
}

func TestDuplicateModuleRegistrationFails(t *testing.T) {
	ctx := NewContext()
	yin := `
<module name="m">
  <namespace uri="urn:m"/>
  <prefix value="m"/>
  <leaf name="x"><type name="string"/></leaf>
</module>`
	loadYIN(t, ctx, yin)

	root, _ := parseYIN(t, yin)
	m2, err := ctx.compileModule(root, "test2.yin")
	if err != nil {
		t.Fatalf("compileModule second copy: %v", err)
	}
	if err := ctx.RegisterModule(m2); err == nil {
		t.Fatalf("expected duplicate module registration to fail")
	}
	if len(ctx.Modules()) != 1 {
		t.Fatalf("Modules() after failed duplicate registration = %d, want 1", len(ctx.Modules()))
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writeFile(%s): %v", path, err)
	}
}

func TestSelfImportFails(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir+"/self.yin", `
<module name="self">
  <namespace uri="urn:self"/>
  <prefix value="s"/>
  <import module="self">
    <prefix value="s2"/>
  </import>
</module>`)

	ctx := NewContext()
	ctx.AddSearchDir(dir)
	_, err := ctx.LoadModuleByName("self", "")
	if err == nil {
		t.Fatalf("expected self-import to fail")
	}
}

func TestCompileInternsNames(t *testing.T) {
	ctx := NewContext()
	m := loadYIN(t, ctx, `
<module name="m">
  <namespace uri="urn:m"/>
  <prefix value="m"/>
  <container name="top">
    <leaf name="x"><type name="string"/></leaf>
  </container>
</module>`)

	if got, want := ctx.Dict.RefCount("top"), 1; got != want {
		t.Fatalf("RefCount(top) = %d, want %d", got, want)
	}
	if got, want := ctx.Dict.RefCount("x"), 1; got != want {
		t.Fatalf("RefCount(x) = %d, want %d", got, want)
	}
}

func TestCompileFailureReleasesInternedNames(t *testing.T) {
	ctx := NewContext()
	err := loadYINExpectError(t, ctx, `
<module name="m">
  <namespace uri="urn:m"/>
  <prefix value="m"/>
  <list name="l">
    <leaf name="k"><type name="string"/></leaf>
  </list>
</module>`)
	if err == nil {
		t.Fatalf("expected compile to fail for a config list with no key")
	}
	if got, want := ctx.Dict.RefCount("l"), 0; got != want {
		t.Fatalf("RefCount(l) after failed compile = %d, want %d", got, want)
	}
	if got, want := ctx.Dict.RefCount("k"), 0; got != want {
		t.Fatalf("RefCount(k) after failed compile = %d, want %d", got, want)
	}
}

func TestImportedModuleIsNotImplemented(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir+"/dep.yin", `
<module name="dep">
  <namespace uri="urn:dep"/>
  <prefix value="d"/>
  <leaf name="y"><type name="string"/></leaf>
</module>`)
	writeFile(t, dir+"/main.yin", `
<module name="main">
  <namespace uri="urn:main"/>
  <prefix value="m"/>
  <import module="dep">
    <prefix value="d"/>
  </import>
</module>`)

	ctx := NewContext()
	ctx.AddSearchDir(dir)
	main, err := ctx.LoadModuleByName("main", "")
	if err != nil {
		t.Fatalf("LoadModuleByName(main): %v", err)
	}
	if !main.Implemented {
		t.Errorf("main.Implemented = false, want true (directly loaded)")
	}
	dep := ctx.LookupModule("dep", "")
	if dep == nil {
		t.Fatalf("dep not registered")
	}
	if dep.Implemented {
		t.Errorf("dep.Implemented = true, want false (only reached as an import)")
	}

	// Directly loading dep afterward promotes it to implemented.
	dep2, err := ctx.LoadModuleByName("dep", "")
	if err != nil {
		t.Fatalf("LoadModuleByName(dep): %v", err)
	}
	if dep2 != dep {
		t.Fatalf("LoadModuleByName(dep) returned a different module than the one already registered")
	}
	if !dep.Implemented {
		t.Errorf("dep.Implemented = false after direct load, want true")
	}
}

func parseYIN(t *testing.T, yin string) (*xmltree.Element, error) {
	t.Helper()
	sink := diag.NewSink()
	return xmltree.Parse(strings.TrimSpace(yin), "test.yin", sink)
}
