package schema

// This file is the YIN reader: it drives an xmltree.Element produced by
// pkg/xmltree into the compiled Module/Node/Type model in types.go.
//
// Compilation runs in three passes over a module's direct children. The
// first classifies each element by name and, in source order, reads the
// header statements, resolves imports, reads typedefs (so a typedef can
// refer only to typedefs declared before it) and allocates identities. The
// second binds identity bases. The third builds the data-definition tree.
// The data-definition elements encountered during classification are held
// in a plain []*xmltree.Element on the call stack rather than spliced into
// a second tree, so the later pass can walk them in source order without
// touching the input document.

import (
	"strconv"
	"strings"

	"github.com/RoyWorkerLuo/libyang/pkg/diag"
	"github.com/RoyWorkerLuo/libyang/pkg/xmltree"
)

var dataDefNames = map[string]bool{
	"container": true, "list": true, "leaf": true, "leaf-list": true,
	"choice": true, "case": true, "uses": true, "grouping": true, "anyxml": true,
}

type reader struct {
	ctx  *Context
	file string

	// interned holds every dictionary entry contributed by this reader's
	// compilation pass, so the module being built can release them if
	// compilation fails or the module is discarded after compiling.
	interned []*string
}

// intern records s in the context dictionary and returns the dictionary's
// canonical copy, tracking the returned pointer for later release.
func (r *reader) intern(s string) string {
	if s == "" {
		return s
	}
	p := r.ctx.Dict.Insert(s)
	r.interned = append(r.interned, p)
	return *p
}

func (c *Context) compileModule(root *xmltree.Element, file string) (m *Module, err error) {
	r := &reader{ctx: c, file: file}
	defer func() {
		if err != nil {
			for _, p := range r.interned {
				c.Dict.Remove(p)
			}
		}
	}()

	if root.Name != "module" {
		return nil, c.Diag.Errorf(diag.CodeMalformedXML, file, "expected root element 'module', found %q", root.Name)
	}
	name, ok := root.AttrByName("name")
	if !ok {
		return nil, c.Diag.Errorf(diag.CodeMissingRequiredArgument, file, "module element missing 'name' attribute")
	}
	m = &Module{Name: r.intern(name)}

	var dataEls []*xmltree.Element
	for _, child := range root.Children() {
		switch child.Name {
		case "namespace":
			uri, _ := child.AttrByName("uri")
			m.Namespace = r.intern(uri)
		case "prefix":
			v, _ := child.AttrByName("value")
			m.Prefix = r.intern(v)
		case "yang-version":
			v, _ := child.AttrByName("value")
			m.YANGVersion = r.intern(v)
		case "description":
			m.Description = r.intern(childText(child))
		case "reference":
			m.Reference = r.intern(childText(child))
		case "organization":
			m.Organization = r.intern(childText(child))
		case "contact":
			m.Contact = r.intern(childText(child))
		case "revision":
			m.Revisions = append(m.Revisions, r.readRevision(child))
		case "import":
			imp, err := r.readImport(child)
			if err != nil {
				return nil, err
			}
			m.Imports = append(m.Imports, imp)
		case "include":
			inc, err := r.readInclude(child)
			if err != nil {
				return nil, err
			}
			m.Includes = append(m.Includes, inc)
		case "typedef":
			td, err := r.readTypedef(child, m, nil)
			if err != nil {
				return nil, err
			}
			m.Typedefs = append(m.Typedefs, td)
		case "identity":
			m.Identities = append(m.Identities, &Identity{Name: r.intern(attrOrEmpty(child, "name")), Module: m})
		case "feature":
			m.Features = append(m.Features, &Feature{Name: r.intern(attrOrEmpty(child, "name")), Enabled: true})
		default:
			// Unknown/extension elements not in the YIN namespace's
			// recognized statement set are skipped with a warning.
			if dataDefNames[child.Name] {
				dataEls = append(dataEls, child)
			} else {
				c.Diag.Warningf(file, "skipping unrecognized statement %q", child.Name)
			}
		}
	}

	if err := r.resolveIdentityBases(m, root); err != nil {
		return nil, err
	}

	for _, el := range dataEls {
		node, err := r.readDataDef(el, m, nil)
		if err != nil {
			return nil, err
		}
		if m.Data == nil {
			m.Data = node
			node.Prev = node
		} else {
			last := m.Data.Prev
			last.Next = node
			node.Prev = last
			node.Next = nil
			m.Data.Prev = node
		}
	}

	m.interned = r.interned
	return m, nil
}

func attrOrEmpty(e *xmltree.Element, name string) string {
	v, _ := e.AttrByName(name)
	return v
}

// childText returns the content of e's nested <text> element, the YIN
// convention for carrying a statement's string argument as element
// content rather than an attribute.
func childText(e *xmltree.Element) string {
	if t := e.FirstChildByName("text"); t != nil {
		return t.Content
	}
	return e.Content
}

func (r *reader) readRevision(e *xmltree.Element) *Revision {
	rev := &Revision{Date: r.intern(attrOrEmpty(e, "date"))}
	if d := e.FirstChildByName("description"); d != nil {
		rev.Description = r.intern(childText(d))
	}
	if d := e.FirstChildByName("reference"); d != nil {
		rev.Reference = r.intern(childText(d))
	}
	return rev
}

func (r *reader) readImport(e *xmltree.Element) (*Import, error) {
	modName := attrOrEmpty(e, "module")
	imp := &Import{ModuleName: r.intern(modName)}
	if p := e.FirstChildByName("prefix"); p != nil {
		imp.Prefix = r.intern(attrOrEmpty(p, "value"))
	}
	if rd := e.FirstChildByName("revision-date"); rd != nil {
		imp.Revision = r.intern(attrOrEmpty(rd, "date"))
	}
	target, err := r.ctx.loadModuleByName(modName, imp.Revision, false)
	if err != nil {
		return nil, err
	}
	imp.Module = target
	return imp, nil
}

func (r *reader) readInclude(e *xmltree.Element) (*Include, error) {
	subName := attrOrEmpty(e, "module")
	inc := &Include{SubmoduleName: r.intern(subName)}
	if rd := e.FirstChildByName("revision-date"); rd != nil {
		inc.Revision = r.intern(attrOrEmpty(rd, "date"))
	}
	return inc, nil
}

func (r *reader) readTypedef(e *xmltree.Element, m *Module, ancestors []*Node) (*Typedef, error) {
	td := &Typedef{Name: r.intern(attrOrEmpty(e, "name"))}
	typeEl := e.FirstChildByName("type")
	if typeEl == nil {
		return nil, r.ctx.Diag.Errorf(diag.CodeMissingRequiredArgument, r.file, "typedef %q missing type", td.Name)
	}
	t, err := r.readType(typeEl, m, ancestors)
	if err != nil {
		return nil, err
	}
	td.Type = t
	if d := e.FirstChildByName("description"); d != nil {
		td.Description = r.intern(childText(d))
	}
	if d := e.FirstChildByName("reference"); d != nil {
		td.Reference = r.intern(childText(d))
	}
	return td, nil
}

// resolveIdentityBases binds each of m's identities to its base, once all
// of m's identities have been allocated. Forward references within the
// same module are permitted, since binding happens only after every
// identity statement has been seen.
func (r *reader) resolveIdentityBases(m *Module, root *xmltree.Element) error {
	idx := 0
	for _, child := range root.Children() {
		if child.Name != "identity" {
			continue
		}
		id := m.Identities[idx]
		idx++
		baseEl := child.FirstChildByName("base")
		if baseEl == nil {
			continue
		}
		baseName := attrOrEmpty(baseEl, "name")
		base, err := r.resolveIdentity(m, baseName)
		if err != nil {
			return err
		}
		id.Base = base
	}
	// Derived lists are filled only once every Base is bound, so that
	// addDerived's walk up the Base chain also reaches ancestors whose own
	// base statement appears later in the module.
	for _, id := range m.Identities {
		if id.Base != nil {
			addDerived(id.Base, id)
		}
	}
	return nil
}

func (r *reader) resolveIdentity(m *Module, qname string) (*Identity, error) {
	prefix, local := splitPrefixed(qname)
	if prefix == m.Prefix {
		prefix = ""
	}
	if prefix == "" {
		for _, id := range m.Identities {
			if id.Name == local {
				return id, nil
			}
		}
		return nil, r.ctx.Diag.Errorf(diag.CodeUnknownIdentityBase, r.file, "unknown identity base %q", qname)
	}
	imp := findImportByPrefix(m, prefix)
	if imp == nil {
		return nil, r.ctx.Diag.Errorf(diag.CodeUnresolvablePrefix, r.file, "unresolvable namespace prefix %q", prefix)
	}
	for _, id := range imp.Module.Identities {
		if id.Name == local {
			return id, nil
		}
	}
	return nil, r.ctx.Diag.Errorf(diag.CodeUnknownIdentityBase, r.file, "unknown identity base %q in module %q", local, imp.ModuleName)
}

func splitPrefixed(s string) (prefix, local string) {
	if i := strings.IndexByte(s, ':'); i >= 0 {
		return s[:i], s[i+1:]
	}
	return "", s
}

func findImportByPrefix(m *Module, prefix string) *Import {
	for _, imp := range m.Imports {
		if imp.Prefix == prefix {
			return imp
		}
	}
	return nil
}

func findModuleTypedef(m *Module, name string) *Typedef {
	for _, td := range m.Typedefs {
		if td.Name == name {
			return td
		}
	}
	for _, sm := range m.Submodules {
		for _, td := range sm.Typedefs {
			if td.Name == name {
				return td
			}
		}
	}
	return nil
}

// findAncestorTypedef walks the node ancestor chain, innermost first,
// consulting only container/list/grouping typedef tables; other ancestor
// kinds carry no typedefs of their own and are skipped without
// terminating the walk.
func findAncestorTypedef(ancestors []*Node, name string) *Typedef {
	for i := len(ancestors) - 1; i >= 0; i-- {
		a := ancestors[i]
		var tds []*Typedef
		switch a.Kind {
		case KindContainer:
			tds = a.Container.Typedefs
		case KindList:
			tds = a.List.Typedefs
		case KindGrouping:
			tds = a.Grouping.Typedefs
		default:
			continue
		}
		for _, td := range tds {
			if td.Name == name {
				return td
			}
		}
	}
	return nil
}

func (r *reader) readType(typeEl *xmltree.Element, m *Module, ancestors []*Node) (*Type, error) {
	qname := attrOrEmpty(typeEl, "name")
	prefix, local := splitPrefixed(qname)
	if prefix == m.Prefix {
		prefix = ""
	}
	t := &Type{Name: r.intern(local), Prefix: r.intern(prefix)}

	if prefix == "" {
		if bk, ok := lookupBuiltin(local); ok {
			t.Base = bk
			if err := r.fillBuiltinPayload(t, typeEl, m, ancestors); err != nil {
				return nil, err
			}
			return t, nil
		}
		if td := findAncestorTypedef(ancestors, local); td != nil {
			t.Typedef = td
			t.Base = td.Type.Base
			return t, nil
		}
		if td := findModuleTypedef(m, local); td != nil {
			t.Typedef = td
			t.Base = td.Type.Base
			return t, nil
		}
		return nil, r.ctx.Diag.Errorf(diag.CodeUnknownTypedef, r.file, "unknown type %q", local)
	}

	imp := findImportByPrefix(m, prefix)
	if imp == nil {
		return nil, r.ctx.Diag.Errorf(diag.CodeUnresolvablePrefix, r.file, "unresolvable namespace prefix %q", prefix)
	}
	td := findModuleTypedef(imp.Module, local)
	if td == nil {
		return nil, r.ctx.Diag.Errorf(diag.CodeUnknownTypedef, r.file, "unknown type %q in module %q", local, imp.ModuleName)
	}
	t.Typedef = td
	t.Base = td.Type.Base
	return t, nil
}

func (r *reader) fillBuiltinPayload(t *Type, typeEl *xmltree.Element, m *Module, ancestors []*Node) error {
	switch t.Base {
	case KindEnumeration:
		info := newEnumInfo()
		for _, enumEl := range typeEl.ChildrenByName("enum") {
			name := attrOrEmpty(enumEl, "name")
			if strings.TrimSpace(name) != name || name == "" {
				return r.ctx.Diag.Errorf(diag.CodeWhitespaceInEnumName, r.file, "enum name %q has leading/trailing whitespace", name)
			}
			name = r.intern(name)
			valueEl := enumEl.FirstChildByName("value")
			var value int64
			explicit := valueEl != nil
			if explicit {
				v, err := strconv.ParseInt(attrOrEmpty(valueEl, "value"), 10, 64)
				if err != nil {
					return r.ctx.Diag.Errorf(diag.CodeInvalidArgumentValue, r.file, "invalid enum value for %q: %v", name, err)
				}
				value = v
			}
			if err := info.Add(name, value, explicit); err != nil {
				d := err.(*diag.Diagnostic)
				return r.ctx.Diag.Errorf(d.Code, r.file, "%s", d.Message)
			}
		}
		t.Enum = info
	case KindIdentityref:
		baseEl := typeEl.FirstChildByName("base")
		if baseEl == nil {
			return r.ctx.Diag.Errorf(diag.CodeMissingRequiredArgument, r.file, "identityref type missing 'base'")
		}
		base, err := r.resolveIdentity(m, attrOrEmpty(baseEl, "name"))
		if err != nil {
			return err
		}
		t.Identityref = &IdentityrefInfo{Base: base}
	case KindUnion:
		info := &UnionInfo{}
		for _, memberEl := range typeEl.ChildrenByName("type") {
			mt, err := r.readType(memberEl, m, ancestors)
			if err != nil {
				return err
			}
			info.Members = append(info.Members, mt)
		}
		t.Union = info
	case KindLeafref:
		info := &LeafrefInfo{}
		if p := typeEl.FirstChildByName("path"); p != nil {
			info.Path = r.intern(attrOrEmpty(p, "value"))
		}
		t.Leafref = info
	case KindDecimal64:
		info := &Decimal64Info{}
		if fd := typeEl.FirstChildByName("fraction-digits"); fd != nil {
			if v, err := strconv.Atoi(attrOrEmpty(fd, "value")); err == nil {
				info.FractionDigits = v
			}
		}
		t.Decimal64 = info
	case KindString:
		info := &StringInfo{}
		for _, p := range typeEl.ChildrenByName("pattern") {
			info.Patterns = append(info.Patterns, r.intern(attrOrEmpty(p, "value")))
		}
		t.Str = info
	}
	return nil
}

// readStatus reads the `status` substatement, returning the parent's
// status when the statement is absent.
func readStatus(e *xmltree.Element, parentStatus Status) Status {
	se := e.FirstChildByName("status")
	if se == nil {
		return parentStatus
	}
	switch attrOrEmpty(se, "value") {
	case "deprecated":
		return StatusDeprecated
	case "obsolete":
		return StatusObsolete
	default:
		return StatusCurrent
	}
}

// readConfig reads the `config` substatement, returning the parent's
// config value when the statement is absent.
func readConfig(e *xmltree.Element, parentConfig Config) Config {
	ce := e.FirstChildByName("config")
	if ce == nil {
		return parentConfig
	}
	switch attrOrEmpty(ce, "value") {
	case "false":
		return ConfigRead
	case "true":
		return ConfigWrite
	default:
		return parentConfig
	}
}

func (r *reader) readDataDef(e *xmltree.Element, m *Module, ancestors []*Node) (*Node, error) {
	parentConfig := ConfigWrite
	parentStatus := StatusCurrent
	if len(ancestors) > 0 {
		parentConfig = ancestors[len(ancestors)-1].Config
		parentStatus = ancestors[len(ancestors)-1].Status
	}

	n := &Node{
		Module: m,
		Name:   r.intern(attrOrEmpty(e, "name")),
		Status: readStatus(e, parentStatus),
		Config: readConfig(e, parentConfig),
	}
	if d := e.FirstChildByName("description"); d != nil {
		n.Description = r.intern(childText(d))
	}
	if d := e.FirstChildByName("reference"); d != nil {
		n.Reference = r.intern(childText(d))
	}
	if mand := e.FirstChildByName("mandatory"); mand != nil {
		n.Mandatory = attrOrEmpty(mand, "value") == "true"
	}

	switch e.Name {
	case "container":
		return r.readContainer(e, n, ancestors)
	case "list":
		return r.readList(e, n, ancestors)
	case "leaf":
		return r.readLeaf(e, n, m, ancestors)
	case "leaf-list":
		return r.readLeafList(e, n, m, ancestors)
	case "choice":
		return r.readChoice(e, n, ancestors)
	case "case":
		n.Kind = KindCase
		return r.readContainerLikeChildren(e, n, ancestors)
	case "uses":
		return r.readUses(e, n, m, ancestors)
	case "grouping":
		return r.readGrouping(e, n, ancestors)
	case "anyxml":
		n.Kind = KindAnyxml
		return n, nil
	default:
		return nil, r.ctx.Diag.Errorf(diag.CodeUnknownStatement, r.file, "unexpected data-definition statement %q", e.Name)
	}
}

func (r *reader) readContainer(e *xmltree.Element, n *Node, ancestors []*Node) (*Node, error) {
	n.Kind = KindContainer
	info := &ContainerInfo{}
	if p := e.FirstChildByName("presence"); p != nil {
		info.Presence = true
	}
	n.Container = info
	selfAncestors := withAncestor(ancestors, n)
	for _, td := range e.ChildrenByName("typedef") {
		t, err := r.readTypedef(td, n.Module, selfAncestors)
		if err != nil {
			return nil, err
		}
		info.Typedefs = append(info.Typedefs, t)
	}
	return r.readContainerLikeChildren(e, n, ancestors)
}

// readContainerLikeChildren builds n's nested data-definition children in
// source order, attaching each via Node.AddChild. Used by container,
// list, grouping, case, and choice (whose direct children, absent an explicit <case>
// wrapper, are themselves ordinary data-definition statements).
func (r *reader) readContainerLikeChildren(e *xmltree.Element, n *Node, ancestors []*Node) (*Node, error) {
	selfAncestors := withAncestor(ancestors, n)
	for _, child := range e.Children() {
		if !dataDefNames[child.Name] {
			continue
		}
		cn, err := r.readDataDef(child, n.Module, selfAncestors)
		if err != nil {
			return nil, err
		}
		n.AddChild(cn)
	}
	return n, nil
}

func (r *reader) readList(e *xmltree.Element, n *Node, ancestors []*Node) (*Node, error) {
	n.Kind = KindList
	info := &ListInfo{}
	n.List = info
	selfAncestors := withAncestor(ancestors, n)
	for _, td := range e.ChildrenByName("typedef") {
		t, err := r.readTypedef(td, n.Module, selfAncestors)
		if err != nil {
			return nil, err
		}
		info.Typedefs = append(info.Typedefs, t)
	}
	if _, err := r.readContainerLikeChildren(e, n, ancestors); err != nil {
		return nil, err
	}

	keyEl := e.FirstChildByName("key")
	var keyNames []string
	if keyEl != nil {
		for _, kn := range strings.Fields(attrOrEmpty(keyEl, "value")) {
			keyNames = append(keyNames, r.intern(kn))
		}
	}
	if n.Config == ConfigWrite && len(keyNames) == 0 {
		return nil, r.ctx.Diag.Errorf(diag.CodeMissingKey, r.file, "list %q is config but declares no keys", n.Name)
	}
	seen := map[string]bool{}
	for _, kn := range keyNames {
		if seen[kn] {
			return nil, r.ctx.Diag.Errorf(diag.CodeDuplicateKey, r.file, "list %q: duplicate key %q", n.Name, kn)
		}
		seen[kn] = true
		leaf := n.FindChildByName(kn, KindLeaf)
		if leaf == nil {
			return nil, r.ctx.Diag.Errorf(diag.CodeMissingKey, r.file, "list %q: key %q is not a direct leaf child", n.Name, kn)
		}
		if leaf.Leaf.Type.Base == KindEmpty {
			return nil, r.ctx.Diag.Errorf(diag.CodeKeyTypeEmpty, r.file, "list %q: key %q has type empty", n.Name, kn)
		}
		if leaf.Config != n.Config {
			return nil, r.ctx.Diag.Errorf(diag.CodeKeyConfigMismatch, r.file, "list %q: key %q config flag does not match the list", n.Name, kn)
		}
		info.Keys = append(info.Keys, leaf)
		info.KeyNames = append(info.KeyNames, kn)
	}
	return n, nil
}

func (r *reader) readLeaf(e *xmltree.Element, n *Node, m *Module, ancestors []*Node) (*Node, error) {
	n.Kind = KindLeaf
	typeEl := e.FirstChildByName("type")
	if typeEl == nil {
		return nil, r.ctx.Diag.Errorf(diag.CodeMissingRequiredArgument, r.file, "leaf %q missing type", n.Name)
	}
	t, err := r.readType(typeEl, m, ancestors)
	if err != nil {
		return nil, err
	}
	info := &LeafInfo{Type: t}
	if u := e.FirstChildByName("units"); u != nil {
		info.Units = r.intern(attrOrEmpty(u, "name"))
	}
	if d := e.FirstChildByName("default"); d != nil {
		info.Default = r.intern(attrOrEmpty(d, "value"))
	}
	n.Leaf = info
	return n, nil
}

func (r *reader) readLeafList(e *xmltree.Element, n *Node, m *Module, ancestors []*Node) (*Node, error) {
	n.Kind = KindLeafList
	typeEl := e.FirstChildByName("type")
	if typeEl == nil {
		return nil, r.ctx.Diag.Errorf(diag.CodeMissingRequiredArgument, r.file, "leaf-list %q missing type", n.Name)
	}
	t, err := r.readType(typeEl, m, ancestors)
	if err != nil {
		return nil, err
	}
	n.Leaf = &LeafInfo{Type: t}
	return n, nil
}

func (r *reader) readChoice(e *xmltree.Element, n *Node, ancestors []*Node) (*Node, error) {
	n.Kind = KindChoice
	info := &ChoiceInfo{}
	if d := e.FirstChildByName("default"); d != nil {
		info.Default = r.intern(attrOrEmpty(d, "value"))
	}
	n.Choice = info
	return r.readContainerLikeChildren(e, n, ancestors)
}

func (r *reader) readGrouping(e *xmltree.Element, n *Node, ancestors []*Node) (*Node, error) {
	n.Kind = KindGrouping
	info := &GroupingInfo{}
	n.Grouping = info
	selfAncestors := withAncestor(ancestors, n)
	for _, td := range e.ChildrenByName("typedef") {
		t, err := r.readTypedef(td, n.Module, selfAncestors)
		if err != nil {
			return nil, err
		}
		info.Typedefs = append(info.Typedefs, t)
	}
	return r.readContainerLikeChildren(e, n, ancestors)
}

func (r *reader) readUses(e *xmltree.Element, n *Node, m *Module, ancestors []*Node) (*Node, error) {
	n.Kind = KindUses
	groupingName := r.intern(attrOrEmpty(e, "name"))
	info := &UsesInfo{GroupingName: groupingName}
	n.Uses = info

	// A uses inside a grouping is not resolved: its Grouping stays nil,
	// and using the enclosing grouping does not bind it either.
	for _, a := range ancestors {
		if a.Kind == KindGrouping {
			return n, nil
		}
	}

	prefix, local := splitPrefixed(groupingName)
	if prefix == m.Prefix {
		prefix = ""
	}
	if prefix == "" {
		if g := findGroupingInScope(m, ancestors, local); g != nil {
			info.Grouping = g
			return n, nil
		}
		return nil, r.ctx.Diag.Errorf(diag.CodeInvalidUses, r.file, "invalid argument to uses: unknown grouping %q", groupingName)
	}
	imp := findImportByPrefix(m, prefix)
	if imp == nil {
		return nil, r.ctx.Diag.Errorf(diag.CodeUnresolvablePrefix, r.file, "unresolvable namespace prefix %q", prefix)
	}
	if g := findGroupingAtTop(imp.Module, local); g != nil {
		info.Grouping = g
		return n, nil
	}
	return nil, r.ctx.Diag.Errorf(diag.CodeInvalidUses, r.file, "invalid argument to uses: unknown grouping %q in module %q", local, imp.ModuleName)
}

func withAncestor(ancestors []*Node, n *Node) []*Node {
	out := make([]*Node, len(ancestors)+1)
	copy(out, ancestors)
	out[len(ancestors)] = n
	return out
}

// findGroupingInScope walks the node ancestor chain innermost-first, then
// falls back to the module's own top-level data definitions exactly once.
func findGroupingInScope(m *Module, ancestors []*Node, name string) *Node {
	for i := len(ancestors) - 1; i >= 0; i-- {
		if g := ancestors[i].FindChildByName(name, KindGrouping); g != nil {
			return g
		}
	}
	return findGroupingAtTop(m, name)
}

func findGroupingAtTop(m *Module, name string) *Node {
	for c := m.Data; c != nil; c = c.Next {
		if c.Kind == KindGrouping && c.Name == name {
			return c
		}
	}
	return nil
}

