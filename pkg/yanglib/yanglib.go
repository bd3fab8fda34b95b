// Package yanglib synthesizes an ietf-yang-library@2015-07-03 instance
// tree describing the modules and submodules registered on a
// schema.Context, built on top of pkg/xmltree.Element.
package yanglib

import (
	"github.com/RoyWorkerLuo/libyang/pkg/schema"
	"github.com/RoyWorkerLuo/libyang/pkg/xmltree"
)

// Namespace is the XML namespace of the ietf-yang-library module.
const Namespace = "urn:ietf:params:xml:ns:yang:ietf-yang-library"

// Info builds the "modules-state" instance tree (ietf-yang-library
// @2015-07-03, container "modules-state") describing every module
// currently registered on ctx: one "module" list entry per module, each
// carrying name/revision/namespace/conformance-type and one feature leaf
// per enabled feature, with
// nested submodule entries, plus the top-level module-set-id leaf.
func Info(ctx *schema.Context) *xmltree.Element {
	root := &xmltree.Element{Name: "modules-state", NamespaceURI: Namespace}
	root.NSDecls = []xmltree.NSDecl{{URI: Namespace}}

	for _, m := range ctx.Modules() {
		root.AddChild(moduleElement(m))
	}

	idLeaf := &xmltree.Element{Name: "module-set-id", Content: ctx.ModuleSetID()}
	root.AddChild(idLeaf)

	return root
}

func moduleElement(m *schema.Module) *xmltree.Element {
	e := &xmltree.Element{Name: "module"}
	e.AddChild(textElement("name", m.Name))
	e.AddChild(textElement("revision", m.LatestRevision()))
	e.AddChild(textElement("namespace", m.Namespace))
	conf := "import"
	if m.Implemented {
		conf = "implement"
	}
	e.AddChild(textElement("conformance-type", conf))

	for _, f := range m.Features {
		if f.Enabled {
			e.AddChild(textElement("feature", f.Name))
		}
	}

	for _, sm := range m.Submodules {
		e.AddChild(submoduleElement(sm))
	}

	return e
}

func submoduleElement(sm *schema.Submodule) *xmltree.Element {
	e := &xmltree.Element{Name: "submodule"}
	e.AddChild(textElement("name", sm.Name))
	rev := ""
	for _, r := range sm.Revisions {
		if r.Date > rev {
			rev = r.Date
		}
	}
	e.AddChild(textElement("revision", rev))
	return e
}

func textElement(name, content string) *xmltree.Element {
	return &xmltree.Element{Name: name, Content: content}
}
