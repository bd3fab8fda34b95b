package main

import (
	"fmt"
	"io"

	"github.com/RoyWorkerLuo/libyang/pkg/indent"
	"github.com/RoyWorkerLuo/libyang/pkg/schema"
)

// printInfo prints one line per node giving its name and kind, recursing
// into children at four-space indent.
func printInfo(w io.Writer, m *schema.Module) {
	fmt.Fprintf(w, "%s [module]\n", m.Name)
	iw := indent.NewWriter(w, "    ")
	for _, td := range m.Typedefs {
		fmt.Fprintf(iw, "%s [typedef] -> %s\n", td.Name, td.Type.Base)
	}
	for _, id := range m.Identities {
		base := "<none>"
		if id.Base != nil {
			base = id.Base.Name
		}
		fmt.Fprintf(iw, "%s [identity] base=%s\n", id.Name, base)
	}
	for c := m.Data; c != nil; c = c.Next {
		printInfoNode(iw, c)
	}
}

func printInfoNode(w io.Writer, n *schema.Node) {
	fmt.Fprintf(w, "%s [%s]\n", n.Name, n.Kind)
	iw := indent.NewWriter(w, "    ")
	switch n.Kind {
	case schema.KindLeaf, schema.KindLeafList:
		fmt.Fprintf(iw, "type = %s\n", n.Leaf.Type.Base)
	case schema.KindList:
		fmt.Fprintf(iw, "key = %v\n", n.List.KeyNames)
	case schema.KindUses:
		target := "<unresolved>"
		if n.Uses.Grouping != nil {
			target = n.Uses.Grouping.Name
		}
		fmt.Fprintf(iw, "grouping = %s\n", target)
	}
	for c := n.FirstChild; c != nil; c = c.Next {
		printInfoNode(iw, c)
	}
}

// printTree prints a rw/ro prefix per node, braces around nodes with
// children, two-space indent.
func printTree(w io.Writer, m *schema.Module) {
	fmt.Fprintf(w, "module: %s\n", m.Name)
	for c := m.Data; c != nil; c = c.Next {
		printTreeNode(w, c)
	}
}

func printTreeNode(w io.Writer, n *schema.Node) {
	if n.Config == schema.ConfigRead {
		fmt.Fprint(w, "ro: ")
	} else {
		fmt.Fprint(w, "rw: ")
	}

	hasChildren := n.FirstChild != nil
	switch n.Kind {
	case schema.KindLeaf:
		fmt.Fprintf(w, "%s %s\n", n.Leaf.Type.Base, n.Name)
		return
	case schema.KindLeafList:
		fmt.Fprintf(w, "[]%s %s\n", n.Leaf.Type.Base, n.Name)
		return
	case schema.KindList:
		fmt.Fprintf(w, "[%v]%s {\n", n.List.KeyNames, n.Name) //}
	case schema.KindUses:
		target := "<unresolved>"
		if n.Uses.Grouping != nil {
			target = n.Uses.Grouping.Name
		}
		fmt.Fprintf(w, "uses %s -> %s\n", n.Name, target)
		return
	default:
		if !hasChildren {
			fmt.Fprintf(w, "%s\n", n.Name)
			return
		}
		fmt.Fprintf(w, "%s {\n", n.Name) //}
	}

	iw := indent.NewWriter(w, "  ")
	for c := n.FirstChild; c != nil; c = c.Next {
		printTreeNode(iw, c)
	}
	fmt.Fprintln(w, "}")
}
