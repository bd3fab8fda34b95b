// Package schema implements the compiled YANG schema model: modules,
// types, identities, and the data-definition node tree, plus the YIN
// reader that populates them from an xmltree.Element (see reader.go).
//
// Node and Type are both tagged variants: a Kind/BaseKind enum paired with
// a kind-specific payload pointer, so that one Go struct can represent any
// YANG data-definition statement or type reference instead of one struct
// type per statement keyword.
package schema

import (
	"github.com/RoyWorkerLuo/libyang/pkg/diag"
	"github.com/RoyWorkerLuo/libyang/pkg/dict"
)

// BaseKind identifies one of YANG's built-in type kinds. A type derived
// from a typedef carries the built-in kind it resolves to; KindUnknown is
// the zero value.
type BaseKind int

const (
	KindUnknown BaseKind = iota
	KindBinary
	KindBits
	KindBoolean
	KindDecimal64
	KindEmpty
	KindEnumeration
	KindIdentityref
	KindInstanceIdentifier
	KindInt8
	KindInt16
	KindInt32
	KindInt64
	KindLeafref
	KindString
	KindUint8
	KindUint16
	KindUint32
	KindUint64
	KindUnion
)

var builtinNames = map[string]BaseKind{
	"binary":              KindBinary,
	"bits":                KindBits,
	"boolean":             KindBoolean,
	"decimal64":           KindDecimal64,
	"empty":               KindEmpty,
	"enumeration":         KindEnumeration,
	"identityref":         KindIdentityref,
	"instance-identifier": KindInstanceIdentifier,
	"int8":                KindInt8,
	"int16":               KindInt16,
	"int32":               KindInt32,
	"int64":               KindInt64,
	"leafref":             KindLeafref,
	"string":              KindString,
	"uint8":               KindUint8,
	"uint16":              KindUint16,
	"uint32":              KindUint32,
	"uint64":              KindUint64,
	"union":               KindUnion,
}

func (k BaseKind) String() string {
	for name, bk := range builtinNames {
		if bk == k {
			return name
		}
	}
	if k == KindUnknown {
		return "unknown"
	}
	return "invalid"
}

// lookupBuiltin returns the BaseKind for a built-in type name, and whether
// it was recognized.
func lookupBuiltin(name string) (BaseKind, bool) {
	k, ok := builtinNames[name]
	return k, ok
}

// EnumValue is one member of an enumeration type. Auto-assignment
// starts at 0 and always increases past the highest explicitly- or
// auto-assigned value so far.
type EnumValue struct {
	Name  string
	Value int64
}

// EnumInfo is the Type payload for KindEnumeration.
type EnumInfo struct {
	Values []EnumValue
	last   int64
	seen   map[string]bool
	byVal  map[int64]bool
}

func newEnumInfo() *EnumInfo {
	return &EnumInfo{last: -1, seen: map[string]bool{}, byVal: map[int64]bool{}}
}

const (
	minEnumValue = -(1 << 31)
	maxEnumValue = 1<<31 - 1
)

// Add records one enum member, auto-assigning its value if explicit is
// false. It enforces name uniqueness and rejects a value collision.
func (e *EnumInfo) Add(name string, value int64, explicit bool) error {
	if e.seen[name] {
		return &diag.Diagnostic{Level: diag.LevelError, Code: diag.CodeDuplicateEnumName, Message: "duplicate enum name: " + name}
	}
	if !explicit {
		if e.last == maxEnumValue {
			return &diag.Diagnostic{Level: diag.LevelError, Code: diag.CodeInvalidArgumentValue, Message: "enum " + name + " must specify a value since the previous enum is the maximum value allowed"}
		}
		value = e.last + 1
	} else if value < minEnumValue || value > maxEnumValue {
		return &diag.Diagnostic{Level: diag.LevelError, Code: diag.CodeInvalidArgumentValue, Message: "enum value out of range for " + name}
	}
	if e.byVal[value] {
		return &diag.Diagnostic{Level: diag.LevelError, Code: diag.CodeDuplicateEnumValue, Message: "duplicate enum value for " + name}
	}
	e.seen[name] = true
	e.byVal[value] = true
	e.Values = append(e.Values, EnumValue{Name: name, Value: value})
	if value > e.last {
		e.last = value
	}
	return nil
}

// IdentityrefInfo is the Type payload for KindIdentityref.
type IdentityrefInfo struct {
	Base *Identity
}

// UnionInfo is the Type payload for KindUnion.
type UnionInfo struct {
	Members []*Type
}

// LeafrefInfo is the Type payload for KindLeafref.
type LeafrefInfo struct {
	Path string
}

// Decimal64Info is the Type payload for KindDecimal64.
type Decimal64Info struct {
	FractionDigits int
}

// StringInfo is the Type payload for KindString. Patterns are recorded but
// not enforced against instance data.
type StringInfo struct {
	Patterns []string
}

// Type is a YANG type reference: either a direct use of a built-in, or a
// derivation of a Typedef, with a kind-tagged payload.
type Type struct {
	Name    string   // as written in the `type` statement, local part
	Prefix  string   // qualifying prefix, if any (after module-self-prefix elision)
	Base    BaseKind // resolved base kind
	Typedef *Typedef // non-nil if Name resolved to a typedef rather than a builtin

	Enum        *EnumInfo
	Identityref *IdentityrefInfo
	Union       *UnionInfo
	Leafref     *LeafrefInfo
	Decimal64   *Decimal64Info
	Str         *StringInfo
}

// Typedef is a named derivation of a Type.
type Typedef struct {
	Name        string
	Type        *Type
	Status      Status
	Description string
	Reference   string
}

// Status is the current/deprecated/obsolete status flag, inherited from
// the parent when unspecified.
type Status int

const (
	StatusCurrent Status = iota
	StatusDeprecated
	StatusObsolete
)

// Config is the read-write/read-only flag, inherited from the parent when
// unspecified; the top-level default is ConfigWrite.
type Config int

const (
	ConfigWrite Config = iota
	ConfigRead
)

// Identity is a named, hierarchically derivable value. Identities form a
// directed acyclic graph via Base/Derived, maintained bidirectionally so
// that both "what is this derived from" and "what derives from this" are
// O(1) lookups.
type Identity struct {
	Name    string
	Module  *Module
	Base    *Identity
	Derived []*Identity
}

// addDerived records id as transitively derived from base, walking up
// base's own Base chain so every ancestor's Derived list is updated too.
// This is what makes identity-subtree queries (everything derived from X,
// at any depth) an O(1) lookup instead of a graph walk.
func addDerived(base, id *Identity) {
	for b := base; b != nil; b = b.Base {
		b.Derived = append(b.Derived, id)
	}
}

// Revision is one `revision` statement.
type Revision struct {
	Date        string // YYYY-MM-DD
	Description string
	Reference   string
}

// Import is a resolved `import` statement.
type Import struct {
	ModuleName string
	Prefix     string
	Revision   string // optional, empty if unspecified
	Module     *Module
}

// Include records an `include` statement's submodule name and revision.
// The submodule is not loaded or compiled: Submodule stays nil and the
// including module's Submodules list stays empty.
type Include struct {
	SubmoduleName string
	Revision      string
	Submodule     *Submodule
}

// Kind discriminates the variant payload carried by a Node.
type Kind int

const (
	KindContainer Kind = iota
	KindList
	KindLeaf
	KindLeafList
	KindChoice
	KindCase
	KindUses
	KindGrouping
	KindAnyxml
)

func (k Kind) String() string {
	switch k {
	case KindContainer:
		return "container"
	case KindList:
		return "list"
	case KindLeaf:
		return "leaf"
	case KindLeafList:
		return "leaf-list"
	case KindChoice:
		return "choice"
	case KindCase:
		return "case"
	case KindUses:
		return "uses"
	case KindGrouping:
		return "grouping"
	case KindAnyxml:
		return "anyxml"
	default:
		return "invalid"
	}
}

// ContainerInfo is the Node payload for KindContainer.
type ContainerInfo struct {
	Presence bool
	Typedefs []*Typedef
}

// ListInfo is the Node payload for KindList.
type ListInfo struct {
	Keys        []*Node // pointers into the list's own leaf children
	KeyNames    []string
	Typedefs    []*Typedef
	MinElements int
	MaxElements int // 0 means unbounded
	OrderedBy   string
}

// LeafInfo is the Node payload for KindLeaf and KindLeafList.
type LeafInfo struct {
	Type    *Type
	Units   string
	Default string
}

// ChoiceInfo is the Node payload for KindChoice.
type ChoiceInfo struct {
	Default string
}

// GroupingInfo is the Node payload for KindGrouping.
type GroupingInfo struct {
	Typedefs []*Typedef
}

// UsesInfo is the Node payload for KindUses.
type UsesInfo struct {
	GroupingName string
	Grouping     *Node // resolved target, KindGrouping
}

// Node is one schema data-definition node. Children form the same
// half-ring sibling list as xmltree.Element: FirstChild.Prev is the last
// child, and the last child's Next is nil.
type Node struct {
	Kind Kind

	Module *Module
	Parent *Node

	FirstChild *Node
	Next       *Node
	Prev       *Node

	Name        string
	Description string
	Reference   string
	Status      Status
	Config      Config
	Mandatory   bool

	Container *ContainerInfo
	List      *ListInfo
	Leaf      *LeafInfo
	Choice    *ChoiceInfo
	Grouping  *GroupingInfo
	Uses      *UsesInfo
}

// AddChild appends child to n's half-ring child list, mirroring
// xmltree.Element.AddChild.
func (n *Node) AddChild(child *Node) {
	child.Parent = n
	if n.FirstChild == nil {
		child.Next = nil
		child.Prev = child
		n.FirstChild = child
		return
	}
	last := n.FirstChild.Prev
	last.Next = child
	child.Prev = last
	child.Next = nil
	n.FirstChild.Prev = child
}

// Children returns n's children in document order.
func (n *Node) Children() []*Node {
	var out []*Node
	for c := n.FirstChild; c != nil; c = c.Next {
		out = append(out, c)
	}
	return out
}

// FindChildByName performs a linear search over n's half-ring for a child
// named name whose Kind is in kinds (or any kind, if kinds is empty).
func (n *Node) FindChildByName(name string, kinds ...Kind) *Node {
	for c := n.FirstChild; c != nil; c = c.Next {
		if c.Name != name {
			continue
		}
		if len(kinds) == 0 {
			return c
		}
		for _, k := range kinds {
			if c.Kind == k {
				return c
			}
		}
	}
	return nil
}

// Feature is one `feature` declaration within a module, with its current
// on/off state.
type Feature struct {
	Name    string
	Enabled bool
}

// Module is a compiled top-level YANG module.
type Module struct {
	Name         string
	Namespace    string
	Prefix       string
	YANGVersion  string
	Description  string
	Reference    string
	Organization string
	Contact      string

	Revisions  []*Revision
	Imports    []*Import
	Includes   []*Include
	Typedefs   []*Typedef
	Identities []*Identity
	Features   []*Feature

	Submodules []*Submodule

	// Data is the first top-level data-definition node; children form
	// the usual half-ring list.
	Data *Node

	// Implemented is true if this module was explicitly loaded by the
	// caller (directly, or as the target of a prior direct load), false
	// if it has only ever been reached as another module's import target.
	// Determines the "implement" vs "import" conformance type reported by
	// the yang-library instance tree.
	Implemented bool

	// interned holds every dictionary entry this module contributed,
	// so the entries can be released if the module is discarded after
	// compilation (a failed or duplicate registration).
	interned []*string
}

// LatestRevision returns the most recent revision date, or "" if the
// module declares none.
func (m *Module) LatestRevision() string {
	best := ""
	for _, r := range m.Revisions {
		if r.Date > best {
			best = r.Date
		}
	}
	return best
}

// release returns every string m interned back to d, decrementing its
// reference count. Called when a compiled module is discarded rather than
// registered.
func (m *Module) release(d *dict.Dictionary) {
	for _, p := range m.interned {
		d.Remove(p)
	}
}

// Submodule is a compiled `submodule`; it shares its belongs-to module's
// namespace and prefix rather than declaring its own.
type Submodule struct {
	Name        string
	BelongsTo   string
	Description string
	Reference   string

	Revisions  []*Revision
	Imports    []*Import
	Includes   []*Include
	Typedefs   []*Typedef
	Identities []*Identity

	Module *Module // the module this submodule belongs to, once resolved

	Data *Node
}
