package schema

// Context is the registry of loaded modules: its dictionary, diagnostics
// sink, module search path, and the modules themselves all live on one
// Context value, so independent schema universes (for instance, one per
// device or test case) never share state.

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"

	"github.com/RoyWorkerLuo/libyang/pkg/dict"
	"github.com/RoyWorkerLuo/libyang/pkg/diag"
	"github.com/RoyWorkerLuo/libyang/pkg/xmltree"
)

var revisionPattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// Context owns the dictionary, diagnostics sink, loaded modules, and
// module search directories for one independent YANG schema universe.
type Context struct {
	Dict *dict.Dictionary
	Diag *diag.Sink

	searchDirs []string
	modules    []*Module
	loading    map[string]bool // modules currently mid-compile, by filename key
}

// NewContext returns an empty Context with its own dictionary and
// diagnostics sink.
func NewContext() *Context {
	return &Context{
		Dict: dict.New(),
		Diag: diag.NewSink(),
	}
}

// AddSearchDir appends dir to the list of directories searched by
// LoadModuleByName, in the order added.
func (c *Context) AddSearchDir(dir string) {
	c.searchDirs = append(c.searchDirs, dir)
}

// Modules returns the modules currently registered, in registration
// order.
func (c *Context) Modules() []*Module {
	out := make([]*Module, len(c.modules))
	copy(out, c.modules)
	return out
}

// LookupModule returns the module named name. If revision is "", the
// newest registered revision is returned; otherwise the exact revision is
// required.
func (c *Context) LookupModule(name, revision string) *Module {
	var best *Module
	for _, m := range c.modules {
		if m.Name != name {
			continue
		}
		if revision != "" {
			if m.LatestRevision() == revision {
				return m
			}
			continue
		}
		if best == nil || m.LatestRevision() > best.LatestRevision() {
			best = m
		}
	}
	return best
}

// LookupSubmodule returns the submodule named name belonging to parent, or
// nil.
func (c *Context) LookupSubmodule(parent *Module, name, revision string) *Submodule {
	for _, sm := range parent.Submodules {
		if sm.Name != name {
			continue
		}
		if revision == "" {
			return sm
		}
		for _, r := range sm.Revisions {
			if r.Date == revision {
				return sm
			}
		}
	}
	return nil
}

// RegisterModule installs m into the context. It rejects a module whose
// (name, latest-revision) pair duplicates an already-registered module,
// including the case where both have no revisions at all.
func (c *Context) RegisterModule(m *Module) error {
	rev := m.LatestRevision()
	for _, existing := range c.modules {
		if existing.Name == m.Name && existing.LatestRevision() == rev {
			return c.Diag.Errorf(diag.CodeDuplicateModule, m.Name,
				"module %q revision %q already registered", m.Name, rev)
		}
	}
	c.modules = append(c.modules, m)
	return nil
}

// LoadModuleByName locates <name>.yin or <name>@<revision>.yin in the
// configured search directories, parses it as YIN, compiles it, and
// registers it as a directly-loaded ("implement") module. A module already
// registered as an import target is promoted to "implement" the same way.
func (c *Context) LoadModuleByName(name, revision string) (*Module, error) {
	return c.loadModuleByName(name, revision, true)
}

// loadModuleByName is LoadModuleByName's implementation, parameterized on
// whether the caller is loading the module directly (true) or pulling it
// in as another module's import target (false). implemented only ever
// promotes a module's conformance, never demotes it: once a module is
// directly loaded it stays "implement" even if later reached again as an
// import.
func (c *Context) loadModuleByName(name, revision string, implemented bool) (*Module, error) {
	if revision != "" && !revisionPattern.MatchString(revision) {
		return nil, c.Diag.Errorf(diag.CodeInvalidArgumentValue, name, "malformed revision %q", revision)
	}
	if m := c.LookupModule(name, revision); m != nil {
		if implemented {
			m.Implemented = true
		}
		return m, nil
	}

	filename := name + ".yin"
	if revision != "" {
		filename = fmt.Sprintf("%s@%s.yin", name, revision)
	}

	// A module whose own import chain (directly or transitively) names
	// itself would otherwise recurse through this method without ever
	// registering, since LookupModule only starts returning non-nil once
	// compilation finishes. Track in-flight loads by filename so such a
	// cycle is reported as an ordinary diagnostic instead of recursing
	// until the stack overflows.
	if c.loading == nil {
		c.loading = map[string]bool{}
	}
	if c.loading[filename] {
		return nil, c.Diag.Errorf(diag.CodeUnresolvablePrefix, name, "circular import: module %q is already being loaded", name)
	}
	c.loading[filename] = true
	defer delete(c.loading, filename)

	path, data, err := c.findFile(filename)
	if err != nil {
		return nil, c.Diag.Errorf(diag.CodeIO, name, "%v", err)
	}

	root, err := xmltree.Parse(string(data), path, c.Diag)
	if err != nil {
		return nil, err
	}

	m, err := c.compileModule(root, path)
	if err != nil {
		return nil, err
	}
	m.Implemented = implemented
	if err := c.RegisterModule(m); err != nil {
		m.release(c.Dict)
		return nil, err
	}
	return m, nil
}

// findFile searches the configured directories, in order, for name: the
// current directory is always tried first.
func (c *Context) findFile(name string) (string, []byte, error) {
	if data, err := os.ReadFile(name); err == nil {
		return name, data, nil
	}
	for _, dir := range c.searchDirs {
		p := filepath.Join(dir, name)
		if data, err := os.ReadFile(p); err == nil {
			return p, data, nil
		}
	}
	return "", nil, fmt.Errorf("no such module file: %s", name)
}

// ModuleSetID returns an opaque string that changes whenever the set of
// loaded modules (by name+revision) changes, for use as the
// ietf-yang-library `module-set-id` leaf.
func (c *Context) ModuleSetID() string {
	names := make([]string, 0, len(c.modules))
	for _, m := range c.modules {
		names = append(names, m.Name+"@"+m.LatestRevision())
	}
	sort.Strings(names)
	h := fnv1a(names)
	return fmt.Sprintf("%x", h)
}

func fnv1a(ss []string) uint64 {
	const offset = 14695981039346656037
	const prime = 1099511628211
	h := uint64(offset)
	for _, s := range ss {
		for i := 0; i < len(s); i++ {
			h ^= uint64(s[i])
			h *= prime
		}
		h ^= ','
		h *= prime
	}
	return h
}
