// Program yin is a thin non-interactive CLI over pkg/schema.Context, with
// one subcommand per operation: add, list, searchpath, verb, and
// print -f {info,tree}.
//
// print -f yang, data/config/filter instance operations, xpath, feature
// -e/-d, and an interactive shell are out of scope and rejected with a
// usage message rather than silently accepted.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pborman/getopt"

	"github.com/RoyWorkerLuo/libyang/pkg/diag"
	"github.com/RoyWorkerLuo/libyang/pkg/schema"
	"github.com/RoyWorkerLuo/libyang/pkg/xmltree"
	"github.com/RoyWorkerLuo/libyang/pkg/yanglib"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	ctx := schema.NewContext()
	cmd, args := os.Args[1], os.Args[2:]

	var err error
	switch cmd {
	case "add":
		err = runAdd(ctx, args)
	case "list":
		err = runList(ctx, args)
	case "searchpath":
		err = runSearchPath(ctx, args)
	case "verb":
		err = runVerb(ctx, args)
	case "print":
		err = runPrint(ctx, args)
	case "-h", "--help", "help":
		usage()
		return
	default:
		fmt.Fprintf(os.Stderr, "yin: unknown command %q\n", cmd)
		usage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintln(os.Stderr, "yin:", err)
		for _, d := range ctx.Diag.Errors() {
			fmt.Fprintln(os.Stderr, d)
		}
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprint(os.Stderr, `usage: yin COMMAND [ARGS]

Commands:
    add -p DIR FILE...          load and compile YIN modules
    list -p DIR...              list .yin modules found on a search path
    searchpath -p DIR...        print the effective module search path
    verb LEVEL FILE...          load FILE at verbosity LEVEL and report diagnostics
    print -f info|tree FILE...  print a loaded module's schema

Out of scope (rejected, not silently accepted): print -f yang, data/config/
filter instance operations, xpath, feature -e/-d, and the interactive shell.
`)
}

func runAdd(ctx *schema.Context, args []string) error {
	set := getopt.New()
	var dirs []string
	set.ListVarLong(&dirs, "path", 'p', "directory to add to the module search path", "DIR")
	if err := set.Getopt(append([]string{"add"}, args...), nil); err != nil {
		return err
	}
	for _, d := range dirs {
		ctx.AddSearchDir(d)
	}
	for _, file := range set.Args() {
		m, err := loadFile(ctx, file)
		if err != nil {
			return err
		}
		fmt.Printf("added module %s@%s\n", m.Name, m.LatestRevision())
	}
	return nil
}

func runList(ctx *schema.Context, args []string) error {
	set := getopt.New()
	var dirs []string
	set.ListVarLong(&dirs, "path", 'p', "directory to scan for .yin modules", "DIR")
	if err := set.Getopt(append([]string{"list"}, args...), nil); err != nil {
		return err
	}
	var files []string
	for _, d := range dirs {
		entries, err := os.ReadDir(d)
		if err != nil {
			return err
		}
		for _, e := range entries {
			if strings.HasSuffix(e.Name(), ".yin") {
				files = append(files, filepath.Join(d, e.Name()))
			}
		}
	}
	sort.Strings(files)
	for _, f := range files {
		fmt.Println(f)
	}
	return nil
}

func runSearchPath(ctx *schema.Context, args []string) error {
	set := getopt.New()
	var dirs []string
	set.ListVarLong(&dirs, "path", 'p', "directory to add to the module search path", "DIR")
	if err := set.Getopt(append([]string{"searchpath"}, args...), nil); err != nil {
		return err
	}
	for _, d := range dirs {
		fmt.Println(d)
	}
	return nil
}

func runVerb(ctx *schema.Context, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("verb requires a LEVEL argument")
	}
	level, ok := diag.ParseLevel(args[0])
	if !ok {
		return fmt.Errorf("unknown verbosity level %q", args[0])
	}
	ctx.Diag.SetLevel(level)
	for _, file := range args[1:] {
		if _, err := loadFile(ctx, file); err != nil {
			fmt.Fprintln(os.Stderr, "yin:", err)
		}
	}
	for _, d := range ctx.Diag.All() {
		fmt.Println(d)
	}
	return nil
}

func runPrint(ctx *schema.Context, args []string) error {
	set := getopt.New()
	var format string
	set.StringVarLong(&format, "format", 'f', "output format: info or tree", "FORMAT")
	if err := set.Getopt(append([]string{"print"}, args...), nil); err != nil {
		return err
	}
	switch format {
	case "", "info", "tree":
	case "yang":
		return fmt.Errorf("print -f yang is out of scope (this is a YIN-only module)")
	default:
		return fmt.Errorf("unknown format %q (supported: info, tree)", format)
	}
	if format == "" {
		format = "tree"
	}

	var mods []*schema.Module
	for _, file := range set.Args() {
		m, err := loadFile(ctx, file)
		if err != nil {
			return err
		}
		mods = append(mods, m)
	}

	for _, m := range mods {
		switch format {
		case "info":
			printInfo(os.Stdout, m)
		case "tree":
			printTree(os.Stdout, m)
		}
	}

	// The yang-library instance tree is always available once modules
	// are loaded; dump it on stderr as a debug aid, keeping stdout
	// reserved for the requested print format.
	var buf strings.Builder
	if err := xmltree.Dump(&buf, yanglib.Info(ctx), xmltree.DumpOptions{Formatted: true, Indent: "  "}); err == nil {
		fmt.Fprint(os.Stderr, buf.String())
	}
	return nil
}

func loadFile(ctx *schema.Context, file string) (*schema.Module, error) {
	dir := filepath.Dir(file)
	ctx.AddSearchDir(dir)
	name := strings.TrimSuffix(filepath.Base(file), ".yin")
	if i := strings.IndexByte(name, '@'); i >= 0 {
		return ctx.LoadModuleByName(name[:i], name[i+1:])
	}
	return ctx.LoadModuleByName(name, "")
}
