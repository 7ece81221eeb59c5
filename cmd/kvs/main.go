// Command kvs is the thin command-line front-end: set/get/rm
// subcommands over the store rooted at a directory (current directory
// by default). Everything beyond set/get/rm is a supplementary
// convenience this CLI adds on top of the library, and none of it
// changes that core contract.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"kvs"
)

func main() {
	var dir string
	pflag.StringVarP(&dir, "dir", "d", ".", "store directory")
	pflag.Parse()

	args := pflag.Args()
	if len(args) == 0 {
		usage()
		os.Exit(1)
	}

	cmd, rest := args[0], args[1:]

	store, err := kvs.Open(dir, kvs.Config{})
	if err != nil {
		fmt.Fprintf(os.Stderr, "kvs: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	switch cmd {
	case "set":
		os.Exit(runSet(store, rest))
	case "get":
		os.Exit(runGet(store, rest))
	case "rm":
		os.Exit(runRemove(store, rest))
	case "keys":
		os.Exit(runKeys(store, rest))
	case "rename":
		os.Exit(runRename(store, rest))
	case "find":
		os.Exit(runFind(store, rest))
	case "stats":
		os.Exit(runStats(store, rest))
	case "export":
		os.Exit(runExport(store, rest))
	case "import":
		os.Exit(runImport(store, rest))
	case "shell":
		os.Exit(runShell(store, dir))
	default:
		usage()
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage: kvs [--dir DIR] <command> [args]

commands:
  set KEY VALUE   bind KEY to VALUE
  get KEY         print KEY's value, or "Key not found"
  rm KEY          unbind KEY

  keys                 list live keys
  rename OLD NEW       rename a key
  find PATTERN         list keys matching a regular expression
  stats                print the live key count and a fingerprint
  export FILE          write a compressed snapshot
  import FILE          load a compressed snapshot
  shell                interactive prompt`)
}

func runSet(store *kvs.Store, args []string) int {
	if len(args) != 2 {
		fmt.Fprintln(os.Stderr, "usage: kvs set KEY VALUE")
		return 1
	}
	if err := store.Set(args[0], args[1]); err != nil {
		fmt.Fprintf(os.Stderr, "kvs: %v\n", err)
		return 1
	}
	return 0
}

func runGet(store *kvs.Store, args []string) int {
	if len(args) != 1 {
		fmt.Fprintln(os.Stderr, "usage: kvs get KEY")
		return 1
	}
	value, ok, err := store.Get(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "kvs: %v\n", err)
		return 0
	}
	if !ok {
		fmt.Println("Key not found")
		return 0
	}
	fmt.Println(value)
	return 0
}

func runRemove(store *kvs.Store, args []string) int {
	if len(args) != 1 {
		fmt.Fprintln(os.Stderr, "usage: kvs rm KEY")
		return 1
	}
	err := store.Remove(args[0])
	if err == kvs.ErrKeyNotFound {
		fmt.Println("Key not found")
		return 1
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "kvs: %v\n", err)
		return 1
	}
	return 0
}

func runKeys(store *kvs.Store, _ []string) int {
	for _, k := range store.Keys() {
		fmt.Println(k)
	}
	return 0
}

func runRename(store *kvs.Store, args []string) int {
	if len(args) != 2 {
		fmt.Fprintln(os.Stderr, "usage: kvs rename OLD NEW")
		return 1
	}
	if err := store.Rename(args[0], args[1]); err != nil {
		fmt.Fprintf(os.Stderr, "kvs: %v\n", err)
		return 1
	}
	return 0
}

func runFind(store *kvs.Store, args []string) int {
	if len(args) != 1 {
		fmt.Fprintln(os.Stderr, "usage: kvs find PATTERN")
		return 1
	}
	matches, err := store.Find(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "kvs: %v\n", err)
		return 1
	}
	for _, k := range matches {
		fmt.Println(k)
	}
	return 0
}

func runStats(store *kvs.Store, _ []string) int {
	fp, err := store.Fingerprint(kvs.FingerprintXXH3)
	if err != nil {
		fmt.Fprintf(os.Stderr, "kvs: %v\n", err)
		return 1
	}
	fmt.Printf("keys: %d\n", store.Len())
	fmt.Printf("fingerprint: %s\n", fp)
	return 0
}

func runExport(store *kvs.Store, args []string) int {
	if len(args) != 1 {
		fmt.Fprintln(os.Stderr, "usage: kvs export FILE")
		return 1
	}
	if err := store.Export(args[0]); err != nil {
		fmt.Fprintf(os.Stderr, "kvs: %v\n", err)
		return 1
	}
	return 0
}

func runImport(store *kvs.Store, args []string) int {
	if len(args) != 1 {
		fmt.Fprintln(os.Stderr, "usage: kvs import FILE")
		return 1
	}
	if err := store.Import(args[0]); err != nil {
		fmt.Fprintf(os.Stderr, "kvs: %v\n", err)
		return 1
	}
	return 0
}
