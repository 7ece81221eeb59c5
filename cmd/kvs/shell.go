package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/peterh/liner"

	"kvs"
)

// runShell is an interactive REPL over set/get/rm and the supplementary
// commands, for manual exploration of a store. Uses
// github.com/peterh/liner for line editing and history across repeated
// commands in one process.
func runShell(store *kvs.Store, dir string) int {
	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)

	fmt.Printf("kvs shell — store at %s. Type \"help\" for commands, \"exit\" to quit.\n", dir)

	for {
		input, err := line.Prompt("kvs> ")
		if err == liner.ErrPromptAborted || err == io.EOF {
			fmt.Println()
			return 0
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "kvs: %v\n", err)
			return 1
		}

		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}
		line.AppendHistory(input)

		fields := strings.Fields(input)
		cmd, rest := fields[0], fields[1:]

		switch cmd {
		case "exit", "quit":
			return 0
		case "help":
			usage()
		case "set":
			runSet(store, rest)
		case "get":
			runGet(store, rest)
		case "rm":
			runRemove(store, rest)
		case "keys":
			runKeys(store, rest)
		case "rename":
			runRename(store, rest)
		case "find":
			runFind(store, rest)
		case "stats":
			runStats(store, rest)
		case "export":
			runExport(store, rest)
		case "import":
			runImport(store, rest)
		default:
			fmt.Fprintf(os.Stderr, "kvs: unknown command %q\n", cmd)
		}
	}
}
