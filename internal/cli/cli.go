// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"
	"os"
	"runtime"
)

// Version information (can be overridden at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Command represents the CLI command to execute.
type Command int

const (
	CmdTUI Command = iota
	CmdExport
	CmdBackup
	CmdRestore
	CmdVersion
	CmdHelp
)

// Parse reads os.Args and returns the command plus its remaining arguments.
func Parse() (Command, *ArgParser) {
	args := os.Args[1:]
	if len(args) == 0 {
		return CmdTUI, NewArgParser(nil)
	}

	switch args[0] {
	case "export":
		return CmdExport, NewArgParser(args[1:])
	case "backup":
		return CmdBackup, NewArgParser(args[1:])
	case "restore":
		return CmdRestore, NewArgParser(args[1:])
	case "version", "--version", "-v":
		return CmdVersion, NewArgParser(args[1:])
	case "help", "--help", "-h":
		return CmdHelp, NewArgParser(args[1:])
	case "tui":
		return CmdTUI, NewArgParser(args[1:])
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", args[0])
		return CmdHelp, NewArgParser(nil)
	}
}

// HandleVersion prints version information.
func HandleVersion() {
	fmt.Printf("dayrun %s\n", Version)
	fmt.Printf("  commit:  %s\n", GitCommit)
	fmt.Printf("  built:   %s\n", BuildDate)
	fmt.Printf("  runtime: %s %s/%s\n", runtime.Version(), runtime.GOOS, runtime.GOARCH)
}

// HandleHelp prints command usage.
func HandleHelp() {
	fmt.Print(`dayrun - a private journal for your terminal

Usage:
  dayrun                 Start the journal TUI
  dayrun export          Export a user's journal without opening the TUI
  dayrun backup          Create an encrypted snapshot of the database
  dayrun restore         Restore the database from a snapshot
  dayrun version         Show version information
  dayrun help            Show this help

Export flags:
  --user <name>       Username to export (prompts for the password)
  --format <fmt>      txt, md or pdf (default: txt)
  --output <dir>      Output directory (default: current directory)
  --favorites         Export only favorite entries
  --from <date>       Start of a date range, YYYY-MM-DD (needs --to)
  --to <date>         End of a date range, YYYY-MM-DD (needs --from)

Backup flags:
  --output <dir>      Snapshot directory (default: ~/.dayrun/backups)

Restore flags:
  --snapshot <path>   Snapshot file to restore (required)

Both backup and restore prompt for the snapshot passphrase.
`)
}
