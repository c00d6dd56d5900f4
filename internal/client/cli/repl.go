package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface is the command surface the REPL dispatches to. Each command
// receives the words typed after its name.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context, args []string) error
	Login(ctx context.Context, args []string) error
	Logout(ctx context.Context, args []string) error
	Categories(ctx context.Context, args []string) error
	List(ctx context.Context, args []string) error
	Add(ctx context.Context, args []string) error
	Edit(ctx context.Context, args []string) error
	Delete(ctx context.Context, args []string) error
	Expiring(ctx context.Context, args []string) error
	Summary(ctx context.Context, args []string) error
	Image(ctx context.Context, args []string) error
}

const (
	helpLoggedOut = "Available commands: register, login, categories, exit"
	helpLoggedIn  = "Available commands: (l)ist [category] [query], add, edit <id>, delete <id>, " +
		"expiring [days], summary [YYYY-MM-DD], image <id> <path>, categories, logout, exit"
)

// runREPL reads commands from in until EOF, "exit" or "quit". Commands
// prompt for their own input on the same reader.
//
// The first word selects the command, the rest are its arguments. Item
// commands require a signed-in user. Errors are printed and the loop goes
// on.
func runREPL(ctx context.Context, a execIface, statusFn func() string, in *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("pantry (%s)> ", statusFn()))
		line, err := in.ReadString('\n')
		if err != nil && line == "" {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		var run func(context.Context, []string) error
		needsLogin := true

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn(helpLoggedIn)
			} else {
				printlnFn(helpLoggedOut)
			}
			continue
		case "exit", "quit":
			printlnFn("Bye!")
			return
		case "register":
			run, needsLogin = a.Register, false
		case "login":
			run, needsLogin = a.Login, false
		case "categories":
			run, needsLogin = a.Categories, false
		case "logout":
			run = a.Logout
		case "l", "list":
			run = a.List
		case "add":
			run = a.Add
		case "edit":
			run = a.Edit
		case "delete", "rm":
			run = a.Delete
		case "expiring":
			run = a.Expiring
		case "summary":
			run = a.Summary
		case "image":
			run = a.Image
		default:
			printlnFn("Unknown command:", cmd)
			continue
		}

		if needsLogin && !a.isLoggedIn() {
			printlnFn("Please login first")
			continue
		}
		if err := run(ctx, args); err != nil {
			printlnFn("Error:", err)
		}
	}
}
