package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/recipehub/internal/client/api"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Signup(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Whoami(ctx context.Context) error
	List(ctx context.Context, args []string) error
	Mine(ctx context.Context) error
	Show(ctx context.Context, args []string) error
	Add(ctx context.Context) error
	Edit(ctx context.Context, args []string) error
	Delete(ctx context.Context, args []string) error
	Upload(ctx context.Context, args []string) error
}

// runREPL starts a simple read–eval–print loop for the RecipeHub CLI.
//
// It reads a line from reader, parses the first token as the command, and
// dispatches to methods on 'a'. Command errors are printed and the loop
// continues. The loop exits on EOF or when the user types "exit" or "quit".
//
//	Not logged in:
//	  - help, signup, login, list, show, exit
//
//	Logged in additionally:
//	  - whoami, mine, add, edit, delete, upload, logout
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("rh %s> ", statusFn()))
		line, err := readLine(reader)
		if err != nil {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: (l)ist [category=..] [type=..] [search=..], mine, show <id>, add, edit <id>, delete <id>, upload <id> <file>, whoami, logout, exit")
			} else {
				printlnFn("Available commands: signup, login, (l)ist [category=..] [type=..] [search=..], show <id>, exit")
			}

		case "signup", "register":
			report(a.Signup(ctx))

		case "login":
			report(a.Login(ctx))

		case "logout":
			report(a.Logout(ctx))

		case "whoami":
			report(a.Whoami(ctx))

		case "l", "list":
			report(a.List(ctx, args))

		case "mine":
			report(a.Mine(ctx))

		case "show":
			report(a.Show(ctx, args))

		case "add":
			report(a.Add(ctx))

		case "edit":
			report(a.Edit(ctx, args))

		case "delete", "rm":
			report(a.Delete(ctx, args))

		case "upload":
			report(a.Upload(ctx, args))

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}

func report(err error) {
	switch {
	case err == nil:
	case errors.Is(err, api.ErrNotLoggedIn):
		printlnFn("Please log in first.")
	case errors.Is(err, api.ErrUnavailable):
		printlnFn("Server unavailable, try again later.")
	default:
		printlnFn("Error:", err.Error())
	}
}

// usageError reports wrong command arguments.
type usageError string

func (u usageError) Error() string { return "usage: " + string(u) }
