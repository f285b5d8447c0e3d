package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the command surface the REPL dispatches to.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	isAdmin() bool

	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	WhoAmI(ctx context.Context) error
	Settings(ctx context.Context, args []string) error

	ListTasks(ctx context.Context, args []string) error
	AddTask(ctx context.Context) error
	MoveTask(ctx context.Context, args []string) error
	AssignTask(ctx context.Context, args []string) error
	DeleteTask(ctx context.Context, args []string) error
	Stats(ctx context.Context) error

	Team(ctx context.Context) error
	Pending(ctx context.Context) error
	Approve(ctx context.Context, args []string) error
	Reject(ctx context.Context, args []string) error
	AddMember(ctx context.Context) error
	RemoveMember(ctx context.Context, args []string) error
	ClearTasks(ctx context.Context, args []string) error
	ClearInactive(ctx context.Context) error
}

const (
	helpSignedOut = "Available commands: register, login, exit"
	helpMember    = "Available commands: (l)ist [status], add, move <id> <status>, assign <id> <user|->, delete <id>, stats, team, settings, whoami, logout, exit"
	helpAdmin     = "Admin commands: pending, approve <user>, reject <user>, addmember, remove <user>, cleartasks [age], clearinactive"
)

var (
	errLoginRequired = errors.New("please log in first")
	errAdminRequired = errors.New("administrator role required")
)

// runREPL reads commands line by line from reader and dispatches them to a.
// The loop exits on EOF or when the user types "exit" or "quit". Handler
// errors are printed and the loop continues.
//
// The same reader serves the interactive prompts of the handlers, so a
// command and its answers can be piped in together.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("taskhub %s > ", statusFn()))
		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		if cmd == "exit" || cmd == "quit" {
			printlnFn("Bye!")
			return
		}
		if err := dispatch(ctx, a, cmd, args); err != nil {
			printlnFn("Error:", err)
		}
	}
}

func dispatch(ctx context.Context, a execIface, cmd string, args []string) error {
	switch cmd {
	case "help":
		switch {
		case a.isAdmin():
			printlnFn(helpMember)
			printlnFn(helpAdmin)
		case a.isLoggedIn():
			printlnFn(helpMember)
		default:
			printlnFn(helpSignedOut)
		}
		return nil
	case "register":
		return a.Register(ctx)
	case "login":
		return a.Login(ctx)
	}

	if !a.isLoggedIn() {
		if isKnown(cmd) {
			return errLoginRequired
		}
		printlnFn("Unknown command:", cmd)
		return nil
	}

	switch cmd {
	case "logout":
		return a.Logout(ctx)
	case "whoami":
		return a.WhoAmI(ctx)
	case "settings":
		return a.Settings(ctx, args)
	case "l", "list":
		return a.ListTasks(ctx, args)
	case "add":
		return a.AddTask(ctx)
	case "move":
		return a.MoveTask(ctx, args)
	case "assign":
		return a.AssignTask(ctx, args)
	case "delete":
		return a.DeleteTask(ctx, args)
	case "stats":
		return a.Stats(ctx)
	case "team":
		return a.Team(ctx)
	}

	if !adminCommands[cmd] {
		printlnFn("Unknown command:", cmd)
		return nil
	}
	if !a.isAdmin() {
		return errAdminRequired
	}

	switch cmd {
	case "pending":
		return a.Pending(ctx)
	case "approve":
		return a.Approve(ctx, args)
	case "reject":
		return a.Reject(ctx, args)
	case "addmember":
		return a.AddMember(ctx)
	case "remove":
		return a.RemoveMember(ctx, args)
	case "cleartasks":
		return a.ClearTasks(ctx, args)
	default:
		return a.ClearInactive(ctx)
	}
}

var memberCommands = map[string]bool{
	"logout": true, "whoami": true, "settings": true, "l": true, "list": true,
	"add": true, "move": true, "assign": true, "delete": true, "stats": true, "team": true,
}

var adminCommands = map[string]bool{
	"pending": true, "approve": true, "reject": true, "addmember": true,
	"remove": true, "cleartasks": true, "clearinactive": true,
}

func isKnown(cmd string) bool {
	return memberCommands[cmd] || adminCommands[cmd]
}

// Root restores any stored session and runs the interactive loop.
func (a *App) Root(ctx context.Context) {
	printlnFn("Welcome to TaskHub (type 'help' for commands)")
	if err := a.refreshUser(ctx); err != nil {
		a.logger.Warn(ctx, "could not restore session", "error", err)
	}
	runREPL(ctx, a, a.getStatus, a.reader)
}
