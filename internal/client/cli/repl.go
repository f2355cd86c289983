package cli

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the command surface the REPL dispatches to. The real App
// type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Me(ctx context.Context) error
	Avatar(ctx context.Context, args []string) error

	Dashboard(ctx context.Context) error
	Stats(ctx context.Context) error
	Portfolio(ctx context.Context, args []string) error

	ListEntries(ctx context.Context, args []string) error
	ShowEntry(ctx context.Context, args []string) error
	AddEntry(ctx context.Context) error
	EditEntry(ctx context.Context, args []string) error
	DeleteEntry(ctx context.Context, args []string) error
	Export(ctx context.Context, args []string) error

	ListChallenges(ctx context.Context) error
	ShowChallenge(ctx context.Context, args []string) error
	AddChallenge(ctx context.Context) error
	EditChallenge(ctx context.Context, args []string) error
	DeleteChallenge(ctx context.Context, args []string) error

	Takeaway(ctx context.Context, args []string) error
	Suggest(ctx context.Context) error
	DeepDive(ctx context.Context, args []string) error
}

const (
	helpLoggedOut = "Available commands: register, login, portfolio <userId> [entryId], exit"
	helpLoggedIn  = "Available commands: dashboard, stats, me, avatar <file>, portfolio [userId [entryId]],\n" +
		"  entries [-c category] [search], show <id>, add, edit <id>, delete <id>, export <csv|xlsx> [file],\n" +
		"  challenges, challenge <id>, newchallenge, editchallenge <id>, delchallenge <id>,\n" +
		"  takeaway [entryId], suggest, deepdive <topic>, logout, exit"
)

// runREPL reads commands line by line and dispatches them to a. It returns
// on EOF or on "exit"/"quit". Commands that need a login are refused while
// logged out. Handler errors are printed and the loop continues.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("devlog %s> ", statusFn()))
		if !scanner.Scan() {
			return
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		if cmd == "exit" || cmd == "quit" {
			printlnFn("Bye!")
			return
		}

		if err := dispatch(ctx, a, cmd, args); err != nil {
			printlnFn("Error:", err.Error())
		}
	}
}

func dispatch(ctx context.Context, a execIface, cmd string, args []string) error {
	switch cmd {
	case "help":
		if a.isLoggedIn() {
			printlnFn(helpLoggedIn)
		} else {
			printlnFn(helpLoggedOut)
		}
		return nil
	case "register":
		return a.Register(ctx)
	case "login":
		return a.Login(ctx)
	case "portfolio":
		return a.Portfolio(ctx, args)
	}

	if !a.isLoggedIn() {
		switch cmd {
		case "dashboard", "stats", "me", "avatar", "logout",
			"entries", "l", "show", "add", "edit", "delete", "export",
			"challenges", "challenge", "newchallenge", "editchallenge", "delchallenge",
			"takeaway", "suggest", "deepdive":
			printlnFn("Please login first")
			return nil
		}
	}

	switch cmd {
	case "logout":
		return a.Logout(ctx)
	case "me":
		return a.Me(ctx)
	case "avatar":
		return a.Avatar(ctx, args)
	case "dashboard":
		return a.Dashboard(ctx)
	case "stats":
		return a.Stats(ctx)
	case "entries", "l":
		return a.ListEntries(ctx, args)
	case "show":
		return a.ShowEntry(ctx, args)
	case "add":
		return a.AddEntry(ctx)
	case "edit":
		return a.EditEntry(ctx, args)
	case "delete":
		return a.DeleteEntry(ctx, args)
	case "export":
		return a.Export(ctx, args)
	case "challenges":
		return a.ListChallenges(ctx)
	case "challenge":
		return a.ShowChallenge(ctx, args)
	case "newchallenge":
		return a.AddChallenge(ctx)
	case "editchallenge":
		return a.EditChallenge(ctx, args)
	case "delchallenge":
		return a.DeleteChallenge(ctx, args)
	case "takeaway":
		return a.Takeaway(ctx, args)
	case "suggest":
		return a.Suggest(ctx)
	case "deepdive":
		return a.DeepDive(ctx, args)
	}

	printlnFn("Unknown command:", cmd)
	return nil
}

func (a *App) getStatus() string {
	s := ""
	if a.session.LoggedIn() {
		s = a.session.User.Name + " "
	}
	if m := a.getMode(); m != "" {
		s = s + string(m)
	}
	if s != "" {
		s = fmt.Sprintf("(%s)", strings.TrimSpace(s))
	}
	return s
}

// Root restores a saved session (or asks for a login), starts the
// connectivity watcher and runs the REPL until the user exits.
func (a *App) Root(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	log.Println("Welcome to DevLog CLI (type 'help' for commands)")

	a.checkOnline(ctx)
	a.restoreSession(ctx)
	if !a.isLoggedIn() && a.getMode() == ModeOnline {
		if err := a.Login(ctx); err != nil {
			printlnFn("Error:", err.Error())
		}
	}

	go a.StartOnlineStatusWatcher(ctx, a.config.OnlineCheckInterval)

	runREPL(ctx, a, a.getStatus, bufio.NewScanner(os.Stdin))
}
