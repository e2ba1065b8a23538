package cli

import (
	"bufio"
	"context"
	"errors"
	"io"
	"strings"
)

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Account(ctx context.Context) error
	Devices(ctx context.Context) error
	Stats(ctx context.Context) error
	AddDiaper(ctx context.Context) error
	AddBottle(ctx context.Context) error
	AddBreast(ctx context.Context) error
	AddWeight(ctx context.Context) error
	List(ctx context.Context) error
	Delete(ctx context.Context) error
}

// runREPL reads a line, parses the first token as the command and
// dispatches to a. The loop exits on EOF or when the user types "exit" or
// "quit".
//
//	Not logged in:
//	  help, login, exit | quit
//
//	Logged in:
//	  help, account, devices, stats, diaper, bottle, breast, weight,
//	  (l)ist, delete, logout, exit | quit
//
// Command errors are printed and the loop continues.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader, out io.Writer) {
	for {
		printf(out, "snoo (%s)> ", statusFn())
		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}

		var cmdErr error
		switch cmd := parts[0]; cmd {
		case "help":
			if a.isLoggedIn() {
				printf(out, "Available commands: account, devices, stats, diaper, bottle, breast, weight, (l)ist, delete, logout, exit\n")
			} else {
				printf(out, "Available commands: login, exit\n")
			}
		case "login":
			cmdErr = a.Login(ctx)
		case "logout":
			cmdErr = a.Logout(ctx)
		case "account":
			cmdErr = a.Account(ctx)
		case "devices":
			cmdErr = a.Devices(ctx)
		case "stats":
			cmdErr = a.Stats(ctx)
		case "diaper":
			cmdErr = a.AddDiaper(ctx)
		case "bottle":
			cmdErr = a.AddBottle(ctx)
		case "breast":
			cmdErr = a.AddBreast(ctx)
		case "weight":
			cmdErr = a.AddWeight(ctx)
		case "l", "list":
			cmdErr = a.List(ctx)
		case "delete":
			cmdErr = a.Delete(ctx)
		case "exit", "quit":
			printf(out, "Bye!\n")
			return
		default:
			printf(out, "Unknown command: %s\n", cmd)
		}

		if cmdErr != nil {
			printf(out, "Error: %v\n", cmdErr)
		}
	}
}
