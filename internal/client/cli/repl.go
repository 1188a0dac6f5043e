package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dmitrijs2005/voltdrive/internal/client/client"
	"github.com/dmitrijs2005/voltdrive/internal/client/session"
)

// execIface is the command surface the REPL dispatches to. App satisfies it;
// tests provide a recording stub.
type execIface interface {
	isLoggedIn() bool
	lastError() string
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	WhoAmI(ctx context.Context) error
	Cars(ctx context.Context, args []string) error
	AddCar(ctx context.Context) error
	Book(ctx context.Context, args []string) error
	Bookings(ctx context.Context) error
	Avatar(ctx context.Context, args []string) error
	Health(ctx context.Context) error
}

const (
	helpLoggedOut = "Available commands: register, login, health, exit"
	helpLoggedIn  = "Available commands: whoami, cars [type=..] [fuel=..] [min=..] [max=..] [sort=price|rating|newest], " +
		"car-add, book [car-id], bookings, avatar <file>, health, logout, exit"
)

// protected lists the commands that need a session.
var protected = map[string]bool{
	"whoami": true, "cars": true, "car-add": true, "book": true, "bookings": true, "avatar": true, "logout": true,
}

// runREPL reads commands line by line from reader until EOF, "exit" or
// "quit", or ctx cancellation. Command failures are reported and the loop
// continues.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader, out io.Writer) {
	for {
		if ctx.Err() != nil {
			return
		}

		prompt := "voltdrive"
		if s := statusFn(); s != "" {
			prompt += " " + s
		}
		fmt.Fprint(out, prompt+"> ")

		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			fmt.Fprintln(out)
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		if protected[cmd] && !a.isLoggedIn() {
			fmt.Fprintln(out, "Please login first")
			continue
		}

		var cmdErr error
		switch cmd {
		case "help":
			if a.isLoggedIn() {
				fmt.Fprintln(out, helpLoggedIn)
			} else {
				fmt.Fprintln(out, helpLoggedOut)
			}
		case "register":
			cmdErr = a.Register(ctx)
		case "login":
			cmdErr = a.Login(ctx)
		case "logout":
			cmdErr = a.Logout(ctx)
		case "whoami":
			cmdErr = a.WhoAmI(ctx)
		case "cars":
			cmdErr = a.Cars(ctx, args)
		case "car-add":
			cmdErr = a.AddCar(ctx)
		case "book":
			cmdErr = a.Book(ctx, args)
		case "bookings":
			cmdErr = a.Bookings(ctx)
		case "avatar":
			cmdErr = a.Avatar(ctx, args)
		case "health":
			cmdErr = a.Health(ctx)
		case "exit", "quit":
			fmt.Fprintln(out, "Bye!")
			return
		default:
			fmt.Fprintln(out, "Unknown command:", cmd)
		}

		if cmdErr != nil {
			msg := session.FailureMessage(cmdErr, "command failed")
			if cmd == "register" || cmd == "login" {
				if last := a.lastError(); last != "" {
					msg = last
				}
			}
			fmt.Fprintln(out, "Error:", msg)

			if protected[cmd] && errors.Is(cmdErr, client.ErrUnauthorized) {
				fmt.Fprintln(out, "Your session is no longer valid, please login again")
				if err := a.Logout(ctx); err != nil {
					fmt.Fprintln(out, "Error: could not clear session:", session.FailureMessage(err, "logout failed"))
				}
			}
		}
	}
}
