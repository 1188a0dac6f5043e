// Package cli provides the interactive VoltDrive command-line client.
//
// It wires configuration, the local session store, the HTTP API client and
// a REPL. On start the stored session is restored; register and login
// replace it, logout clears it. Every API call carries the current session
// token.
//
// Commands:
//   - register, login, logout, whoami
//   - cars with key=value filters, car-add (admin only)
//   - book, bookings
//   - avatar <file>
//   - health
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
