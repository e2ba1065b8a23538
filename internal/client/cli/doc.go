// Package cli provides the interactive Happiest Baby command-line client.
//
// It wires a signed-in session to a simple REPL. Typical flow: prompt for
// credentials, load the device snapshot, start a background device watcher
// and execute user commands.
//
// Key features:
//   - Login / Logout
//   - Account, baby, device and last sleep session display
//   - Journal: add diaper, bottle, breast feeding and weight entries
//   - Journal: list recent entries by type, delete by id
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App, StartDeviceWatcher, and runREPL for details.
package cli
