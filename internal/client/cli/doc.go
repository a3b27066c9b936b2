// Package cli provides the interactive AMail command-line client.
//
// It wires configuration, the local session file, API services and an
// interactive REPL. Typical flow: resume the saved session (or log in),
// start a background connectivity watcher, and execute user commands.
//
// Key features:
//   - Register / Login / Logout, with the session kept across runs
//   - Send mail and list sent and received mail ids
//   - Reveal the mask and classifier of a mail
//   - Manage contacts and tip them from the account balance
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App, StartOnlineStatusWatcher, and runREPL for details.
package cli
