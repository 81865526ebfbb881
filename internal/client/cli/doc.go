// Package cli provides the interactive RecipeHub command-line client.
//
// It wires configuration, the local session store, the API client and an
// interactive REPL. The session survives restarts; an expired access token
// is refreshed transparently once per command.
//
// Commands:
//   - signup / login / logout / whoami
//   - list [category=..] [type=..] [search=..], mine, show <id>
//   - add, edit <id>, delete <id>, upload <id> <file>
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
