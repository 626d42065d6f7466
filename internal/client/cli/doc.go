// Package cli provides the interactive beautybook command-line client.
//
// It wires configuration, the session store, the API client and the
// workflows into a REPL. Views re-read the session store on every command,
// so a login or logout is visible at the next prompt.
//
// Commands:
//   - salons, salon <id>, map
//   - masters [salon_id], master <id>, slots <master_id> [YYYY-MM-DD]
//   - services
//   - book <master_id>
//   - login, register, logout, whoami
//   - profile, edit
//   - stats (admin only)
//   - help, exit | quit
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
