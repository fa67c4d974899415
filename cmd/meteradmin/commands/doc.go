// Package commands defines the meteradmin CLI and wires dependencies for subcommands.
//
// Commands
//
//   - login          Sign in as an admin and save the session
//   - logout         Forget the saved session
//   - passwd         Change the admin password
//   - officers       List, add, edit, delete and export officers
//   - users          List, add, edit, delete and export users
//   - meters         Show or edit a user's water meters
//   - admin init     Create the first admin directly in a server data dir
//
// # Implementation
//
// The root command builds a logger and the app context (API client plus
// session store) before any subcommand runs. Commands that talk to the
// server load the saved session and fail with a login hint when it is
// missing or expired. The session lives in <home>/session.json with mode
// 0600.
package commands
