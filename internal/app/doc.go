// Package app wires application dependencies for the server and the CLI.
//
// Config is the server's YAML configuration; NewWire builds the document
// store for the chosen backend, the credential store, the token secret and
// the services behind the HTTP API. ClientConfig and App do the same for the
// CLI: an API client plus the saved admin session.
package app
