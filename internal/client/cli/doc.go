// Package cli is the gallery command-line client.
//
// Each invocation runs one command:
//
//	signup                 create an account (prompts for credentials)
//	login                  obtain a session token and store it locally
//	logout                 revoke the token on the server and forget it
//	upload [flags] <file>  send an image; -title, -artist and -url are optional
//	list                   print your images with the URL each is served from
//	status                 check that the server answers and whether a token is stored
//
// The token survives between runs in the configured token file. When the
// server rejects it, the file is cleared and the user must log in again.
package cli
