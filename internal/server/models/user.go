// Package models defines server-side records persisted by the repositories.
package models

// User is a registered account. The JSON shape matches the users flat file.
type User struct {
	UserName     string `json:"username"`
	PasswordHash string `json:"password"`
}
