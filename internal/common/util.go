package common

import "regexp"

var usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9]+$`)

// IsValidUsername reports whether name consists only of ASCII letters and digits.
func IsValidUsername(name string) bool {
	return usernamePattern.MatchString(name)
}

// WipeByteArray zeroes b in place. Used for passwords read from the terminal.
func WipeByteArray(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
