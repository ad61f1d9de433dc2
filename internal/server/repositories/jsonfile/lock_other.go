//go:build !unix

package jsonfile

// lockFile is a no-op where flock is unavailable; the in-process mutex still
// serialises writers of a single server.
func lockFile(string) (func(), error) {
	return func() {}, nil
}
