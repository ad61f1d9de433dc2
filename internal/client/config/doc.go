// Package config loads settings for the gallery command-line client.
//
// Sources, lowest precedence first: built-in defaults, the JSON file named
// by -c/-config, the GALLERY_SERVER environment variable, command-line flags.
package config
