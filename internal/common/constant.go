package common

const (
	// AuthorizationHeaderName carries the bearer token on protected requests.
	AuthorizationHeaderName = "Authorization"

	// BearerScheme is the only accepted authorization scheme.
	BearerScheme = "Bearer"

	// UploadsPathPrefix is the public URL prefix under which stored images are served.
	UploadsPathPrefix = "/uploads/"
)
