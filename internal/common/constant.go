package common

const (
	// AuthorizationHeaderName carries the bearer token on protected requests.
	AuthorizationHeaderName = "Authorization"
	// BearerPrefix precedes the token in the Authorization header.
	BearerPrefix = "Bearer "

	// NoChallenge is the challenge reference of entries that belong to no challenge.
	NoChallenge = "none"
)
