// Package auth implements the OAuth bridge: exchanging a provider-issued
// code or token for a verified identity and committing it to the session.
package auth

import "context"

// Profile is the identity a provider vouches for after a successful
// exchange and verification.
type Profile struct {
	Subject string
	Name    string
	Email   string
	Picture string
}

// Provider is one external identity service. The connect handler drives
// the steps in order; any failure aborts the attempt with no retry.
type Provider interface {
	Name() string

	// Exchange swaps the provider-supplied authorization code or
	// short-lived token for an access token.
	Exchange(ctx context.Context, credential string) (string, error)

	// Verify checks the exchanged token with the provider and returns the
	// provider-assigned subject id. No profile data is trusted before this
	// step passes.
	Verify(ctx context.Context, accessToken string) (string, error)

	// FetchProfile retrieves the verified user's name, email, and picture.
	FetchProfile(ctx context.Context, accessToken string) (Profile, error)
}
