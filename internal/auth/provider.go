package auth

import "context"

// ProviderUser is the identity returned by the hosted auth service after a
// successful credential check.
type ProviderUser struct {
	UID   string
	Email string
}

// Provider abstracts the hosted identity service. The session gate layers
// its own admin-membership and second-factor checks on top of it.
type Provider interface {
	// SignInWithPassword exchanges credentials for a provider identity.
	SignInWithPassword(ctx context.Context, email, password string) (*ProviderUser, error)

	// RevokeSessions invalidates every provider session for uid. Used to
	// force sign-out when a credential check succeeds but admin membership
	// does not.
	RevokeSessions(ctx context.Context, uid string) error
}
