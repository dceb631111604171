package domain

import "context"

// CheckerPort answers whether an auth code unlocks a domain for transfer.
// Keys failing local validation are rejected without a network call.
type CheckerPort interface {
	// Check returns a cached or shared result when one exists
	Check(ctx context.Context, k Key) (Result, error)
	// Refresh drops any cached or in-flight result and asks again
	Refresh(ctx context.Context, k Key) (Result, error)
}

// RemotePort performs the actual registrar lookup, one call per invocation
type RemotePort interface {
	CheckAuthCode(ctx context.Context, k Key) (Result, error)
}
