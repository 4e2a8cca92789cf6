package domain

// Identity is the authenticated caller as consumed by the ticket engine.
// Admin is derived from the configured allow-list of administrator emails;
// the engine itself never inspects the allow-list.
type Identity struct {
	UserID string
	Email  string
	Admin  bool
}
