package entity

// Login providers supported by the authentication layer. Each provider a
// user links produces its own Authentication record.
const (
	ProviderEmail  = "email"
	ProviderGoogle = "google"
)
