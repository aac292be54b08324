package domain

// Actor is a person stored in the catalog. ID and Type are assigned by the
// server; Name and Bio are the only client-writable fields.
type Actor struct {
	ID   string `json:"id"`
	Type Kind   `json:"type"`
	Name string `json:"name"`
	Bio  string `json:"bio"`
}

// ActorDraft carries the client-writable subset of an Actor.
type ActorDraft struct {
	Name string `json:"name"`
	Bio  string `json:"bio"`
}
