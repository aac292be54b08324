package domain

// Kind is the type discriminator stored on every catalog node.
type Kind string

const (
	KindActor Kind = "actor"
	KindMovie Kind = "movie"
)

// Plural returns the collection segment used in routes, e.g. "actors".
func (k Kind) Plural() string {
	return string(k) + "s"
}

func (k Kind) String() string {
	return string(k)
}
