package hashslug

const (
	// DefaultMinLength is the minimum slug length used when a namespace does
	// not set one.
	DefaultMinLength = 5

	// DefaultAlphabet is the character set slugs are drawn from by default.
	DefaultAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ1234567890"

	// MinAlphabetLength is the smallest number of distinct characters an
	// alphabet may contain.
	MinAlphabetLength = 16
)

// Namespace declares how slugs for one group of records are produced.
// The zero value is not usable; build one with NewNamespace.
type Namespace struct {
	key        string
	customSalt string
	alphabet   string
	minLength  int
}

// NamespaceOption customizes a Namespace.
type NamespaceOption func(*Namespace)

// WithCustomSalt replaces the namespace key as the per-namespace salt
// component. Namespaces sharing a custom salt (and alphabet and length)
// produce identical slugs for identical ids.
func WithCustomSalt(salt string) NamespaceOption {
	return func(n *Namespace) {
		n.customSalt = salt
	}
}

// WithMinLength sets the minimum slug length. Negative values are ignored.
func WithMinLength(length int) NamespaceOption {
	return func(n *Namespace) {
		if length >= 0 {
			n.minLength = length
		}
	}
}

// WithAlphabet sets the characters slugs are drawn from. An empty alphabet
// keeps DefaultAlphabet.
func WithAlphabet(alphabet string) NamespaceOption {
	return func(n *Namespace) {
		if alphabet != "" {
			n.alphabet = alphabet
		}
	}
}

// NewNamespace returns a Namespace identified by key, typically the record
// type's fully qualified name.
func NewNamespace(key string, opts ...NamespaceOption) Namespace {
	n := Namespace{
		key:       key,
		alphabet:  DefaultAlphabet,
		minLength: DefaultMinLength,
	}
	for _, opt := range opts {
		opt(&n)
	}
	return n
}

// Key returns the namespace identity used for caching.
func (n Namespace) Key() string { return n.key }

// saltComponent is the namespace's contribution to the derived salt.
func (n Namespace) saltComponent() string {
	if n.customSalt != "" {
		return n.customSalt
	}
	return n.key
}
