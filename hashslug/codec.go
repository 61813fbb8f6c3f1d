package hashslug

import (
	"unicode/utf8"

	lru "github.com/hashicorp/golang-lru/v2"
)

// Codec encodes and decodes slugs for a single namespace.
// It is safe for concurrent use.
type Codec struct {
	namespace string
	cfg       Config
	enc       encoder
	charset   map[rune]struct{}
	slugs     *lru.Cache[int64, string] // nil when memoisation is off
}

func newCodec(namespace string, cfg Config, cacheSize int) (*Codec, error) {
	enc, err := newEncoder(cfg)
	if err != nil {
		return nil, &ConfigurationError{Namespace: namespace, Reason: "engine rejected configuration", Err: err}
	}

	charset := make(map[rune]struct{}, len(cfg.Alphabet))
	for _, r := range cfg.Alphabet {
		charset[r] = struct{}{}
	}

	c := &Codec{
		namespace: namespace,
		cfg:       cfg,
		enc:       enc,
		charset:   charset,
	}

	if cacheSize > 0 {
		slugs, err := lru.New[int64, string](cacheSize)
		if err != nil {
			return nil, &ConfigurationError{Namespace: namespace, Reason: "invalid slug cache size", Err: err}
		}
		c.slugs = slugs
	}

	return c, nil
}

// Namespace returns the key of the namespace this codec serves.
func (c *Codec) Namespace() string { return c.namespace }

// Config returns the codec's resolved configuration.
func (c *Codec) Config() Config { return c.cfg }

// Encode returns the slug for id. The result is at least Config().MinLength
// characters long and only uses characters from Config().Alphabet.
func (c *Codec) Encode(id int64) (string, error) {
	if id < 0 {
		return "", &InvalidInputError{ID: id}
	}

	if c.slugs != nil {
		if s, ok := c.slugs.Get(id); ok {
			return s, nil
		}
	}

	s, err := c.enc.encode(id)
	if err != nil {
		return "", err
	}

	if c.slugs != nil {
		c.slugs.Add(id, s)
	}
	return s, nil
}

// Decode returns the id encoded by slug. It reports false when slug is not
// a slug this codec could have produced; that says nothing about whether a
// record with the id exists.
func (c *Codec) Decode(slug string) (int64, bool) {
	if utf8.RuneCountInString(slug) < c.cfg.MinLength || !c.inAlphabet(slug) {
		return 0, false
	}
	return c.enc.decode(slug)
}

func (c *Codec) inAlphabet(slug string) bool {
	if slug == "" {
		return false
	}
	for _, r := range slug {
		if _, ok := c.charset[r]; !ok {
			return false
		}
	}
	return true
}
