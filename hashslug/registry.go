package hashslug

import (
	"errors"
	"log/slog"
	"sync"

	"golang.org/x/sync/singleflight"
)

// Registry owns the derived configuration of every namespace it has seen.
// A namespace is resolved on first use and cached for the lifetime of the
// Registry; later uses of the same key get the cached codec even if they
// pass different options.
//
// Registry is safe for concurrent use.
type Registry struct {
	mu     sync.RWMutex
	secret string

	engine    Engine
	cacheSize int
	logger    *slog.Logger

	codecs   sync.Map // namespace key -> *Codec
	flight   singleflight.Group
	warnOnce sync.Once
}

// Option configures a Registry.
type Option func(*Registry)

// WithEngine selects the slug algorithm. Defaults to EngineHashids.
func WithEngine(e Engine) Option {
	return func(r *Registry) {
		r.engine = e
	}
}

// WithSlugCache memoises up to size encoded slugs per namespace.
// Zero disables memoisation.
func WithSlugCache(size int) Option {
	return func(r *Registry) {
		if size >= 0 {
			r.cacheSize = size
		}
	}
}

// WithLogger sets the logger used for namespace derivation events.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Registry) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// NewRegistry returns a Registry that mixes secret into every namespace
// salt. An empty secret is allowed but leaves slugs guessable.
func NewRegistry(secret string, opts ...Option) *Registry {
	r := &Registry{
		secret: secret,
		engine: EngineHashids,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// SetSecret replaces the application secret for namespaces that have not
// been resolved yet. Already resolved namespaces keep their salt.
func (r *Registry) SetSecret(secret string) {
	r.mu.Lock()
	r.secret = secret
	r.mu.Unlock()
}

// Codec returns the codec for ns, deriving it on first use.
func (r *Registry) Codec(ns Namespace) (*Codec, error) {
	if c, ok := r.codecs.Load(ns.key); ok {
		return c.(*Codec), nil
	}

	v, err, _ := r.flight.Do(ns.key, func() (any, error) {
		// A flight for this key may have completed between the Load above
		// and this call.
		if c, ok := r.codecs.Load(ns.key); ok {
			return c, nil
		}

		c, err := r.build(ns)
		if err != nil {
			return nil, err
		}
		r.codecs.Store(ns.key, c)
		return c, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Codec), nil
}

func (r *Registry) build(ns Namespace) (*Codec, error) {
	r.mu.RLock()
	secret := r.secret
	r.mu.RUnlock()

	if secret == "" {
		r.warnOnce.Do(func() {
			r.logger.Warn("hashslug: application secret is empty, slugs can be decoded by anyone who knows the namespace key")
		})
	}

	cfg, err := deriveConfig(secret, ns, r.engine)
	if err != nil {
		return nil, err
	}

	c, err := newCodec(ns.key, cfg, r.cacheSize)
	if err != nil {
		return nil, err
	}

	r.logger.Debug("hashslug: namespace resolved",
		"namespace", ns.key,
		"engine", cfg.Engine.String(),
		"min_length", cfg.MinLength,
		"alphabet_size", len(c.charset),
	)
	return c, nil
}

// Prepare resolves every namespace up front so configuration errors
// surface at startup instead of on the first request.
func (r *Registry) Prepare(namespaces ...Namespace) error {
	var errs []error
	for _, ns := range namespaces {
		if _, err := r.Codec(ns); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Config returns the resolved configuration of ns.
func (r *Registry) Config(ns Namespace) (Config, error) {
	c, err := r.Codec(ns)
	if err != nil {
		return Config{}, err
	}
	return c.Config(), nil
}

// Encode returns the slug for id in ns.
func (r *Registry) Encode(ns Namespace, id int64) (string, error) {
	c, err := r.Codec(ns)
	if err != nil {
		return "", err
	}
	return c.Encode(id)
}

// Decode returns the id encoded by slug in ns. ok is false when slug does
// not decode; err is only set when ns is misconfigured.
func (r *Registry) Decode(ns Namespace, slug string) (id int64, ok bool, err error) {
	c, err := r.Codec(ns)
	if err != nil {
		return 0, false, err
	}
	id, ok = c.Decode(slug)
	return id, ok, nil
}
