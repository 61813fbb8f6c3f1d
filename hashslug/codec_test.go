package hashslug

import (
	"math"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCodec(t *testing.T, engine Engine, ns Namespace) *Codec {
	t.Helper()

	c, err := NewRegistry("test-app-key", WithEngine(engine)).Codec(ns)
	require.NoError(t, err)
	return c
}

func TestCodec_RoundTrip(t *testing.T) {
	ids := []int64{0, 1, 2, 9, 10, 61, 62, 63, 999, 1000, 65535, 1 << 20, math.MaxInt32, 1 << 40}
	for i := int64(0); i < 500; i++ {
		ids = append(ids, i*7919)
	}

	for _, engine := range engines {
		t.Run(engine.String(), func(t *testing.T) {
			c := newTestCodec(t, engine, NewNamespace("blog.Post"))

			for _, id := range ids {
				slug, err := c.Encode(id)
				require.NoError(t, err)

				got, ok := c.Decode(slug)
				require.True(t, ok, "decode(%q) for id %d", slug, id)
				require.Equal(t, id, got)
			}
		})
	}
}

func TestCodec_MinimumLength(t *testing.T) {
	for _, engine := range engines {
		t.Run(engine.String(), func(t *testing.T) {
			c := newTestCodec(t, engine, NewNamespace("blog.Post"))

			for id := int64(1); id < 100; id++ {
				slug, err := c.Encode(id)
				require.NoError(t, err)
				assert.Len(t, slug, DefaultMinLength, "id %d", id)
			}

			long := newTestCodec(t, engine, NewNamespace("blog.PostLongSlug", WithMinLength(10)))
			slug, err := long.Encode(1)
			require.NoError(t, err)
			assert.Len(t, slug, 10)

			big, err := c.Encode(math.MaxInt32)
			require.NoError(t, err)
			assert.GreaterOrEqual(t, len(big), DefaultMinLength)
		})
	}
}

func TestCodec_ZeroMinLength(t *testing.T) {
	c := newTestCodec(t, EngineHashids, NewNamespace("blog.Post", WithMinLength(0)))

	slug, err := c.Encode(1)
	require.NoError(t, err)
	assert.NotEmpty(t, slug)

	id, ok := c.Decode(slug)
	require.True(t, ok)
	assert.Equal(t, int64(1), id)
}

func TestCodec_AlphabetClosure(t *testing.T) {
	for _, engine := range engines {
		t.Run(engine.String(), func(t *testing.T) {
			c := newTestCodec(t, engine, NewNamespace("blog.Post"))

			for id := int64(0); id < 1000; id++ {
				slug, err := c.Encode(id * 104729)
				require.NoError(t, err)
				for _, r := range slug {
					require.True(t, strings.ContainsRune(DefaultAlphabet, r), "slug %q has %q", slug, r)
				}
			}
		})
	}
}

func TestCodec_CustomAlphabet(t *testing.T) {
	pattern := regexp.MustCompile(`^[A-Z]{50}$`)

	for _, engine := range engines {
		t.Run(engine.String(), func(t *testing.T) {
			c := newTestCodec(t, engine, NewNamespace("blog.PostCustomAlphabet",
				WithMinLength(50),
				WithAlphabet("ABCDEFGHIJKLMNOPQRSTUVWXYZ"),
			))

			for id := int64(1); id <= 20; id++ {
				slug, err := c.Encode(id)
				require.NoError(t, err)
				assert.Regexp(t, pattern, slug)

				got, ok := c.Decode(slug)
				require.True(t, ok)
				assert.Equal(t, id, got)
			}
		})
	}
}

func TestCodec_NegativeID(t *testing.T) {
	c := newTestCodec(t, EngineHashids, NewNamespace("blog.Post"))

	_, err := c.Encode(-1)

	var inputErr *InvalidInputError
	require.ErrorAs(t, err, &inputErr)
	assert.Equal(t, int64(-1), inputErr.ID)
}

func TestCodec_DecodeInvalid(t *testing.T) {
	for _, engine := range engines {
		t.Run(engine.String(), func(t *testing.T) {
			c := newTestCodec(t, engine, NewNamespace("blog.Post"))

			slug, err := c.Encode(1)
			require.NoError(t, err)

			tests := []struct {
				name string
				in   string
			}{
				{name: "prefixed", in: "XX" + slug},
				{name: "empty", in: ""},
				{name: "too short", in: slug[:3]},
				{name: "outside alphabet", in: "!" + slug[1:]},
				{name: "whitespace", in: slug[:2] + " " + slug[3:]},
				{name: "unicode", in: slug[:4] + "é"},
				{name: "very long", in: strings.Repeat(slug, 20)},
			}

			for _, tt := range tests {
				t.Run(tt.name, func(t *testing.T) {
					id, ok := c.Decode(tt.in)
					assert.False(t, ok)
					assert.Zero(t, id)
				})
			}
		})
	}
}

func TestCodec_PrefixedSlugsDoNotDecode(t *testing.T) {
	for _, engine := range engines {
		t.Run(engine.String(), func(t *testing.T) {
			c := newTestCodec(t, engine, NewNamespace("blog.Post"))

			for id := int64(1); id <= 300; id++ {
				slug, err := c.Encode(id)
				require.NoError(t, err)

				got, ok := c.Decode("XX" + slug)
				require.False(t, ok, "decode(%q) = %d for the slug of id %d", "XX"+slug, got, id)
			}
		})
	}
}

func TestCodec_Deterministic(t *testing.T) {
	for _, engine := range engines {
		t.Run(engine.String(), func(t *testing.T) {
			a := newTestCodec(t, engine, NewNamespace("blog.Post"))
			b := newTestCodec(t, engine, NewNamespace("blog.Post"))

			for id := int64(0); id < 200; id++ {
				first, err := a.Encode(id)
				require.NoError(t, err)
				again, err := a.Encode(id)
				require.NoError(t, err)
				other, err := b.Encode(id)
				require.NoError(t, err)

				assert.Equal(t, first, again)
				assert.Equal(t, first, other)
			}
		})
	}
}

func TestCodec_SequentialIDsAreNotPrefixRelated(t *testing.T) {
	c := newTestCodec(t, EngineHashids, NewNamespace("blog.Post"))

	seen := make(map[string]struct{})
	for id := int64(1); id <= 1000; id++ {
		slug, err := c.Encode(id)
		require.NoError(t, err)

		_, dup := seen[slug]
		require.False(t, dup, "duplicate slug %q", slug)
		seen[slug] = struct{}{}
	}

	one, _ := c.Encode(1)
	two, _ := c.Encode(2)
	assert.NotEqual(t, one[:4], two[:4])
}

func TestCodec_SlugCache(t *testing.T) {
	ns := NewNamespace("blog.Post")

	cached, err := NewRegistry("k", WithSlugCache(8)).Codec(ns)
	require.NoError(t, err)
	require.NotNil(t, cached.slugs)

	plain, err := NewRegistry("k").Codec(ns)
	require.NoError(t, err)
	require.Nil(t, plain.slugs)

	for round := 0; round < 2; round++ {
		for id := int64(0); id < 32; id++ {
			a, err := cached.Encode(id)
			require.NoError(t, err)
			b, err := plain.Encode(id)
			require.NoError(t, err)
			assert.Equal(t, b, a)
		}
	}
	assert.Equal(t, 8, cached.slugs.Len())
}

func TestCodec_Accessors(t *testing.T) {
	c := newTestCodec(t, EngineSqids, NewNamespace("blog.Post", WithMinLength(7)))

	assert.Equal(t, "blog.Post", c.Namespace())
	assert.Equal(t, 7, c.Config().MinLength)
	assert.Equal(t, EngineSqids, c.Config().Engine)
	assert.Equal(t, sha256Hex("test-app-keyblog.Post"), c.Config().Salt)
}
