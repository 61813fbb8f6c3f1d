package hashslug

import (
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"math"

	"github.com/speps/go-hashids/v2"
	"github.com/sqids/sqids-go"
)

// encoder is the per-namespace slug algorithm. Implementations are
// immutable after construction and safe for concurrent use.
type encoder interface {
	encode(id int64) (string, error)
	// decode reports false for any input the encoder would not have
	// produced itself.
	decode(slug string) (int64, bool)
}

func newEncoder(cfg Config) (encoder, error) {
	switch cfg.Engine {
	case EngineHashids:
		return newHashidsEncoder(cfg)
	case EngineSqids:
		return newSqidsEncoder(cfg)
	default:
		return nil, fmt.Errorf("unsupported engine %s", cfg.Engine)
	}
}

/***************
 * Hashids
 ***************/

type hashidsEncoder struct {
	h *hashids.HashID
}

func newHashidsEncoder(cfg Config) (*hashidsEncoder, error) {
	data := hashids.NewData()
	data.Salt = cfg.Salt
	data.MinLength = cfg.MinLength
	data.Alphabet = cfg.Alphabet

	h, err := hashids.NewWithData(data)
	if err != nil {
		return nil, err
	}
	return &hashidsEncoder{h: h}, nil
}

func (e *hashidsEncoder) encode(id int64) (string, error) {
	return e.h.EncodeInt64([]int64{id})
}

func (e *hashidsEncoder) decode(slug string) (int64, bool) {
	// DecodeInt64WithError re-encodes the result and fails on any mismatch,
	// which also catches overflowed values.
	ids, err := e.h.DecodeInt64WithError(slug)
	if err != nil || len(ids) != 1 || ids[0] < 0 {
		return 0, false
	}
	return ids[0], true
}

/***************
 * Sqids
 ***************/

// sqidsCheckLength is the number of salt-derived check characters
// appended to every Sqids slug.
const sqidsCheckLength = 2

// sqidsEncoder appends check characters to the Sqids encoding because
// nearly every string over the alphabet decodes to some number.
type sqidsEncoder struct {
	s        *sqids.Sqids
	salt     string
	alphabet []rune
}

func newSqidsEncoder(cfg Config) (*sqidsEncoder, error) {
	if cfg.MinLength > math.MaxUint8 {
		return nil, fmt.Errorf("sqids supports a minimum length of at most %d, got %d",
			math.MaxUint8, cfg.MinLength)
	}

	// Sqids has no salt of its own; the salt selects the alphabet order.
	s, err := sqids.New(sqids.Options{
		Alphabet:  consistentShuffle(cfg.Alphabet, cfg.Salt),
		MinLength: uint8(max(cfg.MinLength-sqidsCheckLength, 0)),
	})
	if err != nil {
		return nil, err
	}
	return &sqidsEncoder{s: s, salt: cfg.Salt, alphabet: []rune(cfg.Alphabet)}, nil
}

func (e *sqidsEncoder) encode(id int64) (string, error) {
	body, err := e.s.Encode([]uint64{uint64(id)})
	if err != nil {
		return "", err
	}
	return body + e.check(body), nil
}

func (e *sqidsEncoder) decode(slug string) (int64, bool) {
	runes := []rune(slug)
	if len(runes) <= sqidsCheckLength {
		return 0, false
	}
	body := string(runes[:len(runes)-sqidsCheckLength])
	if string(runes[len(runes)-sqidsCheckLength:]) != e.check(body) {
		return 0, false
	}

	nums := e.s.Decode(body)
	if len(nums) != 1 || nums[0] > math.MaxInt64 {
		return 0, false
	}

	// Only the canonical encoding of a number is accepted.
	canonical, err := e.s.Encode(nums)
	if err != nil || canonical != body {
		return 0, false
	}
	return int64(nums[0]), true
}

// check returns the check characters for body, picked from the alphabet
// by a SHA-256 digest of the salt and body.
func (e *sqidsEncoder) check(body string) string {
	sum := sha256.Sum256([]byte(e.salt + body))
	out := make([]rune, sqidsCheckLength)
	for i := range out {
		n := binary.BigEndian.Uint16(sum[2*i:])
		out[i] = e.alphabet[int(n)%len(e.alphabet)]
	}
	return string(out)
}

// consistentShuffle permutes alphabet deterministically by salt, using the
// same walk as the Hashids reference implementation.
func consistentShuffle(alphabet, salt string) string {
	runes := []rune(alphabet)
	key := []rune(salt)
	if len(key) == 0 {
		return alphabet
	}

	for i, v, p := len(runes)-1, 0, 0; i > 0; i-- {
		v %= len(key)
		n := int(key[v])
		p += n
		j := (n + v + p) % i
		runes[i], runes[j] = runes[j], runes[i]
		v++
	}
	return string(runes)
}
