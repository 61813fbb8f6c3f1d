package hashslug

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Engine selects the algorithm used to turn numbers into slugs.
type Engine uint8

const (
	// EngineHashids produces Hashids-compatible slugs.
	EngineHashids Engine = iota
	// EngineSqids produces Sqids slugs over a salt-shuffled alphabet.
	EngineSqids
)

// String returns the engine's configuration name.
func (e Engine) String() string {
	switch e {
	case EngineHashids:
		return "hashids"
	case EngineSqids:
		return "sqids"
	default:
		return fmt.Sprintf("Engine(%d)", e)
	}
}

// ParseEngine maps a configuration name to an Engine. The empty string
// selects EngineHashids.
func ParseEngine(name string) (Engine, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "hashids":
		return EngineHashids, nil
	case "sqids":
		return EngineSqids, nil
	default:
		return 0, fmt.Errorf("hashslug: unknown engine %q (must be one of: hashids, sqids)", name)
	}
}

// Config is the fully resolved configuration of a namespace.
type Config struct {
	// Salt is the hex SHA-256 of the application secret followed by the
	// namespace salt component.
	Salt      string
	Alphabet  string
	MinLength int
	Engine    Engine
}

func deriveConfig(secret string, ns Namespace, engine Engine) (Config, error) {
	if ns.key == "" {
		return Config{}, &ConfigurationError{Reason: "namespace key cannot be empty"}
	}

	alphabet, err := normalizeAlphabet(ns.alphabet)
	if err != nil {
		return Config{}, &ConfigurationError{Namespace: ns.key, Reason: "invalid alphabet", Err: err}
	}

	// A fast hash here would let the application secret be recovered from
	// a handful of slugs.
	sum := sha256.Sum256([]byte(secret + ns.saltComponent()))

	return Config{
		Salt:      hex.EncodeToString(sum[:]),
		Alphabet:  alphabet,
		MinLength: ns.minLength,
		Engine:    engine,
	}, nil
}

// normalizeAlphabet drops repeated characters, keeping first occurrences in
// order, and rejects alphabets that are too small or contain whitespace.
func normalizeAlphabet(alphabet string) (string, error) {
	if !utf8.ValidString(alphabet) {
		return "", errors.New("alphabet is not valid UTF-8")
	}

	seen := make(map[rune]struct{}, len(alphabet))
	var b strings.Builder
	for _, r := range alphabet {
		if unicode.IsSpace(r) {
			return "", errors.New("alphabet cannot contain whitespace")
		}
		if _, ok := seen[r]; ok {
			continue
		}
		seen[r] = struct{}{}
		b.WriteRune(r)
	}

	if len(seen) < MinAlphabetLength {
		return "", fmt.Errorf("alphabet must contain at least %d distinct characters, got %d",
			MinAlphabetLength, len(seen))
	}
	return b.String(), nil
}
