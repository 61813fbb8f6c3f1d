package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/balping/hashslug/hashslug"
)

// NamespaceConfig overrides the slug settings of one namespace.
// Unset fields keep the codec defaults.
type NamespaceConfig struct {
	MinLength  *int   `yaml:"min_length"`
	CustomSalt string `yaml:"custom_salt"`
	Alphabet   string `yaml:"alphabet"`
}

// Validate checks values the codec would otherwise silently ignore.
func (n NamespaceConfig) Validate() error {
	if n.MinLength != nil && *n.MinLength < 0 {
		return fmt.Errorf("min_length cannot be negative, got %d", *n.MinLength)
	}
	return nil
}

// Options converts the overrides to codec options.
func (n NamespaceConfig) Options() []hashslug.NamespaceOption {
	var opts []hashslug.NamespaceOption
	if n.MinLength != nil {
		opts = append(opts, hashslug.WithMinLength(*n.MinLength))
	}
	if n.CustomSalt != "" {
		opts = append(opts, hashslug.WithCustomSalt(n.CustomSalt))
	}
	if n.Alphabet != "" {
		opts = append(opts, hashslug.WithAlphabet(n.Alphabet))
	}
	return opts
}

type namespacesFile struct {
	Namespaces map[string]NamespaceConfig `yaml:"namespaces"`
}

// LoadNamespaces reads namespace overrides from a YAML file of the form:
//
//	namespaces:
//	  posts:
//	    min_length: 8
//	  comments:
//	    custom_salt: content
//	    alphabet: ABCDEFGHIJKLMNOPQRSTUVWXYZ
func LoadNamespaces(path string) (map[string]NamespaceConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var f namespacesFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if f.Namespaces == nil {
		return nil, errors.New("no namespaces defined")
	}
	return f.Namespaces, nil
}
