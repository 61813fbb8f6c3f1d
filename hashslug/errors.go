package hashslug

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned by Finder.FindBySlug when a slug does not decode
// under the namespace's configuration.
var ErrNotFound = errors.New("hashslug: slug not found")

// ConfigurationError reports a namespace whose configuration cannot be used.
// It is returned on first use of the namespace and is never cached.
type ConfigurationError struct {
	Namespace string
	Reason    string
	Err       error
}

func (e *ConfigurationError) Error() string {
	msg := fmt.Sprintf("hashslug: namespace %q: %s", e.Namespace, e.Reason)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ConfigurationError) Unwrap() error { return e.Err }

// InvalidInputError reports an id that cannot be encoded.
type InvalidInputError struct {
	ID int64
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("hashslug: cannot encode negative id %d", e.ID)
}
