// Package status exports errors produced by the core package.
package status

import (
	"github.com/adnanxsalim/tool-vault/pkg/errors"
)

var (
	// ErrNotFound indicates a missing source, vault or version. The failed
	// operation performed no mutation.
	ErrNotFound = errors.New("not found")

	// ErrDecryption indicates a wrong key or content that was never
	// encrypted. The stored version is left untouched.
	ErrDecryption = errors.New("decryption failed")

	// ErrConfirmationDeclined indicates the user aborted a destructive
	// operation. Treated as a successful no-op.
	ErrConfirmationDeclined = errors.New("confirmation declined")

	// ErrReadOnly indicates an attempt to overwrite a version whose
	// metadata carries the readonly flag.
	ErrReadOnly = errors.New("version is flagged readonly")

	// ErrEmptyPassphrase indicates an empty passphrase was supplied for an
	// encryption or decryption pass.
	ErrEmptyPassphrase = errors.New("empty passphrase")
)
