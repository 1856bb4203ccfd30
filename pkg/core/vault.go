// Package core implements the versioned snapshot store: saving a source
// tree under a (vault, version) key, restoring it, and maintaining the
// per-version metadata, audit trail and manifest diffs around it.
package core

import (
	"github.com/adnanxsalim/tool-vault/pkg/audit"
	"github.com/adnanxsalim/tool-vault/pkg/crypt"
	"github.com/adnanxsalim/tool-vault/pkg/history"
	"github.com/adnanxsalim/tool-vault/pkg/model"
	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// PassphraseFunc obtains a passphrase from the user. confirm is set when
// the passphrase protects a new encryption pass and should be re-entered.
type PassphraseFunc func(confirm bool) (string, error)

// ConfirmFunc asks the user to approve a destructive operation.
type ConfirmFunc func(prompt string) bool

// Store is a versioned snapshot store rooted at a single directory.
//
// All operations are synchronous and none of them is safe for concurrent
// use against the same vault and version.
type Store struct {
	root string
	ext  afero.Fs // sources and destinations live here
	fs   afero.Fs // the store root, a BasePathFs over ext

	l       *zap.Logger
	audit   audit.Log
	cipher  crypt.Cipher
	history history.Sink

	passphrase PassphraseFunc
	confirm    ConfirmFunc
}

// Option configures a Store.
type Option func(*Store)

// WithFs substitutes the filesystem sources, destinations and the store
// itself live on. Defaults to the OS filesystem.
func WithFs(fs afero.Fs) Option {
	return func(s *Store) { s.ext = fs }
}

// WithLogger sets the logger for store operations.
func WithLogger(l *zap.Logger) Option {
	return func(s *Store) { s.l = l }
}

// WithAuditLog substitutes the audit trail implementation.
func WithAuditLog(a audit.Log) Option {
	return func(s *Store) { s.audit = a }
}

// WithCipher substitutes the snapshot cipher.
func WithCipher(c crypt.Cipher) Option {
	return func(s *Store) { s.cipher = c }
}

// WithHistory sets the best-effort history side channel.
func WithHistory(h history.Sink) Option {
	return func(s *Store) { s.history = h }
}

// WithPassphrase sets the passphrase provider used by encrypting saves and
// decrypting loads.
func WithPassphrase(f PassphraseFunc) Option {
	return func(s *Store) { s.passphrase = f }
}

// WithConfirm sets the confirmation provider gating destructive operations.
func WithConfirm(f ConfirmFunc) Option {
	return func(s *Store) { s.confirm = f }
}

// New creates a Store rooted at root.
func New(root string, opts ...Option) *Store {
	s := &Store{
		root:    root,
		ext:     afero.NewOsFs(),
		l:       zap.NewNop(),
		cipher:  crypt.New(),
		history: history.Nop{},
		confirm: func(string) bool { return false },
	}
	for _, apply := range opts {
		apply(s)
	}
	s.fs = afero.NewBasePathFs(s.ext, root)
	if s.audit == nil {
		s.audit = audit.NewFileLog(s.fs, model.AuditLogPath)
	}
	return s
}

// Root reports the store root path.
func (s *Store) Root() string {
	return s.root
}

// EnsureRoot creates the store root if it does not exist yet. Idempotent.
func (s *Store) EnsureRoot() error {
	return s.ext.MkdirAll(s.root, 0o700)
}

// AccessLog returns the audit trail lines containing term, oldest first.
func (s *Store) AccessLog(term string) ([]string, error) {
	return s.audit.Filter(term)
}
