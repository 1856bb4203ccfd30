// Package crypt implements the symmetric per-file cipher used to seal
// snapshots. Every file is encrypted independently with a fresh random
// nonce, so there is no chaining or shared state across files.
package crypt

import (
	"crypto/rand"
	"crypto/sha256"
	"io"

	"github.com/adnanxsalim/tool-vault/pkg/core/status"
	"golang.org/x/crypto/nacl/secretbox"
)

// KeySize is the length of a derived symmetric key.
const KeySize = 32

const nonceSize = 24

// Key is a fixed-length symmetric key.
type Key [KeySize]byte

// DeriveKey derives a symmetric key from a passphrase via a one-way hash.
// Empty passphrases are rejected rather than silently deriving a weak key.
func DeriveKey(passphrase string) (Key, error) {
	if passphrase == "" {
		return Key{}, status.ErrEmptyPassphrase
	}
	return Key(sha256.Sum256([]byte(passphrase))), nil
}

// Cipher seals and opens individual byte payloads.
type Cipher interface {
	Encrypt(plain []byte, key Key) ([]byte, error)
	Decrypt(sealed []byte, key Key) ([]byte, error)
}

// New returns the secretbox-backed Cipher.
func New() Cipher {
	return secretBox{}
}

type secretBox struct{}

// Encrypt seals plain under key, prepending the random nonce to the box.
func (secretBox) Encrypt(plain []byte, key Key) ([]byte, error) {
	var nonce [nonceSize]byte
	if _, err := io.ReadFull(rand.Reader, nonce[:]); err != nil {
		return nil, err
	}
	k := [KeySize]byte(key)
	return secretbox.Seal(nonce[:], plain, &nonce, &k), nil
}

// Decrypt opens a sealed payload. Authentication failure means a wrong key
// or content that was never encrypted; both surface as ErrDecryption.
func (secretBox) Decrypt(sealed []byte, key Key) ([]byte, error) {
	if len(sealed) < nonceSize {
		return nil, status.ErrDecryption
	}
	var nonce [nonceSize]byte
	copy(nonce[:], sealed[:nonceSize])
	k := [KeySize]byte(key)
	plain, ok := secretbox.Open(nil, sealed[nonceSize:], &nonce, &k)
	if !ok {
		return nil, status.ErrDecryption
	}
	return plain, nil
}
