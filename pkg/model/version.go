package model

import (
	"fmt"
	"time"
	"unicode"
)

// Compression enumerates the archive codecs a snapshot may be packed with.
type Compression string

const (
	// CompressionNone leaves the snapshot as a plain file tree
	CompressionNone Compression = ""

	// CompressionZip packs the snapshot into a single zip archive
	CompressionZip Compression = "zip"

	// CompressionTarGz packs the snapshot into a gzip-compressed tar archive
	CompressionTarGz Compression = "tar.gz"
)

// ParseCompression maps a user-supplied compression kind to its enum value.
func ParseCompression(s string) (Compression, error) {
	switch Compression(s) {
	case CompressionNone, CompressionZip, CompressionTarGz:
		return Compression(s), nil
	}
	return CompressionNone, fmt.Errorf("unsupported compression kind %q (want zip or tar.gz)", s)
}

// VersionDescriptor is the metadata sidecar persisted next to every saved
// snapshot. It is created fresh on each save and never mutated in place.
type VersionDescriptor struct {
	Name        string      `json:"name" yaml:"name"`
	Version     string      `json:"version" yaml:"version"`
	Source      string      `json:"source" yaml:"source"`
	Timestamp   time.Time   `json:"timestamp" yaml:"timestamp"`
	Tags        []string    `json:"tags,omitempty" yaml:"tags,omitempty"`
	ReadOnly    bool        `json:"readonly" yaml:"readonly"`
	Compression Compression `json:"compression,omitempty" yaml:"compression,omitempty"`
	Encrypted   bool        `json:"encrypted" yaml:"encrypted"`
}

// VersionRef identifies one saved version within the store.
type VersionRef struct {
	Vault   string
	Version string
}

// Subject is the audit log identity of the version, e.g. "demo@v1".
func (r VersionRef) Subject() string {
	return r.Vault + "@" + r.Version
}

// ManifestEntry is one node of a snapshot's file manifest. It carries
// membership only, never content.
type ManifestEntry struct {
	Path  string
	IsDir bool
}

// Validate rejects vault and version labels that would not map cleanly onto
// a directory layout. Allowed: unicode letters, digits, hyphen, dot and
// underscore, with a non-reserved leading character.
func (r VersionRef) Validate() error {
	if err := checkLabel("vault name", r.Vault); err != nil {
		return err
	}
	return checkLabel("version label", r.Version)
}

func checkLabel(what, label string) error {
	if label == "" {
		return fmt.Errorf("empty field: %s is empty", what)
	}
	if label[0] == '.' {
		return fmt.Errorf("invalid %s %q: leading dot is reserved for control entries", what, label)
	}
	for _, c := range label {
		if !unicode.IsLetter(c) && !unicode.IsDigit(c) && c != '-' && c != '.' && c != '_' {
			return fmt.Errorf("invalid %s %q: unsupported character %q", what, label, c)
		}
	}
	return nil
}
