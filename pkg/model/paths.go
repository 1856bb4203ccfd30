package model

import (
	"path"
	"strings"
)

// Store layout, all paths relative to the store root:
//
//	{vault}/{version}/...        snapshot content (plain tree or one archive)
//	{vault}/{version}/meta.yaml  metadata sidecar, always plain
//	access.log                   append-only audit trail
//	.staging/...                 scratch area for in-flight saves
const (
	// DescriptorFile is the sidecar filename inside a version directory.
	DescriptorFile = "meta.yaml"

	// AuditLogPath is where audit records accumulate under the store root.
	AuditLogPath = "access.log"

	// StagingPrefix is the control directory in-flight saves are built under.
	StagingPrefix = ".staging"

	// ControlPrefix marks store entries that are not vaults.
	ControlPrefix = "."
)

// VersionPath yields the store-relative directory of one version.
func VersionPath(vault, version string) string {
	return path.Join(vault, version)
}

// VersionDescriptorPath yields the store-relative path of a version's sidecar.
func VersionDescriptorPath(vault, version string) string {
	return path.Join(vault, version, DescriptorFile)
}

// ArchivePath yields the store-relative path of the packed snapshot for a
// compressed version.
func ArchivePath(vault, version string, kind Compression) string {
	return path.Join(vault, version, vault+"."+string(kind))
}

// StagingPath yields the scratch location a version is built under before
// being renamed into place.
func StagingPath(vault, version string) string {
	return path.Join(StagingPrefix, vault, version)
}

// IsDescriptorPath reports whether a store-relative path is a metadata
// sidecar, and if so which version it belongs to.
func IsDescriptorPath(rel string) (VersionRef, bool) {
	parts := strings.Split(rel, "/")
	if len(parts) != 3 || parts[2] != DescriptorFile {
		return VersionRef{}, false
	}
	if strings.HasPrefix(parts[0], ControlPrefix) {
		return VersionRef{}, false
	}
	return VersionRef{Vault: parts[0], Version: parts[1]}, true
}

// IsControlEntry reports whether a store root entry is reserved for
// bookkeeping rather than vault content.
func IsControlEntry(name string) bool {
	return strings.HasPrefix(name, ControlPrefix) || name == AuditLogPath
}
