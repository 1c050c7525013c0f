package domain

import (
	"path/filepath"
	"time"
)

const (
	// ModpackDirName is the name of the internal working directory.
	ModpackDirName = ".modpack"

	// CacheDirName is the name of the cache directory.
	CacheDirName = "cache"

	// ArchivesDirName is the name of the downloaded archive cache directory.
	ArchivesDirName = "archives"

	// SettingsFileName is the name of the optional settings file.
	SettingsFileName = "modpack.yaml"

	// EnvFileName is the name of the optional environment override file.
	EnvFileName = ".env"

	// OutputDirPrefix prefixes every generated modpack directory.
	OutputDirPrefix = "LC_modpack_"

	// ModlistFilePrefix prefixes the default exported modlist file.
	ModlistFilePrefix = "LC_modlist_"

	// TimestampLayout formats run timestamps (YYYY-mm-dd_HH-MM-SS).
	TimestampLayout = "2006-01-02_15-04-05"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644

	// PrivateFilePerm is the default permission for private files (rw-------).
	PrivateFilePerm = 0o600
)

// DefaultModpackPath returns the default root directory for modpack metadata.
func DefaultModpackPath() string {
	return ModpackDirName
}

// DefaultArchiveCachePath returns the default path for downloaded archives.
// It joins .modpack, cache, and archives.
func DefaultArchiveCachePath() string {
	return filepath.Join(ModpackDirName, CacheDirName, ArchivesDirName)
}

// OutputDirName returns the name of the modpack directory for a run started at t.
func OutputDirName(t time.Time) string {
	return OutputDirPrefix + t.Format(TimestampLayout)
}

// ModlistFileName returns the default export file name for a run started at t.
func ModlistFileName(t time.Time) string {
	return ModlistFilePrefix + t.Format(TimestampLayout) + ".txt"
}
