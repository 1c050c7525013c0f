package domain

import "go.trai.ch/zerr"

var (
	// ErrInputRead is returned when the mod list file cannot be read.
	ErrInputRead = zerr.New("failed to read mod list")

	// ErrInputParse is returned when a line of the mod list cannot be understood.
	ErrInputParse = zerr.New("failed to parse mod list")

	// ErrInvalidPackageRef is returned when a package identifier or URL is malformed.
	ErrInvalidPackageRef = zerr.New("invalid package identifier")

	// ErrForeignURL is returned when a mod list URL points outside the package repository.
	ErrForeignURL = zerr.New("url is not from the package repository")

	// ErrPackageNotFound is returned when the repository does not know a package or version.
	ErrPackageNotFound = zerr.New("package not found in repository")

	// ErrRepositoryRequestFailed is returned when the repository cannot be reached or answers with an error.
	ErrRepositoryRequestFailed = zerr.New("failed to query package repository")

	// ErrRepositoryParseFailed is returned when a repository response cannot be decoded.
	ErrRepositoryParseFailed = zerr.New("failed to parse package repository response")

	// ErrMetadataIncomplete is returned when a repository response lacks a required field.
	ErrMetadataIncomplete = zerr.New("package metadata is missing required fields")

	// ErrResolutionFailed is returned when dependency resolution aborts.
	ErrResolutionFailed = zerr.New("dependency resolution failed")

	// ErrPackageAlreadyResolved is returned when a package is added to a resolved set twice.
	ErrPackageAlreadyResolved = zerr.New("package already resolved")

	// ErrPackageNotResolved is returned when replacing a package that was never resolved.
	ErrPackageNotResolved = zerr.New("package not resolved")

	// ErrDownloadFailed is returned when a package archive cannot be downloaded.
	ErrDownloadFailed = zerr.New("failed to download package archive")

	// ErrArchiveCacheFailed is returned when the archive cache cannot be read or written.
	ErrArchiveCacheFailed = zerr.New("failed to access archive cache")

	// ErrExtractionFailed is returned when a package archive cannot be extracted.
	ErrExtractionFailed = zerr.New("failed to extract package archive")

	// ErrUnsafeArchivePath is returned when an archive entry would be written outside the output directory.
	ErrUnsafeArchivePath = zerr.New("archive entry escapes output directory")

	// ErrOutputExists is returned when the modpack directory of a run already exists.
	ErrOutputExists = zerr.New("output directory already exists")

	// ErrOutputCreateFailed is returned when the modpack directory tree cannot be created.
	ErrOutputCreateFailed = zerr.New("failed to create output directory")

	// ErrOutputWrite is returned when the modlist manifest cannot be written.
	ErrOutputWrite = zerr.New("failed to write modlist")

	// ErrConfigReadFailed is returned when the settings file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read settings file")

	// ErrConfigParseFailed is returned when the settings file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse settings file")

	// ErrConfigInvalid is returned when a setting has an unusable value.
	ErrConfigInvalid = zerr.New("invalid setting")

	// ErrInvalidVersionPolicy is returned for an unknown version policy name.
	ErrInvalidVersionPolicy = zerr.New("invalid version policy, expected 'first', 'highest' or 'latest'")

	// ErrCleanFailed is returned when a cache directory cannot be removed.
	ErrCleanFailed = zerr.New("failed to remove cache")
)
