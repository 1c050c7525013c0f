package config

// Settingsfile represents the structure of the modpack.yaml settings file.
// Every field is optional and falls back to domain.DefaultSettings.
type Settingsfile struct {
	Repository RepositoryDTO `yaml:"repository"`
	Cache      CacheDTO      `yaml:"cache"`
	Resolver   ResolverDTO   `yaml:"resolver"`
	Input      InputDTO      `yaml:"input"`
	Layout     LayoutDTO     `yaml:"layout"`
}

// RepositoryDTO configures the package repository client.
type RepositoryDTO struct {
	BaseURL string `yaml:"base_url"`
	Timeout string `yaml:"timeout"`
}

// CacheDTO configures the archive cache.
type CacheDTO struct {
	Dir string `yaml:"dir"`
}

// ResolverDTO configures dependency resolution.
type ResolverDTO struct {
	VersionPolicy string `yaml:"version_policy"`
}

// InputDTO configures mod list parsing.
type InputDTO struct {
	CommentPrefix *string `yaml:"comment_prefix"`
}

// LayoutDTO configures the modpack directory layout.
type LayoutDTO struct {
	LoaderDir     string          `yaml:"loader_dir"`
	Folders       []string        `yaml:"folders"`
	PluginsFolder string          `yaml:"plugins_folder"`
	LoaderCore    []LoaderCoreDTO `yaml:"loader_core"`
	IgnoredFiles  []string        `yaml:"ignored_files"`
}

// LoaderCoreDTO names a package merged at the modpack root.
type LoaderCoreDTO struct {
	Package string `yaml:"package"`
	Subdir  string `yaml:"subdir"`
}
