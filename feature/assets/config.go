package assets

import (
	"fmt"
)

// Default verification settings. They match the layout produced by a Release
// build for the iOS simulator and an export written to ./dist.
const (
	DefaultExportPath           = "./dist"
	DefaultEmbeddedManifestPath = "./ios/build/Build/Products/Release-iphonesimulator/EXUpdates/EXUpdates.bundle/app.manifest"
	DefaultPlatform             = PlatformIOS
	DefaultHashField            = "packagerHash"
	DefaultAssetPrefix          = "assets/"
)

// Source kinds accepted by Config.Source.
const (
	SourceLocal  = "local"
	SourceBucket = "bucket"
)

// Config holds the verification defaults. Command flags and request bodies
// override individual fields.
type Config struct {
	// ExportPath is the export directory, relative to the project root.
	ExportPath string `mapstructure:"export_path" default:"./dist"`
	// EmbeddedManifestPath is the native build's embedded manifest, relative to the project root.
	EmbeddedManifestPath string `mapstructure:"embedded_manifest_path" default:"./ios/build/Build/Products/Release-iphonesimulator/EXUpdates/EXUpdates.bundle/app.manifest"`
	// Platform is the target platform (ios, android).
	Platform string `mapstructure:"platform" default:"ios"`
	// HashField is the manifest asset field holding the identifier.
	HashField string `mapstructure:"hash_field" default:"packagerHash"`
	// AssetPrefix is the storage-root prefix of export metadata asset paths.
	AssetPrefix string `mapstructure:"asset_prefix" default:"assets/"`
	// Source selects where artifacts are read from (local, bucket).
	Source string `mapstructure:"source" default:"local"`
	// Verbose enables debug logging and echoes the three asset sets.
	Verbose bool `mapstructure:"verbose" default:"false"`
}

// DefaultConfig returns the documented defaults.
func DefaultConfig() Config {
	return Config{
		ExportPath:           DefaultExportPath,
		EmbeddedManifestPath: DefaultEmbeddedManifestPath,
		Platform:             string(DefaultPlatform),
		HashField:            DefaultHashField,
		AssetPrefix:          DefaultAssetPrefix,
		Source:               SourceLocal,
	}
}

// Options are the resolved inputs of one verification pass.
type Options struct {
	ExportPath           string   `json:"export_path" yaml:"export_path"`
	EmbeddedManifestPath string   `json:"embedded_manifest_path" yaml:"embedded_manifest_path"`
	Platform             Platform `json:"platform" yaml:"platform"`
	HashField            string   `json:"hash_field" yaml:"hash_field"`
	AssetPrefix          string   `json:"asset_prefix" yaml:"asset_prefix"`
}

// Resolve validates the configuration and resolves its paths against the
// project root using the source's path rules.
func (c Config) Resolve(src Source, projectRoot string) (Options, error) {
	platform, err := ParsePlatform(c.Platform)
	if err != nil {
		return Options{}, err
	}

	exportPath := c.ExportPath
	if exportPath == "" {
		exportPath = DefaultExportPath
	}
	manifestPath := c.EmbeddedManifestPath
	if manifestPath == "" {
		manifestPath = DefaultEmbeddedManifestPath
	}
	hashField := c.HashField
	if hashField == "" {
		hashField = DefaultHashField
	}

	return Options{
		ExportPath:           src.Resolve(projectRoot, exportPath),
		EmbeddedManifestPath: src.Resolve(projectRoot, manifestPath),
		Platform:             platform,
		HashField:            hashField,
		AssetPrefix:          c.AssetPrefix,
	}, nil
}

// ParseSource validates a source name.
func ParseSource(kind string) (string, error) {
	switch kind {
	case "", SourceLocal:
		return SourceLocal, nil
	case SourceBucket:
		return SourceBucket, nil
	default:
		return "", fmt.Errorf("unsupported source %q (want %s or %s)", kind, SourceLocal, SourceBucket)
	}
}
