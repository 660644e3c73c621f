package assets

import (
	"encoding/json"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
)

const (
	testRoot         = "/project"
	testExportPath   = "/project/dist"
	testManifestPath = "/project/ios/app.manifest"
)

// fixture is an export plus native manifest on an in-memory filesystem.
type fixture struct {
	t  *testing.T
	fs afero.Fs
}

func newFixture(t *testing.T) *fixture {
	return &fixture{t: t, fs: afero.NewMemMapFs()}
}

func (f *fixture) write(name string, v any) *fixture {
	var data []byte
	switch val := v.(type) {
	case string:
		data = []byte(val)
	default:
		var err error
		data, err = json.Marshal(val)
		require.NoError(f.t, err)
	}
	require.NoError(f.t, afero.WriteFile(f.fs, name, data, 0o644))
	return f
}

func (f *fixture) manifest(hashes ...string) *fixture {
	assets := make([]map[string]string, 0, len(hashes))
	for _, h := range hashes {
		assets = append(assets, map[string]string{"packagerHash": h, "type": "png"})
	}
	return f.write(testManifestPath, map[string]any{"assets": assets})
}

func (f *fixture) assetMap(ids ...string) *fixture {
	m := make(map[string]any, len(ids))
	for _, id := range ids {
		m[id] = map[string]any{"hash": id}
	}
	return f.write(testExportPath+"/"+AssetMapFile, m)
}

func (f *fixture) metadata(platforms map[string][]ExportedAsset) *fixture {
	fm := make(map[string]any, len(platforms))
	for p, assets := range platforms {
		if assets == nil {
			assets = []ExportedAsset{}
		}
		fm[p] = map[string]any{"bundle": "bundles/" + p + ".js", "assets": assets}
	}
	return f.write(testExportPath+"/"+MetadataFile, map[string]any{"version": 0, "bundler": "metro", "fileMetadata": fm})
}

func (f *fixture) source() *LocalSource {
	return NewLocalSource(f.fs)
}

func testOptions(platform Platform) Options {
	return Options{
		ExportPath:           testExportPath,
		EmbeddedManifestPath: testManifestPath,
		Platform:             platform,
		HashField:            DefaultHashField,
		AssetPrefix:          DefaultAssetPrefix,
	}
}
