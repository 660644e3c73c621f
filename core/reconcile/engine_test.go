package reconcile

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockAdapter is a simple test adapter
type mockAdapter struct {
	key          string
	embedded     AssetSet
	full         AssetSet
	platform     AssetSet
	embeddedErr  error
	fullErr      error
	platformErr  error
	platformLoad atomic.Int32
	// honorCtx makes LoadPlatformSet fail when its context is done.
	honorCtx bool
}

func (m *mockAdapter) Name() string {
	return "mock"
}

func (m *mockAdapter) CacheKey() string {
	return m.key
}

func (m *mockAdapter) LoadEmbeddedSet(ctx context.Context) (AssetSet, error) {
	return m.embedded, m.embeddedErr
}

func (m *mockAdapter) LoadFullSet(ctx context.Context) (AssetSet, error) {
	return m.full, m.fullErr
}

func (m *mockAdapter) LoadPlatformSet(ctx context.Context) (AssetSet, error) {
	m.platformLoad.Add(1)
	if m.honorCtx && ctx.Err() != nil {
		return nil, ctx.Err()
	}
	return m.platform, m.platformErr
}

func TestReconcile_FullyCovered(t *testing.T) {
	tests := []struct {
		name     string
		embedded AssetSet
		platform AssetSet
	}{
		{"Embedded only", NewAssetSet("a", "b"), NewAssetSet()},
		{"Platform only", NewAssetSet(), NewAssetSet("a", "b")},
		{"Split", NewAssetSet("a"), NewAssetSet("b")},
		{"Redundant", NewAssetSet("a", "b"), NewAssetSet("b")},
		{"Both empty", NewAssetSet(), NewAssetSet()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			full := Union(tt.embedded, tt.platform)

			res := Reconcile(tt.embedded, full, tt.platform)
			assert.Equal(t, VerdictPass, res.Verdict)
			assert.True(t, res.Passed())
			assert.Empty(t, res.Orphaned)
		})
	}
}

func TestReconcile_Orphaned(t *testing.T) {
	embedded := NewAssetSet("a")
	platform := NewAssetSet("b")
	full := NewAssetSet("a", "b", "x")

	res := Reconcile(embedded, full, platform)
	assert.Equal(t, VerdictFail, res.Verdict)
	assert.False(t, res.Passed())
	assert.Equal(t, []string{"x"}, res.Orphaned)
	assert.Equal(t, 1, res.Summary.Orphaned)
	assert.Equal(t, 2, res.Summary.Covered)
}

func TestReconcile_RedundancyIsInformational(t *testing.T) {
	embedded := NewAssetSet("a", "b", "c")
	platform := NewAssetSet("b", "c", "d")
	full := Union(embedded, platform)

	res := Reconcile(embedded, full, platform)
	assert.Equal(t, VerdictPass, res.Verdict)
	assert.Equal(t, []string{"b", "c"}, res.Redundant)
	assert.Equal(t, 2, res.Summary.Redundant)
}

func TestReconcile_Idempotent(t *testing.T) {
	embedded := NewAssetSet("h1", "h2")
	platform := NewAssetSet("h4")
	full := NewAssetSet("h1", "h2", "h3", "h4", "h5")

	first := Reconcile(embedded, full, platform)
	second := Reconcile(embedded, full, platform)

	assert.Equal(t, first.Verdict, second.Verdict)
	assert.ElementsMatch(t, first.Orphaned, second.Orphaned)
	assert.Equal(t, []string{"h3", "h5"}, first.Orphaned)
}

func TestReconcile_NilSetsAreEmpty(t *testing.T) {
	res := Reconcile(nil, nil, nil)
	assert.Equal(t, VerdictPass, res.Verdict)
	assert.NotNil(t, res.Orphaned)
	assert.Empty(t, res.Orphaned)

	res = Reconcile(nil, NewAssetSet("x"), nil)
	assert.Equal(t, VerdictFail, res.Verdict)
	assert.Equal(t, []string{"x"}, res.Orphaned)
}

func TestReconcile_ExtraCoveredAssetsDoNotFail(t *testing.T) {
	// Covered assets that the full export does not reference are not orphans.
	res := Reconcile(NewAssetSet("a", "stale"), NewAssetSet("a"), NewAssetSet())
	assert.Equal(t, VerdictPass, res.Verdict)
}

func TestReconcileAll(t *testing.T) {
	adapter := &mockAdapter{
		embedded: NewAssetSet("h1", "h2"),
		full:     NewAssetSet("h1", "h2", "h3"),
		platform: NewAssetSet("h3"),
	}

	res, err := ReconcileAll(context.Background(), &Job{Adapter: adapter})
	require.NoError(t, err)
	assert.Equal(t, VerdictPass, res.Verdict)
	assert.Equal(t, 3, res.Summary.Full)
	assert.True(t, res.Sets.Platform.Has("h3"))
}

// TestBuildSets_ErrorHandling tests that load errors are surfaced and no partial sets leak out.
func TestBuildSets_ErrorHandling(t *testing.T) {
	tests := []struct {
		name        string
		embeddedErr error
		fullErr     error
		platformErr error
		expectErr   string
	}{
		{name: "Embedded load error", embeddedErr: fmt.Errorf("manifest error"), expectErr: "manifest error"},
		{name: "Full load error", fullErr: fmt.Errorf("assetmap error"), expectErr: "assetmap error"},
		{name: "Platform load error", platformErr: fmt.Errorf("metadata error"), expectErr: "metadata error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			adapter := &mockAdapter{
				embedded:    NewAssetSet("a"),
				full:        NewAssetSet("a"),
				platform:    NewAssetSet(),
				embeddedErr: tt.embeddedErr,
				fullErr:     tt.fullErr,
				platformErr: tt.platformErr,
			}

			sets, err := BuildSets(context.Background(), &Job{Adapter: adapter})
			assert.Error(t, err)
			assert.Contains(t, err.Error(), tt.expectErr)
			assert.Nil(t, sets.Embedded)
			assert.Nil(t, sets.Full)
			assert.Nil(t, sets.Platform)

			res, err := ReconcileAll(context.Background(), &Job{Adapter: adapter})
			assert.Error(t, err)
			assert.Nil(t, res)
		})
	}
}

func TestGetOrBuild_Caching(t *testing.T) {
	adapter := &mockAdapter{
		key:      "cache-test",
		embedded: NewAssetSet("a"),
		full:     NewAssetSet("a", "b"),
		platform: NewAssetSet(),
	}
	job := &Job{Adapter: adapter, CacheTTL: time.Minute}
	defer InvalidateCache(job)

	first, err := GetOrBuild(context.Background(), job)
	require.NoError(t, err)
	second, err := GetOrBuild(context.Background(), job)
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, int32(1), adapter.platformLoad.Load())

	InvalidateCache(job)
	_, err = GetOrBuild(context.Background(), job)
	require.NoError(t, err)
	assert.Equal(t, int32(2), adapter.platformLoad.Load())
}

func TestGetOrBuild_NoTTLBypassesCache(t *testing.T) {
	adapter := &mockAdapter{
		key:      "no-cache",
		embedded: NewAssetSet(),
		full:     NewAssetSet(),
		platform: NewAssetSet(),
	}
	job := &Job{Adapter: adapter}

	_, err := GetOrBuild(context.Background(), job)
	require.NoError(t, err)
	_, err = GetOrBuild(context.Background(), job)
	require.NoError(t, err)

	assert.Equal(t, int32(2), adapter.platformLoad.Load())
}

func TestGetOrBuild_ErrorsAreNotCached(t *testing.T) {
	adapter := &mockAdapter{
		key:         "error-cache",
		platformErr: fmt.Errorf("boom"),
	}
	job := &Job{Adapter: adapter, CacheTTL: time.Minute}
	defer InvalidateCache(job)

	_, err := GetOrBuild(context.Background(), job)
	assert.Error(t, err)

	adapter.platformErr = nil
	adapter.embedded = NewAssetSet()
	adapter.full = NewAssetSet()
	adapter.platform = NewAssetSet()

	res, err := GetOrBuild(context.Background(), job)
	require.NoError(t, err)
	assert.True(t, res.Passed())
}

func TestGetOrBuild_ExpiredEntriesAreRemoved(t *testing.T) {
	stale := &Job{Adapter: &mockAdapter{key: "expiring", embedded: NewAssetSet(), full: NewAssetSet(), platform: NewAssetSet()}, CacheTTL: time.Millisecond}
	other := &Job{Adapter: &mockAdapter{key: "expiring-other", embedded: NewAssetSet(), full: NewAssetSet(), platform: NewAssetSet()}, CacheTTL: time.Millisecond}
	defer InvalidateCache(stale)
	defer InvalidateCache(other)

	_, err := GetOrBuild(context.Background(), stale)
	require.NoError(t, err)
	_, err = GetOrBuild(context.Background(), other)
	require.NoError(t, err)

	time.Sleep(5 * time.Millisecond)

	// A lookup of an expired key drops it.
	_, ok := lookup(stale.CacheKey())
	assert.False(t, ok)

	// Storing a new entry sweeps the remaining expired ones.
	_, err = GetOrBuild(context.Background(), stale)
	require.NoError(t, err)

	globalCacheStore.mu.RLock()
	_, otherKept := globalCacheStore.caches[other.CacheKey()]
	_, staleKept := globalCacheStore.caches[stale.CacheKey()]
	globalCacheStore.mu.RUnlock()
	assert.False(t, otherKept)
	assert.True(t, staleKept)
}

func TestGetOrBuild_SharedPassIgnoresCallerCancellation(t *testing.T) {
	adapter := &mockAdapter{
		key:      "cancelled-caller",
		embedded: NewAssetSet("a"),
		full:     NewAssetSet("a"),
		platform: NewAssetSet(),
		honorCtx: true,
	}
	job := &Job{Adapter: adapter, CacheTTL: time.Minute}
	defer InvalidateCache(job)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res, err := GetOrBuild(ctx, job)
	require.NoError(t, err)
	assert.True(t, res.Passed())

	// Without caching the caller's own context governs the pass.
	_, err = GetOrBuild(ctx, &Job{Adapter: adapter})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestAssetSet_Operations(t *testing.T) {
	a := NewAssetSet("1", "2", "3")
	b := NewAssetSet("3", "4")

	assert.Equal(t, []string{"1", "2", "3", "4"}, Union(a, b).Sorted())
	assert.Equal(t, []string{"1", "2"}, Difference(a, b).Sorted())
	assert.Equal(t, []string{"3"}, Intersect(a, b).Sorted())
	assert.Equal(t, []string{"3"}, Intersect(b, a).Sorted())

	a.Add("5")
	assert.True(t, a.Has("5"))
	assert.Equal(t, 4, a.Len())
	assert.Equal(t, []string{}, NewAssetSet().Sorted())
}
