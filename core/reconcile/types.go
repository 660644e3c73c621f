package reconcile

import (
	"sort"
	"time"
)

// AssetSet is an unordered set of asset identifiers.
// Sets are built once by an adapter and treated as immutable afterwards.
type AssetSet map[string]struct{}

// NewAssetSet returns a set holding the given identifiers.
func NewAssetSet(ids ...string) AssetSet {
	s := make(AssetSet, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

// Add inserts an identifier into the set.
func (s AssetSet) Add(id string) {
	s[id] = struct{}{}
}

// Has reports whether the identifier is in the set.
func (s AssetSet) Has(id string) bool {
	_, ok := s[id]
	return ok
}

// Len returns the number of identifiers in the set.
func (s AssetSet) Len() int {
	return len(s)
}

// Sorted returns the identifiers in lexical order.
// It never returns nil so JSON output renders an empty list.
func (s AssetSet) Sorted() []string {
	out := make([]string, 0, len(s))
	for id := range s {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// Union returns a new set with every identifier of every input set.
func Union(sets ...AssetSet) AssetSet {
	union := make(AssetSet)
	for _, s := range sets {
		for id := range s {
			union[id] = struct{}{}
		}
	}
	return union
}

// Difference returns the identifiers of a that are not in b.
func Difference(a, b AssetSet) AssetSet {
	diff := make(AssetSet)
	for id := range a {
		if !b.Has(id) {
			diff[id] = struct{}{}
		}
	}
	return diff
}

// Intersect returns the identifiers present in both a and b.
func Intersect(a, b AssetSet) AssetSet {
	// Iterate the smaller set.
	if len(b) < len(a) {
		a, b = b, a
	}
	both := make(AssetSet)
	for id := range a {
		if b.Has(id) {
			both[id] = struct{}{}
		}
	}
	return both
}

// Sets groups the three inputs of one reconciliation pass.
type Sets struct {
	// Embedded holds the identifiers baked into the native binary.
	Embedded AssetSet
	// Full holds every identifier referenced by the export.
	Full AssetSet
	// Platform holds the identifiers shipped in the over-the-air payload.
	Platform AssetSet
}

// Verdict is the outcome of a reconciliation pass.
type Verdict string

const (
	// VerdictPass means every asset in the export is covered.
	VerdictPass Verdict = "pass"
	// VerdictFail means at least one asset is orphaned.
	VerdictFail Verdict = "fail"
)

// Summary provides aggregate counts for a reconciliation pass.
type Summary struct {
	Full      int `json:"full" yaml:"full"`
	Embedded  int `json:"embedded" yaml:"embedded"`
	Platform  int `json:"platform" yaml:"platform"`
	Covered   int `json:"covered" yaml:"covered"`
	Orphaned  int `json:"orphaned" yaml:"orphaned"`
	Redundant int `json:"redundant" yaml:"redundant"`
}

// Result represents the reconciliation output.
type Result struct {
	// Verdict is pass iff Orphaned is empty.
	Verdict Verdict `json:"verdict" yaml:"verdict"`

	// Orphaned lists identifiers present in the full export but absent from
	// both the embedded manifest and the platform payload, sorted.
	Orphaned []string `json:"orphaned" yaml:"orphaned"`

	// Redundant lists identifiers present in both the embedded manifest and
	// the platform payload, sorted. Informational only.
	Redundant []string `json:"redundant" yaml:"redundant"`

	// Summary provides aggregate counts.
	Summary Summary `json:"summary" yaml:"summary"`

	// Sets holds the inputs the result was computed from.
	Sets Sets `json:"-" yaml:"-"`
}

// Passed reports whether the verdict is pass.
func (r *Result) Passed() bool {
	return r.Verdict == VerdictPass
}

// Job defines the configuration for a reconciliation operation.
type Job struct {
	// Adapter loads the three asset sets.
	Adapter Adapter

	// CacheTTL is the time-to-live for cached results.
	// If zero, caching is disabled.
	CacheTTL time.Duration
}

// CacheKey returns a unique key for caching based on the adapter inputs.
func (j *Job) CacheKey() string {
	return j.Adapter.Name() + "|" + j.Adapter.CacheKey()
}
