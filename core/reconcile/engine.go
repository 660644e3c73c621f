package reconcile

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Reconcile combines the three sets and decides pass or fail.
// It never fails: orphaned assets are reported through the verdict.
// Nil sets are treated as empty.
func Reconcile(embedded, full, platform AssetSet) *Result {
	covered := Union(embedded, platform)
	orphaned := Difference(full, covered)
	redundant := Intersect(embedded, platform)

	verdict := VerdictPass
	if orphaned.Len() > 0 {
		verdict = VerdictFail
	}

	return &Result{
		Verdict:   verdict,
		Orphaned:  orphaned.Sorted(),
		Redundant: redundant.Sorted(),
		Summary: Summary{
			Full:      full.Len(),
			Embedded:  embedded.Len(),
			Platform:  platform.Len(),
			Covered:   covered.Len(),
			Orphaned:  orphaned.Len(),
			Redundant: redundant.Len(),
		},
		Sets: Sets{
			Embedded: embedded,
			Full:     full,
			Platform: platform,
		},
	}
}

// ReconcileAll loads all three sets through the job's adapter and reconciles them.
func ReconcileAll(ctx context.Context, job *Job) (*Result, error) {
	sets, err := BuildSets(ctx, job)
	if err != nil {
		return nil, err
	}
	return Reconcile(sets.Embedded, sets.Full, sets.Platform), nil
}

// BuildSets loads the three sets concurrently.
// The loads share no state; the first error cancels the rest and is returned.
func BuildSets(ctx context.Context, job *Job) (Sets, error) {
	var sets Sets

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s, err := job.Adapter.LoadEmbeddedSet(gctx)
		sets.Embedded = s
		return err
	})

	g.Go(func() error {
		s, err := job.Adapter.LoadFullSet(gctx)
		sets.Full = s
		return err
	})

	g.Go(func() error {
		s, err := job.Adapter.LoadPlatformSet(gctx)
		sets.Platform = s
		return err
	})

	if err := g.Wait(); err != nil {
		return Sets{}, err
	}

	return sets, nil
}
