// Package batch fans independent layering sessions out across a bounded
// worker pool. It sits entirely outside the layering engine: the engine
// itself is single-threaded and synchronous per call (a rendering session
// holds no shared mutable state outside its own call stack), and batch is
// the concrete realization of the boundary collaborator responsible for
// admission control.
package batch

import (
	"context"

	"github.com/sourcegraph/conc/pool"
	"go.uber.org/zap"

	"github.com/layerforge/layering"
)

// Session is one independent set of documents to render. Label identifies
// the session in logs and in the corresponding Result; it plays no part in
// rendering itself.
type Session struct {
	Label     string
	Documents []map[string]any
}

// Result is the outcome of rendering one Session. Exactly one of Rendered
// or Err is set.
type Result struct {
	Label     string
	Rendered  []map[string]any
	Err       error
	Cancelled bool
}

// RenderAll renders every session in sessions concurrently, bounded to
// maxGoroutines simultaneous renders, and returns one Result per session in
// the same order sessions was given in. A session's failure never affects
// any other session's result. log may be nil, in which case no per-session
// events are logged.
func RenderAll(ctx context.Context, sessions []Session, maxGoroutines int, log *zap.Logger) []Result {
	if log == nil {
		log = zap.NewNop()
	}

	p := pool.New().
		WithContext(ctx).
		WithMaxGoroutines(maxGoroutines)

	// Each task writes its own slot, so results keep session order
	// regardless of the order in which tasks complete.
	results := make([]Result, len(sessions))

	for i, s := range sessions {
		i, s := i, s

		p.Go(func(ctx context.Context) error {
			select {
			case <-ctx.Done():
				results[i] = Result{Label: s.Label, Cancelled: true, Err: ctx.Err()}
				return nil
			default:
			}

			log.Debug("rendering session", zap.String("session", s.Label), zap.Int("documents", len(s.Documents)))

			rendered, err := layering.Render(s.Documents)
			if err != nil {
				log.Warn("session failed", zap.String("session", s.Label), zap.Error(err))
				results[i] = Result{Label: s.Label, Err: err}
				return nil
			}

			results[i] = Result{Label: s.Label, Rendered: rendered}
			return nil
		})
	}

	_ = p.Wait()

	return results
}
