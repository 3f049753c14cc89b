// Package batch demangles many names concurrently.
package batch

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/skdltmxn/bcc-demangle/ast"
	"github.com/skdltmxn/bcc-demangle/demangle"
)

// A worker starts a fresh ast.Context once its arena holds this many nodes.
const maxContextNodes = 1 << 16

// Options controls a batch run.
type Options struct {
	// Workers is the number of goroutines. Zero or less means runtime.NumCPU().
	Workers int

	// DisableInterning turns off type node sharing in the worker contexts.
	DisableInterning bool
}

// Result is the outcome for one input name.
type Result struct {
	Mangled   string
	Demangled string // Mangled when Err is set
	Err       error
}

// Run demangles names and returns one Result per name, in input order.
// Parse failures are reported per Result and do not stop the run.
// If ctx is cancelled, Run stops and returns ctx.Err().
func Run(ctx context.Context, names []string, opts Options) ([]Result, error) {
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	workers = min(workers, max(len(names), 1))

	results := make([]Result, len(names))
	work := make(chan int, workers)
	grp, ctx := errgroup.WithContext(ctx)

	// producer
	grp.Go(func() error {
		defer close(work)
		for i := range names {
			select {
			case work <- i:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		return nil
	})

	for range workers {
		grp.Go(func() error {
			actx := newContext(opts)
			for {
				var i int
				select {
				case n, ok := <-work:
					if !ok {
						return nil
					}
					i = n
				case <-ctx.Done():
					return ctx.Err()
				}

				if actx.Len() > maxContextNodes {
					actx = newContext(opts)
				}
				results[i] = demangleOne(actx, names[i])
			}
		})
	}

	if err := grp.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func newContext(opts Options) *ast.Context {
	return ast.NewContext(ast.WithInterning(!opts.DisableInterning))
}

func demangleOne(ctx *ast.Context, name string) Result {
	root, err := demangle.DemangleToNode(ctx, name)
	if err != nil {
		return Result{Mangled: name, Demangled: name, Err: err}
	}
	return Result{Mangled: name, Demangled: ctx.String(root)}
}
