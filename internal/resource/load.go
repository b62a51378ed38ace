package resource

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// LoadFiles reads snippet files concurrently and adds them to r in the
// order given, so later files override earlier ones
func (r *Registry) LoadFiles(ctx context.Context, paths ...string) error {
	files := make([]*File, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			f, err := ReadFile(path)
			if err != nil {
				return err
			}
			files[i] = f
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for _, f := range files {
		r.AddFile(f)
	}
	return r.Check()
}
