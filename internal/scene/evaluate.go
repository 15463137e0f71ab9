package scene

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/tomz197/collide/internal/collision"
)

// Contact is one colliding pair found by Evaluate. Moving B by
// Result.Translation() separates it from A.
type Contact struct {
	A, B   *Shape
	Result collision.Result
}

// Evaluate resolves every unordered pair of shapes and returns the colliding
// ones ordered by the index of A, then B. Rows are computed concurrently with
// at most limit goroutines; limit <= 0 means no limit. Shapes must not be
// mutated while Evaluate runs.
func Evaluate(ctx context.Context, shapes []*Shape, limit int) ([]Contact, error) {
	rows := make([][]Contact, len(shapes))

	g, ctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}
	for i := range shapes {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			for j := i + 1; j < len(shapes); j++ {
				if res, ok := Resolve(shapes[i], shapes[j]); ok {
					rows[i] = append(rows[i], Contact{A: shapes[i], B: shapes[j], Result: res})
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var out []Contact
	for _, row := range rows {
		out = append(out, row...)
	}
	return out, nil
}
