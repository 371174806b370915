// Package rowgen produces datasets: schema-driven rows resolved through the
// generator registry, and plan-driven rows requested per scenario from the
// text-generation capability.
package rowgen

import (
	"context"
	"fmt"
	mathrand "math/rand/v2"

	"github.com/qaforge/qaforge/pkg/dataset"
	"github.com/qaforge/qaforge/pkg/gen"
	"github.com/qaforge/qaforge/pkg/schema"
)

// Generate builds n records from the schema under the given case policy.
//
// With gen.CaseMixed the case is drawn uniformly and independently for every
// field of every row. A missing generator never fails the run: the cell gets
// the gen.Sentinel value and generation continues, so the full dataset is
// always produced.
func Generate(ctx context.Context, reg *gen.Registry, s schema.Schema, n int, policy gen.Case) (*dataset.Dataset, error) {
	if n <= 0 {
		return nil, fmt.Errorf("row count must be positive, got %d", n)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}

	ds := dataset.New(s.ColumnNames()...)
	for i := 0; i < n; i++ {
		rec := make(dataset.Record, len(s.Fields))
		for _, f := range s.Fields {
			kase := policy
			if policy == gen.CaseMixed {
				if mathrand.IntN(2) == 0 {
					kase = gen.CasePositive
				} else {
					kase = gen.CaseNegative
				}
			}

			produce, ok := reg.Resolve(f.Type, kase)
			if !ok {
				rec[f.Name] = gen.Sentinel(f.Type, kase)
				continue
			}
			rec[f.Name] = produce(ctx, f.Context)
		}
		ds.Append(rec)
	}
	return ds, nil
}
