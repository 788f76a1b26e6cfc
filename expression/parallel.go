package expression

import (
	"sync"

	"github.com/femtools/weakform/mesh"
	"github.com/femtools/weakform/utils"
)

// InterpolateParallel evaluates an expression over numWorkers disjoint
// sub-batches concurrently and stitches the row blocks back together.
// The tree and parameter tables are only read, so no locking is needed;
// the parameter reuse flag must be off, since the per-node cache is the
// one piece of mutable state reachable during evaluation.
func InterpolateParallel(op Operation, eb *mesh.ElementBatch, refCoords []float64, deform mesh.Deformation, numWorkers int) (out HarmMatrices, err error) {
	if numWorkers < 2 || eb.Count() < numWorkers {
		return op.Interpolate(eb, refCoords, deform)
	}
	var (
		parts   = eb.Split(numWorkers)
		results = make([]HarmMatrices, numWorkers)
		errs    = make([]error, numWorkers)
		wg      sync.WaitGroup
	)
	for n := 0; n < numWorkers; n++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			results[n], errs[n] = op.Interpolate(parts[n], refCoords, deform)
		}(n)
	}
	wg.Wait()
	for _, werr := range errs {
		if werr != nil {
			return nil, werr
		}
	}
	// Union of harmonics over the parts; a region split can leave some
	// harmonics present in only a few row blocks.
	var (
		K  = eb.Count()
		nP = mesh.NumPoints(refCoords)
	)
	out = make(HarmMatrices)
	rowOffset := 0
	for n, part := range parts {
		for harm, vals := range results[n] {
			dst, ok := out[harm]
			if !ok {
				dst = utils.NewMatrix(K, nP)
				out[harm] = dst
			}
			for k := 0; k < part.Count(); k++ {
				for p := 0; p < nP; p++ {
					dst.Set(rowOffset+k, p, vals.At(k, p))
				}
			}
		}
		rowOffset += part.Count()
	}
	return
}
