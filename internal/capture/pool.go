package capture

import (
	"runtime"
	"sync"

	"github.com/meshcap/meshcap/internal/geometry"
	"github.com/meshcap/meshcap/internal/sampler"
	"github.com/meshcap/meshcap/internal/scene"
	"github.com/meshcap/meshcap/pkg/formats"
)

func newExtractor(obj *scene.Object) *geometry.Extractor {
	return geometry.NewExtractor(obj.Mesh, obj.Transform())
}

// sampleObjects samples every object across a worker pool. Each worker
// writes into its own slot of the results slice, so the merged cloud
// is always in object order and independent of worker count and
// scheduling.
func (s *Session) sampleObjects(objs []*scene.Object) []formats.PCDPoint {
	if len(objs) == 0 {
		return nil
	}

	workers := s.opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > len(objs) {
		workers = len(objs)
	}

	params := sampler.Params{
		Seed:   s.opts.Seed,
		Bounds: s.bounds,
		Policy: s.opts.Policy,
	}

	jobs := make(chan int, len(objs))
	results := make([][]formats.PCDPoint, len(objs))

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				obj := objs[i]
				results[i] = sampler.Sample(newExtractor(obj), obj.Texture, params)
			}
		}()
	}

	for i := range objs {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	var total int
	for _, r := range results {
		total += len(r)
	}

	merged := make([]formats.PCDPoint, 0, total)
	for _, r := range results {
		merged = append(merged, r...)
	}
	return merged
}
