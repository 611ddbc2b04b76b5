package paint

import (
	"sync"

	"github.com/gogpu/paint/atlas"
)

// tessJob is one culled shape with its tessellated mesh (or callback).
type tessJob struct {
	clip     Rect
	shape    Shape
	mesh     *Mesh
	callback *PaintCallback
}

// TessellateShapes turns a frame's shapes into renderer draw jobs.
//
// Shapes must arrive in paint order (see GraphicLayers.Drain). Each shape's
// clip rect is intersected with the viewport; shapes whose clip vanishes or
// misses their feather-expanded bounds are dropped. Surviving shapes are
// tessellated, and consecutive results sharing a clip rect and texture
// coalesce into one ClippedPrimitive, split as needed so no mesh exceeds
// MaxIndices. Callback shapes pass through untessellated as their own jobs.
//
// With opts.Workers >= 2 tessellation runs on several goroutines over
// contiguous slices of the input; the merge stays sequential, so output is
// byte-identical to the serial pass.
func TessellateShapes(a *atlas.Atlas, shapes []ClippedShape, viewport Rect, opts TessellationOptions) []ClippedPrimitive {
	if opts.Tolerance <= 0 {
		opts.Tolerance = defaultTolerance
	}

	feather := float32(0)
	if opts.Feathering {
		feather = opts.FeatheringSize
	}

	jobs := make([]tessJob, 0, len(shapes))
	for _, cs := range shapes {
		clip := cs.ClipRect.Intersect(viewport)
		if clip.IsEmpty() {
			continue
		}
		if !clip.Intersects(cs.Shape.VisualBounds().Expand(feather)) {
			continue
		}
		job := tessJob{clip: clip, shape: cs.Shape}
		if cb, ok := cs.Shape.(CallbackShape); ok {
			job.callback = &PaintCallback{Rect: cb.Rect, Callback: cb.Callback}
		}
		jobs = append(jobs, job)
	}

	if opts.Workers >= 2 && len(jobs) > 1 {
		tessellateParallel(a, jobs, opts)
	} else {
		tess := NewTessellator(a, opts)
		tessellateRange(tess, jobs)
	}

	var b builder
	for i := range jobs {
		j := &jobs[i]
		switch {
		case j.callback != nil:
			b.addCallback(j.clip, *j.callback)
		case j.mesh != nil:
			b.add(j.clip, j.mesh)
		}
	}
	return b.finish()
}

// tessellateRange fills in the mesh of every non-callback job using one
// tessellator.
func tessellateRange(tess *Tessellator, jobs []tessJob) {
	for i := range jobs {
		j := &jobs[i]
		if j.callback != nil {
			continue
		}
		m := &Mesh{Texture: tess.Texture(j.shape)}
		tess.Tessellate(j.shape, m)
		j.mesh = m
	}
}

// tessellateParallel splits the jobs into contiguous chunks, one per worker,
// each with its own Tessellator. Workers only write their own chunk, so no
// further synchronization is needed before the sequential merge.
func tessellateParallel(a *atlas.Atlas, jobs []tessJob, opts TessellationOptions) {
	workers := opts.Workers
	if workers > len(jobs) {
		workers = len(jobs)
	}
	chunk := (len(jobs) + workers - 1) / workers

	var wg sync.WaitGroup
	for start := 0; start < len(jobs); start += chunk {
		end := min(start+chunk, len(jobs))
		wg.Add(1)
		go func(part []tessJob) {
			defer wg.Done()
			tessellateRange(NewTessellator(a, opts), part)
		}(jobs[start:end])
	}
	wg.Wait()
}
