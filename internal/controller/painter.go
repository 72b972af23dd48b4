package controller

import (
	"context"
	"sync"

	"github.com/leapstack-labs/signalboard/internal/render"
)

// Painter applies regions to a concrete UI. Applying a region replaces the
// whole content of the container with the same id.
type Painter interface {
	Paint(ctx context.Context, regions ...render.Region) error
}

// PainterFunc adapts a function to the Painter interface.
type PainterFunc func(ctx context.Context, regions ...render.Region) error

// Paint calls f.
func (f PainterFunc) Paint(ctx context.Context, regions ...render.Region) error {
	return f(ctx, regions...)
}

type painterKey struct{}

// WithPainter returns a context whose interactions are also painted to p.
// Web handlers use it to stream the regions of one request to its client.
func WithPainter(ctx context.Context, p Painter) context.Context {
	return context.WithValue(ctx, painterKey{}, p)
}

func painterFrom(ctx context.Context) Painter {
	p, _ := ctx.Value(painterKey{}).(Painter)
	return p
}

// Recorder is an in-memory Painter. It keeps the latest region per id, in the
// order ids were first painted, and a paint count per id. A Recorder made with
// NewLoggingRecorder also keeps every painted region in order.
// It is safe for concurrent use.
type Recorder struct {
	mu      sync.Mutex
	regions map[string]render.Region
	order   []string
	counts  map[string]int
	keepLog bool
	log     []render.Region
}

// NewRecorder creates an empty Recorder whose memory is bounded by the
// number of distinct region ids.
func NewRecorder() *Recorder {
	return &Recorder{
		regions: make(map[string]render.Region),
		counts:  make(map[string]int),
	}
}

// NewLoggingRecorder creates an empty Recorder that also logs every paint.
func NewLoggingRecorder() *Recorder {
	r := NewRecorder()
	r.keepLog = true
	return r
}

// Paint records regions.
func (r *Recorder) Paint(_ context.Context, regions ...render.Region) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, region := range regions {
		if _, ok := r.regions[region.ID]; !ok {
			r.order = append(r.order, region.ID)
		}
		r.regions[region.ID] = region
		r.counts[region.ID]++
		if r.keepLog {
			r.log = append(r.log, region)
		}
	}
	return nil
}

// Region returns the latest region painted with id.
func (r *Recorder) Region(id string) (render.Region, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	region, ok := r.regions[id]
	return region, ok
}

// Regions returns the latest region per id in first-paint order.
func (r *Recorder) Regions() []render.Region {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]render.Region, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.regions[id])
	}
	return out
}

// Log returns every region painted so far, oldest first. It is empty unless
// the Recorder was made with NewLoggingRecorder.
func (r *Recorder) Log() []render.Region {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]render.Region, len(r.log))
	copy(out, r.log)
	return out
}

// Count returns how many times id has been painted.
func (r *Recorder) Count(id string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.counts[id]
}

// Reset forgets everything recorded.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.regions = make(map[string]render.Region)
	r.order = nil
	r.counts = make(map[string]int)
	r.log = nil
}
