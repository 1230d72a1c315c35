package despike

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

const minHistogramBins = 10

// Histogram is the distribution of absolute first differences over a container.
type Histogram struct {
	// Edges has len(Counts)+1 ascending bin edges.
	Edges  []float64
	Counts []float64
}

// Threshold returns the left edge of the first empty bin that follows the
// first populated one: the gap between the noise population and the spikes.
// Without a gap it returns the upper edge.
func (h *Histogram) Threshold() float64 {
	populated := false
	for i, c := range h.Counts {
		if c > 0 {
			populated = true
			continue
		}
		if populated {
			return h.Edges[i]
		}
	}
	return h.Edges[len(h.Edges)-1]
}

// Total returns the number of differences in the histogram.
func (h *Histogram) Total() float64 { return floats.Sum(h.Counts) }

// Diagnose builds the histogram of absolute first differences of every
// unmasked spectrum. It honours WithNavigationMask, WithSignalMask and the
// HistogramBins setting. The container index is restored before returning.
func Diagnose(c Container, opts ...Option) (*Histogram, error) {
	s := applyOptions(opts)
	t, err := newTarget(c, s)
	if err != nil {
		return nil, err
	}
	return t.histogram(s.HistogramBins)
}

func (t target) histogram(maxBins int) (*Histogram, error) {
	start := t.c.Indices()
	var diffs []float64
	for pos := range t.walk.all() {
		if err := t.c.SetIndices(t.walk.indices(pos)); err != nil {
			return nil, err
		}
		x := t.c.Current()
		for i := 0; i+1 < len(x); i++ {
			if excluded(t.exclude, i) || excluded(t.exclude, i+1) {
				continue
			}
			diffs = append(diffs, math.Abs(x[i+1]-x[i]))
		}
	}
	if err := t.c.SetIndices(start); err != nil {
		return nil, err
	}

	bins := max(minHistogramBins, int(math.Sqrt(float64(len(diffs)))))
	if maxBins > 0 {
		bins = min(bins, maxBins)
	}

	upper := 1.0
	if len(diffs) > 0 {
		sort.Float64s(diffs)
		if top := diffs[len(diffs)-1]; top > 0 {
			upper = math.Nextafter(top, math.Inf(1))
		}
	}
	edges := floats.Span(make([]float64, bins+1), 0, upper)
	// Span may round the last edge; the top value must stay inside.
	edges[bins] = upper

	return &Histogram{
		Edges:  edges,
		Counts: stat.Histogram(nil, edges, diffs, nil),
	}, nil
}
