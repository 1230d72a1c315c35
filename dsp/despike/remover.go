package despike

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/cwbudde/algo-spectra/dsp/core"
)

// Record describes one repair made by Run.
type Record struct {
	Indices []int
	Spike   Spike
	Window  Window
}

// Remover is the result of a batch Run: the parameters used and the repairs made.
type Remover struct {
	cfg     Config
	repairs []Record
}

// Config returns the parameters of the run, with Threshold set to the one used.
func (r *Remover) Config() Config { return r.cfg }

// Repairs returns the repairs in the order they were made.
func (r *Remover) Repairs() []Record { return slices.Clone(r.repairs) }

// Run removes every spike from every unmasked navigation position of c.
//
// Positions are visited in row-major order from the first one. Each spectrum
// is scanned and repaired repeatedly until no jump exceeds the threshold;
// repaired windows are excluded from later scans of the same spectrum. At most
// MaxRepairsPerSpectrum repairs are made per spectrum (zero means its length).
// The container index is restored before returning.
func Run(c Container, opts ...Option) (*Remover, error) {
	s := applyOptions(opts)
	t, err := newTarget(c, s)
	if err != nil {
		return nil, err
	}
	threshold, err := t.resolveThreshold(s)
	if err != nil {
		return nil, err
	}

	start := c.Indices()
	rep := t.repairer(s)
	r := &Remover{cfg: s.Config}
	r.cfg.Threshold = threshold

	limit := s.MaxRepairsPerSpectrum
	if limit <= 0 {
		limit = len(t.exclude)
	}

	visited := 0
	var exclude []bool
	for pos := range t.walk.all() {
		idx := t.walk.indices(pos)
		if err := c.SetIndices(idx); err != nil {
			return nil, err
		}
		visited++
		exclude = core.EnsureBools(exclude, len(t.exclude))
		copy(exclude, t.exclude)
		spectrum := c.Current()

		for range limit {
			spike, ok := Detect(spectrum, threshold, exclude, Forward)
			if !ok {
				break
			}
			w, err := rep.Repair(spectrum, spike.Location)
			if err != nil {
				err = fmt.Errorf("despike: repair at %v: %w", idx, err)
				if rerr := c.SetIndices(start); rerr != nil {
					err = errors.Join(err, fmt.Errorf("despike: restore index %v: %w", start, rerr))
				}
				return nil, err
			}
			for i := w.Lo; i <= w.Hi; i++ {
				exclude[i] = true
			}
			r.repairs = append(r.repairs, Record{Indices: idx, Spike: spike, Window: w})
		}
	}

	if err := c.SetIndices(start); err != nil {
		return nil, err
	}
	s.logger.Info("spike removal finished",
		slog.Int("positions", visited),
		slog.Int("repairs", len(r.repairs)),
		slog.Float64("threshold", threshold))
	return r, nil
}
