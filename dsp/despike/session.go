package despike

import (
	"log/slog"

	"github.com/cwbudde/algo-spectra/dsp/interp"
)

// State is the state of an interactive Session.
type State int

const (
	// Idle is the state before the first Find.
	Idle State = iota
	// SpikeFound means the container index sits on a spike that Apply will repair.
	SpikeFound
	// NoSpike means the last sweep found nothing above the threshold.
	NoSpike
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case SpikeFound:
		return "spike found"
	case NoSpike:
		return "no spike"
	default:
		return "unknown"
	}
}

// Session walks a container interactively, one spike at a time.
//
// The container is owned by the session for its lifetime. A Session is not
// safe for concurrent use.
type Session struct {
	target
	s         settings
	threshold float64
	state     State
	spike     Spike
}

// NewSession validates c and the masks in opts and returns an Idle session.
// The container index is not moved.
func NewSession(c Container, opts ...Option) (*Session, error) {
	s := applyOptions(opts)
	t, err := newTarget(c, s)
	if err != nil {
		return nil, err
	}
	threshold, err := t.resolveThreshold(s)
	if err != nil {
		return nil, err
	}
	s.logger.Debug("despike session", "threshold", threshold, "auto", s.AutoThreshold)
	return &Session{target: t, s: s, threshold: threshold}, nil
}

// State returns the current state.
func (s *Session) State() State { return s.state }

// Spike returns the selected spike. ok is false unless the state is SpikeFound.
func (s *Session) Spike() (spike Spike, ok bool) {
	if s.state != SpikeFound {
		return Spike{}, false
	}
	return s.spike, true
}

// Find moves the container index to the next position, in direction dir,
// whose spectrum holds a spike. The sweep starts next to the current position,
// wraps around and ends on the current position itself.
//
// When nothing is found the index is left where it was, the state becomes
// NoSpike and Find returns false.
func (s *Session) Find(dir Direction) (bool, error) {
	start := s.c.Indices()
	for pos := range s.walk.cycle(s.walk.position(start), dir) {
		idx := s.walk.indices(pos)
		if err := s.c.SetIndices(idx); err != nil {
			return false, err
		}
		spike, ok := Detect(s.c.Current(), s.threshold, s.exclude, dir)
		if !ok {
			continue
		}
		s.state, s.spike = SpikeFound, spike
		s.s.logger.Debug("spike found",
			slog.Any("indices", idx),
			slog.Int("location", spike.Location),
			slog.Float64("jump", spike.Jump))
		return true, nil
	}

	if err := s.c.SetIndices(start); err != nil {
		return false, err
	}
	s.state, s.spike = NoSpike, Spike{}
	s.s.logger.Debug("no spike found", slog.Any("indices", start), slog.Float64("threshold", s.threshold))
	return false, nil
}

// Apply repairs the selected spike and then runs Find(Forward). It returns
// ErrNoSpikeSelected unless the state is SpikeFound. On a repair error the
// data and the selection are unchanged.
func (s *Session) Apply() (bool, error) {
	if s.state != SpikeFound {
		return false, ErrNoSpikeSelected
	}
	w, err := s.repairer(s.s).Repair(s.c.Current(), s.spike.Location)
	if err != nil {
		return false, err
	}
	s.s.logger.Debug("spike repaired",
		slog.Any("indices", s.c.Indices()),
		slog.Int("lo", w.Lo),
		slog.Int("hi", w.Hi),
		slog.String("interpolator", s.s.Interpolator.String()))
	return s.Find(Forward)
}

// Threshold returns the detection threshold in use.
func (s *Session) Threshold() float64 { return s.threshold }

// SetThreshold changes the threshold for the next Find. The index does not move.
func (s *Session) SetThreshold(v float64) error {
	if err := checkThreshold(v); err != nil {
		return err
	}
	s.threshold = v
	return nil
}

// SetAddNoise toggles noise injection for the next Apply.
func (s *Session) SetAddNoise(add bool) { s.s.AddNoise = add }

// SetSpikeWidth sets the repair half-width for the next Apply.
func (s *Session) SetSpikeWidth(width int) { s.s.SpikeWidth = width }

// SetInterpolator sets the interpolator kind for the next Apply.
// Invalid kinds are reported by Apply.
func (s *Session) SetInterpolator(kind interp.Kind) { s.s.Interpolator = kind }

// SetSplineOrder sets the spline order for the next Apply.
func (s *Session) SetSplineOrder(order int) { s.s.SplineOrder = order }

// Config returns the session parameters, with Threshold set to the one in use.
func (s *Session) Config() Config {
	cfg := s.s.Config
	cfg.Threshold = s.threshold
	if cfg.NoiseVariance != nil {
		v := *cfg.NoiseVariance
		cfg.NoiseVariance = &v
	}
	return cfg
}
