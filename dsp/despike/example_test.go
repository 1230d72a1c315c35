package despike_test

import (
	"fmt"
	"log/slog"

	"github.com/cwbudde/algo-spectra/dsp/despike"
	"github.com/cwbudde/algo-spectra/dsp/signal"
)

func ExampleRun() {
	s, _ := signal.Full(1, []int{2, 3}, []int{30})
	_ = signal.AddSpike(s, []int{1, 0}, 1, 2)
	_ = signal.AddSpike(s, []int{0, 2}, 29, 1)
	_ = signal.AddSpike(s, []int{1, 2}, 14, 1)

	r, err := despike.Run(s,
		despike.WithThreshold(0.5),
		despike.WithAddNoise(false),
		despike.WithLogger(slog.New(slog.DiscardHandler)))
	if err != nil {
		fmt.Println(err)
		return
	}
	for _, rec := range r.Repairs() {
		fmt.Printf("%v spike at %d, repaired [%d,%d]\n", rec.Indices, rec.Spike.Location, rec.Window.Lo, rec.Window.Hi)
	}
	// Output:
	// [0 2] spike at 29, repaired [24,29]
	// [1 0] spike at 1, repaired [0,6]
	// [1 2] spike at 14, repaired [9,19]
}

func ExampleSession() {
	s, _ := signal.Full(0, []int{4}, []int{16})
	_ = signal.AddSpike(s, []int{2}, 5, 10)

	sess, _ := despike.NewSession(s, despike.WithThreshold(1), despike.WithAddNoise(false))
	found, _ := sess.Find(despike.Forward)
	spike, _ := sess.Spike()
	fmt.Println(found, s.Indices(), spike.Location)

	found, _ = sess.Apply()
	current, _ := s.At([]int{2})
	fmt.Println(found, sess.State(), current[5])
	// Output:
	// true [2] 5
	// false no spike 0
}
