package signal_test

import (
	"fmt"

	"github.com/cwbudde/algo-spectra/dsp/signal"
)

func ExampleSignal_Current() {
	s, err := signal.Full(1, []int{2, 3}, []int{4})
	if err != nil {
		panic(err)
	}
	if err := signal.AddSpike(s, []int{1, 0}, 1, 2); err != nil {
		panic(err)
	}
	if err := s.SetIndices([]int{1, 0}); err != nil {
		panic(err)
	}

	fmt.Println(s.Current())

	// Output:
	// [1 3 1 1]
}
