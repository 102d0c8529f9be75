package effects_test

import (
	"fmt"

	"github.com/cwbudde/algo-fxchain/dsp/buffer"
	"github.com/cwbudde/algo-fxchain/dsp/effects"
)

func ExampleDelay_Apply() {
	d, err := effects.NewDelay(2, 0.5, 0.3)
	if err != nil {
		fmt.Println(err)
		return
	}

	// 2 ms at 1 kHz: the tap reads 2 samples ahead over 4 samples.
	in, _ := buffer.FromSlice([]float64{1, 0, 0, 0}, 1000)
	out, _ := buffer.New(4, 1000)
	if err := d.Apply(in, out); err != nil {
		fmt.Println(err)
		return
	}

	fmt.Println(out.Samples())
	// Output:
	// [1 0 0.5 0]
}

func ExampleReverb_Apply() {
	r, err := effects.NewReverb(0.8, 0.5, 0.7)
	if err != nil {
		fmt.Println(err)
		return
	}

	in, _ := buffer.New(1024, 44100)
	_ = in.Set(0, 1)
	out, _ := buffer.New(1024, 44100)
	if err := r.Apply(in, out); err != nil {
		fmt.Println(err)
		return
	}

	for _, pos := range []int{0, 246, 560} {
		v, _ := out.At(pos)
		fmt.Printf("out[%d]=%g\n", pos, v)
	}
	// Output:
	// out[0]=1
	// out[246]=0.5
	// out[560]=0.5
}
