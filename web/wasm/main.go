//go:build js && wasm

package main

import (
	"syscall/js"

	"github.com/cwbudde/algo-signalchain/dsp/signalchain"
	"github.com/cwbudde/algo-signalchain/internal/webdemo"
)

var (
	engine *webdemo.Engine
	funcs  []js.Func
	block  []float32
)

func main() {
	api := js.Global().Get("Object").New()
	api.Set("init", export(func(args []js.Value) any {
		sr := 48000.0
		if len(args) > 0 {
			sr = args[0].Float()
		}
		e, err := webdemo.NewEngine(sr)
		if err != nil {
			return err.Error()
		}
		engine = e
		return js.Null()
	}))

	api.Set("setParams", export(func(args []js.Value) any {
		if engine == nil || len(args) < 1 {
			return js.Null()
		}
		engine.SetParams(paramsFromJS(args[0], engine.Params()))
		return js.Null()
	}))

	// process(Float32Array[, params]) rewrites the array in place.
	api.Set("process", export(func(args []js.Value) any {
		if engine == nil || len(args) < 1 {
			return js.Null()
		}
		if len(args) > 1 {
			engine.SetParams(paramsFromJS(args[1], engine.Params()))
		}

		arr := args[0]
		n := arr.Length()
		if cap(block) < n {
			block = make([]float32, n)
		}
		block = block[:n]
		for i := 0; i < n; i++ {
			block[i] = float32(arr.Index(i).Float())
		}
		engine.Process(block)
		for i := 0; i < n; i++ {
			arr.SetIndex(i, block[i])
		}
		return js.Null()
	}))

	api.Set("reset", export(func(args []js.Value) any {
		if engine != nil {
			engine.Reset()
		}
		return js.Null()
	}))

	api.Set("setSpectrum", export(func(args []js.Value) any {
		if engine == nil || len(args) < 1 {
			return js.Null()
		}
		p := args[0]
		err := engine.SetSpectrum(webdemo.SpectrumParams{
			FFTSize:   p.Get("fftSize").Int(),
			Overlap:   p.Get("overlap").Float(),
			Smoothing: p.Get("smoothing").Float(),
			Window:    p.Get("window").String(),
		})
		if err != nil {
			return err.Error()
		}
		return js.Null()
	}))

	api.Set("responseCurve", export(func(args []js.Value) any {
		if engine == nil || len(args) < 1 {
			return js.Global().Get("Float32Array").New(0)
		}
		return curveToJS(engine.ResponseCurveDB(floatsFromJS(args[0])))
	}))

	api.Set("spectrumCurve", export(func(args []js.Value) any {
		if engine == nil || len(args) < 1 {
			return js.Global().Get("Float32Array").New(0)
		}
		return curveToJS(engine.SpectrumCurveDB(floatsFromJS(args[0])))
	}))

	api.Set("peak", export(func(args []js.Value) any {
		if engine == nil {
			return 0
		}
		return engine.Peak()
	}))

	api.Set("bufferSize", export(func(args []js.Value) any {
		if engine == nil {
			return 0
		}
		return engine.BufferSizeBytes()
	}))

	api.Set("memoryUsage", export(func(args []js.Value) any {
		if engine == nil {
			return 0
		}
		return engine.MemoryUsageBytes()
	}))

	js.Global().Set("AlgoSignalChain", api)
	select {}
}

// paramsFromJS reads the known keys of obj over base, so callers may send
// only the controls that changed.
func paramsFromJS(obj js.Value, base signalchain.Params) signalchain.Params {
	read := func(key string, dst *float64) {
		if v := obj.Get(key); v.Type() == js.TypeNumber {
			*dst = v.Float()
		}
	}
	read("gain", &base.Gain)
	read("lpfCutoff", &base.LowpassCutoff)
	read("hpfCutoff", &base.HighpassCutoff)
	read("delayTime", &base.DelayTime)
	read("delayFeedback", &base.DelayFeedback)
	read("delayMix", &base.DelayMix)
	read("distortion", &base.Distortion)
	return base
}

func floatsFromJS(arr js.Value) []float64 {
	out := make([]float64, arr.Length())
	for i := range out {
		out[i] = arr.Index(i).Float()
	}
	return out
}

func curveToJS(values []float64) js.Value {
	arr := js.Global().Get("Float32Array").New(len(values))
	for i, v := range values {
		arr.SetIndex(i, v)
	}
	return arr
}

func export(fn func([]js.Value) any) js.Func {
	f := js.FuncOf(func(_ js.Value, args []js.Value) any {
		return fn(args)
	})
	funcs = append(funcs, f)
	return f
}
