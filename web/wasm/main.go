//go:build js && wasm

package main

import (
	"syscall/js"

	"github.com/cwbudde/algo-dither/internal/webdemo"
)

var (
	engine *webdemo.Engine
	funcs  []js.Func
)

func main() {
	api := js.Global().Get("Object").New()

	// init(width, height, Uint8ClampedArray rgba)
	api.Set("init", export(func(args []js.Value) any {
		if len(args) < 3 {
			return "init: want width, height, pixels"
		}
		w, h := args[0].Int(), args[1].Int()
		pix := make([]byte, args[2].Length())
		js.CopyBytesToGo(pix, args[2])

		e, err := webdemo.NewEngineRGBA(w, h, pix)
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
		p := args[0]
		params := engine.Params()
		if v := p.Get("scale"); v.Truthy() {
			params.Scale = v.Int()
		}
		if v := p.Get("model"); v.Truthy() {
			params.Model = v.String()
		}
		if v := p.Get("kernel"); v.Truthy() {
			params.Kernel = v.String()
		}
		if v := p.Get("palette"); v.Truthy() {
			params.Palette = v.String()
		}
		if v := p.Get("strength"); v.Type() == js.TypeNumber {
			params.Strength = v.Float()
		}
		if err := engine.SetParams(params); err != nil {
			return err.Error()
		}
		return js.Null()
	}))

	api.Set("frame", export(func(args []js.Value) any {
		if engine == nil {
			return js.Null()
		}
		pix := engine.Frame()
		arr := js.Global().Get("Uint8ClampedArray").New(len(pix))
		js.CopyBytesToJS(arr, pix)

		out := js.Global().Get("Object").New()
		out.Set("width", engine.Width())
		out.Set("height", engine.Height())
		out.Set("data", arr)
		return out
	}))

	api.Set("tone", export(func(args []js.Value) any {
		if engine == nil {
			return js.Null()
		}
		rep, err := engine.Tone()
		if err != nil {
			return err.Error()
		}
		out := js.Global().Get("Object").New()
		out.Set("bias", rep.Bias)
		out.Set("rmse", rep.RMSE)
		out.Set("blurRmse", rep.BlurRMSE)
		return out
	}))

	js.Global().Set("AlgoDitherDemo", api)
	select {}
}

func export(fn func([]js.Value) any) js.Func {
	f := js.FuncOf(func(_ js.Value, args []js.Value) any {
		return fn(args)
	})
	funcs = append(funcs, f)
	return f
}
