//go:build js && wasm

package main

import (
	"encoding/json"
	"errors"
	"syscall/js"

	"github.com/inamate/svgpath/internal/engine"
	"github.com/inamate/svgpath/internal/pathdata"
)

var eng *engine.Engine

func main() {
	eng = engine.NewEngine()

	// Create the engine API object
	svgpathEngine := js.Global().Get("Object").New()

	// --- Stateless path helpers ---
	svgpathEngine.Set("parsePath", js.FuncOf(parsePath))
	svgpathEngine.Set("renderPath", js.FuncOf(renderPath))

	// --- Commands (frontend → backend) ---
	svgpathEngine.Set("loadDrawing", js.FuncOf(loadDrawing))
	svgpathEngine.Set("updateDrawing", js.FuncOf(updateDrawing))
	svgpathEngine.Set("loadSampleDrawing", js.FuncOf(loadSampleDrawing))
	svgpathEngine.Set("setSelection", js.FuncOf(setSelection))

	// --- Queries (frontend ← backend) ---
	svgpathEngine.Set("render", js.FuncOf(render))
	svgpathEngine.Set("hitTest", js.FuncOf(hitTest))
	svgpathEngine.Set("getSelectionBounds", js.FuncOf(getSelectionBounds))
	svgpathEngine.Set("getDrawing", js.FuncOf(getDrawing))
	svgpathEngine.Set("getSelection", js.FuncOf(getSelection))
	svgpathEngine.Set("getErrors", js.FuncOf(getErrors))

	// Register on global scope
	js.Global().Set("svgpathEngine", svgpathEngine)

	// Signal that WASM is ready
	js.Global().Set("svgpathWasmReady", js.ValueOf(true))

	// Keep Go runtime alive
	select {}
}

// errorJSON encodes err for the frontend, with the parse position when
// err is a parse error.
func errorJSON(err error) string {
	out := map[string]any{"error": err.Error()}
	var perr *pathdata.ParseError
	if errors.As(err, &perr) {
		out["remaining"] = perr.Remaining
		out["offset"] = perr.Offset
	}
	data, _ := json.Marshal(out)
	return string(data)
}

func toJSON(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		return errorJSON(err)
	}
	return string(data)
}

// --- Path helpers ---

func parsePath(this js.Value, args []js.Value) any {
	if len(args) < 1 {
		return js.ValueOf(errorJSON(errors.New("missing path data")))
	}
	r, err := eng.RenderPath(args[0].String())
	if err != nil {
		return js.ValueOf(errorJSON(err))
	}
	return js.ValueOf(toJSON(map[string]any{
		"commands":   r.Commands,
		"normalized": r.Commands.String(),
		"counts":     r.Commands.Counts(),
	}))
}

func renderPath(this js.Value, args []js.Value) any {
	if len(args) < 1 {
		return js.ValueOf(errorJSON(errors.New("missing path data")))
	}
	r, err := eng.RenderPath(args[0].String())
	if err != nil {
		return js.ValueOf(errorJSON(err))
	}
	return js.ValueOf(toJSON(r))
}

// --- Command Handlers ---

func loadDrawing(this js.Value, args []js.Value) any {
	if len(args) < 1 {
		return js.ValueOf(map[string]any{"error": "missing drawing JSON"})
	}

	if err := eng.LoadDrawing(args[0].String()); err != nil {
		return js.ValueOf(map[string]any{"error": err.Error()})
	}

	return js.ValueOf(map[string]any{"ok": true})
}

func updateDrawing(this js.Value, args []js.Value) any {
	if len(args) < 1 {
		return js.ValueOf(map[string]any{"error": "missing drawing JSON"})
	}

	if err := eng.UpdateDrawing(args[0].String()); err != nil {
		return js.ValueOf(map[string]any{"error": err.Error()})
	}

	return js.ValueOf(map[string]any{"ok": true})
}

func loadSampleDrawing(this js.Value, args []js.Value) any {
	eng.LoadSampleDrawing()
	return js.ValueOf(map[string]any{"ok": true})
}

func setSelection(this js.Value, args []js.Value) any {
	if len(args) < 1 || args[0].Type() != js.TypeObject {
		eng.SetSelection(nil)
		return nil
	}

	arr := args[0]
	ids := make([]string, arr.Length())
	for i := range ids {
		ids[i] = arr.Index(i).String()
	}
	eng.SetSelection(ids)
	return nil
}

// --- Query Handlers ---

func render(this js.Value, args []js.Value) any {
	return js.ValueOf(eng.Render())
}

func hitTest(this js.Value, args []js.Value) any {
	if len(args) < 2 {
		return js.ValueOf("")
	}
	return js.ValueOf(eng.HitTest(args[0].Float(), args[1].Float()))
}

func getSelectionBounds(this js.Value, args []js.Value) any {
	return js.ValueOf(eng.GetSelectionBounds())
}

func getDrawing(this js.Value, args []js.Value) any {
	return js.ValueOf(eng.GetDrawing())
}

func getSelection(this js.Value, args []js.Value) any {
	return js.ValueOf(eng.GetSelection())
}

func getErrors(this js.Value, args []js.Value) any {
	return js.ValueOf(toJSON(eng.Errors()))
}
