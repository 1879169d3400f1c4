package engine

import (
	"encoding/json"

	"github.com/inamate/svgpath/internal/document"
)

// Engine owns a drawing and its retained scene graph. It processes
// commands from the frontend and returns query results.
type Engine struct {
	// Drawing state
	drawing *document.Drawing
	cache   *PathCache

	// Retained scene graph
	sceneGraph *SceneGraph

	// Selection state (backend owns this)
	selection []string

	// Dirty flag - scene graph needs rebuild
	dirty bool
}

// NewEngine creates a new engine instance.
func NewEngine() *Engine {
	return &Engine{
		cache:      NewPathCache(0),
		sceneGraph: NewSceneGraph(),
		dirty:      true,
	}
}

// --- Commands (frontend → backend) ---

// LoadDrawing loads a drawing from JSON and clears the selection.
func (e *Engine) LoadDrawing(jsonData string) error {
	var d document.Drawing
	if err := json.Unmarshal([]byte(jsonData), &d); err != nil {
		return err
	}
	e.SetDrawing(&d)
	return nil
}

// UpdateDrawing reloads a drawing from JSON while preserving the selection.
func (e *Engine) UpdateDrawing(jsonData string) error {
	var d document.Drawing
	if err := json.Unmarshal([]byte(jsonData), &d); err != nil {
		return err
	}
	e.drawing = &d
	e.dirty = true
	return nil
}

// SetDrawing replaces the drawing and clears the selection.
func (e *Engine) SetDrawing(d *document.Drawing) {
	e.drawing = d
	e.selection = nil
	e.dirty = true
}

// LoadSampleDrawing loads the built-in sample drawing.
func (e *Engine) LoadSampleDrawing() {
	e.SetDrawing(document.NewSampleDrawing())
}

// SetSelection sets the selected object IDs.
func (e *Engine) SetSelection(ids []string) {
	e.selection = ids
}

// --- Queries (frontend ← backend) ---

// SceneGraph returns the scene graph, rebuilding it if the drawing changed.
func (e *Engine) SceneGraph() *SceneGraph {
	if e.drawing == nil {
		return e.sceneGraph
	}
	if e.dirty {
		e.sceneGraph = BuildSceneGraph(e.drawing, e.cache)
		e.dirty = false
	}
	return e.sceneGraph
}

// DrawCommands returns the compiled draw commands for the drawing.
func (e *Engine) DrawCommands() []DrawCommand {
	if e.drawing == nil {
		return nil
	}
	return CompileDrawCommands(e.SceneGraph())
}

// Render evaluates the scene graph and returns draw commands as JSON.
func (e *Engine) Render() string {
	result, _ := DrawCommandsToJSON(e.DrawCommands())
	return result
}

// HitTest performs a hit test at the given coordinates.
// Returns the object ID of the topmost hit, or empty string.
func (e *Engine) HitTest(x, y float64) string {
	return HitTest(e.SceneGraph(), x, y)
}

// HitTestJSON performs a hit test and returns the result as JSON.
func (e *Engine) HitTestJSON(x, y float64) string {
	data, _ := json.Marshal(HitTestResult{ObjectID: e.HitTest(x, y), X: x, Y: y})
	return string(data)
}

// GetSelectionBounds returns the bounding box of the current selection as JSON.
func (e *Engine) GetSelectionBounds() string {
	return RectToJSON(GetSelectionBounds(e.SceneGraph(), e.selection))
}

// Errors returns the messages of objects whose geometry could not be
// built, keyed by object ID.
func (e *Engine) Errors() map[string]string {
	sg := e.SceneGraph()
	out := make(map[string]string, len(sg.Errors))
	for id, err := range sg.Errors {
		out[id] = err.Error()
	}
	return out
}

// Drawing returns the loaded drawing, or nil.
func (e *Engine) Drawing() *document.Drawing {
	return e.drawing
}

// GetDrawing returns the full drawing as JSON (for debugging/sync).
func (e *Engine) GetDrawing() string {
	if e.drawing == nil {
		return "{}"
	}
	data, _ := json.Marshal(e.drawing)
	return string(data)
}

// GetSelection returns the current selection as JSON.
func (e *Engine) GetSelection() string {
	data, _ := json.Marshal(e.selection)
	return string(data)
}
