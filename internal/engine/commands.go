package engine

import (
	"encoding/json"
	"log/slog"

	"honnef.co/go/curve"

	"github.com/inamate/svgpath/internal/canvas"
	"github.com/inamate/svgpath/internal/geom"
	"github.com/inamate/svgpath/internal/render"
)

// DrawCommand represents a single drawing operation for the frontend to execute.
// The frontend receives a list of these and executes them on a Canvas2D context.
type DrawCommand struct {
	Op          string      `json:"op"`                    // Operation: "path"
	ObjectID    string      `json:"objectId,omitempty"`    // For hit correlation
	Transform   []float64   `json:"transform,omitempty"`   // [a, b, c, d, e, f] affine matrix
	Path        []canvas.Op `json:"path,omitempty"`        // Path data for "path" ops
	Fill        string      `json:"fill,omitempty"`        // Fill color
	Stroke      string      `json:"stroke,omitempty"`      // Stroke color
	StrokeWidth float64     `json:"strokeWidth,omitempty"` // Stroke width
	Opacity     float64     `json:"opacity,omitempty"`     // Global alpha
}

// CompileDrawCommands generates a draw command buffer from a scene graph.
// Commands are in painter's order (back to front).
func CompileDrawCommands(sg *SceneGraph) []DrawCommand {
	if sg == nil || sg.Root == nil {
		return nil
	}

	var commands []DrawCommand
	compileNode(sg.Root, &commands)
	return commands
}

// compileNode recursively generates draw commands for a node and its children.
func compileNode(node *SceneNode, commands *[]DrawCommand) {
	if node == nil || !node.Visible {
		return
	}

	if len(node.Commands) > 0 {
		rec := &canvas.Recorder{}
		if err := render.Replay(node.Commands, canvas.New(rec)); err != nil {
			slog.Debug("skipping object in draw commands", "objectId", node.ID, "error", err)
		} else {
			*commands = append(*commands, DrawCommand{
				Op:          "path",
				ObjectID:    node.ID,
				Transform:   node.WorldTransform.ToSlice(),
				Path:        rec.Ops(),
				Opacity:     node.Opacity,
				Fill:        node.Fill,
				Stroke:      node.Stroke,
				StrokeWidth: node.StrokeWidth,
			})
		}
	}

	for _, child := range node.Children {
		compileNode(child, commands)
	}
}

// DrawCommandsToJSON serializes draw commands to JSON.
func DrawCommandsToJSON(commands []DrawCommand) (string, error) {
	if commands == nil {
		return "[]", nil
	}
	data, err := json.Marshal(commands)
	if err != nil {
		return "[]", err
	}
	return string(data), nil
}

// HitTestResult contains information about a hit test.
type HitTestResult struct {
	ObjectID string  `json:"objectId"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
}

// HitTest performs a hit test on the scene graph at the given point.
// Returns the ID of the topmost (frontmost) object containing the point, or empty string.
func HitTest(sg *SceneGraph, x, y float64) string {
	if sg == nil || sg.Root == nil {
		return ""
	}

	return hitTestNode(sg.Root, x, y)
}

// hitTestNode recursively tests a node and its children.
// Children are tested first (they're on top in painter's order).
func hitTestNode(node *SceneNode, x, y float64) string {
	if node == nil || !node.Visible {
		return ""
	}

	for i := len(node.Children) - 1; i >= 0; i-- {
		if hit := hitTestNode(node.Children[i], x, y); hit != "" {
			return hit
		}
	}

	if len(node.Commands) > 0 && !node.Bounds.IsEmpty() && node.Bounds.Contains(x, y) {
		// Filled shapes must contain the point; stroke-only shapes hit
		// anywhere inside their bounds.
		if !isPaint(node.Fill) || closeSubpaths(node.Outline).Winding(curve.Point{X: x, Y: y}) != 0 {
			return node.ID
		}
	}

	return ""
}

// closeSubpaths returns p with every open sub-path closed, which is how a
// fill treats it.
func closeSubpaths(p curve.BezPath) curve.BezPath {
	out := make(curve.BezPath, 0, len(p)+1)
	open := false
	for _, el := range p {
		switch el.Kind {
		case curve.MoveToKind:
			if open {
				out.ClosePath()
			}
			open = false
		case curve.ClosePathKind:
			open = false
		default:
			open = true
		}
		out.Push(el)
	}
	if open {
		out.ClosePath()
	}
	return out
}

// isPaint reports whether a fill or stroke value paints anything.
func isPaint(s string) bool {
	return s != "" && s != "none" && s != "transparent"
}

// GetSelectionBounds returns the combined bounding box of the given object IDs.
func GetSelectionBounds(sg *SceneGraph, objectIDs []string) geom.Rect {
	if sg == nil || len(objectIDs) == 0 {
		return geom.Rect{}
	}

	var result geom.Rect
	first := true

	for _, id := range objectIDs {
		node, ok := sg.NodesById[id]
		if !ok || node.Bounds.IsEmpty() {
			continue
		}

		if first {
			result = node.Bounds
			first = false
		} else {
			result = result.Union(node.Bounds)
		}
	}

	return result
}

// RectToJSON serializes a Rect to JSON.
func RectToJSON(r geom.Rect) string {
	data, _ := json.Marshal(r)
	return string(data)
}
