package engine

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"honnef.co/go/curve"

	"github.com/inamate/svgpath/internal/canvas"
	"github.com/inamate/svgpath/internal/document"
	"github.com/inamate/svgpath/internal/geom"
	"github.com/inamate/svgpath/internal/pathdata"
	"github.com/inamate/svgpath/internal/render"
)

// BuildSceneGraph builds a render-ready scene graph from the drawing. Path
// data is parsed through cache, which may be nil. Objects whose geometry
// cannot be built are recorded in SceneGraph.Errors and left without
// geometry; they never abort the build.
func BuildSceneGraph(d *document.Drawing, cache *PathCache) *SceneGraph {
	sg := NewSceneGraph()
	if d == nil {
		return sg
	}
	if cache == nil {
		cache = NewPathCache(0)
	}

	rootObj, ok := d.Objects[d.Root]
	if !ok {
		return sg
	}

	b := &builder{drawing: d, cache: cache, sg: sg}
	sg.Root = b.buildNode(&rootObj, nil, geom.Identity(), 1.0)
	sg.Dirty = false

	return sg
}

type builder struct {
	drawing *document.Drawing
	cache   *PathCache
	sg      *SceneGraph
}

// buildNode recursively builds a SceneNode from a drawing ObjectNode.
func (b *builder) buildNode(obj *document.ObjectNode, parent *SceneNode, parentWorldTransform geom.Matrix, parentOpacity float64) *SceneNode {
	if !obj.Visible {
		return nil
	}

	t := obj.Transform
	localMatrix := geom.FromTransform(t.X, t.Y, t.SX, t.SY, t.R, t.AX, t.AY)
	worldMatrix := parentWorldTransform.Multiply(localMatrix)

	opacity := parentOpacity * obj.Style.Opacity

	node := &SceneNode{
		ID:             obj.ID,
		Type:           mapObjectType(obj.Type),
		LocalTransform: localMatrix,
		WorldTransform: worldMatrix,
		Opacity:        opacity,
		Visible:        true,
		Parent:         parent,
		Fill:           obj.Style.Fill,
		Stroke:         obj.Style.Stroke,
		StrokeWidth:    obj.Style.StrokeWidth,
	}

	if node.Type == "shape" {
		cmds, err := b.shapeCommands(obj)
		if err == nil {
			node.Outline, node.Bounds, err = outline(cmds, worldMatrix)
		}
		if err != nil {
			slog.Debug("skipping object geometry", "objectId", obj.ID, "error", err)
			b.sg.Errors[obj.ID] = err
		} else {
			node.Commands = cmds
		}
	}

	b.sg.NodesById[obj.ID] = node

	for _, childID := range obj.Children {
		childObj, ok := b.drawing.Objects[childID]
		if !ok {
			continue
		}

		childNode := b.buildNode(&childObj, node, worldMatrix, opacity)
		if childNode != nil {
			node.Children = append(node.Children, childNode)

			// Expand bounds to include children
			if !childNode.Bounds.IsEmpty() {
				node.Bounds = node.Bounds.Union(childNode.Bounds)
			}
		}
	}

	return node
}

// mapObjectType converts a drawing ObjectType to a scene graph type string.
func mapObjectType(objType document.ObjectType) string {
	switch objType {
	case document.ObjectTypeGroup:
		return "group"
	case document.ObjectTypeRect, document.ObjectTypeEllipse, document.ObjectTypePath,
		document.ObjectTypeCircle, document.ObjectTypeLine,
		document.ObjectTypePolyline, document.ObjectTypePolygon:
		return "shape"
	default:
		return "unknown"
	}
}

func (b *builder) shapeCommands(obj *document.ObjectNode) (pathdata.Path, error) {
	switch obj.Type {
	case document.ObjectTypePath:
		var data document.PathData
		if err := json.Unmarshal(obj.Data, &data); err != nil {
			return nil, fmt.Errorf("decode path data: %w", err)
		}
		return b.cache.Parse(data.D)

	case document.ObjectTypeRect:
		var data document.RectData
		if err := json.Unmarshal(obj.Data, &data); err != nil {
			return nil, fmt.Errorf("decode rect data: %w", err)
		}
		return b.cache.Parse(RectPathData(data.Width, data.Height))

	case document.ObjectTypeEllipse:
		var data document.EllipseData
		if err := json.Unmarshal(obj.Data, &data); err != nil {
			return nil, fmt.Errorf("decode ellipse data: %w", err)
		}
		return b.cache.Parse(EllipsePathData(data.RX, data.RY))

	case document.ObjectTypeCircle:
		var data document.CircleData
		if err := json.Unmarshal(obj.Data, &data); err != nil {
			return nil, fmt.Errorf("decode circle data: %w", err)
		}
		return b.cache.Parse(CirclePathData(data.CX, data.CY, data.R))

	case document.ObjectTypeLine:
		var data document.LineData
		if err := json.Unmarshal(obj.Data, &data); err != nil {
			return nil, fmt.Errorf("decode line data: %w", err)
		}
		return b.cache.Parse(LinePathData(data.X1, data.Y1, data.X2, data.Y2))

	case document.ObjectTypePolyline, document.ObjectTypePolygon:
		var data document.PointsData
		if err := json.Unmarshal(obj.Data, &data); err != nil {
			return nil, fmt.Errorf("decode points data: %w", err)
		}
		d, err := PointsPathData(data.Points, obj.Type == document.ObjectTypePolygon)
		if err != nil {
			return nil, err
		}
		return b.cache.Parse(d)
	}
	return nil, nil
}

// outline replays cmds under the world transform and returns the resulting
// geometry with its bounding box.
func outline(cmds pathdata.Path, world geom.Matrix) (curve.BezPath, geom.Rect, error) {
	pb := &canvas.PathBuilder{}
	c := canvas.New(pb)
	c.SetMatrix(world)
	if err := render.Replay(cmds, c); err != nil {
		return nil, geom.Rect{}, err
	}
	x0, y0, x1, y1, ok := pb.Bounds()
	if !ok {
		return pb.Path, geom.Rect{}, nil
	}
	return pb.Path, geom.RectFromPoints(x0, y0, x1, y1), nil
}
