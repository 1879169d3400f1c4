package engine

import (
	"honnef.co/go/curve"

	"github.com/inamate/svgpath/internal/geom"
	"github.com/inamate/svgpath/internal/pathdata"
)

// SceneGraph is the resolved, render-ready state of a drawing.
type SceneGraph struct {
	Root      *SceneNode
	NodesById map[string]*SceneNode
	// Errors holds the objects that could not be built, by object ID.
	Errors map[string]error
	Dirty  bool // needs rebuild
}

// SceneNode is a resolved node ready for rendering.
// All transforms are computed, all properties are resolved (including inherited ones).
type SceneNode struct {
	ID   string
	Type string // "group", "shape"

	// Transform state
	WorldTransform geom.Matrix // computed world transform (parent * local)
	LocalTransform geom.Matrix

	// Inherited/resolved properties
	Opacity float64 // inherited * local
	Visible bool

	// Hierarchy
	Parent   *SceneNode
	Children []*SceneNode

	// Render data (resolved from the drawing)
	Commands    pathdata.Path // in local coordinates
	Fill        string
	Stroke      string
	StrokeWidth float64

	// Hit testing
	Bounds  geom.Rect     // axis-aligned bounding box in world space
	Outline curve.BezPath // geometry in world space
}

// NewSceneGraph creates an empty scene graph.
func NewSceneGraph() *SceneGraph {
	return &SceneGraph{
		NodesById: make(map[string]*SceneNode),
		Errors:    make(map[string]error),
		Dirty:     true,
	}
}
