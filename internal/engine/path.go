package engine

import (
	"github.com/inamate/svgpath/internal/canvas"
	"github.com/inamate/svgpath/internal/geom"
	"github.com/inamate/svgpath/internal/pathdata"
	"github.com/inamate/svgpath/internal/render"
)

// PathRender is the result of rendering a single path string.
type PathRender struct {
	Commands pathdata.Path `json:"commands"`
	Ops      []canvas.Op   `json:"ops"`
	Bounds   geom.Rect     `json:"bounds"`
}

// RenderPath parses d and replays it onto an untransformed canvas,
// returning the Canvas2D operations and the tight bounding box. Parse errors
// are returned as *pathdata.ParseError.
func RenderPath(d string) (*PathRender, error) {
	return renderPath(d, nil)
}

func renderPath(d string, cache *PathCache) (*PathRender, error) {
	var (
		cmds pathdata.Path
		err  error
	)
	if cache != nil {
		cmds, err = cache.Parse(d)
	} else {
		cmds, err = pathdata.Parse(d)
	}
	if err != nil {
		return nil, err
	}

	rec := &canvas.Recorder{}
	pb := &canvas.PathBuilder{}
	if err := render.Replay(cmds, canvas.New(canvas.Tee(rec, pb))); err != nil {
		return nil, err
	}

	out := &PathRender{Commands: cmds, Ops: rec.Ops()}
	if x0, y0, x1, y1, ok := pb.Bounds(); ok {
		out.Bounds = geom.RectFromPoints(x0, y0, x1, y1)
	}
	if out.Ops == nil {
		out.Ops = []canvas.Op{}
	}
	return out, nil
}

// RenderPath is like the package-level RenderPath but parses through the
// engine's path cache.
func (e *Engine) RenderPath(d string) (*PathRender, error) {
	return renderPath(d, e.cache)
}

// Render is like RenderPath but parses through the cache. It is safe for
// concurrent use.
func (c *PathCache) Render(d string) (*PathRender, error) {
	return renderPath(d, c)
}
