package document

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddPath(t *testing.T) {
	d := NewEmptyDrawing("drawing_1", "test", "root")
	d.AddPath("root", "p1", "M0 0 L1 1", IdentityTransform, Style{Fill: "red", Opacity: 1})
	d.AddPath("missing", "p2", "M0 0", IdentityTransform, Style{})

	root := d.Objects["root"]
	assert.Equal(t, []string{"p1"}, root.Children)
	assert.NotContains(t, d.Objects, "p2")

	p := d.Objects["p1"]
	require.NotNil(t, p.Parent)
	assert.Equal(t, "root", *p.Parent)
	var data PathData
	require.NoError(t, json.Unmarshal(p.Data, &data))
	assert.Equal(t, "M0 0 L1 1", data.D)
}

func TestAddShape(t *testing.T) {
	d := NewEmptyDrawing("drawing_1", "test", "root")
	d.AddShape("root", "tri", ObjectTypePolygon, PointsData{Points: "0,0 10,0 5,5"}, IdentityTransform, Style{Opacity: 1})

	tri := d.Objects["tri"]
	assert.Equal(t, ObjectTypePolygon, tri.Type)
	assert.JSONEq(t, `{"points":"0,0 10,0 5,5"}`, string(tri.Data))
	assert.Equal(t, []string{"tri"}, d.Objects["root"].Children)
}

func TestSampleDrawingIsConsistent(t *testing.T) {
	d := NewSampleDrawing()
	require.Contains(t, d.Objects, d.Root)

	// Every child points back at its parent.
	for id, node := range d.Objects {
		for _, child := range node.Children {
			c, ok := d.Objects[child]
			require.True(t, ok, "missing child %s of %s", child, id)
			require.NotNil(t, c.Parent)
			assert.Equal(t, id, *c.Parent)
		}
	}

	data, err := json.Marshal(d)
	require.NoError(t, err)
	var back Drawing
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, len(d.Objects), len(back.Objects))
}
