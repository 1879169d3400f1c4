package document

import "encoding/json"

// Drawing is a tree of objects rendered onto a fixed-size surface.
type Drawing struct {
	ID         string                `json:"id"`
	Name       string                `json:"name"`
	Width      int                   `json:"width"`
	Height     int                   `json:"height"`
	Background string                `json:"background"`
	Root       string                `json:"root"`
	Objects    map[string]ObjectNode `json:"objects"`
}

type ObjectType string

const (
	ObjectTypeGroup    ObjectType = "Group"
	ObjectTypePath     ObjectType = "Path"
	ObjectTypeRect     ObjectType = "Rect"
	ObjectTypeEllipse  ObjectType = "Ellipse"
	ObjectTypeCircle   ObjectType = "Circle"
	ObjectTypeLine     ObjectType = "Line"
	ObjectTypePolyline ObjectType = "Polyline"
	ObjectTypePolygon  ObjectType = "Polygon"
)

type Transform struct {
	X  float64 `json:"x"`
	Y  float64 `json:"y"`
	SX float64 `json:"sx"`
	SY float64 `json:"sy"`
	R  float64 `json:"r"`
	AX float64 `json:"ax"`
	AY float64 `json:"ay"`
}

type Style struct {
	Fill        string  `json:"fill"`
	Stroke      string  `json:"stroke"`
	StrokeWidth float64 `json:"strokeWidth"`
	Opacity     float64 `json:"opacity"`
}

type ObjectNode struct {
	ID        string          `json:"id"`
	Type      ObjectType      `json:"type"`
	Parent    *string         `json:"parent"`
	Children  []string        `json:"children"`
	Transform Transform       `json:"transform"`
	Style     Style           `json:"style"`
	Visible   bool            `json:"visible"`
	Data      json.RawMessage `json:"data"`
}

// PathData is the data of a Path object: SVG path data in D.
type PathData struct {
	D string `json:"d"`
}

type RectData struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

type EllipseData struct {
	RX float64 `json:"rx"`
	RY float64 `json:"ry"`
}

// CircleData is centred on (CX, CY) in object space, unlike EllipseData.
type CircleData struct {
	CX float64 `json:"cx"`
	CY float64 `json:"cy"`
	R  float64 `json:"r"`
}

type LineData struct {
	X1 float64 `json:"x1"`
	Y1 float64 `json:"y1"`
	X2 float64 `json:"x2"`
	Y2 float64 `json:"y2"`
}

// PointsData is the data of Polyline and Polygon objects. Points holds an
// even number of coordinates separated by whitespace or commas.
type PointsData struct {
	Points string `json:"points"`
}

// IdentityTransform is the transform of an untransformed object.
var IdentityTransform = Transform{SX: 1, SY: 1}

// NewEmptyDrawing creates a drawing holding only its root group.
func NewEmptyDrawing(drawingID, name, rootID string) *Drawing {
	return &Drawing{
		ID:         drawingID,
		Name:       name,
		Width:      800,
		Height:     600,
		Background: "#ffffff",
		Root:       rootID,
		Objects: map[string]ObjectNode{
			rootID: {
				ID:        rootID,
				Type:      ObjectTypeGroup,
				Parent:    nil,
				Children:  []string{},
				Transform: IdentityTransform,
				Style:     Style{Opacity: 1},
				Visible:   true,
				Data:      json.RawMessage(`{}`),
			},
		},
	}
}

// AddPath appends a Path object holding d to the children of parentID and
// returns its ID.
func (d *Drawing) AddPath(parentID, objectID, pathData string, t Transform, s Style) string {
	return d.AddShape(parentID, objectID, ObjectTypePath, PathData{D: pathData}, t, s)
}

// AddShape appends an object of type typ with the JSON encoding of data to
// the children of parentID and returns its ID.
func (d *Drawing) AddShape(parentID, objectID string, typ ObjectType, data any, t Transform, s Style) string {
	raw, err := json.Marshal(data)
	if err != nil {
		raw = json.RawMessage(`{}`)
	}
	d.add(parentID, ObjectNode{
		ID:        objectID,
		Type:      typ,
		Children:  []string{},
		Transform: t,
		Style:     s,
		Visible:   true,
		Data:      raw,
	})
	return objectID
}

func (d *Drawing) add(parentID string, node ObjectNode) {
	parent, ok := d.Objects[parentID]
	if !ok {
		return
	}
	p := parentID
	node.Parent = &p
	parent.Children = append(parent.Children, node.ID)
	d.Objects[parentID] = parent
	d.Objects[node.ID] = node
}
