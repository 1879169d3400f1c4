package document

import (
	"encoding/json"

	"github.com/inamate/svgpath/internal/typeid"
)

func NewSampleDrawing() *Drawing {
	rootID := typeid.NewObjectID()
	rectID := typeid.NewObjectID()
	ellipseID := typeid.NewObjectID()
	heartID := typeid.NewObjectID()
	waveID := typeid.NewObjectID()
	starID := typeid.NewObjectID()

	// Badge group
	badgeID := typeid.NewObjectID()
	badgeRingID := typeid.NewObjectID()
	badgeTickID := typeid.NewObjectID()

	rootIDPtr := &rootID
	badgeIDPtr := &badgeID

	return &Drawing{
		ID:         typeid.NewDrawingID(),
		Name:       "Sample",
		Width:      1280,
		Height:     720,
		Background: "#1a1a2e",
		Root:       rootID,
		Objects: map[string]ObjectNode{
			rootID: {
				ID:        rootID,
				Type:      ObjectTypeGroup,
				Parent:    nil,
				Children:  []string{rectID, ellipseID, heartID, waveID, starID, badgeID},
				Transform: IdentityTransform,
				Style: Style{
					Fill: "", Stroke: "", StrokeWidth: 0, Opacity: 1,
				},
				Visible: true,
				Data:    json.RawMessage(`{}`),
			},
			rectID: {
				ID:       rectID,
				Type:     ObjectTypeRect,
				Parent:   rootIDPtr,
				Children: []string{},
				Transform: Transform{
					X: 200, Y: 200, SX: 1, SY: 1, R: 0, AX: 0, AY: 0,
				},
				Style: Style{
					Fill: "#e94560", Stroke: "#000000", StrokeWidth: 2, Opacity: 1,
				},
				Visible: true,
				Data:    json.RawMessage(`{"width": 200, "height": 150}`),
			},
			ellipseID: {
				ID:       ellipseID,
				Type:     ObjectTypeEllipse,
				Parent:   rootIDPtr,
				Children: []string{},
				Transform: Transform{
					X: 640, Y: 360, SX: 1, SY: 1, R: 0, AX: 0, AY: 0,
				},
				Style: Style{
					Fill: "#0f3460", Stroke: "#16213e", StrokeWidth: 2, Opacity: 1,
				},
				Visible: true,
				Data:    json.RawMessage(`{"rx": 120, "ry": 80}`),
			},
			heartID: {
				ID:       heartID,
				Type:     ObjectTypePath,
				Parent:   rootIDPtr,
				Children: []string{},
				Transform: Transform{
					X: 900, Y: 200, SX: 2, SY: 2, R: 0, AX: 0, AY: 0,
				},
				Style: Style{
					Fill: "crimson", Stroke: "#2d6a4f", StrokeWidth: 1, Opacity: 1,
				},
				Visible: true,
				Data:    json.RawMessage(`{"d": "M10,30 A20,20 0,0,1 50,30 A20,20 0,0,1 90,30 Q90,60 50,90 Q10,60 10,30 z"}`),
			},
			waveID: {
				ID:       waveID,
				Type:     ObjectTypePath,
				Parent:   rootIDPtr,
				Children: []string{},
				Transform: Transform{
					X: 100, Y: 550, SX: 1, SY: 1, R: 0, AX: 0, AY: 0,
				},
				Style: Style{
					Fill: "none", Stroke: "#53d769", StrokeWidth: 4, Opacity: 0.8,
				},
				Visible: true,
				Data:    json.RawMessage(`{"d": "M0 0 C40 -60 80 -60 120 0 S200 60 240 0 s80 -60 120 0 T480 0 t120 0"}`),
			},
			starID: {
				ID:       starID,
				Type:     ObjectTypePolygon,
				Parent:   rootIDPtr,
				Children: []string{},
				Transform: Transform{
					X: 1100, Y: 520, SX: 1, SY: 1, R: 0, AX: 0, AY: 0,
				},
				Style: Style{
					Fill: "gold", Stroke: "#b8860b", StrokeWidth: 2, Opacity: 1,
				},
				Visible: true,
				Data:    json.RawMessage(`{"points": "0,-50 12,-16 48,-16 19,6 30,40 0,19 -30,40 -19,6 -48,-16 -12,-16"}`),
			},
			badgeID: {
				ID:       badgeID,
				Type:     ObjectTypeGroup,
				Parent:   rootIDPtr,
				Children: []string{badgeRingID, badgeTickID},
				Transform: Transform{
					X: 500, Y: 450, SX: 1, SY: 1, R: 15, AX: 0, AY: 0,
				},
				Style: Style{
					Fill: "", Stroke: "", StrokeWidth: 0, Opacity: 0.9,
				},
				Visible: true,
				Data:    json.RawMessage(`{}`),
			},
			badgeRingID: {
				ID:        badgeRingID,
				Type:      ObjectTypeCircle,
				Parent:    badgeIDPtr,
				Children:  []string{},
				Transform: IdentityTransform,
				Style: Style{
					Fill: "#f5a623", Stroke: "#c78400", StrokeWidth: 2, Opacity: 1,
				},
				Visible: true,
				Data:    json.RawMessage(`{"cx": 0, "cy": 0, "r": 40}`),
			},
			badgeTickID: {
				ID:        badgeTickID,
				Type:      ObjectTypePath,
				Parent:    badgeIDPtr,
				Children:  []string{},
				Transform: IdentityTransform,
				Style: Style{
					Fill: "none", Stroke: "white", StrokeWidth: 6, Opacity: 1,
				},
				Visible: true,
				Data:    json.RawMessage(`{"d": "m-18 0 l12 12 l24 -24"}`),
			},
		},
	}
}
