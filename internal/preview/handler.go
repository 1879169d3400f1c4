package preview

import (
	"log/slog"
	"net/http"

	"github.com/coder/websocket"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

// TokenValidator returns the user ID a token was issued for.
type TokenValidator func(token string) (string, error)

type Handler struct {
	hub            *Hub
	validate       TokenValidator
	originPatterns []string
}

// NewHandler serves /ws/paths/{pathId}. A request without a token joins
// anonymously; a request with an invalid token is rejected.
func NewHandler(hub *Hub, validate TokenValidator, originPatterns []string) *Handler {
	return &Handler{hub: hub, validate: validate, originPatterns: originPatterns}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	pathID := mux.Vars(r)["pathId"]
	if pathID == "" {
		http.Error(w, "missing path id", http.StatusBadRequest)
		return
	}

	userID := "anon-" + uuid.New().String()[:8]
	displayName := "Anonymous"
	if token := r.URL.Query().Get("token"); token != "" {
		if h.validate == nil {
			http.Error(w, "invalid token", http.StatusUnauthorized)
			return
		}
		var err error
		userID, err = h.validate(token)
		if err != nil {
			http.Error(w, "invalid token", http.StatusUnauthorized)
			return
		}
		displayName = r.URL.Query().Get("name")
		if displayName == "" {
			displayName = userID
		}
	}

	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: h.originPatterns,
	})
	if err != nil {
		slog.Error("websocket accept", "error", err)
		return
	}

	client := NewClient(h.hub, conn, userID, displayName, pathID, uuid.New().String())
	if !h.hub.Register(client) {
		conn.Close(websocket.StatusGoingAway, "server shutting down")
		return
	}

	ctx := r.Context()
	go client.WritePump(ctx)
	client.ReadPump(ctx)
}
