package preview

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func recv(t *testing.T, c *Client) Message {
	t.Helper()
	select {
	case data, ok := <-c.send:
		require.True(t, ok, "send queue closed")
		var msg Message
		require.NoError(t, json.Unmarshal(data, &msg))
		return msg
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for message")
		return Message{}
	}
}

func requireClosed(t *testing.T, c *Client) {
	t.Helper()
	select {
	case _, ok := <-c.send:
		require.False(t, ok)
	case <-time.After(2 * time.Second):
		t.Fatal("send queue not closed")
	}
}

func payload[T any](t *testing.T, msg Message) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(msg.Payload, &v))
	return v
}

func stored(pathID string) (string, error) {
	if pathID == "path_saved" {
		return "M0 0 L1 1", nil
	}
	return "", errors.New("no such path")
}

func TestHubEditBroadcast(t *testing.T) {
	hub := NewHub(nil, stored, 0)
	go hub.Run()
	defer hub.Stop()

	c1 := NewClient(hub, nil, "u1", "One", "path_saved", "c1")
	require.True(t, hub.Register(c1))
	assert.Equal(t, TypeWelcome, recv(t, c1).Type)
	assert.Equal(t, TypePresenceState, recv(t, c1).Type)
	seeded := recv(t, c1)
	require.Equal(t, TypePathRendered, seeded.Type)
	assert.Equal(t, "M0 0 L1 1", payload[RenderedPayload](t, seeded).D)

	c2 := NewClient(hub, nil, "u2", "Two", "path_saved", "c2")
	require.True(t, hub.Register(c2))
	assert.Equal(t, TypeWelcome, recv(t, c2).Type)
	assert.Equal(t, TypePresenceState, recv(t, c2).Type)
	assert.Equal(t, TypePathRendered, recv(t, c2).Type)
	join := recv(t, c1)
	assert.Equal(t, TypePresenceJoin, join.Type)
	assert.Equal(t, "Two", payload[PresenceJoinPayload](t, join).DisplayName)

	hub.handleMessage(c1, &Message{Type: TypePathEdit, Seq: 7, Payload: json.RawMessage(`{"d":"M0 0 H5 V2"}`)})
	for _, c := range []*Client{c1, c2} {
		msg := recv(t, c)
		require.Equal(t, TypePathRendered, msg.Type)
		assert.Equal(t, int64(1), msg.Seq)
		assert.Equal(t, "c1", msg.ClientID)
		r := payload[RenderedPayload](t, msg)
		assert.Equal(t, 5.0, r.Bounds.Width)
		assert.Equal(t, 2.0, r.Bounds.Height)
		assert.Len(t, r.Ops, 3)
	}

	hub.handleMessage(c2, &Message{Type: TypePathEdit, Seq: 9, Payload: json.RawMessage(`{"d":"M0 0 Z 5 6"}`)})
	failed := recv(t, c2)
	require.Equal(t, TypePathError, failed.Type)
	assert.Equal(t, int64(9), failed.Seq)
	perr := payload[PathErrorPayload](t, failed)
	assert.Equal(t, "5 6", perr.Remaining)
	assert.Equal(t, 7, perr.Offset)
	assert.Empty(t, c1.send)

	hub.handleMessage(c2, &Message{Type: "bogus"})
	assert.Equal(t, TypeError, recv(t, c2).Type)

	hub.Unregister(c2)
	requireClosed(t, c2)
	leave := recv(t, c1)
	assert.Equal(t, TypePresenceLeave, leave.Type)
	assert.Equal(t, "u2", leave.UserID)

	c3 := NewClient(hub, nil, "u3", "Three", "path_saved", "c3")
	require.True(t, hub.Register(c3))
	assert.Equal(t, TypeWelcome, recv(t, c3).Type)
	assert.Equal(t, TypePresenceState, recv(t, c3).Type)
	latest := recv(t, c3)
	assert.Equal(t, "M0 0 H5 V2", payload[RenderedPayload](t, latest).D)
	assert.Equal(t, int64(1), latest.Seq)
}

func TestHubPresenceAndLimits(t *testing.T) {
	hub := NewHub(nil, nil, 16)
	go hub.Run()
	defer hub.Stop()

	c1 := NewClient(hub, nil, "u1", "One", "path_new", "c1")
	c2 := NewClient(hub, nil, "u2", "Two", "path_new", "c2")
	require.True(t, hub.Register(c1))
	recv(t, c1) // welcome
	recv(t, c1) // presence state
	require.True(t, hub.Register(c2))
	recv(t, c2)
	recv(t, c2)
	recv(t, c1) // join

	hub.handleMessage(c1, &Message{Type: TypePresenceUpdate, Payload: json.RawMessage(`{"cursor":{"x":1,"y":2},"command":3}`)})
	update := recv(t, c2)
	require.Equal(t, TypePresenceUpdate, update.Type)
	p := payload[PresencePayload](t, update)
	assert.Equal(t, "One", p.DisplayName)
	require.NotNil(t, p.Command)
	assert.Equal(t, 3, *p.Command)

	hub.handleMessage(c1, &Message{Type: TypePathEdit, Payload: json.RawMessage(`{"d":"M0 0 L1 1 L2 2 L3 3"}`)})
	tooLong := recv(t, c1)
	require.Equal(t, TypePathError, tooLong.Type)
	assert.Contains(t, payload[PathErrorPayload](t, tooLong).Message, "too long")

	hub.Stop()
	requireClosed(t, c1)
	requireClosed(t, c2)
	assert.False(t, hub.Register(NewClient(hub, nil, "u4", "Four", "path_new", "c4")))
}

func TestHubSlowLoadDoesNotBlockOtherRooms(t *testing.T) {
	entered := make(chan struct{})
	release := make(chan struct{})
	load := func(pathID string) (string, error) {
		if pathID != "path_slow" {
			return "", errors.New("no such path")
		}
		close(entered)
		<-release
		return "M0 0 L2 2", nil
	}
	hub := NewHub(nil, load, 0)
	go hub.Run()
	defer hub.Stop()

	c1 := NewClient(hub, nil, "u1", "One", "path_fast", "c1")
	require.True(t, hub.Register(c1))
	recv(t, c1) // welcome
	recv(t, c1) // presence state

	slow := NewClient(hub, nil, "u2", "Two", "path_slow", "c2")
	slowDone := make(chan bool, 1)
	go func() { slowDone <- hub.Register(slow) }()
	<-entered

	c3 := NewClient(hub, nil, "u3", "Three", "path_fast", "c3")
	fastDone := make(chan bool, 1)
	go func() { fastDone <- hub.Register(c3) }()
	select {
	case ok := <-fastDone:
		require.True(t, ok)
	case <-time.After(2 * time.Second):
		t.Fatal("register blocked behind a slow load")
	}
	assert.Equal(t, TypePresenceJoin, recv(t, c1).Type)

	hub.handleMessage(c1, &Message{Type: TypePathEdit, Payload: json.RawMessage(`{"d":"M0 0 H1"}`)})
	assert.Equal(t, TypePathRendered, recv(t, c1).Type)

	close(release)
	require.True(t, <-slowDone)
	assert.Equal(t, TypeWelcome, recv(t, slow).Type)
	assert.Equal(t, TypePresenceState, recv(t, slow).Type)
	seeded := recv(t, slow)
	require.Equal(t, TypePathRendered, seeded.Type)
	assert.Equal(t, "M0 0 L2 2", payload[RenderedPayload](t, seeded).D)
}

func TestWebsocketPreview(t *testing.T) {
	hub := NewHub(nil, nil, 0)
	go hub.Run()
	defer hub.Stop()

	validate := func(token string) (string, error) {
		if token == "good" {
			return "user_1", nil
		}
		return "", errors.New("bad token")
	}
	r := mux.NewRouter()
	r.Handle("/ws/paths/{pathId}", NewHandler(hub, validate, nil))
	srv := httptest.NewServer(r)
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	base := "ws" + strings.TrimPrefix(srv.URL, "http")

	_, resp, err := websocket.Dial(ctx, base+"/ws/paths/path_1?token=bad", nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	conn, _, err := websocket.Dial(ctx, base+"/ws/paths/path_1?token=good&name=Ada", nil)
	require.NoError(t, err)
	defer conn.Close(websocket.StatusNormalClosure, "")

	var msg Message
	require.NoError(t, wsjson.Read(ctx, conn, &msg))
	require.Equal(t, TypeWelcome, msg.Type)
	assert.Equal(t, "user_1", payload[WelcomePayload](t, msg).UserID)
	require.NoError(t, wsjson.Read(ctx, conn, &msg))
	require.Equal(t, TypePresenceState, msg.Type)

	edit := Message{Type: TypePathEdit, Seq: 1, Payload: json.RawMessage(`{"d":"m0 0 c1 1 2 2 3 3"}`)}
	require.NoError(t, wsjson.Write(ctx, conn, edit))
	require.NoError(t, wsjson.Read(ctx, conn, &msg))
	require.Equal(t, TypePathRendered, msg.Type)
	assert.Equal(t, "path_1", msg.PathID)
	assert.Equal(t, "user_1", msg.UserID)
	assert.Equal(t, map[string]int{"MoveTo": 1, "CubicBezier": 1}, payload[RenderedPayload](t, msg).Counts)
}
