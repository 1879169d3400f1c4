package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inamate/svgpath/internal/db/dbgen"
)

type memStore struct {
	mu    sync.Mutex
	users map[string]dbgen.User
}

func newMemStore() *memStore {
	return &memStore{users: make(map[string]dbgen.User)}
}

func (m *memStore) CreateUser(_ context.Context, arg dbgen.CreateUserParams) (dbgen.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == arg.Email {
			return dbgen.User{}, &pgconn.PgError{Code: "23505"}
		}
	}
	u := dbgen.User{ID: arg.ID, Email: arg.Email, Password: arg.Password, DisplayName: arg.DisplayName}
	m.users[u.ID] = u
	return u, nil
}

func (m *memStore) GetUserByEmail(_ context.Context, email string) (dbgen.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return dbgen.User{}, pgx.ErrNoRows
}

func (m *memStore) GetUserByID(_ context.Context, id string) (dbgen.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return dbgen.User{}, pgx.ErrNoRows
	}
	return u, nil
}

func TestRegisterAndLogin(t *testing.T) {
	ctx := context.Background()
	svc := NewService(newMemStore(), "secret")

	reg, err := svc.Register(ctx, "ada@example.com", "correct horse", "Ada")
	require.NoError(t, err)
	assert.NotEmpty(t, reg.Token)
	assert.Equal(t, "Ada", reg.User.DisplayName)

	_, err = svc.Register(ctx, "ada@example.com", "another one", "Ada 2")
	assert.ErrorIs(t, err, ErrEmailTaken)

	login, err := svc.Login(ctx, "ada@example.com", "correct horse")
	require.NoError(t, err)
	assert.Equal(t, reg.User.ID, login.User.ID)

	_, err = svc.Login(ctx, "ada@example.com", "wrong password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = svc.Login(ctx, "nobody@example.com", "whatever1")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	userID, err := svc.ValidateToken(login.Token)
	require.NoError(t, err)
	assert.Equal(t, reg.User.ID, userID)

	user, err := svc.GetUser(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", user.Email)

	_, err = svc.GetUser(ctx, "user_missing")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestValidateToken(t *testing.T) {
	svc := NewService(newMemStore(), "secret")
	token, err := svc.issueToken("user_1")
	require.NoError(t, err)

	_, err = NewService(newMemStore(), "other").ValidateToken(token)
	assert.Error(t, err)

	_, err = svc.ValidateToken("not.a.token")
	assert.Error(t, err)

	svc.now = func() time.Time { return time.Now().Add(25 * time.Hour) }
	_, err = svc.ValidateToken(token)
	assert.Error(t, err)
}

func TestAuthMiddleware(t *testing.T) {
	svc := NewService(newMemStore(), "secret")
	token, err := svc.issueToken("user_1")
	require.NoError(t, err)

	var seen string
	h := svc.AuthMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = UserIDFromContext(r.Context())
	}))

	tests := []struct {
		name   string
		header string
		status int
	}{
		{"missing", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic abc", http.StatusUnauthorized},
		{"bad token", "Bearer nope", http.StatusUnauthorized},
		{"ok", "Bearer " + token, http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)
			assert.Equal(t, tt.status, rec.Code)
		})
	}
	assert.Equal(t, "user_1", seen)
}

func TestHandlerRegister(t *testing.T) {
	h := NewHandler(NewService(newMemStore(), "secret"))

	post := func(body any) *httptest.ResponseRecorder {
		data, _ := json.Marshal(body)
		rec := httptest.NewRecorder()
		h.Register(rec, httptest.NewRequest(http.MethodPost, "/auth/register", bytes.NewReader(data)))
		return rec
	}

	rec := post(registerRequest{Email: "a@b.c", Password: "short", DisplayName: "A"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = post(registerRequest{Email: "a@b.c", Password: "long enough", DisplayName: "A"})
	require.Equal(t, http.StatusCreated, rec.Code)
	var result AuthResult
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&result))
	assert.NotEmpty(t, result.Token)

	rec = post(registerRequest{Email: "a@b.c", Password: "long enough", DisplayName: "A"})
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = httptest.NewRecorder()
	h.Register(rec, httptest.NewRequest(http.MethodPost, "/auth/register", bytes.NewBufferString("{")))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandlerLoginAndMe(t *testing.T) {
	svc := NewService(newMemStore(), "secret")
	h := NewHandler(svc)
	_, err := svc.Register(context.Background(), "a@b.c", "long enough", "A")
	require.NoError(t, err)

	data, _ := json.Marshal(loginRequest{Email: "a@b.c", Password: "wrong pass"})
	rec := httptest.NewRecorder()
	h.Login(rec, httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewReader(data)))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	data, _ = json.Marshal(loginRequest{Email: "a@b.c", Password: "long enough"})
	rec = httptest.NewRecorder()
	h.Login(rec, httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewReader(data)))
	require.Equal(t, http.StatusOK, rec.Code)
	var result AuthResult
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&result))

	req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
	req.Header.Set("Authorization", "Bearer "+result.Token)
	rec = httptest.NewRecorder()
	svc.AuthMiddleware(http.HandlerFunc(h.Me)).ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	var me User
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&me))
	assert.Equal(t, "a@b.c", me.Email)
}
