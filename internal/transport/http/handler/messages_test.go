package handler

import (
	"bytes"
	"context"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/json"
	"encoding/pem"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/swipe-api/internal/config"
	"github.com/swipe-api/internal/domain"
	jwtinfra "github.com/swipe-api/internal/infrastructure/jwt"
	"github.com/swipe-api/internal/transport/http/middleware"
)

// --- mock ---

type mockChatSvc struct{ mock.Mock }

func (m *mockChatSvc) Send(ctx context.Context, matchID, senderID, text string) (*domain.Message, error) {
	args := m.Called(ctx, matchID, senderID, text)
	if msg, _ := args.Get(0).(*domain.Message); msg != nil {
		return msg, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockChatSvc) List(ctx context.Context, matchID, callerID string, sinceSeq int64) ([]domain.Message, error) {
	args := m.Called(ctx, matchID, callerID, sinceSeq)
	if msgs, _ := args.Get(0).([]domain.Message); msgs != nil {
		return msgs, args.Error(1)
	}
	return nil, args.Error(1)
}

// --- helpers ---

// newTestJWTProvider generates a fresh RSA key pair and returns a *jwtinfra.Provider.
func newTestJWTProvider(t *testing.T) *jwtinfra.Provider {
	t.Helper()
	privKey, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	dir := t.TempDir()
	privPath := filepath.Join(dir, "private.pem")
	pubPath := filepath.Join(dir, "public.pem")

	privPEM := pem.EncodeToMemory(&pem.Block{Type: "RSA PRIVATE KEY", Bytes: x509.MarshalPKCS1PrivateKey(privKey)})
	require.NoError(t, os.WriteFile(privPath, privPEM, 0600))

	pubBytes, err := x509.MarshalPKIXPublicKey(&privKey.PublicKey)
	require.NoError(t, err)
	pubPEM := pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: pubBytes})
	require.NoError(t, os.WriteFile(pubPath, pubPEM, 0600))

	p, err := jwtinfra.NewProvider(&config.Config{
		JWTPrivateKeyPath: privPath,
		JWTPublicKeyPath:  pubPath,
		JWTExpiry:         24 * time.Hour,
	})
	require.NoError(t, err)
	return p
}

// bearerReq builds a request with a signed Bearer token for the given profileID.
func bearerReq(t *testing.T, p *jwtinfra.Provider, method, target, profileID string, body []byte) *http.Request {
	t.Helper()
	token, err := p.Sign(profileID)
	require.NoError(t, err)
	var r *http.Request
	if body != nil {
		r = httptest.NewRequest(method, target, bytes.NewReader(body))
	} else {
		r = httptest.NewRequest(method, target, nil)
	}
	r.Header.Set("Authorization", "Bearer "+token)
	return r
}

// withChiID injects a chi URL param "id" into the request context.
func withChiID(r *http.Request, id string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", id)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// serveAuthed wraps the handler with middleware.Auth before serving.
func serveAuthed(p *jwtinfra.Provider, h http.Handler, w http.ResponseWriter, r *http.Request) {
	middleware.Auth(p)(h).ServeHTTP(w, r)
}

// --- List tests ---

func TestListMessages_MissingClaims(t *testing.T) {
	svc := &mockChatSvc{}
	h := NewMessageHandler(svc)
	r := withChiID(httptest.NewRequest(http.MethodGet, "/v1/matches/m1/messages", nil), "m1")
	rr := httptest.NewRecorder()
	h.List(rr, r) // called directly, no claims in context
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestListMessages_InvalidSince(t *testing.T) {
	p := newTestJWTProvider(t)
	svc := &mockChatSvc{}
	h := NewMessageHandler(svc)

	r := bearerReq(t, p, http.MethodGet, "/v1/matches/m1/messages?since=abc", "p1", nil)
	r = withChiID(r, "m1")
	rr := httptest.NewRecorder()
	serveAuthed(p, http.HandlerFunc(h.List), rr, r)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestListMessages_PassesSinceSeq(t *testing.T) {
	p := newTestJWTProvider(t)
	svc := &mockChatSvc{}
	msgs := []domain.Message{
		{MatchID: "m1", Seq: 3, SenderID: "p2", Text: "hey"},
		{MatchID: "m1", Seq: 4, SenderID: "p1", Text: "hi"},
	}
	svc.On("List", mock.Anything, "m1", "p1", int64(2)).Return(msgs, nil)
	h := NewMessageHandler(svc)

	r := bearerReq(t, p, http.MethodGet, "/v1/matches/m1/messages?since=2", "p1", nil)
	r = withChiID(r, "m1")
	rr := httptest.NewRecorder()
	serveAuthed(p, http.HandlerFunc(h.List), rr, r)

	assert.Equal(t, http.StatusOK, rr.Code)
	var resp []domain.Message
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	require.Len(t, resp, 2)
	assert.Equal(t, int64(3), resp[0].Seq)
	svc.AssertExpectations(t)
}

func TestListMessages_EmptyIsJSONArray(t *testing.T) {
	p := newTestJWTProvider(t)
	svc := &mockChatSvc{}
	svc.On("List", mock.Anything, "m1", "p1", int64(0)).Return(nil, nil)
	h := NewMessageHandler(svc)

	r := bearerReq(t, p, http.MethodGet, "/v1/matches/m1/messages", "p1", nil)
	r = withChiID(r, "m1")
	rr := httptest.NewRecorder()
	serveAuthed(p, http.HandlerFunc(h.List), rr, r)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, "[]", rr.Body.String())
}

func TestListMessages_Forbidden(t *testing.T) {
	p := newTestJWTProvider(t)
	svc := &mockChatSvc{}
	svc.On("List", mock.Anything, "m1", "stranger", int64(0)).Return(nil, domain.ErrForbidden)
	h := NewMessageHandler(svc)

	r := bearerReq(t, p, http.MethodGet, "/v1/matches/m1/messages", "stranger", nil)
	r = withChiID(r, "m1")
	rr := httptest.NewRecorder()
	serveAuthed(p, http.HandlerFunc(h.List), rr, r)

	assert.Equal(t, http.StatusForbidden, rr.Code)
}

// --- Send tests ---

func TestSendMessage_HappyPath(t *testing.T) {
	p := newTestJWTProvider(t)
	svc := &mockChatSvc{}
	msg := &domain.Message{MatchID: "m1", Seq: 1, SenderID: "p1", Text: "hello"}
	svc.On("Send", mock.Anything, "m1", "p1", "hello").Return(msg, nil)
	h := NewMessageHandler(svc)

	body, _ := json.Marshal(domain.SendMessageRequest{Text: "hello"})
	r := bearerReq(t, p, http.MethodPost, "/v1/matches/m1/messages", "p1", body)
	r = withChiID(r, "m1")
	rr := httptest.NewRecorder()
	serveAuthed(p, http.HandlerFunc(h.Send), rr, r)

	assert.Equal(t, http.StatusCreated, rr.Code)
	var resp domain.Message
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	assert.Equal(t, int64(1), resp.Seq)
	svc.AssertExpectations(t)
}

func TestSendMessage_UnknownMatch(t *testing.T) {
	p := newTestJWTProvider(t)
	svc := &mockChatSvc{}
	svc.On("Send", mock.Anything, "missing", "p1", "hello").Return(nil, domain.ErrNotFound)
	h := NewMessageHandler(svc)

	body, _ := json.Marshal(domain.SendMessageRequest{Text: "hello"})
	r := bearerReq(t, p, http.MethodPost, "/v1/matches/missing/messages", "p1", body)
	r = withChiID(r, "missing")
	rr := httptest.NewRecorder()
	serveAuthed(p, http.HandlerFunc(h.Send), rr, r)

	assert.Equal(t, http.StatusNotFound, rr.Code)
}
