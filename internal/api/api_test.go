package api_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pixelquest/accounts/internal/api"
	"github.com/pixelquest/accounts/internal/api/response"
	"github.com/pixelquest/accounts/internal/factory"
	"github.com/pixelquest/accounts/internal/identity"
)

// testServer creates a test server with all dependencies
type testServer struct {
	handler http.Handler
	app     *factory.TestApp
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

	app := factory.NewTestApp()

	router := api.NewRouter(api.RouterConfig{
		Logger:         logger,
		AccountService: app.AccountService,
		Verifier:       app.MockVerifier,
	})

	return &testServer{
		handler: router,
		app:     app,
	}
}

// allowToken registers a token with the mock verifier
func (ts *testServer) allowToken(token, uid, name, email string) {
	ts.app.MockVerifier.Allow(token, &identity.Claim{
		UID:   uid,
		Name:  name,
		Email: email,
	})
}

func (ts *testServer) request(method, path string, body any, token string) *httptest.ResponseRecorder {
	var reqBody *bytes.Buffer
	if body != nil {
		b, _ := json.Marshal(body)
		reqBody = bytes.NewBuffer(b)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rr := httptest.NewRecorder()
	ts.handler.ServeHTTP(rr, req)
	return rr
}

func TestHealthCheck(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/v1/health", nil, "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "ok")
}

func TestLoginCreatesAccount(t *testing.T) {
	ts := newTestServer(t)
	ts.allowToken("tok-alice", "ext-alice", "Alice", "alice@example.com")
	ts.app.MockRandom.QueueString("0001")

	body := map[string]string{"token": "tok-alice"}
	rr := ts.request(http.MethodPost, "/api/v1/auth/login", body, "")

	assert.Equal(t, http.StatusCreated, rr.Code)

	var resp response.LoginResponse
	err := json.Unmarshal(rr.Body.Bytes(), &resp)
	require.NoError(t, err)

	assert.Equal(t, "User created and logged in", resp.Message)
	assert.Equal(t, "ext-alice", resp.User.ExternalID)
	assert.Equal(t, "alice0001", resp.User.Username)
	assert.Equal(t, 1, resp.User.Level)
	assert.Equal(t, 0, resp.User.XP)
	assert.Equal(t, 100, resp.User.Energy)

	// Second login finds the existing account
	rr = ts.request(http.MethodPost, "/api/v1/auth/login", body, "")
	assert.Equal(t, http.StatusOK, rr.Code)

	var second response.LoginResponse
	err = json.Unmarshal(rr.Body.Bytes(), &second)
	require.NoError(t, err)
	assert.Equal(t, "Login successful", second.Message)
	assert.Equal(t, resp.User.ID, second.User.ID)
}

func TestLoginMissingToken(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodPost, "/api/v1/auth/login", map[string]string{}, "")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "token is required")

	// Nothing reached the verifier
	assert.Empty(t, ts.app.MockVerifier.Calls)
}

func TestLoginInvalidToken(t *testing.T) {
	ts := newTestServer(t)

	body := map[string]string{"token": "bogus"}
	rr := ts.request(http.MethodPost, "/api/v1/auth/login", body, "")
	assert.Equal(t, http.StatusForbidden, rr.Code)
	assert.Contains(t, rr.Body.String(), "INVALID_TOKEN")
}

func TestVerifyCreatesThenFetches(t *testing.T) {
	ts := newTestServer(t)
	ts.allowToken("tok-bob", "ext-bob", "Bob", "bob@example.com")

	body := map[string]string{"token": "tok-bob"}
	rr := ts.request(http.MethodPost, "/api/v1/auth/verify", body, "")
	assert.Equal(t, http.StatusCreated, rr.Code)

	var created response.User
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &created))
	assert.Equal(t, "Bob", created.Username)

	rr = ts.request(http.MethodPost, "/api/v1/auth/verify", body, "")
	assert.Equal(t, http.StatusOK, rr.Code)

	var fetched response.User
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &fetched))
	assert.Equal(t, created.ID, fetched.ID)
}

func TestVerifyBadBody(t *testing.T) {
	ts := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/verify", bytes.NewBufferString("{not json"))
	rr := httptest.NewRecorder()
	ts.handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestVerifyInvalidToken(t *testing.T) {
	ts := newTestServer(t)

	body := map[string]string{"token": "unknown"}
	rr := ts.request(http.MethodPost, "/api/v1/auth/verify", body, "")
	assert.Equal(t, http.StatusForbidden, rr.Code)
}

func TestGetMe(t *testing.T) {
	ts := newTestServer(t)
	ts.allowToken("tok-carol", "ext-carol", "Carol", "carol@example.com")

	// Create the account first
	rr := ts.request(http.MethodPost, "/api/v1/auth/verify", map[string]string{"token": "tok-carol"}, "")
	require.Equal(t, http.StatusCreated, rr.Code)

	rr = ts.request(http.MethodGet, "/api/v1/users/me", nil, "tok-carol")
	assert.Equal(t, http.StatusOK, rr.Code)

	var me response.User
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &me))
	assert.Equal(t, "ext-carol", me.ExternalID)
}

func TestGetMeWithoutToken(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/v1/users/me", nil, "")
	assert.Equal(t, http.StatusForbidden, rr.Code)
}

func TestGetMeNoAccount(t *testing.T) {
	ts := newTestServer(t)
	ts.allowToken("tok-ghost", "ext-ghost", "", "")

	// Token verifies but no account exists yet
	rr := ts.request(http.MethodGet, "/api/v1/users/me", nil, "tok-ghost")
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Contains(t, rr.Body.String(), "USER_NOT_FOUND")
}

func TestListUsers(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/v1/users", nil, "")
	assert.Equal(t, http.StatusOK, rr.Code)

	var empty []response.User
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &empty))
	assert.Empty(t, empty)

	ts.allowToken("tok-a", "ext-a", "A", "a@example.com")
	ts.allowToken("tok-b", "ext-b", "B", "b@example.com")
	ts.request(http.MethodPost, "/api/v1/auth/verify", map[string]string{"token": "tok-a"}, "")
	ts.request(http.MethodPost, "/api/v1/auth/verify", map[string]string{"token": "tok-b"}, "")

	rr = ts.request(http.MethodGet, "/api/v1/users", nil, "")
	assert.Equal(t, http.StatusOK, rr.Code)

	var users []response.User
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &users))
	assert.Len(t, users, 2)
}

func TestGrantExperience(t *testing.T) {
	ts := newTestServer(t)
	ts.allowToken("tok-dave", "ext-dave", "Dave", "dave@example.com")

	rr := ts.request(http.MethodPost, "/api/v1/auth/verify", map[string]string{"token": "tok-dave"}, "")
	require.Equal(t, http.StatusCreated, rr.Code)

	var user response.User
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &user))

	// Level 1 caps at 100 XP, so 250 rolls into level 2 with 150 left
	body := map[string]int{"add_xp": 250}
	rr = ts.request(http.MethodPost, "/api/v1/users/"+user.ID+"/experience", body, "")
	assert.Equal(t, http.StatusOK, rr.Code)

	var updated response.User
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &updated))
	assert.Equal(t, 2, updated.Level)
	assert.Equal(t, 150, updated.XP)
}

func TestGrantExperienceMissingDelta(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodPost, "/api/v1/users/u-1/experience", map[string]string{}, "")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "add_xp is required")
}

func TestGrantExperienceNegativeDelta(t *testing.T) {
	ts := newTestServer(t)

	body := map[string]int{"add_xp": -10}
	rr := ts.request(http.MethodPost, "/api/v1/users/u-1/experience", body, "")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "add_xp must not be negative")
}

func TestGrantExperienceUnknownUser(t *testing.T) {
	ts := newTestServer(t)

	body := map[string]int{"add_xp": 50}
	rr := ts.request(http.MethodPost, "/api/v1/users/nope/experience", body, "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Contains(t, rr.Body.String(), "USER_NOT_FOUND")
}
