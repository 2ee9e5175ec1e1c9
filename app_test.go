package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akinalp/mbchat/config"
	"github.com/akinalp/mbchat/models"
	"github.com/akinalp/mbchat/testutil"
)

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

type testClient struct {
	t       *testing.T
	handler http.Handler
}

func testConfig() *config.Config {
	return &config.Config{
		Server:    config.ServerConfig{Host: "127.0.0.1", Port: 9090},
		Database:  config.DatabaseConfig{Path: ":memory:"},
		JWT:       config.JWTConfig{Secret: "test-secret", AccessTokenExpiry: 60},
		CORS:      config.CORSConfig{AllowedOrigins: []string{"http://localhost:3000"}},
		RateLimit: config.RateLimitConfig{LoginAttempts: 3, LoginWindow: time.Minute},
		Cache:     config.CacheConfig{CategoryTTL: time.Minute},
	}
}

func newTestClient(t *testing.T) *testClient {
	t.Helper()
	app := newApp(testConfig(), testutil.NewDB(t))
	t.Cleanup(app.Close)
	return &testClient{t: t, handler: app.Handler}
}

func (c *testClient) do(method, path, token string, body any) (*httptest.ResponseRecorder, envelope) {
	c.t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(c.t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	c.handler.ServeHTTP(rec, req)

	var env envelope
	require.NoError(c.t, json.Unmarshal(rec.Body.Bytes(), &env), "body: %s", rec.Body.String())
	return rec, env
}

func (c *testClient) register(username string) (string, int64) {
	c.t.Helper()
	rec, env := c.do(http.MethodPost, "/api/auth/register", "", map[string]string{
		"username": username,
		"password": "password123",
	})
	require.Equal(c.t, http.StatusCreated, rec.Code, env.Error)

	var tokens models.AuthTokens
	require.NoError(c.t, json.Unmarshal(env.Data, &tokens))
	return tokens.AccessToken, tokens.User.ID
}

func (c *testClient) createServer(token, name string, categoryID int64) models.Server {
	c.t.Helper()
	rec, env := c.do(http.MethodPost, "/api/servers", token, map[string]any{
		"name":        name,
		"category_id": categoryID,
	})
	require.Equal(c.t, http.StatusCreated, rec.Code, env.Error)

	var s models.Server
	require.NoError(c.t, json.Unmarshal(env.Data, &s))
	return s
}

func (c *testClient) categoryID(name string) int64 {
	c.t.Helper()
	rec, env := c.do(http.MethodGet, "/api/categories", "", nil)
	require.Equal(c.t, http.StatusOK, rec.Code)

	var cats []models.Category
	require.NoError(c.t, json.Unmarshal(env.Data, &cats))
	for _, cat := range cats {
		if cat.Name == name {
			return cat.ID
		}
	}
	c.t.Fatalf("category %q not seeded", name)
	return 0
}

func decodeServers(t *testing.T, env envelope) []map[string]any {
	t.Helper()
	var servers []map[string]any
	require.NoError(t, json.Unmarshal(env.Data, &servers))
	return servers
}

func TestServerDirectory(t *testing.T) {
	c := newTestClient(t)

	ownerToken, _ := c.register("owner")
	guestToken, _ := c.register("guest")

	gaming := c.categoryID("Gaming")
	music := c.categoryID("Music")

	var gamingIDs []int64
	for i := 0; i < 12; i++ {
		gamingIDs = append(gamingIDs, c.createServer(ownerToken, "gaming", gaming).ID)
	}
	jazz := c.createServer(ownerToken, "jazz", music)

	rec, env := c.do(http.MethodPost, "/api/servers/"+itoa(jazz.ID)+"/join", guestToken, nil)
	require.Equal(t, http.StatusOK, rec.Code, env.Error)

	t.Run("category quantity and member count", func(t *testing.T) {
		rec, env := c.do(http.MethodGet, "/api/servers?category=Gaming&quantity=10&with_num_members=true", "", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.True(t, env.Success)

		servers := decodeServers(t, env)
		require.Len(t, servers, 10)
		for _, s := range servers {
			assert.Equal(t, "Gaming", s["category"])
			assert.EqualValues(t, 1, s["num_members"])
			assert.NotNil(t, s["channel_server"])
		}
	})

	t.Run("num_members omitted when not requested", func(t *testing.T) {
		rec, env := c.do(http.MethodGet, "/api/servers?category=Music", "", nil)
		require.Equal(t, http.StatusOK, rec.Code)

		servers := decodeServers(t, env)
		require.Len(t, servers, 1)
		_, present := servers[0]["num_members"]
		assert.False(t, present)
	})

	t.Run("alias route", func(t *testing.T) {
		rec, env := c.do(http.MethodGet, "/api/server/select?quantity=2", "", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Len(t, decodeServers(t, env), 2)
	})

	t.Run("unknown server id", func(t *testing.T) {
		rec, env := c.do(http.MethodGet, "/api/servers?server_id=12345", guestToken, nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.False(t, env.Success)
		assert.Equal(t, "Server not found.", env.Error)
	})

	t.Run("known server id", func(t *testing.T) {
		rec, env := c.do(http.MethodGet, "/api/servers?server_id="+itoa(jazz.ID)+"&with_num_members=true", guestToken, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		servers := decodeServers(t, env)
		require.Len(t, servers, 1)
		assert.EqualValues(t, 2, servers[0]["num_members"])
	})

	t.Run("quantity does not hide server id match", func(t *testing.T) {
		third := gamingIDs[2]
		rec, env := c.do(http.MethodGet, "/api/servers?quantity=1&server_id="+itoa(third), guestToken, nil)
		require.Equal(t, http.StatusOK, rec.Code, env.Error)
		servers := decodeServers(t, env)
		require.Len(t, servers, 1)
		assert.EqualValues(t, third, servers[0]["id"])
	})

	t.Run("quantity zero with server id", func(t *testing.T) {
		rec, env := c.do(http.MethodGet, "/api/servers?quantity=0&server_id="+itoa(gamingIDs[0]), guestToken, nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "Server not found.", env.Error)
	})

	t.Run("by_user without auth", func(t *testing.T) {
		rec, env := c.do(http.MethodGet, "/api/servers?by_user=true", "", nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Empty(t, env.Data)
	})

	t.Run("server_id without auth", func(t *testing.T) {
		rec, _ := c.do(http.MethodGet, "/api/servers?server_id="+itoa(jazz.ID), "", nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("by_user with auth", func(t *testing.T) {
		rec, env := c.do(http.MethodGet, "/api/servers?by_user=true", guestToken, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		servers := decodeServers(t, env)
		require.Len(t, servers, 1)
		assert.Equal(t, "jazz", servers[0]["name"])
	})

	t.Run("invalid token on public list", func(t *testing.T) {
		rec, _ := c.do(http.MethodGet, "/api/servers", "garbage", nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("invalid quantity", func(t *testing.T) {
		for _, q := range []string{"abc", "-1", "1.5"} {
			rec, env := c.do(http.MethodGet, "/api/servers?quantity="+q, "", nil)
			assert.Equal(t, http.StatusBadRequest, rec.Code, q)
			assert.Empty(t, env.Data)
		}
	})

	t.Run("invalid server id", func(t *testing.T) {
		rec, _ := c.do(http.MethodGet, "/api/servers?server_id=abc", guestToken, nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("quantity zero", func(t *testing.T) {
		rec, env := c.do(http.MethodGet, "/api/servers?quantity=0", "", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, "[]", string(env.Data))
	})
}

func TestServerMembershipRoutes(t *testing.T) {
	c := newTestClient(t)

	ownerToken, _ := c.register("owner")
	guestToken, _ := c.register("guest")
	server := c.createServer(ownerToken, "lobby", c.categoryID("Gaming"))
	path := "/api/servers/" + itoa(server.ID)

	rec, _ := c.do(http.MethodPost, path+"/leave", guestToken, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code, "non-member cannot leave")

	rec, _ = c.do(http.MethodPost, path+"/join", guestToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec, _ = c.do(http.MethodPost, path+"/channels", guestToken, map[string]string{"name": "random"})
	assert.Equal(t, http.StatusForbidden, rec.Code, "only owner creates channels")

	rec, env := c.do(http.MethodPost, path+"/channels", ownerToken, map[string]string{"name": "General Chat"})
	require.Equal(t, http.StatusCreated, rec.Code, env.Error)

	rec, env = c.do(http.MethodGet, path+"/channels", guestToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var listed []models.Channel
	require.NoError(t, json.Unmarshal(env.Data, &listed))
	require.Len(t, listed, 1)

	rec, env = c.do(http.MethodGet, "/api/servers?server_id="+itoa(server.ID), guestToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	servers := decodeServers(t, env)
	channels := servers[0]["channel_server"].([]any)
	require.Len(t, channels, 1)
	assert.Equal(t, "general-chat", channels[0].(map[string]any)["name"])

	rec, env = c.do(http.MethodGet, path, guestToken, nil)
	require.Equal(t, http.StatusOK, rec.Code, env.Error)
	var detail models.Server
	require.NoError(t, json.Unmarshal(env.Data, &detail))
	assert.Equal(t, "lobby", detail.Name)
	require.Len(t, detail.Channels, 1)
	assert.Equal(t, "general-chat", detail.Channels[0].Name)

	rec, _ = c.do(http.MethodGet, path, "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec, env = c.do(http.MethodGet, "/api/servers/99999", guestToken, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Server not found.", env.Error)

	rec, _ = c.do(http.MethodPost, path+"/leave", ownerToken, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code, "owner cannot leave")

	rec, _ = c.do(http.MethodPost, path+"/leave", guestToken, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, _ = c.do(http.MethodPost, "/api/servers/abc/join", guestToken, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, env = c.do(http.MethodPost, "/api/servers/99999/join", guestToken, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Server not found.", env.Error)

	rec, _ = c.do(http.MethodPost, "/api/servers", "", map[string]any{"name": "x", "category_id": 1})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthRoutes(t *testing.T) {
	c := newTestClient(t)

	token, id := c.register("selin")

	rec, env := c.do(http.MethodGet, "/api/users/me", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var me models.User
	require.NoError(t, json.Unmarshal(env.Data, &me))
	assert.Equal(t, id, me.ID)
	assert.NotContains(t, string(env.Data), "password")

	rec, _ = c.do(http.MethodPost, "/api/auth/register", "", map[string]string{"username": "selin", "password": "password123"})
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec, _ = c.do(http.MethodPost, "/api/auth/login", "", map[string]string{"username": "selin", "password": "password123"})
	assert.Equal(t, http.StatusOK, rec.Code)

	// LoginAttempts=3: üç deneme kabul edilir, dördüncüsü 429.
	for i := 0; i < 3; i++ {
		rec, _ = c.do(http.MethodPost, "/api/auth/login", "", map[string]string{"username": "selin", "password": "wrong"})
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	}
	rec, _ = c.do(http.MethodPost, "/api/auth/login", "", map[string]string{"username": "selin", "password": "password123"})
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("Retry-After"))
}

func TestHealthAndHeaders(t *testing.T) {
	c := newTestClient(t)

	rec, env := c.do(http.MethodGet, "/api/health", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, env.Success)
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))

	req := httptest.NewRequest(http.MethodOptions, "/api/servers", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	preflight := httptest.NewRecorder()
	c.handler.ServeHTTP(preflight, req)
	assert.Equal(t, "http://localhost:3000", preflight.Header().Get("Access-Control-Allow-Origin"))
}

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}
