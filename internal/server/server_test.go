package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"taskquest/internal/config"
	"taskquest/internal/database"
	"taskquest/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestServer(t *testing.T) (*fiber.App, *Server, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(database.AllModels()...))

	cfg := &config.Config{
		JWTSecret: "test_secret",
		Port:      "0",
		Env:       "test",
	}
	srv, err := NewServerWithDeps(cfg, db, nil)
	require.NoError(t, err)

	app := fiber.New()
	srv.SetupRoutes(app)
	return app, srv, db
}

func testUser(t *testing.T, db *gorm.DB, name string) *models.User {
	t.Helper()
	hashed, _ := bcrypt.GenerateFromPassword([]byte("Password1"), bcrypt.DefaultCost)
	user := &models.User{
		Username: name,
		Email:    fmt.Sprintf("%s@example.com", name),
		Password: string(hashed),
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func authHeader(t *testing.T, srv *Server, user *models.User) string {
	t.Helper()
	token, err := srv.generateToken(user.ID, user.Username)
	require.NoError(t, err)
	return "Bearer " + token
}

func jsonRequest(t *testing.T, method, target string, body any) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	return req
}

func decodeBody(t *testing.T, resp *http.Response, dest any) {
	t.Helper()
	defer func() { _ = resp.Body.Close() }()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(dest))
}

func TestSignupLoginFlow(t *testing.T) {
	app, _, db := setupTestServer(t)

	// Seed a default item so signup can grant it.
	require.NoError(t, db.Create(&models.ShopItem{
		Type: models.ItemTypeTop, Name: "Plain Tunic", IsDefault: true,
	}).Error)

	resp, err := app.Test(jsonRequest(t, http.MethodPost, "/api/auth/signup", map[string]string{
		"username": "newplayer",
		"email":    "newplayer@example.com",
		"password": "Password1",
	}))
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	var created struct {
		Token string      `json:"token"`
		User  models.User `json:"user"`
	}
	decodeBody(t, resp, &created)
	assert.NotEmpty(t, created.Token)
	assert.Equal(t, "newplayer", created.User.Username)

	// The signup granted and equipped the default item.
	var inventory []models.InventoryItem
	require.NoError(t, db.Where("user_id = ?", created.User.ID).Find(&inventory).Error)
	require.Len(t, inventory, 1)
	assert.True(t, inventory[0].IsEquipped)

	// Duplicate signup conflicts.
	resp, err = app.Test(jsonRequest(t, http.MethodPost, "/api/auth/signup", map[string]string{
		"username": "newplayer",
		"email":    "newplayer@example.com",
		"password": "Password1",
	}))
	require.NoError(t, err)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	// Login succeeds with the right password.
	resp, err = app.Test(jsonRequest(t, http.MethodPost, "/api/auth/login", map[string]string{
		"email":    "newplayer@example.com",
		"password": "Password1",
	}))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// And fails with the wrong one.
	resp, err = app.Test(jsonRequest(t, http.MethodPost, "/api/auth/login", map[string]string{
		"email":    "newplayer@example.com",
		"password": "wrong",
	}))
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestSignupValidation(t *testing.T) {
	app, _, _ := setupTestServer(t)

	tests := []struct {
		name string
		body map[string]string
	}{
		{"missing fields", map[string]string{"username": "x"}},
		{"bad email", map[string]string{"username": "player", "email": "nope", "password": "Password1"}},
		{"weak password", map[string]string{"username": "player", "email": "p@example.com", "password": "short"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := app.Test(jsonRequest(t, http.MethodPost, "/api/auth/signup", tt.body))
			require.NoError(t, err)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		})
	}
}

func TestProtectedRoutesRequireAuth(t *testing.T) {
	app, _, _ := setupTestServer(t)

	for _, target := range []string{"/api/users/me", "/api/tasks/", "/api/friends/", "/api/character"} {
		req := httptest.NewRequest(http.MethodGet, target, nil)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, target)
	}
}

func TestAuthRequiredRejectsForeignToken(t *testing.T) {
	app, _, _ := setupTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/users/me", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestGetMyProfile(t *testing.T) {
	app, srv, db := setupTestServer(t)
	require.NoError(t, db.Create(&models.Rank{Name: "Novice", RequiredXP: 0}).Error)
	user := testUser(t, db, "me")

	req := httptest.NewRequest(http.MethodGet, "/api/users/me", nil)
	req.Header.Set("Authorization", authHeader(t, srv, user))
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		User models.User  `json:"user"`
		Rank *models.Rank `json:"rank"`
	}
	decodeBody(t, resp, &body)
	assert.Equal(t, "me", body.User.Username)
	require.NotNil(t, body.Rank)
	assert.Equal(t, "Novice", body.Rank.Name)
}

func TestGetRanksIsPublic(t *testing.T) {
	app, _, db := setupTestServer(t)
	require.NoError(t, db.Create(&models.Rank{Name: "Novice", RequiredXP: 0}).Error)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/ranks", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var ranks []models.Rank
	decodeBody(t, resp, &ranks)
	require.Len(t, ranks, 1)
}

func TestHealthEndpoints(t *testing.T) {
	app, _, _ := setupTestServer(t)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/health/live", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// Redis is absent in tests, so readiness reports unavailable.
	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/health/ready", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}
