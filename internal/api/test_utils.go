package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/plateshare/backend/internal/service"
	"github.com/plateshare/backend/internal/testhelpers"
)

type testEnv struct {
	Router *gin.Engine
	DB     *gorm.DB
	Auth   *service.AuthService
	Images *fakeImageStore
}

// fakeImageStore records uploads and hands back a deterministic URL.
type fakeImageStore struct {
	uploads []string
}

func (f *fakeImageStore) Upload(_ context.Context, filename, _ string, body io.Reader) (string, error) {
	if _, err := io.Copy(io.Discard, body); err != nil {
		return "", err
	}
	f.uploads = append(f.uploads, filename)
	return fmt.Sprintf("https://images.test/%s", filename), nil
}

// setupTestEnv wires the full handler surface onto a fresh engine backed by
// an in-memory database.
func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testhelpers.NewTestDB(t)
	authService := service.NewAuthService(db, "test-secret")
	recipeService := service.NewRecipeService(db)
	moderationService := service.NewModerationService(db, nil)
	adminService := service.NewAdminService(db)

	images := &fakeImageStore{}

	engine := gin.New()
	NewHealthHandler(db, nil).RegisterRoutes(engine)

	v1 := engine.Group("/api/v1")
	NewAuthHandler(authService).RegisterRoutes(v1)
	NewRecipeHandler(recipeService, authService, images, nil).RegisterRoutes(v1)
	NewModerationHandler(moderationService, authService).RegisterRoutes(v1)
	NewAdminHandler(adminService, authService).RegisterRoutes(v1)

	return &testEnv{Router: engine, DB: db, Auth: authService, Images: images}
}

// createUserWithToken registers a user, promotes it to the given role and
// returns a token carrying that role.
func (e *testEnv) createUserWithToken(t *testing.T, username, role string) string {
	t.Helper()

	email := username + "@example.com"
	_, err := e.Auth.Register(context.Background(), username, email, "password123")
	require.NoError(t, err)
	require.NoError(t, e.DB.Exec("UPDATE users SET role = ? WHERE email = ?", role, email).Error)

	token, err := e.Auth.Login(context.Background(), email, "password123")
	require.NoError(t, err)
	return token
}

func (e *testEnv) request(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	e.Router.ServeHTTP(w, req)
	return w
}

// uploadImage posts a multipart image file to the given path.
func (e *testEnv) uploadImage(t *testing.T, path, token, filename string) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("image", filename)
	require.NoError(t, err)
	_, err = part.Write([]byte("not really a jpeg"))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest("POST", path, &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	e.Router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}
