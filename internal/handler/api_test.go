package handler_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wallfeed/wallfeed/config"
	"github.com/wallfeed/wallfeed/internal/dto"
	"github.com/wallfeed/wallfeed/internal/handler"
	"github.com/wallfeed/wallfeed/internal/middleware"
	"github.com/wallfeed/wallfeed/internal/model"
	"github.com/wallfeed/wallfeed/internal/repository"
	"github.com/wallfeed/wallfeed/internal/router"
	"github.com/wallfeed/wallfeed/internal/service"
	"github.com/wallfeed/wallfeed/internal/upload"
	"github.com/wallfeed/wallfeed/pkg/redis"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// newTestServer wires the full HTTP stack over an in-memory database
// with the cache disabled.
func newTestServer(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.Profile{}, &model.Post{}))

	uploadsDir := t.TempDir()
	saver, err := upload.NewSaver(uploadsDir, 5*1024*1024)
	require.NoError(t, err)

	redisClient := redis.NewClient(redis.Config{Enabled: false}, zap.NewNop())

	profileRepo := repository.NewProfileRepository(db)
	postRepo := repository.NewPostRepository(db)

	jwtService := service.NewJWTService("test-secret")
	authService := service.NewAuthService(profileRepo, jwtService, time.Hour, 30*time.Minute)
	profileService := service.NewProfileService(profileRepo)
	feedCache := service.NewFeedCache(redisClient, time.Minute)
	postService := service.NewPostService(postRepo, profileRepo, feedCache)

	cfg := &config.Config{}
	cfg.Uploads.Dir = uploadsDir
	cfg.App.Port = "0"

	return router.NewRouter(
		handler.NewAuthHandler(authService),
		handler.NewProfileHandler(profileService, saver),
		handler.NewPostHandler(postService, saver),
		handler.NewHealthHandler(db, redisClient),
		middleware.NewAuthGuard(authService),
		cfg,
	).SetupRoutes()
}

func doJSON(t *testing.T, r *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func registerUser(t *testing.T, r *gin.Engine, email string) dto.AuthResponse {
	t.Helper()

	w := doJSON(t, r, http.MethodPost, "/api/auth/register", "",
		dto.RegisterRequest{Email: email, Password: "password123"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp dto.AuthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func postForm(t *testing.T, fields map[string][]string, images map[string][]byte) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for name, values := range fields {
		for _, v := range values {
			require.NoError(t, writer.WriteField(name, v))
		}
	}
	for filename, content := range images {
		header := textproto.MIMEHeader{}
		header.Set("Content-Disposition", `form-data; name="images"; filename="`+filename+`"`)
		header.Set("Content-Type", "image/png")
		part, err := writer.CreatePart(header)
		require.NoError(t, err)
		_, err = part.Write(content)
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())
	return &buf, writer.FormDataContentType()
}

func TestAPI_RegisterLoginFlow(t *testing.T) {
	r := newTestServer(t)

	resp := registerUser(t, r, "user@example.com")
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, "user@example.com", resp.User.Email)

	// Duplicate registration conflicts.
	w := doJSON(t, r, http.MethodPost, "/api/auth/register", "",
		dto.RegisterRequest{Email: "user@example.com", Password: "other"})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "Пользователь с таким email уже существует")

	// Login with correct and wrong credentials.
	w = doJSON(t, r, http.MethodPost, "/api/auth/login", "",
		dto.LoginRequest{Email: "user@example.com", Password: "password123"})
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodPost, "/api/auth/login", "",
		dto.LoginRequest{Email: "user@example.com", Password: "wrong"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Неверный email или пароль")
}

func TestAPI_BindingErrorsAreReadable(t *testing.T) {
	r := newTestServer(t)

	w := doJSON(t, r, http.MethodPost, "/api/auth/register", "",
		dto.RegisterRequest{Email: "not-an-email", Password: "password123"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Некорректный запрос")
	assert.Contains(t, w.Body.String(), "некорректный email")
	assert.NotContains(t, w.Body.String(), "Field validation")
	assert.NotContains(t, w.Body.String(), "RegisterRequest")

	// Malformed JSON collapses to the generic detail.
	req := httptest.NewRequest(http.MethodPost, "/api/auth/register",
		strings.NewReader("{not json"))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "некорректное тело запроса")
}

func TestAPI_GuardedRoutesRejectAnonymous(t *testing.T) {
	r := newTestServer(t)

	for _, path := range []string{"/api/posts", "/api/profile/1"} {
		w := doJSON(t, r, http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code, path)
		assert.JSONEq(t, `{"message": "Unauthorized"}`, w.Body.String())
	}
}

func TestAPI_PostLifecycle(t *testing.T) {
	r := newTestServer(t)

	alice := registerUser(t, r, "alice@example.com")
	bob := registerUser(t, r, "bob@example.com")

	// Alice posts with an image, Bob posts plain text.
	body, contentType := postForm(t,
		map[string][]string{"text": {"hello from alice"}},
		map[string][]byte{"pic.png": []byte("png-bytes")})
	req := httptest.NewRequest(http.MethodPost, "/api/posts", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer "+alice.AccessToken)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var alicePost dto.PostResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &alicePost))
	assert.Equal(t, alice.User.ID, alicePost.Author.ID)
	require.Len(t, alicePost.Images, 1)
	assert.True(t, strings.HasSuffix(alicePost.Images[0], ".png"))

	body, contentType = postForm(t,
		map[string][]string{"text": {"hello from bob"}}, nil)
	req = httptest.NewRequest(http.MethodPost, "/api/posts", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer "+bob.AccessToken)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	// The uploaded image is reachable through static serving.
	w = doJSON(t, r, http.MethodGet, "/uploads/"+alicePost.Images[0], "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "png-bytes", w.Body.String())

	// Full feed is newest first.
	w = doJSON(t, r, http.MethodGet, "/api/posts", alice.AccessToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var feed []dto.PostResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &feed))
	require.Len(t, feed, 2)
	assert.Equal(t, "hello from bob", feed[0].Text)
	assert.Equal(t, "hello from alice", feed[1].Text)

	// Author filter narrows to Alice.
	w = doJSON(t, r, http.MethodGet,
		fmt.Sprintf("/api/posts?userId=%d", alice.User.ID), alice.AccessToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &feed))
	require.Len(t, feed, 1)
	assert.Equal(t, alice.User.ID, feed[0].Author.ID)

	// Updating text keeps the image list.
	body, contentType = postForm(t,
		map[string][]string{"text": {"edited"}}, nil)
	req = httptest.NewRequest(http.MethodPut, fmt.Sprintf("/api/posts/%d", alicePost.ID), body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer "+alice.AccessToken)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var updated dto.PostResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
	assert.Equal(t, "edited", updated.Text)
	assert.Equal(t, alicePost.Images, updated.Images)

	// Delete is idempotent.
	w = doJSON(t, r, http.MethodDelete, fmt.Sprintf("/api/posts/%d", alicePost.ID), alice.AccessToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	w = doJSON(t, r, http.MethodDelete, fmt.Sprintf("/api/posts/%d", alicePost.ID), alice.AccessToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	// Updating the deleted post 404s with the localized message.
	body, contentType = postForm(t,
		map[string][]string{"text": {"ghost"}}, nil)
	req = httptest.NewRequest(http.MethodPut, fmt.Sprintf("/api/posts/%d", alicePost.ID), body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer "+alice.AccessToken)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Пост не найден")
}

func TestAPI_ProfileFlow(t *testing.T) {
	r := newTestServer(t)

	user := registerUser(t, r, "user@example.com")
	token := user.AccessToken

	// Fresh profiles come back with blank fields and the sentinel date.
	w := doJSON(t, r, http.MethodGet, fmt.Sprintf("/api/profile/%d", user.User.ID), token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var snapshot dto.UserSnapshot
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &snapshot))
	assert.Equal(t, "1900-01-01", snapshot.BirthDate)
	assert.Empty(t, snapshot.FirstName)
	assert.NotContains(t, w.Body.String(), "password")

	// Partial update.
	first, birth := "Ivan", "1995-06-15"
	w = doJSON(t, r, http.MethodPut, fmt.Sprintf("/api/profile/%d", user.User.ID), token,
		dto.UpdateProfileRequest{FirstName: &first, BirthDate: &birth})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &snapshot))
	assert.Equal(t, "Ivan", snapshot.FirstName)
	assert.Equal(t, "1995-06-15", snapshot.BirthDate)

	// Avatar upload through the multipart "file" field.
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", `form-data; name="file"; filename="me.png"`)
	header.Set("Content-Type", "image/png")
	part, err := writer.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write([]byte("avatar-bytes"))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost,
		fmt.Sprintf("/api/profile/%d/avatar", user.User.ID), &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &snapshot))
	assert.True(t, strings.HasSuffix(snapshot.Avatar, ".png"))

	// Missing profile 404s.
	w = doJSON(t, r, http.MethodGet, "/api/profile/999", token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Профиль не найден")
}

func TestAPI_Health(t *testing.T) {
	r := newTestServer(t)

	w := doJSON(t, r, http.MethodGet, "/api/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"database":"up"`)
	assert.Contains(t, w.Body.String(), `"redis":"disabled"`)
}
