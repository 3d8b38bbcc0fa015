package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/gin-gonic/gin"
	"github.com/lost-and-found-api/internal/api"
	"github.com/lost-and-found-api/internal/config"
	"github.com/lost-and-found-api/internal/mocks"
	"github.com/lost-and-found-api/internal/models"
	"github.com/lost-and-found-api/internal/repository"
	"github.com/lost-and-found-api/internal/service"
	"github.com/rs/zerolog"
)

const testSecret = "test-secret"

type testEnv struct {
	router *gin.Engine
	users  *mocks.MockUserRepository
	posts  *mocks.MockPostRepository

	owner *models.User
	alice *models.User
	admin *models.User
	post  *models.Post
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	users := mocks.NewMockUserRepository()
	posts := mocks.NewMockPostRepository()
	comments := mocks.NewMockCommentRepository()
	claims := mocks.NewMockClaimRepository()
	claims.Posts = posts
	saved := mocks.NewMockSavedPostRepository()
	categories := mocks.NewMockCategoryRepository()
	categories.Categories["bags"] = &models.Category{ID: "cat-1", Name: "bags", IsActive: true}
	notifications := mocks.NewMockNotificationRepository()

	repos := &repository.Repositories{
		User:         users,
		Post:         posts,
		Comment:      comments,
		Claim:        claims,
		SavedPost:    saved,
		Category:     categories,
		Notification: notifications,
	}

	cfg := &config.Config{
		Server:   config.ServerConfig{Port: "8080"},
		Auth:     config.AuthConfig{JWTSecret: testSecret},
		Comments: config.CommentConfig{ModeratedThreads: true, MaxContentLength: 500},
		Push:     config.PushConfig{QueueSize: 16, WorkerCount: 1},
	}

	log := zerolog.Nop()
	services := service.NewServices(repos, cfg, nil, log)
	router := api.NewRouter(services, repos, cfg, log)

	env := &testEnv{
		router: router,
		users:  users,
		posts:  posts,
		owner:  &models.User{ID: "user-owner", FullName: "Olivia Owner", Username: "olivia"},
		alice:  &models.User{ID: "user-alice", FullName: "Alice Able", Username: "alice"},
		admin:  &models.User{ID: "user-admin", FullName: "Ada Admin", Username: "ada", Role: models.RoleAdmin},
	}
	users.Users[env.owner.ID] = env.owner
	users.Users[env.alice.ID] = env.alice
	users.Users[env.admin.ID] = env.admin

	env.post = &models.Post{
		ID:       "post-1",
		UserID:   env.owner.ID,
		Type:     models.PostTypeLost,
		ItemName: "Blue backpack",
		Status:   models.PostStatusActive,
	}
	posts.Create(context.Background(), env.post)

	return env
}

func signToken(t *testing.T, userID string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": userID,
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}
	return signed
}

func (env *testEnv) do(t *testing.T, method, path string, body interface{}, userID string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal body: %v", err)
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if userID != "" {
		req.Header.Set("Authorization", "Bearer "+signToken(t, userID))
	}
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var response map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("invalid JSON response: %v", err)
	}
	return response
}

func errorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	response := decode(t, w)
	envelope, ok := response["error"].(map[string]interface{})
	if !ok {
		t.Fatalf("missing error envelope: %s", w.Body.String())
	}
	code, _ := envelope["code"].(string)
	return code
}

func TestHealthEndpoint(t *testing.T) {
	env := setupTestEnv(t)

	w := env.do(t, "GET", "/health", nil, "")
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	response := decode(t, w)
	if response["status"] != "healthy" {
		t.Errorf("Expected status 'healthy', got %v", response["status"])
	}
	if response["service"] != "lost-and-found-api" {
		t.Errorf("Expected service name, got %v", response["service"])
	}
}

func TestMetricsEndpoint(t *testing.T) {
	env := setupTestEnv(t)

	w := env.do(t, "GET", "/metrics", nil, "")
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	response := decode(t, w)
	db := response["database"].(map[string]interface{})
	if db["posts"].(float64) != 1 {
		t.Errorf("Expected 1 post, got %v", db["posts"])
	}
	if db["users"].(float64) != 3 {
		t.Errorf("Expected 3 users, got %v", db["users"])
	}
}

func TestAuthRequired(t *testing.T) {
	env := setupTestEnv(t)

	// No token
	w := env.do(t, "GET", "/v1/users/me", nil, "")
	if w.Code != http.StatusUnauthorized {
		t.Errorf("Expected 401 without token, got %d", w.Code)
	}

	// Garbage token
	req := httptest.NewRequest("GET", "/v1/users/me", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	w = httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("Expected 401 with bad token, got %d", w.Code)
	}

	// Token for a user that no longer exists
	w = env.do(t, "GET", "/v1/users/me", nil, "ghost-user")
	if w.Code != http.StatusUnauthorized {
		t.Errorf("Expected 401 for unknown user, got %d", w.Code)
	}
}

func TestUsersMe(t *testing.T) {
	env := setupTestEnv(t)

	w := env.do(t, "GET", "/v1/users/me", nil, env.alice.ID)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}
	response := decode(t, w)
	user := response["user"].(map[string]interface{})
	if user["_id"] != env.alice.ID {
		t.Errorf("Expected alice, got %v", user["_id"])
	}
	if _, leaked := user["fcmToken"]; leaked {
		t.Error("FCM token must never be serialized")
	}
}

func TestCommentFlow(t *testing.T) {
	env := setupTestEnv(t)

	// Alice opens a thread
	w := env.do(t, "POST", "/v1/comments", gin.H{
		"postId":  env.post.ID,
		"content": "Is this still around?",
	}, env.alice.ID)
	if w.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
	}
	created := decode(t, w)["comment"].(map[string]interface{})
	rootID := created["commentId"].(string)
	if created["canEdit"] != true {
		t.Error("Author should be able to edit")
	}

	// A third user cannot join the private thread
	w = env.do(t, "POST", "/v1/comments", gin.H{
		"postId":          env.post.ID,
		"content":         "Me too",
		"parentCommentId": rootID,
	}, env.admin.ID)
	if w.Code != http.StatusForbidden {
		t.Fatalf("Expected 403, got %d", w.Code)
	}
	if code := errorCode(t, w); code != "forbidden" {
		t.Errorf("Expected forbidden code, got %s", code)
	}

	// The owner replies
	w = env.do(t, "POST", "/v1/comments", gin.H{
		"postId":          env.post.ID,
		"content":         "Yes, come get it",
		"parentCommentId": rootID,
	}, env.owner.ID)
	if w.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
	}

	// Listing returns the nested thread
	w = env.do(t, "GET", "/v1/comments/post/"+env.post.ID, nil, env.alice.ID)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}
	page := decode(t, w)
	comments := page["comments"].([]interface{})
	if len(comments) != 1 {
		t.Fatalf("Expected 1 root comment, got %d", len(comments))
	}
	root := comments[0].(map[string]interface{})
	replies := root["replies"].([]interface{})
	if len(replies) != 1 {
		t.Fatalf("Expected 1 reply, got %d", len(replies))
	}
	reply := replies[0].(map[string]interface{})
	if reply["user"].(map[string]interface{})["isPostOwner"] != true {
		t.Error("Owner reply should carry the isPostOwner flag")
	}

	// Edit then delete the thread
	w = env.do(t, "PATCH", "/v1/comments/"+rootID, gin.H{"content": "edited"}, env.alice.ID)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}

	w = env.do(t, "DELETE", "/v1/comments/"+rootID, nil, env.alice.ID)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}
	result := decode(t, w)
	if result["deletedCommentId"] != rootID {
		t.Error("Delete should echo the comment ID")
	}
	if result["totalDeleted"].(float64) != 1 {
		t.Errorf("Expected 1 cascaded descendant, got %v", result["totalDeleted"])
	}
}

func TestCommentParentMismatch(t *testing.T) {
	env := setupTestEnv(t)

	other := &models.Post{ID: "post-2", UserID: env.alice.ID, Status: models.PostStatusActive}
	env.posts.Create(context.Background(), other)

	w := env.do(t, "POST", "/v1/comments", gin.H{
		"postId":  env.post.ID,
		"content": "root on post one",
	}, env.alice.ID)
	rootID := decode(t, w)["comment"].(map[string]interface{})["commentId"].(string)

	w = env.do(t, "POST", "/v1/comments", gin.H{
		"postId":          other.ID,
		"content":         "wrong post",
		"parentCommentId": rootID,
	}, env.alice.ID)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("Expected 400, got %d", w.Code)
	}
	if code := errorCode(t, w); code != "parent_mismatch" {
		t.Errorf("Expected parent_mismatch, got %s", code)
	}
}

func TestPublicPostEndpoints(t *testing.T) {
	env := setupTestEnv(t)

	w := env.do(t, "GET", "/v1/posts", nil, "")
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}
	response := decode(t, w)
	posts := response["posts"].([]interface{})
	if len(posts) != 1 {
		t.Errorf("Expected 1 post, got %d", len(posts))
	}

	w = env.do(t, "GET", "/v1/posts/"+env.post.ID, nil, "")
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}

	w = env.do(t, "GET", "/v1/posts/no-such-post", nil, "")
	if w.Code != http.StatusNotFound {
		t.Errorf("Expected 404, got %d", w.Code)
	}

	w = env.do(t, "GET", "/v1/categories", nil, "")
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}
}

func TestCreatePostEndpoint(t *testing.T) {
	env := setupTestEnv(t)

	w := env.do(t, "POST", "/v1/posts", gin.H{
		"type":         "lost",
		"itemName":     "Keys",
		"description":  "A set of keys",
		"category":     "bags",
		"rewardAmount": 10,
	}, env.alice.ID)
	if w.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
	}

	// Validation errors surface as invalid_input
	w = env.do(t, "POST", "/v1/posts", gin.H{"type": "stolen"}, env.alice.ID)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("Expected 400, got %d", w.Code)
	}
	if code := errorCode(t, w); code != "invalid_input" {
		t.Errorf("Expected invalid_input, got %s", code)
	}
}

func TestClaimEndpoints(t *testing.T) {
	env := setupTestEnv(t)

	w := env.do(t, "POST", "/v1/claims", gin.H{
		"postId":  env.post.ID,
		"message": "I found this",
	}, env.alice.ID)
	if w.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
	}
	claim := decode(t, w)["claim"].(map[string]interface{})
	claimID := claim["claimId"].(string)

	// Duplicate claim conflicts
	w = env.do(t, "POST", "/v1/claims", gin.H{
		"postId":  env.post.ID,
		"message": "again",
	}, env.alice.ID)
	if w.Code != http.StatusConflict {
		t.Errorf("Expected 409, got %d", w.Code)
	}

	// The owner accepts
	w = env.do(t, "PATCH", "/v1/claims/"+claimID+"/status", gin.H{"status": "accepted"}, env.owner.ID)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}
	accepted := decode(t, w)["claim"].(map[string]interface{})
	if accepted["status"] != "accepted" {
		t.Errorf("Expected accepted, got %v", accepted["status"])
	}
}

func TestSavedPostEndpoints(t *testing.T) {
	env := setupTestEnv(t)

	w := env.do(t, "POST", "/v1/saved-posts/save/"+env.post.ID, nil, env.alice.ID)
	if w.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
	}

	w = env.do(t, "GET", "/v1/saved-posts/check/"+env.post.ID, nil, env.alice.ID)
	if decode(t, w)["isSaved"] != true {
		t.Error("Post should be saved")
	}

	w = env.do(t, "GET", "/v1/saved-posts/my-saved-posts", nil, env.alice.ID)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}

	w = env.do(t, "DELETE", "/v1/saved-posts/unsave/"+env.post.ID, nil, env.alice.ID)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}
}

func TestCategoryAdminOnly(t *testing.T) {
	env := setupTestEnv(t)

	w := env.do(t, "POST", "/v1/categories", gin.H{"name": "Pets"}, env.alice.ID)
	if w.Code != http.StatusForbidden {
		t.Errorf("Expected 403 for non-admin, got %d", w.Code)
	}

	w = env.do(t, "POST", "/v1/categories", gin.H{"name": "Pets"}, env.admin.ID)
	if w.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
	}
	category := decode(t, w)["category"].(map[string]interface{})
	if category["name"] != "pets" {
		t.Errorf("Expected lowercased name, got %v", category["name"])
	}
}

func TestNotificationEndpoints(t *testing.T) {
	env := setupTestEnv(t)

	w := env.do(t, "GET", "/v1/notifications", nil, env.owner.ID)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}
	page := decode(t, w)
	if page["unreadCount"].(float64) != 0 {
		t.Errorf("Expected empty feed, got %v", page["unreadCount"])
	}

	w = env.do(t, "GET", "/v1/notifications/unread-count", nil, env.owner.ID)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}
}
