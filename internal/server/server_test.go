package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"taskhub/internal/domain/errors"
	"taskhub/internal/domain/models"
	inmemory "taskhub/repository/inmemory"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) GetUserByID(id string) (*models.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockRepository) GetUserByEmail(email string) (*models.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockRepository) CreateUser(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockRepository) UpdateUser(id string, user *models.User) error {
	args := m.Called(id, user)
	return args.Error(0)
}

type MockTaskRepository struct {
	mock.Mock
}

func (m *MockTaskRepository) CreateTask(ctx context.Context, task *models.Task) error {
	args := m.Called(ctx, task)
	return args.Error(0)
}

func (m *MockTaskRepository) GetTaskByID(ctx context.Context, id string) (*models.Task, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Task), args.Error(1)
}

func (m *MockTaskRepository) GetTasks(ctx context.Context) ([]models.Task, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Task), args.Error(1)
}

func (m *MockTaskRepository) GetTasksDueBetween(ctx context.Context, from, to time.Time) ([]models.Task, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Task), args.Error(1)
}

func (m *MockTaskRepository) UpdateTask(ctx context.Context, id string, task *models.Task) error {
	args := m.Called(ctx, id, task)
	return args.Error(0)
}

func (m *MockTaskRepository) DeleteTask(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type fakeMailer struct {
	sent chan string
}

func newFakeMailer() *fakeMailer {
	return &fakeMailer{sent: make(chan string, 10)}
}

func (f *fakeMailer) Send(to, subject, body string) error {
	f.sent <- to
	return nil
}

func testConfig() *Config {
	return &Config{
		Addr:      "127.0.0.1",
		Port:      8080,
		JWTSecret: "test-secret",
		UploadDir: "uploads",
	}
}

func newTestAPI(t *testing.T, users Repository, tasks TaskRepository) *TaskAPI {
	t.Helper()
	gin.SetMode(gin.TestMode)
	api := NewTaskAPI(testConfig(), users, tasks, nil, nil)
	assert.NotNil(t, api)
	return api
}

func doJSON(api *TaskAPI, method, path string, body interface{}) *httptest.ResponseRecorder {
	var reader *bytes.Buffer
	if body != nil {
		data, _ := json.Marshal(body)
		reader = bytes.NewBuffer(data)
	} else {
		reader = bytes.NewBuffer(nil)
	}
	req, _ := http.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	api.httpSrv.Handler.ServeHTTP(w, req)
	return w
}

func TestRegister(t *testing.T) {
	tests := []struct {
		name    string
		request models.RegisterRequest
		want    struct {
			statusCode int
		}
		mockSetup func(*MockRepository)
	}{
		{
			name: "successful registration",
			request: models.RegisterRequest{
				Username: "testuser",
				Email:    "test@example.com",
				Password: "password123",
			},
			want:      struct{ statusCode int }{statusCode: 201},
			mockSetup: func(mockRepo *MockRepository) {
				mockRepo.On("GetUserByEmail", "test@example.com").Return(nil, errors.ErrUserNotFound)
				mockRepo.On("CreateUser", mock.AnythingOfType("*models.User")).Return(nil)
			},
		},
		{
			name: "user already exists",
			request: models.RegisterRequest{
				Username: "existinguser",
				Email:    "existing@example.com",
				Password: "password123",
			},
			want: struct{ statusCode int }{statusCode: 409},
			mockSetup: func(mockRepo *MockRepository) {
				mockRepo.On("GetUserByEmail", "existing@example.com").
					Return(&models.User{ID: "user1", Email: "existing@example.com"}, nil)
			},
		},
		{
			name: "invalid email",
			request: models.RegisterRequest{
				Username: "testuser",
				Email:    "not-an-email",
				Password: "password123",
			},
			want:      struct{ statusCode int }{statusCode: 400},
			mockSetup: func(mockRepo *MockRepository) {},
		},
		{
			name: "password too short",
			request: models.RegisterRequest{
				Username: "testuser",
				Email:    "test@example.com",
				Password: "123",
			},
			want:      struct{ statusCode int }{statusCode: 400},
			mockSetup: func(mockRepo *MockRepository) {},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockUsers := new(MockRepository)
			tt.mockSetup(mockUsers)
			api := newTestAPI(t, mockUsers, new(MockTaskRepository))

			w := doJSON(api, "POST", "/api/auth/register", tt.request)

			assert.Equal(t, tt.want.statusCode, w.Code)
			mockUsers.AssertExpectations(t)
		})
	}
}

func TestLogin(t *testing.T) {
	hash, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	storedUser := &models.User{
		ID:       "user123",
		Username: "testuser",
		Email:    "test@example.com",
		Password: string(hash),
	}

	tests := []struct {
		name    string
		request models.LoginRequest
		want    struct {
			statusCode int
			hasToken   bool
		}
		mockSetup func(*MockRepository)
	}{
		{
			name: "successful login",
			request: models.LoginRequest{
				Email:    "test@example.com",
				Password: "password123",
			},
			want: struct {
				statusCode int
				hasToken   bool
			}{
				statusCode: 200,
				hasToken:   true,
			},
			mockSetup: func(mockRepo *MockRepository) {
				mockRepo.On("GetUserByEmail", "test@example.com").Return(storedUser, nil)
			},
		},
		{
			name: "user not found",
			request: models.LoginRequest{
				Email:    "missing@example.com",
				Password: "password123",
			},
			want: struct {
				statusCode int
				hasToken   bool
			}{
				statusCode: 404,
				hasToken:   false,
			},
			mockSetup: func(mockRepo *MockRepository) {
				mockRepo.On("GetUserByEmail", "missing@example.com").Return(nil, errors.ErrUserNotFound)
			},
		},
		{
			name: "wrong password",
			request: models.LoginRequest{
				Email:    "test@example.com",
				Password: "wrongpassword",
			},
			want: struct {
				statusCode int
				hasToken   bool
			}{
				statusCode: 401,
				hasToken:   false,
			},
			mockSetup: func(mockRepo *MockRepository) {
				mockRepo.On("GetUserByEmail", "test@example.com").Return(storedUser, nil)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockUsers := new(MockRepository)
			tt.mockSetup(mockUsers)
			api := newTestAPI(t, mockUsers, new(MockTaskRepository))

			w := doJSON(api, "POST", "/api/auth/login", tt.request)

			assert.Equal(t, tt.want.statusCode, w.Code)

			var resp map[string]interface{}
			_ = json.Unmarshal(w.Body.Bytes(), &resp)
			if tt.want.hasToken {
				assert.NotEmpty(t, resp["token"])
			} else {
				assert.Empty(t, resp["token"])
			}
		})
	}
}

func TestProfile(t *testing.T) {
	storedUser := &models.User{
		ID:       "user123",
		Username: "testuser",
		Email:    "test@example.com",
		Password: "hash",
	}

	t.Run("missing token", func(t *testing.T) {
		api := newTestAPI(t, new(MockRepository), new(MockTaskRepository))
		w := doJSON(api, "GET", "/api/auth/profile", nil)
		assert.Equal(t, 401, w.Code)
	})

	t.Run("invalid token", func(t *testing.T) {
		api := newTestAPI(t, new(MockRepository), new(MockTaskRepository))
		req, _ := http.NewRequest("GET", "/api/auth/profile", nil)
		req.Header.Set("Authorization", "Bearer not-a-token")
		w := httptest.NewRecorder()
		api.httpSrv.Handler.ServeHTTP(w, req)
		assert.Equal(t, 401, w.Code)
	})

	t.Run("valid token excludes password", func(t *testing.T) {
		mockUsers := new(MockRepository)
		userCopy := *storedUser
		mockUsers.On("GetUserByID", "user123").Return(&userCopy, nil)
		api := newTestAPI(t, mockUsers, new(MockTaskRepository))

		token, err := generateToken("test-secret", "user123")
		assert.NoError(t, err)

		req, _ := http.NewRequest("GET", "/api/auth/profile", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		api.httpSrv.Handler.ServeHTTP(w, req)

		assert.Equal(t, 200, w.Code)
		assert.Contains(t, w.Body.String(), "testuser")
		assert.NotContains(t, w.Body.String(), "hash")
	})

	t.Run("update profile", func(t *testing.T) {
		mockUsers := new(MockRepository)
		userCopy := *storedUser
		mockUsers.On("GetUserByID", "user123").Return(&userCopy, nil)
		mockUsers.On("UpdateUser", "user123", mock.AnythingOfType("*models.User")).Return(nil)
		api := newTestAPI(t, mockUsers, new(MockTaskRepository))

		token, _ := generateToken("test-secret", "user123")

		body := models.UpdateProfileRequest{
			FullName:      "Test User",
			Bio:           "bio",
			Theme:         "dark",
			Notifications: true,
		}
		data, _ := json.Marshal(body)
		req, _ := http.NewRequest("PUT", "/api/auth/profile", bytes.NewBuffer(data))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		api.httpSrv.Handler.ServeHTTP(w, req)

		assert.Equal(t, 200, w.Code)
		assert.Contains(t, w.Body.String(), "Test User")
		mockUsers.AssertExpectations(t)
	})
}

func TestCreateTask(t *testing.T) {
	tests := []struct {
		name    string
		request models.CreateTaskRequest
		want    struct {
			statusCode int
			errSubstr  string
		}
	}{
		{
			name: "successful creation defaults to pending",
			request: models.CreateTaskRequest{
				Title:       "T",
				Description: "D",
				Deadline:    "2030-01-01",
				Priority:    "High",
				Category:    "Ops",
			},
			want: struct {
				statusCode int
				errSubstr  string
			}{
				statusCode: 201,
			},
		},
		{
			name: "missing fields listed in one error",
			request: models.CreateTaskRequest{
				Title:    "T",
				Priority: "High",
			},
			want: struct {
				statusCode int
				errSubstr  string
			}{
				statusCode: 400,
				errSubstr:  "description, deadline, category",
			},
		},
		{
			name: "invalid priority",
			request: models.CreateTaskRequest{
				Title:       "T",
				Description: "D",
				Deadline:    "2030-01-01",
				Priority:    "Urgent",
				Category:    "Ops",
			},
			want: struct {
				statusCode int
				errSubstr  string
			}{
				statusCode: 400,
			},
		},
		{
			name: "malformed deadline",
			request: models.CreateTaskRequest{
				Title:       "T",
				Description: "D",
				Deadline:    "tomorrow",
				Priority:    "High",
				Category:    "Ops",
			},
			want: struct {
				statusCode int
				errSubstr  string
			}{
				statusCode: 400,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := newTestAPI(t, new(MockRepository), inmemory.NewStorage())

			w := doJSON(api, "POST", "/api/tasks", tt.request)

			assert.Equal(t, tt.want.statusCode, w.Code)
			if tt.want.statusCode == 201 {
				assert.Contains(t, w.Body.String(), `"status":"Pending"`)
			}
			if tt.want.errSubstr != "" {
				assert.Contains(t, w.Body.String(), tt.want.errSubstr)
			}
		})
	}
}

func createTestTask(t *testing.T, api *TaskAPI, title, deadline, priority, category string) models.Task {
	t.Helper()
	w := doJSON(api, "POST", "/api/tasks", models.CreateTaskRequest{
		Title:       title,
		Description: "D",
		Deadline:    deadline,
		Priority:    priority,
		Category:    category,
	})
	assert.Equal(t, 201, w.Code)

	var resp struct {
		Task models.Task `json:"task"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.Task
}

func TestGetTasksOrdering(t *testing.T) {
	api := newTestAPI(t, new(MockRepository), inmemory.NewStorage())

	// Две задачи с одинаковым сроком и третья с более поздним.
	createTestTask(t, api, "medium-early", "2030-01-01", "Medium", "Ops")
	createTestTask(t, api, "high-late", "2030-02-01", "High", "Ops")
	createTestTask(t, api, "low-early", "2030-01-01", "Low", "Ops")
	createTestTask(t, api, "high-early", "2030-01-01", "High", "Ops")

	w := doJSON(api, "GET", "/api/tasks", nil)
	assert.Equal(t, 200, w.Code)

	var resp struct {
		Tasks []models.Task `json:"tasks"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Tasks, 4)

	// При равных сроках приоритеты идут в лексикографическом порядке
	// текста: High, Low, Medium — не по важности.
	assert.Equal(t, "high-early", resp.Tasks[0].Title)
	assert.Equal(t, "low-early", resp.Tasks[1].Title)
	assert.Equal(t, "medium-early", resp.Tasks[2].Title)
	assert.Equal(t, "high-late", resp.Tasks[3].Title)
}

func TestUpdateTaskStatus(t *testing.T) {
	tests := []struct {
		name   string
		status string
		want   struct {
			statusCode int
		}
	}{
		{
			name:   "valid status",
			status: "Completed",
			want:   struct{ statusCode int }{statusCode: 200},
		},
		{
			name:   "in progress with space",
			status: "In Progress",
			want:   struct{ statusCode int }{statusCode: 200},
		},
		{
			name:   "invalid status",
			status: "Done",
			want:   struct{ statusCode int }{statusCode: 400},
		},
		{
			name:   "empty status",
			status: "",
			want:   struct{ statusCode int }{statusCode: 400},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := newTestAPI(t, new(MockRepository), inmemory.NewStorage())
			task := createTestTask(t, api, "T", "2030-01-01", "High", "Ops")

			w := doJSON(api, "PATCH", "/api/tasks/"+task.ID+"/status", models.SetStatusRequest{Status: tt.status})
			assert.Equal(t, tt.want.statusCode, w.Code)

			// При отказе статус не должен меняться.
			list := doJSON(api, "GET", "/api/tasks", nil)
			if tt.want.statusCode == 200 {
				assert.Contains(t, list.Body.String(), fmt.Sprintf("%q", tt.status))
			} else {
				assert.Contains(t, list.Body.String(), `"status":"Pending"`)
			}
		})
	}
}

func TestUpdateTaskStatusNotFound(t *testing.T) {
	api := newTestAPI(t, new(MockRepository), inmemory.NewStorage())
	w := doJSON(api, "PATCH", "/api/tasks/missing/status", models.SetStatusRequest{Status: "Completed"})
	assert.Equal(t, 404, w.Code)
}

func TestSharing(t *testing.T) {
	api := newTestAPI(t, new(MockRepository), inmemory.NewStorage())
	task := createTestTask(t, api, "T", "2030-01-01", "High", "Ops")

	// Повторное предоставление доступа тому же пользователю даёт две записи.
	w := doJSON(api, "POST", "/api/tasks/"+task.ID+"/share", models.ShareTaskRequest{User: "alice", Permission: "view"})
	assert.Equal(t, 200, w.Code)
	w = doJSON(api, "POST", "/api/tasks/"+task.ID+"/share", models.ShareTaskRequest{User: "alice", Permission: "view"})
	assert.Equal(t, 200, w.Code)

	var resp struct {
		Task models.Task `json:"task"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Task.SharedWith, 2)

	// Обновление меняет только первую запись.
	w = doJSON(api, "PATCH", "/api/tasks/"+task.ID+"/share/alice", models.UpdateSharingRequest{Permission: "edit"})
	assert.Equal(t, 200, w.Code)
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "edit", resp.Task.SharedWith[0].Permission)
	assert.Equal(t, "view", resp.Task.SharedWith[1].Permission)

	// Отзыв удаляет обе записи.
	w = doJSON(api, "DELETE", "/api/tasks/"+task.ID+"/share/alice", nil)
	assert.Equal(t, 200, w.Code)
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Task.SharedWith, 0)
}

func TestSharingErrors(t *testing.T) {
	api := newTestAPI(t, new(MockRepository), inmemory.NewStorage())
	task := createTestTask(t, api, "T", "2030-01-01", "High", "Ops")

	t.Run("share missing fields", func(t *testing.T) {
		w := doJSON(api, "POST", "/api/tasks/"+task.ID+"/share", models.ShareTaskRequest{User: "alice"})
		assert.Equal(t, 400, w.Code)
	})

	t.Run("share unknown task", func(t *testing.T) {
		w := doJSON(api, "POST", "/api/tasks/missing/share", models.ShareTaskRequest{User: "alice", Permission: "view"})
		assert.Equal(t, 404, w.Code)
	})

	t.Run("update sharing for unknown user", func(t *testing.T) {
		w := doJSON(api, "PATCH", "/api/tasks/"+task.ID+"/share/nobody", models.UpdateSharingRequest{Permission: "edit"})
		assert.Equal(t, 404, w.Code)
	})

	t.Run("revoke with zero matches succeeds", func(t *testing.T) {
		w := doJSON(api, "DELETE", "/api/tasks/"+task.ID+"/share/nobody", nil)
		assert.Equal(t, 200, w.Code)
	})
}

func TestComments(t *testing.T) {
	api := newTestAPI(t, new(MockRepository), inmemory.NewStorage())
	task := createTestTask(t, api, "T", "2030-01-01", "High", "Ops")

	w := doJSON(api, "POST", "/api/tasks/"+task.ID+"/comments", models.AddCommentRequest{Content: "hello", Author: "alice"})
	assert.Equal(t, 201, w.Code)

	var commentsResp struct {
		Comments []models.Comment `json:"comments"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &commentsResp))
	assert.Len(t, commentsResp.Comments, 1)
	commentID := commentsResp.Comments[0].ID
	assert.NotEmpty(t, commentID)

	w = doJSON(api, "POST", "/api/tasks/"+task.ID+"/comments/"+commentID+"/replies",
		models.AddCommentRequest{Content: "hi", Author: "bob"})
	assert.Equal(t, 201, w.Code)

	var replyResp struct {
		Comment models.Comment `json:"comment"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &replyResp))
	assert.Len(t, replyResp.Comment.Replies, 1)

	w = doJSON(api, "GET", "/api/tasks/"+task.ID+"/comments", nil)
	assert.Equal(t, 200, w.Code)
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &commentsResp))
	assert.Len(t, commentsResp.Comments, 1)
	assert.Len(t, commentsResp.Comments[0].Replies, 1)
}

func TestCommentsErrors(t *testing.T) {
	api := newTestAPI(t, new(MockRepository), inmemory.NewStorage())
	task := createTestTask(t, api, "T", "2030-01-01", "High", "Ops")

	t.Run("comment missing author", func(t *testing.T) {
		w := doJSON(api, "POST", "/api/tasks/"+task.ID+"/comments", models.AddCommentRequest{Content: "hello"})
		assert.Equal(t, 400, w.Code)
	})

	t.Run("reply to unknown comment leaves task unchanged", func(t *testing.T) {
		w := doJSON(api, "POST", "/api/tasks/"+task.ID+"/comments/unknown/replies",
			models.AddCommentRequest{Content: "hi", Author: "bob"})
		assert.Equal(t, 404, w.Code)

		list := doJSON(api, "GET", "/api/tasks/"+task.ID+"/comments", nil)
		var commentsResp struct {
			Comments []models.Comment `json:"comments"`
		}
		assert.NoError(t, json.Unmarshal(list.Body.Bytes(), &commentsResp))
		assert.Len(t, commentsResp.Comments, 0)
	})

	t.Run("comments of unknown task", func(t *testing.T) {
		w := doJSON(api, "GET", "/api/tasks/missing/comments", nil)
		assert.Equal(t, 404, w.Code)
	})
}

func TestUpdateTaskNotifiesAssignee(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mailer := newFakeMailer()
	api := NewTaskAPI(testConfig(), new(MockRepository), inmemory.NewStorage(), mailer, nil)
	assert.NotNil(t, api)

	task := createTestTask(t, api, "T", "2030-01-01", "High", "Ops")

	w := doJSON(api, "PUT", "/api/tasks/"+task.ID, models.UpdateTaskRequest{
		Status:        "Completed",
		AssigneeEmail: "assignee@example.com",
	})
	assert.Equal(t, 200, w.Code)

	select {
	case to := <-mailer.sent:
		assert.Equal(t, "assignee@example.com", to)
	case <-time.After(time.Second):
		t.Fatal("notification was not dispatched")
	}
}

func TestTaskLifecycleEndToEnd(t *testing.T) {
	api := newTestAPI(t, new(MockRepository), inmemory.NewStorage())

	task := createTestTask(t, api, "T", "2030-01-01", "High", "Ops")
	assert.Equal(t, "Pending", task.Status)

	w := doJSON(api, "PATCH", "/api/tasks/"+task.ID+"/status", models.SetStatusRequest{Status: "Completed"})
	assert.Equal(t, 200, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"Completed"`)

	w = doJSON(api, "DELETE", "/api/tasks/"+task.ID, nil)
	assert.Equal(t, 200, w.Code)

	w = doJSON(api, "GET", "/api/tasks", nil)
	assert.Equal(t, 200, w.Code)
	assert.NotContains(t, w.Body.String(), task.ID)

	w = doJSON(api, "DELETE", "/api/tasks/"+task.ID, nil)
	assert.Equal(t, 404, w.Code)
}

func TestProgressReport(t *testing.T) {
	t.Run("renders png", func(t *testing.T) {
		api := newTestAPI(t, new(MockRepository), inmemory.NewStorage())
		createTestTask(t, api, "A", "2030-01-01", "High", "Ops")
		createTestTask(t, api, "B", "2030-01-02", "Low", "Dev")

		w := doJSON(api, "GET", "/api/tasks/reports/progress", nil)
		assert.Equal(t, 200, w.Code)
		assert.Equal(t, "image/png", w.Header().Get("Content-Type"))
		body := w.Body.Bytes()
		assert.True(t, len(body) > 4)
		assert.Equal(t, []byte{0x89, 0x50, 0x4E, 0x47}, body[:4])
	})

	t.Run("no tasks", func(t *testing.T) {
		api := newTestAPI(t, new(MockRepository), inmemory.NewStorage())
		w := doJSON(api, "GET", "/api/tasks/reports/progress", nil)
		assert.Equal(t, 404, w.Code)
	})
}

func TestTaskRoutesAuthGate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cfg := testConfig()
	cfg.AuthTasks = true
	api := NewTaskAPI(cfg, new(MockRepository), inmemory.NewStorage(), nil, nil)
	assert.NotNil(t, api)

	w := doJSON(api, "GET", "/api/tasks", nil)
	assert.Equal(t, 401, w.Code)

	token, err := generateToken(cfg.JWTSecret, "user123")
	assert.NoError(t, err)

	req, _ := http.NewRequest("GET", "/api/tasks", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	api.httpSrv.Handler.ServeHTTP(rec, req)
	assert.Equal(t, 200, rec.Code)
}

func TestExpiredToken(t *testing.T) {
	api := newTestAPI(t, new(MockRepository), new(MockTaskRepository))

	req, _ := http.NewRequest("GET", "/api/auth/profile", nil)
	req.Header.Set("Authorization", "Bearer "+expiredTestToken("test-secret"))
	w := httptest.NewRecorder()
	api.httpSrv.Handler.ServeHTTP(w, req)
	assert.Equal(t, 401, w.Code)
}
