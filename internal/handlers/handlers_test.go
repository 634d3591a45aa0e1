package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
	"github.com/yukikurage/taskflow/internal/config"
	"github.com/yukikurage/taskflow/internal/constants"
	"github.com/yukikurage/taskflow/internal/database"
	"github.com/yukikurage/taskflow/internal/dto"
	apierrors "github.com/yukikurage/taskflow/internal/errors"
	"github.com/yukikurage/taskflow/internal/middleware"
	"github.com/yukikurage/taskflow/internal/models"
	"github.com/yukikurage/taskflow/internal/repository"
	"github.com/yukikurage/taskflow/internal/services"
	"gorm.io/gorm"
)

// HandlerTestSuite defines the test suite for the task and project handlers
type HandlerTestSuite struct {
	suite.Suite
	db     *gorm.DB
	router *gin.Engine
}

// SetupTest runs before each test
func (suite *HandlerTestSuite) SetupTest() {
	cfg := config.Default()
	cfg.DBPath = filepath.Join(suite.T().TempDir(), "handlers-test.db")
	cfg.LogLevel = "silent"

	var err error
	suite.db, err = database.Connect(cfg)
	suite.Require().NoError(err)
	suite.Require().NoError(database.Migrate(suite.db))

	taskRepo := repository.NewTaskRepository(suite.db)
	projectRepo := repository.NewProjectRepository(suite.db)

	// Set Gin to test mode
	gin.SetMode(gin.TestMode)

	suite.router = gin.New()
	suite.router.Use(middleware.RequestID())
	Register(suite.router,
		NewTaskHandler(services.NewTaskService(taskRepo, projectRepo)),
		NewProjectHandler(services.NewProjectService(projectRepo)),
	)
}

// TearDownTest runs after each test
func (suite *HandlerTestSuite) TearDownTest() {
	database.Close(suite.db)
}

func (suite *HandlerTestSuite) request(method, url, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, url, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, url, nil)
	}

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	suite.NotEmpty(w.Header().Get(constants.HeaderRequestID))
	return w
}

func (suite *HandlerTestSuite) decode(w *httptest.ResponseRecorder, v interface{}) {
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), v))
}

func (suite *HandlerTestSuite) createTask(body string) models.Task {
	w := suite.request(http.MethodPost, "/api/tasks", body)
	suite.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	var task models.Task
	suite.decode(w, &task)
	return task
}

func (suite *HandlerTestSuite) createProject(body string) models.Project {
	w := suite.request(http.MethodPost, "/api/projects", body)
	suite.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	var project models.Project
	suite.decode(w, &project)
	return project
}

func (suite *HandlerTestSuite) TestHealth() {
	w := suite.request(http.MethodGet, "/health", "")
	suite.Equal(http.StatusOK, w.Code)
}

func (suite *HandlerTestSuite) TestListTasks_Empty() {
	w := suite.request(http.MethodGet, "/api/tasks", "")
	suite.Equal(http.StatusOK, w.Code)
	suite.JSONEq(`{"tasks":[]}`, w.Body.String())
}

func (suite *HandlerTestSuite) TestCreateTask_Success() {
	project := suite.createProject(`{"name":"Work","color":"#10b981"}`)

	w := suite.request(http.MethodPost, "/api/tasks",
		`{"title":"Ship release","priority":2,"projectId":`+jsonID(project.ID)+`,"dueDate":"2026-07-01T00:00:00Z"}`)
	suite.Equal(http.StatusCreated, w.Code)

	var raw map[string]interface{}
	suite.decode(w, &raw)
	suite.Equal("Ship release", raw["title"])
	suite.Equal(float64(2), raw["priority"])
	suite.Equal("pending", raw["status"])
	suite.Equal(float64(project.ID), raw["projectId"])
	suite.Contains(raw, "createdAt")
	suite.Contains(raw, "updatedAt")
	suite.NotContains(raw, "completedAt")
}

func (suite *HandlerTestSuite) TestCreateTask_Validation() {
	w := suite.request(http.MethodPost, "/api/tasks", `{"title":"   "}`)
	suite.Equal(http.StatusBadRequest, w.Code)

	var apiErr apierrors.APIError
	suite.decode(w, &apiErr)
	suite.Equal(apierrors.ErrCodeInvalidInput, apiErr.Code)
	suite.Equal("title is required", apiErr.Message)

	w = suite.request(http.MethodPost, "/api/tasks", `{"title":`)
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *HandlerTestSuite) TestGetTask() {
	task := suite.createTask(`{"title":"Read book"}`)

	w := suite.request(http.MethodGet, "/api/tasks/"+jsonID(task.ID), "")
	suite.Equal(http.StatusOK, w.Code)

	w = suite.request(http.MethodGet, "/api/tasks/999", "")
	suite.Equal(http.StatusNotFound, w.Code)

	var apiErr apierrors.APIError
	suite.decode(w, &apiErr)
	suite.Equal(apierrors.ErrCodeNotFound, apiErr.Code)

	w = suite.request(http.MethodGet, "/api/tasks/abc", "")
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *HandlerTestSuite) TestUpdateTask_StatusAndNulls() {
	project := suite.createProject(`{"name":"Home"}`)
	task := suite.createTask(`{"title":"Clean garage","projectId":` + jsonID(project.ID) + `}`)

	w := suite.request(http.MethodPatch, "/api/tasks/"+jsonID(task.ID), `{"status":"completed","projectId":null}`)
	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	var updated models.Task
	suite.decode(w, &updated)
	suite.Equal(models.TaskStatusCompleted, updated.Status)
	suite.NotNil(updated.CompletedAt)
	suite.Nil(updated.ProjectID)

	w = suite.request(http.MethodPatch, "/api/tasks/"+jsonID(task.ID), `{"status":"pending"}`)
	suite.Require().Equal(http.StatusOK, w.Code)
	var reopened models.Task
	suite.decode(w, &reopened)
	suite.Equal(models.TaskStatusPending, reopened.Status)
	suite.Nil(reopened.CompletedAt)
}

func (suite *HandlerTestSuite) TestUpdateTask_NotFound() {
	w := suite.request(http.MethodPatch, "/api/tasks/42", `{"title":"x"}`)
	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *HandlerTestSuite) TestDeleteTask() {
	parent := suite.createTask(`{"title":"Plan trip"}`)
	suite.createTask(`{"title":"Book hotel","parentTaskId":` + jsonID(parent.ID) + `}`)

	w := suite.request(http.MethodDelete, "/api/tasks/"+jsonID(parent.ID), "")
	suite.Equal(http.StatusOK, w.Code)

	var resp dto.DeleteResponse
	suite.decode(w, &resp)
	suite.True(resp.Deleted)

	w = suite.request(http.MethodGet, "/api/tasks", "")
	suite.JSONEq(`{"tasks":[]}`, w.Body.String())

	w = suite.request(http.MethodDelete, "/api/tasks/"+jsonID(parent.ID), "")
	suite.Equal(http.StatusOK, w.Code)
	suite.decode(w, &resp)
	suite.False(resp.Deleted)
}

func (suite *HandlerTestSuite) TestProjects_CRUD() {
	project := suite.createProject(`{"name":"Garden"}`)
	suite.Equal(constants.DefaultProjectColor, project.Color)

	w := suite.request(http.MethodPatch, "/api/projects/"+jsonID(project.ID), `{"color":"#22c55e"}`)
	suite.Require().Equal(http.StatusOK, w.Code)
	suite.decode(w, &project)
	suite.Equal("#22c55e", project.Color)

	w = suite.request(http.MethodPatch, "/api/projects/"+jsonID(project.ID), `{"color":"red"}`)
	suite.Equal(http.StatusBadRequest, w.Code)

	w = suite.request(http.MethodGet, "/api/projects", "")
	suite.Require().Equal(http.StatusOK, w.Code)
	var list dto.ProjectListResponse
	suite.decode(w, &list)
	suite.Len(list.Projects, 1)

	w = suite.request(http.MethodDelete, "/api/projects/"+jsonID(project.ID), "")
	suite.Equal(http.StatusOK, w.Code)

	w = suite.request(http.MethodGet, "/api/projects/"+jsonID(project.ID), "")
	suite.Equal(http.StatusNotFound, w.Code)
}

func TestHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(HandlerTestSuite))
}

func jsonID(id uint64) string {
	b, _ := json.Marshal(id)
	return string(b)
}
