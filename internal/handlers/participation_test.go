package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/citygarden/community-task-api/internal/models"
	"github.com/citygarden/community-task-api/internal/repository"
	"github.com/citygarden/community-task-api/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// ParticipationHandlerTestSuite defines the test suite for ParticipationHandler
type ParticipationHandlerTestSuite struct {
	suite.Suite
	db      *gorm.DB
	handler *ParticipationHandler
	router  *gin.Engine
}

// SetupTest runs before each test
func (suite *ParticipationHandlerTestSuite) SetupTest() {
	var err error

	// Create in-memory SQLite database
	suite.db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	suite.Require().NoError(err)

	err = suite.db.AutoMigrate(
		&models.User{},
		&models.Task{},
		&models.Participation{},
	)
	suite.Require().NoError(err)

	participationRepo := repository.NewParticipationRepository(suite.db)
	taskRepo := repository.NewTaskRepository(suite.db)
	service := services.NewParticipationService(participationRepo, taskRepo)
	suite.handler = NewParticipationHandler(service)

	// Set Gin to test mode
	gin.SetMode(gin.TestMode)

	suite.router = gin.New()
	suite.router.POST("/tasks/:id/claim", suite.handler.Claim)
	suite.router.POST("/tasks/:id/submit", suite.handler.Submit)
	suite.router.GET("/participations", suite.handler.ListAll)
	suite.router.GET("/participations/pending", suite.handler.ListPending)
	suite.router.POST("/participations/:id/review", suite.handler.Review)
}

// TearDownTest runs after each test
func (suite *ParticipationHandlerTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

func (suite *ParticipationHandlerTestSuite) createTestTask(title string) *models.Task {
	task := &models.Task{
		Title:  title,
		Type:   models.TaskTypeOther,
		Points: 10,
		Status: models.TaskStatusOpen,
	}
	suite.db.Create(task)
	return task
}

func (suite *ParticipationHandlerTestSuite) doJSON(method, url string, payload any) *httptest.ResponseRecorder {
	var body []byte
	if payload != nil {
		var err error
		body, err = json.Marshal(payload)
		suite.Require().NoError(err)
	}

	req := httptest.NewRequest(method, url, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *ParticipationHandlerTestSuite) TestClaim_Success() {
	task := suite.createTestTask("Water the garden")

	w := suite.doJSON("POST", "/tasks/1/claim", map[string]string{"userName": "alice"})
	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var resp map[string]interface{}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(suite.T(), "claimed", resp["status"])
	assert.Equal(suite.T(), "alice", resp["user_name"])
	assert.EqualValues(suite.T(), task.ID, resp["task_id"])
}

func (suite *ParticipationHandlerTestSuite) TestClaim_Idempotent() {
	suite.createTestTask("Water the garden")

	first := suite.doJSON("POST", "/tasks/1/claim", map[string]string{"userName": "alice"})
	second := suite.doJSON("POST", "/tasks/1/claim", map[string]string{"userName": "alice"})
	assert.Equal(suite.T(), http.StatusOK, first.Code)
	assert.Equal(suite.T(), http.StatusOK, second.Code)

	var p1, p2 map[string]interface{}
	suite.Require().NoError(json.Unmarshal(first.Body.Bytes(), &p1))
	suite.Require().NoError(json.Unmarshal(second.Body.Bytes(), &p2))
	assert.Equal(suite.T(), p1["id"], p2["id"])

	var count int64
	suite.db.Model(&models.Participation{}).Count(&count)
	assert.Equal(suite.T(), int64(1), count)
}

func (suite *ParticipationHandlerTestSuite) TestClaim_MissingUserName() {
	suite.createTestTask("Water the garden")

	w := suite.doJSON("POST", "/tasks/1/claim", map[string]string{})
	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)

	var resp map[string]interface{}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(suite.T(), "MISSING_FIELD", resp["code"])
}

func (suite *ParticipationHandlerTestSuite) TestClaim_UnknownTask() {
	w := suite.doJSON("POST", "/tasks/42/claim", map[string]string{"userName": "alice"})
	assert.Equal(suite.T(), http.StatusNotFound, w.Code)
}

func (suite *ParticipationHandlerTestSuite) TestSubmit_WithoutClaim() {
	suite.createTestTask("Water the garden")

	w := suite.doJSON("POST", "/tasks/1/submit", map[string]string{
		"userName":  "alice",
		"proofNote": "watered everything",
	})
	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var resp map[string]interface{}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(suite.T(), "submitted", resp["status"])
	assert.Equal(suite.T(), "watered everything", resp["proof_note"])
}

func (suite *ParticipationHandlerTestSuite) TestSubmit_ProofNoteOptional() {
	suite.createTestTask("Water the garden")

	w := suite.doJSON("POST", "/tasks/1/submit", map[string]string{"userName": "alice"})
	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var resp map[string]interface{}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(suite.T(), "submitted", resp["status"])
	assert.Equal(suite.T(), "", resp["proof_note"])
}

func (suite *ParticipationHandlerTestSuite) TestSubmit_MissingUserName() {
	suite.createTestTask("Water the garden")

	w := suite.doJSON("POST", "/tasks/1/submit", map[string]string{"proofNote": "done"})
	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
}

func (suite *ParticipationHandlerTestSuite) TestReview_Approve() {
	suite.createTestTask("Water the garden")
	suite.doJSON("POST", "/tasks/1/submit", map[string]string{"userName": "alice", "proofNote": "done"})

	w := suite.doJSON("POST", "/participations/1/review", map[string]interface{}{
		"approve":    true,
		"reviewNote": "looks good",
	})
	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var resp map[string]interface{}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(suite.T(), "approved", resp["status"])
	assert.Equal(suite.T(), "looks good", resp["review_note"])
	assert.Equal(suite.T(), "done", resp["proof_note"])
}

func (suite *ParticipationHandlerTestSuite) TestReview_Reject() {
	suite.createTestTask("Water the garden")
	suite.doJSON("POST", "/tasks/1/submit", map[string]string{"userName": "alice", "proofNote": "done"})

	w := suite.doJSON("POST", "/participations/1/review", map[string]interface{}{
		"approve":    false,
		"reviewNote": "not enough proof",
	})
	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var resp map[string]interface{}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(suite.T(), "rejected", resp["status"])
	assert.Equal(suite.T(), "not enough proof", resp["review_note"])
}

func (suite *ParticipationHandlerTestSuite) TestReview_NotFound() {
	w := suite.doJSON("POST", "/participations/99/review", map[string]interface{}{"approve": true})
	assert.Equal(suite.T(), http.StatusNotFound, w.Code)
}

func (suite *ParticipationHandlerTestSuite) TestReview_ApproveFlagRequired() {
	suite.createTestTask("Water the garden")
	suite.doJSON("POST", "/tasks/1/submit", map[string]string{"userName": "alice"})

	w := suite.doJSON("POST", "/participations/1/review", map[string]interface{}{"reviewNote": "?"})
	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
}

func (suite *ParticipationHandlerTestSuite) TestReview_ClaimedConflict() {
	suite.createTestTask("Water the garden")
	suite.doJSON("POST", "/tasks/1/claim", map[string]string{"userName": "alice"})

	w := suite.doJSON("POST", "/participations/1/review", map[string]interface{}{"approve": true})
	assert.Equal(suite.T(), http.StatusConflict, w.Code)
}

func (suite *ParticipationHandlerTestSuite) TestListAll_NewestFirstWithTask() {
	task := suite.createTestTask("Water the garden")
	now := time.Now()
	suite.db.Create(&models.Participation{TaskID: task.ID, UserName: "alice", Status: models.ParticipationStatusClaimed, CreatedAt: now.Add(-time.Hour)})
	suite.db.Create(&models.Participation{TaskID: task.ID, UserName: "bob", Status: models.ParticipationStatusSubmitted, CreatedAt: now})

	w := suite.doJSON("GET", "/participations", nil)
	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var resp []map[string]interface{}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Require().Len(resp, 2)
	assert.Equal(suite.T(), "bob", resp[0]["user_name"])
	assert.Equal(suite.T(), "alice", resp[1]["user_name"])

	taskObj := resp[0]["task"].(map[string]interface{})
	assert.Equal(suite.T(), "Water the garden", taskObj["title"])
}

func (suite *ParticipationHandlerTestSuite) TestListPending_OldestFirst() {
	task := suite.createTestTask("Water the garden")
	now := time.Now()
	suite.db.Create(&models.Participation{TaskID: task.ID, UserName: "alice", Status: models.ParticipationStatusSubmitted, CreatedAt: now.Add(-time.Hour)})
	suite.db.Create(&models.Participation{TaskID: task.ID, UserName: "bob", Status: models.ParticipationStatusSubmitted, CreatedAt: now})
	suite.db.Create(&models.Participation{TaskID: task.ID, UserName: "carol", Status: models.ParticipationStatusApproved, CreatedAt: now})

	w := suite.doJSON("GET", "/participations/pending", nil)
	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var resp []map[string]interface{}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Require().Len(resp, 2)
	assert.Equal(suite.T(), "alice", resp[0]["user_name"])
	assert.Equal(suite.T(), "bob", resp[1]["user_name"])
}

// TestWorkflow_ClaimSubmitReview walks one participation through the whole
// claim, submit, approve flow.
func (suite *ParticipationHandlerTestSuite) TestWorkflow_ClaimSubmitReview() {
	suite.createTestTask("Water the garden")

	w := suite.doJSON("POST", "/tasks/1/claim", map[string]string{"userName": "alice"})
	suite.Require().Equal(http.StatusOK, w.Code)

	w = suite.doJSON("POST", "/tasks/1/submit", map[string]string{"userName": "alice", "proofNote": "done"})
	suite.Require().Equal(http.StatusOK, w.Code)

	w = suite.doJSON("GET", "/participations/pending", nil)
	var pending []map[string]interface{}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &pending))
	suite.Require().Len(pending, 1)

	w = suite.doJSON("POST", "/participations/1/review", map[string]interface{}{
		"approve":    true,
		"reviewNote": "looks good",
	})
	suite.Require().Equal(http.StatusOK, w.Code)

	var reviewed map[string]interface{}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &reviewed))
	assert.Equal(suite.T(), "approved", reviewed["status"])
	assert.Equal(suite.T(), "looks good", reviewed["review_note"])

	w = suite.doJSON("GET", "/participations/pending", nil)
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &pending))
	assert.Empty(suite.T(), pending)
}

// TestParticipationHandlerTestSuite runs the test suite
func TestParticipationHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(ParticipationHandlerTestSuite))
}
