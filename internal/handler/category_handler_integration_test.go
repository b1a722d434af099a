package handler_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dfr8938/med-qa-new/internal/handler"
	"github.com/dfr8938/med-qa-new/internal/middleware"
	"github.com/dfr8938/med-qa-new/internal/models"
	"github.com/dfr8938/med-qa-new/internal/repository"
	"github.com/dfr8938/med-qa-new/internal/service"
	"github.com/dfr8938/med-qa-new/internal/testutil"
	"github.com/dfr8938/med-qa-new/internal/utils"
	"github.com/dfr8938/med-qa-new/pkg/logger"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type CategoryHandlerIntegrationTestSuite struct {
	suite.Suite
	testDB *testutil.TestDatabase
	router *gin.Engine
}

func (s *CategoryHandlerIntegrationTestSuite) SetupSuite() {
	gin.SetMode(gin.TestMode)
	logger.Init(false)

	s.testDB = testutil.SetupTestDatabase(s.T())

	userRepo := repository.NewUserRepository(s.testDB.DB)
	categoryRepo := repository.NewCategoryRepository(s.testDB.DB)
	questionRepo := repository.NewQuestionRepository(s.testDB.DB)
	actionLogRepo := repository.NewActionLogRepository(s.testDB.DB)

	categoryService := service.NewCategoryService(categoryRepo, questionRepo)
	actionLogService := service.NewActionLogService(actionLogRepo)

	categoryHandler := handler.NewCategoryHandler(categoryService, actionLogService)
	authRequired := middleware.AuthMiddleware(testJWTSecret, userRepo)

	s.router = gin.New()
	categories := s.router.Group("/api/categories")
	{
		categories.GET("", categoryHandler.GetAll)

		admin := categories.Group("", authRequired, middleware.RequireAdmin())
		{
			admin.POST("", categoryHandler.Create)
			admin.PUT("/:id", categoryHandler.Update)
			admin.DELETE("/:id", categoryHandler.Delete)
			admin.GET("/:id/questions", categoryHandler.GetQuestions)
			admin.DELETE("/:id/questions", categoryHandler.DeleteQuestions)
		}
	}
}

func (s *CategoryHandlerIntegrationTestSuite) TearDownSuite() {
	s.testDB.Teardown(s.T())
}

func (s *CategoryHandlerIntegrationTestSuite) SetupTest() {
	testutil.CleanDatabase(s.T(), s.testDB.DB)
}

// adminToken creates an admin user and returns a valid bearer token for it.
func (s *CategoryHandlerIntegrationTestSuite) adminToken() string {
	user, err := testutil.DefaultAdminUser()
	require.NoError(s.T(), err)
	require.NoError(s.T(), s.testDB.DB.Create(user).Error)

	token, err := utils.GenerateToken(user, testJWTSecret, time.Hour)
	require.NoError(s.T(), err)
	return token
}

func (s *CategoryHandlerIntegrationTestSuite) doJSON(method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		require.NoError(s.T(), json.NewEncoder(&buf).Encode(body))
	}

	req, _ := http.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *CategoryHandlerIntegrationTestSuite) TestCreateSuccess() {
	token := s.adminToken()

	w := s.doJSON(http.MethodPost, "/api/categories", token, map[string]string{
		"name":        "Кардиология",
		"description": "Вопросы о сердце",
	})

	assert.Equal(s.T(), http.StatusCreated, w.Code)

	var category models.Category
	require.NoError(s.T(), json.Unmarshal(w.Body.Bytes(), &category))
	assert.NotZero(s.T(), category.ID)
	assert.Equal(s.T(), "Кардиология", category.Name)
}

func (s *CategoryHandlerIntegrationTestSuite) TestCreateDuplicateName() {
	token := s.adminToken()
	require.NoError(s.T(), s.testDB.DB.Create(testutil.CreateTestCategory("Кардиология", "")).Error)

	w := s.doJSON(http.MethodPost, "/api/categories", token, map[string]string{
		"name": "Кардиология",
	})

	assert.Equal(s.T(), http.StatusBadRequest, w.Code)

	var response map[string]string
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(s.T(), "Категория с таким названием уже существует", response["message"])
}

func (s *CategoryHandlerIntegrationTestSuite) TestCreateEmptyName() {
	token := s.adminToken()

	w := s.doJSON(http.MethodPost, "/api/categories", token, map[string]string{
		"description": "без названия",
	})

	assert.Equal(s.T(), http.StatusBadRequest, w.Code)

	var response map[string]string
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(s.T(), "Название категории обязательно для заполнения", response["message"])
}

func (s *CategoryHandlerIntegrationTestSuite) TestCreateRequiresAdminRole() {
	user, err := testutil.CreateTestUser("plainuser", "plain@example.com", "secret123", models.RoleUser)
	require.NoError(s.T(), err)
	require.NoError(s.T(), s.testDB.DB.Create(user).Error)

	token, err := utils.GenerateToken(user, testJWTSecret, time.Hour)
	require.NoError(s.T(), err)

	w := s.doJSON(http.MethodPost, "/api/categories", token, map[string]string{
		"name": "Кардиология",
	})

	assert.Equal(s.T(), http.StatusForbidden, w.Code)

	var response map[string]string
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(s.T(), "Доступ запрещен. Требуются права администратора", response["message"])
}

func (s *CategoryHandlerIntegrationTestSuite) TestCreateRequiresToken() {
	w := s.doJSON(http.MethodPost, "/api/categories", "", map[string]string{
		"name": "Кардиология",
	})

	assert.Equal(s.T(), http.StatusUnauthorized, w.Code)
}

func (s *CategoryHandlerIntegrationTestSuite) TestUpdateSuccess() {
	token := s.adminToken()
	category := testutil.CreateTestCategory("Кардиология", "")
	require.NoError(s.T(), s.testDB.DB.Create(category).Error)

	w := s.doJSON(http.MethodPut, fmt.Sprintf("/api/categories/%d", category.ID), token, map[string]string{
		"name":        "Неврология",
		"description": "обновлено",
	})

	assert.Equal(s.T(), http.StatusOK, w.Code)

	var updated models.Category
	require.NoError(s.T(), json.Unmarshal(w.Body.Bytes(), &updated))
	assert.Equal(s.T(), "Неврология", updated.Name)
	assert.Equal(s.T(), "обновлено", updated.Description)
}

func (s *CategoryHandlerIntegrationTestSuite) TestUpdateNotFound() {
	token := s.adminToken()

	w := s.doJSON(http.MethodPut, "/api/categories/999", token, map[string]string{
		"name": "Неврология",
	})

	assert.Equal(s.T(), http.StatusNotFound, w.Code)

	var response map[string]string
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(s.T(), "Категория не найдена", response["message"])
}

func (s *CategoryHandlerIntegrationTestSuite) TestDeleteCascadesToQuestions() {
	token := s.adminToken()

	category := testutil.CreateTestCategory("Кардиология", "")
	require.NoError(s.T(), s.testDB.DB.Create(category).Error)
	question := testutil.CreateTestQuestion("Что такое аритмия?", "Нарушение ритма сердца", &category.ID)
	require.NoError(s.T(), s.testDB.DB.Create(question).Error)

	w := s.doJSON(http.MethodDelete, fmt.Sprintf("/api/categories/%d", category.ID), token, nil)

	assert.Equal(s.T(), http.StatusOK, w.Code)

	var response map[string]string
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(s.T(), "Категория и все вопросы в ней успешно удалены", response["message"])

	var categoryCount, questionCount int64
	s.testDB.DB.Model(&models.Category{}).Count(&categoryCount)
	s.testDB.DB.Model(&models.Question{}).Count(&questionCount)
	assert.Zero(s.T(), categoryCount)
	assert.Zero(s.T(), questionCount)
}

func (s *CategoryHandlerIntegrationTestSuite) TestDeleteNotFound() {
	token := s.adminToken()

	w := s.doJSON(http.MethodDelete, "/api/categories/999", token, nil)

	assert.Equal(s.T(), http.StatusNotFound, w.Code)
}

func (s *CategoryHandlerIntegrationTestSuite) TestDeleteQuestionsReturnsCount() {
	token := s.adminToken()

	category := testutil.CreateTestCategory("Кардиология", "")
	require.NoError(s.T(), s.testDB.DB.Create(category).Error)
	for _, text := range []string{"Вопрос один", "Вопрос два", "Вопрос три"} {
		q := testutil.CreateTestQuestion(text, "ответ", &category.ID)
		require.NoError(s.T(), s.testDB.DB.Create(q).Error)
	}

	w := s.doJSON(http.MethodDelete, fmt.Sprintf("/api/categories/%d/questions", category.ID), token, nil)

	assert.Equal(s.T(), http.StatusOK, w.Code)

	var response struct {
		Message      string `json:"message"`
		DeletedCount int64  `json:"deletedCount"`
	}
	require.NoError(s.T(), json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(s.T(), int64(3), response.DeletedCount)

	// Questions are gone but the category survives
	var categoryCount, questionCount int64
	s.testDB.DB.Model(&models.Category{}).Count(&categoryCount)
	s.testDB.DB.Model(&models.Question{}).Count(&questionCount)
	assert.Equal(s.T(), int64(1), categoryCount)
	assert.Zero(s.T(), questionCount)
}

func (s *CategoryHandlerIntegrationTestSuite) TestGetAllSortedByName() {
	for _, name := range []string{"Неврология", "Аллергология", "Кардиология"} {
		require.NoError(s.T(), s.testDB.DB.Create(testutil.CreateTestCategory(name, "")).Error)
	}

	w := s.doJSON(http.MethodGet, "/api/categories", "", nil)

	assert.Equal(s.T(), http.StatusOK, w.Code)

	var categories []models.Category
	require.NoError(s.T(), json.Unmarshal(w.Body.Bytes(), &categories))
	require.Len(s.T(), categories, 3)
	assert.Equal(s.T(), "Аллергология", categories[0].Name)
	assert.Equal(s.T(), "Кардиология", categories[1].Name)
	assert.Equal(s.T(), "Неврология", categories[2].Name)
}

func (s *CategoryHandlerIntegrationTestSuite) TestGetQuestionsOfCategory() {
	token := s.adminToken()

	category := testutil.CreateTestCategory("Кардиология", "")
	require.NoError(s.T(), s.testDB.DB.Create(category).Error)
	other := testutil.CreateTestCategory("Неврология", "")
	require.NoError(s.T(), s.testDB.DB.Create(other).Error)

	require.NoError(s.T(), s.testDB.DB.Create(testutil.CreateTestQuestion("Вопрос о сердце", "ответ", &category.ID)).Error)
	require.NoError(s.T(), s.testDB.DB.Create(testutil.CreateTestQuestion("Вопрос о мозге", "ответ", &other.ID)).Error)

	w := s.doJSON(http.MethodGet, fmt.Sprintf("/api/categories/%d/questions", category.ID), token, nil)

	assert.Equal(s.T(), http.StatusOK, w.Code)

	var questions []models.Question
	require.NoError(s.T(), json.Unmarshal(w.Body.Bytes(), &questions))
	require.Len(s.T(), questions, 1)
	assert.Equal(s.T(), "Вопрос о сердце", questions[0].Text)
}

func (s *CategoryHandlerIntegrationTestSuite) TestGetQuestionsCategoryNotFound() {
	token := s.adminToken()

	w := s.doJSON(http.MethodGet, "/api/categories/999/questions", token, nil)

	assert.Equal(s.T(), http.StatusNotFound, w.Code)
}

func (s *CategoryHandlerIntegrationTestSuite) TestMutationsRecordActionLogs() {
	token := s.adminToken()

	w := s.doJSON(http.MethodPost, "/api/categories", token, map[string]string{
		"name": "Кардиология",
	})
	require.Equal(s.T(), http.StatusCreated, w.Code)

	var logs []models.ActionLog
	require.NoError(s.T(), s.testDB.DB.Find(&logs).Error)
	require.Len(s.T(), logs, 1)
	assert.Equal(s.T(), "create_category", logs[0].ActionType)
	assert.Equal(s.T(), `Создана категория "Кардиология"`, logs[0].Description)
	assert.Equal(s.T(), "category", logs[0].EntityType)
}

func TestCategoryHandlerIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(CategoryHandlerIntegrationTestSuite))
}
