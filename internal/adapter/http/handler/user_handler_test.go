package handler_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/gomega"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	. "userapp/pkg/test"

	"userapp/internal/adapter/database/sqlite/repository"
	adapterhttp "userapp/internal/adapter/http"
	"userapp/internal/adapter/http/routes"
	"userapp/internal/core/telemetry"
)

type UserHandlerTestSuite struct {
	suite.Suite
	router *gin.Engine
}

func (s *UserHandlerTestSuite) SetupTest() {
	db := InitTestDB()
	probe := telemetry.NewNoOpProbe()
	repo := repository.NewUserRepository(db, probe)
	container := adapterhttp.NewContainer(repo, probe)

	s.router = routes.SetupRouterForTests(routes.HandlersConfig{
		UserHandler: container.UserHandler,
		DemoHandler: container.DemoHandler,
	})
}

func TestUserHandlerTestSuite(t *testing.T) {
	RegisterTestingT(t)
	suite.Run(t, new(UserHandlerTestSuite))
}

func (s *UserHandlerTestSuite) perform(method, path string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader

	if body != nil {
		raw, err := json.Marshal(body)
		assert.NoError(s.T(), err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")

	recorder := httptest.NewRecorder()
	s.router.ServeHTTP(recorder, req)

	return recorder
}

func (s *UserHandlerTestSuite) createUser(name, email, password string) map[string]any {
	recorder := s.perform(http.MethodPost, "/api/users", gin.H{
		"name":     name,
		"email":    email,
		"password": password,
	})

	assert.Equal(s.T(), http.StatusCreated, recorder.Code)

	var payload map[string]any
	assert.NoError(s.T(), json.Unmarshal(recorder.Body.Bytes(), &payload))

	return payload
}

func (s *UserHandlerTestSuite) TestCreateUser_Success() {
	payload := s.createUser("Test User", "test@example.com", "secret-password")

	Expect(payload["id"]).To(BeNumerically(">", 0))
	Expect(payload["name"]).To(Equal("Test User"))
	Expect(payload["email"]).To(Equal("test@example.com"))
	Expect(payload).NotTo(HaveKey("password"))
}

func (s *UserHandlerTestSuite) TestCreateUser_DuplicateName() {
	s.createUser("Test User", "first@example.com", "secret-password")

	recorder := s.perform(http.MethodPost, "/api/users", gin.H{
		"name":     "Test User",
		"email":    "second@example.com",
		"password": "secret-password",
	})

	assert.Equal(s.T(), http.StatusBadRequest, recorder.Code)

	var body map[string]any
	assert.NoError(s.T(), json.Unmarshal(recorder.Body.Bytes(), &body))
	Expect(body["detail"]).To(Equal("user name 'Test User' is already in use"))
}

func (s *UserHandlerTestSuite) TestCreateUser_DuplicateEmail() {
	s.createUser("First User", "same@example.com", "secret-password")

	recorder := s.perform(http.MethodPost, "/api/users", gin.H{
		"name":     "Second User",
		"email":    "same@example.com",
		"password": "secret-password",
	})

	assert.Equal(s.T(), http.StatusBadRequest, recorder.Code)

	var body map[string]any
	assert.NoError(s.T(), json.Unmarshal(recorder.Body.Bytes(), &body))
	Expect(body["detail"]).To(Equal("email 'same@example.com' is already in use"))
}

func (s *UserHandlerTestSuite) TestCreateUser_ShortName() {
	recorder := s.perform(http.MethodPost, "/api/users", gin.H{
		"name":     "ab",
		"email":    "short@example.com",
		"password": "secret-password",
	})

	assert.Equal(s.T(), http.StatusUnprocessableEntity, recorder.Code)

	var body map[string]any
	assert.NoError(s.T(), json.Unmarshal(recorder.Body.Bytes(), &body))

	detail, ok := body["detail"].([]any)
	assert.True(s.T(), ok)

	first, ok := detail[0].(map[string]any)
	assert.True(s.T(), ok)
	Expect(first["field"]).To(Equal("name"))
}

func (s *UserHandlerTestSuite) TestCreateUser_InvalidEmail() {
	recorder := s.perform(http.MethodPost, "/api/users", gin.H{
		"name":     "Test User",
		"email":    "not-an-email",
		"password": "secret-password",
	})

	assert.Equal(s.T(), http.StatusUnprocessableEntity, recorder.Code)
}

func (s *UserHandlerTestSuite) TestCreateUser_MalformedJSON() {
	req := httptest.NewRequest(http.MethodPost, "/api/users", bytes.NewReader([]byte("{not json")))
	req.Header.Set("Content-Type", "application/json")

	recorder := httptest.NewRecorder()
	s.router.ServeHTTP(recorder, req)

	assert.Equal(s.T(), http.StatusUnprocessableEntity, recorder.Code)
}

func (s *UserHandlerTestSuite) TestGetAllUsers_EmptyStore() {
	recorder := s.perform(http.MethodGet, "/api/users", nil)

	assert.Equal(s.T(), http.StatusOK, recorder.Code)
	assert.JSONEq(s.T(), "[]", recorder.Body.String())
}

func (s *UserHandlerTestSuite) TestGetAllUsers_ReturnsUsers() {
	s.createUser("User One", "one@example.com", "secret-password")
	s.createUser("User Two", "two@example.com", "secret-password")

	recorder := s.perform(http.MethodGet, "/api/users", nil)

	assert.Equal(s.T(), http.StatusOK, recorder.Code)

	var body []map[string]any
	assert.NoError(s.T(), json.Unmarshal(recorder.Body.Bytes(), &body))
	Expect(body).To(HaveLen(2))
	Expect(body[0]).NotTo(HaveKey("password"))
}

func (s *UserHandlerTestSuite) TestGetUserByID_Success() {
	created := s.createUser("Test User", "test@example.com", "secret-password")
	id := int64(created["id"].(float64))

	recorder := s.perform(http.MethodGet, fmt.Sprintf("/api/users/%d", id), nil)

	assert.Equal(s.T(), http.StatusOK, recorder.Code)

	var body map[string]any
	assert.NoError(s.T(), json.Unmarshal(recorder.Body.Bytes(), &body))
	Expect(body["name"]).To(Equal("Test User"))
}

func (s *UserHandlerTestSuite) TestGetUserByID_NotFound() {
	recorder := s.perform(http.MethodGet, "/api/users/9999", nil)

	assert.Equal(s.T(), http.StatusNotFound, recorder.Code)

	var body map[string]any
	assert.NoError(s.T(), json.Unmarshal(recorder.Body.Bytes(), &body))
	Expect(body["detail"]).To(Equal("user with id 9999 not found"))
}

func (s *UserHandlerTestSuite) TestGetUserByID_NonIntegerID() {
	recorder := s.perform(http.MethodGet, "/api/users/abc", nil)

	assert.Equal(s.T(), http.StatusUnprocessableEntity, recorder.Code)
}

func (s *UserHandlerTestSuite) TestUpdateUser_NameOnly() {
	created := s.createUser("Before Update", "before@example.com", "secret-password")
	id := int64(created["id"].(float64))

	recorder := s.perform(http.MethodPut, fmt.Sprintf("/api/users/%d", id), gin.H{
		"name": "After Update",
	})

	assert.Equal(s.T(), http.StatusOK, recorder.Code)

	var body map[string]any
	assert.NoError(s.T(), json.Unmarshal(recorder.Body.Bytes(), &body))
	Expect(body["name"]).To(Equal("After Update"))
	Expect(body["email"]).To(Equal("before@example.com"))
}

func (s *UserHandlerTestSuite) TestUpdateUser_NotFound() {
	recorder := s.perform(http.MethodPut, "/api/users/9999", gin.H{
		"name": "Ghost",
	})

	assert.Equal(s.T(), http.StatusNotFound, recorder.Code)
}

func (s *UserHandlerTestSuite) TestUpdateUser_PasswordChangeWithoutCurrent() {
	created := s.createUser("Test User", "test@example.com", "secret-password")
	id := int64(created["id"].(float64))

	recorder := s.perform(http.MethodPut, fmt.Sprintf("/api/users/%d", id), gin.H{
		"new_password": "new-password",
	})

	assert.Equal(s.T(), http.StatusBadRequest, recorder.Code)

	var body map[string]any
	assert.NoError(s.T(), json.Unmarshal(recorder.Body.Bytes(), &body))
	Expect(body["detail"]).To(Equal("password change requires current password"))
}

func (s *UserHandlerTestSuite) TestUpdateUser_WrongCurrentPassword() {
	created := s.createUser("Test User", "test@example.com", "secret-password")
	id := int64(created["id"].(float64))

	recorder := s.perform(http.MethodPut, fmt.Sprintf("/api/users/%d", id), gin.H{
		"current_password": "wrong-password",
		"new_password":     "new-password",
	})

	assert.Equal(s.T(), http.StatusBadRequest, recorder.Code)

	var body map[string]any
	assert.NoError(s.T(), json.Unmarshal(recorder.Body.Bytes(), &body))
	Expect(body["detail"]).To(Equal("current password incorrect"))
}

func (s *UserHandlerTestSuite) TestUpdateUser_DuplicateName() {
	s.createUser("Existing User", "existing@example.com", "secret-password")
	created := s.createUser("Second User", "second@example.com", "secret-password")
	id := int64(created["id"].(float64))

	recorder := s.perform(http.MethodPut, fmt.Sprintf("/api/users/%d", id), gin.H{
		"name": "Existing User",
	})

	assert.Equal(s.T(), http.StatusBadRequest, recorder.Code)

	var body map[string]any
	assert.NoError(s.T(), json.Unmarshal(recorder.Body.Bytes(), &body))
	Expect(body["detail"]).To(Equal("user name or email already in use"))
}

func (s *UserHandlerTestSuite) TestDeleteUser_ThenNotFound() {
	created := s.createUser("To Delete", "delete@example.com", "secret-password")
	id := int64(created["id"].(float64))

	recorder := s.perform(http.MethodDelete, fmt.Sprintf("/api/users/%d", id), nil)
	assert.Equal(s.T(), http.StatusNoContent, recorder.Code)
	assert.Empty(s.T(), recorder.Body.String())

	recorder = s.perform(http.MethodDelete, fmt.Sprintf("/api/users/%d", id), nil)
	assert.Equal(s.T(), http.StatusNotFound, recorder.Code)
}
