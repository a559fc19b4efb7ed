package controllers_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"campusconnect/internal/auth"
	"campusconnect/internal/controllers"
	"campusconnect/internal/mocks"
	"campusconnect/internal/models"
	"campusconnect/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// Test helper functions
func setupTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

func setupAuthControllerWithMocks() (*controllers.AuthController, *mocks.MockUserRepository, *mocks.MockMailer) {
	mockUserRepo := new(mocks.MockUserRepository)
	mockMailer := new(mocks.MockMailer)
	controller := controllers.NewAuthController(mockUserRepo, mockMailer)
	return controller, mockUserRepo, mockMailer
}

func authAs(user *models.User) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("user", user)
		c.Next()
	}
}

func performJSONRequest(router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	var response map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err)
	return response
}

func TestRegister(t *testing.T) {
	tests := []struct {
		name           string
		requestBody    map[string]interface{}
		setupMocks     func(*mocks.MockUserRepository, *mocks.MockMailer)
		expectedStatus int
		expectedMsg    string
	}{
		{
			name: "successful registration",
			requestBody: map[string]interface{}{
				"name":     "Jane Doe",
				"email":    "jane@campus.edu",
				"password": "password123",
				"role":     "student",
			},
			setupMocks: func(userRepo *mocks.MockUserRepository, mailer *mocks.MockMailer) {
				userRepo.On("GetUserByEmail", "jane@campus.edu").Return(nil, errors.New("record not found"))
				userRepo.On("CreateUser", mock.AnythingOfType("*models.User")).Return(nil)
				mailer.On("Send", "jane@campus.edu", mock.Anything, mock.Anything).Return(nil).Maybe()
			},
			expectedStatus: http.StatusCreated,
			expectedMsg:    "User registered successfully. Please check your email to verify your account.",
		},
		{
			name: "email is lowercased before lookup",
			requestBody: map[string]interface{}{
				"name":     "Jane Doe",
				"email":    "Jane@Campus.EDU",
				"password": "password123",
				"role":     "student",
			},
			setupMocks: func(userRepo *mocks.MockUserRepository, mailer *mocks.MockMailer) {
				userRepo.On("GetUserByEmail", "jane@campus.edu").Return(nil, errors.New("record not found"))
				userRepo.On("CreateUser", mock.AnythingOfType("*models.User")).Return(nil)
				mailer.On("Send", "jane@campus.edu", mock.Anything, mock.Anything).Return(nil).Maybe()
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name: "duplicate email",
			requestBody: map[string]interface{}{
				"name":     "Jane Doe",
				"email":    "jane@campus.edu",
				"password": "password123",
				"role":     "student",
			},
			setupMocks: func(userRepo *mocks.MockUserRepository, mailer *mocks.MockMailer) {
				userRepo.On("GetUserByEmail", "jane@campus.edu").Return(&models.User{ID: 1}, nil)
			},
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    "User already exists",
		},
		{
			name: "invalid role",
			requestBody: map[string]interface{}{
				"name":     "Jane Doe",
				"email":    "jane@campus.edu",
				"password": "password123",
				"role":     "superuser",
			},
			setupMocks:     func(userRepo *mocks.MockUserRepository, mailer *mocks.MockMailer) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "password too short",
			requestBody: map[string]interface{}{
				"name":     "Jane Doe",
				"email":    "jane@campus.edu",
				"password": "short",
				"role":     "student",
			},
			setupMocks:     func(userRepo *mocks.MockUserRepository, mailer *mocks.MockMailer) {},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			controller, mockUserRepo, mockMailer := setupAuthControllerWithMocks()
			tt.setupMocks(mockUserRepo, mockMailer)

			router := setupTestRouter()
			router.POST("/api/auth/register", controller.Register)

			w := performJSONRequest(router, http.MethodPost, "/api/auth/register", tt.requestBody)

			assert.Equal(t, tt.expectedStatus, w.Code)
			response := decodeResponse(t, w)
			if tt.expectedMsg != "" {
				assert.Equal(t, tt.expectedMsg, response["message"])
			}
			if tt.expectedStatus == http.StatusCreated {
				// registration never issues a session token and never leaks
				// the password hash
				data := response["data"].(map[string]interface{})
				assert.NotContains(t, data, "token")
				assert.NotContains(t, data, "password")
				assert.Equal(t, false, data["is_verified"])
			}
			mockUserRepo.AssertExpectations(t)
		})
	}
}

func TestLogin(t *testing.T) {
	os.Setenv("JWT_SECRET_KEY", "test-secret-key")
	defer os.Unsetenv("JWT_SECRET_KEY")

	testPassword := "password123"
	testHash, err := auth.HashPassword(testPassword)
	assert.NoError(t, err)

	tests := []struct {
		name           string
		requestBody    map[string]interface{}
		setupMocks     func(*mocks.MockUserRepository)
		expectedStatus int
		expectedMsg    string
		checkToken     bool
	}{
		{
			name: "successful login",
			requestBody: map[string]interface{}{
				"email":    "jane@campus.edu",
				"password": testPassword,
			},
			setupMocks: func(userRepo *mocks.MockUserRepository) {
				userRepo.On("GetUserByEmail", "jane@campus.edu").Return(&models.User{
					ID:         1,
					Email:      "jane@campus.edu",
					Password:   testHash,
					IsVerified: true,
				}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedMsg:    "User logged in successfully",
			checkToken:     true,
		},
		{
			name: "user not found",
			requestBody: map[string]interface{}{
				"email":    "nobody@campus.edu",
				"password": testPassword,
			},
			setupMocks: func(userRepo *mocks.MockUserRepository) {
				userRepo.On("GetUserByEmail", "nobody@campus.edu").Return(nil, errors.New("record not found"))
			},
			expectedStatus: http.StatusUnauthorized,
			expectedMsg:    "Invalid credentials",
		},
		{
			name: "wrong password",
			requestBody: map[string]interface{}{
				"email":    "jane@campus.edu",
				"password": "wrong-password",
			},
			setupMocks: func(userRepo *mocks.MockUserRepository) {
				userRepo.On("GetUserByEmail", "jane@campus.edu").Return(&models.User{
					ID:         1,
					Email:      "jane@campus.edu",
					Password:   testHash,
					IsVerified: true,
				}, nil)
			},
			expectedStatus: http.StatusUnauthorized,
			expectedMsg:    "Invalid credentials",
		},
		{
			name: "unverified user with correct password",
			requestBody: map[string]interface{}{
				"email":    "jane@campus.edu",
				"password": testPassword,
			},
			setupMocks: func(userRepo *mocks.MockUserRepository) {
				userRepo.On("GetUserByEmail", "jane@campus.edu").Return(&models.User{
					ID:         1,
					Email:      "jane@campus.edu",
					Password:   testHash,
					IsVerified: false,
				}, nil)
			},
			expectedStatus: http.StatusUnauthorized,
			expectedMsg:    "User not verified",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			controller, mockUserRepo, _ := setupAuthControllerWithMocks()
			tt.setupMocks(mockUserRepo)

			router := setupTestRouter()
			router.POST("/api/auth/login", controller.Login)

			w := performJSONRequest(router, http.MethodPost, "/api/auth/login", tt.requestBody)

			assert.Equal(t, tt.expectedStatus, w.Code)
			response := decodeResponse(t, w)
			assert.Equal(t, tt.expectedMsg, response["message"])
			if tt.checkToken {
				data := response["data"].(map[string]interface{})
				assert.NotEmpty(t, data["token"])
			}
			mockUserRepo.AssertExpectations(t)
		})
	}
}

func TestVerifyEmail(t *testing.T) {
	t.Run("valid token verifies and clears it", func(t *testing.T) {
		controller, mockUserRepo, _ := setupAuthControllerWithMocks()

		user := &models.User{ID: 1, Email: "jane@campus.edu", VerificationToken: "sometoken"}
		mockUserRepo.On("GetUserByVerificationToken", "sometoken").Return(user, nil)
		mockUserRepo.On("UpdateUser", mock.MatchedBy(func(u *models.User) bool {
			return u.IsVerified && u.VerificationToken == ""
		})).Return(nil)

		router := setupTestRouter()
		router.GET("/api/auth/verify-email/:token", controller.VerifyEmail)

		w := performJSONRequest(router, http.MethodGet, "/api/auth/verify-email/sometoken", nil)

		assert.Equal(t, http.StatusOK, w.Code)
		mockUserRepo.AssertExpectations(t)
	})

	t.Run("unknown token", func(t *testing.T) {
		controller, mockUserRepo, _ := setupAuthControllerWithMocks()
		mockUserRepo.On("GetUserByVerificationToken", "badtoken").Return(nil, errors.New("record not found"))

		router := setupTestRouter()
		router.GET("/api/auth/verify-email/:token", controller.VerifyEmail)

		w := performJSONRequest(router, http.MethodGet, "/api/auth/verify-email/badtoken", nil)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		response := decodeResponse(t, w)
		assert.Equal(t, "Invalid verification token", response["message"])
	})
}

func TestForgotPassword(t *testing.T) {
	t.Run("stores hashed token and sends mail", func(t *testing.T) {
		controller, mockUserRepo, mockMailer := setupAuthControllerWithMocks()

		user := &models.User{ID: 1, Email: "jane@campus.edu"}
		mockUserRepo.On("GetUserByEmail", "jane@campus.edu").Return(user, nil)
		mockUserRepo.On("UpdateUser", mock.MatchedBy(func(u *models.User) bool {
			// the stored value is a sha256 digest, never the raw token
			return len(u.ResetPasswordToken) == 64 && u.ResetPasswordExpire != nil
		})).Return(nil)
		mockMailer.On("Send", "jane@campus.edu", mock.Anything, mock.Anything).Return(nil)

		router := setupTestRouter()
		router.POST("/api/auth/forgot-password", controller.ForgotPassword)

		w := performJSONRequest(router, http.MethodPost, "/api/auth/forgot-password", map[string]interface{}{
			"email": "jane@campus.edu",
		})

		assert.Equal(t, http.StatusOK, w.Code)
		mockUserRepo.AssertExpectations(t)
		mockMailer.AssertExpectations(t)
	})

	t.Run("rolls back token when mail fails", func(t *testing.T) {
		controller, mockUserRepo, mockMailer := setupAuthControllerWithMocks()

		user := &models.User{ID: 1, Email: "jane@campus.edu"}
		mockUserRepo.On("GetUserByEmail", "jane@campus.edu").Return(user, nil)
		mockUserRepo.On("UpdateUser", mock.MatchedBy(func(u *models.User) bool {
			return u.ResetPasswordToken != ""
		})).Return(nil).Once()
		mockUserRepo.On("UpdateUser", mock.MatchedBy(func(u *models.User) bool {
			return u.ResetPasswordToken == "" && u.ResetPasswordExpire == nil
		})).Return(nil).Once()
		mockMailer.On("Send", "jane@campus.edu", mock.Anything, mock.Anything).Return(errors.New("smtp unavailable"))

		router := setupTestRouter()
		router.POST("/api/auth/forgot-password", controller.ForgotPassword)

		w := performJSONRequest(router, http.MethodPost, "/api/auth/forgot-password", map[string]interface{}{
			"email": "jane@campus.edu",
		})

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		response := decodeResponse(t, w)
		assert.Equal(t, "Email could not be sent", response["message"])
		mockUserRepo.AssertExpectations(t)
	})

	t.Run("unknown email", func(t *testing.T) {
		controller, mockUserRepo, _ := setupAuthControllerWithMocks()
		mockUserRepo.On("GetUserByEmail", "nobody@campus.edu").Return(nil, errors.New("record not found"))

		router := setupTestRouter()
		router.POST("/api/auth/forgot-password", controller.ForgotPassword)

		w := performJSONRequest(router, http.MethodPost, "/api/auth/forgot-password", map[string]interface{}{
			"email": "nobody@campus.edu",
		})

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestResetPassword(t *testing.T) {
	os.Setenv("JWT_SECRET_KEY", "test-secret-key")
	defer os.Unsetenv("JWT_SECRET_KEY")

	t.Run("valid token resets password and clears token", func(t *testing.T) {
		controller, mockUserRepo, _ := setupAuthControllerWithMocks()

		rawToken := "resettoken"
		user := &models.User{ID: 1, Email: "jane@campus.edu", ResetPasswordToken: utils.HashToken(rawToken)}
		mockUserRepo.On("GetUserByResetToken", utils.HashToken(rawToken), mock.AnythingOfType("time.Time")).Return(user, nil)
		mockUserRepo.On("UpdateUser", mock.MatchedBy(func(u *models.User) bool {
			// redeeming clears the token pair so it cannot be reused
			return u.ResetPasswordToken == "" && u.ResetPasswordExpire == nil && u.Password == "new-password"
		})).Return(nil)

		router := setupTestRouter()
		router.PUT("/api/auth/reset-password/:token", controller.ResetPassword)

		w := performJSONRequest(router, http.MethodPut, "/api/auth/reset-password/"+rawToken, map[string]interface{}{
			"password": "new-password",
		})

		assert.Equal(t, http.StatusOK, w.Code)
		response := decodeResponse(t, w)
		data := response["data"].(map[string]interface{})
		assert.NotEmpty(t, data["token"])
		mockUserRepo.AssertExpectations(t)
	})

	t.Run("invalid or expired token", func(t *testing.T) {
		controller, mockUserRepo, _ := setupAuthControllerWithMocks()
		mockUserRepo.On("GetUserByResetToken", mock.Anything, mock.AnythingOfType("time.Time")).Return(nil, errors.New("record not found"))

		router := setupTestRouter()
		router.PUT("/api/auth/reset-password/:token", controller.ResetPassword)

		w := performJSONRequest(router, http.MethodPut, "/api/auth/reset-password/expiredtoken", map[string]interface{}{
			"password": "new-password",
		})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		response := decodeResponse(t, w)
		assert.Equal(t, "Invalid or expired token", response["message"])
	})
}

func TestGetMe(t *testing.T) {
	controller, _, _ := setupAuthControllerWithMocks()

	user := &models.User{ID: 7, Name: "Jane Doe", Email: "jane@campus.edu", Role: models.RoleStudent}

	router := setupTestRouter()
	router.GET("/api/auth/me", authAs(user), controller.GetMe)

	w := performJSONRequest(router, http.MethodGet, "/api/auth/me", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	response := decodeResponse(t, w)
	data := response["data"].(map[string]interface{})
	assert.Equal(t, "jane@campus.edu", data["email"])
	assert.NotContains(t, data, "password")
}
