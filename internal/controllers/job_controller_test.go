package controllers_test

import (
	"errors"
	"net/http"
	"testing"

	"campusconnect/internal/controllers"
	"campusconnect/internal/events"
	"campusconnect/internal/mocks"
	"campusconnect/internal/models"
	"campusconnect/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

func setupJobControllerWithMocks() (*controllers.JobController, *mocks.MockJobRepository, *mocks.MockApplicationRepository, *mocks.MockPublisher) {
	mockJobRepo := new(mocks.MockJobRepository)
	mockAppRepo := new(mocks.MockApplicationRepository)
	mockPublisher := new(mocks.MockPublisher)
	controller := controllers.NewJobController(mockJobRepo, mockAppRepo, mockPublisher)
	return controller, mockJobRepo, mockAppRepo, mockPublisher
}

func validJobBody() map[string]interface{} {
	return map[string]interface{}{
		"title":       "Library Assistant",
		"description": "Shelve returned books and help visitors",
		"category":    "Administrative",
		"department":  "Library",
		"location":    "main-campus",
		"pay_rate":    15.5,
		"duration":    "2-4 hours",
		"type":        "part-time",
	}
}

func TestCreateJob(t *testing.T) {
	employer := &models.User{ID: 1, Role: models.RoleEmployer}

	tests := []struct {
		name           string
		body           map[string]interface{}
		setupMocks     func(*mocks.MockJobRepository)
		expectedStatus int
	}{
		{
			name: "successful creation",
			body: validJobBody(),
			setupMocks: func(jobRepo *mocks.MockJobRepository) {
				jobRepo.On("Create", mock.MatchedBy(func(job *models.Job) bool {
					return job.PostedByID == 1 && job.Status == models.JobStatusActive && job.Time == "any time"
				})).Return(nil)
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name: "invalid category",
			body: func() map[string]interface{} {
				b := validJobBody()
				b["category"] = "Something Else"
				return b
			}(),
			setupMocks:     func(jobRepo *mocks.MockJobRepository) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "pay rate must be positive",
			body: func() map[string]interface{} {
				b := validJobBody()
				b["pay_rate"] = 0
				return b
			}(),
			setupMocks:     func(jobRepo *mocks.MockJobRepository) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "missing title",
			body: func() map[string]interface{} {
				b := validJobBody()
				delete(b, "title")
				return b
			}(),
			setupMocks:     func(jobRepo *mocks.MockJobRepository) {},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			controller, mockJobRepo, _, _ := setupJobControllerWithMocks()
			tt.setupMocks(mockJobRepo)

			router := setupTestRouter()
			router.POST("/api/jobs", authAs(employer), controller.CreateJob)

			w := performJSONRequest(router, http.MethodPost, "/api/jobs", tt.body)

			assert.Equal(t, tt.expectedStatus, w.Code)
			mockJobRepo.AssertExpectations(t)
		})
	}
}

func TestGetJobs(t *testing.T) {
	t.Run("pay filters are passed through inclusive", func(t *testing.T) {
		controller, mockJobRepo, _, _ := setupJobControllerWithMocks()

		mockJobRepo.On("List", mock.MatchedBy(func(filter repository.JobFilter) bool {
			return filter.MinPay != nil && *filter.MinPay == 10 &&
				filter.MaxPay != nil && *filter.MaxPay == 20 &&
				filter.Category == "Research"
		})).Return([]models.Job{{ID: 1, PayRate: 10}, {ID: 2, PayRate: 20}}, int64(2), nil)

		router := setupTestRouter()
		router.GET("/api/jobs", controller.GetJobs)

		w := performJSONRequest(router, http.MethodGet, "/api/jobs?minPay=10&maxPay=20&category=Research", nil)

		assert.Equal(t, http.StatusOK, w.Code)
		response := decodeResponse(t, w)
		assert.Equal(t, float64(2), response["count"])
		assert.Equal(t, float64(2), response["total"])
		mockJobRepo.AssertExpectations(t)
	})

	t.Run("non-numeric pay filter rejected", func(t *testing.T) {
		controller, _, _, _ := setupJobControllerWithMocks()

		router := setupTestRouter()
		router.GET("/api/jobs", controller.GetJobs)

		w := performJSONRequest(router, http.MethodGet, "/api/jobs?minPay=lots", nil)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("pagination defaults", func(t *testing.T) {
		controller, mockJobRepo, _, _ := setupJobControllerWithMocks()

		mockJobRepo.On("List", mock.MatchedBy(func(filter repository.JobFilter) bool {
			return filter.Page == 1 && filter.Limit == 10
		})).Return([]models.Job{}, int64(25), nil)

		router := setupTestRouter()
		router.GET("/api/jobs", controller.GetJobs)

		w := performJSONRequest(router, http.MethodGet, "/api/jobs", nil)

		assert.Equal(t, http.StatusOK, w.Code)
		response := decodeResponse(t, w)
		assert.Equal(t, float64(3), response["pages"])
		mockJobRepo.AssertExpectations(t)
	})
}

func TestUpdateJob(t *testing.T) {
	tests := []struct {
		name           string
		user           *models.User
		job            *models.Job
		expectedStatus int
	}{
		{
			name:           "owner can update",
			user:           &models.User{ID: 1, Role: models.RoleStudent},
			job:            &models.Job{ID: 5, PostedByID: 1, Title: "Old"},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "employer can update another poster's job",
			user:           &models.User{ID: 2, Role: models.RoleEmployer},
			job:            &models.Job{ID: 5, PostedByID: 1, Title: "Old"},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "admin can update another poster's job",
			user:           &models.User{ID: 3, Role: models.RoleAdmin},
			job:            &models.Job{ID: 5, PostedByID: 1, Title: "Old"},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "non-owner student is forbidden",
			user:           &models.User{ID: 4, Role: models.RoleStudent},
			job:            &models.Job{ID: 5, PostedByID: 1, Title: "Old"},
			expectedStatus: http.StatusForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			controller, mockJobRepo, _, _ := setupJobControllerWithMocks()
			mockJobRepo.On("FindByID", uint(5)).Return(tt.job, nil)
			if tt.expectedStatus == http.StatusOK {
				mockJobRepo.On("Update", mock.MatchedBy(func(job *models.Job) bool {
					return job.Title == "New title"
				})).Return(nil)
			}

			router := setupTestRouter()
			router.PUT("/api/jobs/:id", authAs(tt.user), controller.UpdateJob)

			w := performJSONRequest(router, http.MethodPut, "/api/jobs/5", map[string]interface{}{
				"title": "New title",
			})

			assert.Equal(t, tt.expectedStatus, w.Code)
			mockJobRepo.AssertExpectations(t)
		})
	}

	t.Run("job not found", func(t *testing.T) {
		controller, mockJobRepo, _, _ := setupJobControllerWithMocks()
		mockJobRepo.On("FindByID", uint(99)).Return(nil, errors.New("record not found"))

		router := setupTestRouter()
		router.PUT("/api/jobs/:id", authAs(&models.User{ID: 1}), controller.UpdateJob)

		w := performJSONRequest(router, http.MethodPut, "/api/jobs/99", map[string]interface{}{"title": "New"})

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestDeleteJob(t *testing.T) {
	t.Run("owner can delete", func(t *testing.T) {
		controller, mockJobRepo, _, _ := setupJobControllerWithMocks()
		mockJobRepo.On("FindByID", uint(5)).Return(&models.Job{ID: 5, PostedByID: 1}, nil)
		mockJobRepo.On("Delete", uint(5)).Return(nil)

		router := setupTestRouter()
		router.DELETE("/api/jobs/:id", authAs(&models.User{ID: 1, Role: models.RoleStudent}), controller.DeleteJob)

		w := performJSONRequest(router, http.MethodDelete, "/api/jobs/5", nil)

		assert.Equal(t, http.StatusOK, w.Code)
		mockJobRepo.AssertExpectations(t)
	})

	t.Run("non-owner student is forbidden", func(t *testing.T) {
		controller, mockJobRepo, _, _ := setupJobControllerWithMocks()
		mockJobRepo.On("FindByID", uint(5)).Return(&models.Job{ID: 5, PostedByID: 1}, nil)

		router := setupTestRouter()
		router.DELETE("/api/jobs/:id", authAs(&models.User{ID: 9, Role: models.RoleStudent}), controller.DeleteJob)

		w := performJSONRequest(router, http.MethodDelete, "/api/jobs/5", nil)

		assert.Equal(t, http.StatusForbidden, w.Code)
		mockJobRepo.AssertNotCalled(t, "Delete", mock.Anything)
	})
}

func TestApplyToJob(t *testing.T) {
	student := &models.User{ID: 10, Name: "Jane Doe", Role: models.RoleStudent}
	job := &models.Job{
		ID:         5,
		Title:      "Library Assistant",
		PostedByID: 1,
		PostedBy:   models.User{ID: 1, Name: "Dr. Smith", Email: "smith@campus.edu"},
	}

	t.Run("successful application publishes event", func(t *testing.T) {
		controller, mockJobRepo, mockAppRepo, mockPublisher := setupJobControllerWithMocks()
		mockJobRepo.On("FindByID", uint(5)).Return(job, nil)
		mockAppRepo.On("Exists", uint(5), uint(10)).Return(false, nil)
		mockAppRepo.On("Create", mock.MatchedBy(func(app *models.Application) bool {
			return app.JobID == 5 && app.ApplicantID == 10 && app.Status == models.ApplicationStatusPending
		})).Return(nil)
		mockPublisher.On("PublishApplicationSubmitted", mock.MatchedBy(func(event events.ApplicationSubmitted) bool {
			return event.JobID == 5 && event.ApplicantID == 10 && event.EmployerEmail == "smith@campus.edu"
		})).Return(nil)

		router := setupTestRouter()
		router.POST("/api/jobs/apply/:id", authAs(student), controller.ApplyToJob)

		w := performJSONRequest(router, http.MethodPost, "/api/jobs/apply/5", nil)

		assert.Equal(t, http.StatusCreated, w.Code)
		response := decodeResponse(t, w)
		assert.Equal(t, "Application submitted successfully", response["message"])
		mockAppRepo.AssertExpectations(t)
		mockPublisher.AssertExpectations(t)
	})

	t.Run("cannot apply to own job", func(t *testing.T) {
		controller, mockJobRepo, mockAppRepo, _ := setupJobControllerWithMocks()
		owner := &models.User{ID: 1, Role: models.RoleEmployer}
		mockJobRepo.On("FindByID", uint(5)).Return(job, nil)

		router := setupTestRouter()
		router.POST("/api/jobs/apply/:id", authAs(owner), controller.ApplyToJob)

		w := performJSONRequest(router, http.MethodPost, "/api/jobs/apply/5", nil)

		assert.Equal(t, http.StatusForbidden, w.Code)
		response := decodeResponse(t, w)
		assert.Equal(t, "You cannot apply to your own job posting", response["message"])
		mockAppRepo.AssertNotCalled(t, "Create", mock.Anything)
	})

	t.Run("second application is rejected", func(t *testing.T) {
		controller, mockJobRepo, mockAppRepo, _ := setupJobControllerWithMocks()
		mockJobRepo.On("FindByID", uint(5)).Return(job, nil)
		mockAppRepo.On("Exists", uint(5), uint(10)).Return(true, nil)

		router := setupTestRouter()
		router.POST("/api/jobs/apply/:id", authAs(student), controller.ApplyToJob)

		w := performJSONRequest(router, http.MethodPost, "/api/jobs/apply/5", nil)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		response := decodeResponse(t, w)
		assert.Equal(t, "You have already applied to this job", response["message"])
		mockAppRepo.AssertNotCalled(t, "Create", mock.Anything)
	})

	t.Run("concurrent duplicate caught by unique index", func(t *testing.T) {
		controller, mockJobRepo, mockAppRepo, _ := setupJobControllerWithMocks()
		mockJobRepo.On("FindByID", uint(5)).Return(job, nil)
		mockAppRepo.On("Exists", uint(5), uint(10)).Return(false, nil)
		mockAppRepo.On("Create", mock.AnythingOfType("*models.Application")).Return(gorm.ErrDuplicatedKey)

		router := setupTestRouter()
		router.POST("/api/jobs/apply/:id", authAs(student), controller.ApplyToJob)

		w := performJSONRequest(router, http.MethodPost, "/api/jobs/apply/5", nil)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		response := decodeResponse(t, w)
		assert.Equal(t, "You have already applied to this job", response["message"])
	})

	t.Run("job not found", func(t *testing.T) {
		controller, mockJobRepo, _, _ := setupJobControllerWithMocks()
		mockJobRepo.On("FindByID", uint(99)).Return(nil, errors.New("record not found"))

		router := setupTestRouter()
		router.POST("/api/jobs/apply/:id", authAs(student), controller.ApplyToJob)

		w := performJSONRequest(router, http.MethodPost, "/api/jobs/apply/99", nil)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestGetDashboardStats(t *testing.T) {
	t.Run("employer stats scoped to own postings", func(t *testing.T) {
		controller, mockJobRepo, _, _ := setupJobControllerWithMocks()
		employer := &models.User{ID: 1, Role: models.RoleEmployer}
		mockJobRepo.On("CountByPoster", uint(1)).Return(int64(8), nil)
		mockJobRepo.On("CountByPosterAndStatus", uint(1), models.JobStatusActive).Return(int64(3), nil)

		router := setupTestRouter()
		router.GET("/api/jobs/stats", authAs(employer), controller.GetDashboardStats)

		w := performJSONRequest(router, http.MethodGet, "/api/jobs/stats", nil)

		assert.Equal(t, http.StatusOK, w.Code)
		response := decodeResponse(t, w)
		data := response["data"].(map[string]interface{})
		assert.Equal(t, float64(8), data["totalJobs"])
		assert.Equal(t, float64(3), data["activeJobs"])
		mockJobRepo.AssertExpectations(t)
	})

	t.Run("student stats include applied count", func(t *testing.T) {
		controller, mockJobRepo, mockAppRepo, _ := setupJobControllerWithMocks()
		student := &models.User{ID: 10, Role: models.RoleStudent}
		mockJobRepo.On("CountByStatus", models.JobStatusActive).Return(int64(12), nil)
		mockAppRepo.On("CountByApplicant", uint(10)).Return(int64(4), nil)

		router := setupTestRouter()
		router.GET("/api/jobs/stats", authAs(student), controller.GetDashboardStats)

		w := performJSONRequest(router, http.MethodGet, "/api/jobs/stats", nil)

		assert.Equal(t, http.StatusOK, w.Code)
		response := decodeResponse(t, w)
		data := response["data"].(map[string]interface{})
		assert.Equal(t, float64(12), data["activeJobs"])
		assert.Equal(t, float64(4), data["appliedJobs"])
		mockAppRepo.AssertExpectations(t)
	})
}
