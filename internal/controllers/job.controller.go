package controllers

import (
	"errors"
	"log"
	"math"
	"net/http"
	"strconv"

	"campusconnect/internal/events"
	"campusconnect/internal/middleware"
	"campusconnect/internal/models"
	"campusconnect/internal/repository"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type CreateJobRequest struct {
	Title       string  `json:"title" binding:"required"`
	Description string  `json:"description" binding:"required"`
	Category    string  `json:"category" binding:"required,oneof='Event Planning' 'Administrative' 'Research' 'Technology' 'Customer Service' 'Food Service' 'Marketing' 'Freelance'"`
	Department  string  `json:"department" binding:"required"`
	Location    string  `json:"location" binding:"required,oneof=main-campus north-campus south-campus east-campus west-campus"`
	Address     string  `json:"address"`
	PayRate     float64 `json:"pay_rate" binding:"required,gt=0"`
	Duration    string  `json:"duration" binding:"required,oneof='1-2 hours' '2-4 hours' '4-8 hours' 'full day' 'ongoing'"`
	Time        string  `json:"time" binding:"omitempty,oneof=morning afternoon evening weekend 'any time'"`
	Type        string  `json:"type" binding:"required"`
	Image       string  `json:"image"`
	Status      string  `json:"status" binding:"omitempty,oneof=active closed draft"`
}

type UpdateJobRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Category    string   `json:"category" binding:"omitempty,oneof='Event Planning' 'Administrative' 'Research' 'Technology' 'Customer Service' 'Food Service' 'Marketing' 'Freelance'"`
	Department  string   `json:"department"`
	Location    string   `json:"location" binding:"omitempty,oneof=main-campus north-campus south-campus east-campus west-campus"`
	Address     string   `json:"address"`
	PayRate     *float64 `json:"pay_rate" binding:"omitempty,gt=0"`
	Duration    string   `json:"duration" binding:"omitempty,oneof='1-2 hours' '2-4 hours' '4-8 hours' 'full day' 'ongoing'"`
	Time        string   `json:"time" binding:"omitempty,oneof=morning afternoon evening weekend 'any time'"`
	Type        string   `json:"type"`
	Image       string   `json:"image"`
	Status      string   `json:"status" binding:"omitempty,oneof=active closed draft"`
}

type JobController struct {
	jobRepo   repository.JobRepository
	appRepo   repository.ApplicationRepository
	publisher events.Publisher
}

func NewJobController(jobRepo repository.JobRepository, appRepo repository.ApplicationRepository, publisher events.Publisher) *JobController {
	return &JobController{jobRepo: jobRepo, appRepo: appRepo, publisher: publisher}
}

// canModify implements the ownership rule for mutations: the poster can
// always modify their own job, and employer/admin roles can modify any job.
func canModify(user *models.User, job *models.Job) bool {
	return job.PostedByID == user.ID || user.IsEmployerOrAdmin()
}

func (jc *JobController) CreateJob(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"message": "Not authorized to access this route",
		})
		return
	}

	var req CreateJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Invalid job data",
			"error":   err.Error(),
		})
		return
	}

	job := models.Job{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Department:  req.Department,
		Location:    req.Location,
		Address:     req.Address,
		PayRate:     req.PayRate,
		Duration:    req.Duration,
		Time:        req.Time,
		Type:        req.Type,
		Image:       req.Image,
		Status:      req.Status,
		PostedByID:  user.ID,
	}
	if job.Time == "" {
		job.Time = "any time"
	}
	if job.Status == "" {
		job.Status = models.JobStatusActive
	}

	if err := jc.jobRepo.Create(&job); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Failed to create job",
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    job,
	})
}

// GetJobs godoc
// @Summary List active jobs
// @Description Filterable, paginated listing of active jobs, newest first
// @Tags jobs
// @Produce json
// @Param category query string false "Job category"
// @Param location query string false "Campus zone"
// @Param duration query string false "Duration bucket"
// @Param time query string false "Time of day"
// @Param search query string false "Free-text search"
// @Param minPay query number false "Minimum pay rate (inclusive)"
// @Param maxPay query number false "Maximum pay rate (inclusive)"
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} map[string]interface{}
// @Router /jobs [get]
func (jc *JobController) GetJobs(c *gin.Context) {
	filter := repository.JobFilter{
		Category: c.Query("category"),
		Location: c.Query("location"),
		Duration: c.Query("duration"),
		Time:     c.Query("time"),
		Search:   c.Query("search"),
		Page:     1,
		Limit:    10,
	}

	if raw := c.Query("minPay"); raw != "" {
		value, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"message": "minPay must be a number",
			})
			return
		}
		filter.MinPay = &value
	}
	if raw := c.Query("maxPay"); raw != "" {
		value, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"message": "maxPay must be a number",
			})
			return
		}
		filter.MaxPay = &value
	}
	if raw := c.Query("page"); raw != "" {
		if page, err := strconv.Atoi(raw); err == nil && page > 0 {
			filter.Page = page
		}
	}
	if raw := c.Query("limit"); raw != "" {
		if limit, err := strconv.Atoi(raw); err == nil && limit > 0 {
			filter.Limit = limit
		}
	}

	jobs, total, err := jc.jobRepo.List(filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Failed to fetch jobs",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"count":   len(jobs),
		"total":   total,
		"page":    filter.Page,
		"pages":   int(math.Ceil(float64(total) / float64(filter.Limit))),
		"data":    jobs,
	})
}

func (jc *JobController) GetJob(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Invalid job ID",
		})
		return
	}

	job, err := jc.jobRepo.FindByID(uint(id))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"message": "Job not found",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    job,
	})
}

func (jc *JobController) UpdateJob(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"message": "Not authorized to access this route",
		})
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Invalid job ID",
		})
		return
	}

	job, err := jc.jobRepo.FindByID(uint(id))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"message": "Job not found",
		})
		return
	}

	if !canModify(user, job) {
		c.JSON(http.StatusForbidden, gin.H{
			"success": false,
			"message": "Not authorized to update this job",
		})
		return
	}

	var req UpdateJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Invalid job data",
			"error":   err.Error(),
		})
		return
	}

	if req.Title != "" {
		job.Title = req.Title
	}
	if req.Description != "" {
		job.Description = req.Description
	}
	if req.Category != "" {
		job.Category = req.Category
	}
	if req.Department != "" {
		job.Department = req.Department
	}
	if req.Location != "" {
		job.Location = req.Location
	}
	if req.Address != "" {
		job.Address = req.Address
	}
	if req.PayRate != nil {
		job.PayRate = *req.PayRate
	}
	if req.Duration != "" {
		job.Duration = req.Duration
	}
	if req.Time != "" {
		job.Time = req.Time
	}
	if req.Type != "" {
		job.Type = req.Type
	}
	if req.Image != "" {
		job.Image = req.Image
	}
	if req.Status != "" {
		job.Status = req.Status
	}

	if err := jc.jobRepo.Update(job); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Failed to update job",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    job,
	})
}

func (jc *JobController) DeleteJob(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"message": "Not authorized to access this route",
		})
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Invalid job ID",
		})
		return
	}

	job, err := jc.jobRepo.FindByID(uint(id))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"message": "Job not found",
		})
		return
	}

	if !canModify(user, job) {
		c.JSON(http.StatusForbidden, gin.H{
			"success": false,
			"message": "Not authorized to delete this job",
		})
		return
	}

	if err := jc.jobRepo.Delete(job.ID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Failed to delete job",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Job deleted successfully",
	})
}

// ApplyToJob records a student's application. Owners cannot apply to their
// own posting and a second application to the same job is rejected.
func (jc *JobController) ApplyToJob(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"message": "Not authorized to access this route",
		})
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Invalid job ID",
		})
		return
	}

	job, err := jc.jobRepo.FindByID(uint(id))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"message": "Job not found",
		})
		return
	}

	if job.PostedByID == user.ID {
		c.JSON(http.StatusForbidden, gin.H{
			"success": false,
			"message": "You cannot apply to your own job posting",
		})
		return
	}

	exists, err := jc.appRepo.Exists(job.ID, user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Failed to apply to job",
		})
		return
	}
	if exists {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "You have already applied to this job",
		})
		return
	}

	application := models.Application{
		JobID:       job.ID,
		ApplicantID: user.ID,
		Status:      models.ApplicationStatusPending,
	}
	if err := jc.appRepo.Create(&application); err != nil {
		// Two concurrent applies race past the pre-check; the unique index
		// catches the loser.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"message": "You have already applied to this job",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Failed to apply to job",
		})
		return
	}

	if jc.publisher != nil {
		event := events.ApplicationSubmitted{
			JobID:         job.ID,
			JobTitle:      job.Title,
			ApplicantID:   user.ID,
			ApplicantName: user.Name,
			EmployerEmail: job.PostedBy.Email,
			EmployerName:  job.PostedBy.Name,
		}
		if err := jc.publisher.PublishApplicationSubmitted(event); err != nil {
			log.Printf("Failed to publish application event for job %d: %v", job.ID, err)
		}
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Application submitted successfully",
		"data":    application,
	})
}

func (jc *JobController) GetMyJobs(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"message": "Not authorized to access this route",
		})
		return
	}

	jobs, err := jc.jobRepo.ListByPoster(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Failed to fetch jobs",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"count":   len(jobs),
		"data":    jobs,
	})
}

// GetDashboardStats returns role-scoped aggregates. Completed counts stay 0
// until job completion tracking exists.
func (jc *JobController) GetDashboardStats(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"message": "Not authorized to access this route",
		})
		return
	}

	if user.IsEmployerOrAdmin() {
		totalJobs, err := jc.jobRepo.CountByPoster(user.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"message": "Failed to fetch stats",
			})
			return
		}
		activeJobs, err := jc.jobRepo.CountByPosterAndStatus(user.ID, models.JobStatusActive)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"message": "Failed to fetch stats",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"data": gin.H{
				"totalJobs":     totalJobs,
				"activeJobs":    activeJobs,
				"ongoingJobs":   activeJobs,
				"completedJobs": 0,
			},
		})
		return
	}

	activeJobs, err := jc.jobRepo.CountByStatus(models.JobStatusActive)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Failed to fetch stats",
		})
		return
	}
	appliedJobs, err := jc.appRepo.CountByApplicant(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Failed to fetch stats",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"activeJobs":    activeJobs,
			"appliedJobs":   appliedJobs,
			"completedJobs": 0,
		},
	})
}
