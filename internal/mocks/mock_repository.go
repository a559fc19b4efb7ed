package mocks

import (
	"campusconnect/internal/events"
	"campusconnect/internal/models"
	"campusconnect/internal/repository"
	"time"

	"github.com/stretchr/testify/mock"
)

// Shared MockUserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) CreateUser(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) GetUserByEmail(email string) (*models.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetUserByID(id uint) (*models.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetUserByVerificationToken(token string) (*models.User, error) {
	args := m.Called(token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetUserByResetToken(hashedToken string, now time.Time) (*models.User, error) {
	args := m.Called(hashedToken, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) UpdateUser(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) PatchUser(id uint, data map[string]interface{}) error {
	args := m.Called(id, data)
	return args.Error(0)
}

// Shared MockJobRepository
type MockJobRepository struct {
	mock.Mock
}

func (m *MockJobRepository) Create(job *models.Job) error {
	args := m.Called(job)
	return args.Error(0)
}

func (m *MockJobRepository) FindByID(id uint) (*models.Job, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Job), args.Error(1)
}

func (m *MockJobRepository) Update(job *models.Job) error {
	args := m.Called(job)
	return args.Error(0)
}

func (m *MockJobRepository) Delete(id uint) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockJobRepository) List(filter repository.JobFilter) ([]models.Job, int64, error) {
	args := m.Called(filter)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]models.Job), args.Get(1).(int64), args.Error(2)
}

func (m *MockJobRepository) ListByPoster(userID uint) ([]models.Job, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Job), args.Error(1)
}

func (m *MockJobRepository) CountByPoster(userID uint) (int64, error) {
	args := m.Called(userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockJobRepository) CountByPosterAndStatus(userID uint, status string) (int64, error) {
	args := m.Called(userID, status)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockJobRepository) CountByStatus(status string) (int64, error) {
	args := m.Called(status)
	return args.Get(0).(int64), args.Error(1)
}

// Shared MockApplicationRepository
type MockApplicationRepository struct {
	mock.Mock
}

func (m *MockApplicationRepository) Create(app *models.Application) error {
	args := m.Called(app)
	return args.Error(0)
}

func (m *MockApplicationRepository) Exists(jobID, applicantID uint) (bool, error) {
	args := m.Called(jobID, applicantID)
	return args.Bool(0), args.Error(1)
}

func (m *MockApplicationRepository) CountByJob(jobID uint) (int64, error) {
	args := m.Called(jobID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockApplicationRepository) CountByApplicant(applicantID uint) (int64, error) {
	args := m.Called(applicantID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockApplicationRepository) ListByJob(jobID uint) ([]models.Application, error) {
	args := m.Called(jobID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Application), args.Error(1)
}

// Shared MockConversationRepository
type MockConversationRepository struct {
	mock.Mock
}

func (m *MockConversationRepository) FindOrCreate(userA, userB uint) (*models.Conversation, error) {
	args := m.Called(userA, userB)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Conversation), args.Error(1)
}

func (m *MockConversationRepository) FindByID(id uint) (*models.Conversation, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Conversation), args.Error(1)
}

func (m *MockConversationRepository) ListByUser(userID uint) ([]models.Conversation, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Conversation), args.Error(1)
}

func (m *MockConversationRepository) TouchLastMessage(id uint, text string, at time.Time) error {
	args := m.Called(id, text, at)
	return args.Error(0)
}

// Shared MockMessageRepository
type MockMessageRepository struct {
	mock.Mock
}

func (m *MockMessageRepository) Create(message *models.Message) error {
	args := m.Called(message)
	return args.Error(0)
}

func (m *MockMessageRepository) FindByID(id uint) (*models.Message, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Message), args.Error(1)
}

func (m *MockMessageRepository) ListByConversation(conversationID uint) ([]models.Message, error) {
	args := m.Called(conversationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Message), args.Error(1)
}

// MockMailer records outgoing mail for assertions.
type MockMailer struct {
	mock.Mock
}

func (m *MockMailer) Send(recipient, subject, body string) error {
	args := m.Called(recipient, subject, body)
	return args.Error(0)
}

// MockPublisher records emitted application events.
type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) PublishApplicationSubmitted(event events.ApplicationSubmitted) error {
	args := m.Called(event)
	return args.Error(0)
}

func (m *MockPublisher) Close() error {
	args := m.Called()
	return args.Error(0)
}
