package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/mizuki-dev/task-manager-api/internal/constants"
	"github.com/mizuki-dev/task-manager-api/internal/models"
	"github.com/mizuki-dev/task-manager-api/internal/rbac"
	"github.com/mizuki-dev/task-manager-api/internal/repository"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrEmailTaken           = errors.New("user with this email already exists")
	ErrInvalidCredentials   = errors.New("invalid email or password")
	ErrPasswordTooShort     = errors.New("password too short")
	ErrUserNotFound         = errors.New("user not found")
	ErrOrganizationNotFound = errors.New("organization not found")
	ErrFailedToHashPassword = errors.New("failed to hash password")
)

// AuthService handles authentication related business logic.
type AuthService struct {
	userRepo repository.UserRepository
	orgRepo  repository.OrganizationRepository
	audit    *AuditService
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repository.UserRepository, orgRepo repository.OrganizationRepository, audit *AuditService) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		orgRepo:  orgRepo,
		audit:    audit,
	}
}

// LoginInput holds the credentials for authentication.
type LoginInput struct {
	Email    string
	Password string
}

// Login verifies credentials, records a login audit event, and returns
// the authenticated user.
func (s *AuthService) Login(input LoginInput) (*models.User, error) {
	user, err := s.userRepo.FindByEmail(input.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	s.audit.Log(LogEntryInput{
		Action:         models.AuditActionLogin,
		Resource:       "auth",
		UserID:         user.ID,
		OrganizationID: user.OrganizationID,
		Metadata:       models.Metadata{"email": user.Email},
	})

	return user, nil
}

// Logout records a logout audit event for the actor.
func (s *AuthService) Logout(actor rbac.Actor) {
	if actor.IsZero() {
		return
	}

	s.audit.Log(LogEntryInput{
		Action:         models.AuditActionLogout,
		Resource:       "auth",
		UserID:         actor.SubjectID,
		OrganizationID: actor.OrganizationID,
	})
}

// RegisterInput represents the required information to create a new user.
type RegisterInput struct {
	Email          string
	Password       string
	FirstName      string
	LastName       string
	OrganizationID uint64
}

// Register creates a new user in an existing organization. New users
// always start as viewers; role changes are an owner-level operation.
func (s *AuthService) Register(input RegisterInput) (*models.User, error) {
	email := strings.TrimSpace(input.Email)
	if email == "" {
		return nil, fmt.Errorf("email is required")
	}
	if len(input.Password) < constants.MinPasswordLength {
		return nil, ErrPasswordTooShort
	}

	if _, err := s.userRepo.FindByEmail(email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}

	if _, err := s.orgRepo.FindByID(input.OrganizationID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrganizationNotFound
		}
		return nil, fmt.Errorf("failed to find organization: %w", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, ErrFailedToHashPassword
	}

	user := &models.User{
		Email:          email,
		PasswordHash:   string(hashedPassword),
		FirstName:      input.FirstName,
		LastName:       input.LastName,
		Role:           models.RoleViewer,
		OrganizationID: input.OrganizationID,
	}

	if err := s.userRepo.Create(user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// GetUser retrieves a user by ID.
func (s *AuthService) GetUser(id uint64) (*models.User, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	return user, nil
}

// ActorFor builds the rbac actor for an authenticated user.
func ActorFor(user *models.User) rbac.Actor {
	return rbac.Actor{
		SubjectID:      user.ID,
		Role:           user.Role,
		OrganizationID: user.OrganizationID,
	}
}
