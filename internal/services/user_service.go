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

var ErrInvalidRole = errors.New("invalid role")

// UserService provides user management for owners and admins.
type UserService struct {
	userRepo repository.UserRepository
	engine   *rbac.Engine
	audit    *AuditService
}

// NewUserService creates a new UserService.
func NewUserService(userRepo repository.UserRepository, engine *rbac.Engine, audit *AuditService) *UserService {
	return &UserService{
		userRepo: userRepo,
		engine:   engine,
		audit:    audit,
	}
}

// ListUsers returns the users visible to the actor, scoped the same way
// task listing is.
func (s *UserService) ListUsers(actor rbac.Actor) ([]models.User, error) {
	if actor.IsZero() {
		return nil, ErrNotAuthenticated
	}
	if !rbac.HasCapability(actor.Role, rbac.CapUserRead) {
		return nil, &rbac.PermissionDeniedError{Reason: "You do not have permission to view users"}
	}

	users, err := s.userRepo.ListByOrganizationIDs(s.engine.VisibleOrgIDs(actor))
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	return users, nil
}

// CreateUserInput represents input for creating a user as an owner.
type CreateUserInput struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
	Role      models.Role
}

// CreateUser creates a user in the actor's organization. The actor must
// hold the user:create capability and strictly dominate the new user's
// role.
func (s *UserService) CreateUser(actor rbac.Actor, input CreateUserInput) (*models.User, error) {
	if actor.IsZero() {
		return nil, ErrNotAuthenticated
	}
	if !rbac.HasCapability(actor.Role, rbac.CapUserCreate) {
		return nil, &rbac.PermissionDeniedError{Reason: "You do not have permission to create users"}
	}

	if input.Role == "" {
		input.Role = models.RoleViewer
	}
	if !input.Role.IsValid() {
		return nil, ErrInvalidRole
	}
	if !rbac.StrictlyDominates(actor.Role, input.Role) {
		return nil, &rbac.PermissionDeniedError{Reason: "You cannot create a user with an equal or higher role"}
	}

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

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, ErrFailedToHashPassword
	}

	user := &models.User{
		Email:          email,
		PasswordHash:   string(hashedPassword),
		FirstName:      input.FirstName,
		LastName:       input.LastName,
		Role:           input.Role,
		OrganizationID: actor.OrganizationID,
	}

	if err := s.userRepo.Create(user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.audit.Log(LogEntryInput{
		Action:         models.AuditActionCreate,
		Resource:       "user",
		ResourceID:     &user.ID,
		UserID:         actor.SubjectID,
		OrganizationID: actor.OrganizationID,
		Metadata:       models.Metadata{"email": user.Email, "role": string(user.Role)},
	})

	return user, nil
}
