package services

import (
	"testing"

	"github.com/mizuki-dev/task-manager-api/internal/models"
	"github.com/mizuki-dev/task-manager-api/internal/rbac"
	"github.com/mizuki-dev/task-manager-api/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// UserServiceTestSuite defines the test suite for UserService
type UserServiceTestSuite struct {
	suite.Suite
	db      *gorm.DB
	service *UserService
}

// SetupTest runs before each test
func (suite *UserServiceTestSuite) SetupTest() {
	var err error

	// Create in-memory SQLite database
	suite.db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	suite.Require().NoError(err)

	// Run migrations
	err = suite.db.AutoMigrate(
		&models.Organization{},
		&models.User{},
		&models.AuditLog{},
	)
	suite.Require().NoError(err)

	userRepo := repository.NewUserRepository(suite.db)
	orgRepo := repository.NewOrganizationRepository(suite.db)
	auditRepo := repository.NewAuditLogRepository(suite.db)

	engine := rbac.NewEngine(rbac.NewOrgTree(orgRepo))
	audit := NewAuditService(auditRepo, engine)
	suite.service = NewUserService(userRepo, engine, audit)
}

// TearDownTest runs after each test
func (suite *UserServiceTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

func (suite *UserServiceTestSuite) createTestOrganization(name string, parentID *uint64) *models.Organization {
	org := &models.Organization{
		Name:     name,
		ParentID: parentID,
	}
	suite.db.Create(org)
	return org
}

func (suite *UserServiceTestSuite) createTestUser(email string, role models.Role, orgID uint64) *models.User {
	user := &models.User{
		Email:          email,
		PasswordHash:   "hashedpassword",
		Role:           role,
		OrganizationID: orgID,
	}
	suite.db.Create(user)
	return user
}

func (suite *UserServiceTestSuite) denialReason(err error) string {
	var denied *rbac.PermissionDeniedError
	suite.Require().ErrorAs(err, &denied)
	return denied.Reason
}

// TestListUsers_OwnerSeesChildOrganization tests owner user scope
func (suite *UserServiceTestSuite) TestListUsers_OwnerSeesChildOrganization() {
	parent := suite.createTestOrganization("Parent", nil)
	child := suite.createTestOrganization("Child", &parent.ID)
	unrelated := suite.createTestOrganization("Unrelated", nil)

	owner := suite.createTestUser("owner@example.com", models.RoleOwner, parent.ID)
	suite.createTestUser("child@example.com", models.RoleViewer, child.ID)
	suite.createTestUser("out@example.com", models.RoleViewer, unrelated.ID)

	users, err := suite.service.ListUsers(ActorFor(owner))

	suite.Require().NoError(err)
	emails := make([]string, 0, len(users))
	for _, user := range users {
		emails = append(emails, user.Email)
	}
	assert.ElementsMatch(suite.T(), []string{"owner@example.com", "child@example.com"}, emails)
}

// TestListUsers_ViewerForbidden tests that viewers cannot list users
func (suite *UserServiceTestSuite) TestListUsers_ViewerForbidden() {
	org := suite.createTestOrganization("Org A", nil)
	viewer := suite.createTestUser("viewer@example.com", models.RoleViewer, org.ID)

	_, err := suite.service.ListUsers(ActorFor(viewer))

	suite.Require().Error(err)
	assert.Equal(suite.T(), "You do not have permission to view users", suite.denialReason(err))
}

// TestCreateUser_OwnerCreatesAdmin tests creation of a lower role
func (suite *UserServiceTestSuite) TestCreateUser_OwnerCreatesAdmin() {
	org := suite.createTestOrganization("Org A", nil)
	owner := suite.createTestUser("owner@example.com", models.RoleOwner, org.ID)

	user, err := suite.service.CreateUser(ActorFor(owner), CreateUserInput{
		Email:    "admin@example.com",
		Password: "password123",
		Role:     models.RoleAdmin,
	})

	suite.Require().NoError(err)
	assert.Equal(suite.T(), models.RoleAdmin, user.Role)
	assert.Equal(suite.T(), org.ID, user.OrganizationID)

	var entry models.AuditLog
	err = suite.db.Where("resource = ? AND action = ?", "user", models.AuditActionCreate).First(&entry).Error
	suite.Require().NoError(err)
	assert.Equal(suite.T(), "admin@example.com", entry.Metadata["email"])
}

// TestCreateUser_RoleDefaultsToViewer tests the default role
func (suite *UserServiceTestSuite) TestCreateUser_RoleDefaultsToViewer() {
	org := suite.createTestOrganization("Org A", nil)
	owner := suite.createTestUser("owner@example.com", models.RoleOwner, org.ID)

	user, err := suite.service.CreateUser(ActorFor(owner), CreateUserInput{
		Email:    "new@example.com",
		Password: "password123",
	})

	suite.Require().NoError(err)
	assert.Equal(suite.T(), models.RoleViewer, user.Role)
}

// TestCreateUser_CannotCreateEqualRole tests the strict dominance rule
func (suite *UserServiceTestSuite) TestCreateUser_CannotCreateEqualRole() {
	org := suite.createTestOrganization("Org A", nil)
	owner := suite.createTestUser("owner@example.com", models.RoleOwner, org.ID)

	_, err := suite.service.CreateUser(ActorFor(owner), CreateUserInput{
		Email:    "peer@example.com",
		Password: "password123",
		Role:     models.RoleOwner,
	})

	suite.Require().Error(err)
	assert.Equal(suite.T(), "You cannot create a user with an equal or higher role", suite.denialReason(err))
}

// TestCreateUser_AdminForbidden tests that admins cannot create users
func (suite *UserServiceTestSuite) TestCreateUser_AdminForbidden() {
	org := suite.createTestOrganization("Org A", nil)
	admin := suite.createTestUser("admin@example.com", models.RoleAdmin, org.ID)

	_, err := suite.service.CreateUser(ActorFor(admin), CreateUserInput{
		Email:    "new@example.com",
		Password: "password123",
		Role:     models.RoleViewer,
	})

	suite.Require().Error(err)
	assert.Equal(suite.T(), "You do not have permission to create users", suite.denialReason(err))
}

// TestCreateUser_InvalidRole tests rejection of unknown roles
func (suite *UserServiceTestSuite) TestCreateUser_InvalidRole() {
	org := suite.createTestOrganization("Org A", nil)
	owner := suite.createTestUser("owner@example.com", models.RoleOwner, org.ID)

	_, err := suite.service.CreateUser(ActorFor(owner), CreateUserInput{
		Email:    "new@example.com",
		Password: "password123",
		Role:     models.Role("superuser"),
	})
	assert.ErrorIs(suite.T(), err, ErrInvalidRole)
}

// TestSuite runs the test suite
func TestUserServiceTestSuite(t *testing.T) {
	suite.Run(t, new(UserServiceTestSuite))
}
