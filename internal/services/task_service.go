package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/mizuki-dev/task-manager-api/internal/models"
	"github.com/mizuki-dev/task-manager-api/internal/rbac"
	"github.com/mizuki-dev/task-manager-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrNotAuthenticated = errors.New("no authenticated actor")
	ErrTaskNotFound     = errors.New("task not found")
	ErrTitleRequired    = errors.New("title is required")
	ErrTitleEmpty       = errors.New("title cannot be empty")
	ErrInvalidStatus    = errors.New("invalid task status")
	ErrInvalidCategory  = errors.New("invalid task category")
	ErrNoTaskIDs        = errors.New("at least one task ID is required")
)

// TaskService is the façade over task storage. Every mutation and read
// is gated through the access decision engine before any row is touched.
type TaskService struct {
	taskRepo repository.TaskRepository
	engine   *rbac.Engine
	audit    *AuditService
}

// NewTaskService creates a new TaskService.
func NewTaskService(taskRepo repository.TaskRepository, engine *rbac.Engine, audit *AuditService) *TaskService {
	return &TaskService{
		taskRepo: taskRepo,
		engine:   engine,
		audit:    audit,
	}
}

// CreateTaskInput represents input for creating a task
type CreateTaskInput struct {
	Title       string
	Description string
	Category    models.TaskCategory
	Status      models.TaskStatus
}

// ListTasksInput represents optional narrowing filters for listing tasks
type ListTasksInput struct {
	Status   *models.TaskStatus
	Category *models.TaskCategory
	Search   string
}

// UpdateTaskInput represents input for updating a task
type UpdateTaskInput struct {
	Title       *string
	Description *string
	Category    *models.TaskCategory
	Status      *models.TaskStatus
	Order       *int
}

// CreateTask creates a task owned by the actor in the actor's
// organization. The new task is appended to the end of the actor's list.
func (s *TaskService) CreateTask(actor rbac.Actor, input CreateTaskInput) (*models.Task, error) {
	if actor.IsZero() {
		return nil, ErrNotAuthenticated
	}
	if !rbac.HasCapability(actor.Role, rbac.CapTaskCreate) {
		return nil, &rbac.PermissionDeniedError{Reason: "You do not have permission to create tasks"}
	}

	if strings.TrimSpace(input.Title) == "" {
		return nil, ErrTitleRequired
	}

	if input.Category == "" {
		input.Category = models.TaskCategoryOther
	} else if !input.Category.IsValid() {
		return nil, ErrInvalidCategory
	}
	if input.Status == "" {
		input.Status = models.TaskStatusTodo
	} else if !input.Status.IsValid() {
		return nil, ErrInvalidStatus
	}

	maxOrder, err := s.taskRepo.MaxOrderForOwner(actor.SubjectID)
	if err != nil {
		return nil, fmt.Errorf("failed to determine task order: %w", err)
	}

	task := &models.Task{
		Title:          input.Title,
		Description:    input.Description,
		Category:       input.Category,
		Status:         input.Status,
		Order:          maxOrder + 1,
		OwnerID:        actor.SubjectID,
		OrganizationID: actor.OrganizationID,
	}

	if err := s.taskRepo.Create(task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	s.audit.Log(LogEntryInput{
		Action:         models.AuditActionCreate,
		Resource:       "task",
		ResourceID:     &task.ID,
		UserID:         actor.SubjectID,
		OrganizationID: actor.OrganizationID,
		Metadata:       models.Metadata{"title": task.Title},
	})

	return task, nil
}

// ListTasks returns the tasks visible to the actor, ordered by display
// order. Visibility is a query filter, not a per-row decision: owners
// see their org and its direct children, admins their own org, viewers
// only tasks they own.
func (s *TaskService) ListTasks(actor rbac.Actor, input ListTasksInput) ([]models.Task, int64, error) {
	if actor.IsZero() {
		return nil, 0, ErrNotAuthenticated
	}

	filter := repository.TaskFilter{
		Status:   input.Status,
		Category: input.Category,
		Search:   input.Search,
	}

	if actor.Role == models.RoleViewer {
		filter.OwnerID = &actor.SubjectID
	} else {
		filter.OrganizationIDs = s.engine.VisibleOrgIDs(actor)
	}

	tasks, total, err := s.taskRepo.List(filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list tasks: %w", err)
	}

	return tasks, total, nil
}

// GetTask returns a single task after a read access check.
func (s *TaskService) GetTask(taskID uint64, actor rbac.Actor) (*models.Task, error) {
	if actor.IsZero() {
		return nil, ErrNotAuthenticated
	}

	task, err := s.taskRepo.FindByID(taskID, "Owner")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	if err := s.engine.Authorize(actor, taskResource(task), rbac.ActionRead); err != nil {
		return nil, err
	}

	return task, nil
}

// UpdateTask applies the given changes after an update access check and
// records the changed fields in the audit trail.
func (s *TaskService) UpdateTask(taskID uint64, actor rbac.Actor, input UpdateTaskInput) (*models.Task, error) {
	if actor.IsZero() {
		return nil, ErrNotAuthenticated
	}

	task, err := s.taskRepo.FindByID(taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	if err := s.engine.Authorize(actor, taskResource(task), rbac.ActionUpdate); err != nil {
		return nil, err
	}

	changes := models.Metadata{}
	if input.Title != nil {
		if strings.TrimSpace(*input.Title) == "" {
			return nil, ErrTitleEmpty
		}
		task.Title = *input.Title
		changes["title"] = *input.Title
	}
	if input.Description != nil {
		task.Description = *input.Description
		changes["description"] = *input.Description
	}
	if input.Category != nil {
		if !input.Category.IsValid() {
			return nil, ErrInvalidCategory
		}
		task.Category = *input.Category
		changes["category"] = string(*input.Category)
	}
	if input.Status != nil {
		if !input.Status.IsValid() {
			return nil, ErrInvalidStatus
		}
		task.Status = *input.Status
		changes["status"] = string(*input.Status)
	}
	if input.Order != nil {
		task.Order = *input.Order
		changes["order"] = *input.Order
	}

	if err := s.taskRepo.Update(task); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	s.audit.Log(LogEntryInput{
		Action:         models.AuditActionUpdate,
		Resource:       "task",
		ResourceID:     &task.ID,
		UserID:         actor.SubjectID,
		OrganizationID: actor.OrganizationID,
		Metadata:       models.Metadata{"changes": changes},
	})

	return task, nil
}

// DeleteTask removes a task after a delete access check.
func (s *TaskService) DeleteTask(taskID uint64, actor rbac.Actor) error {
	if actor.IsZero() {
		return ErrNotAuthenticated
	}

	task, err := s.taskRepo.FindByID(taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTaskNotFound
		}
		return fmt.Errorf("failed to find task: %w", err)
	}

	if err := s.engine.Authorize(actor, taskResource(task), rbac.ActionDelete); err != nil {
		return err
	}

	if err := s.taskRepo.Delete(taskID); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}

	s.audit.Log(LogEntryInput{
		Action:         models.AuditActionDelete,
		Resource:       "task",
		ResourceID:     &taskID,
		UserID:         actor.SubjectID,
		OrganizationID: actor.OrganizationID,
		Metadata:       models.Metadata{"title": task.Title},
	})

	return nil
}

// ReorderTasks assigns display order = list index to every task in the
// given list. Each listed task must pass an update access check before
// any order changes; a single denial aborts the whole call. Reapplying
// the same list is idempotent.
func (s *TaskService) ReorderTasks(taskIDs []uint64, actor rbac.Actor) error {
	if actor.IsZero() {
		return ErrNotAuthenticated
	}
	if len(taskIDs) == 0 {
		return ErrNoTaskIDs
	}

	tasks, err := s.taskRepo.FindByIDs(taskIDs)
	if err != nil {
		return fmt.Errorf("failed to find tasks: %w", err)
	}

	for i := range tasks {
		if err := s.engine.Authorize(actor, taskResource(&tasks[i]), rbac.ActionUpdate); err != nil {
			return err
		}
	}

	if err := s.taskRepo.Reorder(taskIDs); err != nil {
		return fmt.Errorf("failed to reorder tasks: %w", err)
	}

	return nil
}

func taskResource(task *models.Task) rbac.Resource {
	return rbac.Resource{
		OwnerID:        task.OwnerID,
		OrganizationID: task.OrganizationID,
	}
}
