package storage

import (
	"context"
	"sort"
	"time"

	"taskhub/internal/domain/errors"
	"taskhub/internal/domain/models"

	"github.com/google/uuid"
)

type Storage struct {
	users map[string]models.User
	tasks map[string]models.Task
}

func NewStorage() *Storage {
	return &Storage{
		users: make(map[string]models.User),
		tasks: make(map[string]models.Task),
	}
}

func (s *Storage) GetUserByID(id string) (*models.User, error) {
	user, exists := s.users[id]
	if !exists {
		return nil, errors.ErrUserNotFound
	}
	return &user, nil
}

func (s *Storage) GetUserByEmail(email string) (*models.User, error) {
	for _, user := range s.users {
		if user.Email == email {
			return &user, nil
		}
	}
	return nil, errors.ErrUserNotFound
}

func (s *Storage) CreateUser(user *models.User) error {
	for _, existingUser := range s.users {
		if existingUser.Email == user.Email || existingUser.Username == user.Username {
			return errors.ErrUserAlreadyExists
		}
	}
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	s.users[user.ID] = *user
	return nil
}

func (s *Storage) UpdateUser(id string, user *models.User) error {
	if _, exists := s.users[id]; !exists {
		return errors.ErrUserNotFound
	}
	user.ID = id
	s.users[id] = *user
	return nil
}

func (s *Storage) CreateTask(ctx context.Context, task *models.Task) error {
	id := uuid.New().String()
	task.ID = id
	now := time.Now()
	task.CreatedAt = now
	task.UpdatedAt = now
	s.tasks[id] = *task
	return nil
}

func (s *Storage) GetTaskByID(ctx context.Context, id string) (*models.Task, error) {
	task, exists := s.tasks[id]
	if !exists {
		return nil, errors.ErrTaskNotFound
	}
	return &task, nil
}

// GetTasks возвращает все задачи по возрастанию deadline; при равных
// deadline — по приоритету в лексикографическом порядке его текста.
func (s *Storage) GetTasks(ctx context.Context) ([]models.Task, error) {
	tasks := []models.Task{}
	for _, t := range s.tasks {
		tasks = append(tasks, t)
	}
	sort.Slice(tasks, func(i, j int) bool {
		if !tasks[i].Deadline.Equal(tasks[j].Deadline) {
			return tasks[i].Deadline.Before(tasks[j].Deadline)
		}
		return tasks[i].Priority < tasks[j].Priority
	})
	return tasks, nil
}

func (s *Storage) GetTasksDueBetween(ctx context.Context, from, to time.Time) ([]models.Task, error) {
	tasks := []models.Task{}
	for _, t := range s.tasks {
		if !t.Deadline.Before(from) && !t.Deadline.After(to) {
			tasks = append(tasks, t)
		}
	}
	return tasks, nil
}

func (s *Storage) UpdateTask(ctx context.Context, id string, task *models.Task) error {
	if _, exists := s.tasks[id]; !exists {
		return errors.ErrTaskNotFound
	}
	task.ID = id
	task.UpdatedAt = time.Now()
	s.tasks[id] = *task
	return nil
}

func (s *Storage) DeleteTask(ctx context.Context, id string) error {
	if _, exists := s.tasks[id]; !exists {
		return errors.ErrTaskNotFound
	}
	delete(s.tasks, id)
	return nil
}
