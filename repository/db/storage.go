package db

import (
	"context"
	"log"
	"time"

	"taskhub/internal/domain/errors"
	"taskhub/internal/domain/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// Вложенные списки задачи (shared_with, comments, attachments) хранятся
// в JSONB-колонках и перезаписываются целиком при каждом обновлении.
// Атомарность — на уровне строки; последовательность чтение-изменение-запись
// не изолирована, при гонке побеждает последняя запись.
type Storage struct {
	conn               *pgx.Conn
	prepCreateTask     string
	prepGetTaskByID    string
	prepGetTasks       string
	prepGetTasksDue    string
	prepUpdateTask     string
	prepDeleteTask     string
	prepCreateUser     string
	prepGetUserByID    string
	prepGetUserByEmail string
	prepUpdateUser     string
}

func NewStorage(connStr string) (*Storage, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	conn, err := pgx.Connect(ctx, connStr)
	if err != nil {
		log.Println("[ERROR] Не удалось подключиться к базе данных:", err)
		return nil, err
	}

	s := &Storage{
		conn: conn,
		prepCreateTask: `INSERT INTO tasks (id, title, description, deadline, priority, category, status, assignee, due_date, reminder_date, shared_with, comments, attachments, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`,
		prepGetTaskByID: `SELECT id, title, description, deadline, priority, category, status, assignee, due_date, reminder_date, shared_with, comments, attachments, created_at, updated_at
			FROM tasks WHERE id = $1`,
		prepGetTasks: `SELECT id, title, description, deadline, priority, category, status, assignee, due_date, reminder_date, shared_with, comments, attachments, created_at, updated_at
			FROM tasks ORDER BY deadline ASC, priority ASC`,
		prepGetTasksDue: `SELECT id, title, description, deadline, priority, category, status, assignee, due_date, reminder_date, shared_with, comments, attachments, created_at, updated_at
			FROM tasks WHERE deadline >= $1 AND deadline <= $2`,
		prepUpdateTask: `UPDATE tasks SET title = $1, description = $2, deadline = $3, priority = $4, category = $5, status = $6, assignee = $7, due_date = $8, reminder_date = $9, shared_with = $10, comments = $11, attachments = $12, updated_at = $13
			WHERE id = $14`,
		prepDeleteTask:     `DELETE FROM tasks WHERE id = $1`,
		prepCreateUser:     `INSERT INTO users (id, username, email, password, full_name, avatar, bio, theme, notifications) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		prepGetUserByID:    `SELECT id, username, email, password, full_name, avatar, bio, theme, notifications FROM users WHERE id = $1`,
		prepGetUserByEmail: `SELECT id, username, email, password, full_name, avatar, bio, theme, notifications FROM users WHERE email = $1`,
		prepUpdateUser:     `UPDATE users SET username = $1, email = $2, password = $3, full_name = $4, avatar = $5, bio = $6, theme = $7, notifications = $8 WHERE id = $9`,
	}
	log.Println("[SUCCESS] Соединение с базой данных установлено успешно")
	return s, nil
}

func (s *Storage) CreateTask(ctx context.Context, task *models.Task) error {
	ctx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()
	task.ID = uuid.New().String()
	now := time.Now()
	task.CreatedAt = now
	task.UpdatedAt = now
	stmt, err := s.conn.Prepare(ctx, "create_task", s.prepCreateTask)
	if err != nil {
		log.Println("[ERROR] Не удалось подготовить запрос на создание задачи:", err)
		return err
	}
	_, err = s.conn.Exec(ctx, stmt.Name,
		task.ID, task.Title, task.Description, task.Deadline, task.Priority, task.Category,
		task.Status, task.Assignee, task.DueDate, task.ReminderDate,
		task.SharedWith, task.Comments, task.Attachments, task.CreatedAt, task.UpdatedAt)
	if err != nil {
		log.Println("[ERROR] Не удалось создать задачу:", err)
		return errors.ErrInternalServer
	}
	log.Println("[SUCCESS] Задача успешно создана:", task.ID)
	return nil
}

func (s *Storage) scanTask(row pgx.Row) (*models.Task, error) {
	task := &models.Task{}
	err := row.Scan(&task.ID, &task.Title, &task.Description, &task.Deadline, &task.Priority,
		&task.Category, &task.Status, &task.Assignee, &task.DueDate, &task.ReminderDate,
		&task.SharedWith, &task.Comments, &task.Attachments, &task.CreatedAt, &task.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return task, nil
}

func (s *Storage) GetTaskByID(ctx context.Context, id string) (*models.Task, error) {
	ctx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()
	stmt, err := s.conn.Prepare(ctx, "get_task_by_id", s.prepGetTaskByID)
	if err != nil {
		log.Println("[ERROR] Не удалось подготовить запрос на получение задачи по ID:", err)
		return nil, err
	}
	task, err := s.scanTask(s.conn.QueryRow(ctx, stmt.Name, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			log.Println("[ERROR] Задача не найдена:", id)
			return nil, errors.ErrTaskNotFound
		}
		log.Println("[ERROR] Ошибка при получении задачи:", err)
		return nil, err
	}
	return task, nil
}

func (s *Storage) GetTasks(ctx context.Context) ([]models.Task, error) {
	ctx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()
	stmt, err := s.conn.Prepare(ctx, "get_tasks", s.prepGetTasks)
	if err != nil {
		log.Println("[ERROR] Не удалось подготовить запрос на получение всех задач:", err)
		return nil, err
	}
	rows, err := s.conn.Query(ctx, stmt.Name)
	if err != nil {
		log.Println("[ERROR] Не удалось получить задачи:", err)
		return nil, err
	}
	defer rows.Close()
	return s.collectTasks(rows)
}

func (s *Storage) GetTasksDueBetween(ctx context.Context, from, to time.Time) ([]models.Task, error) {
	ctx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()
	stmt, err := s.conn.Prepare(ctx, "get_tasks_due", s.prepGetTasksDue)
	if err != nil {
		log.Println("[ERROR] Не удалось подготовить запрос на выборку задач по сроку:", err)
		return nil, err
	}
	rows, err := s.conn.Query(ctx, stmt.Name, from, to)
	if err != nil {
		log.Println("[ERROR] Не удалось получить задачи по сроку:", err)
		return nil, err
	}
	defer rows.Close()
	return s.collectTasks(rows)
}

func (s *Storage) collectTasks(rows pgx.Rows) ([]models.Task, error) {
	tasks := []models.Task{}
	for rows.Next() {
		task, err := s.scanTask(rows)
		if err != nil {
			log.Println("[ERROR] Ошибка при чтении задач:", err)
			return nil, err
		}
		tasks = append(tasks, *task)
	}
	log.Println("[SUCCESS] Получено задач:", len(tasks))
	return tasks, nil
}

func (s *Storage) UpdateTask(ctx context.Context, id string, task *models.Task) error {
	ctx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()
	task.UpdatedAt = time.Now()
	stmt, err := s.conn.Prepare(ctx, "update_task", s.prepUpdateTask)
	if err != nil {
		log.Println("[ERROR] Не удалось подготовить запрос на обновление задачи:", err)
		return err
	}
	ct, err := s.conn.Exec(ctx, stmt.Name,
		task.Title, task.Description, task.Deadline, task.Priority, task.Category,
		task.Status, task.Assignee, task.DueDate, task.ReminderDate,
		task.SharedWith, task.Comments, task.Attachments, task.UpdatedAt, id)
	if err != nil {
		log.Println("[ERROR] Не удалось обновить задачу:", err)
		return err
	}
	if ct.RowsAffected() == 0 {
		log.Println("[ERROR] Задача для обновления не найдена:", id)
		return errors.ErrTaskNotFound
	}
	log.Println("[SUCCESS] Задача успешно обновлена:", id)
	return nil
}

// DeleteTask удаляет строку целиком: вложенные комментарии, ответы,
// вложения и список доступа уходят вместе с ней.
func (s *Storage) DeleteTask(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()
	stmt, err := s.conn.Prepare(ctx, "delete_task", s.prepDeleteTask)
	if err != nil {
		log.Println("[ERROR] Не удалось подготовить запрос на удаление задачи:", err)
		return err
	}
	ct, err := s.conn.Exec(ctx, stmt.Name, id)
	if err != nil {
		log.Println("[ERROR] Не удалось удалить задачу:", err)
		return err
	}
	if ct.RowsAffected() == 0 {
		log.Println("[ERROR] Задача для удаления не найдена:", id)
		return errors.ErrTaskNotFound
	}
	log.Println("[SUCCESS] Задача удалена:", id)
	return nil
}

func (s *Storage) CreateUser(user *models.User) error {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	stmt, err := s.conn.Prepare(ctx, "create_user", s.prepCreateUser)
	if err != nil {
		log.Println("[ERROR] Не удалось подготовить запрос на создание пользователя:", err)
		return err
	}
	_, err = s.conn.Exec(ctx, stmt.Name, user.ID, user.Username, user.Email, user.Password,
		user.Profile.FullName, user.Profile.Avatar, user.Profile.Bio,
		user.Settings.Theme, user.Settings.Notifications)
	if err != nil {
		log.Println("[ERROR] Не удалось создать пользователя:", err)
		return errors.ErrUserAlreadyExists
	}
	log.Println("[SUCCESS] Пользователь успешно создан:", user.ID)
	return nil
}

func (s *Storage) scanUser(row pgx.Row) (*models.User, error) {
	user := &models.User{}
	err := row.Scan(&user.ID, &user.Username, &user.Email, &user.Password,
		&user.Profile.FullName, &user.Profile.Avatar, &user.Profile.Bio,
		&user.Settings.Theme, &user.Settings.Notifications)
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (s *Storage) GetUserByID(id string) (*models.User, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	stmt, err := s.conn.Prepare(ctx, "get_user_by_id", s.prepGetUserByID)
	if err != nil {
		log.Println("[ERROR] Не удалось подготовить запрос на получение пользователя по ID:", err)
		return nil, err
	}
	user, err := s.scanUser(s.conn.QueryRow(ctx, stmt.Name, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			log.Println("[ERROR] Пользователь не найден:", id)
			return nil, errors.ErrUserNotFound
		}
		log.Println("[ERROR] Ошибка при получении пользователя:", err)
		return nil, err
	}
	return user, nil
}

func (s *Storage) GetUserByEmail(email string) (*models.User, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	stmt, err := s.conn.Prepare(ctx, "get_user_by_email", s.prepGetUserByEmail)
	if err != nil {
		log.Println("[ERROR] Не удалось подготовить запрос на получение пользователя по email:", err)
		return nil, err
	}
	user, err := s.scanUser(s.conn.QueryRow(ctx, stmt.Name, email))
	if err != nil {
		if err == pgx.ErrNoRows {
			log.Println("[ERROR] Пользователь не найден:", email)
			return nil, errors.ErrUserNotFound
		}
		log.Println("[ERROR] Ошибка при получении пользователя:", err)
		return nil, err
	}
	return user, nil
}

func (s *Storage) UpdateUser(id string, user *models.User) error {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	stmt, err := s.conn.Prepare(ctx, "update_user", s.prepUpdateUser)
	if err != nil {
		log.Println("[ERROR] Не удалось подготовить запрос на обновление пользователя:", err)
		return err
	}
	ct, err := s.conn.Exec(ctx, stmt.Name, user.Username, user.Email, user.Password,
		user.Profile.FullName, user.Profile.Avatar, user.Profile.Bio,
		user.Settings.Theme, user.Settings.Notifications, id)
	if err != nil {
		log.Println("[ERROR] Не удалось обновить пользователя:", err)
		return err
	}
	if ct.RowsAffected() == 0 {
		log.Println("[ERROR] Пользователь для обновления не найден:", id)
		return errors.ErrUserNotFound
	}
	log.Println("[SUCCESS] Пользователь успешно обновлен:", id)
	return nil
}
