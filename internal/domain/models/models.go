package models

import "time"

const (
	StatusPending    = "Pending"
	StatusInProgress = "In Progress"
	StatusCompleted  = "Completed"

	PriorityLow    = "Low"
	PriorityMedium = "Medium"
	PriorityHigh   = "High"

	PermissionView = "view"
	PermissionEdit = "edit"
)

type Profile struct {
	FullName string `json:"fullName" validate:"omitempty,max=100"`
	Avatar   string `json:"avatar" validate:"omitempty,max=500"`
	Bio      string `json:"bio" validate:"omitempty,max=1000"`
}

type Settings struct {
	Theme         string `json:"theme" validate:"omitempty,max=50"`
	Notifications bool   `json:"notifications"`
}

type User struct {
	ID       string   `json:"id" validate:"omitempty,uuid"`
	Username string   `json:"username" validate:"required,min=3,max=50,alphanum"`
	Email    string   `json:"email" validate:"required,email"`
	Password string   `json:"password,omitempty" validate:"required,min=6,max=100"`
	Profile  Profile  `json:"profile"`
	Settings Settings `json:"settings"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=50,alphanum"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,max=100"`
}

type UpdateProfileRequest struct {
	FullName      string `json:"fullName" validate:"omitempty,max=100"`
	Avatar        string `json:"avatar" validate:"omitempty,max=500"`
	Bio           string `json:"bio" validate:"omitempty,max=1000"`
	Theme         string `json:"theme" validate:"omitempty,max=50"`
	Notifications bool   `json:"notifications"`
}

// SharedWith — запись доступа к задаче. Дубликаты по user допускаются,
// уникальность не проверяется.
type SharedWith struct {
	User       string `json:"user"`
	Permission string `json:"permission"`
}

type Reply struct {
	Content   string    `json:"content"`
	Author    string    `json:"author"`
	CreatedAt time.Time `json:"createdAt"`
}

// Comment имеет стабильный ID, по которому адресуется его список ответов.
// У Reply собственного ID нет, после создания он не адресуется.
type Comment struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	Author    string    `json:"author"`
	CreatedAt time.Time `json:"createdAt"`
	Replies   []Reply   `json:"replies"`
}

type Attachment struct {
	FileName string `json:"fileName"`
	FilePath string `json:"filePath"`
	FileSize int64  `json:"fileSize"`
}

type Task struct {
	ID           string       `json:"id" validate:"omitempty,uuid"`
	Title        string       `json:"title" validate:"required,min=1,max=200"`
	Description  string       `json:"description" validate:"required,max=2000"`
	Deadline     time.Time    `json:"deadline" validate:"required"`
	Priority     string       `json:"priority" validate:"required,oneof=Low Medium High"`
	Category     string       `json:"category" validate:"required,max=100"`
	Status       string       `json:"status" validate:"omitempty,oneof=Pending 'In Progress' Completed"`
	Assignee     string       `json:"assignee,omitempty"`
	DueDate      *time.Time   `json:"dueDate,omitempty"`
	ReminderDate *time.Time   `json:"reminderDate,omitempty"`
	SharedWith   []SharedWith `json:"sharedWith"`
	Comments     []Comment    `json:"comments"`
	Attachments  []Attachment `json:"attachments"`
	CreatedAt    time.Time    `json:"createdAt"`
	UpdatedAt    time.Time    `json:"updatedAt"`
}

type CreateTaskRequest struct {
	Title        string `json:"title"`
	Description  string `json:"description"`
	Deadline     string `json:"deadline"`
	Priority     string `json:"priority"`
	Category     string `json:"category"`
	Assignee     string `json:"assignee"`
	DueDate      string `json:"dueDate"`
	ReminderDate string `json:"reminderDate"`
}

type UpdateTaskRequest struct {
	Title         string `json:"title" validate:"omitempty,min=1,max=200"`
	Description   string `json:"description" validate:"omitempty,max=2000"`
	Status        string `json:"status" validate:"omitempty,oneof=Pending 'In Progress' Completed"`
	AssigneeEmail string `json:"assigneeEmail" validate:"omitempty,email"`
}

type ShareTaskRequest struct {
	User       string `json:"user"`
	Permission string `json:"permission"`
}

type UpdateSharingRequest struct {
	Permission string `json:"permission"`
}

type AddCommentRequest struct {
	Content string `json:"content"`
	Author  string `json:"author"`
}

type SetStatusRequest struct {
	Status string `json:"status"`
}
