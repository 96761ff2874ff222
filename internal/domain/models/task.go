package models

import (
	"time"

	"taskhub/internal/domain/errors"

	"github.com/google/uuid"
)

// Share добавляет запись доступа без проверки дубликатов: повторный вызов
// для того же пользователя создаёт вторую запись.
func (t *Task) Share(user, permission string) error {
	if user == "" || permission == "" {
		return errors.ErrInvalidInput
	}
	t.SharedWith = append(t.SharedWith, SharedWith{User: user, Permission: permission})
	return nil
}

// UpdateSharing меняет право только у первой подходящей записи.
func (t *Task) UpdateSharing(user, permission string) error {
	if permission == "" {
		return errors.ErrInvalidPermission
	}
	for i := range t.SharedWith {
		if t.SharedWith[i].User == user {
			t.SharedWith[i].Permission = permission
			return nil
		}
	}
	return errors.ErrShareNotFound
}

// RemoveShared удаляет все записи пользователя. Отсутствие совпадений не ошибка.
func (t *Task) RemoveShared(user string) {
	kept := t.SharedWith[:0]
	for _, sw := range t.SharedWith {
		if sw.User != user {
			kept = append(kept, sw)
		}
	}
	t.SharedWith = kept
}

func (t *Task) AddComment(content, author string) (*Comment, error) {
	if content == "" || author == "" {
		return nil, errors.ErrInvalidComment
	}
	comment := Comment{
		ID:        uuid.New().String(),
		Content:   content,
		Author:    author,
		CreatedAt: time.Now(),
		Replies:   []Reply{},
	}
	t.Comments = append(t.Comments, comment)
	return &t.Comments[len(t.Comments)-1], nil
}

func (t *Task) CommentByID(commentID string) *Comment {
	for i := range t.Comments {
		if t.Comments[i].ID == commentID {
			return &t.Comments[i]
		}
	}
	return nil
}

// AddReply добавляет ответ к комментарию по его ID. При отсутствии
// комментария задача не изменяется.
func (t *Task) AddReply(commentID, content, author string) (*Comment, error) {
	if content == "" || author == "" {
		return nil, errors.ErrInvalidComment
	}
	comment := t.CommentByID(commentID)
	if comment == nil {
		return nil, errors.ErrCommentNotFound
	}
	comment.Replies = append(comment.Replies, Reply{
		Content:   content,
		Author:    author,
		CreatedAt: time.Now(),
	})
	return comment, nil
}

func (t *Task) Attach(fileName, filePath string, fileSize int64) {
	t.Attachments = append(t.Attachments, Attachment{
		FileName: fileName,
		FilePath: filePath,
		FileSize: fileSize,
	})
}
