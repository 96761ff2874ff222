package notify

import (
	"context"
	"fmt"
	"log"
	"time"

	"taskhub/internal/domain/models"
)

type TaskSource interface {
	GetTasksDueBetween(ctx context.Context, from, to time.Time) ([]models.Task, error)
}

// Sweeper раз в сутки рассылает напоминания по задачам, срок которых
// наступает в ближайшие 24 часа (обе границы включительно).
type Sweeper struct {
	tasks  TaskSource
	mailer Mailer
}

func NewSweeper(tasks TaskSource, mailer Mailer) *Sweeper {
	return &Sweeper{tasks: tasks, mailer: mailer}
}

func (s *Sweeper) Run(ctx context.Context) {
	now := time.Now()
	tasksDue, err := s.tasks.GetTasksDueBetween(ctx, now, now.Add(24*time.Hour))
	if err != nil {
		log.Println("[ERROR] Не удалось получить задачи для напоминаний:", err)
		return
	}

	sent := 0
	for _, task := range tasksDue {
		if task.Assignee == "" {
			continue
		}
		subject := fmt.Sprintf("Напоминание: срок задачи «%s» скоро истекает", task.Title)
		body := fmt.Sprintf("Срок задачи «%s» истекает %s.", task.Title, task.Deadline.Format("02.01.2006"))
		// Сбой по одной задаче не прерывает обход остальных.
		if err := s.mailer.Send(task.Assignee, subject, body); err != nil {
			log.Println("[ERROR] Не удалось отправить напоминание по задаче", task.ID, ":", err)
			continue
		}
		sent++
	}
	log.Println("[SUCCESS] Напоминаний о сроках отправлено:", sent)
}
