package notify

import (
	"fmt"
	"log"

	"gopkg.in/gomail.v2"
)

type Mailer interface {
	Send(to, subject, body string) error
}

type SMTPMailer struct {
	dialer *gomail.Dialer
	from   string
}

func NewSMTPMailer(host string, port int, username, password string) *SMTPMailer {
	return &SMTPMailer{
		dialer: gomail.NewDialer(host, port, username, password),
		from:   username,
	}
}

func (m *SMTPMailer) Send(to, subject, body string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)
	return m.dialer.DialAndSend(msg)
}

// TaskUpdated отправляет письмо исполнителю в отдельной горутине:
// ошибка доставки логируется и не влияет на вызвавшую операцию.
func TaskUpdated(mailer Mailer, to, title, status string) {
	if mailer == nil || to == "" {
		return
	}
	go func() {
		subject := fmt.Sprintf("Задача «%s» обновлена", title)
		body := fmt.Sprintf("Задача «%s» была обновлена. Текущий статус: %s.", title, status)
		if err := mailer.Send(to, subject, body); err != nil {
			log.Println("[ERROR] Не удалось отправить уведомление об обновлении задачи:", err)
			return
		}
		log.Println("[SUCCESS] Уведомление об обновлении задачи отправлено:", to)
	}()
}
