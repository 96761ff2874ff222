package notify

import (
	"context"
	"testing"
	"time"

	"taskhub/internal/domain/errors"
	"taskhub/internal/domain/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockMailer struct {
	mock.Mock
}

func (m *MockMailer) Send(to, subject, body string) error {
	args := m.Called(to, subject, body)
	return args.Error(0)
}

type MockTaskSource struct {
	mock.Mock
}

func (m *MockTaskSource) GetTasksDueBetween(ctx context.Context, from, to time.Time) ([]models.Task, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Task), args.Error(1)
}

func TestSweeperRun(t *testing.T) {
	deadline := time.Now().Add(12 * time.Hour)
	tests := []struct {
		name      string
		tasks     []models.Task
		mockSetup func(*MockMailer)
		want      struct {
			sendCalls int
		}
	}{
		{
			name: "sends one reminder per assigned task",
			tasks: []models.Task{
				{ID: "t1", Title: "A", Deadline: deadline, Assignee: "a@example.com"},
				{ID: "t2", Title: "B", Deadline: deadline, Assignee: "b@example.com"},
			},
			mockSetup: func(m *MockMailer) {
				m.On("Send", "a@example.com", mock.Anything, mock.Anything).Return(nil)
				m.On("Send", "b@example.com", mock.Anything, mock.Anything).Return(nil)
			},
			want: struct{ sendCalls int }{sendCalls: 2},
		},
		{
			name: "skips tasks without assignee",
			tasks: []models.Task{
				{ID: "t1", Title: "A", Deadline: deadline},
				{ID: "t2", Title: "B", Deadline: deadline, Assignee: "b@example.com"},
			},
			mockSetup: func(m *MockMailer) {
				m.On("Send", "b@example.com", mock.Anything, mock.Anything).Return(nil)
			},
			want: struct{ sendCalls int }{sendCalls: 1},
		},
		{
			name: "mail failure does not abort the sweep",
			tasks: []models.Task{
				{ID: "t1", Title: "A", Deadline: deadline, Assignee: "a@example.com"},
				{ID: "t2", Title: "B", Deadline: deadline, Assignee: "b@example.com"},
			},
			mockSetup: func(m *MockMailer) {
				m.On("Send", "a@example.com", mock.Anything, mock.Anything).Return(errors.ErrInternalServer)
				m.On("Send", "b@example.com", mock.Anything, mock.Anything).Return(nil)
			},
			want: struct{ sendCalls int }{sendCalls: 2},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mailer := new(MockMailer)
			source := new(MockTaskSource)
			source.On("GetTasksDueBetween", mock.Anything, mock.Anything, mock.Anything).Return(tt.tasks, nil)
			tt.mockSetup(mailer)

			sweeper := NewSweeper(source, mailer)
			sweeper.Run(context.Background())

			mailer.AssertNumberOfCalls(t, "Send", tt.want.sendCalls)
		})
	}
}

func TestSweeperRunSourceError(t *testing.T) {
	mailer := new(MockMailer)
	source := new(MockTaskSource)
	source.On("GetTasksDueBetween", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, errors.ErrDatabaseConnection)

	sweeper := NewSweeper(source, mailer)
	sweeper.Run(context.Background())

	mailer.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything)
}

func TestSweeperWindowBounds(t *testing.T) {
	mailer := new(MockMailer)
	source := new(MockTaskSource)
	var gotFrom, gotTo time.Time
	source.On("GetTasksDueBetween", mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			gotFrom = args.Get(1).(time.Time)
			gotTo = args.Get(2).(time.Time)
		}).
		Return([]models.Task{}, nil)

	NewSweeper(source, mailer).Run(context.Background())

	assert.WithinDuration(t, gotFrom.Add(24*time.Hour), gotTo, time.Second)
}
