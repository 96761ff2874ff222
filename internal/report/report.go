package report

import (
	"bytes"
	"sort"

	"taskhub/internal/domain/errors"
	"taskhub/internal/domain/models"

	"github.com/wcharczuk/go-chart/v2"
)

type Summary struct {
	TotalTasks      int            `json:"totalTasks"`
	CompletedTasks  int            `json:"completedTasks"`
	InProgressTasks int            `json:"inProgressTasks"`
	PendingTasks    int            `json:"pendingTasks"`
	TasksByCategory map[string]int `json:"tasksByCategory"`
}

// Aggregate считает сводку по статусам и категориям. Pending выводится
// как остаток: статусы предполагаются в пределах трёх допустимых значений.
func Aggregate(tasks []models.Task) Summary {
	summary := Summary{
		TotalTasks:      len(tasks),
		TasksByCategory: make(map[string]int),
	}
	for _, task := range tasks {
		switch task.Status {
		case models.StatusCompleted:
			summary.CompletedTasks++
		case models.StatusInProgress:
			summary.InProgressTasks++
		}
		summary.TasksByCategory[task.Category]++
	}
	summary.PendingTasks = summary.TotalTasks - summary.CompletedTasks - summary.InProgressTasks
	return summary
}

// RenderBarChart рисует PNG 800x400 с количеством задач по категориям.
func RenderBarChart(byCategory map[string]int) ([]byte, error) {
	if len(byCategory) == 0 {
		return nil, errors.ErrNotFound
	}

	categories := make([]string, 0, len(byCategory))
	for category := range byCategory {
		categories = append(categories, category)
	}
	sort.Strings(categories)

	bars := make([]chart.Value, 0, len(categories))
	for _, category := range categories {
		bars = append(bars, chart.Value{
			Label: category,
			Value: float64(byCategory[category]),
		})
	}

	barChart := chart.BarChart{
		Title:    "Tasks by Category",
		Width:    800,
		Height:   400,
		BarWidth: 60,
		Bars:     bars,
	}

	var buf bytes.Buffer
	if err := barChart.Render(chart.PNG, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
