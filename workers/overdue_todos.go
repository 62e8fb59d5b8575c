package workers

import (
	"context"
	"log"
	"time"

	"lifequest-system/services"
)

// OverdueTodoSweeper periodically fails tasks whose deadline has
// passed so the task_failed trigger fires even when the user never
// comes back to the app.
type OverdueTodoSweeper struct {
	Todos *services.TodoService
}

func NewOverdueTodoSweeper(todos *services.TodoService) *OverdueTodoSweeper {
	return &OverdueTodoSweeper{Todos: todos}
}

// PollOverdueTodos runs the sweep on a fixed interval until the
// context is cancelled. One immediate sweep on startup catches
// deadlines that lapsed while the service was down.
func PollOverdueTodos(ctx context.Context, sweeper *OverdueTodoSweeper, interval time.Duration) {
	sweep := func() {
		failed, err := sweeper.Todos.FailOverdueTodos()
		if err != nil {
			log.Printf("[OverdueSweep] sweep failed: %v", err)
			return
		}
		if failed > 0 {
			log.Printf("⏰ Marked %d overdue tasks as failed", failed)
		}
	}

	sweep()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			log.Println("[OverdueSweep] stopping")
			return
		case <-ticker.C:
			sweep()
		}
	}
}
