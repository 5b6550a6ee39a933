package game

import (
	"fmt"
	"time"

	"github.com/devbyte-game/devbyte/internal/domain"
	"github.com/devbyte-game/devbyte/internal/infra/catalog"
	"github.com/devbyte-game/devbyte/internal/infra/observability"
)

// ─── Task Tracker ───────────────────────────────────────────────────────────

// dailyResetInterval is how long a completed daily task stays locked when
// daily re-completion is enabled.
const dailyResetInterval = 24 * time.Hour

// TaskView is a task plus the player's completion record.
type TaskView struct {
	domain.Task
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	Completable bool       `json:"completable"`
}

// ListTasks returns the active faction's tasks (its own plus common ones)
// with completion state. The listing enforces no eligibility beyond the
// faction filter; callers may add their own gating.
func (s *Session) ListTasks() []TaskView {
	s.mu.Lock()
	defer s.mu.Unlock()

	tasks := catalog.TasksFor(s.state.Faction)
	out := make([]TaskView, 0, len(tasks))
	now := s.clk.Now()
	for _, task := range tasks {
		view := TaskView{Task: task, Completable: true}
		if done, ok := s.state.TaskLedger[task.ID]; ok {
			completedAt := done
			view.CompletedAt = &completedAt
			view.Completable = s.recompletableLocked(task, done, now)
		}
		out = append(out, view)
	}
	return out
}

// CompleteTask grants a task's flat reward and records the completion.
// Daily tasks may be completed again after 24 hours when the daily-reset
// policy is enabled; all other tasks complete once per ledger lifetime.
func (s *Session) CompleteTask(taskID string) (float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	task := catalog.LookupTask(taskID)
	if task == nil {
		return 0, domain.ErrUnknownTask
	}
	if task.Faction != domain.FactionNone && task.Faction != s.state.Faction {
		return 0, domain.ErrTaskNotForYou
	}

	now := s.clk.Now()
	if done, ok := s.state.TaskLedger[task.ID]; ok {
		if !s.recompletableLocked(*task, done, now) {
			return 0, domain.ErrAlreadyCompleted
		}
	}

	s.state.Balance += task.Reward
	s.state.TaskLedger[task.ID] = now
	s.persistLocked()
	observability.TasksCompleted.WithLabelValues(string(task.Bucket)).Inc()
	s.notifyLocked("Task Complete", fmt.Sprintf("%s: $%.0f added to your balance.", task.Title, task.Reward))
	return task.Reward, nil
}

// recompletableLocked reports whether a previously completed task can be
// done again at the given instant.
func (s *Session) recompletableLocked(task domain.Task, done, now time.Time) bool {
	if task.Bucket != domain.TaskDaily || !s.dailyReset {
		return false
	}
	return now.Sub(done) >= dailyResetInterval
}
