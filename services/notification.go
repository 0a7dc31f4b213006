package services

import (
	"sort"
	"time"

	"focusboard/model"
)

const (
	notificationCap = 10
	upcomingDays    = 4
)

// StartOfDay truncates t to midnight in its own location.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// BuildNotifications derives due-date alerts from the current task
// set. It is pure: identical (tasks, now) input yields an identical
// ordered result, and nothing is persisted.
//
// Tasks that are done or have no usable due date are skipped. The rest
// bucket by due day: before today is overdue, today is due today, and
// within the next four days is upcoming. Results sort by bucket rank
// then due day and cap at ten.
func BuildNotifications(tasks []*model.Task, now time.Time) []model.Notification {
	today := StartOfDay(now)
	tomorrow := today.AddDate(0, 0, 1)
	horizon := today.AddDate(0, 0, upcomingDays)

	var items []model.Notification
	for _, t := range tasks {
		if t == nil || t.Status == model.StatusDone || t.DueDate == nil || t.DueDate.IsZero() {
			continue
		}
		dueDay := StartOfDay(*t.DueDate)

		switch {
		case dueDay.Before(today):
			items = append(items, model.Notification{
				ID:           model.NotifyOverdue + "-" + t.TaskID,
				Type:         model.NotifyOverdue,
				Title:        "Overdue task",
				Message:      t.Title,
				Date:         dueDay,
				TargetTaskID: t.TaskID,
			})
		case dueDay.Before(tomorrow):
			items = append(items, model.Notification{
				ID:           model.NotifyToday + "-" + t.TaskID,
				Type:         model.NotifyToday,
				Title:        "Due today",
				Message:      t.Title,
				Date:         dueDay,
				TargetTaskID: t.TaskID,
			})
		case dueDay.Before(horizon):
			items = append(items, model.Notification{
				ID:           model.NotifyUpcoming + "-" + t.TaskID,
				Type:         model.NotifyUpcoming,
				Title:        "Upcoming deadline",
				Message:      t.Title,
				Date:         dueDay,
				TargetTaskID: t.TaskID,
			})
		}
	}

	sort.Slice(items, func(i, j int) bool {
		ri, rj := model.NotifyRank(items[i].Type), model.NotifyRank(items[j].Type)
		if ri != rj {
			return ri < rj
		}
		if !items[i].Date.Equal(items[j].Date) {
			return items[i].Date.Before(items[j].Date)
		}
		return items[i].TargetTaskID < items[j].TargetTaskID
	})

	if len(items) > notificationCap {
		items = items[:notificationCap]
	}
	return items
}
