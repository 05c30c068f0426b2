package v1

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

// ReminderView is the API shape of a stored reminder.
type ReminderView struct {
	ID        string   `json:"id"`
	TriggerTs int64    `json:"trigger_ts"`
	Readable  string   `json:"readable"`
	Summary   string   `json:"summary"`
	Messages  []string `json:"messages"`
	Stage     int      `json:"stage"`
	CreatedTs int64    `json:"created_ts"`
}

// ListReminders returns the user's reminders, soonest first.
func (s *APIV1Service) ListReminders(c echo.Context) error {
	userID := strings.TrimSpace(c.QueryParam("user_id"))
	if userID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "user_id is required")
	}

	reminders, err := s.Reminder.ListForUser(c.Request().Context(), userID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to list reminders").SetInternal(err)
	}

	views := make([]*ReminderView, 0, len(reminders))
	for _, rem := range reminders {
		views = append(views, &ReminderView{
			ID:        rem.ID,
			TriggerTs: rem.TriggerTs,
			Readable:  rem.Readable,
			Summary:   rem.Summary,
			Messages:  rem.Messages,
			Stage:     rem.Stage,
			CreatedTs: rem.CreatedTs,
		})
	}
	return c.JSON(http.StatusOK, views)
}
