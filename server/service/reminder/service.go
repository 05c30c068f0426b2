// Package reminder drives the reminder lifecycle: the multi-turn time
// negotiation, finalization into the store, and staged dispatch of
// notifications as the trigger approaches.
package reminder

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/chatme-bot/chatme/plugin/ai"
	"github.com/chatme-bot/chatme/plugin/timeframe"
	"github.com/chatme-bot/chatme/store"
)

// Service orchestrates reminder negotiations per user.
type Service struct {
	store      *store.Store
	controller *timeframe.Controller
	llm        ai.LLMService
	loc        *time.Location
	now        func() time.Time
}

// NewService creates a reminder service. llm may be nil; summaries then use
// a fixed fallback line.
func NewService(st *store.Store, llm ai.LLMService, loc *time.Location) *Service {
	return &Service{
		store:      st,
		controller: timeframe.NewController(timeframe.NewParser(loc)),
		llm:        llm,
		loc:        loc,
		now:        time.Now,
	}
}

// WithClock fixes the service clock. Also pins the underlying parser to the
// same instant so negotiation and finalization agree on "now".
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	s.controller = timeframe.NewController(timeframe.NewParser(s.loc).WithClock(now))
	return s
}

// HandleMessage runs one negotiation turn for the user: loads any in-flight
// record, resolves the message against it, and either persists the updated
// record or finalizes the reminder when the record completes.
func (s *Service) HandleMessage(ctx context.Context, userID, message string) (string, error) {
	prior, err := s.loadRecord(ctx, userID)
	if err != nil {
		return "", err
	}

	reply, record, err := s.controller.ResolveTurn(userID, message, prior)
	if err != nil {
		// Nothing extractable in this turn; reply without touching state so
		// a user with no negotiation in flight does not acquire one.
		return reply, nil
	}

	if !record.Complete {
		if err := s.saveRecord(ctx, record); err != nil {
			return "", err
		}
		return reply, nil
	}

	created, err := s.Finalize(ctx, record)
	if err != nil {
		return "", err
	}
	if err := s.store.DeleteTimeTrack(ctx, &store.DeleteTimeTrack{UserID: userID}); err != nil {
		slog.Warn("failed to clear negotiation record", "user_id", userID, "error", err)
	}
	return reply + "\n" + created.Summary, nil
}

// InFlight reports whether the user has a negotiation in progress. The
// intent router uses this to keep followup messages in the reminder flow.
func (s *Service) InFlight(ctx context.Context, userID string) (bool, error) {
	track, err := s.store.GetTimeTrack(ctx, userID)
	if err != nil {
		return false, err
	}
	return track != nil, nil
}

// Finalize turns a completed negotiation record into a stored reminder.
// Identical negotiations dedupe on a content hash; finalizing the same
// record twice returns the existing reminder.
func (s *Service) Finalize(ctx context.Context, record *timeframe.Record) (*store.Reminder, error) {
	trigger, ok := record.Instant(s.loc)
	if !ok {
		return nil, errors.New("record does not resolve to an instant")
	}

	hash := reminderHash(record.UserID, trigger.Unix(), record.Messages)
	existing, err := s.store.ListReminders(ctx, &store.FindReminder{Hash: &hash})
	if err != nil {
		return nil, errors.Wrap(err, "failed to check for duplicate reminder")
	}
	if len(existing) > 0 {
		return existing[0], nil
	}

	created, err := s.store.CreateReminder(ctx, &store.Reminder{
		ID:        uuid.NewString(),
		UserID:    record.UserID,
		Hash:      hash,
		TriggerTs: trigger.Unix(),
		Readable:  timeframe.FormatInstant(trigger),
		Summary:   ai.SummarizeReminder(ctx, s.llm, record.Messages),
		Messages:  record.Messages,
		Stage:     0,
		CreatedTs: s.now().Unix(),
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create reminder")
	}

	slog.Info("reminder finalized",
		"user_id", record.UserID,
		"reminder_id", created.ID,
		"trigger", created.Readable,
	)
	return created, nil
}

// ListForUser returns the user's reminders, soonest first.
func (s *Service) ListForUser(ctx context.Context, userID string) ([]*store.Reminder, error) {
	return s.store.ListReminders(ctx, &store.FindReminder{UserID: &userID})
}

func (s *Service) loadRecord(ctx context.Context, userID string) (*timeframe.Record, error) {
	track, err := s.store.GetTimeTrack(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load negotiation record")
	}
	if track == nil {
		return nil, nil
	}
	record := &timeframe.Record{}
	if err := json.Unmarshal([]byte(track.Payload), record); err != nil {
		// A corrupt record is unrecoverable; start over.
		slog.Warn("discarding unreadable negotiation record", "user_id", userID, "error", err)
		return nil, nil
	}
	return record, nil
}

func (s *Service) saveRecord(ctx context.Context, record *timeframe.Record) error {
	payload, err := json.Marshal(record)
	if err != nil {
		return errors.Wrap(err, "failed to marshal negotiation record")
	}
	if _, err := s.store.UpsertTimeTrack(ctx, &store.TimeTrack{
		UserID:    record.UserID,
		Payload:   string(payload),
		UpdatedTs: s.now().Unix(),
	}); err != nil {
		return errors.Wrap(err, "failed to save negotiation record")
	}
	return nil
}

// reminderHash derives a stable dedupe key from who asked, when it fires
// and what was said. Prefixed with the user ID so keys stay scoped per user.
func reminderHash(userID string, triggerTs int64, messages []string) string {
	sum := sha256.Sum256([]byte(fmt.Sprintf("rim%s%s%s",
		userID, strconv.FormatInt(triggerTs, 10), strings.Join(messages, "|"))))
	return userID + hex.EncodeToString(sum[:])[:12]
}
