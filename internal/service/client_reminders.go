package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/MKhiriev/go-waste-sync/internal/logger"
	"github.com/MKhiriev/go-waste-sync/internal/store"
	"github.com/MKhiriev/go-waste-sync/models"
)

const (
	reminderTrackerKey = "notifications:tracker"

	// ReminderFillLevel is the level at which a bin reminder fires.
	ReminderFillLevel = 85
	// ReminderPickupWindow is how far ahead scheduled pickups are announced.
	ReminderPickupWindow = 24 * time.Hour
)

type reminderService struct {
	kv       store.KeyValueStore
	notifier Notifier

	mu      sync.Mutex
	loaded  bool
	tracker map[models.ReminderKind]map[string]struct{}

	clock  Clock
	logger *logger.Logger
}

func NewReminderService(kv store.KeyValueStore, notifier Notifier, clock Clock, logger *logger.Logger) ReminderService {
	if clock == nil {
		clock = time.Now
	}
	return &reminderService{
		kv:       kv,
		notifier: notifier,
		clock:    clock,
		logger:   logger.WithComponent("reminders"),
	}
}

// Check notifies every due reminder that was not notified before and
// forgets ids that are no longer due. It returns the reminders sent.
func (s *reminderService) Check(ctx context.Context, cache models.SyncCache) ([]models.Reminder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.load(ctx); err != nil {
		return nil, err
	}

	due := dueReminders(cache, s.clock())
	mutated := false
	for _, kind := range []models.ReminderKind{models.ReminderBinFull, models.ReminderPickupScheduled, models.ReminderPaymentPending} {
		active := make(map[string]struct{})
		for _, r := range due {
			if r.Kind == kind {
				active[r.EntityID] = struct{}{}
			}
		}
		for id := range s.tracker[kind] {
			if _, ok := active[id]; !ok {
				delete(s.tracker[kind], id)
				mutated = true
			}
		}
	}

	var sent []models.Reminder
	for _, r := range due {
		if _, done := s.tracker[r.Kind][r.EntityID]; done {
			continue
		}
		if err := s.notifier.Notify(ctx, r); err != nil {
			s.logger.Err(err).Str("func", "*reminderService.Check").Str("kind", string(r.Kind)).
				Str("entity_id", r.EntityID).Msg("notification failed")
			continue
		}
		s.tracker[r.Kind][r.EntityID] = struct{}{}
		sent = append(sent, r)
		mutated = true
	}

	if mutated {
		if err := store.PutJSON(ctx, s.kv, reminderTrackerKey, s.snapshot()); err != nil {
			return sent, fmt.Errorf("persisting reminder tracker: %w", err)
		}
	}
	return sent, nil
}

func (s *reminderService) load(ctx context.Context) error {
	if s.loaded {
		return nil
	}

	var stored models.ReminderTracker
	if _, err := store.GetJSON(ctx, s.kv, reminderTrackerKey, &stored); err != nil {
		s.logger.Err(err).Str("func", "*reminderService.load").Msg("starting with an empty reminder tracker")
		stored = models.ReminderTracker{}
	}

	s.tracker = map[models.ReminderKind]map[string]struct{}{
		models.ReminderBinFull:         toSet(stored.Bins),
		models.ReminderPickupScheduled: toSet(stored.Pickups),
		models.ReminderPaymentPending:  toSet(stored.Payments),
	}
	s.loaded = true
	return nil
}

func (s *reminderService) snapshot() models.ReminderTracker {
	return models.ReminderTracker{
		Bins:     fromSet(s.tracker[models.ReminderBinFull]),
		Pickups:  fromSet(s.tracker[models.ReminderPickupScheduled]),
		Payments: fromSet(s.tracker[models.ReminderPaymentPending]),
	}
}

func dueReminders(cache models.SyncCache, now time.Time) []models.Reminder {
	var due []models.Reminder

	for _, bin := range cache[models.EntityBin] {
		level, _ := bin.Number("currentLevel")
		if level < ReminderFillLevel {
			continue
		}
		id := firstScalar(bin, "id", "binId")
		if id == "" {
			continue
		}
		binType, _ := bin.Scalar("type")
		if binType == "" {
			binType = "waste"
		}
		binID, _ := bin.Scalar("binId")
		due = append(due, models.Reminder{
			Kind:     models.ReminderBinFull,
			EntityID: id,
			Title:    "Bin nearing capacity",
			Body:     fmt.Sprintf("%s bin %s is %.0f%% full. Schedule a collection.", strings.ToUpper(binType), binID, level),
		})
	}

	for _, pickup := range cache[models.EntityPickup] {
		if status, _ := pickup.Scalar("status"); status != string(models.PickupScheduled) {
			continue
		}
		at, ok := pickup.Time("scheduledDate")
		if !ok {
			continue
		}
		until := at.Sub(now)
		if until <= 0 || until > ReminderPickupWindow {
			continue
		}
		id := firstScalar(pickup, "id", "clientReference")
		if id == "" {
			continue
		}
		wasteType, _ := pickup.Scalar("wasteType")
		due = append(due, models.Reminder{
			Kind:     models.ReminderPickupScheduled,
			EntityID: id,
			Title:    "Pickup reminder",
			Body:     fmt.Sprintf("Pickup for %s scheduled %s.", wasteType, at.Local().Format("Jan 2 15:04")),
		})
	}

	for _, tx := range cache[models.EntityTransaction] {
		if status, _ := tx.Scalar("status"); status != string(models.TransactionPending) {
			continue
		}
		id := firstScalar(tx, "id", "clientReference")
		if id == "" {
			continue
		}
		txType, _ := tx.Scalar("type")
		amount, _ := tx.Number("amount")
		due = append(due, models.Reminder{
			Kind:     models.ReminderPaymentPending,
			EntityID: id,
			Title:    "Payment due",
			Body:     fmt.Sprintf("You have a %s of $%.2f awaiting payment.", txType, amount),
		})
	}

	return due
}

func firstScalar(r models.Record, names ...string) string {
	for _, name := range names {
		if v, ok := r.Scalar(name); ok && v != "" {
			return v
		}
	}
	return ""
}

func toSet(ids []string) map[string]struct{} {
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}

func fromSet(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for id := range set {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// LogNotifier writes reminders to the client log.
type LogNotifier struct {
	logger *logger.Logger
}

func NewLogNotifier(logger *logger.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) Notify(_ context.Context, r models.Reminder) error {
	n.logger.Info().Str("kind", string(r.Kind)).Str("entity_id", r.EntityID).
		Str("title", r.Title).Msg(r.Body)
	return nil
}
