package tracker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/terraincognita07/medtrack/internal/models"
	"github.com/terraincognita07/medtrack/internal/services"
)

var (
	ErrBusy        = errors.New("tracker is loading")
	ErrNoUser      = errors.New("no signed-in user")
	ErrInvalidName = errors.New("medication name must not be blank")
)

const deleteConfirmPrompt = "Are you sure you want to delete this medication?"

type logKey struct {
	medicationID uuid.UUID
	date         string
}

// Snapshot is a copy of the controller state for rendering.
type Snapshot struct {
	Medications []models.Medication
	Logs        []models.MedicationLog
	Window      services.WeekWindow
	Loading     bool
}

func (snapshot Snapshot) IsChecked(medicationID uuid.UUID, date time.Time) bool {
	dateISO := services.ISODate(date)
	for _, entry := range snapshot.Logs {
		if entry.MedicationID == medicationID && entry.Date == dateISO {
			return entry.Taken
		}
	}
	return false
}

// Controller holds the medications and logs of one displayed week. Every
// successful mutation is followed by a full reload of that week.
type Controller struct {
	store   Store
	session Session
	logger  *slog.Logger

	mu          sync.Mutex
	medications []models.Medication
	logs        map[logKey]models.MedicationLog
	window      services.WeekWindow
	pending     int
	generation  uint64
}

func NewController(store Store, session Session, logger *slog.Logger, anchor time.Time) *Controller {
	if logger == nil {
		logger = slog.Default()
	}
	return &Controller{
		store:   store,
		session: session,
		logger:  logger,
		logs:    make(map[logKey]models.MedicationLog),
		window:  services.NewWeekWindow(anchor),
	}
}

func (controller *Controller) Snapshot() Snapshot {
	controller.mu.Lock()
	defer controller.mu.Unlock()

	medications := make([]models.Medication, len(controller.medications))
	copy(medications, controller.medications)

	logs := make([]models.MedicationLog, 0, len(controller.logs))
	for _, entry := range controller.logs {
		logs = append(logs, entry)
	}
	sort.Slice(logs, func(i, j int) bool {
		if logs[i].Date == logs[j].Date {
			return logs[i].MedicationID.String() < logs[j].MedicationID.String()
		}
		return logs[i].Date < logs[j].Date
	})

	return Snapshot{
		Medications: medications,
		Logs:        logs,
		Window:      controller.window,
		Loading:     controller.pending > 0,
	}
}

func (controller *Controller) Loading() bool {
	controller.mu.Lock()
	defer controller.mu.Unlock()
	return controller.pending > 0
}

func (controller *Controller) Window() services.WeekWindow {
	controller.mu.Lock()
	defer controller.mu.Unlock()
	return controller.window
}

// IsChecked reports the taken flag of the pair's log. A missing log means not taken.
func (controller *Controller) IsChecked(medicationID uuid.UUID, date time.Time) bool {
	controller.mu.Lock()
	defer controller.mu.Unlock()

	entry, ok := controller.logs[logKey{medicationID: medicationID, date: services.ISODate(date)}]
	return ok && entry.Taken
}

// Load fetches the current week without changing it.
func (controller *Controller) Load(ctx context.Context) error {
	return controller.reload(ctx)
}

// SetWeek moves the window to the week containing anchor and reloads it.
// Navigation is allowed while loading; results of the superseded reload are dropped.
func (controller *Controller) SetWeek(ctx context.Context, anchor time.Time) error {
	controller.mu.Lock()
	controller.window = services.NewWeekWindow(anchor)
	controller.mu.Unlock()

	return controller.reload(ctx)
}

func (controller *Controller) NavigateWeek(ctx context.Context, direction int) error {
	controller.mu.Lock()
	next, err := controller.window.Navigate(direction)
	if err != nil {
		controller.mu.Unlock()
		return err
	}
	controller.window = next
	controller.mu.Unlock()

	return controller.reload(ctx)
}

func (controller *Controller) Toggle(ctx context.Context, medicationID uuid.UUID, date time.Time) error {
	if err := controller.requireUser(ctx); err != nil {
		return err
	}
	if err := controller.begin(); err != nil {
		return err
	}

	dateISO := services.ISODate(date)
	controller.mu.Lock()
	var existing *models.MedicationLog
	if entry, ok := controller.logs[logKey{medicationID: medicationID, date: dateISO}]; ok {
		existing = &entry
	}
	controller.mu.Unlock()

	return controller.finish(ctx, "toggle", controller.store.UpsertToggle(ctx, medicationID, dateISO, existing))
}

func (controller *Controller) AddMedication(ctx context.Context, rawName string) error {
	name, err := validName(rawName)
	if err != nil {
		return err
	}
	if err := controller.requireUser(ctx); err != nil {
		return err
	}
	if err := controller.begin(); err != nil {
		return err
	}

	return controller.finish(ctx, "add medication", controller.store.CreateMedication(ctx, name))
}

func (controller *Controller) RenameMedication(ctx context.Context, medicationID uuid.UUID, rawName string) error {
	name, err := validName(rawName)
	if err != nil {
		return err
	}
	if err := controller.begin(); err != nil {
		return err
	}

	return controller.finish(ctx, "rename medication", controller.store.RenameMedication(ctx, medicationID, name))
}

// RemoveMedication deletes the medication only after confirm agrees. A
// declined confirmation returns nil without touching the store.
func (controller *Controller) RemoveMedication(ctx context.Context, medicationID uuid.UUID, confirm Confirmer) error {
	if controller.Loading() {
		return ErrBusy
	}
	if confirm == nil {
		return nil
	}
	confirmed, err := confirm.Confirm(ctx, deleteConfirmPrompt)
	if err != nil {
		return fmt.Errorf("confirm delete: %w", err)
	}
	if !confirmed {
		return nil
	}
	if err := controller.begin(); err != nil {
		return err
	}

	return controller.finish(ctx, "remove medication", controller.store.DeleteMedication(ctx, medicationID))
}

func validName(raw string) (string, error) {
	name, err := services.NormalizeMedicationName(raw)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidName, err)
	}
	return name, nil
}

func (controller *Controller) requireUser(ctx context.Context) error {
	if controller.session == nil {
		return ErrNoUser
	}
	user, err := controller.session.CurrentUser(ctx)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNoUser, err)
	}
	if user == nil || user.ID == uuid.Nil {
		return ErrNoUser
	}
	return nil
}

// begin moves the controller into loading for the duration of a mutation.
func (controller *Controller) begin() error {
	controller.mu.Lock()
	defer controller.mu.Unlock()

	if controller.pending > 0 {
		return ErrBusy
	}
	controller.pending++
	return nil
}

// finish ends a mutation started with begin. A failed mutation keeps the
// current state and skips the reload.
func (controller *Controller) finish(ctx context.Context, action string, mutationErr error) error {
	defer func() {
		controller.mu.Lock()
		controller.pending--
		controller.mu.Unlock()
	}()

	if mutationErr != nil {
		controller.logger.Error("tracker mutation failed", "action", action, "error", mutationErr)
		return mutationErr
	}
	return controller.reload(ctx)
}

func (controller *Controller) reload(ctx context.Context) error {
	controller.mu.Lock()
	controller.generation++
	generation := controller.generation
	window := controller.window
	controller.pending++
	controller.mu.Unlock()

	medications, medicationsErr := controller.store.ListMedications(ctx)
	logs, logsErr := controller.store.ListLogs(ctx, window.StartISO(), window.EndISO())

	controller.mu.Lock()
	defer controller.mu.Unlock()
	controller.pending--

	if generation != controller.generation {
		controller.logger.Debug("discarding stale week reload", "week_start", window.StartISO())
		return nil
	}

	if medicationsErr == nil {
		controller.medications = medications
	}
	if logsErr == nil {
		indexed := make(map[logKey]models.MedicationLog, len(logs))
		for _, entry := range logs {
			indexed[logKey{medicationID: entry.MedicationID, date: entry.Date}] = entry
		}
		controller.logs = indexed
	}

	if err := errors.Join(medicationsErr, logsErr); err != nil {
		controller.logger.Error("tracker reload failed", "week_start", window.StartISO(), "error", err)
		return err
	}
	return nil
}
