package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/terraincognita07/medtrack/internal/client"
	"github.com/terraincognita07/medtrack/internal/models"
	"github.com/terraincognita07/medtrack/internal/services"
	"github.com/terraincognita07/medtrack/internal/tracker"
)

var ErrNotSignedIn = errors.New("not signed in, run `medtrack login` first")

// Context carries what every client command needs. It is bound by kong and
// passed to each command's Run method.
type Context struct {
	Context     context.Context
	Server      string
	SessionPath string
	Location    *time.Location
	Out         io.Writer
	Logger      *slog.Logger

	// Dial overrides the client transport. Tests point it at an in-memory listener.
	Dial   client.Option
	Prompt func(label string) (string, error)
	Now    func() time.Time
}

func (appCtx *Context) ctx() context.Context {
	if appCtx.Context == nil {
		return context.Background()
	}
	return appCtx.Context
}

func (appCtx *Context) now() time.Time {
	if appCtx.Now != nil {
		return appCtx.Now()
	}
	return time.Now()
}

func (appCtx *Context) location() *time.Location {
	if appCtx.Location == nil {
		return time.Local
	}
	return appCtx.Location
}

func (appCtx *Context) newClient() (*client.Client, error) {
	options := []client.Option{client.WithLogger(appCtx.Logger)}
	if appCtx.Dial != nil {
		options = append(options, appCtx.Dial)
	}
	return client.New(appCtx.Server, options...)
}

// connect restores the saved session. A token rejected by the server removes
// the session file.
func (appCtx *Context) connect() (*client.Client, error) {
	saved, err := loadSession(appCtx.SessionPath)
	if err != nil {
		return nil, err
	}
	if saved.Token == "" {
		return nil, ErrNotSignedIn
	}
	if saved.Server != "" && saved.Server != appCtx.Server {
		return nil, fmt.Errorf("saved session belongs to %s, run `medtrack login` for %s", saved.Server, appCtx.Server)
	}

	remote, err := appCtx.newClient()
	if err != nil {
		return nil, err
	}
	if _, err := remote.Restore(appCtx.ctx(), saved.Token); err != nil {
		if client.IsStatus(err, http.StatusUnauthorized) {
			_ = removeSession(appCtx.SessionPath)
			return nil, fmt.Errorf("session expired: %w", ErrNotSignedIn)
		}
		return nil, err
	}
	return remote, nil
}

func (appCtx *Context) newController(remote *client.Client, anchor time.Time) *tracker.Controller {
	return tracker.NewController(remote, remote, appCtx.Logger, anchor)
}

// parseDay accepts "today" or an ISO date in the configured location.
func (appCtx *Context) parseDay(raw string) (time.Time, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" || strings.EqualFold(trimmed, "today") {
		return services.DateAtLocation(appCtx.now(), appCtx.location()), nil
	}
	day, err := services.ParseISODate(trimmed, appCtx.location())
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, use YYYY-MM-DD or 'today'", raw)
	}
	return day, nil
}

// findMedication resolves a medication by id or by case-insensitive name.
func findMedication(medications []models.Medication, reference string) (models.Medication, error) {
	trimmed := strings.TrimSpace(reference)
	if id, err := uuid.Parse(trimmed); err == nil {
		for _, medication := range medications {
			if medication.ID == id {
				return medication, nil
			}
		}
	}

	var matches []models.Medication
	for _, medication := range medications {
		if strings.EqualFold(medication.Name, trimmed) {
			matches = append(matches, medication)
		}
	}
	switch len(matches) {
	case 0:
		return models.Medication{}, fmt.Errorf("medication %q not found", reference)
	case 1:
		return matches[0], nil
	default:
		return models.Medication{}, fmt.Errorf("%d medications are named %q, use the id instead", len(matches), reference)
	}
}
