package cli

import (
	"context"
	"errors"

	"github.com/charmbracelet/huh"
	"github.com/terraincognita07/medtrack/internal/tracker"
)

type huhConfirmer struct{}

// Confirm shows a yes/no prompt. Aborting with ctrl+c counts as a decline.
func (huhConfirmer) Confirm(ctx context.Context, prompt string) (bool, error) {
	confirmed := false
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(prompt).
				Affirmative("Delete").
				Negative("Cancel").
				Value(&confirmed),
		),
	)
	if err := form.RunWithContext(ctx); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return false, nil
		}
		return false, err
	}
	return confirmed, nil
}

var alwaysConfirm tracker.Confirmer = tracker.ConfirmFunc(func(context.Context, string) (bool, error) {
	return true, nil
})
