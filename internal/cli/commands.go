package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/terraincognita07/medtrack/internal/services"
	"github.com/terraincognita07/medtrack/internal/tracker"
)

type RegisterCmd struct {
	Email    string `arg:"" help:"Account email."`
	Password string `help:"Account password (prompted when omitted)." env:"MEDTRACK_PASSWORD"`
}

func (cmd *RegisterCmd) Run(appCtx *Context) error {
	password := cmd.Password
	if password == "" {
		first, err := appCtx.promptPassword("Password")
		if err != nil {
			return err
		}
		second, err := appCtx.promptPassword("Repeat password")
		if err != nil {
			return err
		}
		if first != second {
			return errors.New("passwords do not match")
		}
		password = first
	}

	remote, err := appCtx.newClient()
	if err != nil {
		return err
	}
	user, err := remote.Register(appCtx.ctx(), cmd.Email, password)
	if err != nil {
		return fmt.Errorf("register: %w", err)
	}
	if err := saveSession(appCtx.SessionPath, savedSession{Server: appCtx.Server, Email: user.Email, Token: remote.Token()}); err != nil {
		return err
	}
	fmt.Fprintf(appCtx.Out, "Registered and signed in as %s\n", user.Email)
	return nil
}

type LoginCmd struct {
	Email    string `arg:"" help:"Account email."`
	Password string `help:"Account password (prompted when omitted)." env:"MEDTRACK_PASSWORD"`
}

func (cmd *LoginCmd) Run(appCtx *Context) error {
	password := cmd.Password
	if password == "" {
		prompted, err := appCtx.promptPassword("Password")
		if err != nil {
			return err
		}
		password = prompted
	}

	remote, err := appCtx.newClient()
	if err != nil {
		return err
	}
	user, err := remote.Login(appCtx.ctx(), cmd.Email, password)
	if err != nil {
		return fmt.Errorf("login: %w", err)
	}
	if err := saveSession(appCtx.SessionPath, savedSession{Server: appCtx.Server, Email: user.Email, Token: remote.Token()}); err != nil {
		return err
	}
	fmt.Fprintf(appCtx.Out, "Signed in as %s\n", user.Email)
	return nil
}

type LogoutCmd struct{}

// Run removes the local session even when the server cannot be reached.
func (cmd *LogoutCmd) Run(appCtx *Context) error {
	saved, err := loadSession(appCtx.SessionPath)
	if err != nil {
		return err
	}
	if saved.Token == "" {
		fmt.Fprintln(appCtx.Out, "Not signed in")
		return nil
	}

	if remote, err := appCtx.newClient(); err == nil {
		if _, err := remote.Restore(appCtx.ctx(), saved.Token); err == nil {
			_ = remote.SignOut(appCtx.ctx())
		}
	}
	if err := removeSession(appCtx.SessionPath); err != nil {
		return err
	}
	fmt.Fprintln(appCtx.Out, "Signed out")
	return nil
}

type WeekCmd struct {
	Date   string `arg:"" optional:"" default:"today" help:"Any day of the week to show (YYYY-MM-DD or 'today')."`
	Offset int    `help:"Weeks to move from that day, negative for earlier weeks."`
}

func (cmd *WeekCmd) Run(appCtx *Context) error {
	day, err := appCtx.parseDay(cmd.Date)
	if err != nil {
		return err
	}
	remote, err := appCtx.connect()
	if err != nil {
		return err
	}

	controller := appCtx.newController(remote, day)
	if err := controller.Load(appCtx.ctx()); err != nil {
		return err
	}
	for step := 0; step < absInt(cmd.Offset); step++ {
		if err := controller.NavigateWeek(appCtx.ctx(), signInt(cmd.Offset)); err != nil {
			return err
		}
	}

	fmt.Fprintln(appCtx.Out, RenderWeek(controller.Snapshot()))
	return nil
}

type ToggleCmd struct {
	Medication string `arg:"" help:"Medication name or id."`
	Date       string `arg:"" optional:"" default:"today" help:"Day to toggle (YYYY-MM-DD or 'today')."`
}

func (cmd *ToggleCmd) Run(appCtx *Context) error {
	day, err := appCtx.parseDay(cmd.Date)
	if err != nil {
		return err
	}
	remote, err := appCtx.connect()
	if err != nil {
		return err
	}

	controller := appCtx.newController(remote, day)
	if err := controller.Load(appCtx.ctx()); err != nil {
		return err
	}
	medication, err := findMedication(controller.Snapshot().Medications, cmd.Medication)
	if err != nil {
		return err
	}
	if err := controller.Toggle(appCtx.ctx(), medication.ID, day); err != nil {
		return err
	}

	state := "not taken"
	if controller.IsChecked(medication.ID, day) {
		state = "taken"
	}
	fmt.Fprintf(appCtx.Out, "%s on %s: %s\n\n", medication.Name, services.ISODate(day), state)
	fmt.Fprintln(appCtx.Out, RenderWeek(controller.Snapshot()))
	return nil
}

type AddCmd struct {
	Name []string `arg:"" help:"Medication name."`
}

func (cmd *AddCmd) Run(appCtx *Context) error {
	remote, err := appCtx.connect()
	if err != nil {
		return err
	}

	controller := appCtx.newController(remote, appCtx.now())
	if err := controller.AddMedication(appCtx.ctx(), strings.Join(cmd.Name, " ")); err != nil {
		return err
	}
	fmt.Fprintln(appCtx.Out, RenderWeek(controller.Snapshot()))
	return nil
}

type RenameCmd struct {
	Medication string `arg:"" help:"Medication name or id."`
	Name       string `arg:"" help:"New name."`
}

func (cmd *RenameCmd) Run(appCtx *Context) error {
	remote, err := appCtx.connect()
	if err != nil {
		return err
	}

	controller := appCtx.newController(remote, appCtx.now())
	if err := controller.Load(appCtx.ctx()); err != nil {
		return err
	}
	medication, err := findMedication(controller.Snapshot().Medications, cmd.Medication)
	if err != nil {
		return err
	}
	if err := controller.RenameMedication(appCtx.ctx(), medication.ID, cmd.Name); err != nil {
		return err
	}
	fmt.Fprintln(appCtx.Out, RenderWeek(controller.Snapshot()))
	return nil
}

type RemoveCmd struct {
	Medication string `arg:"" help:"Medication name or id."`
	Yes        bool   `short:"y" help:"Delete without asking for confirmation."`
}

func (cmd *RemoveCmd) Run(appCtx *Context) error {
	remote, err := appCtx.connect()
	if err != nil {
		return err
	}

	controller := appCtx.newController(remote, appCtx.now())
	if err := controller.Load(appCtx.ctx()); err != nil {
		return err
	}
	medication, err := findMedication(controller.Snapshot().Medications, cmd.Medication)
	if err != nil {
		return err
	}

	var confirmer tracker.Confirmer = huhConfirmer{}
	if cmd.Yes {
		confirmer = alwaysConfirm
	}
	if err := controller.RemoveMedication(appCtx.ctx(), medication.ID, confirmer); err != nil {
		return err
	}

	if _, err := findMedication(controller.Snapshot().Medications, medication.ID.String()); err == nil {
		fmt.Fprintf(appCtx.Out, "Kept %s\n", medication.Name)
		return nil
	}
	fmt.Fprintf(appCtx.Out, "Deleted %s and its history\n", medication.Name)
	return nil
}

type ResetPasswordCmd struct {
	Email  string `arg:"" help:"Email of the account to reset."`
	DB     string `help:"SQLite database path." env:"DB_PATH" default:"data/medtrack.db" type:"path"`
	Prompt bool   `help:"Prompt for the new password instead of generating a temporary one."`
}

func (cmd *ResetPasswordCmd) Run(appCtx *Context) error {
	password := ""
	if cmd.Prompt {
		prompted, err := appCtx.promptPassword("New password")
		if err != nil {
			return err
		}
		password = prompted
	}
	return RunResetPasswordCommand(cmd.DB, cmd.Email, password, appCtx.Out)
}

func absInt(value int) int {
	if value < 0 {
		return -value
	}
	return value
}

func signInt(value int) int {
	if value < 0 {
		return -1
	}
	return 1
}
