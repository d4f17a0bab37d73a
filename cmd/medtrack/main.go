package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"
	"github.com/terraincognita07/medtrack/internal/cli"
	"github.com/terraincognita07/medtrack/internal/logging"
)

var version = "v0.1.0"

var CLI struct {
	Version  kong.VersionFlag
	Server   string `help:"Medtrack API base URL." env:"MEDTRACK_SERVER" default:"http://localhost:8080"`
	Session  string `help:"Session file path." env:"MEDTRACK_SESSION" type:"path" default:"~/.config/medtrack/session.json"`
	LogLevel string `help:"Log level (debug, info, warn, error)." env:"LOG_LEVEL" default:"info"`

	Serve         ServeCmd             `cmd:"" help:"Run the API server."`
	ResetPassword cli.ResetPasswordCmd `cmd:"" help:"Reset an account password directly in the database."`
	Register      cli.RegisterCmd      `cmd:"" help:"Create an account and sign in."`
	Login         cli.LoginCmd         `cmd:"" help:"Sign in."`
	Logout        cli.LogoutCmd        `cmd:"" help:"Sign out and forget the saved session."`
	Week          cli.WeekCmd          `cmd:"" help:"Show the attendance grid of a week."`
	Toggle        cli.ToggleCmd        `cmd:"" help:"Flip whether a medication was taken on a day."`
	Add           cli.AddCmd           `cmd:"" help:"Add a medication."`
	Rename        cli.RenameCmd        `cmd:"" help:"Rename a medication."`
	Remove        cli.RemoveCmd        `cmd:"" help:"Delete a medication and its history."`
}

func main() {
	// .env is optional; real environment variables win.
	_ = godotenv.Load()

	kctx := kong.Parse(&CLI,
		kong.Name("medtrack"),
		kong.Description("Weekly medication attendance tracker"),
		kong.UsageOnError(),
		kong.Vars{"version": version},
	)

	logger := logging.Setup(CLI.LogLevel)
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	appCtx := &cli.Context{
		Context:     ctx,
		Server:      CLI.Server,
		SessionPath: CLI.Session,
		Location:    loadLocation(getEnv("TZ", "UTC")),
		Out:         os.Stdout,
		Logger:      logger,
		Prompt:      cli.TerminalPrompt(os.Stderr),
	}

	if err := kctx.Run(appCtx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}
