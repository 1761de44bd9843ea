// Package cli implements the studentpro command line: the terminal UI as
// the default action plus one-shot commands over the same session and
// views.
package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/nhle/studentpro/internal/api"
	"github.com/nhle/studentpro/internal/app"
	"github.com/nhle/studentpro/internal/model"
	"github.com/nhle/studentpro/internal/session"
	"github.com/nhle/studentpro/internal/view"
)

// Env is everything a command needs, built once at startup.
type Env struct {
	Config     *model.AppConfig
	ConfigPath string
	Client     *api.Client
	Manager    *session.Manager
	Guard      *session.Guard

	// RunProgram runs the terminal UI. Tests replace it.
	RunProgram func(ctx context.Context, m tea.Model) error
}

// NewEnv wires a session manager and guard over store and client.
func NewEnv(cfg *model.AppConfig, configPath string, store session.IdentityStore, client *api.Client) *Env {
	manager := session.NewManager(store, client)
	return &Env{
		Config:     cfg,
		ConfigPath: configPath,
		Client:     client,
		Manager:    manager,
		Guard:      session.NewGuard(manager),
		RunProgram: runProgram,
	}
}

func (e *Env) deps() view.Deps {
	return view.Deps{Manager: e.Manager, Guard: e.Guard, API: e.Client}
}

// RootCommand represents the base command when called without any subcommands.
type RootCommand struct {
	cmd *cobra.Command
	env *Env
}

// NewRootCommand creates the root cobra command and its subcommands.
func NewRootCommand(env *Env) *RootCommand {
	root := &RootCommand{env: env}

	root.cmd = &cobra.Command{
		Use:   "studentpro",
		Short: "A terminal client for the StudentPro study dashboard",
		Long: `StudentPro keeps your daily tasks, practice platforms and stored files
in one place. Run without arguments to open the terminal UI.

EXAMPLES:
  studentpro                                 # Open the terminal UI
  studentpro login --email me@example.com    # Sign in
  studentpro tasks add "Read chapter 4" --due 2026-10-20T18:00
  studentpro tasks list --search chapter
  studentpro mock-server --addr 127.0.0.1:5000

CONFIGURATION:
  ~/.config/studentpro/config.yaml, overridden by STUDENTPRO_* variables
  (for example STUDENTPRO_API_MODE=development). A .env file in the working
  directory is loaded first.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return root.runTUI(cmd.Context())
		},
	}

	root.addSubcommands()
	return root
}

// Command exposes the underlying cobra command.
func (r *RootCommand) Command() *cobra.Command {
	return r.cmd
}

// Execute runs the command line with ctx.
func (r *RootCommand) Execute(ctx context.Context) error {
	return r.cmd.ExecuteContext(ctx)
}

func (r *RootCommand) addSubcommands() {
	r.cmd.AddCommand(
		r.newLoginCommand(),
		r.newRegisterCommand(),
		r.newLogoutCommand(),
		r.newWhoamiCommand(),
		r.newDashboardCommand(),
		r.newTasksCommand(),
		r.newPracticeCommand(),
		r.newFilesCommand(),
		r.newMockServerCommand(),
		r.newConfigCommand(),
	)
}

// runTUI sends log output to the configured file while the UI owns the
// terminal.
func (r *RootCommand) runTUI(ctx context.Context) error {
	if path := r.env.Config.Log.File; path != "" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return fmt.Errorf("creating log directory: %w", err)
		}
		f, err := tea.LogToFile(path, "studentpro")
		if err != nil {
			return fmt.Errorf("opening log file %s: %w", path, err)
		}
		defer f.Close()
	}

	return r.env.RunProgram(ctx, app.New(r.env.Manager, r.env.Client, ""))
}

func runProgram(ctx context.Context, m tea.Model) error {
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}

// requireSession runs the guard for a protected command.
func (r *RootCommand) requireSession(ctx context.Context) (session.Session, error) {
	sess, ok := r.env.Guard.Check(ctx)
	if !ok {
		return session.Session{}, ErrNotSignedIn
	}
	return sess, nil
}
