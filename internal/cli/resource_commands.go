package cli

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	apperrors "github.com/nhle/studentpro/internal/errors"
	"github.com/nhle/studentpro/internal/model"
	"github.com/nhle/studentpro/internal/session"
	"github.com/nhle/studentpro/internal/view"
)

// dueLayout is how due dates are printed.
const dueLayout = "Mon Jan 02 15:04"

// now is replaced in tests.
var now = time.Now

func (r *RootCommand) newDashboardCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Show the profile summary and dashboard cards",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if _, err := r.requireSession(ctx); err != nil {
				return err
			}

			d := view.NewDashboard(r.env.deps())
			if err := loadView(ctx, d); err != nil {
				return handleError("load dashboard", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s, %s\n\n", view.Greeting(now()), d.DisplayName())
			if p := d.Profile(); p != nil {
				fmt.Fprintf(out, "  Streak:      %d days\n", p.Streak)
				fmt.Fprintf(out, "  Hours today: %s\n", humanize.Ftoa(p.HoursToday))
				fmt.Fprintf(out, "  Progress:    %s%%\n\n", humanize.Ftoa(p.Progress))
			}
			for _, c := range d.Cards() {
				printCard(out, c)
			}
			return nil
		},
	}
}

func printCard(out io.Writer, c view.Card) {
	fmt.Fprintf(out, "%s\n  %s\n", c.Title, c.Description)
	if c.Stat != "" {
		fmt.Fprintf(out, "  %s %s\n", c.Stat, c.StatLabel)
	}
	if c.Route != "" {
		fmt.Fprintf(out, "  %s: studentpro %s\n", c.Action, cardCommand(c))
	} else {
		fmt.Fprintf(out, "  %s\n", c.Action)
	}
	fmt.Fprintln(out)
}

func cardCommand(c view.Card) string {
	if c.Route == session.RouteStorage {
		return "files"
	}
	return string(c.Route)
}

func (r *RootCommand) newTasksCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tasks",
		Short: "List and manage daily tasks",
	}

	var search string
	list := &cobra.Command{
		Use:   "list",
		Short: "List tasks, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := r.loadTasks(cmd)
			if err != nil {
				return err
			}
			if v.Err() != nil {
				return handleError("load tasks", v.Err())
			}
			printTasks(cmd.OutOrStdout(), v.Filter(search), search)
			return nil
		},
	}
	list.Flags().StringVarP(&search, "search", "s", "", "only tasks whose title contains this text")

	var due string
	add := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a task",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if _, err := r.requireSession(ctx); err != nil {
				return err
			}

			var dueAt *time.Time
			if due != "" {
				ts, err := model.ParseTimestamp(due)
				if err != nil {
					return fmt.Errorf("invalid --due %q: use YYYY-MM-DDTHH:MM or RFC 3339", due)
				}
				dueAt = &ts
			}

			v := view.NewTasks(r.env.deps(), r.env.Client)
			created, err := v.Create(ctx, strings.Join(args, " "), dueAt)
			if err != nil {
				return handleError("add task", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %s: %s\n", created.ID, created.Title)
			return nil
		},
	}
	add.Flags().StringVar(&due, "due", "", "deadline, YYYY-MM-DDTHH:MM or RFC 3339")

	toggle := &cobra.Command{
		Use:   "toggle <id>",
		Short: "Mark a task completed or reopen it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := r.loadTasks(cmd)
			if err != nil {
				return err
			}
			if v.Err() != nil {
				return handleError("load tasks", v.Err())
			}

			updated, err := v.Toggle(cmd.Context(), args[0])
			if err != nil {
				return handleError("update task", err)
			}
			state := "reopened"
			if updated.Completed {
				state = "completed"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Task %s %s\n", updated.Title, state)
			return nil
		},
	}

	remove := &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"delete"},
		Short:   "Delete a task",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if _, err := r.requireSession(ctx); err != nil {
				return err
			}

			v := view.NewTasks(r.env.deps(), r.env.Client)
			if err := v.Delete(ctx, args[0]); err != nil {
				return handleError("delete task", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", args[0])
			return nil
		},
	}

	cmd.AddCommand(list, add, toggle, remove)
	return cmd
}

func (r *RootCommand) loadTasks(cmd *cobra.Command) (*view.Tasks, error) {
	ctx := cmd.Context()
	if _, err := r.requireSession(ctx); err != nil {
		return nil, err
	}

	v := view.NewTasks(r.env.deps(), r.env.Client)
	if err := loadView(ctx, v); err != nil {
		return nil, handleError("load tasks", err)
	}
	return v, nil
}

func printTasks(out io.Writer, tasks []model.Task, search string) {
	if len(tasks) == 0 {
		if search != "" {
			fmt.Fprintf(out, "No tasks match %q\n", search)
		} else {
			fmt.Fprintln(out, "No tasks yet. Add one with `studentpro tasks add <title>`")
		}
		return
	}

	t := now()
	for _, task := range tasks {
		mark := "[ ]"
		if task.Completed {
			mark = "[x]"
		}
		line := fmt.Sprintf("%s %s  %s", mark, task.ID, task.Title)
		if task.DueDateTime != nil {
			line += "  due " + task.DueDateTime.Local().Format(dueLayout)
			if task.IsOverdue(t) {
				line += " (overdue)"
			}
		}
		if !task.CreatedAt.IsZero() {
			line += "  added " + humanize.RelTime(task.CreatedAt, t, "ago", "from now")
		}
		fmt.Fprintln(out, line)
	}
}

func (r *RootCommand) newPracticeCommand() *cobra.Command {
	var search string

	cmd := &cobra.Command{
		Use:   "practice",
		Short: "List practice platforms",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if _, err := r.requireSession(ctx); err != nil {
				return err
			}

			v := view.NewPractice(r.env.deps())
			if err := loadView(ctx, v); err != nil {
				return handleError("load practice platforms", err)
			}

			out := cmd.OutOrStdout()
			if v.Err() != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "%s, showing the built-in list\n", apperrors.GetUserMessage(v.Err()))
			}
			for _, link := range v.Filter(search) {
				fmt.Fprintf(out, "%s  %s\n  %s\n", link.Name, link.URL, link.Description)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&search, "search", "s", "", "only platforms whose name contains this text")
	return cmd
}

func (r *RootCommand) newFilesCommand() *cobra.Command {
	var search string

	cmd := &cobra.Command{
		Use:     "files",
		Aliases: []string{"storage"},
		Short:   "List stored files",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if _, err := r.requireSession(ctx); err != nil {
				return err
			}

			v := view.NewStorage(r.env.deps())
			if err := loadView(ctx, v); err != nil {
				return handleError("load files", err)
			}
			if v.Err() != nil {
				return handleError("load files", v.Err())
			}

			out := cmd.OutOrStdout()
			files := v.Filter(search)
			if len(files) == 0 {
				if search != "" {
					fmt.Fprintf(out, "No files match %q\n", search)
				} else {
					fmt.Fprintln(out, "No files stored yet")
				}
				return nil
			}

			t := now()
			for _, f := range files {
				line := fmt.Sprintf("%-6s %s  %s", strings.ToUpper(f.Type), f.Name, view.FormatSize(f.Size))
				if !f.CreatedAt.IsZero() {
					line += "  " + humanize.RelTime(f.CreatedAt, t, "ago", "from now")
				}
				if f.HasDownload() {
					line += "\n       " + f.URL
				}
				fmt.Fprintln(out, line)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&search, "search", "s", "", "only files whose name contains this text")
	return cmd
}
