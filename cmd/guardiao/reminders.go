package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/MatheusCastilhos/trabalho-final-ihc-2025/client"
	"github.com/MatheusCastilhos/trabalho-final-ihc-2025/views"
)

func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", arg)
	}
	return id, nil
}

func printReminder(w io.Writer, r client.Reminder) {
	mark := " "
	if r.Done {
		mark = "x"
	}
	fmt.Fprintf(w, "#%d  %s  [%s] %s (%s)\n", r.ID, r.DueAt.Local().Format("15:04"), mark, r.Title, r.Type)
}

func (c *cli) newRemindersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "lembretes",
		Aliases: []string{"reminders"},
		Short:   "Manage reminders",
	}
	cmd.AddCommand(c.newRemindersListCmd())
	cmd.AddCommand(c.newReminderNewCmd())
	cmd.AddCommand(c.newReminderEditCmd())
	cmd.AddCommand(c.newReminderDoneCmd())
	cmd.AddCommand(c.newReminderDeleteCmd())
	return cmd
}

func (c *cli) newRemindersListCmd() *cobra.Command {
	var date string
	var offset int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the reminders of one day (default today)",
		RunE: func(cmd *cobra.Command, args []string) error {
			board := c.app.Reminders
			if date != "" {
				if err := board.SelectDateString(date); err != nil {
					return err
				}
			}
			board.ChangeDay(offset)

			ctx, cancel := c.ctx(cmd)
			defer cancel()
			if err := board.Load(ctx); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, board.DateLabel())
			day := board.ForSelectedDay()
			if len(day) == 0 {
				fmt.Fprintln(out, "Nenhum lembrete para este dia.")
				return nil
			}
			for _, r := range day {
				printReminder(out, r)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&date, "date", "", "Day, YYYY-MM-DD")
	cmd.Flags().IntVar(&offset, "offset", 0, "Days after (or before, when negative) the selected day")
	return cmd
}

// reminderFlags binds the form fields shared by new and edit.
func reminderFlags(cmd *cobra.Command, f *views.ReminderForm) {
	cmd.Flags().StringVar(&f.Date, "date", f.Date, "Day, YYYY-MM-DD")
	cmd.Flags().StringVar(&f.Time, "time", f.Time, "Time, HH:MM")
	cmd.Flags().StringVar(&f.Title, "title", f.Title, "Title")
	cmd.Flags().StringVar((*string)(&f.Type), "type", string(f.Type), "medicamento | refeicao | consulta | outro")
	cmd.Flags().StringVar(&f.Notes, "notes", f.Notes, "Details")
	cmd.Flags().BoolVar(&f.Repeat, "repeat", false, "Repeat (shown on screen only)")
	cmd.Flags().StringVar(&f.RepeatFrequency, "repeat-frequency", f.RepeatFrequency, "diario | semanal | mensal")
}

func (c *cli) newReminderNewCmd() *cobra.Command {
	form := views.NewReminderForm()

	cmd := &cobra.Command{
		Use:   "new",
		Short: "Create a reminder",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := c.ctx(cmd)
			defer cancel()
			r, err := c.app.Reminders.Create(ctx, form)
			if err != nil {
				return err
			}
			if r == nil {
				fmt.Fprintln(cmd.OutOrStdout(), "Lembrete criado.")
				return nil
			}
			fmt.Fprint(cmd.OutOrStdout(), "Lembrete criado: ")
			printReminder(cmd.OutOrStdout(), *r)
			return nil
		},
	}
	reminderFlags(cmd, &form)
	return cmd
}

func (c *cli) newReminderEditCmd() *cobra.Command {
	var patch views.ReminderForm

	cmd := &cobra.Command{
		Use:   "edit ID",
		Short: "Edit a reminder; unset flags keep their current value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			ctx, cancel := c.ctx(cmd)
			defer cancel()

			current, err := c.app.Reminders.Get(ctx, id)
			if err != nil {
				return err
			}
			form := views.ReminderFormFrom(*current, nil)
			flags := cmd.Flags()
			if flags.Changed("date") {
				form.Date = patch.Date
			}
			if flags.Changed("time") {
				form.Time = patch.Time
			}
			if flags.Changed("title") {
				form.Title = patch.Title
			}
			if flags.Changed("type") {
				form.Type = patch.Type
			}
			if flags.Changed("notes") {
				form.Notes = patch.Notes
			}

			r, err := c.app.Reminders.Update(ctx, id, form)
			if err != nil {
				return err
			}
			if r == nil {
				fmt.Fprintln(cmd.OutOrStdout(), "Lembrete atualizado.")
				return nil
			}
			fmt.Fprint(cmd.OutOrStdout(), "Lembrete atualizado: ")
			printReminder(cmd.OutOrStdout(), *r)
			return nil
		},
	}
	reminderFlags(cmd, &patch)
	return cmd
}

func (c *cli) newReminderDoneCmd() *cobra.Command {
	var undo bool

	cmd := &cobra.Command{
		Use:   "done ID",
		Short: "Mark a reminder as done",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			ctx, cancel := c.ctx(cmd)
			defer cancel()
			r, err := c.app.Reminders.SetDone(ctx, id, !undo)
			if err != nil {
				return err
			}
			if r == nil {
				fmt.Fprintln(cmd.OutOrStdout(), "Lembrete atualizado.")
				return nil
			}
			printReminder(cmd.OutOrStdout(), *r)
			return nil
		},
	}
	cmd.Flags().BoolVar(&undo, "undo", false, "Mark as pending again")
	return cmd
}

func (c *cli) newReminderDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a reminder",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			ctx, cancel := c.ctx(cmd)
			defer cancel()
			if err := c.app.Reminders.Delete(ctx, id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Lembrete #%d excluído.\n", id)
			return nil
		},
	}
}
