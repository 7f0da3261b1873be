package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/MatheusCastilhos/trabalho-final-ihc-2025/client"
	"github.com/MatheusCastilhos/trabalho-final-ihc-2025/views"
)

// openAttachment opens a file for upload. The caller closes it.
func openAttachment(path string) (*client.Attachment, func(), error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	return &client.Attachment{Filename: filepath.Base(path), Content: f}, func() { _ = f.Close() }, nil
}

func (c *cli) newDiaryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "diario",
		Aliases: []string{"diary"},
		Short:   "Manage diary notes",
	}
	cmd.AddCommand(c.newDiaryListCmd())
	cmd.AddCommand(c.newDiaryNewCmd())
	cmd.AddCommand(c.newDiaryDeleteCmd())
	return cmd
}

func (c *cli) newDiaryListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List diary notes",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := c.ctx(cmd)
			defer cancel()
			if err := c.app.Diary.Load(ctx); err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			items := c.app.Diary.Items()
			if len(items) == 0 {
				fmt.Fprintln(out, "Nenhuma anotação ainda.")
				return nil
			}
			for _, e := range items {
				fmt.Fprintf(out, "#%d  %s  %s", e.ID, e.CreatedAt.Local().Format("02/01/2006 15:04"), e.Text)
				if e.Photo != "" {
					fmt.Fprintf(out, "  [foto %s]", e.Photo)
				}
				if e.Audio != "" {
					fmt.Fprintf(out, "  [áudio %s]", e.Audio)
				}
				fmt.Fprintln(out)
			}
			return nil
		},
	}
}

func (c *cli) newDiaryNewCmd() *cobra.Command {
	var text, photo, audio string

	cmd := &cobra.Command{
		Use:   "new",
		Short: "Write a note, optionally with a photo or an audio file",
		RunE: func(cmd *cobra.Command, args []string) error {
			form := views.DiaryForm{Kind: views.DiaryText, Text: text}
			if photo != "" {
				att, done, err := openAttachment(photo)
				if err != nil {
					return err
				}
				defer done()
				form.Kind, form.Photo = views.DiaryPhoto, att
			}
			if audio != "" {
				att, done, err := openAttachment(audio)
				if err != nil {
					return err
				}
				defer done()
				if form.Photo == nil {
					form.Kind = views.DiaryAudio
				}
				form.Audio = att
			}

			ctx, cancel := c.ctx(cmd)
			defer cancel()
			e, err := c.app.Diary.Create(ctx, form)
			if err != nil {
				return err
			}
			if e == nil {
				fmt.Fprintln(cmd.OutOrStdout(), "Anotação salva.")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Anotação #%d salva.\n", e.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&text, "text", "", "Note text or caption")
	cmd.Flags().StringVar(&photo, "photo", "", "Photo file")
	cmd.Flags().StringVar(&audio, "audio", "", "Audio file")
	return cmd
}

func (c *cli) newDiaryDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a note",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			ctx, cancel := c.ctx(cmd)
			defer cancel()
			if err := c.app.Diary.Delete(ctx, id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Anotação #%d excluída.\n", id)
			return nil
		},
	}
}
