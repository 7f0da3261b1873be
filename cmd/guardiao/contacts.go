package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/MatheusCastilhos/trabalho-final-ihc-2025/client"
	"github.com/MatheusCastilhos/trabalho-final-ihc-2025/views"
)

func printContact(w io.Writer, ct client.Contact) {
	emergency := ""
	if ct.Emergency {
		emergency = "  [emergência]"
	}
	fmt.Fprintf(w, "#%d  %s  %s%s\n", ct.ID, ct.Name, ct.Phone, emergency)
}

func (c *cli) newContactsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "contatos",
		Aliases: []string{"contacts"},
		Short:   "Manage contacts",
	}
	cmd.AddCommand(c.newContactsListCmd())
	cmd.AddCommand(c.newContactWriteCmd(false))
	cmd.AddCommand(c.newContactWriteCmd(true))
	cmd.AddCommand(c.newContactDeleteCmd())
	return cmd
}

func (c *cli) newContactsListCmd() *cobra.Command {
	var emergencyOnly bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List contacts",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := c.ctx(cmd)
			defer cancel()
			if err := c.app.Contacts.Load(ctx); err != nil {
				return err
			}
			items := c.app.Contacts.Items()
			if emergencyOnly {
				items = c.app.Contacts.Emergency()
			}
			if len(items) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "Nenhum contato.")
				return nil
			}
			for _, ct := range items {
				printContact(cmd.OutOrStdout(), ct)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&emergencyOnly, "emergency", false, "Only emergency contacts")
	return cmd
}

// newContactWriteCmd builds "new", or "edit ID" when edit is set.
func (c *cli) newContactWriteCmd(edit bool) *cobra.Command {
	form := views.NewContactForm()
	var photo, kind string

	cmd := &cobra.Command{
		Use:   "new",
		Short: "Add a contact",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			form.Transient.Kind = views.ContactKind(kind)
			if photo != "" {
				att, done, err := openAttachment(photo)
				if err != nil {
					return err
				}
				defer done()
				form.Photo = att
			}

			ctx, cancel := c.ctx(cmd)
			defer cancel()

			var (
				ct  *client.Contact
				err error
			)
			if edit {
				id, perr := parseID(args[0])
				if perr != nil {
					return perr
				}
				ct, err = c.app.Contacts.Update(ctx, id, form)
			} else {
				ct, err = c.app.Contacts.Create(ctx, form)
			}
			if err != nil {
				return err
			}
			if ct == nil {
				fmt.Fprintln(cmd.OutOrStdout(), "Contato salvo.")
				return nil
			}
			printContact(cmd.OutOrStdout(), *ct)
			return nil
		},
	}
	if edit {
		cmd.Use, cmd.Short, cmd.Args = "edit ID", "Replace the fields of a contact", cobra.ExactArgs(1)
	}
	cmd.Flags().StringVar(&form.Name, "name", "", "Name")
	cmd.Flags().StringVar(&form.Phone, "phone", "", "Phone number")
	cmd.Flags().BoolVar(&form.Emergency, "emergency", false, "Emergency contact")
	cmd.Flags().StringVar(&photo, "photo", "", "Photo file")
	cmd.Flags().StringVar(&kind, "kind", string(views.ContactFamily), "familia | amigo | cuidador | medico | outro (not stored)")
	cmd.Flags().StringVar(&form.Transient.Relation, "relation", "", "Relationship (not stored)")
	cmd.Flags().StringVar(&form.Transient.Notes, "notes", "", "Notes (not stored)")
	return cmd
}

func (c *cli) newContactDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a contact",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			ctx, cancel := c.ctx(cmd)
			defer cancel()
			if err := c.app.Contacts.Delete(ctx, id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Contato #%d excluído.\n", id)
			return nil
		},
	}
}
