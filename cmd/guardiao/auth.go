package main

import (
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/MatheusCastilhos/trabalho-final-ihc-2025/views"
)

func (c *cli) newLoginCmd() *cobra.Command {
	var form views.LoginForm

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and keep the session on this machine",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := c.ctx(cmd)
			defer cancel()

			start := time.Now()
			id, err := c.app.Auth.Login(ctx, form)
			if err != nil {
				log.Debug().Err(err).Str("username", form.Username).Dur("elapsed", time.Since(start)).Msg("login failed")
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Olá, %s!\n", id.Shown())
			return nil
		},
	}
	cmd.Flags().StringVarP(&form.Username, "username", "u", "", "Username")
	cmd.Flags().StringVarP(&form.Password, "password", "p", "", "Password")
	return cmd
}

func (c *cli) newRegisterCmd() *cobra.Command {
	var form views.RegisterForm

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account; log in afterwards",
		RunE: func(cmd *cobra.Command, args []string) error {
			if form.ConfirmPassword == "" {
				form.ConfirmPassword = form.Password
			}
			ctx, cancel := c.ctx(cmd)
			defer cancel()

			if err := c.app.Auth.Register(ctx, form); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Cadastro realizado! Faça login para continuar.")
			return nil
		},
	}
	cmd.Flags().StringVar(&form.Username, "username", "", "Username")
	cmd.Flags().StringVar(&form.Email, "email", "", "E-mail")
	cmd.Flags().StringVar(&form.FullName, "full-name", "", "Full name")
	cmd.Flags().StringVar(&form.BirthDate, "birth-date", "", "Birth date, YYYY-MM-DD")
	cmd.Flags().StringVar(&form.Password, "password", "", "Password")
	cmd.Flags().StringVar(&form.ConfirmPassword, "confirm-password", "", "Password again (default: same as --password)")
	return cmd
}

func (c *cli) newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "End the session",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := c.ctx(cmd)
			defer cancel()
			if err := c.app.Auth.Logout(ctx); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Sessão encerrada.")
			return nil
		},
	}
}

func (c *cli) newWhoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the logged-in user",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if !c.app.Session.Authenticated(ctx) {
				fmt.Fprintln(cmd.OutOrStdout(), "Não autenticado.")
				return nil
			}
			id := c.app.Session.Identity(ctx)
			fmt.Fprintf(cmd.OutOrStdout(), "%s (%s)\n", id.Shown(), id.Username)
			return nil
		},
	}
}

func (c *cli) newNavigateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "navigate PATH",
		Short: "Show where a path lands given the current session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d := c.app.Router.Resolve(cmd.Context(), args[0])
			if d.Redirect {
				fmt.Fprintf(cmd.OutOrStdout(), "%s -> %s\n", args[0], d.Path)
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s (%s)\n", d.Path, d.Route)
			return nil
		},
	}
}
