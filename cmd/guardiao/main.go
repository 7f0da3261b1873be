package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/MatheusCastilhos/trabalho-final-ihc-2025/client"
	"github.com/MatheusCastilhos/trabalho-final-ihc-2025/internal/app"
	"github.com/MatheusCastilhos/trabalho-final-ihc-2025/internal/config"
	"github.com/MatheusCastilhos/trabalho-final-ihc-2025/internal/logger"
)

const requestTimeout = 15 * time.Second

func main() {
	cmd := NewRootCmd()
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Erro:", client.Message(err, err.Error()))
		os.Exit(1)
	}
}

// cli carries the flags and the application built for one invocation.
type cli struct {
	apiURL  string
	dataDir string
	debug   bool

	app *app.App
}

// NewRootCmd constructs the root CLI command; exposed for unit testing.
func NewRootCmd() *cobra.Command {
	c := &cli{}

	rootCmd := &cobra.Command{
		Use:           "guardiao",
		Short:         "Guardião da Memória: reminders, diary, contacts and assistant from the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.open(cmd)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return c.close()
		},
	}

	rootCmd.PersistentFlags().StringVar(&c.apiURL, "api-url", "", "Backend base URL (default $GUARDIAO_API_URL)")
	rootCmd.PersistentFlags().StringVar(&c.dataDir, "data-dir", "", "Directory of the local session (default $GUARDIAO_DATA_DIR or ~/.guardiao)")
	rootCmd.PersistentFlags().BoolVarP(&c.debug, "debug", "d", false, "Enable verbose debug output")

	rootCmd.AddCommand(c.newLoginCmd())
	rootCmd.AddCommand(c.newRegisterCmd())
	rootCmd.AddCommand(c.newLogoutCmd())
	rootCmd.AddCommand(c.newWhoamiCmd())
	rootCmd.AddCommand(c.newNavigateCmd())
	rootCmd.AddCommand(c.newRemindersCmd())
	rootCmd.AddCommand(c.newDiaryCmd())
	rootCmd.AddCommand(c.newContactsCmd())
	rootCmd.AddCommand(c.newAssistantCmd())

	c.closeOnFailure(rootCmd)
	return rootCmd
}

// closeOnFailure wraps every RunE so a failed command still releases the app;
// cobra skips post-run hooks after an error.
func (c *cli) closeOnFailure(cmd *cobra.Command) {
	if run := cmd.RunE; run != nil {
		cmd.RunE = func(cmd *cobra.Command, args []string) error {
			err := run(cmd, args)
			if err != nil {
				_ = c.close()
			}
			return err
		}
	}
	for _, sub := range cmd.Commands() {
		c.closeOnFailure(sub)
	}
}

func (c *cli) open(cmd *cobra.Command) error {
	log.Logger = logger.NewConsole("guardiao")

	cfg, err := config.New()
	if err != nil {
		return err
	}
	if c.apiURL != "" {
		cfg.APIURL = c.apiURL
	}
	if c.dataDir != "" {
		cfg.DataDir = c.dataDir
	}
	if c.debug {
		cfg.Debug = true
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	zerolog.SetGlobalLevel(logger.ParseLevel(cfg.LogLevel))
	if cfg.Debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
		log.Debug().Msg("debug logging enabled")
	}

	a, err := app.New(cfg)
	if err != nil {
		return err
	}
	c.app = a
	return nil
}

func (c *cli) close() error {
	if c.app == nil {
		return nil
	}
	err := c.app.Close()
	c.app = nil
	return err
}

func (c *cli) ctx(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	return context.WithTimeout(cmd.Context(), requestTimeout)
}
