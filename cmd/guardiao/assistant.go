package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/MatheusCastilhos/trabalho-final-ihc-2025/client"
)

const listenTimeout = 30 * time.Second

func printMessage(w io.Writer, m client.ChatMessage) {
	who := "Você"
	if m.Sender == client.SenderBot {
		who = "Assistente"
	}
	fmt.Fprintf(w, "%s: %s\n", who, m.Text)
}

func (c *cli) newAssistantCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "assistente",
		Aliases: []string{"assistant"},
		Short:   "Talk to the assistant",
	}
	cmd.AddCommand(c.newAssistantHistoryCmd())
	cmd.AddCommand(c.newAssistantAskCmd())
	cmd.AddCommand(c.newAssistantListenCmd())
	return cmd
}

func (c *cli) newAssistantHistoryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "history",
		Short: "Show the conversation",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := c.ctx(cmd)
			defer cancel()
			err := c.app.Assistant.Hydrate(ctx)
			if client.IsUnauthenticated(err) {
				return err
			}
			for _, m := range c.app.Assistant.Messages() {
				printMessage(cmd.OutOrStdout(), m)
			}
			return err
		},
	}
}

// send posts the input buffer and prints the reply, narrating it when asked.
func (c *cli) send(cmd *cobra.Command, narrate bool) error {
	if narrate {
		c.app.Narrator.SetAutoNarration(true, nil)
		defer c.app.Narrator.Wait()
	}
	ctx, cancel := c.ctx(cmd)
	defer cancel()
	reply, err := c.app.Assistant.Send(ctx)
	if err != nil {
		return err
	}
	if reply == nil {
		return errors.New("mensagem vazia")
	}
	printMessage(cmd.OutOrStdout(), *reply)
	return nil
}

func (c *cli) newAssistantAskCmd() *cobra.Command {
	var narrate bool

	cmd := &cobra.Command{
		Use:   "ask MESSAGE...",
		Short: "Send a message and print the reply",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c.app.Assistant.SetInput(strings.Join(args, " "))
			return c.send(cmd, narrate)
		},
	}
	cmd.Flags().BoolVar(&narrate, "narrate", false, "Read the reply aloud with $GUARDIAO_TTS_COMMAND")
	return cmd
}

func (c *cli) newAssistantListenCmd() *cobra.Command {
	var narrate, dryRun bool

	cmd := &cobra.Command{
		Use:   "listen",
		Short: "Capture one utterance with $GUARDIAO_STT_COMMAND and send it",
		RunE: func(cmd *cobra.Command, args []string) error {
			bridge := c.app.Voice
			if err := bridge.Check(); err != nil {
				return err
			}

			fmt.Fprintln(cmd.ErrOrStderr(), "Ouvindo...")
			ctx, cancel := context.WithTimeout(cmd.Context(), listenTimeout)
			defer cancel()
			text, err := bridge.Listen(ctx)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Você disse: %s\n", text)
			if dryRun {
				return nil
			}
			return c.send(cmd, narrate)
		},
	}
	cmd.Flags().BoolVar(&narrate, "narrate", false, "Read the reply aloud with $GUARDIAO_TTS_COMMAND")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Print the transcript without sending it")
	return cmd
}
