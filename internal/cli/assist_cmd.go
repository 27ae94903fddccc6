package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/avolkenstein/planweave/internal/assistant"
	"github.com/avolkenstein/planweave/internal/cli/formatter"
	"github.com/spf13/cobra"
)

// errAssistantDisabled explains how to turn the assistant on.
func errAssistantDisabled() error {
	return fmt.Errorf("assistant is disabled; set PLANWEAVE_LLM_ENABLED=true (and run an Ollama server)")
}

func newSummarizeCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "summarize",
		Short: "Summarize the plan with the assistant",
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.Assistant == nil {
				return errAssistantDisabled()
			}

			stop := formatter.StartSpinner("Summarizing...")
			summary, err := app.Assistant.Summarize(context.Background(), app.Store.Snapshot())
			stop()
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), summary)
			return nil
		},
	}
}

func newRewriteCmd(app *App) *cobra.Command {
	var apply bool

	cmd := &cobra.Command{
		Use:   "rewrite <instruction>",
		Short: "Rewrite the plan per an instruction",
		Long: `Rewrite sends the current plan and your instruction to the assistant
and prints the proposed plan. Nothing is saved unless --apply is given
or you confirm the prompt.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.Assistant == nil {
				return errAssistantDisabled()
			}
			instruction := strings.Join(args, " ")

			stop := formatter.StartSpinner("Rewriting...")
			result, err := app.Assistant.Rewrite(context.Background(), app.Store.RawDocument(), instruction)
			stop()
			if err != nil {
				if errors.Is(err, assistant.ErrRejectedInput) {
					return fmt.Errorf("instruction rejected: %w", err)
				}
				return err
			}

			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatRewritePreview(result.Tasks, result.Warnings))

			if !apply {
				if !confirm(cmd, "Apply this plan?") {
					fmt.Fprintln(cmd.OutOrStdout(), formatter.Dim("Discarded."))
					return nil
				}
			}
			if err := app.Store.ReplaceAll(result.Tasks, "rewrite"); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s Plan updated.\n", formatter.StyleGreen.Render("✔"))
			return nil
		},
	}

	cmd.Flags().BoolVar(&apply, "apply", false, "Apply without confirmation")

	return cmd
}

// confirm prompts on the command's input stream and accepts y/yes.
func confirm(cmd *cobra.Command, prompt string) bool {
	fmt.Fprintf(cmd.OutOrStdout(), "%s [y/N] ", prompt)
	var answer string
	if _, err := fmt.Fscanln(cmd.InOrStdin(), &answer); err != nil {
		return false
	}
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes"
}
