package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/yanqian/outfit-advisor/internal/domain/recommend"
	apperrors "github.com/yanqian/outfit-advisor/pkg/errors"
)

var formatFlag string

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "outfit-advisor",
		Short:         "Weather-based outfit recommendations",
		Long:          "Shows the weather for a city and suggests what to wear. Runs the HTTP API by default.",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runServe,
	}
	root.PersistentFlags().StringVarP(&formatFlag, "format", "f", "text", "Output format: json or text")
	root.AddCommand(newServeCmd(), newRecommendCmd(), newWeatherCmd())
	return root
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and the daily brief scheduler",
		Args:  cobra.NoArgs,
		RunE:  runServe,
	}
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, cleanup, err := initializeApp()
	if err != nil {
		return fmt.Errorf("failed to wire application: %w", err)
	}
	defer cleanup()

	if err := app.Run(ctx); err != nil {
		return fmt.Errorf("application stopped with error: %w", err)
	}
	return nil
}

func newRecommendCmd() *cobra.Command {
	var event string
	cmd := &cobra.Command{
		Use:   "recommend <weather>",
		Short: "Recommend an outfit for a weather string such as \"72°F, Sunny\"",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			weather := strings.TrimSpace(args[0])
			if weather == "" {
				return fmt.Errorf("weather cannot be empty")
			}
			rec := recommend.Recommend(weather)
			if event != "" {
				return printEventAdvice(cmd.OutOrStdout(), rec, recommend.AdviseEvent(weather, event))
			}
			return printRecommendation(cmd.OutOrStdout(), rec)
		},
	}
	cmd.Flags().StringVarP(&event, "event", "e", "", "Calendar event title to tailor the advice to")
	return cmd
}

func newWeatherCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "weather <city>",
		Short: "Fetch current weather for a city and recommend an outfit",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := initializeAdvice()
			if err != nil {
				return fmt.Errorf("failed to wire application: %w", err)
			}
			result, err := svc.ForCity(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("%s: %w", apperrors.UserMessage(err), err)
			}
			if formatFlag == "json" {
				return writeJSON(cmd.OutOrStdout(), result)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", result.City, result.Weather)
			return printRecommendation(cmd.OutOrStdout(), result.Recommendation)
		},
	}
}

func printRecommendation(w io.Writer, rec recommend.Recommendation) error {
	if formatFlag == "json" {
		return writeJSON(w, rec)
	}
	fmt.Fprintf(w, "%s %s\n", rec.Emoji, rec.Description)
	fmt.Fprintf(w, "Wear: %s\n", strings.Join(rec.Tags, ", "))
	fmt.Fprintf(w, "Why: %s\n", rec.Reason)
	return nil
}

func printEventAdvice(w io.Writer, rec recommend.Recommendation, adv recommend.EventAdvice) error {
	if formatFlag == "json" {
		return writeJSON(w, struct {
			recommend.Recommendation
			Event recommend.EventAdvice `json:"event"`
		}{rec, adv})
	}
	fmt.Fprintf(w, "%s %s\n", adv.Emoji, adv.Text)
	fmt.Fprintf(w, "Wear: %s\n", strings.Join(rec.Tags, ", "))
	return nil
}

func writeJSON(w io.Writer, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(b))
	return err
}
