package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/lexbharat/lexbharat/internal/client"
	"github.com/lexbharat/lexbharat/internal/domain/analysis"
	"github.com/lexbharat/lexbharat/internal/poller"
	"github.com/lexbharat/lexbharat/internal/report"
)

var (
	serverURL   string
	interval    time.Duration
	maxAttempts int
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	rootCmd := newRootCommand()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "lexctl: %v\n", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "lexctl",
		Short:        "LexBharat command line client",
		Long:         "lexctl uploads legal PDFs for constitutional-compliance analysis, watches for results and talks to the legal assistant.",
		SilenceUsage: true,
	}
	cmd.PersistentFlags().StringVar(&serverURL, "server", envOr("LEXBHARAT_SERVER", "http://localhost:8080"), "Base URL of the LexBharat API")
	cmd.AddCommand(
		newUploadCmd(),
		newWatchCmd(),
		newReportCmd(),
		newChatCmd(),
	)
	return cmd
}

func newUploadCmd() *cobra.Command {
	var watch bool
	cmd := &cobra.Command{
		Use:   "upload <file.pdf>",
		Short: "Upload a PDF for analysis",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			c := client.New(serverURL)

			id, err := uploadFile(ctx, c, args[0])
			if err != nil {
				return err
			}
			fmt.Printf("uploaded: documentId=%s\n", id)

			if !watch {
				return nil
			}
			return watchDocument(ctx, c, id)
		},
	}
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "Poll for the analysis after uploading")
	addPollFlags(cmd)
	return cmd
}

func newWatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch <documentId>",
		Short: "Poll until the analysis for a document is complete",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return watchDocument(cmd.Context(), client.New(serverURL), analysis.DocumentID(args[0]))
		},
	}
	addPollFlags(cmd)
	return cmd
}

func newReportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "report <documentId>",
		Short: "Print the report for a completed analysis",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c := client.New(serverURL)
			snap, err := c.FetchAnalysis(cmd.Context(), analysis.DocumentID(args[0]))
			if err != nil {
				return err
			}
			switch snap.State {
			case client.StateNotFound:
				return fmt.Errorf("no analysis data available for %s", args[0])
			case client.StateProcessing:
				return fmt.Errorf("analysis still processing, missing: %s", strings.Join(snap.Missing, ", "))
			}
			fmt.Print(report.RenderText(snap.Record))
			return nil
		},
	}
}

func newChatCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "chat <message...>",
		Short: "Ask the legal assistant a question",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c := client.New(serverURL)
			reply, err := c.Chat(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return err
			}
			fmt.Println(reply)
			return nil
		},
	}
}

func addPollFlags(cmd *cobra.Command) {
	cmd.Flags().DurationVar(&interval, "interval", 5*time.Second, "Delay between status queries")
	cmd.Flags().IntVar(&maxAttempts, "max-attempts", 60, "Give up after this many queries")
}

func uploadFile(ctx context.Context, c *client.Client, path string) (analysis.DocumentID, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return "", err
	}

	contentType := "application/octet-stream"
	if strings.EqualFold(filepath.Ext(path), ".pdf") {
		contentType = "application/pdf"
	}
	return c.Upload(ctx, filepath.Base(path), contentType, info.Size(), f)
}

func watchDocument(ctx context.Context, c *client.Client, id analysis.DocumentID) error {
	session := poller.New(c, id,
		poller.Config{Interval: interval, MaxAttempts: maxAttempts},
		poller.WithProgress(func(p poller.Progress) {
			if len(p.Missing) > 0 {
				fmt.Printf("attempt %d: waiting for %s\n", p.Attempt, strings.Join(p.Missing, " and "))
			} else {
				fmt.Printf("attempt %d: not ready yet\n", p.Attempt)
			}
		}),
	)

	outcome, err := session.Run(ctx)
	if err != nil {
		return err
	}
	switch outcome.State {
	case poller.StateSucceeded:
		fmt.Print(report.RenderText(outcome.Record))
		return nil
	default:
		return fmt.Errorf("cannot generate report: %s (after %d attempts)", outcome.Reason, outcome.Attempts)
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
