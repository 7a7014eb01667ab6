package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"wellbeing/app"
	"wellbeing/domain/survey"
	"wellbeing/internal"
	"wellbeing/internal/config"
	"wellbeing/internal/container"
	"wellbeing/internal/profiling"
	"wellbeing/ui"
)

func main() {
	_ = godotenv.Load()

	rootCmd := &cobra.Command{
		Use:           "wellbeing",
		Short:         "Score school well-being surveys and generate AI insights",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		newScoreCmd(),
		newInsightsCmd(),
		newServeCmd(),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

// scoreOutput is the JSON printed by the score command
type scoreOutput struct {
	FileName      string                    `json:"file_name"`
	TotalStudents int                       `json:"total_students"`
	Schools       []survey.SchoolOverview   `json:"schools"`
	Profiles      []profiling.SchoolProfile `json:"profiles,omitempty"`
}

func newScoreCmd() *cobra.Command {
	var withStudents, withProfile bool

	cmd := &cobra.Command{
		Use:   "score [file]",
		Short: "Score a survey spreadsheet and print per-school metrics",
		Long: `Score an .xlsx, .xls or .csv survey export and print per-school metrics as JSON.

Example: wellbeing score survey.xlsx --profile`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := buildContainer(cmd.Context())
			if err != nil {
				return err
			}
			analysis, err := analyzeFile(cmd.Context(), c, args[0])
			if err != nil {
				return err
			}

			out := scoreOutput{
				FileName:      analysis.FileName,
				TotalStudents: analysis.TotalStudents,
				Schools:       make([]survey.SchoolOverview, len(analysis.Schools)),
			}
			for i, m := range analysis.Schools {
				if !withStudents {
					m = m.WithoutStudents()
				}
				out.Schools[i] = m.Overview()
			}
			if withProfile {
				out.Profiles = analysis.Profiles
			}
			return printJSON(cmd, out)
		},
	}

	cmd.Flags().BoolVar(&withStudents, "students", false, "Include per-student records")
	cmd.Flags().BoolVar(&withProfile, "profile", false, "Include score distribution profiles")

	return cmd
}

func newInsightsCmd() *cobra.Command {
	var school string

	cmd := &cobra.Command{
		Use:   "insights [file]",
		Short: "Generate AI insights for every school (or one) in a survey",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := buildContainer(cmd.Context())
			if err != nil {
				return err
			}
			analysis, err := analyzeFile(cmd.Context(), c, args[0])
			if err != nil {
				return err
			}

			if school != "" {
				metrics, err := analysis.School(school)
				if err != nil {
					return err
				}
				report, err := c.Reports.GenerateInsights(cmd.Context(), metrics)
				if err != nil {
					return err
				}
				return printJSON(cmd, report)
			}

			reports, err := c.Reports.GenerateAll(cmd.Context(), analysis.Schools)
			if err != nil {
				return err
			}
			return printJSON(cmd, reports)
		},
	}

	cmd.Flags().StringVar(&school, "school", "", "Only generate insights for this school")

	return cmd
}

func newServeCmd() *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := buildContainer(cmd.Context())
			if err != nil {
				return err
			}
			if port == "" {
				port = c.Config.Server.Port
			}

			go c.Store.RunJanitor(cmd.Context(), c.Config.Session.TTL/2)

			server := ui.NewServer(ui.Config{
				Reports:        c.Reports,
				Store:          c.Store,
				MaxUploadBytes: c.Config.Server.MaxUploadBytes,
				Logger:         c.Logger,
			})
			return server.Run(cmd.Context(), ":"+port)
		},
	}

	cmd.Flags().StringVar(&port, "port", "", "Port to listen on (defaults to PORT)")

	return cmd
}

func buildContainer(ctx context.Context) (*container.Container, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	return container.New(ctx, cfg, internal.DefaultLogger)
}

func analyzeFile(ctx context.Context, c *container.Container, path string) (*app.Analysis, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return c.Reports.Analyze(ctx, filepath.Base(path), data)
}

func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
