package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"hirepulse/internal/catalog"
	"hirepulse/internal/common"
	"hirepulse/internal/types"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var matchCmd = &cobra.Command{
	Use:   "match [profile-file]",
	Short: "Match a candidate profile against the position catalog",
	Long: `Match a candidate profile against the configured position catalog.
The command takes one argument: the path to a candidate profile JSON file.
Positions scoring above the configured threshold are listed in descending
score order with the reasons behind each match.`,
	Args: cobra.ExactArgs(1),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		cfg := getConfigFromContext(cmd.Context())
		// Apply default format if not specified
		if matchConfig.OutputFormat == "" {
			matchConfig.OutputFormat = cfg.App.DefaultFormat
		}
		// Validate format against supported formats
		return common.ValidateOutputFormat(matchConfig.OutputFormat, cfg.App.SupportedFormats)
	},
	RunE: runMatch,
}

var matchConfig common.CommandConfig

func init() {
	matchCmd.Flags().StringVarP(&matchConfig.OutputFile, "output", "o", "", "Output file path (default: stdout)")
	matchCmd.Flags().StringVar(&matchConfig.OutputFormat, "format", "", "Output format: json, text, or markdown")

	// Add completion for format flag
	_ = matchCmd.RegisterFlagCompletionFunc("format", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		cfg := getConfigFromContext(cmd.Context())
		return common.GetSupportedFormats(cfg.App.SupportedFormats), cobra.ShellCompDirectiveNoFileComp
	})
}

func runMatch(cmd *cobra.Command, args []string) error {
	cfg := getConfigFromContext(cmd.Context())
	logger := getLoggerFromContext(cmd.Context())

	engine, err := cfg.BuildMatchEngine()
	if err != nil {
		return fmt.Errorf("failed to build matching engine: %w", err)
	}

	provider, err := catalog.NewProvider(cfg.Catalog.Path, logger)
	if err != nil {
		return fmt.Errorf("failed to load catalog: %w", err)
	}

	createInput := func(contents []string) (types.CandidateProfile, error) {
		if len(contents) != 1 {
			return types.CandidateProfile{}, fmt.Errorf("expected 1 file path, got %d", len(contents))
		}
		var profile types.CandidateProfile
		if err := json.Unmarshal([]byte(contents[0]), &profile); err != nil {
			return types.CandidateProfile{}, fmt.Errorf("profile file is not valid JSON: %w", err)
		}
		if strings.TrimSpace(profile.Name) == "" {
			return types.CandidateProfile{}, fmt.Errorf("profile is missing the name field")
		}
		if strings.TrimSpace(profile.Skills) == "" {
			return types.CandidateProfile{}, fmt.Errorf("profile is missing the skills field")
		}
		return profile, nil
	}

	logDetails := func(input types.CandidateProfile, cfg common.CommandConfig) {
		logger.Info("Starting candidate matching",
			"candidate", input.Name,
			"work_type", input.WorkType,
			"output_format", cfg.OutputFormat)
	}

	matchOperation := func(ctx context.Context, input types.CandidateProfile) (types.MatchResponse, error) {
		matches := engine.Match(input, provider.Snapshot())
		return types.MatchResponse{
			CandidateID:  uuid.NewString(),
			Matches:      matches,
			TotalMatches: len(matches),
			CreatedAt:    time.Now().UTC(),
		}, nil
	}

	err = common.RunFileCommand(
		cmd.Context(),
		logger,
		matchConfig,
		args,
		createInput,
		matchOperation,
		logDetails,
	)

	if err != nil {
		return fmt.Errorf("failed to match candidate: %w", err)
	}
	logger.Info("Candidate matching completed successfully")
	return nil
}
