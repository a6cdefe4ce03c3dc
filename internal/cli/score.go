package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"hirepulse/internal/common"
	"hirepulse/internal/types"
	"hirepulse/internal/utils"

	"github.com/spf13/cobra"
)

var scoreCmd = &cobra.Command{
	Use:   "score [transcript-or-answer-file]",
	Short: "Score an interview transcript or a single answer",
	Long: `Score interview content against the weighted rubric.
The command takes one argument: either a transcript JSON file (an array of
turns with role and content fields) which is scored as a full session, or a
plain-text file holding a single answer which is scored on its own.`,
	Args: cobra.ExactArgs(1),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		cfg := getConfigFromContext(cmd.Context())
		// Apply default format if not specified
		if scoreConfig.OutputFormat == "" {
			scoreConfig.OutputFormat = cfg.App.DefaultFormat
		}
		// Validate format against supported formats
		return common.ValidateOutputFormat(scoreConfig.OutputFormat, cfg.App.SupportedFormats)
	},
	RunE: runScore,
}

var scoreConfig common.CommandConfig

func init() {
	scoreCmd.Flags().StringVarP(&scoreConfig.OutputFile, "output", "o", "", "Output file path (default: stdout)")
	scoreCmd.Flags().StringVar(&scoreConfig.OutputFormat, "format", "", "Output format: json, text, or markdown")

	// Add completion for format flag
	_ = scoreCmd.RegisterFlagCompletionFunc("format", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		cfg := getConfigFromContext(cmd.Context())
		return common.GetSupportedFormats(cfg.App.SupportedFormats), cobra.ShellCompDirectiveNoFileComp
	})
}

// scoreInput is either a full transcript or a single free-text answer.
type scoreInput struct {
	turns  []types.Turn
	answer string
}

func runScore(cmd *cobra.Command, args []string) error {
	cfg := getConfigFromContext(cmd.Context())
	logger := getLoggerFromContext(cmd.Context())

	rubric, err := cfg.BuildRubric()
	if err != nil {
		return fmt.Errorf("failed to build scoring rubric: %w", err)
	}

	isTranscript := utils.GetFileExtension(args[0]) == ".json"

	createInput := func(contents []string) (scoreInput, error) {
		if len(contents) != 1 {
			return scoreInput{}, fmt.Errorf("expected 1 file path, got %d", len(contents))
		}
		if isTranscript {
			var turns []types.Turn
			if err := json.Unmarshal([]byte(contents[0]), &turns); err != nil {
				return scoreInput{}, fmt.Errorf("transcript file is not a valid JSON turn array: %w", err)
			}
			return scoreInput{turns: turns}, nil
		}
		if strings.TrimSpace(contents[0]) == "" {
			return scoreInput{}, fmt.Errorf("answer file is empty")
		}
		return scoreInput{answer: contents[0]}, nil
	}

	logDetails := func(input scoreInput, cfg common.CommandConfig) {
		if isTranscript {
			logger.Info("Starting session scoring",
				"turns", len(input.turns),
				"output_format", cfg.OutputFormat)
		} else {
			logger.Info("Starting response scoring",
				"answer_chars", len(input.answer),
				"output_format", cfg.OutputFormat)
		}
	}

	scoreOperation := func(ctx context.Context, input scoreInput) (any, error) {
		if isTranscript {
			result := rubric.ScoreSession(input.turns)
			if !cfg.Scoring.IncludeIndividualScores {
				result.IndividualScores = nil
			}
			return result, nil
		}
		return rubric.ScoreResponse(input.answer), nil
	}

	err = common.RunFileCommand(
		cmd.Context(),
		logger,
		scoreConfig,
		args,
		createInput,
		scoreOperation,
		logDetails,
	)

	if err != nil {
		return fmt.Errorf("failed to score input: %w", err)
	}
	logger.Info("Scoring completed successfully")
	return nil
}
