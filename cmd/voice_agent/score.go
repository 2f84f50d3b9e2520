package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/jonathan/voice-agent/internal/types"
	"github.com/jonathan/voice-agent/internal/virality"
	"github.com/spf13/cobra"
)

var (
	scoreTexts []string
	scoreType  string
	scoreFile  string
)

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Estimate virality for content",
	Long:  "Scores content for estimated virality using engagement heuristics. Pass --text one or more times (multiple texts form a thread's segments) or --file to score a file's contents.",
	RunE:  runScore,
}

func init() {
	scoreCmd.Flags().StringArrayVar(&scoreTexts, "text", nil, "Text to score (repeat for thread segments)")
	scoreCmd.Flags().StringVarP(&scoreType, "type", "t", "tweet", "Content type: tweet, thread, reply, or quote")
	scoreCmd.Flags().StringVarP(&scoreFile, "file", "f", "", "Read the text to score from a file")
	rootCmd.AddCommand(scoreCmd)
}

func runScore(_ *cobra.Command, _ []string) error {
	contentType, err := types.ParseContentType(scoreType)
	if err != nil {
		return err
	}

	texts := scoreTexts
	if scoreFile != "" {
		raw, err := os.ReadFile(scoreFile)
		if err != nil {
			return fmt.Errorf("failed to read input file: %w", err)
		}
		if contentType == types.ContentTypeThread {
			for _, line := range strings.Split(string(raw), "\n") {
				if line = strings.TrimSpace(line); line != "" {
					texts = append(texts, line)
				}
			}
		} else {
			texts = append(texts, string(raw))
		}
	}
	if len(texts) == 0 {
		return fmt.Errorf("nothing to score: pass --text or --file")
	}

	result := virality.NewScorer().Score(texts, contentType)
	return printJSON(result)
}
