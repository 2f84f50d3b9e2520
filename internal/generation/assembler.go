// Package generation assembles content proposals in a user's voice by
// composing prompt context from voice analysis, file content, analytics,
// and calendar hints, then delegating text generation to an LLM client.
package generation

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/jonathan/voice-agent/internal/llm"
	"github.com/jonathan/voice-agent/internal/prompts"
	"github.com/jonathan/voice-agent/internal/threads"
	"github.com/jonathan/voice-agent/internal/types"
	"github.com/jonathan/voice-agent/internal/virality"
)

const (
	defaultThreadCount = 5

	// Responses to an original post read better with a bit more spontaneity.
	standaloneTemperature = 0.85
	responseTemperature   = 0.9
)

// ContentSource supplies summarized text from user-provided content files.
type ContentSource interface {
	ContentSummary() (string, error)
}

// InsightsSource supplies a bounded engagement-analytics summary.
type InsightsSource interface {
	InsightsSummary() string
}

// ScheduleSource supplies calendar hints and candidate publish dates.
type ScheduleSource interface {
	ScheduleHints() string
	SuggestDates(count int) []time.Time
}

// Options controls a single proposal-generation run.
type Options struct {
	ContentType  types.ContentType
	Count        int
	Topic        string
	OriginalPost string
	ThreadCount  int
	Vibe         string
	UseContent   bool
	UseAnalytics bool
	UseCalendar  bool
}

// Assembler builds content proposals for a single analyzed voice profile.
type Assembler struct {
	client   llm.Client
	profile  *types.VoiceProfile
	content  ContentSource
	insights InsightsSource
	schedule ScheduleSource
	scorer   *virality.Scorer
}

// NewAssembler creates an assembler. The content, insights, and schedule
// sources are optional; pass nil to skip that context.
func NewAssembler(client llm.Client, profile *types.VoiceProfile, content ContentSource, insights InsightsSource, schedule ScheduleSource) *Assembler {
	return &Assembler{
		client:   client,
		profile:  profile,
		content:  content,
		insights: insights,
		schedule: schedule,
		scorer:   virality.NewScorer(),
	}
}

// Generate produces opts.Count content proposals.
func (a *Assembler) Generate(ctx context.Context, opts Options) ([]types.ContentProposal, error) {
	if opts.Count < 1 {
		opts.Count = 1
	}
	if opts.ThreadCount < 1 {
		opts.ThreadCount = defaultThreadCount
	}

	log.Printf("[generation] generating %d %s proposal(s) (content: %t, analytics: %t, calendar: %t)",
		opts.Count, opts.ContentType, opts.UseContent, opts.UseAnalytics, opts.UseCalendar)

	contextText, basedOn, err := a.composeContext(opts)
	if err != nil {
		return nil, err
	}
	voiceSummary := FormatVoiceProfile(a.profile)

	var suggestedDates []time.Time
	if opts.UseCalendar && a.schedule != nil {
		suggestedDates = a.schedule.SuggestDates(opts.Count)
	}

	proposals := make([]types.ContentProposal, 0, opts.Count)
	for i := 0; i < opts.Count; i++ {
		raw, err := a.generateText(ctx, voiceSummary, contextText, opts)
		if err != nil {
			return nil, err
		}

		proposal := types.ContentProposal{
			ContentType: opts.ContentType,
			Rationale:   fmt.Sprintf("Generated based on voice analysis and %s", strings.Join(basedOn, ", ")),
			BasedOn:     basedOn,
		}
		if opts.ContentType == types.ContentTypeThread {
			proposal.Segments = threads.Parse(raw)
		} else {
			proposal.Content = firstSubstantialLine(raw)
		}
		if i < len(suggestedDates) {
			date := suggestedDates[i]
			proposal.SuggestedDate = &date
		}
		proposals = append(proposals, proposal)
	}
	return proposals, nil
}

// ScoreProposals attaches a virality prediction to each proposal.
func (a *Assembler) ScoreProposals(proposals []types.ContentProposal) {
	for i := range proposals {
		result := a.scorer.Score(proposals[i].Texts(), proposals[i].ContentType)
		proposals[i].Engagement = map[string]any{
			"virality_score": result.Score,
			"components":     result.Components,
			"notes":          result.Notes,
		}
	}
}

func (a *Assembler) generateText(ctx context.Context, voiceSummary, contextText string, opts Options) (string, error) {
	systemKey := "system-standalone"
	temperature := standaloneTemperature
	if opts.OriginalPost != "" {
		systemKey = "system-response"
		temperature = responseTemperature
	}
	system, err := prompts.Get("generation.json", systemKey)
	if err != nil {
		return "", err
	}

	instruction, err := a.instruction(opts)
	if err != nil {
		return "", err
	}

	userKey := "user-single"
	if opts.ContentType == types.ContentTypeThread {
		userKey = "user-thread"
	}
	template, err := prompts.Get("generation.json", userKey)
	if err != nil {
		return "", err
	}
	prompt := prompts.Format(template, map[string]string{
		"Voice":       voiceSummary,
		"Context":     contextText,
		"Instruction": instruction,
		"Count":       strconv.Itoa(opts.ThreadCount),
	})

	raw, err := a.client.Generate(ctx, prompt, system, temperature)
	if err != nil {
		return "", err
	}
	return llm.StripFences(raw), nil
}

func (a *Assembler) instruction(opts Options) (string, error) {
	key := "instruction-tweet"
	switch opts.ContentType {
	case types.ContentTypeThread:
		key = "instruction-thread"
	case types.ContentTypeReply:
		key = "instruction-reply"
	case types.ContentTypeQuote:
		key = "instruction-quote"
	}
	template, err := prompts.Get("generation.json", key)
	if err != nil {
		return "", err
	}
	return prompts.Format(template, map[string]string{
		"Count": strconv.Itoa(opts.ThreadCount),
	}), nil
}

// composeContext gathers the optional context blocks and reports which
// sources contributed, for the proposal rationale.
func (a *Assembler) composeContext(opts Options) (string, []string, error) {
	var parts []string
	var basedOn []string

	if opts.OriginalPost != "" {
		parts = append(parts, fmt.Sprintf("ORIGINAL POST (respond to this topic naturally, don't rephrase):\n%s\n", opts.OriginalPost))
	}
	if opts.Topic != "" {
		// Long topics carry researched context rather than a bare subject.
		if strings.Contains(opts.Topic, "Topic:") || len(opts.Topic) > 200 {
			parts = append(parts, fmt.Sprintf("TOPIC INFORMATION:\n%s\n\nGenerate a post about this topic in the user's voice.", opts.Topic))
		} else {
			parts = append(parts, fmt.Sprintf("TOPIC TO WRITE ABOUT:\n%s\n\nGenerate a post about this topic in the user's voice.", opts.Topic))
		}
	}

	if opts.UseContent && a.content != nil {
		summary, err := a.content.ContentSummary()
		if err != nil {
			return "", nil, fmt.Errorf("failed to load content context: %w", err)
		}
		if summary != "" {
			parts = append(parts, fmt.Sprintf("User-provided content context:\n%s", summary))
		}
		basedOn = append(basedOn, "content")
	}
	if opts.UseAnalytics && a.insights != nil {
		if insights := a.insights.InsightsSummary(); insights != "" {
			parts = append(parts, fmt.Sprintf("Engagement analytics insights:\n%s", insights))
		}
		basedOn = append(basedOn, "analytics")
	}
	if opts.UseCalendar && a.schedule != nil {
		if hints := a.schedule.ScheduleHints(); hints != "" {
			parts = append(parts, fmt.Sprintf("Calendar/scheduling hints:\n%s", hints))
		}
		basedOn = append(basedOn, "calendar")
	}

	parts = append(parts, fmt.Sprintf("ENGAGEMENT STRATEGY:\n%s", EngagementStrategy(opts.ContentType)))

	if opts.Vibe != "" {
		parts = append(parts, fmt.Sprintf("VIBE/MOOD TO MATCH: %s\n\nWrite in this specific vibe/mood while maintaining the user's natural voice and style.", opts.Vibe))
	}

	if len(basedOn) == 0 {
		basedOn = append(basedOn, "voice profile")
	}
	return strings.Join(parts, "\n\n"), basedOn, nil
}

// firstSubstantialLine strips stray numbering from single-post output and
// returns the first real line.
func firstSubstantialLine(text string) string {
	text = strings.TrimSpace(text)
	lines := strings.Split(text, "\n")
	if len(lines) > 1 {
		for _, line := range lines {
			line = strings.TrimSpace(line)
			if line == "" {
				continue
			}
			if line[0] >= '0' && line[0] <= '9' {
				continue
			}
			return line
		}
	}
	return text
}
