// Package narrative turns resolved actions into dispatch reports: the short
// prose paragraphs a governor reads after an agent returns from the field.
//
// When an Anthropic API key is configured the report is generated by the
// model named in the configuration; otherwise a deterministic template
// writer produces serviceable prose so the game never blocks on the API.
package narrative

import (
	"context"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"go.uber.org/zap"

	"github.com/cory-johannsen/charter/internal/config"
	"github.com/cory-johannsen/charter/internal/game/action"
)

const systemPrompt = "You write terse dispatch reports from agents of a " +
	"17th-century colonial trading company to their governor. Two or three " +
	"sentences, period voice, no preamble, no modern idiom. Report only what " +
	"happened; do not invent numbers or names beyond those given."

// Dispatch describes one resolved action for the report writer.
type Dispatch struct {
	Turn       int
	ActorName  string
	ActionName string
	Location   string
	Outcome    action.Outcome
	FinalFace  int
}

// Writer produces dispatch reports.
type Writer struct {
	client    anthropic.Client
	enabled   bool
	model     string
	maxTokens int64
	logger    *zap.Logger
}

// NewWriter builds a report writer from the narrative configuration.
//
// Postcondition: Generate never fails; if the API is disabled, unreachable,
// or misconfigured, the template fallback is used instead.
func NewWriter(cfg config.NarrativeConfig, logger *zap.Logger) *Writer {
	if logger == nil {
		panic("narrative: logger must not be nil")
	}
	w := &Writer{
		enabled:   cfg.Enabled && cfg.APIKey != "",
		model:     cfg.Model,
		maxTokens: int64(cfg.MaxTokens),
		logger:    logger,
	}
	if w.enabled {
		w.client = anthropic.NewClient(option.WithAPIKey(cfg.APIKey))
	}
	return w
}

// Enabled reports whether the API-backed writer is active.
func (w *Writer) Enabled() bool { return w.enabled }

// Generate returns a dispatch report for the given action resolution.
func (w *Writer) Generate(ctx context.Context, d Dispatch) string {
	if !w.enabled {
		return w.template(d)
	}
	msg, err := w.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(w.model),
		MaxTokens: w.maxTokens,
		System: []anthropic.TextBlockParam{
			{Text: systemPrompt},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(w.prompt(d))),
		},
	})
	if err != nil {
		w.logger.Warn("dispatch generation failed, using template",
			zap.String("actor", d.ActorName),
			zap.Error(err))
		return w.template(d)
	}
	var sb strings.Builder
	for _, block := range msg.Content {
		sb.WriteString(block.Text)
	}
	text := strings.TrimSpace(sb.String())
	if text == "" {
		return w.template(d)
	}
	return text
}

func (w *Writer) prompt(d Dispatch) string {
	return fmt.Sprintf(
		"Turn %d. Agent: %s. Undertaking: %s at %s. The attempt was a %s.",
		d.Turn, d.ActorName, d.ActionName, d.Location, d.Outcome)
}

// template is the deterministic fallback writer.
func (w *Writer) template(d Dispatch) string {
	var verdict string
	switch d.Outcome {
	case action.CritSuccess:
		verdict = "succeeded beyond all expectation"
	case action.Success:
		verdict = "succeeded"
	case action.Failure:
		verdict = "come to nothing"
	case action.CritFailure:
		verdict = "ended in disaster"
	default:
		verdict = "concluded"
	}
	return fmt.Sprintf("Turn %d, from %s: the %s undertaken by %s has %s.",
		d.Turn, d.Location, d.ActionName, d.ActorName, verdict)
}
