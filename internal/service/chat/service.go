// Package chat relays visitor conversations with the digital twin to an LLM.
package chat

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/heartmarshall/twin-backend/internal/domain"
)

const (
	// MaxContentLen caps a single message.
	MaxContentLen = 4000
	// NoResponse replaces an empty upstream reply.
	NoResponse = "no response"
)

// Outcome labels reported to the outcome recorder.
const (
	OutcomeOK       = "ok"
	OutcomeEmpty    = "empty"
	OutcomeInvalid  = "invalid"
	OutcomeUpstream = "upstream_error"
)

type completer interface {
	Complete(ctx context.Context, system string, msgs []domain.ChatMessage) (string, error)
}

type outcomeRecorder interface {
	ChatOutcome(outcome string)
}

// Config holds the relay settings.
type Config struct {
	SystemPrompt string
	MaxHistory   int
}

// Service validates a conversation and forwards it upstream.
type Service struct {
	llm      completer
	cfg      Config
	outcomes outcomeRecorder
	log      *slog.Logger
}

// NewService creates a chat service. A nil llm disables the relay: every
// Reply fails with domain.ErrUpstream. outcomes may be nil.
func NewService(log *slog.Logger, llm completer, cfg Config, outcomes outcomeRecorder) *Service {
	if cfg.MaxHistory <= 0 {
		cfg.MaxHistory = 20
	}
	return &Service{
		llm:      llm,
		cfg:      cfg,
		outcomes: outcomes,
		log:      log.With("service", "chat"),
	}
}

func (s *Service) record(outcome string) {
	if s.outcomes != nil {
		s.outcomes.ChatOutcome(outcome)
	}
}

// Reply returns the twin's answer to the conversation.
func (s *Service) Reply(ctx context.Context, msgs []domain.ChatMessage) (string, error) {
	if err := validate(msgs); err != nil {
		s.record(OutcomeInvalid)
		return "", err
	}

	if s.llm == nil {
		s.record(OutcomeUpstream)
		return "", fmt.Errorf("chat relay: %w", domain.ErrUpstream)
	}

	window := s.window(msgs)
	reply, err := s.llm.Complete(ctx, s.cfg.SystemPrompt, window)
	if err != nil {
		s.record(OutcomeUpstream)
		s.log.ErrorContext(ctx, "chat completion failed",
			slog.Int("messages", len(window)),
			slog.String("error", err.Error()),
		)
		return "", fmt.Errorf("chat completion: %w: %w", domain.ErrUpstream, err)
	}

	if strings.TrimSpace(reply) == "" {
		s.record(OutcomeEmpty)
		return NoResponse, nil
	}

	s.record(OutcomeOK)
	return reply, nil
}

// window keeps the last MaxHistory messages, starting with a user message.
func (s *Service) window(msgs []domain.ChatMessage) []domain.ChatMessage {
	if len(msgs) > s.cfg.MaxHistory {
		msgs = msgs[len(msgs)-s.cfg.MaxHistory:]
	}
	for len(msgs) > 1 && msgs[0].Role != domain.ChatRoleUser {
		msgs = msgs[1:]
	}
	return msgs
}

func validate(msgs []domain.ChatMessage) error {
	if len(msgs) == 0 {
		return domain.NewValidationError("messages", "required")
	}

	var errs []domain.FieldError
	for i, m := range msgs {
		field := fmt.Sprintf("messages[%d]", i)
		switch m.Role {
		case domain.ChatRoleUser, domain.ChatRoleAssistant:
		case domain.ChatRoleSystem:
			errs = append(errs, domain.FieldError{Field: field + ".role", Message: "system messages are not accepted"})
		default:
			errs = append(errs, domain.FieldError{Field: field + ".role", Message: "must be user or assistant"})
		}
		if strings.TrimSpace(m.Content) == "" {
			errs = append(errs, domain.FieldError{Field: field + ".content", Message: "required"})
		}
		if utf8.RuneCountInString(m.Content) > MaxContentLen {
			errs = append(errs, domain.FieldError{Field: field + ".content", Message: fmt.Sprintf("max %d characters", MaxContentLen)})
		}
	}

	if last := msgs[len(msgs)-1]; last.Role != domain.ChatRoleUser {
		errs = append(errs, domain.FieldError{Field: "messages", Message: "last message must be from the user"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}
