package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/user/salesbot-service/internal/domain"
	"github.com/user/salesbot-service/internal/monitoring"
	"github.com/user/salesbot-service/internal/repository"
)

// Reply sources reported in metrics.
const (
	SourceLLM      = "llm"
	SourceTemplate = "template"
)

// Responder answers a visitor message about a product.
type Responder interface {
	Respond(ctx context.Context, message string, facts domain.ProductFacts, sessionID string) string
}

// ChatOptions configures a ChatUseCase.
type ChatOptions struct {
	// Completer is optional; without it every reply comes from templates.
	Completer repository.Completer
	// CompletionTimeout bounds a single completion call. Zero leaves it to the client.
	CompletionTimeout time.Duration
	Metrics           *monitoring.Metrics
	Logger            *zap.Logger
	Clock             func() time.Time
}

// ChatUseCase classifies messages, renders template replies and, when a
// completion service is configured, prefers its answer.
type ChatUseCase struct {
	sessions  repository.SessionRepository
	completer repository.Completer
	timeout   time.Duration
	metrics   *monitoring.Metrics
	logger    *zap.Logger
	now       func() time.Time
}

func NewChatUseCase(sessions repository.SessionRepository, opts ChatOptions) *ChatUseCase {
	uc := &ChatUseCase{
		sessions:  sessions,
		completer: opts.Completer,
		timeout:   opts.CompletionTimeout,
		metrics:   opts.Metrics,
		logger:    opts.Logger,
		now:       opts.Clock,
	}
	if uc.logger == nil {
		uc.logger = zap.NewNop()
	}
	if uc.now == nil {
		uc.now = time.Now
	}
	return uc
}

// Respond always returns a non-empty reply. Session and completion errors
// are logged and the template reply is used instead.
func (uc *ChatUseCase) Respond(ctx context.Context, message string, facts domain.ProductFacts, sessionID string) string {
	if sessionID == "" {
		sessionID = domain.DefaultSessionID
	}
	facts = facts.Normalize()

	userMsg := domain.Message{Role: domain.RoleUser, Text: message, Timestamp: uc.now()}
	history := uc.appendMessage(ctx, sessionID, userMsg).OrElse([]domain.Message{userMsg})

	intent := Classify(message)
	reply, source := RenderReply(intent, facts), SourceTemplate

	if uc.completer != nil {
		completion := uc.complete(ctx, facts, history, message)
		if completion.Err == nil {
			reply, source = completion.Value, SourceLLM
		} else {
			uc.metrics.IncCompletionFailure(completionErrorType(completion.Err))
			uc.logger.Warn("Completion failed, using template reply",
				zap.String("session_id", sessionID), zap.String("intent", string(intent)), zap.Error(completion.Err))
		}
	}

	uc.appendMessage(ctx, sessionID, domain.Message{Role: domain.RoleAgent, Text: reply, Timestamp: uc.now()})
	uc.metrics.IncChatReply(string(intent), source)
	uc.logger.Debug("Chat reply generated",
		zap.String("session_id", sessionID), zap.String("intent", string(intent)), zap.String("source", source))
	return reply
}

func (uc *ChatUseCase) appendMessage(ctx context.Context, sessionID string, msg domain.Message) Result[[]domain.Message] {
	history, err := uc.sessions.Append(ctx, sessionID, msg)
	if err != nil {
		uc.logger.Warn("Failed to update session history", zap.String("session_id", sessionID), zap.Error(err))
		return Fail[[]domain.Message](err)
	}
	return Ok(history)
}

func (uc *ChatUseCase) complete(ctx context.Context, facts domain.ProductFacts, history []domain.Message, message string) Result[string] {
	if uc.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, uc.timeout)
		defer cancel()
	}
	text, err := uc.completer.Complete(ctx, SystemInstruction, BuildPrompt(facts, history, message))
	if err != nil {
		return Fail[string](err)
	}
	if strings.TrimSpace(text) == "" {
		return Fail[string](repository.ErrEmptyCompletion)
	}
	return Ok(text)
}

func completionErrorType(err error) string {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	case errors.Is(err, repository.ErrEmptyCompletion):
		return "empty"
	case errors.Is(err, repository.ErrCompletionFailed):
		return "request"
	default:
		return "unknown"
	}
}
