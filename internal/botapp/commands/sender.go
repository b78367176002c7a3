package commands

import (
	"context"
	"fmt"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"golang.org/x/time/rate"
)

// Sender is the part of *bot.Bot the handlers use.
type Sender interface {
	SendMessage(ctx context.Context, params *bot.SendMessageParams) (*models.Message, error)
	AnswerCallbackQuery(ctx context.Context, params *bot.AnswerCallbackQueryParams) (bool, error)
	SendChatAction(ctx context.Context, params *bot.SendChatActionParams) (bool, error)
}

// Throttle keeps outgoing calls under a global rate so bursts of joins or
// follow-ups stay inside Telegram's flood limits.
type Throttle struct {
	next    Sender
	limiter *rate.Limiter
}

// NewThrottle wraps next with a limiter of perSecond calls and an equal burst.
func NewThrottle(next Sender, perSecond float64) *Throttle {
	if perSecond <= 0 {
		perSecond = 25
	}
	burst := int(perSecond)
	if burst < 1 {
		burst = 1
	}
	return &Throttle{
		next:    next,
		limiter: rate.NewLimiter(rate.Limit(perSecond), burst),
	}
}

func (t *Throttle) wait(ctx context.Context) error {
	if err := t.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("send throttle: %w", err)
	}
	return nil
}

func (t *Throttle) SendMessage(ctx context.Context, params *bot.SendMessageParams) (*models.Message, error) {
	if err := t.wait(ctx); err != nil {
		return nil, err
	}
	return t.next.SendMessage(ctx, params)
}

func (t *Throttle) AnswerCallbackQuery(ctx context.Context, params *bot.AnswerCallbackQueryParams) (bool, error) {
	if err := t.wait(ctx); err != nil {
		return false, err
	}
	return t.next.AnswerCallbackQuery(ctx, params)
}

func (t *Throttle) SendChatAction(ctx context.Context, params *bot.SendChatActionParams) (bool, error) {
	if err := t.wait(ctx); err != nil {
		return false, err
	}
	return t.next.SendChatAction(ctx, params)
}
