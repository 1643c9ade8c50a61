package contact

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/starlinemember/portfolio-website/internal/mail"
	"github.com/starlinemember/portfolio-website/internal/security"
)

var (
	// ErrBot marks a submission identified as automated. The HTTP layer
	// answers as if it were accepted so the bot learns nothing.
	ErrBot = errors.New("automated submission")

	// ErrRateLimited marks a source that exceeded the submission ceiling.
	ErrRateLimited = errors.New("submission rate limit reached")

	// ErrContentRejected marks a message caught by the content filter.
	ErrContentRejected = errors.New("message content rejected")
)

// Gate runs every check a submission must pass before any collaborator is
// invoked: honeypot, token, rate ceiling, content filter, field bounds.
type Gate struct {
	tokens  *TokenStore
	limiter *security.WindowLimiter
	mailer  mail.Sender
	repo    *Repo
}

func NewGate(tokens *TokenStore, limiter *security.WindowLimiter, mailer mail.Sender, repo *Repo) *Gate {
	return &Gate{
		tokens:  tokens,
		limiter: limiter,
		mailer:  mailer,
		repo:    repo,
	}
}

// Submit validates sub and, on acceptance, dispatches the mail and stores
// the message. Persistence is best-effort: a store failure after a
// successful send is logged, not rolled back.
func (g *Gate) Submit(ctx context.Context, sub Submission, ip, userAgent string) (*Message, error) {
	// Honeypot first: a populated hidden field means a bot filled the whole
	// form.
	if sub.Website != "" {
		log.Printf("contact: honeypot tripped ip=%s", ip)
		return nil, ErrBot
	}

	if !g.tokens.Consume(ctx, sub.Token) {
		log.Printf("contact: missing or reused form token ip=%s", ip)
		return nil, ErrBot
	}

	if !g.limiter.Allow(ctx, ip) {
		log.Printf("contact: rate limit reached ip=%s", ip)
		return nil, ErrRateLimited
	}

	sub.sanitize()

	if res := CheckContent(sub.Message); !res.OK {
		log.Printf("contact: content filter rejected ip=%s reason=%s", ip, res.Reason)
		return nil, ErrContentRejected
	}

	if err := sub.validateFields(); err != nil {
		return nil, err
	}

	err := g.mailer.Send(ctx, mail.TemplateParams{
		FromName:  sub.Name,
		FromEmail: sub.Email,
		Subject:   sub.Subject,
		Message:   sub.Message,
		ReplyTo:   sub.Email,
	})
	if err != nil {
		return nil, fmt.Errorf("send contact mail: %w", err)
	}

	msg, err := g.repo.Insert(ctx, sub, userAgent)
	if err != nil {
		// The visitor's mail already went out; losing the stored copy is
		// acceptable.
		log.Printf("contact: store message failed (mail already sent): %v", err)
		return &Message{
			Name:      sub.Name,
			Email:     sub.Email,
			Subject:   sub.Subject,
			Body:      sub.Message,
			UserAgent: userAgent,
		}, nil
	}

	return msg, nil
}
