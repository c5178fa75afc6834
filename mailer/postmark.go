package mailer

import (
	"context"
	"errors"
	"fmt"

	"github.com/mrz1836/postmark"
)

type postmarkSender struct {
	client *postmark.Client
	config Config
}

// NewPostmark creates a Postmark-backed link sender. All tokens are required
// for runtime operation - this enforces explicit configuration rather than
// silent failures in production.
func NewPostmark(cfg Config) (Sender, error) {
	if cfg.PostmarkServerToken == "" {
		return nil, fmt.Errorf("%w: PostmarkServerToken is required", ErrInvalidConfig)
	}
	if cfg.PostmarkAccountToken == "" {
		return nil, fmt.Errorf("%w: PostmarkAccountToken is required", ErrInvalidConfig)
	}
	if cfg.SenderEmail == "" {
		return nil, fmt.Errorf("%w: SenderEmail is required", ErrInvalidConfig)
	}
	if !emailRegex.MatchString(cfg.SenderEmail) {
		return nil, fmt.Errorf("%w: SenderEmail must be a valid email address", ErrInvalidConfig)
	}
	if cfg.SupportEmail != "" && !emailRegex.MatchString(cfg.SupportEmail) {
		return nil, fmt.Errorf("%w: SupportEmail must be a valid email address", ErrInvalidConfig)
	}

	return &postmarkSender{
		client: postmark.NewClient(cfg.PostmarkServerToken, cfg.PostmarkAccountToken),
		config: cfg,
	}, nil
}

// MustNewPostmark creates a Postmark sender that panics on invalid config.
// Fails fast during initialization rather than allowing a broken service to
// start.
func MustNewPostmark(cfg Config) Sender {
	sender, err := NewPostmark(cfg)
	if err != nil {
		panic(err)
	}
	return sender
}

// SendLink delivers the magic link via Postmark's transactional API. Link
// tracking is disabled: Postmark rewrites tracked URLs through its redirect
// domain, which would break the link if the rewrite is ever flagged or the
// redirect cached.
func (s *postmarkSender) SendLink(ctx context.Context, email, link string) error {
	if !emailRegex.MatchString(email) {
		return fmt.Errorf("%w: %q", ErrInvalidRecipient, email)
	}

	body, err := renderLinkEmail(s.config.ProductName, link)
	if err != nil {
		return errors.Join(ErrFailedToSendEmail, err)
	}

	resp, err := s.client.SendEmail(ctx, postmark.Email{
		From:       s.config.SenderEmail,
		ReplyTo:    s.config.SupportEmail,
		To:         email,
		Subject:    fmt.Sprintf("Sign in to %s", s.config.ProductName),
		Tag:        "magic-link",
		HTMLBody:   body,
		TrackOpens: true,
		TrackLinks: "None",
	})
	if err != nil {
		return errors.Join(ErrFailedToSendEmail, err)
	}
	if resp.ErrorCode > 0 {
		return errors.Join(
			ErrFailedToSendEmail,
			fmt.Errorf("postmark error: %d - %s", resp.ErrorCode, resp.Message),
		)
	}
	return nil
}
