package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/starlinemember/portfolio-website/config"
	"github.com/starlinemember/portfolio-website/internal/mail"
)

var (
	// ErrAccessDenied is returned when the provider accepts the credentials
	// but no active admin membership exists.
	ErrAccessDenied = errors.New("Access denied: Admin privileges required")

	// ErrIPBlocked is returned before the provider is even consulted.
	ErrIPBlocked = errors.New("too many failed attempts, try again later")

	// ErrBadCode is returned for a wrong or expired second-factor code.
	ErrBadCode = errors.New("invalid verification code")
)

// Store is the persistence surface the service needs; *Repo implements it.
type Store interface {
	GetActiveAdminByEmail(ctx context.Context, email string) (*AdminUser, error)
	GetAdminByID(ctx context.Context, id uuid.UUID) (*AdminUser, error)
	CreateSession(ctx context.Context, token string, adminID uuid.UUID, verified bool, ttl time.Duration) (*Session, error)
	GetSession(ctx context.Context, token string) (*Session, error)
	MarkSessionVerified(ctx context.Context, token string) (bool, error)
	DeleteSession(ctx context.Context, token string) error
}

// AttemptLog records login attempts; security.AttemptRepo implements it.
type AttemptLog interface {
	Record(ctx context.Context, email, ip string, success bool) error
	CountRecentFailures(ctx context.Context, ip string, window time.Duration) (int, error)
}

// Blocklist manages blocked source addresses; security.Blocklist
// implements it.
type Blocklist interface {
	IsBlocked(ctx context.Context, ip string) (bool, error)
	Block(ctx context.Context, ip, reason string, duration time.Duration) error
}

// Service is the session gate: provider sign-in, admin membership, second
// factor, session lifecycle, failed-attempt accounting.
type Service struct {
	provider  Provider
	repo      Store
	codes     *CodeStore
	attempts  AttemptLog
	blocklist Blocklist
	mailer    mail.Sender
	cfg       config.SecurityConfig
}

func NewService(provider Provider, repo Store, codes *CodeStore,
	attempts AttemptLog, blocklist Blocklist,
	mailer mail.Sender, cfg config.SecurityConfig) *Service {
	return &Service{
		provider:  provider,
		repo:      repo,
		codes:     codes,
		attempts:  attempts,
		blocklist: blocklist,
		mailer:    mailer,
		cfg:       cfg,
	}
}

// LoginResult carries the new session and whether a second factor is still
// outstanding.
type LoginResult struct {
	Session     *Session
	Admin       *AdminUser
	RequiresTwo bool
}

func (s *Service) Login(ctx context.Context, email, password, ip string) (*LoginResult, error) {
	blocked, err := s.blocklist.IsBlocked(ctx, ip)
	if err != nil {
		return nil, fmt.Errorf("blocklist check: %w", err)
	}
	if blocked {
		return nil, ErrIPBlocked
	}

	user, err := s.provider.SignInWithPassword(ctx, email, password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			s.recordFailure(ctx, email, ip)
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	admin, err := s.repo.GetActiveAdminByEmail(ctx, user.Email)
	if errors.Is(err, ErrNotAdmin) {
		// The provider let them in; we do not. Kill the provider session
		// before answering.
		if rerr := s.provider.RevokeSessions(ctx, user.UID); rerr != nil {
			log.Printf("auth: revoke sessions for %s: %v", user.UID, rerr)
		}
		s.recordFailure(ctx, email, ip)
		return nil, ErrAccessDenied
	}
	if err != nil {
		return nil, err
	}

	token, err := newSessionToken()
	if err != nil {
		return nil, err
	}

	verified := !s.cfg.TwoFactorEnabled
	session, err := s.repo.CreateSession(ctx, token, admin.ID, verified, s.cfg.SessionTTL)
	if err != nil {
		return nil, err
	}

	if s.cfg.TwoFactorEnabled {
		if err := s.dispatchCode(ctx, session.Token, admin); err != nil {
			// Without a delivered code the session is unusable; drop it.
			_ = s.repo.DeleteSession(ctx, session.Token)
			return nil, fmt.Errorf("dispatch verification code: %w", err)
		}
	}

	if err := s.attempts.Record(ctx, email, ip, true); err != nil {
		log.Printf("auth: record login attempt: %v", err)
	}

	return &LoginResult{
		Session:     session,
		Admin:       admin,
		RequiresTwo: s.cfg.TwoFactorEnabled,
	}, nil
}

// VerifyCode confirms the second factor and flips the session to verified.
func (s *Service) VerifyCode(ctx context.Context, token, code string) (*Session, error) {
	session, err := s.repo.GetSession(ctx, token)
	if err != nil {
		return nil, ErrBadCode
	}
	if session.Verified {
		return session, nil
	}

	ok, err := s.codes.Verify(ctx, token, code)
	if err != nil {
		return nil, fmt.Errorf("verify code: %w", err)
	}
	if !ok {
		return nil, ErrBadCode
	}

	if _, err := s.repo.MarkSessionVerified(ctx, token); err != nil {
		return nil, err
	}
	session.Verified = true
	return session, nil
}

func (s *Service) Logout(ctx context.Context, token string) error {
	return s.repo.DeleteSession(ctx, token)
}

// Check returns the live verified session for token, or an error for the
// middleware to translate.
func (s *Service) Check(ctx context.Context, token string) (*Session, *AdminUser, error) {
	session, err := s.repo.GetSession(ctx, token)
	if err != nil {
		return nil, nil, err
	}
	if !session.Verified {
		return nil, nil, errors.New("session not verified")
	}

	admin, err := s.repo.GetAdminByID(ctx, session.AdminID)
	if err != nil {
		return nil, nil, err
	}
	return session, admin, nil
}

func (s *Service) recordFailure(ctx context.Context, email, ip string) {
	if err := s.attempts.Record(ctx, email, ip, false); err != nil {
		log.Printf("auth: record failed attempt: %v", err)
		return
	}

	n, err := s.attempts.CountRecentFailures(ctx, ip, s.cfg.LoginFailureWindow)
	if err != nil {
		log.Printf("auth: count failures: %v", err)
		return
	}
	if n < s.cfg.LoginFailureLimit {
		return
	}

	if err := s.blocklist.Block(ctx, ip, "repeated failed logins", s.cfg.IPBlockDuration); err != nil {
		log.Printf("auth: block ip %s: %v", ip, err)
		return
	}
	log.Printf("auth: blocked ip %s after %d failed logins", ip, n)

	// Best-effort heads-up to the site owner.
	err = s.mailer.Send(ctx, mail.TemplateParams{
		FromName:  "Portfolio Security",
		FromEmail: "noreply@portfolio",
		Subject:   "Admin login blocked",
		Message:   fmt.Sprintf("IP %s was blocked after %d failed login attempts.", ip, n),
	})
	if err != nil {
		log.Printf("auth: blocked-ip notification: %v", err)
	}
}

func (s *Service) dispatchCode(ctx context.Context, token string, admin *AdminUser) error {
	code, err := s.codes.Issue(ctx, token)
	if err != nil {
		return err
	}

	return s.mailer.Send(ctx, mail.TemplateParams{
		FromName:  "Portfolio Security",
		FromEmail: "noreply@portfolio",
		Subject:   "Your admin verification code",
		Message:   fmt.Sprintf("Your verification code is %s. It expires in %s.", code, s.cfg.TwoFactorTTL),
		ToEmail:   admin.Email,
	})
}

func newSessionToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
