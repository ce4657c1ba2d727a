package challenge

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"github.com/folio/portfolio-cms/internal/config"
	"github.com/folio/portfolio-cms/internal/util"
)

var (
	// ErrUnauthorized covers a foreign identity, a bad or expired code and
	// a missing credential alike. Callers must not tell them apart.
	ErrUnauthorized = errors.New("unauthorized")
	ErrRateLimited  = errors.New("challenge rate limit exceeded")
	// ErrNotification wraps a notifier failure. The code stays stored and
	// lapses on its own after the TTL.
	ErrNotification = errors.New("challenge notification failed")
)

// Notifier delivers a plain code to its owner.
type Notifier interface {
	SendCode(ctx context.Context, to, code string) error
}

type Service struct {
	store         Store
	notifier      Notifier
	limiter       Limiter
	adminIdentity string
	credential    string
	ttl           time.Duration
	hashCost      int
	now           func() time.Time
}

type Option func(*Service)

func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func WithTTL(ttl time.Duration) Option {
	return func(s *Service) { s.ttl = ttl }
}

func WithHashCost(cost int) Option {
	return func(s *Service) { s.hashCost = cost }
}

func WithLimiter(l Limiter) Option {
	return func(s *Service) { s.limiter = l }
}

func NewService(store Store, notifier Notifier, adminIdentity, credential string, opts ...Option) *Service {
	s := &Service{
		store:         store,
		notifier:      notifier,
		adminIdentity: adminIdentity,
		credential:    credential,
		ttl:           config.ChallengeTTL,
		hashCost:      bcrypt.DefaultCost,
		now:           time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// isAdmin is an allow-list of one. An unset admin identity admits nobody.
func (s *Service) isAdmin(identity string) bool {
	return s.adminIdentity != "" && identity == s.adminIdentity
}

// IssueChallenge stores a fresh code for the admin identity, replacing any
// earlier one, and hands it to the notifier.
func (s *Service) IssueChallenge(ctx context.Context, identity string) error {
	if !s.isAdmin(identity) {
		outcomes.WithLabelValues("issue", "unauthorized").Inc()
		return ErrUnauthorized
	}

	if s.limiter != nil {
		if allowed, resetAt := s.limiter.Allow(ctx, identity); !allowed {
			outcomes.WithLabelValues("issue", "rate_limited").Inc()
			log.Warn().Time("resetAt", resetAt).Msg("challenge issue rate limited")
			return ErrRateLimited
		}
	}

	code, err := util.GenerateNumericCode()
	if err != nil {
		return err
	}
	hash, err := util.HashCode(code, s.hashCost)
	if err != nil {
		return err
	}

	rec := Record{
		Identity:  identity,
		CodeHash:  hash,
		ExpiresAt: s.now().Add(s.ttl),
	}
	if err := s.store.Put(ctx, rec, s.ttl); err != nil {
		return fmt.Errorf("store challenge: %w", err)
	}

	if err := s.notifier.SendCode(ctx, identity, code); err != nil {
		outcomes.WithLabelValues("issue", "notify_failed").Inc()
		return fmt.Errorf("%w: %w", ErrNotification, err)
	}

	outcomes.WithLabelValues("issue", "sent").Inc()
	log.Info().
		Str("identity", util.MaskEmail(identity)).
		Time("expiresAt", rec.ExpiresAt).
		Msg("login challenge issued")
	return nil
}

// RedeemChallenge consumes the stored code for identity. An expired record
// is purged on sight; a wrong code leaves the record for another try.
func (s *Service) RedeemChallenge(ctx context.Context, identity, code string) (bool, error) {
	rec, err := s.store.Get(ctx, identity)
	if err != nil {
		return false, fmt.Errorf("load challenge: %w", err)
	}
	if rec == nil {
		outcomes.WithLabelValues("redeem", "absent").Inc()
		return false, nil
	}

	if rec.Expired(s.now()) {
		if _, err := s.store.Remove(ctx, *rec); err != nil {
			return false, fmt.Errorf("purge expired challenge: %w", err)
		}
		outcomes.WithLabelValues("redeem", "expired").Inc()
		return false, nil
	}

	if !util.IsNumericCode(code) || !util.CheckCodeHash(code, rec.CodeHash) {
		outcomes.WithLabelValues("redeem", "mismatch").Inc()
		return false, nil
	}

	won, err := s.store.Remove(ctx, *rec)
	if err != nil {
		return false, fmt.Errorf("consume challenge: %w", err)
	}
	if !won {
		outcomes.WithLabelValues("redeem", "lost_race").Inc()
		return false, nil
	}

	outcomes.WithLabelValues("redeem", "success").Inc()
	return true, nil
}

// Authorize trades a valid code for the static admin credential. It is
// the only way a credential leaves the server.
func (s *Service) Authorize(ctx context.Context, identity, code string) (string, error) {
	if !s.isAdmin(identity) {
		return "", ErrUnauthorized
	}
	if s.credential == "" {
		log.Error().Msg("ADMIN_SECRET is not configured, refusing login")
		return "", ErrUnauthorized
	}

	ok, err := s.RedeemChallenge(ctx, identity, code)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", ErrUnauthorized
	}
	return s.credential, nil
}
