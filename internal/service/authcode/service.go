package authcode

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"mogilev-express/internal/apperr"
	"mogilev-express/internal/domain"
	"mogilev-express/internal/logx"
)

// accountsRepository defines storage operations required by the auth flow.
type accountsRepository interface {
	Get(ctx context.Context, phone string) (*domain.Account, error)
	CreateIfAbsent(ctx context.Context, a *domain.Account) (bool, error)
}

// Notifier delivers a login code to the user's messaging identity.
type Notifier interface {
	SendCode(ctx context.Context, chatID int64, code string) error
}

// NopNotifier drops codes; used when the bot is not configured.
type NopNotifier struct{}

// SendCode does nothing.
func (NopNotifier) SendCode(context.Context, int64, string) error { return nil }

// Config stores code and token settings.
type Config struct {
	CodeTTL   time.Duration
	JWTSecret string
	TokenTTL  time.Duration
}

// Service issues one-time login codes on contact-share and exchanges
// them for signed tokens. Codes live in Redis under a TTL, so an
// unused code expires on its own.
type Service struct {
	rdb      *redis.Client
	accounts accountsRepository
	notifier Notifier
	cfg      Config
	logger   logx.Logger
	now      func() time.Time
	genCode  func() (string, error)
}

// NewService creates a new authcode Service.
func NewService(rdb *redis.Client, accounts accountsRepository, notifier Notifier, cfg Config, logger logx.Logger) *Service {
	if cfg.CodeTTL <= 0 {
		cfg.CodeTTL = 5 * time.Minute
	}
	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = 24 * time.Hour
	}
	if notifier == nil {
		notifier = NopNotifier{}
	}
	return &Service{
		rdb:      rdb,
		accounts: accounts,
		notifier: notifier,
		cfg:      cfg,
		logger:   logger,
		now:      func() time.Time { return time.Now().UTC() },
		genCode:  fourDigitCode,
	}
}

func codeKey(phone string) string { return "authcode:" + phone }

// fourDigitCode returns a random code in [1000, 9999].
func fourDigitCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(9000))
	if err != nil {
		return "", fmt.Errorf("generate code: %w", err)
	}
	return fmt.Sprintf("%d", 1000+n.Int64()), nil
}

// Issue creates the account on first contact-share and sends a fresh
// one-time code. A repeated issue overwrites the previous code.
func (s *Service) Issue(ctx context.Context, phone string, telegramID int64) error {
	if !domain.ValidatePhone(phone) {
		return apperr.ErrInvalid
	}

	created, err := s.accounts.CreateIfAbsent(ctx, &domain.Account{
		Phone:      phone,
		Role:       domain.RoleClient,
		Balance:    decimal.Zero,
		TelegramID: telegramID,
	})
	if err != nil {
		return err
	}
	if created {
		s.logger.Info("account created",
			logx.String("event", "account_created"),
			logx.String("phone", phone),
		)
	}

	code, err := s.genCode()
	if err != nil {
		return err
	}

	if err := s.rdb.Set(ctx, codeKey(phone), code, s.cfg.CodeTTL).Err(); err != nil {
		return fmt.Errorf("store auth code: %w", err)
	}

	if err := s.notifier.SendCode(ctx, telegramID, code); err != nil {
		// код не доставлен — убираем, чтобы им нельзя было войти
		s.rdb.Del(ctx, codeKey(phone))
		return fmt.Errorf("send auth code: %w", err)
	}

	return nil
}

// LoginResult carries the signed token and the account it belongs to.
type LoginResult struct {
	Token   string
	Account domain.Account
}

// Login exchanges a valid code for a signed token. The code is
// one-shot: GETDEL consumes it atomically on the first attempt, so two
// racing logins cannot both pass the comparison, and a wrong guess
// burns the code (the user shares the contact again for a fresh one).
func (s *Service) Login(ctx context.Context, phone, code string) (LoginResult, error) {
	if !domain.ValidatePhone(phone) || code == "" {
		return LoginResult{}, apperr.ErrInvalid
	}

	stored, err := s.rdb.GetDel(ctx, codeKey(phone)).Result()
	if err == redis.Nil {
		return LoginResult{}, apperr.ErrNotFound
	}
	if err != nil {
		return LoginResult{}, fmt.Errorf("read auth code: %w", err)
	}
	if stored != code {
		return LoginResult{}, apperr.ErrInvalid
	}

	acc, err := s.accounts.Get(ctx, phone)
	if err != nil {
		return LoginResult{}, err
	}
	if acc == nil {
		return LoginResult{}, apperr.ErrNotFound
	}

	now := s.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  acc.Phone,
		"role": string(acc.Role),
		"iat":  now.Unix(),
		"exp":  now.Add(s.cfg.TokenTTL).Unix(),
	})
	signed, err := token.SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		return LoginResult{}, fmt.Errorf("sign token: %w", err)
	}

	s.logger.Info("login",
		logx.String("event", "login"),
		logx.String("phone", acc.Phone),
		logx.String("role", string(acc.Role)),
	)

	return LoginResult{Token: signed, Account: *acc}, nil
}
