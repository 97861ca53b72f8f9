package auth

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const codeDigits = 1000000

// Sender dispatches a one-time code to its channel. The real SMS/email
// integration lives behind this interface; the shipped implementation only
// logs, which is all dev and tests need.
type Sender interface {
	Send(ctx context.Context, channel, code string) error
}

type LogSender struct {
	Log *zap.Logger
}

func (s LogSender) Send(ctx context.Context, channel, code string) error {
	if s.Log != nil {
		s.Log.Info("otp dispatched", zap.String("channel", channel))
	}
	return nil
}

// OTP implements the one-time-code login flow: request generates and
// dispatches a short-lived code, verify exchanges it for a user identity.
type OTP struct {
	Codes       CodeStore
	Users       UserStore
	Sender      Sender
	Log         *zap.Logger
	TTL         time.Duration
	MaxAttempts int
}

// Request issues a fresh code for channel. The plaintext code is returned so
// the handler can decide whether to expose it (dev mode only).
func (o *OTP) Request(ctx context.Context, channel string) (string, error) {
	channel = NormalizeChannel(channel)

	code, err := generateCode()
	if err != nil {
		return "", err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}

	if err := o.Codes.Save(ctx, channel, hash, o.TTL); err != nil {
		return "", err
	}
	if err := o.Sender.Send(ctx, channel, code); err != nil {
		// The code is already stored and valid; a failed dispatch is
		// logged but does not invalidate it.
		if o.Log != nil {
			o.Log.Warn("otp dispatch failed", zap.Error(err), zap.String("channel", channel))
		}
	}
	return code, nil
}

// Verify checks the code, consumes it on success, and resolves (or creates)
// the user behind the channel.
func (o *OTP) Verify(ctx context.Context, channel, code string) (User, error) {
	channel = NormalizeChannel(channel)

	tries, err := o.Codes.Bump(ctx, channel)
	if err != nil {
		return User{}, err
	}
	if tries > o.MaxAttempts {
		return User{}, ErrTooManyTries
	}

	hash, ok, err := o.Codes.Get(ctx, channel)
	if err != nil {
		return User{}, err
	}
	if !ok {
		return User{}, ErrCodeExpired
	}

	if bcrypt.CompareHashAndPassword(hash, []byte(code)) != nil {
		return User{}, ErrCodeMismatch
	}

	if err := o.Codes.Delete(ctx, channel); err != nil {
		return User{}, err
	}

	u, found, err := o.Users.Resolve(ctx, channel)
	if err != nil {
		return User{}, err
	}
	if !found {
		u = User{ID: "u_" + uuid.NewString(), Channel: channel}
		if err := o.Users.Create(ctx, u); err != nil {
			return User{}, err
		}
	}
	return u, nil
}

func NormalizeChannel(channel string) string {
	return strings.ToLower(strings.TrimSpace(channel))
}

func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(codeDigits))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
