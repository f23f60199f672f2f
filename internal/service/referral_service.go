package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"

	"pixel_plaza/internal/config"
	"pixel_plaza/internal/domain"
	"pixel_plaza/internal/logger"
	"pixel_plaza/internal/repository"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrLevelTooLow     = errors.New("level too low for referral code")
	ErrInvalidCode     = errors.New("invalid referral code")
	ErrSelfReferral    = errors.New("cannot refer yourself")
	ErrAlreadyReferred = errors.New("user already has a referrer")
)

// Referral codes avoid 0/O and 1/I to survive being retyped from a screen.
const referralAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// ReferralService manages invite codes and the one-shot bonus ledger.
type ReferralService struct {
	db           *pgxpool.Pool
	users        *repository.UserRepository
	states       *repository.StateRepository
	transactions *repository.TransactionRepository
	tasks        *repository.TaskRepository
}

func NewReferralService(db *pgxpool.Pool) *ReferralService {
	return &ReferralService{
		db:           db,
		users:        repository.NewUserRepository(db),
		states:       repository.NewStateRepository(db),
		transactions: repository.NewTransactionRepository(db),
		tasks:        repository.NewTaskRepository(db),
	}
}

func generateReferralCode() (string, error) {
	buf := make([]byte, config.ReferralCodeLength)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	for i, b := range buf {
		buf[i] = referralAlphabet[int(b)%len(referralAlphabet)]
	}
	return string(buf), nil
}

// Code returns the user's referral code, creating one on first call. Codes
// unlock at the level requirement; below it the user has nothing to share.
func (s *ReferralService) Code(ctx context.Context, userID int64) (string, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", ErrUserNotFound
		}
		return "", err
	}
	if user.ReferralCode != nil {
		return *user.ReferralCode, nil
	}

	st, err := s.states.GetByUserID(ctx, userID)
	if err != nil {
		return "", err
	}
	if st.Level < config.ReferrerLevelRequirement {
		return "", ErrLevelTooLow
	}

	// Retry on the unlikely unique-constraint collision.
	for attempt := 0; attempt < 5; attempt++ {
		code, err := generateReferralCode()
		if err != nil {
			return "", err
		}
		if err := s.users.SetReferralCode(ctx, userID, code); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				// Lost a race with ourselves; re-read and return whatever won.
				if u, rerr := s.users.GetByID(ctx, userID); rerr == nil && u.ReferralCode != nil {
					return *u.ReferralCode, nil
				}
				continue
			}
			return "", err
		}
		return code, nil
	}
	return "", errors.New("could not allocate referral code")
}

// Apply links a new user to the code's owner and pays both sides their
// one-shot bonus. A user can be referred at most once, and never by
// themselves.
func (s *ReferralService) Apply(ctx context.Context, userID int64, code string) error {
	referrer, err := s.users.GetByReferralCode(ctx, code)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrInvalidCode
		}
		return err
	}
	if referrer.ID == userID {
		return ErrSelfReferral
	}

	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	ct, err := tx.Exec(ctx,
		`UPDATE users SET referred_by = $1 WHERE id = $2 AND referred_by IS NULL`,
		referrer.ID, userID)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return ErrAlreadyReferred
	}

	if err := s.states.CreditRewardWithTx(ctx, tx, referrer.ID, config.ReferrerBonus, 0, 0); err != nil {
		return err
	}
	if err := s.states.CreditRewardWithTx(ctx, tx, userID, config.RefereeBonus, 0, 0); err != nil {
		return err
	}
	_, err = tx.Exec(ctx,
		`UPDATE game_states SET referral_count = referral_count + 1 WHERE user_id = $1`,
		referrer.ID)
	if err != nil {
		return err
	}

	err = s.transactions.CreateWithTx(ctx, tx, &domain.Transaction{
		UserID:      referrer.ID,
		Type:        domain.TxReferralBonus,
		Amount:      config.ReferrerBonus,
		Description: fmt.Sprintf("Referral bonus for inviting user %d", userID),
	})
	if err != nil {
		return err
	}
	err = s.transactions.CreateWithTx(ctx, tx, &domain.Transaction{
		UserID:      userID,
		Type:        domain.TxReferralBonus,
		Amount:      config.RefereeBonus,
		Description: "Welcome bonus for joining via referral",
	})
	if err != nil {
		return err
	}

	if _, err := s.tasks.AdvanceObjective(ctx, tx, referrer.ID, domain.ObjectiveReferral, 1); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return err
	}

	logger.Info("referral applied",
		"referrer_id", referrer.ID,
		"referee_id", userID,
		"code", code)
	return nil
}

// Stats summarizes a user's referral standing.
type ReferralStats struct {
	Code          string  `json:"code,omitempty"`
	ReferredCount int     `json:"referred_count"`
	TotalEarned   float64 `json:"total_earned"`
}

// Stats returns the user's code and how many users they brought in.
func (s *ReferralService) Stats(ctx context.Context, userID int64) (*ReferralStats, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	count, err := s.users.CountReferred(ctx, userID)
	if err != nil {
		return nil, err
	}

	stats := &ReferralStats{
		ReferredCount: count,
		TotalEarned:   float64(count) * config.ReferrerBonus,
	}
	if user.ReferralCode != nil {
		stats.Code = *user.ReferralCode
	}
	return stats, nil
}
