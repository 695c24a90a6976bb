package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Okita-Damian/video-streaming-App/domain"
	"github.com/Okita-Damian/video-streaming-App/internal/mocks"
)

// memoryOTPRepo backs the mock with a real record set so consumption and
// supersession semantics can be observed across calls.
type memoryOTPRepo struct {
	records []*domain.OneTimeCode
	nextID  uint
	now     func() time.Time
}

func newMemoryOTPRepo(now func() time.Time) (*memoryOTPRepo, *mocks.MockOTPRepository) {
	m := &memoryOTPRepo{nextID: 1, now: now}
	repo := mocks.NewMockOTPRepository()
	repo.CreateFunc = func(ctx context.Context, code *domain.OneTimeCode) error {
		code.ID = m.nextID
		m.nextID++
		code.CreatedAt = m.now()
		m.records = append(m.records, code)
		return nil
	}
	repo.FindLatestFunc = func(ctx context.Context, userID uint, purposes ...string) (*domain.OneTimeCode, error) {
		var latest *domain.OneTimeCode
		for _, r := range m.records {
			if r.UserID != userID || !matchesPurpose(r.Purpose, purposes) {
				continue
			}
			if latest == nil || r.CreatedAt.After(latest.CreatedAt) {
				latest = r
			}
		}
		if latest == nil || latest.Expired(m.now()) {
			return nil, domain.ErrOTPInvalidOrExpired
		}
		return latest, nil
	}
	repo.LastIssuedAtFunc = func(ctx context.Context, userID uint, purpose string) (time.Time, bool, error) {
		var latest *domain.OneTimeCode
		for _, r := range m.records {
			if r.UserID != userID || r.Purpose != purpose {
				continue
			}
			if latest == nil || r.CreatedAt.After(latest.CreatedAt) {
				latest = r
			}
		}
		if latest == nil {
			return time.Time{}, false, nil
		}
		return latest.CreatedAt, true, nil
	}
	repo.DeleteByIDFunc = func(ctx context.Context, id uint) error {
		for i, r := range m.records {
			if r.ID == id {
				m.records = append(m.records[:i], m.records[i+1:]...)
				return nil
			}
		}
		return nil
	}
	repo.DeleteByPurposeFunc = func(ctx context.Context, userID uint, purpose string) error {
		kept := m.records[:0]
		for _, r := range m.records {
			if r.UserID != userID || r.Purpose != purpose {
				kept = append(kept, r)
			}
		}
		m.records = kept
		return nil
	}
	return m, repo
}

func matchesPurpose(purpose string, purposes []string) bool {
	for _, p := range purposes {
		if p == purpose {
			return true
		}
	}
	return false
}

func TestOTPServiceImpl_SingleUse(t *testing.T) {
	clock := time.Now()
	_, repo := newMemoryOTPRepo(func() time.Time { return clock })
	notif := mocks.NewMockNotificationService()
	svc := NewOTPService(repo, mocks.NewMockPasswordService(), notif, testOTPConfig())
	svc.now = func() time.Time { return clock }

	user := &domain.User{ID: 1, Email: "ada@example.com"}
	if err := svc.Issue(context.Background(), user, domain.PurposeVerifyEmail, svc.config.VerifyTTL); err != nil {
		t.Fatalf("issue: %v", err)
	}
	code := notif.SentCodes[0]

	if _, err := svc.Consume(context.Background(), 1, code, domain.PurposeVerifyEmail); err != nil {
		t.Fatalf("first consume: %v", err)
	}
	if _, err := svc.Consume(context.Background(), 1, code, domain.PurposeVerifyEmail); !errors.Is(err, domain.ErrOTPInvalidOrExpired) {
		t.Fatalf("second consume: expected %v, got %v", domain.ErrOTPInvalidOrExpired, err)
	}
}

func TestOTPServiceImpl_ExpiredCodeIsAbsent(t *testing.T) {
	clock := time.Now()
	now := func() time.Time { return clock }
	_, repo := newMemoryOTPRepo(now)
	notif := mocks.NewMockNotificationService()
	svc := NewOTPService(repo, mocks.NewMockPasswordService(), notif, testOTPConfig())
	svc.now = now

	user := &domain.User{ID: 1, Email: "ada@example.com"}
	if err := svc.Issue(context.Background(), user, domain.PurposeVerifyEmail, svc.config.VerifyTTL); err != nil {
		t.Fatalf("issue: %v", err)
	}
	code := notif.SentCodes[0]

	clock = clock.Add(svc.config.VerifyTTL + time.Second)
	if _, err := svc.Consume(context.Background(), 1, code, domain.PurposeVerifyEmail); !errors.Is(err, domain.ErrOTPInvalidOrExpired) {
		t.Fatalf("expected %v for expired code, got %v", domain.ErrOTPInvalidOrExpired, err)
	}
}

func TestOTPServiceImpl_IssueSupersedesPriorCode(t *testing.T) {
	clock := time.Now()
	now := func() time.Time { return clock }
	_, repo := newMemoryOTPRepo(now)
	notif := mocks.NewMockNotificationService()
	svc := NewOTPService(repo, mocks.NewMockPasswordService(), notif, testOTPConfig())
	svc.now = now

	user := &domain.User{ID: 1, Email: "ada@example.com"}
	if err := svc.Issue(context.Background(), user, domain.PurposeVerifyEmail, svc.config.VerifyTTL); err != nil {
		t.Fatalf("first issue: %v", err)
	}
	first := notif.SentCodes[0]

	clock = clock.Add(time.Minute)
	if err := svc.Issue(context.Background(), user, domain.PurposeVerifyEmail, svc.config.ResendTTL); err != nil {
		t.Fatalf("second issue: %v", err)
	}
	second := notif.SentCodes[1]

	if _, err := svc.Consume(context.Background(), 1, first, domain.PurposeVerifyEmail); err == nil && first != second {
		t.Fatal("superseded code must no longer verify")
	}
	if _, err := svc.Consume(context.Background(), 1, second, domain.PurposeVerifyEmail); err != nil {
		t.Fatalf("fresh code must verify, got %v", err)
	}
}

func TestOTPServiceImpl_CheckCooldown(t *testing.T) {
	tests := []struct {
		name          string
		sinceLast     time.Duration
		expectedError error
	}{
		{name: "second call inside the window", sinceLast: 10 * time.Second, expectedError: domain.ErrOTPResendCooldown},
		{name: "boundary has elapsed", sinceLast: 30 * time.Second},
		{name: "well past the window", sinceLast: 5 * time.Minute},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := mocks.NewMockOTPRepository()
			issued := time.Now().Add(-tt.sinceLast)
			repo.LastIssuedAtFunc = func(ctx context.Context, userID uint, purpose string) (time.Time, bool, error) {
				return issued, true, nil
			}
			svc := NewOTPService(repo, mocks.NewMockPasswordService(), mocks.NewMockNotificationService(), testOTPConfig())

			err := svc.CheckCooldown(context.Background(), 1, domain.PurposeVerifyEmail)
			if !errors.Is(err, tt.expectedError) {
				t.Fatalf("expected error %v, got %v", tt.expectedError, err)
			}
		})
	}
}

func TestGenerateCode(t *testing.T) {
	svc := NewOTPService(mocks.NewMockOTPRepository(), mocks.NewMockPasswordService(), mocks.NewMockNotificationService(), testOTPConfig())

	for i := 0; i < 20; i++ {
		code, err := svc.generateCode()
		if err != nil {
			t.Fatalf("generate: %v", err)
		}
		if len(code) != 4 {
			t.Fatalf("expected 4 digits, got %q", code)
		}
		for _, r := range code {
			if r < '0' || r > '9' {
				t.Fatalf("non-digit in code %q", code)
			}
		}
	}
}
