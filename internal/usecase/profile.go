package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	uuid "github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/gutscas/santo-dashboard/internal/core/domain"
	"github.com/gutscas/santo-dashboard/internal/core/port"
	"github.com/gutscas/santo-dashboard/internal/repository"
)

var (
	// ErrProfileNotFound indicates no profile matches the lookup.
	ErrProfileNotFound = errors.New("profile not found")
	// ErrProfileExists indicates the account already has a profile.
	ErrProfileExists = errors.New("profile already exists")
	// ErrFileStorageUnavailable indicates an attachment was supplied but no object store is configured.
	ErrFileStorageUnavailable = errors.New("file storage unavailable")
)

// Attachment is an uploaded file destined for object storage. Content is
// accepted as-is; no type or size policy is applied here.
type Attachment struct {
	FileName    string
	ContentType string
	Size        int64
	Body        io.Reader
}

// ProfileService manages the single per-account profile and its attachment.
type ProfileService struct {
	profiles port.ProfileRepository
	files    port.FileStore
	logger   *zap.Logger
	now      func() time.Time
}

// NewProfileService constructs a ProfileService. The file store may be nil
// when object storage is not configured; attachments are then rejected.
func NewProfileService(profiles port.ProfileRepository, files port.FileStore, log *zap.Logger) *ProfileService {
	if log == nil {
		log = zap.NewNop()
	}
	return &ProfileService{
		profiles: profiles,
		files:    files,
		logger:   log,
		now:      time.Now,
	}
}

// WithClock allows tests to override the clock used by the service.
func (s *ProfileService) WithClock(clock func() time.Time) {
	if clock != nil {
		s.now = clock
	}
}

// ProfileInput carries the payload for creating a profile.
type ProfileInput struct {
	Name string
	Age  int
}

// CreateForAccount creates the profile for an account. At most one profile
// exists per account; a second create fails with ErrProfileExists.
func (s *ProfileService) CreateForAccount(ctx context.Context, accountID string, input ProfileInput, attachment *Attachment) (*domain.Profile, error) {
	if _, err := s.profiles.GetByAccount(ctx, accountID); err == nil {
		return nil, ErrProfileExists
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("lookup profile: %w", err)
	}

	now := s.now().UTC()
	profile := domain.Profile{
		ID:        uuid.NewString(),
		AccountID: accountID,
		Name:      input.Name,
		Age:       input.Age,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if attachment != nil {
		key, err := s.storeAttachment(ctx, profile.ID, attachment)
		if err != nil {
			return nil, err
		}
		profile.FileKey = &key
	}

	if err := s.profiles.Create(ctx, profile); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			s.discardAttachment(ctx, profile.FileKey)
			return nil, ErrProfileExists
		}
		return nil, fmt.Errorf("create profile: %w", err)
	}

	return &profile, nil
}

// GetByID retrieves a profile by its identifier.
func (s *ProfileService) GetByID(ctx context.Context, id string) (*domain.Profile, error) {
	profile, err := s.profiles.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("lookup profile: %w", err)
	}
	return profile, nil
}

// GetByAccount retrieves the profile owned by the account.
func (s *ProfileService) GetByAccount(ctx context.Context, accountID string) (*domain.Profile, error) {
	profile, err := s.profiles.GetByAccount(ctx, accountID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("lookup profile: %w", err)
	}
	return profile, nil
}

// ListAll returns every profile.
func (s *ProfileService) ListAll(ctx context.Context) ([]domain.Profile, error) {
	profiles, err := s.profiles.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}
	return profiles, nil
}

// Update applies a partial update to the profile. Omitted fields keep their
// current values. A new attachment replaces the stored object; the previous
// object is removed best effort.
func (s *ProfileService) Update(ctx context.Context, id string, patch domain.ProfilePatch, attachment *Attachment) (*domain.Profile, error) {
	profile, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.applyUpdate(ctx, profile, patch, attachment)
}

// UpdateForAccount applies a partial update to the account's own profile.
func (s *ProfileService) UpdateForAccount(ctx context.Context, accountID string, patch domain.ProfilePatch, attachment *Attachment) (*domain.Profile, error) {
	profile, err := s.GetByAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}
	return s.applyUpdate(ctx, profile, patch, attachment)
}

func (s *ProfileService) applyUpdate(ctx context.Context, profile *domain.Profile, patch domain.ProfilePatch, attachment *Attachment) (*domain.Profile, error) {
	previousKey := profile.FileKey

	if attachment != nil {
		key, err := s.storeAttachment(ctx, profile.ID, attachment)
		if err != nil {
			return nil, err
		}
		patch.FileKey = &key
	}

	patch.Apply(profile)
	profile.UpdatedAt = s.now().UTC()

	if err := s.profiles.Update(ctx, *profile); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("update profile: %w", err)
	}

	if attachment != nil && previousKey != nil && (profile.FileKey == nil || *previousKey != *profile.FileKey) {
		s.discardAttachment(ctx, previousKey)
	}

	return profile, nil
}

// Delete removes the profile and its stored attachment, if any.
func (s *ProfileService) Delete(ctx context.Context, id string) error {
	profile, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.profiles.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrProfileNotFound
		}
		return fmt.Errorf("delete profile: %w", err)
	}

	s.discardAttachment(ctx, profile.FileKey)

	return nil
}

// storeAttachment uploads the attachment under a fresh object key scoped to
// the profile and returns the key.
func (s *ProfileService) storeAttachment(ctx context.Context, profileID string, attachment *Attachment) (string, error) {
	if s.files == nil {
		return "", ErrFileStorageUnavailable
	}

	ext := strings.ToLower(path.Ext(attachment.FileName))
	key := fmt.Sprintf("profiles/%s/%s%s", profileID, uuid.NewString(), ext)

	if err := s.files.Put(ctx, key, attachment.ContentType, attachment.Body, attachment.Size); err != nil {
		return "", fmt.Errorf("store attachment: %w", err)
	}

	return key, nil
}

func (s *ProfileService) discardAttachment(ctx context.Context, key *string) {
	if s.files == nil || key == nil || *key == "" {
		return
	}
	if err := s.files.Delete(ctx, *key); err != nil {
		s.logger.Warn("delete stored attachment failed", zap.String("key", *key), zap.Error(err))
	}
}
