package services

import (
	"context"
	"errors"
	"fmt"
	"path"

	"github.com/shelfwise/shelfwise-cli/internal/core/domain"
	"github.com/shelfwise/shelfwise-cli/internal/core/ports/driven"
	"github.com/shelfwise/shelfwise-cli/internal/core/ports/driving"
	"github.com/shelfwise/shelfwise-cli/internal/logger"
)

// Ensure ProfileService implements the interface.
var _ driving.ProfileService = (*ProfileService)(nil)

// ProfileService loads and edits the signed-in user's profile.
type ProfileService struct {
	store driven.DocumentStore
	blobs driven.BlobStore
}

// NewProfileService creates a profile service.
func NewProfileService(store driven.DocumentStore, blobs driven.BlobStore) *ProfileService {
	return &ProfileService{store: store, blobs: blobs}
}

// Load fetches the profile document. An absent document is a zero
// profile, not an error: new accounts simply have not saved one yet.
func (s *ProfileService) Load(ctx context.Context, userID string) (domain.UserProfile, error) {
	data, err := s.store.GetDocument(ctx, userPath(userID))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.UserProfile{}, nil
		}
		return domain.UserProfile{}, fmt.Errorf("load profile: %w", err)
	}
	return profileFromDoc(data), nil
}

// Save validates and fully replaces the profile document. Validation
// failures never reach the store.
func (s *ProfileService) Save(ctx context.Context, userID string, profile domain.UserProfile) error {
	if err := domain.ValidateProfile(profile); err != nil {
		return err
	}
	if err := s.store.SetDocument(ctx, userPath(userID), profileToDoc(profile)); err != nil {
		return fmt.Errorf("save profile: %w", err)
	}
	logger.Debug("profile for %s saved", userID)
	return nil
}

// UploadPhoto stores the picture in the blob store and persists the
// returned URL on the profile, creating the document when absent.
func (s *ProfileService) UploadPhoto(ctx context.Context, userID string, data []byte) (string, error) {
	if len(data) == 0 {
		return "", fmt.Errorf("%w: empty image", domain.ErrInvalidInput)
	}

	url, err := s.blobs.Upload(ctx, path.Join("profiles", userID+".jpg"), data)
	if err != nil {
		return "", fmt.Errorf("upload photo: %w", err)
	}

	err = s.store.UpdateDocument(ctx, userPath(userID), map[string]any{"photoURL": url})
	if errors.Is(err, domain.ErrNotFound) {
		// First photo before the profile was ever saved.
		fresh := profileToDoc(domain.UserProfile{PhotoURL: url})
		err = s.store.SetDocument(ctx, userPath(userID), fresh)
	}
	if err != nil {
		return "", fmt.Errorf("persist photo url: %w", err)
	}

	logger.Debug("photo for %s uploaded to %s", userID, url)
	return url, nil
}
