package service

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"hejazi/internal/config"
	"hejazi/internal/domain"
	"hejazi/internal/port"
)

// UpdateProfileInput is the DTO for self-service profile edits.
type UpdateProfileInput struct {
	FullName *string `json:"full_name"`
	Phone    *string `json:"phone"`
}

// MediaUploadInput carries a profile image upload.
type MediaUploadInput struct {
	TenantID uuid.UUID
	UserID   uuid.UUID
	Kind     domain.MediaKind
	File     multipart.File
	Header   *multipart.FileHeader
}

// MediaURLs holds presigned download links; empty when nothing is stored.
type MediaURLs struct {
	AvatarURL    string    `json:"avatar_url,omitempty"`
	SignatureURL string    `json:"signature_url,omitempty"`
	ExpiresAt    time.Time `json:"expires_at"`
}

// ProfileService covers the signed-in user's own record.
type ProfileService interface {
	Get(ctx context.Context, tenantID, userID uuid.UUID) (*domain.User, error)
	Update(ctx context.Context, tenantID, userID uuid.UUID, input UpdateProfileInput) (*domain.User, error)
	UploadMedia(ctx context.Context, input MediaUploadInput) (*domain.User, error)
	MediaURLs(ctx context.Context, tenantID, userID uuid.UUID) (*MediaURLs, error)
	SetFavorites(ctx context.Context, tenantID, userID uuid.UUID, codes []string) ([]string, error)
}

type profileService struct {
	userRepo    port.UserRepository
	storage     port.ObjectStorage
	permissions PermissionService
	cfg         *config.S3Config
}

// NewProfileService creates a new ProfileService implementation.
func NewProfileService(
	userRepo port.UserRepository,
	storage port.ObjectStorage,
	permissions PermissionService,
	cfg *config.S3Config,
) ProfileService {
	return &profileService{
		userRepo:    userRepo,
		storage:     storage,
		permissions: permissions,
		cfg:         cfg,
	}
}

func (s *profileService) Get(ctx context.Context, tenantID, userID uuid.UUID) (*domain.User, error) {
	return s.userRepo.GetByID(ctx, tenantID, userID)
}

func (s *profileService) Update(ctx context.Context, tenantID, userID uuid.UUID, input UpdateProfileInput) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, tenantID, userID)
	if err != nil {
		return nil, err
	}
	if input.FullName != nil {
		name := strings.TrimSpace(*input.FullName)
		if name == "" {
			return nil, domain.ErrValidation
		}
		user.FullName = name
	}
	if input.Phone != nil {
		user.Phone = strings.TrimSpace(*input.Phone)
	}
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// UploadMedia validates the image by extension, size and magic bytes, stores
// it under a fresh key and points the user at it. The previous object is
// removed on a best-effort basis.
func (s *profileService) UploadMedia(ctx context.Context, input MediaUploadInput) (*domain.User, error) {
	if input.Kind != domain.MediaAvatar && input.Kind != domain.MediaSignature {
		return nil, domain.ErrValidation
	}

	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(input.Header.Filename), "."))
	fileType, ok := domain.AllowedExtensions[ext]
	if !ok {
		return nil, domain.ErrUnsupportedFileType
	}
	if input.Header.Size > s.cfg.MaxFileSizeMB*1024*1024 {
		return nil, domain.ErrFileTooLarge
	}

	buf := make([]byte, 512)
	n, err := input.File.Read(buf)
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("reading file header: %w", err)
	}
	detected, ok := domain.AllowedContentTypes[http.DetectContentType(buf[:n])]
	if !ok || detected != fileType {
		return nil, domain.ErrUnsupportedFileType
	}
	if _, err := input.File.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("seeking file: %w", err)
	}

	user, err := s.userRepo.GetByID(ctx, input.TenantID, input.UserID)
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("tenants/%s/users/%s/%s/%s.%s", input.TenantID, input.UserID, input.Kind, uuid.New(), fileType)
	err = s.storage.Put(ctx, port.PutObjectInput{
		Key:         key,
		Body:        input.File,
		ContentType: domain.AllowedFileTypes[fileType],
		Size:        input.Header.Size,
	})
	if err != nil {
		log.Error().Err(err).Str("key", key).Msg("profileService.UploadMedia: upload failed")
		return nil, domain.ErrUploadFailed
	}

	if err := s.userRepo.SetMediaKey(ctx, input.TenantID, input.UserID, input.Kind, key); err != nil {
		_ = s.storage.Delete(ctx, key)
		return nil, err
	}

	previous := user.AvatarKey
	if input.Kind == domain.MediaSignature {
		previous = user.SignatureKey
		user.SignatureKey = key
	} else {
		user.AvatarKey = key
	}
	if previous != "" {
		if err := s.storage.Delete(ctx, previous); err != nil {
			log.Warn().Err(err).Str("key", previous).Msg("profileService.UploadMedia: removing previous object failed")
		}
	}
	return user, nil
}

func (s *profileService) MediaURLs(ctx context.Context, tenantID, userID uuid.UUID) (*MediaURLs, error) {
	user, err := s.userRepo.GetByID(ctx, tenantID, userID)
	if err != nil {
		return nil, err
	}
	ttl := time.Duration(s.cfg.PresignExpiry) * time.Second
	urls := &MediaURLs{ExpiresAt: time.Now().Add(ttl)}
	if user.AvatarKey != "" {
		if urls.AvatarURL, err = s.storage.PresignGet(ctx, user.AvatarKey, ttl); err != nil {
			return nil, err
		}
	}
	if user.SignatureKey != "" {
		if urls.SignatureURL, err = s.storage.PresignGet(ctx, user.SignatureKey, ttl); err != nil {
			return nil, err
		}
	}
	return urls, nil
}

// SetFavorites replaces the user's favorite services. Each code must name a
// node the user is allowed to open. Duplicates are dropped, order is kept.
func (s *profileService) SetFavorites(ctx context.Context, tenantID, userID uuid.UUID, codes []string) ([]string, error) {
	set, err := s.permissions.Effective(ctx, tenantID, userID)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]bool, len(codes))
	favorites := make([]string, 0, len(codes))
	for _, c := range codes {
		c = strings.TrimSpace(c)
		k, known := set.Lookup(c)
		if !known {
			return nil, fmt.Errorf("%s: %w", c, domain.ErrUnknownResource)
		}
		if !set.Allowed(k) {
			return nil, fmt.Errorf("%s: %w", c, domain.ErrServiceNotAllowed)
		}
		// Stored under the taxonomy's own spelling.
		g, _ := set.Get(k)
		if seen[g.Code] {
			continue
		}
		seen[g.Code] = true
		favorites = append(favorites, g.Code)
	}
	if err := s.userRepo.SetFavorites(ctx, tenantID, userID, favorites); err != nil {
		return nil, err
	}
	return favorites, nil
}
