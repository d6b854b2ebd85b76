package service_test

import (
	"bytes"
	"context"
	"errors"
	"mime/multipart"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"hejazi/internal/config"
	"hejazi/internal/domain"
	"hejazi/internal/permission"
	"hejazi/internal/port"
	"hejazi/internal/service"
	"hejazi/mocks"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

type memFile struct {
	*bytes.Reader
}

func (memFile) Close() error { return nil }

func upload(name string, content []byte) (multipart.File, *multipart.FileHeader) {
	return memFile{bytes.NewReader(content)}, &multipart.FileHeader{Filename: name, Size: int64(len(content))}
}

func testS3Config() *config.S3Config {
	return &config.S3Config{Bucket: "test", MaxFileSizeMB: 1, PresignExpiry: 600}
}

func TestProfileService_UploadMedia_ReplacesPreviousObject(t *testing.T) {
	users := new(mocks.MockUserRepo)
	storage := new(mocks.MockObjectStorage)
	svc := service.NewProfileService(users, storage, new(mocks.MockPermissionService), testS3Config())
	tenantID, userID := uuid.New(), uuid.New()
	file, header := upload("sig.PNG", pngHeader)

	users.On("GetByID", mock.Anything, tenantID, userID).Return(&domain.User{ID: userID, SignatureKey: "old/sig.png"}, nil)
	storage.On("Put", mock.Anything, mock.MatchedBy(func(in port.PutObjectInput) bool {
		return strings.HasPrefix(in.Key, "tenants/"+tenantID.String()+"/users/"+userID.String()+"/signature/") &&
			strings.HasSuffix(in.Key, ".png") && in.ContentType == "image/png"
	})).Return(nil)
	users.On("SetMediaKey", mock.Anything, tenantID, userID, domain.MediaSignature, mock.AnythingOfType("string")).Return(nil)
	storage.On("Delete", mock.Anything, "old/sig.png").Return(nil)

	user, err := svc.UploadMedia(context.Background(), service.MediaUploadInput{
		TenantID: tenantID, UserID: userID, Kind: domain.MediaSignature, File: file, Header: header,
	})

	require.NoError(t, err)
	assert.NotEqual(t, "old/sig.png", user.SignatureKey)
	storage.AssertExpectations(t)
}

func TestProfileService_UploadMedia_RejectsMismatchedContent(t *testing.T) {
	svc := service.NewProfileService(new(mocks.MockUserRepo), new(mocks.MockObjectStorage), new(mocks.MockPermissionService), testS3Config())
	file, header := upload("avatar.jpg", pngHeader)

	_, err := svc.UploadMedia(context.Background(), service.MediaUploadInput{
		TenantID: uuid.New(), UserID: uuid.New(), Kind: domain.MediaAvatar, File: file, Header: header,
	})

	assert.ErrorIs(t, err, domain.ErrUnsupportedFileType)
}

func TestProfileService_UploadMedia_Limits(t *testing.T) {
	svc := service.NewProfileService(new(mocks.MockUserRepo), new(mocks.MockObjectStorage), new(mocks.MockPermissionService), testS3Config())

	file, header := upload("avatar.gif", []byte("GIF89a"))
	_, err := svc.UploadMedia(context.Background(), service.MediaUploadInput{Kind: domain.MediaAvatar, File: file, Header: header})
	assert.ErrorIs(t, err, domain.ErrUnsupportedFileType)

	file, header = upload("avatar.png", pngHeader)
	header.Size = 2 * 1024 * 1024
	_, err = svc.UploadMedia(context.Background(), service.MediaUploadInput{Kind: domain.MediaAvatar, File: file, Header: header})
	assert.ErrorIs(t, err, domain.ErrFileTooLarge)
}

func TestProfileService_UploadMedia_StorageFailure(t *testing.T) {
	users := new(mocks.MockUserRepo)
	storage := new(mocks.MockObjectStorage)
	svc := service.NewProfileService(users, storage, new(mocks.MockPermissionService), testS3Config())
	tenantID, userID := uuid.New(), uuid.New()
	file, header := upload("a.png", pngHeader)

	users.On("GetByID", mock.Anything, tenantID, userID).Return(&domain.User{ID: userID}, nil)
	storage.On("Put", mock.Anything, mock.Anything).Return(errors.New("s3 down"))

	_, err := svc.UploadMedia(context.Background(), service.MediaUploadInput{
		TenantID: tenantID, UserID: userID, Kind: domain.MediaAvatar, File: file, Header: header,
	})

	assert.ErrorIs(t, err, domain.ErrUploadFailed)
	users.AssertNotCalled(t, "SetMediaKey", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func favoritesSet() permission.Set {
	return permission.FromGrants([]permission.Grant{
		{Key: permission.Key{Level: domain.LevelService, ID: uuid.New()}, Code: "SEC", Allowed: true, Source: permission.SourceJob},
		{Key: permission.Key{Level: domain.LevelService, ID: uuid.New()}, Code: "OPS", Allowed: false, Source: permission.SourceDefault},
	})
}

func TestProfileService_SetFavorites(t *testing.T) {
	tenantID, userID := uuid.New(), uuid.New()

	t.Run("stores allowed codes once", func(t *testing.T) {
		users := new(mocks.MockUserRepo)
		perms := new(mocks.MockPermissionService)
		svc := service.NewProfileService(users, new(mocks.MockObjectStorage), perms, testS3Config())
		perms.On("Effective", mock.Anything, tenantID, userID).Return(favoritesSet(), nil)
		users.On("SetFavorites", mock.Anything, tenantID, userID, []string{"SEC"}).Return(nil)

		got, err := svc.SetFavorites(context.Background(), tenantID, userID, []string{"SEC", " SEC ", "sec"})

		require.NoError(t, err)
		assert.Equal(t, []string{"SEC"}, got)
	})

	t.Run("denied code", func(t *testing.T) {
		perms := new(mocks.MockPermissionService)
		svc := service.NewProfileService(new(mocks.MockUserRepo), new(mocks.MockObjectStorage), perms, testS3Config())
		perms.On("Effective", mock.Anything, tenantID, userID).Return(favoritesSet(), nil)

		_, err := svc.SetFavorites(context.Background(), tenantID, userID, []string{"OPS"})

		assert.ErrorIs(t, err, domain.ErrServiceNotAllowed)
	})

	t.Run("unknown code", func(t *testing.T) {
		perms := new(mocks.MockPermissionService)
		svc := service.NewProfileService(new(mocks.MockUserRepo), new(mocks.MockObjectStorage), perms, testS3Config())
		perms.On("Effective", mock.Anything, tenantID, userID).Return(favoritesSet(), nil)

		_, err := svc.SetFavorites(context.Background(), tenantID, userID, []string{"NOPE"})

		assert.ErrorIs(t, err, domain.ErrUnknownResource)
	})
}

func TestProfileService_MediaURLs(t *testing.T) {
	users := new(mocks.MockUserRepo)
	storage := new(mocks.MockObjectStorage)
	svc := service.NewProfileService(users, storage, new(mocks.MockPermissionService), testS3Config())
	tenantID, userID := uuid.New(), uuid.New()

	users.On("GetByID", mock.Anything, tenantID, userID).Return(&domain.User{ID: userID, AvatarKey: "a.png"}, nil)
	storage.On("PresignGet", mock.Anything, "a.png", mock.AnythingOfType("time.Duration")).Return("https://signed/a.png", nil)

	urls, err := svc.MediaURLs(context.Background(), tenantID, userID)

	require.NoError(t, err)
	assert.Equal(t, "https://signed/a.png", urls.AvatarURL)
	assert.Empty(t, urls.SignatureURL)
}
