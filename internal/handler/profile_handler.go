package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"hejazi/internal/domain"
	"hejazi/internal/service"
)

// ProfileHandler serves the caller's own profile under /me.
type ProfileHandler struct {
	profileService service.ProfileService
}

// NewProfileHandler creates a new ProfileHandler.
func NewProfileHandler(profileService service.ProfileService) *ProfileHandler {
	return &ProfileHandler{profileService: profileService}
}

// Get handles GET /api/v1/me
// @Summary Get my profile
// @Tags profile
// @Produce json
// @Success 200 {object} Response{data=domain.User} "Profile"
// @Security BearerAuth
// @Router /me [get]
func (h *ProfileHandler) Get(c *gin.Context) {
	tenantID, userID, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	user, err := h.profileService.Get(c.Request.Context(), tenantID, userID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, user)
}

// Update handles PUT /api/v1/me
// @Summary Update my name or phone
// @Tags profile
// @Accept json
// @Produce json
// @Param request body UpdateProfileRequest true "Fields to update"
// @Success 200 {object} Response{data=domain.User} "Updated profile"
// @Security BearerAuth
// @Router /me [put]
func (h *ProfileHandler) Update(c *gin.Context) {
	tenantID, userID, _, ok := extractAuthContext(c)
	if !ok {
		return
	}
	var input service.UpdateProfileInput
	if !bindJSON(c, &input) {
		return
	}

	user, err := h.profileService.Update(c.Request.Context(), tenantID, userID, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, user)
}

// UploadAvatar handles POST /api/v1/me/avatar
// @Summary Upload my avatar
// @Tags profile
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "PNG or JPG image"
// @Success 200 {object} Response{data=domain.User} "Profile with new avatar key"
// @Failure 400 {object} ErrorResponseBody "Missing file or unsupported type"
// @Failure 413 {object} ErrorResponseBody "File too large"
// @Failure 500 {object} ErrorResponseBody "Upload failed"
// @Security BearerAuth
// @Router /me/avatar [post]
func (h *ProfileHandler) UploadAvatar(c *gin.Context) {
	h.upload(c, domain.MediaAvatar)
}

// UploadSignature handles POST /api/v1/me/signature
// @Summary Upload my signature
// @Description The stored signature is copied onto every evaluation decision the user makes.
// @Tags profile
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "PNG or JPG image"
// @Success 200 {object} Response{data=domain.User} "Profile with new signature key"
// @Failure 400 {object} ErrorResponseBody "Missing file or unsupported type"
// @Failure 413 {object} ErrorResponseBody "File too large"
// @Security BearerAuth
// @Router /me/signature [post]
func (h *ProfileHandler) UploadSignature(c *gin.Context) {
	h.upload(c, domain.MediaSignature)
}

func (h *ProfileHandler) upload(c *gin.Context, kind domain.MediaKind) {
	tenantID, userID, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "MISSING_FILE", "file field is required")
		return
	}
	defer func() { _ = file.Close() }()

	user, err := h.profileService.UploadMedia(c.Request.Context(), service.MediaUploadInput{
		TenantID: tenantID,
		UserID:   userID,
		Kind:     kind,
		File:     file,
		Header:   header,
	})
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, user)
}

// Media handles GET /api/v1/me/media
// @Summary Get presigned URLs for my avatar and signature
// @Tags profile
// @Produce json
// @Success 200 {object} Response{data=service.MediaURLs} "Presigned URLs"
// @Security BearerAuth
// @Router /me/media [get]
func (h *ProfileHandler) Media(c *gin.Context) {
	tenantID, userID, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	urls, err := h.profileService.MediaURLs(c.Request.Context(), tenantID, userID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, urls)
}

// SetFavorites handles PUT /api/v1/me/favorites
// @Summary Replace my favorite services
// @Description Every code must exist and be allowed for the caller.
// @Tags profile
// @Accept json
// @Produce json
// @Param request body FavoritesRequest true "Service codes"
// @Success 200 {object} Response{data=[]string} "Stored favorites"
// @Failure 400 {object} ErrorResponseBody "Unknown code"
// @Failure 403 {object} ErrorResponseBody "Service not allowed"
// @Security BearerAuth
// @Router /me/favorites [put]
func (h *ProfileHandler) SetFavorites(c *gin.Context) {
	tenantID, userID, _, ok := extractAuthContext(c)
	if !ok {
		return
	}
	var req FavoritesRequest
	if !bindJSON(c, &req) {
		return
	}

	codes, err := h.profileService.SetFavorites(c.Request.Context(), tenantID, userID, req.Codes)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, codes)
}
