package handlers

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/gutscas/santo-dashboard/internal/core/domain"
	"github.com/gutscas/santo-dashboard/internal/transport/http/middleware"
	"github.com/gutscas/santo-dashboard/internal/usecase"
)

const profileFileField = "file"

// ProfileHandler exposes profile CRUD endpoints. Create and update accept
// either JSON or multipart form data; the multipart form may carry a file
// attachment under the "file" field.
type ProfileHandler struct {
	profiles *usecase.ProfileService
}

func NewProfileHandler(profiles *usecase.ProfileService) *ProfileHandler {
	return &ProfileHandler{profiles: profiles}
}

type profileCreatePayload struct {
	Name string `json:"name" binding:"required"`
	Age  int    `json:"age" binding:"required"`
}

type profilePatchPayload struct {
	Name *string `json:"name"`
	Age  *int    `json:"age"`
}

// Me returns the caller's profile.
func (h *ProfileHandler) Me(c *gin.Context) {
	accountID, ok := middleware.GetAuthenticatedAccountID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, NewErrorResponse(c, "authentication required"))
		return
	}

	profile, err := h.profiles.GetByAccount(c.Request.Context(), accountID)
	if err != nil {
		RespondWithMappedError(c, err, []ErrorCase{
			{Err: usecase.ErrProfileNotFound, Status: http.StatusNotFound, Message: "profile not found"},
		}, http.StatusInternalServerError, "failed to load profile")
		return
	}

	c.JSON(http.StatusOK, newProfileResponse(profile))
}

// CreateMe creates the caller's profile.
func (h *ProfileHandler) CreateMe(c *gin.Context) {
	accountID, ok := middleware.GetAuthenticatedAccountID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, NewErrorResponse(c, "authentication required"))
		return
	}

	h.create(c, accountID)
}

// Create creates a profile for the caller via the collection endpoint.
func (h *ProfileHandler) Create(c *gin.Context) {
	accountID, ok := middleware.GetAuthenticatedAccountID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, NewErrorResponse(c, "authentication required"))
		return
	}

	h.create(c, accountID)
}

func (h *ProfileHandler) create(c *gin.Context, accountID string) {
	input, attachment, ok := h.bindCreate(c)
	if !ok {
		return
	}
	defer closeAttachment(attachment)

	profile, err := h.profiles.CreateForAccount(c.Request.Context(), accountID, input, attachment)
	if err != nil {
		RespondWithMappedError(c, err, []ErrorCase{
			{Err: usecase.ErrProfileExists, Status: http.StatusBadRequest, Message: "profile already exists"},
			{Err: usecase.ErrFileStorageUnavailable, Status: http.StatusServiceUnavailable, Message: "file storage unavailable"},
		}, http.StatusInternalServerError, "failed to create profile")
		return
	}

	c.JSON(http.StatusCreated, newProfileResponse(profile))
}

// UpdateMe applies a partial update to the caller's profile.
func (h *ProfileHandler) UpdateMe(c *gin.Context) {
	accountID, ok := middleware.GetAuthenticatedAccountID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, NewErrorResponse(c, "authentication required"))
		return
	}

	patch, attachment, ok := h.bindPatch(c)
	if !ok {
		return
	}
	defer closeAttachment(attachment)

	profile, err := h.profiles.UpdateForAccount(c.Request.Context(), accountID, patch, attachment)
	if err != nil {
		h.respondUpdateError(c, err)
		return
	}

	c.JSON(http.StatusOK, newProfileResponse(profile))
}

// Get returns a profile by its identifier.
func (h *ProfileHandler) Get(c *gin.Context) {
	id, ok := requireParam(c, "id")
	if !ok {
		return
	}

	profile, err := h.profiles.GetByID(c.Request.Context(), id)
	if err != nil {
		RespondWithMappedError(c, err, []ErrorCase{
			{Err: usecase.ErrProfileNotFound, Status: http.StatusNotFound, Message: "profile not found"},
		}, http.StatusInternalServerError, "failed to load profile")
		return
	}

	c.JSON(http.StatusOK, newProfileResponse(profile))
}

// Update applies a partial update to the profile by identifier.
func (h *ProfileHandler) Update(c *gin.Context) {
	id, ok := requireParam(c, "id")
	if !ok {
		return
	}

	patch, attachment, ok := h.bindPatch(c)
	if !ok {
		return
	}
	defer closeAttachment(attachment)

	profile, err := h.profiles.Update(c.Request.Context(), id, patch, attachment)
	if err != nil {
		h.respondUpdateError(c, err)
		return
	}

	c.JSON(http.StatusOK, newProfileResponse(profile))
}

// Delete removes the profile by identifier.
func (h *ProfileHandler) Delete(c *gin.Context) {
	id, ok := requireParam(c, "id")
	if !ok {
		return
	}

	if err := h.profiles.Delete(c.Request.Context(), id); err != nil {
		RespondWithMappedError(c, err, []ErrorCase{
			{Err: usecase.ErrProfileNotFound, Status: http.StatusNotFound, Message: "profile not found"},
		}, http.StatusInternalServerError, "failed to delete profile")
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Message: "profile deleted"})
}

// MissingID answers item verbs sent to the bare collection path, which need
// a profile identifier in the URL.
func (h *ProfileHandler) MissingID(c *gin.Context) {
	c.JSON(http.StatusBadRequest, NewErrorResponse(c, "id is required"))
}

// ListAll returns every profile.
func (h *ProfileHandler) ListAll(c *gin.Context) {
	profiles, err := h.profiles.ListAll(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, NewErrorResponse(c, "failed to list profiles"))
		return
	}

	resp := make([]ProfileResponse, 0, len(profiles))
	for i := range profiles {
		resp = append(resp, newProfileResponse(&profiles[i]))
	}

	c.JSON(http.StatusOK, resp)
}

func (h *ProfileHandler) respondUpdateError(c *gin.Context, err error) {
	RespondWithMappedError(c, err, []ErrorCase{
		{Err: usecase.ErrProfileNotFound, Status: http.StatusNotFound, Message: "profile not found"},
		{Err: usecase.ErrFileStorageUnavailable, Status: http.StatusServiceUnavailable, Message: "file storage unavailable"},
	}, http.StatusInternalServerError, "failed to update profile")
}

func (h *ProfileHandler) bindCreate(c *gin.Context) (usecase.ProfileInput, *usecase.Attachment, bool) {
	if isMultipart(c) {
		name := strings.TrimSpace(c.PostForm("name"))
		ageRaw := strings.TrimSpace(c.PostForm("age"))
		if name == "" || ageRaw == "" {
			c.JSON(http.StatusBadRequest, NewErrorResponse(c, "name and age are required"))
			return usecase.ProfileInput{}, nil, false
		}

		age, err := strconv.Atoi(ageRaw)
		if err != nil {
			c.JSON(http.StatusBadRequest, NewErrorResponse(c, "age must be a number"))
			return usecase.ProfileInput{}, nil, false
		}

		attachment, ok := h.bindAttachment(c)
		if !ok {
			return usecase.ProfileInput{}, nil, false
		}

		return usecase.ProfileInput{Name: name, Age: age}, attachment, true
	}

	var payload profileCreatePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, NewErrorResponse(c, "invalid profile payload"))
		return usecase.ProfileInput{}, nil, false
	}

	return usecase.ProfileInput{Name: payload.Name, Age: payload.Age}, nil, true
}

func (h *ProfileHandler) bindPatch(c *gin.Context) (domain.ProfilePatch, *usecase.Attachment, bool) {
	if isMultipart(c) {
		var patch domain.ProfilePatch

		if name, exists := c.GetPostForm("name"); exists {
			patch.Name = &name
		}
		if ageRaw, exists := c.GetPostForm("age"); exists {
			age, err := strconv.Atoi(strings.TrimSpace(ageRaw))
			if err != nil {
				c.JSON(http.StatusBadRequest, NewErrorResponse(c, "age must be a number"))
				return domain.ProfilePatch{}, nil, false
			}
			patch.Age = &age
		}

		attachment, ok := h.bindAttachment(c)
		if !ok {
			return domain.ProfilePatch{}, nil, false
		}

		return patch, attachment, true
	}

	var payload profilePatchPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, NewErrorResponse(c, "invalid profile payload"))
		return domain.ProfilePatch{}, nil, false
	}

	return domain.ProfilePatch{Name: payload.Name, Age: payload.Age}, nil, true
}

// bindAttachment pulls the optional file out of a multipart form. A missing
// file is not an error.
func (h *ProfileHandler) bindAttachment(c *gin.Context) (*usecase.Attachment, bool) {
	header, err := c.FormFile(profileFileField)
	if err != nil {
		if errors.Is(err, multipart.ErrMessageTooLarge) {
			c.JSON(http.StatusBadRequest, NewErrorResponse(c, "file too large"))
			return nil, false
		}
		return nil, true
	}

	file, err := header.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, NewErrorResponse(c, "failed to read uploaded file"))
		return nil, false
	}

	return &usecase.Attachment{
		FileName:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
		Body:        file,
	}, true
}

// closeAttachment releases the uploaded file once the request is done with
// it. Uploads past the memory threshold are spooled to temp files and hold a
// descriptor until closed.
func closeAttachment(attachment *usecase.Attachment) {
	if attachment == nil {
		return
	}
	if closer, ok := attachment.Body.(io.Closer); ok {
		closer.Close()
	}
}

func isMultipart(c *gin.Context) bool {
	return strings.HasPrefix(c.ContentType(), "multipart/form-data")
}

func requireParam(c *gin.Context, name string) (string, bool) {
	value := strings.TrimSpace(c.Param(name))
	if value == "" {
		c.JSON(http.StatusBadRequest, NewErrorResponse(c, name+" is required"))
		return "", false
	}
	return value, true
}
