package controllers

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"talkcatalog/internal/delivery/http/helpers"
	"talkcatalog/internal/domain"
)

type TalkController struct {
	Logger  *slog.Logger
	Service domain.TalkService
}

func NewTalkController(logger *slog.Logger, svc domain.TalkService) *TalkController {
	return &TalkController{
		Logger:  logger,
		Service: svc,
	}
}

// TalkRequest is the request body for POST /talks. A missing speaker_id or room_id
// yields 204 No Content and nothing is created.
type TalkRequest struct {
	Title       string `json:"title" validate:"required,max=255"`
	Description string `json:"description" validate:"max=4000"`
	Published   bool   `json:"published"`
	SpeakerID   int64  `json:"speaker_id"`
	RoomID      *int64 `json:"room_id"`
}

// Validate implements helpers.Validator.
func (r *TalkRequest) Validate() []string {
	r.Title = strings.TrimSpace(r.Title)
	if r.Title == "" {
		return []string{"title must not be blank"}
	}
	return nil
}

// TutorialRequest is the request body for POST /tutorials. Tutorials have no room.
type TutorialRequest struct {
	Title       string `json:"title" validate:"required,max=255"`
	Description string `json:"description" validate:"max=4000"`
	Published   bool   `json:"published"`
	SpeakerID   int64  `json:"speaker_id"`
}

// Validate implements helpers.Validator.
func (r *TutorialRequest) Validate() []string {
	r.Title = strings.TrimSpace(r.Title)
	if r.Title == "" {
		return []string{"title must not be blank"}
	}
	return nil
}

// RoomAssignment sets or clears the room of a talk. A null room_id detaches the talk.
type RoomAssignment struct {
	RoomID *int64 `json:"room_id"`
}

// UpdateTalkRequest is the request body for PUT /talks/{id}. Scalar fields are overwritten;
// speaker_id and room move the talk only when present.
type UpdateTalkRequest struct {
	Title       string          `json:"title" validate:"required,max=255"`
	Description string          `json:"description" validate:"max=4000"`
	Published   bool            `json:"published"`
	SpeakerID   *int64          `json:"speaker_id,omitempty" validate:"omitempty,gt=0"`
	Room        *RoomAssignment `json:"room,omitempty"`
}

// Validate implements helpers.Validator.
func (r *UpdateTalkRequest) Validate() []string {
	r.Title = strings.TrimSpace(r.Title)
	if r.Title == "" {
		return []string{"title must not be blank"}
	}
	return nil
}

// TalkSuccessResponse is the success response envelope for single-talk endpoints.
type TalkSuccessResponse struct {
	Data  *domain.Talk      `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// ListTalksSuccessResponse is the success response envelope for talk lists.
type ListTalksSuccessResponse struct {
	Data  []*domain.Talk    `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// ListTalks godoc
// @Summary List talks
// @Description Returns every talk, or only those whose title contains title.
// @Tags talks
// @Produce json
// @Param title query string false "Case-sensitive title substring"
// @Success 200 {object} controllers.ListTalksSuccessResponse
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /talks [get]
func (c *TalkController) ListTalks(w http.ResponseWriter, r *http.Request) {
	talks, err := c.Service.List(r.Context(), r.URL.Query().Get("title"))
	if err != nil {
		writeServiceError(w, r, c.Logger, err, "talk not found")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, talks)
}

// ListPublishedTalks godoc
// @Summary List talks by published flag
// @Tags talks
// @Produce json
// @Param published query bool false "Published flag (default true)"
// @Success 200 {object} controllers.ListTalksSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /talks/published [get]
func (c *TalkController) ListPublishedTalks(w http.ResponseWriter, r *http.Request) {
	published := true
	if s := r.URL.Query().Get("published"); s != "" {
		v, err := strconv.ParseBool(s)
		if err != nil {
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid published")
			return
		}
		published = v
	}
	talks, err := c.Service.ListPublished(r.Context(), published)
	if err != nil {
		writeServiceError(w, r, c.Logger, err, "talk not found")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, talks)
}

// ListTalksWithFunction godoc
// @Summary List talks through the stored function
// @Description Returns every talk as produced by the get_talks_with_function database function.
// @Tags talks
// @Produce json
// @Success 200 {object} controllers.ListTalksSuccessResponse
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /talks/function [get]
func (c *TalkController) ListTalksWithFunction(w http.ResponseWriter, r *http.Request) {
	talks, err := c.Service.ListWithFunction(r.Context())
	if err != nil {
		writeServiceError(w, r, c.Logger, err, "talk not found")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, talks)
}

// GetTalk godoc
// @Summary Get a talk by ID
// @Tags talks
// @Produce json
// @Param id path int true "Talk ID"
// @Success 200 {object} controllers.TalkSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /talks/{id} [get]
func (c *TalkController) GetTalk(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	talk, err := c.Service.Get(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, c.Logger, err, "talk not found")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, talk)
}

// CreateTalk godoc
// @Summary Create a talk
// @Description Creates a talk given by an existing speaker in an existing room. Without speaker_id or room_id nothing is created and 204 is returned.
// @Tags talks
// @Accept json
// @Produce json
// @Param body body controllers.TalkRequest true "Talk"
// @Success 201 {object} controllers.TalkSuccessResponse
// @Success 204 "speaker_id or room_id missing"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found (speaker or room)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /talks [post]
func (c *TalkController) CreateTalk(w http.ResponseWriter, r *http.Request) {
	var req TalkRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	talk := &domain.Talk{
		Title:       req.Title,
		Description: req.Description,
		Published:   req.Published,
		SpeakerID:   req.SpeakerID,
		RoomID:      req.RoomID,
	}
	if err := c.Service.CreateTalk(r.Context(), talk); err != nil {
		writeServiceError(w, r, c.Logger, err, "speaker or room not found")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, talk)
}

// CreateTutorial godoc
// @Summary Create a tutorial
// @Description Creates a talk without a room. Without speaker_id nothing is created and 204 is returned.
// @Tags talks
// @Accept json
// @Produce json
// @Param body body controllers.TutorialRequest true "Tutorial"
// @Success 201 {object} controllers.TalkSuccessResponse
// @Success 204 "speaker_id missing"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found (speaker)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /tutorials [post]
func (c *TalkController) CreateTutorial(w http.ResponseWriter, r *http.Request) {
	var req TutorialRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	talk := domain.NewTutorial(req.Title, req.Description, req.Published, req.SpeakerID)
	if err := c.Service.CreateTutorial(r.Context(), talk); err != nil {
		writeServiceError(w, r, c.Logger, err, "speaker not found")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, talk)
}

// UpdateTalk godoc
// @Summary Update a talk
// @Description Overwrites title, description and published. speaker_id moves the talk to another speaker; room moves or detaches it.
// @Tags talks
// @Accept json
// @Produce json
// @Param id path int true "Talk ID"
// @Param body body controllers.UpdateTalkRequest true "Talk fields"
// @Success 200 {object} controllers.TalkSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found (talk, speaker or room)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /talks/{id} [put]
func (c *TalkController) UpdateTalk(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req UpdateTalkRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	update := domain.TalkUpdate{
		Title:       req.Title,
		Description: req.Description,
		Published:   req.Published,
		SpeakerID:   req.SpeakerID,
	}
	if req.Room != nil {
		update.Room = &domain.RoomChange{RoomID: req.Room.RoomID}
	}
	talk, err := c.Service.Update(r.Context(), id, update)
	if err != nil {
		writeServiceError(w, r, c.Logger, err, "talk, speaker or room not found")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, talk)
}

// AssignTalkRoom godoc
// @Summary Move a talk to another room
// @Description Moves the talk to room_id, or detaches it from its room when room_id is null.
// @Tags talks
// @Accept json
// @Produce json
// @Param id path int true "Talk ID"
// @Param body body controllers.RoomAssignment true "Room assignment"
// @Success 200 {object} controllers.TalkSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found (talk or room)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /talks/{id}/room [put]
func (c *TalkController) AssignTalkRoom(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req RoomAssignment
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	talk, err := c.Service.AssignRoom(r.Context(), id, req.RoomID)
	if err != nil {
		writeServiceError(w, r, c.Logger, err, "talk or room not found")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, talk)
}

// DeleteTalk godoc
// @Summary Delete a talk
// @Description Deleting an unknown id succeeds.
// @Tags talks
// @Produce json
// @Param id path int true "Talk ID"
// @Success 200 {object} controllers.DeleteSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /talks/{id} [delete]
func (c *TalkController) DeleteTalk(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := c.Service.Delete(r.Context(), id); err != nil {
		writeServiceError(w, r, c.Logger, err, "talk not found")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, DeleteResponse{Status: "deleted"})
}

// DeleteAllTalks godoc
// @Summary Delete every talk
// @Tags talks
// @Produce json
// @Success 200 {object} controllers.DeleteSuccessResponse
// @Success 204 "No talks to delete"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /talks [delete]
func (c *TalkController) DeleteAllTalks(w http.ResponseWriter, r *http.Request) {
	n, err := c.Service.DeleteAll(r.Context())
	if err != nil {
		writeServiceError(w, r, c.Logger, err, "talk not found")
		return
	}
	writeDeleteAll(w, n)
}
