package controllers

import (
	"log/slog"
	"net/http"
	"strings"

	"talkcatalog/internal/delivery/http/helpers"
	"talkcatalog/internal/domain"
)

type SpeakerController struct {
	Logger  *slog.Logger
	Service domain.SpeakerService
}

func NewSpeakerController(logger *slog.Logger, svc domain.SpeakerService) *SpeakerController {
	return &SpeakerController{
		Logger:  logger,
		Service: svc,
	}
}

// SpeakerRequest is the request body for POST /speakers and PUT /speakers/{id}.
// Age may be omitted; the speaker is then stored with an unknown age (-1).
type SpeakerRequest struct {
	FirstName string `json:"first_name" validate:"required,max=255"`
	LastName  string `json:"last_name" validate:"required,max=255"`
	Age       *int   `json:"age,omitempty" validate:"omitempty,gte=-1"`
}

// Validate implements helpers.Validator.
func (r *SpeakerRequest) Validate() []string {
	var errs []string
	r.FirstName = strings.TrimSpace(r.FirstName)
	r.LastName = strings.TrimSpace(r.LastName)
	if r.FirstName == "" {
		errs = append(errs, "first_name must not be blank")
	}
	if r.LastName == "" {
		errs = append(errs, "last_name must not be blank")
	}
	return errs
}

func (r *SpeakerRequest) age() int {
	if r.Age == nil {
		return domain.UnknownAge
	}
	return *r.Age
}

// SpeakerSuccessResponse is the success response envelope for single-speaker endpoints.
type SpeakerSuccessResponse struct {
	Data  *domain.Speaker   `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// ListSpeakersSuccessResponse is the success response envelope for GET /speakers.
type ListSpeakersSuccessResponse struct {
	Data  []*domain.Speaker `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// SpeakerPage is one page of speakers with its pagination metadata.
type SpeakerPage struct {
	Items      []*domain.Speaker      `json:"items"`
	Pagination helpers.PaginationMeta `json:"pagination"`
}

// SpeakerPageSuccessResponse is the success response envelope for GET /speakers/page.
type SpeakerPageSuccessResponse struct {
	Data  SpeakerPage       `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// SpeakerSummariesSuccessResponse is the success response envelope for GET /speakers/by-first-name.
type SpeakerSummariesSuccessResponse struct {
	Data  []*domain.SpeakerSummary `json:"data"`
	Error *helpers.APIError        `json:"error"`
}

// SpeakerTalksSuccessResponse is the success response envelope for the speaker/talk projections.
type SpeakerTalksSuccessResponse struct {
	Data  []*domain.SpeakerTalk `json:"data"`
	Error *helpers.APIError     `json:"error"`
}

// ListSpeakers godoc
// @Summary List speakers
// @Description Returns every speaker. order_by takes a comma separated list of id, first_name, last_name or age, each optionally followed by "desc".
// @Tags speakers
// @Produce json
// @Param order_by query string false "Sort order, e.g. last_name desc,first_name"
// @Success 200 {object} controllers.ListSpeakersSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /speakers [get]
func (c *SpeakerController) ListSpeakers(w http.ResponseWriter, r *http.Request) {
	sort, err := helpers.ParseSort(r, domain.SpeakerSortFields...)
	if err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
		return
	}
	speakers, err := c.Service.List(r.Context(), sort)
	if err != nil {
		writeServiceError(w, r, c.Logger, err, "speaker not found")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, speakers)
}

// ListSpeakersPage godoc
// @Summary List speakers page by page
// @Description Returns one zero-based page of speakers with pagination metadata.
// @Tags speakers
// @Produce json
// @Param page query int false "Zero-based page (default 0)"
// @Param page_size query int false "Page size (default 20, max 100)"
// @Param order_by query string false "Sort order, e.g. age desc"
// @Success 200 {object} controllers.SpeakerPageSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /speakers/page [get]
func (c *SpeakerController) ListSpeakersPage(w http.ResponseWriter, r *http.Request) {
	req, err := helpers.ParsePagination(r, domain.SpeakerSortFields...)
	if err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
		return
	}
	page, err := c.Service.ListPage(r.Context(), req)
	if err != nil {
		writeServiceError(w, r, c.Logger, err, "speaker not found")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, SpeakerPage{
		Items:      page.Items,
		Pagination: helpers.NewPaginationMeta(page.Page, page.Size, page.Total),
	})
}

// ListSpeakersByFirstName godoc
// @Summary Find speakers by first name
// @Description Returns id and last name of every speaker with exactly this first name.
// @Tags speakers
// @Produce json
// @Param first_name query string true "First name"
// @Success 200 {object} controllers.SpeakerSummariesSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /speakers/by-first-name [get]
func (c *SpeakerController) ListSpeakersByFirstName(w http.ResponseWriter, r *http.Request) {
	firstName := strings.TrimSpace(r.URL.Query().Get("first_name"))
	if firstName == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "first_name is required")
		return
	}
	out, err := c.Service.ListByFirstName(r.Context(), firstName)
	if err != nil {
		writeServiceError(w, r, c.Logger, err, "speaker not found")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, out)
}

// GetSpeaker godoc
// @Summary Get a speaker by ID
// @Tags speakers
// @Produce json
// @Param id path int true "Speaker ID"
// @Success 200 {object} controllers.SpeakerSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /speakers/{id} [get]
func (c *SpeakerController) GetSpeaker(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	speaker, err := c.Service.Get(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, c.Logger, err, "speaker not found")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, speaker)
}

// ListSpeakerTalks godoc
// @Summary List the talks of a speaker
// @Tags speakers
// @Produce json
// @Param id path int true "Speaker ID"
// @Success 200 {object} controllers.ListTalksSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /speakers/{id}/talks [get]
func (c *SpeakerController) ListSpeakerTalks(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	talks, err := c.Service.ListTalks(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, c.Logger, err, "speaker not found")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, talks)
}

// GetSpeakerTalks godoc
// @Summary Join a speaker with its talks
// @Description Returns one row per talk of the speaker. source selects the native SQL join (default) or the ORM join; both return the same rows.
// @Tags speaker-talks
// @Produce json
// @Param id path int true "Speaker ID"
// @Param source query string false "native or orm"
// @Success 200 {object} controllers.SpeakerTalksSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /speakers/{id}/speaker-talks [get]
func (c *SpeakerController) GetSpeakerTalks(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	source := domain.ProjectionSource(r.URL.Query().Get("source"))
	rows, err := c.Service.SpeakerTalks(r.Context(), id, source)
	if err != nil {
		writeServiceError(w, r, c.Logger, err, "speaker not found")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, rows)
}

// ListAllSpeakerTalks godoc
// @Summary Join every speaker with its talks
// @Tags speaker-talks
// @Produce json
// @Success 200 {object} controllers.SpeakerTalksSuccessResponse
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /speaker-talks [get]
func (c *SpeakerController) ListAllSpeakerTalks(w http.ResponseWriter, r *http.Request) {
	rows, err := c.Service.AllSpeakerTalks(r.Context())
	if err != nil {
		writeServiceError(w, r, c.Logger, err, "speaker not found")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, rows)
}

// ListTalkCounts godoc
// @Summary Count talks per speaker
// @Description Counts, per speaker, the talks whose title starts with title_prefix and how many of them are published. Speakers without a matching talk are left out.
// @Tags speaker-talks
// @Produce json
// @Param title_prefix query string false "Title prefix (empty matches every talk)"
// @Success 200 {object} controllers.SpeakerTalksSuccessResponse
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /speaker-talks/counts [get]
func (c *SpeakerController) ListTalkCounts(w http.ResponseWriter, r *http.Request) {
	rows, err := c.Service.TalkCounts(r.Context(), r.URL.Query().Get("title_prefix"))
	if err != nil {
		writeServiceError(w, r, c.Logger, err, "speaker not found")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, rows)
}

// CreateSpeaker godoc
// @Summary Create a speaker
// @Tags speakers
// @Accept json
// @Produce json
// @Param body body controllers.SpeakerRequest true "Speaker"
// @Success 201 {object} controllers.SpeakerSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /speakers [post]
func (c *SpeakerController) CreateSpeaker(w http.ResponseWriter, r *http.Request) {
	var req SpeakerRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	speaker := domain.NewSpeaker(req.FirstName, req.LastName, req.age())
	if err := c.Service.Create(r.Context(), speaker); err != nil {
		writeServiceError(w, r, c.Logger, err, "speaker not found")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, speaker)
}

// UpdateSpeaker godoc
// @Summary Update a speaker
// @Description Overwrites first name, last name and age. An omitted age is stored as unknown.
// @Tags speakers
// @Accept json
// @Produce json
// @Param id path int true "Speaker ID"
// @Param body body controllers.SpeakerRequest true "Speaker"
// @Success 200 {object} controllers.SpeakerSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /speakers/{id} [put]
func (c *SpeakerController) UpdateSpeaker(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req SpeakerRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	speaker, err := c.Service.Update(r.Context(), id, domain.SpeakerUpdate{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Age:       req.age(),
	})
	if err != nil {
		writeServiceError(w, r, c.Logger, err, "speaker not found")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, speaker)
}

// DeleteSpeaker godoc
// @Summary Delete a speaker
// @Description Deletes the speaker after handing its talks to the fallback speaker. Deleting an unknown id succeeds. Fails with 409 when the speaker has talks and no other speaker can take them.
// @Tags speakers
// @Produce json
// @Param id path int true "Speaker ID"
// @Success 200 {object} controllers.DeleteSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /speakers/{id} [delete]
func (c *SpeakerController) DeleteSpeaker(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := c.Service.Delete(r.Context(), id); err != nil {
		writeServiceError(w, r, c.Logger, err, "speaker not found")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, DeleteResponse{Status: "deleted"})
}

// DeleteAllSpeakers godoc
// @Summary Delete every speaker
// @Description Returns 204 when there were no speakers. Fails with 409 while any talk exists.
// @Tags speakers
// @Produce json
// @Success 200 {object} controllers.DeleteSuccessResponse
// @Success 204 "No speakers to delete"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /speakers [delete]
func (c *SpeakerController) DeleteAllSpeakers(w http.ResponseWriter, r *http.Request) {
	n, err := c.Service.DeleteAll(r.Context())
	if err != nil {
		writeServiceError(w, r, c.Logger, err, "speaker not found")
		return
	}
	writeDeleteAll(w, n)
}
