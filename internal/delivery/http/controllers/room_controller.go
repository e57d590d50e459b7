package controllers

import (
	"log/slog"
	"net/http"
	"strings"

	"talkcatalog/internal/delivery/http/helpers"
	"talkcatalog/internal/domain"
)

type RoomController struct {
	Logger  *slog.Logger
	Service domain.RoomService
}

func NewRoomController(logger *slog.Logger, svc domain.RoomService) *RoomController {
	return &RoomController{
		Logger:  logger,
		Service: svc,
	}
}

// RoomRequest is the request body for POST /rooms and PUT /rooms/{id}.
type RoomRequest struct {
	Name     string `json:"room_name" validate:"required,max=255"`
	Capacity int64  `json:"room_capacity" validate:"gte=0"`
	Floor    int    `json:"room_floor"`
}

// Validate implements helpers.Validator.
func (r *RoomRequest) Validate() []string {
	r.Name = strings.TrimSpace(r.Name)
	if r.Name == "" {
		return []string{"room_name must not be blank"}
	}
	return nil
}

// RoomSuccessResponse is the success response envelope for single-room endpoints.
type RoomSuccessResponse struct {
	Data  *domain.Room      `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// ListRoomsSuccessResponse is the success response envelope for GET /rooms.
type ListRoomsSuccessResponse struct {
	Data  []*domain.Room    `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// ListRooms godoc
// @Summary List rooms
// @Tags rooms
// @Produce json
// @Success 200 {object} controllers.ListRoomsSuccessResponse
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /rooms [get]
func (c *RoomController) ListRooms(w http.ResponseWriter, r *http.Request) {
	rooms, err := c.Service.List(r.Context())
	if err != nil {
		writeServiceError(w, r, c.Logger, err, "room not found")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, rooms)
}

// GetRoom godoc
// @Summary Get a room by ID
// @Tags rooms
// @Produce json
// @Param id path int true "Room ID"
// @Success 200 {object} controllers.RoomSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /rooms/{id} [get]
func (c *RoomController) GetRoom(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	room, err := c.Service.Get(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, c.Logger, err, "room not found")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, room)
}

// ListRoomTalks godoc
// @Summary List the talks held in a room
// @Tags rooms
// @Produce json
// @Param id path int true "Room ID"
// @Success 200 {object} controllers.ListTalksSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /rooms/{id}/talks [get]
func (c *RoomController) ListRoomTalks(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	talks, err := c.Service.ListTalks(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, c.Logger, err, "room not found")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, talks)
}

// CreateRoom godoc
// @Summary Create a room
// @Tags rooms
// @Accept json
// @Produce json
// @Param body body controllers.RoomRequest true "Room"
// @Success 201 {object} controllers.RoomSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /rooms [post]
func (c *RoomController) CreateRoom(w http.ResponseWriter, r *http.Request) {
	var req RoomRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	room := domain.NewRoom(req.Name, req.Capacity, req.Floor)
	if err := c.Service.Create(r.Context(), room); err != nil {
		writeServiceError(w, r, c.Logger, err, "room not found")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, room)
}

// UpdateRoom godoc
// @Summary Update a room
// @Tags rooms
// @Accept json
// @Produce json
// @Param id path int true "Room ID"
// @Param body body controllers.RoomRequest true "Room"
// @Success 200 {object} controllers.RoomSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /rooms/{id} [put]
func (c *RoomController) UpdateRoom(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req RoomRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	room, err := c.Service.Update(r.Context(), id, domain.RoomUpdate{
		Name:     req.Name,
		Capacity: req.Capacity,
		Floor:    req.Floor,
	})
	if err != nil {
		writeServiceError(w, r, c.Logger, err, "room not found")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, room)
}

// DeleteRoom godoc
// @Summary Delete a room
// @Description Under the reject policy a room holding talks cannot be deleted (409); under the cascade policy its talks are deleted with it. Deleting an unknown id succeeds.
// @Tags rooms
// @Produce json
// @Param id path int true "Room ID"
// @Success 200 {object} controllers.DeleteSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /rooms/{id} [delete]
func (c *RoomController) DeleteRoom(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := c.Service.Delete(r.Context(), id); err != nil {
		writeServiceError(w, r, c.Logger, err, "room not found")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, DeleteResponse{Status: "deleted"})
}

// DeleteAllRooms godoc
// @Summary Delete every room
// @Description Follows the room delete policy. Returns 204 when there were no rooms.
// @Tags rooms
// @Produce json
// @Success 200 {object} controllers.DeleteSuccessResponse
// @Success 204 "No rooms to delete"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /rooms [delete]
func (c *RoomController) DeleteAllRooms(w http.ResponseWriter, r *http.Request) {
	n, err := c.Service.DeleteAll(r.Context())
	if err != nil {
		writeServiceError(w, r, c.Logger, err, "room not found")
		return
	}
	writeDeleteAll(w, n)
}
