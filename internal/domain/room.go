package domain

import (
	"context"
	"fmt"
)

// Room is a physical room talks are held in.
// swagger:model Room
type Room struct {
	ID       int64  `json:"id"`
	Name     string `json:"room_name"`
	Capacity int64  `json:"room_capacity"`
	Floor    int    `json:"room_floor"`
}

// NewRoom returns a new Room. ID is set by the repository on create.
func NewRoom(name string, capacity int64, floor int) *Room {
	return &Room{
		Name:     name,
		Capacity: capacity,
		Floor:    floor,
	}
}

// SameAs reports whether both rooms refer to the same stored row.
func (r *Room) SameAs(other *Room) bool {
	return r != nil && other != nil && r.ID != 0 && r.ID == other.ID
}

func (r *Room) String() string {
	return fmt.Sprintf("Room %d: %s (capacity %d, floor %d)", r.ID, r.Name, r.Capacity, r.Floor)
}

// RoomDeletePolicy decides what happens to the talks of a deleted room.
type RoomDeletePolicy string

const (
	// RoomDeleteReject refuses to delete a room that still has talks.
	RoomDeleteReject RoomDeletePolicy = "reject"
	// RoomDeleteCascade deletes the room's talks together with the room.
	RoomDeleteCascade RoomDeletePolicy = "cascade"
)

// Valid reports whether p is a known policy.
func (p RoomDeletePolicy) Valid() bool {
	return p == RoomDeleteReject || p == RoomDeleteCascade
}

// RoomRepository defines storage for rooms.
type RoomRepository interface {
	Create(ctx context.Context, room *Room) error
	Update(ctx context.Context, room *Room) error
	Save(ctx context.Context, room *Room) error
	GetByID(ctx context.Context, id int64) (*Room, error)
	List(ctx context.Context) ([]*Room, error)
	Delete(ctx context.Context, id int64) error
	DeleteAll(ctx context.Context) (int64, error)
}

// RoomUpdate carries the scalar fields written by a room update.
type RoomUpdate struct {
	Name     string
	Capacity int64
	Floor    int
}

// RoomService exposes room operations to the delivery layer.
type RoomService interface {
	Create(ctx context.Context, room *Room) error
	Get(ctx context.Context, id int64) (*Room, error)
	List(ctx context.Context) ([]*Room, error)
	ListTalks(ctx context.Context, id int64) ([]*Talk, error)
	Update(ctx context.Context, id int64, update RoomUpdate) (*Room, error)
	// Delete removes the room according to the configured RoomDeletePolicy.
	Delete(ctx context.Context, id int64) error
	DeleteAll(ctx context.Context) (int64, error)
}
