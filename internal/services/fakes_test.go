package services

import (
	"context"
	"io"
	"log/slog"
	"sort"
	"strings"

	"talkcatalog/internal/domain"
)

// testLogger discards output so tests do not assert on logs.
var testLogger = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))

func int64Ptr(v int64) *int64 { return &v }

// fakeStore is an in-memory domain.UnitOfWork. Execute snapshots the maps and restores them
// when fn fails, so rollback behaviour can be asserted.
type fakeStore struct {
	speakers map[int64]*domain.Speaker
	talks    map[int64]*domain.Talk
	rooms    map[int64]*domain.Room
	nextID   int64

	// errs injects failures keyed by operation name, e.g. "talks.ReassignSpeaker".
	errs map[string]error

	commits   int
	rollbacks int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		speakers: make(map[int64]*domain.Speaker),
		talks:    make(map[int64]*domain.Talk),
		rooms:    make(map[int64]*domain.Room),
		nextID:   1,
		errs:     make(map[string]error),
	}
}

func (f *fakeStore) id() int64 {
	id := f.nextID
	f.nextID++
	return id
}

func (f *fakeStore) addSpeaker(first, last string) *domain.Speaker {
	s := domain.NewSpeaker(first, last, domain.UnknownAge)
	s.ID = f.id()
	f.speakers[s.ID] = s
	return s
}

func (f *fakeStore) addRoom(name string) *domain.Room {
	r := domain.NewRoom(name, 100, 0)
	r.ID = f.id()
	f.rooms[r.ID] = r
	return r
}

func (f *fakeStore) addTalk(title string, speakerID int64, roomID *int64) *domain.Talk {
	t := &domain.Talk{Title: title, SpeakerID: speakerID, RoomID: roomID}
	t.ID = f.id()
	f.talks[t.ID] = t
	return t
}

// talksOf returns the ids of the talks whose speaker is speakerID.
func (f *fakeStore) talksOf(speakerID int64) []int64 {
	var ids []int64
	for _, t := range f.sortedTalks() {
		if t.SpeakerID == speakerID {
			ids = append(ids, t.ID)
		}
	}
	return ids
}

// talksIn returns the ids of the talks in roomID.
func (f *fakeStore) talksIn(roomID int64) []int64 {
	var ids []int64
	for _, t := range f.sortedTalks() {
		if t.InRoom(roomID) {
			ids = append(ids, t.ID)
		}
	}
	return ids
}

func (f *fakeStore) sortedTalks() []*domain.Talk {
	out := make([]*domain.Talk, 0, len(f.talks))
	for _, t := range f.talks {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (f *fakeStore) Speakers() domain.SpeakerRepository { return &fakeSpeakerRepo{f} }
func (f *fakeStore) Talks() domain.TalkRepository { return &fakeTalkRepo{f} }
func (f *fakeStore) Rooms() domain.RoomRepository { return &fakeRoomRepo{f} }
func (f *fakeStore) Assignments() domain.RoomAssignmentRepository { return &fakeAssignmentRepo{f} }
func (f *fakeStore) Projections() domain.ProjectionRepository { return &fakeProjectionRepo{f} }

func (f *fakeStore) Execute(ctx context.Context, fn func(repos domain.Repositories) error) error {
	speakers := make(map[int64]*domain.Speaker, len(f.speakers))
	for k, v := range f.speakers {
		c := *v
		speakers[k] = &c
	}
	talks := make(map[int64]*domain.Talk, len(f.talks))
	for k, v := range f.talks {
		c := *v
		talks[k] = &c
	}
	rooms := make(map[int64]*domain.Room, len(f.rooms))
	for k, v := range f.rooms {
		c := *v
		rooms[k] = &c
	}
	if err := fn(f); err != nil {
		f.speakers, f.talks, f.rooms = speakers, talks, rooms
		f.rollbacks++
		return err
	}
	f.commits++
	return nil
}

type fakeSpeakerRepo struct{ f *fakeStore }

func (r *fakeSpeakerRepo) Create(ctx context.Context, s *domain.Speaker) error {
	if err := r.f.errs["speakers.Create"]; err != nil {
		return err
	}
	s.ID = r.f.id()
	c := *s
	r.f.speakers[s.ID] = &c
	return nil
}

func (r *fakeSpeakerRepo) Update(ctx context.Context, s *domain.Speaker) error {
	if _, ok := r.f.speakers[s.ID]; !ok {
		return domain.ErrNotFound
	}
	c := *s
	r.f.speakers[s.ID] = &c
	return nil
}

func (r *fakeSpeakerRepo) Save(ctx context.Context, s *domain.Speaker) error {
	if s.ID == 0 {
		return r.Create(ctx, s)
	}
	return r.Update(ctx, s)
}

func (r *fakeSpeakerRepo) GetByID(ctx context.Context, id int64) (*domain.Speaker, error) {
	if err := r.f.errs["speakers.GetByID"]; err != nil {
		return nil, err
	}
	s, ok := r.f.speakers[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	c := *s
	return &c, nil
}

func (r *fakeSpeakerRepo) sorted() []*domain.Speaker {
	out := make([]*domain.Speaker, 0, len(r.f.speakers))
	for _, s := range r.f.speakers {
		c := *s
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (r *fakeSpeakerRepo) List(ctx context.Context, _ domain.Sort) ([]*domain.Speaker, error) {
	if err := r.f.errs["speakers.List"]; err != nil {
		return nil, err
	}
	return r.sorted(), nil
}

func (r *fakeSpeakerRepo) ListPage(ctx context.Context, page domain.PageRequest) ([]*domain.Speaker, int, error) {
	all := r.sorted()
	start := page.Offset()
	if start > len(all) {
		start = len(all)
	}
	end := start + page.Size
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], len(all), nil
}

func (r *fakeSpeakerRepo) ListByFirstName(ctx context.Context, firstName string) ([]*domain.SpeakerSummary, error) {
	var out []*domain.SpeakerSummary
	for _, s := range r.sorted() {
		if s.FirstName == firstName {
			out = append(out, &domain.SpeakerSummary{ID: s.ID, LastName: s.LastName})
		}
	}
	return out, nil
}

func (r *fakeSpeakerRepo) LowestIDExcept(ctx context.Context, id int64) (*domain.Speaker, error) {
	for _, s := range r.sorted() {
		if s.ID != id {
			return s, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *fakeSpeakerRepo) Delete(ctx context.Context, id int64) error {
	if err := r.f.errs["speakers.Delete"]; err != nil {
		return err
	}
	if len(r.f.talksOf(id)) > 0 {
		return domain.ErrHasDependents
	}
	delete(r.f.speakers, id)
	return nil
}

func (r *fakeSpeakerRepo) DeleteAll(ctx context.Context) (int64, error) {
	if len(r.f.talks) > 0 {
		return 0, domain.ErrHasDependents
	}
	n := int64(len(r.f.speakers))
	r.f.speakers = make(map[int64]*domain.Speaker)
	return n, nil
}

type fakeTalkRepo struct{ f *fakeStore }

func (r *fakeTalkRepo) checkRefs(t *domain.Talk) error {
	if _, ok := r.f.speakers[t.SpeakerID]; !ok {
		return domain.ErrNotFound
	}
	return nil
}

func (r *fakeTalkRepo) Create(ctx context.Context, t *domain.Talk) error {
	if err := r.f.errs["talks.Create"]; err != nil {
		return err
	}
	if err := r.checkRefs(t); err != nil {
		return err
	}
	t.ID = r.f.id()
	c := *t
	r.f.talks[t.ID] = &c
	return nil
}

func (r *fakeTalkRepo) Update(ctx context.Context, t *domain.Talk) error {
	if err := r.f.errs["talks.Update"]; err != nil {
		return err
	}
	stored, ok := r.f.talks[t.ID]
	if !ok {
		return domain.ErrNotFound
	}
	if err := r.checkRefs(t); err != nil {
		return err
	}
	stored.Title = t.Title
	stored.Description = t.Description
	stored.Published = t.Published
	stored.SpeakerID = t.SpeakerID
	return nil
}

func (r *fakeTalkRepo) Save(ctx context.Context, t *domain.Talk) error {
	if t.ID == 0 {
		return r.Create(ctx, t)
	}
	return r.Update(ctx, t)
}

func (r *fakeTalkRepo) GetByID(ctx context.Context, id int64) (*domain.Talk, error) {
	t, ok := r.f.talks[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	c := *t
	return &c, nil
}

func (r *fakeTalkRepo) filter(keep func(t *domain.Talk) bool) []*domain.Talk {
	var out []*domain.Talk
	for _, t := range r.f.sortedTalks() {
		if keep(t) {
			c := *t
			out = append(out, &c)
		}
	}
	return out
}

func (r *fakeTalkRepo) List(ctx context.Context) ([]*domain.Talk, error) {
	if err := r.f.errs["talks.List"]; err != nil {
		return nil, err
	}
	return r.filter(func(*domain.Talk) bool { return true }), nil
}

func (r *fakeTalkRepo) ListByTitleContaining(ctx context.Context, substring string) ([]*domain.Talk, error) {
	return r.filter(func(t *domain.Talk) bool { return strings.Contains(t.Title, substring) }), nil
}

func (r *fakeTalkRepo) ListByPublished(ctx context.Context, published bool) ([]*domain.Talk, error) {
	return r.filter(func(t *domain.Talk) bool { return t.Published == published }), nil
}

func (r *fakeTalkRepo) ListWithFunction(ctx context.Context) ([]*domain.Talk, error) {
	return r.List(ctx)
}

func (r *fakeTalkRepo) ListBySpeakerID(ctx context.Context, speakerID int64) ([]*domain.Talk, error) {
	if err := r.f.errs["talks.ListBySpeakerID"]; err != nil {
		return nil, err
	}
	return r.filter(func(t *domain.Talk) bool { return t.SpeakerID == speakerID }), nil
}

func (r *fakeTalkRepo) ListByRoomID(ctx context.Context, roomID int64) ([]*domain.Talk, error) {
	return r.filter(func(t *domain.Talk) bool { return t.InRoom(roomID) }), nil
}

func (r *fakeTalkRepo) SpeakerIDOf(ctx context.Context, talkID int64) (int64, error) {
	t, ok := r.f.talks[talkID]
	if !ok {
		return 0, domain.ErrNotFound
	}
	return t.SpeakerID, nil
}

func (r *fakeTalkRepo) ReassignSpeaker(ctx context.Context, talkIDs []int64, speakerID int64) (int64, error) {
	var n int64
	for _, id := range talkIDs {
		if t, ok := r.f.talks[id]; ok {
			t.SpeakerID = speakerID
			n++
		}
		// Failure after partial progress exercises rollback.
		if err := r.f.errs["talks.ReassignSpeaker"]; err != nil {
			return n, err
		}
	}
	return n, nil
}

func (r *fakeTalkRepo) Delete(ctx context.Context, id int64) error {
	delete(r.f.talks, id)
	return nil
}

func (r *fakeTalkRepo) DeleteAll(ctx context.Context) (int64, error) {
	n := int64(len(r.f.talks))
	r.f.talks = make(map[int64]*domain.Talk)
	return n, nil
}

type fakeRoomRepo struct{ f *fakeStore }

func (r *fakeRoomRepo) Create(ctx context.Context, room *domain.Room) error {
	room.ID = r.f.id()
	c := *room
	r.f.rooms[room.ID] = &c
	return nil
}

func (r *fakeRoomRepo) Update(ctx context.Context, room *domain.Room) error {
	if _, ok := r.f.rooms[room.ID]; !ok {
		return domain.ErrNotFound
	}
	c := *room
	r.f.rooms[room.ID] = &c
	return nil
}

func (r *fakeRoomRepo) Save(ctx context.Context, room *domain.Room) error {
	if room.ID == 0 {
		return r.Create(ctx, room)
	}
	return r.Update(ctx, room)
}

func (r *fakeRoomRepo) GetByID(ctx context.Context, id int64) (*domain.Room, error) {
	room, ok := r.f.rooms[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	c := *room
	return &c, nil
}

func (r *fakeRoomRepo) List(ctx context.Context) ([]*domain.Room, error) {
	out := make([]*domain.Room, 0, len(r.f.rooms))
	for _, room := range r.f.rooms {
		c := *room
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeRoomRepo) Delete(ctx context.Context, id int64) error {
	if len(r.f.talksIn(id)) > 0 {
		return domain.ErrHasDependents
	}
	delete(r.f.rooms, id)
	return nil
}

func (r *fakeRoomRepo) DeleteAll(ctx context.Context) (int64, error) {
	for _, t := range r.f.talks {
		if t.RoomID != nil {
			return 0, domain.ErrHasDependents
		}
	}
	n := int64(len(r.f.rooms))
	r.f.rooms = make(map[int64]*domain.Room)
	return n, nil
}

type fakeAssignmentRepo struct{ f *fakeStore }

func (r *fakeAssignmentRepo) Reassign(ctx context.Context, talkID int64, roomID *int64) (*int64, error) {
	if err := r.f.errs["assignments.Reassign"]; err != nil {
		return nil, err
	}
	t, ok := r.f.talks[talkID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if roomID != nil {
		if _, ok := r.f.rooms[*roomID]; !ok {
			return nil, domain.ErrNotFound
		}
	}
	previous := t.RoomID
	if roomID == nil {
		t.RoomID = nil
	} else {
		t.RoomID = int64Ptr(*roomID)
	}
	return previous, nil
}

func (r *fakeAssignmentRepo) CountTalks(ctx context.Context, roomID int64) (int, error) {
	return len(r.f.talksIn(roomID)), nil
}

func (r *fakeAssignmentRepo) DeleteTalks(ctx context.Context, roomID int64) (int64, error) {
	ids := r.f.talksIn(roomID)
	for _, id := range ids {
		delete(r.f.talks, id)
	}
	return int64(len(ids)), nil
}

func (r *fakeAssignmentRepo) CountAssigned(ctx context.Context) (int, error) {
	n := 0
	for _, t := range r.f.talks {
		if t.RoomID != nil {
			n++
		}
	}
	return n, nil
}

func (r *fakeAssignmentRepo) DeleteAssigned(ctx context.Context) (int64, error) {
	var n int64
	for id, t := range r.f.talks {
		if t.RoomID != nil {
			delete(r.f.talks, id)
			n++
		}
	}
	return n, nil
}

type fakeProjectionRepo struct{ f *fakeStore }

func (r *fakeProjectionRepo) join(keep func(t *domain.Talk) bool) []*domain.SpeakerTalk {
	var out []*domain.SpeakerTalk
	for _, t := range r.f.sortedTalks() {
		s, ok := r.f.speakers[t.SpeakerID]
		if !ok || !keep(t) {
			continue
		}
		out = append(out, domain.NewSpeakerTalk(s.LastName, t.Title, t.Description, s.ID, t.ID))
	}
	return out
}

func (r *fakeProjectionRepo) SpeakerTalks(ctx context.Context, speakerID int64) ([]*domain.SpeakerTalk, error) {
	return r.join(func(t *domain.Talk) bool { return t.SpeakerID == speakerID }), nil
}

func (r *fakeProjectionRepo) AllSpeakerTalks(ctx context.Context) ([]*domain.SpeakerTalk, error) {
	return r.join(func(*domain.Talk) bool { return true }), nil
}

func (r *fakeProjectionRepo) TalkCounts(ctx context.Context, titlePrefix string) ([]*domain.SpeakerTalk, error) {
	counts := make(map[int64]*domain.SpeakerTalk)
	var order []int64
	for _, t := range r.f.sortedTalks() {
		if !strings.HasPrefix(t.Title, titlePrefix) {
			continue
		}
		s := r.f.speakers[t.SpeakerID]
		row, ok := counts[s.ID]
		if !ok {
			row = domain.NewSpeakerTalkCount(s.LastName, s.ID, 0, 0)
			counts[s.ID] = row
			order = append(order, s.ID)
		}
		row.NumTalks++
		if t.Published {
			row.PublishedTalks++
		}
	}
	sort.Slice(order, func(i, j int) bool { return order[i] < order[j] })
	out := make([]*domain.SpeakerTalk, 0, len(order))
	for _, id := range order {
		out = append(out, counts[id])
	}
	return out, nil
}

// fakeFinder stands in for the ORM projection path.
type fakeFinder struct {
	rows   []*domain.SpeakerTalk
	err    error
	called bool
}

func (f *fakeFinder) SpeakerTalks(ctx context.Context, speakerID int64) ([]*domain.SpeakerTalk, error) {
	f.called = true
	return f.rows, f.err
}

func (f *fakeFinder) AllSpeakerTalks(ctx context.Context) ([]*domain.SpeakerTalk, error) {
	f.called = true
	return f.rows, f.err
}
