package http

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"talkcatalog/internal/delivery/http/controllers"
	"talkcatalog/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testLogger = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))

// The stubs embed the service interfaces and record which method the router reached.
// Methods that are not overridden panic, which fails the test if routed to unexpectedly.

type stubSpeakers struct {
	domain.SpeakerService
	called string
}

func (s *stubSpeakers) Get(ctx context.Context, id int64) (*domain.Speaker, error) {
	s.called = "Get"
	return &domain.Speaker{ID: id}, nil
}

func (s *stubSpeakers) ListPage(ctx context.Context, p domain.PageRequest) (*domain.Page[*domain.Speaker], error) {
	s.called = "ListPage"
	return domain.NewPage[*domain.Speaker](nil, p, 0), nil
}

func (s *stubSpeakers) ListByFirstName(ctx context.Context, firstName string) ([]*domain.SpeakerSummary, error) {
	s.called = "ListByFirstName"
	return nil, nil
}

func (s *stubSpeakers) DeleteAll(ctx context.Context) (int64, error) {
	s.called = "DeleteAll"
	return 0, nil
}

func (s *stubSpeakers) Delete(ctx context.Context, id int64) error {
	s.called = "Delete"
	return nil
}

func (s *stubSpeakers) TalkCounts(ctx context.Context, prefix string) ([]*domain.SpeakerTalk, error) {
	s.called = "TalkCounts"
	return nil, nil
}

type stubTalks struct {
	domain.TalkService
	called string
}

func (s *stubTalks) Get(ctx context.Context, id int64) (*domain.Talk, error) {
	s.called = "Get"
	return &domain.Talk{ID: id}, nil
}

func (s *stubTalks) ListPublished(ctx context.Context, published bool) ([]*domain.Talk, error) {
	s.called = "ListPublished"
	return nil, nil
}

func (s *stubTalks) ListWithFunction(ctx context.Context) ([]*domain.Talk, error) {
	s.called = "ListWithFunction"
	return nil, nil
}

func (s *stubTalks) AssignRoom(ctx context.Context, talkID int64, roomID *int64) (*domain.Talk, error) {
	s.called = "AssignRoom"
	return &domain.Talk{ID: talkID, RoomID: roomID}, nil
}

type stubRooms struct {
	domain.RoomService
	called string
}

func (s *stubRooms) ListTalks(ctx context.Context, id int64) ([]*domain.Talk, error) {
	s.called = "ListTalks"
	return nil, nil
}

func TestNewRouter(t *testing.T) {
	tests := []struct {
		method     string
		path       string
		body       string
		wantStatus int
		wantCalled func(s *stubSpeakers, tk *stubTalks, r *stubRooms) string
		want       string
	}{
		{http.MethodGet, "/speakers/page", "", http.StatusOK, func(s *stubSpeakers, _ *stubTalks, _ *stubRooms) string { return s.called }, "ListPage"},
		{http.MethodGet, "/speakers/by-first-name?first_name=Ada", "", http.StatusOK, func(s *stubSpeakers, _ *stubTalks, _ *stubRooms) string { return s.called }, "ListByFirstName"},
		{http.MethodGet, "/speakers/4", "", http.StatusOK, func(s *stubSpeakers, _ *stubTalks, _ *stubRooms) string { return s.called }, "Get"},
		{http.MethodDelete, "/speakers", "", http.StatusNoContent, func(s *stubSpeakers, _ *stubTalks, _ *stubRooms) string { return s.called }, "DeleteAll"},
		{http.MethodDelete, "/speakers/4", "", http.StatusOK, func(s *stubSpeakers, _ *stubTalks, _ *stubRooms) string { return s.called }, "Delete"},
		{http.MethodGet, "/speaker-talks/counts", "", http.StatusOK, func(s *stubSpeakers, _ *stubTalks, _ *stubRooms) string { return s.called }, "TalkCounts"},
		{http.MethodGet, "/talks/published", "", http.StatusOK, func(_ *stubSpeakers, tk *stubTalks, _ *stubRooms) string { return tk.called }, "ListPublished"},
		{http.MethodGet, "/talks/function", "", http.StatusOK, func(_ *stubSpeakers, tk *stubTalks, _ *stubRooms) string { return tk.called }, "ListWithFunction"},
		{http.MethodGet, "/talks/12", "", http.StatusOK, func(_ *stubSpeakers, tk *stubTalks, _ *stubRooms) string { return tk.called }, "Get"},
		{http.MethodPut, "/talks/12/room", `{"room_id":null}`, http.StatusOK, func(_ *stubSpeakers, tk *stubTalks, _ *stubRooms) string { return tk.called }, "AssignRoom"},
		{http.MethodGet, "/rooms/3/talks", "", http.StatusOK, func(_ *stubSpeakers, _ *stubTalks, r *stubRooms) string { return r.called }, "ListTalks"},
		{http.MethodPatch, "/speakers/4", "", http.StatusMethodNotAllowed, func(s *stubSpeakers, _ *stubTalks, _ *stubRooms) string { return s.called }, ""},
		{http.MethodGet, "/sessions", "", http.StatusNotFound, func(s *stubSpeakers, _ *stubTalks, _ *stubRooms) string { return s.called }, ""},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			speakers, talks, rooms := &stubSpeakers{}, &stubTalks{}, &stubRooms{}
			router := NewRouter(
				controllers.NewSpeakerController(testLogger, speakers),
				controllers.NewTalkController(testLogger, talks),
				controllers.NewRoomController(testLogger, rooms),
			)
			var req *http.Request
			if tt.body == "" {
				req = httptest.NewRequest(tt.method, tt.path, nil)
			} else {
				req = httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body))
			}
			rr := httptest.NewRecorder()

			router.ServeHTTP(rr, req)

			require.Equal(t, tt.wantStatus, rr.Code)
			assert.Equal(t, tt.want, tt.wantCalled(speakers, talks, rooms))
		})
	}
}
