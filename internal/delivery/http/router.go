package http

import (
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"talkcatalog/internal/delivery/http/controllers"
)

// NewRouter initializes the HTTP router with all application routes
func NewRouter(speakers *controllers.SpeakerController, talks *controllers.TalkController, rooms *controllers.RoomController) *http.ServeMux {
	mux := http.NewServeMux()

	// Speakers
	mux.HandleFunc("GET /speakers", speakers.ListSpeakers)
	mux.HandleFunc("GET /speakers/page", speakers.ListSpeakersPage)
	mux.HandleFunc("GET /speakers/by-first-name", speakers.ListSpeakersByFirstName)
	mux.HandleFunc("GET /speakers/{id}", speakers.GetSpeaker)
	mux.HandleFunc("GET /speakers/{id}/talks", speakers.ListSpeakerTalks)
	mux.HandleFunc("GET /speakers/{id}/speaker-talks", speakers.GetSpeakerTalks)
	mux.HandleFunc("POST /speakers", speakers.CreateSpeaker)
	mux.HandleFunc("PUT /speakers/{id}", speakers.UpdateSpeaker)
	mux.HandleFunc("DELETE /speakers/{id}", speakers.DeleteSpeaker)
	mux.HandleFunc("DELETE /speakers", speakers.DeleteAllSpeakers)

	// Speaker/talk projections
	mux.HandleFunc("GET /speaker-talks", speakers.ListAllSpeakerTalks)
	mux.HandleFunc("GET /speaker-talks/counts", speakers.ListTalkCounts)

	// Talks
	mux.HandleFunc("GET /talks", talks.ListTalks)
	mux.HandleFunc("GET /talks/published", talks.ListPublishedTalks)
	mux.HandleFunc("GET /talks/function", talks.ListTalksWithFunction)
	mux.HandleFunc("GET /talks/{id}", talks.GetTalk)
	mux.HandleFunc("POST /talks", talks.CreateTalk)
	mux.HandleFunc("POST /tutorials", talks.CreateTutorial)
	mux.HandleFunc("PUT /talks/{id}", talks.UpdateTalk)
	mux.HandleFunc("PUT /talks/{id}/room", talks.AssignTalkRoom)
	mux.HandleFunc("DELETE /talks/{id}", talks.DeleteTalk)
	mux.HandleFunc("DELETE /talks", talks.DeleteAllTalks)

	// Rooms
	mux.HandleFunc("GET /rooms", rooms.ListRooms)
	mux.HandleFunc("GET /rooms/{id}", rooms.GetRoom)
	mux.HandleFunc("GET /rooms/{id}/talks", rooms.ListRoomTalks)
	mux.HandleFunc("POST /rooms", rooms.CreateRoom)
	mux.HandleFunc("PUT /rooms/{id}", rooms.UpdateRoom)
	mux.HandleFunc("DELETE /rooms/{id}", rooms.DeleteRoom)
	mux.HandleFunc("DELETE /rooms", rooms.DeleteAllRooms)

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}
