// internal/handlers/router.go
package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// API は /api/v1 配下のハンドラ一式
type API struct {
	StudySets   *StudySetHandler
	Sessions    *SessionHandler
	Analytics   *AnalyticsHandler
	Plays       *PlayHandler
	Extractions *ExtractionHandler
}

// Mount は identity ミドルウェアを適用したうえで API のルートを r に登録します
func (a *API) Mount(r chi.Router, identity func(http.Handler) http.Handler) {
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(identity)

		r.Route("/study-sets", func(r chi.Router) {
			r.Get("/", a.StudySets.ListStudySets)
			r.Post("/", a.StudySets.CreateStudySet)
			r.Get("/{set_id}", a.StudySets.GetStudySet)
			r.Put("/{set_id}", a.StudySets.UpdateStudySet)
			r.Delete("/{set_id}", a.StudySets.DeleteStudySet)
			r.Post("/{set_id}/plays", a.Plays.StartPlay)
		})

		r.Route("/plays/{play_id}", func(r chi.Router) {
			r.Get("/", a.Plays.GetPlay)
			r.Post("/actions", a.Plays.ApplyAction)
			r.Delete("/", a.Plays.AbandonPlay)
		})

		r.Route("/sessions", func(r chi.Router) {
			r.Post("/", a.Sessions.RecordSession)
			r.Get("/", a.Sessions.ListSessions)
		})

		r.Get("/analytics", a.Analytics.GetAnalytics)
		r.Post("/extractions", a.Extractions.ExtractStudySet)
	})
}
