package handler

import (
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
)

// NewRouter wires all handlers into a chi router.
func NewRouter(groups *GroupHandler, matches *MatchHandler, leagues *LeagueHandler) *chi.Mux {
	router := chi.NewRouter()

	router.Use(chiMiddleware.Recoverer)
	router.Use(RequestLogger)

	router.Route("/groups", func(r chi.Router) {
		r.Post("/", groups.CreateGroup)
		r.Get("/{groupID}", groups.GetGroup)

		r.Post("/{groupID}/members", groups.AddMember)
		r.Get("/{groupID}/members", groups.ListMembers)
		r.Delete("/{groupID}/members/{memberID}", groups.RemoveMember)

		r.Post("/{groupID}/matches", matches.SubmitMatch)
		r.Get("/{groupID}/matches", matches.ListMatches)

		r.Get("/{groupID}/leaderboard", leagues.GetLeaderboard)
		r.Post("/{groupID}/finalize", leagues.FinalizeLeague)
	})

	router.Route("/matches", func(r chi.Router) {
		r.Get("/{matchID}", matches.GetMatch)
		r.Post("/{matchID}/votes", matches.CastVote)
		r.Get("/{matchID}/votes", matches.ListVotes)
	})

	return router
}
