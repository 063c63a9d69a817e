package routes

import (
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/Seyram02/nations-league/handlers"
)

func SetupRoutes(
	router *chi.Mux,
	teamHandler *handlers.TeamHandler,
	matchHandler *handlers.MatchHandler,
	tournamentHandler *handlers.TournamentHandler,
	webSocketHandler *handlers.WebSocketHandler,
) {
	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)

	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	router.Route("/teams", func(r chi.Router) {
		r.Get("/", teamHandler.ListTeams)
		r.Post("/", teamHandler.RegisterTeam)
		r.Get("/{teamID}", teamHandler.GetTeamByID)
		r.Post("/{teamID}/crest", teamHandler.UploadCrest)
		r.Get("/analytics/{country}", teamHandler.GetTeamAnalytics)
	})

	router.Route("/matches", func(r chi.Router) {
		r.Get("/", matchHandler.ListMatches)
		r.Get("/{matchID}", matchHandler.GetMatchByID)
		r.Post("/{matchID}/play", matchHandler.PlayMatch)
		r.Post("/{matchID}/simulate", matchHandler.SimulateMatch)
		r.Get("/{matchID}/preview", matchHandler.GetMatchPreview)
		r.Get("/{matchID}/analysis", matchHandler.GetPostMatchAnalysis)
		r.Get("/{matchID}/player-analysis", matchHandler.GetPlayerAnalysis)
	})

	router.Route("/tournament", func(r chi.Router) {
		r.Post("/", tournamentHandler.CreateTournament)
		r.Delete("/", tournamentHandler.ResetTournament)
	})

	router.Get("/ws/feed", webSocketHandler.ServeFeed)

	router.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))
}
