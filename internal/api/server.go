package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	corslib "github.com/rs/cors"
	"github.com/tmworl/golftracker/internal/service"
	"github.com/tmworl/golftracker/pkg/scoring"
)

type Server struct {
	mx               *chi.Mux
	userService      service.UserServiceI
	courseService    service.CourseServiceI
	roundService     service.RoundServiceI
	scorecardService service.ScorecardServiceI
	insightService   service.InsightServiceI
	jwtService       JWTServiceI
	vocab            scoring.Vocabulary
	corsOrigins      []string
}

type ServicesList struct {
	UserService      service.UserServiceI
	CourseService    service.CourseServiceI
	RoundService     service.RoundServiceI
	ScorecardService service.ScorecardServiceI
	InsightService   service.InsightServiceI
	JwtService       JWTServiceI
	Vocabulary       scoring.Vocabulary
	CORSOrigins      []string
}

func New(servicesOptions *ServicesList) *Server {
	s := &Server{
		mx:               chi.NewMux(),
		userService:      servicesOptions.UserService,
		courseService:    servicesOptions.CourseService,
		roundService:     servicesOptions.RoundService,
		scorecardService: servicesOptions.ScorecardService,
		insightService:   servicesOptions.InsightService,
		jwtService:       servicesOptions.JwtService,
		vocab:            servicesOptions.Vocabulary,
		corsOrigins:      servicesOptions.CORSOrigins,
	}
	s.mountRoutes()
	return s
}

func (s *Server) mountRoutes() {
	s.mx.Use(s.RequestIDMiddleware)
	s.mx.Use(s.SettingUpLoggerMiddleware)
	c := corslib.New(corslib.Options{
		AllowedOrigins:   s.corsOrigins,
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
	})
	s.mx.Use(c.Handler)

	s.mx.Route("/api/v1", func(r chi.Router) {
		r.Post("/register", s.Register)
		r.Post("/login", s.Login)

		r.Group(func(r chi.Router) {
			r.Use(s.AuthMiddleware)
			r.Use(s.LoggerExtensionMiddleware)

			r.Delete("/users", s.DeleteAccount)

			r.Get("/vocabulary", s.GetVocabulary)
			r.Get("/courses/{id}", s.GetCourse)

			r.Post("/rounds", s.StartRound)
			r.Get("/rounds", s.GetRounds)
			r.Get("/rounds/{id}", s.GetRound)
			r.Post("/rounds/{id}/holes/{hole}", s.FinishHole)
			r.Post("/rounds/{id}/complete", s.CompleteRound)
			r.Get("/rounds/{id}/scorecard", s.GetScorecard)

			r.Get("/insights/latest", s.GetLatestInsight)
			r.Post("/insights/{id}/feedback", s.RateInsight)
		})
	})
}

func (s *Server) Handler() http.Handler {
	return s.mx
}

func (s *Server) Run(address string) error {
	return http.ListenAndServe(address, s.mx)
}
