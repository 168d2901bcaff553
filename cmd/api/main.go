package main

import (
	"log"

	"github.com/tmworl/golftracker/internal/api"
	"github.com/tmworl/golftracker/internal/insights"
	"github.com/tmworl/golftracker/internal/repository"
	"github.com/tmworl/golftracker/internal/service"
	"github.com/tmworl/golftracker/pkg/cleanup"
	"github.com/tmworl/golftracker/pkg/config"
	jwtservice "github.com/tmworl/golftracker/pkg/jwt_service"
	"github.com/tmworl/golftracker/pkg/scoring"
)

func init() {
	service.InitValidator()
}

func main() {
	cfg := config.New()
	dbCfg := repository.PGCfg{
		Address:  cfg.GetString("POSTGRES_DB_ADDRESS"),
		Username: cfg.GetString("POSTGRES_USER"),
		Password: cfg.GetString("POSTGRES_PASSWORD"),
		DB:       cfg.GetString("POSTGRES_DB"),
	}
	vocab := scoring.NewVocabulary(
		cfg.GetList("SHOT_TYPES", nil),
		cfg.GetList("OUTCOMES", nil),
	)
	userService := service.NewUserService(repository.NewUsersRepo(&dbCfg))
	courseService := service.NewCourseService(repository.NewCoursesRepo(&dbCfg))
	roundsRepo := repository.NewRoundsRepo(&dbCfg)
	shotsRepo := repository.NewShotsRepo(&dbCfg)
	insightService := service.NewInsightService(
		repository.NewInsightsRepo(&dbCfg),
		shotsRepo,
		courseService,
		insights.NewClient(cfg.GetString("INSIGHTS_FUNCTION_URL")),
		vocab,
	)
	roundService := service.NewRoundService(courseService, roundsRepo, shotsRepo, insightService, vocab)
	scorecardService := service.NewScorecardService(courseService, roundsRepo, shotsRepo, vocab)
	serv := api.New(&api.ServicesList{
		UserService:      userService,
		CourseService:    courseService,
		RoundService:     roundService,
		ScorecardService: scorecardService,
		InsightService:   insightService,
		JwtService:       jwtservice.New(cfg.GetString("JWT_SECRET")),
		Vocabulary:       vocab,
		CORSOrigins:      cfg.GetList("CORS_ALLOW_ORIGINS", []string{"*"}),
	})
	defer cleanup.CleanUp()
	err := serv.Run(cfg.GetString("API_ADDRESS"))
	if err != nil {
		log.Println("Server error: " + err.Error())
	}
}
