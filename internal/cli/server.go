package cli

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"quizdeck-service/internal/app"
	"quizdeck-service/internal/config"
	"quizdeck-service/internal/domain"
	"quizdeck-service/internal/infra/memory"
	"quizdeck-service/internal/infra/postgres"
	boardcache "quizdeck-service/internal/infra/redis"
	transport "quizdeck-service/internal/transport/http"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
)

// NewServeCmd builds the CLI subcommand to start the server.
func NewServeCmd(configPath, port *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the quiz platform API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context(), *configPath, *port)
		},
	}
}

func runServer(ctx context.Context, configPath, portFlag string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	if cfg.Postgres.URL != "" {
		if err := runMigrationsWithConfig(ctx, cfg); err != nil {
			return err
		}
	}

	finalPort := portFlag
	if finalPort == "" {
		finalPort = cfg.Server.Port
	}
	if finalPort == "" {
		finalPort = "8080"
	}

	var users app.UserRepository
	var subjects app.SubjectRepository
	var questions app.QuestionRepository
	var scores app.ScoreRepository

	if cfg.Postgres.URL != "" {
		pool, err := pgxpool.Connect(ctx, cfg.Postgres.URL)
		if err != nil {
			return err
		}
		defer pool.Close()
		users = postgres.NewUserRepository(pool)
		subjects = postgres.NewSubjectRepository(pool)
		questions = postgres.NewQuestionRepository(pool)
		scores = postgres.NewScoreRepository(pool)
	} else {
		log.Printf("no postgres url configured, serving demo data from memory")
		memSubjects := memory.NewSubjectRepository()
		memQuestions := memory.NewQuestionRepository()
		users = memory.NewUserRepository()
		subjects = memSubjects
		questions = memQuestions
		scores = memory.NewScoreRepository(memSubjects)
		seedDemoData(ctx, memSubjects, memQuestions)
	}

	var boards app.LeaderboardSource
	if cfg.Redis.Addr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		ttl := config.TTLDuration(cfg.Leaderboard.CacheTTL, time.Minute)
		boards = boardcache.NewLeaderboardCache(client, scores, ttl)
	}

	accountSvc := app.NewAccountService(users)
	catalogSvc := app.NewCatalogService(subjects, questions)
	scoreSvc := app.NewScoreService(scores, subjects, boards)

	timeout := config.TTLDuration(cfg.Server.RequestTimeout, 10*time.Second)
	handler := transport.NewHandler(accountSvc, catalogSvc, scoreSvc, timeout)

	server := &http.Server{
		Addr:         ":" + finalPort,
		Handler:      handler.Routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		log.Printf("starting quizdeck service on :%s", finalPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("failed to start server: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-stop:
		log.Println("shutting down server...")
	case <-ctx.Done():
		log.Println("context canceled, shutting down server...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

// seedDemoData loads a minimal catalog so the demo mode answers every endpoint.
func seedDemoData(ctx context.Context, subjects *memory.SubjectRepository, questions *memory.QuestionRepository) {
	for _, name := range []string{"Go", "Python", "Rust"} {
		if _, err := subjects.Create(ctx, name); err != nil {
			log.Printf("seed subject %s: %v", name, err)
		}
	}
	_, err := questions.Create(ctx, domain.Question{
		SubjectName:   "Go",
		Question:      "Which keyword starts a goroutine?",
		OptionA:       "spawn",
		OptionB:       "go",
		OptionC:       "async",
		OptionD:       "fork",
		CorrectAnswer: "go",
		Level:         1,
	})
	if err != nil {
		log.Printf("seed question: %v", err)
	}
}
