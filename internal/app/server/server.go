package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	awsstorage "github.com/ecard-vn/ecard/internal/aws/storage"
	"github.com/ecard-vn/ecard/internal/engine"
	"github.com/ecard-vn/ecard/internal/storage"
	"github.com/ecard-vn/ecard/pkg/logging"
	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"go.uber.org/zap"
)

type server struct {
	address string
	config  Config
	engine  *engine.MatchEngine
}

func NewServer() *server {
	cfg := NewConfig()
	return &server{
		address: "0.0.0.0:" + cfg.Port,
		config:  cfg,
		engine:  engine.NewMatchEngine(newStore(cfg), cfg.WaitingTTL),
	}
}

func newStore(cfg Config) storage.Store {
	switch cfg.StorageDriver {
	case "dynamodb":
		awsCfg, err := awsconfig.LoadDefaultConfig(
			context.TODO(),
			awsconfig.WithRegion(cfg.AwsRegion),
		)
		if err != nil {
			panic(fmt.Errorf("unable to load SDK config: %w", err))
		}
		return awsstorage.NewClient(
			dynamodb.NewFromConfig(awsCfg),
			awsstorage.Config{
				UsersTableName:   aws.String(cfg.UsersTableName),
				MatchesTableName: aws.String(cfg.MatchesTableName),
				WaitingTableName: aws.String(cfg.WaitingTableName),
			},
		)
	default:
		store, err := storage.NewFileStore(cfg.DataDir)
		if err != nil {
			panic(fmt.Errorf("failed to open file store: %w", err))
		}
		return store
	}
}

// Start loads the last snapshot, spawns the cleanup ticker and serves the
// API.
func (s *server) Start() error {
	if err := s.engine.Load(context.Background()); err != nil {
		return err
	}
	go s.runCleanup()

	corsHandler := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", "Authorization"},
	}).Handler(s.router())

	logging.Info("server started", zap.String("port", s.config.Port))
	return http.ListenAndServe(s.address, corsHandler)
}

func (s *server) router() *mux.Router {
	router := mux.NewRouter()
	router.HandleFunc("/health", s.handleHealth).Methods("GET")

	api := router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/join-match", s.handleJoinMatch).Methods("POST")
	api.HandleFunc("/check-match/{userId}", s.handleCheckMatch).Methods("GET")
	api.HandleFunc("/play-card", s.handlePlayCard).Methods("POST")
	api.HandleFunc("/game-state/{matchId}", s.handleGameState).Methods("GET")
	api.HandleFunc("/leave-match", s.handleLeaveMatch).Methods("POST")
	api.HandleFunc("/cleanup", s.handleCleanup).Methods("POST")
	return router
}

func (s *server) runCleanup() {
	ticker := time.NewTicker(s.config.CleanupInterval)
	defer ticker.Stop()
	for range ticker.C {
		resp := s.engine.Cleanup(context.Background())
		logging.Info("periodic cleanup",
			zap.Int("remaining_waiting", resp.Cleaned),
		)
	}
}
