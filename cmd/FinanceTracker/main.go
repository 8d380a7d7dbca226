package main

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/gopikrish1/Personal-Finance-Tracker/db"
	"github.com/gopikrish1/Personal-Finance-Tracker/internal/auth"
	"github.com/gopikrish1/Personal-Finance-Tracker/internal/config"
	"github.com/gopikrish1/Personal-Finance-Tracker/internal/finance/application"
	"github.com/gopikrish1/Personal-Finance-Tracker/internal/finance/infrastructure"
	"github.com/gopikrish1/Personal-Finance-Tracker/internal/finance/interfaces"
	"github.com/gopikrish1/Personal-Finance-Tracker/internal/user"
)

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func respondError(w http.ResponseWriter, status int, message string, errors ...[]string) {
	payload := map[string]interface{}{
		"success": false,
		"message": message,
	}
	if len(errors) > 0 && len(errors[0]) > 0 {
		payload["errors"] = errors[0]
	}
	respondJSON(w, status, payload)
}

func loggingMiddleware(logger *logrus.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		logger.WithFields(logrus.Fields{
			"method":   r.Method,
			"path":     r.URL.Path,
			"duration": time.Since(start).String(),
		}).Info("Request completed")
	})
}

func notFoundHandler(w http.ResponseWriter, _ *http.Request) {
	respondError(w, http.StatusNotFound, "API endpoint not found")
}

type Server struct {
	router             *http.ServeMux
	dbService          *database.DBService
	authService        auth.Service
	authHandler        *auth.Handler
	userHandler        *user.Handler
	transactionHandler *interfaces.TransactionHandler
}

func NewServer(
	dbService *database.DBService,
	authService auth.Service,
	authHandler *auth.Handler,
	userHandler *user.Handler,
	transactionHandler *interfaces.TransactionHandler,
) *Server {
	return &Server{
		router:             http.NewServeMux(),
		dbService:          dbService,
		authService:        authService,
		authHandler:        authHandler,
		userHandler:        userHandler,
		transactionHandler: transactionHandler,
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success":   true,
		"status":    "OK",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"database":  s.dbService.Health(),
	})
}

func (s *Server) RegisterRoutes() {
	authenticated := s.authService.Authenticate()
	writeProtected := s.authService.RequireWritePermission()
	adminOnly := s.authService.RequireUserManagement()

	router := http.NewServeMux()

	// Public routes
	router.Handle("GET /api/health", http.HandlerFunc(s.handleHealth))
	router.Handle("POST /api/auth/register", http.HandlerFunc(s.authHandler.HandleRegister))
	router.Handle("POST /api/auth/login", http.HandlerFunc(s.authHandler.HandleLogin))

	// Authenticated routes
	router.Handle("GET /api/auth/me", authenticated(http.HandlerFunc(s.authHandler.HandleGetMe)))

	// TRANSACTIONS API: reads are owner-scoped only, writes additionally
	// require a write-capable role.
	router.Handle("GET /api/transactions",
		authenticated(http.HandlerFunc(s.transactionHandler.ListTransactions)))
	router.Handle("POST /api/transactions",
		authenticated(writeProtected(http.HandlerFunc(s.transactionHandler.CreateTransaction))))
	router.Handle("GET /api/transactions/{id}",
		authenticated(http.HandlerFunc(s.transactionHandler.GetTransaction)))
	router.Handle("PUT /api/transactions/{id}",
		authenticated(writeProtected(http.HandlerFunc(s.transactionHandler.UpdateTransaction))))
	router.Handle("DELETE /api/transactions/{id}",
		authenticated(writeProtected(http.HandlerFunc(s.transactionHandler.DeleteTransaction))))

	// USERS API (admin only)
	router.Handle("GET /api/users",
		authenticated(adminOnly(http.HandlerFunc(s.userHandler.HandleListUsers))))
	router.Handle("PUT /api/users/{id}/role",
		authenticated(adminOnly(http.HandlerFunc(s.userHandler.HandleUpdateUserRole))))
	router.Handle("DELETE /api/users/{id}",
		authenticated(adminOnly(http.HandlerFunc(s.userHandler.HandleDeleteUser))))

	router.Handle("/", http.HandlerFunc(notFoundHandler))

	s.router = router
}

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

	cfg, err := config.NewConfig()
	if err != nil {
		logger.Fatalf("Missing configuration, update to start server: %v", err)
	}

	logLevel, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	dbService, err := database.NewDBService(cfg.DBConn, logger)
	if err != nil {
		logger.Fatalf("Could not initialize database: %v", err)
	}
	defer dbService.Close()

	jwtManager := auth.NewJWTManager(cfg.JWTSecret)
	tokenDuration := time.Duration(cfg.JWTExpiryHours) * time.Hour

	userRepo := user.NewUserRepository(dbService.DB)
	userService := user.NewUserService(userRepo)
	userHandler := user.NewHandler(userService, logger)

	authService := auth.NewAuthService(userService, jwtManager, tokenDuration)
	authHandler := auth.NewHandler(authService, logger)

	transactionRepo := infrastructure.NewTransactionRepository(dbService.DB)
	transactionService := application.NewTransactionService(transactionRepo)
	transactionHandler := interfaces.NewTransactionHandler(
		transactionService,
		logger,
		respondJSON,
		respondError,
	)

	server := NewServer(dbService, authService, authHandler, userHandler, transactionHandler)
	server.RegisterRoutes()

	handler := loggingMiddleware(logger, server.router)
	logger.Infof("Server starting on port %s...", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, handler); err != nil {
		logger.Fatalf("Server failed to start: %v", err)
	}
}
