package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/gorilla/websocket"

	"github.com/verdant-games/gardensim/internal/catalog"
	"github.com/verdant-games/gardensim/internal/config"
	"github.com/verdant-games/gardensim/internal/itemstore"
	"github.com/verdant-games/gardensim/internal/persist"
	"github.com/verdant-games/gardensim/internal/service"
	"github.com/verdant-games/gardensim/pkg/models"
)

// Server represents the game server
type Server struct {
	config       *config.Config
	lobby        *Lobby
	game         *service.Service
	upgrader     websocket.Upgrader
	httpSrv      *http.Server
	jwtValidator *JWTValidator
	redis        *redis.Client

	// Connection tracking
	connections map[*Connection]bool
	connMu      sync.RWMutex

	// Shutdown
	ctx    context.Context
	cancel context.CancelFunc
}

// New creates a new server instance
func New(cfg *config.Config) (*Server, error) {
	log.Println("Initializing server...")

	ctx, cancel := context.WithCancel(context.Background())

	// Initialize Redis client
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Address,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	// Test Redis connection
	if err := redisClient.Ping(ctx).Err(); err != nil {
		cancel()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	log.Println("Connected to Redis")

	game, err := buildGame(cfg, redisClient)
	if err != nil {
		cancel()
		return nil, err
	}
	if err := game.RestoreStores(ctx); err != nil {
		cancel()
		return nil, fmt.Errorf("failed to restore store state: %w", err)
	}

	srv := &Server{
		config:      cfg,
		lobby:       NewLobby(),
		game:        game,
		connections: make(map[*Connection]bool),
		ctx:         ctx,
		cancel:      cancel,
		redis:       redisClient,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				// TODO: Add proper origin checking in production
				return true
			},
		},
	}

	// Initialize JWT validator
	jwtValidator, err := NewJWTValidator(cfg, redisClient)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("failed to initialize JWT validator: %w", err)
	}
	srv.jwtValidator = jwtValidator

	go srv.autosaveLoop()
	go srv.restockLoop()

	log.Println("Server initialized successfully")
	return srv, nil
}

// buildGame assembles the game service from the configured data files. A
// missing items file falls back to the built-in starter catalog.
func buildGame(cfg *config.Config, redisClient *redis.Client) (*service.Service, error) {
	var reg *catalog.Registry
	if cfg.Data.Items != "" {
		loaded, err := catalog.LoadFile(cfg.Data.Items)
		if err != nil {
			return nil, fmt.Errorf("failed to load item catalog: %w", err)
		}
		reg = loaded
		log.Printf("Loaded %d item templates from %s", reg.Count(), cfg.Data.Items)
	} else {
		reg = catalog.SampleRegistry()
		log.Printf("No item catalog configured, using the starter catalog (%d templates)", reg.Count())
	}

	stores := make(map[string]*itemstore.Store)
	if cfg.Data.Stores != "" && cfg.Data.Stocklists != "" {
		lists, err := itemstore.LoadStocklists(cfg.Data.Stocklists)
		if err != nil {
			return nil, fmt.Errorf("failed to load stocklists: %w", err)
		}
		defs, err := itemstore.LoadStoreDefs(cfg.Data.Stores)
		if err != nil {
			return nil, fmt.Errorf("failed to load stores: %w", err)
		}
		stores, err = itemstore.BuildStores(reg, defs, lists, time.Now())
		if err != nil {
			return nil, fmt.Errorf("failed to build stores: %w", err)
		}
		log.Printf("Built %d stores", len(stores))
	}

	repo := persist.NewRedisRepository(redisClient, cfg.Redis.KeyPrefix)
	return service.New(reg, repo, stores, service.Settings{
		GrowthRate:        cfg.Game.GrowthRate,
		StartingGold:      cfg.Game.StartingGold,
		StartingRows:      cfg.Game.StartingRows,
		StartingCols:      cfg.Game.StartingCols,
		UpgradeMultiplier: cfg.Game.UpgradeMultiplier,
		InstantHarvestKey: cfg.Game.InstantHarvestKey,
	}), nil
}

// loadOrCreatePlayer fetches a player's saved state, creating a fresh
// account on first join.
func (s *Server) loadOrCreatePlayer(player *models.Player) (*service.Player, error) {
	state, err := s.game.Player(s.ctx, player.Username)
	if err == nil {
		return state, nil
	}
	if !errors.Is(err, persist.ErrNotFound) {
		return nil, err
	}
	return s.game.CreatePlayer(s.ctx, player.Username, player.Icon)
}

// autosaveLoop periodically persists every loaded player and store
func (s *Server) autosaveLoop() {
	interval := time.Duration(s.config.Game.AutosaveSeconds) * time.Second
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := s.game.SaveAll(s.ctx); err != nil {
				log.Printf("Autosave failed: %v", err)
			}
		case <-s.ctx.Done():
			return
		}
	}
}

// restockLoop refills stores as their schedules come due
func (s *Server) restockLoop() {
	interval := time.Duration(s.config.Game.RestockPollSecs) * time.Second
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.game.RestockStores()
		case <-s.ctx.Done():
			return
		}
	}
}

// Start begins listening for connections
func (s *Server) Start(addr string) error {
	log.Printf("Starting WebSocket server on %s", addr)

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWebSocket)
	mux.HandleFunc("/login", s.handleLogin)
	mux.HandleFunc("/logout", s.handleLogout)
	mux.HandleFunc("/health", s.handleHealth)

	s.httpSrv = &http.Server{
		Addr:         addr,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	log.Printf("WebSocket endpoint: ws://%s/ws", addr)
	log.Printf("Health endpoint: http://%s/health", addr)

	if err := s.httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}

	return nil
}

// Shutdown gracefully stops the server
func (s *Server) Shutdown() error {
	log.Println("Shutting down server...")

	// Cancel context to signal shutdown
	s.cancel()

	// Shutdown HTTP server with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if s.httpSrv != nil {
		if err := s.httpSrv.Shutdown(ctx); err != nil {
			log.Printf("HTTP server shutdown error: %v", err)
		}
	}

	// Close all WebSocket connections
	s.connMu.Lock()
	for conn := range s.connections {
		conn.Close()
	}
	s.connMu.Unlock()

	// Final save before losing the cache
	if err := s.game.SaveAll(context.Background()); err != nil {
		log.Printf("Final save failed: %v", err)
	}

	// Close Redis connection
	if s.redis != nil {
		if err := s.redis.Close(); err != nil {
			log.Printf("Redis close error: %v", err)
		}
	}

	log.Println("Server shutdown complete")
	return nil
}

// handleWebSocket handles WebSocket connection requests
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	log.Printf("New WebSocket connection request from %s", r.RemoteAddr)

	// Extract JWT token from header
	tokenString := extractTokenFromHeader(r)
	if tokenString == "" {
		log.Printf("Missing JWT token from %s", r.RemoteAddr)
		http.Error(w, "Missing authentication token", http.StatusUnauthorized)
		return
	}

	// Validate JWT token
	player, err := s.jwtValidator.ValidateToken(tokenString)
	if err != nil {
		log.Printf("Invalid JWT token from %s: %v", r.RemoteAddr, err)
		http.Error(w, fmt.Sprintf("Invalid token: %v", err), http.StatusUnauthorized)
		return
	}

	log.Printf("Authenticated user: %s from %s", player.Username, r.RemoteAddr)

	// Upgrade HTTP connection to WebSocket
	ws, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WebSocket upgrade failed: %v", err)
		return
	}

	// Create connection with authenticated player
	conn := NewConnection(ws, s)
	conn.player = player
	conn.authenticated = true

	// Register connection
	s.connMu.Lock()
	s.connections[conn] = true
	s.connMu.Unlock()

	// Handle connection (blocking)
	conn.Handle()

	// Unregister connection when done
	s.connMu.Lock()
	delete(s.connections, conn)
	s.connMu.Unlock()

	log.Printf("WebSocket connection closed: %s (%s)", player.Username, r.RemoteAddr)
}

// handleLogin issues a signed token for a username. There is no password
// store; possession of the configured signing secret protects the endpoint
// in real deployments.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "POST required", http.StatusMethodNotAllowed)
		return
	}
	var req struct {
		Username string `json:"username"`
		Icon     string `json:"icon"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Username == "" {
		http.Error(w, "username required", http.StatusBadRequest)
		return
	}
	token, err := s.jwtValidator.IssueToken(req.Username, req.Icon)
	if err != nil {
		log.Printf("Failed to issue token for %s: %v", req.Username, err)
		http.Error(w, "failed to issue token", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"token": token})
}

// handleLogout revokes every outstanding token for a username. An open
// session keeps running until its connection drops; new connections are
// refused until the revocation window passes.
func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "POST required", http.StatusMethodNotAllowed)
		return
	}
	var req struct {
		Username string `json:"username"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Username == "" {
		http.Error(w, "username required", http.StatusBadRequest)
		return
	}
	if err := s.jwtValidator.RevokeUser(req.Username); err != nil {
		log.Printf("Failed to revoke tokens for %s: %v", req.Username, err)
		http.Error(w, "failed to revoke", http.StatusInternalServerError)
		return
	}
	online := false
	if player, ok := s.lobby.GetPlayer(req.Username); ok {
		online = player.IsConnected()
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"revoked": true, "online": online})
}

// handleHealth handles health check requests
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	fmt.Fprintf(w, `{"status":"ok","players_online":%d}`, s.lobby.PlayerCount())
}
