package server

import (
	"context"
	"sync"

	"family-tasks/internal/access"
	"family-tasks/internal/auth"
	"family-tasks/internal/config"
	"family-tasks/internal/gateway"
	"family-tasks/internal/selection"
	"family-tasks/internal/store"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

// managerState holds the per-manager stores and selection, built lazily
// on first use. The task store is scoped to the manager in solo mode and
// to their selected member in family mode.
type managerState struct {
	members   *store.MemberStore
	stats     *store.MemberStatsAggregator
	selection *selection.Manager
	tasks     *store.TaskStore
}

// Server wires the stores, gates and auth service behind a fiber app.
// In family mode (the default) task ownership follows the selected
// member; in solo mode each manager owns their tasks directly.
type Server struct {
	cfg  *config.Config
	gw   gateway.Gateway
	auth *auth.Service
	gate *access.Gate
	app  *fiber.App

	mu       sync.Mutex
	managers map[string]*managerState
}

// New creates a server over the given gateway.
func New(cfg *config.Config, gw gateway.Gateway) *Server {
	tokens := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	hasher := auth.NewPasswordHasher(cfg.Auth.BcryptCost)

	s := &Server{
		cfg:      cfg,
		gw:       gw,
		auth:     auth.NewService(gw, tokens, hasher),
		gate:     access.NewGate(cfg.Access.RequireMemberSelection),
		managers: map[string]*managerState{},
	}

	s.app = fiber.New(fiber.Config{
		AppName:               "family-tasks",
		DisableStartupMessage: true,
		ReadTimeout:           cfg.Server.ReadTimeout,
		WriteTimeout:          cfg.Server.WriteTimeout,
	})
	s.app.Use(recover.New())
	s.app.Use(cors.New(cors.Config{
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Content-Type,Authorization",
	}))
	s.registerRoutes()

	return s
}

// App exposes the fiber app, mainly for tests.
func (s *Server) App() *fiber.App {
	return s.app
}

// Listen serves until Shutdown is called.
func (s *Server) Listen() error {
	return s.app.Listen(s.cfg.Server.Address)
}

// Shutdown stops the server and tears down the stores.
func (s *Server) Shutdown() error {
	err := s.app.Shutdown()

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, state := range s.managers {
		if state.tasks != nil {
			state.tasks.Close()
		}
	}
	s.managers = map[string]*managerState{}

	return err
}

func (s *Server) registerRoutes() {
	api := s.app.Group("/api")

	authGroup := api.Group("/auth")
	authGroup.Post("/register", s.handleRegister)
	authGroup.Post("/login", s.handleLogin)
	authGroup.Get("/profile", s.requireSession, s.handleProfile)

	members := api.Group("/members", s.requireSession)
	members.Get("/", s.handleListMembers)
	members.Post("/", s.handleAddMember)
	members.Get("/stats", s.handleMemberStats)
	members.Put("/:id", s.handleUpdateMember)
	members.Delete("/:id", s.handleRemoveMember)

	sel := api.Group("/selection", s.requireSession)
	sel.Get("/", s.handleGetSelection)
	sel.Put("/", s.handlePutSelection)
	sel.Delete("/", s.handleDeleteSelection)

	tasks := api.Group("/tasks", s.requireSession, s.requireAccess)
	tasks.Get("/", s.handleListTasks)
	tasks.Post("/", s.handleAddTask)
	tasks.Get("/stats", s.handleTaskStats)
	tasks.Delete("/completed", s.handleClearCompleted)
	tasks.Put("/:id", s.handleUpdateTask)
	tasks.Post("/:id/toggle", s.handleToggleTask)
	tasks.Delete("/:id", s.handleRemoveTask)

	s.app.Get("/ws", s.requireWebSocketUpgrade, websocket.New(s.handleChangeFeed))
}

// managerStateLocked returns the lazily-built stores for a manager.
// Callers hold s.mu.
func (s *Server) managerStateLocked(ctx context.Context, userID string) *managerState {
	state, ok := s.managers[userID]
	if !ok {
		sel := selection.NewManager(selection.NewFileSlot(s.cfg.GetSelectionPath(userID)))
		sel.Load()

		state = &managerState{
			members:   store.NewMemberStore(s.gw, userID),
			stats:     store.NewMemberStatsAggregator(s.gw, userID),
			selection: sel,
		}
		state.members.Load(ctx)
		s.managers[userID] = state
	}
	return state
}

func (s *Server) managerStateFor(ctx context.Context, userID string) *managerState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.managerStateLocked(ctx, userID)
}

// taskStoreFor resolves the task store for the request: the manager's
// member-scoped store in family mode, rebound when the selection
// changes, or their user-scoped store in solo mode. It reports false
// when family mode has no selected member, which can happen when the
// selection is cleared while a request is in flight.
func (s *Server) taskStoreFor(ctx context.Context, session auth.Session) (*store.TaskStore, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state := s.managerStateLocked(ctx, session.UserID)

	if !s.cfg.Access.RequireMemberSelection {
		if state.tasks == nil {
			state.tasks = store.NewTaskStore(s.gw, gateway.OwnerKeyUser, session.UserID)
			state.tasks.Load(ctx)
			state.tasks.Start()
		}
		return state.tasks, true
	}

	member, _ := state.selection.Selected()
	if member == nil {
		return nil, false
	}

	if state.tasks == nil {
		state.tasks = store.NewTaskStore(s.gw, gateway.OwnerKeyMember, member.ID)
		state.tasks.Load(ctx)
		state.tasks.Start()
	} else if state.tasks.OwnerID() != member.ID {
		state.tasks.SetOwner(member.ID)
		state.tasks.Load(ctx)
		state.tasks.Start()
	}
	return state.tasks, true
}
