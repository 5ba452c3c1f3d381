package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/limbo/momentum/internal/service"
)

type Server struct {
	mx                *chi.Mux
	userService       service.UserServiceI
	streakService     service.StreakServiceI
	friendshipService service.FriendshipServiceI
	goalsService      service.GoalsServiceI
	jwtService        JWTServiceI
}

type ServicesList struct {
	UserService       service.UserServiceI
	StreakService     service.StreakServiceI
	FriendshipService service.FriendshipServiceI
	GoalsService      service.GoalsServiceI
	JwtService        JWTServiceI
}

func New(servicesOptions *ServicesList) *Server {
	s := &Server{
		mx:                chi.NewMux(),
		userService:       servicesOptions.UserService,
		streakService:     servicesOptions.StreakService,
		friendshipService: servicesOptions.FriendshipService,
		goalsService:      servicesOptions.GoalsService,
		jwtService:        servicesOptions.JwtService,
	}
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	s.mx.Use(s.RequestIDMiddleware, s.SettingUpLoggerMiddleware)
	s.mx.Route("/api/v1", func(r chi.Router) {
		r.Get("/_ping", s.Ping)
		r.Post("/auth/register", s.Register)
		r.Post("/auth/login", s.Login)
		r.Group(func(r chi.Router) {
			r.Use(s.AuthMiddleware, s.LoggerExtensionMiddleware)
			r.Get("/auth/me", s.Me)
			r.Patch("/auth/me", s.UpdateMe)
			r.Get("/users", s.SearchUsers)
			r.Get("/me/relationships", s.Relationships)
			r.Route("/friends", func(r chi.Router) {
				r.Get("/", s.ListFriends)
				r.Post("/request/{targetID}", s.RequestFriend)
				r.Post("/accept/{requesterID}", s.AcceptFriend)
				r.Post("/decline/{requesterID}", s.DeclineFriend)
				r.Delete("/{friendID}", s.RemoveFriend)
			})
			r.Route("/user/me/streak", func(r chi.Router) {
				r.Get("/", s.GetStreak)
				r.Post("/increment", s.IncrementStreak)
				r.Post("/rollover", s.RolloverStreak)
				r.Post("/mark-check", s.MarkDailyCheck)
			})
			r.Route("/goals", func(r chi.Router) {
				r.Get("/", s.GetGoals)
				r.Post("/", s.CreateGoal)
				r.Get("/{id}", s.GetGoal)
				r.Patch("/{id}/completed", s.SetGoalCompleted)
				r.Delete("/{id}", s.DeleteGoal)
			})
		})
	})
}

func (s *Server) Run(address string) error {
	return http.ListenAndServe(address, s.mx)
}

// ServeHTTP makes the server mountable in tests.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mx.ServeHTTP(w, r)
}
