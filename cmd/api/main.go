// @title Momentum API
// @description API for social goal-tracking app "Momentum"
// @BasePath /api/v1
// @schemes http
package main

import (
	"log"

	"github.com/limbo/momentum/internal/api"
	"github.com/limbo/momentum/internal/repository"
	"github.com/limbo/momentum/internal/service"
	"github.com/limbo/momentum/pkg/cleanup"
	"github.com/limbo/momentum/pkg/config"
	jwtservice "github.com/limbo/momentum/pkg/jwt_service"
)

func init() {
	service.InitValidator()
}

func main() {
	defer cleanup.CleanUp()
	cfg := config.New()
	dbCfg := repository.PGCfg{
		Address:  cfg.GetString("POSTGRES_DB_ADDRESS"),
		Username: cfg.GetString("POSTGRES_USER"),
		Password: cfg.GetString("POSTGRES_PASSWORD"),
		DB:       cfg.GetString("POSTGRES_DB"),
	}
	accountsRepo := repository.NewAccountsRepo(&dbCfg)
	serv := api.New(&api.ServicesList{
		UserService:       service.NewUserService(accountsRepo),
		StreakService:     service.NewStreakService(accountsRepo),
		FriendshipService: service.NewFriendshipService(accountsRepo),
		GoalsService:      service.NewGoalsService(repository.NewGoalsRepo(&dbCfg)),
		JwtService:        jwtservice.New(cfg.GetString("JWT_SECRET")),
	})
	err := serv.Run(cfg.GetStringDefault("API_ADDRESS", ":8080"))
	if err != nil {
		log.Println("Server error: " + err.Error())
	}
}
