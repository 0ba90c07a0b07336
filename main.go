package main

import (
	"net"

	"github.com/zoii/goblog/config"
	"github.com/zoii/goblog/models"
	"github.com/zoii/goblog/routes"
	"github.com/zoii/goblog/utils"
)

func main() {
	cfg := config.Load()

	// Initialize logger early
	if err := utils.InitLogger(cfg); err != nil {
		panic(err)
	}

	db := config.InitDatabase(cfg, &models.User{}, &models.Post{}, &models.Comment{})

	r := routes.SetupRouter(db, cfg)

	addr := net.JoinHostPort(cfg.AppHost, cfg.AppPort)
	utils.Sugar.Infof("Starting server on %s (graceful)", addr)
	if err := utils.GraceServer(addr, r); err != nil {
		utils.Sugar.Fatalf("server stopped with error: %v", err)
	}
}
