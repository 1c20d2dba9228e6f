package main

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/leiwu84/my-nutri/config"
	"github.com/leiwu84/my-nutri/routes"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("load config: %v", err)
	}

	if level, err := logrus.ParseLevel(cfg.Log.Level); err == nil {
		logrus.SetLevel(level)
	}
	logrus.SetFormatter(&logrus.JSONFormatter{})

	if cfg.Router.Mode != "" {
		gin.SetMode(cfg.Router.Mode)
	}

	db, err := config.OpenDB(cfg)
	if err != nil {
		logrus.Fatalf("open database: %v", err)
	}
	defer func() {
		if err := config.CloseDB(db); err != nil {
			logrus.Errorf("close database: %v", err)
		}
	}()

	r := routes.SetupRouter(db)
	logrus.Infof("listening on :%d", cfg.Router.Port)
	if err := r.Run(fmt.Sprintf(":%d", cfg.Router.Port)); err != nil {
		logrus.Fatalf("server stopped: %v", err)
	}
}
