package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/storefront-tech/go-backend/internal/app"
	config "github.com/storefront-tech/go-backend/internal/cfg"
	"github.com/storefront-tech/go-backend/pkg/logger"
)

//	@title			Storefront API
//	@version		1.0
//	@description	Интернет-магазин: каталог, корзина, заказы

//	@host		localhost:8080
//	@BasePath	/api/v1

//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization

func main() {
	log := logger.NewSlogLogger()

	if err := godotenv.Load(); err != nil {
		log.Debugf("no .env file found, using environment variables")
	}

	cfg, err := config.Load(log)
	if err != nil {
		log.Errorf(err, "failed to load config")
		os.Exit(1)
	}

	if err := app.Run(cfg, log); err != nil {
		os.Exit(1)
	}
}
