package api

import (
	"easy-shop/app"
	"easy-shop/config"
	_ "easy-shop/docs"
	"easy-shop/libs"
	"easy-shop/models"
	"encoding/json"
	"net/http"
	"sync"

	"go.uber.org/zap"
)

var (
	application *app.App
	initErr     error
	once        sync.Once
)

func initApp() {
	once.Do(func() {
		cfg := config.LoadConfig()
		logger := libs.NewLogger(cfg)

		application, initErr = app.New(cfg, logger)
		if initErr != nil {
			logger.Error("failed to initialize application", zap.Error(initErr))
		}
	})
}

// Handler is the serverless entry point. Sessions and carts are held in
// process memory, so this only works when the platform keeps a single warm
// instance; a cold start or a second instance signs every customer out.
func Handler(w http.ResponseWriter, r *http.Request) {
	initApp()
	if initErr != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusServiceUnavailable)
		_ = json.NewEncoder(w).Encode(models.ErrorResponse{
			Success: false,
			Message: "Service unavailable",
		})
		return
	}
	application.Router.ServeHTTP(w, r)
}
