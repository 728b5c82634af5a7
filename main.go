package main

import (
	"log"
	"net/http"

	"api/config"
	"api/database"
	"api/middleware"
	v1 "api/routes/v1"
	"api/services"

	"github.com/gin-gonic/gin"
)

func main() {
	config.LoadEnv()

	database.InitDB()
	database.InitCache()

	if err := services.InitStorage(); err != nil {
		log.Fatal("failed to initialize storage: ", err)
	}

	middleware.UpdateSystemMetrics()

	r := gin.Default()
	v1.Register(r)

	log.Println("server listening on :" + config.Port)
	if err := r.Run(":" + config.Port); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server error: %v", err)
	}
}
