package router

import (
	"log"

	"marketbot/controllers"
	"marketbot/middleware"

	"github.com/gin-gonic/gin"
)

// Initialize wires all routes and middlewares.
func Initialize(r *gin.Engine, webhook *controllers.WebhookController) {
	r.Use(gin.Recovery())
	r.Use(middleware.CORSMiddleware())

	// Teste de alcance da plataforma
	r.GET("/welcome", Logger(), controllers.Welcome)

	// Webhook (WhatsApp Cloud API)
	r.GET("/whatsapp", Logger(), webhook.Verify)
	r.POST("/whatsapp", Logger(), webhook.Update)

	log.Printf("Routes initialized")
}
