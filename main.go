package main

import (
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"marketbot/config"
	"marketbot/controllers"
	dbpkg "marketbot/db"
	"marketbot/router"
	"marketbot/tools"

	"github.com/gin-gonic/gin"
)

func main() {
	cfgPath := "config/config.json"
	if len(os.Args) > 1 {
		cfgPath = os.Args[1]
	}
	cfg := config.Get(cfgPath)

	dbpkg.SetConfigurations(cfg)
	database, err := dbpkg.Connect()
	if err != nil {
		log.Fatalf("db connect: %v", err)
	}
	defer database.Close()

	webhook := &controllers.WebhookController{
		VerifyToken: cfg.WebhookVerifyToken,
		WhatsApp: &tools.WhatsAppClient{
			AccessToken:   cfg.WhatsApp.AccessToken,
			ApiVersion:    cfg.WhatsApp.ApiVersion,
			PhoneNumberID: cfg.WhatsApp.PhoneNumberID,
			BaseURL:       cfg.WhatsApp.ApiURL,
		},
	}

	if strings.TrimSpace(cfg.SAIA.ApiToken) != "" {
		webhook.SAIA = &tools.SAIAClient{
			APIToken:       cfg.SAIA.ApiToken,
			OrganizationID: cfg.SAIA.OrganizationID,
			ProjectID:      cfg.SAIA.ProjectID,
			AssistantID:    cfg.SAIA.AssistantID,
			BaseURL:        cfg.SAIA.BaseURL,
		}
	}

	graph := &tools.GraphClient{
		TenantID:     cfg.Graph.TenantID,
		ClientID:     cfg.Graph.ClientID,
		ClientSecret: cfg.Graph.ClientSecret,
		DriveID:      cfg.Graph.DriveID,
		Folder:       cfg.Graph.Folder,
	}
	if graph.Configured() {
		webhook.Graph = graph
	}

	r := gin.New()
	r.Use(dbpkg.SetDBtoContext(database))
	router.Initialize(r, webhook)

	srv := &http.Server{
		Addr:              ":" + cfg.ApiPort,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	log.Printf("Marketbot listening on :%s", cfg.ApiPort)
	log.Fatal(srv.ListenAndServe())
}
