package config

import (
	"encoding/json"
	"log"
	"os"
	"strings"
)

type Configuration struct {
	ApiPort string `json:"api_port"`
	LogPath string `json:"log_path"`

	Database string `json:"database"` // "sqlite3" ou "postgres"
	DbHost   string `json:"db_host"`
	DbPort   string `json:"db_port"`
	DbUser   string `json:"db_user"`
	DbName   string `json:"db_name"`
	DbPass   string `json:"db_pass"`

	WebhookVerifyToken string `json:"webhook_verify_token"`

	WhatsApp struct {
		ApiURL        string `json:"api_url"` // ex: https://graph.facebook.com
		ApiVersion    string `json:"api_version"`
		PhoneNumberID string `json:"phone_number_id"`
		AccessToken   string `json:"access_token"`
	} `json:"whatsapp"`

	SAIA struct {
		ApiToken       string `json:"api_token"`
		OrganizationID string `json:"organization_id"`
		ProjectID      string `json:"project_id"`
		AssistantID    string `json:"assistant_id"`
		BaseURL        string `json:"base_url"`
	} `json:"saia"`

	Graph struct {
		TenantID     string `json:"tenant_id"`
		ClientID     string `json:"client_id"`
		ClientSecret string `json:"client_secret"`
		DriveID      string `json:"drive_id"`
		Folder       string `json:"folder"`
	} `json:"graph"`
}

// Get carrega a configuração do arquivo JSON. Segredos podem vir por env
// (WSP_API_TOKEN, SAIA_API_TOKEN, GRAPH_CLIENT_SECRET...) e sobrescrevem o arquivo.
func Get(path string) Configuration {
	var c Configuration

	b, err := os.ReadFile(path)
	if err != nil {
		log.Printf("config: %v (usando defaults + env)", err)
	} else if err := json.Unmarshal(b, &c); err != nil {
		log.Fatal(err)
	}

	// defaults (pra evitar nil/zero chato)
	if c.ApiPort == "" {
		c.ApiPort = getenv("PORT", "8080")
	}
	if c.LogPath == "" {
		c.LogPath = "logs/server.log"
	}
	if c.Database == "" {
		c.Database = "sqlite3"
	}
	if c.WhatsApp.ApiURL == "" {
		c.WhatsApp.ApiURL = getenv("WSP_API_URL", "https://graph.facebook.com")
	}
	if c.WhatsApp.ApiVersion == "" {
		c.WhatsApp.ApiVersion = getenv("WSP_API_VERSION", "v20.0")
	}
	if c.SAIA.BaseURL == "" {
		c.SAIA.BaseURL = "https://api.saia.ai"
	}
	if c.Graph.Folder == "" {
		c.Graph.Folder = "whatsapp-files"
	}

	// env sempre ganha para credenciais
	c.WebhookVerifyToken = getenv("WEBHOOK_VERIFY_TOKEN", c.WebhookVerifyToken)
	c.WhatsApp.AccessToken = getenv("WSP_API_TOKEN", c.WhatsApp.AccessToken)
	c.WhatsApp.PhoneNumberID = getenv("WSP_API_PHONE_ID", c.WhatsApp.PhoneNumberID)
	c.SAIA.ApiToken = getenv("SAIA_API_TOKEN", c.SAIA.ApiToken)
	c.SAIA.OrganizationID = getenv("SAIA_ORGANIZATION_ID", c.SAIA.OrganizationID)
	c.SAIA.ProjectID = getenv("SAIA_PROJECT_ID", c.SAIA.ProjectID)
	c.SAIA.AssistantID = getenv("SAIA_ASSISTANT_ID", c.SAIA.AssistantID)
	c.Graph.TenantID = getenv("GRAPH_TENANT_ID", c.Graph.TenantID)
	c.Graph.ClientID = getenv("GRAPH_CLIENT_ID", c.Graph.ClientID)
	c.Graph.ClientSecret = getenv("GRAPH_CLIENT_SECRET", c.Graph.ClientSecret)
	c.Graph.DriveID = getenv("GRAPH_DRIVE_ID", c.Graph.DriveID)

	return c
}

func getenv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}
