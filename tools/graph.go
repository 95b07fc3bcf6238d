package tools

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// GraphSmallUploadLimit é o teto do caminho de upload direto (sem sessão
// de upload em partes, que este sistema não implementa).
const GraphSmallUploadLimit = 4 << 20

// ErrFileTooLarge indica mídia acima do limite de upload direto.
var ErrFileTooLarge = errors.New("file exceeds small upload limit")

// GraphClient is a thin client for Microsoft Graph drive uploads.
type GraphClient struct {
	TenantID     string
	ClientID     string
	ClientSecret string
	DriveID      string
	Folder       string

	LoginBaseURL string // default https://login.microsoftonline.com
	BaseURL      string // default https://graph.microsoft.com
}

// DriveItem é o descriptor devolvido pelo Graph após o upload.
type DriveItem struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	WebURL      string `json:"webUrl"`
	DownloadURL string `json:"@microsoft.graph.downloadUrl"`
}

// AccessURL prefere a URL de download direto; cai para a webUrl.
func (i DriveItem) AccessURL() string {
	if i.DownloadURL != "" {
		return i.DownloadURL
	}
	return i.WebURL
}

func (c GraphClient) Configured() bool {
	return strings.TrimSpace(c.TenantID) != "" &&
		strings.TrimSpace(c.ClientID) != "" &&
		strings.TrimSpace(c.ClientSecret) != "" &&
		strings.TrimSpace(c.DriveID) != ""
}

func (c GraphClient) loginBaseURL() string {
	base := strings.TrimRight(strings.TrimSpace(c.LoginBaseURL), "/")
	if base == "" {
		base = "https://login.microsoftonline.com"
	}
	return base
}

func (c GraphClient) baseURL() string {
	base := strings.TrimRight(strings.TrimSpace(c.BaseURL), "/")
	if base == "" {
		base = "https://graph.microsoft.com"
	}
	return base
}

// Token troca as client credentials por um access token de aplicação.
func (c GraphClient) Token(ctx context.Context) (string, error) {
	endpoint := fmt.Sprintf("%s/%s/oauth2/v2.0/token", c.loginBaseURL(), strings.TrimSpace(c.TenantID))

	form := url.Values{}
	form.Set("grant_type", "client_credentials")
	form.Set("client_id", c.ClientID)
	form.Set("client_secret", c.ClientSecret)
	form.Set("scope", "https://graph.microsoft.com/.default")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	httpClient := &http.Client{Timeout: 30 * time.Second}
	resp, err := httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("graph token error: status=%d body=%s", resp.StatusCode, string(raw))
	}

	var parsed struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", err
	}
	if strings.TrimSpace(parsed.AccessToken) == "" {
		return "", fmt.Errorf("graph token error: empty access_token")
	}
	return parsed.AccessToken, nil
}

// UploadSmallFile sobe o conteúdo direto para o drive configurado.
// Mídia acima de GraphSmallUploadLimit é rejeitada com ErrFileTooLarge.
func (c GraphClient) UploadSmallFile(ctx context.Context, token string, name string, data []byte) (*DriveItem, error) {
	if len(data) > GraphSmallUploadLimit {
		return nil, ErrFileTooLarge
	}

	folder := strings.Trim(strings.TrimSpace(c.Folder), "/")
	path := url.PathEscape(name)
	if folder != "" {
		path = url.PathEscape(folder) + "/" + path
	}
	endpoint := fmt.Sprintf("%s/v1.0/drives/%s/root:/%s:/content", c.baseURL(), strings.TrimSpace(c.DriveID), path)

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, endpoint, bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/octet-stream")

	httpClient := &http.Client{Timeout: 60 * time.Second}
	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("graph upload error: status=%d body=%s", resp.StatusCode, string(raw))
	}

	var item DriveItem
	if err := json.NewDecoder(resp.Body).Decode(&item); err != nil {
		return nil, err
	}
	return &item, nil
}
