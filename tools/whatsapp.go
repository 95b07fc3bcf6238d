package tools

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// FileDescriptor é o metadado de mídia devolvido pelo Cloud API para um file id.
type FileDescriptor struct {
	URL      string `json:"url"`
	MimeType string `json:"mime_type"`
	FileSize int64  `json:"file_size"`
	ID       string `json:"id"`
}

// WhatsAppClient is a thin client for WhatsApp Cloud API calls.
type WhatsAppClient struct {
	AccessToken   string
	ApiVersion    string // e.g. v20.0
	PhoneNumberID string
	BaseURL       string // default https://graph.facebook.com
}

func (c WhatsAppClient) baseURL() string {
	base := strings.TrimRight(strings.TrimSpace(c.BaseURL), "/")
	if base == "" {
		base = "https://graph.facebook.com"
	}
	return base
}

func (c WhatsAppClient) apiVersion() string {
	v := strings.TrimSpace(c.ApiVersion)
	if v == "" {
		v = "v20.0"
	}
	return v
}

func (c WhatsAppClient) do(req *http.Request) (*http.Response, error) {
	req.Header.Set("Authorization", "Bearer "+strings.TrimSpace(c.AccessToken))
	httpClient := &http.Client{Timeout: 30 * time.Second}
	return httpClient.Do(req)
}

// SendMessage envia um payload de saída para o remetente.
func (c WhatsAppClient) SendMessage(ctx context.Context, msg Message) error {
	url := fmt.Sprintf("%s/%s/%s/messages", c.baseURL(), c.apiVersion(), strings.TrimSpace(c.PhoneNumberID))

	b, _ := json.Marshal(msg)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(b))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("whatsapp api error: status=%d body=%s", resp.StatusCode, string(raw))
	}
	return nil
}

// GetFile resolve o descriptor (URL temporária, mime, tamanho) de um file id.
func (c WhatsAppClient) GetFile(ctx context.Context, fileID string) (*FileDescriptor, error) {
	url := fmt.Sprintf("%s/%s/%s", c.baseURL(), c.apiVersion(), strings.TrimSpace(fileID))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("whatsapp api error: status=%d body=%s", resp.StatusCode, string(raw))
	}

	var desc FileDescriptor
	if err := json.NewDecoder(resp.Body).Decode(&desc); err != nil {
		return nil, err
	}
	return &desc, nil
}

// DownloadFile baixa os bytes da mídia pela URL do descriptor.
// A URL exige o mesmo bearer token das demais chamadas.
func (c WhatsAppClient) DownloadFile(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("whatsapp media download error: status=%d body=%s", resp.StatusCode, string(raw))
	}
	return io.ReadAll(resp.Body)
}
