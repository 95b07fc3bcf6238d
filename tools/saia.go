package tools

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"mime"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/unicode/norm"
)

const saiaUploadCacheCapacity = 256

// SAIAClient fala com a API da SAIA: upload de bytes e chat com assistant.
//
// O cache de uploads evita reenviar bytes idênticos dentro do mesmo processo.
// É apenas otimização (nunca mecanismo de corretude) e assume o modelo de
// uma requisição por vez do webhook, por isso não há lock.
type SAIAClient struct {
	APIToken       string
	OrganizationID string
	ProjectID      string
	AssistantID    string
	BaseURL        string        // default https://api.saia.ai
	Timeout        time.Duration // default 60s
	CacheCapacity  int           // default 256

	uploadCache     map[string]UploadResult
	uploadCacheKeys []string
}

// UploadResult resume um upload efetuado (ou servido do cache).
type UploadResult struct {
	StatusCode int
	FileName   string
	FileAlias  string
	FileSize   int
	FileSHA256 string
	Response   map[string]any
}

func (c *SAIAClient) baseURL() string {
	base := strings.TrimRight(strings.TrimSpace(c.BaseURL), "/")
	if base == "" {
		base = "https://api.saia.ai"
	}
	return base
}

func (c *SAIAClient) timeout() time.Duration {
	if c.Timeout <= 0 {
		return 60 * time.Second
	}
	return c.Timeout
}

func (c *SAIAClient) cacheCapacity() int {
	if c.CacheCapacity <= 0 {
		return saiaUploadCacheCapacity
	}
	return c.CacheCapacity
}

func (c *SAIAClient) setHeaders(req *http.Request) {
	req.Header.Set("Authorization", "Bearer "+strings.TrimSpace(c.APIToken))
	req.Header.Set("organizationId", c.OrganizationID)
	req.Header.Set("projectId", c.ProjectID)
}

// sanitizeHeaderValue reduz um valor a ASCII imprimível (acentos viram a
// letra base via NFKD), já que headers HTTP não aceitam acentos ou emojis.
func sanitizeHeaderValue(v string) string {
	decomposed := norm.NFKD.String(v)
	var b strings.Builder
	b.Grow(len(decomposed))
	for _, r := range decomposed {
		if r < 128 && r >= 32 {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func guessContentType(name string) string {
	if mt := mime.TypeByExtension(filepath.Ext(name)); mt != "" {
		return mt
	}
	return "application/octet-stream"
}

// UploadBytes envia bytes para {base}/v1/files. Uploads de bytes idênticos
// sob o mesmo alias são respondidos do cache.
func (c *SAIAClient) UploadBytes(ctx context.Context, data []byte, fileName string, folder string, alias string) (*UploadResult, error) {
	sum := sha256.Sum256(data)
	fileHash := hex.EncodeToString(sum[:])

	aliasUsed := strings.TrimSpace(alias)
	if aliasUsed == "" {
		base := filepath.Base(fileName)
		aliasUsed = strings.TrimSuffix(base, filepath.Ext(base))
	}
	if folder == "" {
		folder = "test1"
	}

	cacheKey := aliasUsed + ":" + fileHash
	if cached, ok := c.uploadCache[cacheKey]; ok {
		res := cached
		return &res, nil
	}

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	partHeader := textproto.MIMEHeader{}
	partHeader.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename=%q`, fileName))
	partHeader.Set("Content-Type", guessContentType(fileName))
	fw, err := mw.CreatePart(partHeader)
	if err != nil {
		return nil, err
	}
	if _, err := fw.Write(data); err != nil {
		return nil, err
	}
	if err := mw.Close(); err != nil {
		return nil, err
	}

	url := c.baseURL() + "/v1/files"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, &body)
	if err != nil {
		return nil, err
	}
	c.setHeaders(req)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("fileName", sanitizeHeaderValue(aliasUsed))
	req.Header.Set("folder", sanitizeHeaderValue(folder))

	httpClient := &http.Client{Timeout: c.timeout()}
	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)
	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("saia upload error: status=%d body=%s", resp.StatusCode, string(raw))
	}

	fields := map[string]any{}
	if err := json.Unmarshal(raw, &fields); err != nil {
		fields = map[string]any{"text": string(raw)}
	}

	result := UploadResult{
		StatusCode: resp.StatusCode,
		FileName:   fileName,
		FileAlias:  aliasUsed,
		FileSize:   len(data),
		FileSHA256: fileHash,
		Response:   fields,
	}
	c.cacheUpload(cacheKey, result)
	return &result, nil
}

func (c *SAIAClient) cacheUpload(key string, res UploadResult) {
	if c.uploadCache == nil {
		c.uploadCache = map[string]UploadResult{}
	}
	if _, ok := c.uploadCache[key]; !ok {
		if len(c.uploadCacheKeys) >= c.cacheCapacity() {
			oldest := c.uploadCacheKeys[0]
			c.uploadCacheKeys = c.uploadCacheKeys[1:]
			delete(c.uploadCache, oldest)
		}
		c.uploadCacheKeys = append(c.uploadCacheKeys, key)
	}
	c.uploadCache[key] = res
}

var fencedJSON = regexp.MustCompile("```json\\s*|\\s*```")

// ParseAIResponse extrai o JSON embutido em bloco ```json (convenção do
// assistant); quando o texto não é JSON válido, devolve {"message": texto}.
func ParseAIResponse(text string) map[string]any {
	clean := strings.TrimSpace(fencedJSON.ReplaceAllString(text, ""))

	var parsed map[string]any
	if err := json.Unmarshal([]byte(clean), &parsed); err != nil {
		return map[string]any{"message": text}
	}
	return parsed
}

// Chat manda um prompt para o assistant configurado e devolve a resposta
// já parseada (JSON do bloco cercado, ou texto plano em "message"). alias
// referencia um upload anterior via header fileName: é ele que diz ao
// assistant de qual arquivo extrair.
func (c *SAIAClient) Chat(ctx context.Context, prompt string, alias string) (map[string]any, error) {
	requestID := uuid.New().String()[:8]
	log.Printf("saia: [%s] chat assistant=%s alias=%q", requestID, c.AssistantID, alias)

	payload := map[string]any{
		"model":    fmt.Sprintf("saia:assistant:%s", c.AssistantID),
		"messages": []map[string]any{{"role": "user", "content": prompt}},
		"stream":   false,
	}
	b, _ := json.Marshal(payload)

	url := c.baseURL() + "/chat"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(b))
	if err != nil {
		return nil, err
	}
	c.setHeaders(req)
	req.Header.Set("Content-Type", "application/json")
	if strings.TrimSpace(alias) != "" {
		req.Header.Set("fileName", sanitizeHeaderValue(alias))
	}

	httpClient := &http.Client{Timeout: c.timeout()}
	start := time.Now()
	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("saia chat error: status=%d body=%s", resp.StatusCode, string(raw))
	}

	var parsed struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, err
	}

	raw := ""
	if len(parsed.Choices) > 0 {
		raw = parsed.Choices[0].Message.Content
	}
	if strings.TrimSpace(raw) == "" {
		return map[string]any{
			"error":        "no_text_found",
			"user_message": "No se detectó texto en el archivo o imagen.",
		}, nil
	}

	result := ParseAIResponse(raw)
	if m, ok := result["message"].(string); ok && strings.TrimSpace(m) == "" {
		return map[string]any{
			"error":        "no_text_found",
			"user_message": "No se detectó texto en el archivo o imagen.",
		}, nil
	}

	log.Printf("saia: [%s] chat completado em %s", requestID, time.Since(start))
	return result, nil
}
