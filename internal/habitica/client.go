// Package habitica はHabitica v3 REST APIの薄いクライアント
package habitica

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

	"github.com/rs/zerolog"
	"github.com/tidwall/gjson"
)

// ErrMalformedResponse はレスポンスが期待したJSONでない場合に返す
var ErrMalformedResponse = errors.New("malformed response from Habitica")

// APIError はHabiticaからの2xx以外のレスポンス
type APIError struct {
	StatusCode int
	Status     string
	// RemoteMessage はレスポンスのmessageフィールド
	RemoteMessage string
}

func (e *APIError) Error() string {
	if e.RemoteMessage != "" {
		return fmt.Sprintf("habitica: %s: %s", e.Status, e.RemoteMessage)
	}
	return fmt.Sprintf("habitica: %s", e.Status)
}

// Options はClientの設定
type Options struct {
	BaseURL  string
	UserID   string
	APIToken string
	// Timeout は1リクエストの上限。0なら無制限
	Timeout time.Duration
	Logger  zerolog.Logger
}

// Client はHabiticaへ認証付きリクエストを送る。並行利用可
type Client struct {
	httpClient *http.Client
	baseURL    string
	userID     string
	apiToken   string
	logger     zerolog.Logger
}

func NewClient(opts Options) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: opts.Timeout},
		baseURL:    strings.TrimRight(opts.BaseURL, "/"),
		userID:     opts.UserID,
		apiToken:   opts.APIToken,
		logger:     opts.Logger.With().Str("component", "habitica").Logger(),
	}
}

// ClientID はx-clientヘッダーの値
func (c *Client) ClientID() string {
	return c.userID + "-HabiticaMCPServer"
}

func (c *Client) Get(ctx context.Context, path string) ([]byte, error) {
	return c.Do(ctx, http.MethodGet, path, nil)
}

func (c *Client) Post(ctx context.Context, path string, body any) ([]byte, error) {
	return c.Do(ctx, http.MethodPost, path, body)
}

func (c *Client) Put(ctx context.Context, path string, body any) ([]byte, error) {
	return c.Do(ctx, http.MethodPut, path, body)
}

func (c *Client) Delete(ctx context.Context, path string) ([]byte, error) {
	return c.Do(ctx, http.MethodDelete, path, nil)
}

// Do はリクエストを1回送りレスポンスボディを返す
func (c *Client) Do(ctx context.Context, method, path string, body any) ([]byte, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("x-api-user", c.userID)
	req.Header.Set("x-api-key", c.apiToken)
	req.Header.Set("x-client", c.ClientID())
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	c.logger.Debug().
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("duration", time.Since(start)).
		Msg("habitica request")

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &APIError{
			StatusCode:    resp.StatusCode,
			Status:        resp.Status,
			RemoteMessage: gjson.GetBytes(data, "message").String(),
		}
	}

	if len(data) > 0 && !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("%w: %s %s", ErrMalformedResponse, method, path)
	}

	return data, nil
}

// PathEscape はエスケープしたセグメントをパスに連結する。例: PathEscape("tasks", id) -> "/tasks/<id>"
func PathEscape(segments ...string) string {
	var b strings.Builder
	for _, s := range segments {
		b.WriteByte('/')
		b.WriteString(url.PathEscape(s))
	}
	return b.String()
}
