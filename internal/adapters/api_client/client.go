package api_client

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

	"github.com/mohitk58/apnadera-frontend/internal/contextkeys"
	"github.com/mohitk58/apnadera-frontend/internal/core/domain"
	"github.com/mohitk58/apnadera-frontend/internal/core/port"
)

// Client - клиент удаленного REST API маркетплейса.
// Токен берется из явно переданной сессии; 401 возвращается как domain.ErrUnauthorized,
// сам клиент ни токен, ни навигацию не трогает.
type Client struct {
	baseURL    string // например, "http://localhost:5002"
	httpClient *http.Client
}

var (
	_ port.PropertyAPIPort = (*Client)(nil)
	_ port.UserAPIPort     = (*Client)(nil)
	_ port.AuthAPIPort     = (*Client)(nil)
	_ port.ContactAPIPort  = (*Client)(nil)
)

// NewClient - конструктор. Таймаут не задается: используется поведение транспорта по умолчанию.
func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

func (c *Client) Get(ctx context.Context, sess *domain.Session, path string, query url.Values, out any) error {
	return c.do(ctx, sess, http.MethodGet, path, query, nil, out)
}

// Post отправляет body как JSON, либо как multipart/form-data, если это *MultipartBody.
func (c *Client) Post(ctx context.Context, sess *domain.Session, path string, body, out any) error {
	return c.do(ctx, sess, http.MethodPost, path, nil, body, out)
}

func (c *Client) Put(ctx context.Context, sess *domain.Session, path string, body, out any) error {
	return c.do(ctx, sess, http.MethodPut, path, nil, body, out)
}

func (c *Client) Delete(ctx context.Context, sess *domain.Session, path string, out any) error {
	return c.do(ctx, sess, http.MethodDelete, path, nil, nil, out)
}

func (c *Client) do(ctx context.Context, sess *domain.Session, method, path string, query url.Values, body, out any) error {
	clientLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component":   "api_client",
		"http_method": method,
		"api_path":    path,
	})

	reader, contentType, err := encodeBody(body)
	if err != nil {
		clientLogger.Error("Failed to encode request body", err, nil)
		return fmt.Errorf("failed to encode request body: %w", err)
	}

	resp, err := c.doRequest(ctx, sess, method, c.buildURL(path, query), reader, contentType)
	if err != nil {
		clientLogger.Error("Failed to perform request", err, nil)
		return fmt.Errorf("%w: %s %s: %v", domain.ErrTransport, method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		bodyBytes, _ := io.ReadAll(resp.Body)
		apiErr := parseAPIError(resp.StatusCode, bodyBytes)
		if errors.Is(apiErr, domain.ErrUnauthorized) {
			clientLogger.Warn("Remote API rejected the session token", port.Fields{"status_code": resp.StatusCode})
		} else {
			clientLogger.Error("Received non-2xx response", apiErr, port.Fields{"status_code": resp.StatusCode})
		}
		return apiErr
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil && !errors.Is(err, io.EOF) {
		clientLogger.Error("Failed to decode response", err, nil)
		return fmt.Errorf("%w: failed to decode response of %s %s: %v", domain.ErrTransport, method, path, err)
	}

	clientLogger.Debug("Request completed", port.Fields{"status_code": resp.StatusCode})
	return nil
}

// doRequest - общие заголовки: трассировка, авторизация, формат.
func (c *Client) doRequest(ctx context.Context, sess *domain.Session, method, url string, body io.Reader, contentType string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	if traceID := contextkeys.TraceIDFromContext(ctx); traceID != "" {
		req.Header.Set("X-Trace-ID", traceID)
	}
	if token := sess.BearerToken(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")

	return c.httpClient.Do(req)
}

func (c *Client) buildURL(path string, query url.Values) string {
	u := c.baseURL + "/" + strings.TrimLeft(path, "/")
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	return u
}

func encodeBody(body any) (io.Reader, string, error) {
	switch b := body.(type) {
	case nil:
		return nil, "", nil
	case *MultipartBody:
		return b.Encode()
	default:
		raw, err := json.Marshal(b)
		if err != nil {
			return nil, "", err
		}
		return bytes.NewReader(raw), "application/json", nil
	}
}

// errorBody - формы ошибок, которые присылает сервер:
// {"message": "..."}, {"error": "..."}, {"errors": [{"msg": "...", "param": "..."}]}
// или {"errors": {"field": "message"}}.
type errorBody struct {
	Message string          `json:"message"`
	Error   string          `json:"error"`
	Errors  json.RawMessage `json:"errors"`
}

type fieldErrorDTO struct {
	Msg     string `json:"msg"`
	Message string `json:"message"`
	Param   string `json:"param"`
	Path    string `json:"path"`
	Field   string `json:"field"`
}

func parseAPIError(status int, body []byte) *domain.APIError {
	apiErr := &domain.APIError{StatusCode: status}

	var eb errorBody
	if err := json.Unmarshal(body, &eb); err == nil {
		apiErr.Message = eb.Message
		if apiErr.Message == "" {
			apiErr.Message = eb.Error
		}
		apiErr.Fields = parseFieldErrors(eb.Errors)
	}
	if apiErr.Message == "" {
		apiErr.Message = domain.DefaultErrorMessage
	}
	return apiErr
}

func parseFieldErrors(raw json.RawMessage) []domain.FieldError {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}

	var list []fieldErrorDTO
	if err := json.Unmarshal(raw, &list); err == nil {
		out := make([]domain.FieldError, 0, len(list))
		for _, fe := range list {
			field := firstNonEmpty(fe.Path, fe.Param, fe.Field)
			msg := firstNonEmpty(fe.Msg, fe.Message)
			if msg == "" {
				continue
			}
			out = append(out, domain.FieldError{Field: field, Message: msg})
		}
		return out
	}

	var byField map[string]json.RawMessage
	if err := json.Unmarshal(raw, &byField); err == nil {
		out := make([]domain.FieldError, 0, len(byField))
		for field, v := range byField {
			var msg string
			if json.Unmarshal(v, &msg) != nil {
				var fe fieldErrorDTO
				if json.Unmarshal(v, &fe) != nil {
					continue
				}
				msg = firstNonEmpty(fe.Message, fe.Msg)
			}
			if msg != "" {
				out = append(out, domain.FieldError{Field: field, Message: msg})
			}
		}
		sortFieldErrors(out)
		return out
	}
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
