// Package api implementa el transporte REST hacia el backend y los clientes de
// auth, productos, órdenes y usuarios.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/gestion-cliente/internal/application/dto"
	"github.com/jhoicas/gestion-cliente/internal/domain"
	"github.com/jhoicas/gestion-cliente/pkg/logger"
)

const (
	defaultTimeout  = 10 * time.Second
	maxResponseBody = 1 << 20
	headerRequestID = "X-Request-ID"
)

// TokenSource entrega el token vigente para el header Authorization.
type TokenSource interface {
	Token() string
}

// Client transporte HTTP con token bearer, id de petición y traducción de errores.
type Client struct {
	baseURL string
	http    *http.Client
	log     *logger.Logger

	mu             sync.RWMutex
	tokens         TokenSource
	onUnauthorized func(token string)
}

// Option configura el cliente.
type Option func(*Client)

// WithHTTPClient reemplaza el *http.Client (tests).
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		if h != nil {
			c.http = h
		}
	}
}

// WithTokenSource fija la fuente del token.
func WithTokenSource(ts TokenSource) Option {
	return func(c *Client) { c.tokens = ts }
}

// WithUnauthorizedHandler fija la función que se invoca ante un 401; recibe el token
// con el que se hizo la petición rechazada.
func WithUnauthorizedHandler(fn func(token string)) Option {
	return func(c *Client) { c.onUnauthorized = fn }
}

// NewClient construye el transporte. timeout <= 0 usa 10 s.
func NewClient(baseURL string, timeout time.Duration, log *logger.Logger, opts ...Option) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		log:     log.Component("api"),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// SetTokenSource conecta la fuente de token después de construir el cliente
// (el gestor de sesión depende del cliente de auth y viceversa).
func (c *Client) SetTokenSource(ts TokenSource) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.tokens = ts
}

// SetUnauthorizedHandler conecta la expiración de sesión ante 401.
func (c *Client) SetUnauthorizedHandler(fn func(token string)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onUnauthorized = fn
}

// BaseURL URL base configurada.
func (c *Client) BaseURL() string { return c.baseURL }

type requestOptions struct {
	noAuth   bool
	noExpire bool
	bearer   string
	query    url.Values
}

// RequestOption ajusta una petición individual.
type RequestOption func(*requestOptions)

// NoAuth omite el header Authorization y el manejo de 401 (login).
func NoAuth() RequestOption {
	return func(o *requestOptions) { o.noAuth = true }
}

// WithBearer usa un token explícito en lugar del de la TokenSource (logout).
func WithBearer(token string) RequestOption {
	return func(o *requestOptions) { o.bearer = token }
}

func noExpire() RequestOption {
	return func(o *requestOptions) { o.noExpire = true }
}

// WithQuery agrega parámetros de query.
func WithQuery(q url.Values) RequestOption {
	return func(o *requestOptions) { o.query = q }
}

func (c *Client) token() string {
	c.mu.RLock()
	ts := c.tokens
	c.mu.RUnlock()
	if ts == nil {
		return ""
	}
	return ts.Token()
}

func (c *Client) unauthorized(token string) {
	c.mu.RLock()
	fn := c.onUnauthorized
	c.mu.RUnlock()
	if fn != nil {
		fn(token)
	}
}

// Do ejecuta la petición. body se serializa a JSON si no es nil; out recibe la respuesta 2xx.
// Los errores son siempre *Error.
func (c *Client) Do(ctx context.Context, method, path string, body, out any, opts ...RequestOption) error {
	var ro requestOptions
	for _, o := range opts {
		o(&ro)
	}

	target := c.baseURL + path
	if len(ro.query) > 0 {
		target += "?" + ro.query.Encode()
	}

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return &Error{Status: StatusRequestSetup, Err: fmt.Errorf("serializar petición: %w", err)}
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return &Error{Status: StatusRequestSetup, Err: fmt.Errorf("crear petición: %w", err)}
	}
	reqID := uuid.NewString()
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set(headerRequestID, reqID)
	var tok string
	if !ro.noAuth {
		tok = ro.bearer
		if tok == "" {
			tok = c.token()
		}
		if tok != "" {
			req.Header.Set("Authorization", "Bearer "+tok)
		}
	}

	start := time.Now()
	c.log.Debug().Str("method", method).Str("path", path).Str("request_id", reqID).Msg("petición API")

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn().Err(err).Str("method", method).Str("path", path).Msg("sin respuesta del backend")
		return &Error{Status: StatusNoResponse, Err: fmt.Errorf("%s %s: %w", method, path, err)}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	if err != nil {
		return &Error{Status: StatusNoResponse, Err: fmt.Errorf("leer respuesta: %w", err)}
	}

	c.log.Debug().
		Int("status", resp.StatusCode).
		Str("path", path).
		Str("request_id", reqID).
		Dur("duracion", time.Since(start)).
		Msg("respuesta API")

	if resp.StatusCode >= http.StatusBadRequest {
		apiErr := &Error{Status: resp.StatusCode, Body: raw}
		var er dto.ErrorResponse
		if json.Unmarshal(raw, &er) == nil {
			apiErr.Message = er.Text()
			apiErr.Code = er.Code
		}
		switch resp.StatusCode {
		case http.StatusUnauthorized:
			if !ro.noAuth && !ro.noExpire {
				c.log.Warn().Str("path", path).Msg("token inválido o expirado, cerrando sesión")
				c.unauthorized(tok)
			}
		case http.StatusForbidden:
			c.log.Warn().Str("path", path).Msg("acceso denegado, permisos insuficientes")
		}
		return apiErr
	}

	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return &Error{Status: resp.StatusCode, Body: raw, Err: fmt.Errorf("%w: respuesta inválida: %v", domain.ErrServer, err)}
	}
	return nil
}

func (c *Client) Get(ctx context.Context, path string, out any, opts ...RequestOption) error {
	return c.Do(ctx, http.MethodGet, path, nil, out, opts...)
}

func (c *Client) Post(ctx context.Context, path string, body, out any, opts ...RequestOption) error {
	return c.Do(ctx, http.MethodPost, path, body, out, opts...)
}

func (c *Client) Put(ctx context.Context, path string, body, out any, opts ...RequestOption) error {
	return c.Do(ctx, http.MethodPut, path, body, out, opts...)
}

func (c *Client) Patch(ctx context.Context, path string, body, out any, opts ...RequestOption) error {
	return c.Do(ctx, http.MethodPatch, path, body, out, opts...)
}

func (c *Client) Delete(ctx context.Context, path string, opts ...RequestOption) error {
	return c.Do(ctx, http.MethodDelete, path, nil, nil, opts...)
}

// Health true si GET /health responde 200.
func (c *Client) Health(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return false
	}
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn().Err(err).Msg("no se pudo conectar con el backend")
		return false
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)
	return resp.StatusCode == http.StatusOK
}
