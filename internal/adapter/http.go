package adapter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/MKhiriev/go-waste-sync/internal/config"
	"github.com/MKhiriev/go-waste-sync/internal/logger"
	"github.com/MKhiriev/go-waste-sync/internal/utils"
	"github.com/MKhiriev/go-waste-sync/models"
	"github.com/go-resty/resty/v2"
)

// HashHeader carries the HMAC-SHA256 of the request body.
const HashHeader = utils.HashHeader

var submitPaths = map[models.QueueArea]string{
	models.QueueCollections: "/api/collections/scan",
	models.QueuePickups:     "/api/pickups",
	models.QueuePayments:    "/api/transactions/pay",
}

type httpServerAdapter struct {
	client *utils.HTTPClient
	hasher *utils.Hasher

	mu    sync.RWMutex
	token string

	logger *logger.Logger
}

// NewHTTPServerAdapter constructs the resty implementation of [ServerAdapter].
// When reporter is not nil, every received response reports online and every
// transport failure reports offline. Bodies are signed when appCfg.HashKey is
// set.
func NewHTTPServerAdapter(adapterCfg config.ClientAdapter, appCfg config.ClientApp, reporter ConnectivityReporter, logger *logger.Logger) (ServerAdapter, error) {
	baseURL, err := normalizeBaseURL(adapterCfg.HTTPAddress)
	if err != nil {
		return nil, fmt.Errorf("invalid adapter http address: %w", err)
	}

	client := utils.NewHTTPClient(baseURL, adapterCfg.RequestTimeout)
	if reporter != nil {
		client.OnAfterResponse(func(_ *resty.Client, _ *resty.Response) error {
			reporter.Report(true)
			return nil
		})
		client.OnError(func(_ *resty.Request, err error) {
			var respErr *resty.ResponseError
			reporter.Report(errors.As(err, &respErr))
		})
	}

	h := &httpServerAdapter{client: client, logger: logger}
	if appCfg.HashKey != "" {
		h.hasher = utils.NewHasher(appCfg.HashKey)
	}
	return h, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

func (h *httpServerAdapter) SetToken(token string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.token = strings.TrimSpace(token)
}

func (h *httpServerAdapter) Token() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.token
}

func (h *httpServerAdapter) Register(ctx context.Context, req models.AuthRequest) (models.Session, error) {
	return h.authenticate(ctx, "/api/auth/register", req)
}

func (h *httpServerAdapter) Login(ctx context.Context, req models.AuthRequest) (models.Session, error) {
	return h.authenticate(ctx, "/api/auth/login", req)
}

func (h *httpServerAdapter) authenticate(ctx context.Context, path string, req models.AuthRequest) (models.Session, error) {
	body, err := h.signedRequest(ctx, req)
	if err != nil {
		return models.Session{}, err
	}

	resp, err := body.Post(path)
	if err != nil {
		return models.Session{}, fmt.Errorf("%w: %s: %w", ErrServerUnreachable, path, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Session{}, err
	}

	var auth models.AuthResponse
	if err = json.Unmarshal(resp.Body(), &auth); err != nil {
		return models.Session{}, fmt.Errorf("decode auth response: %w", err)
	}
	if auth.Token == "" {
		return models.Session{}, fmt.Errorf("decode auth response: empty token")
	}

	h.SetToken(auth.Token)
	return models.Session{Token: auth.Token, User: auth.User}, nil
}

func (h *httpServerAdapter) Me(ctx context.Context) (models.User, error) {
	resp, err := h.authedRequest(ctx).Get("/api/auth/me")
	if err != nil {
		return models.User{}, fmt.Errorf("%w: me: %w", ErrServerUnreachable, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.User{}, err
	}

	var user models.User
	if err = json.Unmarshal(resp.Body(), &user); err != nil {
		return models.User{}, fmt.Errorf("decode me response: %w", err)
	}
	return user, nil
}

func (h *httpServerAdapter) GetUpdates(ctx context.Context, since *time.Time) (models.SyncUpdates, error) {
	req := h.authedRequest(ctx)
	if since != nil {
		req.SetQueryParam("since", since.UTC().Format(models.ServerTimeLayout))
	}

	resp, err := req.Get("/api/sync/updates")
	if err != nil {
		return models.SyncUpdates{}, fmt.Errorf("%w: sync updates: %w", ErrServerUnreachable, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.SyncUpdates{}, err
	}

	var updates models.SyncUpdates
	if err = json.Unmarshal(resp.Body(), &updates); err != nil {
		return models.SyncUpdates{}, fmt.Errorf("decode sync updates: %w", err)
	}
	return updates, nil
}

func (h *httpServerAdapter) Submit(ctx context.Context, area models.QueueArea, payload models.Payload) (models.WriteAck, error) {
	path, ok := submitPaths[area]
	if !ok {
		return models.WriteAck{}, fmt.Errorf("%w: %s", ErrUnknownArea, area)
	}

	req, err := h.signedRequest(ctx, payload)
	if err != nil {
		return models.WriteAck{}, err
	}

	resp, err := req.Post(path)
	if err != nil {
		return models.WriteAck{}, fmt.Errorf("%w: %s: %w", ErrServerUnreachable, path, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.WriteAck{}, err
	}

	var ack models.WriteAck
	// an undecodable 2xx body still means the write was stored
	if err = json.Unmarshal(resp.Body(), &ack); err != nil {
		h.logger.Warn().Err(err).Str("func", "*httpServerAdapter.Submit").Str("area", string(area)).Msg("undecodable write acknowledgement")
	}
	return ack, nil
}

func (h *httpServerAdapter) Ping(ctx context.Context) error {
	resp, err := h.client.R().SetContext(ctx).Get("/api/health")
	if err != nil {
		return fmt.Errorf("%w: health: %w", ErrServerUnreachable, err)
	}
	return mapHTTPError(resp)
}

func (h *httpServerAdapter) authedRequest(ctx context.Context) *resty.Request {
	req := h.client.R().SetContext(ctx)
	if token := h.Token(); token != "" {
		req.SetHeader("Authorization", "Bearer "+token)
	}
	return req
}

// signedRequest marshals body once so that the signature covers the exact
// bytes on the wire.
func (h *httpServerAdapter) signedRequest(ctx context.Context, body any) (*resty.Request, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("encode request body: %w", err)
	}

	req := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(payload)
	if h.hasher != nil {
		req.SetHeader(HashHeader, h.hasher.HexSum(payload))
	}
	return req, nil
}
