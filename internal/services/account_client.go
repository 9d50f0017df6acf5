package services

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/advantage-qa/aos-e2e/internal/config"
	"github.com/advantage-qa/aos-e2e/internal/models"
	"go.uber.org/zap"
)

// Account service endpoint and result texts
const (
	AccountCreatePath     = "/accountservice/ws/AccountCreateRequest"
	AccountCreatedMessage = "Account created successfully"
	AccountFailedPrefix   = "Account creation failed: "
	AccountErrorPrefix    = "Account creation error: "

	faultSnippetLength = 200
)

// AccountClient creates accounts on the remote account service
type AccountClient interface {
	CreateAccount(ctx context.Context, params models.AccountCreateParams) *models.AccountCreateResult
}

// HTTPAccountClient implements AccountClient with SOAP over HTTP.
// It holds no per-call state and is safe for concurrent use.
type HTTPAccountClient struct {
	config     *config.AccountServiceConfig
	httpClient *http.Client
	logger     *zap.Logger
}

// ClientOption customizes an HTTPAccountClient
type ClientOption func(*HTTPAccountClient)

// WithHTTPClient replaces the underlying HTTP client
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *HTTPAccountClient) {
		c.httpClient = hc
	}
}

// WithLogger sets the client logger
func WithLogger(logger *zap.Logger) ClientOption {
	return func(c *HTTPAccountClient) {
		c.logger = logger
	}
}

// NewAccountClient creates a new account service client
func NewAccountClient(cfg *config.AccountServiceConfig, opts ...ClientOption) *HTTPAccountClient {
	c := &HTTPAccountClient{
		config:     cfg,
		httpClient: &http.Client{},
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// CreateAccount provisions one account. It makes exactly one attempt and
// never returns an error: every failure is folded into the result.
func (c *HTTPAccountClient) CreateAccount(ctx context.Context, params models.AccountCreateParams) *models.AccountCreateResult {
	result := &models.AccountCreateResult{Params: params}
	logger := c.logger.With(zap.String("loginName", params.LoginName))

	body, err := BuildAccountCreateEnvelope(params)
	if err != nil {
		return c.transportFailure(logger, result, err)
	}

	if c.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.config.Timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint(), bytes.NewReader(body))
	if err != nil {
		return c.transportFailure(logger, result, fmt.Errorf("failed to create request: %w", err))
	}
	req.Header.Set("Content-Type", "text/xml; charset=UTF-8")
	req.Header.Set("SOAPAction", AccountCreateSOAPAction)
	req.Header.Set("X-Requested-With", "XMLHttpRequest")

	logger.Debug("sending account create request", zap.String("url", req.URL.String()))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return c.transportFailure(logger, result, err)
	}
	defer resp.Body.Close()

	result.StatusCode = resp.StatusCode
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		result.Kind = models.FailureProtocol
		result.Error = fmt.Sprintf("HTTP %d: %s", resp.StatusCode, statusText(resp))
		logger.Warn("account service returned non-2xx status", zap.Int("status", resp.StatusCode))
		return result
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return c.transportFailure(logger, result, fmt.Errorf("failed to read response: %w", err))
	}
	text := string(raw)

	verdict := interpretResponse(text)
	if verdict.Fault {
		result.Kind = models.FailureApplication
		result.Error = AccountFailedPrefix + truncateRunes(text, faultSnippetLength)
		logger.Warn("account service reported a fault", zap.String("body", truncateRunes(text, faultSnippetLength)))
		return result
	}

	result.Success = true
	result.AccountID = verdict.AccountID
	result.Message = AccountCreatedMessage
	logger.Debug("account created", zap.String("accountId", result.AccountID))
	return result
}

func (c *HTTPAccountClient) transportFailure(logger *zap.Logger, result *models.AccountCreateResult, err error) *models.AccountCreateResult {
	result.Success = false
	result.Kind = models.FailureTransport
	result.Error = AccountErrorPrefix + err.Error()
	logger.Warn("account create request failed", zap.Error(err))
	return result
}

// endpoint returns the full account creation URL
func (c *HTTPAccountClient) endpoint() string {
	return strings.TrimRight(c.config.BaseURL, "/") + AccountCreatePath
}

// statusText returns the reason phrase the server sent, or the standard one
func statusText(resp *http.Response) string {
	text := strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode))
	text = strings.TrimSpace(text)
	if text == "" {
		text = http.StatusText(resp.StatusCode)
	}
	return text
}
