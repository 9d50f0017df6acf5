package handlers

import (
	"io"
	"net/http"
	"sync"

	"github.com/advantage-qa/aos-e2e/internal/models"
	"github.com/advantage-qa/aos-e2e/internal/services"
	"go.uber.org/zap"
)

const maxEnvelopeBytes = 1 << 20

// AccountServiceHandler is an in-memory stand-in for the account service's
// AccountCreateRequest operation
type AccountServiceHandler struct {
	mu       sync.Mutex
	accounts map[string]models.AccountCreateParams
	nextID   int64
	logger   *zap.Logger
}

// NewAccountServiceHandler creates a stub whose account ids start after firstID
func NewAccountServiceHandler(firstID int64, logger *zap.Logger) *AccountServiceHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AccountServiceHandler{
		accounts: make(map[string]models.AccountCreateParams),
		nextID:   firstID,
		logger:   logger,
	}
}

// ServeHTTP handles the account creation request
func (h *AccountServiceHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	raw, err := io.ReadAll(io.LimitReader(r.Body, maxEnvelopeBytes))
	if err != nil {
		h.writeFault(w, "failed to read request")
		return
	}

	req, err := services.ParseAccountCreateEnvelope(raw)
	if err != nil {
		h.logger.Warn("rejected malformed envelope", zap.Error(err))
		h.writeFault(w, err.Error())
		return
	}

	outcome := h.create(req.Params())
	body, err := services.BuildAccountCreateResponse(outcome)
	if err != nil {
		h.logger.Error("failed to render response", zap.Error(err))
		http.Error(w, "Failed to render response", http.StatusInternalServerError)
		return
	}

	writeXML(w, http.StatusOK, body)
}

// create registers params unless the login name is taken or a required field
// is missing. Rejections are reported in-band like the real service.
func (h *AccountServiceHandler) create(params models.AccountCreateParams) services.AccountCreateOutcome {
	if err := params.Validate(); err != nil {
		return services.AccountCreateOutcome{Reason: err.Error()}
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if _, exists := h.accounts[params.LoginName]; exists {
		h.logger.Info("duplicate login name", zap.String("loginName", params.LoginName))
		return services.AccountCreateOutcome{Reason: services.ReasonUserExists}
	}

	h.nextID++
	h.accounts[params.LoginName] = params
	h.logger.Info("account created",
		zap.String("loginName", params.LoginName),
		zap.Int64("accountId", h.nextID))

	return services.AccountCreateOutcome{
		Success:   true,
		AccountID: h.nextID,
		Reason:    services.ReasonUserCreated,
	}
}

// Account returns the stored params for a login name
func (h *AccountServiceHandler) Account(loginName string) (models.AccountCreateParams, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	params, ok := h.accounts[loginName]
	return params, ok
}

// Count returns the number of stored accounts
func (h *AccountServiceHandler) Count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.accounts)
}

func (h *AccountServiceHandler) writeFault(w http.ResponseWriter, message string) {
	body, err := services.BuildFault(services.FaultCodeClient, message)
	if err != nil {
		http.Error(w, message, http.StatusInternalServerError)
		return
	}
	writeXML(w, http.StatusInternalServerError, body)
}

func writeXML(w http.ResponseWriter, status int, body []byte) {
	w.Header().Set("Content-Type", "text/xml; charset=UTF-8")
	w.WriteHeader(status)
	w.Write(body)
}
