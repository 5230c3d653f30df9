// backend/src/handlers/account_handler.go
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/username/fintrack/backend/src/logger"
	"github.com/username/fintrack/backend/src/models"
	"github.com/username/fintrack/backend/src/security/validation"
	"github.com/username/fintrack/backend/src/services"
	"github.com/username/fintrack/backend/src/store"
	"github.com/username/fintrack/backend/src/utils"
)

type AccountHandler struct {
	accountService services.AccountService
}

func NewAccountHandler(service services.AccountService) *AccountHandler {
	return &AccountHandler{
		accountService: service,
	}
}

func (h *AccountHandler) HandleListAccounts(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserIDFromContext(r.Context())
	if !ok {
		utils.SendJSONError(w, "authentication required or user ID not found in context", http.StatusUnauthorized)
		return
	}

	accounts, err := h.accountService.ListAccounts(r.Context(), userID)
	if err != nil {
		logger.FromContext(r.Context()).Error("Failed to list accounts", "error", err)
		utils.SendJSONError(w, "Failed to retrieve accounts", http.StatusInternalServerError)
		return
	}
	if accounts == nil {
		accounts = []models.AccountWithBalance{}
	}
	utils.WriteJSON(w, http.StatusOK, accounts)
}

func (h *AccountHandler) HandleCreateAccount(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserIDFromContext(r.Context())
	if !ok {
		utils.SendJSONError(w, "authentication required", http.StatusUnauthorized)
		return
	}

	var input services.AccountInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.SendJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	account, err := h.accountService.CreateAccount(r.Context(), userID, input)
	if err != nil {
		sendServiceError(w, r, err, "Failed to create account")
		return
	}
	utils.WriteJSON(w, http.StatusCreated, account)
}

func (h *AccountHandler) HandleUpdateAccount(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserIDFromContext(r.Context())
	if !ok {
		utils.SendJSONError(w, "authentication required", http.StatusUnauthorized)
		return
	}
	accountID := chi.URLParam(r, "accountID")

	var input services.AccountInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.SendJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	account, err := h.accountService.UpdateAccount(r.Context(), userID, accountID, input)
	if err != nil {
		sendServiceError(w, r, err, "Failed to update account")
		return
	}
	utils.WriteJSON(w, http.StatusOK, account)
}

func (h *AccountHandler) HandleGetSummary(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserIDFromContext(r.Context())
	if !ok {
		utils.SendJSONError(w, "authentication required", http.StatusUnauthorized)
		return
	}

	summary, err := h.accountService.GetSummary(r.Context(), userID, accountIDsFromQuery(r))
	if err != nil {
		logger.FromContext(r.Context()).Error("Failed to build summary", "error", err)
		utils.SendJSONError(w, "Failed to build summary", http.StatusInternalServerError)
		return
	}
	utils.WriteJSON(w, http.StatusOK, summary)
}

// accountIDsFromQuery parses the optional comma-separated account_ids filter.
func accountIDsFromQuery(r *http.Request) []string {
	raw := strings.TrimSpace(r.URL.Query().Get("account_ids"))
	if raw == "" {
		return nil
	}
	var ids []string
	for _, id := range strings.Split(raw, ",") {
		if id = strings.TrimSpace(id); id != "" {
			ids = append(ids, id)
		}
	}
	return ids
}

// sendServiceError maps known service errors onto HTTP statuses; anything
// unexpected is logged and reported as a 500 with a generic message.
func sendServiceError(w http.ResponseWriter, r *http.Request, err error, fallbackMsg string) {
	switch {
	case errors.Is(err, validation.ErrValidationFailed):
		utils.SendJSONError(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, store.ErrDuplicateName):
		utils.SendJSONError(w, "An account with this name already exists", http.StatusConflict)
	case errors.Is(err, store.ErrNotFound):
		utils.SendJSONError(w, "Record not found", http.StatusNotFound)
	case errors.Is(err, services.ErrParsingFailed),
		errors.Is(err, services.ErrNoValidRows),
		errors.Is(err, services.ErrNoAccounts):
		utils.SendJSONError(w, err.Error(), http.StatusBadRequest)
	default:
		logger.FromContext(r.Context()).Error(fallbackMsg, "error", err)
		utils.SendJSONError(w, fallbackMsg, http.StatusInternalServerError)
	}
}
