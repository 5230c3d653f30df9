// backend/src/handlers/import_handler.go
package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/username/fintrack/backend/src/config"
	"github.com/username/fintrack/backend/src/importer"
	"github.com/username/fintrack/backend/src/logger"
	"github.com/username/fintrack/backend/src/security/validation"
	"github.com/username/fintrack/backend/src/services"
	"github.com/username/fintrack/backend/src/utils"
)

type ImportHandler struct {
	importService services.ImportService
}

func NewImportHandler(service services.ImportService) *ImportHandler {
	return &ImportHandler{
		importService: service,
	}
}

// HandleImportCSV accepts a multipart upload with a "file" field. Import
// options arrive as plain form values next to the file.
func (h *ImportHandler) HandleImportCSV(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserIDFromContext(r.Context())
	if !ok {
		utils.SendJSONError(w, "authentication required or user ID not found in context", http.StatusUnauthorized)
		return
	}
	ctxLogger := logger.FromContext(r.Context())

	if err := r.ParseMultipartForm(config.Cfg.MaxUploadSizeBytes); err != nil {
		ctxLogger.Warn("Failed to parse multipart form or request too large", "error", err, "limit", config.Cfg.MaxUploadSizeBytes)
		utils.SendJSONError(w, fmt.Sprintf("Failed to process upload or file too large (max %d MB)", config.Cfg.MaxUploadSizeBytes/(1024*1024)), http.StatusBadRequest)
		return
	}

	file, fileHeader, err := r.FormFile("file")
	if err != nil {
		ctxLogger.Warn("Failed to retrieve file from request", "error", err)
		utils.SendJSONError(w, "Failed to retrieve file from request. Ensure 'file' field is used.", http.StatusBadRequest)
		return
	}
	defer file.Close()

	if fileHeader.Size > config.Cfg.MaxUploadSizeBytes {
		ctxLogger.Warn("Uploaded file header reports size too large", "fileSize", fileHeader.Size, "limit", config.Cfg.MaxUploadSizeBytes)
		utils.SendJSONError(w, fmt.Sprintf("File too large, max %d MB", config.Cfg.MaxUploadSizeBytes/(1024*1024)), http.StatusBadRequest)
		return
	}

	clientContentType := fileHeader.Header.Get("Content-Type")
	if err := validation.ValidateClientContentType(clientContentType); err != nil {
		ctxLogger.Warn("Invalid client-declared file type", "contentType", clientContentType, "error", err)
		utils.SendJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	detectedContentType, err := validation.ValidateFileContentByMagicBytes(file)
	if err != nil {
		ctxLogger.Warn("Server-side file content validation failed", "filename", fileHeader.Filename, "error", err)
		utils.SendJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}
	ctxLogger.Info("File content validated", "filename", fileHeader.Filename, "clientType", clientContentType, "detectedType", detectedContentType)

	opts := importOptionsFromForm(r)
	result, err := h.importService.ImportCSV(r.Context(), userID, file, opts)
	if err != nil {
		sendServiceError(w, r, err, "Failed to import file")
		return
	}
	utils.WriteJSON(w, http.StatusOK, result)
}

// importRowsRequest is the JSON body for pre-decoded imports, used when the
// frontend parses the file itself and sends structured rows.
type importRowsRequest struct {
	Headers []string               `json:"headers"`
	Rows    []importer.Row         `json:"rows"`
	Options services.ImportOptions `json:"options"`
}

func (h *ImportHandler) HandleImportRows(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserIDFromContext(r.Context())
	if !ok {
		utils.SendJSONError(w, "authentication required", http.StatusUnauthorized)
		return
	}

	var req importRowsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.SendJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if len(req.Headers) == 0 {
		utils.SendJSONError(w, "headers are required", http.StatusBadRequest)
		return
	}

	result, err := h.importService.ImportRows(r.Context(), userID, req.Headers, req.Rows, req.Options)
	if err != nil {
		sendServiceError(w, r, err, "Failed to import rows")
		return
	}
	utils.WriteJSON(w, http.StatusOK, result)
}

func importOptionsFromForm(r *http.Request) services.ImportOptions {
	var opts services.ImportOptions
	if raw := strings.TrimSpace(r.FormValue("account_ids")); raw != "" {
		for _, id := range strings.Split(raw, ",") {
			if id = strings.TrimSpace(id); id != "" {
				opts.SelectedAccountIDs = append(opts.SelectedAccountIDs, id)
			}
		}
	}
	return opts
}
