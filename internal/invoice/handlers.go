package invoice

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	validator "github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/noah-isme/invoice-studio/internal/common"
	"github.com/noah-isme/invoice-studio/internal/logo"
	"github.com/noah-isme/invoice-studio/internal/obs"
	"github.com/noah-isme/invoice-studio/internal/session"
)

// maxLogoMemory bounds the multipart form buffer for logo uploads.
const maxLogoMemory = 4 << 20

// Handler wires invoice sessions to HTTP.
type Handler struct {
	Store     *session.Store
	Engine    Engine
	Validate  *validator.Validate
	Now       func() time.Time
	RenderPDF func(Document) ([]byte, error)
}

func (h *Handler) now() time.Time {
	if h.Now != nil {
		return h.Now()
	}
	return time.Now()
}

// Create opens a new session seeded with a default document.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	if h.Store == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "session store not configured", nil)
		return
	}
	id := uuid.NewString()
	doc := h.Engine.NewDocument(h.now())
	if err := h.Store.Put(r.Context(), id, doc); err != nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "unable to store session", nil)
		return
	}
	if obs.SessionsCreatedTotal != nil {
		obs.SessionsCreatedTotal.Inc()
	}
	common.JSON(w, http.StatusCreated, map[string]any{
		"data": map[string]any{
			"sessionId": id,
			"document":  doc,
		},
	})
}

// Get returns the current document for the session.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	_, doc, ok := h.load(w, r)
	if !ok {
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": doc})
}

// PatchDocument merges document-level metadata edits.
func (h *Handler) PatchDocument(w http.ResponseWriter, r *http.Request) {
	id, doc, ok := h.load(w, r)
	if !ok {
		return
	}
	var patch DocumentPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid payload", nil)
		return
	}
	if h.Validate != nil {
		if err := h.Validate.Struct(patch); err != nil {
			common.JSONError(w, http.StatusUnprocessableEntity, "VALIDATION", "invalid document fields", validationDetails(err))
			return
		}
	}
	h.persist(w, r, id, ApplyPatch(doc, patch), "patch_document")
}

// SetPaymentTerms applies a payment-terms code, deriving the due date and
// rewriting the generated note sentence.
func (h *Handler) SetPaymentTerms(w http.ResponseWriter, r *http.Request) {
	id, doc, ok := h.load(w, r)
	if !ok {
		return
	}
	var payload struct {
		Terms string `json:"terms" validate:"required"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid payload", nil)
		return
	}
	payload.Terms = strings.TrimSpace(payload.Terms)
	if payload.Terms == "" {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "terms is required", nil)
		return
	}
	h.persist(w, r, id, ApplyPaymentTerms(doc, payload.Terms), "payment_terms")
}

// AddItem appends a default line item.
func (h *Handler) AddItem(w http.ResponseWriter, r *http.Request) {
	id, doc, ok := h.load(w, r)
	if !ok {
		return
	}
	h.persist(w, r, id, h.Engine.AddItem(doc), "add_item")
}

// RemoveItem deletes a line item. A stale item id leaves the document unchanged.
func (h *Handler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	id, doc, ok := h.load(w, r)
	if !ok {
		return
	}
	h.persist(w, r, id, RemoveItem(doc, chi.URLParam(r, "itemId")), "remove_item")
}

// UpdateItemField applies a single field edit to a line item.
func (h *Handler) UpdateItemField(w http.ResponseWriter, r *http.Request) {
	id, doc, ok := h.load(w, r)
	if !ok {
		return
	}
	var payload struct {
		Field string `json:"field"`
		Value any    `json:"value"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid payload", nil)
		return
	}
	field := ItemField(payload.Field)
	if !KnownItemField(field) {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "unknown item field", map[string]any{"field": payload.Field})
		return
	}
	next := ApplyFieldEdit(doc, chi.URLParam(r, "itemId"), field, payload.Value)
	h.persist(w, r, id, next, "item_field")
}

// AddTax appends a default tax entry to a line item.
func (h *Handler) AddTax(w http.ResponseWriter, r *http.Request) {
	id, doc, ok := h.load(w, r)
	if !ok {
		return
	}
	h.persist(w, r, id, h.Engine.AddTax(doc, chi.URLParam(r, "itemId")), "add_tax")
}

// UpdateTaxField applies a single field edit to a tax entry.
func (h *Handler) UpdateTaxField(w http.ResponseWriter, r *http.Request) {
	id, doc, ok := h.load(w, r)
	if !ok {
		return
	}
	var payload struct {
		Field string `json:"field"`
		Value any    `json:"value"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid payload", nil)
		return
	}
	field := TaxField(payload.Field)
	if !KnownTaxField(field) {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "unknown tax field", map[string]any{"field": payload.Field})
		return
	}
	next := ApplyTaxEdit(doc, chi.URLParam(r, "itemId"), chi.URLParam(r, "taxId"), field, payload.Value)
	h.persist(w, r, id, next, "tax_field")
}

// RemoveTax deletes a tax entry. Stale ids leave the document unchanged.
func (h *Handler) RemoveTax(w http.ResponseWriter, r *http.Request) {
	id, doc, ok := h.load(w, r)
	if !ok {
		return
	}
	next := RemoveTax(doc, chi.URLParam(r, "itemId"), chi.URLParam(r, "taxId"))
	h.persist(w, r, id, next, "remove_tax")
}

// UploadLogo accepts a multipart image upload and stores it on the document
// as a data URL.
func (h *Handler) UploadLogo(w http.ResponseWriter, r *http.Request) {
	id, doc, ok := h.load(w, r)
	if !ok {
		return
	}
	if err := r.ParseMultipartForm(maxLogoMemory); err != nil {
		logoOutcome("rejected")
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid multipart payload", nil)
		return
	}
	file, header, err := r.FormFile("logo")
	if err != nil {
		logoOutcome("rejected")
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "logo file is required", nil)
		return
	}
	defer file.Close()
	data, err := io.ReadAll(io.LimitReader(file, logo.MaxBytes+1))
	if err != nil {
		logoOutcome("rejected")
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "unable to read logo file", nil)
		return
	}
	dataURL, err := logo.DataURL(header.Header.Get("Content-Type"), data)
	switch {
	case errors.Is(err, logo.ErrTooLarge):
		logoOutcome("too_large")
		common.JSONError(w, http.StatusRequestEntityTooLarge, "TOO_LARGE", err.Error(), nil)
		return
	case errors.Is(err, logo.ErrNotImage):
		logoOutcome("not_image")
		common.JSONError(w, http.StatusUnprocessableEntity, "VALIDATION", err.Error(), nil)
		return
	case err != nil:
		logoOutcome("rejected")
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "unable to encode logo", nil)
		return
	}
	logoOutcome("accepted")
	doc = doc.Clone()
	doc.CompanyLogo = dataURL
	h.persist(w, r, id, doc, "logo_upload")
}

// RemoveLogo clears the stored logo.
func (h *Handler) RemoveLogo(w http.ResponseWriter, r *http.Request) {
	id, doc, ok := h.load(w, r)
	if !ok {
		return
	}
	doc = doc.Clone()
	doc.CompanyLogo = ""
	h.persist(w, r, id, doc, "logo_remove")
}

// ExportPDF renders the document and streams it as an attachment.
func (h *Handler) ExportPDF(w http.ResponseWriter, r *http.Request) {
	if h.RenderPDF == nil {
		common.JSONError(w, http.StatusServiceUnavailable, "UNAVAILABLE", "pdf renderer not configured", nil)
		return
	}
	_, doc, ok := h.load(w, r)
	if !ok {
		return
	}
	start := time.Now()
	data, err := h.RenderPDF(doc)
	if err != nil {
		if obs.PDFRendersTotal != nil {
			obs.PDFRendersTotal.WithLabelValues("error").Inc()
		}
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "unable to render pdf", nil)
		return
	}
	if obs.PDFRendersTotal != nil {
		obs.PDFRendersTotal.WithLabelValues("ok").Inc()
	}
	if obs.PDFRenderLatency != nil {
		obs.PDFRenderLatency.Observe(float64(time.Since(start).Milliseconds()))
	}
	name := doc.InvoiceNumber
	if name == "" {
		name = "invoice"
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="`+name+`.pdf"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func (h *Handler) load(w http.ResponseWriter, r *http.Request) (string, Document, bool) {
	var doc Document
	if h.Store == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "session store not configured", nil)
		return "", doc, false
	}
	id := chi.URLParam(r, "id")
	if err := h.Store.Get(r.Context(), id, &doc); err != nil {
		h.writeError(w, err)
		return "", doc, false
	}
	return id, doc, true
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	var appErr *common.AppError
	switch {
	case errors.As(err, &appErr):
		status := appErr.HTTPStatus
		if status == 0 {
			status = http.StatusBadRequest
		}
		code := appErr.Code
		if code == "" {
			code = "BAD_REQUEST"
		}
		common.JSONError(w, status, code, appErr.Message, appErr.Details)
	case errors.Is(err, session.ErrNotFound):
		common.JSONError(w, http.StatusNotFound, "NOT_FOUND", "session not found", nil)
	default:
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "unable to load session", nil)
	}
}

func (h *Handler) persist(w http.ResponseWriter, r *http.Request, id string, doc Document, operation string) {
	if err := h.Store.Put(r.Context(), id, doc); err != nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "unable to store session", nil)
		return
	}
	if obs.DocumentEditsTotal != nil {
		obs.DocumentEditsTotal.WithLabelValues(operation).Inc()
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": doc})
}

func logoOutcome(result string) {
	if obs.LogoUploadsTotal != nil {
		obs.LogoUploadsTotal.WithLabelValues(result).Inc()
	}
}

func validationDetails(err error) any {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return map[string]any{"error": err.Error()}
	}
	fields := make([]map[string]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, map[string]string{"field": fe.Field(), "rule": fe.Tag()})
	}
	return map[string]any{"fields": fields}
}
