// Package respond writes the JSON response envelope every API handler uses.
//
// The envelope shape is fixed so clients can handle every endpoint the same
// way:
//
//	{ "success": bool, "message": "...", "data": ..., "errors": [...],
//	  "warnings": [...], "pagination": {...} }
//
// errors carries field-level validation violations; warnings carries
// non-fatal cleanup notices (for example a remote asset that could not be
// removed).
package respond

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/imanprime/estatecms/internal/app/system/paging"
	"github.com/imanprime/estatecms/internal/domain/models"
	"go.uber.org/zap"
)

// Envelope is the wire shape of every API response.
type Envelope struct {
	Success    bool                `json:"success"`
	Message    string              `json:"message,omitempty"`
	Data       any                 `json:"data,omitempty"`
	Errors     []models.FieldError `json:"errors,omitempty"`
	Warnings   []string            `json:"warnings,omitempty"`
	Pagination *paging.Meta        `json:"pagination,omitempty"`
}

// JSON writes the envelope with the given status code.
func JSON(w http.ResponseWriter, status int, env Envelope) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	// Encoding a fixed struct cannot fail; a broken connection is the
	// client's problem at this point.
	_ = json.NewEncoder(w).Encode(env)
}

// OK writes a 200 success envelope.
func OK(w http.ResponseWriter, message string, data any) {
	JSON(w, http.StatusOK, Envelope{Success: true, Message: message, Data: data})
}

// OKWithWarnings writes a 200 success envelope carrying cleanup warnings.
func OKWithWarnings(w http.ResponseWriter, message string, data any, warnings []string) {
	JSON(w, http.StatusOK, Envelope{Success: true, Message: message, Data: data, Warnings: warnings})
}

// Created writes a 201 success envelope.
func Created(w http.ResponseWriter, message string, data any) {
	JSON(w, http.StatusCreated, Envelope{Success: true, Message: message, Data: data})
}

// List writes a 200 success envelope with page metadata.
func List(w http.ResponseWriter, message string, data any, meta paging.Meta) {
	JSON(w, http.StatusOK, Envelope{Success: true, Message: message, Data: data, Pagination: &meta})
}

// Err writes a failure envelope with the given status and message.
func Err(w http.ResponseWriter, status int, message string) {
	JSON(w, status, Envelope{Success: false, Message: message})
}

// NotFound writes the standard 404 envelope.
func NotFound(w http.ResponseWriter, what string) {
	Err(w, http.StatusNotFound, what+" not found")
}

// Invalid writes a 400 envelope listing every validation violation.
func Invalid(w http.ResponseWriter, errs models.ValidationErrors) {
	JSON(w, http.StatusBadRequest, Envelope{
		Success: false,
		Message: "validation failed",
		Errors:  errs,
	})
}

// Internal logs the error and writes a generic 500 envelope. Internal
// details never reach the client.
func Internal(w http.ResponseWriter, log *zap.Logger, op string, err error) {
	log.Error(op, zap.Error(err))
	Err(w, http.StatusInternalServerError, "internal server error")
}

// maxBodyBytes bounds JSON request bodies. File uploads use multipart
// limits instead.
const maxBodyBytes = 1 << 20

// DecodeStrict decodes a JSON request body into dst, rejecting unknown
// fields and trailing garbage. Unknown fields are rejected so partial
// updates cannot silently drop a misspelled key.
func DecodeStrict(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return err
	}
	// A second token means the body held more than one JSON value.
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return errors.New("request body must contain a single JSON object")
	}
	return nil
}

// BadRequest writes a 400 envelope for a malformed request body.
func BadRequest(w http.ResponseWriter, message string) {
	Err(w, http.StatusBadRequest, message)
}
