// Package httputil holds the request decoding and response encoding shared
// by every module's HTTP handlers.
package httputil

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/vmihailenco/msgpack/v5"
)

// ContentTypeMsgpack is negotiated through the Accept header
const ContentTypeMsgpack = "application/msgpack"

// MaxBodyBytes bounds request bodies
const MaxBodyBytes = 1 << 20

var validate = validator.New(validator.WithRequiredStructEnabled())

// Envelope wraps every successful response
type Envelope struct {
	Data     interface{} `json:"data"`
	Metadata Metadata    `json:"metadata"`
}

// Metadata accompanies every successful response
type Metadata struct {
	Timestamp string `json:"timestamp"`
}

// ErrorBody is the body of every error response
type ErrorBody struct {
	Error   string   `json:"error"`
	Details []string `json:"details,omitempty"`
}

// WantsMsgpack reports whether the client asked for MessagePack
func WantsMsgpack(r *http.Request) bool {
	accept := r.Header.Get("Accept")
	return strings.Contains(accept, ContentTypeMsgpack) || strings.Contains(accept, "application/x-msgpack")
}

// WriteData writes data inside the response envelope
func WriteData(w http.ResponseWriter, r *http.Request, log zerolog.Logger, status int, data interface{}) {
	Write(w, r, log, status, Envelope{
		Data:     data,
		Metadata: Metadata{Timestamp: time.Now().UTC().Format(time.RFC3339)},
	})
}

// WriteError writes an error body
func WriteError(w http.ResponseWriter, r *http.Request, log zerolog.Logger, status int, message string, details ...string) {
	Write(w, r, log, status, ErrorBody{Error: message, Details: details})
}

// Write encodes body as MessagePack when requested, JSON otherwise
func Write(w http.ResponseWriter, r *http.Request, log zerolog.Logger, status int, body interface{}) {
	if WantsMsgpack(r) {
		var buf bytes.Buffer
		enc := msgpack.NewEncoder(&buf)
		enc.SetCustomStructTag("json")
		enc.UseCompactInts(true)
		if err := enc.Encode(body); err != nil {
			log.Error().Err(err).Msg("Failed to encode msgpack response")
			http.Error(w, "failed to encode response", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", ContentTypeMsgpack)
		w.WriteHeader(status)
		if _, err := w.Write(buf.Bytes()); err != nil {
			log.Error().Err(err).Msg("Failed to write msgpack response")
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}

// Decode reads a JSON body into v and validates it. The returned error is
// safe to show to clients.
func Decode(w http.ResponseWriter, r *http.Request, v interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, MaxBodyBytes)

	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(v); err != nil {
		var maxErr *http.MaxBytesError
		switch {
		case errors.Is(err, io.EOF):
			return errors.New("request body is empty")
		case errors.As(err, &maxErr):
			return fmt.Errorf("request body exceeds %d bytes", maxErr.Limit)
		default:
			return fmt.Errorf("invalid request body: %w", err)
		}
	}

	return Validate(v)
}

// ValidationError lists the fields that failed validation
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return "invalid request: " + strings.Join(e.Fields, "; ")
}

// Validate runs the struct validation tags of v
func Validate(v interface{}) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	out := &ValidationError{Fields: make([]string, 0, len(fieldErrs))}
	for _, fe := range fieldErrs {
		out.Fields = append(out.Fields, describe(fe))
	}
	return out
}

func describe(fe validator.FieldError) string {
	if fe.Param() != "" {
		return fmt.Sprintf("%s failed %s=%s", fe.Namespace(), fe.Tag(), fe.Param())
	}
	return fmt.Sprintf("%s failed %s", fe.Namespace(), fe.Tag())
}

// WriteDecodeError maps a Decode error onto a 400 response
func WriteDecodeError(w http.ResponseWriter, r *http.Request, log zerolog.Logger, err error) {
	var verr *ValidationError
	if errors.As(err, &verr) {
		WriteError(w, r, log, http.StatusBadRequest, "invalid request", verr.Fields...)
		return
	}
	WriteError(w, r, log, http.StatusBadRequest, err.Error())
}
