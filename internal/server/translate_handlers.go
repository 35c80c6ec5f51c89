package server

import (
	"github.com/VictoriaMetrics/metrics"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/luceql/luceql/internal/luceneql"
)

var (
	translateRequests = metrics.NewCounter("luceql_translate_requests_total")
	translateErrors   = metrics.NewCounter("luceql_translate_errors_total")
	validateRequests  = metrics.NewCounter("luceql_validate_requests_total")
)

// TranslateRequest is the request body for query translation. The field
// lists override the server's configured coercion sets when present.
type TranslateRequest struct {
	Query        string   `json:"query"`
	DefaultField string   `json:"default_field,omitempty"`
	IntFields    []string `json:"int_fields,omitempty"`
	YesNoFields  []string `json:"yesno_fields,omitempty"`
}

// TranslateResponse is the response body for query translation.
type TranslateResponse struct {
	RequestID   string               `json:"request_id"`
	CloudSearch string               `json:"cloudsearch"`
	LuceneForm  string               `json:"lucene_form"`
	Valid       bool                 `json:"valid"`
	Error       *luceneql.ParseError `json:"error,omitempty"`
	FieldsUsed  []string             `json:"fields_used"`
}

// ValidateRequest is the request body for query validation.
type ValidateRequest struct {
	Query string `json:"query"`
}

// ValidateResponse is the response body for query validation.
type ValidateResponse struct {
	RequestID string               `json:"request_id"`
	Valid     bool                 `json:"valid"`
	Error     *luceneql.ParseError `json:"error,omitempty"`
}

// handleTranslate translates a Lucene query to CloudSearch syntax.
//
// POST /api/v1/translate
func (s *Server) handleTranslate(c *fiber.Ctx) error {
	translateRequests.Inc()

	var req TranslateRequest
	if err := c.BodyParser(&req); err != nil {
		return SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	result := luceneql.Translate(req.Query, s.requestOptions(&req)...)
	if !result.Valid {
		translateErrors.Inc()
		s.log.Warn("translation failed", "query", req.Query, "error", result.Error.Message)
	}

	response := TranslateResponse{
		RequestID:   uuid.New().String(),
		CloudSearch: result.CloudSearch,
		LuceneForm:  result.LuceneForm,
		Valid:       result.Valid,
		Error:       result.Error,
		FieldsUsed:  result.FieldsUsed,
	}
	if response.FieldsUsed == nil {
		response.FieldsUsed = []string{}
	}

	return SendSuccess(c, fiber.StatusOK, response)
}

// handleValidate checks a query without returning the translation. This
// is the lightweight endpoint for editor-side validation.
//
// POST /api/v1/validate
func (s *Server) handleValidate(c *fiber.Ctx) error {
	validateRequests.Inc()

	var req ValidateRequest
	if err := c.BodyParser(&req); err != nil {
		return SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	result := luceneql.Validate(req.Query, s.parserOpts...)

	return SendSuccess(c, fiber.StatusOK, ValidateResponse{
		RequestID: uuid.New().String(),
		Valid:     result.Valid,
		Error:     result.Error,
	})
}

// requestOptions layers per-request overrides over the configured
// parser options.
func (s *Server) requestOptions(req *TranslateRequest) []luceneql.Option {
	opts := append([]luceneql.Option{}, s.parserOpts...)
	if req.DefaultField != "" {
		opts = append(opts, luceneql.WithDefaultField(req.DefaultField))
	}
	if req.IntFields != nil {
		opts = append(opts, luceneql.WithIntFields(req.IntFields...))
	}
	if req.YesNoFields != nil {
		opts = append(opts, luceneql.WithYesNoFields(req.YesNoFields...))
	}
	return opts
}
