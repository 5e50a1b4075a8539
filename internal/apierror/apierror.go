// Package apierror provides standardized error response structures for the API.
// All errors returned to clients go through this package to ensure consistency
// and to prevent leaking internal details (stack traces, DB errors, etc.).
package apierror

// APIError is the canonical error envelope for all 4xx/5xx HTTP responses.
type APIError struct {
	Detail string `json:"detail"`
}

func New(msg string) *APIError {
	return &APIError{Detail: msg}
}

// ValidationError wraps multiple field errors.
type ValidationError struct {
	Detail string            `json:"detail"`
	Fields map[string]string `json:"fields"`
}

func NewValidation(fields map[string]string) *ValidationError {
	return &ValidationError{Detail: "Erro de validacao", Fields: fields}
}

// SelectionError carries the machine-readable rejection code produced by the
// selection validator so the frontend can translate it per group/option.
type SelectionError struct {
	Detail string `json:"detail"`
	Codigo string `json:"codigo"`
	Grupo  string `json:"grupo,omitempty"`
	Opcao  string `json:"opcao,omitempty"`
}

func NewSelection(codigo, grupo, opcao, detail string) *SelectionError {
	return &SelectionError{Detail: detail, Codigo: codigo, Grupo: grupo, Opcao: opcao}
}
