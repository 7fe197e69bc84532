package dto

import (
	"encoding/json"
	"strings"
)

// Opciones de paginación de los listados.
const DefaultPageSize = 10

var PageSizeOptions = []int{10, 20, 50, 100}

// PageRequest paginación para listados.
type PageRequest struct {
	Limit  int `query:"limit"`
	Offset int `query:"offset"`
}

// DefaultPage aplica valores por defecto si Limit/Offset son cero o negativos.
func (p *PageRequest) DefaultPage() {
	if p.Limit <= 0 {
		p.Limit = DefaultPageSize
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
}

// Window recorta n elementos según la página: devuelve [from, to).
func (p PageRequest) Window(n int) (int, int) {
	p.DefaultPage()
	from := p.Offset
	if from > n {
		from = n
	}
	to := from + p.Limit
	if to > n {
		to = n
	}
	return from, to
}

// PageResponse metadatos de página en respuestas.
type PageResponse struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
	Total  int `json:"total"`
}

// ErrorResponse cuerpo de error que devuelve el backend ({message} o {error}).
type ErrorResponse struct {
	Code    string `json:"code,omitempty"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Text devuelve el mensaje legible del cuerpo de error.
func (e ErrorResponse) Text() string {
	if e.Message != "" {
		return e.Message
	}
	return e.Error
}

// FlexibleID acepta ids numéricos o string en el JSON y los conserva como string.
type FlexibleID string

func (f *FlexibleID) UnmarshalJSON(b []byte) error {
	raw := strings.TrimSpace(string(b))
	if raw == "" || raw == "null" {
		*f = ""
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*f = FlexibleID(s)
		return nil
	}
	*f = FlexibleID(raw)
	return nil
}

func (f FlexibleID) String() string { return string(f) }
