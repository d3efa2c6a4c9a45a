package home

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"
	"secureauth/internal/http/handlers/response"
)

//go:embed templates/index.html
var templatesFS embed.FS

var page = template.Must(template.ParseFS(templatesFS, "templates/index.html"))

type pageParams struct {
	Flash *response.Flash
}

type Handler struct {
	flashes *response.Flashes
}

func New(flashes *response.Flashes) *Handler {
	if flashes == nil {
		panic("flashes must not be nil")
	}
	return &Handler{flashes: flashes}
}

func (h *Handler) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	params := pageParams{}
	if flash, ok := h.flashes.Pop(rw, r); ok {
		params.Flash = &flash
	}

	var content bytes.Buffer
	if err := page.Execute(&content, params); err != nil {
		response.RenderInternalError(rw)
		return
	}
	rw.Header().Set("Content-Type", "text/html; charset=utf-8")
	rw.WriteHeader(http.StatusOK)
	rw.Write(content.Bytes())
}
