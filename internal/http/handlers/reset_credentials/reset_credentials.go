package resetcredentials

import (
	"net/http"
	"secureauth/internal/core/services"
	resetcredentials "secureauth/internal/core/services/reset_credentials"
	"secureauth/internal/http/handlers/response"
)

type Handler struct {
	service services.Service[resetcredentials.Input, resetcredentials.Result]
	flashes *response.Flashes
}

func New(
	service services.Service[resetcredentials.Input, resetcredentials.Result],
	flashes *response.Flashes,
) *Handler {
	if service == nil {
		panic("service must not be nil")
	}
	if flashes == nil {
		panic("flashes must not be nil")
	}
	return &Handler{service: service, flashes: flashes}
}

func (h *Handler) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	_, err := h.service.Run(r.Context(), resetcredentials.Input{Email: r.PostFormValue("email")})
	h.flashes.RedirectWithFlash(rw, r, "/", response.ResetFlash(err))
}
