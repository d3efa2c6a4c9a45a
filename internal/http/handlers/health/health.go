package health

import (
	"net/http"
	"secureauth/internal/http/handlers/response"
)

type status struct {
	Status string `json:"status"`
}

func ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	response.Render(rw, status{Status: "ok"}, http.StatusOK)
}
