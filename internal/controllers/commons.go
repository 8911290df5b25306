package controllers

import (
	"errors"
	"net/http"

	"github.com/anubhavpatrick/Cluster-Images/internal/harbor"
	"github.com/danielgtaylor/huma/v2"
)

type CommonResponse struct {
	Body string `json:"body"`
}

// map a harbor client error to an HTTP error. A *StatusError relays the
// registry's own status and detail verbatim, anything else (unreachable
// registry, bad response shape) becomes a 502.
func harborError(err error) error {
	var statusErr *harbor.StatusError
	if errors.As(err, &statusErr) {
		return huma.NewError(statusErr.Code, statusErr.Detail)
	}
	return huma.NewError(http.StatusBadGateway, err.Error())
}
