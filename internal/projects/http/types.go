package http

import "github.com/ishanichuri/portfolio/internal/projects/service"

// Handler bundles the dependencies for projects HTTP endpoints.
type Handler struct {
	svc *service.ProjectService
}

func New(svc *service.ProjectService) *Handler {
	return &Handler{svc: svc}
}

type statusReq struct {
	Status string `json:"status"`
}
