package handler

import (
	"net/http"

	"github.com/deppfellow/petcare-api/internal/model"
	"github.com/deppfellow/petcare-api/internal/server"
	"github.com/deppfellow/petcare-api/internal/service"
	"github.com/labstack/echo/v4"
)

type CustomerHandler struct {
	Handler
	customerService *service.CustomerService
}

func NewCustomerHandler(s *server.Server, customerService *service.CustomerService) *CustomerHandler {
	return &CustomerHandler{
		Handler:         NewHandler(s),
		customerService: customerService,
	}
}

// RegisterCustomer handles POST /register.
func (h *CustomerHandler) RegisterCustomer(c echo.Context) error {
	return Handle(
		h.Handler,
		func(c echo.Context, req *model.RegisterCustomerRequest) (model.Response, error) {
			return h.customerService.Register(c.Request().Context(), req)
		},
		http.StatusOK,
		func() *model.RegisterCustomerRequest { return &model.RegisterCustomerRequest{} },
	)(c)
}
