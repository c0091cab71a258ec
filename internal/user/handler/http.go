package handler

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/narwhalmedia/storefront/internal/httpapi"
	"github.com/narwhalmedia/storefront/internal/user/domain"
	"github.com/narwhalmedia/storefront/internal/user/service"
	"github.com/narwhalmedia/storefront/pkg/errors"
	"github.com/narwhalmedia/storefront/pkg/validation"
)

// NewUserRequest is the body of POST /user/new
type NewUserRequest struct {
	ID     string `json:"_id" validate:"required"`
	Name   string `json:"name" validate:"required"`
	Email  string `json:"email" validate:"required,email"`
	Photo  string `json:"photo" validate:"required"`
	Gender string `json:"gender" validate:"required,oneof=male female others"`
	DOB    string `json:"dob" validate:"required"`
}

// HTTPHandler serves the user routes
type HTTPHandler struct {
	service *service.UserService
}

// NewHTTPHandler creates a new user HTTP handler
func NewHTTPHandler(service *service.UserService) *HTTPHandler {
	return &HTTPHandler{service: service}
}

// Prefix implements httpapi.Module
func (h *HTTPHandler) Prefix() string { return "/user" }

// Register implements httpapi.Module
func (h *HTTPHandler) Register(r chi.Router, admin func(http.Handler) http.Handler) {
	r.Post("/new", httpapi.Handle(h.newUser))
	r.With(admin).Get("/all", httpapi.Handle(h.listUsers))
	r.Get("/{id}", httpapi.Handle(h.getUser))
	r.With(admin).Delete("/{id}", httpapi.Handle(h.deleteUser))
}

func (h *HTTPHandler) newUser(w http.ResponseWriter, r *http.Request) error {
	var req NewUserRequest
	if err := httpapi.Decode(r, &req); err != nil {
		return err
	}
	if err := validation.Struct(req); err != nil {
		return err
	}

	dob, err := domain.ParseDOB(req.DOB)
	if err != nil {
		return errors.Wrap(errors.ErrorTypeBadRequest, "dob must be a date", err)
	}

	user, created, err := h.service.NewUser(r.Context(), &domain.User{
		ID:     req.ID,
		Name:   req.Name,
		Email:  req.Email,
		Photo:  req.Photo,
		Gender: req.Gender,
		DOB:    dob,
	})
	if err != nil {
		return err
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	return httpapi.Message(w, status, fmt.Sprintf("Welcome, %s", user.Name))
}

func (h *HTTPHandler) listUsers(w http.ResponseWriter, r *http.Request) error {
	users, err := h.service.ListUsers(r.Context())
	if err != nil {
		return err
	}
	return httpapi.JSON(w, http.StatusOK, httpapi.Payload{"users": users})
}

func (h *HTTPHandler) getUser(w http.ResponseWriter, r *http.Request) error {
	user, err := h.service.GetUser(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		return err
	}
	return httpapi.JSON(w, http.StatusOK, httpapi.Payload{"user": user})
}

func (h *HTTPHandler) deleteUser(w http.ResponseWriter, r *http.Request) error {
	if err := h.service.DeleteUser(r.Context(), chi.URLParam(r, "id")); err != nil {
		return err
	}
	return httpapi.Message(w, http.StatusOK, "User Deleted Successfully")
}
