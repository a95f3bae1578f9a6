package controllers

import (
	"context"
	"errors"
	"medibook-service/internal/app/models"
	"medibook-service/internal/pkg/exceptions"
	"medibook-service/internal/pkg/utils"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

const defaultRequestTimeout = 10 * time.Second

// bindJSON decodes the body into request, sanitizes it and runs the validator.
func bindJSON[T any](r *http.Request, request *T, sanitize func(*T)) error {
	if err := json.NewDecoder(r.Body).Decode(request); err != nil {
		return exceptions.ErrCannotParseJSON(err)
	}
	if sanitize != nil {
		sanitize(request)
	}
	if err := utils.ValidateStruct(request); err != nil {
		return exceptions.ErrInputValidation(err)
	}
	return nil
}

func urlParamID(r *http.Request, name string) (string, error) {
	id := chi.URLParam(r, name)
	if err := utils.ValidateUrlParamID(id); err != nil {
		return "", exceptions.ErrURLParamIDValidation(err, name)
	}
	return id, nil
}

func requireSession(r *http.Request) (*models.Session, error) {
	session, ok := utils.GetSession(r.Context())
	if !ok {
		return nil, exceptions.ErrMissingSession(nil)
	}
	return session, nil
}

func writeUsecaseError(log *zap.Logger, w http.ResponseWriter, err error) {
	if errors.Is(err, context.DeadlineExceeded) {
		utils.BuildErrorResponse(log, w, exceptions.ErrServerDeadlineExceeded(err))
		return
	}
	utils.BuildErrorResponse(log, w, err)
}
