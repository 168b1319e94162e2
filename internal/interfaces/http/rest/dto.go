package rest

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/avencia/worldweave/internal/domain/entities"
)

var validate = validator.New()

// createWorldRequest is the body for POST /worlds.
type createWorldRequest struct {
	Title      string `json:"title" validate:"required,max=200"`
	Visibility string `json:"visibility" validate:"omitempty,oneof=public private"`
}

// createContentRequest is the body for POST /worlds/{worldID}/content.
// Details carries the kind-specific payload.
type createContentRequest struct {
	Kind    string          `json:"kind" validate:"required"`
	Title   string          `json:"title" validate:"required,min=3,max=300"`
	Body    string          `json:"body" validate:"required,min=10"`
	Details json.RawMessage `json:"details,omitempty"`
}

// refBody identifies a content item inside a request body.
type refBody struct {
	Kind string `json:"kind" validate:"required"`
	ID   string `json:"id" validate:"required"`
}

// createLinkRequest is the body for POST /worlds/{worldID}/links.
type createLinkRequest struct {
	From refBody `json:"from" validate:"required"`
	To   refBody `json:"to" validate:"required"`
}

// addTagRequest is the body for POST .../tags.
type addTagRequest struct {
	Name string `json:"name" validate:"required,max=100"`
}

// decodeBody decodes and validates a JSON request body.
func decodeBody(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return entities.NewValidationError("body", "invalid JSON: "+err.Error())
	}
	if err := validate.Struct(dst); err != nil {
		var invalid *validator.InvalidValidationError
		if errors.As(err, &invalid) {
			return err
		}
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			fe := fieldErrs[0]
			return entities.NewValidationError(fe.Field(), fmt.Sprintf("failed %q validation", fe.Tag()))
		}
		return err
	}
	return nil
}
