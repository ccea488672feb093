// Package handler adapts HTTP requests to the recruitment service. Handlers
// decode and shape-check input; every domain rule stays in internal/recruit.
package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	mw "github.com/kiranshivaraju/hirescreen/internal/api/middleware"
	"github.com/kiranshivaraju/hirescreen/internal/api/response"
	"github.com/kiranshivaraju/hirescreen/internal/recruit"
	"github.com/kiranshivaraju/hirescreen/internal/store"
)

const maxBodyBytes = 1 << 20

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// decode reads a JSON body into dst and runs its validate tags. It writes the
// error response itself and reports whether the handler should continue.
func decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		response.Error(w, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid JSON body", nil)
		return false
	}
	if err := validate.Struct(dst); err != nil {
		msg, details := describeValidation(err)
		response.Error(w, http.StatusBadRequest, "VALIDATION_ERROR", msg, details)
		return false
	}
	return true
}

// describeValidation renders the first failure as the message and every
// failure keyed by field path as details.
func describeValidation(err error) (string, map[string]string) {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return "Invalid request", nil
	}
	details := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		details[fieldPath(fe)] = fe.Tag()
	}
	return fieldMessage(verrs[0]), details
}

func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if _, rest, ok := strings.Cut(ns, "."); ok {
		return rest
	}
	return ns
}

func fieldMessage(fe validator.FieldError) string {
	field := fieldPath(fe)
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "min", "gte":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "max", "lte":
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of %s", field, strings.ReplaceAll(fe.Param(), " ", ", "))
	default:
		return fmt.Sprintf("%s failed %s validation", field, fe.Tag())
	}
}

func actorFrom(r *http.Request) recruit.Actor {
	id, _ := mw.GetUserID(r)
	return recruit.Actor{UserID: id, OrganizationID: mw.GetOrganizationID(r)}
}

// pageFrom reads page and limit. Missing or non-numeric values fall back to defaults.
func pageFrom(r *http.Request) store.Page {
	q := r.URL.Query()
	page, _ := strconv.Atoi(q.Get("page"))
	limit, _ := strconv.Atoi(q.Get("limit"))
	return store.Page{Page: page, Limit: limit}.Normalize()
}

func queryBool(r *http.Request, key string) bool {
	v, _ := strconv.ParseBool(r.URL.Query().Get(key))
	return v
}

func idParam(r *http.Request) string {
	return chi.URLParam(r, "id")
}

type deletedResponse struct {
	ID string `json:"id"`
}
