package handlers

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	domainerrors "moto-club.backend/internal/domain/errors"
	"moto-club.backend/internal/interfaces/http/middleware"
	"moto-club.backend/internal/interfaces/http/response"
	"moto-club.backend/pkg/utils"
)

func init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(jsonFieldName)
	}
}

func jsonFieldName(f reflect.StructField) string {
	name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
	if name == "-" || name == "" {
		return f.Name
	}
	return name
}

// bindJSON decodes and validates the body, writing a 400 on failure.
func bindJSON(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		response.Error(c, bindingError(err))
		return false
	}
	return true
}

func bindingError(err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		details := make(map[string]string, len(verrs))
		for _, fe := range verrs {
			details[fe.Field()] = fieldMessage(fe)
		}
		return domainerrors.Validation(details)
	}
	return domainerrors.BadRequest("Invalid request body.")
}

func fieldMessage(fe validator.FieldError) string {
	isString := fe.Kind() == reflect.String
	switch fe.Tag() {
	case "required":
		return "This field is required."
	case "email":
		return "Must be a valid email address."
	case "url":
		return "Must be a valid URL."
	case "alphanum":
		return "Must contain only letters and digits."
	case "len":
		if isString {
			return fmt.Sprintf("Must be exactly %s characters.", fe.Param())
		}
		return fmt.Sprintf("Must have exactly %s items.", fe.Param())
	case "min":
		if isString {
			return fmt.Sprintf("Must be at least %s characters.", fe.Param())
		}
		return fmt.Sprintf("Must be at least %s.", fe.Param())
	case "max":
		if isString {
			return fmt.Sprintf("Must be at most %s characters.", fe.Param())
		}
		return fmt.Sprintf("Must be at most %s.", fe.Param())
	case "gte":
		return fmt.Sprintf("Must be greater than or equal to %s.", fe.Param())
	case "lte":
		return fmt.Sprintf("Must be less than or equal to %s.", fe.Param())
	case "oneof":
		return fmt.Sprintf("Must be one of: %s.", strings.ReplaceAll(fe.Param(), " ", ", "))
	default:
		return "Invalid value."
	}
}

// pathID parses a uuid path parameter, writing a 400 naming the resource on failure.
func pathID(c *gin.Context, param, resource string) (uuid.UUID, bool) {
	id, err := utils.ParseUUID(c.Param(param))
	if err != nil {
		response.Error(c, domainerrors.BadRequest(fmt.Sprintf("Invalid %s ID.", resource)))
		return uuid.Nil, false
	}
	return id, true
}

// callerID returns the authenticated user, writing a 401 when absent.
func callerID(c *gin.Context) (uuid.UUID, bool) {
	id, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("Authentication required."))
		return uuid.Nil, false
	}
	return id, true
}
