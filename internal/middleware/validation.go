package middleware

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	apierrors "histviz/internal/errors"
	"histviz/internal/files"
)

// RequestValidator decodes JSON request bodies and validates them using struct tags
type RequestValidator struct {
	validator *validator.Validate
	logger    *slog.Logger
}

// NewRequestValidator creates a validator with the custom tags registered
func NewRequestValidator(logger *slog.Logger) *RequestValidator {
	if logger == nil {
		logger = slog.Default()
	}

	v := validator.New()
	v.RegisterValidation("safename", isSafeName)

	// Use JSON tag names in error messages
	v.RegisterTagNameFunc(jsonFieldName)

	return &RequestValidator{
		validator: v,
		logger:    logger.With(slog.String("component", "request_validator")),
	}
}

// DecodeJSON reads the request body into dst and validates it. Errors are
// APIErrors naming the offending field where one can be identified; a body
// over the MaxBodySize limit yields the *http.MaxBytesError unchanged.
func (v *RequestValidator) DecodeJSON(r *http.Request, dst interface{}) error {
	if r.Body == nil {
		return apierrors.InvalidRequestWithError(errors.New("request body is required"))
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return maxErr
		}
		v.logger.WarnContext(r.Context(), "failed to read request body", slog.String("error", err.Error()))
		return apierrors.InvalidRequestWithError(err)
	}

	if len(bytes.TrimSpace(body)) == 0 {
		return apierrors.InvalidRequestWithError(errors.New("request body is required"))
	}

	if err := json.Unmarshal(body, dst); err != nil {
		return v.decodeError(body, dst, err)
	}

	return v.ValidateStruct(dst)
}

// ValidateStruct validates a struct and returns validation errors
func (v *RequestValidator) ValidateStruct(s interface{}) error {
	err := v.validator.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return apierrors.InvalidRequestWithError(err)
	}

	validationErrors := make([]apierrors.ValidationError, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		validationErrors = append(validationErrors, apierrors.ValidationError{
			Field:   fe.Field(),
			Message: formatValidationError(fe),
		})
	}
	return apierrors.NewValidationErrors(validationErrors)
}

// decodeError attributes a JSON decoding failure to a request field
func (v *RequestValidator) decodeError(body []byte, dst interface{}, err error) error {
	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) {
		return apierrors.InvalidRequestWithError(fmt.Errorf("malformed JSON at offset %d", syntaxErr.Offset))
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		return apierrors.InvalidParameter(typeErr.Field, fmt.Sprintf("must be %s", describeKind(typeErr.Type)))
	}

	if field := locateField(body, dst); field != "" {
		return apierrors.InvalidParameter(field, err.Error())
	}
	return apierrors.InvalidRequestWithError(err)
}

// locateField decodes each member of body on its own to find the first
// struct field whose value does not decode.
func locateField(body []byte, dst interface{}) string {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return ""
	}

	t := reflect.TypeOf(dst)
	for t != nil && t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t == nil || t.Kind() != reflect.Struct {
		return ""
	}

	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		name := jsonFieldName(f)
		if name == "" {
			continue
		}
		msg, ok := raw[name]
		if !ok {
			continue
		}
		if err := json.Unmarshal(msg, reflect.New(f.Type).Interface()); err != nil {
			return name
		}
	}
	return ""
}

func jsonFieldName(fld reflect.StructField) string {
	name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	if name == "" {
		return fld.Name
	}
	return name
}

func describeKind(t reflect.Type) string {
	switch t.Kind() {
	case reflect.String:
		return "a string"
	case reflect.Slice, reflect.Array:
		return "an array"
	case reflect.Struct, reflect.Map:
		return "an object"
	default:
		return "a number"
	}
}

// ContentTypeValidator ensures requests with a body declare an allowed content type
func ContentTypeValidator(errorHandler *apierrors.ErrorHandler, contentTypes ...string) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodGet || r.Method == http.MethodHead || r.Method == http.MethodOptions {
				next.ServeHTTP(w, r)
				return
			}

			mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
			if err != nil {
				errorHandler.HandleError(w, r, apierrors.ErrUnsupportedMediaType)
				return
			}

			for _, allowed := range contentTypes {
				if strings.EqualFold(mediaType, allowed) {
					next.ServeHTTP(w, r)
					return
				}
			}

			errorHandler.HandleError(w, r, apierrors.NewWithDetails(
				http.StatusUnsupportedMediaType,
				"UNSUPPORTED_MEDIA_TYPE",
				"Unsupported content type",
				map[string]interface{}{
					"content_type": mediaType,
					"allowed":      contentTypes,
				},
			))
		})
	}
}

// formatValidationError formats validation error messages
func formatValidationError(err validator.FieldError) string {
	field := err.Field()
	param := err.Param()

	switch err.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "len":
		if k := err.Kind(); k == reflect.Slice || k == reflect.Array {
			return fmt.Sprintf("%s must have exactly %s items", field, param)
		}
		return fmt.Sprintf("%s must be exactly %s characters", field, param)
	case "min":
		return fmt.Sprintf("%s must be at least %s", field, param)
	case "max":
		return fmt.Sprintf("%s must be at most %s", field, param)
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, strings.ReplaceAll(param, " ", ", "))
	case "safename":
		return fmt.Sprintf("%s must be a plain name without path separators", field)
	default:
		return fmt.Sprintf("%s failed %s validation", field, err.Tag())
	}
}

// isSafeName accepts names that stay inside the data directory
func isSafeName(fl validator.FieldLevel) bool {
	return files.ValidateName(fl.Field().String()) == nil
}
