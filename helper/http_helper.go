package helper

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	entranslations "github.com/go-playground/validator/v10/translations/en"

	"timetracker/models"
)

const (
	textError = `error`
	textOk    = `ok`
)

// ResponseHelper ...
type ResponseHelper struct {
	C        *gin.Context
	Status   string
	Message  string
	Data     interface{}
	Code     int // the http code
	CodeType string
}

// HTTPHelper ...
type HTTPHelper struct {
	Translator ut.Translator
}

// NewHTTPHelper attaches an english translator to gin's binding validator
// so field errors come back readable instead of as raw tag names.
func NewHTTPHelper() *HTTPHelper {
	enLocale := en.New()
	uni := ut.New(enLocale, enLocale)
	translator, _ := uni.GetTranslator("en")

	if validate, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = entranslations.RegisterDefaultTranslations(validate, translator)
	}

	return &HTTPHelper{Translator: translator}
}

// SetResponse ...
// Set response data.
func (u *HTTPHelper) SetResponse(c *gin.Context, status string, message string, data interface{}, code int, codeType string) ResponseHelper {
	return ResponseHelper{c, status, message, data, code, codeType}
}

// SendError ...
// Send error response to consumers.
func (u *HTTPHelper) SendError(c *gin.Context, message string, data interface{}, code int, codeType string) {
	res := u.SetResponse(c, textError, message, data, code, codeType)
	u.SendResponse(res)
}

// SendBadRequest ...
// Send bad request response to consumers.
func (u *HTTPHelper) SendBadRequest(c *gin.Context, message string, data interface{}) {
	u.SendError(c, message, data, http.StatusBadRequest, `badRequest`)
}

// SendUnauthorizedError ...
// Send unauthorized response to consumers.
func (u *HTTPHelper) SendUnauthorizedError(c *gin.Context, message string, data interface{}) {
	u.SendError(c, message, data, http.StatusUnauthorized, `unAuthorized`)
}

// SendForbiddenError ...
// Send forbidden response to consumers.
func (u *HTTPHelper) SendForbiddenError(c *gin.Context, message string, data interface{}) {
	u.SendError(c, message, data, http.StatusForbidden, `forbidden`)
}

// SendNotFoundError ...
// Send not found response to consumers.
func (u *HTTPHelper) SendNotFoundError(c *gin.Context, message string, data interface{}) {
	u.SendError(c, message, data, http.StatusNotFound, `notFound`)
}

// SendConflictError ...
// Send conflict response to consumers.
func (u *HTTPHelper) SendConflictError(c *gin.Context, message string, data interface{}) {
	u.SendError(c, message, data, http.StatusConflict, `conflict`)
}

// SendUnprocessableEntity ...
// Send unprocessable entity response to consumers.
func (u *HTTPHelper) SendUnprocessableEntity(c *gin.Context, message string, data interface{}) {
	u.SendError(c, message, data, http.StatusUnprocessableEntity, `validationError`)
}

// SendBindingError ...
// Send a request binding failure. Field validation errors are translated
// per field, anything else (malformed JSON, type mismatches) is passed
// through as a plain bad request.
func (u *HTTPHelper) SendBindingError(c *gin.Context, err error) {
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		u.SendBadRequest(c, err.Error(), u.EmptyJsonMap())
		return
	}

	errorResponse := map[string][]string{}
	for _, fieldError := range validationErrors {
		errKey := Underscore(fieldError.StructField())
		errorResponse[errKey] = append(errorResponse[errKey], fieldError.Translate(u.Translator))
	}

	c.JSON(http.StatusBadRequest, map[string]interface{}{
		"code":         http.StatusBadRequest,
		"code_type":    "validationError",
		"code_message": errorResponse,
		"data":         u.EmptyJsonMap(),
	})
}

// SendServiceError ...
// Map a typed service error onto its HTTP status.
func (u *HTTPHelper) SendServiceError(c *gin.Context, err error) {
	switch e := err.(type) {
	case models.ErrorBadRequest:
		u.SendBadRequest(c, e.Message, u.EmptyJsonMap())
	case models.ErrorUnauthorized:
		u.SendUnauthorizedError(c, e.Message, u.EmptyJsonMap())
	case models.ErrorForbidden:
		u.SendForbiddenError(c, e.Message, u.EmptyJsonMap())
	case models.ErrorNotFound:
		u.SendNotFoundError(c, e.Message, u.EmptyJsonMap())
	case models.ErrorConflict:
		u.SendConflictError(c, e.Message, u.EmptyJsonMap())
	case models.ErrorValidation:
		u.SendUnprocessableEntity(c, e.Message, u.EmptyJsonMap())
	default:
		u.SendError(c, "Internal server error", u.EmptyJsonMap(), http.StatusInternalServerError, `internalServerError`)
	}
}

// SendSuccess ...
// Send success response to consumers.
func (u *HTTPHelper) SendSuccess(c *gin.Context, message string, data interface{}) {
	res := u.SetResponse(c, textOk, message, data, http.StatusOK, `success`)
	u.SendResponse(res)
}

// SendCreated ...
// Send created response to consumers.
func (u *HTTPHelper) SendCreated(c *gin.Context, message string, data interface{}) {
	res := u.SetResponse(c, textOk, message, data, http.StatusCreated, `created`)
	u.SendResponse(res)
}

// SendNoContent ...
func (u *HTTPHelper) SendNoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// SendResponse ...
// Send response
func (u *HTTPHelper) SendResponse(res ResponseHelper) {
	if len(res.Message) == 0 {
		res.Message = `success`
	}

	res.C.JSON(res.Code, map[string]interface{}{
		"code":         res.Code,
		"code_type":    res.CodeType,
		"code_message": res.Message,
		"data":         res.Data,
	})
}

func (u *HTTPHelper) EmptyJsonMap() map[string]interface{} {
	return make(map[string]interface{})
}
