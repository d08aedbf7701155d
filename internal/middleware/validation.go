package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/schedulebob/auth/internal/constants"
	"github.com/schedulebob/auth/pkg/logger"
	"github.com/schedulebob/auth/pkg/validation"
)

type ValidationMiddleware struct {
	validate *validator.Validate
}

func NewValidationMiddleware() (*ValidationMiddleware, error) {
	validate := validator.New()
	if err := validation.RegisterCustomValidators(validate); err != nil {
		return nil, err
	}
	return &ValidationMiddleware{validate: validate}, nil
}

// ValidateRequestBody decodes the body into a fresh value from factory and
// validates it. Failures answer 400 with the first field message; on success
// the value is stored under constants.GinKeyValidatedBody.
func (m *ValidationMiddleware) ValidateRequestBody(factory func() interface{}) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		var bodyBytes []byte
		if c.Request.Body != nil {
			var err error
			bodyBytes, err = io.ReadAll(c.Request.Body)
			if err != nil {
				logger.WarnWithContext(ctx, "Failed to read request body").
					String("path", c.Request.URL.Path).
					Err(err).
					Log()
				abortBadRequest(c, constants.MsgInvalidBody)
				return
			}
		}
		c.Request.Body = io.NopCloser(bytes.NewBuffer(bodyBytes))

		request := factory()
		if err := json.Unmarshal(bodyBytes, request); err != nil {
			logger.WarnWithContext(ctx, "JSON unmarshaling failed").
				String("path", c.Request.URL.Path).
				Int("body_size", len(bodyBytes)).
				Err(err).
				Log()
			abortBadRequest(c, constants.MsgInvalidBody)
			return
		}

		if err := m.validate.Struct(request); err != nil {
			msg, ok := validation.FirstMessage(err)
			if !ok {
				msg = constants.MsgValidationFailed
			}

			logger.WarnWithContext(ctx, "Request validation failed").
				String("path", c.Request.URL.Path).
				String("message", msg).
				Log()
			abortBadRequest(c, msg)
			return
		}

		c.Set(constants.GinKeyValidatedBody, request)
		c.Next()
	}
}

func abortBadRequest(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusBadRequest,
		constants.BuildErrorResponse(message, http.StatusBadRequest))
}
