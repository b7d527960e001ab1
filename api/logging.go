package api

import (
	"net/http"

	"github.com/rs/zerolog"

	"github.com/revelaction/relex/logger"
)

var defaultLogger = logger.NewLogger("API")

type endpointLoggerFields struct {
	Method string `json:"method"`
	Url    string `json:"url"`
}

const RequestInfoFieldsKey = "request_info"

func makeRequestLogger(base zerolog.Logger, request *http.Request) zerolog.Logger {
	fields := endpointLoggerFields{
		Method: request.Method,
		Url:    request.URL.String(),
	}
	return base.With().Interface(RequestInfoFieldsKey, fields).Logger()
}
