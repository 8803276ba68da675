package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/Daskott/addressbook/colors"
	"github.com/google/uuid"
)

const REQUEST_ID_HEADER = "X-Request-ID"

type RequestContextKey string

type ResponseWriterWithStatus struct {
	http.ResponseWriter
	Status int
}

func (r *ResponseWriterWithStatus) WriteHeader(status int) {
	r.Status = status
	r.ResponseWriter.WriteHeader(status)
}

// requestIDMiddleware tags every request with an id, re-using the caller's when provided
func requestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get(REQUEST_ID_HEADER)
		if requestID == "" {
			requestID = uuid.NewString()
		}

		w.Header().Set(REQUEST_ID_HEADER, requestID)
		ctx := context.WithValue(r.Context(), RequestContextKey("requestID"), requestID)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		responseWriter := &ResponseWriterWithStatus{
			ResponseWriter: w,
			Status:         http.StatusOK,
		}

		defer func() {
			logg.Infof("%v %v %v %v %v",
				colors.Method(r.Method),
				r.RequestURI,
				colors.Status(responseWriter.Status),
				colors.Yellow(fmt.Sprintf("[%v]", time.Since(start))),
				colors.Blue(r.Context().Value(RequestContextKey("requestID"))),
			)
		}()

		next.ServeHTTP(responseWriter, r)
	})
}
