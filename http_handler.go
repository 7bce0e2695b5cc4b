// Copyright 2022 Molecula Corp. (DBA FeatureBase).
// SPDX-License-Identifier: Apache-2.0
package sqlcast

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net"
	"net/http"
	"runtime/debug"
	"strconv"
	"strings"
	"time"

	"github.com/featurebasedb/sqlcast/errors"
	"github.com/featurebasedb/sqlcast/logger"
	"github.com/google/uuid"
	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RequestIDHeader carries the id assigned to each /sql and /cast request.
const RequestIDHeader = "X-Request-ID"

// Handler represents an HTTP handler.
type Handler struct {
	Handler http.Handler

	logger logger.Logger

	// Keeps the query argument validators for each handler
	validators map[string]*queryValidationSpec

	api *API

	ln net.Listener
	// url is used to hold the advertise bind address for printing a log during startup.
	url string

	closeTimeout time.Duration
	queryTimeout time.Duration

	server *http.Server

	middleware []func(http.Handler) http.Handler
}

type errorResponse struct {
	Error string `json:"error"`
}

// handlerOption is a functional option type for Handler
type handlerOption func(s *Handler) error

func OptHandlerMiddleware(middleware func(http.Handler) http.Handler) handlerOption {
	return func(h *Handler) error {
		h.middleware = append(h.middleware, middleware)
		return nil
	}
}

func OptHandlerAllowedOrigins(origins []string) handlerOption {
	return func(h *Handler) error {
		if len(origins) == 0 {
			return nil
		}
		h.middleware = append(h.middleware, handlers.CORS(
			handlers.AllowedOrigins(origins),
			handlers.AllowedHeaders([]string{"Content-Type"}),
		))
		return nil
	}
}

func OptHandlerAPI(api *API) handlerOption {
	return func(h *Handler) error {
		h.api = api
		return nil
	}
}

func OptHandlerLogger(logger logger.Logger) handlerOption {
	return func(h *Handler) error {
		h.logger = logger
		return nil
	}
}

// OptHandlerListener set the listener that will be used by the HTTP server.
// Url must be the advertised URL. It will be used to show a log to the user
// about where the Web UI is. This option is mandatory.
func OptHandlerListener(ln net.Listener, url string) handlerOption {
	return func(h *Handler) error {
		h.ln = ln
		h.url = url
		return nil
	}
}

// OptHandlerCloseTimeout controls how long to wait for the http Server to
// shutdown cleanly before forcibly destroying it. Default is 30 seconds.
func OptHandlerCloseTimeout(d time.Duration) handlerOption {
	return func(h *Handler) error {
		h.closeTimeout = d
		return nil
	}
}

// OptHandlerQueryTimeout bounds the time spent on a single /sql or /cast
// request. Zero means no limit.
func OptHandlerQueryTimeout(d time.Duration) handlerOption {
	return func(h *Handler) error {
		h.queryTimeout = d
		return nil
	}
}

// NewHandler returns a new instance of Handler with a default logger.
func NewHandler(opts ...handlerOption) (*Handler, error) {
	handler := &Handler{
		logger:       logger.NopLogger,
		closeTimeout: time.Second * 30,
	}

	for _, opt := range opts {
		err := opt(handler)
		if err != nil {
			return nil, errors.Wrap(err, "applying option")
		}
	}

	if handler.api == nil {
		return nil, errors.Errorf("must pass OptHandlerAPI")
	}

	handler.Handler = newRouter(handler)
	handler.populateValidators()

	if handler.ln != nil {
		handler.server = &http.Server{Handler: handler}
	}

	return handler, nil
}

// Serve serves requests on the listener passed with OptHandlerListener.
func (h *Handler) Serve() error {
	if h.server == nil {
		return errors.Errorf("must pass OptHandlerListener to serve")
	}
	h.logger.Printf("listening on %s", h.url)
	err := h.server.Serve(h.ln)
	if err != nil && err != http.ErrServerClosed {
		h.logger.Errorf("HTTP handler terminated with error: %s\n", err)
		return errors.Wrap(err, "serve http")
	}
	return nil
}

// Close tries to cleanly shutdown the HTTP server, and failing that, after a
// timeout, calls Server.Close.
func (h *Handler) Close() error {
	if h.server == nil {
		return nil
	}
	deadlineCtx, cancelFunc := context.WithDeadline(context.Background(), time.Now().Add(h.closeTimeout))
	defer cancelFunc()
	err := h.server.Shutdown(deadlineCtx)
	if err != nil {
		err = h.server.Close()
	}
	return errors.Wrap(err, "shutdown/close http server")
}

func (h *Handler) populateValidators() {
	h.validators = map[string]*queryValidationSpec{}
	h.validators["PostSQL"] = queryValidationSpecRequired().Optional("plan")
	h.validators["PostCast"] = queryValidationSpecRequired()
	h.validators["PostCastBatch"] = queryValidationSpecRequired()
	h.validators["GetStatus"] = queryValidationSpecRequired()
	h.validators["GetVersion"] = queryValidationSpecRequired()
}

func (h *Handler) queryArgValidator(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := mux.CurrentRoute(r).GetName()

		if validator, ok := h.validators[key]; ok {
			if err := validator.validate(r.URL.Query()); err != nil {
				errText := err.Error()
				if validHeaderAcceptJSON(r.Header) {
					response := errorResponse{Error: errText}
					data, err := json.Marshal(response)
					if err != nil {
						h.logger.Errorf("failed to encode error %q as JSON: %v", errText, err)
					} else {
						errText = string(data)
					}
				}
				http.Error(w, errText, http.StatusBadRequest)
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}

type contextKeyRequest int

const contextKeyRequestID contextKeyRequest = iota

// addRequestID assigns each request an id, echoed back in RequestIDHeader.
func (h *Handler) addRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if id == "" {
			id = uuid.New().String()
		}
		w.Header().Set(RequestIDHeader, id)
		ctx := context.WithValue(r.Context(), contextKeyRequestID, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func requestID(ctx context.Context) string {
	id, _ := ctx.Value(contextKeyRequestID).(string)
	return id
}

func newRouter(handler *Handler) http.Handler {
	router := mux.NewRouter()

	router.Handle("/metrics", promhttp.Handler()).Methods("GET")
	router.HandleFunc("/sql", handler.handlePostSQL).Methods("POST").Name("PostSQL")
	router.HandleFunc("/cast", handler.handlePostCast).Methods("POST").Name("PostCast")
	router.HandleFunc("/cast/batch", handler.handlePostCastBatch).Methods("POST").Name("PostCastBatch")
	router.HandleFunc("/status", handler.handleGetStatus).Methods("GET").Name("GetStatus")
	router.HandleFunc("/version", handler.handleGetVersion).Methods("GET").Name("GetVersion")

	router.Use(handler.queryArgValidator)
	router.Use(handler.addRequestID)
	var h http.Handler = router
	for _, middleware := range handler.middleware {
		// Wrapping instead of router.Use so CORS also sees OPTIONS requests,
		// which the router would not match.
		h = middleware(h)
	}
	return h
}

// ServeHTTP handles an HTTP request.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	defer func() {
		if err := recover(); err != nil {
			w.WriteHeader(http.StatusInternalServerError)
			stack := debug.Stack()
			msg := "%s\n%s"
			h.logger.Panicf(msg, err, stack)
			fmt.Fprintf(w, msg, err, stack)
		}
	}()

	h.Handler.ServeHTTP(w, r)
}

func (h *Handler) requestContext(r *http.Request) (context.Context, context.CancelFunc) {
	if h.queryTimeout > 0 {
		return context.WithTimeout(r.Context(), h.queryTimeout)
	}
	return context.WithCancel(r.Context())
}

// validHeaderAcceptJSON returns false if one or more Accept
// headers are present, but none of them are "application/json"
// (or any matching wildcard). Otherwise returns true.
func validHeaderAcceptJSON(header http.Header) bool {
	if v, found := header["Accept"]; found {
		for _, v := range v {
			t, _, err := mime.ParseMediaType(v)
			if err != nil && err != mime.ErrInvalidMediaParameter {
				continue
			}
			spl := strings.SplitN(t, "/", 2)
			if len(spl) < 2 {
				continue
			}
			if (spl[0] == "application" || spl[0] == "*") && (spl[1] == "json" || spl[1] == "*") {
				return true
			}
		}
		return false
	}
	return true
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Errorf("write response error: %s", err)
	}
}

func (h *Handler) writeBadRequest(w http.ResponseWriter, err error) {
	h.writeJSON(w, http.StatusBadRequest, errorResponse{Error: errors.Message(err)})
}

// handlePostSQL handles /sql requests. The body is a single SQL statement.
func (h *Handler) handlePostSQL(w http.ResponseWriter, r *http.Request) {
	includePlan := false

	includePlanValue := r.URL.Query().Get("plan")
	if len(includePlanValue) > 0 {
		var err error
		includePlan, err = strconv.ParseBool(includePlanValue)
		if err != nil {
			h.writeBadRequest(w, err)
			return
		}
	}

	b, err := io.ReadAll(r.Body)
	if err != nil {
		h.writeBadRequest(w, err)
		return
	}

	ctx, cancel := h.requestContext(r)
	defer cancel()

	sql := string(b)
	h.logger.Debugf("request %s: %s", requestID(ctx), sql)
	resp, err := h.api.Query(ctx, sql, includePlan)
	if err != nil {
		h.writeJSON(w, http.StatusBadRequest, &WireQueryResponse{
			Data:  make([][]interface{}, 0),
			Error: errors.Message(err),
		})
		return
	}
	h.writeJSON(w, http.StatusOK, resp)
}

// handlePostCast handles /cast requests. The body is a CastRequest.
func (h *Handler) handlePostCast(w http.ResponseWriter, r *http.Request) {
	var req CastRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeBadRequest(w, errors.Wrap(err, "decoding cast request"))
		return
	}

	ctx, cancel := h.requestContext(r)
	defer cancel()

	resp, err := h.api.Cast(ctx, req)
	if err != nil {
		h.writeBadRequest(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, resp)
}

// handlePostCastBatch handles /cast/batch requests. The body is a list of
// CastRequest; the response lists a CastResponse for each, in order.
func (h *Handler) handlePostCastBatch(w http.ResponseWriter, r *http.Request) {
	var reqs []CastRequest
	if err := json.NewDecoder(r.Body).Decode(&reqs); err != nil {
		h.writeBadRequest(w, errors.Wrap(err, "decoding cast requests"))
		return
	}

	ctx, cancel := h.requestContext(r)
	defer cancel()

	resps, err := h.api.CastBatch(ctx, reqs)
	if err != nil {
		h.writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: err.Error()})
		return
	}
	h.writeJSON(w, http.StatusOK, resps)
}

type getStatusResponse struct {
	State   string `json:"state"`
	Version string `json:"version"`
}

func (h *Handler) handleGetStatus(w http.ResponseWriter, r *http.Request) {
	if !validHeaderAcceptJSON(r.Header) {
		http.Error(w, "JSON only acceptable response", http.StatusNotAcceptable)
		return
	}
	h.writeJSON(w, http.StatusOK, getStatusResponse{
		State:   "NORMAL",
		Version: h.api.Version(),
	})
}

func (h *Handler) handleGetVersion(w http.ResponseWriter, r *http.Request) {
	if !validHeaderAcceptJSON(r.Header) {
		http.Error(w, "JSON only acceptable response", http.StatusNotAcceptable)
		return
	}
	h.writeJSON(w, http.StatusOK, struct {
		Version string `json:"version"`
	}{
		Version: h.api.Version(),
	})
}
