// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/AccelByte/client-insights/pkg/handler"
)

// HTTPServer manages the REST API server.
type HTTPServer struct {
	server   *http.Server
	port     int
	insights *handler.InsightsHandler
}

// NewHTTPServer creates a new HTTP server instance.
func NewHTTPServer(port int, insights *handler.InsightsHandler) *HTTPServer {
	return &HTTPServer{
		port:     port,
		insights: insights,
	}
}

// Setup builds the router and binds all endpoints.
func (s *HTTPServer) Setup() error {
	r := mux.NewRouter()

	v1 := r.PathPrefix("/v1").Subrouter()
	v1.HandleFunc("/clients/{clientId}/engagement", s.insights.GetEngagement).Methods("GET")
	v1.HandleFunc("/clients/{clientId}/churn", s.insights.GetChurn).Methods("GET")
	v1.HandleFunc("/clients/{clientId}/insights/recalculate", s.insights.Recalculate).Methods("POST")
	v1.HandleFunc("/insights/recalculate", s.insights.RecalculateAll).Methods("POST")
	v1.HandleFunc("/meetings/summarize", s.insights.Summarize).Methods("POST")
	v1.HandleFunc("/advisors/{advisorId}/silent-clients", s.insights.SilentClients).Methods("GET")

	r.HandleFunc("/health", s.insights.Health).Methods("GET")

	s.server = &http.Server{
		Addr:         fmt.Sprintf(":%d", s.port),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
	}

	return nil
}

// Start begins serving the API on the configured port.
func (s *HTTPServer) Start(ctx context.Context) error {
	go func() {
		logrus.Infof("http server listening on port %d", s.port)
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("http server failed: %v", err)
		}
	}()
	return nil
}

// Shutdown gracefully stops the HTTP server.
func (s *HTTPServer) Shutdown(ctx context.Context) error {
	logrus.Info("shutting down http server...")
	if err := s.server.Shutdown(ctx); err != nil {
		return err
	}
	logrus.Info("http server stopped")
	return nil
}
