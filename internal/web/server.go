package web

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
)

// StartHTTP serves handler on addr in the background and returns the bound
// address and a shutdown function that drains in-flight requests.
func StartHTTP(addr string, handler http.Handler, log *logrus.Logger) (net.Addr, func(context.Context) error, error) {
	if addr == "" {
		addr = "0.0.0.0:5000"
	}
	lis, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, nil, err
	}

	srv := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
	go func() {
		if err := srv.Serve(lis); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Error("http server stopped")
		}
	}()

	return lis.Addr(), srv.Shutdown, nil
}
