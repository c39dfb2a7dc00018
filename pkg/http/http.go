package http

import (
	"time"
)

// Http holds the HTTP server configuration.
type Http struct {
	Host            string
	Port            int
	BodyLimit       int
	AccessLog       bool
	PProf           bool
	ExposeMetrics   bool
	ReadTimeout     int
	WriteTimeout    int
	IdleTimeout     int
	ShutdownTimeout int
	TLS             TLS
}

type TLS struct {
	CertFile string
	KeyFile  string
}

// ReadTimeoutDuration returns the read timeout in seconds as a Duration.
func (h *Http) ReadTimeoutDuration() time.Duration {
	return time.Duration(h.ReadTimeout) * time.Second
}

func (h *Http) WriteTimeoutDuration() time.Duration {
	return time.Duration(h.WriteTimeout) * time.Second
}

func (h *Http) IdleTimeoutDuration() time.Duration {
	return time.Duration(h.IdleTimeout) * time.Second
}
