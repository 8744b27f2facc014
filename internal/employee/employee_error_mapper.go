package employee

import (
	"errors"
	"fmt"
	"net/http"

	"go.uber.org/zap"
)

// upstreamError menandai kegagalan upstream yang masih layak di-retry oleh
// pipeline. Kegagalan terminal tidak pernah jadi error: diserap menjadi
// hasil kosong sebelum keluar dari fungsi panggilan.
type upstreamError struct {
	Op         string
	StatusCode int
	Transient  bool
}

func (e *upstreamError) Error() string {
	return fmt.Sprintf("%s: upstream returned HTTP %d", e.Op, e.StatusCode)
}

// isTransientError adalah classifier retry milik pipeline client ini.
func isTransientError(err error) bool {
	var ue *upstreamError
	if errors.As(err, &ue) {
		return ue.Transient
	}
	return false
}

func isTransientStatus(status int) bool {
	switch status {
	case http.StatusTooManyRequests,
		http.StatusBadGateway,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout:
		return true
	}
	return false
}

// classifyStatus menerapkan tabel klasifikasi per status non-2xx.
// Return nil berarti terminal: sudah dicatat di log, pemanggil menerima
// hasil kosong. Return error berarti transient, diserahkan ke pipeline.
func (c *httpClient) classifyStatus(op string, status int) error {
	switch {
	case status == http.StatusNotFound:
		c.logger.Warn("resource not found (404)", zap.String("op", op))
		return nil
	case isTransientStatus(status):
		c.logger.Warn("transient upstream error, eligible for retry",
			zap.String("op", op),
			zap.Int("status", status),
		)
		return &upstreamError{Op: op, StatusCode: status, Transient: true}
	case status >= 400 && status < 500:
		c.logger.Warn("client error from upstream",
			zap.String("op", op),
			zap.Int("status", status),
		)
		return nil
	default:
		// Jaring pengaman 5xx tak terklasifikasi (termasuk 500/501):
		// terminal, tidak di-retry
		c.logger.Error("non-retryable upstream error",
			zap.String("op", op),
			zap.Int("status", status),
		)
		return nil
	}
}
