package auth

import (
	"context"
	"time"

	domrepo "github.com/itcambridge/StockAnalysis-Backend/internal/domain/repository"
	xhttp "github.com/itcambridge/StockAnalysis-Backend/pkg/http"
	xlogger "github.com/itcambridge/StockAnalysis-Backend/pkg/logger"
)

// HTTPVerifier resolves bearer tokens against an external identity
// verification endpoint. Any failure collapses to ErrUnauthenticated so no
// internal detail leaks to callers.
type HTTPVerifier struct {
	verifyURL string
	http      *xhttp.Client
	logger    *xlogger.Logger
}

var _ domrepo.TokenVerifier = (*HTTPVerifier)(nil)

func NewHTTPVerifier(verifyURL string, timeout time.Duration, logger *xlogger.Logger) *HTTPVerifier {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &HTTPVerifier{
		verifyURL: verifyURL,
		http:      xhttp.NewClient(xhttp.WithTimeout(timeout)),
		logger:    logger,
	}
}

func (v *HTTPVerifier) Verify(ctx context.Context, token string) (string, error) {
	if token == "" || v.verifyURL == "" {
		return "", domrepo.ErrUnauthenticated
	}

	var out struct {
		UserID string `json:"userId"`
	}
	err := v.http.SendAndParse(ctx, &xhttp.RequestOptions{
		Method: xhttp.MethodPost,
		URL:    v.verifyURL,
		Body:   map[string]string{"token": token},
	}, &out)
	if err != nil {
		v.logger.Warn("token verification failed", xlogger.Error(err))
		return "", domrepo.ErrUnauthenticated
	}
	if out.UserID == "" {
		return "", domrepo.ErrUnauthenticated
	}
	return out.UserID, nil
}
