package server

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
)

type HealthChecker interface {
	Healthy(ctx context.Context) bool
}

type OkHealthChecker struct {
}

func NewOkHealthChecker() *OkHealthChecker {
	return &OkHealthChecker{}
}

func (hc *OkHealthChecker) Healthy(ctx context.Context) bool {
	return true
}

// CompositeHealthChecker is healthy only when every named checker is.
type CompositeHealthChecker struct {
	checkers map[string]HealthChecker
}

func NewCompositeHealthChecker() *CompositeHealthChecker {
	return &CompositeHealthChecker{checkers: make(map[string]HealthChecker)}
}

func (hc *CompositeHealthChecker) Add(name string, checker HealthChecker) *CompositeHealthChecker {
	hc.checkers[name] = checker
	return hc
}

func (hc *CompositeHealthChecker) Healthy(ctx context.Context) bool {
	_, err := hc.Unhealthy(ctx)
	return err == nil
}

// Unhealthy returns the names of failing checkers.
func (hc *CompositeHealthChecker) Unhealthy(ctx context.Context) ([]string, error) {
	var failing []string
	for name, c := range hc.checkers {
		if !c.Healthy(ctx) {
			failing = append(failing, name)
		}
	}
	if len(failing) > 0 {
		return failing, errors.New("unhealthy dependencies")
	}
	return nil, nil
}

// HealthHandler answers 200 {"status":"ok"} or 503 {"status":"unavailable"}.
func HealthHandler(hc HealthChecker) echo.HandlerFunc {
	return func(c echo.Context) error {
		if hc.Healthy(c.Request().Context()) {
			return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
		}
		return c.JSON(http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
	}
}
