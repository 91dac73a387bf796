package httpserver

import (
	"context"
	"fmt"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/prodmanag/backend/internal/events"
	"github.com/prodmanag/backend/internal/logging"
)

// publish emits a domain event without failing the request. A nil publisher
// means events are disabled.
func publish(c echo.Context, p events.Publisher, topic string, key uint, event map[string]any) {
	if p == nil {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := p.PublishEvent(ctx, topic, fmt.Sprint(key), event); err != nil {
		logging.FromContext(c.Request().Context()).Warn("event_publish_failed", "topic", topic, "error", err)
	}
}
