package handlers

import (
	"bufio"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/valyala/fasthttp"

	"github.com/blockbuddy/lead-console/internal/stream"
)

const sseKeepaliveInterval = 25 * time.Second

// streamSSE drains a hub topic into a server-sent-events response. The
// optional initial frame is written before any hub frames so a fresh
// subscriber starts from the current snapshot. The stream ends when the
// client goes away or the subscriber channel closes.
func streamSSE(c *fiber.Ctx, hub *stream.Hub, topic string, initial []byte) error {
	c.Set(fiber.HeaderContentType, "text/event-stream")
	c.Set(fiber.HeaderCacheControl, "no-cache")
	c.Set(fiber.HeaderConnection, "keep-alive")
	c.Set("X-Accel-Buffering", "no")

	c.Context().SetBodyStreamWriter(fasthttp.StreamWriter(func(w *bufio.Writer) {
		frames, cancel := hub.Subscribe(topic)
		defer cancel()

		if initial != nil {
			if writeSSEFrame(w, initial) != nil {
				return
			}
		}

		keepalive := time.NewTicker(sseKeepaliveInterval)
		defer keepalive.Stop()

		for {
			select {
			case frame, ok := <-frames:
				if !ok {
					return
				}
				if writeSSEFrame(w, frame) != nil {
					return
				}
			case <-keepalive.C:
				if _, err := w.WriteString(": keepalive\n\n"); err != nil {
					return
				}
				if err := w.Flush(); err != nil {
					return
				}
			}
		}
	}))
	return nil
}

func writeSSEFrame(w *bufio.Writer, payload []byte) error {
	if _, err := fmt.Fprintf(w, "data: %s\n\n", payload); err != nil {
		return err
	}
	return w.Flush()
}
