package ws

import (
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = 54 * time.Second
	maxMessageSize = 1024
	sendBuffer     = 64
)

// Client is one websocket connection. All writes to the socket flow
// through out and the write pump, so broadcasts from the scheduler and
// command acknowledgments never interleave on the wire.
type Client struct {
	id      string
	conn    *websocket.Conn
	out     chan Envelope
	limiter *rate.Limiter

	// joined is guarded by the hub's mutex.
	joined map[string]struct{}
}

// send queues an envelope without blocking. It reports false when the
// client's buffer is full and the message was dropped.
func (c *Client) send(env Envelope) bool {
	select {
	case c.out <- env:
		return true
	default:
		return false
	}
}

func (c *Client) sendError(code, message string) {
	c.send(Envelope{Action: ActionError, Data: map[string]string{
		"code":    code,
		"message": message,
	}})
}

// writePump drains out onto the socket and keeps the connection alive
// with pings. It exits when out is closed or a write fails.
func (c *Client) writePump() {
	ping := time.NewTicker(pingPeriod)
	defer func() {
		ping.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case env, ok := <-c.out:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteJSON(env); err != nil {
				log.Debug().Err(err).Str("conn_id", c.id).Msg("write failed")
				return
			}
		case <-ping.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
