package ws

import (
	"encoding/json"
	"errors"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"wordlink/internal/config"
	"wordlink/internal/game"
	"wordlink/internal/room"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Gateway is the protocol boundary: it validates inbound commands,
// applies per-connection rate limits and hands accepted commands to the
// room service. Invalid transitions and authorization failures stay
// silent; everything else is acknowledged on the originating connection.
type Gateway struct {
	hub   *Hub
	rooms RoomService

	limit          rate.Limit
	burst          int
	defaultMaxTime int

	connected atomic.Int64
}

func NewGateway(hub *Hub, rooms RoomService, cfg config.Config) *Gateway {
	return &Gateway{
		hub:            hub,
		rooms:          rooms,
		limit:          rate.Limit(cfg.RateLimitPerSec),
		burst:          cfg.RateBurst,
		defaultMaxTime: cfg.DefaultMaxTime,
	}
}

// ConnectionCount reports the number of open websocket connections.
func (g *Gateway) ConnectionCount() int64 {
	return g.connected.Load()
}

// HandleWS upgrades the request and serves the connection until it drops.
func (g *Gateway) HandleWS(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Warn().Err(err).Str("ip", c.ClientIP()).Msg("websocket upgrade failed")
		return
	}

	client := &Client{
		id:      uuid.NewString(),
		conn:    conn,
		out:     make(chan Envelope, sendBuffer),
		limiter: rate.NewLimiter(g.limit, g.burst),
		joined:  make(map[string]struct{}),
	}
	g.connected.Add(1)
	log.Info().Str("conn_id", client.id).Str("ip", c.ClientIP()).Msg("client connected")

	go client.writePump()
	g.readLoop(client)
}

func (g *Gateway) readLoop(client *Client) {
	defer func() {
		g.hub.Drop(client)
		g.rooms.Disconnect(client.id)
		close(client.out)
		g.connected.Add(-1)
		log.Info().Str("conn_id", client.id).Msg("client disconnected")
	}()

	client.conn.SetReadLimit(maxMessageSize)
	client.conn.SetReadDeadline(time.Now().Add(pongWait))
	client.conn.SetPongHandler(func(string) error {
		client.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		var msg struct {
			Action string          `json:"action"`
			Data   json.RawMessage `json:"data"`
		}
		if err := client.conn.ReadJSON(&msg); err != nil {
			break
		}
		g.handleCommand(client, msg.Action, msg.Data)
	}
}

// handleCommand applies the rate limit and dispatches one command. The
// limit is charged before validation so malformed floods cost budget too.
func (g *Gateway) handleCommand(c *Client, action string, data json.RawMessage) {
	if !c.limiter.Allow() {
		c.sendError(CodeRateLimited, "command budget exceeded")
		return
	}

	switch action {
	case "create_room":
		g.handleCreateRoom(c, data)
	case "join_room":
		g.handleJoinRoom(c, data)
	case "get_room_state":
		g.handleGetRoomState(c, data)
	case "give_clue":
		g.handleGiveClue(c, data)
	case "flip_card":
		g.handleFlipCard(c, data)
	case "end_turn":
		g.handleEndTurn(c, data)
	case "reset_game":
		g.handleResetGame(c, data)
	case "change_max_time":
		g.handleChangeMaxTime(c, data)
	case "leave_room":
		g.handleLeaveRoom(c, data)
	default:
		log.Debug().Str("action", action).Str("conn_id", c.id).Msg("unknown action")
		c.sendError(CodeUnknownAction, "unknown action")
	}
}

func (g *Gateway) handleCreateRoom(c *Client, data json.RawMessage) {
	var p createRoomPayload
	if err := json.Unmarshal(data, &p); err != nil {
		c.sendError(CodeInvalidPayload, "malformed payload")
		return
	}
	if p.MaxTime == 0 {
		p.MaxTime = g.defaultMaxTime
	}
	if err := p.validate(); err != nil {
		c.sendError(CodeInvalidPayload, err.Error())
		return
	}

	pub, secret, err := g.rooms.CreateRoom(p.RoomID, p.Mode, p.MaxTime)
	if err != nil {
		g.report(c, err)
		return
	}
	g.hub.Join(p.RoomID, c)
	c.send(Envelope{Action: ActionRoomCreated, Data: gin.H{
		"state":      pub,
		"hostSecret": secret,
	}})
}

func (g *Gateway) handleJoinRoom(c *Client, data json.RawMessage) {
	var p joinRoomPayload
	if err := json.Unmarshal(data, &p); err != nil {
		c.sendError(CodeInvalidPayload, "malformed payload")
		return
	}
	if err := p.validate(); err != nil {
		c.sendError(CodeInvalidPayload, err.Error())
		return
	}

	// Subscribe first so the joiner receives its own join notification;
	// a refused join rolls the subscription back.
	added := g.hub.Join(p.RoomID, c)
	pub, err := g.rooms.Join(p.RoomID, c.id, p.Role, p.Nickname)
	if err != nil {
		if added {
			g.hub.Leave(p.RoomID, c)
		}
		g.report(c, err)
		return
	}
	c.send(Envelope{Action: ActionRoomJoined, Data: gin.H{"state": pub}})
}

func (g *Gateway) handleGetRoomState(c *Client, data json.RawMessage) {
	var p roomOnlyPayload
	if err := json.Unmarshal(data, &p); err != nil {
		c.sendError(CodeInvalidPayload, "malformed payload")
		return
	}
	if err := p.validate(); err != nil {
		c.sendError(CodeInvalidPayload, err.Error())
		return
	}

	pub, err := g.rooms.State(p.RoomID)
	if err != nil {
		g.report(c, err)
		return
	}
	c.send(Envelope{Action: ActionRoomState, Data: gin.H{"state": pub}})
}

func (g *Gateway) handleGiveClue(c *Client, data json.RawMessage) {
	var p giveCluePayload
	if err := json.Unmarshal(data, &p); err != nil {
		c.sendError(CodeInvalidPayload, "malformed payload")
		return
	}
	if err := p.validate(); err != nil {
		c.sendError(CodeInvalidPayload, err.Error())
		return
	}
	g.report(c, g.rooms.GiveClue(p.RoomID, p.Number))
}

func (g *Gateway) handleFlipCard(c *Client, data json.RawMessage) {
	var p flipCardPayload
	if err := json.Unmarshal(data, &p); err != nil {
		c.sendError(CodeInvalidPayload, "malformed payload")
		return
	}
	if err := p.validate(); err != nil {
		c.sendError(CodeInvalidPayload, err.Error())
		return
	}
	g.report(c, g.rooms.FlipCard(p.RoomID, p.CardID))
}

func (g *Gateway) handleEndTurn(c *Client, data json.RawMessage) {
	var p roomOnlyPayload
	if err := json.Unmarshal(data, &p); err != nil {
		c.sendError(CodeInvalidPayload, "malformed payload")
		return
	}
	if err := p.validate(); err != nil {
		c.sendError(CodeInvalidPayload, err.Error())
		return
	}
	g.report(c, g.rooms.EndTurn(p.RoomID))
}

func (g *Gateway) handleResetGame(c *Client, data json.RawMessage) {
	var p resetGamePayload
	if err := json.Unmarshal(data, &p); err != nil {
		c.sendError(CodeInvalidPayload, "malformed payload")
		return
	}
	if err := p.validate(); err != nil {
		c.sendError(CodeInvalidPayload, err.Error())
		return
	}
	g.report(c, g.rooms.Reset(p.RoomID, p.HostSecret))
}

func (g *Gateway) handleChangeMaxTime(c *Client, data json.RawMessage) {
	var p changeMaxTimePayload
	if err := json.Unmarshal(data, &p); err != nil {
		c.sendError(CodeInvalidPayload, "malformed payload")
		return
	}
	if err := p.validate(); err != nil {
		c.sendError(CodeInvalidPayload, err.Error())
		return
	}
	g.report(c, g.rooms.ChangeMaxTime(p.RoomID, p.MaxTime))
}

func (g *Gateway) handleLeaveRoom(c *Client, data json.RawMessage) {
	var p roomOnlyPayload
	if err := json.Unmarshal(data, &p); err != nil {
		c.sendError(CodeInvalidPayload, "malformed payload")
		return
	}
	if err := p.validate(); err != nil {
		c.sendError(CodeInvalidPayload, err.Error())
		return
	}
	g.rooms.Leave(p.RoomID, c.id)
	g.hub.Leave(p.RoomID, c)
}

// report maps service errors onto the acknowledgment path. Wrong-phase,
// invalid-move and host-secret failures are deliberately silent: no
// event, no broadcast, no state change.
func (g *Gateway) report(c *Client, err error) {
	switch {
	case err == nil:
	case errors.Is(err, room.ErrRoomNotFound):
		c.sendError(CodeRoomNotFound, "room not found")
	case errors.Is(err, room.ErrRoomExists):
		c.sendError(CodeRoomExists, "room already exists")
	case errors.Is(err, room.ErrRoleTaken):
		c.sendError(CodeRoleTaken, "that spymaster slot is taken")
	case errors.Is(err, game.ErrCorpusTooSmall):
		c.sendError(CodeInvalidPayload, "word corpus too small")
	default:
	}
}
