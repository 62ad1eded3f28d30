package ws

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"

	"wordlink/internal/config"
	"wordlink/internal/game"
	"wordlink/internal/room"
)

type serviceCall struct {
	method string
	args   []interface{}
}

// stubService records every call and answers from canned errors.
type stubService struct {
	calls []serviceCall

	createErr error
	joinErr   error
	stateErr  error
	clueErr   error
	flipErr   error
	endErr    error
	resetErr  error
	maxErr    error

	pub    *room.PublicState
	secret string

	// onJoin runs inside Join, standing in for the broadcasts the real
	// manager issues before the gateway sends its ack.
	onJoin func()
}

func (s *stubService) record(method string, args ...interface{}) {
	s.calls = append(s.calls, serviceCall{method: method, args: args})
}

func (s *stubService) CreateRoom(roomID string, mode game.Mode, maxTime int) (*room.PublicState, string, error) {
	s.record("CreateRoom", roomID, mode, maxTime)
	if s.createErr != nil {
		return nil, "", s.createErr
	}
	return s.pub, s.secret, nil
}

func (s *stubService) Join(roomID, connID string, role room.Role, nickname string) (*room.PublicState, error) {
	s.record("Join", roomID, connID, role, nickname)
	if s.joinErr != nil {
		return nil, s.joinErr
	}
	if s.onJoin != nil {
		s.onJoin()
	}
	return s.pub, nil
}

func (s *stubService) State(roomID string) (*room.PublicState, error) {
	s.record("State", roomID)
	if s.stateErr != nil {
		return nil, s.stateErr
	}
	return s.pub, nil
}

func (s *stubService) GiveClue(roomID string, number int) error {
	s.record("GiveClue", roomID, number)
	return s.clueErr
}

func (s *stubService) FlipCard(roomID string, cardID int) error {
	s.record("FlipCard", roomID, cardID)
	return s.flipErr
}

func (s *stubService) EndTurn(roomID string) error {
	s.record("EndTurn", roomID)
	return s.endErr
}

func (s *stubService) Reset(roomID, hostSecret string) error {
	s.record("Reset", roomID, hostSecret)
	return s.resetErr
}

func (s *stubService) ChangeMaxTime(roomID string, maxTime int) error {
	s.record("ChangeMaxTime", roomID, maxTime)
	return s.maxErr
}

func (s *stubService) Leave(roomID, connID string) {
	s.record("Leave", roomID, connID)
}

func (s *stubService) Disconnect(connID string) {
	s.record("Disconnect", connID)
}

func newTestGateway(svc *stubService) (*Gateway, *Client) {
	g := NewGateway(NewHub(), svc, config.Config{
		RateLimitPerSec: 100,
		RateBurst:       100,
		DefaultMaxTime:  180,
	})
	c := &Client{
		id:      "conn-test",
		out:     make(chan Envelope, sendBuffer),
		limiter: rate.NewLimiter(rate.Limit(100), 100),
		joined:  make(map[string]struct{}),
	}
	return g, c
}

func drain(c *Client) []Envelope {
	var out []Envelope
	for {
		select {
		case env := <-c.out:
			out = append(out, env)
		default:
			return out
		}
	}
}

func errorCode(t *testing.T, env Envelope) string {
	t.Helper()
	require.Equal(t, ActionError, env.Action)
	data, ok := env.Data.(map[string]string)
	require.True(t, ok)
	return data["code"]
}

func raw(t *testing.T, v interface{}) json.RawMessage {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return b
}

func TestPayloadValidation(t *testing.T) {
	long := strings.Repeat("x", 21)
	cases := []struct {
		name    string
		payload interface{ validate() error }
		wantErr bool
	}{
		{"create ok", &createRoomPayload{RoomID: "alpha", Mode: game.ModeStandard, MaxTime: 180}, false},
		{"create empty room id", &createRoomPayload{Mode: game.ModeStandard, MaxTime: 180}, true},
		{"create long room id", &createRoomPayload{RoomID: long, Mode: game.ModeStandard, MaxTime: 180}, true},
		{"create bad mode", &createRoomPayload{RoomID: "alpha", Mode: "BLITZ", MaxTime: 180}, true},
		{"create maxTime low", &createRoomPayload{RoomID: "alpha", Mode: game.ModeTimed, MaxTime: 59}, true},
		{"create maxTime high", &createRoomPayload{RoomID: "alpha", Mode: game.ModeTimed, MaxTime: 601}, true},
		{"join ok", &joinRoomPayload{RoomID: "alpha", Role: room.RoleTable, Nickname: "ada"}, false},
		{"join bad role", &joinRoomPayload{RoomID: "alpha", Role: "REFEREE", Nickname: "ada"}, true},
		{"join empty nickname", &joinRoomPayload{RoomID: "alpha", Role: room.RoleTable}, true},
		{"join long nickname", &joinRoomPayload{RoomID: "alpha", Role: room.RoleTable, Nickname: long}, true},
		{"clue unlimited", &giveCluePayload{RoomID: "alpha", Number: -1}, false},
		{"clue max", &giveCluePayload{RoomID: "alpha", Number: 9}, false},
		{"clue below range", &giveCluePayload{RoomID: "alpha", Number: -2}, true},
		{"clue above range", &giveCluePayload{RoomID: "alpha", Number: 10}, true},
		{"flip ok", &flipCardPayload{RoomID: "alpha", CardID: 0}, false},
		{"flip negative card", &flipCardPayload{RoomID: "alpha", CardID: -1}, true},
		{"reset ok", &resetGamePayload{RoomID: "alpha", HostSecret: "deadbeef"}, false},
		{"reset missing secret", &resetGamePayload{RoomID: "alpha"}, true},
		{"max time ok", &changeMaxTimePayload{RoomID: "alpha", MaxTime: 300}, false},
		{"max time out of range", &changeMaxTimePayload{RoomID: "alpha", MaxTime: 30}, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.payload.validate()
			if tc.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestRateLimitChargedBeforeValidation(t *testing.T) {
	svc := &stubService{}
	g, c := newTestGateway(svc)
	c.limiter = rate.NewLimiter(rate.Limit(0), 2)

	g.handleCommand(c, "give_clue", raw(t, gin.H{"roomId": "alpha", "number": 2}))
	g.handleCommand(c, "not-even-an-action", nil)
	g.handleCommand(c, "give_clue", raw(t, gin.H{"roomId": "alpha", "number": 2}))

	envs := drain(c)
	require.Len(t, envs, 2)
	assert.Equal(t, CodeUnknownAction, errorCode(t, envs[0]))
	assert.Equal(t, CodeRateLimited, errorCode(t, envs[1]))
	assert.Len(t, svc.calls, 1)
}

func TestCreateRoomAckCarriesHostSecret(t *testing.T) {
	svc := &stubService{
		pub:    &room.PublicState{State: &game.State{RoomID: "alpha"}},
		secret: "cafebabe",
	}
	g, c := newTestGateway(svc)

	g.handleCommand(c, "create_room", raw(t, gin.H{"roomId": "alpha", "mode": "STANDARD"}))

	envs := drain(c)
	require.Len(t, envs, 1)
	assert.Equal(t, ActionRoomCreated, envs[0].Action)
	data, ok := envs[0].Data.(gin.H)
	require.True(t, ok)
	assert.Equal(t, "cafebabe", data["hostSecret"])
	assert.Equal(t, svc.pub, data["state"])

	// Zero maxTime falls back to the configured default.
	require.Len(t, svc.calls, 1)
	assert.Equal(t, []interface{}{"alpha", game.ModeStandard, 180}, svc.calls[0].args)

	// The creator is subscribed to the room's broadcasts.
	g.hub.Broadcast("alpha", room.ActionGameUpdate, svc.pub)
	assert.Len(t, drain(c), 1)
}

func TestCreateRoomExistsError(t *testing.T) {
	svc := &stubService{createErr: room.ErrRoomExists}
	g, c := newTestGateway(svc)

	g.handleCommand(c, "create_room", raw(t, gin.H{"roomId": "alpha", "mode": "STANDARD", "maxTime": 180}))

	envs := drain(c)
	require.Len(t, envs, 1)
	assert.Equal(t, CodeRoomExists, errorCode(t, envs[0]))
}

func TestJoinRoomAckAndSubscription(t *testing.T) {
	svc := &stubService{pub: &room.PublicState{State: &game.State{RoomID: "alpha"}}}
	g, c := newTestGateway(svc)

	g.handleCommand(c, "join_room", raw(t, gin.H{"roomId": "alpha", "role": "SPYMASTER_RED", "nickname": "ada"}))

	envs := drain(c)
	require.Len(t, envs, 1)
	assert.Equal(t, ActionRoomJoined, envs[0].Action)

	require.Len(t, svc.calls, 1)
	assert.Equal(t, []interface{}{"alpha", "conn-test", room.RoleSpymasterRed, "ada"}, svc.calls[0].args)

	g.hub.Broadcast("alpha", room.ActionGameUpdate, svc.pub)
	assert.Len(t, drain(c), 1)
}

func TestJoinerReceivesOwnNotification(t *testing.T) {
	// The subscription must exist before the room service runs, so the
	// join notification broadcast during the join reaches the joiner.
	svc := &stubService{pub: &room.PublicState{State: &game.State{RoomID: "alpha"}}}
	g, c := newTestGateway(svc)
	svc.onJoin = func() {
		g.hub.Broadcast("alpha", room.ActionNotification, gin.H{"nickname": "ada", "role": room.RoleTable})
	}

	g.handleCommand(c, "join_room", raw(t, gin.H{"roomId": "alpha", "role": "TABLE", "nickname": "ada"}))

	envs := drain(c)
	require.Len(t, envs, 2)
	assert.Equal(t, room.ActionNotification, envs[0].Action)
	assert.Equal(t, ActionRoomJoined, envs[1].Action)
}

func TestFailedRoleSwitchKeepsSubscription(t *testing.T) {
	svc := &stubService{pub: &room.PublicState{State: &game.State{RoomID: "alpha"}}}
	g, c := newTestGateway(svc)

	g.handleCommand(c, "join_room", raw(t, gin.H{"roomId": "alpha", "role": "TABLE", "nickname": "ada"}))
	require.Len(t, drain(c), 1)

	// A refused role switch must not tear down the earlier membership.
	svc.joinErr = room.ErrRoleTaken
	g.handleCommand(c, "join_room", raw(t, gin.H{"roomId": "alpha", "role": "SPYMASTER_RED", "nickname": "ada"}))
	envs := drain(c)
	require.Len(t, envs, 1)
	assert.Equal(t, CodeRoleTaken, errorCode(t, envs[0]))

	g.hub.Broadcast("alpha", room.ActionGameUpdate, svc.pub)
	assert.Len(t, drain(c), 1)
}

func TestJoinRoleTakenError(t *testing.T) {
	svc := &stubService{joinErr: room.ErrRoleTaken}
	g, c := newTestGateway(svc)

	g.handleCommand(c, "join_room", raw(t, gin.H{"roomId": "alpha", "role": "SPYMASTER_RED", "nickname": "ada"}))

	envs := drain(c)
	require.Len(t, envs, 1)
	assert.Equal(t, CodeRoleTaken, errorCode(t, envs[0]))

	// A refused join must not subscribe the caller.
	g.hub.Broadcast("alpha", room.ActionGameUpdate, nil)
	assert.Empty(t, drain(c))
}

func TestGetRoomStateNotFound(t *testing.T) {
	svc := &stubService{stateErr: room.ErrRoomNotFound}
	g, c := newTestGateway(svc)

	g.handleCommand(c, "get_room_state", raw(t, gin.H{"roomId": "ghost"}))

	envs := drain(c)
	require.Len(t, envs, 1)
	assert.Equal(t, CodeRoomNotFound, errorCode(t, envs[0]))
}

func TestRejectedTransitionsAreSilent(t *testing.T) {
	cases := []struct {
		name   string
		svc    *stubService
		action string
		data   gin.H
	}{
		{"wrong phase clue", &stubService{clueErr: game.ErrWrongPhase}, "give_clue", gin.H{"roomId": "alpha", "number": 2}},
		{"flip after game over", &stubService{flipErr: game.ErrGameOver}, "flip_card", gin.H{"roomId": "alpha", "cardId": 3}},
		{"flip revealed card", &stubService{flipErr: game.ErrCardRevealed}, "flip_card", gin.H{"roomId": "alpha", "cardId": 3}},
		{"end turn in clue phase", &stubService{endErr: game.ErrWrongPhase}, "end_turn", gin.H{"roomId": "alpha"}},
		{"reset with bad secret", &stubService{resetErr: room.ErrBadSecret}, "reset_game", gin.H{"roomId": "alpha", "hostSecret": "wrong"}},
		{"max time wrong mode", &stubService{maxErr: game.ErrWrongMode}, "change_max_time", gin.H{"roomId": "alpha", "maxTime": 300}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			g, c := newTestGateway(tc.svc)
			g.handleCommand(c, tc.action, raw(t, tc.data))
			assert.Empty(t, drain(c))
			assert.Len(t, tc.svc.calls, 1)
		})
	}
}

func TestInvalidPayloadNeverReachesService(t *testing.T) {
	cases := []struct {
		name   string
		action string
		data   json.RawMessage
	}{
		{"malformed json", "give_clue", json.RawMessage(`{"roomId":`)},
		{"clue out of range", "give_clue", json.RawMessage(`{"roomId":"alpha","number":10}`)},
		{"negative card", "flip_card", json.RawMessage(`{"roomId":"alpha","cardId":-1}`)},
		{"missing secret", "reset_game", json.RawMessage(`{"roomId":"alpha"}`)},
		{"empty room id", "end_turn", json.RawMessage(`{"roomId":""}`)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := &stubService{}
			g, c := newTestGateway(svc)
			g.handleCommand(c, tc.action, tc.data)

			envs := drain(c)
			require.Len(t, envs, 1)
			assert.Equal(t, CodeInvalidPayload, errorCode(t, envs[0]))
			assert.Empty(t, svc.calls)
		})
	}
}

func TestLeaveRoomHasNoAck(t *testing.T) {
	svc := &stubService{}
	g, c := newTestGateway(svc)

	g.handleCommand(c, "leave_room", raw(t, gin.H{"roomId": "alpha"}))

	assert.Empty(t, drain(c))
	require.Len(t, svc.calls, 1)
	assert.Equal(t, "Leave", svc.calls[0].method)
	assert.Equal(t, []interface{}{"alpha", "conn-test"}, svc.calls[0].args)
}

func TestLeaveRoomUnsubscribes(t *testing.T) {
	svc := &stubService{pub: &room.PublicState{State: &game.State{RoomID: "alpha"}}}
	g, c := newTestGateway(svc)

	g.handleCommand(c, "join_room", raw(t, gin.H{"roomId": "alpha", "role": "TABLE", "nickname": "ada"}))
	require.Len(t, drain(c), 1)

	g.handleCommand(c, "leave_room", raw(t, gin.H{"roomId": "alpha"}))

	g.hub.Broadcast("alpha", room.ActionGameUpdate, svc.pub)
	assert.Empty(t, drain(c))
}

func TestHubBroadcastSkipsFullBuffers(t *testing.T) {
	hub := NewHub()
	fast := &Client{id: "fast", out: make(chan Envelope, 4), joined: make(map[string]struct{})}
	slow := &Client{id: "slow", out: make(chan Envelope, 1), joined: make(map[string]struct{})}
	hub.Join("alpha", fast)
	hub.Join("alpha", slow)

	hub.Broadcast("alpha", room.ActionTimerUpdate, 10)
	hub.Broadcast("alpha", room.ActionTimerUpdate, 9)

	assert.Len(t, drain(fast), 2)
	assert.Len(t, drain(slow), 1)
}

func TestHubDropRemovesEveryMembership(t *testing.T) {
	hub := NewHub()
	c := &Client{id: "c", out: make(chan Envelope, 4), joined: make(map[string]struct{})}
	hub.Join("alpha", c)
	hub.Join("beta", c)

	hub.Drop(c)

	hub.Broadcast("alpha", room.ActionTimerUpdate, 5)
	hub.Broadcast("beta", room.ActionTimerUpdate, 5)
	assert.Empty(t, drain(c))
	assert.Empty(t, c.joined)
}
