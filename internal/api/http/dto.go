package http

type StatsResponse struct {
	Rooms       int   `json:"rooms"`
	Connections int64 `json:"connections"`
}
