package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	socketio "github.com/googollee/go-socket.io"
	"github.com/googollee/go-socket.io/engineio"
	"github.com/googollee/go-socket.io/engineio/transport"
	"github.com/googollee/go-socket.io/engineio/transport/polling"
	"github.com/googollee/go-socket.io/engineio/transport/websocket"

	"github.com/Zaibten/Smart-Labor-Hiring-Management-System-for-Textile-Industry/internal/metrics"
	"github.com/Zaibten/Smart-Labor-Hiring-Management-System-for-Textile-Industry/internal/presence"
	"github.com/Zaibten/Smart-Labor-Hiring-Management-System-for-Textile-Industry/internal/relay"
	"github.com/Zaibten/Smart-Labor-Hiring-Management-System-for-Textile-Industry/pkg/logger"
)

// InitSocketServer wires the real-time channel: presence registration on
// "join", live chat fan-out and call signaling through the relay, and
// presence cleanup on disconnect.
//
// The chat-message event is a live-delivery notification only; clients
// persist through POST /api/chat/send separately. The two paths are not
// transactionally linked.
func InitSocketServer(table *presence.Table, svc *relay.Service) *socketio.Server {
	server := socketio.NewServer(&engineio.Options{
		Transports: []transport.Transport{
			&websocket.Transport{
				CheckOrigin: func(r *http.Request) bool { return true },
			},
			&polling.Transport{
				CheckOrigin: func(r *http.Request) bool { return true },
			},
		},
	})

	server.OnConnect("/", func(s socketio.Conn) error {
		s.SetContext("")
		logger.Debug().Str("socket_id", s.ID()).Msg("Socket connected")
		return nil
	})

	// A client announces itself with its email. No auth on this channel:
	// the mobile clients send a bare identifier on join.
	server.OnEvent("/", "join", func(s socketio.Conn, email string) {
		if email == "" {
			return
		}
		s.SetContext(email)
		table.Register(email, s)
		metrics.ConnectedUsers.Set(float64(table.Len()))
		logger.Info().Str("email", email).Str("socket_id", s.ID()).Msg("User joined")
	})

	server.OnEvent("/", "chat-message", func(s socketio.Conn, env relay.ChatEnvelope) {
		// Fire-and-forget: the sender gets no signal either way
		svc.RelayChat(env)
	})

	server.OnEvent("/", "call-user", func(s socketio.Conn, offer relay.CallOffer) {
		svc.RelayCallOffer(offer)
	})

	server.OnEvent("/", "accept-call", func(s socketio.Conn, answer relay.CallAnswer) {
		svc.RelayCallAnswer(answer)
	})

	server.OnDisconnect("/", func(s socketio.Conn, reason string) {
		if email, ok := table.Unregister(s); ok {
			logger.Info().Str("email", email).Str("reason", reason).Msg("User disconnected")
		}
		metrics.ConnectedUsers.Set(float64(table.Len()))
	})

	server.OnError("/", func(s socketio.Conn, e error) {
		logger.Warn().Err(e).Msg("Socket error")
	})

	go server.Serve()
	return server
}

// SocketHandler wraps the socket.io server for gin
func SocketHandler(server *socketio.Server) gin.HandlerFunc {
	return func(c *gin.Context) {
		server.ServeHTTP(c.Writer, c.Request)
	}
}
