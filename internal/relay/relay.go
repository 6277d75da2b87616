package relay

import (
	"github.com/Zaibten/Smart-Labor-Hiring-Management-System-for-Textile-Industry/internal/metrics"
	"github.com/Zaibten/Smart-Labor-Hiring-Management-System-for-Textile-Industry/internal/presence"
	"github.com/Zaibten/Smart-Labor-Hiring-Management-System-for-Textile-Industry/pkg/logger"
)

// Outcome reports what happened to a relayed event. An Offline outcome is
// never surfaced to the sending client; it exists so callers, logs and
// metrics can observe the drop, and so a store-and-forward fallback could
// be added without changing the relay contract.
type Outcome int

const (
	Delivered Outcome = iota
	Offline
)

// ChatEnvelope is a live chat notification. Delivery here is best-effort
// and decoupled from persistence: durability rides the REST send endpoint.
type ChatEnvelope struct {
	SenderEmail   string `json:"senderEmail"`
	ReceiverEmail string `json:"receiverEmail"`
	Message       string `json:"message"`
}

// CallOffer initiates a call. SignalData is an opaque signaling payload
// (e.g. a WebRTC offer) that the relay forwards untouched.
type CallOffer struct {
	From       string      `json:"from"`
	To         string      `json:"to"`
	SignalData interface{} `json:"signalData"`
}

// CallAnswer accepts a call. From identifies the original caller being
// answered.
type CallAnswer struct {
	From       string      `json:"from"`
	SignalData interface{} `json:"signalData"`
}

// Service fans transient events out to recipients' connections, addressed
// through the presence table. It never persists anything and never queues
// for offline recipients.
type Service struct {
	presence *presence.Table
}

func New(table *presence.Table) *Service {
	return &Service{presence: table}
}

// RelayChat forwards a chat message to the receiver's connection if one is
// registered.
func (s *Service) RelayChat(env ChatEnvelope) Outcome {
	conn, ok := s.presence.Lookup(env.ReceiverEmail)
	if !ok {
		return s.dropped("chat-message", env.SenderEmail, env.ReceiverEmail)
	}

	conn.Emit("chat-message", map[string]interface{}{
		"senderEmail":   env.SenderEmail,
		"receiverEmail": env.ReceiverEmail,
		"message":       env.Message,
	})
	metrics.RelayDelivered.WithLabelValues("chat-message").Inc()
	return Delivered
}

// RelayCallOffer rings the callee with an incoming-call event. An offline
// callee simply never rings; the caller gets no signal either way.
func (s *Service) RelayCallOffer(offer CallOffer) Outcome {
	conn, ok := s.presence.Lookup(offer.To)
	if !ok {
		return s.dropped("call-user", offer.From, offer.To)
	}

	conn.Emit("incoming-call", map[string]interface{}{
		"from":       offer.From,
		"signalData": offer.SignalData,
	})
	metrics.RelayDelivered.WithLabelValues("call-user").Inc()
	return Delivered
}

// RelayCallAnswer forwards the answer payload back to the original caller.
func (s *Service) RelayCallAnswer(answer CallAnswer) Outcome {
	conn, ok := s.presence.Lookup(answer.From)
	if !ok {
		return s.dropped("accept-call", "", answer.From)
	}

	conn.Emit("call-accepted", map[string]interface{}{
		"signalData": answer.SignalData,
	})
	metrics.RelayDelivered.WithLabelValues("accept-call").Inc()
	return Delivered
}

func (s *Service) dropped(event, from, to string) Outcome {
	logger.Debug().
		Str("event", event).
		Str("from", from).
		Str("to", to).
		Msg("recipient offline, event dropped")
	metrics.RelayDropped.WithLabelValues(event).Inc()
	return Offline
}
