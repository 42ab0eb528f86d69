// README: Turn orchestrator; extraction, model slot-filling, merge, decision, ranking.
package chat

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"smartdrive/internal/modules/catalog"
	"smartdrive/internal/modules/quota"
	"smartdrive/internal/modules/scoring"
	"smartdrive/internal/modules/session"
	"smartdrive/internal/modules/slotfill"
	"smartdrive/internal/modules/slots"
	"smartdrive/internal/observability"
)

var tracer = otel.Tracer("smartdrive/chat")

// SlotFiller proposes slot updates from the external model.
type SlotFiller interface {
	Fill(ctx context.Context, message string, current slots.Slots, lastAsked slots.Name) (slotfill.Proposal, error)
}

// Listings exposes the read-only collection being ranked.
type Listings interface {
	All() []catalog.Listing
}

// QuotaGuard consumes one turn for a session or refuses it.
type QuotaGuard interface {
	Use(ctx context.Context, sessionID string) error
}

type Options struct {
	// ResultLimit caps ranked results; zero means DefaultResultLimit.
	ResultLimit int
	// Quota is optional.
	Quota QuotaGuard
}

type Service struct {
	sessions *session.Store
	filler   SlotFiller
	listings Listings
	quota    QuotaGuard
	limit    int
}

func NewService(sessions *session.Store, filler SlotFiller, listings Listings, opts Options) *Service {
	if opts.ResultLimit <= 0 {
		opts.ResultLimit = DefaultResultLimit
	}
	return &Service{
		sessions: sessions,
		filler:   filler,
		listings: listings,
		quota:    opts.Quota,
		limit:    opts.ResultLimit,
	}
}

// Turn runs one conversation step for sessionID. The session is committed only when
// the turn succeeds; any error leaves it as it was.
func (s *Service) Turn(ctx context.Context, sessionID, message string) (*Reply, error) {
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return nil, ErrMissingSession
	}

	ctx, span := tracer.Start(ctx, "chat.turn")
	span.SetAttributes(attribute.String("session.id", sessionID))
	defer span.End()

	start := time.Now()
	log := observability.LoggerFromContext(ctx).With("session_id", sessionID)

	var reply *Reply
	committed, err := s.sessions.Update(sessionID, func(sess *session.Session) error {
		r, err := s.step(ctx, sess, message)
		if err != nil {
			return err
		}
		reply = r
		return nil
	})
	turnLatency.Observe(time.Since(start).Seconds())
	liveSessions.Set(float64(s.sessions.Len()))

	if err != nil {
		outcome := outcomeFor(err)
		turnsTotal.WithLabelValues(outcome).Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, outcome)
		log.Warn("turn failed", "outcome", outcome, "err", err)
		return nil, err
	}

	outcome := outcomeAsked
	if reply.Done {
		outcome = outcomeResults
		if len(reply.Cars) == 0 {
			outcome = outcomeNoResults
		}
	}
	turnsTotal.WithLabelValues(outcome).Inc()
	span.SetAttributes(attribute.Bool("turn.done", reply.Done), attribute.Int("turn.cars", len(reply.Cars)))
	log.Info("turn completed", "outcome", outcome, "turn", committed.Turns, "missing", reply.Missing)
	return reply, nil
}

// step computes the next session state in place and the reply to send.
func (s *Service) step(ctx context.Context, sess *session.Session, message string) (*Reply, error) {
	extracted := slots.Sanitize(slots.Extract(message, sess.Slots, sess.LastAsked))

	if s.quota != nil {
		if err := s.quota.Use(ctx, sess.Key); err != nil {
			return nil, err
		}
	}

	proposal, err := s.filler.Fill(ctx, message, extracted, sess.LastAsked)
	if err != nil {
		return nil, err
	}
	observability.LoggerFromContext(ctx).Debug("model proposal",
		"session_id", sess.Key, "model_done", proposal.Done, "updates", len(proposal.Updates))

	merged := Merge(extracted, proposal.Updates)
	missing, incomplete := slots.NextMissing(merged)

	sess.Slots = merged
	sess.LastAsked = missing
	sess.Turns++

	reply := &Reply{Slots: merged, Cars: []scoring.Result{}, Done: !incomplete, Missing: missing}
	if incomplete {
		reply.Assistant = slots.Question(missing)
		return reply, nil
	}

	reply.Cars = scoring.Rank(s.listings.All(), scoring.QueryFromSlots(merged), s.limit)
	if len(reply.Cars) == 0 {
		reply.Assistant = MessageNoResults
	} else {
		reply.Assistant = MessageResults
	}
	return reply, nil
}

func outcomeFor(err error) string {
	switch {
	case errors.Is(err, quota.ErrQuotaExceeded):
		return outcomeQuota
	case errors.Is(err, slotfill.ErrTransport):
		return outcomeModelTransport
	case errors.Is(err, slotfill.ErrMalformedReply):
		return outcomeModelMalformed
	default:
		return outcomeError
	}
}
