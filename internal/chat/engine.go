package chat

import (
	"context"
	"log/slog"
	"strings"

	"github.com/selimbz/partsbot/internal/catalog"
	"github.com/selimbz/partsbot/internal/resolver"
)

// TurnReply is the engine's answer to one user message.
type TurnReply struct {
	Reply       string          `json:"reply"`
	Suggestions []string        `json:"suggestions"`
	Data        []catalog.Entry `json:"data,omitempty"`
	Type        string          `json:"type"`
}

func textReply(reply string, suggestions ...string) TurnReply {
	return TurnReply{Reply: reply, Suggestions: suggestions, Type: "text"}
}

// Engine drives the conversation state machine. It owns no cross-
// session state beyond the injected stores; the HTTP handler serializes
// turns per session.
type Engine struct {
	sessions Sessions
	repo     Repo
	res      *resolver.Resolver
	catalog  catalog.Index
	leads    LeadNotifier // nil disables the handoff webhook
}

func NewEngine(sessions Sessions, repo Repo, res *resolver.Resolver, idx catalog.Index, leads LeadNotifier) *Engine {
	return &Engine{sessions: sessions, repo: repo, res: res, catalog: idx, leads: leads}
}

// HandleTurn runs one request/response cycle. Side-effect order is
// fixed: conversation row ensured and user message appended before
// processing, reply appended after, and the in-memory session commit is
// the very last step so a mid-turn fault leaves stored state untouched.
func (e *Engine) HandleTurn(ctx context.Context, sessionID, message string) TurnReply {
	sess := e.sessions.Get(sessionID)

	e.persist(ctx, sess)
	e.append(ctx, sess.ConversationID, "user", message)

	reply := e.step(ctx, &sess, message)

	e.append(ctx, sess.ConversationID, "bot", reply.Reply)
	e.sessions.Put(sessionID, sess)

	turns.WithLabelValues(string(sess.State)).Inc()
	return reply
}

// persist upserts the durable conversation row. Persistence failures
// are logged and never abort the turn.
func (e *Engine) persist(ctx context.Context, sess Session) {
	if err := e.repo.UpsertConversation(ctx, sess); err != nil {
		slog.Error("conversation upsert failed", "conversation_id", sess.ConversationID, "err", err)
	}
}

func (e *Engine) append(ctx context.Context, conversationID, role, content string) {
	if err := e.repo.AppendMessage(ctx, conversationID, role, content); err != nil {
		slog.Error("transcript append failed", "conversation_id", conversationID, "role", role, "err", err)
	}
}

func (e *Engine) step(ctx context.Context, sess *Session, message string) TurnReply {
	event := classifyIntent(sess.State, message)

	switch sess.State {
	case StateWelcome:
		if event == EventStartSearch {
			sess.State = StateAskVehicle
			return textReply(replyAskVehicle)
		}
		return textReply(replyWelcome, suggestionsWelcome...)

	case StateAskVehicle:
		return e.stepAskVehicle(ctx, sess, message)

	case StateConfirmVehicle:
		switch event {
		case EventConfirm:
			sess.Brand = sess.Pending.Brand
			sess.Model = sess.Pending.Model
			sess.Year = sess.Pending.Year
			sess.Pending = Pending{}
			sess.State = StateAskSearchType
			e.persist(ctx, *sess)
			return textReply(replyVehicleConfirmed(sess.Brand, sess.Model, sess.Year), suggestionsSearchType...)
		case EventReject:
			sess.Pending = Pending{}
			sess.State = StateAskVehicle
			return textReply("**No problem!** Let's try again.\n\n" + replyVehicleReprompt)
		default:
			return textReply(replyConfirmReprompt, suggestionsYesNo...)
		}

	case StateAskSearchType:
		switch event {
		case EventChooseReference:
			sess.SearchMode = SearchByReference
			sess.State = StateAskReference
			return textReply(replyAskReference)
		case EventChoosePartName:
			sess.SearchMode = SearchByPartName
			sess.State = StateAskPartName
			return textReply(replyAskPartName)
		default:
			return textReply(replyAskSearchType, suggestionsSearchType...)
		}

	case StateAskReference:
		return e.stepAskReference(ctx, sess, message)

	case StateConfirmReference:
		switch event {
		case EventConfirm:
			sess.Reference = sess.Pending.Reference
			sess.Found = true
			product := sess.Pending.Product
			sess.Pending = Pending{}
			sess.State = StateAskOrder
			e.persist(ctx, *sess)
			reply := textReply(replyReferenceCommitted(product), suggestionsOrder...)
			if product != nil {
				reply.Data = []catalog.Entry{*product}
				reply.Type = "parts"
			}
			return reply
		case EventReject:
			sess.Pending = Pending{}
			sess.State = StateAskReference
			return textReply(replyAskReference)
		default:
			return textReply(replyConfirmReprompt, suggestionsYesNo...)
		}

	case StateAskPartName:
		if strings.TrimSpace(message) == "" {
			return textReply(replyAskPartName)
		}
		v := e.res.Resolve(ctx, resolver.KindPart, message, resolver.Scope{Brand: sess.Brand})
		sess.Pending.PartName = v.Value
		sess.State = StateConfirmPart
		if v.Status == resolver.StatusValid {
			return textReply(replyPartValid(v.Value), suggestionsYesNo...)
		}
		return textReply(replyPartSuggestion(v.Value), suggestionsYesNo...)

	case StateConfirmPart:
		if event == EventConfirm {
			return e.commitPart(ctx, sess)
		}
		// anything but a yes returns to the part prompt with staging cleared
		sess.Pending = Pending{}
		sess.State = StateAskPartName
		return textReply("**Let's try again.** What spare part are you looking for?")

	case StateAskOrder:
		switch event {
		case EventOrderNow:
			sess.State = StateAskContact
			return textReply(replyAskPhone)
		case EventContinueShopping:
			sess.State = StateWelcome
			return textReply(replyContinueShopping, suggestionsSearch...)
		default:
			return textReply(replyAskOrderReprompt, suggestionsOrder...)
		}

	case StateAskContact:
		phone, ok := extractPhone(message)
		if !ok {
			return textReply(replyPhoneReprompt)
		}
		sess.Phone = phone
		sess.State = StateAskEmail
		e.persist(ctx, *sess)
		return textReply(replyAskEmail, suggestionsSkip...)

	case StateAskEmail:
		if event == EventSkip {
			return e.completeOrder(ctx, sess)
		}
		email, ok := extractEmail(message)
		if !ok {
			return textReply(replyEmailReprompt, suggestionsSkip...)
		}
		sess.Email = email
		return e.completeOrder(ctx, sess)

	case StateCompleteOrder:
		switch event {
		case EventSearchMore:
			sess.softReset()
			e.persist(ctx, *sess)
			return textReply(replySearchMore)
		case EventStartNew:
			sess.hardReset()
			e.persist(ctx, *sess)
			return textReply(replyWelcome, suggestionsSearch...)
		default:
			return textReply(replyCompleteReprompt, suggestionsComplete...)
		}
	}

	// defensive fallback for an unknown state
	slog.Warn("unknown conversation state, resetting", "state", sess.State)
	sess.State = StateWelcome
	return textReply(replyLostTrack, suggestionsSearch...)
}

func (e *Engine) stepAskVehicle(ctx context.Context, sess *Session, message string) TurnReply {
	vehicle, ok := e.res.ResolveVehicle(ctx, message)
	if !ok {
		return textReply(replyVehicleReprompt)
	}

	switch vehicle.Status() {
	case resolver.StatusValid:
		sess.Brand = vehicle.Brand.Value
		sess.Model = vehicle.Model.Value
		sess.Year = vehicle.Year
		sess.State = StateAskSearchType
		e.persist(ctx, *sess)
		return textReply(replyVehicleConfirmed(sess.Brand, sess.Model, sess.Year), suggestionsSearchType...)
	case resolver.StatusSuggestion:
		sess.Pending = Pending{
			Brand: vehicle.Brand.Value,
			Model: vehicle.Model.Value,
			Year:  vehicle.Year,
		}
		sess.State = StateConfirmVehicle
		return textReply(replyVehicleSuggestion(vehicle.Brand.Value, vehicle.Model.Value), suggestionsYesNo...)
	default:
		return textReply(replyVehicleUnknown(strings.TrimSpace(message)))
	}
}

func (e *Engine) stepAskReference(ctx context.Context, sess *Session, message string) TurnReply {
	reference := strings.ToUpper(strings.TrimSpace(message))
	if reference == "" {
		return textReply(replyAskReference)
	}
	entries := e.res.ResolveReference(ctx, reference)

	if len(entries) == 0 {
		// strict policy: no oracle for references, straight to contact capture
		sess.Found = false
		sess.State = StateAskContact
		return textReply(replyAskContact)
	}

	product := entries[0]
	sess.Pending.Reference = reference
	sess.Pending.Product = &product
	sess.State = StateConfirmReference

	reply := textReply(replyReferenceFound(reference, sess.Brand, sess.Model, product), suggestionsYesNo...)
	reply.Type = "parts"
	if len(entries) > 3 {
		entries = entries[:3]
	}
	reply.Data = entries
	return reply
}

func (e *Engine) commitPart(ctx context.Context, sess *Session) TurnReply {
	sess.PartName = sess.Pending.PartName
	sess.Pending = Pending{}

	entries, err := e.catalog.FindProducts(ctx, catalog.Filter{
		Brand:    sess.Brand,
		Model:    sess.Model,
		PartText: sess.PartName,
	})
	if err != nil {
		slog.Warn("part search degraded", "err", err)
	}

	if len(entries) == 0 {
		sess.Found = false
		sess.State = StateAskContact
		e.persist(ctx, *sess)
		return textReply(replyAskContact)
	}

	sess.Found = true
	sess.State = StateAskOrder
	e.persist(ctx, *sess)

	reply := textReply(replyPartFound(sess, entries[0]), suggestionsOrder...)
	reply.Type = "parts"
	if len(entries) > 3 {
		entries = entries[:3]
	}
	reply.Data = entries
	return reply
}

func (e *Engine) completeOrder(ctx context.Context, sess *Session) TurnReply {
	sess.State = StateCompleteOrder
	e.persist(ctx, *sess)
	e.notifyLead(*sess)
	return textReply(replyOrderSummary(sess), suggestionsComplete...)
}

// notifyLead hands the captured lead to the webhook, fire-and-forget:
// it never blocks or fails the turn.
func (e *Engine) notifyLead(sess Session) {
	if e.leads == nil {
		return
	}
	lead := Lead{
		ConversationID: sess.ConversationID,
		Brand:          sess.Brand,
		Model:          sess.Model,
		Year:           sess.Year,
		PartName:       sess.PartName,
		Reference:      sess.Reference,
		Phone:          sess.Phone,
		Email:          sess.Email,
		Found:          sess.Found,
	}
	go func() {
		if err := e.leads.NotifyLead(context.Background(), lead); err != nil {
			slog.Error("lead webhook failed", "conversation_id", lead.ConversationID, "err", err)
		}
	}()
}
