package service

import "github.com/Chifaaan/kdmpxkfa/internal/model"

// Event is an internal order lifecycle event. Gateway vocabulary is mapped
// onto these at the webhook boundary; internal flows raise them directly.
type Event string

const (
	// raised internally
	EventPlaced   Event = "placed"   // gateway order armed for payment
	EventAccepted Event = "accepted" // non-gateway order accepted for fulfillment
	EventExpire   Event = "expire"   // expiry timer fired

	// raised by gateway notifications
	EventSettled  Event = "settled"
	EventFlagged  Event = "flagged"
	EventDeferred Event = "deferred"
	EventDenied   Event = "denied"
	EventTimedOut Event = "timed_out"
	EventVoided   Event = "voided"
)

// EventForNotification translates the gateway's transaction/fraud status
// vocabulary into an internal event. The second return is false for signals
// this system does not act on.
func EventForNotification(transactionStatus, fraudStatus string) (Event, bool) {
	switch transactionStatus {
	case "capture":
		if fraudStatus == "challenge" {
			return EventFlagged, true
		}
		// fraud_status defaults to accept when the gateway omits it
		return EventSettled, true
	case "settlement":
		return EventSettled, true
	case "pending":
		return EventDeferred, true
	case "deny":
		return EventDenied, true
	case "expire":
		return EventTimedOut, true
	case "cancel":
		return EventVoided, true
	}
	return "", false
}

// Transition returns the status that applying ev to current yields.
//
// A duplicate signal that would re-apply the current status (settlement on an
// already paid order, pending on pending) returns the current status with a
// nil error; callers detect next == current and skip the write and any side
// effects. Anything else that the table does not allow, including every event
// against cancelled or expired, returns ErrInvalidTransition.
func Transition(current model.OrderStatus, ev Event) (model.OrderStatus, error) {
	switch ev {
	case EventPlaced:
		if current == model.StatusCreated {
			return model.StatusPending, nil
		}
	case EventAccepted:
		if current == model.StatusCreated {
			return model.StatusProcessing, nil
		}
	case EventSettled:
		switch current {
		case model.StatusCreated, model.StatusPending, model.StatusProcessing, model.StatusChallenged:
			return model.StatusPaid, nil
		case model.StatusPaid:
			return model.StatusPaid, nil
		}
	case EventFlagged:
		switch current {
		case model.StatusCreated, model.StatusPending, model.StatusProcessing:
			return model.StatusChallenged, nil
		case model.StatusChallenged:
			return model.StatusChallenged, nil
		}
	case EventDeferred:
		switch current {
		case model.StatusCreated:
			return model.StatusPending, nil
		case model.StatusPending:
			return model.StatusPending, nil
		}
	case EventDenied, EventVoided:
		switch current {
		case model.StatusCreated, model.StatusPending, model.StatusProcessing, model.StatusChallenged:
			return model.StatusCancelled, nil
		}
	case EventTimedOut:
		switch current {
		case model.StatusCreated, model.StatusPending:
			return model.StatusExpired, nil
		}
	case EventExpire:
		// the internal timer only ever expires an order still pending
		if current == model.StatusPending {
			return model.StatusExpired, nil
		}
	}
	return current, ErrInvalidTransition
}
