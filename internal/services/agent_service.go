package services

import (
	"context"
	"errors"
	"fmt"

	"movi/internal/domain"
	"movi/internal/domain/models"
	"movi/internal/intent"
	"movi/internal/pending"
	"movi/internal/utils"
)

const (
	msgNoPending      = "No pending action found (maybe expired)."
	msgUnknownPending = "Unknown pending action."
)

// AgentResponse is the reply rendered by the chat widget. OK=false with a
// message covers clarification, not-found and unrecognized outcomes; store
// faults are returned as errors instead.
type AgentResponse struct {
	OK                    bool               `json:"ok"`
	Message               string             `json:"message"`
	Intent                intent.Kind        `json:"intent,omitempty"`
	RequiresClarification bool               `json:"requiresClarification,omitempty"`
	ConfirmationRequired  bool               `json:"confirmationRequired,omitempty"`
	PendingID             string             `json:"pendingId,omitempty"`
	Trip                  *models.Trip       `json:"trip,omitempty"`
	Bookings              *int               `json:"bookings,omitempty"`
	Deployment            *models.Deployment `json:"deployment,omitempty"`
	Deleted               *int64             `json:"deleted,omitempty"`
	Cancelled             *int64             `json:"cancelled,omitempty"`
}

// AgentService runs classified operator instructions against the store.
type AgentService struct {
	Classifier intent.Classifier
	Resolver   TripResolver
	Gateway    FleetGateway
	Pending    pending.Store
}

func (s AgentService) resolver() TripResolver {
	if s.Resolver != nil {
		return s.Resolver
	}
	return Resolver{}
}

func (s AgentService) gateway() FleetGateway {
	if s.Gateway != nil {
		return s.Gateway
	}
	return Gateway{}
}

// Handle classifies in and executes the resulting intent. requestID is
// only used for logging.
func (s AgentService) Handle(ctx context.Context, requestID string, in intent.Input) (AgentResponse, error) {
	it := s.Classifier.Classify(in)
	utils.LogEvent(requestID, "agent", "classify",
		fmt.Sprintf("intent=%s clarify=%t candidate=%q", it.Kind, it.RequiresClarification, utils.Truncate(it.Candidate, 80)))

	if it.RequiresClarification {
		return AgentResponse{OK: false, Intent: it.Kind, RequiresClarification: true, Message: it.Message}, nil
	}

	switch it.Kind {
	case intent.KindConfirm:
		return s.confirm(ctx, requestID, it.Token)
	case intent.KindStatus:
		return s.status(ctx, it.Candidate)
	case intent.KindRemoveVehicle:
		return s.removeVehicle(ctx, requestID, it.Candidate)
	default:
		return AgentResponse{OK: false, Intent: intent.KindUnrecognized, Message: intent.HelpMessage}, nil
	}
}

func (s AgentService) status(ctx context.Context, candidate string) (AgentResponse, error) {
	trip, found, err := s.resolver().ResolveTrip(ctx, candidate)
	if err != nil {
		return AgentResponse{}, storeFault(err)
	}
	if !found {
		return s.tripNotFound(ctx, intent.KindStatus, candidate), nil
	}

	count, err := s.gateway().CountConfirmedBookings(ctx, trip.ID)
	if err != nil {
		return AgentResponse{}, storeFault(err)
	}
	dep, err := s.gateway().FindDeployment(ctx, trip.ID)
	if err != nil {
		return AgentResponse{}, storeFault(err)
	}

	vehicle := "no vehicle assigned"
	if dep != nil {
		vehicle = fmt.Sprintf("vehicle %d assigned (driver %d)", dep.VehicleID, dep.DriverID)
	}
	return AgentResponse{
		OK:         true,
		Intent:     intent.KindStatus,
		Message:    fmt.Sprintf("Trip %q has %d confirmed booking(s); %s.", trip.DisplayName, count, vehicle),
		Trip:       &trip,
		Bookings:   &count,
		Deployment: dep,
	}, nil
}

func (s AgentService) removeVehicle(ctx context.Context, requestID, candidate string) (AgentResponse, error) {
	trip, found, err := s.resolver().ResolveTrip(ctx, candidate)
	if err != nil {
		return AgentResponse{}, storeFault(err)
	}
	if !found {
		return s.tripNotFound(ctx, intent.KindRemoveVehicle, candidate), nil
	}

	dep, err := s.gateway().FindDeployment(ctx, trip.ID)
	if err != nil {
		return AgentResponse{}, storeFault(err)
	}
	if dep == nil {
		return AgentResponse{
			OK:      false,
			Intent:  intent.KindRemoveVehicle,
			Message: fmt.Sprintf("No vehicle currently deployed for trip %q.", trip.DisplayName),
			Trip:    &trip,
		}, nil
	}

	count, err := s.gateway().CountConfirmedBookings(ctx, trip.ID)
	if err != nil {
		return AgentResponse{}, storeFault(err)
	}

	if count == 0 {
		deleted, err := s.gateway().DeleteDeployment(ctx, dep.ID)
		if err != nil {
			return AgentResponse{}, storeFault(err)
		}
		utils.LogEvent(requestID, "agent", "remove_vehicle",
			fmt.Sprintf("trip_id=%d deployment_id=%d deleted=%d", trip.ID, dep.ID, deleted))
		return AgentResponse{
			OK:      true,
			Intent:  intent.KindRemoveVehicle,
			Message: fmt.Sprintf("Vehicle removed from %q (deployment %d).", trip.DisplayName, dep.ID),
			Trip:    &trip,
			Deleted: &deleted,
		}, nil
	}

	if s.Pending == nil {
		return AgentResponse{}, domain.InternalError{Msg: "pending store not configured"}
	}
	p, err := s.Pending.Create(models.ActionRemoveVehicle, models.PendingDetails{
		TripID:       trip.ID,
		DeploymentID: dep.ID,
		Bookings:     count,
	})
	if err != nil {
		return AgentResponse{}, domain.InternalError{Msg: "could not store pending action", Err: err}
	}
	utils.LogEvent(requestID, "agent", "pending_create",
		fmt.Sprintf("pending_id=%s trip_id=%d deployment_id=%d bookings=%d", p.ID, trip.ID, dep.ID, count))

	return AgentResponse{
		OK:                   true,
		Intent:               intent.KindRemoveVehicle,
		ConfirmationRequired: true,
		PendingID:            p.ID,
		Message: fmt.Sprintf(
			"I can remove the vehicle from %q. However, this trip has %d confirmed booking(s). "+
				"Removing the vehicle will cancel those bookings. Do you want to proceed? "+
				"Reply with \"yes\" and include pendingId: %s",
			trip.DisplayName, count, p.ID),
		Trip:       &trip,
		Bookings:   &count,
		Deployment: dep,
	}, nil
}

func (s AgentService) confirm(ctx context.Context, requestID, token string) (AgentResponse, error) {
	if s.Pending == nil {
		return AgentResponse{}, domain.InternalError{Msg: "pending store not configured"}
	}
	p, ok := s.Pending.Take(token)
	if !ok {
		utils.LogEvent(requestID, "agent", "pending_missing", "pending_id="+token)
		return AgentResponse{OK: false, Intent: intent.KindConfirm, Message: msgNoPending}, nil
	}

	switch p.Action {
	case models.ActionRemoveVehicle:
		tripID, depID := p.Details.TripID, p.Details.DeploymentID
		deleted, cancelled, err := s.gateway().RemoveVehicle(ctx, tripID, depID)
		if err != nil {
			// Nothing was committed; keep the token redeemable for a retry.
			s.Pending.Restore(p)
			return AgentResponse{}, storeFault(err)
		}
		utils.LogEvent(requestID, "agent", "pending_confirm",
			fmt.Sprintf("pending_id=%s trip_id=%d deployment_id=%d deleted=%d cancelled=%d", p.ID, tripID, depID, deleted, cancelled))
		return AgentResponse{
			OK:        true,
			Intent:    intent.KindConfirm,
			Message:   fmt.Sprintf("Removed vehicle (deployment %d) from trip %d. Cancelled %d bookings.", depID, tripID, cancelled),
			Deleted:   &deleted,
			Cancelled: &cancelled,
		}, nil
	default:
		return AgentResponse{OK: false, Intent: intent.KindConfirm, Message: msgUnknownPending}, nil
	}
}

func (s AgentService) tripNotFound(ctx context.Context, kind intent.Kind, candidate string) AgentResponse {
	msg := fmt.Sprintf("Couldn't find a trip matching %q.", candidate)
	if hint := s.resolver().Suggest(ctx, candidate); hint != "" {
		msg += fmt.Sprintf(" Did you mean %q?", hint)
	}
	return AgentResponse{OK: false, Intent: kind, Message: msg}
}

func storeFault(err error) error {
	var ie domain.InternalError
	if errors.As(err, &ie) {
		return err
	}
	return domain.InternalError{Msg: "store access failed", Err: err}
}
