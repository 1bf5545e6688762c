package services

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"movi/internal/domain"
	"movi/internal/domain/models"
	"movi/internal/intent"
	"movi/internal/pending"
)

type fakeResolver struct {
	trips []models.Trip
	err   error
}

func (f fakeResolver) ResolveTrip(_ context.Context, text string) (models.Trip, bool, error) {
	if f.err != nil {
		return models.Trip{}, false, f.err
	}
	needle := strings.ToLower(strings.TrimSpace(text))
	for _, t := range f.trips {
		if strings.Contains(strings.ToLower(t.DisplayName), needle) {
			return t, true, nil
		}
	}
	return models.Trip{}, false, nil
}

func (f fakeResolver) Suggest(_ context.Context, text string) string {
	names := make([]string, 0, len(f.trips))
	for _, t := range f.trips {
		names = append(names, t.DisplayName)
	}
	return ClosestName(text, names)
}

type fakeGateway struct {
	mu          sync.Mutex
	deployments map[int64]*models.Deployment
	confirmed   map[int64]int
	removeErr   error
	removeCalls int
}

func (g *fakeGateway) CountConfirmedBookings(_ context.Context, tripID int64) (int, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.confirmed[tripID], nil
}

func (g *fakeGateway) FindDeployment(_ context.Context, tripID int64) (*models.Deployment, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	d, ok := g.deployments[tripID]
	if !ok {
		return nil, nil
	}
	cp := *d
	return &cp, nil
}

func (g *fakeGateway) CancelConfirmedBookings(_ context.Context, tripID int64) (int64, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	n := g.confirmed[tripID]
	g.confirmed[tripID] = 0
	return int64(n), nil
}

func (g *fakeGateway) DeleteDeployment(_ context.Context, deploymentID int64) (int64, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	for tripID, d := range g.deployments {
		if d.ID == deploymentID {
			delete(g.deployments, tripID)
			return 1, nil
		}
	}
	return 0, nil
}

func (g *fakeGateway) RemoveVehicle(ctx context.Context, tripID, deploymentID int64) (int64, int64, error) {
	g.mu.Lock()
	g.removeCalls++
	err := g.removeErr
	g.mu.Unlock()
	if err != nil {
		return 0, 0, err
	}
	deleted, _ := g.DeleteDeployment(ctx, deploymentID)
	cancelled, _ := g.CancelConfirmedBookings(ctx, tripID)
	return deleted, cancelled, nil
}

func newAgentFixture() (AgentService, *fakeGateway, *pending.MemoryStore) {
	trips := []models.Trip{
		{ID: 1, DisplayName: "Bulk - 00:01"},
		{ID: 2, DisplayName: "NoShow - BTS - 13:00"},
		{ID: 3, DisplayName: "Path Path - 09:30"},
	}
	gw := &fakeGateway{
		deployments: map[int64]*models.Deployment{
			1: {ID: 10, TripID: 1, VehicleID: 100, DriverID: 200},
			2: {ID: 20, TripID: 2, VehicleID: 101, DriverID: 201},
		},
		confirmed: map[int64]int{1: 3, 2: 0, 3: 0},
	}
	store := pending.NewMemoryStore(time.Minute, time.Minute)
	svc := AgentService{
		Classifier: intent.NewClassifier([]string{"busDashboard"}),
		Resolver:   fakeResolver{trips: trips},
		Gateway:    gw,
		Pending:    store,
	}
	return svc, gw, store
}

func TestAgentRemoveVehicle_NoBookingsRemovesImmediately(t *testing.T) {
	svc, gw, store := newAgentFixture()

	resp, err := svc.Handle(context.Background(), "req-1", intent.Input{Text: "Remove vehicle from NoShow - BTS - 13:00"})
	if err != nil {
		t.Fatalf("Handle error: %v", err)
	}
	if !resp.OK || resp.ConfirmationRequired {
		t.Fatalf("expected immediate removal, got %+v", resp)
	}
	if resp.Message != `Vehicle removed from "NoShow - BTS - 13:00" (deployment 20).` {
		t.Fatalf("unexpected message %q", resp.Message)
	}
	if resp.Deleted == nil || *resp.Deleted != 1 {
		t.Fatalf("expected deleted=1, got %v", resp.Deleted)
	}
	if _, ok := gw.deployments[2]; ok {
		t.Fatalf("deployment should be gone")
	}
	if store.Len() != 0 {
		t.Fatalf("no pending action expected, got %d", store.Len())
	}
}

func TestAgentRemoveVehicle_WithBookingsThenConfirm(t *testing.T) {
	svc, gw, store := newAgentFixture()
	ctx := context.Background()

	resp, err := svc.Handle(ctx, "req-1", intent.Input{Text: "Remove vehicle from Bulk - 00:01"})
	if err != nil {
		t.Fatalf("Handle error: %v", err)
	}
	if !resp.OK || !resp.ConfirmationRequired {
		t.Fatalf("expected confirmation request, got %+v", resp)
	}
	if !strings.HasPrefix(resp.PendingID, "p_") {
		t.Fatalf("unexpected pending id %q", resp.PendingID)
	}
	if resp.Bookings == nil || *resp.Bookings != 3 {
		t.Fatalf("expected bookings=3, got %v", resp.Bookings)
	}
	if !strings.Contains(resp.Message, "3 confirmed booking(s)") || !strings.Contains(resp.Message, resp.PendingID) {
		t.Fatalf("message should mention bookings and token: %q", resp.Message)
	}
	if _, ok := gw.deployments[1]; !ok {
		t.Fatalf("nothing may change before confirmation")
	}

	resp, err = svc.Handle(ctx, "req-2", intent.Input{Text: "yes", PendingID: resp.PendingID})
	if err != nil {
		t.Fatalf("confirm error: %v", err)
	}
	if !resp.OK || resp.Intent != intent.KindConfirm {
		t.Fatalf("expected confirmation success, got %+v", resp)
	}
	if resp.Message != "Removed vehicle (deployment 10) from trip 1. Cancelled 3 bookings." {
		t.Fatalf("unexpected message %q", resp.Message)
	}
	if resp.Cancelled == nil || *resp.Cancelled != 3 || resp.Deleted == nil || *resp.Deleted != 1 {
		t.Fatalf("unexpected counts %+v", resp)
	}
	if store.Len() != 0 {
		t.Fatalf("token should be consumed")
	}

	resp, err = svc.Handle(ctx, "req-3", intent.Input{Text: "status of Bulk - 00:01"})
	if err != nil {
		t.Fatalf("status error: %v", err)
	}
	if !resp.OK || resp.Intent != intent.KindStatus {
		t.Fatalf("expected status reply, got %+v", resp)
	}
	if resp.Bookings == nil || *resp.Bookings != 0 || resp.Deployment != nil {
		t.Fatalf("expected no bookings and no deployment after removal, got %+v", resp)
	}
	if resp.Message != `Trip "Bulk - 00:01" has 0 confirmed booking(s); no vehicle assigned.` {
		t.Fatalf("unexpected message %q", resp.Message)
	}
}

func TestAgentConfirm_TokenIsSingleUse(t *testing.T) {
	svc, gw, _ := newAgentFixture()
	ctx := context.Background()

	first, err := svc.Handle(ctx, "req-1", intent.Input{Text: "Remove vehicle from Bulk - 00:01"})
	if err != nil {
		t.Fatalf("Handle error: %v", err)
	}

	var wg sync.WaitGroup
	results := make([]AgentResponse, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], _ = svc.Handle(ctx, "req-c", intent.Input{Text: "confirm", PendingID: first.PendingID})
		}(i)
	}
	wg.Wait()

	ok := 0
	for _, r := range results {
		if r.OK {
			ok++
		} else if r.Message != msgNoPending {
			t.Fatalf("unexpected loser message %q", r.Message)
		}
	}
	if ok != 1 {
		t.Fatalf("expected exactly one successful confirmation, got %d", ok)
	}
	if gw.removeCalls != 1 {
		t.Fatalf("expected one removal, got %d", gw.removeCalls)
	}
}

func TestAgentConfirm_UnknownToken(t *testing.T) {
	svc, _, _ := newAgentFixture()

	resp, err := svc.Handle(context.Background(), "req-1", intent.Input{Text: "yes", PendingID: "p_does_not_exist"})
	if err != nil {
		t.Fatalf("Handle error: %v", err)
	}
	if resp.OK || resp.Message != "No pending action found (maybe expired)." {
		t.Fatalf("unexpected response %+v", resp)
	}
}

func TestAgentConfirm_FailureKeepsToken(t *testing.T) {
	svc, gw, store := newAgentFixture()
	ctx := context.Background()

	first, err := svc.Handle(ctx, "req-1", intent.Input{Text: "Remove vehicle from Bulk - 00:01"})
	if err != nil {
		t.Fatalf("Handle error: %v", err)
	}

	gw.removeErr = errors.New("connection reset")
	_, err = svc.Handle(ctx, "req-2", intent.Input{Text: "yes", PendingID: first.PendingID})
	if err == nil || !domain.IsInternal(err) {
		t.Fatalf("expected internal error, got %v", err)
	}
	if _, ok := store.Get(first.PendingID); !ok {
		t.Fatalf("token should survive a failed confirmation")
	}

	gw.removeErr = nil
	resp, err := svc.Handle(ctx, "req-3", intent.Input{Text: "yes", PendingID: first.PendingID})
	if err != nil || !resp.OK {
		t.Fatalf("retry should succeed, resp=%+v err=%v", resp, err)
	}
}

func TestAgentConfirm_UnknownAction(t *testing.T) {
	svc, _, store := newAgentFixture()

	p, err := store.Create("reassign_driver", models.PendingDetails{TripID: 1})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	resp, err := svc.Handle(context.Background(), "req-1", intent.Input{Text: "proceed", PendingID: p.ID})
	if err != nil {
		t.Fatalf("Handle error: %v", err)
	}
	if resp.OK || resp.Message != "Unknown pending action." {
		t.Fatalf("unexpected response %+v", resp)
	}
}

func TestAgentStatus(t *testing.T) {
	svc, _, _ := newAgentFixture()
	ctx := context.Background()

	resp, err := svc.Handle(ctx, "req-1", intent.Input{Text: "status of Bulk - 00:01"})
	if err != nil {
		t.Fatalf("Handle error: %v", err)
	}
	want := `Trip "Bulk - 00:01" has 3 confirmed booking(s); vehicle 100 assigned (driver 200).`
	if !resp.OK || resp.Message != want {
		t.Fatalf("unexpected status %+v", resp)
	}
	if resp.Trip == nil || resp.Trip.ID != 1 || resp.Deployment == nil || resp.Deployment.ID != 10 {
		t.Fatalf("status should carry trip and deployment: %+v", resp)
	}

	resp, err = svc.Handle(ctx, "req-2", intent.Input{Text: "Path Path - 09:30", CurrentPage: "busDashboard"})
	if err != nil {
		t.Fatalf("Handle error: %v", err)
	}
	want = `Trip "Path Path - 09:30" has 0 confirmed booking(s); no vehicle assigned.`
	if !resp.OK || resp.Message != want || resp.Deployment != nil {
		t.Fatalf("unexpected status %+v", resp)
	}
}

func TestAgentTripNotFoundSuggestsName(t *testing.T) {
	svc, _, _ := newAgentFixture()

	resp, err := svc.Handle(context.Background(), "req-1", intent.Input{Text: "status of Bulk - 00:10"})
	if err != nil {
		t.Fatalf("Handle error: %v", err)
	}
	want := `Couldn't find a trip matching "Bulk - 00:10". Did you mean "Bulk - 00:01"?`
	if resp.OK || resp.Message != want {
		t.Fatalf("unexpected response %+v", resp)
	}

	resp, _ = svc.Handle(context.Background(), "req-2", intent.Input{Text: "remove vehicle from Airport Express"})
	if resp.OK || resp.Message != `Couldn't find a trip matching "Airport Express".` {
		t.Fatalf("unexpected response %+v", resp)
	}
}

func TestAgentRemoveVehicle_NoDeployment(t *testing.T) {
	svc, _, _ := newAgentFixture()

	resp, err := svc.Handle(context.Background(), "req-1", intent.Input{Text: "remove vehicle from Path Path - 09:30"})
	if err != nil {
		t.Fatalf("Handle error: %v", err)
	}
	if resp.OK || resp.Message != `No vehicle currently deployed for trip "Path Path - 09:30".` {
		t.Fatalf("unexpected response %+v", resp)
	}
}

func TestAgentClarificationAndHelp(t *testing.T) {
	svc, _, _ := newAgentFixture()
	ctx := context.Background()

	resp, _ := svc.Handle(ctx, "req-1", intent.Input{Text: "remove vehicle"})
	if resp.OK || !resp.RequiresClarification || resp.Message != intent.ClarifyRemoveMessage {
		t.Fatalf("expected clarification, got %+v", resp)
	}

	resp, _ = svc.Handle(ctx, "req-2", intent.Input{Text: "good morning"})
	if resp.OK || resp.Intent != intent.KindUnrecognized || resp.Message != intent.HelpMessage {
		t.Fatalf("expected help message, got %+v", resp)
	}
}

func TestAgentStoreFaultIsInternal(t *testing.T) {
	svc, _, _ := newAgentFixture()
	svc.Resolver = fakeResolver{err: errors.New("dial tcp: refused")}

	_, err := svc.Handle(context.Background(), "req-1", intent.Input{Text: "status of Bulk - 00:01"})
	if !domain.IsInternal(err) {
		t.Fatalf("expected internal error, got %v", err)
	}
}
