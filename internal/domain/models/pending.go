package models

import "time"

// ActionRemoveVehicle is the only pending action kind so far.
const ActionRemoveVehicle = "remove_vehicle"

// PendingDetails is the payload of a pending action. Only the fields of
// the action kind are set.
type PendingDetails struct {
	TripID       int64 `json:"trip_id"`
	DeploymentID int64 `json:"deployment_id"`
	Bookings     int   `json:"bookings"`
}

// PendingAction is a destructive action waiting for operator confirmation.
type PendingAction struct {
	ID        string         `json:"id"`
	Action    string         `json:"action"`
	Details   PendingDetails `json:"details"`
	CreatedAt time.Time      `json:"created_at"`
	ExpiresAt time.Time      `json:"expires_at"`
}
