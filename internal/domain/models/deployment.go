package models

// Deployment assigns a vehicle and driver to a trip. A trip has at most one.
type Deployment struct {
	ID        int64 `json:"deployment_id"`
	TripID    int64 `json:"trip_id"`
	VehicleID int64 `json:"vehicle_id"`
	DriverID  int64 `json:"driver_id"`
}

// DeploymentInput is the payload for creating a deployment.
type DeploymentInput struct {
	TripID    int64 `json:"trip_id"`
	VehicleID int64 `json:"vehicle_id"`
	DriverID  int64 `json:"driver_id"`
}
