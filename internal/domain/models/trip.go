package models

// Trip mirrors a daily_trips row. DisplayName is what operators type,
// e.g. "Bulk - 00:01".
type Trip struct {
	ID            int64  `json:"trip_id"`
	DisplayName   string `json:"display_name"`
	RouteID       *int64 `json:"route_id,omitempty"`
	ScheduledDate string `json:"scheduled_date,omitempty"`
}

// TripOverview is a trip row joined with its route name and deployment.
type TripOverview struct {
	Trip
	RouteDisplayName string `json:"route_display_name,omitempty"`
	VehicleID        *int64 `json:"vehicle_id"`
	DriverID         *int64 `json:"driver_id"`
}
