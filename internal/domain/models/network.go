package models

const (
	RouteActive      = "active"
	RouteDeactivated = "deactivated"
)

// Stop is a named pickup or drop point.
type Stop struct {
	ID        int64    `json:"stop_id"`
	Name      string   `json:"name"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

type StopInput struct {
	Name      string   `json:"name"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

// PathStop is one stop on a path; Order starts at 1.
type PathStop struct {
	StopID int64  `json:"stop_id"`
	Name   string `json:"name"`
	Order  int    `json:"order"`
}

// Path is an ordered sequence of stops.
type Path struct {
	ID    int64      `json:"path_id"`
	Name  string     `json:"path_name"`
	Stops []PathStop `json:"stops"`
}

// PathInput lists stop ids in travel order.
type PathInput struct {
	Name    string  `json:"path_name"`
	StopIDs []int64 `json:"stop_ids"`
}

// Route runs a path at a shift time. Deactivated routes stay listed.
type Route struct {
	ID          int64  `json:"route_id"`
	PathID      *int64 `json:"path_id"`
	PathName    string `json:"path_name,omitempty"`
	DisplayName string `json:"route_display_name"`
	ShiftTime   string `json:"shift_time,omitempty"`
	Direction   string `json:"direction,omitempty"`
	StartPoint  string `json:"start_point,omitempty"`
	EndPoint    string `json:"end_point,omitempty"`
	Status      string `json:"status"`
}

type RouteInput struct {
	PathID      *int64 `json:"path_id"`
	DisplayName string `json:"route_display_name"`
	ShiftTime   string `json:"shift_time"`
	Direction   string `json:"direction"`
	StartPoint  string `json:"start_point"`
	EndPoint    string `json:"end_point"`
}
