package models

type Vehicle struct {
	ID           int64  `json:"vehicle_id"`
	LicensePlate string `json:"license_plate"`
	Type         string `json:"type,omitempty"`
	Capacity     int    `json:"capacity"`
}
