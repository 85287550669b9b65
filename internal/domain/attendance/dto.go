package attendance

import (
	"strings"
	"time"

	"github.com/cmlabs-hris/hris-mobile-gateway/internal/pkg/validator"
)

// ========================================
// VIEW MODELS
// ========================================

type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type CheckInStatus struct {
	CheckedIn    bool         `json:"checked_in"`
	RecordID     *string      `json:"record_id,omitempty"`
	CheckInTime  *time.Time   `json:"check_in_time,omitempty"`
	CheckOutTime *time.Time   `json:"check_out_time,omitempty"`
	Location     string       `json:"location,omitempty"`
	Coordinates  *Coordinates `json:"coordinates,omitempty"`
	SessionHours float64      `json:"session_hours"`
}

type WeeklyStats struct {
	HoursWorked float64 `json:"hours_worked"`
	Overtime    float64 `json:"overtime"`
	DaysPresent int     `json:"days_present"`
	TotalDays   int     `json:"total_days"`
}

// ========================================
// REQUESTS
// ========================================

type CheckInRequest struct {
	Latitude  *float64      `json:"latitude"`
	Longitude *float64      `json:"longitude"`
	Address   string        `json:"address"`
	PhotoURL  string        `json:"photo_url"`
	Method    CheckInMethod `json:"method"`
}

func (r *CheckInRequest) Validate() error {
	errs := validateLocation(r.Latitude, r.Longitude)

	if r.Method == "" {
		r.Method = MethodGPS
	}
	validMethods := []string{string(MethodGPS), string(MethodManual), string(MethodBarcode)}
	if !validator.IsInSlice(strings.ToUpper(string(r.Method)), validMethods) {
		errs = append(errs, validator.ValidationError{
			Field:   "method",
			Message: "method must be one of: GPS, MANUAL, BARCODE",
		})
	}
	r.Method = CheckInMethod(strings.ToUpper(string(r.Method)))

	if r.PhotoURL != "" && !validator.IsValidURL(r.PhotoURL) {
		errs = append(errs, validator.ValidationError{
			Field:   "photo_url",
			Message: "photo_url must be an absolute http(s) URL",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type CheckOutRequest struct {
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
	Address   string   `json:"address"`
	PhotoURL  string   `json:"photo_url"`
}

func (r *CheckOutRequest) Validate() error {
	errs := validateLocation(r.Latitude, r.Longitude)

	if r.PhotoURL != "" && !validator.IsValidURL(r.PhotoURL) {
		errs = append(errs, validator.ValidationError{
			Field:   "photo_url",
			Message: "photo_url must be an absolute http(s) URL",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func validateLocation(lat, lng *float64) validator.ValidationErrors {
	var errs validator.ValidationErrors
	if (lat == nil) != (lng == nil) {
		errs = append(errs, validator.ValidationError{
			Field:   "location",
			Message: "latitude and longitude must be sent together",
		})
		return errs
	}
	if lat != nil && !validator.IsValidLatitude(*lat) {
		errs = append(errs, validator.ValidationError{
			Field:   "latitude",
			Message: "latitude must be between -90 and 90",
		})
	}
	if lng != nil && !validator.IsValidLongitude(*lng) {
		errs = append(errs, validator.ValidationError{
			Field:   "longitude",
			Message: "longitude must be between -180 and 180",
		})
	}
	return errs
}

// ========================================
// UPSTREAM PAYLOADS
// ========================================

// Payload is the body of the backend check-in and check-out calls.
type Payload struct {
	EmployeeID string        `json:"employeeId,omitempty"`
	Date       string        `json:"date,omitempty"`
	Timestamp  string        `json:"timestamp"`
	Lat        *float64      `json:"lat,omitempty"`
	Lng        *float64      `json:"lng,omitempty"`
	Address    string        `json:"address,omitempty"`
	PhotoURL   string        `json:"photoUrl,omitempty"`
	Method     CheckInMethod `json:"method,omitempty"`
}
