package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// RideType is the moderation category of a ride
type RideType string

const (
	RideTypeFlagship RideType = "Flagship"
	RideTypeChapter  RideType = "Chapter"
	RideTypeMicro    RideType = "Micro"
)

// RequiresApproval reports whether rides of this type start in Pending Approval.
func (t RideType) RequiresApproval() bool {
	return t != RideTypeMicro
}

// RideStatus is the lifecycle state of a ride
type RideStatus string

const (
	RideStatusPendingApproval RideStatus = "Pending Approval"
	RideStatusUpcoming        RideStatus = "Upcoming"
	RideStatusOngoing         RideStatus = "Ongoing"
	RideStatusCompleted       RideStatus = "Completed"
	RideStatusCancelled       RideStatus = "Cancelled"
	RideStatusRejected        RideStatus = "Rejected"
)

// ListedRideStatuses are approved, non-terminal statuses shown in the public listing.
var ListedRideStatuses = []RideStatus{RideStatusUpcoming, RideStatusOngoing}

// LeaderboardRideStatuses count toward a captain's conducted rides.
var LeaderboardRideStatuses = []RideStatus{RideStatusUpcoming, RideStatusOngoing, RideStatusCompleted}

// Ride is a scheduled group ride led by a captain
type Ride struct {
	ID              uuid.UUID   `json:"id"`
	Name            string      `json:"name"`
	Type            RideType    `json:"type"`
	Description     null.String `json:"description"`
	RouteStart      string      `json:"routeStart"`
	RouteEnd        string      `json:"routeEnd"`
	RouteMapLink    null.String `json:"routeMapLink"`
	DateTime        time.Time   `json:"dateTime"`
	CaptainID       uuid.UUID   `json:"captainId"`
	Status          RideStatus  `json:"status"`
	RejectionReason null.String `json:"rejectionReason,omitempty"`
	ThumbnailURL    null.String `json:"thumbnailUrl"`
	DistanceKm      float64     `json:"distanceKm"`
	CreatedAt       time.Time   `json:"createdAt"`
	UpdatedAt       time.Time   `json:"updatedAt"`
}

// IsPast reports whether the ride was scheduled before now.
func (r *Ride) IsPast(now time.Time) bool {
	return r.DateTime.Before(now)
}

// RideSummary is a listing row: ride plus captain and participant count.
type RideSummary struct {
	Ride
	Captain           UserSummary `json:"captain"`
	CaptainCity       string      `json:"-"`
	ParticipantsCount int64       `json:"participantsCount"`
}

// Participant is a member who joined a ride.
type Participant struct {
	UserSummary
	JoinedAt time.Time `json:"joinedAt"`
}

// RidePhoto is an image attached to a ride.
type RidePhoto struct {
	ID             uuid.UUID    `json:"id"`
	RideID         uuid.UUID    `json:"rideId"`
	UploaderUserID uuid.UUID    `json:"uploaderUserId"`
	URL            string       `json:"url"`
	Caption        null.String  `json:"caption"`
	UploadedAt     time.Time    `json:"uploadedAt"`
	Uploader       *UserSummary `json:"uploader,omitempty"`
}

// RideDetail is the full ride view.
type RideDetail struct {
	Ride
	Captain           UserSummary   `json:"captain"`
	ParticipantsCount int           `json:"participantsCount"`
	Participants      []Participant `json:"participants"`
	Photos            []RidePhoto   `json:"photos"`
}

// CreateRideInput represents input for creating a micro ride
type CreateRideInput struct {
	Name         string    `json:"name" binding:"required,min=5,max=100"`
	StartPoint   string    `json:"startPoint" binding:"required,min=3,max=255"`
	EndPoint     string    `json:"endPoint" binding:"required,min=3,max=255"`
	DateTime     time.Time `json:"dateTime" binding:"required"`
	Description  *string   `json:"description" binding:"omitempty,max=500"`
	RouteMapLink *string   `json:"routeMapLink" binding:"omitempty,url,max=500"`
	DistanceKm   *float64  `json:"distanceKm" binding:"omitempty,gte=0,lte=10000"`
}

// RejectRideInput carries an optional moderation note.
type RejectRideInput struct {
	Reason *string `json:"reason" binding:"omitempty,max=500"`
}

// AddPhotoInput represents a photo attached to a ride.
type AddPhotoInput struct {
	URL     string  `json:"url" binding:"required,url,max=1000"`
	Caption *string `json:"caption" binding:"omitempty,max=280"`
}

// ModerationResult is the approve/reject response body.
type ModerationResult struct {
	ID     uuid.UUID  `json:"id"`
	Name   string     `json:"name"`
	Status RideStatus `json:"status"`
}
