package domain

import (
	"time"

	"github.com/google/uuid"
)

// DefaultRank is the rank every new user starts with.
const DefaultRank = "Explorer"

// User is a registered traveller.
//
// ReviewComments, PhotosReview and Trips are reference sets derived from the
// rows the user owns. Comments, Photos and Contribution are counters kept in
// step with those sets by the same write that changes them.
type User struct {
	ID             uuid.UUID   `json:"id"`
	Name           string      `json:"name"`
	UserName       string      `json:"userName"`
	Email          string      `json:"email"`
	PasswordHash   string      `json:"-"`
	JoinDate       time.Time   `json:"joinDate"`
	Rank           string      `json:"rank"`
	Points         int         `json:"points"`
	Description    string      `json:"description"`
	Contribution   int         `json:"contribution"`
	Comments       int         `json:"comments"`
	Photos         int         `json:"photos"`
	PlacesVisited  int         `json:"placesVisited"`
	Badges         []string    `json:"badges"`
	ReviewComments []uuid.UUID `json:"reviewComments"`
	PhotosReview   []uuid.UUID `json:"photosReview"`
	Trips          []uuid.UUID `json:"trips"`
	RunningTrip    *uuid.UUID  `json:"runningTrip"` // nil when no trip is active
}

// SignUpInput is what a new user submits when registering.
type SignUpInput struct {
	Name     string `json:"name"`
	UserName string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RewardAction names a contribution that earns points.
type RewardAction string

const (
	RewardComment RewardAction = "comment"
	RewardPhoto   RewardAction = "photo"
)

// RewardTable maps contribution actions to the points they award.
type RewardTable map[RewardAction]int

// DefaultRewards is used when no reward configuration is supplied.
var DefaultRewards = RewardTable{RewardComment: 10, RewardPhoto: 30}

// Points returns the award for a, or 0 for actions without an entry.
func (r RewardTable) Points(a RewardAction) int {
	return r[a]
}
