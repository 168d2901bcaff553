package entity

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID           uuid.UUID
	Name         string
	PasswordHash string
}

// Course names are stored lower-cased; lookups normalize before querying.
type Course struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	ClubName  string    `json:"club_name,omitempty"`
	Location  string    `json:"location,omitempty"`
	Par       int       `json:"par"`
	CreatedAt time.Time `json:"created_at"`
	Tees      []Tee     `json:"tees,omitempty"`
}

type Tee struct {
	ID            uuid.UUID `json:"id"`
	CourseID      uuid.UUID `json:"course_id"`
	Name          string    `json:"name"`
	Color         string    `json:"color,omitempty"`
	TotalDistance *int      `json:"total_distance,omitempty"`
}

// GrossShots and Score stay nil until the round is completed.
type Round struct {
	ID         uuid.UUID `json:"id"`
	UserID     uuid.UUID `json:"uid"`
	CourseID   uuid.UUID `json:"course_id"`
	IsComplete bool      `json:"is_complete"`
	GrossShots *int      `json:"gross_shots"`
	Score      *int      `json:"score"`
	CreatedAt  time.Time `json:"created_at"`
}

// Shot is one physical shot. A ledger cell holding count N is persisted
// as N of these rows, not as a count.
type Shot struct {
	ID         int64     `json:"id"`
	RoundID    uuid.UUID `json:"round_id"`
	HoleNumber int       `json:"hole_number"`
	ShotType   string    `json:"shot_type"`
	Outcome    string    `json:"outcome"`
	CreatedAt  time.Time `json:"created_at"`
}

type Insight struct {
	ID             uuid.UUID  `json:"id"`
	UserID         uuid.UUID  `json:"uid"`
	RoundID        *uuid.UUID `json:"round_id,omitempty"`
	Summary        string     `json:"summary"`
	PrimaryIssue   string     `json:"primary_issue"`
	Reason         string     `json:"reason"`
	PracticeFocus  string     `json:"practice_focus"`
	ManagementTip  string     `json:"management_tip"`
	ProgressNote   string     `json:"progress_note,omitempty"`
	FeedbackRating *int       `json:"feedback_rating,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
}
