package model

import (
	"time"

	"github.com/google/uuid"
)

// Rating is post-session feedback from one user about another. The
// rating column is nullable at the storage level, so the [1,5] bound is
// enforced at write time by the service layer.
type Rating struct {
	ID        uuid.UUID  `db:"id" json:"id"`
	RaterID   uuid.UUID  `db:"rater_id" json:"rater_id"`
	RatedID   uuid.UUID  `db:"rated_id" json:"rated_id"`
	SessionID *uuid.UUID `db:"session_id" json:"session_id,omitempty"`
	Rating    int        `db:"rating" json:"rating"`
	Comment   *string    `db:"comment" json:"comment,omitempty"`
	CreatedAt time.Time  `db:"created_at" json:"created_at"`
}

// RatingDetails is the eager shape: the rating plus both users.
type RatingDetails struct {
	Rating
	Rater User `db:"rater" json:"rater"`
	Rated User `db:"rated" json:"rated"`
}

// RatingStats is the derived aggregate over a user's received ratings.
type RatingStats struct {
	AverageRating float64 `json:"average_rating"`
	TotalRatings  int     `json:"total_ratings"`
}
