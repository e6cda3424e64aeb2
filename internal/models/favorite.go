package models

import "time"

// FavoriteMovie keeps the display fields the client had when the movie was
// added, so the list renders without a catalog round trip.
type FavoriteMovie struct {
	ID         int64     `json:"id"`
	UserID     int64     `json:"userId"`
	MovieID    int64     `json:"movieId"`
	Title      string    `json:"title"`
	PosterPath string    `json:"posterPath"`
	Rating     string    `json:"rating"`
	CreatedAt  time.Time `json:"createdAt"`
}

type FavoriteInput struct {
	MovieID    int64  `json:"movieId" validate:"required,gt=0"`
	Title      string `json:"title" validate:"required,max=500"`
	PosterPath string `json:"posterPath" validate:"max=500"`
	Rating     string `json:"rating" validate:"max=32"`
}
