package model

import "time"

// Movie is a catalog entry that schedules reference by ID. Once a
// schedule points at a movie the row is treated as immutable reference
// data; vendors may still edit or delete movies that no schedule
// references.
//
// Fields:
//  ID          – primary key identifier.
//  OwnerID     – user ID of the vendor/admin who created the movie.
//  Name        – display name.
//  Description – synopsis text.
//  Genres      – genre tags; order preserves display priority.
//  DurationMin – running time in minutes (positive).
//  ImageURL    – poster image reference.
//  Rating      – optional rating (nil when unrated).
//  CreatedAt   – timestamp when the movie was created.
type Movie struct {
	ID          uint64    // movies.id
	OwnerID     uint64    // movies.owner_id
	Name        string    // movies.name
	Description string    // movies.description
	Genres      []string  // movies.genres (JSON array, ordered)
	DurationMin uint32    // movies.duration_min
	ImageURL    string    // movies.image_url
	Rating      *float64  // movies.rating (nullable)
	CreatedAt   time.Time // movies.created_at
}
