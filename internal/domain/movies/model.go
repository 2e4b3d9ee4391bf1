package movies

import (
	"errors"
	"fmt"
	"time"
)

// Cinema predates 1889 by nothing we care about.
const firstReleaseYear = 1889

type Movie struct {
	ID          uint   `gorm:"primaryKey"`
	Title       string `gorm:"not null;index:idx_movies_title"`
	Description string `gorm:"not null;type:text"`
	Genre       string `gorm:"not null;index:idx_movies_genre"`
	Director    string `gorm:"not null"`
	MainLead    string `gorm:"not null"`

	Rating      float64 `gorm:"not null"`
	Duration    int     `gorm:"not null"` // minutes
	ReleaseYear int     `gorm:"not null"`
	IsPremium   bool    `gorm:"not null;default:false"`

	// Hosted on an external image service; stored as opaque URLs.
	BannerURL *string `gorm:"column:banner_url"`
	PosterURL *string `gorm:"column:poster_url"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Validate enforces the catalog invariants before a create or update.
func (m Movie) Validate(now time.Time) error {
	if m.Title == "" || m.Description == "" || m.Genre == "" || m.Director == "" || m.MainLead == "" {
		return errors.New("title, description, genre, director and main_lead are required")
	}
	if m.Rating < 0 || m.Rating > 10 {
		return fmt.Errorf("rating must be between 0 and 10, got %v", m.Rating)
	}
	if m.Duration <= 0 {
		return fmt.Errorf("duration must be a positive number of minutes, got %d", m.Duration)
	}
	if m.ReleaseYear < firstReleaseYear || m.ReleaseYear > now.Year() {
		return fmt.Errorf("release_year must be between %d and %d, got %d", firstReleaseYear, now.Year(), m.ReleaseYear)
	}
	return nil
}
