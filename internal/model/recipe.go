package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/flavorconnect/flavorconnect/internal/validation"
)

type Recipe struct {
	ID          string    `db:"id"`
	UserID      string    `db:"user_id"`
	Title       string    `db:"title" form:"title" validate:"required,max=255"`
	Description string    `db:"description" form:"description" validate:"max=10000"`
	StyleID     *string   `db:"style_id"`
	DietID      *string   `db:"diet_id"`
	TypeID      *string   `db:"type_id"`
	PrepTime    int       `db:"prep_time" form:"prep_time" validate:"gte=0"` // seconds
	CookTime    int       `db:"cook_time" form:"cook_time" validate:"gte=0"` // seconds
	ImagePath   string    `db:"img_file_path"`
	VideoURL    string    `db:"video_url" form:"video_url" validate:"omitempty,http_url,max=255"`
	IsFeatured  bool      `db:"is_featured"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`

	// Joined fields (not in recipe)
	AuthorUsername string  `db:"author_username"`
	StyleName      string  `db:"style_name"`
	DietName       string  `db:"diet_name"`
	TypeName       string  `db:"type_name"`
	AverageRating  float64 `db:"avg_rating"`
	RatingCount    int     `db:"rating_count"`
}

func (r *Recipe) Validate() validation.Errors {
	r.Title = strings.TrimSpace(r.Title)
	r.Description = strings.TrimSpace(r.Description)
	r.VideoURL = strings.TrimSpace(r.VideoURL)
	return validation.Struct(r)
}

// SetPrepTime stores hours and minutes as seconds
func (r *Recipe) SetPrepTime(hours, minutes int) {
	r.PrepTime = toSeconds(hours, minutes)
}

func (r *Recipe) SetCookTime(hours, minutes int) {
	r.CookTime = toSeconds(hours, minutes)
}

func (r *Recipe) PrepHours() int   { return r.PrepTime / 3600 }
func (r *Recipe) PrepMinutes() int { return (r.PrepTime % 3600) / 60 }
func (r *Recipe) CookHours() int   { return r.CookTime / 3600 }
func (r *Recipe) CookMinutes() int { return (r.CookTime % 3600) / 60 }

func (r *Recipe) TotalTime() int {
	return r.PrepTime + r.CookTime
}

func (r *Recipe) AttributeID(kind AttributeKind) *string {
	switch kind {
	case AttributeStyle:
		return r.StyleID
	case AttributeDiet:
		return r.DietID
	case AttributeType:
		return r.TypeID
	}
	return nil
}

// IsOwnedBy reports whether userID created the recipe
func (r *Recipe) IsOwnedBy(userID string) bool {
	return userID != "" && r.UserID == userID
}

// RoundToHalf rounds a rating to the nearest half star
func RoundToHalf(rating float64) float64 {
	return float64(int(rating*2+0.5)) / 2
}

// Upper bounds for the hour and minute parts of prep and cook times
const (
	MaxDurationHours   = 999
	MaxDurationMinutes = 59
)

// toSeconds clamps each part into range before converting
func toSeconds(hours, minutes int) int {
	hours = min(max(hours, 0), MaxDurationHours)
	minutes = min(max(minutes, 0), MaxDurationMinutes)
	return hours*3600 + minutes*60
}

// FormatDuration renders seconds as "1 hr 30 mins"
func FormatDuration(seconds int) string {
	if seconds <= 0 {
		return "0 mins"
	}

	hours := seconds / 3600
	minutes := (seconds % 3600) / 60

	var parts []string
	if hours > 0 {
		parts = append(parts, fmt.Sprintf("%d %s", hours, plural(hours, "hr", "hrs")))
	}
	if minutes > 0 {
		parts = append(parts, fmt.Sprintf("%d %s", minutes, plural(minutes, "min", "mins")))
	}
	if len(parts) == 0 {
		return "0 mins"
	}
	return strings.Join(parts, " ")
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
