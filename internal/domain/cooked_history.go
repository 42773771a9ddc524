package domain

import "time"

// CookedHistory records a user preparing a recipe. Recipe is nil when the
// recipe row is gone; TitleSnapshot keeps the title it had at cook time.
type CookedHistory struct {
	ID            int64     `json:"id"`
	UserID        int64     `json:"user_id"`
	Recipe        *Recipe   `json:"recipe"`
	CookedAt      time.Time `json:"cooked_at"`
	TitleSnapshot string    `json:"title_snapshot"`
}

type Favorite struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	Recipe    *Recipe   `json:"recipe"`
	CreatedAt time.Time `json:"created_at"`
}
