package domain

import "time"

type Airport struct {
	ID        int64
	Name      string
	Code      string
	Location  string
	CreatedAt time.Time
	UpdatedAt time.Time
}
