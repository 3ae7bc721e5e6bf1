package model

import "time"

type Todo struct {
	ID            int64     `json:"id"`
	OwnerID       int64     `json:"-"`
	TaskName      string    `json:"Task_name"`
	Status        string    `json:"status"`
	Priority      string    `json:"priority"`
	RemainingDays int       `json:"remaining_days"`
	Desc          string    `json:"desc"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Значения, которые предлагает форма. Поля status и priority свободные.
var (
	SuggestedStatuses   = []string{"incomplete", "in-progress", "completed"}
	SuggestedPriorities = []string{"low", "medium", "high"}
)
