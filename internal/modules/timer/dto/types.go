package dto

import "time"

type CountdownOutput struct {
	State     string
	Total     time.Duration
	Remaining time.Duration
	Display   string
}
