package models

import "time"

type RefreshToken struct {
	Token   string
	Account string
	Expires time.Time
}
