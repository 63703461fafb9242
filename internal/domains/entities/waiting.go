package entities

import "time"

type WaitingEntry struct {
	UserId    string    `dynamodbav:"user_id" json:"user_id"`
	Username  string    `dynamodbav:"username" json:"username"`
	Timestamp time.Time `dynamodbav:"timestamp" json:"timestamp"`
}
