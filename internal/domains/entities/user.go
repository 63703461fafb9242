package entities

import "time"

type User struct {
	Id       string    `dynamodbav:"id" json:"id"`
	Username string    `dynamodbav:"username" json:"username"`
	LastSeen time.Time `dynamodbav:"last_seen" json:"last_seen"`
}
