package storage

import (
	"sync"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
)

type Config struct {
	UsersTableName   *string
	MatchesTableName *string
	WaitingTableName *string
}

// Client is a DynamoDB-backed snapshot store. It keeps the keys it last
// wrote so a save can delete records that dropped out of a collection.
type Client struct {
	dynamodb *dynamodb.Client
	cfg      Config

	mu           sync.Mutex
	knownMatches map[string]struct{}
	knownWaiting map[string]waitingKey
}

func NewClient(dynamoClient *dynamodb.Client, cfg Config) *Client {
	return &Client{
		dynamodb:     dynamoClient,
		cfg:          cfg,
		knownMatches: map[string]struct{}{},
		knownWaiting: map[string]waitingKey{},
	}
}
