package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/ecard-vn/ecard/internal/domains/entities"
	"github.com/ecard-vn/ecard/internal/storage"
)

type waitingKey struct {
	UserId    string
	Timestamp time.Time
}

// Load scans the three tables into a snapshot and seeds the known-key
// sets used by later saves.
func (client *Client) Load(ctx context.Context) (storage.Snapshot, error) {
	snapshot := storage.Snapshot{
		Users:   []entities.User{},
		Matches: []entities.Match{},
		Waiting: []entities.WaitingEntry{},
	}

	usersOutput, err := client.dynamodb.Scan(ctx, &dynamodb.ScanInput{
		TableName: client.cfg.UsersTableName,
	})
	if err != nil {
		return storage.Snapshot{}, fmt.Errorf("failed to scan users: %w", err)
	}
	if err := attributevalue.UnmarshalListOfMaps(usersOutput.Items, &snapshot.Users); err != nil {
		return storage.Snapshot{}, fmt.Errorf("failed to unmarshal users: %w", err)
	}

	matchesOutput, err := client.dynamodb.Scan(ctx, &dynamodb.ScanInput{
		TableName: client.cfg.MatchesTableName,
	})
	if err != nil {
		return storage.Snapshot{}, fmt.Errorf("failed to scan matches: %w", err)
	}
	if err := attributevalue.UnmarshalListOfMaps(matchesOutput.Items, &snapshot.Matches); err != nil {
		return storage.Snapshot{}, fmt.Errorf("failed to unmarshal matches: %w", err)
	}

	waitingOutput, err := client.dynamodb.Scan(ctx, &dynamodb.ScanInput{
		TableName: client.cfg.WaitingTableName,
	})
	if err != nil {
		return storage.Snapshot{}, fmt.Errorf("failed to scan waiting entries: %w", err)
	}
	if err := attributevalue.UnmarshalListOfMaps(waitingOutput.Items, &snapshot.Waiting); err != nil {
		return storage.Snapshot{}, fmt.Errorf("failed to unmarshal waiting entries: %w", err)
	}

	client.mu.Lock()
	client.knownMatches = map[string]struct{}{}
	for _, match := range snapshot.Matches {
		client.knownMatches[match.Id] = struct{}{}
	}
	client.knownWaiting = map[string]waitingKey{}
	for _, entry := range snapshot.Waiting {
		key := waitingKey{UserId: entry.UserId, Timestamp: entry.Timestamp}
		client.knownWaiting[waitingKeyString(key)] = key
	}
	client.mu.Unlock()

	return snapshot, nil
}

func (client *Client) SaveUsers(ctx context.Context, users []entities.User) error {
	for _, user := range users {
		av, err := attributevalue.MarshalMap(user)
		if err != nil {
			return fmt.Errorf("failed to marshal user map: %w", err)
		}
		_, err = client.dynamodb.PutItem(ctx, &dynamodb.PutItemInput{
			TableName: client.cfg.UsersTableName,
			Item:      av,
		})
		if err != nil {
			return fmt.Errorf("failed to put user: %w", err)
		}
	}
	return nil
}

func (client *Client) SaveMatches(ctx context.Context, matches []entities.Match) error {
	current := make(map[string]struct{}, len(matches))
	for _, match := range matches {
		current[match.Id] = struct{}{}
		av, err := attributevalue.MarshalMap(match)
		if err != nil {
			return fmt.Errorf("failed to marshal match map: %w", err)
		}
		_, err = client.dynamodb.PutItem(ctx, &dynamodb.PutItemInput{
			TableName: client.cfg.MatchesTableName,
			Item:      av,
		})
		if err != nil {
			return fmt.Errorf("failed to put match: %w", err)
		}
	}

	client.mu.Lock()
	removed := []string{}
	for id := range client.knownMatches {
		if _, kept := current[id]; !kept {
			removed = append(removed, id)
		}
	}
	client.knownMatches = current
	client.mu.Unlock()

	for _, id := range removed {
		_, err := client.dynamodb.DeleteItem(ctx, &dynamodb.DeleteItemInput{
			TableName: client.cfg.MatchesTableName,
			Key: map[string]types.AttributeValue{
				"id": &types.AttributeValueMemberS{Value: id},
			},
		})
		if err != nil {
			return fmt.Errorf("failed to delete match: %w", err)
		}
	}
	return nil
}

func (client *Client) SaveWaiting(ctx context.Context, waiting []entities.WaitingEntry) error {
	current := make(map[string]waitingKey, len(waiting))
	for _, entry := range waiting {
		key := waitingKey{UserId: entry.UserId, Timestamp: entry.Timestamp}
		current[waitingKeyString(key)] = key
		av, err := attributevalue.MarshalMap(entry)
		if err != nil {
			return fmt.Errorf("failed to marshal waiting entry map: %w", err)
		}
		_, err = client.dynamodb.PutItem(ctx, &dynamodb.PutItemInput{
			TableName: client.cfg.WaitingTableName,
			Item:      av,
		})
		if err != nil {
			return fmt.Errorf("failed to put waiting entry: %w", err)
		}
	}

	client.mu.Lock()
	removed := []waitingKey{}
	for keyStr, key := range client.knownWaiting {
		if _, kept := current[keyStr]; !kept {
			removed = append(removed, key)
		}
	}
	client.knownWaiting = current
	client.mu.Unlock()

	for _, key := range removed {
		_, err := client.dynamodb.DeleteItem(ctx, &dynamodb.DeleteItemInput{
			TableName: client.cfg.WaitingTableName,
			Key: map[string]types.AttributeValue{
				"user_id": &types.AttributeValueMemberS{Value: key.UserId},
				"timestamp": &types.AttributeValueMemberS{
					Value: key.Timestamp.Format(time.RFC3339Nano),
				},
			},
		})
		if err != nil {
			return fmt.Errorf("failed to delete waiting entry: %w", err)
		}
	}
	return nil
}

func waitingKeyString(key waitingKey) string {
	return key.UserId + "#" + key.Timestamp.Format(time.RFC3339Nano)
}
