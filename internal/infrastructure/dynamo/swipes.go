package dynamo

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/swipe-api/internal/domain"
)

// SwipeRepo provides typed DynamoDB operations for the swipes table.
// PK: actor_id, SK: target_id — Put overwrites, so re-swiping the same
// target is idempotent on the last write.
type SwipeRepo struct {
	client    *dynamodb.Client
	tableName string
}

func NewSwipeRepo(client *dynamodb.Client, tableName string) *SwipeRepo {
	return &SwipeRepo{client: client, tableName: tableName}
}

func (r *SwipeRepo) Put(ctx context.Context, s *domain.Swipe) error {
	item, err := attributevalue.MarshalMap(s)
	if err != nil {
		return fmt.Errorf("marshal swipe: %w", err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      item,
	})
	return err
}

func (r *SwipeRepo) Get(ctx context.Context, actorID, targetID string) (*domain.Swipe, error) {
	// Strongly consistent: the match engine reads the reverse swipe right
	// after writing its own, and a stale miss here would drop a mutual like.
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(r.tableName),
		Key:            compositeKey("actor_id", actorID, "target_id", targetID),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return nil, err
	}
	if out.Item == nil {
		return nil, fmt.Errorf("swipe %s->%s: %w", actorID, targetID, domain.ErrNotFound)
	}
	var s domain.Swipe
	if err := attributevalue.UnmarshalMap(out.Item, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// ListByActor returns every swipe recorded by actorID.
func (r *SwipeRepo) ListByActor(ctx context.Context, actorID string) ([]domain.Swipe, error) {
	out, err := r.client.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		KeyConditionExpression: aws.String("actor_id = :a"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":a": &types.AttributeValueMemberS{Value: actorID},
		},
	})
	if err != nil {
		return nil, err
	}
	var swipes []domain.Swipe
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &swipes); err != nil {
		return nil, err
	}
	return swipes, nil
}
