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

// MatchRepo provides typed DynamoDB operations for the matches table.
// PK: pair_id (canonical "min#max") — the uniqueness anchor that makes
// match creation race-free.
type MatchRepo struct {
	client    *dynamodb.Client
	tableName string
}

func NewMatchRepo(client *dynamodb.Client, tableName string) *MatchRepo {
	return &MatchRepo{client: client, tableName: tableName}
}

// Create inserts the match only if no match exists for the pair yet.
// Returns ErrConflict when another writer got there first; concurrent
// reciprocal likes therefore produce exactly one match.
func (r *MatchRepo) Create(ctx context.Context, m *domain.Match) error {
	item, err := attributevalue.MarshalMap(m)
	if err != nil {
		return fmt.Errorf("marshal match: %w", err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                item,
		ConditionExpression: aws.String("attribute_not_exists(pair_id)"),
	})
	if isConditionalCheckFailed(err) {
		return fmt.Errorf("match for pair %s: %w", m.PairID, domain.ErrConflict)
	}
	return err
}

func (r *MatchRepo) GetByPair(ctx context.Context, pairID string) (*domain.Match, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey("pair_id", pairID),
	})
	if err != nil {
		return nil, err
	}
	if out.Item == nil {
		return nil, fmt.Errorf("match for pair %s: %w", pairID, domain.ErrNotFound)
	}
	var m domain.Match
	if err := attributevalue.UnmarshalMap(out.Item, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *MatchRepo) GetByID(ctx context.Context, matchID string) (*domain.Match, error) {
	out, err := r.client.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String("match_id-index"),
		KeyConditionExpression: aws.String("match_id = :m"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":m": &types.AttributeValueMemberS{Value: matchID},
		},
		Limit: aws.Int32(1),
	})
	if err != nil {
		return nil, err
	}
	if len(out.Items) == 0 {
		return nil, fmt.Errorf("match %s: %w", matchID, domain.ErrNotFound)
	}
	var m domain.Match
	if err := attributevalue.UnmarshalMap(out.Items[0], &m); err != nil {
		return nil, err
	}
	return &m, nil
}

// ListByProfile returns every match containing profileID, querying both
// member GSIs since the profile may sit on either side of the pair.
func (r *MatchRepo) ListByProfile(ctx context.Context, profileID string) ([]domain.Match, error) {
	var matches []domain.Match
	for _, index := range []string{"profile_a-index", "profile_b-index"} {
		attr := "profile_a"
		if index == "profile_b-index" {
			attr = "profile_b"
		}
		out, err := r.client.Query(ctx, &dynamodb.QueryInput{
			TableName:              aws.String(r.tableName),
			IndexName:              aws.String(index),
			KeyConditionExpression: aws.String("#p = :id"),
			ExpressionAttributeNames: map[string]string{
				"#p": attr,
			},
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":id": &types.AttributeValueMemberS{Value: profileID},
			},
		})
		if err != nil {
			return nil, err
		}
		var page []domain.Match
		if err := attributevalue.UnmarshalListOfMaps(out.Items, &page); err != nil {
			return nil, err
		}
		matches = append(matches, page...)
	}
	return matches, nil
}
