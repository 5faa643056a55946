package dynamo

import (
	"context"
	"fmt"
	"strconv"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/swipe-api/internal/domain"
)

// ChallengeRepo manages OTP challenges. PK: email — a Put replaces any
// outstanding challenge for that email, which is exactly the invalidation
// the auth flow wants.
type ChallengeRepo struct {
	client    *dynamodb.Client
	tableName string
}

func NewChallengeRepo(client *dynamodb.Client, tableName string) *ChallengeRepo {
	return &ChallengeRepo{client: client, tableName: tableName}
}

func (r *ChallengeRepo) Put(ctx context.Context, c *domain.OtpChallenge) error {
	item, err := attributevalue.MarshalMap(c)
	if err != nil {
		return fmt.Errorf("marshal challenge: %w", err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      item,
	})
	return err
}

func (r *ChallengeRepo) Get(ctx context.Context, email string) (*domain.OtpChallenge, error) {
	// Strongly consistent: a re-request must invalidate the prior code the
	// moment it returns, so verification may never act on a stale row.
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(r.tableName),
		Key:            strKey("email", email),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return nil, err
	}
	if out.Item == nil {
		return nil, fmt.Errorf("challenge for %s: %w", email, domain.ErrNotFound)
	}
	var c domain.OtpChallenge
	if err := attributevalue.UnmarshalMap(out.Item, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

// Consume marks the challenge issued at issuedAt consumed. The conditional
// expression admits exactly one winner under concurrent verifies and refuses
// to touch a challenge that has been replaced since it was read; losers get
// ErrCodeConsumed either way.
func (r *ChallengeRepo) Consume(ctx context.Context, email string, issuedAt int64) error {
	_, err := r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:        aws.String(r.tableName),
		Key:              strKey("email", email),
		UpdateExpression: aws.String("SET consumed = :t"),
		ConditionExpression: aws.String(
			"attribute_exists(email) AND consumed = :f AND issued_at = :seen",
		),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":t":    &types.AttributeValueMemberBOOL{Value: true},
			":f":    &types.AttributeValueMemberBOOL{Value: false},
			":seen": &types.AttributeValueMemberN{Value: strconv.FormatInt(issuedAt, 10)},
		},
	})
	if isConditionalCheckFailed(err) {
		return fmt.Errorf("challenge for %s: %w", email, domain.ErrCodeConsumed)
	}
	return err
}
