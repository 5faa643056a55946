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

// appendAttempts bounds the optimistic-insert retry loop in Append.
const appendAttempts = 5

// MessageRepo provides typed DynamoDB operations for the messages table.
// PK: match_id, SK: seq.
type MessageRepo struct {
	client    *dynamodb.Client
	tableName string
}

func NewMessageRepo(client *dynamodb.Client, tableName string) *MessageRepo {
	return &MessageRepo{client: client, tableName: tableName}
}

// Append assigns the next sequence number for the match and inserts the
// message. Sequence assignment is optimistic: read the current max, insert
// at max+1 with a condition that the slot is still free, retry on loss.
// A failed insert never burns a number, so the sequence stays gapless.
func (r *MessageRepo) Append(ctx context.Context, m *domain.Message) error {
	for attempt := 0; attempt < appendAttempts; attempt++ {
		last, err := r.lastSeq(ctx, m.MatchID)
		if err != nil {
			return err
		}
		m.Seq = last + 1

		item, err := attributevalue.MarshalMap(m)
		if err != nil {
			return fmt.Errorf("marshal message: %w", err)
		}
		_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
			TableName:           aws.String(r.tableName),
			Item:                item,
			ConditionExpression: aws.String("attribute_not_exists(match_id)"),
		})
		if err == nil {
			return nil
		}
		if !isConditionalCheckFailed(err) {
			return err
		}
		// Lost the slot to a concurrent append — re-read and try the next one.
	}
	return fmt.Errorf("message append for match %s contended %d times: %w",
		m.MatchID, appendAttempts, domain.ErrConflict)
}

// List returns messages for the match in ascending seq order. sinceSeq > 0
// restricts the result to the strict suffix seq > sinceSeq.
func (r *MessageRepo) List(ctx context.Context, matchID string, sinceSeq int64) ([]domain.Message, error) {
	keyCond := "match_id = :m"
	values := map[string]types.AttributeValue{
		":m": &types.AttributeValueMemberS{Value: matchID},
	}
	if sinceSeq > 0 {
		keyCond += " AND seq > :s"
		values[":s"] = &types.AttributeValueMemberN{Value: strconv.FormatInt(sinceSeq, 10)}
	}
	// Strongly consistent: a completed Send must be visible to the next List.
	out, err := r.client.Query(ctx, &dynamodb.QueryInput{
		TableName:                 aws.String(r.tableName),
		KeyConditionExpression:    aws.String(keyCond),
		ExpressionAttributeValues: values,
		ScanIndexForward:          aws.Bool(true),
		ConsistentRead:            aws.Bool(true),
	})
	if err != nil {
		return nil, err
	}
	var msgs []domain.Message
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &msgs); err != nil {
		return nil, err
	}
	return msgs, nil
}

// lastSeq returns the highest assigned seq for the match, or 0 when the
// match has no messages yet.
func (r *MessageRepo) lastSeq(ctx context.Context, matchID string) (int64, error) {
	out, err := r.client.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		KeyConditionExpression: aws.String("match_id = :m"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":m": &types.AttributeValueMemberS{Value: matchID},
		},
		ScanIndexForward: aws.Bool(false),
		Limit:            aws.Int32(1),
		// A stale max would make the conditional insert collide with a seq
		// that is already taken, or worse, skip one.
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return 0, err
	}
	if len(out.Items) == 0 {
		return 0, nil
	}
	var m domain.Message
	if err := attributevalue.UnmarshalMap(out.Items[0], &m); err != nil {
		return 0, err
	}
	return m.Seq, nil
}
