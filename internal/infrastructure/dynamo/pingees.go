package dynamo

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/frontdoor-labs/frontdoor-api/internal/domain"
)

// PingeeRepo provides typed DynamoDB operations for the pingees table.
type PingeeRepo struct {
	client    *dynamodb.Client
	tableName string
}

func NewPingeeRepo(client *dynamodb.Client, tableName string) *PingeeRepo {
	return &PingeeRepo{client: client, tableName: tableName}
}

func (r *PingeeRepo) Get(ctx context.Context, pingeeID string) (*domain.Pingee, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey("pingee_id", pingeeID),
	})
	if err != nil {
		return nil, err
	}
	if out.Item == nil {
		return nil, fmt.Errorf("pingee not found: %w", domain.ErrNotFound)
	}
	var p domain.Pingee
	if err := attributevalue.UnmarshalMap(out.Item, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// Update applies a partial field update to an existing pingee. Missing
// pingees are reported as ErrNotFound rather than being created.
func (r *PingeeRepo) Update(ctx context.Context, pingeeID string, updates map[string]interface{}) error {
	updates["updated_at"] = time.Now().UTC().Format(time.RFC3339)
	ue, err := buildUpdateExpr(updates)
	if err != nil {
		return err
	}
	_, err = r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(r.tableName),
		Key:                       strKey("pingee_id", pingeeID),
		UpdateExpression:          aws.String(ue.Expr),
		ConditionExpression:       aws.String("attribute_exists(pingee_id)"),
		ExpressionAttributeNames:  ue.Names,
		ExpressionAttributeValues: ue.Values,
	})
	if err != nil {
		var ccf *types.ConditionalCheckFailedException
		if errors.As(err, &ccf) {
			return fmt.Errorf("pingee not found: %w", domain.ErrNotFound)
		}
		return err
	}
	return nil
}

// GetByLinkSlug resolves a public link slug to its pingee via the
// link_slug-index GSI. Slugs are stored lowercase; lookup normalizes too.
func (r *PingeeRepo) GetByLinkSlug(ctx context.Context, slug string) (*domain.Pingee, error) {
	normalized := strings.ToLower(strings.TrimSpace(slug))
	out, err := r.client.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String("link_slug-index"),
		KeyConditionExpression: aws.String("link_slug = :s"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":s": &types.AttributeValueMemberS{Value: normalized},
		},
		Limit: aws.Int32(1),
	})
	if err != nil {
		return nil, err
	}
	if len(out.Items) == 0 {
		return nil, fmt.Errorf("pingee not found: %w", domain.ErrNotFound)
	}
	var p domain.Pingee
	if err := attributevalue.UnmarshalMap(out.Items[0], &p); err != nil {
		return nil, err
	}
	return &p, nil
}
