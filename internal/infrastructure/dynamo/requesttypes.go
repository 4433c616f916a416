package dynamo

import (
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/frontdoor-labs/frontdoor-api/internal/domain"
)

// RequestTypeRepo reads the fixed purpose lookup table seeded at bootstrap.
type RequestTypeRepo struct {
	client    *dynamodb.Client
	tableName string
}

func NewRequestTypeRepo(client *dynamodb.Client, tableName string) *RequestTypeRepo {
	return &RequestTypeRepo{client: client, tableName: tableName}
}

// Exists reports whether the purpose label is a known request type.
func (r *RequestTypeRepo) Exists(ctx context.Context, typeLabel string) (bool, error) {
	label := strings.TrimSpace(typeLabel)
	if label == "" {
		return false, nil
	}
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey("type", label),
	})
	if err != nil {
		return false, err
	}
	return out.Item != nil, nil
}

// List returns every purpose label, used by the public intake page.
func (r *RequestTypeRepo) List(ctx context.Context) ([]domain.RequestType, error) {
	out, err := r.client.Scan(ctx, &dynamodb.ScanInput{TableName: aws.String(r.tableName)})
	if err != nil {
		return nil, err
	}
	var rts []domain.RequestType
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &rts); err != nil {
		return nil, fmt.Errorf("unmarshal request types: %w", err)
	}
	return rts, nil
}
