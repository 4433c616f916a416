package dynamo

import (
	"context"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/frontdoor-labs/frontdoor-api/internal/domain"
)

// ContactRepo reads a pingee's address book. The intake service only needs
// the lookup direction contact-string -> display name; address-book editing
// lives elsewhere.
type ContactRepo struct {
	client    *dynamodb.Client
	tableName string
}

func NewContactRepo(client *dynamodb.Client, tableName string) *ContactRepo {
	return &ContactRepo{client: client, tableName: tableName}
}

// ListByOwner queries the owner_id-index GSI.
func (r *ContactRepo) ListByOwner(ctx context.Context, ownerID string) ([]domain.Contact, error) {
	out, err := r.client.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String("owner_id-index"),
		KeyConditionExpression: aws.String("owner_id = :o"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":o": &types.AttributeValueMemberS{Value: ownerID},
		},
	})
	if err != nil {
		return nil, err
	}
	var contacts []domain.Contact
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &contacts); err != nil {
		return nil, err
	}
	return contacts, nil
}

// DisplayNames builds a lookup from normalized contact string (email or
// phone) to display name for the owner's whole address book. One query
// serves an entire inbox render.
func (r *ContactRepo) DisplayNames(ctx context.Context, ownerID string) (map[string]string, error) {
	contacts, err := r.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	names := make(map[string]string, len(contacts))
	for _, c := range contacts {
		if c.Email != nil {
			if k := strings.ToLower(strings.TrimSpace(*c.Email)); k != "" {
				names[k] = c.Name
			}
		}
		if c.Phone != nil {
			if k := strings.TrimSpace(*c.Phone); k != "" {
				names[k] = c.Name
			}
		}
	}
	return names, nil
}
