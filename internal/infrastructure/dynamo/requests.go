package dynamo

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/frontdoor-labs/frontdoor-api/internal/domain"
)

// RequestRepo provides typed DynamoDB operations for the requests table.
//
// "to", "from", "type", "status" and "reply" are DynamoDB reserved words,
// so every expression goes through ExpressionAttributeNames.
type RequestRepo struct {
	client    *dynamodb.Client
	tableName string
}

func NewRequestRepo(client *dynamodb.Client, tableName string) *RequestRepo {
	return &RequestRepo{client: client, tableName: tableName}
}

func (r *RequestRepo) Put(ctx context.Context, req *domain.Request) error {
	item, err := attributevalue.MarshalMap(req)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      item,
	})
	return err
}

// Get fetches a request owned by ownerID. Requests belonging to someone else
// are indistinguishable from absent ones.
func (r *RequestRepo) Get(ctx context.Context, requestID, ownerID string) (*domain.Request, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey("request_id", requestID),
	})
	if err != nil {
		return nil, err
	}
	if out.Item == nil {
		return nil, fmt.Errorf("request not found: %w", domain.ErrNotFound)
	}
	var req domain.Request
	if err := attributevalue.UnmarshalMap(out.Item, &req); err != nil {
		return nil, err
	}
	if req.To != ownerID {
		return nil, fmt.Errorf("request not found: %w", domain.ErrNotFound)
	}
	return &req, nil
}

// MarkInReply sets status.inreply = true. Idempotent; re-marking an already
// marked request is a no-op write.
func (r *RequestRepo) MarkInReply(ctx context.Context, requestID, ownerID string) error {
	_, err := r.setStatusFlag(ctx, requestID, ownerID, "inreply")
	return err
}

// AppendReply appends text to the reply list and sets status.replied = true
// in a single update. Returns false when the request does not exist or is
// not owned by ownerID.
func (r *RequestRepo) AppendReply(ctx context.Context, requestID, ownerID, text string) (bool, error) {
	textAV, err := attributevalue.Marshal(text)
	if err != nil {
		return false, fmt.Errorf("marshal reply: %w", err)
	}
	_, err = r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:           aws.String(r.tableName),
		Key:                 strKey("request_id", requestID),
		UpdateExpression:    aws.String("SET #reply = list_append(if_not_exists(#reply, :empty), :r), #status.#flag = :t"),
		ConditionExpression: aws.String("#to = :owner"),
		ExpressionAttributeNames: map[string]string{
			"#reply":  "reply",
			"#status": "status",
			"#flag":   "replied",
			"#to":     "to",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":empty": &types.AttributeValueMemberL{Value: []types.AttributeValue{}},
			":r":     &types.AttributeValueMemberL{Value: []types.AttributeValue{textAV}},
			":t":     &types.AttributeValueMemberBOOL{Value: true},
			":owner": &types.AttributeValueMemberS{Value: ownerID},
		},
	})
	if err != nil {
		var ccf *types.ConditionalCheckFailedException
		if errors.As(err, &ccf) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// SetClosed sets status.closed = true. Returns false when the request does
// not exist or is not owned by ownerID.
func (r *RequestRepo) SetClosed(ctx context.Context, requestID, ownerID string) (bool, error) {
	return r.setStatusFlag(ctx, requestID, ownerID, "closed")
}

func (r *RequestRepo) setStatusFlag(ctx context.Context, requestID, ownerID, flag string) (bool, error) {
	_, err := r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:           aws.String(r.tableName),
		Key:                 strKey("request_id", requestID),
		UpdateExpression:    aws.String("SET #status.#flag = :t"),
		ConditionExpression: aws.String("#to = :owner"),
		ExpressionAttributeNames: map[string]string{
			"#status": "status",
			"#flag":   flag,
			"#to":     "to",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":t":     &types.AttributeValueMemberBOOL{Value: true},
			":owner": &types.AttributeValueMemberS{Value: ownerID},
		},
	})
	if err != nil {
		var ccf *types.ConditionalCheckFailedException
		if errors.As(err, &ccf) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// GetPublicStatus returns the unauthenticated status projection for a
// request id. No ownership check — the id itself is the capability.
func (r *RequestRepo) GetPublicStatus(ctx context.Context, requestID string) (*domain.PublicRequestStatus, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey("request_id", requestID),
	})
	if err != nil {
		return nil, err
	}
	if out.Item == nil {
		return nil, fmt.Errorf("request not found: %w", domain.ErrNotFound)
	}
	var req domain.Request
	if err := attributevalue.UnmarshalMap(out.Item, &req); err != nil {
		return nil, err
	}
	return &domain.PublicRequestStatus{
		RequestID: req.RequestID,
		Type:      req.Type,
		Received:  req.Received,
		Status:    req.Status,
	}, nil
}

// ListForOwner returns all requests addressed to ownerID, newest first,
// via the to-received-index GSI.
func (r *RequestRepo) ListForOwner(ctx context.Context, ownerID string) ([]domain.Request, error) {
	out, err := r.client.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String("to-received-index"),
		KeyConditionExpression: aws.String("#to = :owner"),
		ExpressionAttributeNames: map[string]string{
			"#to": "to",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":owner": &types.AttributeValueMemberS{Value: ownerID},
		},
		ScanIndexForward: aws.Bool(false),
	})
	if err != nil {
		return nil, err
	}
	var reqs []domain.Request
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &reqs); err != nil {
		return nil, err
	}
	return reqs, nil
}

// QueueSummary aggregates the owner's requests into per-type counters,
// largest first. The aggregation runs client-side over the owner's partition
// of the GSI.
func (r *RequestRepo) QueueSummary(ctx context.Context, ownerID string) ([]domain.QueueSummaryEntry, error) {
	reqs, err := r.ListForOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	counts := make(map[string]int)
	for _, req := range reqs {
		counts[req.Type]++
	}
	entries := make([]domain.QueueSummaryEntry, 0, len(counts))
	for label, n := range counts {
		entries = append(entries, domain.QueueSummaryEntry{
			Type:  label,
			Count: n,
			Color: domain.ColorFor(label),
		})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Count != entries[j].Count {
			return entries[i].Count > entries[j].Count
		}
		return entries[i].Type < entries[j].Type
	})
	return entries, nil
}
