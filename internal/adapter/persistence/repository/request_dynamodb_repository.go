package repository

import (
	"context"
	"errors"
	"time"

	"project_billing/internal/domain/entities"
	"project_billing/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const defaultRequestsTableName = "project_requests"

type requestItem struct {
	ID         string `dynamodbav:"id"`
	CustomerID string `dynamodbav:"customer_id"`
	Title      string `dynamodbav:"title"`
	Content    string `dynamodbav:"content"`
	Budget     string `dynamodbav:"budget"`
	StartDate  string `dynamodbav:"start_date"`
	Status     string `dynamodbav:"status"`
	ProposalID string `dynamodbav:"proposal_id"`
	CreatedAt  string `dynamodbav:"created_at"`
	UpdatedAt  string `dynamodbav:"updated_at"`
}

// RequestDynamoRepository persists ProjectRequest entities in DynamoDB.
//
// Table requirements:
//   - PK: id (string)

type RequestDynamoRepository struct {
	ddb       *dynamodb.Client
	tableName string
}

var _ interfaces.IRequestRepository = (*RequestDynamoRepository)(nil)

func NewRequestDynamoRepository(ddb *dynamodb.Client) *RequestDynamoRepository {
	return &RequestDynamoRepository{
		ddb:       ddb,
		tableName: getenvDefault("REQUESTS_TABLE", defaultRequestsTableName),
	}
}

func (r *RequestDynamoRepository) Create(ctx context.Context, req entities.ProjectRequest) (entities.ProjectRequest, error) {
	av, err := attributevalue.MarshalMap(toRequestItem(req))
	if err != nil {
		return entities.ProjectRequest{}, err
	}

	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                av,
		ConditionExpression: aws.String("attribute_not_exists(#id)"),
		ExpressionAttributeNames: map[string]string{
			"#id": "id",
		},
	})
	if err != nil {
		return entities.ProjectRequest{}, err
	}
	return req, nil
}

func (r *RequestDynamoRepository) GetByID(ctx context.Context, id string) (entities.ProjectRequest, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.ProjectRequest{}, err
	}
	if len(out.Item) == 0 {
		return entities.ProjectRequest{}, nil
	}

	var it requestItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.ProjectRequest{}, err
	}
	return fromRequestItem(it), nil
}

// MarkAccepted flips a pending request to accepted and records the proposal
// it became. The status condition keeps a request from being converted twice.
func (r *RequestDynamoRepository) MarkAccepted(ctx context.Context, id, proposalID string) (entities.ProjectRequest, error) {
	out, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConditionExpression: aws.String("attribute_exists(#id) AND #status = :pending"),
		UpdateExpression:    aws.String("SET #status = :accepted, #proposal_id = :proposal_id, #updated_at = :updated_at"),
		ExpressionAttributeNames: map[string]string{
			"#id":          "id",
			"#status":      "status",
			"#proposal_id": "proposal_id",
			"#updated_at":  "updated_at",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":pending":     &types.AttributeValueMemberS{Value: string(entities.RequestStatusPending)},
			":accepted":    &types.AttributeValueMemberS{Value: string(entities.RequestStatusAccepted)},
			":proposal_id": &types.AttributeValueMemberS{Value: proposalID},
			":updated_at":  &types.AttributeValueMemberS{Value: formatTime(time.Now())},
		},
		ReturnValues: types.ReturnValueAllNew,
	})
	if err != nil {
		var cfe *types.ConditionalCheckFailedException
		if errors.As(err, &cfe) {
			return entities.ProjectRequest{}, nil
		}
		return entities.ProjectRequest{}, err
	}

	var it requestItem
	if err := attributevalue.UnmarshalMap(out.Attributes, &it); err != nil {
		return entities.ProjectRequest{}, err
	}
	return fromRequestItem(it), nil
}

func toRequestItem(r entities.ProjectRequest) requestItem {
	return requestItem{
		ID:         r.ID,
		CustomerID: r.CustomerID,
		Title:      r.Title,
		Content:    r.Content,
		Budget:     r.Budget,
		StartDate:  r.StartDate,
		Status:     string(r.Status),
		ProposalID: r.ProposalID,
		CreatedAt:  formatTime(r.CreatedAt),
		UpdatedAt:  formatTime(r.UpdatedAt),
	}
}

func fromRequestItem(it requestItem) entities.ProjectRequest {
	return entities.ProjectRequest{
		ID:         it.ID,
		CustomerID: it.CustomerID,
		Title:      it.Title,
		Content:    it.Content,
		Budget:     it.Budget,
		StartDate:  it.StartDate,
		Status:     entities.RequestStatus(it.Status),
		ProposalID: it.ProposalID,
		CreatedAt:  parseTime(it.CreatedAt),
		UpdatedAt:  parseTime(it.UpdatedAt),
	}
}
