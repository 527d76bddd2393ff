package repository

import (
	"context"
	"errors"

	"project_billing/internal/domain/entities"
	"project_billing/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const defaultProposalsTableName = "proposals"

type proposalItem struct {
	ID              string `dynamodbav:"id"`
	RequestID       string `dynamodbav:"request_id"`
	Title           string `dynamodbav:"title"`
	Content         string `dynamodbav:"content"`
	AuthorID        string `dynamodbav:"author_id"`
	CustomerID      string `dynamodbav:"customer_id"`
	Status          string `dynamodbav:"status"`
	CostType        string `dynamodbav:"cost_type"`
	LineItems       string `dynamodbav:"line_items"`
	Meta            string `dynamodbav:"meta"`
	BillingAddress  string `dynamodbav:"billing_address"`
	ShippingAddress string `dynamodbav:"shipping_address"`
	ConversionState string `dynamodbav:"conversion_state"`
	CreatedAt       string `dynamodbav:"created_at"`
	UpdatedAt       string `dynamodbav:"updated_at"`
}

// ProposalDynamoRepository persists Proposal entities in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//
// ClaimConversion relies on a condition expression over conversion_state so
// two concurrent conversions of the same proposal cannot both win.

type ProposalDynamoRepository struct {
	ddb       *dynamodb.Client
	tableName string
}

var _ interfaces.IProposalRepository = (*ProposalDynamoRepository)(nil)

func NewProposalDynamoRepository(ddb *dynamodb.Client) *ProposalDynamoRepository {
	return &ProposalDynamoRepository{
		ddb:       ddb,
		tableName: getenvDefault("PROPOSALS_TABLE", defaultProposalsTableName),
	}
}

func (r *ProposalDynamoRepository) Create(ctx context.Context, p entities.Proposal) (entities.Proposal, error) {
	av, err := attributevalue.MarshalMap(toProposalItem(p))
	if err != nil {
		return entities.Proposal{}, err
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
		return entities.Proposal{}, err
	}
	return p, nil
}

func (r *ProposalDynamoRepository) GetByID(ctx context.Context, id string) (entities.Proposal, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.Proposal{}, err
	}
	if len(out.Item) == 0 {
		return entities.Proposal{}, nil
	}

	var it proposalItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.Proposal{}, err
	}
	return fromProposalItem(it), nil
}

func (r *ProposalDynamoRepository) Update(ctx context.Context, p entities.Proposal) (entities.Proposal, error) {
	av, err := attributevalue.MarshalMap(toProposalItem(p))
	if err != nil {
		return entities.Proposal{}, err
	}

	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                av,
		ConditionExpression: aws.String("attribute_exists(#id)"),
		ExpressionAttributeNames: map[string]string{
			"#id": "id",
		},
	})
	if err != nil {
		var cfe *types.ConditionalCheckFailedException
		if errors.As(err, &cfe) {
			return entities.Proposal{}, nil
		}
		return entities.Proposal{}, err
	}
	return p, nil
}

func (r *ProposalDynamoRepository) Delete(ctx context.Context, id string) error {
	_, err := r.ddb.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
	})
	return err
}

// ClaimConversion atomically moves conversion_state idle -> in_progress.
// Returns false (no error) when the claim is already held or the proposal is
// gone.
func (r *ProposalDynamoRepository) ClaimConversion(ctx context.Context, id string) (bool, error) {
	_, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConditionExpression: aws.String("attribute_exists(#id) AND #state = :idle"),
		UpdateExpression:    aws.String("SET #state = :in_progress"),
		ExpressionAttributeNames: map[string]string{
			"#id":    "id",
			"#state": "conversion_state",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":idle":        &types.AttributeValueMemberS{Value: string(entities.ConversionStateIdle)},
			":in_progress": &types.AttributeValueMemberS{Value: string(entities.ConversionStateInProgress)},
		},
	})
	if err != nil {
		var cfe *types.ConditionalCheckFailedException
		if errors.As(err, &cfe) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// ReleaseConversion returns the claim to idle after a failed transition.
func (r *ProposalDynamoRepository) ReleaseConversion(ctx context.Context, id string) error {
	_, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConditionExpression: aws.String("attribute_exists(#id)"),
		UpdateExpression:    aws.String("SET #state = :idle"),
		ExpressionAttributeNames: map[string]string{
			"#id":    "id",
			"#state": "conversion_state",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":idle": &types.AttributeValueMemberS{Value: string(entities.ConversionStateIdle)},
		},
	})
	if err != nil {
		var cfe *types.ConditionalCheckFailedException
		if errors.As(err, &cfe) {
			return nil
		}
	}
	return err
}

func toProposalItem(p entities.Proposal) proposalItem {
	return proposalItem{
		ID:              p.ID,
		RequestID:       p.RequestID,
		Title:           p.Title,
		Content:         p.Content,
		AuthorID:        p.AuthorID,
		CustomerID:      p.CustomerID,
		Status:          string(p.Status),
		CostType:        string(p.CostType),
		LineItems:       jsonString(p.LineItems),
		Meta:            jsonString(p.Meta),
		BillingAddress:  jsonString(p.BillingAddress),
		ShippingAddress: jsonString(p.ShippingAddress),
		ConversionState: string(p.ConversionState),
		CreatedAt:       formatTime(p.CreatedAt),
		UpdatedAt:       formatTime(p.UpdatedAt),
	}
}

func fromProposalItem(it proposalItem) entities.Proposal {
	return entities.Proposal{
		ID:              it.ID,
		RequestID:       it.RequestID,
		Title:           it.Title,
		Content:         it.Content,
		AuthorID:        it.AuthorID,
		CustomerID:      it.CustomerID,
		Status:          entities.ProposalStatus(it.Status),
		CostType:        entities.CostProposalType(it.CostType),
		LineItems:       fromJSONString[entities.LineItems](it.LineItems),
		Meta:            fromJSONString[map[string]string](it.Meta),
		BillingAddress:  fromJSONString[*entities.Address](it.BillingAddress),
		ShippingAddress: fromJSONString[*entities.Address](it.ShippingAddress),
		ConversionState: entities.ConversionState(it.ConversionState),
		CreatedAt:       parseTime(it.CreatedAt),
		UpdatedAt:       parseTime(it.UpdatedAt),
	}
}
