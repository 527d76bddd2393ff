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

const defaultSubscriptionsTableName = "subscriptions"

type subscriptionItem struct {
	ID              string  `dynamodbav:"id"`
	CustomerID      string  `dynamodbav:"customer_id"`
	ProposalID      string  `dynamodbav:"proposal_id"`
	ProjectID       string  `dynamodbav:"project_id"`
	ParentOrderID   string  `dynamodbav:"parent_order_id"`
	Status          string  `dynamodbav:"status"`
	Interval        int     `dynamodbav:"billing_interval"`
	Period          string  `dynamodbav:"billing_period"`
	Lines           string  `dynamodbav:"lines"`
	Total           float64 `dynamodbav:"total"`
	BillingAddress  string  `dynamodbav:"billing_address"`
	ShippingAddress string  `dynamodbav:"shipping_address"`
	ProviderRef     string  `dynamodbav:"provider_ref"`
	CreatedAt       string  `dynamodbav:"created_at"`
	UpdatedAt       string  `dynamodbav:"updated_at"`
}

// SubscriptionDynamoRepository persists Subscription entities in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//
// Delete supports the builder's rollback when the recurring charge cannot be
// set up after the record was written.

type SubscriptionDynamoRepository struct {
	ddb       *dynamodb.Client
	tableName string
}

var _ interfaces.ISubscriptionRepository = (*SubscriptionDynamoRepository)(nil)

func NewSubscriptionDynamoRepository(ddb *dynamodb.Client) *SubscriptionDynamoRepository {
	return &SubscriptionDynamoRepository{
		ddb:       ddb,
		tableName: getenvDefault("SUBSCRIPTIONS_TABLE", defaultSubscriptionsTableName),
	}
}

func (r *SubscriptionDynamoRepository) Create(ctx context.Context, s entities.Subscription) (entities.Subscription, error) {
	av, err := attributevalue.MarshalMap(toSubscriptionItem(s))
	if err != nil {
		return entities.Subscription{}, err
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
		return entities.Subscription{}, err
	}
	return s, nil
}

func (r *SubscriptionDynamoRepository) GetByID(ctx context.Context, id string) (entities.Subscription, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.Subscription{}, err
	}
	if len(out.Item) == 0 {
		return entities.Subscription{}, nil
	}

	var it subscriptionItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.Subscription{}, err
	}
	return fromSubscriptionItem(it), nil
}

func (r *SubscriptionDynamoRepository) SetProviderRef(ctx context.Context, id, providerRef string) error {
	_, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConditionExpression: aws.String("attribute_exists(#id)"),
		UpdateExpression:    aws.String("SET #provider_ref = :provider_ref, #updated_at = :updated_at"),
		ExpressionAttributeNames: map[string]string{
			"#id":           "id",
			"#provider_ref": "provider_ref",
			"#updated_at":   "updated_at",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":provider_ref": &types.AttributeValueMemberS{Value: providerRef},
			":updated_at":   &types.AttributeValueMemberS{Value: formatTime(time.Now())},
		},
	})
	if err != nil {
		var cfe *types.ConditionalCheckFailedException
		if errors.As(err, &cfe) {
			return errors.New("subscription not found")
		}
	}
	return err
}

func (r *SubscriptionDynamoRepository) Delete(ctx context.Context, id string) error {
	_, err := r.ddb.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
	})
	return err
}

func toSubscriptionItem(s entities.Subscription) subscriptionItem {
	return subscriptionItem{
		ID:              s.ID,
		CustomerID:      s.CustomerID,
		ProposalID:      s.ProposalID,
		ProjectID:       s.ProjectID,
		ParentOrderID:   s.ParentOrderID,
		Status:          string(s.Status),
		Interval:        s.Schedule.Interval,
		Period:          s.Schedule.Period,
		Lines:           jsonString(s.Lines),
		Total:           s.Total,
		BillingAddress:  jsonString(s.BillingAddress),
		ShippingAddress: jsonString(s.ShippingAddress),
		ProviderRef:     s.ProviderRef,
		CreatedAt:       formatTime(s.CreatedAt),
		UpdatedAt:       formatTime(s.UpdatedAt),
	}
}

func fromSubscriptionItem(it subscriptionItem) entities.Subscription {
	return entities.Subscription{
		ID:              it.ID,
		CustomerID:      it.CustomerID,
		ProposalID:      it.ProposalID,
		ProjectID:       it.ProjectID,
		ParentOrderID:   it.ParentOrderID,
		Status:          entities.SubscriptionStatus(it.Status),
		Schedule:        entities.BillingSchedule{Interval: it.Interval, Period: it.Period},
		Lines:           fromJSONString[[]entities.OrderLine](it.Lines),
		Total:           it.Total,
		BillingAddress:  fromJSONString[*entities.Address](it.BillingAddress),
		ShippingAddress: fromJSONString[*entities.Address](it.ShippingAddress),
		ProviderRef:     it.ProviderRef,
		CreatedAt:       parseTime(it.CreatedAt),
		UpdatedAt:       parseTime(it.UpdatedAt),
	}
}
