package repository

import (
	"context"

	"project_billing/internal/domain/entities"
	"project_billing/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const defaultOrdersTableName = "orders"

type orderItem struct {
	ID              string  `dynamodbav:"id"`
	CustomerID      string  `dynamodbav:"customer_id"`
	ProposalID      string  `dynamodbav:"proposal_id"`
	ProjectID       string  `dynamodbav:"project_id"`
	Status          string  `dynamodbav:"status"`
	Lines           string  `dynamodbav:"lines"`
	Total           float64 `dynamodbav:"total"`
	BillingAddress  string  `dynamodbav:"billing_address"`
	ShippingAddress string  `dynamodbav:"shipping_address"`
	ProviderRef     string  `dynamodbav:"provider_ref"`
	CreatedAt       string  `dynamodbav:"created_at"`
	UpdatedAt       string  `dynamodbav:"updated_at"`
}

// OrderDynamoRepository persists the one-time parent Order in DynamoDB.
//
// Table requirements:
//   - PK: id (string)

type OrderDynamoRepository struct {
	ddb       *dynamodb.Client
	tableName string
}

var _ interfaces.IOrderRepository = (*OrderDynamoRepository)(nil)

func NewOrderDynamoRepository(ddb *dynamodb.Client) *OrderDynamoRepository {
	return &OrderDynamoRepository{
		ddb:       ddb,
		tableName: getenvDefault("ORDERS_TABLE", defaultOrdersTableName),
	}
}

func (r *OrderDynamoRepository) Create(ctx context.Context, o entities.Order) (entities.Order, error) {
	av, err := attributevalue.MarshalMap(toOrderItem(o))
	if err != nil {
		return entities.Order{}, err
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
		return entities.Order{}, err
	}
	return o, nil
}

func (r *OrderDynamoRepository) GetByID(ctx context.Context, id string) (entities.Order, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.Order{}, err
	}
	if len(out.Item) == 0 {
		return entities.Order{}, nil
	}

	var it orderItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.Order{}, err
	}
	return fromOrderItem(it), nil
}

func toOrderItem(o entities.Order) orderItem {
	return orderItem{
		ID:              o.ID,
		CustomerID:      o.CustomerID,
		ProposalID:      o.ProposalID,
		ProjectID:       o.ProjectID,
		Status:          string(o.Status),
		Lines:           jsonString(o.Lines),
		Total:           o.Total,
		BillingAddress:  jsonString(o.BillingAddress),
		ShippingAddress: jsonString(o.ShippingAddress),
		ProviderRef:     o.ProviderRef,
		CreatedAt:       formatTime(o.CreatedAt),
		UpdatedAt:       formatTime(o.UpdatedAt),
	}
}

func fromOrderItem(it orderItem) entities.Order {
	return entities.Order{
		ID:              it.ID,
		CustomerID:      it.CustomerID,
		ProposalID:      it.ProposalID,
		ProjectID:       it.ProjectID,
		Status:          entities.OrderStatus(it.Status),
		Lines:           fromJSONString[[]entities.OrderLine](it.Lines),
		Total:           it.Total,
		BillingAddress:  fromJSONString[*entities.Address](it.BillingAddress),
		ShippingAddress: fromJSONString[*entities.Address](it.ShippingAddress),
		ProviderRef:     it.ProviderRef,
		CreatedAt:       parseTime(it.CreatedAt),
		UpdatedAt:       parseTime(it.UpdatedAt),
	}
}
