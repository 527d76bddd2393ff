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

const defaultCustomersTableName = "customers"

type customerItem struct {
	ID              string `dynamodbav:"id"`
	Email           string `dynamodbav:"email"`
	Name            string `dynamodbav:"name"`
	BillingAddress  string `dynamodbav:"billing_address"`
	ShippingAddress string `dynamodbav:"shipping_address"`
}

// CustomerDynamoRepository reads Customer profiles from DynamoDB.
//
// Table requirements:
//   - PK: id (string)

type CustomerDynamoRepository struct {
	ddb       *dynamodb.Client
	tableName string
}

var _ interfaces.ICustomerRepository = (*CustomerDynamoRepository)(nil)

func NewCustomerDynamoRepository(ddb *dynamodb.Client) *CustomerDynamoRepository {
	return &CustomerDynamoRepository{
		ddb:       ddb,
		tableName: getenvDefault("CUSTOMERS_TABLE", defaultCustomersTableName),
	}
}

func (r *CustomerDynamoRepository) GetByID(ctx context.Context, id string) (entities.Customer, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
	})
	if err != nil {
		return entities.Customer{}, err
	}
	if len(out.Item) == 0 {
		return entities.Customer{}, nil
	}

	var it customerItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.Customer{}, err
	}
	return entities.Customer{
		ID:              it.ID,
		Email:           it.Email,
		Name:            it.Name,
		BillingAddress:  fromJSONString[*entities.Address](it.BillingAddress),
		ShippingAddress: fromJSONString[*entities.Address](it.ShippingAddress),
	}, nil
}
