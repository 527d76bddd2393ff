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

const defaultProductsTableName = "products"

type productItem struct {
	Ref             string  `dynamodbav:"ref"`
	Name            string  `dynamodbav:"name"`
	Type            string  `dynamodbav:"type"`
	Price           float64 `dynamodbav:"price"`
	SalePrice       float64 `dynamodbav:"sale_price"`
	BillingInterval int     `dynamodbav:"billing_interval"`
	BillingPeriod   string  `dynamodbav:"billing_period"`
}

// ProductDynamoCatalog resolves product references from DynamoDB.
//
// Table requirements:
//   - PK: ref (string)
//
// A missing reference resolves to a zero-Ref product, never an error; the
// validator downgrades it to a skip-with-warning.

type ProductDynamoCatalog struct {
	ddb       *dynamodb.Client
	tableName string
}

var _ interfaces.IProductCatalog = (*ProductDynamoCatalog)(nil)

func NewProductDynamoCatalog(ddb *dynamodb.Client) *ProductDynamoCatalog {
	return &ProductDynamoCatalog{
		ddb:       ddb,
		tableName: getenvDefault("PRODUCTS_TABLE", defaultProductsTableName),
	}
}

func (r *ProductDynamoCatalog) GetByRef(ctx context.Context, ref string) (entities.Product, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"ref": &types.AttributeValueMemberS{Value: ref},
		},
	})
	if err != nil {
		return entities.Product{}, err
	}
	if len(out.Item) == 0 {
		return entities.Product{}, nil
	}

	var it productItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.Product{}, err
	}
	return entities.Product{
		Ref:             it.Ref,
		Name:            it.Name,
		Type:            entities.ProductType(it.Type),
		Price:           it.Price,
		SalePrice:       it.SalePrice,
		BillingInterval: it.BillingInterval,
		BillingPeriod:   it.BillingPeriod,
	}, nil
}
