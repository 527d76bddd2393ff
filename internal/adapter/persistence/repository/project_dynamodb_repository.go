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

const defaultProjectsTableName = "projects"

type projectItem struct {
	ID         string `dynamodbav:"id"`
	ProposalID string `dynamodbav:"proposal_id"`
	CustomerID string `dynamodbav:"customer_id"`
	AuthorID   string `dynamodbav:"author_id"`
	Title      string `dynamodbav:"title"`
	Content    string `dynamodbav:"content"`
	Status     string `dynamodbav:"status"`
	Meta       string `dynamodbav:"meta"`
	CreatedAt  string `dynamodbav:"created_at"`
	UpdatedAt  string `dynamodbav:"updated_at"`
}

// ProjectDynamoRepository persists Project entities in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//
// Meta is stored as one JSON document; SetMeta merges keys read-modify-write,
// which is acceptable because conversion is the only writer during the
// transition (the claim serializes it).

type ProjectDynamoRepository struct {
	ddb       *dynamodb.Client
	tableName string
}

var _ interfaces.IProjectRepository = (*ProjectDynamoRepository)(nil)

func NewProjectDynamoRepository(ddb *dynamodb.Client) *ProjectDynamoRepository {
	return &ProjectDynamoRepository{
		ddb:       ddb,
		tableName: getenvDefault("PROJECTS_TABLE", defaultProjectsTableName),
	}
}

func (r *ProjectDynamoRepository) Create(ctx context.Context, p entities.Project) (entities.Project, error) {
	av, err := attributevalue.MarshalMap(toProjectItem(p))
	if err != nil {
		return entities.Project{}, err
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
		return entities.Project{}, err
	}
	return p, nil
}

func (r *ProjectDynamoRepository) GetByID(ctx context.Context, id string) (entities.Project, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.Project{}, err
	}
	if len(out.Item) == 0 {
		return entities.Project{}, nil
	}

	var it projectItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.Project{}, err
	}
	return fromProjectItem(it), nil
}

func (r *ProjectDynamoRepository) SetStatus(ctx context.Context, id string, status entities.ProjectStatus) error {
	_, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConditionExpression: aws.String("attribute_exists(#id)"),
		UpdateExpression:    aws.String("SET #status = :status, #updated_at = :updated_at"),
		ExpressionAttributeNames: map[string]string{
			"#id":         "id",
			"#status":     "status",
			"#updated_at": "updated_at",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":status":     &types.AttributeValueMemberS{Value: string(status)},
			":updated_at": &types.AttributeValueMemberS{Value: formatTime(time.Now())},
		},
	})
	return err
}

func (r *ProjectDynamoRepository) SetMeta(ctx context.Context, id string, meta map[string]string) error {
	p, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if p.ID == "" {
		return errors.New("project not found")
	}

	if p.Meta == nil {
		p.Meta = map[string]string{}
	}
	for k, v := range meta {
		p.Meta[k] = v
	}

	_, err = r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConditionExpression: aws.String("attribute_exists(#id)"),
		UpdateExpression:    aws.String("SET #meta = :meta, #updated_at = :updated_at"),
		ExpressionAttributeNames: map[string]string{
			"#id":         "id",
			"#meta":       "meta",
			"#updated_at": "updated_at",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":meta":       &types.AttributeValueMemberS{Value: jsonString(p.Meta)},
			":updated_at": &types.AttributeValueMemberS{Value: formatTime(time.Now())},
		},
	})
	return err
}

func toProjectItem(p entities.Project) projectItem {
	return projectItem{
		ID:         p.ID,
		ProposalID: p.ProposalID,
		CustomerID: p.CustomerID,
		AuthorID:   p.AuthorID,
		Title:      p.Title,
		Content:    p.Content,
		Status:     string(p.Status),
		Meta:       jsonString(p.Meta),
		CreatedAt:  formatTime(p.CreatedAt),
		UpdatedAt:  formatTime(p.UpdatedAt),
	}
}

func fromProjectItem(it projectItem) entities.Project {
	return entities.Project{
		ID:         it.ID,
		ProposalID: it.ProposalID,
		CustomerID: it.CustomerID,
		AuthorID:   it.AuthorID,
		Title:      it.Title,
		Content:    it.Content,
		Status:     entities.ProjectStatus(it.Status),
		Meta:       fromJSONString[map[string]string](it.Meta),
		CreatedAt:  parseTime(it.CreatedAt),
		UpdatedAt:  parseTime(it.UpdatedAt),
	}
}
