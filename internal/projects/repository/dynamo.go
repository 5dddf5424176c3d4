package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/ishanichuri/portfolio/internal/projects/domain"
)

// DynamoAPI is the subset of the DynamoDB client used by DynamoRepository.
type DynamoAPI interface {
	GetItem(ctx context.Context, in *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	PutItem(ctx context.Context, in *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	DeleteItem(ctx context.Context, in *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error)
	Scan(ctx context.Context, in *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error)
	DescribeTable(ctx context.Context, in *dynamodb.DescribeTableInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DescribeTableOutput, error)
}

// DynamoRepository stores one item per project, keyed by project_id.
type DynamoRepository struct {
	api   DynamoAPI
	table string
	now   Clock
}

func NewDynamoRepository(api DynamoAPI, table string) *DynamoRepository {
	return &DynamoRepository{api: api, table: table, now: utcNow}
}

func (r *DynamoRepository) List(ctx context.Context, status domain.Status) ([]domain.ProjectRecord, error) {
	in := &dynamodb.ScanInput{TableName: aws.String(r.table)}
	if status != "" {
		in.FilterExpression = aws.String("#s = :s")
		in.ExpressionAttributeNames = map[string]string{"#s": "status"}
		in.ExpressionAttributeValues = map[string]types.AttributeValue{
			":s": &types.AttributeValueMemberS{Value: string(status)},
		}
	}

	out := make([]domain.ProjectRecord, 0, 16)
	pages := dynamodb.NewScanPaginator(r.api, in)
	for pages.HasMorePages() {
		page, err := pages.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("scan projects: %w", err)
		}
		var batch []domain.ProjectRecord
		if err := attributevalue.UnmarshalListOfMaps(page.Items, &batch); err != nil {
			return nil, fmt.Errorf("decode projects: %w", err)
		}
		out = append(out, batch...)
	}
	domain.SortProjects(out)
	return out, nil
}

func (r *DynamoRepository) Get(ctx context.Context, projectID string) (*domain.ProjectRecord, error) {
	res, err := r.api.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.table),
		Key:       projectKey(projectID),
	})
	if err != nil {
		return nil, fmt.Errorf("get project: %w", err)
	}
	if len(res.Item) == 0 {
		return nil, domain.ErrNotFound
	}
	var rec domain.ProjectRecord
	if err := attributevalue.UnmarshalMap(res.Item, &rec); err != nil {
		return nil, fmt.Errorf("decode project: %w", err)
	}
	return &rec, nil
}

func (r *DynamoRepository) Create(ctx context.Context, in domain.ProjectInput) (*domain.ProjectRecord, error) {
	rec := newRecord(in, r.now())
	if err := r.put(ctx, rec, aws.String("attribute_not_exists(project_id)")); err != nil {
		var cond *types.ConditionalCheckFailedException
		if errors.As(err, &cond) {
			return nil, domain.ErrConflict
		}
		return nil, fmt.Errorf("create project: %w", err)
	}
	return &rec, nil
}

func (r *DynamoRepository) Update(ctx context.Context, projectID string, patch domain.ProjectPatch) (*domain.ProjectRecord, error) {
	existing, err := r.Get(ctx, projectID)
	if err != nil {
		return nil, err
	}
	updated := patch.Apply(*existing, r.now())
	if err := r.put(ctx, updated, aws.String("attribute_exists(project_id)")); err != nil {
		var cond *types.ConditionalCheckFailedException
		if errors.As(err, &cond) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("update project: %w", err)
	}
	return &updated, nil
}

func (r *DynamoRepository) Delete(ctx context.Context, projectID string) (bool, error) {
	res, err := r.api.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName:    aws.String(r.table),
		Key:          projectKey(projectID),
		ReturnValues: types.ReturnValueAllOld,
	})
	if err != nil {
		return false, fmt.Errorf("delete project: %w", err)
	}
	return len(res.Attributes) > 0, nil
}

func (r *DynamoRepository) Ping(ctx context.Context) error {
	_, err := r.api.DescribeTable(ctx, &dynamodb.DescribeTableInput{TableName: aws.String(r.table)})
	return err
}

func (r *DynamoRepository) put(ctx context.Context, rec domain.ProjectRecord, cond *string) error {
	item, err := attributevalue.MarshalMap(rec)
	if err != nil {
		return fmt.Errorf("encode project: %w", err)
	}
	_, err = r.api.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.table),
		Item:                item,
		ConditionExpression: cond,
	})
	return err
}

func projectKey(projectID string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"project_id": &types.AttributeValueMemberS{Value: projectID},
	}
}
