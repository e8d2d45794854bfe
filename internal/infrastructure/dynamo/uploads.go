package dynamo

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/storefront-api/internal/domain"
)

// UploadRepo records uploaded images in the uploads table.
type UploadRepo struct {
	client    *dynamodb.Client
	tableName string
}

func NewUploadRepo(client *dynamodb.Client, tableName string) *UploadRepo {
	return &UploadRepo{client: client, tableName: tableName}
}

func (r *UploadRepo) Put(ctx context.Context, u *domain.Upload) error {
	item, err := attributevalue.MarshalMap(u)
	if err != nil {
		return fmt.Errorf("marshal upload: %w", err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      item,
	})
	if err != nil {
		return fmt.Errorf("put upload: %w", domain.ErrStorage)
	}
	return nil
}

func (r *UploadRepo) Get(ctx context.Context, fileID string) (*domain.Upload, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey("file_id", fileID),
	})
	if err != nil {
		return nil, fmt.Errorf("get upload: %w", domain.ErrStorage)
	}
	if out.Item == nil {
		return nil, fmt.Errorf("upload not found: %w", domain.ErrNotFound)
	}
	var u domain.Upload
	if err := attributevalue.UnmarshalMap(out.Item, &u); err != nil {
		return nil, err
	}
	return &u, nil
}
