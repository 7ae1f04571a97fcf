package repo

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/pkg/errors"

	"github.com/BuzzLyutic/taskseed-api/internal/model"
)

// DynamoAPI is the subset of *dynamodb.Client the store uses.
type DynamoAPI interface {
	GetItem(ctx context.Context, in *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	PutItem(ctx context.Context, in *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	DeleteItem(ctx context.Context, in *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error)
	Query(ctx context.Context, in *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
	Scan(ctx context.Context, in *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error)
}

// NewDynamoClient builds a client from the default AWS credential chain.
// A non-empty endpoint targets DynamoDB Local with static dummy credentials.
func NewDynamoClient(ctx context.Context, region, endpoint string) (*dynamodb.Client, error) {
	opts := []func(*config.LoadOptions) error{config.WithRegion(region)}
	if endpoint != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider("local", "local", ""),
		))
	}

	cfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, errors.Wrap(err, "load aws config")
	}

	return dynamodb.NewFromConfig(cfg, func(o *dynamodb.Options) {
		if endpoint != "" {
			o.EndpointResolver = dynamodb.EndpointResolverFromURL(endpoint)
		}
	}), nil
}

type DynamoStore struct {
	client DynamoAPI
	schema Schema
}

func NewDynamoStore(client DynamoAPI, schema Schema) *DynamoStore {
	return &DynamoStore{
		client: client,
		schema: schema,
	}
}

func (s *DynamoStore) key(value string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		s.schema.Key: &types.AttributeValueMemberS{Value: value},
	}
}

func (s *DynamoStore) Get(ctx context.Context, key string) (model.Item, error) {
	out, err := s.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(s.schema.Table),
		Key:       s.key(key),
	})
	if err != nil {
		return nil, errors.Wrapf(err, "dynamodb get %s", s.schema.Table)
	}
	if len(out.Item) == 0 {
		return nil, ErrNotFound
	}

	var it model.Item
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return nil, errors.Wrapf(err, "dynamodb unmarshal %s", s.schema.Table)
	}
	return it, nil
}

func (s *DynamoStore) Put(ctx context.Context, item model.Item) (model.Item, error) {
	if item.Str(s.schema.Key) == "" {
		return nil, fmt.Errorf("%s: item has no %q key", s.schema.Table, s.schema.Key)
	}
	av, err := attributevalue.MarshalMap(item)
	if err != nil {
		return nil, errors.Wrapf(err, "dynamodb marshal %s", s.schema.Table)
	}

	if _, err := s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.schema.Table),
		Item:      av,
	}); err != nil {
		return nil, errors.Wrapf(err, "dynamodb put %s", s.schema.Table)
	}
	return item, nil
}

func (s *DynamoStore) Delete(ctx context.Context, key string) error {
	_, err := s.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(s.schema.Table),
		Key:       s.key(key),
	})
	return errors.Wrapf(err, "dynamodb delete %s", s.schema.Table)
}

func (s *DynamoStore) Query(ctx context.Context, index, value string) ([]model.Item, error) {
	attr, err := s.schema.Attr(index)
	if err != nil {
		return nil, fmt.Errorf("%s: %w %q", s.schema.Table, err, index)
	}

	expr, err := expression.NewBuilder().
		WithKeyCondition(expression.Key(attr).Equal(expression.Value(value))).
		Build()
	if err != nil {
		return nil, errors.Wrapf(err, "dynamodb build query %s", s.schema.Table)
	}

	in := &dynamodb.QueryInput{
		TableName:                 aws.String(s.schema.Table),
		KeyConditionExpression:    expr.KeyCondition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
		ScanIndexForward:          aws.Bool(true),
	}
	if index != "" {
		in.IndexName = aws.String(index)
	}

	items := make([]model.Item, 0)
	p := dynamodb.NewQueryPaginator(s.client, in)
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return nil, errors.Wrapf(err, "dynamodb query %s", s.schema.Table)
		}
		if items, err = s.appendItems(items, page.Items); err != nil {
			return nil, err
		}
	}
	return items, nil
}

func (s *DynamoStore) Scan(ctx context.Context) ([]model.Item, error) {
	items := make([]model.Item, 0)
	p := dynamodb.NewScanPaginator(s.client, &dynamodb.ScanInput{
		TableName: aws.String(s.schema.Table),
	})
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return nil, errors.Wrapf(err, "dynamodb scan %s", s.schema.Table)
		}
		if items, err = s.appendItems(items, page.Items); err != nil {
			return nil, err
		}
	}
	return items, nil
}

func (s *DynamoStore) appendItems(dst []model.Item, page []map[string]types.AttributeValue) ([]model.Item, error) {
	for _, av := range page {
		var it model.Item
		if err := attributevalue.UnmarshalMap(av, &it); err != nil {
			return nil, errors.Wrapf(err, "dynamodb unmarshal %s", s.schema.Table)
		}
		dst = append(dst, it)
	}
	return dst, nil
}
