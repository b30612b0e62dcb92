package dynamoutils

import (
	"bookingapi/config"
	"bookingapi/utils"
	"context"
	"errors"
	"log"
	net "net/http"
	"slices"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/aws/ratelimit"
	"github.com/aws/aws-sdk-go-v2/aws/retry"
	"github.com/aws/aws-sdk-go-v2/aws/transport/http"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const BOOKING_PARTITION_KEY = "id"

type TableDefinition struct {
	TableName string

	PartitionKey AttributeDefinition
	SortKey      AttributeDefinition
}

type AttributeDefinition struct {
	Name       string
	ScalarType types.ScalarAttributeType
}

func CreateTable(ctx context.Context, client *dynamodb.Client, tableDefinition TableDefinition) (*types.TableDescription, error) {
	var tableDesc *types.TableDescription
	attributeDefinitions := []types.AttributeDefinition{{
		AttributeName: aws.String(tableDefinition.PartitionKey.Name),
		AttributeType: tableDefinition.PartitionKey.ScalarType,
	}}
	if tableDefinition.SortKey.Name != "" {
		attributeDefinitions = append(attributeDefinitions, types.AttributeDefinition{
			AttributeName: aws.String(tableDefinition.SortKey.Name),
			AttributeType: tableDefinition.SortKey.ScalarType,
		})
	}

	createTableInput := dynamodb.CreateTableInput{
		TableName:            aws.String(tableDefinition.TableName),
		AttributeDefinitions: attributeDefinitions,
		KeySchema:            createKeySchema(tableDefinition.PartitionKey.Name, tableDefinition.SortKey.Name),
		BillingMode:          types.BillingModePayPerRequest,
	}

	table, err := client.CreateTable(ctx, &createTableInput)

	if err != nil {
		log.Printf("Couldn't create table %v. Here's why: %v\n", tableDefinition.TableName, err)
	} else {
		waiter := dynamodb.NewTableExistsWaiter(client)
		err = waiter.Wait(ctx, &dynamodb.DescribeTableInput{
			TableName: aws.String(tableDefinition.TableName)}, 5*time.Minute)
		if err != nil {
			log.Printf("Wait for table exists failed. Here's why: %v\n", err)
		}
		tableDesc = table.TableDescription
	}
	return tableDesc, err
}

func CreateBookingsTable(ctx context.Context, client *dynamodb.Client, tableName string) (*types.TableDescription, error) {
	tableDefinition := TableDefinition{
		TableName:    tableName,
		PartitionKey: AttributeDefinition{BOOKING_PARTITION_KEY, types.ScalarAttributeTypeS},
	}

	return CreateTable(ctx, client, tableDefinition)
}

// EnsureBookingsTable creates the bookings table unless it already exists.
func EnsureBookingsTable(ctx context.Context, client *dynamodb.Client, tableName string) error {
	existingTableNames, err := GetExistingTableNames(ctx, client)
	if err != nil {
		return err
	}

	if slices.Contains(existingTableNames, tableName) {
		log.Printf("Table %v already exists\n", tableName)
		return nil
	}

	_, err = CreateBookingsTable(ctx, client, tableName)
	return err
}

func GetExistingTableNames(ctx context.Context, client *dynamodb.Client) ([]string, error) {
	var tableNames []string
	paginator := dynamodb.NewListTablesPaginator(client, &dynamodb.ListTablesInput{})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return []string{}, err
		}
		tableNames = append(tableNames, page.TableNames...)
	}
	return tableNames, nil
}

// WaitUntilReachable lists tables until the endpoint answers, so tools started alongside a
// fresh DynamoDB local container do not fail on their first call.
func WaitUntilReachable(ctx context.Context, client *dynamodb.Client, retrier *utils.Retrier[[]string]) error {
	_, err := retrier.Do(ctx, func(ctx context.Context) ([]string, error) {
		return GetExistingTableNames(ctx, client)
	})
	return err
}

// DeleteTable removes the table. A table that does not exist is not an error.
func DeleteTable(ctx context.Context, client *dynamodb.Client, tableName string) error {
	_, err := client.DeleteTable(ctx, &dynamodb.DeleteTableInput{TableName: &tableName})

	var notFoundErr *types.ResourceNotFoundException
	if errors.As(err, &notFoundErr) {
		log.Printf("Table %v does not exist, nothing to delete\n", tableName)
		return nil
	}
	if err != nil {
		log.Printf("Could not delete table %v: %v\n", tableName, err)
	}

	return err
}

// CreateClient builds the client used by the handlers: the configured endpoint when one is
// set, AWS proper otherwise.
func CreateClient(cfg config.Config) *dynamodb.Client {
	if cfg.DynamoEndpoint != "" {
		return CreateLocalClient(cfg.DynamoEndpoint)
	}
	return CreateAwsClient(cfg)
}

func CreateLocalClient(endpoint string) *dynamodb.Client {
	cfg, err := awsconfig.LoadDefaultConfig(context.TODO(),
		awsconfig.WithRegion("localhost"),
		awsconfig.WithHTTPClient(
			http.NewBuildableClient().
				WithTransportOptions(func(tr *net.Transport) {
					tr.ExpectContinueTimeout = 0
					tr.MaxIdleConns = 1000
				}),
		),
		awsconfig.WithClientLogMode(aws.LogRetries),
	)

	if err != nil {
		log.Fatalf("unable to load SDK config, %v", err)
	}

	client := dynamodb.NewFromConfig(cfg, func(o *dynamodb.Options) {
		o.BaseEndpoint = aws.String(endpoint)
		o.Credentials = credentials.NewStaticCredentialsProvider("local", "local", "")
	})

	return client
}

func CreateAwsClient(bookingCfg config.Config) *dynamodb.Client {
	cfg, err := awsconfig.LoadDefaultConfig(context.TODO(),
		awsconfig.WithRegion(bookingCfg.Region),
		awsconfig.WithClientLogMode(aws.LogRetries),
		awsconfig.WithRetryer(func() aws.Retryer {
			return retry.NewStandard(func(so *retry.StandardOptions) {
				so.RateLimiter = ratelimit.NewTokenRateLimit(1000000)
				so.MaxAttempts = bookingCfg.MaxAttempts
			})
		}),
	)
	if err != nil {
		log.Fatalf("unable to load SDK config, %v", err)
	}

	client := dynamodb.NewFromConfig(cfg)
	return client
}

func createKeySchema(
	partitionKeyName string, sortKeyName string) []types.KeySchemaElement {
	schema := []types.KeySchemaElement{{
		AttributeName: aws.String(partitionKeyName),
		KeyType:       types.KeyTypeHash,
	}}

	if sortKeyName != "" {
		schema = append(schema, types.KeySchemaElement{
			AttributeName: aws.String(sortKeyName),
			KeyType:       types.KeyTypeRange,
		})
	}

	return schema
}
