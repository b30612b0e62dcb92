package main

import (
	"bookingapi/config"
	"bookingapi/dynamoutils"
	"bookingapi/utils"
	"context"
	"log"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
)

var client *dynamodb.Client
var tableName string

func init() {
	utils.ConfigureLogger()
	cfg, err := config.Load()
	if err == nil {
		err = cfg.RequireTableName()
	}
	if err != nil {
		log.Fatalf("unable to load configuration, %v", err)
	}

	client = dynamoutils.CreateClient(cfg)
	tableName = cfg.TableName
}

func handler(ctx context.Context) error {
	return dynamoutils.EnsureBookingsTable(ctx, client, tableName)
}

func main() {
	lambda.Start(handler)
}
