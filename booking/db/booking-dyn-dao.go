package db

import (
	"bookingapi/booking/model"
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// DynamoClient is the subset of *dynamodb.Client the dao relies on.
type DynamoClient interface {
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	DeleteItem(ctx context.Context, params *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error)
	dynamodb.ScanAPIClient
}

type BookingDynDao struct {
	client    DynamoClient
	tableName string
}

func NewBookingDynDao(client DynamoClient, tableName string) *BookingDynDao {
	return &BookingDynDao{client: client, tableName: tableName}
}

func (dao *BookingDynDao) PutBooking(ctx context.Context, booking model.BookingRecord) error {
	item, err := attributevalue.MarshalMap(booking)
	if err != nil {
		return err
	}

	_, err = dao.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(dao.tableName),
		Item:      item,
	})

	return err
}

func (dao *BookingDynDao) GetBooking(ctx context.Context, id string) (model.BookingRecord, bool, error) {
	response, err := dao.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(dao.tableName),
		Key:            bookingKey(id),
		ConsistentRead: aws.Bool(true),
	})

	if err != nil {
		return model.BookingRecord{}, false, err
	}

	if len(response.Item) == 0 {
		return model.BookingRecord{}, false, nil
	}

	var booking model.BookingRecord
	if err = attributevalue.UnmarshalMap(response.Item, &booking); err != nil {
		return model.BookingRecord{}, false, err
	}

	return booking, true, nil
}

func (dao *BookingDynDao) ScanBookings(ctx context.Context) ([]model.BookingRecord, error) {
	bookings := []model.BookingRecord{}
	paginator := dynamodb.NewScanPaginator(dao.client, &dynamodb.ScanInput{
		TableName: aws.String(dao.tableName),
	})

	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, err
		}

		var pageBookings []model.BookingRecord
		if err = attributevalue.UnmarshalListOfMaps(page.Items, &pageBookings); err != nil {
			return nil, err
		}
		bookings = append(bookings, pageBookings...)
	}

	return bookings, nil
}

func (dao *BookingDynDao) DeleteBooking(ctx context.Context, id string) error {
	_, err := dao.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(dao.tableName),
		Key:       bookingKey(id),
	})

	return err
}

func bookingKey(id string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"id": &types.AttributeValueMemberS{Value: id},
	}
}
