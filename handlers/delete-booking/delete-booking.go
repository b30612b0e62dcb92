package main

import (
	"bookingapi/booking/api"
	"bookingapi/booking/db"
	"bookingapi/booking/services"
	"bookingapi/config"
	"bookingapi/dynamoutils"
	"bookingapi/utils"
	"log"

	"github.com/aws/aws-lambda-go/lambda"
)

var bookingApi *api.BookingApi

func init() {
	utils.ConfigureLogger()
	cfg, err := config.Load()
	if err == nil {
		err = cfg.RequireTableName()
	}
	if err != nil {
		log.Fatalf("unable to load configuration, %v", err)
	}

	client := dynamoutils.CreateClient(cfg)
	bookingDao := db.NewBookingDynDao(client, cfg.TableName)
	bookingApi = api.NewBookingApi(services.NewDefaultBookingService(bookingDao, cfg.Rules))
}

func main() {
	lambda.Start(bookingApi.DeleteBooking)
}
