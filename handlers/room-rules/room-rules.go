package main

import (
	"bookingapi/booking/api"
	"bookingapi/booking/services"
	"bookingapi/config"
	"bookingapi/utils"
	"log"

	"github.com/aws/aws-lambda-go/lambda"
)

var rulesApi *api.RulesApi

func init() {
	utils.ConfigureLogger()
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("unable to load configuration, %v", err)
	}

	rulesApi = api.NewRulesApi(services.NewRulesService(cfg.Rules))
}

func main() {
	lambda.Start(rulesApi.GetRoomRules)
}
