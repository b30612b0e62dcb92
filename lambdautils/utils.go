package lambdautils

import (
	"bookingapi/config"
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/lambda"
)

type LambdaInvoker interface {
	Invoke(ctx context.Context, params *lambda.InvokeInput, optFns ...func(*lambda.Options)) (*lambda.InvokeOutput, error)
}

func CreateNewClient(cfg config.Config) *lambda.Client {
	awsCfg, err := awsconfig.LoadDefaultConfig(context.TODO(),
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithClientLogMode(aws.LogRetries),
	)
	if err != nil {
		log.Fatalf("unable to load SDK config, %v", err)
	}

	client := lambda.NewFromConfig(awsCfg)
	return client
}

// InvokeBookingFunction calls a deployed handler synchronously with an API Gateway proxy
// event and returns the proxy response it produced.
func InvokeBookingFunction(ctx context.Context, client LambdaInvoker, functionName string, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	requestJson, err := json.Marshal(request)
	if err != nil {
		return events.APIGatewayProxyResponse{}, err
	}

	response, err := client.Invoke(ctx, &lambda.InvokeInput{
		FunctionName: aws.String(functionName),
		Payload:      requestJson,
	})
	if err != nil {
		return events.APIGatewayProxyResponse{}, err
	}

	if response.FunctionError != nil {
		return events.APIGatewayProxyResponse{}, fmt.Errorf("function %v failed (%v): %s", functionName, *response.FunctionError, response.Payload)
	}

	var proxyResponse events.APIGatewayProxyResponse
	if err = json.Unmarshal(response.Payload, &proxyResponse); err != nil {
		return events.APIGatewayProxyResponse{}, err
	}

	return proxyResponse, nil
}
