package main

import (
	"bookingapi/benchmark"
	request_sender "bookingapi/benchmark/request-sender"
	"bookingapi/booking/api"
	"bookingapi/booking/db"
	"bookingapi/booking/model"
	"bookingapi/booking/services"
	"bookingapi/config"
	"bookingapi/dynamoutils"
	"bookingapi/lambdautils"
	"bookingapi/utils"
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"slices"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
)

const (
	defaultLocalDynamoEndpoint = "http://localhost:8000"
	defaultSqlTableName        = "bookings"
)

func main() {
	args := os.Args
	isLocalDeployment := !slices.Contains(args, "aws")

	cfg, err := config.LoadWithDotEnv()
	if err != nil {
		log.Fatalf("unable to load configuration, %v", err)
	}
	utils.ConfigureLogger()
	if cfg.LogDir != "" {
		if logErr := utils.SetLogger(cfg.LogDir, "LoaderLog"); logErr != nil {
			log.Fatalf("Could not correctly setup the logger: %v", logErr)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	possibleCommands := []string{"setup", "cleanup", "serve", "smoke", "load"}
	if slices.Contains(args, "setup") {
		err = setupTable(ctx, cfg, isLocalDeployment)
	} else if slices.Contains(args, "cleanup") {
		err = cleanupTable(ctx, cfg, isLocalDeployment)
	} else if slices.Contains(args, "serve") {
		err = serve(ctx, cfg, isLocalDeployment)
	} else if slices.Contains(args, "smoke") {
		err = smoke(ctx, cfg, isLocalDeployment)
	} else if slices.Contains(args, "load") {
		err = load(ctx, cfg, isLocalDeployment, commandArgs(args, "load"))
	} else {
		log.Fatalf("No command inserted. Please use one of the following: %v", possibleCommands)
	}
	if err != nil {
		log.Fatal(err)
	}
}

func setupTable(ctx context.Context, cfg config.Config, isLocalDeployment bool) error {
	if err := cfg.RequireTableName(); err != nil {
		return err
	}
	client, err := connectDynamo(ctx, cfg, isLocalDeployment)
	if err != nil {
		return err
	}
	return dynamoutils.EnsureBookingsTable(ctx, client, cfg.TableName)
}

func cleanupTable(ctx context.Context, cfg config.Config, isLocalDeployment bool) error {
	if err := cfg.RequireTableName(); err != nil {
		return err
	}
	client, err := connectDynamo(ctx, cfg, isLocalDeployment)
	if err != nil {
		return err
	}
	return dynamoutils.DeleteTable(ctx, client, cfg.TableName)
}

func serve(ctx context.Context, cfg config.Config, isLocalDeployment bool) error {
	bookingDao, err := buildBookingDao(ctx, cfg, isLocalDeployment)
	if err != nil {
		return err
	}

	router := newRouter(
		api.NewBookingApi(services.NewDefaultBookingService(bookingDao, cfg.Rules)),
		api.NewRulesApi(services.NewRulesService(cfg.Rules)),
	)
	server := &http.Server{Addr: cfg.ListenAddr, Handler: router, ReadHeaderTimeout: 10 * time.Second}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if shutdownErr := server.Shutdown(shutdownCtx); shutdownErr != nil {
			log.Printf("Could not shut the server down cleanly: %v\n", shutdownErr)
		}
	}()

	log.Printf("Booking API listening on %v (storage: %v)\n", cfg.ListenAddr, cfg.StorageDriver)
	if err = server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func smoke(ctx context.Context, cfg config.Config, isLocalDeployment bool) error {
	var invoker OperationInvoker
	if isLocalDeployment {
		bookingDao, err := buildBookingDao(ctx, cfg, isLocalDeployment)
		if err != nil {
			return err
		}
		invoker = NewInProcessInvoker(api.NewBookingApi(services.NewDefaultBookingService(bookingDao, cfg.Rules)))
	} else {
		invoker = NewLambdaInvoker(lambdautils.CreateNewClient(cfg), cfg)
	}

	return RunSmokeScenario(ctx, invoker)
}

func load(ctx context.Context, cfg config.Config, isLocalDeployment bool, args []string) error {
	flags := flag.NewFlagSet("load", flag.ContinueOnError)
	requestsCount := flags.Int("requests", 100, "number of create-booking requests to send")
	concurrency := flags.Int("concurrency", 10, "maximum number of requests in flight")
	invalidEvery := flags.Int("invalid-every", 0, "make every n-th request break the capacity rule (0 disables)")
	sendingPeriod := flags.Int("period-millis", 0, "pause between waves of requests")
	outputPath := flags.String("out", "log/load-test.csv", "csv file receiving per-request latencies")
	if err := flags.Parse(args); err != nil {
		return err
	}

	var sender request_sender.RequestSender[events.APIGatewayProxyRequest, events.APIGatewayProxyResponse]
	if isLocalDeployment {
		bookingDao, err := buildBookingDao(ctx, cfg, isLocalDeployment)
		if err != nil {
			return err
		}
		bookingApi := api.NewBookingApi(services.NewDefaultBookingService(bookingDao, cfg.Rules))
		sender = request_sender.NewHandlerSender(bookingApi.CreateBooking)
	} else {
		sender = request_sender.NewLambdaSender(lambdautils.CreateNewClient(cfg), cfg.FunctionName(CREATE_BOOKING))
	}

	timeLogger := benchmark.NewRequestTimeLoggerImpl()
	request_sender.SendAndMeasureCreateBookingRequests(ctx, request_sender.CreateBookingRequestsParameters{
		RequestsCount:         *requestsCount,
		InvalidEvery:          *invalidEvery,
		SendingPeriodMillis:   *sendingPeriod,
		MaxConcurrentRequests: *concurrency,
		Seed:                  time.Now().UnixNano(),
	}, sender, timeLogger)

	summary := timeLogger.Summarize()
	log.Printf("Sent %v requests, status codes: %v, average latency: %v, max latency: %v\n",
		summary.RequestsCount, summary.CountPerStatus, summary.AverageLatency, summary.MaxLatency)

	return utils.ExportToCsv(*outputPath, timeLogger.CsvRows())
}

func buildBookingDao(ctx context.Context, cfg config.Config, isLocalDeployment bool) (model.BookingDao, error) {
	switch cfg.StorageDriver {
	case config.MEMORY_DRIVER:
		return db.NewBookingMemDao(), nil
	case config.SQL_DRIVER:
		gormDb, err := db.OpenDatabase(cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		tableName := cfg.TableName
		if tableName == "" {
			tableName = defaultSqlTableName
		}
		return db.NewBookingSqlDao(gormDb, tableName)
	default:
		if err := cfg.RequireTableName(); err != nil {
			return nil, err
		}
		client, err := connectDynamo(ctx, cfg, isLocalDeployment)
		if err != nil {
			return nil, err
		}
		return db.NewBookingDynDao(client, cfg.TableName), nil
	}
}

// connectDynamo builds the client and, for DynamoDB local, waits for the endpoint to answer.
func connectDynamo(ctx context.Context, cfg config.Config, isLocalDeployment bool) (*dynamodb.Client, error) {
	if !isLocalDeployment {
		return dynamoutils.CreateClient(cfg), nil
	}
	endpoint := cfg.DynamoEndpoint
	if endpoint == "" {
		endpoint = defaultLocalDynamoEndpoint
	}
	client := dynamoutils.CreateLocalClient(endpoint)
	if err := dynamoutils.WaitUntilReachable(ctx, client, utils.NewDefaultRetrier[[]string]()); err != nil {
		return nil, fmt.Errorf("DynamoDB local at %v is not reachable: %w", endpoint, err)
	}
	return client, nil
}

// commandArgs returns the arguments following the command name, minus the "aws" switch.
func commandArgs(args []string, command string) []string {
	index := slices.Index(args, command)
	if index < 0 {
		return nil
	}
	return slices.DeleteFunc(slices.Clone(args[index+1:]), func(arg string) bool { return arg == "aws" })
}
