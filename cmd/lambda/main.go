// Command lambda serves the Pocket Morties API behind API Gateway HTTP APIs.
package main

import (
	"context"
	"log"
	"sync"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/awslabs/aws-lambda-go-api-proxy/httpadapter"

	"github.com/doctorew/pocket-morties/pkg/config"
	"github.com/doctorew/pocket-morties/pkg/logging"
	"github.com/doctorew/pocket-morties/pkg/server"
)

// Version is set at build time via ldflags
var Version = "dev"

// adapter is built on the first invocation and reused while the execution
// environment stays warm.
var adapter = sync.OnceValues(func() (*httpadapter.HandlerAdapterV2, error) {
	cfg, err := config.Load(Version)
	if err != nil {
		return nil, err
	}
	logger, err := logging.NewLogger(cfg.Env, cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	handler, err := server.New(cfg, logger).Handler()
	if err != nil {
		return nil, err
	}
	return httpadapter.NewV2(handler), nil
})

func handle(ctx context.Context, req events.APIGatewayV2HTTPRequest) (events.APIGatewayV2HTTPResponse, error) {
	a, err := adapter()
	if err != nil {
		log.Printf("Failed to initialize: %v", err)
		return events.APIGatewayV2HTTPResponse{StatusCode: 500, Body: "Internal Server Error"}, nil
	}
	return a.ProxyWithContext(ctx, req)
}

func main() {
	lambda.Start(handle)
}
