// Package telemetry installs the global OpenTelemetry tracer provider.
package telemetry

import (
	"context"
	"log/slog"

	"nodeBoard/configs"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// Setup builds a tracer provider from telemetry.* settings and makes it
// global. Without an OTLP endpoint spans are recorded but never exported.
// The returned function flushes and stops the provider.
func Setup(ctx context.Context, config *configs.Config) (func(context.Context) error, error) {
	serviceName := config.Viper.GetString("telemetry.service_name")
	res := resource.NewSchemaless(
		attribute.String("service.name", serviceName),
		attribute.String("deployment.environment", config.Viper.GetString("app.env")),
	)

	options := []sdktrace.TracerProviderOption{sdktrace.WithResource(res)}

	endpoint := config.Viper.GetString("telemetry.otlp_endpoint")
	if endpoint != "" {
		exporter, err := otlptracegrpc.New(ctx,
			otlptracegrpc.WithEndpoint(endpoint),
			otlptracegrpc.WithInsecure(),
		)
		if err != nil {
			return nil, err
		}
		options = append(options, sdktrace.WithBatcher(exporter))
		slog.Info("exporting traces", "endpoint", endpoint, "service", serviceName)
	}

	provider := sdktrace.NewTracerProvider(options...)
	otel.SetTracerProvider(provider)
	return provider.Shutdown, nil
}
