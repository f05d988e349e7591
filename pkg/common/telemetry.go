// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package common

import (
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/zipkin"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// NewTracerProvider creates a tracer provider that batches spans to a
// Zipkin collector. The collector URL comes from ZIPKIN_COLLECTOR_URL.
func NewTracerProvider(serviceName, environment string, id int64) (*sdktrace.TracerProvider, error) {
	collectorURL := GetEnv("ZIPKIN_COLLECTOR_URL", "http://localhost:9411/api/v2/spans")

	exporter, err := zipkin.New(collectorURL)
	if err != nil {
		return nil, fmt.Errorf("failed to create zipkin exporter: %w", err)
	}

	return sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(resource.NewSchemaless(
			attribute.String("service.name", serviceName),
			attribute.String("environment", environment),
			attribute.Int64("ID", id),
		)),
	), nil
}
