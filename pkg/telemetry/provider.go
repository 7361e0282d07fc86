// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package telemetry

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
)

// Setup initialises OpenTelemetry tracing, exporting spans over OTLP/HTTP to a
// given endpoint.  Tracing is opt-in: when the endpoint is empty, Setup returns
// a no-op shutdown function and no global provider is registered.  The
// returned shutdown function flushes pending spans and should be deferred by
// the caller.
func Setup(ctx context.Context, endpoint string, serviceName string) (shutdown func(context.Context) error,
	err error) {
	noop := func(context.Context) error { return nil }
	//
	if endpoint == "" {
		return noop, nil
	}
	//
	exporter, err := otlptracehttp.New(ctx, otlptracehttp.WithEndpointURL(endpoint))
	//
	if err != nil {
		return noop, err
	}
	//
	res, err := resource.New(ctx, resource.WithAttributes(semconv.ServiceName(serviceName)))
	//
	if err != nil {
		return noop, err
	}
	//
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
	)
	//
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.TraceContext{})
	//
	return tp.Shutdown, nil
}
