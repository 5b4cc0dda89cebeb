// Package app wires the histviz service together: configuration, logging,
// telemetry, the file row source, the summary and health services, and the
// chi router with its middleware chain.
//
// # Initialization Flow
//
//	1. Load configuration from config.yaml and HISTVIZ_* environment variables
//	2. Resolve paths against the executable directory and create data/logs dirs
//	3. Initialize the JSON logger and OpenTelemetry (Prometheus meter, optional stdout traces)
//	4. Build the FileSource and the services on top of it
//	5. Register routes and middleware, then create the HTTP server
//
// # Usage
//
//	application, err := app.NewApplication(nil, webFS)
//	if err != nil {
//	    return err
//	}
//	return application.Run()
//
// Run blocks until SIGINT or SIGTERM and then drains in-flight requests
// within the configured shutdown timeout.
package app
