// Package printsvc provides the HTTP transport for label print services.
//
// # Overview
//
// A Client posts an already serialized request body (see package printreq) to
// one endpoint: the PrintMyBarcode print_jobs URL or the SPrint GraphQL URL.
// The package knows nothing about the body format.
//
// # Client Usage
//
//	client, err := printsvc.NewClient(cfg.Endpoint(), cfg.Proxy,
//		printsvc.WithTimeout(cfg.RequestTimeout),
//		printsvc.WithLogger(logger))
//	if err != nil {
//		return err
//	}
//	if err := client.Post(ctx, body); err != nil {
//		log.Printf("print failed: %v", err)
//	}
//
// # Request Handling
//
// Every Post:
//   - Makes exactly one attempt; there is no retry or backoff
//   - Sets Content-Type and Accept to application/json
//   - Includes User-Agent: labelprint/0.1
//   - Honors ctx and the client timeout (30 seconds unless overridden)
//   - Closes the response body on every path
//
// # Proxy
//
// The proxy setting is "host:port". Values without a colon, with an empty host
// or with a non-numeric port are logged as a warning and ignored, so the
// request goes out directly. Environment proxy variables are not consulted.
//
// # Error Handling
//
//   - ErrServiceUnreachable: the service answered 404
//   - *StatusError: any other status outside 2xx, with the response text
//     (line breaks removed) when the service sent one
//   - Wrapped transport errors: connection refused, timeout, DNS failure
package printsvc
