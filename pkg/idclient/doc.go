// Package idclient provides the primary entry point for constructing an
// Inform Direct API client that implements the informdirect.Client interface.
//
// It layers configuration defaults and validation, HTTP transport, metrics and
// the token lifecycle on top of the interfaces and types defined in the
// informdirect package.
//
// Quick start
//
//	import (
//	  "context"
//	  "log"
//
//	  "github.com/fivetwenty-io/informdirect/pkg/idclient"
//	  "github.com/fivetwenty-io/informdirect/pkg/informdirect"
//	)
//
//	func example() {
//	  ctx := context.Background()
//
//	  // Sandbox, the default environment.
//	  cli, err := idclient.NewWithAPIKey(ctx, "my-api-key")
//	  if err != nil { log.Fatal(err) }
//
//	  // Production, with transport retries and a rate limit.
//	  cli, err = idclient.New(ctx, &informdirect.Config{
//	    APIKey:            "my-api-key",
//	    Environment:       informdirect.EnvironmentProduction,
//	    RetryMax:          3,
//	    RequestsPerSecond: 5,
//	  })
//	  if err != nil { log.Fatal(err) }
//
//	  company, err := cli.Companies().Get(ctx, "00014259")
//	  if err != nil { log.Fatal(err) }
//	  if company == nil { log.Print("not in portfolio") }
//	}
//
// Base URLs must use https. A plain http URL is rejected by New before any
// request is made.
package idclient
