// Package informdirect provides types, interfaces, and helpers for working with
// the Inform Direct integration API.
//
// # Overview
//
// The informdirect package defines the domain types (CompanySummary,
// TokenPair, MessageResponse), the Client and CompaniesClient interfaces, the
// Config used to build a client and the error taxonomy. A concrete
// implementation is provided by the idclient package, which wires
// configuration, transport and authentication.
//
// Getting a client
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
//	  cli, err := idclient.New(ctx, &informdirect.Config{APIKey: "..."})
//	  if err != nil { log.Fatal(err) }
//	  defer cli.Logout(ctx)
//
//	  companies, err := cli.Companies().List(ctx)
//	  if err != nil { log.Fatal(err) }
//	  _ = companies
//	}
//
// # Authentication
//
// The client authenticates lazily on the first call. When a call returns 401
// the client refreshes the token pair, falls back to a full
// re-authentication if the refresh fails, and retries the call once.
//
// # Errors
//
// Failures reported by the API or detected by the client are *Error values
// with a Kind of KindAPI, KindAuthentication or KindValidation. Status is 0
// when no response was involved. Helpers such as IsAuthentication,
// IsValidation and StatusCode make it easy to branch on them. Network
// failures are returned wrapped and are not *Error.
//
// # Interceptors
//
// RequestInterceptors and ResponseInterceptors in Config run around every
// attempt, including the retry after a 401. The package ships logging,
// header, request id and rate limit interceptors.
package informdirect
