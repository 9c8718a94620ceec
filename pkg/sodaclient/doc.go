// Package sodaclient is the primary entry point for constructing a SODA API
// client that implements the soda.Client interface.
//
// It layers configuration, HTTP transport and authentication on top of the
// types defined in the soda package.
//
// Quick start
//
//	import (
//	  "context"
//	  "log"
//
//	  "github.com/fivetwenty-io/soda/pkg/soda"
//	  "github.com/fivetwenty-io/soda/pkg/sodaclient"
//	)
//
//	func example() {
//	  ctx := context.Background()
//
//	  // Anonymous, subject to strict throttling.
//	  cli, err := sodaclient.NewWithDomain("data.cityofchicago.org")
//	  if err != nil { log.Fatal(err) }
//
//	  // Or with an app token and an OAuth 2.0 access token:
//	  cli, err = sodaclient.New(&soda.Config{
//	    Domain:      "data.cityofchicago.org",
//	    AppToken:    "app-token",
//	    AccessToken: "access-token",
//	  })
//	  if err != nil { log.Fatal(err) }
//	  defer cli.Close()
//
//	  res, err := cli.GetMetadata(ctx, "xzkq-xp2w")
//	  _ = res
//	}
//
// Authentication
//
// Basic (Username and Password) and OAuth 2.0 (AccessToken) are mutually
// exclusive. The app token is independent of both.
package sodaclient
