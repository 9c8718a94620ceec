// Package soda provides types, interfaces, and helpers for working with the
// Socrata Open Data API (SODA).
//
// # Overview
//
// The soda package defines the Client interface, the query and result types, the
// resource path grammar of both API generations, parameter sanitizing, response
// decoding and the error policy. A concrete client is provided by the sodaclient
// package, which wires configuration, transport and authentication.
//
// Getting a client
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
//	  cli, err := sodaclient.NewWithAppToken("data.cityofchicago.org", "token")
//	  if err != nil { log.Fatal(err) }
//	  defer cli.Close()
//
//	  res, err := cli.Get(ctx, "xzkq-xp2w", soda.NewQuery().WithLimit(10))
//	  if err != nil { log.Fatal(err) }
//
//	  rows, err := res.Records()
//	  _ = rows
//	}
//
// # Queries and pagination
//
// Query carries the SoQL parameters ($select, $where, $order, ...) and column
// filters. Unset fields are never sent; an explicitly empty one is. GetAll returns
// a PaginationIterator that issues offset pages lazily:
//
//	it := cli.GetAll(ctx, "xzkq-xp2w", nil)
//	for it.HasNext() {
//	  row, err := it.Next()
//	  if err != nil { break }
//	  _ = row
//	}
//
// # Results
//
// Responses are decoded by content type into a Result: parsed JSON, CSV rows, raw
// RDF/XML bytes or text. An empty body yields a KindEmpty result holding only the
// raw Response.
//
// # Errors
//
// Every error wraps one of ErrConfiguration, ErrTransport, ErrDecode or
// ErrPagination. Status codes in the 4xx and 5xx bands become an *HTTPError;
// IsNotFound, IsUnauthorized, IsForbidden and IsThrottled branch on common cases.
package soda
