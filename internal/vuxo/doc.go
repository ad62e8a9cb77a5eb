// Package vuxo is the scraping client for the vuxo7.com music catalog.
//
// The package covers three concerns:
//
//  1. Query building: turning a free-text phrase into the site's
//     subdomain-routed search URL (BuildSearchURL).
//  2. Page parsing: turning a search or top-hits page into a list of
//     model.Track values (ParseTracks).
//  3. The network client: a session-scoped Client with Search, TopHits,
//     and AudioBytes, wrapped in a retry policy and a download size
//     guard.
//
// # Basic Usage
//
//	client := vuxo.NewClient(nil)
//	err := client.Session(func() error {
//	    tracks, err := client.Search(ctx, "daft punk")
//	    if err != nil {
//	        return err
//	    }
//	    audio, err := client.AudioBytes(ctx, tracks[0])
//	    ...
//	})
//
// # Failure Contract
//
// Client operations return exactly one externally visible error kind,
// *ServiceError, wrapping the cause (no session, retries exhausted,
// oversized payload, missing audio locator). ParseTracks returns
// *ParseError when the markup does not match the expected shape.
// Raw net/http errors never cross the package boundary.
//
// # Retry Policy
//
// Search, TopHits, and AudioBytes make up to 3 attempts with
// exponential backoff (1s, doubling, capped at 5s). Network failures,
// timeouts, and non-2xx statuses are retried; so are parse failures,
// because fetch and parse share one attempt and a transiently broken
// page cannot be told apart from a permanent layout change.
package vuxo
