package crawler

import "errors"

// ErrPageUnavailable is returned by Fetcher.Fetch for every failure
// mode: transport errors (DNS, connection, timeout, TLS), non-200
// status codes and non-HTML responses. Callers never distinguish
// between these; an unavailable page is skipped, not retried.
var ErrPageUnavailable = errors.New("page unavailable")
