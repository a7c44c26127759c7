package logs

type Span string

type spanKey struct{}

var SpanKey spanKey

type chainKey struct{}

// ChainKey carries the event name of the chain a run belongs to.
var ChainKey chainKey
