// Package stream provides synchronous, composable push streams.
//
// A Publisher produces zero or more values followed by at most one
// Completion (Finished or Failure). Nothing happens until Subscribe is
// called. Each Subscribe creates one Subscription, which the Subscriber may
// cancel at any time, including from inside OnValue.
//
// Operators wrap an upstream Publisher and return a new one. Every
// subscription to an operator creates one stage that owns its upstream
// subscription and exposes its own subscription downstream, so cancelling
// anywhere in a chain tears the whole chain down.
//
// # Sources
//
//   - FromSlice, Of, Just, Range: finite synchronous sources
//   - Empty, Fail, Never: degenerate sources
//   - Generate: possibly infinite synchronous source
//   - FromChannel, FromIterator: bridges from channels and pull iterators
//   - Create: adapter for any callback or goroutine driven producer
//   - Subject: imperative multicast source
//
// # Operators
//
//   - Filter, Map, TryMap, CompactMap
//   - RemoveDuplicates, RemoveDuplicatesFunc, IgnoreOutput
//   - First, FirstWhere, Last, LastWhere
//   - DropFirst, DropWhile, DropUntilOutputFrom
//   - Prefix, PrefixWhile, PrefixUntilOutputFrom
//   - HandleEvents, Trace
//
// # Consuming
//
//   - Sink: callbacks, returns a Cancellable
//   - Record, Collect: gather events for inspection or waiting
//   - Values: pull iterator over a publisher, the inverse of FromIterator
//
// # Usage
//
//	numbers := stream.Range(1, 10)
//	threes := stream.Filter(numbers, func(n int) bool { return n%3 == 0 })
//	cancel := stream.Sink(threes, func(n int) {
//	    fmt.Println(n)
//	}, nil)
//	defer cancel.Cancel()
//
// Delivery is sequential per subscription and happens on the goroutine that
// produces the value. Operators hold no locks while calling downstream.
package stream
