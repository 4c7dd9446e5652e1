// Package busobj exposes application-defined operations as remotely
// invocable objects over an inter-process messaging bus, following the
// name/interface/method addressing model.
//
// ## How it works
//
// A program declares `Interface`s (methods, properties, signals) and
// registers them into a `Registry`. Finalizing the registry injects the
// three standard interfaces — peer liveness, property access and
// introspection — and freezes its shape. At run time the `Runner` pulls
// inbound items from one shared connection and offers each to every
// registered `Server` in turn until one claims it; the claiming registry
// invokes the handler and sends the return or error reply.
//
// The transport itself is out of scope: the core consumes it through the
// narrow `wire.Conn` interface, and `wire.Pipe` provides an in-process
// loopback for tests and examples.
//
// ## Design Principles
//
// Dispatch is single-threaded and run-to-completion: one inbound item is
// fully processed before the next fetch, so handlers never race each
// other. Registration happens before publication; the registry is
// read-mostly afterwards and shared by reference with the standard
// interfaces that need to answer questions about it.
//
// Introspection output is never cached — it is a pure function of the
// live registry contents and the known child object names, recomputed on
// every call.
package busobj
