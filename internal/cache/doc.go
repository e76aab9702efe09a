// Package cache provides the namespaced TTL key-value registry used by the
// service layer.
//
// Each namespace has its own time-to-live and capacity. Values are stored as
// JSON so both backends share one wire representation:
//   - the local backend keeps one jellydator/ttlcache instance per namespace;
//   - the redis backend stores keys as "<namespace>:<key>" with SET EX.
//
// Writing to a namespace that was never ensured fails with
// [ErrNamespaceNotFound]. Reads and invalidations on an unknown namespace
// behave like a miss.
package cache
